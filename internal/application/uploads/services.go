package uploads

import (
	"context"
	"fmt"
	"io"
	"path"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/bryanwahyu/checkops/internal/application"
	"github.com/bryanwahyu/checkops/internal/domain/screening"
)

const defaultFilename = "uploaded-file"

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

// Service forwards console attachments to object storage.
type Service struct {
	Store screening.UploadStore // nil when storage is not configured
	Clock application.Clock
	NewID func() string
}

type UploadCommand struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// Upload stores the file under console/<date>/<id>-<name>.
func (s *Service) Upload(ctx context.Context, cmd UploadCommand) (screening.Attachment, error) {
	if s.Store == nil {
		return screening.Attachment{}, screening.ErrStorageUnavailable
	}
	if cmd.Body == nil {
		return screening.Attachment{}, &screening.ValidationError{Fields: []string{"file"}}
	}

	name := cmd.Filename
	if strings.TrimSpace(name) == "" {
		name = defaultFilename
	}
	key := fmt.Sprintf("console/%s/%s-%s", s.Clock.Now().Format("2006/01/02"), s.id(), SafeName(name))

	url, err := s.Store.Put(ctx, key, cmd.Body, cmd.Size, cmd.ContentType)
	if err != nil {
		return screening.Attachment{}, fmt.Errorf("%w: %v", screening.ErrUpstream, err)
	}
	return screening.Attachment{
		URL:              url,
		Key:              key,
		Bytes:            cmd.Size,
		ContentType:      cmd.ContentType,
		OriginalFilename: name,
	}, nil
}

func (s *Service) id() string {
	if s.NewID != nil {
		return s.NewID()
	}
	return uuid.NewString()
}

// SafeName reduces a client file name to an object-key-safe base name.
func SafeName(name string) string {
	base := path.Base(strings.ReplaceAll(name, `\`, "/"))
	base = unsafeChars.ReplaceAllString(base, "_")
	base = strings.Trim(base, "._")
	if base == "" {
		return defaultFilename
	}
	return base
}
