package uploads

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bryanwahyu/checkops/internal/application"
	"github.com/bryanwahyu/checkops/internal/domain/screening"
)

type fakeStore struct {
	key         string
	body        string
	contentType string
	err         error
}

func (f *fakeStore) Put(_ context.Context, key string, r io.Reader, _ int64, contentType string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	b, _ := io.ReadAll(r)
	f.key, f.body, f.contentType = key, string(b), contentType
	return "http://minio:9000/attachments/" + key, nil
}

func newService(store screening.UploadStore) *Service {
	return &Service{
		Store: store,
		Clock: application.FixedClock{T: time.Date(2025, 9, 20, 8, 0, 0, 0, time.UTC)},
		NewID: func() string { return "abc" },
	}
}

func TestService_Upload(t *testing.T) {
	store := &fakeStore{}
	att, err := newService(store).Upload(context.Background(), UploadCommand{
		Filename:    "offer letter.pdf",
		ContentType: "application/pdf",
		Size:        5,
		Body:        strings.NewReader("%PDF-"),
	})
	require.NoError(t, err)

	assert.Equal(t, "console/2025/09/20/abc-offer_letter.pdf", store.key)
	assert.Equal(t, "%PDF-", store.body)
	assert.Equal(t, screening.Attachment{
		URL:              "http://minio:9000/attachments/console/2025/09/20/abc-offer_letter.pdf",
		Key:              "console/2025/09/20/abc-offer_letter.pdf",
		Bytes:            5,
		ContentType:      "application/pdf",
		OriginalFilename: "offer letter.pdf",
	}, att)
}

func TestService_UploadErrors(t *testing.T) {
	ctx := context.Background()

	_, err := (&Service{}).Upload(ctx, UploadCommand{Body: strings.NewReader("x")})
	assert.ErrorIs(t, err, screening.ErrStorageUnavailable)

	_, err = newService(&fakeStore{}).Upload(ctx, UploadCommand{Filename: "a.txt"})
	assert.ErrorIs(t, err, screening.ErrInvalidInput)

	_, err = newService(&fakeStore{err: errors.New("bucket gone")}).Upload(ctx, UploadCommand{Body: strings.NewReader("x")})
	assert.ErrorIs(t, err, screening.ErrUpstream)
	assert.ErrorContains(t, err, "bucket gone")
}

func TestSafeName(t *testing.T) {
	tests := map[string]string{
		"report.csv":            "report.csv",
		"../../etc/passwd":      "passwd",
		`C:\Users\hr\cv 2.docx`: "cv_2.docx",
		"...":                   "uploaded-file",
		"résumé.pdf":            "r_sum_.pdf",
	}
	for in, want := range tests {
		assert.Equal(t, want, SafeName(in), in)
	}
}
