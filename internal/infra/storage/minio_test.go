package storage

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestObjectURL(t *testing.T) {
	tests := []struct {
		name     string
		endpoint url.URL
		key      string
		want     string
	}{
		{"http", url.URL{Scheme: "http", Host: "localhost:9000"}, "uploads/a.pdf", "http://localhost:9000/attachments/uploads/a.pdf"},
		{"https", url.URL{Scheme: "https", Host: "s3.example.com"}, "x/report final.csv", "https://s3.example.com/attachments/x/report%20final.csv"},
		{"no scheme", url.URL{Host: "minio:9000"}, "k", "http://minio:9000/attachments/k"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ObjectURL(&tt.endpoint, "attachments", tt.key))
		})
	}
}
