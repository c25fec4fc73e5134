package model

import (
	"context"
	"io"
)

// BlobStore keeps uploaded media files.
type BlobStore interface {
	Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error
	Download(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// MediaKind is the family of an uploaded file.
type MediaKind string

const (
	MediaAudio MediaKind = "audio"
	MediaImage MediaKind = "image"
)

// DefaultImageKey is used for tracks uploaded without a cover.
const DefaultImageKey = "image/default.jpg"

// File is an uploaded file received from a client.
type File struct {
	Name        string
	ContentType string
	Size        int64
	Reader      io.Reader
}
