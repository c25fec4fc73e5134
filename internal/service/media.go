package service

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"io"
	"mime"
	"path"
	"strings"

	"github.com/google/uuid"

	"github.com/dtroode/listenloud-server/internal/logger"
	"github.com/dtroode/listenloud-server/internal/model"
)

// allowedMedia maps each media kind to its accepted content types and file extensions.
var allowedMedia = map[model.MediaKind]map[string]string{
	model.MediaAudio: {
		"audio/mpeg": ".mp3",
		"audio/wav":  ".wav",
	},
	model.MediaImage: {
		"image/jpeg": ".jpg",
		"image/png":  ".png",
	},
}

//go:embed assets/default.jpg
var defaultImage []byte

// Media validates uploads and keeps them in the blob store.
type Media struct {
	blobs     model.BlobStore
	maxSize   int64
	publicURL string
	logger    *logger.Logger
}

func NewMedia(blobs model.BlobStore, maxSize int64, publicURL string, logger *logger.Logger) *Media {
	return &Media{
		blobs:     blobs,
		maxSize:   maxSize,
		publicURL: publicURL,
		logger:    logger,
	}
}

// Store validates file against kind and uploads it under a fresh key.
func (m *Media) Store(ctx context.Context, kind model.MediaKind, file *model.File) (string, error) {
	ext, err := m.validate(kind, file)
	if err != nil {
		return "", err
	}

	key := fmt.Sprintf("%s/%s%s", kind, uuid.NewString(), ext)
	if err := m.blobs.Upload(ctx, key, file.Reader, file.Size, normalizeContentType(file.ContentType)); err != nil {
		m.logger.Error("Media service: failed to upload file",
			"key", key,
			"error", err.Error())
		return "", fmt.Errorf("failed to upload %s: %w", kind, err)
	}

	m.logger.Debug("Media service: file stored",
		"key", key,
		"size", file.Size)

	return key, nil
}

// EnsureDefaultImage uploads the placeholder cover under model.DefaultImageKey
// unless the blob store already has one.
func (m *Media) EnsureDefaultImage(ctx context.Context) error {
	exists, err := m.blobs.Exists(ctx, model.DefaultImageKey)
	if err != nil {
		return fmt.Errorf("failed to check default image: %w", err)
	}
	if exists {
		return nil
	}

	err = m.blobs.Upload(ctx, model.DefaultImageKey, bytes.NewReader(defaultImage), int64(len(defaultImage)), "image/jpeg")
	if err != nil {
		return fmt.Errorf("failed to upload default image: %w", err)
	}

	m.logger.Info("Media service: default image uploaded",
		"key", model.DefaultImageKey)
	return nil
}

// Remove deletes a stored blob. The shared default image is never removed.
// Failures are logged only.
func (m *Media) Remove(ctx context.Context, key string) {
	if key == "" || key == model.DefaultImageKey {
		return
	}
	if err := m.blobs.Delete(ctx, key); err != nil {
		m.logger.Error("Media service: failed to delete file",
			"key", key,
			"error", err.Error())
	}
}

// URL returns the public address of key, or an empty string for no key.
func (m *Media) URL(key string) string {
	if key == "" {
		return ""
	}
	return m.publicURL + key
}

// Open streams a stored blob and reports its content type.
func (m *Media) Open(ctx context.Context, kind model.MediaKind, name string) (io.ReadCloser, string, error) {
	types, ok := allowedMedia[kind]
	if !ok || name == "" || strings.ContainsAny(name, `/\`) || strings.HasPrefix(name, ".") {
		return nil, "", model.ErrNotFound
	}

	contentType := ""
	ext := path.Ext(name)
	for ct, e := range types {
		if e == ext {
			contentType = ct
		}
	}
	if contentType == "" {
		return nil, "", model.ErrNotFound
	}

	rc, err := m.blobs.Download(ctx, string(kind)+"/"+name)
	if err != nil {
		return nil, "", err
	}
	return rc, contentType, nil
}

func (m *Media) validate(kind model.MediaKind, file *model.File) (string, error) {
	if file == nil || file.Reader == nil {
		return "", fmt.Errorf("%w: %s file is required", model.ErrInvalidArgument, kind)
	}

	ext, ok := allowedMedia[kind][normalizeContentType(file.ContentType)]
	if !ok {
		return "", fmt.Errorf("%w: %q is not an accepted %s type", model.ErrUnsupportedMediaType, file.ContentType, kind)
	}

	if m.maxSize > 0 && file.Size > m.maxSize {
		return "", fmt.Errorf("%w: %d bytes exceeds %d", model.ErrFileTooLarge, file.Size, m.maxSize)
	}

	return ext, nil
}

func normalizeContentType(contentType string) string {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(contentType))
	}
	return mediaType
}
