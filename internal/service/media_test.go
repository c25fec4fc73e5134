package service

import (
	"bytes"
	"context"
	"errors"
	"io"
	"path"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/listenloud-server/internal/mocks"
	"github.com/dtroode/listenloud-server/internal/model"
	"github.com/dtroode/listenloud-server/internal/testutil"
)

func TestMedia_Store(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		kind    model.MediaKind
		file    *model.File
		prefix  string
		suffix  string
		wantErr error
	}{
		{
			name:   "mp3",
			kind:   model.MediaAudio,
			file:   &model.File{ContentType: "audio/mpeg", Size: 4, Reader: strings.NewReader("data")},
			prefix: "audio/",
			suffix: ".mp3",
		},
		{
			name:   "png with parameters",
			kind:   model.MediaImage,
			file:   &model.File{ContentType: "image/png; charset=binary", Size: 4, Reader: strings.NewReader("data")},
			prefix: "image/",
			suffix: ".png",
		},
		{
			name:    "image as audio",
			kind:    model.MediaAudio,
			file:    &model.File{ContentType: "image/png", Size: 4, Reader: strings.NewReader("data")},
			wantErr: model.ErrUnsupportedMediaType,
		},
		{
			name:    "too large",
			kind:    model.MediaImage,
			file:    &model.File{ContentType: "image/jpeg", Size: 2048, Reader: strings.NewReader("data")},
			wantErr: model.ErrFileTooLarge,
		},
		{
			name:    "missing",
			kind:    model.MediaAudio,
			wantErr: model.ErrInvalidArgument,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			blobs := mocks.NewBlobStore(t)
			m := NewMedia(blobs, 1024, "/media/", testutil.MakeNoopLogger())

			if tt.wantErr == nil {
				blobs.On("Upload", mock.Anything, mock.MatchedBy(func(k string) bool {
					return strings.HasPrefix(k, tt.prefix) && strings.HasSuffix(k, tt.suffix)
				}), tt.file.Reader, tt.file.Size, mock.Anything).Return(nil)
			}

			key, err := m.Store(ctx, tt.kind, tt.file)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(key, tt.prefix))
			assert.True(t, strings.HasSuffix(key, tt.suffix))
		})
	}
}

func TestMedia_StoreUploadFailure(t *testing.T) {
	blobs := mocks.NewBlobStore(t)
	m := NewMedia(blobs, 0, "/media/", testutil.MakeNoopLogger())
	blobs.On("Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything, "audio/wav").
		Return(model.ErrStorage)

	_, err := m.Store(context.Background(), model.MediaAudio,
		&model.File{ContentType: "audio/wav", Size: 1, Reader: strings.NewReader("x")})
	assert.ErrorIs(t, err, model.ErrStorage)
}

func TestMedia_Remove(t *testing.T) {
	blobs := mocks.NewBlobStore(t)
	m := NewMedia(blobs, 0, "/media/", testutil.MakeNoopLogger())
	blobs.On("Delete", mock.Anything, "audio/a.mp3").Return(errors.New("gone")).Once()

	m.Remove(context.Background(), "")
	m.Remove(context.Background(), model.DefaultImageKey)
	m.Remove(context.Background(), "audio/a.mp3")
}

func TestMedia_URL(t *testing.T) {
	m := NewMedia(nil, 0, "/api/v1/media/", testutil.MakeNoopLogger())
	assert.Equal(t, "/api/v1/media/image/a.png", m.URL("image/a.png"))
	assert.Empty(t, m.URL(""))
}

func TestMedia_Open(t *testing.T) {
	ctx := context.Background()

	t.Run("streams blob", func(t *testing.T) {
		blobs := mocks.NewBlobStore(t)
		m := NewMedia(blobs, 0, "/media/", testutil.MakeNoopLogger())
		blobs.On("Download", mock.Anything, "audio/a.mp3").
			Return(io.NopCloser(strings.NewReader("song")), nil)

		rc, contentType, err := m.Open(ctx, model.MediaAudio, "a.mp3")
		require.NoError(t, err)
		defer rc.Close()
		assert.Equal(t, "audio/mpeg", contentType)
		body, _ := io.ReadAll(rc)
		assert.Equal(t, "song", string(body))
	})

	for _, tc := range []struct {
		kind model.MediaKind
		name string
	}{
		{model.MediaAudio, "../secret.mp3"},
		{model.MediaAudio, "a.png"},
		{model.MediaKind("video"), "a.mp4"},
		{model.MediaImage, ""},
	} {
		t.Run("rejects "+string(tc.kind)+"/"+tc.name, func(t *testing.T) {
			m := NewMedia(mocks.NewBlobStore(t), 0, "/media/", testutil.MakeNoopLogger())
			_, _, err := m.Open(ctx, tc.kind, tc.name)
			assert.ErrorIs(t, err, model.ErrNotFound)
		})
	}

	t.Run("missing blob", func(t *testing.T) {
		blobs := mocks.NewBlobStore(t)
		m := NewMedia(blobs, 0, "/media/", testutil.MakeNoopLogger())
		blobs.On("Download", mock.Anything, "image/x.jpg").Return(nil, model.ErrNotFound)

		_, _, err := m.Open(ctx, model.MediaImage, "x.jpg")
		assert.ErrorIs(t, err, model.ErrNotFound)
	})
}

func TestMedia_EnsureDefaultImage(t *testing.T) {
	ctx := context.Background()

	t.Run("uploads when missing", func(t *testing.T) {
		blobs := mocks.NewBlobStore(t)
		blobs.On("Exists", ctx, model.DefaultImageKey).Return(false, nil)

		var uploaded []byte
		blobs.On("Upload", ctx, model.DefaultImageKey, mock.Anything, int64(len(defaultImage)), "image/jpeg").
			Run(func(args mock.Arguments) {
				data, err := io.ReadAll(args.Get(2).(io.Reader))
				require.NoError(t, err)
				uploaded = data
			}).
			Return(nil)

		m := NewMedia(blobs, 0, "/media/", testutil.MakeNoopLogger())
		require.NoError(t, m.EnsureDefaultImage(ctx))

		require.NotEmpty(t, uploaded)
		assert.Equal(t, []byte{0xFF, 0xD8}, uploaded[:2], "jpeg start of image")
		assert.Equal(t, []byte{0xFF, 0xD9}, uploaded[len(uploaded)-2:], "jpeg end of image")
	})

	t.Run("keeps existing", func(t *testing.T) {
		blobs := mocks.NewBlobStore(t)
		blobs.On("Exists", ctx, model.DefaultImageKey).Return(true, nil)

		m := NewMedia(blobs, 0, "/media/", testutil.MakeNoopLogger())
		require.NoError(t, m.EnsureDefaultImage(ctx))
		blobs.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("storage down", func(t *testing.T) {
		blobs := mocks.NewBlobStore(t)
		blobs.On("Exists", ctx, model.DefaultImageKey).Return(false, errors.New("connection refused"))

		m := NewMedia(blobs, 0, "/media/", testutil.MakeNoopLogger())
		assert.Error(t, m.EnsureDefaultImage(ctx))
	})

	t.Run("served as jpeg", func(t *testing.T) {
		blobs := mocks.NewBlobStore(t)
		blobs.On("Download", ctx, model.DefaultImageKey).Return(io.NopCloser(bytes.NewReader(defaultImage)), nil)

		m := NewMedia(blobs, 0, "/media/", testutil.MakeNoopLogger())
		rc, contentType, err := m.Open(ctx, model.MediaImage, path.Base(model.DefaultImageKey))
		require.NoError(t, err)
		defer rc.Close()
		assert.Equal(t, "image/jpeg", contentType)
	})
}
