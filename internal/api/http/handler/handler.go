package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/dtroode/listenloud-server/internal/api/http/response"
	"github.com/dtroode/listenloud-server/internal/model"
)

const (
	multipartMemory = 32 << 20
	maxJSONBody     = 64 << 10
)

var validate = newValidator()

// newValidator adds maxbytes, a length limit counted in bytes rather than runes.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("maxbytes", func(fl validator.FieldLevel) bool {
		limit, err := strconv.Atoi(fl.Param())
		return err == nil && len(fl.Field().String()) <= limit
	})
	return v
}

// currentUser returns the authenticated user or writes a 401.
func currentUser(cm model.ContextManager, w http.ResponseWriter, r *http.Request) (model.User, bool) {
	user, ok := cm.GetUserFromContext(r.Context())
	if !ok {
		response.Error(w, http.StatusUnauthorized, "Full authentication is required to access this resource")
	}
	return user, ok
}

func pathID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: invalid %s", model.ErrInvalidArgument, name)
	}
	return id, nil
}

// limitBody caps the request body to max bytes.
func limitBody(w http.ResponseWriter, r *http.Request, max int64) {
	if max > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, max)
	}
}

// parseForm parses multipart and url-encoded bodies alike.
func parseForm(r *http.Request) error {
	err := r.ParseMultipartForm(multipartMemory)
	if errors.Is(err, http.ErrNotMultipart) {
		err = r.ParseForm()
	}
	if err == nil {
		return nil
	}

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return fmt.Errorf("%w: request body exceeds %d bytes", model.ErrFileTooLarge, tooLarge.Limit)
	}
	return fmt.Errorf("%w: malformed form: %v", model.ErrInvalidArgument, err)
}

// formValue returns a pointer to the named form value, or nil when absent.
func formValue(r *http.Request, key string) *string {
	values, ok := r.PostForm[key]
	if !ok || len(values) == 0 {
		return nil
	}
	v := values[0]
	return &v
}

// formList collects repeated and comma separated values of key.
// It returns nil when the key is absent.
func formList(r *http.Request, key string) []string {
	values, ok := r.PostForm[key]
	if !ok {
		return nil
	}
	list := make([]string, 0, len(values))
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				list = append(list, part)
			}
		}
	}
	return list
}

// formFile returns the uploaded file under field, or nil when none was sent.
func formFile(r *http.Request, field string) (*model.File, error) {
	if r.MultipartForm == nil {
		return nil, nil
	}
	file, header, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", model.ErrInvalidArgument, field, err)
	}
	return &model.File{
		Name:        header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Reader:      file,
	}, nil
}

func closeFile(f *model.File) {
	if f == nil {
		return
	}
	if c, ok := f.Reader.(io.Closer); ok {
		_ = c.Close()
	}
}

func isJSON(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mediaType == "application/json"
}

func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return fmt.Errorf("%w: request body exceeds %d bytes", model.ErrFileTooLarge, tooLarge.Limit)
		}
		return fmt.Errorf("%w: malformed JSON body: %v", model.ErrInvalidArgument, err)
	}
	return nil
}

// decodeNames reads a JSON array of non-empty names.
func decodeNames(r *http.Request) ([]string, error) {
	var names []string
	if err := decodeJSON(r, &names); err != nil {
		return nil, err
	}
	if err := validate.Var(names, "dive,required"); err != nil {
		return nil, err
	}
	return names, nil
}

func bearerToken(r *http.Request) string {
	const prefix = "Bearer "
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return header[len(prefix):]
}
