package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	apictx "github.com/dtroode/listenloud-server/internal/api/http/context"
	"github.com/dtroode/listenloud-server/internal/mocks"
	"github.com/dtroode/listenloud-server/internal/model"
	"github.com/dtroode/listenloud-server/internal/testutil"
)

func TestTag(t *testing.T) {
	cm := apictx.NewManager()
	trackID := uuid.New()

	t.Run("list", func(t *testing.T) {
		svc := mocks.NewTagService(t)
		svc.On("List", mock.Anything).Return([]model.Tag{{ID: 1, Name: "Rock"}, {ID: 2, Name: "Jazz"}}, nil)

		rec := httptest.NewRecorder()
		NewTag(svc, cm, testutil.MakeNoopLogger()).List(rec, httptest.NewRequest(http.MethodGet, "/api/v1/tags", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `[{"id":1,"name":"Rock"},{"id":2,"name":"Jazz"}]`, rec.Body.String())
	})

	t.Run("for missing track", func(t *testing.T) {
		svc := mocks.NewTagService(t)
		svc.On("ForTrack", mock.Anything, trackID).Return(nil, model.ErrNotFound)

		rec := httptest.NewRecorder()
		req := withParams(httptest.NewRequest(http.MethodGet, "/", nil), map[string]string{"id": trackID.String()})
		NewTag(svc, cm, testutil.MakeNoopLogger()).ForTrack(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "NOT_FOUND", decodeError(t, rec).Code)
	})

	t.Run("clear", func(t *testing.T) {
		svc := mocks.NewTagService(t)
		svc.On("ClearTrack", mock.Anything, testActor, trackID).Return(nil)

		rec := httptest.NewRecorder()
		NewTag(svc, cm, testutil.MakeNoopLogger()).ClearTrack(rec,
			authed(cm, httptest.NewRequest(http.MethodDelete, "/", nil), map[string]string{"id": trackID.String()}))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "Success: Tags has been removed!", rec.Body.String())
	})

	t.Run("clear forbidden", func(t *testing.T) {
		svc := mocks.NewTagService(t)
		svc.On("ClearTrack", mock.Anything, testActor, trackID).Return(model.ErrForbidden)

		rec := httptest.NewRecorder()
		NewTag(svc, cm, testutil.MakeNoopLogger()).ClearTrack(rec,
			authed(cm, httptest.NewRequest(http.MethodDelete, "/", nil), map[string]string{"id": trackID.String()}))

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}
