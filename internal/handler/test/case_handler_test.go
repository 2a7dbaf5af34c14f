package test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"caseFilesCPT/internal/models"
)

func withUser(req *http.Request, userID string) *http.Request {
	ctx := context.WithValue(req.Context(), "userID", userID)
	return req.WithContext(ctx)
}

func TestGetCase_NotFound(t *testing.T) {
	mockCatalog := new(MockCatalogService)
	handler := createTestHandler()
	handler.CatalogService = mockCatalog

	mockCatalog.On("GetCase", mock.Anything, "no-such-case").Return(nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/cases/no-such-case", nil)
	req = mux.SetURLVars(req, map[string]string{"id": "no-such-case"})
	rr := httptest.NewRecorder()

	handler.GetCase(rr, req)

	assertJSONError(t, rr, http.StatusNotFound, "Дело не найдено")
}

func TestGetMedia_NoAccess(t *testing.T) {
	mockAccess := new(MockAccessService)
	mockMedia := new(MockMediaService)
	handler := createTestHandler()
	handler.AccessService = mockAccess
	handler.MediaService = mockMedia

	mockAccess.On("HasAccess", mock.Anything, "case-1", "user-1").Return(false, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/cases/case-1/media", nil)
	req = mux.SetURLVars(req, map[string]string{"id": "case-1"})
	req = withUser(req, "user-1")
	rr := httptest.NewRecorder()

	handler.GetMedia(rr, req)

	assert.Equal(t, http.StatusForbidden, rr.Code)

	// без купленного доступа улики даже не запрашиваются
	mockMedia.AssertNotCalled(t, "GetMedia", mock.Anything, mock.Anything)
}

func TestGetMedia_WithAccess(t *testing.T) {
	mockAccess := new(MockAccessService)
	mockMedia := new(MockMediaService)
	handler := createTestHandler()
	handler.AccessService = mockAccess
	handler.MediaService = mockMedia

	mockAccess.On("HasAccess", mock.Anything, "case-1", "user-1").Return(true, nil)
	mockMedia.On("GetMedia", mock.Anything, "case-1").Return([]models.MediaItem{
		{CaseMedia: models.CaseMedia{MediaID: "m-1", MediaType: "image"}, SignedURL: "https://signed"},
		{CaseMedia: models.CaseMedia{MediaID: "m-2", MediaType: "document"}},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/cases/case-1/media", nil)
	req = mux.SetURLVars(req, map[string]string{"id": "case-1"})
	req = withUser(req, "user-1")
	rr := httptest.NewRecorder()

	handler.GetMedia(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var items []map[string]interface{}
	err := json.Unmarshal(rr.Body.Bytes(), &items)
	assert.NoError(t, err)
	assert.Len(t, items, 2)

	mockAccess.AssertExpectations(t)
	mockMedia.AssertExpectations(t)
}

func TestGetMedia_Unauthenticated(t *testing.T) {
	handler := createTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/api/cases/case-1/media", nil)
	req = mux.SetURLVars(req, map[string]string{"id": "case-1"})
	rr := httptest.NewRecorder()

	handler.GetMedia(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestCheckAccess(t *testing.T) {
	mockAccess := new(MockAccessService)
	handler := createTestHandler()
	handler.AccessService = mockAccess

	mockAccess.On("HasAccess", mock.Anything, "case-1", "user-1").Return(true, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/cases/case-1/access", nil)
	req = mux.SetURLVars(req, map[string]string{"id": "case-1"})
	req = withUser(req, "user-1")
	rr := httptest.NewRecorder()

	handler.CheckAccess(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var response map[string]interface{}
	err := json.Unmarshal(rr.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, true, response["hasAccess"])
}
