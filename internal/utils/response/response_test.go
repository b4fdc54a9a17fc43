package response_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	appErrors "github.com/adityanarayanofficial/marketplace-platform/internal/errors"
	"github.com/adityanarayanofficial/marketplace-platform/internal/utils/response"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var envelope map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))

	return envelope
}

func TestSuccess(t *testing.T) {

	rec := httptest.NewRecorder()

	response.Success(rec, http.StatusCreated, "Category created", map[string]string{"name": "Electronics"})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	envelope := decodeEnvelope(t, rec)
	assert.Equal(t, "Category created", envelope["message"])
	assert.Equal(t, float64(http.StatusCreated), envelope["status"])
	assert.Equal(t, map[string]any{"name": "Electronics"}, envelope["data"])
}

func TestSuccess_EmptyMessageIsNull(t *testing.T) {

	rec := httptest.NewRecorder()

	response.Success(rec, http.StatusOK, "", nil)

	envelope := decodeEnvelope(t, rec)
	assert.Nil(t, envelope["message"])
	assert.Nil(t, envelope["data"])
}

func TestError_AppError(t *testing.T) {

	rec := httptest.NewRecorder()

	response.Error(rec, appErrors.NotFoundError("Product not found"))

	assert.Equal(t, http.StatusNotFound, rec.Code)

	envelope := decodeEnvelope(t, rec)
	assert.Equal(t, "Product not found", envelope["message"])
	assert.Equal(t, float64(http.StatusNotFound), envelope["status"])
}

func TestError_UnexpectedErrorIsGeneric(t *testing.T) {

	rec := httptest.NewRecorder()

	response.Error(rec, errors.New("pq: connection refused"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	envelope := decodeEnvelope(t, rec)
	assert.Equal(t, "Something went wrong", envelope["message"])
	assert.NotContains(t, rec.Body.String(), "connection refused")
}

func TestError_DebugExposesDetail(t *testing.T) {

	response.SetDebug(true)
	defer response.SetDebug(false)

	rec := httptest.NewRecorder()

	response.Error(rec, errors.New("pq: connection refused"))

	envelope := decodeEnvelope(t, rec)
	assert.Contains(t, envelope["message"], "connection refused")
}
