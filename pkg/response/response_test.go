package response_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/storefront/pkg/orm"
	"github.com/shashiranjanraj/storefront/pkg/response"
	"github.com/shashiranjanraj/storefront/pkg/validate"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestValidationError(t *testing.T) {
	rec := httptest.NewRecorder()
	response.ValidationError(rec, validate.Errors{"price": {"A valid number is required."}})

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, map[string]any{"price": []any{"A valid number is required."}}, body["errors"])
}

func TestNotFoundOmitsEmptyMembers(t *testing.T) {
	rec := httptest.NewRecorder()
	response.NotFound(rec)

	assert.Equal(t, map[string]any{"status": float64(404), "message": "Not found."}, decode(t, rec))
}

func TestPaginated(t *testing.T) {
	rec := httptest.NewRecorder()
	response.Paginated(rec, []int{1, 2}, orm.NewPagination(1, 2, 3))

	data := decode(t, rec)["data"].(map[string]any)
	assert.Equal(t, float64(2), data["pagination"].(map[string]any)["num_pages"])
}

func TestNoContentHasNoBody(t *testing.T) {
	rec := httptest.NewRecorder()
	response.NoContent(rec)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Zero(t, rec.Body.Len())
}
