package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MikeCanto/Consultorio-Nutricionista/internal/dto"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bindPacienteFilter(t *testing.T, query string) (*httptest.ResponseRecorder, *dto.PacienteFilter, bool) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	var filter dto.PacienteFilter
	var ok bool
	w := httptest.NewRecorder()
	r := gin.New()
	r.GET("/pacientes", func(c *gin.Context) {
		if ok = bindQueryAndValidate(c, &filter); ok {
			c.Status(http.StatusOK)
		}
	})
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/pacientes"+query, nil))
	return w, &filter, ok
}

func TestBindQueryAplicaDefaults(t *testing.T) {
	w, filter, ok := bindPacienteFilter(t, "")
	require.True(t, ok)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, filter.Page)
	assert.Equal(t, 5, filter.Limit)
}

func TestBindQueryRechazaLimiteCero(t *testing.T) {
	// ?limit=0 must fail validation, never return silent empty pages
	w, _, ok := bindPacienteFilter(t, "?limit=0")
	assert.False(t, ok)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestBindQueryRechazaPaginaCero(t *testing.T) {
	// ?page=0 would produce a negative offset in the repository
	w, _, ok := bindPacienteFilter(t, "?page=0")
	assert.False(t, ok)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestBindQueryRechazaLimiteExcesivo(t *testing.T) {
	w, _, ok := bindPacienteFilter(t, "?limit=500")
	assert.False(t, ok)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}
