package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestPuede(t *testing.T) {
	casos := []struct {
		rol     string
		accion  string
		recurso string
		want    bool
	}{
		{"nutricionista", "crear", "pacientes", true},
		{"nutricionista", "eliminar", "pacientes", true},
		{"nutricionista", "administrar", "usuarios", true},
		{"asistente", "ver", "pacientes", true},
		{"asistente", "crear", "consultas", true},
		{"asistente", "crear", "pacientes", false},
		{"asistente", "eliminar", "pacientes", false},
		{"asistente", "administrar", "usuarios", false},
		{"desconocido", "ver", "pacientes", false},
	}

	for _, c := range casos {
		assert.Equal(t, c.want, Puede(c.rol, c.accion, c.recurso),
			"%s %s:%s", c.rol, c.accion, c.recurso)
	}
}

func requestWithRol(t *testing.T, rol string, accion, recurso string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	r := gin.New()
	r.GET("/recurso", func(c *gin.Context) {
		if rol != "" {
			c.Set(ClaimsKey, &JWTClaims{Rol: rol})
		}
	}, RequirePermission(accion, recurso), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/recurso", nil)
	r.ServeHTTP(w, req)
	return w
}

func TestRequirePermission(t *testing.T) {
	w := requestWithRol(t, "nutricionista", "eliminar", "pacientes")
	assert.Equal(t, http.StatusOK, w.Code)

	w = requestWithRol(t, "asistente", "eliminar", "pacientes")
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = requestWithRol(t, "asistente", "crear", "consultas")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequirePermissionSinClaims(t *testing.T) {
	w := requestWithRol(t, "", "ver", "pacientes")
	assert.Equal(t, http.StatusForbidden, w.Code)
}
