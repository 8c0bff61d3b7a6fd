package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestIPLimiterVentanaFija(t *testing.T) {
	l := newIPLimiter(2, time.Minute, "limite alcanzado")

	ok, _ := l.permitir("10.0.0.1")
	assert.True(t, ok)
	ok, _ = l.permitir("10.0.0.1")
	assert.True(t, ok)
	ok, cierre := l.permitir("10.0.0.1")
	assert.False(t, ok)
	assert.True(t, cierre.After(time.Now()))

	// Each IP keeps its own window
	ok, _ = l.permitir("10.0.0.2")
	assert.True(t, ok)

	// An expired window resets the count
	l.mu.Lock()
	l.ventanas["10.0.0.1"].cierre = time.Now().Add(-time.Second)
	l.mu.Unlock()
	ok, _ = l.permitir("10.0.0.1")
	assert.True(t, ok)
}

func TestRateLimiterDevuelve429(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/recurso", RateLimiter(1, time.Minute), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/recurso", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/recurso", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
}
