package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/MikeCanto/Consultorio-Nutricionista/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// Fixed-window request counters per client IP, kept in process memory; this
// service runs as a single node so no shared store is involved. Windows for
// IPs that stop sending traffic are swept by a background ticker.

type ventana struct {
	cuenta int
	cierre time.Time
}

type ipLimiter struct {
	mu       sync.Mutex
	limite   int
	periodo  time.Duration
	mensaje  string
	ventanas map[string]*ventana
}

func newIPLimiter(limite int, periodo time.Duration, mensaje string) *ipLimiter {
	l := &ipLimiter{
		limite:   limite,
		periodo:  periodo,
		mensaje:  mensaje,
		ventanas: make(map[string]*ventana),
	}
	go l.barrerExpiradas()
	return l
}

// permitir counts the request against the IP's current window and reports
// whether it fits, along with when the window closes.
func (l *ipLimiter) permitir(ip string) (bool, time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	v, ok := l.ventanas[ip]
	if !ok || now.After(v.cierre) {
		v = &ventana{cierre: now.Add(l.periodo)}
		l.ventanas[ip] = v
	}
	v.cuenta++
	return v.cuenta <= l.limite, v.cierre
}

func (l *ipLimiter) barrerExpiradas() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		now := time.Now()
		l.mu.Lock()
		purgadas := 0
		for ip, v := range l.ventanas {
			if now.After(v.cierre) {
				delete(l.ventanas, ip)
				purgadas++
			}
		}
		l.mu.Unlock()
		if purgadas > 0 {
			log.Debug().Int("ventanas", purgadas).Msg("rate limiter: ventanas expiradas eliminadas")
		}
	}
}

func (l *ipLimiter) handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, cierre := l.permitir(c.ClientIP())
		if !ok {
			c.Header("Retry-After", cierre.Format(time.RFC1123))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apierror.New(l.mensaje))
			return
		}
		c.Next()
	}
}

var loginLimiter = newIPLimiter(10, time.Minute,
	"Demasiados intentos de login. Intente en 1 minuto.")

// LoginRateLimiter slows credential guessing on /auth/login:
// 10 attempts per minute per IP.
func LoginRateLimiter() gin.HandlerFunc {
	return loginLimiter.handler()
}

// RateLimiter caps total requests per IP across the whole API.
func RateLimiter(limit int, window time.Duration) gin.HandlerFunc {
	return newIPLimiter(limit, window,
		"Demasiadas solicitudes. Intente nuevamente en un momento.").handler()
}
