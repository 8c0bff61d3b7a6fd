package middleware

import (
	"net/http"

	"github.com/MikeCanto/Consultorio-Nutricionista/internal/apierror"

	"github.com/gin-gonic/gin"
)

// Capability table: one place declares what each role may do, instead of
// per-handler role checks. Key format: "accion:recurso".
var permisos = map[string]map[string]bool{
	"nutricionista": {
		"ver:pacientes":        true,
		"crear:pacientes":      true,
		"editar:pacientes":     true,
		"eliminar:pacientes":   true,
		"ver:consultas":        true,
		"crear:consultas":      true,
		"administrar:usuarios": true,
	},
	"asistente": {
		"ver:pacientes":    true,
		"editar:pacientes": true,
		"ver:consultas":    true,
		"crear:consultas":  true,
	},
}

// Puede answers whether the role holds the capability (accion, recurso).
func Puede(rol, accion, recurso string) bool {
	return permisos[rol][accion+":"+recurso]
}

// RequirePermission rejects requests whose JWT role lacks the capability.
// Must run after JWTAuth in the chain.
func RequirePermission(accion, recurso string) gin.HandlerFunc {
	return func(c *gin.Context) {
		v, exists := c.Get(ClaimsKey)
		claims, ok := v.(*JWTClaims)
		if !exists || !ok || !Puede(claims.Rol, accion, recurso) {
			c.AbortWithStatusJSON(http.StatusForbidden, apierror.New("Permisos insuficientes"))
			return
		}
		c.Next()
	}
}
