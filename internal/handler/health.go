package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// estadoSalud is the /health payload. Disponible stays true only while both
// backing stores answer a ping within the timeout.
type estadoSalud struct {
	Servicio   string `json:"servicio"`
	Disponible bool   `json:"disponible"`
	Postgres   string `json:"postgres"`
	Redis      string `json:"redis"`
}

// Health reports whether the service can reach postgres and redis.
func Health(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		estado := estadoSalud{
			Servicio:   "consultorio-nutricionista",
			Disponible: true,
			Postgres:   "ok",
			Redis:      "ok",
		}

		if sqlDB, err := db.DB(); err != nil || sqlDB.PingContext(ctx) != nil {
			estado.Postgres = "sin conexion"
			estado.Disponible = false
		}
		if rdb.Ping(ctx).Err() != nil {
			estado.Redis = "sin conexion"
			estado.Disponible = false
		}

		codigo := http.StatusOK
		if !estado.Disponible {
			codigo = http.StatusServiceUnavailable
		}
		c.JSON(codigo, estado)
	}
}
