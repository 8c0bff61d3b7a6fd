package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/MikeCanto/Consultorio-Nutricionista/internal/apierror"
	"github.com/MikeCanto/Consultorio-Nutricionista/internal/dto"
	"github.com/MikeCanto/Consultorio-Nutricionista/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Short TTL: the public page tolerates slightly stale weight after a new
// consultation, and the entry expires on its own.
const pacientePublicoCacheTTL = 10 * time.Minute

// PacientePublicoHandler serves the public patient lookup page.
// No authentication required — read-only, limited fields.
type PacientePublicoHandler struct {
	svc service.PacienteService
	rdb *redis.Client
}

func NewPacientePublicoHandler(svc service.PacienteService, rdb *redis.Client) *PacientePublicoHandler {
	return &PacientePublicoHandler{svc: svc, rdb: rdb}
}

// Obtener godoc
// @Summary Consulta publica de paciente por ID (sin autenticacion)
// @Tags publico
// @Produce json
// @Param id path string true "UUID del paciente"
// @Success 200 {object} dto.PacientePublicoResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/publico/pacientes/{id} [get]
func (h *PacientePublicoHandler) Obtener(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	ctx := c.Request.Context()
	cacheKey := service.PacientePublicoCacheKey(id)

	// 1. Try Redis cache
	if cached, err := h.rdb.Get(ctx, cacheKey).Bytes(); err == nil {
		var resp dto.PacientePublicoResponse
		if jsonErr := json.Unmarshal(cached, &resp); jsonErr == nil {
			c.JSON(http.StatusOK, resp)
			return
		}
	}

	// 2. Cache miss — query DB
	resp, err := h.svc.ObtenerPublico(ctx, id)
	if err != nil {
		if errors.Is(err, service.ErrPacienteNoEncontrado) {
			c.JSON(http.StatusNotFound, apierror.New("No se encontró el paciente con ese ID"))
			return
		}
		c.JSON(http.StatusInternalServerError, apierror.New("Error al consultar el paciente"))
		return
	}

	// 3. Populate cache — best effort, ignore errors
	if b, jsonErr := json.Marshal(resp); jsonErr == nil {
		_ = h.rdb.Set(context.Background(), cacheKey, b, pacientePublicoCacheTTL).Err()
	}

	c.JSON(http.StatusOK, resp)
}
