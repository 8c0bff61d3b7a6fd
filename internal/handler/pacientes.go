package handler

import (
	"errors"
	"net/http"

	"github.com/MikeCanto/Consultorio-Nutricionista/internal/apierror"
	"github.com/MikeCanto/Consultorio-Nutricionista/internal/dto"
	"github.com/MikeCanto/Consultorio-Nutricionista/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type PacientesHandler struct{ svc service.PacienteService }

func NewPacientesHandler(svc service.PacienteService) *PacientesHandler {
	return &PacientesHandler{svc: svc}
}

// Crear godoc
// @Summary      Registrar un nuevo paciente
// @Tags         pacientes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CrearPacienteRequest true "Datos del paciente"
// @Success      201  {object} dto.PacienteResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/pacientes [post]
func (h *PacientesHandler) Crear(c *gin.Context) {
	var req dto.CrearPacienteRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Crear(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Listar godoc
// @Summary      Listar pacientes activos
// @Description  Lista paginada ordenada por apellido paterno. Incluye inactivos solo bajo demanda.
// @Tags         pacientes
// @Produce      json
// @Security     BearerAuth
// @Param        apellido          query string false "Prefijo de apellido paterno"
// @Param        incluir_inactivos query bool   false "Incluir pacientes desactivados"
// @Param        page              query int    false "Página (default 1)"
// @Param        limit             query int    false "Registros por página (default 5)"
// @Success      200 {object} dto.PacienteListResponse
// @Router       /v1/pacientes [get]
func (h *PacientesHandler) Listar(c *gin.Context) {
	var filter dto.PacienteFilter
	if !bindQueryAndValidate(c, &filter) {
		return
	}
	resp, err := h.svc.Listar(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar pacientes"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PacientesHandler) ObtenerPorID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	resp, err := h.svc.ObtenerPorID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrPacienteNoEncontrado) {
			c.JSON(http.StatusNotFound, apierror.New(err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, apierror.New("Error al consultar el paciente"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PacientesHandler) Actualizar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	var req dto.ActualizarPacienteRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Actualizar(c.Request.Context(), id, req)
	if err != nil {
		if errors.Is(err, service.ErrPacienteNoEncontrado) {
			c.JSON(http.StatusNotFound, apierror.New(err.Error()))
			return
		}
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PacientesHandler) Desactivar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	if err := h.svc.Desactivar(c.Request.Context(), id); err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, service.ErrPacienteNoEncontrado) {
			status = http.StatusNotFound
		}
		c.JSON(status, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *PacientesHandler) Reactivar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	if err := h.svc.Reactivar(c.Request.Context(), id); err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, service.ErrPacienteNoEncontrado) {
			status = http.StatusNotFound
		}
		c.JSON(status, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}

// Eliminar godoc
// @Summary      Eliminar paciente definitivamente
// @Description  Borrado fisico. Todas las consultas del paciente se eliminan en cascada.
// @Tags         pacientes
// @Security     BearerAuth
// @Param        id path string true "UUID del paciente"
// @Success      204
// @Failure      404 {object} apierror.APIError
// @Router       /v1/pacientes/{id} [delete]
func (h *PacientesHandler) Eliminar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	if err := h.svc.Eliminar(c.Request.Context(), id); err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, service.ErrPacienteNoEncontrado) {
			status = http.StatusNotFound
		}
		c.JSON(status, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}
