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

type ConsultasHandler struct{ svc service.ConsultaService }

func NewConsultasHandler(svc service.ConsultaService) *ConsultasHandler {
	return &ConsultasHandler{svc: svc}
}

// Crear godoc
// @Summary      Registrar una consulta (pesaje)
// @Description  Crea la consulta, deriva el IMC a partir de la altura del paciente y actualiza su peso actual, todo en una transaccion.
// @Tags         consultas
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CrearConsultaRequest true "Datos de la consulta"
// @Success      201  {object} dto.ConsultaResponse
// @Failure      404  {object} apierror.APIError
// @Router       /v1/consultas [post]
func (h *ConsultasHandler) Crear(c *gin.Context) {
	var req dto.CrearConsultaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Crear(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrPacienteNoEncontrado) {
			c.JSON(http.StatusNotFound, apierror.New(err.Error()))
			return
		}
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *ConsultasHandler) Obtener(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	resp, err := h.svc.Obtener(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrConsultaNoEncontrada) {
			c.JSON(http.StatusNotFound, apierror.New(err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, apierror.New("Error al consultar la consulta"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListarPorPaciente returns the patient's weigh-in history, newest first.
func (h *ConsultasHandler) ListarPorPaciente(c *gin.Context) {
	pacienteID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	var filter dto.ConsultaFilter
	if !bindQueryAndValidate(c, &filter) {
		return
	}
	resp, err := h.svc.ListarPorPaciente(c.Request.Context(), pacienteID, filter)
	if err != nil {
		if errors.Is(err, service.ErrPacienteNoEncontrado) {
			c.JSON(http.StatusNotFound, apierror.New(err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar consultas"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Progreso godoc
// @Summary      Progreso del paciente
// @Description  Compara el IMC de la ultima consulta contra el de la anterior.
// @Tags         consultas
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "UUID del paciente"
// @Success      200 {object} dto.ProgresoResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/pacientes/{id}/progreso [get]
func (h *ConsultasHandler) Progreso(c *gin.Context) {
	pacienteID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	resp, err := h.svc.Progreso(c.Request.Context(), pacienteID)
	if err != nil {
		if errors.Is(err, service.ErrPacienteNoEncontrado) {
			c.JSON(http.StatusNotFound, apierror.New(err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, apierror.New("Error al consultar progreso"))
		return
	}
	c.JSON(http.StatusOK, resp)
}
