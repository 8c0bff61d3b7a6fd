package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearConsultaRequest struct {
	PacienteID    string          `json:"paciente_id"   validate:"required,uuid"`
	Peso          decimal.Decimal `json:"peso"          validate:"gt=0"`
	Observaciones string          `json:"observaciones" validate:"max=2000"`
}

// ─── Filter / Pagination ─────────────────────────────────────────────────────

type ConsultaFilter struct {
	Page  int `form:"page,default=1"   validate:"min=1"`
	Limit int `form:"limit,default=20" validate:"min=1,max=100"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ConsultaResponse struct {
	ID            string          `json:"id"`
	PacienteID    string          `json:"paciente_id"`
	FechaConsulta string          `json:"fecha_consulta"`
	Peso          decimal.Decimal `json:"peso"`
	Observaciones string          `json:"observaciones"`
	// IMC is null when the value could not be derived (patient without height)
	IMC *decimal.Decimal `json:"imc"`
}

type ConsultaListResponse struct {
	Consultas []ConsultaResponse `json:"consultas"`
	Total     int64              `json:"total"`
	Page      int                `json:"page"`
	Limit     int                `json:"limit"`
}

// ProgresoResponse compares the two most recent derived IMC values.
// Delta is only present when both ends of the comparison exist.
type ProgresoResponse struct {
	PacienteID  string           `json:"paciente_id"`
	IMCActual   *decimal.Decimal `json:"imc_actual"`
	IMCAnterior *decimal.Decimal `json:"imc_anterior"`
	Delta       *decimal.Decimal `json:"delta"`
}
