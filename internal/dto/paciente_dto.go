package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearPacienteRequest struct {
	Nombre          string `json:"nombre"           validate:"required,min=1,max=50"`
	ApellidoPaterno string `json:"apellido_paterno" validate:"required,min=1,max=50"`
	ApellidoMaterno string `json:"apellido_materno" validate:"required,min=1,max=50"`
	// FechaNacimiento in yyyy-mm-dd
	FechaNacimiento   string          `json:"fecha_nacimiento"   validate:"required,datetime=2006-01-02"`
	Sexo              string          `json:"sexo"               validate:"required,oneof=M F"`
	Altura            decimal.Decimal `json:"altura"             validate:"gt=0"`
	Peso              decimal.Decimal `json:"peso"               validate:"gt=0"`
	ActividadAerobica bool            `json:"actividad_aerobica"`
}

type ActualizarPacienteRequest struct {
	Nombre            *string          `json:"nombre"             validate:"omitempty,min=1,max=50"`
	ApellidoPaterno   *string          `json:"apellido_paterno"   validate:"omitempty,min=1,max=50"`
	ApellidoMaterno   *string          `json:"apellido_materno"   validate:"omitempty,min=1,max=50"`
	FechaNacimiento   *string          `json:"fecha_nacimiento"   validate:"omitempty,datetime=2006-01-02"`
	Sexo              *string          `json:"sexo"               validate:"omitempty,oneof=M F"`
	Altura            *decimal.Decimal `json:"altura"             validate:"omitempty,gt=0"`
	Peso              *decimal.Decimal `json:"peso"               validate:"omitempty,gt=0"`
	ActividadAerobica *bool            `json:"actividad_aerobica"`
	Activo            *bool            `json:"activo"`
}

// ─── Filter / Pagination ─────────────────────────────────────────────────────

type PacienteFilter struct {
	Apellido string `form:"apellido"`
	// IncluirInactivos exposes soft-deleted patients; default hides them
	IncluirInactivos bool `form:"incluir_inactivos"`
	Page             int  `form:"page,default=1"  validate:"min=1"`
	Limit            int  `form:"limit,default=5" validate:"min=1,max=100"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type PacienteResponse struct {
	ID                string          `json:"id"`
	Nombre            string          `json:"nombre"`
	ApellidoPaterno   string          `json:"apellido_paterno"`
	ApellidoMaterno   string          `json:"apellido_materno"`
	FechaNacimiento   string          `json:"fecha_nacimiento"`
	Sexo              string          `json:"sexo"`
	Altura            decimal.Decimal `json:"altura"`
	Peso              decimal.Decimal `json:"peso"`
	ActividadAerobica bool            `json:"actividad_aerobica"`
	Activo            bool            `json:"activo"`
}

type PacienteListResponse struct {
	Pacientes []PacienteResponse `json:"pacientes"`
	Total     int64              `json:"total"`
	Page      int                `json:"page"`
	Limit     int                `json:"limit"`
}

// PacientePublicoResponse carries only the fields shown on the public
// lookup page — no demographic detail beyond the name.
type PacientePublicoResponse struct {
	ID              string          `json:"id"`
	Nombre          string          `json:"nombre"`
	ApellidoPaterno string          `json:"apellido_paterno"`
	Peso            decimal.Decimal `json:"peso"`
	Activo          bool            `json:"activo"`
}
