package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Paciente holds the demographic and anthropometric record of a patient.
// Sexo: "M" | "F"
type Paciente struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre          string    `gorm:"not null"`
	ApellidoPaterno string    `gorm:"index;not null"`
	ApellidoMaterno string    `gorm:"not null"`
	FechaNacimiento time.Time `gorm:"type:date;not null"`
	Sexo            string    `gorm:"type:varchar(1);not null"`
	// Altura in metres; IMC derivation is skipped when zero
	Altura decimal.Decimal `gorm:"type:decimal(4,2);not null"`
	// Peso is the current weight in kg, updated on every consultation
	Peso              decimal.Decimal `gorm:"type:decimal(5,2);not null"`
	ActividadAerobica bool            `gorm:"not null;default:false"`
	Activo            bool            `gorm:"not null;default:true"`
	CreatedAt         time.Time
	UpdatedAt         time.Time

	Consultas []Consulta `gorm:"foreignKey:PacienteID;constraint:OnDelete:CASCADE"`
}
