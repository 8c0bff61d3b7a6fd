package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Consulta is an entry in the per-patient weigh-in ledger.
// Rows are created once and never edited afterwards, except for the single
// IMC write-back that follows creation. Deletion happens only through the
// cascade when the owning Paciente is hard-deleted.
type Consulta struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PacienteID uuid.UUID `gorm:"type:uuid;index;not null"`
	// FechaConsulta is assigned at creation time and immutable thereafter
	FechaConsulta time.Time       `gorm:"index;not null"`
	Peso          decimal.Decimal `gorm:"type:decimal(5,2);not null"`
	Observaciones string
	// IMC is derived from (Peso, Paciente.Altura) — never user-supplied.
	// 0 means "not computed" (patient had no height on record).
	IMC decimal.Decimal `gorm:"column:imc;type:decimal(5,2);not null;default:0"`
	// Ordinal is assigned by the database sequence in insertion order and
	// breaks ties between rows sharing the same fecha_consulta. Timestamps
	// cannot do this: two inserts can land on the same microsecond.
	Ordinal   int64 `gorm:"type:bigserial;uniqueIndex;->"`
	CreatedAt time.Time

	Paciente *Paciente `gorm:"foreignKey:PacienteID"`
}
