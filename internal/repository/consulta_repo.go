package repository

import (
	"context"
	"time"

	"github.com/MikeCanto/Consultorio-Nutricionista/internal/dto"
	"github.com/MikeCanto/Consultorio-Nutricionista/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ConsultaRepository interface {
	Create(ctx context.Context, tx *gorm.DB, c *model.Consulta) error
	// SetIMC performs the single write-back of the derived value
	SetIMC(ctx context.Context, tx *gorm.DB, id uuid.UUID, imc decimal.Decimal) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Consulta, error)
	ListByPaciente(ctx context.Context, pacienteID uuid.UUID, filter dto.ConsultaFilter) ([]model.Consulta, int64, error)
	// FindUltima returns the consultation with the greatest fecha_consulta for
	// the patient; ties resolve toward the highest ordinal (latest insert).
	FindUltima(ctx context.Context, pacienteID uuid.UUID) (*model.Consulta, error)
	// FindAnteriorA returns the newest consultation strictly older than fecha.
	FindAnteriorA(ctx context.Context, pacienteID uuid.UUID, fecha time.Time) (*model.Consulta, error)
	DB() *gorm.DB
}

type consultaRepo struct{ db *gorm.DB }

func NewConsultaRepository(db *gorm.DB) ConsultaRepository { return &consultaRepo{db: db} }

func (r *consultaRepo) DB() *gorm.DB { return r.db }

func (r *consultaRepo) Create(ctx context.Context, tx *gorm.DB, c *model.Consulta) error {
	db := r.db
	if tx != nil {
		db = tx
	}
	return db.WithContext(ctx).Create(c).Error
}

func (r *consultaRepo) SetIMC(ctx context.Context, tx *gorm.DB, id uuid.UUID, imc decimal.Decimal) error {
	db := r.db
	if tx != nil {
		db = tx
	}
	return db.WithContext(ctx).Model(&model.Consulta{}).Where("id = ?", id).Update("imc", imc).Error
}

func (r *consultaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Consulta, error) {
	var c model.Consulta
	err := r.db.WithContext(ctx).Preload("Paciente").First(&c, id).Error
	return &c, err
}

func (r *consultaRepo) ListByPaciente(ctx context.Context, pacienteID uuid.UUID, filter dto.ConsultaFilter) ([]model.Consulta, int64, error) {
	var consultas []model.Consulta
	var total int64
	offset := (filter.Page - 1) * filter.Limit

	q := r.db.WithContext(ctx).Model(&model.Consulta{}).Where("paciente_id = ?", pacienteID)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Order("fecha_consulta DESC, ordinal DESC").
		Offset(offset).Limit(filter.Limit).
		Find(&consultas).Error
	return consultas, total, err
}

func (r *consultaRepo) FindUltima(ctx context.Context, pacienteID uuid.UUID) (*model.Consulta, error) {
	var c model.Consulta
	err := r.db.WithContext(ctx).
		Where("paciente_id = ?", pacienteID).
		Order("fecha_consulta DESC, ordinal DESC").
		First(&c).Error
	return &c, err
}

func (r *consultaRepo) FindAnteriorA(ctx context.Context, pacienteID uuid.UUID, fecha time.Time) (*model.Consulta, error) {
	var c model.Consulta
	err := r.db.WithContext(ctx).
		Where("paciente_id = ? AND fecha_consulta < ?", pacienteID, fecha).
		Order("fecha_consulta DESC, ordinal DESC").
		First(&c).Error
	return &c, err
}
