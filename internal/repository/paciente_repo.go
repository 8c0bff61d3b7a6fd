package repository

import (
	"context"

	"github.com/MikeCanto/Consultorio-Nutricionista/internal/dto"
	"github.com/MikeCanto/Consultorio-Nutricionista/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PacienteRepository interface {
	Create(ctx context.Context, p *model.Paciente) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Paciente, error)
	List(ctx context.Context, filter dto.PacienteFilter) ([]model.Paciente, int64, error)
	Update(ctx context.Context, tx *gorm.DB, p *model.Paciente) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
	Reactivar(ctx context.Context, id uuid.UUID) error
	// Delete removes the row; the consultas FK cascades at the DB level
	Delete(ctx context.Context, id uuid.UUID) error
	DB() *gorm.DB // exposes the DB for transaction creation in service layer
}

type pacienteRepo struct{ db *gorm.DB }

func NewPacienteRepository(db *gorm.DB) PacienteRepository { return &pacienteRepo{db: db} }

func (r *pacienteRepo) DB() *gorm.DB { return r.db }

func (r *pacienteRepo) Create(ctx context.Context, p *model.Paciente) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *pacienteRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Paciente, error) {
	var p model.Paciente
	err := r.db.WithContext(ctx).First(&p, id).Error
	return &p, err
}

func (r *pacienteRepo) List(ctx context.Context, filter dto.PacienteFilter) ([]model.Paciente, int64, error) {
	var pacientes []model.Paciente
	var total int64
	offset := (filter.Page - 1) * filter.Limit

	q := r.db.WithContext(ctx).Model(&model.Paciente{})
	if !filter.IncluirInactivos {
		q = q.Where("activo = true")
	}
	if filter.Apellido != "" {
		q = q.Where("apellido_paterno ILIKE ?", filter.Apellido+"%")
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Order("apellido_paterno ASC, apellido_materno ASC").
		Offset(offset).Limit(filter.Limit).
		Find(&pacientes).Error
	return pacientes, total, err
}

// Update runs inside tx when provided so that the consultation write path can
// bundle the patient-weight update with the consultation insert.
func (r *pacienteRepo) Update(ctx context.Context, tx *gorm.DB, p *model.Paciente) error {
	db := r.db
	if tx != nil {
		db = tx
	}
	return db.WithContext(ctx).Save(p).Error
}

func (r *pacienteRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Paciente{}).Where("id = ?", id).Update("activo", false).Error
}

func (r *pacienteRepo) Reactivar(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Paciente{}).Where("id = ?", id).Update("activo", true).Error
}

func (r *pacienteRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Paciente{}, id).Error
}
