package service

import (
	"context"
	"errors"
	"time"

	"github.com/MikeCanto/Consultorio-Nutricionista/internal/dto"
	"github.com/MikeCanto/Consultorio-Nutricionista/internal/model"
	"github.com/MikeCanto/Consultorio-Nutricionista/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// PacientePublicoCacheKey is shared with the public lookup handler so writes
// here can evict what it caches.
func PacientePublicoCacheKey(id uuid.UUID) string {
	return "paciente_publico:" + id.String()
}

type PacienteService interface {
	Crear(ctx context.Context, req dto.CrearPacienteRequest) (*dto.PacienteResponse, error)
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.PacienteResponse, error)
	ObtenerPublico(ctx context.Context, id uuid.UUID) (*dto.PacientePublicoResponse, error)
	Listar(ctx context.Context, filter dto.PacienteFilter) (*dto.PacienteListResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarPacienteRequest) (*dto.PacienteResponse, error)
	Desactivar(ctx context.Context, id uuid.UUID) error
	Reactivar(ctx context.Context, id uuid.UUID) error
	// Eliminar hard-deletes the record; all consultations go with it (cascade)
	Eliminar(ctx context.Context, id uuid.UUID) error
}

type pacienteService struct {
	repo repository.PacienteRepository
	rdb  *redis.Client // nil in unit tests; cache invalidation is best-effort
}

func NewPacienteService(repo repository.PacienteRepository, rdb *redis.Client) PacienteService {
	return &pacienteService{repo: repo, rdb: rdb}
}

func (s *pacienteService) invalidarCachePublico(ctx context.Context, id uuid.UUID) {
	if s.rdb == nil {
		return
	}
	_ = s.rdb.Del(ctx, PacientePublicoCacheKey(id)).Err()
}

const fechaNacimientoLayout = "2006-01-02"

func (s *pacienteService) Crear(ctx context.Context, req dto.CrearPacienteRequest) (*dto.PacienteResponse, error) {
	fechaNacimiento, err := time.Parse(fechaNacimientoLayout, req.FechaNacimiento)
	if err != nil {
		return nil, err
	}
	paciente := &model.Paciente{
		Nombre:            req.Nombre,
		ApellidoPaterno:   req.ApellidoPaterno,
		ApellidoMaterno:   req.ApellidoMaterno,
		FechaNacimiento:   fechaNacimiento,
		Sexo:              req.Sexo,
		Altura:            req.Altura,
		Peso:              req.Peso,
		ActividadAerobica: req.ActividadAerobica,
		Activo:            true,
	}
	if err := s.repo.Create(ctx, paciente); err != nil {
		return nil, err
	}
	return pacienteToResponse(paciente), nil
}

func (s *pacienteService) ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.PacienteResponse, error) {
	paciente, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPacienteNoEncontrado
		}
		return nil, err
	}
	return pacienteToResponse(paciente), nil
}

func (s *pacienteService) ObtenerPublico(ctx context.Context, id uuid.UUID) (*dto.PacientePublicoResponse, error) {
	paciente, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPacienteNoEncontrado
		}
		return nil, err
	}
	return &dto.PacientePublicoResponse{
		ID:              paciente.ID.String(),
		Nombre:          paciente.Nombre,
		ApellidoPaterno: paciente.ApellidoPaterno,
		Peso:            paciente.Peso,
		Activo:          paciente.Activo,
	}, nil
}

func (s *pacienteService) Listar(ctx context.Context, filter dto.PacienteFilter) (*dto.PacienteListResponse, error) {
	pacientes, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	resp := &dto.PacienteListResponse{
		Pacientes: make([]dto.PacienteResponse, len(pacientes)),
		Total:     total,
		Page:      filter.Page,
		Limit:     filter.Limit,
	}
	for i := range pacientes {
		resp.Pacientes[i] = *pacienteToResponse(&pacientes[i])
	}
	return resp, nil
}

func (s *pacienteService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarPacienteRequest) (*dto.PacienteResponse, error) {
	paciente, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPacienteNoEncontrado
		}
		return nil, err
	}
	if req.Nombre != nil {
		paciente.Nombre = *req.Nombre
	}
	if req.ApellidoPaterno != nil {
		paciente.ApellidoPaterno = *req.ApellidoPaterno
	}
	if req.ApellidoMaterno != nil {
		paciente.ApellidoMaterno = *req.ApellidoMaterno
	}
	if req.FechaNacimiento != nil {
		fechaNacimiento, err := time.Parse(fechaNacimientoLayout, *req.FechaNacimiento)
		if err != nil {
			return nil, err
		}
		paciente.FechaNacimiento = fechaNacimiento
	}
	if req.Sexo != nil {
		paciente.Sexo = *req.Sexo
	}
	if req.Altura != nil {
		paciente.Altura = *req.Altura
	}
	if req.Peso != nil {
		paciente.Peso = *req.Peso
	}
	if req.ActividadAerobica != nil {
		paciente.ActividadAerobica = *req.ActividadAerobica
	}
	if req.Activo != nil {
		paciente.Activo = *req.Activo
	}
	if err := s.repo.Update(ctx, nil, paciente); err != nil {
		return nil, err
	}
	s.invalidarCachePublico(ctx, paciente.ID)
	return pacienteToResponse(paciente), nil
}

func (s *pacienteService) Desactivar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPacienteNoEncontrado
		}
		return err
	}
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		return err
	}
	s.invalidarCachePublico(ctx, id)
	return nil
}

func (s *pacienteService) Reactivar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPacienteNoEncontrado
		}
		return err
	}
	if err := s.repo.Reactivar(ctx, id); err != nil {
		return err
	}
	s.invalidarCachePublico(ctx, id)
	return nil
}

func (s *pacienteService) Eliminar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPacienteNoEncontrado
		}
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidarCachePublico(ctx, id)
	return nil
}

func pacienteToResponse(p *model.Paciente) *dto.PacienteResponse {
	return &dto.PacienteResponse{
		ID:                p.ID.String(),
		Nombre:            p.Nombre,
		ApellidoPaterno:   p.ApellidoPaterno,
		ApellidoMaterno:   p.ApellidoMaterno,
		FechaNacimiento:   p.FechaNacimiento.Format(fechaNacimientoLayout),
		Sexo:              p.Sexo,
		Altura:            p.Altura,
		Peso:              p.Peso,
		ActividadAerobica: p.ActividadAerobica,
		Activo:            p.Activo,
	}
}
