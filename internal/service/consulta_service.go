package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MikeCanto/Consultorio-Nutricionista/internal/dto"
	"github.com/MikeCanto/Consultorio-Nutricionista/internal/model"
	"github.com/MikeCanto/Consultorio-Nutricionista/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ConsultaService interface {
	Crear(ctx context.Context, req dto.CrearConsultaRequest) (*dto.ConsultaResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (*dto.ConsultaResponse, error)
	ListarPorPaciente(ctx context.Context, pacienteID uuid.UUID, filter dto.ConsultaFilter) (*dto.ConsultaListResponse, error)
	Progreso(ctx context.Context, pacienteID uuid.UUID) (*dto.ProgresoResponse, error)
}

type consultaService struct {
	repo         repository.ConsultaRepository
	pacienteRepo repository.PacienteRepository
	rdb          *redis.Client // nil in unit tests; cache invalidation is best-effort
}

func NewConsultaService(repo repository.ConsultaRepository, pacienteRepo repository.PacienteRepository, rdb *redis.Client) ConsultaService {
	return &consultaService{repo: repo, pacienteRepo: pacienteRepo, rdb: rdb}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// ── Crear ─────────────────────────────────────────────────────────────────────
// Write path for a weigh-in. One transaction covers the whole sequence:
//   1. insert Consulta with fecha_consulta = now
//   2. derive IMC from (peso, paciente.altura) and write it back
//   3. update the patient's current weight to the recorded one
// The IMC derivation happens here — and only here — so it can never re-fire on
// a later update to the same row.

func (s *consultaService) Crear(ctx context.Context, req dto.CrearConsultaRequest) (*dto.ConsultaResponse, error) {
	pacienteID, err := uuid.Parse(req.PacienteID)
	if err != nil {
		return nil, fmt.Errorf("paciente_id inválido: %w", err)
	}

	paciente, err := s.pacienteRepo.FindByID(ctx, pacienteID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPacienteNoEncontrado
		}
		return nil, err
	}

	consulta := model.Consulta{
		PacienteID:    paciente.ID,
		FechaConsulta: time.Now(),
		Peso:          req.Peso,
		Observaciones: req.Observaciones,
		IMC:           decimal.Zero,
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.Create(ctx, tx, &consulta); err != nil {
			return err
		}

		// A missing height is a data-quality gap, never a reason to lose the
		// weigh-in: the row keeps its default IMC of 0.
		imc := calcularIMC(req.Peso, paciente.Altura)
		if imc.IsZero() {
			log.Debug().
				Str("paciente_id", paciente.ID.String()).
				Str("consulta_id", consulta.ID.String()).
				Msg("IMC no calculado: el paciente no tiene altura registrada")
		} else {
			if err := s.repo.SetIMC(ctx, tx, consulta.ID, imc); err != nil {
				return err
			}
			consulta.IMC = imc
		}

		paciente.Peso = req.Peso
		return s.pacienteRepo.Update(ctx, tx, paciente)
	})
	if txErr != nil {
		return nil, txErr
	}

	// The public lookup shows the current weight, which just changed
	if s.rdb != nil {
		_ = s.rdb.Del(ctx, PacientePublicoCacheKey(paciente.ID)).Err()
	}

	return consultaToResponse(&consulta), nil
}

// ── Obtener ───────────────────────────────────────────────────────────────────

func (s *consultaService) Obtener(ctx context.Context, id uuid.UUID) (*dto.ConsultaResponse, error) {
	consulta, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrConsultaNoEncontrada
		}
		return nil, err
	}
	return consultaToResponse(consulta), nil
}

// ── ListarPorPaciente ─────────────────────────────────────────────────────────

func (s *consultaService) ListarPorPaciente(ctx context.Context, pacienteID uuid.UUID, filter dto.ConsultaFilter) (*dto.ConsultaListResponse, error) {
	if _, err := s.pacienteRepo.FindByID(ctx, pacienteID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPacienteNoEncontrado
		}
		return nil, err
	}
	consultas, total, err := s.repo.ListByPaciente(ctx, pacienteID, filter)
	if err != nil {
		return nil, err
	}
	resp := &dto.ConsultaListResponse{
		Consultas: make([]dto.ConsultaResponse, len(consultas)),
		Total:     total,
		Page:      filter.Page,
		Limit:     filter.Limit,
	}
	for i := range consultas {
		resp.Consultas[i] = *consultaToResponse(&consultas[i])
	}
	return resp, nil
}

// ── Progreso ──────────────────────────────────────────────────────────────────
// latest = consultation with the greatest fecha_consulta; previous = the newest
// one strictly older than latest. An IMC of exactly 0 means "never derived" and
// propagates as null — a real IMC of zero is physically impossible.

func (s *consultaService) Progreso(ctx context.Context, pacienteID uuid.UUID) (*dto.ProgresoResponse, error) {
	if _, err := s.pacienteRepo.FindByID(ctx, pacienteID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPacienteNoEncontrado
		}
		return nil, err
	}

	resp := &dto.ProgresoResponse{PacienteID: pacienteID.String()}

	ultima, err := s.repo.FindUltima(ctx, pacienteID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return resp, nil // patient without consultations
		}
		return nil, err
	}
	if !ultima.IMC.IsZero() {
		imc := ultima.IMC
		resp.IMCActual = &imc
	}

	anterior, err := s.repo.FindAnteriorA(ctx, pacienteID, ultima.FechaConsulta)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return resp, nil
		}
		return nil, err
	}
	if !anterior.IMC.IsZero() {
		imc := anterior.IMC
		resp.IMCAnterior = &imc
	}

	if resp.IMCActual != nil && resp.IMCAnterior != nil {
		delta := resp.IMCActual.Sub(*resp.IMCAnterior)
		resp.Delta = &delta
	}
	return resp, nil
}

// ── Helpers ───────────────────────────────────────────────────────────────────

// calcularIMC returns peso / altura² rounded to 2 decimals, or zero when the
// height is not on record.
func calcularIMC(peso, altura decimal.Decimal) decimal.Decimal {
	if altura.IsZero() {
		return decimal.Zero
	}
	return peso.Div(altura.Mul(altura)).Round(2)
}

func consultaToResponse(c *model.Consulta) *dto.ConsultaResponse {
	resp := &dto.ConsultaResponse{
		ID:            c.ID.String(),
		PacienteID:    c.PacienteID.String(),
		FechaConsulta: c.FechaConsulta.Format(time.RFC3339),
		Peso:          c.Peso,
		Observaciones: c.Observaciones,
	}
	if !c.IMC.IsZero() {
		imc := c.IMC
		resp.IMC = &imc
	}
	return resp
}
