package service

import (
	"context"
	"errors"
	"testing"

	"github.com/MikeCanto/Consultorio-Nutricionista/internal/dto"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCrearPaciente(t *testing.T) {
	repo := newFakePacienteRepo(nil)
	svc := NewPacienteService(repo, nil)

	resp, err := svc.Crear(context.Background(), dto.CrearPacienteRequest{
		Nombre:            "Juan",
		ApellidoPaterno:   "Perez",
		ApellidoMaterno:   "Diaz",
		FechaNacimiento:   "1985-11-03",
		Sexo:              "M",
		Altura:            decimal.NewFromFloat(1.75),
		Peso:              decimal.NewFromFloat(82.3),
		ActividadAerobica: true,
	})

	require.NoError(t, err)
	assert.True(t, resp.Activo)
	assert.Equal(t, "1985-11-03", resp.FechaNacimiento)
	assert.Equal(t, "1.75", resp.Altura.String())
}

func TestCrearPacienteFechaInvalida(t *testing.T) {
	repo := newFakePacienteRepo(nil)
	svc := NewPacienteService(repo, nil)

	_, err := svc.Crear(context.Background(), dto.CrearPacienteRequest{
		Nombre:          "Juan",
		ApellidoPaterno: "Perez",
		ApellidoMaterno: "Diaz",
		FechaNacimiento: "03/11/1985",
		Sexo:            "M",
		Altura:          decimal.NewFromFloat(1.75),
		Peso:            decimal.NewFromFloat(82.3),
	})
	assert.Error(t, err)
}

func TestListarPacientesExcluyeInactivos(t *testing.T) {
	repo := newFakePacienteRepo(nil)
	svc := NewPacienteService(repo, nil)

	activo := seedPaciente(t, repo, 1.70, 70)
	inactivo := seedPaciente(t, repo, 1.60, 60)
	inactivo.ApellidoPaterno = "Aguilar"
	require.NoError(t, repo.SoftDelete(context.Background(), inactivo.ID))

	resp, err := svc.Listar(context.Background(), dto.PacienteFilter{Page: 1, Limit: 5})
	require.NoError(t, err)
	require.Len(t, resp.Pacientes, 1)
	assert.Equal(t, activo.ID.String(), resp.Pacientes[0].ID)
	assert.EqualValues(t, 1, resp.Total)

	// ... unless the listing explicitly asks for them
	resp, err = svc.Listar(context.Background(), dto.PacienteFilter{Page: 1, Limit: 5, IncluirInactivos: true})
	require.NoError(t, err)
	assert.Len(t, resp.Pacientes, 2)
	// Ordered by apellido paterno: Aguilar before Lopez
	assert.Equal(t, "Aguilar", resp.Pacientes[0].ApellidoPaterno)
}

func TestDesactivarYReactivarPaciente(t *testing.T) {
	repo := newFakePacienteRepo(nil)
	svc := NewPacienteService(repo, nil)

	p := seedPaciente(t, repo, 1.70, 70)

	require.NoError(t, svc.Desactivar(context.Background(), p.ID))
	assert.False(t, p.Activo)

	require.NoError(t, svc.Reactivar(context.Background(), p.ID))
	assert.True(t, p.Activo)
}

func TestActualizarPacienteParcial(t *testing.T) {
	repo := newFakePacienteRepo(nil)
	svc := NewPacienteService(repo, nil)

	p := seedPaciente(t, repo, 1.70, 70)
	nuevaAltura := decimal.NewFromFloat(1.72)

	resp, err := svc.Actualizar(context.Background(), p.ID, dto.ActualizarPacienteRequest{
		Altura: &nuevaAltura,
	})
	require.NoError(t, err)
	assert.Equal(t, "1.72", resp.Altura.String())
	// Untouched fields keep their values
	assert.Equal(t, "Maria", resp.Nombre)
	assert.Equal(t, "70", resp.Peso.String())
}

func TestEliminarPacienteCascada(t *testing.T) {
	consultaRepo := &fakeConsultaRepo{}
	repo := newFakePacienteRepo(consultaRepo)
	pacienteSvc := NewPacienteService(repo, nil)
	consultaSvc := NewConsultaService(consultaRepo, repo, nil)

	p := seedPaciente(t, repo, 1.70, 70)
	for i := 0; i < 3; i++ {
		_, err := consultaSvc.Crear(context.Background(), dto.CrearConsultaRequest{
			PacienteID: p.ID.String(),
			Peso:       decimal.NewFromFloat(70.5),
		})
		require.NoError(t, err)
	}
	require.Len(t, consultaRepo.consultas, 3)

	require.NoError(t, pacienteSvc.Eliminar(context.Background(), p.ID))

	// The patient's consultations go with it
	assert.Empty(t, consultaRepo.consultas)
	_, err := pacienteSvc.ObtenerPorID(context.Background(), p.ID)
	assert.ErrorIs(t, err, ErrPacienteNoEncontrado)
}

func TestDesactivarPacientePropagaErrorDeAlmacenamiento(t *testing.T) {
	repo := newFakePacienteRepo(nil)
	svc := NewPacienteService(repo, nil)

	fallo := errors.New("fallo de conexion con la base de datos")
	repo.findErr = fallo

	err := svc.Desactivar(context.Background(), uuid.New())
	assert.ErrorIs(t, err, fallo)
	assert.NotErrorIs(t, err, ErrPacienteNoEncontrado)
}

func TestEliminarPacienteInexistente(t *testing.T) {
	repo := newFakePacienteRepo(nil)
	svc := NewPacienteService(repo, nil)

	err := svc.Eliminar(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrPacienteNoEncontrado)
}

func TestObtenerPublicoCamposLimitados(t *testing.T) {
	repo := newFakePacienteRepo(nil)
	svc := NewPacienteService(repo, nil)

	p := seedPaciente(t, repo, 1.70, 70)

	resp, err := svc.ObtenerPublico(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Maria", resp.Nombre)
	assert.Equal(t, "Lopez", resp.ApellidoPaterno)
	assert.Equal(t, "70", resp.Peso.String())
}
