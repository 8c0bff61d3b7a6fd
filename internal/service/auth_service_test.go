package service

import (
	"context"
	"errors"
	"testing"

	"github.com/MikeCanto/Consultorio-Nutricionista/internal/config"
	"github.com/MikeCanto/Consultorio-Nutricionista/internal/dto"
	"github.com/MikeCanto/Consultorio-Nutricionista/internal/model"
	"github.com/MikeCanto/Consultorio-Nutricionista/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type fakeUsuarioRepo struct {
	usuarios map[uuid.UUID]*model.Usuario
	findErr  error // injected storage failure for read methods
}

func newFakeUsuarioRepo() *fakeUsuarioRepo {
	return &fakeUsuarioRepo{usuarios: make(map[uuid.UUID]*model.Usuario)}
}

func (r *fakeUsuarioRepo) Create(_ context.Context, u *model.Usuario) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	r.usuarios[u.ID] = u
	return nil
}

func (r *fakeUsuarioRepo) FindByUsername(_ context.Context, username string) (*model.Usuario, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	for _, u := range r.usuarios {
		if u.Username == username && u.Activo {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUsuarioRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Usuario, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	u, ok := r.usuarios[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (r *fakeUsuarioRepo) List(_ context.Context, rol string, incluirInactivos bool) ([]model.Usuario, error) {
	var out []model.Usuario
	for _, u := range r.usuarios {
		if !incluirInactivos && !u.Activo {
			continue
		}
		if rol != "" && u.Rol != rol {
			continue
		}
		out = append(out, *u)
	}
	return out, nil
}

func (r *fakeUsuarioRepo) Update(_ context.Context, u *model.Usuario) error {
	r.usuarios[u.ID] = u
	return nil
}

func (r *fakeUsuarioRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	u, ok := r.usuarios[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.Activo = false
	return nil
}

func (r *fakeUsuarioRepo) Reactivar(_ context.Context, id uuid.UUID) error {
	u, ok := r.usuarios[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.Activo = true
	return nil
}

var _ repository.UsuarioRepository = (*fakeUsuarioRepo)(nil)

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:          "secreto-de-pruebas",
		JWTExpirationHours: 8,
		JWTRefreshHours:    24,
	}
}

func seedUsuario(t *testing.T, repo *fakeUsuarioRepo, username, password, rol string) *model.Usuario {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	u := &model.Usuario{
		Username:     username,
		Nombre:       "Laura",
		Apellido:     "Mendez",
		PasswordHash: string(hash),
		Rol:          rol,
		Activo:       true,
	}
	require.NoError(t, repo.Create(context.Background(), u))
	return u
}

func TestLogin(t *testing.T) {
	repo := newFakeUsuarioRepo()
	svc := NewAuthService(repo, testConfig())
	seedUsuario(t, repo, "laura", "supersecreta1", "nutricionista")

	resp, err := svc.Login(context.Background(), dto.LoginRequest{
		Username: "laura",
		Password: "supersecreta1",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "bearer", resp.TokenType)
	assert.Equal(t, "nutricionista", resp.User.Rol)
}

func TestLoginPasswordIncorrecta(t *testing.T) {
	repo := newFakeUsuarioRepo()
	svc := NewAuthService(repo, testConfig())
	seedUsuario(t, repo, "laura", "supersecreta1", "nutricionista")

	_, err := svc.Login(context.Background(), dto.LoginRequest{
		Username: "laura",
		Password: "otra",
	})
	assert.ErrorIs(t, err, ErrCredencialesInvalidas)
}

func TestLoginPropagaErrorDeAlmacenamiento(t *testing.T) {
	// An unreachable database is not a bad credential.
	repo := newFakeUsuarioRepo()
	svc := NewAuthService(repo, testConfig())

	fallo := errors.New("fallo de conexion con la base de datos")
	repo.findErr = fallo

	_, err := svc.Login(context.Background(), dto.LoginRequest{
		Username: "laura",
		Password: "supersecreta1",
	})
	assert.ErrorIs(t, err, fallo)
	assert.NotErrorIs(t, err, ErrCredencialesInvalidas)
}

func TestRefreshRoundtrip(t *testing.T) {
	repo := newFakeUsuarioRepo()
	svc := NewAuthService(repo, testConfig())
	seedUsuario(t, repo, "laura", "supersecreta1", "asistente")

	login, err := svc.Login(context.Background(), dto.LoginRequest{
		Username: "laura",
		Password: "supersecreta1",
	})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(context.Background(), login.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
	assert.Equal(t, login.User.ID, refreshed.User.ID)
}

func TestRefreshUsuarioDesactivado(t *testing.T) {
	repo := newFakeUsuarioRepo()
	svc := NewAuthService(repo, testConfig())
	u := seedUsuario(t, repo, "laura", "supersecreta1", "asistente")

	login, err := svc.Login(context.Background(), dto.LoginRequest{
		Username: "laura",
		Password: "supersecreta1",
	})
	require.NoError(t, err)

	require.NoError(t, svc.DesactivarUsuario(context.Background(), u.ID))

	_, err = svc.Refresh(context.Background(), login.RefreshToken)
	assert.ErrorIs(t, err, ErrRefreshInvalido)
}

func TestCrearUsuarioNoGuardaPasswordPlano(t *testing.T) {
	repo := newFakeUsuarioRepo()
	svc := NewAuthService(repo, testConfig())

	resp, err := svc.CrearUsuario(context.Background(), dto.CrearUsuarioRequest{
		Username: "asistente1",
		Nombre:   "Pedro",
		Apellido: "Gomez",
		Password: "passwordlarga",
		Rol:      "asistente",
	})
	require.NoError(t, err)

	stored, err := repo.FindByUsername(context.Background(), "asistente1")
	require.NoError(t, err)
	assert.NotEqual(t, "passwordlarga", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("passwordlarga")))
	assert.Equal(t, "asistente", resp.Rol)
}

func TestListarUsuariosFiltraPorRol(t *testing.T) {
	repo := newFakeUsuarioRepo()
	svc := NewAuthService(repo, testConfig())
	seedUsuario(t, repo, "laura", "supersecreta1", "nutricionista")
	seedUsuario(t, repo, "pedro", "supersecreta2", "asistente")

	asistentes, err := svc.ListarUsuarios(context.Background(), dto.UsuarioFilter{Rol: "asistente"})
	require.NoError(t, err)
	require.Len(t, asistentes, 1)
	assert.Equal(t, "pedro", asistentes[0].Username)
}
