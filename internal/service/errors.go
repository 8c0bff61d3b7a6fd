package service

import "errors"

// Sentinel errors shared across services. Handlers map these to HTTP 404;
// anything else surfaces as a 400/500 depending on the operation.
var (
	ErrPacienteNoEncontrado = errors.New("paciente no encontrado")
	ErrConsultaNoEncontrada = errors.New("consulta no encontrada")
	ErrUsuarioNoEncontrado  = errors.New("usuario no encontrado")

	// ErrCredencialesInvalidas maps to HTTP 401. Covers both unknown usernames
	// and wrong passwords so login failures are indistinguishable to a caller.
	ErrCredencialesInvalidas = errors.New("credenciales invalidas")

	// ErrRefreshInvalido covers every rejected refresh token: bad signature,
	// expired, malformed claims, or a user that no longer exists or is inactive.
	ErrRefreshInvalido = errors.New("refresh token invalido o expirado")
)
