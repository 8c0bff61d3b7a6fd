package router

import (
	"time"

	"github.com/MikeCanto/Consultorio-Nutricionista/internal/config"
	"github.com/MikeCanto/Consultorio-Nutricionista/internal/handler"
	"github.com/MikeCanto/Consultorio-Nutricionista/internal/middleware"
	"github.com/MikeCanto/Consultorio-Nutricionista/internal/repository"
	"github.com/MikeCanto/Consultorio-Nutricionista/internal/service"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	usuarioRepo := repository.NewUsuarioRepository(db)
	pacienteRepo := repository.NewPacienteRepository(db)
	consultaRepo := repository.NewConsultaRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(usuarioRepo, cfg)
	pacienteSvc := service.NewPacienteService(pacienteRepo, rdb)
	consultaSvc := service.NewConsultaService(consultaRepo, pacienteRepo, rdb)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	pacientesH := handler.NewPacientesHandler(pacienteSvc)
	consultasH := handler.NewConsultasHandler(consultaSvc)
	usuariosH := handler.NewUsuariosHandler(authSvc)
	publicoH := handler.NewPacientePublicoHandler(pacienteSvc, rdb)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Public patient lookup — no auth required
	r.GET("/v1/publico/pacientes/:id", publicoH.Obtener)

	// Protected routes — capabilities declared per endpoint
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		pacientes := v1.Group("/pacientes")
		{
			pacientes.GET("", middleware.RequirePermission("ver", "pacientes"), pacientesH.Listar)
			pacientes.POST("", middleware.RequirePermission("crear", "pacientes"), pacientesH.Crear)
			pacientes.GET("/:id", middleware.RequirePermission("ver", "pacientes"), pacientesH.ObtenerPorID)
			pacientes.PUT("/:id", middleware.RequirePermission("editar", "pacientes"), pacientesH.Actualizar)
			pacientes.DELETE("/:id", middleware.RequirePermission("eliminar", "pacientes"), pacientesH.Eliminar)
			pacientes.PATCH("/:id/desactivar", middleware.RequirePermission("editar", "pacientes"), pacientesH.Desactivar)
			pacientes.PATCH("/:id/reactivar", middleware.RequirePermission("editar", "pacientes"), pacientesH.Reactivar)

			pacientes.GET("/:id/consultas", middleware.RequirePermission("ver", "consultas"), consultasH.ListarPorPaciente)
			pacientes.GET("/:id/progreso", middleware.RequirePermission("ver", "consultas"), consultasH.Progreso)
		}

		consultas := v1.Group("/consultas")
		{
			consultas.POST("", middleware.RequirePermission("crear", "consultas"), consultasH.Crear)
			consultas.GET("/:id", middleware.RequirePermission("ver", "consultas"), consultasH.Obtener)
		}

		usuarios := v1.Group("/usuarios", middleware.RequirePermission("administrar", "usuarios"))
		{
			usuarios.POST("", usuariosH.Crear)
			usuarios.GET("", usuariosH.Listar)
			usuarios.PUT("/:id", usuariosH.Actualizar)
			usuarios.DELETE("/:id", usuariosH.Desactivar)
			usuarios.PATCH("/:id/reactivar", usuariosH.Reactivar)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
