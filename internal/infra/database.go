package infra

import (
	"fmt"

	"github.com/MikeCanto/Consultorio-Nutricionista/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx, runs AutoMigrate to
// create / update all tables, then applies the idempotent SQL patches that
// AutoMigrate cannot express.
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := RunMigrations(db); err != nil {
		return nil, err
	}

	return db, nil
}

// RunMigrations creates/updates the schema. Shared with integration tooling.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.Usuario{},
		&model.Paciente{},
		&model.Consulta{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}
	return applySchemaPatches(db)
}

// applySchemaPatches runs idempotent DDL that GORM AutoMigrate does not emit.
// The cascade on consultas.paciente_id must hold even on databases migrated by
// older GORM versions that created the FK without an ON DELETE action.
func applySchemaPatches(db *gorm.DB) error {
	patches := []string{
		`DO $$ BEGIN
		  IF EXISTS (SELECT 1 FROM pg_constraint
		             WHERE conrelid = to_regclass('consultas')
		               AND conname = 'fk_pacientes_consultas'
		               AND confdeltype <> 'c') THEN
		    ALTER TABLE consultas DROP CONSTRAINT fk_pacientes_consultas;
		    ALTER TABLE consultas
		      ADD CONSTRAINT fk_pacientes_consultas
		      FOREIGN KEY (paciente_id) REFERENCES pacientes(id) ON DELETE CASCADE;
		  END IF;
		END $$`,
		// Composite index backing the progress query ordering
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_consultas_paciente_fecha') THEN
		    CREATE INDEX idx_consultas_paciente_fecha
		        ON consultas (paciente_id, fecha_consulta DESC, ordinal DESC);
		  END IF;
		END $$`,
	}

	for _, sql := range patches {
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("schema patch: %w", err)
		}
	}
	return nil
}
