package database

import (
	"fmt"
	"time"

	"github.com/clinicflow/clinicflow/internal/config"
	"github.com/clinicflow/clinicflow/internal/domain"
	"github.com/clinicflow/clinicflow/internal/domain/directory"
	"github.com/clinicflow/clinicflow/internal/domain/schedule"
	"github.com/clinicflow/clinicflow/internal/domain/settings"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func Connect(cfg config.DatabaseConfig) (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		Logger:      gormlogger.Default.LogMode(gormlogger.Silent),
		PrepareStmt: true,
	}

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN: cfg.DSN(),
	}), gormCfg)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("getting underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return db, nil
}

func Migrate(db *gorm.DB, log *zap.Logger) error {
	log.Info("running database migrations")
	start := time.Now()

	schemas := []string{"scheduling", "audit"}
	for _, schema := range schemas {
		if err := db.Exec(fmt.Sprintf("CREATE SCHEMA IF NOT EXISTS %s", schema)).Error; err != nil {
			return fmt.Errorf("creating schema %s: %w", schema, err)
		}
	}

	models := []any{
		&directory.Doctor{},
		&directory.Patient{},
		&schedule.AvailabilityWindow{},
		&schedule.AppointmentBlock{},
		&schedule.Appointment{},
		&settings.Setting{},
		&domain.AuditLog{},
	}

	if err := db.AutoMigrate(models...); err != nil {
		return fmt.Errorf("auto-migrating models: %w", err)
	}

	if err := createConstraints(db); err != nil {
		return fmt.Errorf("creating constraints: %w", err)
	}

	log.Info("migrations completed", zap.Duration("duration", time.Since(start)))
	return nil
}

// createConstraints installs the exclusion constraints that make the
// read-then-insert booking path safe under concurrency: two transactions
// inserting overlapping intervals for the same doctor cannot both commit.
func createConstraints(db *gorm.DB) error {
	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS btree_gist").Error; err != nil {
		return fmt.Errorf("creating btree_gist extension: %w", err)
	}

	stmts := []struct {
		name  string
		query string
	}{
		{
			name: "appointments_no_overlap",
			query: `ALTER TABLE scheduling.appointments
				ADD CONSTRAINT appointments_no_overlap
				EXCLUDE USING gist (doctor_id WITH =, tstzrange(start_at, end_at) WITH &&)
				WHERE (status <> 'canceled')`,
		},
		{
			name: "availability_no_overlap",
			query: `ALTER TABLE scheduling.doctor_availability
				ADD CONSTRAINT availability_no_overlap
				EXCLUDE USING gist (doctor_id WITH =, tstzrange(start_at, end_at) WITH &&)`,
		},
		{
			name: "idx_appointments_doctor_slot",
			query: `CREATE INDEX IF NOT EXISTS idx_appointments_doctor_slot
				ON scheduling.appointments (doctor_id, start_at, end_at)
				WHERE status <> 'canceled'`,
		},
		{
			name: "idx_blocks_open",
			query: `CREATE INDEX IF NOT EXISTS idx_blocks_open
				ON scheduling.appointment_blocks (availability_id, start_at)
				WHERE NOT is_booked`,
		},
	}

	for _, stmt := range stmts {
		if err := db.Exec(stmt.query).Error; err != nil {
			// ALTER TABLE ... ADD CONSTRAINT has no IF NOT EXISTS; a rerun
			// reports duplicate_object, which is fine.
			if isDuplicateObject(err) {
				continue
			}
			return fmt.Errorf("applying %s: %w", stmt.name, err)
		}
	}

	return nil
}
