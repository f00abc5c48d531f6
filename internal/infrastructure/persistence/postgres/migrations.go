package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
)

// ══════════════════════════════════════════════════════════════════════════════
// MIGRATION 001: CREATE STUDENTS
// ══════════════════════════════════════════════════════════════════════════════

const migration001Up = `
-- Migration: Create students fee-record table
-- Version: 001

CREATE TABLE IF NOT EXISTS students (
    id BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
    admission_no VARCHAR(16) NOT NULL UNIQUE,
    first_name VARCHAR(64) NOT NULL,
    middle_name VARCHAR(64) NOT NULL,
    family_name VARCHAR(64),
    grade VARCHAR(32) NOT NULL,
    tuition_fee INTEGER NOT NULL DEFAULT 0,
    food_fee INTEGER NOT NULL DEFAULT 0,
    text_books_fee INTEGER NOT NULL DEFAULT 0,
    exercise_books_fee INTEGER NOT NULL DEFAULT 0,
    assesment_tool_fee INTEGER NOT NULL DEFAULT 0,
    transport_fee INTEGER NOT NULL DEFAULT 0,
    activity_fee INTEGER NOT NULL DEFAULT 200,
    diary_fee INTEGER NOT NULL DEFAULT 150,
    admission_fee INTEGER NOT NULL DEFAULT 0,
    total_fee INTEGER NOT NULL DEFAULT 0,
    amount_paid INTEGER NOT NULL DEFAULT 0,
    balance INTEGER NOT NULL DEFAULT 0,
    transport_mode VARCHAR(32) NOT NULL DEFAULT 'None',
    created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),

    -- Line items are non-negative; balance may go negative on overpayment
    CONSTRAINT valid_tuition_fee CHECK (tuition_fee >= 0),
    CONSTRAINT valid_food_fee CHECK (food_fee >= 0),
    CONSTRAINT valid_text_books_fee CHECK (text_books_fee >= 0),
    CONSTRAINT valid_exercise_books_fee CHECK (exercise_books_fee >= 0),
    CONSTRAINT valid_assesment_tool_fee CHECK (assesment_tool_fee >= 0),
    CONSTRAINT valid_transport_fee CHECK (transport_fee >= 0),
    CONSTRAINT valid_activity_fee CHECK (activity_fee >= 0),
    CONSTRAINT valid_diary_fee CHECK (diary_fee >= 0),
    CONSTRAINT valid_admission_fee CHECK (admission_fee >= 0),
    CONSTRAINT valid_amount_paid CHECK (amount_paid >= 0)
);

-- Unique index is the arbiter for concurrent admission-number allocation
CREATE UNIQUE INDEX IF NOT EXISTS idx_students_admission_no ON students(admission_no);
CREATE INDEX IF NOT EXISTS idx_students_grade ON students(grade);
CREATE INDEX IF NOT EXISTS idx_students_created_at ON students(created_at DESC);
`

const migration001Down = `
DROP TABLE IF EXISTS students;
`

// ══════════════════════════════════════════════════════════════════════════════
// MIGRATOR
// ══════════════════════════════════════════════════════════════════════════════

// Migration represents a single database migration.
type Migration struct {
	Version   int
	Name      string
	UpSQL     string
	DownSQL   string
	IsApplied bool
	AppliedAt time.Time
}

// Migrator applies embedded migrations in order.
type Migrator struct {
	conn      *Connection
	tableName string
}

// NewMigrator creates a migrator for the embedded migrations.
func NewMigrator(conn *Connection) *Migrator {
	return &Migrator{
		conn:      conn,
		tableName: "schema_migrations",
	}
}

// Migrations returns all embedded migrations.
func Migrations() []Migration {
	return []Migration{
		{
			Version: 1,
			Name:    "create_students",
			UpSQL:   migration001Up,
			DownSQL: migration001Down,
		},
	}
}

// EnsureMigrationTable creates the migration tracking table if it doesn't exist.
func (m *Migrator) EnsureMigrationTable(ctx context.Context) error {
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			version INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			applied_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
		)
	`, m.tableName)

	if _, err := m.conn.Exec(ctx, query); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	return nil
}

// appliedMigrations returns the versions already applied.
func (m *Migrator) appliedMigrations(ctx context.Context) (map[int]time.Time, error) {
	query := fmt.Sprintf("SELECT version, applied_at FROM %s ORDER BY version", m.tableName)

	rows, err := m.conn.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query applied migrations: %w", err)
	}
	defer rows.Close()

	applied := make(map[int]time.Time)
	for rows.Next() {
		var version int
		var appliedAt time.Time
		if err := rows.Scan(&version, &appliedAt); err != nil {
			return nil, fmt.Errorf("failed to scan migration row: %w", err)
		}
		applied[version] = appliedAt
	}

	return applied, rows.Err()
}

// Migrate applies all pending migrations, each in its own transaction.
func (m *Migrator) Migrate(ctx context.Context) error {
	if err := m.EnsureMigrationTable(ctx); err != nil {
		return err
	}

	applied, err := m.appliedMigrations(ctx)
	if err != nil {
		return err
	}

	for _, mig := range Migrations() {
		if _, isApplied := applied[mig.Version]; isApplied {
			continue
		}

		err := m.conn.WithTx(ctx, func(tx pgx.Tx) error {
			if _, err := tx.Exec(ctx, mig.UpSQL); err != nil {
				return fmt.Errorf("failed to execute migration %d: %w", mig.Version, err)
			}

			insertQuery := fmt.Sprintf("INSERT INTO %s (version, name) VALUES ($1, $2)", m.tableName)
			_, err := tx.Exec(ctx, insertQuery, mig.Version, mig.Name)
			return err
		})
		if err != nil {
			return fmt.Errorf("%w: version %d: %v", ErrMigrationFailed, mig.Version, err)
		}
	}

	return nil
}
