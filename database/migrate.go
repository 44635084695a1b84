package database

import (
	"context"
	"database/sql"
	"fmt"
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS tasks (
    id                    BIGSERIAL PRIMARY KEY,
    task_name             VARCHAR(255) NOT NULL,
    start_date            DATE         NULL,
    end_date              DATE         NULL,
    responsible           VARCHAR(255) NOT NULL,
    status                VARCHAR(32)  NOT NULL,
    remarks               TEXT         NULL,
    priority              VARCHAR(16)  NULL,
    category              VARCHAR(255) NULL,
    estimated_hours       INTEGER      NULL,
    actual_hours          INTEGER      NULL,
    completion_percentage INTEGER      NULL,
    department            VARCHAR(255) NULL,
    is_critical           BOOLEAN      NULL,
    created_at            TIMESTAMPTZ  NOT NULL,
    updated_at            TIMESTAMPTZ  NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_tasks_status ON tasks (status);
CREATE INDEX IF NOT EXISTS idx_tasks_department ON tasks (department);
CREATE INDEX IF NOT EXISTS idx_tasks_priority ON tasks (priority);
CREATE INDEX IF NOT EXISTS idx_tasks_category ON tasks (category);
`

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS tasks (
    id                    INTEGER PRIMARY KEY AUTOINCREMENT,
    task_name             VARCHAR(255) NOT NULL,
    start_date            DATE         NULL,
    end_date              DATE         NULL,
    responsible           VARCHAR(255) NOT NULL,
    status                VARCHAR(32)  NOT NULL,
    remarks               TEXT         NULL,
    priority              VARCHAR(16)  NULL,
    category              VARCHAR(255) NULL,
    estimated_hours       INTEGER      NULL,
    actual_hours          INTEGER      NULL,
    completion_percentage INTEGER      NULL,
    department            VARCHAR(255) NULL,
    is_critical           BOOLEAN      NULL,
    created_at            DATETIME     NOT NULL,
    updated_at            DATETIME     NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_tasks_status ON tasks (status);
CREATE INDEX IF NOT EXISTS idx_tasks_department ON tasks (department);
CREATE INDEX IF NOT EXISTS idx_tasks_priority ON tasks (priority);
CREATE INDEX IF NOT EXISTS idx_tasks_category ON tasks (category);
`

// Migrate cria a tabela tasks e os índices usados pelos filtros.
func Migrate(ctx context.Context, db *sql.DB, dialect Dialect) error {
	schema := postgresSchema
	if dialect == SQLite {
		schema = sqliteSchema
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("erro ao criar schema (%s): %w", dialect, err)
	}
	return nil
}
