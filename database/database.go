package database

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"tarefas-producao/config"
	"tarefas-producao/utilities"
)

// Dialect define o estilo de placeholder e o DDL usados.
type Dialect string

const (
	Postgres Dialect = "postgres"
	SQLite   Dialect = "sqlite"
)

// Connect abre a conexão de acordo com DB_DRIVER e testa com Ping.
func Connect(ctx context.Context, cfg *config.Config) (*sql.DB, Dialect, error) {
	switch Dialect(cfg.DBDriver) {
	case SQLite:
		db, err := ConnectSQLite(ctx, cfg.SQLitePath)
		return db, SQLite, err
	case Postgres:
		db, err := ConnectPostgres(ctx, cfg.PostgresDSN())
		return db, Postgres, err
	}
	return nil, "", fmt.Errorf("driver de banco desconhecido: %q", cfg.DBDriver)
}

func ConnectPostgres(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		utilities.LogError(err, "Erro ao abrir conexão com o banco de dados")
		return nil, err
	}

	if err := db.PingContext(ctx); err != nil {
		utilities.LogError(err, "Erro ao conectar ao banco de dados")
		db.Close()
		return nil, err
	}

	utilities.LogInfo("Conectado ao PostgreSQL com sucesso!")
	return db, nil
}

// ConnectSQLite abre um arquivo SQLite (ou ":memory:").
func ConnectSQLite(ctx context.Context, path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		utilities.LogError(err, "Erro ao abrir banco SQLite")
		return nil, err
	}
	// SQLite serializa escritas; uma conexão evita SQLITE_BUSY e mantém
	// o banco em memória visível para todas as consultas.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		utilities.LogError(err, "Erro ao conectar ao banco SQLite")
		db.Close()
		return nil, err
	}

	utilities.LogInfo("Conectado ao SQLite (%s) com sucesso!", path)
	return db, nil
}
