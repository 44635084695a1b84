package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	DefaultServerPort  = "8080"
	DefaultDBDriver    = "postgres"
	DefaultSSLMode     = "disable"
	DefaultSQLitePath  = "tasks.db"
	DefaultCORSOrigins = "http://localhost:3000"
)

type Config struct {
	ServerPort string

	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	SQLitePath string

	CORSAllowedOrigins []string
	LogDebug           bool
	SeedOnStart        bool
}

// Load carrega envFile (ou ./.env, se existir, quando envFile é vazio) e lê
// as variáveis de ambiente. Variáveis já definidas no ambiente têm
// precedência sobre o arquivo.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return nil, fmt.Errorf("erro ao carregar o arquivo %s: %w", envFile, err)
		}
	} else if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("erro ao carregar o arquivo .env: %w", err)
	}
	return FromEnv()
}

func FromEnv() (*Config, error) {
	cfg := &Config{
		ServerPort: getEnv("SERVER_PORT", DefaultServerPort),
		DBDriver:   strings.ToLower(getEnv("DB_DRIVER", DefaultDBDriver)),
		DBHost:     os.Getenv("DB_HOST"),
		DBPort:     os.Getenv("DB_PORT"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
		DBSSLMode:  getEnv("DB_SSLMODE", DefaultSSLMode),
		SQLitePath: getEnv("SQLITE_PATH", DefaultSQLitePath),
	}

	origins := getEnv("CORS_ALLOWED_ORIGINS", DefaultCORSOrigins)
	for _, o := range strings.Split(origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, o)
		}
	}

	var err error
	if cfg.LogDebug, err = getBool("LOG_DEBUG", true); err != nil {
		return nil, err
	}
	if cfg.SeedOnStart, err = getBool("SEED_ON_START", false); err != nil {
		return nil, err
	}

	if cfg.DBDriver != "postgres" && cfg.DBDriver != "sqlite" {
		return nil, fmt.Errorf("DB_DRIVER inválido: %q (use postgres ou sqlite)", cfg.DBDriver)
	}
	return cfg, nil
}

// PostgresDSN monta a string de conexão no formato key=value do lib/pq.
// PostgresDSN omite campos vazios para que lib/pq use seus próprios padrões.
func (c *Config) PostgresDSN() string {
	fields := []struct{ key, value string }{
		{"host", c.DBHost},
		{"port", c.DBPort},
		{"user", c.DBUser},
		{"password", c.DBPassword},
		{"dbname", c.DBName},
		{"sslmode", c.DBSSLMode},
	}
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		if f.value != "" {
			parts = append(parts, f.key+"="+f.value)
		}
	}
	return strings.Join(parts, " ")
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getBool(key string, fallback bool) (bool, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s inválido: %q", key, v)
	}
	return b, nil
}
