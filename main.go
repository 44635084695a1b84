package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"tarefas-producao/config"
	"tarefas-producao/database"
	"tarefas-producao/handlers"
	"tarefas-producao/repository"
	"tarefas-producao/services"
	"tarefas-producao/utilities"

	"github.com/spf13/cobra"
)

var flagEnvFile string

var rootCmd = &cobra.Command{
	Use:           "tarefas-producao",
	Short:         "API de gerenciamento de tarefas de produção",
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE:          runServe,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Inicia o servidor HTTP",
	RunE:  runServe,
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Cria a tabela de tarefas se ela não existir",
	RunE:  runMigrate,
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insere as tarefas de exemplo se o banco estiver vazio",
	RunE:  runSeed,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagEnvFile, "env-file", "", "arquivo .env a carregar (padrão: ./.env se existir)")
	for _, c := range []*cobra.Command{rootCmd, serveCmd} {
		c.Flags().String("port", "", "porta do servidor (sobrepõe SERVER_PORT)")
		c.Flags().Bool("seed", false, "insere dados de exemplo ao iniciar (sobrepõe SEED_ON_START)")
	}
	rootCmd.AddCommand(serveCmd, migrateCmd, seedCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// app agrupa as dependências montadas a partir da configuração.
type app struct {
	cfg     *config.Config
	db      *sql.DB
	logger  *utilities.StdLogger
	service *services.TaskService
}

func setup(ctx context.Context) (*app, error) {
	cfg, err := config.Load(flagEnvFile)
	if err != nil {
		return nil, err
	}
	utilities.InitLogger(cfg.LogDebug)
	logger := utilities.Default()

	db, dialect, err := database.Connect(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("erro ao conectar ao banco de dados: %w", err)
	}
	if err := database.Migrate(ctx, db, dialect); err != nil {
		db.Close()
		return nil, err
	}

	store := repository.NewSQLTaskStore(db, dialect, logger)
	return &app{
		cfg:     cfg,
		db:      db,
		logger:  logger,
		service: services.NewTaskService(store, logger),
	}, nil
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := setup(ctx)
	if err != nil {
		return err
	}
	defer a.db.Close()

	if port, _ := cmd.Flags().GetString("port"); port != "" {
		a.cfg.ServerPort = port
	}
	if seed, _ := cmd.Flags().GetBool("seed"); seed {
		a.cfg.SeedOnStart = true
	}
	if a.cfg.SeedOnStart {
		if _, err := a.service.InitializeSampleData(ctx); err != nil {
			return fmt.Errorf("erro ao inserir dados de exemplo: %w", err)
		}
	}

	tasks := handlers.NewTaskHandler(a.service, a.logger)
	return serve(ctx, a.cfg, NewRouter(a.cfg, a.db, tasks, a.logger))
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	a, err := setup(cmd.Context())
	if err != nil {
		return err
	}
	defer a.db.Close()

	utilities.LogInfo("Schema criado/verificado com sucesso")
	return nil
}

func runSeed(cmd *cobra.Command, _ []string) error {
	a, err := setup(cmd.Context())
	if err != nil {
		return err
	}
	defer a.db.Close()

	n, err := a.service.InitializeSampleData(cmd.Context())
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%d tarefas de exemplo inseridas\n", n)
	return nil
}
