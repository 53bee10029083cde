package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	"github.com/xxxsen/common/logger"
	"github.com/xxxsen/common/logutil"
	"github.com/xxxsen/common/webapi"
	"go.uber.org/zap"

	"github.com/sunbeamlabs/sundoc/internal/agent"
	"github.com/sunbeamlabs/sundoc/internal/ai"
	"github.com/sunbeamlabs/sundoc/internal/config"
	"github.com/sunbeamlabs/sundoc/internal/filestore"
	"github.com/sunbeamlabs/sundoc/internal/handler"
	"github.com/sunbeamlabs/sundoc/internal/job"
	"github.com/sunbeamlabs/sundoc/internal/middleware"
	"github.com/sunbeamlabs/sundoc/internal/repo"
	"github.com/sunbeamlabs/sundoc/internal/schedule"
	"github.com/sunbeamlabs/sundoc/internal/service"
)

func main() {
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "sundoc",
		Short: "sundoc backend server",
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run sundoc server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if configPath == "" {
				return fmt.Errorf("--config is required")
			}
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			logger.Init(
				cfg.LogConfig.File,
				cfg.LogConfig.Level,
				int(cfg.LogConfig.FileCount),
				int(cfg.LogConfig.FileSize),
				int(cfg.LogConfig.KeepDays),
				cfg.LogConfig.Console,
			)
			logutil.GetLogger(context.Background()).Info("config loaded", zap.String("config", configPath))

			db, err := repo.Open(cfg.DBPath)
			if err != nil {
				return fmt.Errorf("open db: %w", err)
			}
			if err := repo.ApplyMigrations(db); err != nil {
				return fmt.Errorf("migrations: %w", err)
			}
			return runServer(cfg, db)
		},
	}

	runCmd.Flags().StringVar(&configPath, "config", "", "path to config.json")
	rootCmd.AddCommand(runCmd)

	if err := rootCmd.Execute(); err != nil {
		logutil.GetLogger(context.Background()).Fatal("startup error", zap.Error(err))
	}
}

func buildAIClient(cfg config.AIConfig) *ai.Client {
	entries := make([]ai.GeneratorEntry, 0, len(cfg.Providers))
	for _, pc := range cfg.Providers {
		provider, err := ai.NewProvider(pc.Provider, pc.Data)
		if err != nil {
			logutil.GetLogger(context.Background()).Warn("skipping ai provider",
				zap.String("provider", pc.Provider),
				zap.Error(err),
			)
			continue
		}
		entries = append(entries, ai.GeneratorEntry{
			Name:      pc.Provider + "/" + pc.Model,
			Generator: ai.NewGenerator(provider, pc.Model),
		})
	}
	gen := ai.NewGroupGenerator(entries)
	if gen == nil {
		logutil.GetLogger(context.Background()).Warn("no ai provider configured, running in degraded mode")
		return nil
	}
	return ai.NewClient(gen, ai.ClientConfig{
		Timeout:       cfg.TimeoutSeconds,
		MaxInputChars: cfg.MaxInputChars,
		CacheSize:     cfg.CacheSize,
		CacheTTL:      time.Duration(cfg.CacheTTLSecond) * time.Second,
	})
}

func runServer(cfg *config.Config, db *sqlx.DB) error {
	logutil.GetLogger(context.Background()).Info(
		"starting server",
		zap.Int("port", cfg.Port),
		zap.String("db_path", cfg.DBPath),
		zap.String("file_store", cfg.FileStore.Type),
	)

	projectRepo := repo.NewProjectRepo(db)
	docRepo := repo.NewDocumentRepo(db)
	chunkRepo := repo.NewChunkRepo(db)
	qaRepo := repo.NewQARepo(db)

	store, err := filestore.New(cfg.FileStore)
	if err != nil {
		return fmt.Errorf("init file store: %w", err)
	}

	aiClient := buildAIClient(cfg.AI)

	contexts := agent.NewContextBuilder(chunkRepo)
	classifier := agent.NewClassifier(aiClient)
	qaAgent := agent.NewQAAgent(contexts, aiClient, uint(cfg.Agent.QAMaxChunks))
	summaryAgent := agent.NewSummaryAgent(contexts, aiClient, uint(cfg.Agent.SummaryMaxChunks))
	diagramAgent := agent.NewDiagramAgent(contexts, docRepo, aiClient)
	orchestrator := agent.NewOrchestrator(projectRepo, classifier, qaAgent, summaryAgent, diagramAgent)

	projectService := service.NewProjectService(projectRepo, docRepo, chunkRepo, qaRepo, store)
	documentService := service.NewDocumentService(projectRepo, docRepo, chunkRepo, store)
	qaService := service.NewQAService(projectRepo, qaRepo, orchestrator)

	deps := handler.RouterDeps{
		Projects:  handler.NewProjectHandler(projectService),
		Documents: handler.NewDocumentHandler(documentService, cfg.MaxUploadBytes),
		QA:        handler.NewQAHandler(qaService),
		AskRateLimit: middleware.RateLimit(
			time.Duration(cfg.AskRateLimit.WindowSeconds)*time.Second,
			cfg.AskRateLimit.MaxRequests,
		),
	}

	engine, err := webapi.NewEngine(
		"/api/v1",
		fmt.Sprintf("0.0.0.0:%d", cfg.Port),
		webapi.WithRegister(func(group *gin.RouterGroup) {
			handler.RegisterRoutes(group, deps)
		}),
		webapi.WithExtraMiddlewares(
			middleware.RequestID(),
			middleware.CORS(cfg.CORSAllowlist),
			gzip.Gzip(gzip.DefaultCompression),
		),
	)
	if err != nil {
		return fmt.Errorf("init web engine: %w", err)
	}
	logutil.GetLogger(context.Background()).Info("http server listening", zap.String("addr", fmt.Sprintf("0.0.0.0:%d", cfg.Port)))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	scheduler := schedule.NewCronScheduler()
	if err := scheduler.AddJob(
		job.NewReprocessJob(documentService, time.Duration(cfg.Jobs.StalledAfterSecond)*time.Second),
		cfg.Jobs.ReprocessSpec,
	); err != nil {
		return fmt.Errorf("schedule reprocess job: %w", err)
	}
	if err := scheduler.AddJob(
		job.NewQARetentionJob(qaService, cfg.Jobs.QARetentionDays),
		cfg.Jobs.RetentionSpec,
	); err != nil {
		return fmt.Errorf("schedule retention job: %w", err)
	}
	scheduler.Start(ctx)
	defer scheduler.Stop()

	go func() {
		if err := engine.Run(); err != nil && err != http.ErrServerClosed {
			logutil.GetLogger(context.Background()).Error("server error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logutil.GetLogger(context.Background()).Info("server stopping...")
	return nil
}
