package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/vk/plancreator/internal/config"
	"github.com/vk/plancreator/internal/creator"
	"github.com/vk/plancreator/internal/creators"
	"github.com/vk/plancreator/internal/ctxlog"
	"github.com/vk/plancreator/internal/engine"
	"github.com/vk/plancreator/internal/metrics"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW       io.Writer
	logger     *slog.Logger
	config     *Config
	model      *config.Model
	registry   *creator.Registry
	engine     *engine.Service
	promReg    *prometheus.Registry
	httpServer *http.Server
}

// NewApp is the constructor for the main application. The plan is written to
// outW and logs go to logW. When no creators are given the reference set
// from the creators package is used.
func NewApp(outW, logW io.Writer, appConfig *Config, loader config.Loader, creatorSet ...creator.PartialPlanCreator) (*App, error) {
	logger, err := newLogger(firstSet(appConfig.LogLevel, defaultLogLevel), firstSet(appConfig.LogFormat, defaultLogFormat), logW)
	if err != nil {
		return nil, err
	}
	ctx := ctxlog.WithLogger(context.Background(), logger)

	model, err := loader.Load(ctx, appConfig.ConfigPaths...)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	logger.Debug("Configuration loaded and translated into unified model.", "step_types", model.StepTypeNames())

	// The file may choose the logging setup unless a flag already did.
	if model.Logging.Level != "" || model.Logging.Format != "" {
		logger, err = newLogger(
			firstSet(appConfig.LogLevel, model.Logging.Level, defaultLogLevel),
			firstSet(appConfig.LogFormat, model.Logging.Format, defaultLogFormat),
			logW,
		)
		if err != nil {
			return nil, fmt.Errorf("logging configuration: %w", err)
		}
		logger.Debug("Logger reconfigured from configuration file.")
	}

	// Flags take precedence over the configuration files.
	settings := model.Engine
	if appConfig.Workers != 0 {
		settings.Workers = appConfig.Workers
	}
	if appConfig.RoundTimeout != 0 {
		settings.RoundTimeout = appConfig.RoundTimeout
	}
	if appConfig.MaxRounds != 0 {
		settings.MaxRounds = appConfig.MaxRounds
	}

	var reg *creator.Registry
	if len(creatorSet) > 0 {
		reg = creator.NewRegistry(creatorSet...)
	} else {
		reg = creators.Default(model)
	}
	logger.Debug("Creator registry built.", "creators", reg.Names())

	promReg := prometheus.NewRegistry()
	promReg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	collector := metrics.NewCollector(promReg)

	svc := engine.New(reg,
		engine.WithWorkers(settings.Workers),
		engine.WithRoundTimeout(settings.RoundTimeout),
		engine.WithMaxRounds(settings.MaxRounds),
		engine.WithMetrics(collector),
	)

	return &App{
		outW:     outW,
		logger:   logger,
		config:   appConfig,
		model:    model,
		registry: reg,
		engine:   svc,
		promReg:  promReg,
	}, nil
}

// Registry returns the application's creator registry. This is primarily for testing.
func (a *App) Registry() *creator.Registry {
	return a.registry
}

// planContext builds the creation context handed to every creator.
func (a *App) planContext() creator.Context {
	return creator.Context{
		AccountID:  a.config.AccountID,
		OrgID:      a.config.OrgID,
		ProjectID:  a.config.ProjectID,
		PipelineID: a.config.PipelineID,
	}
}
