package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/vk/casebridge/internal/config"
	"github.com/vk/casebridge/internal/ctxlog"
)

// App encapsulates one conversion run: its configuration, its isolated
// logger, and the output writer for human-facing messages.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	config *Config
}

// NewApp is the constructor for the main application. It configures the
// logger, merges the optional run profile into the configuration, and
// applies defaults. A profile the user pointed at but that cannot be loaded
// is a fatal startup error and panics; callers recover and report it.
func NewApp(outW io.Writer, appConfig *Config) *App {
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	if appConfig.ProfilePath != "" {
		profile, err := config.Load(ctx, appConfig.ProfilePath)
		if err != nil {
			panic(fmt.Errorf("failed to load run profile: %w", err))
		}
		mergeProfile(appConfig, profile)
		logger.Debug("Run profile merged into configuration.", "path", appConfig.ProfilePath)
	}
	appConfig.applyDefaults()

	return &App{
		outW:   outW,
		logger: logger,
		config: appConfig,
	}
}

// mergeProfile copies profile values into configuration fields the CLI left
// empty; explicit flags always win.
func mergeProfile(cfg *Config, p *config.Profile) {
	merge := func(dst *string, src string) {
		if *dst == "" {
			*dst = src
		}
	}
	merge(&cfg.RegistryBase, p.RegistryBase)
	merge(&cfg.Publisher, p.Publisher)
	merge(&cfg.OwnedBy, p.OwnedBy)
	merge(&cfg.OfferedBy, p.OfferedBy)
	merge(&cfg.CoursesDir, p.CoursesDir)
	merge(&cfg.FrameworksDir, p.FrameworksDir)
	merge(&cfg.ProgramsDir, p.ProgramsDir)
	merge(&cfg.ReportPath, p.ReportPath)
	merge(&cfg.ProgramReportPath, p.ProgramReport)
}

// Config returns the resolved configuration. This is primarily for testing.
func (a *App) Config() *Config {
	return a.config
}
