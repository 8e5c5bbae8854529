package app

import (
	"errors"
	"fmt"

	"github.com/vk/casebridge/internal/ctdl"
)

// Conversion passes selectable from the CLI.
const (
	PassFrameworks = "frameworks"
	PassPrograms   = "programs"
	PassAll        = "all"
)

// Config holds everything an App instance needs to run one conversion.
// String fields left empty are filled from the run profile and then from
// built-in defaults.
type Config struct {
	Source      string // CASE package URL or local file path
	ProfilePath string // optional HCL run profile

	RegistryBase string
	Publisher    string // comma-separated CTIDs/URIs
	OwnedBy      string
	OfferedBy    string

	CoursesDir        string
	FrameworksDir     string
	ProgramsDir       string
	ReportPath        string
	ProgramReportPath string

	Passes    string
	LogFormat string
	LogLevel  string
}

// NewConfig validates a Config and returns it.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.Source == "" {
		return nil, errors.New("Source is a required configuration field and cannot be empty")
	}
	switch cfg.Passes {
	case "", PassFrameworks, PassPrograms, PassAll:
	default:
		return nil, fmt.Errorf("invalid passes value %q: must be %q, %q, or %q",
			cfg.Passes, PassFrameworks, PassPrograms, PassAll)
	}
	return &cfg, nil
}

// applyDefaults fills every still-empty field with its built-in default.
// Profile values were merged before this runs, so the precedence is
// flag > profile > default.
func (c *Config) applyDefaults() {
	if c.RegistryBase == "" {
		c.RegistryBase = ctdl.DefaultRegistryBase
	}
	if c.CoursesDir == "" {
		c.CoursesDir = "courses_out"
	}
	if c.FrameworksDir == "" {
		c.FrameworksDir = "frameworks_out"
	}
	if c.ProgramsDir == "" {
		c.ProgramsDir = "learningprograms_out"
	}
	if c.ReportPath == "" {
		c.ReportPath = "validations.json"
	}
	if c.ProgramReportPath == "" {
		c.ProgramReportPath = "validations_pathways.json"
	}
	if c.Passes == "" {
		c.Passes = PassFrameworks
	}
}

func (c *Config) runFrameworks() bool {
	return c.Passes == PassFrameworks || c.Passes == PassAll
}

func (c *Config) runPrograms() bool {
	return c.Passes == PassPrograms || c.Passes == PassAll
}
