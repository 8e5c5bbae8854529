// Package cli turns command-line arguments into an app.Config.
package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/vk/casebridge/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated app.Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("casebridge", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
casebridge - Convert CASE CFPackages into CTDL course, framework, and
learning-program graphs for the Credential Engine registry.

Usage:
  casebridge [options] [SOURCE]

Arguments:
  SOURCE
    URL or local file path of a CASE CFPackage JSON document.

Options:
`)
		flagSet.PrintDefaults()
	}

	sourceFlag := flagSet.String("source", "", "CASE package URL or file path.")
	sFlag := flagSet.String("s", "", "CASE package URL or file path (shorthand).")
	profileFlag := flagSet.String("profile", "", "Path to an HCL run profile.")
	baseFlag := flagSet.String("registry-base", "", "Registry base URL for external identifiers.")
	publisherFlag := flagSet.String("publisher", "", "Publisher CTID(s)/URI(s), comma-separated.")
	ownedByFlag := flagSet.String("owned-by", "", "ownedBy CTID(s)/URI(s), comma-separated.")
	offeredByFlag := flagSet.String("offered-by", "", "offeredBy CTID(s)/URI(s), comma-separated.")
	coursesDirFlag := flagSet.String("courses-dir", "", "Output directory for course graphs.")
	frameworksDirFlag := flagSet.String("frameworks-dir", "", "Output directory for framework graphs.")
	programsDirFlag := flagSet.String("programs-dir", "", "Output directory for learning-program wrappers.")
	reportFlag := flagSet.String("report", "", "Validation report path for the frameworks pass.")
	programReportFlag := flagSet.String("program-report", "", "Validation report path for the programs pass.")
	passesFlag := flagSet.String("passes", "", "Which passes to run: 'frameworks', 'programs', or 'all'.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	source := ""
	if *sourceFlag != "" {
		source = *sourceFlag
	} else if *sFlag != "" {
		source = *sFlag
	} else if flagSet.NArg() > 0 {
		source = flagSet.Arg(0)
	}

	if source == "" {
		slog.Debug("No source provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	config, err := app.NewConfig(app.Config{
		Source:            source,
		ProfilePath:       *profileFlag,
		RegistryBase:      *baseFlag,
		Publisher:         *publisherFlag,
		OwnedBy:           *ownedByFlag,
		OfferedBy:         *offeredByFlag,
		CoursesDir:        *coursesDirFlag,
		FrameworksDir:     *frameworksDirFlag,
		ProgramsDir:       *programsDirFlag,
		ReportPath:        *reportFlag,
		ProgramReportPath: *programReportFlag,
		Passes:            strings.ToLower(*passesFlag),
		LogFormat:         logFormat,
		LogLevel:          logLevel,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.")
	return config, false, nil
}
