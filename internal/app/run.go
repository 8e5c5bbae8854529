package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/davecgh/go-spew/spew"

	"github.com/vk/casebridge/internal/assemble"
	"github.com/vk/casebridge/internal/caseindex"
	"github.com/vk/casebridge/internal/casepkg"
	"github.com/vk/casebridge/internal/ctid"
	"github.com/vk/casebridge/internal/ctxlog"
	"github.com/vk/casebridge/internal/fetch"
	"github.com/vk/casebridge/internal/hierarchy"
	"github.com/vk/casebridge/internal/output"
	"github.com/vk/casebridge/internal/validate"
)

// Run executes the conversion: fetch and decode the CASE package, index
// items and resolve associations once, then run the selected passes and
// write their graphs and validation reports.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	cfg := a.config
	a.logger.Debug("App.Run method started.")

	data, err := fetch.Package(ctx, cfg.Source)
	if err != nil {
		return fmt.Errorf("failed to retrieve CASE package: %w", err)
	}
	pkg, err := casepkg.Decode(data)
	if err != nil {
		return err
	}
	a.logger.Info("CASE package loaded.",
		"items", len(pkg.Items),
		"associations", len(pkg.Associations),
		"language", pkg.Document.DeclaredLanguage(),
	)

	// Both passes share one index and one adjacency graph; each constructs
	// its own containers and visited sets from them.
	idx := caseindex.New(pkg.Items)
	graph := hierarchy.Build(pkg.Associations, idx)
	a.logger.Debug("Associations resolved.", "indexed_items", idx.Len(), "edges", graph.Edges())
	if a.logger.Enabled(ctx, slog.LevelDebug) {
		a.logger.Debug("Adjacency dump.", "children_of", spew.Sdump(graph.Adjacency()))
	}

	in := assemble.Input{
		Document: pkg.Document,
		Index:    idx,
		Graph:    graph,
		Options: assemble.Options{
			RegistryBase: cfg.RegistryBase,
			Publisher:    ctid.ParseList(cfg.Publisher, cfg.RegistryBase),
			OwnedBy:      ctid.ParseList(cfg.OwnedBy, cfg.RegistryBase),
			OfferedBy:    ctid.ParseList(cfg.OfferedBy, cfg.RegistryBase),
		},
	}

	if cfg.runFrameworks() {
		if err := a.runFrameworkPass(ctx, in); err != nil {
			return err
		}
	}
	if cfg.runPrograms() {
		if err := a.runProgramPass(ctx, in); err != nil {
			return err
		}
	}

	a.logger.Debug("App.Run method finished.")
	return nil
}

// runFrameworkPass assembles one framework per course, validates, and
// writes the framework graphs, the standalone course graphs, and the report.
func (a *App) runFrameworkPass(ctx context.Context, in assemble.Input) error {
	cfg := a.config
	set := assemble.Frameworks(ctx, in)
	report := validate.ForFrameworks(set, cfg.RegistryBase)

	for _, entry := range set.Entries {
		if err := output.WriteJSON(output.FrameworkFile(cfg.FrameworksDir, entry.Course.CTID), entry.FrameworkGraph()); err != nil {
			return err
		}
		if err := output.WriteJSON(output.CourseFile(cfg.CoursesDir, entry.Course.CTID), entry.CourseGraph()); err != nil {
			return err
		}
	}
	if err := output.WriteJSON(cfg.ReportPath, report); err != nil {
		return err
	}

	a.logger.Info("Framework pass finished.",
		"courses", report.Summary["course_count"],
		"frameworks", report.Summary["framework_count"],
		"competencies", report.Summary["competency_count"],
		"courses_dir", cfg.CoursesDir,
		"frameworks_dir", cfg.FrameworksDir,
	)
	a.logSummary(report.HasViolations(), cfg.ReportPath, map[string]int{
		"framework_errors":  report.Summary["framework_error_count"],
		"competency_errors": report.Summary["competency_error_count"],
		"course_errors":     report.Summary["course_error_count"],
	})
	return nil
}

// runProgramPass assembles one learning program per pathway. The registry
// publish wrapper needs an organization, so this pass refuses to run
// without a publisher and at least one of ownedBy/offeredBy.
func (a *App) runProgramPass(ctx context.Context, in assemble.Input) error {
	cfg := a.config

	publisherCTID := ""
	if len(in.Options.Publisher) > 0 {
		publisherCTID = ctid.Extract(in.Options.Publisher[0])
	}
	if publisherCTID == "" {
		return errors.New("the programs pass requires at least one publisher CTID/URI")
	}
	if len(in.Options.OwnedBy) == 0 && len(in.Options.OfferedBy) == 0 {
		return errors.New("the programs pass requires at least one of ownedBy or offeredBy")
	}

	set := assemble.Programs(ctx, in)
	report := validate.ForPrograms(set, cfg.RegistryBase)

	for _, entry := range set.Entries {
		path := output.ProgramFile(cfg.ProgramsDir, entry.Program.CTID)
		if err := output.WriteJSON(path, entry.Wrapper(publisherCTID)); err != nil {
			return err
		}
	}
	if err := output.WriteJSON(cfg.ProgramReportPath, report); err != nil {
		return err
	}

	a.logger.Info("Program pass finished.",
		"learning_programs", report.Summary["learning_program_count"],
		"programs_dir", cfg.ProgramsDir,
	)
	a.logSummary(report.HasViolations(), cfg.ProgramReportPath, map[string]int{
		"learning_program_errors": report.Summary["learning_program_error_count"],
	})
	return nil
}

func (a *App) logSummary(hasViolations bool, reportPath string, counts map[string]int) {
	attrs := make([]any, 0, len(counts)*2+2)
	for k, v := range counts {
		attrs = append(attrs, k, v)
	}
	if hasViolations {
		attrs = append(attrs, "details", reportPath)
		a.logger.Warn("Validation found issues.", attrs...)
		return
	}
	a.logger.Info("Validation clean.", attrs...)
}
