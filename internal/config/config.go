// Package config loads an optional HCL run profile holding the conversion
// settings that would otherwise be repeated as flags on every invocation:
// the registry base, organization reference lists, and output locations.
// Profile expressions may reference process environment variables through
// the `env` object, e.g. `publisher = env.PUBLISHER_CTID`.
package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/casebridge/internal/ctxlog"
)

// Profile is the decoded run profile. Every field is optional; unset fields
// fall back to CLI flags and built-in defaults.
type Profile struct {
	RegistryBase  string `hcl:"registry_base,optional"`
	Publisher     string `hcl:"publisher,optional"`
	OwnedBy       string `hcl:"owned_by,optional"`
	OfferedBy     string `hcl:"offered_by,optional"`
	CoursesDir    string `hcl:"courses_dir,optional"`
	FrameworksDir string `hcl:"frameworks_dir,optional"`
	ProgramsDir   string `hcl:"programs_dir,optional"`
	ReportPath    string `hcl:"report_path,optional"`
	ProgramReport string `hcl:"program_report_path,optional"`
}

// Load parses and decodes the profile at path. A missing or unreadable
// file, a syntax error, or an undecodable body are all fatal: a profile the
// user pointed at must be honored or rejected, never half-read.
func Load(ctx context.Context, path string) (*Profile, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loading run profile.", "path", path)

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse profile %s: %w", path, diags)
	}

	var profile Profile
	if diags := gohcl.DecodeBody(file.Body, evalContext(), &profile); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode profile %s: %w", path, diags)
	}

	logger.Debug("Run profile loaded.", "path", path)
	return &profile, nil
}

// evalContext exposes the process environment to profile expressions as a
// single `env` object value.
func evalContext() *hcl.EvalContext {
	vars := make(map[string]cty.Value)
	for _, kv := range os.Environ() {
		if name, value, ok := strings.Cut(kv, "="); ok && name != "" {
			vars[name] = cty.StringVal(value)
		}
	}
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"env": cty.ObjectVal(vars),
		},
	}
}
