package commands

import (
	"fmt"
	"strings"

	"github.com/gltfkit/gltfkit-go/pkg/validate"
	"github.com/gltfkit/gltfkit-go/pkg/validate/rules"
)

const validateUsage = `gltfkit validate - Check a document against the validation rules

Usage:
  gltfkit validate [flags] <file>
  gltfkit validate -rules

Exits with status 2 when any error-level violation remains.
`

// RunValidate executes the validate command.
func RunValidate(env *Env, args []string) int {
	fs := newFlagSet(env, "validate", validateUsage)
	disable := fs.String("disable", "", "Comma-separated rule IDs to skip")
	minSeverity := fs.String("min-severity", "info", "Lowest severity to print (error, warning, info)")
	noData := fs.Bool("no-data", false, "Skip rules that resolve buffers and decode accessors")
	list := fs.Bool("rules", false, "List the rules and exit")
	if err := fs.Parse(args); err != nil {
		return exitCommandError
	}

	registry := rules.NewDefaultRegistry()
	if err := registry.Configure(env.Config.Validation.Disable, env.Config.Validation.Severity); err != nil {
		return env.errorf("validate config: %v", err)
	}
	if *disable != "" {
		if err := registry.Configure(strings.Split(*disable, ","), nil); err != nil {
			return env.errorf("%v", err)
		}
	}
	if *list {
		printRules(env, registry)
		return exitSuccess
	}

	threshold, err := validate.ParseSeverity(*minSeverity)
	if err != nil {
		return env.errorf("%v", err)
	}
	if !requireArgs(env, fs, 1, "document path") {
		return exitCommandError
	}

	l, err := env.Open(fs.Arg(0))
	if err != nil {
		return env.errorf("%v", err)
	}
	in := &validate.Input{Document: l.Document}
	if !*noData {
		in.Source = env.Session(l)
	}

	v := validate.NewValidator(registry)
	v.Logger = env.Logger
	violations := v.Validate(in)

	for _, vi := range validate.FilterBySeverity(violations, threshold) {
		fmt.Fprintln(env.Stdout, vi.String())
	}
	counts := validate.Count(violations)
	if len(violations) == 0 {
		fmt.Fprintf(env.Stdout, "%s: no issues found\n", l.Path)
	} else {
		fmt.Fprintf(env.Stdout, "%s: %d errors, %d warnings, %d info\n", l.Path,
			counts[validate.SeverityError], counts[validate.SeverityWarning], counts[validate.SeverityInfo])
	}

	if validate.HasErrors(violations) {
		return exitInvalid
	}
	return exitSuccess
}

func printRules(env *Env, registry *validate.RuleRegistry) {
	for _, r := range registry.AllRules() {
		state := ""
		if !registry.IsEnabled(r.ID()) {
			state = " (disabled)"
		}
		fmt.Fprintf(env.Stdout, "%-10s %-8s %-10s %s%s\n",
			r.ID(), registry.GetSeverity(r.ID()), r.Category(), r.Name(), state)
	}
}
