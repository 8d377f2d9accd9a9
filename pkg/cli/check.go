package cli

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"github.com/sourcegraph/conc/pool"

	"github.com/liquidlint/liquidlint/pkg/console"
	"github.com/liquidlint/liquidlint/pkg/constants"
	"github.com/liquidlint/liquidlint/pkg/lint"
)

// CheckOptions controls a check run.
type CheckOptions struct {
	Verbose bool
	Config  *Config
}

// fileReport is the outcome of checking one file.
type fileReport struct {
	Path    string
	Content string
	Result  *lint.Result
	ReadErr error
}

type runTotals struct {
	files    int
	errors   int
	warnings int
}

// CheckFiles lints every .liquid file reachable from paths and renders the
// findings. It returns an error when the configured fail threshold is hit or
// when no target files exist.
func CheckFiles(paths []string, opts CheckOptions) error {
	if opts.Config == nil {
		opts.Config = DefaultConfig()
	}

	targets, err := collectTargets(paths, opts.Config)
	if err != nil {
		return err
	}
	if len(targets) == 0 {
		return fmt.Errorf("no %s files found", constants.LiquidFileExtension)
	}

	var spin *console.Spinner
	if len(targets) > 1 && !opts.Verbose {
		message := fmt.Sprintf("Checking %d files...", len(targets))
		spin = console.NewSpinner(message)
		if spin.IsEnabled() {
			spin.Start()
		} else {
			// Piped output gets a plain progress line instead.
			fmt.Println(console.FormatProgressMessage(message))
		}
	}

	reports := checkAll(targets)

	if spin != nil {
		spin.Stop()
	}

	totals := renderReports(reports, opts)

	if len(targets) > 1 || opts.Verbose {
		fmt.Println(renderSummary(reports))
		fmt.Println(console.FormatCountMessage(fmt.Sprintf(
			"%d error(s), %d warning(s) in %d file(s)",
			totals.errors, totals.warnings, totals.files)))
	}
	if totals.errors == 0 && totals.warnings == 0 {
		fmt.Println(console.FormatSuccessMessage(
			fmt.Sprintf("%d file(s) checked, no problems found", totals.files)))
	}

	if opts.Config.Fails(totals.errors, totals.warnings) {
		return fmt.Errorf("found %d error(s) and %d warning(s)", totals.errors, totals.warnings)
	}
	return nil
}

// collectTargets expands files and directories into the list of .liquid
// files to check, honoring ignore patterns. Paths default to the current
// directory.
func collectTargets(paths []string, cfg *Config) ([]string, error) {
	if len(paths) == 0 {
		paths = []string{"."}
	}

	seen := map[string]bool{}
	var targets []string
	add := func(path string) {
		if seen[path] || cfg.ShouldIgnore(path) {
			return
		}
		seen[path] = true
		targets = append(targets, path)
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("cannot access %s: %w", path, err)
		}
		if !info.IsDir() {
			add(path)
			continue
		}
		err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if strings.HasPrefix(d.Name(), ".") && p != path {
					return filepath.SkipDir
				}
				return nil
			}
			if strings.HasSuffix(p, constants.LiquidFileExtension) {
				add(p)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", path, err)
		}
	}

	sort.Strings(targets)
	return targets, nil
}

// checkAll runs the pipeline over every target concurrently and returns the
// reports in path order.
func checkAll(targets []string) []fileReport {
	p := pool.NewWithResults[fileReport]().WithMaxGoroutines(runtime.NumCPU())
	for _, target := range targets {
		p.Go(func() fileReport {
			data, err := os.ReadFile(target)
			if err != nil {
				return fileReport{Path: target, ReadErr: err}
			}
			content := string(data)
			return fileReport{
				Path:    target,
				Content: content,
				Result:  lint.Run(lint.Document{Path: target, Content: content}),
			}
		})
	}
	reports := p.Wait()
	sort.Slice(reports, func(i, j int) bool { return reports[i].Path < reports[j].Path })
	return reports
}

// renderReports prints every report and accumulates totals.
func renderReports(reports []fileReport, opts CheckOptions) runTotals {
	totals := runTotals{files: len(reports)}
	for _, report := range reports {
		errors, warnings := renderReport(report, opts)
		totals.errors += errors
		totals.warnings += warnings
	}
	return totals
}

func renderReport(report fileReport, opts CheckOptions) (errors, warnings int) {
	if report.ReadErr != nil {
		fmt.Println(console.FormatErrorMessage(
			fmt.Sprintf("%s: %v", report.Path, report.ReadErr)))
		return 1, 0
	}

	res := report.Result
	if !res.HasSchema {
		if opts.Verbose {
			fmt.Println(console.FormatInfoMessage(report.Path + ": no schema block"))
		}
		return 0, 0
	}

	lines := strings.Split(report.Content, "\n")

	for _, issue := range res.Issues {
		if opts.Config.IssueDisabled(issue.Category) {
			continue
		}
		severity := "error"
		if issue.Fixed {
			// Auto-repaired problems are advisory: the parse succeeded.
			severity = "warning"
		}
		d := console.Diagnostic{
			Position: console.Position{File: report.Path, Line: issue.Line, Column: issue.Column},
			Severity: severity,
			Message:  issue.Message,
			Hint:     issue.Suggestion,
		}
		d.Context, d.ContextStart = contextAround(lines, issue.Line)
		fmt.Print(console.FormatDiagnostic(d))
		if severity == "error" {
			errors++
		} else {
			warnings++
		}
	}

	if res.Schema == nil {
		// The final unfixed issue above already counted this failure;
		// the original pre-repair error is still worth showing.
		fmt.Print(console.FormatDiagnostic(console.Diagnostic{
			Position: console.Position{File: report.Path, Line: res.ParseErrLine, Column: 1},
			Severity: "error",
			Message:  "schema is not valid JSON: " + res.ParseErr,
		}))
		return errors, warnings
	}

	for _, f := range res.Validation.Errors {
		d := console.Diagnostic{
			Position: console.Position{File: report.Path, Line: res.LineFor(f), Column: 1},
			Severity: "error",
			Message:  f.Message,
		}
		d.Context, d.ContextStart = contextAround(lines, d.Position.Line)
		fmt.Print(console.FormatDiagnostic(d))
		errors++
	}
	for _, f := range res.Validation.Warnings {
		d := console.Diagnostic{
			Position: console.Position{File: report.Path, Line: res.LineFor(f), Column: 1},
			Severity: "warning",
			Message:  f.Message,
			Hint:     f.Suggestion,
		}
		fmt.Print(console.FormatDiagnostic(d))
		warnings++
	}

	return errors, warnings
}

// contextAround extracts up to two lines of context either side of line.
// Returns nil when the line is unknown.
func contextAround(lines []string, line int) ([]string, int) {
	if line < 1 || line > len(lines) {
		return nil, 0
	}
	start := line - 2
	if start < 1 {
		start = 1
	}
	end := line + 2
	if end > len(lines) {
		end = len(lines)
	}
	return lines[start-1 : end], start
}

func renderSummary(reports []fileReport) string {
	rows := make([][]string, 0, len(reports))
	totalErrors, totalWarnings, totalFixed := 0, 0, 0
	for _, report := range reports {
		errors, warnings, fixed := countFindings(report)
		totalErrors += errors
		totalWarnings += warnings
		totalFixed += fixed
		rows = append(rows, []string{
			console.ToRelativePath(report.Path),
			fmt.Sprintf("%d", errors),
			fmt.Sprintf("%d", warnings),
			fmt.Sprintf("%d", fixed),
		})
	}
	return console.RenderTable(console.TableConfig{
		Title:     "Check summary",
		Headers:   []string{"File", "Errors", "Warnings", "Auto-fixed"},
		Rows:      rows,
		ShowTotal: true,
		TotalRow: []string{"Total",
			fmt.Sprintf("%d", totalErrors),
			fmt.Sprintf("%d", totalWarnings),
			fmt.Sprintf("%d", totalFixed)},
	})
}

// countFindings tallies a report without rendering it. Disabled categories
// still count toward the summary so the table reflects the file's true state.
// Auto-repaired issues count as warnings and are tallied separately as fixed.
func countFindings(report fileReport) (errors, warnings, fixed int) {
	if report.ReadErr != nil {
		return 1, 0, 0
	}
	res := report.Result
	if !res.HasSchema {
		return 0, 0, 0
	}
	for _, issue := range res.Issues {
		if issue.Fixed {
			warnings++
			fixed++
		} else {
			errors++
		}
	}
	if res.Schema == nil {
		// The final unfixed issue already counted as the parse error.
		return errors, warnings, fixed
	}
	return errors + len(res.Validation.Errors), warnings + len(res.Validation.Warnings), fixed
}
