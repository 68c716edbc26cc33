package service

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"github.com/ludo-technologies/brainscan/domain"
)

// OutputFormatterImpl implements domain.OutputFormatter
type OutputFormatterImpl struct {
	showDetails bool

	heading *color.Color
	good    *color.Color
	fair    *color.Color
	poor    *color.Color
	muted   *color.Color
}

// NewOutputFormatter creates a formatter. useColor only affects text output.
func NewOutputFormatter(useColor, showDetails bool) *OutputFormatterImpl {
	f := &OutputFormatterImpl{
		showDetails: showDetails,
		heading:     color.New(color.Bold),
		good:        color.New(color.FgGreen),
		fair:        color.New(color.FgYellow),
		poor:        color.New(color.FgRed),
		muted:       color.New(color.Faint),
	}
	for _, c := range []*color.Color{f.heading, f.good, f.fair, f.poor, f.muted} {
		if useColor {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return f
}

// WriteJSON writes data as indented JSON to the writer
func WriteJSON(writer io.Writer, data any) error {
	encoder := json.NewEncoder(writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// WriteYAML writes data as YAML to the writer
func WriteYAML(writer io.Writer, data any) error {
	encoder := yaml.NewEncoder(writer)
	encoder.SetIndent(2)
	if err := encoder.Encode(data); err != nil {
		return err
	}
	return encoder.Close()
}

// ReportJSON wraps a report with fields derived at render time
type ReportJSON struct {
	domain.Report `yaml:",inline"`
	OverallScore  int               `json:"overall_score" yaml:"overall_score"`
	ReportMode    domain.ReportMode `json:"report_mode" yaml:"report_mode"`
}

// HistoryJSON wraps a history with run-over-run deltas
type HistoryJSON struct {
	SchemaVersion int                      `json:"schema_version" yaml:"schema_version"`
	Runs          []domain.RunHistoryEntry `json:"runs" yaml:"runs"`
	Deltas        []domain.ScoreDelta      `json:"deltas" yaml:"deltas"`
}

// WriteReport writes report in the given format
func (f *OutputFormatterImpl) WriteReport(report *domain.Report, format domain.OutputFormat, writer io.Writer) error {
	switch format {
	case domain.OutputFormatJSON:
		return WriteJSON(writer, f.wrapReport(report))
	case domain.OutputFormatYAML:
		return WriteYAML(writer, f.wrapReport(report))
	case domain.OutputFormatHTML:
		return f.writeReportHTML(report, writer)
	case domain.OutputFormatText, "":
		return f.writeReportText(report, writer)
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

// WriteHistory writes stored runs and their deltas
func (f *OutputFormatterImpl) WriteHistory(history domain.History, format domain.OutputFormat, writer io.Writer) error {
	wrapped := HistoryJSON{
		SchemaVersion: history.SchemaVersion,
		Runs:          history.Runs,
		Deltas:        ComputeDeltas(history),
	}
	switch format {
	case domain.OutputFormatJSON:
		return WriteJSON(writer, wrapped)
	case domain.OutputFormatYAML:
		return WriteYAML(writer, wrapped)
	case domain.OutputFormatText, "":
		return f.writeHistoryText(wrapped, writer)
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

func (f *OutputFormatterImpl) wrapReport(report *domain.Report) ReportJSON {
	return ReportJSON{
		Report:       *report,
		OverallScore: report.OverallScore(),
		ReportMode:   report.ReportMode(),
	}
}

// writeReportText renders the sections selected by the report mode
func (f *OutputFormatterImpl) writeReportText(report *domain.Report, writer io.Writer) error {
	fmt.Fprintf(writer, "\n%s\n", f.heading.Sprint("=== brainscan Report ==="))
	fmt.Fprintf(writer, "Path: %s\n", report.Path)
	fmt.Fprintf(writer, "Generated: %s\n", report.Timestamp.Format(time.RFC3339))
	fmt.Fprintf(writer, "Version: %s\n", report.Version)

	f.writeBrainState(report.BrainState, writer)

	if report.Mode == domain.ScanModeQuick {
		fmt.Fprintf(writer, "\nRun a full scan for dimension scores.\n")
		return nil
	}

	switch report.ReportMode() {
	case domain.ReportModeEmpty:
		fmt.Fprintf(writer, "\n%s\n", f.heading.Sprint("Getting Started"))
		fmt.Fprintf(writer, "  No CLAUDE.md found. Create one at the workspace root describing the\n")
		fmt.Fprintf(writer, "  project, its conventions and how to verify changes, then scan again.\n")
		f.writeFixes(report.TopFixes, writer)

	case domain.ReportModeGrowth:
		f.writeOverall(report, writer)
		f.writeFixes(report.TopFixes, writer)
		f.writeDimensions(report, writer)

	default:
		f.writeOverall(report, writer)
		f.writeDimensions(report, writer)
		f.writePatterns(report.CEPatterns, writer)
		f.writeFixes(report.TopFixes, writer)
	}

	fmt.Fprintf(writer, "\n%s\n", f.muted.Sprintf("Scanned in %dms", report.DurationMs))
	return nil
}

func (f *OutputFormatterImpl) writeBrainState(state domain.BrainState, writer io.Writer) {
	fmt.Fprintf(writer, "\nBrain State: %s\n", f.heading.Sprint(strings.ToUpper(string(state.Maturity))))

	present := make([]string, 0, len(state.Has))
	missing := make([]string, 0, len(state.Has))
	for _, feat := range domain.AllFeatures() {
		if state.HasFeature(feat) {
			present = append(present, string(feat))
		} else {
			missing = append(missing, string(feat))
		}
	}
	if len(present) > 0 {
		fmt.Fprintf(writer, "  Present: %s\n", strings.Join(present, ", "))
	}
	if len(missing) > 0 {
		fmt.Fprintf(writer, "  Missing: %s\n", f.muted.Sprint(strings.Join(missing, ", ")))
	}
	if state.PreviousScore != nil {
		fmt.Fprintf(writer, "  Previous overall score: %d\n", *state.PreviousScore)
	}
}

func (f *OutputFormatterImpl) writeOverall(report *domain.Report, writer io.Writer) {
	overall := report.OverallScore()
	fmt.Fprintf(writer, "\nOverall: %s\n", f.scoreColor(overall).Sprintf("%d/100", overall))
	if prev := report.BrainState.PreviousScore; prev != nil {
		delta := overall - *prev
		fmt.Fprintf(writer, "  Change since last scan: %+d\n", delta)
	}
}

func (f *OutputFormatterImpl) writeDimensions(report *domain.Report, writer io.Writer) {
	for _, dim := range report.Dimensions() {
		fmt.Fprintf(writer, "\n%s  %s  %s (%s)\n",
			f.heading.Sprint(dim.Name),
			f.scoreColor(dim.NormalizedScore).Sprintf("%3d/100", dim.NormalizedScore),
			dim.Grade, dim.GradeLabel)
		for _, layer := range dim.Layers {
			marker := ""
			if layer.Failed {
				marker = f.poor.Sprint(" [FAILED]")
			}
			fmt.Fprintf(writer, "  %-22s %3d/%-3d%s\n", layer.Name, layer.Points, layer.MaxPoints, marker)
			if !f.showDetails {
				continue
			}
			for _, c := range layer.Checks {
				fmt.Fprintf(writer, "    %s %s (%d/%d) %s\n",
					f.statusMark(c.Status), c.Name, c.Points, c.MaxPoints, f.muted.Sprint(c.Message))
			}
		}
	}
}

func (f *OutputFormatterImpl) writePatterns(patterns []domain.Pattern, writer io.Writer) {
	if len(patterns) == 0 {
		return
	}
	fmt.Fprintf(writer, "\n%s\n", f.heading.Sprint("Context Engineering Patterns"))
	for _, p := range patterns {
		fmt.Fprintf(writer, "  %-22s %s\n", p.Name, f.scoreColor(p.Percentage).Sprintf("%3d%%", p.Percentage))
	}
}

func (f *OutputFormatterImpl) writeFixes(fixes []domain.Fix, writer io.Writer) {
	if len(fixes) == 0 {
		return
	}
	fmt.Fprintf(writer, "\n%s\n", f.heading.Sprint("Top Fixes"))
	for i, fix := range fixes {
		estimate := ""
		if fix.TimeEstimate != "" {
			estimate = f.muted.Sprintf(" (~%s)", fix.TimeEstimate)
		}
		fmt.Fprintf(writer, "  %d. %s [%s, %s]%s\n", i+1, fix.Title, fix.Category, f.impactColor(fix.Impact).Sprint(fix.Impact), estimate)
		if fix.Description != "" {
			fmt.Fprintf(writer, "     %s\n", fix.Description)
		}
	}
}

func (f *OutputFormatterImpl) writeHistoryText(history HistoryJSON, writer io.Writer) error {
	fmt.Fprintf(writer, "\n%s\n", f.heading.Sprint("=== brainscan History ==="))
	if len(history.Runs) == 0 {
		fmt.Fprintf(writer, "No runs recorded yet.\n")
		return nil
	}

	fmt.Fprintf(writer, "%-22s %-10s %7s %6s %6s %8s\n", "Timestamp", "Maturity", "Overall", "Setup", "Usage", "Fluency")
	for i, run := range history.Runs {
		change := ""
		if i > 0 {
			d := history.Deltas[i-1]
			change = fmt.Sprintf(" %+d", d.Overall)
			if !d.Comparable {
				change += f.muted.Sprint(" (version changed)")
			}
		}
		fmt.Fprintf(writer, "%-22s %-10s %7d %6d %6d %8d%s\n",
			run.Timestamp, run.Maturity, run.OverallPct, run.Setup, run.Usage, run.Fluency, change)
	}
	return nil
}

func (f *OutputFormatterImpl) scoreColor(score int) *color.Color {
	switch {
	case score >= 70:
		return f.good
	case score >= 50:
		return f.fair
	default:
		return f.poor
	}
}

func (f *OutputFormatterImpl) impactColor(impact domain.Impact) *color.Color {
	switch impact {
	case domain.ImpactHigh:
		return f.poor
	case domain.ImpactMedium:
		return f.fair
	default:
		return f.muted
	}
}

func (f *OutputFormatterImpl) statusMark(status domain.CheckStatus) string {
	switch status {
	case domain.CheckStatusPass:
		return f.good.Sprint("✓")
	case domain.CheckStatusWarn:
		return f.fair.Sprint("!")
	default:
		return f.poor.Sprint("✗")
	}
}
