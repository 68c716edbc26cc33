package service

import (
	"html/template"
	"io"
	"strings"
	"time"

	"github.com/ludo-technologies/brainscan/domain"
)

// HTMLData is the view model rendered by the HTML report template
type HTMLData struct {
	GeneratedAt string
	Duration    int64
	Version     string
	Path        string
	Overall     int
	Mode        domain.ReportMode
	Quick       bool
	BrainState  domain.BrainState
	Features    []HTMLFeature
	Dimensions  []domain.Dimension
	Patterns    []domain.Pattern
	Fixes       []domain.Fix
}

// HTMLFeature is one detector feature row
type HTMLFeature struct {
	Name    string
	Present bool
}

// writeReportHTML renders a self-contained single-page report
func (f *OutputFormatterImpl) writeReportHTML(report *domain.Report, writer io.Writer) error {
	data := HTMLData{
		GeneratedAt: report.Timestamp.Format(time.RFC3339),
		Duration:    report.DurationMs,
		Version:     report.Version,
		Path:        report.Path,
		Overall:     report.OverallScore(),
		Mode:        report.ReportMode(),
		Quick:       report.Mode == domain.ScanModeQuick,
		BrainState:  report.BrainState,
		Dimensions:  report.Dimensions(),
		Patterns:    report.CEPatterns,
		Fixes:       report.TopFixes,
	}
	for _, feat := range domain.AllFeatures() {
		data.Features = append(data.Features, HTMLFeature{Name: string(feat), Present: report.BrainState.HasFeature(feat)})
	}

	funcMap := template.FuncMap{
		"upper": strings.ToUpper,
		"add": func(a, b int) int {
			return a + b
		},
		"scoreQuality": func(score int) string {
			switch {
			case score >= 85:
				return "excellent"
			case score >= 70:
				return "good"
			case score >= 50:
				return "fair"
			default:
				return "poor"
			}
		},
	}

	tmpl, err := template.New("report").Funcs(funcMap).Parse(htmlTemplate)
	if err != nil {
		return err
	}
	return tmpl.Execute(writer, data)
}

const htmlTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>brainscan Report</title>
    <style>
        * { margin: 0; padding: 0; box-sizing: border-box; }
        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, Arial, sans-serif;
            line-height: 1.6;
            color: #2d2d2d;
            background: #f0f2f7;
        }
        .container { max-width: 1100px; margin: 0 auto; padding: 24px; }
        .card {
            background: white;
            border-radius: 10px;
            padding: 24px 28px;
            margin-bottom: 20px;
            box-shadow: 0 4px 18px rgba(0,0,0,0.06);
        }
        h1 { color: #3f51b5; margin-bottom: 6px; }
        h2 { margin-bottom: 14px; color: #2c3e50; }
        .subtitle { color: #666; font-size: 13px; }
        .maturity {
            display: inline-block;
            margin: 12px 12px 0 0;
            padding: 6px 16px;
            border-radius: 20px;
            background: #3f51b5;
            color: white;
            font-weight: 700;
            letter-spacing: 1px;
        }
        .overall { font-size: 28px; font-weight: 700; }

        .features { display: flex; flex-wrap: wrap; gap: 8px; margin-top: 14px; }
        .feature { padding: 3px 10px; border-radius: 12px; font-size: 12px; }
        .feature.on { background: #e8f5e9; color: #2e7d32; }
        .feature.off { background: #eceff1; color: #90a4ae; }

        .score-bar-item { margin-bottom: 18px; }
        .score-bar-header { display: flex; justify-content: space-between; font-size: 14px; margin-bottom: 4px; }
        .score-bar-container { height: 10px; background: #e0e0e0; border-radius: 5px; overflow: hidden; }
        .score-bar-fill { height: 100%; border-radius: 5px; }
        .score-excellent { background: #4caf50; }
        .score-good { background: #8bc34a; }
        .score-fair { background: #ff9800; }
        .score-poor { background: #f44336; }

        .table { width: 100%; border-collapse: collapse; margin-top: 8px; font-size: 14px; }
        .table th, .table td { padding: 8px 10px; text-align: left; border-bottom: 1px solid #eee; }
        .table th { background: #fafafa; font-weight: 600; }
        .layer-row td { font-weight: 600; background: #f7f8fc; }
        .status-pass { color: #2e7d32; }
        .status-warn { color: #ef6c00; }
        .status-fail { color: #c62828; }
        .impact-high { color: #c62828; font-weight: 600; }
        .impact-medium { color: #ef6c00; }
        .impact-low { color: #78909c; }
        .muted { color: #888; }
    </style>
</head>
<body>
    <div class="container">
        <div class="card">
            <h1>brainscan Report</h1>
            <p class="subtitle">{{.Path}} | Generated: {{.GeneratedAt}} | Duration: {{.Duration}}ms | Version: {{.Version}}</p>
            <span class="maturity">{{upper (print .BrainState.Maturity)}}</span>
            {{if not .Quick}}{{if ne (print .Mode) "empty"}}<span class="overall">Overall: {{.Overall}}/100</span>{{end}}{{end}}
            <div class="features">
                {{range .Features}}<span class="feature {{if .Present}}on{{else}}off{{end}}">{{.Name}}</span>{{end}}
            </div>
        </div>

        {{if .Quick}}
        <div class="card"><p class="muted">Run a full scan for dimension scores.</p></div>
        {{else if eq (print .Mode) "empty"}}
        <div class="card">
            <h2>Getting Started</h2>
            <p>No CLAUDE.md found. Create one at the workspace root describing the project, its conventions and how to verify changes, then scan again.</p>
        </div>
        {{else}}
        <div class="card">
            <h2>Dimensions</h2>
            {{range .Dimensions}}
            <div class="score-bar-item">
                <div class="score-bar-header">
                    <strong>{{.Name}}</strong>
                    <span>{{.NormalizedScore}}/100 ({{.Grade}}, {{.GradeLabel}})</span>
                </div>
                <div class="score-bar-container">
                    <div class="score-bar-fill score-{{scoreQuality .NormalizedScore}}" style="width: {{.NormalizedScore}}%"></div>
                </div>
            </div>
            {{end}}
        </div>

        {{if .Fixes}}
        <div class="card">
            <h2>Top Fixes</h2>
            <table class="table">
                <thead><tr><th>#</th><th>Fix</th><th>Dimension</th><th>Impact</th><th>Estimate</th></tr></thead>
                <tbody>
                    {{range $i, $fix := .Fixes}}
                    <tr>
                        <td>{{add $i 1}}</td>
                        <td>{{$fix.Title}}<div class="muted">{{$fix.Description}}</div></td>
                        <td>{{$fix.Category}}</td>
                        <td class="impact-{{$fix.Impact}}">{{$fix.Impact}}</td>
                        <td>{{$fix.TimeEstimate}}</td>
                    </tr>
                    {{end}}
                </tbody>
            </table>
        </div>
        {{end}}

        {{if eq (print .Mode) "full"}}
        <div class="card">
            <h2>Context Engineering Patterns</h2>
            {{range .Patterns}}
            <div class="score-bar-item">
                <div class="score-bar-header"><span>{{.Name}}</span><span>{{.Percentage}}%</span></div>
                <div class="score-bar-container">
                    <div class="score-bar-fill score-{{scoreQuality .Percentage}}" style="width: {{.Percentage}}%"></div>
                </div>
            </div>
            {{end}}
        </div>
        {{end}}

        {{range .Dimensions}}
        <div class="card">
            <h2>{{.Name}}</h2>
            <table class="table">
                <thead><tr><th>Check</th><th>Points</th><th>Notes</th></tr></thead>
                <tbody>
                    {{range .Layers}}
                    <tr class="layer-row"><td>{{.Name}}</td><td>{{.Points}}/{{.MaxPoints}}</td><td>{{if .Failed}}layer failed{{end}}</td></tr>
                    {{range .Checks}}
                    <tr>
                        <td class="status-{{.Status}}">{{.Name}}</td>
                        <td>{{.Points}}/{{.MaxPoints}}</td>
                        <td class="muted">{{.Message}}</td>
                    </tr>
                    {{end}}
                    {{end}}
                </tbody>
            </table>
        </div>
        {{end}}
        {{end}}
    </div>
</body>
</html>`
