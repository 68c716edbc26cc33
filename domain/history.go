package domain

// HistorySchemaVersion is the schema written by this build
const HistorySchemaVersion = 1

// MaxHistoryEntries caps the run history; the oldest runs are evicted first
const MaxHistoryEntries = 20

// PatternScore is the compact pattern projection stored per run
type PatternScore struct {
	Name string `json:"name" yaml:"name"`
	Pct  int    `json:"pct" yaml:"pct"`
}

// CheckScore is the compact check projection stored per run
type CheckScore struct {
	Dim  DimensionID `json:"dim" yaml:"dim"`
	Name string      `json:"name" yaml:"name"`
	Pts  int         `json:"pts" yaml:"pts"`
	Max  int         `json:"max" yaml:"max"`
}

// RunHistoryEntry is the compact summary of one past full run
type RunHistoryEntry struct {
	Timestamp  string         `json:"timestamp" yaml:"timestamp"`
	Version    string         `json:"version" yaml:"version"`
	OverallPct int            `json:"overallPct" yaml:"overall_pct"`
	Setup      int            `json:"setup" yaml:"setup"`
	Usage      int            `json:"usage" yaml:"usage"`
	Fluency    int            `json:"fluency" yaml:"fluency"`
	Maturity   Maturity       `json:"maturity" yaml:"maturity"`
	CEPatterns []PatternScore `json:"cePatterns" yaml:"ce_patterns"`
	Checks     []CheckScore   `json:"checks" yaml:"checks"`
}

// History is the on-disk run history document
type History struct {
	SchemaVersion int               `json:"schema_version" yaml:"schema_version"`
	Runs          []RunHistoryEntry `json:"runs" yaml:"runs"`
}

// Latest returns the most recent run
func (h History) Latest() (RunHistoryEntry, bool) {
	if len(h.Runs) == 0 {
		return RunHistoryEntry{}, false
	}
	return h.Runs[len(h.Runs)-1], true
}

// ScoreDelta is the change between two consecutive runs
type ScoreDelta struct {
	From    string `json:"from" yaml:"from"`
	To      string `json:"to" yaml:"to"`
	Overall int    `json:"overall" yaml:"overall"`
	Setup   int    `json:"setup" yaml:"setup"`
	Usage   int    `json:"usage" yaml:"usage"`
	Fluency int    `json:"fluency" yaml:"fluency"`

	// Comparable is false when the runs were produced by different versions,
	// whose check catalogs may have different budgets
	Comparable bool `json:"comparable" yaml:"comparable"`
}
