package domain

// ReportMode selects which sections a full report renders
type ReportMode string

const (
	// ReportModeEmpty is shown when there is no instruction file at all
	ReportModeEmpty ReportMode = "empty"

	// ReportModeGrowth focuses on the next few setup steps
	ReportModeGrowth ReportMode = "growth"

	// ReportModeFull renders every section
	ReportModeFull ReportMode = "full"
)

// GrowthScoreCeiling is the overall score below which any workspace gets the
// growth report
const GrowthScoreCeiling = 40

// reportModeRule is one row of the report mode decision table. A rule matches
// when the maturity is listed (or the list is empty) and the overall score is
// below MaxScore (or MaxScore is negative).
type reportModeRule struct {
	Maturities []Maturity
	MaxScore   int
	Mode       ReportMode
}

var reportModeRules = []reportModeRule{
	{Maturities: []Maturity{MaturityEmpty}, MaxScore: -1, Mode: ReportModeEmpty},
	{Maturities: []Maturity{MaturityMinimal, MaturityBasic}, MaxScore: -1, Mode: ReportModeGrowth},
	{MaxScore: GrowthScoreCeiling, Mode: ReportModeGrowth},
	{MaxScore: -1, Mode: ReportModeFull},
}

// SelectReportMode evaluates the decision table top-down
func SelectReportMode(maturity Maturity, overallScore int) ReportMode {
	for _, rule := range reportModeRules {
		if rule.matches(maturity, overallScore) {
			return rule.Mode
		}
	}
	return ReportModeFull
}

func (r reportModeRule) matches(maturity Maturity, score int) bool {
	if len(r.Maturities) > 0 {
		found := false
		for _, m := range r.Maturities {
			if m == maturity {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if r.MaxScore >= 0 && score >= r.MaxScore {
		return false
	}
	return true
}
