package domain

// GradeBand is one row of a grade ladder; MinScore is inclusive
type GradeBand struct {
	MinScore int
	Grade    string
	Label    string
}

// Grade ladders, evaluated top-down. The band boundaries are shared by all
// three dimensions; only the vocabulary differs.
var (
	setupGrades = []GradeBand{
		{MinScore: 85, Grade: "A", Label: "Excellent"},
		{MinScore: 70, Grade: "B", Label: "Good"},
		{MinScore: 50, Grade: "C", Label: "Fair"},
		{MinScore: 30, Grade: "D", Label: "Needs work"},
		{MinScore: 0, Grade: "F", Label: "Getting started"},
	}

	usageGrades = []GradeBand{
		{MinScore: 85, Grade: "Thriving", Label: "Compounding daily"},
		{MinScore: 70, Grade: "Active", Label: "Regular use"},
		{MinScore: 50, Grade: "Growing", Label: "Building habits"},
		{MinScore: 30, Grade: "Emerging", Label: "Occasional use"},
		{MinScore: 0, Grade: "Dormant", Label: "Barely used"},
	}

	fluencyGrades = []GradeBand{
		{MinScore: 85, Grade: "Expert", Label: "Fluent operator"},
		{MinScore: 70, Grade: "Proficient", Label: "Confident user"},
		{MinScore: 50, Grade: "Developing", Label: "Learning the ropes"},
		{MinScore: 30, Grade: "Novice", Label: "Early experiments"},
		{MinScore: 0, Grade: "Beginner", Label: "Just starting"},
	}
)

// GradeTable returns the ladder for a dimension
func GradeTable(id DimensionID) []GradeBand {
	switch id {
	case DimensionUsage:
		return usageGrades
	case DimensionFluency:
		return fluencyGrades
	default:
		return setupGrades
	}
}

// GradeFor looks up the band for a normalized score
func GradeFor(id DimensionID, score int) GradeBand {
	table := GradeTable(id)
	for _, band := range table {
		if score >= band.MinScore {
			return band
		}
	}
	return table[len(table)-1]
}
