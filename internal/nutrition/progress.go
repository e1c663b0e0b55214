package nutrition

// Goals are the per-user daily targets.
type Goals struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

// MacroProgress describes one total measured against its goal.
type MacroProgress struct {
	Consumed  float64 `json:"consumed"`
	Goal      float64 `json:"goal"`
	Percent   float64 `json:"percent"`
	Remaining float64 `json:"remaining"`
	OverGoal  bool    `json:"over_goal"`
}

// Progress is goal progress for all four totals.
type Progress struct {
	Calories MacroProgress `json:"calories"`
	Protein  MacroProgress `json:"protein"`
	Carbs    MacroProgress `json:"carbs"`
	Fat      MacroProgress `json:"fat"`
}

// ProgressPercent returns current as a percentage of goal, clamped to 100.
// A goal of zero or less yields 0.
func ProgressPercent(current, goal float64) float64 {
	if goal <= 0 {
		return 0
	}
	pct := current / goal * 100
	if pct > 100 {
		return 100
	}
	return pct
}

// Measure builds the progress entry for a single total.
func Measure(consumed, goal float64) MacroProgress {
	remaining := goal - consumed
	if remaining < 0 {
		remaining = 0
	}
	return MacroProgress{
		Consumed:  consumed,
		Goal:      goal,
		Percent:   ProgressPercent(consumed, goal),
		Remaining: remaining,
		OverGoal:  goal > 0 && consumed > goal,
	}
}

// ComputeProgress measures every total against the matching goal.
func ComputeProgress(t DailyTotals, g Goals) Progress {
	return Progress{
		Calories: Measure(t.Calories, g.Calories),
		Protein:  Measure(t.Protein, g.Protein),
		Carbs:    Measure(t.Carbs, g.Carbs),
		Fat:      Measure(t.Fat, g.Fat),
	}
}
