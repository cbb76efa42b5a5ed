package taxonomy

import "github.com/hejijunhao/dicelog/internal/model"

// Outcome markers printed by the dice bot at the end of a roll line.
const (
	MarkerSuccess  = "成功"
	MarkerSpecial  = "スペシャル"
	MarkerFailure  = "失敗"
	MarkerCritical = "決定的成功"
	MarkerFumble   = "致命的失敗"
)

// DefaultRules returns the built-in keyword rules. The critical and fumble
// markers contain the plain success and failure markers, so the plain rules
// exclude them.
func DefaultRules() []Rule {
	return []Rule{
		{
			Outcome:  model.Success,
			Markers:  []string{MarkerSuccess, MarkerSpecial},
			Excludes: []string{MarkerCritical},
		},
		{
			Outcome:  model.Failure,
			Markers:  []string{MarkerFailure},
			Excludes: []string{MarkerFumble},
		},
		{
			Outcome: model.Critical,
			Markers: []string{MarkerCritical},
		},
		{
			Outcome: model.Fumble,
			Markers: []string{MarkerFumble},
		},
	}
}
