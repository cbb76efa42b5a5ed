package model

import (
	"strconv"
	"strings"
)

// Outcome is a dice-roll result category.
type Outcome int

const (
	NoOutcome Outcome = iota - 1 // no category selected
	Success
	Failure
	Critical
	Fumble
)

// Outcomes lists the four categories in report order.
func Outcomes() []Outcome {
	return []Outcome{Success, Failure, Critical, Fumble}
}

// Valid reports whether o is one of the four categories.
func (o Outcome) Valid() bool {
	return o >= Success && o <= Fumble
}

// Label returns the Japanese heading used in reports.
func (o Outcome) Label() string {
	switch o {
	case Success:
		return "通常成功"
	case Failure:
		return "通常失敗"
	case Critical:
		return "クリティカル"
	case Fumble:
		return "ファンブル"
	default:
		return ""
	}
}

func (o Outcome) String() string {
	switch o {
	case NoOutcome:
		return "none"
	case Success:
		return "success"
	case Failure:
		return "failure"
	case Critical:
		return "critical"
	case Fumble:
		return "fumble"
	default:
		return "outcome(" + strconv.Itoa(int(o)) + ")"
	}
}

// ParseOutcome accepts a category name ("success", "fumble", ...), its
// Japanese label, its menu index ("0".."3"), or "none"/"" for NoOutcome.
func ParseOutcome(s string) (Outcome, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" || s == "none" {
		return NoOutcome, true
	}
	for _, o := range Outcomes() {
		if s == o.String() || s == o.Label() || s == strconv.Itoa(int(o)) {
			return o, true
		}
	}
	return NoOutcome, false
}
