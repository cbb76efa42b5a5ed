package dicelog

import "github.com/hejijunhao/dicelog/internal/engine/cutoff"

type options struct {
	lenient     bool
	strategy    string
	blockTag    string
	fieldTag    string
	startMarker string
	normalize   bool
}

// Option configures a Dicelog instance.
type Option func(*options)

// WithLenient skips malformed message blocks instead of failing the whole
// transcript. Report.Skipped says how many were dropped.
func WithLenient() Option {
	return func(o *options) {
		o.lenient = true
	}
}

// WithSkillStrategy selects how skill names are cut out of roll lines:
// "delimiter" (text before the first ＞, the default) or "bracket" (text
// inside the first 【】).
func WithSkillStrategy(s string) Option {
	return func(o *options) {
		o.strategy = s
	}
}

// WithTags sets the element names of message blocks and their fields.
// Default: "p" and "span".
func WithTags(block, field string) Option {
	return func(o *options) {
		o.blockTag = block
		o.fieldTag = field
	}
}

// WithStartMarker sets the message that discards everything logged before
// it. An empty marker disables the cutoff. Default: "---start---".
func WithStartMarker(m string) Option {
	return func(o *options) {
		o.startMarker = m
	}
}

// WithNormalize toggles NFC normalization of message text. Default: off,
// so text is only trimmed.
func WithNormalize(on bool) Option {
	return func(o *options) {
		o.normalize = on
	}
}

func defaultOptions() options {
	return options{
		strategy:    "delimiter",
		blockTag:    "p",
		fieldTag:    "span",
		startMarker: cutoff.DefaultMarker,
	}
}
