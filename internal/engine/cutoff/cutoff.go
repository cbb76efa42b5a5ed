package cutoff

import "github.com/hejijunhao/dicelog/internal/model"

// DefaultMarker is the message a player posts to mark the start of play.
const DefaultMarker = "---start---"

// Config controls the start cutoff.
type Config struct {
	Marker string // empty disables the cutoff
}

// Cutoff drops everything posted before the last start marker.
type Cutoff struct {
	cfg Config
}

// New creates a Cutoff with the given config.
func New(cfg Config) *Cutoff {
	return &Cutoff{cfg: cfg}
}

// Apply returns the entries that follow the last marker entry. The marker
// entry itself is not kept. Without a marker the input is returned as is.
func (c *Cutoff) Apply(entries []*model.Entry) []*model.Entry {
	if c.cfg.Marker == "" {
		return entries
	}
	start := 0
	for i, e := range entries {
		if e.IsMarker(c.cfg.Marker) {
			start = i + 1
		}
	}
	return entries[start:]
}
