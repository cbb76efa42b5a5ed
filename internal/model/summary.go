package model

// Summary partitions a set of entries into the four outcome buckets. The
// buckets borrow entries from the input collection and keep input order.
type Summary struct {
	Successes []*Entry
	Failures  []*Entry
	Criticals []*Entry
	Fumbles   []*Entry
}

// Bucket returns the entries classified under o. ok is false for anything
// other than the four categories.
func (s Summary) Bucket(o Outcome) (entries []*Entry, ok bool) {
	switch o {
	case Success:
		return s.Successes, true
	case Failure:
		return s.Failures, true
	case Critical:
		return s.Criticals, true
	case Fumble:
		return s.Fumbles, true
	default:
		return nil, false
	}
}

// Count returns the size of the bucket for o, or 0 for an invalid outcome.
func (s Summary) Count(o Outcome) int {
	entries, _ := s.Bucket(o)
	return len(entries)
}

// Total is the sum of all four bucket sizes.
func (s Summary) Total() int {
	return len(s.Successes) + len(s.Failures) + len(s.Criticals) + len(s.Fumbles)
}
