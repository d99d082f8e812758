package domain

// Stats is a snapshot of cache hit/miss counters.
type Stats struct {
	Hits   int64 `json:"hits"`
	Misses int64 `json:"misses"`
}

// Total returns the number of resolves that reached the cache decision.
func (s Stats) Total() int64 {
	return s.Hits + s.Misses
}
