package cache

// Stats is a point-in-time snapshot of cache counters.
type Stats struct {
	Hits    uint64 `json:"hits"`
	Misses  uint64 `json:"misses"`
	Expired uint64 `json:"expired"` // lazily removed on Get/Has/Lookup
	Sets    uint64 `json:"sets"`
	Sweeps  uint64 `json:"sweeps"`
	Swept   uint64 `json:"swept"` // removed by Cleanup, including sweeps triggered by Size
	Entries int    `json:"entries"`
}

// HitRatio returns hits / (hits + misses + expired), or 0 when nothing was read.
func (s Stats) HitRatio() float64 {
	reads := s.Hits + s.Misses + s.Expired
	if reads == 0 {
		return 0
	}
	return float64(s.Hits) / float64(reads)
}
