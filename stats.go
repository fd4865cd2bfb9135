package vmarena

import "fmt"

// Stats is a snapshot of arena usage.
type Stats struct {
	ReserveSize  int    // Reserved address space in bytes
	CommitSize   int    // Commit granularity in bytes
	Committed    int    // Bytes backed by memory
	InUse        int    // Cursor position, including alignment padding
	Peak         int    // Highest cursor position seen
	Pushes       uint64 // Successful pushes
	FailedPushes uint64 // Pushes that returned an error
	Commits      uint64 // Successful commits, including the initial one
	Rollbacks    uint64 // Successful PopTo calls
}

// Utilization returns the ratio of bytes in use to committed bytes (0.0 to 1.0).
func (s Stats) Utilization() float64 {
	if s.Committed == 0 {
		return 0
	}
	return float64(s.InUse) / float64(s.Committed)
}

// Stats returns the current arena statistics.
func (a *Arena) Stats() Stats {
	return Stats{
		ReserveSize:  a.reserveSize,
		CommitSize:   a.commitSize,
		Committed:    a.commitPos,
		InUse:        a.pos,
		Peak:         a.stats.peak,
		Pushes:       a.stats.pushes,
		FailedPushes: a.stats.failedPushes,
		Commits:      a.stats.commits,
		Rollbacks:    a.stats.rollbacks,
	}
}

func (a *Arena) String() string {
	stats := a.Stats()
	return fmt.Sprintf(
		"Arena{reserved: %.2f MB, committed: %.2f MB, used: %.2f KB, peak: %.2f KB, usage: %.1f%%, pushes: %d}",
		float64(stats.ReserveSize)/(1024*1024),
		float64(stats.Committed)/(1024*1024),
		float64(stats.InUse)/1024,
		float64(stats.Peak)/1024,
		stats.Utilization()*100,
		stats.Pushes,
	)
}
