package state

import (
	"time"
)

// SyncStatus remembers the outcome of the last manual sync for the header line.
type SyncStatus struct {
	Last time.Time
	OK   bool
}

func (s *SyncStatus) Record(at time.Time, ok bool) {
	s.Last = at
	s.OK = ok
}

// Line renders the header text: "Manual" until the first sync of the session.
func (s *SyncStatus) Line() string {
	if s == nil || s.Last.IsZero() {
		return "Manual"
	}

	line := formatSyncTime(s.Last)
	if !s.OK {
		line += " (failed)"
	}
	return line
}

func formatSyncTime(t time.Time) string {
	return t.Local().Format("15:04:05")
}
