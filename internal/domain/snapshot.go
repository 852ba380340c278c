package domain

import "time"

// Snapshot is a saved copy of a trip document together with its headline
// numbers, so earlier versions of a plan can be listed and re-rendered.
type Snapshot struct {
	ID          string
	Title       string
	Subtitle    string
	Source      string
	GeneratedOn string
	DayCount    int
	ItemCount   int
	Document    []byte
	ImportedAt  time.Time
}

// DayStat is the per-day bucket breakdown stored alongside a snapshot.
type DayStat struct {
	SnapshotID string
	DayIndex   int
	DayLabel   string
	Total      int
	Counts     map[Bucket]int
}

// ShortID is the prefix of the snapshot ID shown in listings.
func (s *Snapshot) ShortID() string {
	if len(s.ID) <= 8 {
		return s.ID
	}
	return s.ID[:8]
}
