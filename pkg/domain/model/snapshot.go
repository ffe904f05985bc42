package model

import "math"

// Snapshot is the complete persisted state of the store
type Snapshot struct {
	Managers   []*Manager
	Cases      []*Case
	NextCaseID int64
}

// NewSnapshot returns an empty snapshot with the counter at FirstCaseID
func NewSnapshot() *Snapshot {
	return &Snapshot{NextCaseID: FirstCaseID}
}

// CaseIDAfter returns the counter value that follows id. The counter stops at
// math.MaxInt64, which is never handed out.
func CaseIDAfter(id int64) int64 {
	if id == math.MaxInt64 {
		return id
	}
	return id + 1
}
