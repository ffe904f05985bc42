package model

import "time"

const (
	// DateLayout is the format used for dates in the data file and reports
	DateLayout = "2006-01-02"
	// TimeLayout is the format used for wall-clock times
	TimeLayout = "15:04:05"
)

// Action is an immutable note appended to a case by an authorized user
type Action struct {
	Description string
	Date        string
	Time        string
	Manager     string // Acting principal name
}

// NewAction stamps a new action with the date and time of now.
func NewAction(description, actor string, now time.Time) Action {
	return Action{
		Description: description,
		Date:        now.Format(DateLayout),
		Time:        now.Format(TimeLayout),
		Manager:     actor,
	}
}
