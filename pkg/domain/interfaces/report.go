package interfaces

import "context"

// ReportSink stores a generated report under name and returns its location
type ReportSink interface {
	Put(ctx context.Context, name string, body []byte) (string, error)
}
