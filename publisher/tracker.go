package publisher

import (
	"context"
	"errors"
	"fmt"
)

// StatusNominated is written to the status column of every tracked row.
const StatusNominated = "NOMINATED"

var (
	ErrTrackerDisabled     = errors.New("tracking sheet credentials not configured")
	ErrSpreadsheetNotFound = errors.New("tracking spreadsheet not found")
	ErrWorksheetNotFound   = errors.New("tracking worksheet not found")
)

// APIError is a failed call to the tracking backend.
type APIError struct {
	Op  string
	Err error
}

func (e *APIError) Error() string {
	return fmt.Sprintf("tracking sheet %s: %v", e.Op, e.Err)
}

func (e *APIError) Unwrap() error { return e.Err }

// Tracker opens the worksheet that accepted items are logged to.
type Tracker interface {
	Open(ctx context.Context) (Sheet, error)
}

// Sheet appends one row at a time.
type Sheet interface {
	AppendRow(ctx context.Context, row []any) error
}

// TrackingRow is the row recorded for a brief item.
func TrackingRow(it Item) []any {
	s := it.Subject
	return []any{s.Rank, s.Name, s.Unit, s.Award, s.Month, StatusNominated, ""}
}
