package publisher

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"award_vetter/logger"
)

var ErrEmptyBatch = errors.New("no accepted entries to export")

// Export is a rendered document ready to be sent to the client.
type Export struct {
	Filename    string
	ContentType string
	Data        []byte
}

// TrackReport 汇总一次写表结果，Warnings 直接展示给用户。
type TrackReport struct {
	Disabled bool
	Appended int
	Skipped  int
	Failed   int
	Warnings []string
}

// Publisher records accepted items in the tracking sheet and renders the
// export document.
type Publisher struct {
	tracker  Tracker
	extended func(award string) bool
	log      *logger.Logger
	now      func() time.Time
}

// New creates a Publisher. A nil tracker disables tracking.
func New(tracker Tracker, extended func(award string) bool, log *logger.Logger) *Publisher {
	if log == nil {
		log = logger.Nop()
	}
	return &Publisher{tracker: tracker, extended: extended, log: log, now: time.Now}
}

// Track 为每个简述条目追加一行。失败不会中断调用方：打开表格失败直接结束，
// 单行失败记录下来并继续写后面的行。
func (p *Publisher) Track(ctx context.Context, items []Item) TrackReport {
	var rep TrackReport
	if p.tracker == nil {
		rep.Disabled = true
		return rep
	}

	sheet, err := p.tracker.Open(ctx)
	if err != nil {
		var apiErr *APIError
		switch {
		case errors.Is(err, ErrTrackerDisabled):
			p.log.Info("tracking sheet disabled", "reason", err)
			rep.Disabled = true
		case errors.Is(err, ErrSpreadsheetNotFound), errors.Is(err, ErrWorksheetNotFound), errors.As(err, &apiErr):
			p.log.Warn("tracking sheet unavailable", "error", err)
			rep.Warnings = append(rep.Warnings, fmt.Sprintf("Could not update tracking sheet: %v", err))
		default:
			p.log.Warn("tracking sheet unavailable", "error", err)
		}
		return rep
	}

	for _, it := range items {
		if it.Kind != KindBrief {
			rep.Skipped++
			continue
		}
		if err := sheet.AppendRow(ctx, TrackingRow(it)); err != nil {
			p.log.Warn("tracking row failed", "rank", it.Subject.Rank, "name", it.Subject.Name, "error", err)
			rep.Failed++
			rep.Warnings = append(rep.Warnings,
				fmt.Sprintf("Could not track %s %s: %v", it.Subject.Rank, it.Subject.Name, err))
			continue
		}
		rep.Appended++
	}
	p.log.Info("tracking sheet updated", "appended", rep.Appended, "failed", rep.Failed, "skipped", rep.Skipped)
	return rep
}

// Export renders items as a .docx document named after the current time.
func (p *Publisher) Export(items []Item) (Export, error) {
	if len(items) == 0 {
		return Export{}, ErrEmptyBatch
	}
	doc := Layout(DocumentTitle, items, p.extended)

	var buf bytes.Buffer
	if err := WriteDocx(&buf, doc); err != nil {
		return Export{}, fmt.Errorf("render document: %w", err)
	}
	name := fmt.Sprintf("Award_Justifications_%s.docx", p.now().Format("20060102_150405"))
	p.log.Info("document exported", "file", name, "items", len(items), "bytes", buf.Len())
	return Export{Filename: name, ContentType: DocxContentType, Data: buf.Bytes()}, nil
}
