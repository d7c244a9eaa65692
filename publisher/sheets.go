package publisher

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"award_vetter/logger"
)

const spreadsheetMimeType = "application/vnd.google-apps.spreadsheet"

// SheetsSettings locate the tracking spreadsheet and the service account
// used to write to it.
type SheetsSettings struct {
	SpreadsheetName string
	SpreadsheetID   string
	Worksheet       string
	CredentialsFile string
	CredentialsJSON string
}

func (s SheetsSettings) hasCredentials() bool {
	return s.CredentialsFile != "" || s.CredentialsJSON != ""
}

// SheetsTracker appends tracking rows to a Google Sheets worksheet.
type SheetsTracker struct {
	settings SheetsSettings
	extra    []option.ClientOption
	log      *logger.Logger
}

// NewSheetsTracker builds a tracker. Extra client options are appended to the
// credential options and count as configured credentials.
func NewSheetsTracker(settings SheetsSettings, log *logger.Logger, extra ...option.ClientOption) *SheetsTracker {
	if log == nil {
		log = logger.Nop()
	}
	return &SheetsTracker{settings: settings, extra: extra, log: log}
}

func (t *SheetsTracker) clientOptions() []option.ClientOption {
	var opts []option.ClientOption
	switch {
	case t.settings.CredentialsJSON != "":
		opts = append(opts, option.WithCredentialsJSON([]byte(t.settings.CredentialsJSON)))
	case t.settings.CredentialsFile != "":
		opts = append(opts, option.WithCredentialsFile(t.settings.CredentialsFile))
	}
	opts = append(opts, option.WithScopes(sheets.SpreadsheetsScope, drive.DriveMetadataReadonlyScope))
	return append(opts, t.extra...)
}

func (t *SheetsTracker) Open(ctx context.Context) (Sheet, error) {
	if !t.settings.hasCredentials() && len(t.extra) == 0 {
		return nil, ErrTrackerDisabled
	}
	opts := t.clientOptions()

	svc, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, &APIError{Op: "connect", Err: err}
	}

	id := t.settings.SpreadsheetID
	if id == "" {
		if id, err = t.findSpreadsheet(ctx, opts); err != nil {
			return nil, err
		}
	}

	ss, err := svc.Spreadsheets.Get(id).Fields("sheets.properties.title").Context(ctx).Do()
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("%w: %s", ErrSpreadsheetNotFound, id)
		}
		return nil, &APIError{Op: "open spreadsheet", Err: err}
	}
	if len(ss.Sheets) == 0 {
		return nil, fmt.Errorf("%w: spreadsheet has no worksheets", ErrWorksheetNotFound)
	}

	var title string
	found := false
	for _, sh := range ss.Sheets {
		if sh.Properties == nil {
			continue
		}
		if title == "" {
			title = sh.Properties.Title
		}
		if sh.Properties.Title == t.settings.Worksheet {
			title, found = sh.Properties.Title, true
			break
		}
	}
	if !found && t.settings.Worksheet != "" {
		t.log.Warn("worksheet not found, using first sheet", "worksheet", t.settings.Worksheet, "using", title)
	}

	t.log.Debug("tracking sheet opened", "spreadsheet_id", id, "worksheet", title)
	return &sheetsWorksheet{svc: svc, spreadsheetID: id, title: title}, nil
}

func (t *SheetsTracker) findSpreadsheet(ctx context.Context, opts []option.ClientOption) (string, error) {
	name := t.settings.SpreadsheetName
	if name == "" {
		return "", fmt.Errorf("%w: no spreadsheet name or id configured", ErrSpreadsheetNotFound)
	}
	drv, err := drive.NewService(ctx, opts...)
	if err != nil {
		return "", &APIError{Op: "connect", Err: err}
	}
	q := fmt.Sprintf("name = '%s' and mimeType = '%s' and trashed = false",
		strings.NewReplacer(`\`, `\\`, `'`, `\'`).Replace(name), spreadsheetMimeType)
	list, err := drv.Files.List().
		Q(q).
		Fields("files(id, name)").
		PageSize(1).
		SupportsAllDrives(true).
		IncludeItemsFromAllDrives(true).
		Context(ctx).
		Do()
	if err != nil {
		return "", &APIError{Op: "find spreadsheet", Err: err}
	}
	if len(list.Files) == 0 {
		return "", fmt.Errorf("%w: %q", ErrSpreadsheetNotFound, name)
	}
	return list.Files[0].Id, nil
}

func isNotFound(err error) bool {
	var gerr *googleapi.Error
	return errors.As(err, &gerr) && gerr.Code == http.StatusNotFound
}

type sheetsWorksheet struct {
	svc           *sheets.Service
	spreadsheetID string
	title         string
}

func (w *sheetsWorksheet) AppendRow(ctx context.Context, row []any) error {
	vr := &sheets.ValueRange{Values: [][]interface{}{row}}
	_, err := w.svc.Spreadsheets.Values.
		Append(w.spreadsheetID, a1Range(w.title), vr).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return &APIError{Op: "append row", Err: err}
	}
	return nil
}

func a1Range(title string) string {
	return "'" + strings.ReplaceAll(title, "'", "''") + "'!A1"
}
