package server

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"award_vetter/awards"
	"award_vetter/generator"
	"award_vetter/publisher"
)

const testPassword = "s3cret"

type countingLLM struct {
	mu    sync.Mutex
	calls int
}

func (l *countingLLM) Complete(_ context.Context, p generator.Prompt) (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.calls++
	if strings.Contains(p.User, "CITATION") {
		return "Generated citation.", nil
	}
	return "Being a dedicated operator, CPL TAN led convoys.", nil
}

type memSheet struct {
	rows [][]any
	fail error
}

func (m *memSheet) AppendRow(_ context.Context, row []any) error {
	if m.fail != nil {
		return m.fail
	}
	m.rows = append(m.rows, row)
	return nil
}

type memTracker struct{ sheet *memSheet }

func (m *memTracker) Open(context.Context) (publisher.Sheet, error) { return m.sheet, nil }

type harness struct {
	t      *testing.T
	srv    *Server
	engine *gin.Engine
	llm    *countingLLM
	sheet  *memSheet
	cookie *http.Cookie
}

func newHarness(t *testing.T) *harness {
	sheet := &memSheet{}
	h := newHarnessWithTracker(t, &memTracker{sheet: sheet})
	h.sheet = sheet
	return h
}

// newHarnessWithTracker 使用给定的跟踪表；tracker 为 nil 表示未配置。
func newHarnessWithTracker(t *testing.T, tracker publisher.Tracker) *harness {
	t.Helper()
	gin.SetMode(gin.TestMode)

	llm := &countingLLM{}
	catalog := awards.Default()
	agent, err := generator.NewAgent(llm, catalog)
	require.NoError(t, err)

	pub := publisher.New(tracker, catalog.IsExtended, nil)

	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	require.NoError(t, err)

	srv, err := New(Options{Agent: agent, Publisher: pub, PasswordHash: hash, SheetURL: "https://example.com/sheet"})
	require.NoError(t, err)
	return &harness{t: t, srv: srv, engine: srv.Routes(), llm: llm}
}

func (h *harness) do(method, path string, form url.Values) *httptest.ResponseRecorder {
	h.t.Helper()
	var body *strings.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	} else {
		body = strings.NewReader("")
	}
	req := httptest.NewRequest(method, path, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if h.cookie != nil {
		req.AddCookie(h.cookie)
	}
	w := httptest.NewRecorder()
	h.engine.ServeHTTP(w, req)
	for _, c := range w.Result().Cookies() {
		if c.Name != sessionCookie {
			continue
		}
		if c.MaxAge < 0 {
			h.cookie = nil
		} else {
			h.cookie = c
		}
	}
	return w
}

func (h *harness) login() {
	h.t.Helper()
	w := h.do(http.MethodPost, "/login", url.Values{"password": {testPassword}})
	require.Equal(h.t, http.StatusSeeOther, w.Code)
	require.Equal(h.t, "/", w.Header().Get("Location"))
}

func validForm() url.Values {
	return url.Values{
		"award":     {"CO Coin"},
		"role":      {"Transport Operator (TO)"},
		"unit":      {"Alpha COY"},
		"rank":      {"CPL"},
		"full_name": {"Tan Wei"},
		"month":     {"March 2026"},
		"draft":     {"led convoy ops"},
	}
}

func TestHealthz(t *testing.T) {
	h := newHarness(t)
	w := h.do(http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}

func TestUnauthenticatedRedirectsToLogin(t *testing.T) {
	h := newHarness(t)
	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/"},
		{http.MethodPost, "/generate"},
		{http.MethodPost, "/batch/export"},
	} {
		w := h.do(tc.method, tc.path, url.Values{})
		assert.Equal(t, http.StatusSeeOther, w.Code, tc.path)
		assert.Equal(t, "/login", w.Header().Get("Location"), tc.path)
	}
	h.do(http.MethodGet, "/login", nil)
	h.do(http.MethodPost, "/login", url.Values{"password": {"wrong"}})
	assert.Nil(t, h.cookie, "no session before a successful login")
	assert.Zero(t, h.srv.store.len())
	assert.Zero(t, h.llm.calls)
}

func TestLogin(t *testing.T) {
	h := newHarness(t)

	w := h.do(http.MethodPost, "/login", url.Values{"password": {"wrong"}})
	loc := w.Header().Get("Location")
	assert.Equal(t, "/login?failed=1", loc)
	w = h.do(http.MethodGet, loc, nil)
	assert.Contains(t, w.Body.String(), "Incorrect password")
	assert.NotContains(t, h.do(http.MethodGet, "/login", nil).Body.String(), "Incorrect password")

	h.login()
	require.NotNil(t, h.cookie)
	assert.True(t, h.cookie.HttpOnly)
	w = h.do(http.MethodGet, "/login", nil)
	assert.Equal(t, http.StatusSeeOther, w.Code)

	w = h.do(http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "https://example.com/sheet")

	h.do(http.MethodPost, "/logout", url.Values{})
	w = h.do(http.MethodGet, "/", nil)
	assert.Equal(t, "/login", w.Header().Get("Location"))
}

func TestGenerateWithoutDraftWarns(t *testing.T) {
	h := newHarness(t)
	h.login()

	form := validForm()
	form.Set("draft", "")
	w := h.do(http.MethodPost, "/generate", form)
	assert.Equal(t, http.StatusSeeOther, w.Code)

	page := h.do(http.MethodGet, "/", nil).Body.String()
	assert.Contains(t, page, `class="flash warning"`)
	assert.Contains(t, page, "Draft text is required")
	assert.NotContains(t, page, "Version 1 of")
	assert.Zero(t, h.llm.calls)
}

func TestGenerateEditRegenerate(t *testing.T) {
	h := newHarness(t)
	h.login()

	h.do(http.MethodPost, "/generate", validForm())
	page := h.do(http.MethodGet, "/", nil).Body.String()
	assert.Contains(t, page, "Version 1 of 1")
	assert.Contains(t, page, "CPL TAN WEI")
	assert.Contains(t, page, "Being a dedicated operator")

	h.do(http.MethodPost, "/edit", url.Values{"index": {"0"}, "field": {"brief"}, "value": {"Hand tuned text."}})
	page = h.do(http.MethodGet, "/", nil).Body.String()
	assert.Contains(t, page, "Hand tuned text.")
	assert.Contains(t, page, "Version 1 of 1")

	h.do(http.MethodPost, "/regenerate", url.Values{"field": {"brief"}, "instructions": {""}})
	page = h.do(http.MethodGet, "/", nil).Body.String()
	assert.Contains(t, page, "Modification instructions are required")

	h.do(http.MethodPost, "/regenerate", url.Values{"field": {"brief"}, "instructions": {"shorter"}})
	page = h.do(http.MethodGet, "/", nil).Body.String()
	assert.Contains(t, page, "Version 2 of 2")

	h.do(http.MethodPost, "/history/prev", url.Values{})
	page = h.do(http.MethodGet, "/", nil).Body.String()
	assert.Contains(t, page, "Version 1 of 2")

	h.do(http.MethodPost, "/edit", url.Values{"index": {"1"}, "field": {"brief"}, "value": {"stale"}})
	page = h.do(http.MethodGet, "/", nil).Body.String()
	assert.Contains(t, page, "Version is no longer current")
	assert.Equal(t, 2, h.llm.calls)
}

func TestAcceptAndExport(t *testing.T) {
	h := newHarness(t)
	h.login()

	h.do(http.MethodPost, "/generate", validForm())
	h.do(http.MethodPost, "/batch/accept", url.Values{})
	require.Len(t, h.sheet.rows, 1)
	assert.Equal(t, "NOMINATED", h.sheet.rows[0][5])

	page := h.do(http.MethodGet, "/", nil).Body.String()
	assert.Contains(t, page, "Batch: 1 item(s)")
	assert.Contains(t, page, `value="CO Coin" selected`)
	assert.NotContains(t, page, `value="Tan Wei"`)

	w := h.do(http.MethodPost, "/batch/export", url.Values{})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, publisher.DocxContentType, w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), `attachment; filename="Award_Justifications_`)
	_, err := zip.NewReader(bytes.NewReader(w.Body.Bytes()), int64(w.Body.Len()))
	require.NoError(t, err)
	assert.Len(t, h.sheet.rows, 1, "current entry already in batch is not tracked twice")

	page = h.do(http.MethodGet, "/", nil).Body.String()
	assert.Contains(t, page, "Batch: 0 item(s)")
}

func TestExportIncludesCurrentEntry(t *testing.T) {
	h := newHarness(t)
	h.login()

	w := h.do(http.MethodPost, "/batch/export", url.Values{})
	assert.Equal(t, http.StatusSeeOther, w.Code)
	page := h.do(http.MethodGet, "/", nil).Body.String()
	assert.Contains(t, page, "No accepted entries to export")

	form := validForm()
	form.Set("award", "CTO Coin")
	h.do(http.MethodPost, "/generate", form)

	w = h.do(http.MethodPost, "/batch/export", url.Values{})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, h.sheet.rows, 1, "only the brief is tracked")
	assert.Equal(t, 2, h.llm.calls, "brief and citation generated")
}

func TestLoginIssuesFreshSession(t *testing.T) {
	h := newHarness(t)

	h.cookie = &http.Cookie{Name: sessionCookie, Value: "planted-id"}
	h.login()
	require.NotNil(t, h.cookie)
	first := h.cookie.Value
	assert.NotEqual(t, "planted-id", first)
	assert.Equal(t, 1, h.srv.store.len())

	h.do(http.MethodPost, "/logout", url.Values{})
	assert.Nil(t, h.cookie)
	assert.Zero(t, h.srv.store.len(), "logout drops the workspace")

	h.cookie = &http.Cookie{Name: sessionCookie, Value: first}
	w := h.do(http.MethodGet, "/", nil)
	assert.Equal(t, "/login", w.Header().Get("Location"), "old id is no longer valid")

	h.login()
	assert.NotEqual(t, first, h.cookie.Value)
	assert.Equal(t, 1, h.srv.store.len())
}

func TestNavigationAndBatchRoutes(t *testing.T) {
	twoVersions := func(h *harness) {
		h.do(http.MethodPost, "/generate", validForm())
		h.do(http.MethodPost, "/regenerate", url.Values{"field": {"brief"}, "instructions": {"shorter"}})
	}

	for _, tc := range []struct {
		name  string
		setup func(h *harness)
		path  string
		form  url.Values
		check func(t *testing.T, h *harness, page string)
	}{
		{
			name:  "previous version",
			setup: twoVersions,
			path:  "/history/prev",
			check: func(t *testing.T, _ *harness, page string) {
				assert.Contains(t, page, "Version 1 of 2")
			},
		},
		{
			name: "previous at first version stays",
			setup: func(h *harness) {
				h.do(http.MethodPost, "/generate", validForm())
			},
			path: "/history/prev",
			check: func(t *testing.T, _ *harness, page string) {
				assert.Contains(t, page, "Version 1 of 1")
			},
		},
		{
			name: "next version",
			setup: func(h *harness) {
				twoVersions(h)
				h.do(http.MethodPost, "/history/prev", url.Values{})
			},
			path: "/history/next",
			check: func(t *testing.T, _ *harness, page string) {
				assert.Contains(t, page, "Version 2 of 2")
			},
		},
		{
			name:  "next at last version stays",
			setup: twoVersions,
			path:  "/history/next",
			check: func(t *testing.T, _ *harness, page string) {
				assert.Contains(t, page, "Version 2 of 2")
			},
		},
		{
			name: "clear batch",
			setup: func(h *harness) {
				h.do(http.MethodPost, "/generate", validForm())
				h.do(http.MethodPost, "/batch/accept", url.Values{})
			},
			path: "/batch/clear",
			check: func(t *testing.T, h *harness, page string) {
				assert.Contains(t, page, "Batch cleared")
				assert.Contains(t, page, "Batch: 0 item(s)")
				assert.Len(t, h.sheet.rows, 1, "clearing does not touch the sheet")
			},
		},
		{
			name:  "edit of an older version is rejected",
			setup: twoVersions,
			path:  "/edit",
			form:  url.Values{"index": {"0"}, "field": {"brief"}, "value": {"stale"}},
			check: func(t *testing.T, _ *harness, page string) {
				assert.Contains(t, page, `class="flash warning"`)
				assert.Contains(t, page, "Version is no longer current")
				assert.NotContains(t, page, "stale")
			},
		},
		{
			name:  "edit with a bad index",
			setup: twoVersions,
			path:  "/edit",
			form:  url.Values{"index": {"x"}, "brief": {"ignored"}},
			check: func(t *testing.T, _ *harness, page string) {
				assert.Contains(t, page, "Invalid version index")
			},
		},
		{
			name:  "logout",
			setup: twoVersions,
			path:  "/logout",
			check: func(t *testing.T, h *harness, _ string) {
				assert.Nil(t, h.cookie)
				assert.Zero(t, h.srv.store.len())
				w := h.do(http.MethodGet, "/", nil)
				assert.Equal(t, "/login", w.Header().Get("Location"))
			},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			h := newHarness(t)
			h.login()
			tc.setup(h)

			form := tc.form
			if form == nil {
				form = url.Values{}
			}
			w := h.do(http.MethodPost, tc.path, form)
			require.Equal(t, http.StatusSeeOther, w.Code)

			var page string
			if h.cookie != nil {
				page = h.do(http.MethodGet, "/", nil).Body.String()
			}
			tc.check(t, h, page)
		})
	}
}

func TestAcceptSavesPendingEdits(t *testing.T) {
	h := newHarness(t)
	h.login()
	h.do(http.MethodPost, "/generate", validForm())

	h.do(http.MethodPost, "/batch/accept", url.Values{"index": {"0"}, "brief": {"Typed but never saved."}})
	page := h.do(http.MethodGet, "/", nil).Body.String()
	assert.Contains(t, page, "Batch: 1 item(s)")
	assert.Contains(t, page, "Typed but never saved.")

	w := h.do(http.MethodPost, "/batch/export", url.Values{})
	require.Equal(t, http.StatusOK, w.Code)
	body := documentXML(t, w.Body.Bytes())
	assert.Contains(t, body, "Typed but never saved.")
	assert.NotContains(t, body, "Being a dedicated operator")
}

func TestExportSavesPendingEdits(t *testing.T) {
	h := newHarness(t)
	h.login()
	form := validForm()
	form.Set("award", "CTO Coin")
	h.do(http.MethodPost, "/generate", form)

	w := h.do(http.MethodPost, "/batch/export", url.Values{
		"index":    {"0"},
		"brief":    {"Being a dedicated operator, CPL TAN led convoys."},
		"citation": {"Edited citation text."},
	})
	require.Equal(t, http.StatusOK, w.Code)
	body := documentXML(t, w.Body.Bytes())
	assert.Contains(t, body, "Edited citation text.")
	assert.NotContains(t, body, "Generated citation.")
}

func TestAcceptWithStaleEditsIsRejected(t *testing.T) {
	h := newHarness(t)
	h.login()
	h.do(http.MethodPost, "/generate", validForm())
	h.do(http.MethodPost, "/regenerate", url.Values{"field": {"brief"}, "instructions": {"shorter"}})

	h.do(http.MethodPost, "/batch/accept", url.Values{"index": {"0"}, "brief": {"from an old tab"}})
	page := h.do(http.MethodGet, "/", nil).Body.String()
	assert.Contains(t, page, "Version is no longer current")
	assert.Contains(t, page, "Batch: 0 item(s)")
	assert.Empty(t, h.sheet.rows)
}

func TestExportFlashFollowsTracking(t *testing.T) {
	for _, tc := range []struct {
		name    string
		tracker func() publisher.Tracker
		want    string
		level   string
	}{
		{
			name:    "not configured",
			tracker: func() publisher.Tracker { return nil },
			want:    "Document generated. Tracking sheet is not configured.",
			level:   levelInfo,
		},
		{
			name: "row failed",
			tracker: func() publisher.Tracker {
				return &memTracker{sheet: &memSheet{fail: errors.New("quota exceeded")}}
			},
			want:  "Some entries could not be sent to the tracking sheet",
			level: levelWarning,
		},
		{
			name:    "row appended",
			tracker: func() publisher.Tracker { return &memTracker{sheet: &memSheet{}} },
			want:    "Document generated. 1 entry sent to tracking sheet.",
			level:   levelSuccess,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			h := newHarnessWithTracker(t, tc.tracker())
			h.login()
			h.do(http.MethodPost, "/generate", validForm())

			w := h.do(http.MethodPost, "/batch/export", url.Values{})
			require.Equal(t, http.StatusOK, w.Code)
			page := h.do(http.MethodGet, "/", nil).Body.String()
			assert.Contains(t, page, tc.want)
			assert.Contains(t, page, `class="flash `+tc.level+`"`)
			assert.NotContains(t, page, "All entries sent")
		})
	}
}

func TestExportOfAcceptedBatchDoesNotClaimTracking(t *testing.T) {
	h := newHarnessWithTracker(t, nil)
	h.login()
	h.do(http.MethodPost, "/generate", validForm())
	h.do(http.MethodPost, "/batch/accept", url.Values{})

	w := h.do(http.MethodPost, "/batch/export", url.Values{})
	require.Equal(t, http.StatusOK, w.Code)
	page := h.do(http.MethodGet, "/", nil).Body.String()
	assert.Contains(t, page, "Document generated.")
	assert.NotContains(t, page, "sent to tracking sheet")
}

// documentXML 取出导出文件中的 word/document.xml。
func documentXML(t *testing.T, data []byte) string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	for _, f := range zr.File {
		if f.Name != "word/document.xml" {
			continue
		}
		rc, err := f.Open()
		require.NoError(t, err)
		defer rc.Close()
		b, err := io.ReadAll(rc)
		require.NoError(t, err)
		return string(b)
	}
	t.Fatal("word/document.xml missing")
	return ""
}
