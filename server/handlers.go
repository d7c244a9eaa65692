package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"award_vetter/awards"
	"award_vetter/generator"
	"award_vetter/publisher"
)

const (
	levelSuccess = "success"
	levelInfo    = "info"
	levelWarning = "warning"
	levelError   = "error"
)

type indexPage struct {
	Flashes    []Flash
	Form       generator.Form
	Awards     []string
	Rules      map[string]string
	Extended   map[string]bool
	Roles      []string
	Units      []string
	Months     []string
	OtherAward string
	OtherRole  string
	Current    *generator.Entry
	Index      int
	Total      int
	HasPrev    bool
	HasNext    bool
	BatchCount int
	SheetURL   string
}

type loginPage struct {
	Flashes []Flash
}

var errInvalidIndex = errors.New("invalid version index")

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "sessions": s.store.len()})
}

func (s *Server) handleLoginPage(c *gin.Context) {
	ws := workspaceFrom(c)
	if ws.authenticated {
		c.Redirect(http.StatusSeeOther, "/")
		return
	}
	data := loginPage{Flashes: ws.takeFlashes()}
	if c.Query("failed") != "" {
		data.Flashes = append(data.Flashes, Flash{Level: levelError, Message: "Incorrect password"})
	}
	s.renderPage(c, pageLogin, data)
}

// handleLogin 校验密码，成功后总是签发新的会话 ID。
func (s *Server) handleLogin(c *gin.Context) {
	if workspaceFrom(c).authenticated {
		c.Redirect(http.StatusSeeOther, "/")
		return
	}
	if err := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(c.PostForm("password"))); err != nil {
		s.log.Warn("login rejected", "client_ip", c.ClientIP())
		c.Redirect(http.StatusSeeOther, "/login?failed=1")
		return
	}
	if old := c.GetString(sessionIDKey); old != "" {
		s.store.delete(old)
	}
	id, _ := s.store.create()
	s.setSessionCookie(c, id, 0)
	s.log.Info("session created", "session_id", id, "sessions", s.store.len())
	c.Redirect(http.StatusSeeOther, "/")
}

func (s *Server) handleLogout(c *gin.Context) {
	if id := c.GetString(sessionIDKey); id != "" {
		s.store.delete(id)
		s.log.Info("session closed", "session_id", id)
	}
	workspaceFrom(c).authenticated = false
	s.setSessionCookie(c, "", -1)
	c.Redirect(http.StatusSeeOther, "/login")
}

func (s *Server) handleIndex(c *gin.Context) {
	ws := workspaceFrom(c)
	rules := make(map[string]string)
	for _, name := range s.catalog.Names() {
		rules[name] = s.catalog.Rule(name)
	}
	data := indexPage{
		Flashes:    ws.takeFlashes(),
		Form:       ws.form,
		Awards:     s.catalog.Names(),
		Rules:      rules,
		Extended:   s.catalog.ExtendedSet(),
		Roles:      s.catalog.Roles(),
		Units:      s.catalog.Units(),
		Months:     awards.Months(s.now()),
		OtherAward: awards.Other,
		OtherRole:  awards.OtherRole,
		BatchCount: ws.batch.Len(),
		SheetURL:   s.sheetURL,
	}
	h := ws.session.History
	if cur, ok := h.Current(); ok {
		data.Current = &cur
		data.Index = h.Cursor()
		data.Total = h.Len()
		data.HasPrev = h.Cursor() > 0
		data.HasNext = h.Cursor() < h.Len()-1
	}
	s.renderPage(c, pageIndex, data)
}

func (s *Server) handleGenerate(c *gin.Context) {
	ws := workspaceFrom(c)
	defer c.Redirect(http.StatusSeeOther, "/")

	var form generator.Form
	if err := c.ShouldBind(&form); err != nil {
		ws.flash(levelError, fmt.Sprintf("Invalid form: %v", err))
		return
	}
	ws.form = form
	if err := form.Validate(); err != nil {
		s.flashErr(ws, err)
		return
	}

	entry, err := ws.session.Propose(c.Request.Context(), form)
	if err != nil {
		s.flashErr(ws, err)
		return
	}
	s.log.Info("entry generated", "session_id", c.GetString(sessionIDKey), "award", entry.Subject.Award,
		"version", ws.session.History.Len())
	ws.flash(levelSuccess, fmt.Sprintf("Generated justification for %s %s", entry.Subject.Rank, entry.Subject.Name))
}

func (s *Server) handleRegenerate(c *gin.Context) {
	ws := workspaceFrom(c)
	defer c.Redirect(http.StatusSeeOther, "/")

	field, err := generator.ParseField(c.PostForm("field"))
	if err != nil {
		s.flashErr(ws, err)
		return
	}
	instructions := c.PostForm("instructions")
	if strings.TrimSpace(instructions) == "" {
		s.flashErr(ws, generator.ErrInstructionsRequired)
		return
	}

	if _, err := ws.session.Revise(c.Request.Context(), field, instructions); err != nil {
		s.flashErr(ws, err)
		return
	}
	ws.flash(levelSuccess, fmt.Sprintf("Regenerated %s (version %d)", field, ws.session.History.Len()))
}

// handleEdit 保存单个字段（field/value），或页面上的全部文本框（brief/citation）。
func (s *Server) handleEdit(c *gin.Context) {
	ws := workspaceFrom(c)
	defer c.Redirect(http.StatusSeeOther, "/")

	if _, ok := c.GetPostForm("field"); !ok {
		n, err := s.saveEdits(c, ws)
		switch {
		case err != nil:
			s.flashErr(ws, err)
		case n == 0:
			ws.flash(levelInfo, "No changes to save")
		default:
			ws.flash(levelInfo, "Edits saved")
		}
		return
	}

	index, err := strconv.Atoi(c.PostForm("index"))
	if err != nil {
		s.flashErr(ws, errInvalidIndex)
		return
	}
	field, err := generator.ParseField(c.PostForm("field"))
	if err != nil {
		s.flashErr(ws, err)
		return
	}
	if _, err := ws.session.Edit(index, field, c.PostForm("value")); err != nil {
		s.flashErr(ws, err)
		return
	}
	ws.flash(levelInfo, "Edits saved")
}

// saveEdits 写回随表单提交的文本框内容。没有 index 时（例如只导出批次）不做任何事。
func (s *Server) saveEdits(c *gin.Context, ws *workspace) (int, error) {
	raw, ok := c.GetPostForm("index")
	if !ok {
		return 0, nil
	}
	index, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errInvalidIndex
	}
	edits := make(map[generator.Field]string)
	for _, f := range []generator.Field{generator.FieldBrief, generator.FieldCitation} {
		if v, ok := c.GetPostForm(string(f)); ok {
			edits[f] = v
		}
	}
	return ws.session.SaveEdits(index, edits)
}

func (s *Server) handleMove(delta int) gin.HandlerFunc {
	return func(c *gin.Context) {
		workspaceFrom(c).session.Move(delta)
		c.Redirect(http.StatusSeeOther, "/")
	}
}

func (s *Server) handleAccept(c *gin.Context) {
	ws := workspaceFrom(c)
	defer c.Redirect(http.StatusSeeOther, "/")

	if _, err := s.saveEdits(c, ws); err != nil {
		s.flashErr(ws, err)
		return
	}
	cur, ok := ws.session.Current()
	if !ok {
		s.flashErr(ws, generator.ErrNoCurrentEntry)
		return
	}
	items, err := ws.batch.Accept(cur)
	if err != nil {
		s.flashErr(ws, err)
		return
	}
	s.track(c, ws, items)
	ws.clearForm()
	ws.flash(levelSuccess, fmt.Sprintf("Accepted %s and added to batch (%d items)", cur.Subject.Name, ws.batch.Len()))
}

func (s *Server) handleExport(c *gin.Context) {
	ws := workspaceFrom(c)

	if _, err := s.saveEdits(c, ws); err != nil {
		s.flashErr(ws, err)
		c.Redirect(http.StatusSeeOther, "/")
		return
	}
	items := ws.batch.Items()
	var rep publisher.TrackReport
	if cur, ok := ws.session.Current(); ok && strings.TrimSpace(cur.Brief) != "" && !ws.batch.Contains(cur) {
		extra := publisher.ItemsFor(cur)
		items = append(items, extra...)
		rep = s.track(c, ws, extra)
	}

	out, err := s.pub.Export(items)
	if err != nil {
		if errors.Is(err, publisher.ErrEmptyBatch) {
			s.flashErr(ws, err)
			c.Redirect(http.StatusSeeOther, "/")
			return
		}
		s.log.Error("export failed", "error", err)
		c.String(http.StatusInternalServerError, "Could not generate document")
		return
	}

	ws.batch.Clear()
	ws.flash(exportFlash(rep))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, out.Filename))
	c.Data(http.StatusOK, out.ContentType, out.Data)
}

// exportFlash 根据导出时的跟踪结果生成提示。批次中早先接受的条目在接受时已经写入，
// 这里只反映本次补写的当前条目。
func exportFlash(rep publisher.TrackReport) (string, string) {
	switch {
	case rep.Disabled:
		return levelInfo, "Document generated. Tracking sheet is not configured."
	case rep.Failed > 0 || (rep.Appended == 0 && len(rep.Warnings) > 0):
		return levelWarning, "Document generated. Some entries could not be sent to the tracking sheet."
	case rep.Appended > 0:
		return levelSuccess, fmt.Sprintf("Document generated. %d entr%s sent to tracking sheet.", rep.Appended, plural(rep.Appended, "y", "ies"))
	default:
		return levelSuccess, "Document generated."
	}
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

func (s *Server) handleClearBatch(c *gin.Context) {
	ws := workspaceFrom(c)
	ws.batch.Clear()
	ws.flash(levelInfo, "Batch cleared")
	c.Redirect(http.StatusSeeOther, "/")
}

func (s *Server) track(c *gin.Context, ws *workspace, items []publisher.Item) publisher.TrackReport {
	ctx, cancel := context.WithTimeout(c.Request.Context(), trackTimeout)
	defer cancel()
	rep := s.pub.Track(ctx, items)
	for _, w := range rep.Warnings {
		ws.flash(levelWarning, w)
	}
	return rep
}

// flashErr 把错误转换成页面提示：输入问题为 warning，后端失败为 error 并记录日志。
func (s *Server) flashErr(ws *workspace, err error) {
	var genErr *generator.GenerationError
	switch {
	case errors.Is(err, generator.ErrDraftRequired),
		errors.Is(err, generator.ErrSubjectRequired),
		errors.Is(err, generator.ErrAwardRequired),
		errors.Is(err, generator.ErrInstructionsRequired),
		errors.Is(err, generator.ErrNoCurrentEntry),
		errors.Is(err, generator.ErrNoCitation),
		errors.Is(err, generator.ErrStaleVersion),
		errors.Is(err, generator.ErrUnknownField),
		errors.Is(err, errInvalidIndex),
		errors.Is(err, publisher.ErrEmptyBrief),
		errors.Is(err, publisher.ErrEmptyBatch):
		ws.flash(levelWarning, sentence(err.Error()))
	case errors.Is(err, generator.ErrMissingCredential):
		ws.flash(levelError, sentence(err.Error()))
	case errors.As(err, &genErr):
		s.log.Error("generation failed on all models", "error", err)
		ws.flash(levelError, "AI generation failed on both models. Please try again.")
	case errors.Is(err, context.DeadlineExceeded):
		s.log.Error("generation timed out", "error", err)
		ws.flash(levelError, "AI generation timed out. Please try again.")
	default:
		s.log.Error("operation failed", "error", err)
		ws.flash(levelError, sentence(err.Error()))
	}
}

func sentence(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
