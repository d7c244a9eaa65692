package server

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"

	"award_vetter/generator"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	pageLogin = "login.html"
	pageIndex = "index.html"
)

// views holds one parsed template per page, each cloned from the layout.
type views struct {
	pages map[string]*template.Template
}

var viewFuncs = template.FuncMap{
	"words": generator.WordCount,
	"inc":   func(i int) int { return i + 1 },
}

func loadViews() (*views, error) {
	layout, err := template.New("layout.html").Funcs(viewFuncs).ParseFS(templateFS, "templates/layout.html")
	if err != nil {
		return nil, err
	}
	v := &views{pages: make(map[string]*template.Template)}
	for _, page := range []string{pageLogin, pageIndex} {
		t, err := layout.Clone()
		if err != nil {
			return nil, fmt.Errorf("clone layout for %s: %w", page, err)
		}
		if _, err := t.ParseFS(templateFS, "templates/"+page); err != nil {
			return nil, fmt.Errorf("parse template %s: %w", page, err)
		}
		v.pages[page] = t
	}
	return v, nil
}

func (v *views) render(c *gin.Context, status int, page string, data any) error {
	t, ok := v.pages[page]
	if !ok {
		return fmt.Errorf("template not found: %s", page)
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		return err
	}
	c.Data(status, "text/html; charset=utf-8", buf.Bytes())
	return nil
}

func (s *Server) renderPage(c *gin.Context, page string, data any) {
	if err := s.views.render(c, http.StatusOK, page, data); err != nil {
		s.log.Error("render page failed", "page", page, "error", err)
		c.String(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
	}
}
