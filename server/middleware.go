package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"award_vetter/logger"
)

const (
	sessionCookie = "vetter_session"
	workspaceKey  = "workspace"
	sessionIDKey  = "session_id"
)

// RequestLogger 每个请求记录一行日志，级别由状态码决定。
func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		if log == nil {
			return
		}
		status := c.Writer.Status()
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		fields := []interface{}{
			"method", strings.ToUpper(c.Request.Method),
			"path", path,
			"status", status,
			"duration_ms", time.Since(start).Milliseconds(),
		}
		if id := c.GetString(sessionIDKey); id != "" {
			fields = append(fields, "session_id", id)
		}

		switch {
		case status >= 500:
			log.Error("HTTP request", fields...)
		case status >= 400:
			log.Warn("HTTP request", fields...)
		default:
			log.Info("HTTP request", fields...)
		}
	}
}

// CORS allows the configured origins to call the interface with cookies.
func CORS(origins []string) gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})
}

// sessionMiddleware 按 cookie 取出工作区并在整个处理链期间持有其锁。
// 没有 cookie 或 ID 未知时使用临时工作区，不写入存储也不下发 cookie，
// 会话只在登录成功时创建。
func (s *Server) sessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, _ := c.Cookie(sessionCookie)
		ws, ok := s.store.get(id)
		if !ok {
			id, ws = "", &workspace{}
		}

		ws.mu.Lock()
		defer ws.mu.Unlock()
		c.Set(workspaceKey, ws)
		c.Set(sessionIDKey, id)
		c.Next()
	}
}

func (s *Server) setSessionCookie(c *gin.Context, id string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookie, id, maxAge, "/", "", s.secureCookie, true)
}

// requireAuth 未登录时重定向到登录页。
func (s *Server) requireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !workspaceFrom(c).authenticated {
			c.Redirect(http.StatusSeeOther, "/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

func workspaceFrom(c *gin.Context) *workspace {
	return c.MustGet(workspaceKey).(*workspace)
}
