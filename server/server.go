package server

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	"award_vetter/awards"
	"award_vetter/generator"
	"award_vetter/logger"
	"award_vetter/publisher"
)

// 写入跟踪表的期限；生成的期限由 FallbackLLM 按次控制。
const trackTimeout = 30 * time.Second

// Options 组装服务所需的依赖。
type Options struct {
	Agent        *generator.Agent
	Publisher    *publisher.Publisher
	PasswordHash []byte
	SheetURL     string
	CORSOrigins  []string
	SecureCookie bool
	Log          *logger.Logger
}

type Server struct {
	agent        *generator.Agent
	catalog      *awards.Catalog
	pub          *publisher.Publisher
	passwordHash []byte
	sheetURL     string
	corsOrigins  []string
	secureCookie bool
	log          *logger.Logger
	store        *sessionStore
	views        *views
	now          func() time.Time
}

func New(opts Options) (*Server, error) {
	if opts.Agent == nil {
		return nil, errors.New("generator agent required")
	}
	if opts.Publisher == nil {
		return nil, errors.New("publisher required")
	}
	if len(opts.PasswordHash) == 0 {
		return nil, errors.New("password hash required")
	}
	if opts.Log == nil {
		opts.Log = logger.Nop()
	}

	v, err := loadViews()
	if err != nil {
		return nil, err
	}

	return &Server{
		agent:        opts.Agent,
		catalog:      opts.Agent.Catalog(),
		pub:          opts.Publisher,
		passwordHash: opts.PasswordHash,
		sheetURL:     opts.SheetURL,
		corsOrigins:  opts.CORSOrigins,
		secureCookie: opts.SecureCookie,
		log:          opts.Log.With("component", "server"),
		store:        newStore(opts.Agent),
		views:        v,
		now:          time.Now,
	}, nil
}

func (s *Server) Routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLogger(s.log))
	if len(s.corsOrigins) > 0 {
		r.Use(CORS(s.corsOrigins))
	}

	r.GET("/healthz", s.handleHealth)

	app := r.Group("/")
	app.Use(s.sessionMiddleware())
	app.GET("/login", s.handleLoginPage)
	app.POST("/login", s.handleLogin)
	app.POST("/logout", s.handleLogout)

	protected := app.Group("/")
	protected.Use(s.requireAuth())
	protected.GET("/", s.handleIndex)
	protected.POST("/generate", s.handleGenerate)
	protected.POST("/regenerate", s.handleRegenerate)
	protected.POST("/edit", s.handleEdit)
	protected.POST("/history/prev", s.handleMove(-1))
	protected.POST("/history/next", s.handleMove(1))
	protected.POST("/batch/accept", s.handleAccept)
	protected.POST("/batch/export", s.handleExport)
	protected.POST("/batch/clear", s.handleClearBatch)

	return r
}
