// Package web serves the form page, the JSON API and the A2A endpoint.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	ginprometheus "github.com/zsais/go-gin-prometheus"
	"go.uber.org/zap"

	"github.com/BerylCAtieno/meta-ads-strategist/internal/a2a"
	"github.com/BerylCAtieno/meta-ads-strategist/internal/agent"
	"github.com/BerylCAtieno/meta-ads-strategist/internal/controller"
	"github.com/BerylCAtieno/meta-ads-strategist/internal/generator"
)

//go:embed templates/*.html
var templatesFS embed.FS

const (
	sessionCookie         = "ads_session"
	defaultRefreshSeconds = 2
)

type Options struct {
	SessionTTL         time.Duration
	CORSAllowedOrigins []string
	// MetricsEnabled mounts request metrics and /metrics.
	MetricsEnabled bool
	// SecureCookies marks the session cookie Secure.
	SecureCookies bool
}

type Server struct {
	gen      generator.Generator
	sessions *controller.Sessions
	a2a      *a2a.Handler
	opts     Options
	logger   *zap.Logger
	router   *gin.Engine
}

func New(gen generator.Generator, opts Options, logger *zap.Logger) (*Server, error) {
	card, err := agent.LoadCard()
	if err != nil {
		return nil, err
	}

	tmpl, err := template.ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	s := &Server{
		gen:      gen,
		sessions: controller.NewSessions(gen, opts.SessionTTL, logger.Named("controller")),
		a2a:      a2a.NewHandler(gen, card, logger),
		opts:     opts,
		logger:   logger,
	}
	s.router = s.routes(tmpl)
	return s, nil
}

func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) routes(tmpl *template.Template) *gin.Engine {
	router := gin.New()
	router.RedirectTrailingSlash = true
	router.SetHTMLTemplate(tmpl)
	router.Use(RequestID())
	router.Use(RequestLogger(s.logger.Named("http")))
	router.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	if len(s.opts.CORSAllowedOrigins) == 0 || (len(s.opts.CORSAllowedOrigins) == 1 && s.opts.CORSAllowedOrigins[0] == "*") {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = s.opts.CORSAllowedOrigins
	}
	corsConfig.AllowMethods = []string{http.MethodGet, http.MethodPost, http.MethodOptions}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", requestIDHeader}
	corsConfig.ExposeHeaders = []string{requestIDHeader}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Must run before the routes below are registered; gin copies the
	// middleware chain into each route at registration time.
	if s.opts.MetricsEnabled {
		p := ginprometheus.NewPrometheus("gin")
		p.ReqCntURLLabelMappingFn = func(c *gin.Context) string {
			return c.FullPath()
		}
		p.Use(router)
	}

	healthHandler := func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	}
	router.GET("/health", healthHandler)
	router.HEAD("/health", healthHandler)

	router.GET("/", s.handleIndex)
	router.POST("/generate", s.handleGenerate)

	api := router.Group("/api")
	api.GET("/state", s.handleState)
	api.POST("/report", s.handleReport)

	router.GET("/.well-known/agent.json", s.a2a.ServeAgentCard)
	router.POST(a2a.EndpointPath, s.a2a.HandleStrategist)

	return router
}
