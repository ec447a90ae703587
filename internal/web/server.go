// Package web serves the preview client: one server-rendered page plus the
// small endpoints its forms and scripts post to.
package web

import (
	"context"
	"embed"
	"fmt"
	"html/template"

	"github.com/gin-gonic/gin"

	"webgen_ai_server/internal/preview"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Options configures a Server.
type Options struct {
	Generator preview.Generator
	PaneMin   float64
	PaneMax   float64
}

// Server holds the single preview session this process serves.
type Server struct {
	session *preview.Session
	surface *preview.Surface
	paneMin float64
	paneMax float64
	page    *template.Template

	// generation context; requests never cancel a generation.
	baseCtx context.Context
}

// NewServer parses the page template and creates a fresh session.
func NewServer(opts Options) (*Server, error) {
	if opts.Generator == nil {
		return nil, fmt.Errorf("generator is required")
	}
	if _, err := preview.NewResizer(opts.PaneMin, opts.PaneMax, nil, nil); err != nil {
		return nil, err
	}
	page, err := template.ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	// A new bundle is a new document: bump the surface before the page can
	// see the session as idle.
	surface := preview.NewSurface()
	return &Server{
		session: preview.NewSession(opts.Generator, preview.WithBundleHook(func() { surface.Load() })),
		surface: surface,
		paneMin: opts.PaneMin,
		paneMax: opts.PaneMax,
		page:    page,
		baseCtx: context.Background(),
	}, nil
}

// Session exposes the session, mostly for tests.
func (s *Server) Session() *preview.Session { return s.session }

// Router builds the gin engine for the preview client.
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.SetHTMLTemplate(s.page)
	s.RegisterRoutes(router)
	return router
}

// RegisterRoutes sets up the page and its endpoints.
func (s *Server) RegisterRoutes(router gin.IRouter) {
	router.GET("/", s.Index)

	session := router.Group("/session")
	{
		session.POST("/prompt", s.SetPrompt)
		session.POST("/generate", s.Generate)
		session.POST("/suffix/:kind", s.AppendSuffix)
		session.POST("/reset", s.Reset)
		session.POST("/view/:mode", s.SetView)
		session.POST("/resize", s.Resize)
	}

	p := router.Group("/preview")
	{
		p.GET("/document", s.Document)
		p.GET("/download", s.Download)
		p.POST("/refresh", s.Refresh)
		p.POST("/events", s.Event)
	}
}
