package web

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"webgen_ai_server/internal/preview"
	"webgen_ai_server/pkg/logger"
)

const (
	// documentCSP keeps generated script away from this origin when the
	// document is opened on its own.
	documentCSP = "sandbox allow-scripts"

	msgNoProject = "No project generated yet"
)

type pageData struct {
	State      preview.State
	Surface    preview.SurfaceState
	Document   string
	PaneMin    float64
	PaneMax    float64
	RightWidth float64
}

// GET /
func (s *Server) Index(c *gin.Context) {
	state := s.session.Snapshot()
	data := pageData{
		State:      state,
		Surface:    s.surface.State(),
		PaneMin:    s.paneMin,
		PaneMax:    s.paneMax,
		RightWidth: 100 - state.PaneWidth,
	}
	if state.HasBundle() {
		data.Document = preview.AssembleDocument(*state.Bundle)
	}
	c.HTML(http.StatusOK, "index.html", data)
}

// applyPostedPrompt copies the textarea into the session when the form sent it.
func (s *Server) applyPostedPrompt(c *gin.Context) {
	if prompt, ok := c.GetPostForm("prompt"); ok {
		s.session.SetPrompt(prompt)
	}
}

func backToPage(c *gin.Context) {
	c.Redirect(http.StatusSeeOther, "/")
}

// POST /session/prompt
func (s *Server) SetPrompt(c *gin.Context) {
	s.applyPostedPrompt(c)
	backToPage(c)
}

// POST /session/generate
func (s *Server) Generate(c *gin.Context) {
	s.applyPostedPrompt(c)

	// A closed browser tab must not abort the call.
	ctx := context.WithoutCancel(s.baseCtx)
	if _, started := s.session.StartGeneration(ctx); started {
		logger.Info("Generation started")
	}
	backToPage(c)
}

// POST /session/suffix/:kind
func (s *Server) AppendSuffix(c *gin.Context) {
	s.applyPostedPrompt(c)
	switch c.Param("kind") {
	case "dark-theme":
		s.session.AppendDarkTheme()
	case "responsive":
		s.session.AppendResponsive()
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown suffix"})
		return
	}
	backToPage(c)
}

// POST /session/reset
func (s *Server) Reset(c *gin.Context) {
	s.session.StartOver()
	s.surface.Load()
	backToPage(c)
}

// POST /session/view/:mode
func (s *Server) SetView(c *gin.Context) {
	if !s.session.SetView(preview.ViewMode(c.Param("mode"))) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown view mode"})
		return
	}
	backToPage(c)
}

// ResizeRequest is the divider position on release.
type ResizeRequest struct {
	X              float64 `json:"x"`
	ContainerLeft  float64 `json:"containerLeft"`
	ContainerWidth float64 `json:"containerWidth"`
}

// POST /session/resize
func (s *Server) Resize(c *gin.Context) {
	var req ResizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	resizer, err := preview.NewResizer(s.paneMin, s.paneMax, nil, s.session.CommitPaneWidth)
	if err != nil {
		logger.Errorf("Resizer misconfigured: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
		return
	}
	resizer.BeginDrag(s.session.Snapshot().PaneWidth)
	resizer.Move(preview.Pointer{X: req.X, ContainerLeft: req.ContainerLeft, ContainerWidth: req.ContainerWidth})
	width, _ := resizer.EndDrag()

	c.JSON(http.StatusOK, gin.H{"paneWidth": width})
}

// GET /preview/document
func (s *Server) Document(c *gin.Context) {
	state := s.session.Snapshot()
	if !state.HasBundle() {
		c.JSON(http.StatusNotFound, gin.H{"error": msgNoProject})
		return
	}
	c.Header("Content-Security-Policy", documentCSP)
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(preview.AssembleDocument(*state.Bundle)))
}

// GET /preview/download
func (s *Server) Download(c *gin.Context) {
	state := s.session.Snapshot()
	if !state.HasBundle() {
		c.JSON(http.StatusNotFound, gin.H{"error": msgNoProject})
		return
	}
	artifact := preview.NewArtifact(*state.Bundle)
	c.Header("Content-Disposition", `attachment; filename="`+artifact.FileName+`"`)
	c.Data(http.StatusOK, artifact.ContentType, artifact.Body)
}

// POST /preview/refresh
func (s *Server) Refresh(c *gin.Context) {
	rev := s.surface.Retry()
	logger.Debugf("Preview reload, revision %d", rev)
	backToPage(c)
}

// SurfaceEvent is a load or error beacon from the preview iframe.
type SurfaceEvent struct {
	Type     string `json:"type" binding:"required"`
	Revision int    `json:"revision"`
	Message  string `json:"message"`
}

// POST /preview/events
func (s *Server) Event(c *gin.Context) {
	var ev SurfaceEvent
	if err := c.ShouldBindJSON(&ev); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	var applied bool
	switch ev.Type {
	case "load":
		applied = s.surface.MarkLoaded(ev.Revision)
	case "error":
		applied = s.surface.MarkFailed(ev.Revision, ev.Message)
		if applied {
			logger.Warnf("Preview failed to render (revision %d): %s", ev.Revision, ev.Message)
		}
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown event type"})
		return
	}

	state := s.surface.State()
	c.JSON(http.StatusOK, gin.H{
		"applied":  applied,
		"status":   state.Status,
		"revision": state.Revision,
	})
}
