package preview

import (
	"context"
	"strings"
	"sync"

	"webgen_ai_server/internal/types"
	"webgen_ai_server/pkg/logger"
)

// ViewMode selects what the render pane shows.
type ViewMode string

const (
	ViewCode    ViewMode = "code"
	ViewPreview ViewMode = "preview"
)

// DefaultPaneWidth is the initial split, as a percentage of the container.
const DefaultPaneWidth = 50.0

// Canned prompt suffixes.
const (
	DarkThemeSuffix  = " with dark theme and modern animations"
	ResponsiveSuffix = " with mobile-first responsive design"
)

// Generator produces a bundle for a prompt. The relay client implements it.
type Generator interface {
	Generate(ctx context.Context, prompt string) (*types.ProjectBundle, error)
}

// State is an immutable snapshot of a Session.
type State struct {
	Prompt    string
	Loading   bool
	Bundle    *types.ProjectBundle
	View      ViewMode
	PaneWidth float64
}

// HasBundle reports whether a project is ready to show.
func (s State) HasBundle() bool { return s.Bundle != nil }

// Session owns one user's preview state. At most one generation runs at a time.
type Session struct {
	generator Generator
	onBundle  func()

	mu        sync.Mutex
	prompt    string
	loading   bool
	bundle    *types.ProjectBundle
	view      ViewMode
	paneWidth float64
	// epoch changes on StartOver; results from an older epoch are dropped.
	epoch uint64
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithBundleHook runs fn each time a generated bundle is stored, while the
// session is still reported as loading. fn must not call back into the session.
func WithBundleHook(fn func()) SessionOption {
	return func(s *Session) { s.onBundle = fn }
}

// NewSession returns a session in its initial state.
func NewSession(generator Generator, opts ...SessionOption) *Session {
	s := &Session{
		generator: generator,
		view:      ViewPreview,
		paneWidth: DefaultPaneWidth,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Snapshot copies the current state. The bundle is copied too, so callers
// can render it without holding the lock.
func (s *Session) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := State{
		Prompt:    s.prompt,
		Loading:   s.loading,
		View:      s.view,
		PaneWidth: s.paneWidth,
	}
	if s.bundle != nil {
		bundle := *s.bundle
		state.Bundle = &bundle
	}
	return state
}

func (s *Session) SetPrompt(prompt string) {
	s.mu.Lock()
	s.prompt = prompt
	s.mu.Unlock()
}

func (s *Session) AppendDarkTheme() { s.appendSuffix(DarkThemeSuffix) }

func (s *Session) AppendResponsive() { s.appendSuffix(ResponsiveSuffix) }

func (s *Session) appendSuffix(suffix string) {
	s.mu.Lock()
	s.prompt += suffix
	s.mu.Unlock()
}

// StartOver returns the session to its initial state. A generation still in
// flight keeps the session loading until it returns, and its result is dropped.
func (s *Session) StartOver() {
	s.mu.Lock()
	s.epoch++
	s.prompt = ""
	s.bundle = nil
	s.view = ViewPreview
	s.paneWidth = DefaultPaneWidth
	s.mu.Unlock()
}

// SetView switches between code and preview. Unknown modes are ignored.
func (s *Session) SetView(mode ViewMode) bool {
	if mode != ViewCode && mode != ViewPreview {
		return false
	}
	s.mu.Lock()
	s.view = mode
	s.mu.Unlock()
	return true
}

// CommitPaneWidth stores the pane width once a drag ends.
func (s *Session) CommitPaneWidth(percent float64) {
	s.mu.Lock()
	s.paneWidth = percent
	s.mu.Unlock()
}

// StartGeneration begins a generation in the background. It returns false,
// without calling the generator, when the prompt is blank or a generation
// is already running. done is closed once the result has been applied.
func (s *Session) StartGeneration(ctx context.Context) (done <-chan struct{}, started bool) {
	s.mu.Lock()
	if s.loading || strings.TrimSpace(s.prompt) == "" {
		s.mu.Unlock()
		return nil, false
	}
	prompt := s.prompt
	epoch := s.epoch
	s.bundle = nil
	s.loading = true
	s.mu.Unlock()

	ch := make(chan struct{})
	go func() {
		defer close(ch)
		bundle, err := s.generator.Generate(ctx, prompt)
		s.finish(epoch, bundle, err)
	}()
	return ch, true
}

// TriggerGeneration runs a generation and waits for it. A blank prompt or a
// generation already in flight makes it a no-op.
func (s *Session) TriggerGeneration(ctx context.Context) {
	done, started := s.StartGeneration(ctx)
	if !started {
		return
	}
	<-done
}

func (s *Session) finish(epoch uint64, bundle *types.ProjectBundle, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	defer func() { s.loading = false }()

	if epoch != s.epoch {
		logger.Infof("Discarding generation result after start over")
		return
	}
	if err != nil {
		logger.Errorf("Generation failed: %v", err)
		return
	}
	if bundle == nil {
		logger.Warnf("Generation returned no bundle")
		return
	}
	s.bundle = bundle
	if s.onBundle != nil {
		s.onBundle()
	}
	logger.Infof("Generated project %q", bundle.ProjectName)
}
