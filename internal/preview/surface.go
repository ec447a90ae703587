package preview

import "sync"

// SurfaceStatus is the render surface's load state.
type SurfaceStatus string

const (
	SurfaceLoading SurfaceStatus = "loading"
	SurfaceReady   SurfaceStatus = "ready"
	SurfaceFailed  SurfaceStatus = "failed"
)

const defaultFailureMessage = "Failed to load preview"

// SurfaceState is a snapshot of the surface.
type SurfaceState struct {
	Status   SurfaceStatus
	Message  string
	Revision int
}

// Surface follows the iframe's load and error events. Each Load bumps the
// revision so events from an earlier document can be ignored.
type Surface struct {
	mu       sync.Mutex
	status   SurfaceStatus
	message  string
	revision int
}

func NewSurface() *Surface {
	return &Surface{status: SurfaceLoading}
}

// Load marks a new document as loading and returns its revision.
func (s *Surface) Load() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.revision++
	s.status = SurfaceLoading
	s.message = ""
	return s.revision
}

// Retry reloads the current document.
func (s *Surface) Retry() int { return s.Load() }

// MarkLoaded records a load event. Stale revisions are ignored.
func (s *Surface) MarkLoaded(revision int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if revision != s.revision {
		return false
	}
	s.status = SurfaceReady
	s.message = ""
	return true
}

// MarkFailed records an error event. Stale revisions are ignored.
func (s *Surface) MarkFailed(revision int, message string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if revision != s.revision {
		return false
	}
	if message == "" {
		message = defaultFailureMessage
	}
	s.status = SurfaceFailed
	s.message = message
	return true
}

func (s *Surface) State() SurfaceState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return SurfaceState{Status: s.status, Message: s.message, Revision: s.revision}
}
