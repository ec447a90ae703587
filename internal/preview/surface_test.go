package preview

import "testing"

func TestSurface_Lifecycle(t *testing.T) {
	s := NewSurface()
	rev := s.Load()
	if got := s.State(); got.Status != SurfaceLoading || got.Revision != rev {
		t.Fatalf("after Load: %+v", got)
	}

	if !s.MarkFailed(rev, "") {
		t.Fatal("MarkFailed should accept the current revision")
	}
	if got := s.State(); got.Status != SurfaceFailed || got.Message != "Failed to load preview" {
		t.Errorf("after failure: %+v", got)
	}

	retried := s.Retry()
	if retried == rev {
		t.Error("retry should start a new revision")
	}
	if s.MarkLoaded(rev) {
		t.Error("event from the old document should be ignored")
	}
	if got := s.State(); got.Status != SurfaceLoading {
		t.Errorf("stale event changed state: %+v", got)
	}

	if !s.MarkLoaded(retried) {
		t.Fatal("MarkLoaded should accept the current revision")
	}
	if got := s.State(); got.Status != SurfaceReady || got.Message != "" {
		t.Errorf("after load: %+v", got)
	}
}

func TestSurface_CustomMessage(t *testing.T) {
	s := NewSurface()
	rev := s.Load()
	s.MarkFailed(rev, "Error rendering preview")
	if got := s.State().Message; got != "Error rendering preview" {
		t.Errorf("message = %q", got)
	}
}
