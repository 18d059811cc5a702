package flow

import (
	"strings"
	"sync"
	"testing"

	"github.com/resumatch/resumatch/internal/matcher"
)

type stubMatchService struct {
	mu      sync.Mutex
	calls   int
	result  *matcher.MatchResult
	err     error
	release chan struct{}
}

func (s *stubMatchService) SubmitMatch(*matcher.MatchRequest) (*matcher.MatchResult, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()

	if s.release != nil {
		<-s.release
	}

	return s.result, s.err
}

func (s *stubMatchService) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func sampleFile() *matcher.FileAttachment {
	return &matcher.FileAttachment{
		Filename:    "resume.pdf",
		ContentType: "application/pdf",
		Content:     []byte("content"),
	}
}

func TestSubmitMissingInputMakesNoCall(t *testing.T) {
	tests := []struct {
		name string
		file *matcher.FileAttachment
		desc string
	}{
		{name: "both missing"},
		{name: "file missing", desc: "Senior Engineer"},
		{name: "description missing", file: sampleFile()},
		{name: "description whitespace only", file: sampleFile(), desc: "   "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &stubMatchService{}
			f := NewMatchFlow(svc, nil)

			if tt.file != nil {
				f.SetFile(tt.file)
			}
			f.SetJobDescription(tt.desc)

			<-f.Submit()

			state, _, message := f.State()
			if state != StateFailed {
				t.Fatalf("expected failed state, got %s", state)
			}
			if !strings.HasPrefix(message, "missing input") {
				t.Fatalf("unexpected message: %q", message)
			}
			if svc.callCount() != 0 {
				t.Fatalf("expected no network call, got %d", svc.callCount())
			}
		})
	}
}

func TestSubmitSuccess(t *testing.T) {
	svc := &stubMatchService{result: &matcher.MatchResult{MatchScore: 87.5}}
	f := NewMatchFlow(svc, nil)

	f.SetFile(sampleFile())
	f.SetJobDescription("Senior Engineer")

	<-f.Submit()

	state, result, _ := f.State()
	if state != StateSucceeded {
		t.Fatalf("expected succeeded state, got %s", state)
	}
	if result.MatchScore != 87.5 {
		t.Fatalf("expected score 87.5, got %v", result.MatchScore)
	}
	if svc.callCount() != 1 {
		t.Fatalf("expected exactly one call, got %d", svc.callCount())
	}
}

func TestSubmitSurfacesDetailVerbatim(t *testing.T) {
	svc := &stubMatchService{err: &matcher.ValidationError{Detail: "Unsupported file format"}}
	f := NewMatchFlow(svc, nil)

	f.SetFile(sampleFile())
	f.SetJobDescription("Senior Engineer")

	<-f.Submit()

	state, _, message := f.State()
	if state != StateFailed {
		t.Fatalf("expected failed state, got %s", state)
	}
	if message != "Unsupported file format" {
		t.Fatalf("expected verbatim detail, got %q", message)
	}
}

func TestSubmitServerErrorGetsGenericMessage(t *testing.T) {
	svc := &stubMatchService{err: &matcher.ServerError{}}
	f := NewMatchFlow(svc, nil)

	f.SetFile(sampleFile())
	f.SetJobDescription("Senior Engineer")

	<-f.Submit()

	state, _, message := f.State()
	if state != StateFailed {
		t.Fatalf("expected failed state, got %s", state)
	}
	if message == "" {
		t.Fatal("expected a non-empty generic message")
	}
}

func TestSubmitTransportErrorGetsDistinctMessage(t *testing.T) {
	svc := &stubMatchService{err: &matcher.TransportError{}}
	f := NewMatchFlow(svc, nil)

	f.SetFile(sampleFile())
	f.SetJobDescription("Senior Engineer")

	<-f.Submit()

	_, _, message := f.State()
	if !strings.Contains(message, "could not reach") {
		t.Fatalf("expected a transport-specific message, got %q", message)
	}
}

func TestDuplicateSubmitIgnoredWhileInFlight(t *testing.T) {
	svc := &stubMatchService{
		result:  &matcher.MatchResult{MatchScore: 50},
		release: make(chan struct{}),
	}
	f := NewMatchFlow(svc, nil)

	f.SetFile(sampleFile())
	f.SetJobDescription("Senior Engineer")

	first := f.Submit()

	state, _, _ := f.State()
	if state != StateSubmitting {
		t.Fatalf("expected submitting state, got %s", state)
	}

	// A second trigger while in flight must not issue another call.
	<-f.Submit()

	close(svc.release)
	<-first

	if svc.callCount() != 1 {
		t.Fatalf("expected exactly one call, got %d", svc.callCount())
	}

	state, _, _ = f.State()
	if state != StateSucceeded {
		t.Fatalf("expected succeeded state, got %s", state)
	}
}

func TestResubmitFromTerminalStateReentersSubmitting(t *testing.T) {
	svc := &stubMatchService{err: &matcher.ServerError{Detail: "boom"}}
	f := NewMatchFlow(svc, nil)

	f.SetFile(sampleFile())
	f.SetJobDescription("Senior Engineer")

	<-f.Submit()

	state, _, _ := f.State()
	if state != StateFailed {
		t.Fatalf("expected failed state, got %s", state)
	}

	svc.err = nil
	svc.result = &matcher.MatchResult{MatchScore: 61}

	<-f.Submit()

	state, result, _ := f.State()
	if state != StateSucceeded {
		t.Fatalf("expected succeeded state after resubmission, got %s", state)
	}
	if result.MatchScore != 61 {
		t.Fatalf("expected the new result, got %v", result.MatchScore)
	}
	if svc.callCount() != 2 {
		t.Fatalf("expected two calls, got %d", svc.callCount())
	}
}

func TestLateResultDiscardedAfterClose(t *testing.T) {
	svc := &stubMatchService{
		result:  &matcher.MatchResult{MatchScore: 99},
		release: make(chan struct{}),
	}
	f := NewMatchFlow(svc, nil)

	f.SetFile(sampleFile())
	f.SetJobDescription("Senior Engineer")

	done := f.Submit()

	f.Close()
	close(svc.release)
	<-done

	state, result, _ := f.State()
	if state == StateSucceeded {
		t.Fatal("expected the late result to be discarded")
	}
	if result != nil {
		t.Fatalf("expected no result after close, got %+v", result)
	}
}
