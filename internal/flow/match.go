package flow

import (
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/resumatch/resumatch/internal/matcher"
)

// MissingInputMessage is shown when a submission is attempted without a
// resume file or a job description. No network call is made in that case.
const MissingInputMessage = "missing input: upload a resume and enter a job description"

// MatchService is the part of the API client the submission flow depends on.
type MatchService interface {
	SubmitMatch(req *matcher.MatchRequest) (*matcher.MatchResult, error)
}

// matchInput mirrors the fields local validation checks before any network
// activity is allowed.
type matchInput struct {
	File           *matcher.FileAttachment `validate:"required"`
	JobDescription string                  `validate:"required"`
}

// MatchFlow drives one submission view: idle -> submitting ->
// succeeded|failed. A new submission from a terminal state re-enters
// submitting directly, without a detour through idle.
type MatchFlow struct {
	mu       sync.Mutex
	state    State
	result   *matcher.MatchResult
	message  string
	inflight bool
	closed   bool

	file    *matcher.FileAttachment
	jobDesc string

	svc      MatchService
	logger   *zap.Logger
	validate *validator.Validate
}

func NewMatchFlow(svc MatchService, logger *zap.Logger) *MatchFlow {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &MatchFlow{
		state:    StateIdle,
		svc:      svc,
		logger:   logger,
		validate: validator.New(),
	}
}

// SetFile attaches the resume file. No network call is made.
func (f *MatchFlow) SetFile(file *matcher.FileAttachment) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.file = file
}

// SetJobDescription updates the job description text. No network call is made.
func (f *MatchFlow) SetJobDescription(text string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.jobDesc = text
}

// Submit validates the local input and, when both fields are present, issues
// exactly one scoring call. The returned channel closes once the flow reaches
// a terminal state. A Submit while a call is outstanding is ignored, so at
// most one call is ever in flight.
func (f *MatchFlow) Submit() <-chan struct{} {
	f.mu.Lock()
	defer f.mu.Unlock()

	done := make(chan struct{})

	if f.inflight || f.closed {
		close(done)
		return done
	}

	input := matchInput{File: f.file, JobDescription: strings.TrimSpace(f.jobDesc)}
	if err := f.validate.Struct(input); err != nil {
		f.state = StateFailed
		f.message = MissingInputMessage
		f.result = nil
		f.logger.Debug("submission rejected locally", zap.Error(err))
		close(done)
		return done
	}

	req := &matcher.MatchRequest{File: f.file, JobDescription: f.jobDesc}

	f.state = StateSubmitting
	f.message = ""
	f.inflight = true

	go func() {
		defer close(done)
		result, err := f.svc.SubmitMatch(req)
		f.apply(result, err)
	}()

	return done
}

// apply moves the flow to a terminal state, unless the flow was closed while
// the call was outstanding: a late result must not touch a dead view.
func (f *MatchFlow) apply(result *matcher.MatchResult, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.inflight = false

	if f.closed {
		f.logger.Debug("discarding result for a closed submission flow")
		return
	}

	if err != nil {
		f.state = StateFailed
		f.message = failureMessage(err)
		f.result = nil
		f.logger.Warn("match submission failed", zap.Error(err))
		return
	}

	f.state = StateSucceeded
	f.result = result
	f.message = ""
	f.logger.Info("match submission succeeded", zap.Float64("match_score", result.MatchScore))
}

// State reports the active variant plus its payload: the result when
// succeeded, the message when failed.
func (f *MatchFlow) State() (State, *matcher.MatchResult, string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.state, f.result, f.message
}

// Close marks the flow as torn down. Results arriving afterwards are
// discarded instead of being applied to a view that no longer exists.
func (f *MatchFlow) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
}
