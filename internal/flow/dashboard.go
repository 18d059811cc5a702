package flow

import (
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/resumatch/resumatch/internal/matcher"
)

// DashboardService is the part of the API client the dashboard flow uses.
type DashboardService interface {
	FetchDashboard(credential string) (*matcher.DashboardSnapshot, error)
}

// DashboardFlow drives the admin view: loading -> ready|unauthorized|failed.
// The credential comes from an injected provider rather than ad-hoc global
// reads, and the snapshot is always replaced wholesale.
type DashboardFlow struct {
	mu       sync.Mutex
	state    State
	snapshot *matcher.DashboardSnapshot
	message  string
	inflight bool
	closed   bool

	svc         DashboardService
	creds       CredentialProvider
	requireAuth bool
	logger      *zap.Logger
}

// NewDashboardFlow builds the flow. requireAuth decides whether a missing
// credential short-circuits to unauthorized or the fetch goes out anonymously.
func NewDashboardFlow(svc DashboardService, creds CredentialProvider, requireAuth bool, logger *zap.Logger) *DashboardFlow {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &DashboardFlow{
		state:       StateLoading,
		svc:         svc,
		creds:       creds,
		requireAuth: requireAuth,
		logger:      logger,
	}
}

// Fetch reads the credential and issues at most one dashboard call. When
// authentication is required and no credential is stored, the flow moves to
// unauthorized without touching the network. The returned channel closes once
// a terminal state is reached; a Fetch while a call is outstanding is ignored.
func (f *DashboardFlow) Fetch() <-chan struct{} {
	f.mu.Lock()
	defer f.mu.Unlock()

	done := make(chan struct{})

	if f.inflight || f.closed {
		close(done)
		return done
	}

	f.state = StateLoading
	f.message = ""

	credential := ""
	if f.creds != nil {
		if token, ok := f.creds.Credential(); ok {
			credential = token
		}
	}

	if credential == "" && f.requireAuth {
		f.state = StateUnauthorized
		f.snapshot = nil
		f.logger.Info("dashboard requires authentication", zap.String("hint", "run the login command first"))
		close(done)
		return done
	}

	f.inflight = true

	go func() {
		defer close(done)
		snapshot, err := f.svc.FetchDashboard(credential)
		f.apply(snapshot, err)
	}()

	return done
}

// apply installs the fetch outcome unless the flow was closed while the call
// was outstanding.
func (f *DashboardFlow) apply(snapshot *matcher.DashboardSnapshot, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.inflight = false

	if f.closed {
		f.logger.Debug("discarding result for a closed dashboard flow")
		return
	}

	if err != nil {
		var aerr *matcher.AuthError
		if errors.As(err, &aerr) {
			f.state = StateUnauthorized
			f.snapshot = nil
			f.logger.Warn("dashboard fetch unauthorized", zap.Error(err))
			return
		}

		f.state = StateFailed
		f.message = failureMessage(err)
		f.snapshot = nil
		f.logger.Warn("dashboard fetch failed", zap.Error(err))
		return
	}

	f.state = StateReady
	f.snapshot = snapshot
	f.message = ""
	f.logger.Info("dashboard loaded",
		zap.Int("total_resumes", snapshot.TotalResumes),
		zap.Int("feedback_count", snapshot.FeedbackCount),
	)
}

// State reports the active variant plus its payload: the snapshot when ready,
// the message when failed.
func (f *DashboardFlow) State() (State, *matcher.DashboardSnapshot, string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.state, f.snapshot, f.message
}

// Close marks the flow as torn down. Results arriving afterwards are
// discarded instead of being applied to a view that no longer exists.
func (f *DashboardFlow) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
}
