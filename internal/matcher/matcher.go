// Package matcher is the client for the remote resume-scoring service. Every
// operation is a single request/response exchange; outcomes are reported
// through a small error taxonomy instead of raw status codes.
package matcher

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"
)

const (
	defaultAPIURL = "http://127.0.0.1:8000"
	userAgent     = "resumatch/cli"

	tokenPath     = "/token/"
	matchPath     = "/match-resume/"
	dashboardPath = "/admin_dashboard/"
	feedbackPath  = "/feedback/"
)

type Client struct {
	// ctx used only for http requests right now
	ctx        context.Context
	logger     *zap.Logger
	HTTPClient *http.Client
	UserAgent  string
	APIURL     string
}

func New(ctx context.Context, logger *zap.Logger, apiURL string) *Client {
	if apiURL == "" {
		apiURL = defaultAPIURL
	}

	return &Client{
		ctx:    ctx,
		APIURL: apiURL,
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger:    logger,
		UserAgent: userAgent,
	}
}
