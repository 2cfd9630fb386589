package jira

import (
	"net/http"

	"golang.org/x/time/rate"

	apperrors "github.com/kurihiro0119/unowned-components/internal/errors"
)

// limitedHTTPDoer wraps HTTPDoer and allows Dos with maximum rate limit.
type limitedHTTPDoer struct {
	doer    HTTPDoer
	limiter *rate.Limiter
}

// NewLimitedDoer wraps doer so that at most maxRate requests per second are issued.
// A non-positive maxRate returns doer unchanged.
func NewLimitedDoer(doer HTTPDoer, maxRate float64) HTTPDoer {
	if maxRate <= 0 {
		return doer
	}
	return &limitedHTTPDoer{
		doer:    doer,
		limiter: rate.NewLimiter(rate.Limit(maxRate), 1),
	}
}

// Do executes http request. If limit is exceeded, blocks until call rate is within limit.
func (d *limitedHTTPDoer) Do(r *http.Request) (*http.Response, error) {
	if err := d.limiter.Wait(r.Context()); err != nil {
		return nil, apperrors.NewRateLimitedError("waiting for request limiter", err)
	}

	return d.doer.Do(r)
}
