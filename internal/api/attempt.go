package api

import (
	"fmt"

	"github.com/valyala/fasthttp"
)

// attemptFunc issues one profile request against a single namespace and
// returns the HTTP status and response body, or a transport error.
type attemptFunc func(namespace string) (status int, body []byte, err error)

// attemptState tracks the ordered-namespace resolution.
type attemptState int

const (
	attemptTrying attemptState = iota
	attemptSucceeded
	attemptFailed
)

// resolveProfile tries each namespace in order. A 403 or 404 moves on to
// the next namespace (the character simply is not published there); a 2xx
// succeeds; any other status, or a transport error, fails terminally.
// Exhausting every namespace fails with the last status seen.
func resolveProfile(namespaces []string, attempt attemptFunc) ([]byte, int, error) {
	state := attemptTrying
	var body []byte
	lastStatus := 0
	var terminal error

	for _, ns := range namespaces {
		if state != attemptTrying {
			break
		}
		status, b, err := attempt(ns)
		if err != nil {
			state = attemptFailed
			terminal = fmt.Errorf("namespace %s: %w", ns, err)
			break
		}
		lastStatus = status
		switch {
		case status >= 200 && status < 300:
			state = attemptSucceeded
			body = b
		case status == fasthttp.StatusForbidden || status == fasthttp.StatusNotFound:
			// try next namespace
		default:
			state = attemptFailed
			terminal = fmt.Errorf("namespace %s: status %d", ns, status)
		}
	}

	switch state {
	case attemptSucceeded:
		return body, lastStatus, nil
	case attemptFailed:
		return nil, lastStatus, terminal
	default:
		return nil, lastStatus, fmt.Errorf("character not found in any namespace")
	}
}
