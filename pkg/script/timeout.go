package script

import (
	"sync"
	"time"

	"github.com/aukilabs/go-tooling/pkg/errors"
)

// EvalTimeout bounds how long one script may run.
const EvalTimeout = 5 * time.Second

type evalResult struct {
	result *Result
	errors []EvalError
	err    error
}

// waitWithTimeout returns the evaluation result sent on ch, or a
// script-timeout error once timeout elapses. A result whose generation is no
// longer current is reported as script-superseded. A timed out goroutine
// keeps running and its late result is dropped.
func waitWithTimeout(
	ch <-chan evalResult,
	gen uint64,
	mu *sync.Mutex,
	currentGen *uint64,
	timeout time.Duration,
) (*Result, []EvalError, error) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case res := <-ch:
		mu.Lock()
		current := *currentGen
		mu.Unlock()

		if gen != current {
			return nil, nil, errors.New("evaluation superseded by newer request").
				WithType(ErrTypeSuperseded).
				WithTag("generation", gen).
				WithTag("current", current)
		}
		return res.result, res.errors, res.err

	case <-timer.C:
		return nil, nil, errors.New("evaluation timed out").
			WithType(ErrTypeTimeout).
			WithTag("timeout", timeout.String())
	}
}
