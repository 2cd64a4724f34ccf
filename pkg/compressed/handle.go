package compressed

import (
	"context"
	"fmt"
)

// Handle gives access to a decode service that is loading or loaded.
// It is safe for concurrent use.
type Handle struct {
	done chan struct{}
	svc  Service
	err  error
}

// Init starts loading the service in the background. The loader runs
// exactly once per Handle; ctx bounds the load.
func Init(ctx context.Context, load Loader) *Handle {
	h := &Handle{done: make(chan struct{})}
	go func() {
		defer close(h.done)
		svc, err := load(ctx)
		if err == nil && svc == nil {
			err = fmt.Errorf("loader returned no service")
		}
		h.svc, h.err = svc, err
	}()
	return h
}

// Ready returns a Handle for an already loaded service.
func Ready(svc Service) *Handle {
	h := &Handle{done: make(chan struct{}), svc: svc}
	close(h.done)
	return h
}

// Service waits for the load to finish and returns the service. A failed
// load is reported as *ServiceError to every caller.
func (h *Handle) Service(ctx context.Context) (Service, error) {
	select {
	case <-h.done:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	if h.err != nil {
		return nil, &ServiceError{Op: "init", Err: h.err}
	}
	return h.svc, nil
}

// Loaded reports whether loading has finished, successfully or not.
func (h *Handle) Loaded() bool {
	select {
	case <-h.done:
		return true
	default:
		return false
	}
}
