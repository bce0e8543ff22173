package mouse

import (
	"errors"
	"sync"
)

var (
	// ErrHookActive implies Start was called while the hook was running.
	ErrHookActive = errors.New("mouse hook already running")

	// ErrHookInactive implies Stop was called without a running hook.
	ErrHookInactive = errors.New("mouse hook not running")
)

// Handler receives hook events on the hook's own thread. It must return
// quickly; the system stalls mouse input until it does.
type Handler func(Event)

// installHook starts the platform hook and returns the function that
// removes it.
var installHook = systemInstall

// The hook is process-wide; there is at most one.
var (
	hookMu   sync.Mutex
	stopHook func() error
)

// Start installs the process-wide hook and delivers every event to h.
func Start(h Handler) error {
	hookMu.Lock()
	defer hookMu.Unlock()

	if stopHook != nil {
		return ErrHookActive
	}
	stop, err := installHook(h)
	if err != nil {
		return err
	}
	stopHook = stop
	return nil
}

// Stop removes the hook. No events are delivered after it returns.
func Stop() error {
	hookMu.Lock()
	defer hookMu.Unlock()

	if stopHook == nil {
		return ErrHookInactive
	}
	err := stopHook()
	stopHook = nil
	return err
}

// Running reports whether the hook is installed.
func Running() bool {
	hookMu.Lock()
	defer hookMu.Unlock()
	return stopHook != nil
}
