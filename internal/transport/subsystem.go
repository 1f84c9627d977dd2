package transport

import "sync"

// Subsystem is a reference-counted guard around process-wide socket
// library state.  Startup runs on the first Acquire, Cleanup on the
// Release that drops the count back to zero.
//
// Go initialises Winsock itself, so the platform hooks are no-ops; the
// guard still runs so that socket code behaves identically everywhere
// and handle accounting stays observable.
type Subsystem struct {
	mu      sync.Mutex
	refs    int
	startup func() error
	cleanup func() error
}

// Platform is the guard shared by every socket in the process.
var Platform = NewSubsystem(nil, nil) //nolint:gochecknoglobals

// NewSubsystem returns a guard with the given hooks.  Nil hooks are
// treated as no-ops.
func NewSubsystem(startup, cleanup func() error) *Subsystem {
	return &Subsystem{startup: startup, cleanup: cleanup}
}

// Acquire takes one reference, running the startup hook on the 0→1
// transition.  A failed startup leaves the count unchanged.
func (s *Subsystem) Acquire() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.refs == 0 && s.startup != nil {
		if err := s.startup(); err != nil {
			return err
		}
	}
	s.refs++
	return nil
}

// Release drops one reference, running the cleanup hook on the 1→0
// transition.  Cleanup errors are swallowed and extra releases are
// ignored.
func (s *Subsystem) Release() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.refs == 0 {
		return
	}
	s.refs--
	if s.refs == 0 && s.cleanup != nil {
		_ = s.cleanup()
	}
}

// Refs returns the number of outstanding references.
func (s *Subsystem) Refs() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.refs
}
