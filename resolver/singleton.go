package resolver

import "sync"

// Global resolver instance and initialization guard.
var (
	globalResolver *Resolver
	globalOnce     sync.Once
)

// Global returns the process-wide resolver.
// Creates a default resolver on first call if not already initialized.
func Global() *Resolver {
	globalOnce.Do(func() {
		globalResolver = New()
	})
	return globalResolver
}

// InitGlobal installs r as the process-wide resolver.
// Must be called before any call to Global() to take effect.
// Safe for concurrent use but only the first call has any effect.
func InitGlobal(r *Resolver) {
	globalOnce.Do(func() {
		globalResolver = r
	})
}

// ResetGlobal resets the global resolver for testing purposes.
// This is NOT thread-safe and should only be used in tests.
func ResetGlobal() {
	globalOnce = sync.Once{}
	globalResolver = nil
}
