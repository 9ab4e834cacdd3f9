// Package vcconfig holds the flat operator-facing settings shared across the
// verification core: codec version bounds, watch-mode cache invalidation,
// and solver obligation batching (spec.md is silent on all three; they are
// ambient operational knobs every Orizon-style package carries, following
// internal/packagemanager's ResolveOptions flat-struct convention).
package vcconfig

// Config controls cross-cutting behavior of the codec, global generator, and
// VC engine. The zero value is a usable default.
type Config struct {
	// AcceptedVersions is a semver constraint (e.g. "^1.0") bounding the
	// vccodec.Codec's accepted on-wire major.minor pair. Empty means accept
	// only the version this build writes.
	AcceptedVersions string
	// WatchEnabled records whether vcglobal's fsnotify-backed cache
	// invalidation is wanted. No package in this module reads it; a
	// Generator's watch is started only by calling Generator.Watch.
	WatchEnabled bool
	// ObligationBatchSize records a cap on obligations per solver batch (0
	// for unbatched). No package in this module reads it; the VC engine
	// makes one Check call per obligation.
	ObligationBatchSize int
}

// Default returns the Config every command-line entry point starts from.
func Default() Config {
	return Config{
		AcceptedVersions:    "",
		WatchEnabled:        false,
		ObligationBatchSize: 0,
	}
}

// Option mutates a Config under construction.
type Option func(*Config)

// WithAcceptedVersions sets the codec's accepted version constraint.
func WithAcceptedVersions(constraint string) Option {
	return func(c *Config) { c.AcceptedVersions = constraint }
}

// WithWatchEnabled sets WatchEnabled.
func WithWatchEnabled(enabled bool) Option {
	return func(c *Config) { c.WatchEnabled = enabled }
}

// WithObligationBatchSize sets ObligationBatchSize.
func WithObligationBatchSize(n int) Option {
	return func(c *Config) { c.ObligationBatchSize = n }
}

// New builds a Config from Default with opts applied in order.
func New(opts ...Option) Config {
	c := Default()

	for _, opt := range opts {
		opt(&c)
	}

	return c
}
