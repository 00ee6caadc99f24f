// Package config holds the flag set spec.md §6 exposes for the inlining
// pass: whether the linear inliner runs at all, whether it may branch on a
// non-unique tail-unifier, and whether resolved rules get their unbound
// variables existentially closed.
//
// Modeled as a plain struct plus functional options, the same shape as the
// teacher and the pack use for small, programmatically-constructed
// configuration rather than a parsed file or flag set — there is no CLI or
// config-file surface here (spec.md §6 "No file formats, no CLI").
package config

// Config is the flag set consumed by plan.Planner and engine.Engine.
type Config struct {
	// InlineLinear enables the linear-chain inlining stage (§4.8). Default true.
	InlineLinear bool
	// InlineLinearBranch allows the linear inliner to proceed past a
	// non-unique tail-unifier (§4.8 step 4). Default false.
	InlineLinearBranch bool
	// FixUnboundVars existentially closes variables a resolution step
	// leaves unbound in the resolved rule (§4.1 step 5). Default false.
	FixUnboundVars bool
}

// Option configures a Config.
type Option func(*Config)

// WithInlineLinear sets InlineLinear.
func WithInlineLinear(v bool) Option { return func(c *Config) { c.InlineLinear = v } }

// WithInlineLinearBranch sets InlineLinearBranch.
func WithInlineLinearBranch(v bool) Option { return func(c *Config) { c.InlineLinearBranch = v } }

// WithFixUnboundVars sets FixUnboundVars.
func WithFixUnboundVars(v bool) Option { return func(c *Config) { c.FixUnboundVars = v } }

// New returns a Config with spec.md §6's defaults (InlineLinear true, the
// other two false), then applies opts in order.
func New(opts ...Option) *Config {
	c := &Config{InlineLinear: true}
	for _, opt := range opts {
		opt(c)
	}
	return c
}
