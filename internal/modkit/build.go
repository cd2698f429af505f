package modkit

import "net/http"

// Option mutates build configuration for a module
type Option func(*Built)

// Built is what a module constructor reads after applying options
type Built struct {
	Name   string
	Prefix string
	Mw     []func(http.Handler) http.Handler
	// Ports is injected by the composing code, the module asserts its own type
	Ports any
	// Register attaches extra routes after the module's own
	Register func(Router)
}

// WithName overrides the module name used in logs and the port registry
func WithName(name string) Option { return func(b *Built) { b.Name = name } }

// WithPrefix overrides the mount path
func WithPrefix(prefix string) Option { return func(b *Built) { b.Prefix = prefix } }

// WithMiddlewares appends per module middleware, applied in order
func WithMiddlewares(mw ...func(http.Handler) http.Handler) Option {
	return func(b *Built) { b.Mw = append(b.Mw, mw...) }
}

// WithPorts injects ports another module exposes
func WithPorts[T any](p T) Option { return func(b *Built) { b.Ports = p } }

// WithRegister attaches extra endpoints to the module router
func WithRegister(fn func(Router)) Option { return func(b *Built) { b.Register = fn } }

// Build applies opts over the zero config, later options win
func Build(opts ...Option) Built {
	var b Built
	for _, o := range opts {
		o(&b)
	}
	b.Mw = append([]func(http.Handler) http.Handler(nil), b.Mw...)
	if b.Register == nil {
		b.Register = func(Router) {}
	}
	return b
}
