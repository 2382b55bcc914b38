package lrn

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/born-ml/born-lrn/internal/tensor"
)

// Capability is a set of acceleration backends available to an execution
// context.
type Capability uint32

// Known capability flags.
const (
	// CapWebGPU marks a usable WebGPU adapter.
	CapWebGPU Capability = 1 << iota
	// CapNative marks a loaded native LRN math library.
	CapNative
)

// Has reports whether c contains every flag in other.
func (c Capability) Has(other Capability) bool {
	return c&other == other
}

// String lists the flags in c.
func (c Capability) String() string {
	if c == 0 {
		return "none"
	}
	var names []string
	if c.Has(CapWebGPU) {
		names = append(names, "webgpu")
	}
	if c.Has(CapNative) {
		names = append(names, "native")
	}
	if rest := c &^ (CapWebGPU | CapNative); rest != 0 {
		names = append(names, fmt.Sprintf("0x%x", uint32(rest)))
	}
	return strings.Join(names, "|")
}

// ExecutionContext is the read-only per-compilation context a kernel is
// selected for.
type ExecutionContext struct {
	Device       tensor.Device
	Capabilities Capability
}

// String formats the context for diagnostics.
func (c ExecutionContext) String() string {
	return fmt.Sprintf("%s[%s]", c.Device, c.Capabilities)
}

// Provider describes one backend able to build LRN kernels.
type Provider struct {
	// Kind names the backend, e.g. "webgpu", "native", "reference".
	Kind string
	// Priority orders providers; higher is tried first.
	Priority int
	// Requires lists the capabilities the context must advertise.
	// Zero means always eligible.
	Requires Capability
	// Supports reports whether the backend handles the (device, dtype) pair.
	Supports func(device tensor.Device, dtype tensor.DataType) bool
	// New builds a kernel. An error makes the selector fall through to the
	// next provider.
	New func(p Param, dtype tensor.DataType, ctx ExecutionContext) (Kernel, error)
}

func (p Provider) eligible(dtype tensor.DataType, ctx ExecutionContext) bool {
	if !ctx.Capabilities.Has(p.Requires) {
		return false
	}
	return p.Supports != nil && p.Supports(ctx.Device, dtype)
}

// Registry is an ordered set of providers. It is populated once and is
// read-only after Freeze; Select is safe for concurrent use.
type Registry struct {
	mu        sync.RWMutex
	providers []Provider
	frozen    bool
	logger    *slog.Logger
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{logger: slog.New(slog.DiscardHandler)}
}

// SetLogger sets the logger receiving selection diagnostics.
func (r *Registry) SetLogger(logger *slog.Logger) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	r.logger = logger
}

// Register adds a provider. It fails after Freeze, for duplicate kinds and
// for incomplete providers.
func (r *Registry) Register(p Provider) error {
	if p.Kind == "" || p.Supports == nil || p.New == nil {
		return fmt.Errorf("lrn: provider %q must set Kind, Supports and New", p.Kind)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.frozen {
		return fmt.Errorf("lrn: registry is frozen, cannot register %q", p.Kind)
	}
	for _, existing := range r.providers {
		if existing.Kind == p.Kind {
			return fmt.Errorf("lrn: provider %q already registered", p.Kind)
		}
	}

	r.providers = append(r.providers, p)
	// Stable: equal priorities keep registration order.
	sort.SliceStable(r.providers, func(i, j int) bool {
		return r.providers[i].Priority > r.providers[j].Priority
	})
	return nil
}

// Freeze makes the registry read-only.
func (r *Registry) Freeze() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frozen = true
}

// Providers returns the providers in selection order.
func (r *Registry) Providers() []Provider {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]Provider(nil), r.providers...)
}

// Select returns a kernel from the highest priority provider that is
// eligible for (dtype, ctx) and constructs successfully.
//
// Falling through to a less specialized provider is not an error. If no
// provider produces a kernel the error wraps ErrConfiguration.
func (r *Registry) Select(p Param, dtype tensor.DataType, ctx ExecutionContext) (Kernel, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if !dtype.Valid() || !ctx.Device.Valid() {
		return nil, fmt.Errorf("lrn: unrecognized dtype %s or device %s: %w", dtype, ctx.Device, ErrConfiguration)
	}

	providers := r.Providers()
	r.mu.RLock()
	logger := r.logger
	r.mu.RUnlock()

	for _, prov := range providers {
		if !prov.eligible(dtype, ctx) {
			continue
		}
		kernel, err := prov.New(p, dtype, ctx)
		if err != nil {
			logger.Debug("lrn backend unavailable, falling through",
				"backend", prov.Kind, "dtype", dtype, "context", ctx, "error", err)
			continue
		}
		logger.Debug("lrn backend selected", "backend", prov.Kind, "dtype", dtype, "context", ctx)
		return kernel, nil
	}

	return nil, fmt.Errorf("lrn: no backend for device %s and dtype %s: %w", ctx.Device, dtype, ErrConfiguration)
}
