// Package operator wires the LRN backends into a process-wide registry and
// builds bound operators for the graph-construction layer.
package operator

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/born-ml/born-lrn/internal/backend/cpu"
	"github.com/born-ml/born-lrn/internal/backend/native"
	"github.com/born-ml/born-lrn/internal/backend/webgpu"
	"github.com/born-ml/born-lrn/internal/lrn"
	"github.com/born-ml/born-lrn/internal/parallel"
	"github.com/born-ml/born-lrn/internal/tensor"
)

var (
	registryOnce    sync.Once
	defaultRegistry *lrn.Registry

	capsOnce sync.Once
	caps     lrn.Capability
)

// DefaultRegistry returns the process-wide provider registry, populated on
// first use in priority order (webgpu, native, reference) and frozen.
func DefaultRegistry() *lrn.Registry {
	registryOnce.Do(func() {
		reg := lrn.NewRegistry()
		for _, p := range []lrn.Provider{
			webgpu.Provider(),
			native.Provider(),
			cpu.Provider(parallel.DefaultConfig()),
		} {
			if err := reg.Register(p); err != nil {
				panic(fmt.Sprintf("operator: %v", err))
			}
		}
		reg.Freeze()
		defaultRegistry = reg
	})
	return defaultRegistry
}

// SetLogger routes backend selection diagnostics of the default registry to
// logger. Messages are logged at Debug level.
func SetLogger(logger *slog.Logger) {
	DefaultRegistry().SetLogger(logger)
}

// DetectCapabilities checks the runtime for acceleration backends once per
// process.
func DetectCapabilities() lrn.Capability {
	capsOnce.Do(func() {
		if webgpu.IsAvailable() {
			caps |= lrn.CapWebGPU
		}
		if native.IsAvailable() {
			caps |= lrn.CapNative
		}
	})
	return caps
}

// DefaultContext returns an execution context for device with the detected
// capabilities.
func DefaultContext(device tensor.Device) lrn.ExecutionContext {
	return lrn.ExecutionContext{Device: device, Capabilities: DetectCapabilities()}
}
