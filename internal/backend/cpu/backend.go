// Package cpu implements the reference CPU backend. Its LRN kernel defines
// the semantics every other backend must reproduce.
package cpu

import (
	"github.com/born-ml/born-lrn/internal/parallel"
	"github.com/born-ml/born-lrn/internal/tensor"
)

// CPUBackend implements tensor operations on host memory in pure Go.
type CPUBackend struct {
	device tensor.Device
	cfg    parallel.Config
}

// New creates a new CPU backend with the default worker split.
func New() *CPUBackend {
	return NewWithConfig(tensor.CPU, parallel.DefaultConfig())
}

// NewWithConfig creates a CPU backend that tags its results with device and
// splits work according to cfg.
func NewWithConfig(device tensor.Device, cfg parallel.Config) *CPUBackend {
	return &CPUBackend{
		device: device,
		cfg:    cfg,
	}
}

// Name returns the backend name.
func (cpu *CPUBackend) Name() string {
	return "CPU"
}

// Device returns the compute device results are tagged with.
func (cpu *CPUBackend) Device() tensor.Device {
	return cpu.device
}

// Config returns the parallel execution settings.
func (cpu *CPUBackend) Config() parallel.Config {
	return cpu.cfg
}
