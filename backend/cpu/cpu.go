// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package cpu

import (
	internalcpu "github.com/born-ml/born-lrn/internal/backend/cpu"
	"github.com/born-ml/born-lrn/internal/lrn"
	"github.com/born-ml/born-lrn/internal/parallel"
	"github.com/born-ml/born-lrn/tensor"
)

// Backend represents the CPU backend implementation.
type Backend = internalcpu.CPUBackend

// LRNKernel is the reference LRN kernel.
type LRNKernel = internalcpu.LRNKernel

// Kind names the reference backend, as reported by Operator.Kind.
const Kind = internalcpu.ReferenceKind

// Compile-time check that LRNKernel implements the kernel contract.
var _ lrn.Kernel = (*LRNKernel)(nil)

// New creates a new CPU backend.
func New() *Backend {
	return internalcpu.New()
}

// NewLRNKernel binds a reference kernel to p and dtype on the CPU device,
// using every available core.
func NewLRNKernel(p lrn.Param, dtype tensor.DataType) (*LRNKernel, error) {
	return internalcpu.NewLRNKernel(p, dtype, tensor.CPU, parallel.DefaultConfig())
}
