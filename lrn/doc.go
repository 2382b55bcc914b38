// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package lrn provides the Local Response Normalization operator.
//
// # Overview
//
// LRN normalizes every channel by the energy of its neighbouring channels at
// the same spatial position:
//
//	b[i] = a[i] / (knorm + alpha * Σ_{j=max(0,i-n/2)}^{min(C-1,i+n/2)} a[j]²)^beta
//
// CreateOperator validates the input shapes and types, then selects a
// kernel for the execution context. Backends are tried in priority order:
//   - webgpu: WebGPU accelerator, float32 only
//   - native: a runtime-loaded math library (BORN_LRN_NATIVE_LIB), CPU float32 only
//   - reference: pure Go, float32 and float64, every device
//
// A backend that cannot serve the request is skipped silently.
//
// # Basic Usage
//
//	p, err := lrn.NewParam(5, 1e-4, 0.75, 2)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	op, err := lrn.CreateOperator(p,
//	    []tensor.Shape{{8, 64, 28, 28}}, []tensor.DataType{tensor.Float32},
//	    lrn.DefaultContext(tensor.CPU))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer op.Release()
//
//	y, saved := op.Forward(x)
//	dx := op.Backward(dy, x, saved)
//
// # Thread Safety
//
// An Operator may run forward passes concurrently; each returns its own
// Saved. Backward for an example must follow the forward that produced its
// Saved.
package lrn
