// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cpu provides the pure Go reference backend for the LRN operator.
//
// # Overview
//
// The reference kernel:
//   - Pure Go implementation (no CGO)
//   - Float32 and Float64 support (float32 accumulates in float64)
//   - Direct window sums over the channel axis
//   - Work split across (batch, spatial) positions
//
// It defines the semantics every accelerated backend must reproduce and is
// the fallback the operator selects when no accelerated backend applies.
//
// # Basic Usage
//
//	p, _ := lrn.NewParam(5, 1e-4, 0.75, 2)
//	k, err := cpu.NewLRNKernel(p, tensor.Float32)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	y, saved := k.Forward(x)
//	dx := k.Backward(dy, x, saved)
package cpu
