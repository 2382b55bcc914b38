// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package autodiff records LRN forward passes on a gradient tape and
// replays them in reverse to compute input gradients.
//
// Example:
//
//	tape := autodiff.NewGradientTape()
//	tape.StartRecording()
//	y := autodiff.LRN(tape, op, x)
//	grads := tape.Backward(autodiff.OnesLike(y))
//	dx := grads[x]
package autodiff

import (
	"github.com/born-ml/born-lrn/internal/autodiff"
	"github.com/born-ml/born-lrn/internal/tensor"
)

// GradientTape records operations for reverse-mode differentiation.
type GradientTape = autodiff.GradientTape

// LRNOperator is a bound LRN operator.
type LRNOperator = autodiff.LRNOperator

// NewGradientTape creates a new gradient tape.
func NewGradientTape() *GradientTape {
	return autodiff.NewGradientTape()
}

// LRN runs op forward on input and records it on tape.
func LRN(tape *GradientTape, op LRNOperator, input *tensor.RawTensor) *tensor.RawTensor {
	return autodiff.LRN(tape, op, input)
}

// OnesLike returns a tensor of ones shaped like t.
func OnesLike(t *tensor.RawTensor) *tensor.RawTensor {
	return autodiff.OnesLike(t)
}
