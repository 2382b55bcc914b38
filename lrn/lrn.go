// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package lrn

import (
	"log/slog"

	"github.com/born-ml/born-lrn/internal/lrn"
	"github.com/born-ml/born-lrn/internal/operator"
	"github.com/born-ml/born-lrn/internal/tensor"
)

// Param is the immutable configuration of one LRN instance.
type Param = lrn.Param

// Saved holds forward intermediates for the backward pass.
type Saved = lrn.Saved

// Kernel is one backend's LRN implementation.
type Kernel = lrn.Kernel

// Operator is a validated LRN instance bound to one kernel.
type Operator = operator.Operator

// ExecutionContext selects the device and advertised capabilities.
type ExecutionContext = lrn.ExecutionContext

// Capability is a set of acceleration backends.
type Capability = lrn.Capability

// Schema is the operator's registration surface.
type Schema = lrn.Schema

// Capability flags.
const (
	CapWebGPU = lrn.CapWebGPU
	CapNative = lrn.CapNative
)

// Parameter defaults.
const (
	DefaultAlpha = lrn.DefaultAlpha
	DefaultBeta  = lrn.DefaultBeta
	DefaultKnorm = lrn.DefaultKnorm
)

// Errors returned by CreateOperator; test with errors.Is.
var (
	ErrInvalidParam  = lrn.ErrInvalidParam
	ErrShape         = lrn.ErrShape
	ErrType          = lrn.ErrType
	ErrConfiguration = lrn.ErrConfiguration
)

// NewParam creates a validated Param.
func NewParam(nsize int, alpha, beta, knorm float64) (Param, error) {
	return lrn.NewParam(nsize, alpha, beta, knorm)
}

// DefaultParam returns a Param with default alpha, beta and knorm.
func DefaultParam(nsize int) (Param, error) {
	return lrn.DefaultParam(nsize)
}

// ParseParam builds a Param from string keyword arguments.
func ParseParam(kwargs map[string]string) (Param, error) {
	return lrn.ParseParam(kwargs)
}

// OpSchema returns the registration surface: name, arguments, fields, doc.
func OpSchema() Schema {
	return lrn.OpSchema()
}

// CreateOperator validates inputs and binds a kernel for ctx.
func CreateOperator(p Param, shapes []tensor.Shape, types []tensor.DataType, ctx ExecutionContext) (*Operator, error) {
	return operator.CreateOperator(p, shapes, types, ctx)
}

// DefaultContext returns a context for device with detected capabilities.
func DefaultContext(device tensor.Device) ExecutionContext {
	return operator.DefaultContext(device)
}

// SetLogger routes backend selection diagnostics to logger at Debug level.
func SetLogger(logger *slog.Logger) {
	operator.SetLogger(logger)
}
