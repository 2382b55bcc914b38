// Package operators maps ONNX nodes onto Born operators.
//
// The package provides a registry of operator handlers. Each handler
// validates the node's inputs and attributes, converts them to the
// operator's parameters and runs it through the operator factory.
package operators
