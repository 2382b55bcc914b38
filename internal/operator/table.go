package operator

import (
	"fmt"
	"sort"
	"sync"

	"github.com/born-ml/born-lrn/internal/lrn"
	"github.com/born-ml/born-lrn/internal/tensor"
)

// Constructor builds an operator from keyword arguments, as the
// graph-construction layer supplies them.
type Constructor func(kwargs map[string]string, shapes []tensor.Shape, types []tensor.DataType, ctx lrn.ExecutionContext) (*Operator, error)

// Entry is one registered operator.
type Entry struct {
	Schema lrn.Schema
	Create Constructor
}

var (
	tableOnce sync.Once
	table     map[string]Entry
)

func ops() map[string]Entry {
	tableOnce.Do(func() {
		table = map[string]Entry{
			lrn.OpName: {
				Schema: lrn.OpSchema(),
				Create: createFromKwargs,
			},
		}
	})
	return table
}

// Lookup returns the registered operator named name.
func Lookup(name string) (Entry, bool) {
	e, ok := ops()[name]
	return e, ok
}

// Names returns the registered operator names, sorted.
func Names() []string {
	names := make([]string, 0, len(ops()))
	for name := range ops() {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Create builds the operator named name from keyword arguments.
func Create(name string, kwargs map[string]string, shapes []tensor.Shape, types []tensor.DataType, ctx lrn.ExecutionContext) (*Operator, error) {
	e, ok := Lookup(name)
	if !ok {
		return nil, fmt.Errorf("operator: unknown operator %q", name)
	}
	return e.Create(kwargs, shapes, types, ctx)
}

func createFromKwargs(kwargs map[string]string, shapes []tensor.Shape, types []tensor.DataType, ctx lrn.ExecutionContext) (*Operator, error) {
	p, err := lrn.ParseParam(kwargs)
	if err != nil {
		return nil, err
	}
	return CreateOperator(p, shapes, types, ctx)
}
