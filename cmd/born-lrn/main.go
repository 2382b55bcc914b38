// Package main provides the Born LRN CLI.
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/born-ml/born-lrn/internal/lrn"
	"github.com/born-ml/born-lrn/internal/operator"
	"github.com/born-ml/born-lrn/internal/tensor"
)

const version = "v0.1.0-dev"

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "born-lrn: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, w io.Writer) error {
	if len(args) == 0 {
		usage(w)
		return nil
	}
	switch args[0] {
	case "version":
		fmt.Fprintf(w, "Born LRN %s\n", version)
	case "backends":
		backends(w)
	case "schema":
		fmt.Fprintln(w, lrn.OpSchema().String())
		fmt.Fprintln(w)
		for _, f := range lrn.OpSchema().Fields {
			def := f.Default
			if f.Required {
				def = "required"
			}
			fmt.Fprintf(w, "  %-6s %-6s %-10s %s\n", f.Name, f.Type, def, f.Description)
		}
	case "demo":
		return demo(args[1:], w)
	default:
		usage(w)
		return fmt.Errorf("unknown command %q", args[0])
	}
	return nil
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "Born LRN - Local Response Normalization for Go")
	fmt.Fprintf(w, "Version: %s\n\n", version)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  version    Show version")
	fmt.Fprintln(w, "  backends   List registered backends and detected capabilities")
	fmt.Fprintln(w, "  schema     Show the operator registration surface")
	fmt.Fprintln(w, "  demo       Run LRN forward/backward on a small input")
}

func backends(w io.Writer) {
	caps := operator.DetectCapabilities()
	fmt.Fprintf(w, "capabilities: %s\n", caps)
	for _, p := range operator.DefaultRegistry().Providers() {
		status := "available"
		if !caps.Has(p.Requires) {
			status = "unavailable"
		}
		fmt.Fprintf(w, "  %-10s priority=%-4d %s\n", p.Kind, p.Priority, status)
	}
}

func demo(args []string, w io.Writer) error {
	fs := flag.NewFlagSet("demo", flag.ContinueOnError)
	fs.SetOutput(w)
	nsize := fs.Int("nsize", 3, "window size (odd)")
	alpha := fs.Float64("alpha", 1, "scale of the squared sum")
	beta := fs.Float64("beta", 1, "exponent")
	knorm := fs.Float64("knorm", 1, "additive constant")
	values := fs.String("values", "1,2,3", "comma separated channel values at one spatial position")
	dtypeName := fs.String("dtype", "float32", "element type")
	verbose := fs.Bool("v", false, "log backend selection")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *verbose {
		operator.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	p, err := lrn.NewParam(*nsize, *alpha, *beta, *knorm)
	if err != nil {
		return err
	}
	dtype, err := tensor.ParseDataType(*dtypeName)
	if err != nil {
		return err
	}
	data, err := parseValues(*values)
	if err != nil {
		return err
	}

	shape := tensor.Shape{1, len(data), 1}
	x, err := tensor.FromFloat64(data, shape, tensor.CPU)
	if err != nil {
		return err
	}
	if dtype == tensor.Float32 {
		f32 := make([]float32, len(data))
		for i, v := range data {
			f32[i] = float32(v)
		}
		if x, err = tensor.FromFloat32(f32, shape, tensor.CPU); err != nil {
			return err
		}
	}

	op, err := operator.CreateOperator(p, []tensor.Shape{shape}, []tensor.DataType{dtype}, operator.DefaultContext(tensor.CPU))
	if err != nil {
		return err
	}
	defer op.Release()

	y, saved := op.Forward(x)
	ones, err := tensor.Full(shape, dtype, tensor.CPU, 1)
	if err != nil {
		return err
	}
	dx := op.Backward(ones, x, saved)

	fmt.Fprintf(w, "operator: %s\n", op)
	fmt.Fprintf(w, "input:    %v\n", x.Float64s())
	fmt.Fprintf(w, "scale:    %v\n", saved.Scale.Float64s())
	fmt.Fprintf(w, "output:   %v\n", y.Float64s())
	fmt.Fprintf(w, "grad:     %v\n", dx.Float64s())
	return nil
}

func parseValues(s string) ([]float64, error) {
	parts := strings.Split(s, ",")
	out := make([]float64, 0, len(parts))
	for _, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid value %q: %w", part, err)
		}
		out = append(out, v)
	}
	return out, nil
}
