// Package main provides the adcore CLI: evaluate derivatives of elementary
// functions, differentiate dot products and benchmark the reverse-mode tape.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/born-ml/adcore/admath"
	"github.com/born-ml/adcore/autodiff"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const version = "v0.1.0-dev"

type dual3 = autodiff.Fvar[autodiff.Fvar[autodiff.Fvar[autodiff.Float]]]

// functions maps names accepted by eval to their third-order evaluation.
var functions = map[string]func(dual3) (dual3, error){
	"asinh": func(x dual3) (dual3, error) { return admath.Asinh(x), nil },
	"atanh": admath.Atanh[dual3],
	"exp":   func(x dual3) (dual3, error) { return admath.Exp(x), nil },
	"log":   func(x dual3) (dual3, error) { return admath.Log(x), nil },
	"sqrt":  func(x dual3) (dual3, error) { return admath.Sqrt(x), nil },
	"sin":   func(x dual3) (dual3, error) { return admath.Sin(x), nil },
	"cos":   func(x dual3) (dual3, error) { return admath.Cos(x), nil },
	"tanh":  func(x dual3) (dual3, error) { return admath.Tanh(x), nil },
}

var errUsage = errors.New("usage")

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	if err := run(os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, errUsage) {
			usage(os.Stderr)
			os.Exit(2)
		}
		log.Fatal().Err(err).Msg("adcore failed")
	}
}

func usage(w io.Writer) {
	fmt.Fprintf(w, "adcore %s\n\n", version)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  version                      Show version")
	fmt.Fprintln(w, "  eval -fn NAME -x X           Value and first three derivatives")
	fmt.Fprintln(w, "  dot -a 1,2,3 -b 4,5,6        Dot product and its gradient")
	fmt.Fprintln(w, "  bench -n N -iters K          Time reverse passes over dot+log_sum_exp")
}

func run(args []string, out io.Writer) error {
	if len(args) == 0 {
		return errUsage
	}
	switch args[0] {
	case "version":
		fmt.Fprintf(out, "adcore %s\n", version)
		return nil
	case "eval":
		return runEval(args[1:], out)
	case "dot":
		return runDot(args[1:], out)
	case "bench":
		return runBench(args[1:], out)
	default:
		return fmt.Errorf("%w: unknown command %q", errUsage, args[0])
	}
}

func runEval(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("eval", flag.ContinueOnError)
	name := fs.String("fn", "asinh", "Function name ("+strings.Join(functionNames(), ", ")+")")
	x := fs.Float64("x", 0.5, "Point of evaluation")
	if err := fs.Parse(args); err != nil {
		return err
	}

	f, ok := functions[*name]
	if !ok {
		return fmt.Errorf("%w: unknown function %q", errUsage, *name)
	}
	d, err := autodiff.Derivatives(f, *x)
	if err != nil {
		return fmt.Errorf("eval %s(%g): %w", *name, *x, err)
	}
	fmt.Fprintf(out, "f(x)    = %.17g\n", d[0])
	fmt.Fprintf(out, "f'(x)   = %.17g\n", d[1])
	fmt.Fprintf(out, "f''(x)  = %.17g\n", d[2])
	fmt.Fprintf(out, "f'''(x) = %.17g\n", d[3])
	return nil
}

func runDot(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("dot", flag.ContinueOnError)
	aFlag := fs.String("a", "", "Comma-separated first vector")
	bFlag := fs.String("b", "", "Comma-separated second vector")
	if err := fs.Parse(args); err != nil {
		return err
	}

	a, err := parseVector(*aFlag)
	if err != nil {
		return fmt.Errorf("parse -a: %w", err)
	}
	b, err := parseVector(*bFlag)
	if err != nil {
		return fmt.Errorf("parse -b: %w", err)
	}

	cfg := autodiff.DefaultConfig()
	cfg.Name = "dot"
	cfg.Logger = log.Logger
	ctx := autodiff.New(cfg)
	defer ctx.Reset()

	va, vb := ctx.NewVars(a), ctx.NewVars(b)
	y, err := autodiff.DotVV(va, vb)
	if err != nil {
		return err
	}
	ctx.Grad(y)

	fmt.Fprintf(out, "value = %.17g\n", y.Value())
	fmt.Fprintf(out, "d/da  = %v\n", adjoints(va))
	fmt.Fprintf(out, "d/db  = %v\n", adjoints(vb))
	return nil
}

func runBench(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("bench", flag.ContinueOnError)
	n := fs.Int("n", 1000, "Vector length")
	iters := fs.Int("iters", 1000, "Number of gradient evaluations")
	metricsAddr := fs.String("metrics-addr", "", "Serve Prometheus metrics on this address and keep running (e.g. :9090)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *n <= 0 || *iters <= 0 {
		return fmt.Errorf("%w: -n and -iters must be positive", errUsage)
	}

	if *metricsAddr != "" {
		http.Handle("/metrics", promhttp.Handler())
		go func() {
			log.Info().Str("addr", *metricsAddr).Msg("Serving metrics")
			if err := http.ListenAndServe(*metricsAddr, nil); err != nil {
				log.Error().Err(err).Msg("Metrics server stopped")
			}
		}()
	}

	x := make([]float64, *n)
	for i := range x {
		x[i] = float64(i%17) / 17
	}
	w := make([]float64, *n)
	for i := range w {
		w[i] = 1 - float64(i%5)/5
	}
	f := func(xs []autodiff.Var) autodiff.Var {
		d, err := autodiff.DotDV(w, xs)
		if err != nil {
			panic(err)
		}
		return d.Add(autodiff.LogSumExp(xs))
	}

	cfg := autodiff.DefaultConfig()
	cfg.Name = "bench"
	ctx := autodiff.New(cfg)

	start := time.Now()
	var fx float64
	for range *iters {
		fx, _ = autodiff.Gradient(ctx, f, x)
	}
	elapsed := time.Since(start)

	log.Info().
		Int("n", *n).
		Int("iters", *iters).
		Dur("elapsed", elapsed).
		Float64("grads_per_sec", float64(*iters)/elapsed.Seconds()).
		Msg("Benchmark complete")
	fmt.Fprintf(out, "f(x) = %.17g\n", fx)
	fmt.Fprintf(out, "%d gradients of length %d in %s\n", *iters, *n, elapsed.Round(time.Microsecond))

	if *metricsAddr != "" {
		select {}
	}
	return nil
}

func parseVector(s string) ([]float64, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	out := make([]float64, len(parts))
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func adjoints(vs []autodiff.Var) []float64 {
	out := make([]float64, len(vs))
	for i, v := range vs {
		out[i] = v.Adj()
	}
	return out
}

func functionNames() []string {
	names := make([]string, 0, len(functions))
	for name := range functions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
