package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/akamensky/argparse"
	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/nxtrace/NShor/config"
	"github.com/nxtrace/NShor/printer"
	"github.com/nxtrace/NShor/server"
	"github.com/nxtrace/NShor/shor"
	"github.com/nxtrace/NShor/util"
)

func Excute() {
	if util.EnvNoColor || !term.IsTerminal(int(os.Stdout.Fd())) {
		color.NoColor = true
	}
	os.Exit(run(os.Args, color.Output))
}

// run parses args and drives one CLI invocation, returning the exit code.
func run(args []string, w io.Writer) int {
	var paths []string
	if util.EnvConfigDir != "" {
		paths = append(paths, util.EnvConfigDir)
	}
	v, err := config.InitConfig(paths...)
	if err != nil {
		fmt.Fprintf(w, "read config: %v\n", err)
		return 1
	}
	set := config.Load(v)

	parser := argparse.NewParser("nshor", "Shor-style integer factoring with pluggable period oracles")
	numbers := parser.StringList("N", "number", &argparse.Options{Default: set.Targets, Help: "Integer to factor, may be repeated"})
	attempts := parser.Int("a", "attempts", &argparse.Options{Default: set.Attempts, Help: "Set the max number of random bases tried per number"})
	oracle := parser.String("o", "oracle", &argparse.Options{Default: set.Oracle,
		Help: "Comma separated period oracle order [simulated, classical]"})
	shots := parser.Int("s", "shots", &argparse.Options{Default: set.Shots, Help: "Set the measurement shots per simulated estimate"})
	seed := parser.Int("", "seed", &argparse.Options{Default: int(set.Seed), Help: "Seed the base selection and the simulator (0 is time based)"})
	refine := parser.Flag("", "refine", &argparse.Options{Default: set.Refine, Help: "Run continued fractions on simulated measurements"})
	fallback := parser.Flag("", "fallback-on-reject", &argparse.Options{Default: set.FallbackOnReject,
		Help: "Ask the next oracle when an estimate yields no factors"})
	maxQubits := parser.Int("", "max-qubits", &argparse.Options{Default: set.MaxQubits, Help: "Refuse simulated runs wider than this register (0 is unlimited)"})
	parallel := parser.Int("p", "parallel", &argparse.Options{Default: set.Parallel, Help: "Set how many numbers are factored at once"})
	timeout := parser.Int("", "timeout", &argparse.Options{Default: int(set.Timeout.Milliseconds()),
		Help: "The number of [milliseconds] each number may take before it is aborted (0 is unlimited)"})
	tablePrint := parser.Flag("t", "table", &argparse.Options{Help: "Output results as table"})
	jsonPrint := parser.Flag("j", "json", &argparse.Options{Help: "Output results as JSON"})
	verbose := parser.Flag("V", "verbose", &argparse.Options{Help: "Print every attempt as it finishes and enable debug logs"})
	listen := parser.String("", "listen", &argparse.Options{Help: "Start the factoring service on this address"})
	serve := parser.Flag("", "serve", &argparse.Options{Help: "Start the factoring service on the configured address"})
	initConfig := parser.String("", "init-config", &argparse.Options{Help: "Write the current settings to this yaml file and exit"})
	ver := parser.Flag("v", "version", &argparse.Options{Help: "Print version info and exit"})

	if err := parser.Parse(args); err != nil {
		fmt.Fprint(w, parser.Usage(err))
		return 2
	}
	if !*jsonPrint {
		printer.Version()
	}
	if *ver {
		printer.CopyRight()
		return 0
	}
	if *initConfig != "" {
		if err := config.Generate(v, *initConfig); err != nil {
			fmt.Fprintf(w, "write config: %v\n", err)
			return 1
		}
		fmt.Fprintf(w, "config written to %s\n", *initConfig)
		return 0
	}

	order, err := shor.ParseOrder(*oracle)
	if err != nil {
		fmt.Fprintf(w, "%v\n", err)
		return 2
	}

	logger, err := util.NewLogger(*verbose || util.EnvDebug)
	if err != nil {
		fmt.Fprintf(w, "init logger: %v\n", err)
		return 1
	}
	defer func() {
		_ = logger.Sync()
	}()

	conf := shor.Config{
		MaxAttempts:      *attempts,
		Order:            order,
		Shots:            *shots,
		MaxQubits:        *maxQubits,
		Refine:           *refine,
		FallbackOnReject: *fallback,
		Seed:             int64(*seed),
		Timeout:          time.Duration(*timeout) * time.Millisecond,
		Logger:           logger,
	}

	if *serve || *listen != "" {
		addr := *listen
		if addr == "" {
			addr = set.Listen
		}
		workers := *parallel
		if util.EnvWorkers > 0 {
			workers = util.EnvWorkers
		}
		if err := server.Run(addr, server.NewHandler(conf, workers, logger)); err != nil {
			fmt.Fprintf(w, "%v\n", err)
			return 1
		}
		return 0
	}

	if *verbose && !*jsonPrint {
		conf.OnAttempt = printer.RealtimePrinter(w)
	}
	if !*jsonPrint && !*tablePrint {
		printer.PrintFactorNav(w, len(*numbers), order, conf.MaxAttempts, conf.Shots)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	outcomes := shor.FactorizeInputs(ctx, *numbers, conf, *parallel)

	switch {
	case *jsonPrint:
		if err := printer.JSONPrinter(w, outcomes); err != nil {
			fmt.Fprintf(w, "%v\n", err)
			return 1
		}
	case *tablePrint:
		printer.BatchTablePrinter(w, outcomes)
	default:
		printer.Outcomes(w, outcomes)
	}
	return 0
}
