package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/zephyrtronium/calc"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// errFailed reports that some expressions did not evaluate. Their errors have
// already been printed.
var errFailed = errors.New("some expressions failed")

type app struct {
	cfgPath string
	inname  string
	verbose bool
	// flags holds settings given as flags, before merging with the config
	// file.
	flags config
	cfg   config

	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	var a app
	cmd := &cobra.Command{
		Use:   "calc [expression...]",
		Short: "Evaluate arithmetic expressions",
		Long: `calc evaluates arithmetic expressions made of numbers, + - * / % ^,
unary signs, and round brackets. Each argument is one expression. With no
arguments, calc reads a single expression from standard input, or one per line
with --lines.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			zc := zap.NewProductionConfig()
			if a.verbose {
				zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			}
			var err error
			a.logger, err = zc.Build()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			a.cfg, err = loadConfig(a.cfgPath)
			if err != nil {
				return err
			}
			a.cfg.override(cmd.Flags(), a.flags)
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
		RunE: a.run,
	}
	f := cmd.Flags()
	f.StringVar(&a.cfgPath, "config", "", "YAML config file with default settings")
	f.StringVar(&a.inname, "in", "", "input file, - for stdin (default stdin if no args given)")
	f.BoolVarP(&a.verbose, "verbose", "v", false, "log each evaluation")
	f.StringVar(&a.flags.Format, "fmt", "%g", "result formatting string")
	f.UintVarP(&a.flags.Prec, "prec", "p", 0, "precision of calculations in bits (0 for float64)")
	f.BoolVar(&a.flags.ShowExpression, "show-expression", false, "print each expression with its result")
	f.BoolVar(&a.flags.Tree, "tree", false, "print parse trees")
	f.BoolVar(&a.flags.Dot, "dot", false, "print parse trees as Graphviz digraphs instead of results")
	f.BoolVarP(&a.flags.Lines, "lines", "n", false, "parse separate input lines as separate expressions")
	return cmd
}

func (a *app) run(cmd *cobra.Command, args []string) error {
	srcs, err := a.inputs(cmd, args)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	failed := 0
	for _, src := range srcs {
		if !a.eval(out, src) {
			failed++
		}
	}
	if failed > 0 {
		a.logger.Debug("evaluation finished", zap.Int("expressions", len(srcs)), zap.Int("failed", failed))
		return errFailed
	}
	return nil
}

// inputs collects the expressions to evaluate, in order: the input file, then
// each argument.
func (a *app) inputs(cmd *cobra.Command, args []string) ([]string, error) {
	var srcs []string
	var in io.Reader
	switch {
	case a.inname != "" && a.inname != "-":
		f, err := os.Open(a.inname)
		if err != nil {
			return nil, fmt.Errorf("opening input: %w", err)
		}
		defer f.Close()
		in = f
	case a.inname == "-", len(args) == 0:
		in = cmd.InOrStdin()
	}
	if in != nil {
		v, err := a.read(in)
		if err != nil {
			return nil, err
		}
		srcs = append(srcs, v...)
	}
	return append(srcs, args...), nil
}

// read reads expressions from an input, either the whole input as one
// expression or one per non-blank line.
func (a *app) read(in io.Reader) ([]string, error) {
	if !a.cfg.Lines {
		b, err := io.ReadAll(in)
		if err != nil {
			return nil, fmt.Errorf("reading input: %w", err)
		}
		return []string{string(b)}, nil
	}
	var srcs []string
	sc := bufio.NewScanner(in)
	for sc.Scan() {
		if strings.TrimSpace(sc.Text()) == "" {
			continue
		}
		srcs = append(srcs, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}
	return srcs, nil
}

// eval evaluates and prints one expression. It returns false if the
// expression failed.
func (a *app) eval(out io.Writer, src string) bool {
	if a.cfg.ShowExpression && !a.cfg.Dot {
		fmt.Fprintf(out, "%s = ", strings.TrimSpace(src))
	}
	toks, err := calc.Tokenize(src)
	if err != nil {
		return a.fail(out, src, err)
	}
	n, err := calc.Parse(toks)
	if err != nil {
		return a.fail(out, src, err)
	}
	a.logger.Debug("parsed",
		zap.String("expr", src),
		zap.Stringers("tokens", toks),
		zap.Stringer("tree", n),
	)
	if a.cfg.Dot {
		s, err := n.Dot()
		if err != nil {
			return a.fail(out, src, err)
		}
		fmt.Fprint(out, s)
		return true
	}
	if a.cfg.Tree {
		fmt.Fprintf(out, "%v : ", n)
	}
	verb := a.cfg.Format + "\n"
	if a.cfg.Prec == 0 {
		r, err := n.Eval()
		if err != nil {
			return a.fail(out, src, err)
		}
		fmt.Fprintf(out, verb, r)
		return true
	}
	r, err := n.EvalPrec(a.cfg.Prec)
	if err != nil {
		return a.fail(out, src, err)
	}
	fmt.Fprintf(out, verb, r)
	return true
}

func (a *app) fail(out io.Writer, src string, err error) bool {
	a.logger.Debug("evaluation failed",
		zap.String("expr", src),
		zap.String("class", calc.Classify(err)),
		zap.Error(err),
	)
	fmt.Fprintln(out, err)
	return false
}
