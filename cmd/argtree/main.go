// Command argtree parses an argument vector against a command tree read
// from a YAML or TOML file and prints the result.
//
//	argtree [-f json|yaml|merged] [--log-level LEVEL] [--no-color] SPEC [ARGS...]
//
// Put "--" before ARGS that start with a dash:
//
//	argtree git.yaml -- -q stash pop --index
package main

import (
	"io"
	"os"

	"github.com/fatih/color"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/dzonerzy/go-argtree/argtree"
	"github.com/dzonerzy/go-argtree/specfile"
)

// cli is the tool's own command line, parsed with argtree.
var cli = argtree.MustCommand("argtree",
	argtree.Description("parse arguments against a command tree file"),
	argtree.Arguments(
		argtree.NewOption("-f", "--format").
			WithDescription("output format").
			WithChoices("json", "yaml", "merged").
			WithDefault("json"),
		argtree.NewOption("--log-level").
			WithDescription("log level on stderr").
			WithChoices("debug", "info", "warn", "error").
			WithDefault("warn"),
		argtree.NewFlag("--no-color").WithDescription("disable colored errors"),
		argtree.NewPositional("spec").
			WithDescription("command tree file (.yaml, .yml, .json or .toml)"),
		argtree.NewPositional("args").
			WithDescription("argument vector to parse").
			WithReducer(argtree.Multiple[string](argtree.Unbounded)).
			WithDefaultFunc(func() any { return []string{} }),
	),
)

type options struct {
	format   string
	logLevel zapcore.Level
	noColor  bool
	spec     string
	args     []string
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(argv []string, stdout, stderr io.Writer) int {
	own := argtree.NewParser(cli)
	parsed := own.Parse(argv)
	if parsed.IsErr() {
		perr := parsed.UnwrapErr()
		printError(stderr, own.Dialect().FormatError(perr))
		return argtree.ExitCode(perr)
	}
	tree := parsed.Unwrap()

	opts, err := optionsFrom(tree)
	if err != nil {
		printError(stderr, "error: "+err.Error())
		return argtree.DefaultExitCodes().MisusageError
	}
	if opts.noColor {
		color.NoColor = true
	}

	logger := newLogger(stderr, opts.logLevel)
	defer logger.Sync() //nolint:errcheck

	cmd, err := specfile.Load(opts.spec)
	if err != nil {
		logger.Debug("load failed", zap.String("path", opts.spec), zap.Error(err))
		printError(stderr, "error: "+err.Error())
		return argtree.DefaultExitCodes().GeneralError
	}
	logger.Info("command tree loaded", zap.String("path", opts.spec), zap.String("root", cmd.Name()))

	p := argtree.NewParser(cmd, argtree.WithLogger(logger.Named("parser")))
	res := p.Parse(opts.args)
	if res.IsErr() {
		perr := res.UnwrapErr()
		printError(stderr, p.Dialect().FormatError(perr))
		return argtree.ExitCode(perr)
	}

	if err := write(stdout, opts.format, res.Unwrap()); err != nil {
		printError(stderr, "error: "+err.Error())
		return argtree.DefaultExitCodes().GeneralError
	}
	return argtree.DefaultExitCodes().Success
}

func optionsFrom(tree *argtree.Tree) (*options, error) {
	level, err := zapcore.ParseLevel(argtree.MustValue[string](tree, "log_level"))
	if err != nil {
		return nil, err
	}
	return &options{
		format:   argtree.MustValue[string](tree, "format"),
		logLevel: level,
		noColor:  argtree.MustValue[bool](tree, "no_color"),
		spec:     argtree.MustValue[string](tree, "spec"),
		args:     argtree.MustValue[[]string](tree, "args"),
	}, nil
}

// newLogger builds a console logger on w, laid out like a zap.Config with
// console encoding.
func newLogger(w io.Writer, level zapcore.Level) *zap.Logger {
	enc := zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
		TimeKey:        "T",
		LevelKey:       "L",
		NameKey:        "N",
		MessageKey:     "M",
		StacktraceKey:  "S",
		FunctionKey:    zapcore.OmitKey,
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
	})
	return zap.New(zapcore.NewCore(enc, zapcore.AddSync(w), zap.NewAtomicLevelAt(level)))
}

func printError(w io.Writer, msg string) {
	color.New(color.FgRed).Fprintln(w, msg) //nolint:errcheck
}
