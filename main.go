// Query data generator for queryperf
// Writes random and zone-file-derived DNS query lines
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"reflect"
	"sort"
	"strings"
	"syscall"
	"time"

	"github.com/jessevdk/go-flags"
)

const (
	programName    = "gen-data-queryperf"
	programVersion = "1.0.0"

	reportInterval = 10 * time.Second
)

func main() {
	// Setup signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		cancel()
	}()

	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	cancel()
	os.Exit(code)
}

// run executes one invocation and returns the process exit status
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	opts := &Options{}
	parser := newParser(opts)

	args, err := expandLongOptions(parser, args)
	if err != nil {
		return usageError(stderr, parser, err)
	}

	rest, err := parser.ParseArgs(args)
	if err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			fmt.Fprint(stdout, flagsErr.Message)
			return exitOK
		}
		return usageError(stderr, parser, err)
	}

	if opts.Version {
		fmt.Fprintf(stdout, "%s v%s\n", programName, programVersion)
		return exitOK
	}

	if len(rest) > 0 {
		return usageError(stderr, parser, fmt.Errorf("unexpected argument %q", rest[0]))
	}

	config, err := newConfig(opts, parser.FindOptionByLongName("seed").IsSet())
	if err != nil {
		return usageError(stderr, parser, err)
	}

	logger, closeLog, err := setupLogger(config.LogFile, config.Verbose, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "%s: %v\n", programName, err)
		return exitFailure
	}
	defer closeLog()

	if err := generate(ctx, config, stdout, logger); err != nil {
		logger.Printf("Error generating queries: %v", err)
		fmt.Fprintf(stderr, "%s: %v\n", programName, err)
		return exitFailure
	}

	return exitOK
}

func newParser(opts *Options) *flags.Parser {
	parser := flags.NewParser(opts, flags.HelpFlag|flags.PassDoubleDash)
	parser.Name = programName
	parser.Usage = "[-n number] [-p percent-random] [-t TLD] [-m MAXSIZE] [-f zone-file]"
	parser.LongDescription = "Generates query files for queryperf, both with random names " +
		"(to exercise NXDOMAIN handling) and with domains taken from a real zone file."
	return parser
}

// expandLongOptions rewrites abbreviated long options ("--num") to their
// full name, getopt style. A prefix must select exactly one option.
func expandLongOptions(parser *flags.Parser, args []string) ([]string, error) {
	// option name -> whether it takes a value
	long := make(map[string]bool)
	short := make(map[rune]bool)
	groups := []*flags.Group{parser.Command.Group}
	for len(groups) > 0 {
		group := groups[0]
		groups = append(groups[1:], group.Groups()...)

		for _, option := range group.Options() {
			if option.LongName != "" {
				long[option.LongName] = takesValue(option)
			}
			if option.ShortName != 0 {
				short[option.ShortName] = takesValue(option)
			}
		}
	}

	expanded := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]
		expanded = append(expanded, arg)

		switch {
		case arg == "--":
			return append(expanded, args[i+1:]...), nil

		case strings.HasPrefix(arg, "--"):
			name, value, hasValue := strings.Cut(arg[2:], "=")
			if _, exact := long[name]; !exact && name != "" {
				var matches []string
				for candidate := range long {
					if strings.HasPrefix(candidate, name) {
						matches = append(matches, candidate)
					}
				}
				if len(matches) > 1 {
					sort.Strings(matches)
					return nil, fmt.Errorf("option --%s is not a unique prefix (%s)", name, strings.Join(matches, ", "))
				}
				if len(matches) == 1 {
					name = matches[0]
					arg = "--" + name
					if hasValue {
						arg += "=" + value
					}
					expanded[len(expanded)-1] = arg
				}
			}
			// The next argument is this option's value
			if long[name] && !hasValue && i+1 < len(args) {
				i++
				expanded = append(expanded, args[i])
			}

		case strings.HasPrefix(arg, "-") && len(arg) > 1:
			group := []rune(arg[1:])
			for j, name := range group {
				if short[name] {
					if j == len(group)-1 && i+1 < len(args) {
						i++
						expanded = append(expanded, args[i])
					}
					break
				}
			}
		}
	}

	return expanded, nil
}

// takesValue reports whether option consumes an argument. Bool fields and
// argument-less funcs such as the builtin help option do not.
func takesValue(option *flags.Option) bool {
	field := option.Field().Type
	switch field.Kind() {
	case reflect.Bool:
		return false
	case reflect.Func:
		return field.NumIn() > 0
	}
	return true
}

func usageError(stderr io.Writer, parser *flags.Parser, err error) int {
	var argErr *ArgumentError
	if !errors.As(err, &argErr) {
		err = &ArgumentError{Err: err}
	}

	fmt.Fprintf(stderr, "%s: %v\n", programName, err)
	parser.WriteHelp(stderr)
	return exitFailure
}

func setupLogger(logFile string, verbose bool, stderr io.Writer) (*log.Logger, func() error, error) {
	logOutput := io.Discard
	if verbose {
		logOutput = stderr
	}
	closeLog := func() error { return nil }

	if logFile != "" {
		file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		logOutput = file
		closeLog = file.Close
	}

	logFlags := log.LstdFlags
	if verbose {
		logFlags |= log.Lshortfile
	}

	return log.New(logOutput, "[GEN-QUERYPERF] ", logFlags), closeLog, nil
}

// generate loads the zone file, if any, and writes the queries
func generate(ctx context.Context, config *Config, stdout io.Writer, logger *log.Logger) error {
	if !isPublicSuffix(config.TLD) {
		logger.Printf("Warning: %q is not a known public suffix", config.TLD)
	}

	stats := NewStats()

	var domains *DomainSet
	if config.ZoneFile != "" {
		echo := stdout
		if config.Quiet {
			echo = nil
		}

		var err error
		domains, err = LoadZoneFile(config.ZoneFile, config.TLD, echo)
		if err != nil {
			return err
		}
		stats.SetZoneDomains(domains.Len())
		logger.Printf("Loaded %d domains from %s", domains.Len(), config.ZoneFile)
	}

	generator, err := NewGenerator(config, domains, newRandomSource(config))
	if err != nil {
		return err
	}

	out, err := NewOutputHandler(config.Output, stdout)
	if err != nil {
		return err
	}

	limiter := NewRateLimiter(config.Rate)
	if config.Verbose && limiter != nil {
		logger.Printf("Rate limited to %.0f queries per second", limiter.GetLimit())
		reporterCtx, stopReporter := context.WithCancel(ctx)
		defer stopReporter()
		go stats.StartReporter(reporterCtx, logger, reportInterval)
	}

	runErr := generator.Run(ctx, out, limiter, stats)
	if err := out.Close(); err != nil && runErr == nil {
		runErr = fmt.Errorf("failed to write output: %w", err)
	}

	if config.Verbose {
		stats.PrintFinalStats(logger)
	}

	return runErr
}
