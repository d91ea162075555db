package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/google/uuid"

	csvsummary "github.com/chop-dbhi/csv-summary"
	"github.com/chop-dbhi/csv-summary/internal/config"
	"github.com/chop-dbhi/csv-summary/internal/logging"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

type options struct {
	configPath string

	format      string
	delimiter   string
	compression string
	trimHeader  bool
	schema      string
	logLevel    string
	logFormat   string

	// Format shorthands, at most one may be set.
	asJSON       bool
	asJSONPretty bool
	asDefault    bool
	asVerbose    bool
	asSQL        bool
}

func run(args []string, stdout, stderr io.Writer) int {
	var opts options

	fs := flag.NewFlagSet("csv-summary", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "usage: csv-summary [flags] file\n\ncsv file and column summarizer\n\n")
		fs.PrintDefaults()
	}

	fs.StringVar(&opts.configPath, "config", os.Getenv(config.EnvPath), "YAML config file.")
	fs.StringVar(&opts.format, "format", "", "Output format: default, verbose, json, json-pretty or sql.")
	fs.StringVar(&opts.delimiter, "csv.delim", "", "CSV delimiter.")
	fs.StringVar(&opts.compression, "compression", "", "Compression used (gzip, bzip2, zstd).")
	fs.BoolVar(&opts.trimHeader, "csv.trimheader", false, "Trim whitespace around header names.")
	fs.StringVar(&opts.schema, "schema", "", "Schema name for sql output.")
	fs.StringVar(&opts.logLevel, "log.level", "", "Log level.")
	fs.StringVar(&opts.logFormat, "log.format", "", "Log format: text or json.")

	fs.BoolVar(&opts.asJSON, "json", false, "output the summary as json")
	fs.BoolVar(&opts.asJSONPretty, "json-pretty", false, "output the summary nicely formatted json")
	fs.BoolVar(&opts.asDefault, "default", false, "use the default output format, displaying only relevant information")
	fs.BoolVar(&opts.asVerbose, "verbose", false, "use the default output format, displaying all information")
	fs.BoolVar(&opts.asSQL, "sql", false, "output a postgres table definition")

	files, err := parseArgs(fs, args)
	if err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}

	if len(files) == 0 {
		fs.Usage()
		return 0
	}

	if len(files) > 1 {
		fmt.Fprintf(stderr, "expected one file, got %d\n", len(files))
		return 2
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}

	if err := applyFlags(fs, &opts, cfg); err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}

	format, err := csvsummary.ParseFormat(cfg.Format)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}

	logger := logging.Setup(cfg.Log.Level, cfg.Log.Format, stderr).With("run_id", uuid.NewString())

	path := files[0]
	log := logger.With("path", path)
	start := time.Now()

	log.Debug("summarizing file")

	summary, err := csvsummary.Summarize(&csvsummary.Request{
		Path:        path,
		Compression: cfg.Compression,
		Delimiter:   cfg.Delimiter,
		TrimHeader:  cfg.TrimHeader,
	})
	if err != nil {
		log.Error("cannot summarize file", "error", err)
		return 1
	}

	log.Info("summarized file",
		"records", summary.RecordCount(),
		"columns", len(summary.Columns()),
		"elapsed", time.Since(start),
	)

	wopts := csvsummary.WriteOptions{
		Format: format,
		Schema: cfg.SQL.Schema,
	}

	if err := csvsummary.Write(stdout, summary, wopts); err != nil {
		log.Error("cannot write summary", "error", err)
		return 1
	}

	return 0
}

// parseArgs parses flags given before and after the positional arguments
// and returns the positional ones. Everything after "--" is positional.
func parseArgs(fs *flag.FlagSet, args []string) ([]string, error) {
	var files []string

	for {
		if err := fs.Parse(args); err != nil {
			return nil, err
		}

		rest := fs.Args()

		if n := len(args) - len(rest); n > 0 && args[n-1] == "--" {
			return append(files, rest...), nil
		}

		if len(rest) == 0 {
			return files, nil
		}

		files = append(files, rest[0])
		args = rest[1:]
	}
}

// applyFlags copies the flags set on the command line over the config.
func applyFlags(fs *flag.FlagSet, opts *options, cfg *config.Config) error {
	shorthands := map[string]string{
		"json":        string(csvsummary.FormatJSON),
		"json-pretty": string(csvsummary.FormatJSONPretty),
		"default":     string(csvsummary.FormatDefault),
		"verbose":     string(csvsummary.FormatVerbose),
		"sql":         string(csvsummary.FormatSQL),
	}

	var chosen []string

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "format":
			cfg.Format = opts.format
		case "csv.delim":
			cfg.Delimiter = opts.delimiter
		case "compression":
			cfg.Compression = opts.compression
		case "csv.trimheader":
			cfg.TrimHeader = opts.trimHeader
		case "schema":
			cfg.SQL.Schema = opts.schema
		case "log.level":
			cfg.Log.Level = opts.logLevel
		case "log.format":
			cfg.Log.Format = opts.logFormat
		}

		if format, ok := shorthands[f.Name]; ok && f.Value.String() == "true" {
			chosen = append(chosen, f.Name)
			cfg.Format = format
		}
	})

	if len(chosen) > 1 {
		sort.Strings(chosen)
		return fmt.Errorf("only one output format may be given, got %v", chosen)
	}

	return nil
}
