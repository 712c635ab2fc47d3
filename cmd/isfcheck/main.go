// Command isfcheck validates ISF shaders, reformats their descriptors and
// exports the parameter schema they imply.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/reoring/goisf"
	"github.com/reoring/goisf/i18n"
)

// ExitError carries the process exit code for a failed run.
type ExitError struct {
	Code    int
	Message string
}

func (e *ExitError) Error() string { return e.Message }

func main() {
	if err := run(os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			if exitErr.Message != "" {
				fmt.Fprintln(os.Stderr, exitErr.Message)
			}
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

const usageText = `isfcheck - inspect ISF shader descriptors.

Usage:
  isfcheck validate [options] FILE...
  isfcheck fmt [options] [-format json|yaml] [-w] FILE
  isfcheck schema [options] FILE

Run "isfcheck COMMAND -h" for the options of a command.
`

// run dispatches a subcommand. It returns nil on success, an *ExitError with
// code 1 when a shader is invalid and code 2 on usage errors.
func run(outW, errW io.Writer, args []string) error {
	if len(args) == 0 {
		fmt.Fprint(errW, usageText)
		return &ExitError{Code: 2}
	}
	switch args[0] {
	case "validate":
		return validateCmd(outW, errW, args[1:])
	case "fmt":
		return fmtCmd(outW, errW, args[1:])
	case "schema":
		return schemaCmd(outW, errW, args[1:])
	case "-h", "-help", "--help", "help":
		fmt.Fprint(outW, usageText)
		return nil
	default:
		fmt.Fprint(errW, usageText)
		return &ExitError{Code: 2, Message: "unknown command " + args[0]}
	}
}

// session is the state shared by every subcommand once flags are parsed.
type session struct {
	cfg    Config
	log    *slog.Logger
	outW   io.Writer
	files  []string
	format string
	write  bool
}

// newSession parses common flags, loads the config file and applies flags
// that were set explicitly on top of it.
func newSession(name string, outW, errW io.Writer, args []string, extra func(*flag.FlagSet, *session)) (*session, error) {
	s := &session{outW: outW}
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(errW)
	configPath := fs.String("config", "", "Path to a YAML config file.")
	unknown := fs.String("unknown", "", "Unknown key policy: warn, strict or ignore.")
	duplicates := fs.String("duplicates", "", "Duplicate JSON key policy: error, warn or ignore.")
	strictScalars := fs.Bool("strict-scalars", false, "Reject numbers where booleans or strings are expected.")
	maxBytes := fs.Int64("max-bytes", 0, "Maximum descriptor size in bytes; 0 disables the limit.")
	lang := fs.String("lang", "", "Message language: en or ja.")
	logLevel := fs.String("log-level", "", "Logging level: debug, info, warn or error.")
	logFormat := fs.String("log-format", "", "Log output format: text or json.")
	if extra != nil {
		extra(fs, s)
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, nil
		}
		return nil, &ExitError{Code: 2, Message: err.Error()}
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return nil, &ExitError{Code: 2, Message: err.Error()}
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "unknown":
			cfg.Unknown = *unknown
		case "duplicates":
			cfg.Duplicates = *duplicates
		case "strict-scalars":
			cfg.Lenient = !*strictScalars
		case "max-bytes":
			cfg.MaxBytes = *maxBytes
		case "lang":
			cfg.Language = *lang
		case "log-level":
			cfg.LogLevel = *logLevel
		case "log-format":
			cfg.LogFormat = *logFormat
		}
	})
	if err := cfg.check(); err != nil {
		return nil, &ExitError{Code: 2, Message: err.Error()}
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return nil, &ExitError{Code: 2, Message: name + ": no input files"}
	}
	i18n.SetLanguage(strings.ToLower(cfg.Language))
	s.cfg = cfg
	s.files = fs.Args()
	s.log = newLogger(strings.ToLower(cfg.LogLevel), strings.ToLower(cfg.LogFormat), errW)
	s.log.Debug("Configuration loaded.", "config", *configPath, "unknown", cfg.Unknown, "duplicates", cfg.Duplicates)
	return s, nil
}

func validateCmd(outW, errW io.Writer, args []string) error {
	s, err := newSession("validate", outW, errW, args, nil)
	if s == nil {
		return err
	}
	invalid := 0
	for _, file := range s.files {
		if !s.validateFile(file) {
			invalid++
		}
	}
	if invalid > 0 {
		return &ExitError{Code: 1, Message: fmt.Sprintf("%d of %d files invalid", invalid, len(s.files))}
	}
	return nil
}

// validateFile reports one shader and returns whether it is a valid ISF shader.
func (s *session) validateFile(file string) bool {
	src, err := os.ReadFile(file)
	if err != nil {
		s.log.Error("Failed to read shader.", "file", file, "error", err)
		return false
	}
	dm, err := goisf.ParseWithMeta(string(src), s.cfg.ParseOpt())
	if err != nil {
		iss, _ := goisf.AsIssues(err)
		// Parsing stops at the first duplicate; list them all.
		if goisf.HasCode(err, goisf.CodeDuplicateKey) {
			if all, derr := goisf.DetectDuplicateKeys(string(src), s.cfg.ParseOpt()); derr == nil && len(all) > 0 {
				iss = all
			}
		}
		for _, it := range iss {
			fmt.Fprintf(s.outW, "%s: %s\n", file, it)
		}
		s.log.Error("Shader is not valid ISF.", "file", file, "stage", stageOf(iss), "error", err)
		return false
	}
	for _, w := range dm.Warnings {
		s.log.Warn(w.Message, "file", file, "path", w.Path, "hint", w.Hint)
	}
	fmt.Fprintf(s.outW, "%s: ok (%d inputs, %d passes)\n", file, len(dm.Value.Inputs), len(dm.Value.Passes))
	s.log.Info("Shader validated.", "file", file, "inputs", len(dm.Value.Inputs), "warnings", len(dm.Warnings))
	return true
}

func stageOf(iss goisf.Issues) goisf.Stage {
	if len(iss) == 0 {
		return ""
	}
	return iss[0].Stage
}

func fmtCmd(outW, errW io.Writer, args []string) error {
	s, err := newSession("fmt", outW, errW, args, func(fs *flag.FlagSet, s *session) {
		fs.StringVar(&s.format, "format", "json", "Output format: json or yaml.")
		fs.BoolVar(&s.write, "w", false, "Rewrite the leading comment of FILE in place (json only).")
	})
	if s == nil {
		return err
	}
	if s.format != "json" && s.format != "yaml" {
		return &ExitError{Code: 2, Message: "invalid format: must be 'json' or 'yaml'"}
	}
	if s.write && s.format != "json" {
		return &ExitError{Code: 2, Message: "-w requires -format json"}
	}
	for _, file := range s.files {
		if err := s.formatFile(file); err != nil {
			return err
		}
	}
	return nil
}

func (s *session) formatFile(file string) error {
	src, err := os.ReadFile(file)
	if err != nil {
		return &ExitError{Code: 1, Message: err.Error()}
	}
	dm, err := goisf.ParseWithMeta(string(src), s.cfg.ParseOpt())
	if err != nil {
		return &ExitError{Code: 1, Message: file + ": " + err.Error()}
	}
	tree, err := goisf.EncodePreserving(dm, s.cfg.EncodeOpt())
	if err != nil {
		return &ExitError{Code: 1, Message: file + ": " + err.Error()}
	}

	var out []byte
	if s.format == "yaml" {
		out, err = yaml.Marshal(tree)
	} else {
		out, err = json.MarshalIndent(tree, "", "\t")
	}
	if err != nil {
		return &ExitError{Code: 1, Message: file + ": " + err.Error()}
	}
	if !s.write {
		_, err = fmt.Fprintf(s.outW, "%s\n", out)
		return err
	}

	body, off, err := goisf.TopComment(string(src))
	if err != nil {
		return &ExitError{Code: 1, Message: file + ": " + err.Error()}
	}
	rewritten := string(src[:off]) + "\n" + commentSafe(string(out)) + "\n" + string(src[off+len(body):])
	info, err := os.Stat(file)
	if err != nil {
		return &ExitError{Code: 1, Message: err.Error()}
	}
	if err := os.WriteFile(file, []byte(rewritten), info.Mode().Perm()); err != nil {
		return &ExitError{Code: 1, Message: err.Error()}
	}
	s.log.Info("Descriptor rewritten.", "file", file)
	return nil
}

// commentSafe rewrites every "*/" in JSON text as "*\/" so the text can sit
// inside a block comment. "*" only occurs within JSON strings, where "\/"
// is a valid escape for "/".
func commentSafe(js string) string {
	return strings.ReplaceAll(js, "*/", `*\/`)
}

func schemaCmd(outW, errW io.Writer, args []string) error {
	s, err := newSession("schema", outW, errW, args, nil)
	if s == nil {
		return err
	}
	if len(s.files) != 1 {
		return &ExitError{Code: 2, Message: "schema: exactly one file expected"}
	}
	src, err := os.ReadFile(s.files[0])
	if err != nil {
		return &ExitError{Code: 1, Message: err.Error()}
	}
	d, err := goisf.Parse(string(src), s.cfg.ParseOpt())
	if err != nil {
		return &ExitError{Code: 1, Message: s.files[0] + ": " + err.Error()}
	}
	schema := d.ParamsSchema()
	schema.Title = s.files[0]
	out, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(s.outW, "%s\n", out)
	return err
}
