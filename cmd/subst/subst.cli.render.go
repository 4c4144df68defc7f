package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/itsatony/go-subst"
	"gopkg.in/yaml.v3"
)

// renderConfig holds parsed render command configuration
type renderConfig struct {
	templatePath string
	dataInline   string
	dataFilePath string
	configPath   string
	outputPath   string
	startDelim   string
	endDelim     string
	defaults     bool
	keepMissing  bool
	builtins     bool
}

func runRender(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cfg, err := parseRenderFlags(args)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgMissingTemplate, err)
		return ExitCodeUsageError
	}

	// Read template
	templateSource, err := readInput(cfg.templatePath, stdin)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgReadFileFailed, err)
		return ExitCodeInputError
	}

	// Parse data (YAML, which also accepts JSON)
	data, err := loadData(cfg.dataInline, cfg.dataFilePath)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgInvalidData, err)
		return ExitCodeInputError
	}

	// Build processor, from config file when given
	processor, err := buildProcessor(cfg)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgConfigLoadFailed, err)
		return ExitCodeError
	}

	result, err := processor.Process(string(templateSource), data)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgProcessFailed, err)
		return ExitCodeError
	}

	if err := writeOutput(cfg.outputPath, []byte(result), stdout); err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgWriteOutputFailed, err)
		return ExitCodeError
	}

	return ExitCodeSuccess
}

func parseRenderFlags(args []string) (*renderConfig, error) {
	fs := flag.NewFlagSet(CmdNameRender, flag.ContinueOnError)
	fs.SetOutput(io.Discard) // Suppress default error messages

	cfg := &renderConfig{}

	fs.StringVar(&cfg.templatePath, FlagTemplate, "", "")
	fs.StringVar(&cfg.templatePath, FlagTemplateShort, "", "")
	fs.StringVar(&cfg.dataInline, FlagData, "", "")
	fs.StringVar(&cfg.dataInline, FlagDataShort, "", "")
	fs.StringVar(&cfg.dataFilePath, FlagDataFile, "", "")
	fs.StringVar(&cfg.dataFilePath, FlagDataFileShort, "", "")
	fs.StringVar(&cfg.configPath, FlagConfig, "", "")
	fs.StringVar(&cfg.configPath, FlagConfigShort, "", "")
	fs.StringVar(&cfg.outputPath, FlagOutput, FlagDefaultOutput, "")
	fs.StringVar(&cfg.outputPath, FlagOutputShort, FlagDefaultOutput, "")
	fs.StringVar(&cfg.startDelim, FlagStartDelim, "", "")
	fs.StringVar(&cfg.endDelim, FlagEndDelim, "", "")
	fs.BoolVar(&cfg.defaults, FlagDefaults, false, "")
	fs.BoolVar(&cfg.keepMissing, FlagMissing, false, "")
	fs.BoolVar(&cfg.builtins, FlagBuiltins, false, "")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if cfg.templatePath == "" {
		return nil, errors.New(ErrMsgMissingTemplate)
	}

	return cfg, nil
}

// buildProcessor assembles a processor from the config file (when given)
// plus flag overrides.
func buildProcessor(cfg *renderConfig) (*subst.Processor, error) {
	var opts []subst.Option
	if cfg.startDelim != "" && cfg.endDelim != "" {
		opts = append(opts, subst.WithDelimiters(cfg.startDelim, cfg.endDelim))
	}
	if cfg.defaults {
		opts = append(opts, subst.WithDefaultValues(true))
	}
	if cfg.keepMissing {
		opts = append(opts, subst.WithIgnoreMissing(true))
	}
	if cfg.builtins {
		opts = append(opts, subst.WithBuiltins())
	}

	if cfg.configPath != "" {
		fileConfig, err := subst.LoadConfig(cfg.configPath)
		if err != nil {
			return nil, err
		}
		return fileConfig.Processor(opts...)
	}
	return subst.New(opts...)
}

func loadData(inline, filePath string) (map[string]any, error) {
	var raw []byte

	if filePath != "" {
		data, err := os.ReadFile(filePath)
		if err != nil {
			return nil, err
		}
		raw = data
	} else if inline != "" {
		raw = []byte(inline)
	} else {
		// No data provided, return empty map
		return make(map[string]any), nil
	}

	var result map[string]any
	if err := yaml.Unmarshal(raw, &result); err != nil {
		return nil, err
	}
	if result == nil {
		result = make(map[string]any)
	}
	return result, nil
}
