package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/itsatony/go-subst"
	"github.com/itsatony/go-subst/internal"
)

// validate error messages
const (
	ErrMsgUnterminatedToken = "unterminated token"
	ErrMsgEmptyTokenName    = "empty token name"
)

// validateConfig holds parsed validate command configuration
type validateConfig struct {
	templatePath string
	startDelim   string
	endDelim     string
}

// runValidate scans a template and reports token count, empty token
// names, and unterminated tokens. Unterminated tokens render as literal
// text at process time; validate surfaces them as errors so template
// authors catch the typo early.
func runValidate(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cfg, err := parseValidateFlags(args)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgMissingTemplate, err)
		return ExitCodeUsageError
	}

	source, err := readInput(cfg.templatePath, stdin)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgReadFileFailed, err)
		return ExitCodeInputError
	}

	startDelim := cfg.startDelim
	endDelim := cfg.endDelim
	if startDelim == "" {
		startDelim = subst.DefaultStartDelim
	}
	if endDelim == "" {
		endDelim = subst.DefaultEndDelim
	}

	tokenCount := 0
	problems := 0
	scanner := internal.NewScanner(string(source), startDelim, endDelim, nil)
	for {
		span, ok := scanner.Next()
		if !ok {
			break
		}
		tokenCount++
		if strings.TrimSpace(span.Inner) == "" {
			fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgEmptyTokenName, errors.New(span.Raw))
			problems++
		}
	}
	if strings.Contains(scanner.Trailing(), startDelim) {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgUnterminatedToken, errors.New(startDelim))
		problems++
	}

	if problems > 0 {
		return ExitCodeValidationError
	}
	fmt.Fprintf(stdout, FmtValidateOK, tokenCount)
	return ExitCodeSuccess
}

func parseValidateFlags(args []string) (*validateConfig, error) {
	fs := flag.NewFlagSet(CmdNameValidate, flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	cfg := &validateConfig{}
	fs.StringVar(&cfg.templatePath, FlagTemplate, "", "")
	fs.StringVar(&cfg.templatePath, FlagTemplateShort, "", "")
	fs.StringVar(&cfg.startDelim, FlagStartDelim, "", "")
	fs.StringVar(&cfg.endDelim, FlagEndDelim, "", "")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if cfg.templatePath == "" {
		return nil, errors.New(ErrMsgMissingTemplate)
	}
	return cfg, nil
}
