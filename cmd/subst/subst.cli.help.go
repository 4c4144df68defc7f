package main

import (
	"fmt"
	"io"
)

const helpText = `subst - token substitution engine

Usage:
  subst <command> [flags]

Commands:
  render     Substitute tokens in a template
  validate   Check a template for token problems
  version    Print version
  help       Show this help

Render flags:
  -t, -template <path>    Template file, or "-" for stdin (required)
  -d, -data <yaml|json>   Inline context data
  -f, -data-file <path>   Context data file (YAML or JSON)
  -c, -config <path>      Processor config file (.yaml, .yml, .toml)
  -o, -output <path>      Output file, "-" for stdout (default "-")
      -start-delim <s>    Token start delimiter (default "%{")
      -end-delim <s>      Token end delimiter (default "}%")
      -defaults           Enable name|default clause syntax
      -keep-missing       Keep unresolved tokens as literal text
      -builtins           Register built-in resolvers

Validate flags:
  -t, -template <path>    Template file, or "-" for stdin (required)
      -start-delim <s>    Token start delimiter (default "%{")
      -end-delim <s>      Token end delimiter (default "}%")

Examples:
  subst render -t greeting.tmpl -d '{"user": "Alice"}'
  echo 'Sum=%{sum|0}%' | subst render -t - -builtins -defaults -d 'sum: [10, 20, 30]'
`

func runHelp(args []string, stdout io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(stdout, FmtUnknownCommand, ErrMsgUnknownCommand, args[0])
		fmt.Fprint(stdout, helpText)
		return ExitCodeUsageError
	}
	fmt.Fprint(stdout, helpText)
	return ExitCodeSuccess
}
