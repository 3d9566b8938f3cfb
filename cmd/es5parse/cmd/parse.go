package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/mhaller/es5parser/internal/diag"
	"github.com/mhaller/es5parser/internal/parser"
	"github.com/mhaller/es5parser/pkg/estree"
	"github.com/spf13/cobra"
)

var (
	parseExpression bool
	parseCompact    bool
)

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse ES5 source and print its ESTree JSON",
	Long: `Parse ES5 source code and print the resulting AST as ESTree JSON.

If no file is provided, reads from stdin. Use -e to parse a single
expression-as-program from the command line.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().BoolVarP(&parseExpression, "expression", "e", false, "parse inline source from the command line")
	parseCmd.Flags().BoolVar(&parseCompact, "compact", false, "print one-line JSON instead of indented JSON")
}

func runParse(cmd *cobra.Command, args []string) error {
	input, file, err := readSource(parseExpression, args)
	if err != nil {
		return err
	}

	script, errs := parser.ParseScript(input)
	if len(errs) > 0 {
		return reportParseErrors(errs, input, file)
	}

	node := estree.Serialize(script)
	var out []byte
	if parseCompact {
		out, err = json.Marshal(node)
	} else {
		out, err = json.MarshalIndent(node, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("encoding AST as JSON: %w", err)
	}
	fmt.Println(string(out))
	return nil
}

func readSource(expr bool, args []string) (input, file string, err error) {
	switch {
	case expr:
		if len(args) == 0 {
			return "", "", fmt.Errorf("no expression provided")
		}
		return args[0], "<eval>", nil
	case len(args) > 0:
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", "", fmt.Errorf("error reading file: %w", err)
		}
		return string(data), args[0], nil
	default:
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", "", fmt.Errorf("error reading stdin: %w", err)
		}
		return string(data), "<stdin>", nil
	}
}

func reportParseErrors(errs []*parser.ParseError, source, file string) error {
	sourceErrs := make([]*diag.SourceError, len(errs))
	for i, e := range errs {
		sourceErrs[i] = diag.NewSourceError(e, source, file)
	}
	fmt.Fprint(os.Stderr, diag.RenderAll(sourceErrs, false))
	return fmt.Errorf("parsing failed with %d error(s)", len(errs))
}
