package cmd

import (
	"fmt"
	"os"

	"github.com/mhaller/es5parser/internal/lexer"
	"github.com/mhaller/es5parser/internal/token"
	"github.com/spf13/cobra"
)

var (
	tokensExpression bool
	tokensShowPos    bool
)

var tokensCmd = &cobra.Command{
	Use:   "tokens [file]",
	Short: "Tokenize ES5 source and print the resulting token stream",
	Long: `Tokenize ES5 source code and print each token on its own line.

This dumps the lexer in isolation, always scanning "/" as division
(ModeOperator): the operator/regexp disambiguation the real grammar
needs only exists once a parser is driving the cursor, so this is a
debugging aid, not a faithful stand-in for how the parser actually
reads source.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTokens,
}

func init() {
	rootCmd.AddCommand(tokensCmd)

	tokensCmd.Flags().BoolVarP(&tokensExpression, "expression", "e", false, "tokenize inline source from the command line")
	tokensCmd.Flags().BoolVar(&tokensShowPos, "show-pos", false, "show token positions (line:column)")
}

func runTokens(cmd *cobra.Command, args []string) error {
	input, _, err := readSource(tokensExpression, args)
	if err != nil {
		return err
	}

	l := lexer.New(input)
	count := 0
	for {
		tok := l.NextToken(lexer.ModeOperator)
		printToken(tok)
		count++
		if tok.Type == token.EOF {
			break
		}
	}

	if errs := l.Errors(); len(errs) > 0 {
		for _, e := range errs {
			fmt.Fprintf(os.Stderr, "lex error: %s (%s)\n", e.Message, e.Pos)
		}
		return fmt.Errorf("tokenizing failed with %d error(s)", len(errs))
	}
	return nil
}

func printToken(tok token.Token) {
	var output string
	switch tok.Type {
	case token.EOF:
		output = "EOF"
	case token.IDENT:
		output = fmt.Sprintf("[IDENT] %q", tok.Name.Text)
	case token.NUMBER:
		output = fmt.Sprintf("[NUMBER] %v", tok.NumberValue)
	case token.STRING:
		output = fmt.Sprintf("[STRING] %q", tok.StringValue)
	case token.REGEXP:
		output = fmt.Sprintf("[REGEXP] /%s/%s", tok.RegExpPattern, tok.RegExpFlags)
	default:
		output = fmt.Sprintf("[%s]", tok.Type)
	}
	if tokensShowPos {
		output += fmt.Sprintf(" @%d:%d", tok.Span.Start.Line, tok.Span.Start.Column)
	}
	fmt.Println(output)
}
