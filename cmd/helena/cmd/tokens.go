package cmd

import (
	"fmt"

	"github.com/helena-lang/helena/internal/lexer"
	"github.com/helena-lang/helena/internal/token"
	"github.com/spf13/cobra"
)

var tokensEvalExpr string

var tokensCmd = &cobra.Command{
	Use:   "tokens [file]",
	Short: "Tokenize a Helena script and print the resulting tokens",
	Long: `Tokenize a Helena script and print one line per token: its type,
literal text and source position.

Examples:
  helena tokens script.lna
  helena tokens -e "puts $name"`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTokens,
}

func init() {
	rootCmd.AddCommand(tokensCmd)
	tokensCmd.Flags().StringVarP(&tokensEvalExpr, "eval", "e", "", "tokenize inline code instead of reading from file")
}

func runTokens(cmd *cobra.Command, args []string) error {
	input, _, err := readSource(tokensEvalExpr, args)
	if err != nil {
		return err
	}

	trace, _ := cmd.Flags().GetBool("trace")
	toks := lexer.New(input, lexer.WithTracing(trace)).Tokenize()
	for _, tok := range toks {
		printToken(tok)
	}
	return nil
}

func printToken(tok token.Token) {
	if tok.Literal == "" {
		fmt.Printf("%-16s @%s\n", tok.Type, tok.Pos)
		return
	}
	fmt.Printf("%-16s %q @%s\n", tok.Type, tok.Literal, tok.Pos)
}
