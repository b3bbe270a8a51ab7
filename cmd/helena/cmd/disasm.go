package cmd

import (
	"fmt"
	"os"

	"github.com/helena-lang/helena/internal/bytecode"
	"github.com/helena-lang/helena/internal/lexer"
	"github.com/helena-lang/helena/internal/parser"
	"github.com/helena-lang/helena/internal/syntax"
	"github.com/spf13/cobra"
)

var disasmEvalExpr string

var disasmCmd = &cobra.Command{
	Use:   "disasm [file]",
	Short: "Compile a Helena script and print its disassembled bytecode",
	Long: `Tokenize, parse and compile a Helena script, then print the resulting
Program as a human-readable instruction listing.

Examples:
  helena disasm script.lna
  helena disasm -e "puts $name"`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDisasm,
}

func init() {
	rootCmd.AddCommand(disasmCmd)
	disasmCmd.Flags().StringVarP(&disasmEvalExpr, "eval", "e", "", "compile inline code instead of reading from file")
}

func runDisasm(_ *cobra.Command, args []string) error {
	input, filename, err := readSource(disasmEvalExpr, args)
	if err != nil {
		return err
	}

	toks := lexer.New(input).Tokenize()
	script, perrs := parser.Parse(toks, input)
	if len(perrs) > 0 {
		fmt.Fprint(os.Stderr, formatErrors(perrs))
		return fmt.Errorf("parsing %s failed with %d error(s)", filename, len(perrs))
	}

	checker := syntax.New(input)
	checker.Check(script)
	if len(checker.Errors()) > 0 {
		fmt.Fprint(os.Stderr, formatErrors(checker.Errors()))
		return fmt.Errorf("checking %s failed with %d error(s)", filename, len(checker.Errors()))
	}

	prog, cerrs := bytecode.Compile(script, input)
	if len(cerrs) > 0 {
		fmt.Fprint(os.Stderr, formatErrors(cerrs))
		return fmt.Errorf("compiling %s failed with %d error(s)", filename, len(cerrs))
	}

	fmt.Print(bytecode.Disassemble(prog))
	return nil
}
