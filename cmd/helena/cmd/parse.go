package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/helena-lang/helena/internal/ast"
	"github.com/helena-lang/helena/internal/errors"
	"github.com/helena-lang/helena/internal/lexer"
	"github.com/helena-lang/helena/internal/parser"
	"github.com/spf13/cobra"
)

var parseEvalExpr string

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse a Helena script and dump its AST",
	Long: `Parse a Helena script into its Script/Sentence/Word/Morpheme tree and
print it indented, one node per line.

Examples:
  helena parse script.lna
  helena parse -e "puts $name"`,
	Args: cobra.MaximumNArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)
	parseCmd.Flags().StringVarP(&parseEvalExpr, "eval", "e", "", "parse inline code instead of reading from file")
}

func runParse(_ *cobra.Command, args []string) error {
	input, filename, err := readSource(parseEvalExpr, args)
	if err != nil {
		return err
	}

	toks := lexer.New(input).Tokenize()
	script, perrs := parser.Parse(toks, input)
	if len(perrs) > 0 {
		fmt.Fprint(os.Stderr, formatErrors(perrs))
		return fmt.Errorf("parsing %s failed with %d error(s)", filename, len(perrs))
	}

	dumpScript(script, 0)
	return nil
}

func formatErrors(errs []*errors.SourceError) string {
	var sb strings.Builder
	for _, e := range errs {
		sb.WriteString(e.Format(false))
		sb.WriteByte('\n')
	}
	return sb.String()
}

func indentOf(n int) string { return strings.Repeat("  ", n) }

func dumpScript(script *ast.Script, indent int) {
	fmt.Printf("%sScript (%d sentences) @%s\n", indentOf(indent), len(script.Sentences), script.Pos())
	for _, sentence := range script.Sentences {
		dumpSentence(sentence, indent+1)
	}
}

func dumpSentence(sentence *ast.Sentence, indent int) {
	fmt.Printf("%sSentence (%d words) @%s\n", indentOf(indent), len(sentence.Words), sentence.Pos())
	for _, word := range sentence.Words {
		dumpWord(word, indent+1)
	}
}

func dumpWord(word *ast.Word, indent int) {
	fmt.Printf("%sWord @%s\n", indentOf(indent), word.Pos())
	for _, m := range word.Morphemes {
		dumpMorpheme(m, indent+1)
	}
}

func dumpMorpheme(m ast.Morpheme, indent int) {
	pad := indentOf(indent)
	switch mm := m.(type) {
	case *ast.Literal:
		fmt.Printf("%sLITERAL %q @%s\n", pad, mm.Value, mm.Pos())
	case *ast.TupleMorpheme:
		fmt.Printf("%sTUPLE @%s\n", pad, mm.Pos())
		dumpScript(mm.Subscript, indent+1)
	case *ast.BlockMorpheme:
		fmt.Printf("%sBLOCK @%s\n", pad, mm.Pos())
		dumpScript(mm.Subscript, indent+1)
	case *ast.ExpressionMorpheme:
		fmt.Printf("%sEXPRESSION @%s\n", pad, mm.Pos())
		dumpScript(mm.Subscript, indent+1)
	case *ast.StringMorpheme:
		fmt.Printf("%sSTRING (%d stems) @%s\n", pad, len(mm.Stems), mm.Pos())
		for _, stem := range mm.Stems {
			dumpMorpheme(stem, indent+1)
		}
	case *ast.HereStringMorpheme:
		fmt.Printf("%sHERE_STRING %q @%s\n", pad, mm.Value, mm.Pos())
	case *ast.TaggedStringMorpheme:
		fmt.Printf("%sTAGGED_STRING(%s) %q @%s\n", pad, mm.Tag, mm.Value, mm.Pos())
	case *ast.LineCommentMorpheme:
		fmt.Printf("%sLINE_COMMENT %q @%s\n", pad, mm.Value, mm.Pos())
	case *ast.BlockCommentMorpheme:
		fmt.Printf("%sBLOCK_COMMENT %q @%s\n", pad, mm.Value, mm.Pos())
	case *ast.SubstituteNextMorpheme:
		fmt.Printf("%sSUBSTITUTE_NEXT %q (levels=%d expansion=%v) @%s\n", pad, mm.Raw, mm.Levels, mm.Expansion, mm.Pos())
	default:
		fmt.Printf("%s%T @%s\n", pad, m, m.Pos())
	}
}
