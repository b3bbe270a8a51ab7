package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/helena-lang/helena/internal/value"
	"github.com/helena-lang/helena/pkg/helena"
	"github.com/spf13/cobra"
)

var runEvalExpr string

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Run a Helena script",
	Long: `Execute a Helena script against the demo command set (set/puts/incr/wait/eval).

A YIELDing script pauses and prompts on stdin for the value to resume
with, so "wait" can be driven interactively from the terminal.

Examples:
  helena run script.lna
  helena run -e "puts \"hello, $name\""`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScript,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringVarP(&runEvalExpr, "eval", "e", "", "evaluate inline code instead of reading from file")
}

func runScript(cmd *cobra.Command, args []string) error {
	input, filename, err := readSource(runEvalExpr, args)
	if err != nil {
		return err
	}

	trace, _ := cmd.Flags().GetBool("trace")
	var traceOut *os.File
	if trace {
		traceOut = os.Stderr
	}

	it := helena.New(helena.WithOutput(os.Stdout), traceOption(traceOut))

	prog, err := it.Compile(input)
	if err != nil {
		if ce, ok := err.(*helena.CompileError); ok {
			fmt.Fprint(os.Stderr, ce.Format(true))
		}
		return fmt.Errorf("compiling %s failed", filename)
	}

	ctx := context.Background()
	res, proc, err := it.Run(ctx, prog)
	if err != nil {
		exitWithError("%v", err)
	}

	reader := bufio.NewReader(os.Stdin)
	for res.Code == helena.YIELD {
		fmt.Fprintf(os.Stderr, "yield: %s\nresume> ", value.Display(res.Value))
		line, readErr := reader.ReadString('\n')
		if readErr != nil {
			break
		}
		res, err = it.Resume(ctx, proc, value.NewStr(strings.TrimRight(line, "\r\n")))
		if err != nil {
			exitWithError("%v", err)
		}
	}

	if res.Code == helena.ERROR {
		return fmt.Errorf("%s", value.Display(res.Value))
	}
	return nil
}

func traceOption(w *os.File) helena.Option {
	if w == nil {
		return func(*helena.Interpreter) {}
	}
	return helena.WithTrace(w)
}
