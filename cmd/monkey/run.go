package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/daios-ai/monkey/monkey"
)

var runCmd = &cobra.Command{
	Use:   "run <file>",
	Short: "Run a Monkey source file",
	Long: `Run parses and evaluates a whole file. Output comes from puts; the
final value is not printed. Syntax errors or a runtime error exit with status 1.
Use "-" to read the program from standard input.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		src, name, err := readSource(cmd.InOrStdin(), args[0])
		if err != nil {
			return err
		}
		ip := newInterpreter(cmd.OutOrStdout())
		return runSource(ip, src, name, cmd.ErrOrStderr(), newPalette(settings.REPL.Color))
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}

// readSource reads path, or stdin for "-".
func readSource(stdin io.Reader, path string) (src, name string, err error) {
	var data []byte
	if path == "-" {
		data, err = io.ReadAll(stdin)
		name = "<stdin>"
	} else {
		data, err = os.ReadFile(path)
		name = path
	}
	if err != nil {
		return "", name, fmt.Errorf("cannot read %s: %w", name, err)
	}
	return string(data), name, nil
}

// runSource evaluates src in ip.Global. Diagnostics go to errOut and are
// reported as errReported.
func runSource(ip *monkey.Interpreter, src, name string, errOut io.Writer, pal palette) error {
	prog, perr := monkey.ParseSource(src)
	if perr != nil {
		fmt.Fprintln(errOut, pal.Error(monkey.FormatParseErrors(perr, name)))
		return errReported
	}
	if e, ok := ip.EvalProgram(prog, ip.Global).(*monkey.Error); ok {
		fmt.Fprintln(errOut, pal.Error(e.Inspect()))
		return errReported
	}
	return nil
}
