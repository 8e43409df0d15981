package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/daios-ai/monkey/monkey"
)

var parseCmd = &cobra.Command{
	Use:   "parse <file>",
	Short: "Print the parsed program in fully parenthesised form",
	Long: `Parse prints one line per top-level statement, with every operator
application wrapped in parentheses, e.g. "1 + 2 * 3" prints as "(1 + (2 * 3))".
Use "-" to read from standard input.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		src, name, err := readSource(cmd.InOrStdin(), args[0])
		if err != nil {
			return err
		}
		return printParsed(src, name, cmd.OutOrStdout(), cmd.ErrOrStderr(), newPalette(settings.REPL.Color))
	},
}

func init() {
	rootCmd.AddCommand(parseCmd)
}

func printParsed(src, name string, out, errOut io.Writer, pal palette) error {
	prog, perr := monkey.ParseSource(src)
	if perr != nil {
		fmt.Fprintln(errOut, pal.Error(monkey.FormatParseErrors(perr, name)))
		return errReported
	}
	for _, stmt := range prog.Statements {
		fmt.Fprintln(out, stmt.String())
	}
	return nil
}
