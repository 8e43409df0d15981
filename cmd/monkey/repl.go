package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"

	"fortio.org/log"
	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"github.com/daios-ai/monkey/internal/config"
	"github.com/daios-ai/monkey/monkey"
)

const helpText = `REPL commands:
  :help    Show this help
  :env     List global bindings
  :reset   Discard all global bindings
  :session Print the session id used in log lines
  :quit    Exit the REPL
`

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start the interactive REPL (default)",
	Args:  cobra.NoArgs,
	RunE:  runRepl,
}

func init() {
	rootCmd.AddCommand(replCmd)
}

func banner() string {
	return fmt.Sprintf("Monkey %s REPL\nCtrl+C cancels input, Ctrl+D exits. Type :help for commands.", monkey.Version)
}

// historyStore is the part of *liner.State that persists history.
type historyStore interface {
	ReadHistory(r io.Reader) (int, error)
	WriteHistory(w io.Writer) (int, error)
}

// loadHistory reads path into h. A missing file is not an error.
func loadHistory(h historyStore, path string) error {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = h.ReadHistory(f)
	return err
}

func saveHistory(h historyStore, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := h.WriteHistory(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// lineReader is the part of *liner.State the loop needs.
type lineReader interface {
	Prompt(prompt string) (string, error)
	AppendHistory(item string)
}

func runRepl(cmd *cobra.Command, _ []string) error {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if settings.REPL.HistoryFile != "" {
		histPath := config.ExpandHome(settings.REPL.HistoryFile)
		if err := loadHistory(ln, histPath); err != nil {
			log.Warnf("cannot read history %s: %v", histPath, err)
		}
		defer func() {
			if err := saveHistory(ln, histPath); err != nil {
				log.Warnf("cannot write history %s: %v", histPath, err)
			}
		}()
	}

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigc)
	go func() {
		<-sigc
		ln.Close()
		os.Exit(130)
	}()

	out := cmd.OutOrStdout()
	r := newRepl(ln, out, cmd.ErrOrStderr(), settings.REPL, sessionID, func() *monkey.Interpreter {
		return newInterpreter(out)
	})
	r.loop()
	return nil
}

type repl struct {
	in     lineReader
	out    io.Writer
	errOut io.Writer
	cfg    config.REPLConfig
	pal    palette

	// session tags this REPL's log lines; :session prints it.
	session string

	newInterp func() *monkey.Interpreter
	ip        *monkey.Interpreter
}

func newRepl(in lineReader, out, errOut io.Writer, cfg config.REPLConfig, session string, newInterp func() *monkey.Interpreter) *repl {
	return &repl{
		in:        in,
		out:       out,
		errOut:    errOut,
		cfg:       cfg,
		pal:       newPalette(cfg.Color),
		session:   session,
		newInterp: newInterp,
		ip:        newInterp(),
	}
}

// loop reads and evaluates units until EOF or :quit.
func (r *repl) loop() {
	if r.cfg.Banner {
		fmt.Fprintln(r.out, r.pal.Muted(banner()))
	}
	for {
		code, ok := r.readUnit()
		if !ok {
			fmt.Fprintln(r.out)
			return
		}
		if quit := r.handle(code); quit {
			return
		}
	}
}

// readUnit reads lines until they form a unit that is complete, or fails to
// parse for a reason more input cannot fix. An empty continuation line
// submits what has been typed so far. ok is false at end of input.
func (r *repl) readUnit() (string, bool) {
	var b strings.Builder
	for {
		prompt := r.cfg.Prompt
		if b.Len() > 0 {
			prompt = r.cfg.ContinuationPrompt
		}
		line, err := r.in.Prompt(prompt)
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if err != nil {
			// Ctrl+C (liner.ErrPromptAborted) drops the pending unit.
			return "", true
		}

		if b.Len() > 0 {
			if strings.TrimSpace(line) == "" {
				return b.String(), true
			}
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		if strings.HasPrefix(strings.TrimSpace(src), ":") {
			return src, true
		}
		if _, perr := monkey.ParseSource(src); perr != nil && perr.Incomplete() {
			continue
		}
		return src, true
	}
}

// handle evaluates one unit in the persistent global environment and echoes
// the result. It reports whether the REPL should exit.
func (r *repl) handle(code string) bool {
	trimmed := strings.TrimSpace(code)
	if trimmed == "" {
		return false
	}
	if strings.HasPrefix(trimmed, ":") {
		return r.command(strings.ToLower(trimmed))
	}
	r.in.AppendHistory(strings.ReplaceAll(code, "\n", " "))

	prog, perr := monkey.ParseSource(code)
	if perr != nil {
		fmt.Fprintln(r.errOut, r.pal.Error(monkey.FormatParseErrors(perr, "<repl>")))
		return false
	}

	result := r.ip.EvalProgram(prog, r.ip.Global)
	if e, ok := result.(*monkey.Error); ok {
		log.LogVf("repl %s: %s", r.session, e.Message)
		fmt.Fprintln(r.errOut, r.pal.Error(e.Inspect()))
		return false
	}
	if endsWithLet(prog) {
		return false
	}
	fmt.Fprintln(r.out, r.pal.Value(result.Inspect()))
	return false
}

func (r *repl) command(cmd string) bool {
	switch cmd {
	case ":quit", ":q":
		return true
	case ":help":
		fmt.Fprint(r.out, helpText)
	case ":env":
		names := r.ip.Global.Names()
		sort.Strings(names)
		for _, name := range names {
			v, _ := r.ip.Global.Get(name)
			fmt.Fprintf(r.out, "%s = %s\n", name, r.pal.Value(oneLine(v.Inspect())))
		}
	case ":reset":
		r.ip = r.newInterp()
		log.LogVf("repl %s: global environment reset", r.session)
	case ":session":
		fmt.Fprintln(r.out, r.session)
	default:
		fmt.Fprintf(r.out, "unknown command %s. Type :help for commands.\n", cmd)
	}
	return false
}

func endsWithLet(prog *monkey.Program) bool {
	if n := len(prog.Statements); n > 0 {
		_, ok := prog.Statements[n-1].(*monkey.LetStatement)
		return ok
	}
	return false
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
