// Package replkernel is a liner-backed interactive shell over the kernel's
// canned terms, the way the teacher's internal/repl package wraps its
// evaluator behind a readline loop.
package replkernel

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/peterh/liner"

	"github.com/corekernel/corekernel/internal/env"
	"github.com/corekernel/corekernel/internal/pp"
	"github.com/corekernel/corekernel/internal/tc"
	"github.com/corekernel/corekernel/internal/tcerrors"
	"github.com/corekernel/corekernel/internal/term"
)

var (
	green  = color.New(color.FgGreen).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	cyan   = color.New(color.FgCyan).SprintFunc()
	bold   = color.New(color.Bold).SprintFunc()
	dim    = color.New(color.Faint).SprintFunc()
)

const historyFileName = ".corekernel_history"

// REPL holds the state of one interactive session: a term factory and the
// environment its canned terms and any loaded fixture are checked against.
type REPL struct {
	fac *term.Factory
	env *env.Environment
}

// New returns a REPL with baseline primitives (Nat/String/Vec, Succ/Add/Mul)
// already registered.
func New() (*REPL, error) {
	fac := term.NewFactory()
	e := env.New()
	if err := env.RegisterBaseline(fac, e); err != nil {
		return nil, err
	}
	return &REPL{fac: fac, env: e}, nil
}

// Run starts a REPL session reading from in and writing to out.
func Run(in io.Reader, out io.Writer) error {
	r, err := New()
	if err != nil {
		return err
	}
	r.start(out)
	return nil
}

func (r *REPL) start(out io.Writer) {
	line := liner.NewLiner()
	defer line.Close()
	line.SetMultiLineMode(false)

	historyFile := filepath.Join(os.TempDir(), historyFileName)
	if f, err := os.Open(historyFile); err == nil {
		_, _ = line.ReadHistory(f)
		f.Close()
	}

	line.SetCompleter(func(in string) (c []string) {
		commands := []string{":help", ":quit", ":list", ":type", ":dump", ":load"}
		for _, cmd := range commands {
			if strings.HasPrefix(cmd, in) {
				c = append(c, cmd)
			}
		}
		for _, n := range CannedNames() {
			if strings.HasPrefix(n, in) {
				c = append(c, n)
			}
		}
		return
	})

	fmt.Fprintf(out, "%s\n", bold("corekernel repl"))
	fmt.Fprintln(out, dim("Type :help for help, :quit to exit"))
	fmt.Fprintln(out)

	for {
		input, err := line.Prompt("κ> ")
		if err == io.EOF {
			fmt.Fprintln(out, green("Goodbye!"))
			break
		}
		if err != nil {
			fmt.Fprintf(out, "%s: %v\n", red("error"), err)
			continue
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		line.AppendHistory(input)

		if input == ":quit" || input == ":q" || input == ":exit" {
			fmt.Fprintln(out, green("Goodbye!"))
			break
		}
		r.handle(input, out)
	}

	if f, err := os.Create(historyFile); err == nil {
		_, _ = line.WriteHistory(f)
		f.Close()
	}
}

func (r *REPL) handle(input string, out io.Writer) {
	switch {
	case input == ":help":
		r.printHelp(out)
	case input == ":list":
		for _, n := range CannedNames() {
			_, doc, _ := FindCanned(r.fac, n)
			fmt.Fprintf(out, "  %s - %s\n", cyan(n), doc)
		}
	case strings.HasPrefix(input, ":dump "):
		r.dumpCanned(strings.TrimPrefix(input, ":dump "), out)
	case strings.HasPrefix(input, ":type "):
		r.typeCanned(strings.TrimPrefix(input, ":type "), out)
	case strings.HasPrefix(input, ":load "):
		r.loadFixture(strings.TrimPrefix(input, ":load "), out)
	default:
		fmt.Fprintf(out, "%s: unknown command %q (try :help)\n", yellow("warning"), input)
	}
}

func (r *REPL) printHelp(out io.Writer) {
	fmt.Fprintln(out, "Commands:")
	fmt.Fprintln(out, "  :list            list the canned example terms")
	fmt.Fprintln(out, "  :dump <name>     pretty-print a canned term")
	fmt.Fprintln(out, "  :type <name>     infer a canned term's type")
	fmt.Fprintln(out, "  :load <file>     load a YAML fixture and check every defined global")
	fmt.Fprintln(out, "  :quit            exit")
}

func (r *REPL) dumpCanned(name string, out io.Writer) {
	t, _, ok := FindCanned(r.fac, name)
	if !ok {
		fmt.Fprintf(out, "%s: no such term %q\n", red("error"), name)
		return
	}
	fmt.Fprintln(out, pp.Sprint(t))
}

func (r *REPL) typeCanned(name string, out io.Writer) {
	t, _, ok := FindCanned(r.fac, name)
	if !ok {
		fmt.Fprintf(out, "%s: no such term %q\n", red("error"), name)
		return
	}
	en := tc.New(r.fac, r.env)
	ty, err := en.Infer(nil, t)
	if err != nil {
		report := tcerrors.ToReport(tcerrors.AtPos(tcerrors.Position{Label: name}, err))
		fmt.Fprintf(out, "%s [%s] %s\n", red("fail"), report.Code, report.Message)
		return
	}
	fmt.Fprintf(out, "%s %s\n", green(":"), pp.Sprint(ty))
}

func (r *REPL) loadFixture(path string, out io.Writer) {
	f, err := os.Open(path)
	if err != nil {
		fmt.Fprintf(out, "%s: %v\n", red("error"), err)
		return
	}
	defer f.Close()

	e, err := env.LoadFixture(r.fac, f)
	if err != nil {
		fmt.Fprintf(out, "%s: %v\n", red("error"), err)
		return
	}
	r.env = e

	en := tc.New(r.fac, r.env)
	for _, id := range e.GlobalNames() {
		ty, ok := e.TypeOfGlobal(id)
		if !ok {
			continue
		}
		val, ok := e.ValueOfGlobal(id)
		if !ok {
			continue
		}
		c := r.fac.MkConstant(id, val, ty)
		inferred, err := en.Infer(nil, c)
		if err != nil {
			report := tcerrors.ToReport(tcerrors.AtPos(tcerrors.Position{Label: id.String()}, err))
			fmt.Fprintf(out, "%s %s [%s] %s\n", red("fail"), id, report.Code, report.Message)
			continue
		}
		fmt.Fprintf(out, "%s %s : %s\n", green("ok"), id, pp.Sprint(inferred))
	}
}
