// Command corekernel is the CLI front end for the core type-checking
// kernel: it loads a YAML environment fixture, checks every global it
// defines (declared-only globals are skipped), and prints the resulting
// types (or structured error reports).
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/corekernel/corekernel/internal/env"
	"github.com/corekernel/corekernel/internal/kernel"
	"github.com/corekernel/corekernel/internal/replkernel"
	"github.com/corekernel/corekernel/internal/term"
)

var (
	Version = "dev"

	green  = color.New(color.FgGreen).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	bold   = color.New(color.Bold).SprintFunc()
)

func main() {
	var (
		versionFlag = flag.Bool("version", false, "print version information")
		debugFlag   = flag.Bool("debug", false, "trace inference steps to stderr")
		jsonFlag    = flag.Bool("json", false, "print error reports as JSON")
	)
	flag.Parse()

	if *versionFlag {
		fmt.Printf("corekernel %s\n", Version)
		return
	}

	if flag.NArg() == 0 {
		printHelp()
		return
	}

	switch flag.Arg(0) {
	case "check":
		if flag.NArg() < 2 {
			fmt.Fprintf(os.Stderr, "%s: missing fixture argument\n", red("error"))
			fmt.Println("usage: corekernel check <fixture.yaml>")
			os.Exit(1)
		}
		target := flag.Arg(1)
		if strings.HasSuffix(target, ".yaml") || strings.HasSuffix(target, ".yml") {
			checkFixture(target, *debugFlag, *jsonFlag)
		} else {
			checkCanned(target, *debugFlag, *jsonFlag)
		}

	case "repl":
		if err := replkernel.Run(os.Stdin, os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", red("error"), err)
			os.Exit(1)
		}

	default:
		fmt.Fprintf(os.Stderr, "%s: unknown command %q\n", red("error"), flag.Arg(0))
		printHelp()
		os.Exit(1)
	}
}

func printHelp() {
	fmt.Println(bold("corekernel") + " - dependently-typed kernel type-checker")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  corekernel check <fixture.yaml>   Type-check every defined global in a fixture")
	fmt.Println("  corekernel check <canned-name>    Type-check a canned example term")
	fmt.Println("  corekernel repl                   Start an interactive session")
	fmt.Println()
	fmt.Println("Canned terms:", replkernel.CannedNames())
	fmt.Println()
	fmt.Println("Flags:")
	flag.PrintDefaults()
}

func checkCanned(name string, debug, asJSON bool) {
	fac := term.NewFactory()
	e := env.New()
	if err := env.RegisterBaseline(fac, e); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", red("error"), err)
		os.Exit(1)
	}
	t, _, ok := replkernel.FindCanned(fac, name)
	if !ok {
		fmt.Fprintf(os.Stderr, "%s: no such canned term %q\n", red("error"), name)
		os.Exit(1)
	}
	cfg := kernel.Config{Debug: debug, JSON: asJSON, PositionName: name}
	r := kernel.Check(cfg, fac, e, t)
	if r.Report != nil {
		reportFailure(r, asJSON)
		os.Exit(1)
	}
	fmt.Printf("%s %s\n", green("ok"), r.TypePretty)
}

func checkFixture(path string, debug, asJSON bool) {
	f, err := os.Open(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", red("error"), err)
		os.Exit(1)
	}
	defer f.Close()

	fac := term.NewFactory()
	cfg := kernel.Config{Debug: debug, JSON: asJSON}
	_, results, err := kernel.CheckFixture(cfg, fac, f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", red("error"), err)
		os.Exit(1)
	}

	failed := 0
	for _, r := range results {
		if r.Report != nil {
			failed++
			reportFailure(r, asJSON)
			continue
		}
		fmt.Printf("%s %s\n", green("ok"), r.TypePretty)
	}

	if failed > 0 {
		fmt.Fprintf(os.Stderr, "%s %d of %d checks failed\n", yellow("warning:"), failed, len(results))
		os.Exit(1)
	}
}

func reportFailure(r *kernel.Result, asJSON bool) {
	if asJSON {
		out, err := r.Report.ToJSON(false)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", red("error"), err)
			return
		}
		fmt.Println(out)
		return
	}
	fmt.Printf("%s [%s] %s\n", red("fail"), r.Report.Code, r.Report.Message)
}
