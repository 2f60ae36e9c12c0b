package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/minusone-go/minusone"
	"github.com/minusone-go/minusone/detect"
)

var (
	stripComments = flag.Bool("strip-comments", true, "remove comments before folding")
	removeDead    = flag.Bool("remove-dead", true, "drop assignments whose variable is never read")
	maxPasses     = flag.Int("max-passes", 0, "cap the folding engine's pass count (0 uses the default)")
	tagged        = flag.Bool("html", false, "wrap output tokens in <span class=\"tok-KIND\"> tags")
	scan          = flag.Bool("scan", false, "scan the deobfuscated output for known indicator strings")
	path          = flag.String("path", "", "script to deobfuscate (alternative to the positional argument)")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] <script.ps1> | --path <script.ps1>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	filename := *path
	if filename == "" {
		if flag.NArg() < 1 {
			flag.Usage()
			os.Exit(1)
		}
		filename = flag.Arg(0)
	}
	src, err := os.ReadFile(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading %s: %v\n", filename, err)
		os.Exit(1)
	}

	opts := minusone.Options{
		MaxPasses:             *maxPasses,
		StripComments:         *stripComments,
		RemoveDeadAssignments: *removeDead,
	}

	var result minusone.Result
	if *tagged {
		result, err = minusone.DeobfuscateTagged(string(src), minusone.Powershell, opts)
	} else {
		result, err = minusone.Deobfuscate(string(src), minusone.Powershell, opts)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error deobfuscating %s: %v\n", filename, err)
		os.Exit(1)
	}

	fmt.Println(result.Text)
	if result.BudgetExceeded {
		fmt.Fprintf(os.Stderr, "warning: %s hit the pass budget after %d passes, output may be partially folded\n", filename, result.Passes)
	}

	if *scan {
		runScan(filename, result.Text)
	}
}

func runScan(filename, text string) {
	rules, err := detect.Compile(defaultIndicatorRules())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error compiling indicator rules: %v\n", err)
		os.Exit(1)
	}
	matches, err := detect.Scan(context.Background(), rules, text)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error scanning %s: %v\n", filename, err)
		os.Exit(1)
	}
	if len(matches) == 0 {
		return
	}
	fmt.Fprintf(os.Stderr, "\nIndicators matched in %s:\n", filename)
	for _, m := range matches {
		fmt.Fprintf(os.Stderr, "  - %s\n", m.Rule)
		for _, s := range m.Strings {
			fmt.Fprintf(os.Stderr, "      %s @ %d\n", s.StringName, s.Offset)
		}
	}
}
