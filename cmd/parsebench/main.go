// Command parsebench times cst.New/Parse alone (no folding, no rendering),
// isolating grammar/parser overhead the way the teacher's cmd/parse-bench
// isolates yargo's parsing/compilation step from go-yara's.
package main

import (
	"flag"
	"fmt"
	"os"
	"runtime/pprof"
	"time"

	"github.com/minusone-go/minusone/cst"
)

var cpuprofile = flag.String("cpuprofile", "", "write cpu profile to file (parses only)")

func main() {
	scanPath := flag.String("scan", "fixture/sample.ps1", "path to the PowerShell script to parse")
	iterations := flag.Int("n", 1, "number of iterations")
	flag.Parse()

	data, err := os.ReadFile(*scanPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to read %s: %v\n", *scanPath, err)
		os.Exit(1)
	}
	src := string(data)

	fmt.Printf("Parsing %d bytes, %d iterations\n\n", len(data), *iterations)

	parser, err := cst.New()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error building parser: %v\n", err)
		os.Exit(1)
	}

	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating profile: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		pprof.StartCPUProfile(f)
		defer pprof.StopCPUProfile()
	}

	start := time.Now()
	for i := 0; i < *iterations; i++ {
		if _, err := parser.Parse(src); err != nil {
			fmt.Fprintf(os.Stderr, "parse error: %v\n", err)
			os.Exit(1)
		}
	}
	elapsed := time.Since(start)

	fmt.Printf("total:    %v  (%.2f MB/s)\n", elapsed, float64(len(data)*(*iterations))/elapsed.Seconds()/1024/1024)
}
