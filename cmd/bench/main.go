// Command bench times minusone.Deobfuscate against a single script over N
// iterations, reporting throughput in MB/s, the same warm-up-then-time
// shape the teacher's cmd/bench uses for go-yara/yargo scan timing.
package main

import (
	"flag"
	"fmt"
	"os"
	"runtime/pprof"
	"time"

	"github.com/minusone-go/minusone"
)

func main() {
	scanPath := flag.String("scan", "fixture/sample.ps1", "path to the PowerShell script to fold")
	iterations := flag.Int("n", 1, "number of iterations")
	cpuprofile := flag.String("cpuprofile", "", "write cpu profile to file (fold only)")
	flag.Parse()

	data, err := os.ReadFile(*scanPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to read %s: %v\n", *scanPath, err)
		os.Exit(1)
	}
	src := string(data)

	fmt.Printf("Folding %d bytes, %d iterations\n\n", len(data), *iterations)

	opts := minusone.Options{StripComments: true, RemoveDeadAssignments: true}

	// Warm up
	for i := 0; i < 3; i++ {
		if _, err := minusone.Deobfuscate(src, minusone.Powershell, opts); err != nil {
			fmt.Fprintf(os.Stderr, "warm-up error: %v\n", err)
			os.Exit(1)
		}
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

	var passes int
	start := time.Now()
	for i := 0; i < *iterations; i++ {
		result, err := minusone.Deobfuscate(src, minusone.Powershell, opts)
		if err != nil {
			fmt.Fprintf(os.Stderr, "fold error: %v\n", err)
			os.Exit(1)
		}
		passes += result.Passes
	}
	elapsed := time.Since(start)

	fmt.Printf("total:    %v  (%.2f MB/s)  avg passes/run: %.1f\n",
		elapsed, float64(len(data)*(*iterations))/elapsed.Seconds()/1024/1024, float64(passes)/float64(*iterations))
}
