// Command corpusvalidator walks a directory of .ps1 fixtures and checks
// that each one still folds cleanly: no parse error, no engine error other
// than a tolerated budget overrun, and (when a sibling .expected file names
// indicator rules) that detect.Scan still finds them post-fold. Adapted
// from the teacher's cmd/corpus-validator, which walks a corpus of PHP/JS
// samples checking each still produces a trusted scanner match.
package main

import (
	"bufio"
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/minusone-go/minusone"
	"github.com/minusone-go/minusone/detect"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s <fixture-dir>\n", os.Args[0])
		os.Exit(1)
	}
	fixtureDir := os.Args[1]

	rules, err := detect.Compile(defaultIndicatorRules())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error compiling indicator rules: %v\n", err)
		os.Exit(1)
	}

	var checked, failed int
	var missing []string

	err = filepath.WalkDir(fixtureDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || filepath.Ext(path) != ".ps1" {
			return err
		}
		checked++

		src, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading %s: %v\n", path, err)
			failed++
			return nil
		}

		result, deobErr := minusone.Deobfuscate(string(src), minusone.Powershell, minusone.Options{
			StripComments:         true,
			RemoveDeadAssignments: true,
		})
		if deobErr != nil {
			fmt.Fprintf(os.Stderr, "%s: deobfuscate error: %v\n", path, deobErr)
			failed++
			return nil
		}

		expected, err := readExpected(path + ".expected")
		if err != nil || len(expected) == 0 {
			return nil
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		matches, err := detect.Scan(ctx, rules, result.Text)
		cancel()
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: scan error: %v\n", path, err)
			failed++
			return nil
		}

		got := make(map[string]bool, len(matches))
		for _, m := range matches {
			got[m.Rule] = true
		}
		for _, name := range expected {
			if !got[name] {
				missing = append(missing, path+": "+name)
				failed++
			}
		}
		return nil
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error walking %s: %v\n", fixtureDir, err)
		os.Exit(1)
	}

	fmt.Printf("Checked %d fixtures, %d failures\n", checked, failed)
	for _, m := range missing {
		fmt.Printf("  missing expected indicator: %s\n", m)
	}
	if failed > 0 {
		os.Exit(1)
	}
}

// readExpected reads one indicator rule name per line from an optional
// sibling file; a missing file means the fixture has no expectations.
func readExpected(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()

	var names []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		names = append(names, line)
	}
	return names, scanner.Err()
}
