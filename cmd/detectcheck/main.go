//go:build yara

// Command detectcheck cross-validates detect.Scan's indicator hits against
// real libyara compiled from the same rule set. It reads every .ps1 file
// under a directory, deobfuscates it, and compares the two engines' rule
// name sets on the folded text, the same dual-engine comparison the
// teacher's cmd/storeminer-diff ran between go-yara and yargo. Requires
// cgo and libyara, so it's gated behind the yara build tag exactly like the
// teacher gates its own go-yara usage.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	yara "github.com/hillu/go-yara/v4"

	"github.com/minusone-go/minusone"
	"github.com/minusone-go/minusone/detect"
)

var dir = flag.String("dir", "", "directory of .ps1 fixtures to scan")

func main() {
	flag.Parse()
	if *dir == "" {
		fmt.Fprintln(os.Stderr, "Usage: detectcheck -dir <fixtures>")
		os.Exit(1)
	}

	goYaraRules, err := compileGoYara(defaultYaraRulesSource())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error compiling go-yara rules: %v\n", err)
		os.Exit(1)
	}

	detectRules, err := detect.Compile(defaultIndicatorRules())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error compiling detect rules: %v\n", err)
		os.Exit(1)
	}

	var checked, mismatched int
	err = filepath.WalkDir(*dir, func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() || filepath.Ext(path) != ".ps1" {
			return err
		}
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		checked++

		result, err := minusone.Deobfuscate(string(src), minusone.Powershell, minusone.Options{
			StripComments:         true,
			RemoveDeadAssignments: true,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: deobfuscate error: %v\n", path, err)
			return nil
		}

		var goYaraMatches yara.MatchRules
		if err := goYaraRules.ScanMem([]byte(result.Text), yara.ScanFlagsFastMode, 30*time.Second, &goYaraMatches); err != nil {
			fmt.Fprintf(os.Stderr, "%s: go-yara scan error: %v\n", path, err)
			return nil
		}
		goYaraSet := make(map[string]bool, len(goYaraMatches))
		for _, m := range goYaraMatches {
			goYaraSet[m.Rule] = true
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		detectMatches, err := detect.Scan(ctx, detectRules, result.Text)
		cancel()
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: detect scan error: %v\n", path, err)
			return nil
		}
		detectSet := make(map[string]bool, len(detectMatches))
		for _, m := range detectMatches {
			detectSet[m.Rule] = true
		}

		if !sameRuleSet(goYaraSet, detectSet) {
			mismatched++
			fmt.Printf("%s: go-yara=%v detect=%v\n", path, sortedRuleNames(goYaraSet), sortedRuleNames(detectSet))
		}
		return nil
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error walking %s: %v\n", *dir, err)
		os.Exit(1)
	}

	fmt.Printf("Checked %d fixtures, %d mismatched rule sets\n", checked, mismatched)
}

func sameRuleSet(a, b map[string]bool) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if !b[k] {
			return false
		}
	}
	return true
}

func sortedRuleNames(set map[string]bool) []string {
	names := make([]string, 0, len(set))
	for k := range set {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

func compileGoYara(source string) (*yara.Rules, error) {
	compiler, err := yara.NewCompiler()
	if err != nil {
		return nil, err
	}
	if err := compiler.AddString(source, ""); err != nil {
		return nil, err
	}
	return compiler.GetRules()
}
