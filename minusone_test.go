package minusone_test

import (
	"strings"
	"testing"

	"github.com/minusone-go/minusone"
)

func TestDeobfuscateFoldsCastCharJoin(t *testing.T) {
	res, err := minusone.Deobfuscate("65,66,67 | % { [char] $_ }", minusone.Powershell, minusone.Options{})
	if err != nil {
		t.Fatalf("Deobfuscate: %v", err)
	}
	if res.Text != `@("A", "B", "C")` {
		t.Fatalf("unexpected output: %q", res.Text)
	}
}

func TestDeobfuscateStripsCommentsAndDeadAssignments(t *testing.T) {
	src := "# noise\n$unused = 1\n$x = 1+1\n$x"
	res, err := minusone.Deobfuscate(src, minusone.Powershell, minusone.Options{
		StripComments:         true,
		RemoveDeadAssignments: true,
	})
	if err != nil {
		t.Fatalf("Deobfuscate: %v", err)
	}
	want := "$x = 2\n2"
	if res.Text != want {
		t.Fatalf("expected %q, got %q", want, res.Text)
	}
}

func TestDeobfuscateTaggedWrapsTokens(t *testing.T) {
	res, err := minusone.Deobfuscate("1+1", minusone.Powershell, minusone.Options{})
	if err != nil {
		t.Fatalf("Deobfuscate: %v", err)
	}
	if res.Text != "2" {
		t.Fatalf("expected 2, got %q", res.Text)
	}
	tagged, err := minusone.DeobfuscateTagged("1+1", minusone.Powershell, minusone.Options{})
	if err != nil {
		t.Fatalf("DeobfuscateTagged: %v", err)
	}
	if !strings.Contains(tagged.Text, `tok-number`) {
		t.Fatalf("expected tok-number span, got %q", tagged.Text)
	}
}

func TestDeobfuscateRejectsUnknownLanguage(t *testing.T) {
	if _, err := minusone.Deobfuscate("1+1", minusone.Language(99), minusone.Options{}); err == nil {
		t.Fatalf("expected error for unknown language")
	}
}
