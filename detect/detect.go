// Package detect scans deobfuscated PowerShell text for known malicious
// indicators. It is a narrowed adaptation of the teacher's ast+scanner
// packages: the input here is always a short, already-decoded string (the
// output of minusone.Deobfuscate), not an arbitrary multi-gigabyte binary,
// so the byte-offset condition language (ast.Expr's AtExpr/FuncCall/AnyOf/
// AllOf, hex string patterns) has no job to do and is dropped. An
// indicator rule fires when any one of its strings matches, the simplest
// condition a post-deobfuscation sweep needs.
package detect

import (
	"context"
	"fmt"

	re2 "github.com/wasilibs/go-re2"

	"github.com/minusone-go/minusone/ahocorasick"
)

// StringValue is the value a StringDef matches against, adapted from
// ast.StringValue narrowed to the two shapes a plaintext indicator needs.
type StringValue interface {
	stringValue()
}

// TextString is a literal substring match, case-sensitive unless the
// owning StringDef's Nocase modifier is set.
type TextString struct {
	Value string
}

func (TextString) stringValue() {}

// RegexString is a regular expression indicator, compiled with
// github.com/wasilibs/go-re2, adapted from ast.RegexString.
type RegexString struct {
	Pattern string
}

func (RegexString) stringValue() {}

// StringDef is a single named indicator string within a Rule, adapted from
// ast.StringDef (Base64/Wide/Xor modifiers dropped: they exist in YARA to
// match strings hidden inside an arbitrary binary's encoding; a
// deobfuscated script is already plain UTF-8 text).
type StringDef struct {
	Name   string
	Value  StringValue
	Nocase bool
}

// Rule is a single indicator rule: it fires when any one of its Strings
// matches, adapted from ast.Rule with Condition dropped (see package doc).
type Rule struct {
	Name    string
	Meta    map[string]string
	Strings []*StringDef
}

// compiledRule mirrors scanner.compiledRule, narrowed to this package's
// string-only matching.
type compiledRule struct {
	name        string
	meta        map[string]string
	stringNames []string
}

type patternRef struct {
	ruleIndex  int
	stringName string
}

type regexPattern struct {
	re         *re2.Regexp
	ruleIndex  int
	stringName string
}

// Rules holds compiled indicator rules ready for scanning, adapted from
// scanner.Rules. Case-sensitive and case-insensitive text atoms are built
// into separate Aho-Corasick matchers (the local ahocorasick package has
// no nocase mode of its own): the case-insensitive matcher runs against a
// lowercased copy of the haystack at Scan time.
type Rules struct {
	rules         []*compiledRule
	matcher       ahocorasick.AhoCorasick
	hasMatcher    bool
	patternMap    []patternRef
	matcherCI     ahocorasick.AhoCorasick
	hasMatcherCI  bool
	patternMapCI  []patternRef
	regexPatterns []*regexPattern
	warnings      []string
}

// Warnings returns any warnings generated during compilation (e.g. a regex
// that failed to compile and was skipped per CompileOptions.SkipInvalidRegex).
func (r *Rules) Warnings() []string { return r.warnings }

// CompileOptions configures Compile, adapted from scanner.CompileOptions.
type CompileOptions struct {
	// SkipInvalidRegex silently skips regexes that fail to compile instead
	// of returning an error.
	SkipInvalidRegex bool
}

// Compile compiles rules into a Rules ready for Scan, adapted from
// scanner.Compile/CompileWithOptions.
func Compile(rules []*Rule) (*Rules, error) {
	return CompileWithOptions(rules, CompileOptions{})
}

// CompileWithOptions compiles rules with the given options, adapted from
// scanner.CompileWithOptions. Literal TextString values are fed to the
// local ahocorasick package (kept verbatim from the teacher rather than
// the unfetchable pgavlin/aho-corasick module the teacher's own go.mod
// reaches for via a local filesystem replace directive -- see DESIGN.md);
// RegexString values compile with go-re2.
func CompileWithOptions(rules []*Rule, opts CompileOptions) (*Rules, error) {
	out := &Rules{rules: make([]*compiledRule, 0, len(rules))}

	var atoms, atomsCI [][]byte
	var errs []error

	for ruleIdx, r := range rules {
		cr := &compiledRule{name: r.Name, meta: r.Meta}
		for _, sd := range r.Strings {
			cr.stringNames = append(cr.stringNames, sd.Name)
			switch v := sd.Value.(type) {
			case TextString:
				if sd.Nocase {
					atomsCI = append(atomsCI, []byte(foldLower(v.Value)))
					out.patternMapCI = append(out.patternMapCI, patternRef{ruleIndex: ruleIdx, stringName: sd.Name})
				} else {
					atoms = append(atoms, []byte(v.Value))
					out.patternMap = append(out.patternMap, patternRef{ruleIndex: ruleIdx, stringName: sd.Name})
				}
			case RegexString:
				re, err := re2.Compile(v.Pattern)
				if err != nil {
					if opts.SkipInvalidRegex {
						out.warnings = append(out.warnings, fmt.Sprintf("rule %s: string %s: invalid regex: %v", r.Name, sd.Name, err))
						continue
					}
					errs = append(errs, fmt.Errorf("rule %s: string %s: %w", r.Name, sd.Name, err))
					continue
				}
				out.regexPatterns = append(out.regexPatterns, &regexPattern{re: re, ruleIndex: ruleIdx, stringName: sd.Name})
			default:
				errs = append(errs, fmt.Errorf("rule %s: string %s: unknown string value type %T", r.Name, sd.Name, sd.Value))
			}
		}
		out.rules = append(out.rules, cr)
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("detect: compiling rules: %w", errs[0])
	}

	if len(atoms) > 0 {
		builder := ahocorasick.NewAhoCorasickBuilder()
		out.matcher = builder.BuildByte(atoms)
		out.hasMatcher = true
	}
	if len(atomsCI) > 0 {
		builder := ahocorasick.NewAhoCorasickBuilder()
		out.matcherCI = builder.BuildByte(atomsCI)
		out.hasMatcherCI = true
	}

	return out, nil
}

// foldLower is the ASCII lowercase fold Nocase text atoms use; matching
// itself happens byte-for-byte against haystack text that Scan also folds.
func foldLower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}

// Match reports one indicator string's hit within a Scan.
type Match struct {
	RuleName   string
	StringName string
	Offset     int
}

// RuleMatch groups every Match belonging to one rule, adapted from
// scanner.MatchRule.
type RuleMatch struct {
	Rule    string
	Meta    map[string]string
	Strings []Match
}

// overlappingIterator matches ahocorasick's unexported overlapping-iterator
// type structurally, letting recordMatches accept either the
// case-sensitive or case-insensitive matcher's iterator.
type overlappingIterator interface {
	Next() *ahocorasick.Match
}

func recordMatches(hits map[int][]Match, it overlappingIterator, rules []*compiledRule, patternMap []patternRef) {
	for m := it.Next(); m != nil; m = it.Next() {
		idx := m.Pattern()
		if idx < 0 || idx >= len(patternMap) {
			continue
		}
		ref := patternMap[idx]
		hits[ref.ruleIndex] = append(hits[ref.ruleIndex], Match{
			RuleName:   rules[ref.ruleIndex].name,
			StringName: ref.stringName,
			Offset:     m.Start(),
		})
	}
}

// Scan runs every compiled rule's strings against text and returns every
// rule with at least one match, adapted from scanner.ScanMem. ctx bounds
// the regex pass; a deobfuscated script is small enough that this is
// mostly API symmetry with a byte-offset scanner rather than a real need,
// per SPEC_FULL.md.
func Scan(ctx context.Context, rules *Rules, text string) ([]RuleMatch, error) {
	hits := make(map[int][]Match)

	haystack := []byte(text)
	if rules.hasMatcher {
		recordMatches(hits, rules.matcher.IterOverlappingByte(haystack), rules.rules, rules.patternMap)
	}
	if rules.hasMatcherCI {
		recordMatches(hits, rules.matcherCI.IterOverlappingByte([]byte(foldLower(text))), rules.rules, rules.patternMapCI)
	}

	for _, rp := range rules.regexPatterns {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		loc := rp.re.FindIndex(haystack)
		if loc == nil {
			continue
		}
		hits[rp.ruleIndex] = append(hits[rp.ruleIndex], Match{
			RuleName:   rules.rules[rp.ruleIndex].name,
			StringName: rp.stringName,
			Offset:     loc[0],
		})
	}

	out := make([]RuleMatch, 0, len(hits))
	for ruleIdx, matches := range hits {
		out = append(out, RuleMatch{
			Rule:    rules.rules[ruleIdx].name,
			Meta:    rules.rules[ruleIdx].meta,
			Strings: matches,
		})
	}
	return out, nil
}
