// Package minusone is the library entry point: parse PowerShell source,
// fold it to a fixed point, and render the deobfuscated result. Mirrors
// spec.md §6's single principal entry point
// (`deobfuscate(source, language) -> Result<text, Error>`), restated in Go
// as two functions (plain and HTML-tagged output) over a fixed Language
// enum of one member, since this module implements only the PowerShell
// rule library.
package minusone

import (
	"fmt"

	"github.com/minusone-go/minusone/cst"
	"github.com/minusone-go/minusone/engine"
	"github.com/minusone-go/minusone/psrules"
	"github.com/minusone-go/minusone/render"
	"github.com/minusone-go/minusone/tree"
)

// Language is the closed set of source languages this module understands.
// spec.md's signature takes a language enum even though only one member
// exists today, leaving room for a future grammar without breaking the
// entry point's shape.
type Language int

const (
	Powershell Language = iota
)

// Options configures a Deobfuscate call.
type Options struct {
	// MaxPasses bounds the engine's fixed-point loop; zero uses
	// engine.DefaultMaxPasses.
	MaxPasses int

	// StripComments removes PowerShell comments from source before
	// parsing, per render.StripComments.
	StripComments bool

	// RemoveDeadAssignments drops assignment statements whose variable is
	// never read, per render.Options.RemoveDeadAssignments.
	RemoveDeadAssignments bool
}

// Result reports the deobfuscated text alongside engine diagnostics.
type Result struct {
	Text           string
	Passes         int
	BudgetExceeded bool
}

// Deobfuscate parses source, folds it with the PowerShell rule set to a
// fixed point, and renders the result as plain text.
func Deobfuscate(source string, lang Language, opts Options) (Result, error) {
	root, v, passRes, err := fold(source, lang, opts)
	if err != nil {
		return Result{}, err
	}
	text := render.Render(root, v, render.Options{RemoveDeadAssignments: opts.RemoveDeadAssignments})
	return Result{Text: text, Passes: passRes.Passes, BudgetExceeded: passRes.BudgetExceeded}, nil
}

// DeobfuscateTagged is Deobfuscate's HTML-tagged variant, wrapping each
// emitted token in a <span> per spec.md §4.7's "external collaborator"
// contract.
func DeobfuscateTagged(source string, lang Language, opts Options) (Result, error) {
	root, v, passRes, err := fold(source, lang, opts)
	if err != nil {
		return Result{}, err
	}
	text := render.RenderTagged(root, v, render.Options{RemoveDeadAssignments: opts.RemoveDeadAssignments})
	return Result{Text: text, Passes: passRes.Passes, BudgetExceeded: passRes.BudgetExceeded}, nil
}

func fold(source string, lang Language, opts Options) (*tree.Node, *tree.View, engine.Result, error) {
	if lang != Powershell {
		return nil, nil, engine.Result{}, fmt.Errorf("minusone: unsupported language %d", lang)
	}
	if opts.StripComments {
		source = render.StripComments(source)
	}
	parser, err := cst.New()
	if err != nil {
		return nil, nil, engine.Result{}, fmt.Errorf("minusone: building parser: %w", err)
	}
	root, err := parser.Parse(source)
	if err != nil {
		return nil, nil, engine.Result{}, fmt.Errorf("minusone: parse: %w", err)
	}
	v := tree.NewView(root)
	res, engErr := engine.Run(root, v, psrules.PowershellStrategy{}, psrules.NewRuleSet(), engine.Options{MaxPasses: opts.MaxPasses})
	if engErr != nil && engErr.Kind != engine.BudgetExceeded {
		return nil, nil, engine.Result{}, fmt.Errorf("minusone: %w", engErr)
	}
	return root, v, res, nil
}
