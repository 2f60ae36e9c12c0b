package main

import "github.com/minusone-go/minusone/detect"

// defaultIndicatorRules is a small built-in rule set covering the
// obfuscation-adjacent constructs minusone's own folding tends to unmask,
// grounded on the kind of indicator the teacher's YARA corpus flags for
// PowerShell droppers (DownloadString/IEX chains, reflective assembly
// loading, AMSI bypass strings).
func defaultIndicatorRules() []*detect.Rule {
	return []*detect.Rule{
		{
			Name: "download_and_execute",
			Meta: map[string]string{"severity": "high"},
			Strings: []*detect.StringDef{
				{Name: "$download", Value: detect.TextString{Value: "downloadstring"}, Nocase: true},
				{Name: "$invoke", Value: detect.TextString{Value: "invoke-expression"}, Nocase: true},
				{Name: "$iex", Value: detect.TextString{Value: "iex"}, Nocase: true},
			},
		},
		{
			Name: "amsi_bypass",
			Meta: map[string]string{"severity": "high"},
			Strings: []*detect.StringDef{
				{Name: "$amsi", Value: detect.TextString{Value: "amsiutils"}, Nocase: true},
				{Name: "$amsiinit", Value: detect.TextString{Value: "amsiinitfailed"}, Nocase: true},
			},
		},
		{
			Name: "reflective_assembly_load",
			Meta: map[string]string{"severity": "medium"},
			Strings: []*detect.StringDef{
				{Name: "$load", Value: detect.TextString{Value: "[reflection.assembly]::load"}, Nocase: true},
				{Name: "$entrypoint", Value: detect.TextString{Value: "entrypoint.invoke"}, Nocase: true},
			},
		},
		{
			Name: "base64_blob",
			Meta: map[string]string{"severity": "low"},
			Strings: []*detect.StringDef{
				{Name: "$b64", Value: detect.RegexString{Pattern: `[A-Za-z0-9+/]{80,}={0,2}`}},
			},
		},
	}
}
