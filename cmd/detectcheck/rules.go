//go:build yara

package main

import "github.com/minusone-go/minusone/detect"

// defaultIndicatorRules mirrors cmd/minusone's built-in rule set.
func defaultIndicatorRules() []*detect.Rule {
	return []*detect.Rule{
		{
			Name: "download_and_execute",
			Strings: []*detect.StringDef{
				{Name: "$download", Value: detect.TextString{Value: "downloadstring"}, Nocase: true},
				{Name: "$invoke", Value: detect.TextString{Value: "invoke-expression"}, Nocase: true},
				{Name: "$iex", Value: detect.TextString{Value: "iex"}, Nocase: true},
			},
		},
		{
			Name: "amsi_bypass",
			Strings: []*detect.StringDef{
				{Name: "$amsi", Value: detect.TextString{Value: "amsiutils"}, Nocase: true},
				{Name: "$amsiinit", Value: detect.TextString{Value: "amsiinitfailed"}, Nocase: true},
			},
		},
		{
			Name: "reflective_assembly_load",
			Strings: []*detect.StringDef{
				{Name: "$load", Value: detect.TextString{Value: "[reflection.assembly]::load"}, Nocase: true},
				{Name: "$entrypoint", Value: detect.TextString{Value: "entrypoint.invoke"}, Nocase: true},
			},
		},
		{
			Name: "base64_blob",
			Strings: []*detect.StringDef{
				{Name: "$b64", Value: detect.RegexString{Pattern: `[A-Za-z0-9+/]{80,}={0,2}`}},
			},
		},
	}
}

// defaultYaraRulesSource is the same four indicators expressed as YARA
// source, so go-yara can be compiled from an equivalent rule set for the
// comparison this command runs.
func defaultYaraRulesSource() string {
	return `
rule download_and_execute {
	strings:
		$download = "downloadstring" nocase
		$invoke = "invoke-expression" nocase
		$iex = "iex" nocase
	condition:
		any of them
}

rule amsi_bypass {
	strings:
		$amsi = "amsiutils" nocase
		$amsiinit = "amsiinitfailed" nocase
	condition:
		any of them
}

rule reflective_assembly_load {
	strings:
		$load = "[reflection.assembly]::load" nocase
		$entrypoint = "entrypoint.invoke" nocase
	condition:
		any of them
}

rule base64_blob {
	strings:
		$b64 = /[A-Za-z0-9+\/]{80,}={0,2}/
	condition:
		$b64
}
`
}
