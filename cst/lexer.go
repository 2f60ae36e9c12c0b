package cst

import "github.com/alecthomas/participle/v2/lexer"

// newLexer builds the stateful token lexer for the PowerShell subset this
// package parses, the same construction the teacher's YARA parser uses
// (lexer.MustStateful with a shared "Common" state included everywhere
// whitespace and comments are legal). A single "Root" state covers this
// subset: unlike the YARA grammar's string/hex sections, nothing here
// needs a different tokenization once inside a literal, so double-quoted
// strings (including any `$(...)` subexpression text) are matched whole
// by one regex rather than by pushing a nested mode; the interpolation
// inside them is not parsed.
func newLexer() lexer.Definition {
	return lexer.MustStateful(lexer.Rules{
		"Common": {
			{Name: "LineComment", Pattern: `#[^\n]*`},
			{Name: "BlockComment", Pattern: `<#[\s\S]*?#>`},
			{Name: "Whitespace", Pattern: `[ \t\r\n]+`},
			{Name: "LineContinuation", Pattern: "`\r?\n"},
		},
		"Root": {
			lexer.Include("Common"),
			{Name: "TypeLiteral", Pattern: `\[[A-Za-z_][A-Za-z0-9_.]*(?:\[\])?\]`},
			{Name: "SingleQuoted", Pattern: `'(?:[^']|'')*'`},
			{Name: "DoubleQuoted", Pattern: `"(?:[^"` + "`" + `]|` + "`" + `.)*"`},
			{Name: "HereString", Pattern: "@\"(?:[^\\\"]|\"[^@])*\"@|@'(?:[^']|'[^@])*'@"},
			{Name: "DollarParen", Pattern: `\$\(`},
			{Name: "Variable", Pattern: `\$(?:\{[^}]+\}|[A-Za-z_][A-Za-z0-9_:]*)`},
			{Name: "Float", Pattern: `[0-9]+\.[0-9]+`},
			{Name: "Int", Pattern: `0[xX][0-9A-Fa-f]+|[0-9]+`},
			{Name: "Range", Pattern: `\.\.`},
			// Word operators get one token type per precedence tier rather
			// than a single catch-all, so the grammar can restrict which
			// operators are legal at each level without falling back to
			// case-sensitive literal matching (PowerShell operators are
			// case-insensitive; each pattern below is too).
			{Name: "NotOp", Pattern: `-(?i:not)\b`},
			{Name: "AndOp", Pattern: `-(?i:and)\b`},
			{Name: "OrOp", Pattern: `-(?i:or|xor)\b`},
			{Name: "JoinOp", Pattern: `-(?i:join)\b`},
			{Name: "SplitOp", Pattern: `-(?i:split|csplit|isplit)\b`},
			{Name: "ReplaceOp", Pattern: `-(?i:replace|creplace|ireplace)\b`},
			{Name: "MatchOp", Pattern: `-(?i:notmatch|match|cmatch|imatch)\b`},
			{Name: "FormatOp", Pattern: `-(?i:f)\b`},
			{Name: "CompOp", Pattern: `-(?i:ceq|cne|clt|cle|cgt|cge|ieq|ine|ilt|ile|igt|ige|eq|ne|lt|le|gt|ge|notcontains|contains|notin|in|isnot|is|as|band|bor|bxor|shl|shr)\b`},
			// Keywords get their own case-insensitive token types rather than
			// one generic Keyword token, so the grammar can match them by
			// type (immune to the case an obfuscated script picks) instead
			// of by literal value.
			{Name: "IfKw", Pattern: `(?i:\bif\b)`},
			{Name: "ElseIfKw", Pattern: `(?i:\belseif\b)`},
			{Name: "ElseKw", Pattern: `(?i:\belse\b)`},
			{Name: "WhileKw", Pattern: `(?i:\bwhile\b)`},
			{Name: "ForeachKw", Pattern: `(?i:\bforeach\b)`},
			{Name: "FunctionKw", Pattern: `(?i:\bfunction\b)`},
			{Name: "InKw", Pattern: `(?i:\bin\b)`},
			{Name: "ReturnKw", Pattern: `(?i:\breturn\b)`},
			{Name: "AtBrace", Pattern: `@\{`},
			{Name: "AtParen", Pattern: `@\(`},
			{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_.\\-]*`},
			{Name: "DColon", Pattern: `::`},
			{Name: "Punct", Pattern: `\+=|-=|\*=|/=|==|!=|<=|>=|[{}()\[\]<>,.;=+\-*/%!|&]`},
		},
	})
}
