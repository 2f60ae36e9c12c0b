package psrules

import "github.com/minusone-go/minusone/rule"

// NewRuleSet builds the PowerShell rule set in its fixed firing order,
// grounded on the original's ps/mod.rs RuleSet tuple. Order matters: later
// rules in the list see annotations set by earlier rules on the same
// traversal event (ParseInt before AddInt, StaticVar before the rules that
// consume a folded variable, Var near the end so every other fold has had
// a chance to produce the Raw value it substitutes).
func NewRuleSet() *rule.Set {
	return rule.NewSet(
		Forward{},
		ParseInt{},
		AddInt{},
		MultInt{},
		ParseString{},
		ConcatString{},
		Cast{},
		ParseArrayLiteral{},
		ParseRange{},
		AccessString{},
		JoinComparison{},
		JoinStringMethod{},
		JoinOperator{},
		PSItemInferrator{},
		ForEach{},
		StringReplaceMethod{},
		ComputeArrayExpr{},
		StringReplaceOp{},
		StaticVar{},
		CastNull{},
		ParseHash{},
		FormatString{},
		ParseBool{},
		Comparison{},
		Not{},
		ParseType{},
		DecodeBase64{},
		FromUTF{},
		Length{},
		BoolAlgebra{},
		Var{},
		AddArray{},
		StringSplitMethod{},
		AccessArray{},
		NewObjectArray{},
	)
}
