package domain

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/mouse-blink/covdungeon/internal/adapter"
	m "github.com/mouse-blink/covdungeon/internal/model"
)

// ThrowErrorStub is the stub name that makes every function-valued
// dependency throw.
const ThrowErrorStub = "__throwError"

// BranchAnalyzer suggests, for each fork, stub assignments that drive
// execution down each of its paths.
type BranchAnalyzer interface {
	Analyze(fork Node, src []byte) m.BranchAnalysis
}

type branchAnalyzer struct{}

// NewBranchAnalyzer constructs a BranchAnalyzer.
func NewBranchAnalyzer() BranchAnalyzer {
	return &branchAnalyzer{}
}

func (a *branchAnalyzer) Analyze(fork Node, src []byte) m.BranchAnalysis {
	switch n := fork.(type) {
	case *Try:
		return m.BranchAnalysis{
			ConditionText: "try",
			Options: []m.BranchOption{
				{Label: "normal", Stubs: map[string]any{}, ChoiceValue: "normal"},
				{Label: "throws", Stubs: map[string]any{ThrowErrorStub: true}, ChoiceValue: "throws"},
			},
		}
	case *Switch:
		return a.analyzeSwitch(n, src)
	case *Branch:
		return a.analyzeCondition(n.Condition, src)
	default:
		return m.BranchAnalysis{}
	}
}

func (a *branchAnalyzer) analyzeCondition(cond *sitter.Node, src []byte) m.BranchAnalysis {
	analysis := m.BranchAnalysis{ConditionText: adapter.NodeText(cond, src)}

	whenTrue, okTrue := drive(cond, src, true)
	whenFalse, okFalse := drive(cond, src, false)

	if okTrue && okFalse {
		trueStubs, solvedTrue := solve(whenTrue)
		falseStubs, solvedFalse := solve(whenFalse)

		if solvedTrue && solvedFalse {
			analysis.Options = []m.BranchOption{
				{Label: describe("true", trueStubs), Stubs: trueStubs, ChoiceValue: "true"},
				{Label: describe("false", falseStubs), Stubs: falseStubs, ChoiceValue: "false"},
			}

			return analysis
		}
	}

	if booleanShaped(cond) {
		analysis.Options = []m.BranchOption{
			{Label: "make " + analysis.ConditionText + " true", Stubs: map[string]any{condResult: true}, ChoiceValue: "true"},
			{Label: "make " + analysis.ConditionText + " false", Stubs: map[string]any{condResult: false}, ChoiceValue: "false"},
		}

		return analysis
	}

	analysis.Options = []m.BranchOption{
		{Label: "take true path", Stubs: map[string]any{}, ChoiceValue: "true"},
		{Label: "take false path", Stubs: map[string]any{}, ChoiceValue: "false"},
	}

	return analysis
}

// booleanShaped reports conditions that read as a yes/no question rather
// than a comparison.
func booleanShaped(n *sitter.Node) bool {
	n = adapter.Unparen(n)
	if n == nil {
		return false
	}

	switch n.Type() {
	case adapter.NodeUnaryExpression, adapter.NodeCallExpression, adapter.NodeIdentifier, adapter.NodeMemberExpression:
		return true
	case adapter.NodeBinaryExpression:
		op := n.ChildByFieldName("operator")
		return op != nil && (op.Type() == "&&" || op.Type() == "||")
	default:
		return false
	}
}

func (a *branchAnalyzer) analyzeSwitch(n *Switch, src []byte) m.BranchAnalysis {
	analysis := m.BranchAnalysis{ConditionText: n.DiscriminantText}

	disc := adapter.Unparen(n.Discriminant)
	if disc != nil && disc.Type() == adapter.NodeTrue {
		analysis.Options = guardOptions(n, src)
		return analysis
	}

	path, call, ok := operandPath(disc, src)
	if !ok {
		path, call = []string{discriminant}, false
	}

	for i, c := range n.Cases {
		var value any = defaultValue

		label := "default"
		choice := "default"

		if c.Test != nil {
			label = "case " + c.TestText
			choice = "case-" + strconv.Itoa(i)

			if lit, isLit := literal(c.Test, src); isLit {
				value = stubLiteral(lit)
			} else {
				value = c.TestText
			}
		}

		if call {
			value = m.FuncStub{Returns: value}
		}

		stubs := map[string]any{}
		assign(stubs, path, value)

		analysis.Options = append(analysis.Options, m.BranchOption{Label: label, Stubs: stubs, ChoiceValue: choice})
	}

	return analysis
}

// guardOptions handles switch (true): case i is taken when every earlier
// guard is false and its own guard is true.
func guardOptions(n *Switch, src []byte) []m.BranchOption {
	var (
		options []m.BranchOption
		earlier []constraint
		reached = true
	)

	for i, c := range n.Cases {
		label := "default"
		choice := "default"

		var cs []constraint

		ok := reached

		if c.Test != nil {
			label = "case " + c.TestText
			choice = "case-" + strconv.Itoa(i)

			own, drivable := drive(c.Test, src, true)
			cs = append(append(cs, earlier...), own...)
			ok = ok && drivable
		} else {
			cs = append(cs, earlier...)
		}

		stubs := map[string]any{}

		if ok {
			if solved, solvable := solve(cs); solvable {
				stubs = solved
				label = describe(label, stubs)
			}
		}

		options = append(options, m.BranchOption{Label: label, Stubs: stubs, ChoiceValue: choice})

		if c.Test != nil {
			skip, drivable := drive(c.Test, src, false)
			reached = reached && drivable
			earlier = append(earlier, skip...)
		}
	}

	return options
}

func stubLiteral(v any) any {
	if _, isUndef := v.(undefinedLiteral); isUndef {
		return m.Undefined
	}

	return v
}

// describe renders stubs as "label (a = 1, b.c = true)".
func describe(label string, stubs map[string]any) string {
	parts := flatten("", stubs)
	if len(parts) == 0 {
		return label
	}

	sort.Strings(parts)

	return label + " (" + strings.Join(parts, ", ") + ")"
}

func flatten(prefix string, stubs map[string]any) []string {
	var out []string

	for k, v := range stubs {
		name := k
		if prefix != "" {
			name = prefix + "." + k
		}

		switch val := v.(type) {
		case map[string]any:
			out = append(out, flatten(name, val)...)
		case m.FuncStub:
			out = append(out, name+"() = "+FormatValue(val.Returns))
		default:
			out = append(out, name+" = "+FormatValue(val))
		}
	}

	return out
}

// FormatValue renders a stub value the way it would be written in
// JavaScript.
func FormatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return "null"
	case m.UndefinedValue:
		return "undefined"
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case string:
		return strconv.Quote(val)
	case m.ScriptStub:
		return string(val)
	case m.FuncStub:
		return "() => " + FormatValue(val.Returns)
	case m.ThrowStub:
		return "() => { throw new Error(" + strconv.Quote(val.Message) + ") }"
	default:
		return fmt.Sprint(val)
	}
}
