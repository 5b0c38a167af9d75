package domain

import (
	"math"
	"sort"
	"strconv"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/mouse-blink/covdungeon/internal/adapter"
	m "github.com/mouse-blink/covdungeon/internal/model"
)

// delta is how far a suggested number lands from a comparison threshold.
const delta = 5

// Sentinels used when a comparison needs a value that differs from a
// literal of a given type.
const (
	otherString  = "__other__"
	nullStandIn  = 0.0
	condResult   = "__condResult"
	discriminant = "__discriminant"
	defaultValue = "__default__"
)

type op string

const (
	opEq     op = "eq"
	opNe     op = "ne"
	opGt     op = "gt"
	opGe     op = "ge"
	opLt     op = "lt"
	opLe     op = "le"
	opTruthy op = "truthy"
	opFalsy  op = "falsy"
)

var comparisonOps = map[string]op{
	">": opGt, ">=": opGe, "<": opLt, "<=": opLe,
	"==": opEq, "===": opEq, "!=": opNe, "!==": opNe,
}

var negated = map[op]op{
	opEq: opNe, opNe: opEq,
	opGt: opLe, opLe: opGt,
	opGe: opLt, opLt: opGe,
	opTruthy: opFalsy, opFalsy: opTruthy,
}

var mirrored = map[op]op{
	opEq: opEq, opNe: opNe,
	opGt: opLt, opLt: opGt,
	opGe: opLe, opLe: opGe,
}

// constraint is one requirement on a stubbed name for a condition to take
// a given outcome.
type constraint struct {
	path  []string
	call  bool
	op    op
	value any
}

func (c constraint) key() string {
	k := strings.Join(c.path, ".")
	if c.call {
		k += "()"
	}

	return k
}

// undefinedLiteral marks a comparison against `undefined`.
type undefinedLiteral struct{}

// drive returns the constraints under which n evaluates to want. ok is
// false when no stub assignment can be derived from the expression shape.
func drive(n *sitter.Node, src []byte, want bool) ([]constraint, bool) {
	n = adapter.Unparen(n)
	if n == nil {
		return nil, false
	}

	switch n.Type() {
	case adapter.NodeBinaryExpression:
		return driveBinary(n, src, want)
	case adapter.NodeUnaryExpression:
		if opText(n, src) != "!" {
			return nil, false
		}

		return drive(n.ChildByFieldName("argument"), src, !want)
	case adapter.NodeTrue, adapter.NodeFalse:
		if (n.Type() == adapter.NodeTrue) == want {
			return nil, true
		}

		return nil, false
	}

	path, call, ok := operandPath(n, src)
	if !ok {
		return nil, false
	}

	truth := opTruthy
	if !want {
		truth = opFalsy
	}

	return []constraint{{path: path, call: call, op: truth}}, true
}

func driveBinary(n *sitter.Node, src []byte, want bool) ([]constraint, bool) {
	left := n.ChildByFieldName("left")
	right := n.ChildByFieldName("right")

	switch operator := opText(n, src); operator {
	case "&&", "||":
		if (operator == "&&") == want {
			return driveBoth(left, right, src, want, want)
		}

		// The left operand alone decides; otherwise it must pass control
		// to the right one.
		if lc, ok := drive(left, src, want); ok {
			return lc, true
		}

		return driveBoth(left, right, src, !want, want)
	default:
		cmp, ok := comparisonOps[operator]
		if !ok {
			return nil, false
		}

		operand, lit := left, right

		value, isLit := literal(lit, src)
		if !isLit {
			value, isLit = literal(left, src)
			if !isLit {
				return nil, false
			}

			operand = right
			cmp = mirrored[cmp]
		}

		path, call, ok := operandPath(operand, src)
		if !ok {
			return nil, false
		}

		if !want {
			cmp = negated[cmp]
		}

		return []constraint{{path: path, call: call, op: cmp, value: value}}, true
	}
}

func driveBoth(left, right *sitter.Node, src []byte, wantLeft, wantRight bool) ([]constraint, bool) {
	lc, ok := drive(left, src, wantLeft)
	if !ok {
		return nil, false
	}

	rc, ok := drive(right, src, wantRight)
	if !ok {
		return nil, false
	}

	return append(lc, rc...), true
}

func opText(n *sitter.Node, src []byte) string {
	return adapter.NodeText(n.ChildByFieldName("operator"), src)
}

// operandPath resolves identifiers, member chains and calls on them to the
// stub path they read.
func operandPath(n *sitter.Node, src []byte) ([]string, bool, bool) {
	n = adapter.Unparen(n)
	if n == nil {
		return nil, false, false
	}

	switch n.Type() {
	case adapter.NodeIdentifier:
		return []string{adapter.NodeText(n, src)}, false, true
	case adapter.NodeMemberExpression:
		obj, call, ok := operandPath(n.ChildByFieldName("object"), src)
		if !ok || call {
			return nil, false, false
		}

		prop := n.ChildByFieldName("property")
		if prop == nil || prop.Type() != adapter.NodePropertyIdentifier {
			return nil, false, false
		}

		return append(obj, adapter.NodeText(prop, src)), false, true
	case adapter.NodeCallExpression:
		fn, call, ok := operandPath(n.ChildByFieldName("function"), src)
		if !ok || call {
			return nil, false, false
		}

		return fn, true, true
	default:
		return nil, false, false
	}
}

// literal decodes number, string, boolean, null and undefined literals.
// Numbers decode to float64.
func literal(n *sitter.Node, src []byte) (any, bool) {
	n = adapter.Unparen(n)
	if n == nil {
		return nil, false
	}

	text := adapter.NodeText(n, src)

	switch n.Type() {
	case adapter.NodeNumber:
		v, ok := parseNumber(text)
		return v, ok
	case adapter.NodeString, "template_string":
		if n.Type() == "template_string" && strings.Contains(text, "${") {
			return nil, false
		}

		return unquote(text), true
	case adapter.NodeTrue:
		return true, true
	case adapter.NodeFalse:
		return false, true
	case adapter.NodeNull:
		return nil, true
	case adapter.NodeUndefined:
		return undefinedLiteral{}, true
	case adapter.NodeIdentifier:
		if text == "undefined" {
			return undefinedLiteral{}, true
		}

		return nil, false
	case adapter.NodeUnaryExpression:
		sign := opText(n, src)
		if sign != "-" && sign != "+" {
			return nil, false
		}

		v, ok := literal(n.ChildByFieldName("argument"), src)
		f, isNum := v.(float64)
		if !ok || !isNum {
			return nil, false
		}

		if sign == "-" {
			f = -f
		}

		return f, true
	default:
		return nil, false
	}
}

func parseNumber(text string) (float64, bool) {
	text = strings.ReplaceAll(text, "_", "")
	text = strings.TrimSuffix(text, "n")

	if f, err := strconv.ParseFloat(text, 64); err == nil {
		return f, true
	}

	if i, err := strconv.ParseInt(text, 0, 64); err == nil {
		return float64(i), true
	}

	return 0, false
}

func unquote(text string) string {
	if len(text) < 2 {
		return text
	}

	if text[0] == '"' {
		if s, err := strconv.Unquote(text); err == nil {
			return s
		}
	}

	return text[1 : len(text)-1]
}

// solve finds one stub assignment that satisfies every constraint.
func solve(constraints []constraint) (map[string]any, bool) {
	groups := map[string][]constraint{}

	var keys []string

	for _, c := range constraints {
		k := c.key()
		if _, seen := groups[k]; !seen {
			keys = append(keys, k)
		}

		groups[k] = append(groups[k], c)
	}

	sort.Strings(keys)

	stubs := map[string]any{}

	for _, k := range keys {
		group := groups[k]

		value, ok := pick(group)
		if !ok {
			return nil, false
		}

		if group[0].call {
			value = m.FuncStub{Returns: value}
		}

		if !assign(stubs, group[0].path, value) {
			return nil, false
		}
	}

	return stubs, true
}

// assign stores value at a dotted path, creating nested objects. It fails
// when the path collides with a value already assigned.
func assign(stubs map[string]any, path []string, value any) bool {
	cur := stubs

	for _, part := range path[:len(path)-1] {
		next, exists := cur[part]
		if !exists {
			child := map[string]any{}
			cur[part] = child
			cur = child

			continue
		}

		child, isMap := next.(map[string]any)
		if !isMap {
			return false
		}

		cur = child
	}

	leaf := path[len(path)-1]
	if existing, exists := cur[leaf]; exists {
		_, isMap := existing.(map[string]any)
		_, valueIsMap := value.(map[string]any)

		return isMap && valueIsMap
	}

	cur[leaf] = value

	return true
}

// pick chooses a value for one name. Comparisons decide the type;
// truthiness only filters.
func pick(group []constraint) (any, bool) {
	var (
		compared []constraint
		truth    []op
	)

	for _, c := range group {
		if c.op == opTruthy || c.op == opFalsy {
			truth = append(truth, c.op)
			continue
		}

		compared = append(compared, c)
	}

	compared = dropNullGuards(compared)

	if len(compared) == 0 {
		return pickTruth(truth)
	}

	var (
		value any
		ok    bool
	)

	switch compared[0].value.(type) {
	case float64:
		value, ok = pickNumber(compared)
	case string:
		value, ok = pickString(compared)
	case bool:
		value, ok = pickBool(compared)
	case nil, undefinedLiteral:
		value, ok = pickNullish(compared)
	}

	if !ok {
		return nil, false
	}

	for _, t := range truth {
		if truthy(value) != (t == opTruthy) {
			return nil, false
		}
	}

	return value, true
}

// dropNullGuards removes `!= null` and `!= undefined` constraints when the
// name is also compared against a number, string or boolean. Any such value
// already satisfies the guard.
func dropNullGuards(cs []constraint) []constraint {
	var typed []constraint

	for _, c := range cs {
		if isNullish(c.value) {
			if c.op != opNe {
				return cs
			}

			continue
		}

		typed = append(typed, c)
	}

	if len(typed) == 0 {
		return cs
	}

	return typed
}

func isNullish(v any) bool {
	switch v.(type) {
	case nil, undefinedLiteral:
		return true
	default:
		return false
	}
}

func pickTruth(truth []op) (any, bool) {
	want := truth[0]
	for _, t := range truth[1:] {
		if t != want {
			return nil, false
		}
	}

	return want == opTruthy, true
}

func pickNumber(cs []constraint) (any, bool) {
	lo, hi := math.Inf(-1), math.Inf(1)
	loIncl, hiIncl := false, false

	var (
		eq    *float64
		ne    []float64
		hasLo bool
		hasHi bool
	)

	for _, c := range cs {
		v, isNum := c.value.(float64)
		if !isNum {
			return nil, false
		}

		switch c.op {
		case opEq:
			if eq != nil && *eq != v {
				return nil, false
			}

			eq = &v
		case opNe:
			ne = append(ne, v)
		case opGt, opGe:
			if !hasLo || v > lo || (v == lo && c.op == opGt) {
				lo, loIncl, hasLo = v, c.op == opGe, true
			}
		case opLt, opLe:
			if !hasHi || v < hi || (v == hi && c.op == opLt) {
				hi, hiIncl, hasHi = v, c.op == opLe, true
			}
		}
	}

	fits := func(x float64) bool {
		if x < lo || (x == lo && !loIncl && hasLo) || x > hi || (x == hi && !hiIncl && hasHi) {
			return false
		}

		if eq != nil && x != *eq {
			return false
		}

		for _, n := range ne {
			if x == n {
				return false
			}
		}

		return true
	}

	var candidates []float64

	switch {
	case eq != nil:
		candidates = []float64{*eq}
	case hasLo && hasHi:
		candidates = []float64{lo + delta, (lo + hi) / 2, hi - delta}
	case hasLo:
		candidates = []float64{lo + delta}
	case hasHi:
		candidates = []float64{hi - delta}
	case len(ne) > 0:
		candidates = []float64{ne[0] + delta}
	}

	for _, c := range candidates {
		for _, x := range []float64{c, c + 1, c - 1} {
			if fits(x) {
				return x, true
			}
		}
	}

	return nil, false
}

func pickString(cs []constraint) (any, bool) {
	var (
		eq *string
		ne = map[string]bool{}
	)

	for _, c := range cs {
		s, isStr := c.value.(string)
		if !isStr {
			return nil, false
		}

		switch c.op {
		case opEq:
			if eq != nil && *eq != s {
				return nil, false
			}

			eq = &s
		case opNe:
			ne[s] = true
		default:
			return nil, false
		}
	}

	if eq != nil {
		if ne[*eq] {
			return nil, false
		}

		return *eq, true
	}

	other := otherString
	for ne[other] {
		other += "_"
	}

	return other, true
}

func pickBool(cs []constraint) (any, bool) {
	var value *bool

	for _, c := range cs {
		b, isBool := c.value.(bool)
		if !isBool {
			return nil, false
		}

		want := b
		switch c.op {
		case opEq:
		case opNe:
			want = !b
		default:
			return nil, false
		}

		if value != nil && *value != want {
			return nil, false
		}

		value = &want
	}

	return *value, true
}

func pickNullish(cs []constraint) (any, bool) {
	var value any = nullStandIn

	eqCount := 0

	for _, c := range cs {
		switch c.op {
		case opEq:
			eqCount++

			if _, isUndef := c.value.(undefinedLiteral); isUndef {
				value = m.Undefined
			} else {
				value = nil
			}
		case opNe:
		default:
			return nil, false
		}
	}

	if eqCount > 0 && eqCount != len(cs) {
		return nil, false
	}

	return value, true
}

func truthy(v any) bool {
	switch val := v.(type) {
	case nil, m.UndefinedValue:
		return false
	case bool:
		return val
	case float64:
		return val != 0 && !math.IsNaN(val)
	case string:
		return val != ""
	default:
		return true
	}
}
