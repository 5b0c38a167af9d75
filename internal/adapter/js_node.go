package adapter

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	m "github.com/mouse-blink/covdungeon/internal/model"
)

// Node type names of the tree-sitter JavaScript grammar used across the
// pipeline.
const (
	NodeProgram             = "program"
	NodeStatementBlock      = "statement_block"
	NodeIfStatement         = "if_statement"
	NodeElseClause          = "else_clause"
	NodeSwitchStatement     = "switch_statement"
	NodeSwitchBody          = "switch_body"
	NodeSwitchCase          = "switch_case"
	NodeSwitchDefault       = "switch_default"
	NodeForStatement        = "for_statement"
	NodeForInStatement      = "for_in_statement"
	NodeWhileStatement      = "while_statement"
	NodeDoStatement         = "do_statement"
	NodeTryStatement        = "try_statement"
	NodeCatchClause         = "catch_clause"
	NodeFinallyClause       = "finally_clause"
	NodeReturnStatement     = "return_statement"
	NodeLabeledStatement    = "labeled_statement"
	NodeEmptyStatement      = "empty_statement"
	NodeExportStatement     = "export_statement"
	NodeImportStatement     = "import_statement"
	NodeComment             = "comment"
	NodeParenthesized       = "parenthesized_expression"
	NodeBinaryExpression    = "binary_expression"
	NodeUnaryExpression     = "unary_expression"
	NodeCallExpression      = "call_expression"
	NodeMemberExpression    = "member_expression"
	NodeTernaryExpression   = "ternary_expression"
	NodeIdentifier          = "identifier"
	NodePropertyIdentifier  = "property_identifier"
	NodeNumber              = "number"
	NodeString              = "string"
	NodeTrue                = "true"
	NodeFalse               = "false"
	NodeNull                = "null"
	NodeUndefined           = "undefined"
	NodeFunctionDeclaration = "function_declaration"
	NodeGeneratorDecl       = "generator_function_declaration"
	NodeFunctionExpression  = "function_expression"
	NodeFunctionLegacy      = "function"
	NodeGeneratorFunction   = "generator_function"
	NodeArrowFunction       = "arrow_function"
	NodeMethodDefinition    = "method_definition"
	NodeClassDeclaration    = "class_declaration"
	NodeVariableDeclarator  = "variable_declarator"
	NodeAssignment          = "assignment_expression"
	NodePair                = "pair"
	NodeFormalParameters    = "formal_parameters"
	NodeAssignmentPattern   = "assignment_pattern"
	NodeRestPattern         = "rest_pattern"
)

// NodeText returns the source text covered by n.
func NodeText(n *sitter.Node, src []byte) string {
	if n == nil {
		return ""
	}

	start, end := int(n.StartByte()), int(n.EndByte())
	if start < 0 || end > len(src) || start > end {
		return ""
	}

	return string(src[start:end])
}

// NodeLocation converts tree-sitter points into a model location.
func NodeLocation(n *sitter.Node) m.Location {
	if n == nil {
		return m.Location{}
	}

	start, end := n.StartPoint(), n.EndPoint()

	return m.Location{
		Start: m.Position{Line: int(start.Row) + 1, Column: int(start.Column)},
		End:   m.Position{Line: int(end.Row) + 1, Column: int(end.Column)},
	}
}

// Summary returns the first line of the node text, trimmed to limit runes.
func Summary(n *sitter.Node, src []byte, limit int) string {
	text := strings.TrimSpace(NodeText(n, src))
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		text = strings.TrimSpace(text[:i])
	}

	runes := []rune(text)
	if limit > 0 && len(runes) > limit {
		return string(runes[:limit-1]) + "…"
	}

	return text
}

// Statements returns the statements directly inside a statement container
// (program or statement_block), skipping comments.
func Statements(n *sitter.Node) []*sitter.Node {
	if n == nil {
		return nil
	}

	count := int(n.NamedChildCount())
	out := make([]*sitter.Node, 0, count)

	for i := 0; i < count; i++ {
		child := n.NamedChild(i)
		if child == nil || child.Type() == NodeComment {
			continue
		}

		out = append(out, child)
	}

	return out
}

// BodyStatements returns the statements of a single-statement body: the
// contents of a block, or the statement itself.
func BodyStatements(n *sitter.Node) []*sitter.Node {
	if n == nil {
		return nil
	}

	if n.Type() == NodeStatementBlock {
		return Statements(n)
	}

	return []*sitter.Node{n}
}

// CaseStatements returns the statements following the colon of a
// switch_case or switch_default.
func CaseStatements(n *sitter.Node) []*sitter.Node {
	colon := CaseColon(n)
	if colon == nil {
		return nil
	}

	var out []*sitter.Node

	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		if child == nil || !child.IsNamed() || child.StartByte() < colon.EndByte() {
			continue
		}

		if child.Type() == NodeComment {
			continue
		}

		out = append(out, child)
	}

	return out
}

// CaseColon returns the ':' token of a switch case.
func CaseColon(n *sitter.Node) *sitter.Node {
	if n == nil {
		return nil
	}

	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		if child != nil && !child.IsNamed() && child.Type() == ":" {
			return child
		}
	}

	return nil
}

// SwitchCases returns the switch_case and switch_default nodes of a switch.
func SwitchCases(n *sitter.Node) []*sitter.Node {
	body := n.ChildByFieldName("body")
	if body == nil {
		return nil
	}

	var out []*sitter.Node

	for i := 0; i < int(body.NamedChildCount()); i++ {
		child := body.NamedChild(i)
		if child == nil {
			continue
		}

		if t := child.Type(); t == NodeSwitchCase || t == NodeSwitchDefault {
			out = append(out, child)
		}
	}

	return out
}

// ElseStatement returns the statement inside an if statement's else clause.
func ElseStatement(ifNode *sitter.Node) *sitter.Node {
	alt := ifNode.ChildByFieldName("alternative")
	if alt == nil {
		return nil
	}

	if alt.Type() != NodeElseClause {
		return alt
	}

	for _, stmt := range Statements(alt) {
		return stmt
	}

	return nil
}

// Unparen strips any number of enclosing parentheses.
func Unparen(n *sitter.Node) *sitter.Node {
	for n != nil && n.Type() == NodeParenthesized {
		inner := firstNamed(n)
		if inner == nil {
			return n
		}

		n = inner
	}

	return n
}

func firstNamed(n *sitter.Node) *sitter.Node {
	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		if child != nil && child.Type() != NodeComment {
			return child
		}
	}

	return nil
}

// IsFunction reports whether the node type introduces a function body.
func IsFunction(t string) bool {
	switch t {
	case NodeFunctionDeclaration, NodeGeneratorDecl, NodeFunctionExpression, NodeFunctionLegacy,
		NodeGeneratorFunction, NodeArrowFunction, NodeMethodDefinition:
		return true
	default:
		return false
	}
}

// FunctionInfo describes a function located in a program.
type FunctionInfo struct {
	Node   *sitter.Node
	Name   string
	Body   *sitter.Node
	Params []string
}

// FindFunction returns the function called name, or the first function in
// document order when name is empty or not found. It returns nil when the
// program defines no function.
func FindFunction(root *sitter.Node, src []byte, name string) *FunctionInfo {
	var first, named *sitter.Node

	walk(root, func(n *sitter.Node) bool {
		if named != nil {
			return false
		}

		if !IsFunction(n.Type()) {
			return true
		}

		if first == nil {
			first = n
		}

		if name != "" && FunctionName(n, src) == name {
			named = n
			return false
		}

		return true
	})

	target := named
	if target == nil {
		target = first
	}

	if target == nil {
		return nil
	}

	return &FunctionInfo{
		Node:   target,
		Name:   FunctionName(target, src),
		Body:   target.ChildByFieldName("body"),
		Params: FunctionParams(target, src),
	}
}

// FunctionName resolves the name a function is reachable by: its own name,
// or the variable, property or assignment target it is bound to.
func FunctionName(n *sitter.Node, src []byte) string {
	if nameNode := n.ChildByFieldName("name"); nameNode != nil {
		return NodeText(nameNode, src)
	}

	parent := n.Parent()
	if parent == nil {
		return ""
	}

	switch parent.Type() {
	case NodeVariableDeclarator:
		return NodeText(parent.ChildByFieldName("name"), src)
	case NodeAssignment:
		return NodeText(parent.ChildByFieldName("left"), src)
	case NodePair:
		return NodeText(parent.ChildByFieldName("key"), src)
	default:
		return ""
	}
}

// FunctionParams returns declared parameter names in order. Destructured
// parameters are reported by their source text.
func FunctionParams(n *sitter.Node, src []byte) []string {
	if single := n.ChildByFieldName("parameter"); single != nil {
		return []string{NodeText(single, src)}
	}

	params := n.ChildByFieldName("parameters")
	if params == nil {
		return nil
	}

	var out []string

	for i := 0; i < int(params.NamedChildCount()); i++ {
		p := params.NamedChild(i)
		if p == nil || p.Type() == NodeComment {
			continue
		}

		switch p.Type() {
		case NodeIdentifier:
			out = append(out, NodeText(p, src))
		case NodeAssignmentPattern:
			out = append(out, NodeText(p.ChildByFieldName("left"), src))
		case NodeRestPattern:
			out = append(out, strings.TrimPrefix(NodeText(p, src), "..."))
		default:
			out = append(out, NodeText(p, src))
		}
	}

	return out
}

// walk visits nodes in document order. Returning false from fn skips the
// node's children.
func walk(n *sitter.Node, fn func(*sitter.Node) bool) {
	if n == nil {
		return
	}

	if !fn(n) {
		return
	}

	for i := 0; i < int(n.NamedChildCount()); i++ {
		walk(n.NamedChild(i), fn)
	}
}
