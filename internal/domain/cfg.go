package domain

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/mouse-blink/covdungeon/internal/adapter"
	m "github.com/mouse-blink/covdungeon/internal/model"
)

const summaryLimit = 40

// Node is a control-flow graph node. The implementations in this file are
// the complete set; layout switches over them exhaustively.
type Node interface {
	cfgNode()
}

// Root is an ordered sequence of nodes: a function body or one arm of a fork.
type Root struct {
	Children []Node
}

// Statement is a plain statement inside a Block.
type Statement struct {
	Location m.Location
	Summary  string
}

// Block is a run of consecutive plain statements.
type Block struct {
	Location   m.Location
	Statements []Statement
}

// Branch is an if statement. Alternate is empty, never nil, when there is
// no else.
type Branch struct {
	Location      m.Location
	Condition     *sitter.Node
	ConditionText string
	Consequent    *Root
	Alternate     *Root
}

// Case is one arm of a Switch. Test is nil for default.
type Case struct {
	Test     *sitter.Node
	TestText string
	Body     *Root
}

// Switch is an N-ary switch statement.
type Switch struct {
	Location         m.Location
	Discriminant     *sitter.Node
	DiscriminantText string
	Cases            []Case
}

// Loop is any loop statement; it lays out as a DAG with a visual loop-back.
type Loop struct {
	Location  m.Location
	Kind      string
	Condition *sitter.Node
	Summary   string
	Body      *Root
}

// Try is a try statement. CatchBody and FinallyBody are nil when absent.
type Try struct {
	Location    m.Location
	TryBody     *Root
	CatchBody   *Root
	FinallyBody *Root
}

// Return is a return statement; it always gets a tile of its own.
type Return struct {
	Location m.Location
	Summary  string
}

func (*Root) cfgNode()   {}
func (*Block) cfgNode()  {}
func (*Branch) cfgNode() {}
func (*Switch) cfgNode() {}
func (*Loop) cfgNode()   {}
func (*Try) cfgNode()    {}
func (*Return) cfgNode() {}

// GraphBuilder turns a parsed program into a control-flow graph.
type GraphBuilder interface {
	// Build returns the graph of the function called fnName, of the first
	// function when there is no such function, or a single implicit block
	// of the top-level statements when the program has no function at all.
	Build(prog *adapter.ParsedProgram, fnName string) *Root
}

type graphBuilder struct{}

// NewGraphBuilder constructs a GraphBuilder.
func NewGraphBuilder() GraphBuilder {
	return &graphBuilder{}
}

func (g *graphBuilder) Build(prog *adapter.ParsedProgram, fnName string) *Root {
	b := &cfgBuilder{src: prog.Source}

	info := adapter.FindFunction(prog.Root, prog.Source, fnName)
	if info == nil || info.Body == nil {
		return b.implicitBlock(adapter.Statements(prog.Root))
	}

	if info.Body.Type() != adapter.NodeStatementBlock {
		return &Root{Children: []Node{&Return{
			Location: adapter.NodeLocation(info.Body),
			Summary:  adapter.Summary(info.Body, prog.Source, summaryLimit),
		}}}
	}

	return b.list(adapter.Statements(info.Body))
}

type cfgBuilder struct {
	src []byte
}

func (b *cfgBuilder) statement(n *sitter.Node) Statement {
	return Statement{
		Location: adapter.NodeLocation(n),
		Summary:  adapter.Summary(n, b.src, summaryLimit),
	}
}

func (b *cfgBuilder) implicitBlock(stmts []*sitter.Node) *Root {
	block := &Block{}

	for _, stmt := range stmts {
		if stmt.Type() == adapter.NodeEmptyStatement {
			continue
		}

		block.Statements = append(block.Statements, b.statement(unwrapExport(stmt)))
	}

	if len(block.Statements) == 0 {
		return &Root{}
	}

	block.Location = span(block.Statements)

	return &Root{Children: []Node{block}}
}

// body builds the graph of a single-statement position such as an if arm.
func (b *cfgBuilder) body(n *sitter.Node) *Root {
	if n == nil {
		return &Root{}
	}

	return b.list(adapter.BodyStatements(n))
}

// list scans a statement list, collecting plain statements into blocks and
// flushing them at every control-flow statement.
func (b *cfgBuilder) list(stmts []*sitter.Node) *Root {
	root := &Root{}

	var current []Statement

	flush := func() {
		if len(current) == 0 {
			return
		}

		root.Children = append(root.Children, &Block{Location: span(current), Statements: current})
		current = nil
	}

	emit := func(n Node) {
		flush()
		root.Children = append(root.Children, n)
	}

	var scan func(stmts []*sitter.Node)

	scan = func(stmts []*sitter.Node) {
		for _, stmt := range stmts {
			node := unwrapStatement(stmt)

			loc := adapter.NodeLocation(stmt)
			if stmt.Type() == adapter.NodeExportStatement {
				loc = adapter.NodeLocation(node)
			}

			switch node.Type() {
			case adapter.NodeEmptyStatement, adapter.NodeComment:
			case adapter.NodeStatementBlock:
				scan(adapter.Statements(node))
			case adapter.NodeIfStatement:
				emit(b.branch(node, loc))
			case adapter.NodeSwitchStatement:
				emit(b.switchNode(node, loc))
			case adapter.NodeForStatement, adapter.NodeForInStatement, adapter.NodeWhileStatement, adapter.NodeDoStatement:
				emit(b.loop(node, stmt, loc))
			case adapter.NodeTryStatement:
				emit(b.try(node, loc))
			case adapter.NodeReturnStatement:
				emit(&Return{Location: loc, Summary: adapter.Summary(node, b.src, summaryLimit)})
			default:
				current = append(current, Statement{Location: loc, Summary: adapter.Summary(stmt, b.src, summaryLimit)})
			}
		}
	}

	scan(stmts)
	flush()

	return root
}

// unwrapStatement looks through labels and export wrappers to the statement
// that decides control flow.
func unwrapStatement(n *sitter.Node) *sitter.Node {
	for {
		switch n.Type() {
		case adapter.NodeLabeledStatement:
			body := n.ChildByFieldName("body")
			if body == nil {
				return n
			}

			n = body
		case adapter.NodeExportStatement:
			decl := n.ChildByFieldName("declaration")
			if decl == nil {
				return n
			}

			n = decl
		default:
			return n
		}
	}
}

func unwrapExport(n *sitter.Node) *sitter.Node {
	if n.Type() != adapter.NodeExportStatement {
		return n
	}

	if decl := n.ChildByFieldName("declaration"); decl != nil {
		return decl
	}

	if value := n.ChildByFieldName("value"); value != nil {
		return value
	}

	return n
}

func (b *cfgBuilder) branch(n *sitter.Node, loc m.Location) *Branch {
	cond := adapter.Unparen(n.ChildByFieldName("condition"))

	return &Branch{
		Location:      loc,
		Condition:     cond,
		ConditionText: adapter.NodeText(cond, b.src),
		Consequent:    b.body(n.ChildByFieldName("consequence")),
		Alternate:     b.body(adapter.ElseStatement(n)),
	}
}

func (b *cfgBuilder) switchNode(n *sitter.Node, loc m.Location) *Switch {
	disc := adapter.Unparen(n.ChildByFieldName("value"))

	sw := &Switch{
		Location:         loc,
		Discriminant:     disc,
		DiscriminantText: adapter.NodeText(disc, b.src),
	}

	for _, c := range adapter.SwitchCases(n) {
		test := c.ChildByFieldName("value")
		sw.Cases = append(sw.Cases, Case{
			Test:     test,
			TestText: adapter.NodeText(test, b.src),
			Body:     b.list(adapter.CaseStatements(c)),
		})
	}

	return sw
}

func (b *cfgBuilder) loop(n, outer *sitter.Node, loc m.Location) *Loop {
	var cond *sitter.Node

	switch n.Type() {
	case adapter.NodeForInStatement:
		cond = n.ChildByFieldName("right")
	default:
		cond = adapter.Unparen(n.ChildByFieldName("condition"))
	}

	return &Loop{
		Location:  loc,
		Kind:      n.Type(),
		Condition: cond,
		Summary:   adapter.Summary(outer, b.src, summaryLimit),
		Body:      b.body(n.ChildByFieldName("body")),
	}
}

func (b *cfgBuilder) try(n *sitter.Node, loc m.Location) *Try {
	t := &Try{Location: loc, TryBody: b.body(n.ChildByFieldName("body"))}

	if handler := n.ChildByFieldName("handler"); handler != nil {
		t.CatchBody = b.body(handler.ChildByFieldName("body"))
	}

	if finalizer := n.ChildByFieldName("finalizer"); finalizer != nil {
		t.FinallyBody = b.body(finalizer.ChildByFieldName("body"))
	}

	return t
}

func span(stmts []Statement) m.Location {
	if len(stmts) == 0 {
		return m.Location{}
	}

	return m.Location{Start: stmts[0].Location.Start, End: stmts[len(stmts)-1].Location.End}
}
