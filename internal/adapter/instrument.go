package adapter

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	m "github.com/mouse-blink/covdungeon/internal/model"
)

// CoverageVar is the global holding the hit counters of an instrumented
// program.
const CoverageVar = "__dungeon_cov"

// DefaultExportVar receives the value of an anonymous `export default`.
const DefaultExportVar = "__default"

// Instrumented is a rewritten program plus the coverage layout its counters
// follow. Record carries zeroed counters.
type Instrumented struct {
	Code   string
	Record *m.CoverageRecord
}

// Preamble returns the script that declares the counter object for this
// program. It runs before Code in the same runtime.
func (i *Instrumented) Preamble() (string, error) {
	counters := map[string]any{
		"s": i.Record.S,
		"b": i.Record.B,
		"f": i.Record.F,
	}

	data, err := json.Marshal(counters)
	if err != nil {
		return "", fmt.Errorf("failed to encode coverage counters: %w", err)
	}

	return "var " + CoverageVar + " = " + string(data) + ";", nil
}

// Instrumenter rewrites a parsed program so that executing it counts
// statement, branch and function hits.
type Instrumenter interface {
	Instrument(prog *ParsedProgram) (*Instrumented, error)
}

// SourceInstrumenter inserts counter updates into the program text. Ids are
// assigned in document order, so instrumenting the same source twice yields
// the same layout.
type SourceInstrumenter struct{}

// NewInstrumenter constructs a SourceInstrumenter.
func NewInstrumenter() *SourceInstrumenter {
	return &SourceInstrumenter{}
}

// Instrument implements Instrumenter.
func (s *SourceInstrumenter) Instrument(prog *ParsedProgram) (*Instrumented, error) {
	if prog == nil || prog.Root == nil {
		return nil, fmt.Errorf("cannot instrument empty program")
	}

	r := &rewriter{src: prog.Source, record: m.NewCoverageRecord()}
	r.statementList(Statements(prog.Root))

	return &Instrumented{Code: r.apply(), Record: r.record}, nil
}

type edit struct {
	start int
	end   int
	text  string
	seq   int
}

type rewriter struct {
	src    []byte
	edits  []edit
	record *m.CoverageRecord
	nextS  int
	nextB  int
	nextF  int
}

func (r *rewriter) insert(offset uint32, text string) {
	r.replace(offset, offset, text)
}

func (r *rewriter) replace(start, end uint32, text string) {
	r.edits = append(r.edits, edit{start: int(start), end: int(end), text: text, seq: len(r.edits)})
}

// apply splices the edits into the source. Edits at the same offset keep
// the order they were recorded in.
func (r *rewriter) apply() string {
	edits := make([]edit, len(r.edits))
	copy(edits, r.edits)
	sort.SliceStable(edits, func(i, j int) bool {
		if edits[i].start != edits[j].start {
			return edits[i].start < edits[j].start
		}

		return edits[i].seq < edits[j].seq
	})

	var b strings.Builder

	cursor := 0

	for _, e := range edits {
		if e.start > cursor {
			b.Write(r.src[cursor:e.start])
			cursor = e.start
		}

		b.WriteString(e.text)

		if e.end > cursor {
			cursor = e.end
		}
	}

	b.Write(r.src[cursor:])

	return b.String()
}

func (r *rewriter) statementCounter(loc m.Location) string {
	id := r.nextS
	r.nextS++
	r.record.StatementMap[id] = loc
	r.record.S[id] = 0

	return fmt.Sprintf("%s.s[%d]++;", CoverageVar, id)
}

func (r *rewriter) newBranch(kind string, n *sitter.Node, arms []m.Location) int {
	id := r.nextB
	r.nextB++
	r.record.BranchMap[id] = m.BranchMeta{Type: kind, Location: NodeLocation(n), Locations: arms}
	r.record.B[id] = make([]int, len(arms))

	return id
}

func branchCounter(id, arm int) string {
	return fmt.Sprintf("%s.b[%d][%d]++;", CoverageVar, id, arm)
}

func (r *rewriter) statementList(stmts []*sitter.Node) {
	for _, stmt := range stmts {
		r.statement(stmt)
	}
}

// statement counts and rewrites one statement of a statement list.
func (r *rewriter) statement(n *sitter.Node) {
	switch n.Type() {
	case NodeEmptyStatement:
		return
	case NodeImportStatement:
		r.replace(n.StartByte(), n.EndByte(), "")
		return
	case NodeFunctionDeclaration, NodeGeneratorDecl, NodeClassDeclaration:
		r.visit(n)
		return
	case NodeExportStatement:
		r.export(n)
		return
	}

	r.insert(n.StartByte(), r.statementCounter(NodeLocation(n)))
	r.visit(n)
}

func (r *rewriter) export(n *sitter.Node) {
	if decl := n.ChildByFieldName("declaration"); decl != nil {
		r.replace(n.StartByte(), decl.StartByte(), "")
		r.statement(decl)

		return
	}

	if value := n.ChildByFieldName("value"); value != nil {
		r.insert(n.StartByte(), r.statementCounter(NodeLocation(value)))
		r.replace(n.StartByte(), value.StartByte(), "var "+DefaultExportVar+" = ")
		r.visit(value)

		return
	}

	r.replace(n.StartByte(), n.EndByte(), "")
}

// body rewrites a statement in single-statement position (if arms, loop
// bodies). prefix is emitted first inside the block.
func (r *rewriter) body(n *sitter.Node, prefix string) {
	if n.Type() == NodeStatementBlock {
		if prefix != "" {
			r.insert(n.StartByte()+1, prefix)
		}

		r.statementList(Statements(n))

		return
	}

	r.insert(n.StartByte(), "{"+prefix)
	r.statement(n)
	r.insert(n.EndByte(), "}")
}

// visit walks a node looking for nested statement lists, branches and
// functions.
func (r *rewriter) visit(n *sitter.Node) {
	if n == nil {
		return
	}

	switch t := n.Type(); {
	case t == NodeStatementBlock:
		r.statementList(Statements(n))
	case t == NodeIfStatement:
		r.ifStatement(n)
	case t == NodeSwitchStatement:
		r.switchStatement(n)
	case t == NodeForStatement || t == NodeForInStatement || t == NodeWhileStatement || t == NodeDoStatement:
		r.loop(n)
	case t == NodeLabeledStatement:
		r.labeled(n)
	case t == NodeTernaryExpression:
		r.ternary(n)
	case t == NodeBinaryExpression && isLogical(n):
		r.logical(n)
	case IsFunction(t):
		r.function(n)
	default:
		r.children(n)
	}
}

func (r *rewriter) children(n *sitter.Node) {
	for i := 0; i < int(n.NamedChildCount()); i++ {
		r.visit(n.NamedChild(i))
	}
}

func (r *rewriter) ifStatement(n *sitter.Node) {
	cons := n.ChildByFieldName("consequence")
	alt := ElseStatement(n)

	arms := []m.Location{NodeLocation(cons), NodeLocation(n)}
	if alt != nil {
		arms[1] = NodeLocation(alt)
	}

	id := r.newBranch("if", n, arms)

	r.visit(n.ChildByFieldName("condition"))

	if cons != nil {
		r.body(cons, branchCounter(id, 0))
	}

	if alt != nil {
		r.body(alt, branchCounter(id, 1))
		return
	}

	r.insert(n.EndByte(), " else { "+branchCounter(id, 1)+" }")
}

func (r *rewriter) switchStatement(n *sitter.Node) {
	cases := SwitchCases(n)

	arms := make([]m.Location, len(cases))
	for i, c := range cases {
		arms[i] = NodeLocation(c)
	}

	id := r.newBranch("switch", n, arms)

	r.visit(n.ChildByFieldName("value"))

	for i, c := range cases {
		r.visit(c.ChildByFieldName("value"))

		if colon := CaseColon(c); colon != nil {
			r.insert(colon.EndByte(), branchCounter(id, i))
		}

		r.statementList(CaseStatements(c))
	}
}

func (r *rewriter) loop(n *sitter.Node) {
	for _, field := range []string{"initializer", "condition", "increment", "left", "right"} {
		r.visit(n.ChildByFieldName(field))
	}

	if body := n.ChildByFieldName("body"); body != nil {
		r.body(body, "")
	}
}

// labeled leaves the label attached to its statement so break and continue
// targets survive the rewrite.
func (r *rewriter) labeled(n *sitter.Node) {
	body := n.ChildByFieldName("body")
	if body == nil {
		return
	}

	r.visit(body)
}

func (r *rewriter) ternary(n *sitter.Node) {
	cons := n.ChildByFieldName("consequence")
	alt := n.ChildByFieldName("alternative")
	id := r.newBranch("cond-expr", n, []m.Location{NodeLocation(cons), NodeLocation(alt)})

	r.visit(n.ChildByFieldName("condition"))
	r.wrapArm(cons, id, 0)
	r.wrapArm(alt, id, 1)
}

func (r *rewriter) logical(n *sitter.Node) {
	left := n.ChildByFieldName("left")
	right := n.ChildByFieldName("right")
	id := r.newBranch("binary-expr", n, []m.Location{NodeLocation(left), NodeLocation(right)})

	r.wrapArm(left, id, 0)
	r.wrapArm(right, id, 1)
}

func (r *rewriter) wrapArm(n *sitter.Node, id, arm int) {
	if n == nil {
		return
	}

	r.insert(n.StartByte(), fmt.Sprintf("(%s.b[%d][%d]++, ", CoverageVar, id, arm))
	r.visit(n)
	r.insert(n.EndByte(), ")")
}

func (r *rewriter) function(n *sitter.Node) {
	id := r.nextF
	r.nextF++
	r.record.FnMap[id] = m.FunctionMeta{Name: FunctionName(n, r.src), Location: NodeLocation(n)}
	r.record.F[id] = 0

	r.visit(n.ChildByFieldName("parameters"))

	counter := fmt.Sprintf("%s.f[%d]++;", CoverageVar, id)

	body := n.ChildByFieldName("body")
	if body == nil {
		return
	}

	if body.Type() == NodeStatementBlock {
		r.insert(body.StartByte()+1, counter)
		r.statementList(Statements(body))

		return
	}

	// Expression-bodied arrow function.
	r.insert(body.StartByte(), "{"+counter+r.statementCounter(NodeLocation(body))+"return (")
	r.visit(body)
	r.insert(body.EndByte(), ");}")
}

func isLogical(n *sitter.Node) bool {
	op := n.ChildByFieldName("operator")
	if op == nil {
		return false
	}

	switch op.Type() {
	case "&&", "||", "??":
		return true
	default:
		return false
	}
}
