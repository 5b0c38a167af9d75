package adapter

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
)

// ErrSyntax reports source that tree-sitter could only parse with errors.
var ErrSyntax = errors.New("source contains syntax errors")

// ErrInvalidContent reports source that is not valid UTF-8.
var ErrInvalidContent = errors.New("source is not valid UTF-8")

// ParsedProgram is a JavaScript syntax tree together with the bytes it was
// parsed from. Nodes stay valid until Close.
type ParsedProgram struct {
	Source []byte
	Root   *sitter.Node
	tree   *sitter.Tree
}

// Text returns the source text covered by n.
func (p *ParsedProgram) Text(n *sitter.Node) string {
	return NodeText(n, p.Source)
}

// Close releases the underlying tree.
func (p *ParsedProgram) Close() {
	if p != nil && p.tree != nil {
		p.tree.Close()
		p.tree = nil
	}
}

// Parser encapsulates JavaScript parsing so the domain layer can build control
// flow without depending on a concrete grammar binding.
type Parser interface {
	// Parse builds a syntax tree. Source with syntax errors yields ErrSyntax.
	Parse(ctx context.Context, source []byte) (*ParsedProgram, error)
}

// TreeSitterParser implements Parser with the tree-sitter JavaScript grammar.
// A fresh tree-sitter parser is created per call, so it is safe for
// concurrent use.
type TreeSitterParser struct{}

// NewTreeSitterParser constructs a TreeSitterParser.
func NewTreeSitterParser() *TreeSitterParser {
	return &TreeSitterParser{}
}

// Parse implements Parser.
func (p *TreeSitterParser) Parse(ctx context.Context, source []byte) (*ParsedProgram, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse canceled before start: %w", err)
	}

	if !utf8.Valid(source) {
		return nil, ErrInvalidContent
	}

	parser := sitter.NewParser()
	parser.SetLanguage(javascript.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, source)
	if err != nil {
		return nil, fmt.Errorf("tree-sitter parse failed: %w", err)
	}

	root := tree.RootNode()
	if root == nil {
		tree.Close()
		return nil, fmt.Errorf("tree-sitter returned nil root node")
	}

	if root.HasError() {
		tree.Close()
		return nil, ErrSyntax
	}

	return &ParsedProgram{Source: source, Root: root, tree: tree}, nil
}
