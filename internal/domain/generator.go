package domain

import (
	"context"
	"log/slog"

	"github.com/mouse-blink/covdungeon/internal/adapter"
	"github.com/mouse-blink/covdungeon/internal/logging"
	m "github.com/mouse-blink/covdungeon/internal/model"
)

// Generator turns a level's source into a dungeon.
type Generator interface {
	// Generate never fails: source that does not parse yields the fallback
	// dungeon.
	Generate(ctx context.Context, source []byte, fnName string) *m.Dungeon
}

type generator struct {
	parser   adapter.Parser
	builder  GraphBuilder
	layout   LayoutEngine
	analyzer BranchAnalyzer
}

// NewGenerator wires the layout pipeline around parser.
func NewGenerator(parser adapter.Parser) Generator {
	return &generator{
		parser:   parser,
		builder:  NewGraphBuilder(),
		layout:   NewLayoutEngine(),
		analyzer: NewBranchAnalyzer(),
	}
}

func (g *generator) Generate(ctx context.Context, source []byte, fnName string) *m.Dungeon {
	logger := logging.FromContext(ctx)

	prog, err := g.parser.Parse(ctx, source)
	if err != nil {
		logger.Warn("failed to parse level, using fallback map",
			slog.String("function", fnName),
			slog.Any("error", err))

		return FallbackDungeon()
	}
	defer prog.Close()

	root := g.builder.Build(prog, fnName)
	placed := g.layout.Layout(root)
	dungeon := placed.Dungeon

	for _, fork := range placed.Forks {
		dungeon.Branches[fork.Branch].Analysis = g.analyzer.Analyze(fork.Node, prog.Source)
	}

	logger.Debug("generated dungeon",
		slog.String("function", fnName),
		slog.Int("width", dungeon.Width),
		slog.Int("height", dungeon.Height),
		slog.Int("gems", len(dungeon.Gems)),
		slog.Int("branches", len(dungeon.Branches)))

	return dungeon
}
