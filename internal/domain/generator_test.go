package domain

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mouse-blink/covdungeon/internal/adapter"
	m "github.com/mouse-blink/covdungeon/internal/model"
)

func TestGenerator_Generate(t *testing.T) {
	gen := NewGenerator(adapter.NewTreeSitterParser())

	d := gen.Generate(context.Background(), []byte(checkValueSource), "checkValue")

	require.Len(t, d.Gems, 7)
	require.Len(t, d.Branches, 1)

	analysis := d.Branches[0].Analysis
	assert.Equal(t, "x>10", analysis.ConditionText)
	require.Len(t, analysis.Options, 2)
	assert.Equal(t, map[string]any{"x": 15.0}, analysis.Options[0].Stubs)
	assert.Equal(t, map[string]any{"x": 5.0}, analysis.Options[1].Stubs)
}

func TestGenerator_EveryForkIsAnalyzed(t *testing.T) {
	gen := NewGenerator(adapter.NewTreeSitterParser())

	for name, src := range layoutSources {
		t.Run(name, func(t *testing.T) {
			d := gen.Generate(context.Background(), []byte(src), "")

			for _, b := range d.Branches {
				assert.NotEmpty(t, b.Analysis.Options, "branch %d", b.ID)
			}
		})
	}
}

func TestGenerator_Deterministic(t *testing.T) {
	gen := NewGenerator(adapter.NewTreeSitterParser())

	first := gen.Generate(context.Background(), []byte(layoutSources["loop"]), "sum")
	second := gen.Generate(context.Background(), []byte(layoutSources["loop"]), "sum")

	assert.Equal(t, first, second)
}

func TestGenerator_Fallback(t *testing.T) {
	tests := []struct {
		name string
		src  []byte
	}{
		{name: "syntax error", src: []byte("function broken( {")},
		{name: "invalid utf-8", src: []byte{0xff, 0xfe, 0x00}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewGenerator(adapter.NewTreeSitterParser()).Generate(context.Background(), tt.src, "broken")

			assert.Equal(t, FallbackDungeon(), d)
			assert.Equal(t, 5, d.Width)
			assert.Equal(t, 10, d.Height)
			assert.Empty(t, d.Gems)
			assert.Equal(t, m.TileExit, d.At(d.Exit.X, d.Exit.Y))
		})
	}
}
