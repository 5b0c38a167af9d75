package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mouse-blink/covdungeon/internal/domain"
	m "github.com/mouse-blink/covdungeon/internal/model"
)

// parseStubs decodes repeated name=value flags. Values are JSON when they
// parse as JSON and plain strings otherwise; a dotted name builds nested
// objects.
func parseStubs(pairs []string) (map[string]any, error) {
	stubs := map[string]any{}

	for _, pair := range pairs {
		name, raw, ok := strings.Cut(pair, "=")
		name = strings.TrimSpace(name)

		if !ok || name == "" {
			return nil, fmt.Errorf("invalid stub %q, expected name=value", pair)
		}

		if err := setStub(stubs, strings.Split(name, "."), parseStubValue(raw)); err != nil {
			return nil, fmt.Errorf("invalid stub %q: %w", pair, err)
		}
	}

	return stubs, nil
}

func parseStubValue(raw string) any {
	if strings.HasPrefix(raw, domain.ScriptPrefix) {
		return raw
	}

	if raw == "undefined" {
		return m.Undefined
	}

	var v any
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return raw
	}

	return v
}

func setStub(stubs map[string]any, path []string, value any) error {
	for _, part := range path[:len(path)-1] {
		next, exists := stubs[part]
		if !exists {
			child := map[string]any{}
			stubs[part] = child
			stubs = child

			continue
		}

		child, isMap := next.(map[string]any)
		if !isMap {
			return fmt.Errorf("%s is already set to a value", part)
		}

		stubs = child
	}

	stubs[path[len(path)-1]] = value

	return nil
}

func levelArgs(args []string, fn string) domain.LevelArgs {
	return domain.LevelArgs{Path: m.Path(args[0]), Function: fn}
}
