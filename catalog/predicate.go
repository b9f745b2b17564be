package catalog

import (
	"context"
	"fmt"

	"github.com/d5/tengo/v2"
)

// predicateVars are the names a Where expression can read.
var predicateVars = map[string]any{
	"name":        "",
	"namespace":   "",
	"difficulty":  "",
	"rank":        0,
	"objects":     0,
	"song":        "",
	"description": "",
}

// Predicate is a compiled Where expression, such as
//
//	objects > 20 && namespace == "user"
//
// difficulty is the difficulty name and rank its position on the scale.
type Predicate struct {
	expr     string
	compiled *tengo.Compiled
}

func CompilePredicate(expr string) (*Predicate, error) {
	script := tengo.NewScript([]byte(fmt.Sprintf("__match__ := (%s)", expr)))
	for name, zero := range predicateVars {
		if err := script.Add(name, zero); err != nil {
			return nil, fmt.Errorf("catalog: where %q: %w", expr, err)
		}
	}
	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("catalog: where %q: %w", expr, err)
	}
	return &Predicate{expr: expr, compiled: compiled}, nil
}

// Match evaluates the expression for e. A result that is not a bool is an
// error.
func (p *Predicate) Match(ctx context.Context, e Entry) (bool, error) {
	values := map[string]any{
		"name":        e.Name,
		"namespace":   e.Namespace.String(),
		"difficulty":  e.Difficulty.String(),
		"rank":        int(e.Difficulty),
		"objects":     e.Objects,
		"song":        e.Song,
		"description": e.Description,
	}
	for name, v := range values {
		if err := p.compiled.Set(name, v); err != nil {
			return false, fmt.Errorf("catalog: where %q: %w", p.expr, err)
		}
	}
	if err := p.compiled.RunContext(ctx); err != nil {
		return false, fmt.Errorf("catalog: where %q: %w", p.expr, err)
	}
	v, ok := p.compiled.Get("__match__").Value().(bool)
	if !ok {
		return false, fmt.Errorf("catalog: where %q: result is %s, not bool", p.expr, p.compiled.Get("__match__").ValueType())
	}
	return v, nil
}
