package kfbx

import (
	"context"
	"fmt"
	"strings"

	"github.com/twinfer/kfbx/internal/cel"
	"github.com/twinfer/kfbx/pkg/fbx"
)

// Match is a node selected by a query together with its path from the
// top-level ancestor.
type Match struct {
	Path []string `json:"path" yaml:"path"`
	Node fbx.Node `json:"node" yaml:"node"`
}

// PathString joins the path with "/".
func (m Match) PathString() string {
	return strings.Join(m.Path, "/")
}

func (d *Decoder) queries() (*cel.ExpressionPool, error) {
	d.poolOnce.Do(func() {
		d.pool, d.poolErr = cel.NewExpressionPool()
		if d.poolErr == nil {
			d.pool.SetLimit(d.options.queryCacheSize)
		}
	})
	return d.pool, d.poolErr
}

// Query walks nodes depth-first and returns every node for which the CEL
// predicate expr holds. Nodes whose evaluation fails, for example by indexing
// past the last property, do not match.
func (d *Decoder) Query(ctx context.Context, nodes []fbx.Node, expr string) ([]Match, error) {
	pool, err := d.queries()
	if err != nil {
		return nil, err
	}
	program, err := pool.GetExpression(expr)
	if err != nil {
		return nil, fmt.Errorf("compiling query: %w", err)
	}

	var matches []Match
	err = fbx.Walk(nodes, func(path []string, n fbx.Node) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		ok, err := pool.Match(program, cel.Vars(path, n))
		if err != nil {
			if d.options.debugMode {
				d.logger.DebugContext(ctx, "query evaluation failed", "path", strings.Join(path, "/"), "error", err)
			}
			return nil
		}
		if ok {
			matches = append(matches, Match{Path: path, Node: n})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if d.options.debugMode {
		d.logger.DebugContext(ctx, "query finished", "expr", expr, "matches", len(matches))
	}
	return matches, nil
}

// Filter keeps the nodes of nodes matching expr, searching the whole tree.
// Matched nodes keep their children.
func (d *Decoder) Filter(ctx context.Context, nodes []fbx.Node, expr string) ([]fbx.Node, error) {
	matches, err := d.Query(ctx, nodes, expr)
	if err != nil {
		return nil, err
	}
	out := make([]fbx.Node, len(matches))
	for i, m := range matches {
		out[i] = m.Node
	}
	return out, nil
}
