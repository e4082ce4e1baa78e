// Package validate checks generated Grafana dashboards against the
// exporter's metric inventory, so a renamed metric breaks generation
// instead of silently flatlining a panel.
package validate

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/grafana/grafana-foundation-sdk/go/dashboard"
	"github.com/prometheus/prometheus/promql/parser"
)

// Result collects validation findings. Errors fail validation; warnings
// flag panels worth a look.
type Result struct {
	Errors   []string
	Warnings []string
}

// Ok reports whether validation found no errors.
func (r Result) Ok() bool { return len(r.Errors) == 0 }

type panelJSON struct {
	Title   string       `json:"title"`
	Targets []targetJSON `json:"targets"`
	Panels  []panelJSON  `json:"panels"`
}

type targetJSON struct {
	Expr string `json:"expr"`
}

// Dashboard validates every query expression in a built dashboard: each
// must parse as PromQL and reference only metrics in known. The check
// runs on the serialized form, which is also what Grafana consumes.
func Dashboard(dash dashboard.Dashboard, known map[string]bool) Result {
	var res Result

	raw, err := json.Marshal(dash)
	if err != nil {
		res.Errors = append(res.Errors, fmt.Sprintf("marshaling dashboard: %v", err))
		return res
	}

	var doc struct {
		Panels []panelJSON `json:"panels"`
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		res.Errors = append(res.Errors, fmt.Sprintf("parsing dashboard JSON: %v", err))
		return res
	}

	for _, p := range doc.Panels {
		res.checkPanel(p, known)
	}
	return res
}

func (r *Result) checkPanel(p panelJSON, known map[string]bool) {
	for _, t := range p.Targets {
		if strings.TrimSpace(t.Expr) == "" {
			r.Warnings = append(r.Warnings, fmt.Sprintf("panel %q has a target without an expression", p.Title))
			continue
		}
		for _, problem := range Expr(t.Expr, known) {
			r.Errors = append(r.Errors, fmt.Sprintf("panel %q: %s", p.Title, problem))
		}
	}
	// Row panels nest their members.
	for _, child := range p.Panels {
		r.checkPanel(child, known)
	}
}

// Expr parses a single PromQL expression and returns one problem per
// unknown metric, or the parse failure.
func Expr(expr string, known map[string]bool) []string {
	ast, err := parser.ParseExpr(expr)
	if err != nil {
		return []string{fmt.Sprintf("invalid PromQL %q: %v", expr, err)}
	}

	var problems []string
	parser.Inspect(ast, func(node parser.Node, _ []parser.Node) error {
		vs, ok := node.(*parser.VectorSelector)
		if !ok || vs.Name == "" {
			return nil
		}
		if !knownMetric(vs.Name, known) {
			problems = append(problems, fmt.Sprintf("unknown metric %q in %q", vs.Name, expr))
		}
		return nil
	})
	return problems
}

// knownMetric matches histogram series against their base metric name.
func knownMetric(name string, known map[string]bool) bool {
	if known[name] {
		return true
	}
	for _, suffix := range []string{"_bucket", "_sum", "_count"} {
		if base, ok := strings.CutSuffix(name, suffix); ok && known[base] {
			return true
		}
	}
	return false
}
