// Package report shapes sync results for presentation. The CLI renders
// the same structures as tables that the MCP tools serialize as JSON, so
// both surfaces report identical facts.
package report

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/gantryio/gantry/internal/graph"
	"github.com/gantryio/gantry/internal/model"
	"github.com/gantryio/gantry/internal/project"
)

// Requirement is one requirement result in presentation form.
type Requirement struct {
	Name      string  `json:"name"`
	Category  string  `json:"category"`
	Satisfied bool    `json:"satisfied"`
	Score     float64 `json:"score"`
	Reason    string  `json:"reason,omitempty"`
}

// Component summarizes one component's completion state.
type Component struct {
	Name         string        `json:"name"`
	Module       string        `json:"module"`
	Type         string        `json:"type"`
	Complete     bool          `json:"complete"`
	Satisfied    int           `json:"satisfied"`
	Total        int           `json:"total"`
	Requirements []Requirement `json:"requirements"`
}

// Project is the full completion report.
type Project struct {
	Project    string      `json:"project"`
	Complete   int         `json:"complete"`
	Components []Component `json:"components"`
}

// Build assembles the report from a synchronized project.
func Build(p *project.Project) Project {
	out := Project{Project: p.ID}
	for _, c := range p.Components {
		comp := Component{
			Name:   c.Name,
			Module: c.ModuleName,
			Type:   string(c.Type),
		}
		for _, r := range c.Requirements {
			comp.Total++
			if r.Satisfied {
				comp.Satisfied++
			}
			comp.Requirements = append(comp.Requirements, Requirement{
				Name:      r.Name,
				Category:  string(r.Category),
				Satisfied: r.Satisfied,
				Score:     r.Score,
				Reason:    reasonOf(r),
			})
		}
		comp.Complete = comp.Total > 0 && comp.Satisfied == comp.Total
		if comp.Complete {
			out.Complete++
		}
		out.Components = append(out.Components, comp)
	}
	return out
}

// reasonOf extracts the failure reason detail, if any.
func reasonOf(r model.Requirement) string {
	if r.Satisfied {
		return ""
	}
	if reason, ok := r.Details["reason"].(string); ok {
		return reason
	}
	return ""
}

// JSON renders the report as indented JSON.
func (p Project) JSON() (string, error) {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling report: %w", err)
	}
	return string(data), nil
}

// Text renders the report as an aligned table.
func (p Project) Text() string {
	var b strings.Builder
	w := tabwriter.NewWriter(&b, 0, 4, 2, ' ', 0)

	fmt.Fprintf(w, "COMPONENT\tTYPE\tSATISFIED\tBLOCKING\n")
	for _, c := range p.Components {
		var blocking []string
		for _, r := range c.Requirements {
			if !r.Satisfied {
				blocking = append(blocking, r.Name)
			}
		}
		fmt.Fprintf(w, "%s\t%s\t%d/%d\t%s\n",
			c.Name, c.Type, c.Satisfied, c.Total, strings.Join(blocking, ", "))
	}
	w.Flush()

	fmt.Fprintf(&b, "\n%d/%d components complete\n", p.Complete, len(p.Components))
	return b.String()
}

// --- Graph validation report ---

// CycleReport lists every dependency cycle by component name.
type CycleReport struct {
	Project string     `json:"project"`
	Valid   bool       `json:"valid"`
	Cycles  [][]string `json:"cycles,omitempty"`
}

// BuildCycles assembles the validation report.
func BuildCycles(p *project.Project, cycles []graph.Cycle) CycleReport {
	out := CycleReport{Project: p.ID, Valid: len(cycles) == 0}
	for _, cycle := range cycles {
		names := make([]string, len(cycle))
		for i, c := range cycle {
			names[i] = c.Name
		}
		out.Cycles = append(out.Cycles, names)
	}
	return out
}

// JSON renders the validation report as indented JSON.
func (c CycleReport) JSON() (string, error) {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling cycle report: %w", err)
	}
	return string(data), nil
}

// Text renders the validation report for terminals.
func (c CycleReport) Text() string {
	if c.Valid {
		return "dependency graph is acyclic\n"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d dependency cycle(s) found:\n", len(c.Cycles))
	for _, names := range c.Cycles {
		fmt.Fprintf(&b, "  %s -> %s\n", strings.Join(names, " -> "), names[0])
	}
	return b.String()
}
