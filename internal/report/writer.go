package report

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/AaronLay10/vacuumworld/internal/search"
)

// NewWriterSink returns a sink that renders reports to w in the given
// format, text or json.
func NewWriterSink(w io.Writer, format string) (Sink, error) {
	switch format {
	case "", "text":
		return &TextSink{w: w}, nil
	case "json":
		return &JSONSink{enc: json.NewEncoder(w)}, nil
	}
	return nil, fmt.Errorf("unsupported report format: %q", format)
}

// JSONSink writes one JSON object per line.
type JSONSink struct {
	enc *json.Encoder
}

func (s *JSONSink) Publish(_ context.Context, r *Report) error {
	return s.enc.Encode(r)
}

// TextSink writes the human-readable form.
type TextSink struct {
	w io.Writer
}

func (s *TextSink) Publish(_ context.Context, r *Report) error {
	_, err := io.WriteString(s.w, Text(r))
	return err
}

func fmtState(v StateView) string {
	parts := make([]string, len(v.Dirt))
	for i, p := range v.Dirt {
		parts[i] = p.String()
	}
	return fmt.Sprintf("agent %s dirt {%s}", v.Agent, strings.Join(parts, ", "))
}

// Text renders r for a terminal.
func Text(r *Report) string {
	var b strings.Builder

	fmt.Fprintf(&b, "=== %s: %s (%s) ===\n", r.Problem, r.Strategy.Describe(), r.Strategy)
	fmt.Fprintf(&b, "Run: %s\n", r.RunID)
	fmt.Fprintf(&b, "Start: %s\n", fmtState(r.Start))

	if len(r.FirstExpanded) > 0 {
		fmt.Fprintf(&b, "\nFirst %d expanded nodes (states):\n", len(r.FirstExpanded))
		for i, s := range r.FirstExpanded {
			fmt.Fprintf(&b, "Node %d: %s\n", i+1, fmtState(s))
		}
	}

	fmt.Fprintf(&b, "\nTotal nodes expanded: %d\n", r.Expanded)
	fmt.Fprintf(&b, "Total nodes generated: %d\n", r.Generated)
	fmt.Fprintf(&b, "Total CPU execution time: %.3f seconds\n", r.ElapsedMS/1000)
	if r.Strategy == search.StrategyIDS && r.DepthBound > 0 {
		fmt.Fprintf(&b, "Depth bound reached: %d\n", r.DepthBound)
	}

	b.WriteString("\n")
	switch {
	case r.Error != "":
		fmt.Fprintf(&b, "Search failed: %s\n", r.Error)
	case !r.Solved:
		b.WriteString("No solution found.\n")
	default:
		b.WriteString("Solution path:\n")
		for _, st := range r.Path {
			fmt.Fprintf(&b, "Action: %s, State: %s, Path cost: %.2f\n", st.Action, fmtState(st.State), st.Cost)
		}
		fmt.Fprintf(&b, "Number of moves: %d\n", r.Moves)
		fmt.Fprintf(&b, "Cost of solution: %.2f\n", r.Cost)
	}
	b.WriteString(strings.Repeat("=", 50))
	b.WriteString("\n")
	return b.String()
}
