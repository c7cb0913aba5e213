package main

import (
	"fmt"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/wbrown/caveat-datalog/datalog"
)

// formatFacts renders facts as a markdown table, one column per
// argument position plus a leading predicate-name column, the same
// tablewriter.NewTable/WithRenderer(renderer.NewMarkdown()) shape the
// teacher's relation formatter uses for query results.
func formatFacts(dbg datalog.Debugger, facts []datalog.Fact) string {
	if len(facts) == 0 {
		return "_no facts_"
	}

	maxArity := 0
	for _, f := range facts {
		if f.Arity() > maxArity {
			maxArity = f.Arity()
		}
	}

	var sb strings.Builder
	alignment := make([]tw.Align, maxArity+1)
	for i := range alignment {
		alignment[i] = tw.AlignNone
	}

	table := tablewriter.NewTable(&sb,
		tablewriter.WithRenderer(renderer.NewMarkdown()),
		tablewriter.WithAlignment(alignment),
		tablewriter.WithHeaderAutoFormat(tw.Off),
	)

	headers := make([]string, maxArity+1)
	headers[0] = "predicate"
	for i := 1; i <= maxArity; i++ {
		headers[i] = fmt.Sprintf("arg%d", i-1)
	}
	table.Header(headers)

	for _, f := range facts {
		row := make([]string, maxArity+1)
		row[0] = dbg.Value(datalog.Symbol(f.Name))
		for i, a := range f.Args {
			row[i+1] = dbg.Value(a)
		}
		table.Append(row)
	}

	table.Render()
	sb.WriteString(fmt.Sprintf("\n_%d facts_\n", len(facts)))
	return sb.String()
}
