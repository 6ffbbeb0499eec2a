// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package reconcile

import (
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/valyala/bytebufferpool"
)

// Render assembles the single-line diagnostic for the plugin output:
// the severity-determining summary, any acquisition notes (previous
// release skipped and the like), and the enumeration of mismatched DNs.
func Render(res Result, notes []string) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	buf.WriteString(res.Summary)
	for _, note := range notes {
		buf.WriteString("; ")
		buf.WriteString(note)
	}
	if len(res.Missing) > 0 {
		buf.WriteString("; missing CAs: ")
		buf.WriteString(strings.Join(res.Missing, ", "))
	}
	if len(res.Obsolete) > 0 {
		buf.WriteString("; obsolete CAs found: ")
		buf.WriteString(strings.Join(res.Obsolete, ", "))
	}
	return buf.String()
}

// RenderTable renders the mismatched DNs as a markdown table for the
// troubleshooting dump. It returns an empty string when there is
// nothing to show.
func RenderTable(res Result) string {
	if len(res.Missing) == 0 && len(res.Obsolete) == 0 {
		return ""
	}

	var buf strings.Builder
	table := tablewriter.NewTable(&buf,
		tablewriter.WithRenderer(renderer.NewMarkdown(tw.Rendition{Streaming: true})),
	)
	table.Header([]string{"CA distinguished name", "State"})

	var rows [][]string
	for _, d := range res.Missing {
		rows = append(rows, []string{d, "expected, not advertised"})
	}
	for _, d := range res.Obsolete {
		rows = append(rows, []string{d, "advertised, obsoleted"})
	}
	table.Bulk(rows)
	table.Render()
	return buf.String()
}
