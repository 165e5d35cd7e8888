package cli

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"taskboard/services/app/core"
)

const barWidth = 30

type printer struct {
	w   *tabwriter.Writer
	err error
}

func (p *printer) row(cols ...string) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintln(p.w, strings.Join(cols, "\t"))
}

func (p *printer) line(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format+"\n", args...)
}

// render writes v as YAML, or as a table built by table.
func render(cmd *cobra.Command, format string, v any, table func(p *printer)) error {
	out := cmd.OutOrStdout()

	switch strings.ToLower(format) {
	case "yaml", "yml":
		b, err := yaml.Marshal(v)
		if err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		_, err = out.Write(b)
		return err
	case "", "table":
		p := &printer{w: tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)}
		table(p)
		if p.err != nil {
			return p.err
		}
		return p.w.Flush()
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

func taskTable(tasks []core.Task) func(p *printer) {
	return func(p *printer) {
		p.row("ID", "TITLE", "CATEGORY", "PRIORITY", "STATUS", "UPDATED")
		for _, t := range tasks {
			updated := "-"
			if !t.UpdatedAt.IsZero() {
				updated = t.UpdatedAt.Local().Format("2006-01-02 15:04")
			}
			p.row(t.ID.String(), t.Title, t.Category, string(t.Priority), string(t.Status), updated)
		}
	}
}

func statsTable(st core.TaskStats) func(p *printer) {
	return func(p *printer) {
		p.row("TOTAL", "COMPLETED", "PENDING", "IN PROGRESS")
		p.row(fmt.Sprint(st.Total), fmt.Sprint(st.Completed), fmt.Sprint(st.Pending), fmt.Sprint(st.InProgress))

		p.line("")
		p.line("By status")
		statusKeys := make([]string, 0, len(core.Statuses))
		for _, s := range core.Statuses {
			statusKeys = append(statusKeys, string(s))
		}
		writeBars(p, st.ByStatus, statusKeys, st.Total)

		p.line("")
		p.line("By category")
		writeBars(p, st.ByCategory, sortedKeys(st.ByCategory), st.Total)
	}
}

// writeBars draws one horizontal bar per key, scaled against total.
func writeBars(p *printer, counts map[string]int, keys []string, total int) {
	if total == 0 {
		p.line("  (no tasks)")
		return
	}
	for _, k := range keys {
		n := counts[k]
		width := n * barWidth / total
		if n > 0 && width == 0 {
			width = 1
		}
		p.row("  "+k, strings.Repeat("█", width), fmt.Sprintf("%d (%d%%)", n, n*100/total))
	}
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func writeLines(w io.Writer, lines []string) error {
	for _, l := range lines {
		if _, err := fmt.Fprintln(w, l); err != nil {
			return err
		}
	}
	return nil
}
