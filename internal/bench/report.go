package bench

import (
	"fmt"
	"io"
	"runtime"

	"github.com/dustin/go-humanize"
	"github.com/evilsocket/islazy/tui"
	"github.com/pbnjay/memory"
)

var tableColumns = []string{
	"workload",
	"backend",
	"iterations",
	"elapsed",
	"per op",
	"allocs",
	"alloc bytes",
}

// Rows renders results as table rows in the WriteTable column order.
func Rows(results []Result) [][]string {
	rows := make([][]string, 0, len(results))
	for _, r := range results {
		rows = append(rows, []string{
			r.Name,
			r.Backend,
			humanize.Comma(int64(r.Iterations)),
			r.Elapsed.String(),
			r.PerOp().String(),
			humanize.Comma(int64(r.Mallocs)),
			humanize.Bytes(r.AllocBytes),
		})
	}
	return rows
}

// WriteTable prints results as a table.
func WriteTable(w io.Writer, results []Result) {
	// tui.Table pads the column names in place.
	columns := make([]string, len(tableColumns))
	copy(columns, tableColumns)
	tui.Table(w, columns, Rows(results))
}

// SystemSummary describes the host the benchmark runs on.
func SystemSummary() string {
	return fmt.Sprintf("%s %s/%s, %d CPUs, %s memory",
		runtime.Version(),
		runtime.GOOS,
		runtime.GOARCH,
		runtime.NumCPU(),
		humanize.Bytes(memory.TotalMemory()))
}
