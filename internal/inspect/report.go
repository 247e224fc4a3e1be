package inspect

import (
	"fmt"
	"io"
	"strings"

	"github.com/koustreak/dbinspect/internal/database"
)

// TruncationMarker follows a sample that was cut short.
const TruncationMarker = "..."

// report writes the human-readable output. Write errors on the console are
// not actionable and are ignored.
type report struct {
	w     io.Writer
	width int
}

func newReport(w io.Writer, width int) *report {
	return &report{w: w, width: width}
}

func (r *report) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(r.w, format, args...)
}

func (r *report) configMissing(envVar string) {
	r.printf("❌ %s not found\n", envVar)
}

func (r *report) connectionFailed(err error) {
	r.printf("❌ Connection failed: %v\n", err)
}

func (r *report) connected(info *database.ServerInfo) {
	r.printf("✅ Connected to database\n")
	if info != nil {
		r.printf("🗄️  Database: %s (%s)\n", info.Database, shortVersion(info.Version))
	}
}

func (r *report) listFailed(err error) {
	r.printf("❌ Failed to list tables: %v\n", err)
}

func (r *report) tables(names []string) {
	r.printf("📋 Found %d tables:\n", len(names))
	for _, name := range names {
		r.printf("  - %s\n", name)
	}
}

func (r *report) countsHeader() {
	r.printf("\n📊 Data counts:\n")
}

func (r *report) count(table string, n int64) {
	r.printf("  %s: %d records\n", table, n)
}

func (r *report) tableError(table string, err error) {
	r.printf("  %s: Error - %v\n", table, err)
}

func (r *report) sample(text string) {
	r.printf("    Sample: %s\n", Truncate(text, r.width))
}

func (r *report) completed() {
	r.printf("\n✅ Data extraction completed\n")
}

// Truncate shortens s to width characters (runes) and appends
// TruncationMarker. Strings that already fit are returned unchanged.
func Truncate(s string, width int) string {
	if width <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width]) + TruncationMarker
}

// shortVersion keeps the product name and number from a version() banner,
// e.g. "PostgreSQL 16.4 on x86_64-pc-linux-gnu, …" becomes "PostgreSQL 16.4".
func shortVersion(v string) string {
	fields := strings.Fields(v)
	if len(fields) > 2 {
		fields = fields[:2]
	}
	return strings.TrimSuffix(strings.Join(fields, " "), ",")
}
