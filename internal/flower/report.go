package flower

import (
	"fmt"
	"strings"
)

// Sentinel messages used by reports that have nothing to show.
const (
	NoFlowersStored         = "No flowers stored"
	NoBloomingFlowersStored = "No currently blooming flowers stored"
	NoAvailableVariants     = "No available variants"
	NoVariantsAdded         = "NO VARIANTS ADDED"
)

const reportSeparator = "\n──────────────────────────────\n"

// Report is a rendered listing. When it has no blocks, Sentinel explains why.
type Report struct {
	Blocks   []string
	Sentinel string
}

// Empty reports whether the report contains no entries.
func (r Report) Empty() bool {
	return len(r.Blocks) == 0
}

// Len returns the number of entries in the report.
func (r Report) Len() int {
	return len(r.Blocks)
}

// String joins the entries, or returns the sentinel for an empty report.
func (r Report) String() string {
	if r.Empty() {
		return r.Sentinel
	}
	return strings.Join(r.Blocks, reportSeparator)
}

func flowerReport(flowers []Flower, sentinel string) Report {
	r := Report{Sentinel: sentinel}
	for i := range flowers {
		r.Blocks = append(r.Blocks, flowers[i].Render())
	}
	return r
}

func variantReport(matches []VariantMatch, sentinel string) Report {
	r := Report{Sentinel: sentinel}
	for _, m := range matches {
		r.Blocks = append(r.Blocks, renderMatch(m))
	}
	return r
}

func renderMatch(m VariantMatch) string {
	return fmt.Sprintf("%d: %s\n%s", m.FlowerID, m.FlowerName, indent(m.Variant.Render(), "   "))
}

func noFlowersFound(search string) string {
	return "No flowers found for: " + search
}

func noVariantsFound(search string) string {
	return "No variants found for: " + search
}
