package gate

import (
	"fmt"
	"strings"
	"time"
)

// RenderMarkdown formats a gate report for sharing outside the tool.
func RenderMarkdown(r Report, generatedAt time.Time) string {
	var b strings.Builder
	b.WriteString("# Release Gate Report\n\n")
	fmt.Fprintf(&b, "**Status:** **%s**\n", strings.ToUpper(string(r.Status)))
	if r.ProfileName != "" {
		fmt.Fprintf(&b, "**Profile:** %s\n", r.ProfileName)
	}
	if r.LatestRun != nil {
		fmt.Fprintf(&b, "**Latest run:** %s %.2fs\n",
			strings.ToUpper(string(r.LatestRun.Trigger)), r.LatestRun.TotalDuration())
	}
	fmt.Fprintf(&b, "**Generated:** %s\n\n", generatedAt.Format(time.RFC3339))

	b.WriteString("## Findings\n\n")
	if len(r.Findings) == 0 {
		b.WriteString("- All release checks passed.\n")
		return b.String()
	}
	for _, f := range r.Findings {
		fmt.Fprintf(&b, "- %s\n", f.Message)
	}
	return b.String()
}
