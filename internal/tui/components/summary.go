package components

import (
	"fmt"
	"strings"

	"github.com/mmcdole/popcorn/internal/session"
	"github.com/mmcdole/popcorn/internal/tui/styles"
)

// RenderSummary renders the watch-list aggregate
func RenderSummary(sum session.Summary, width int) string {
	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render("MOVIES YOU WATCHED"))
	b.WriteString("\n")

	parts := []string{
		fmt.Sprintf("#️⃣ %d movies", sum.Count),
		fmt.Sprintf("⭐ %.2f", sum.AvgIMDbRating),
		fmt.Sprintf("%s %.2f", styles.StarFull, sum.AvgUserRating),
		fmt.Sprintf("⏳ %.2f min", sum.AvgRuntime),
	}
	b.WriteString(styles.SubtitleStyle.Render(styles.Truncate(strings.Join(parts, "   "), width)))
	return b.String()
}
