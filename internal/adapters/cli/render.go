// Package cli renders a dashboard view as plain text for terminals.
package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/theRoadz/farcaster-neynar/internal/application"
	"github.com/theRoadz/farcaster-neynar/internal/domain"
)

const barWidth = 20

func Render(w io.Writer, view application.DashboardView) error {
	p := view.User.Profile
	m := view.User.Metrics

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	title := p.DisplayName
	if title == "" {
		title = p.Username
	}
	badge := ""
	if p.PowerBadge {
		badge = " (power badge)"
	}
	fmt.Fprintf(tw, "%s  @%s%s\n", title, p.Username, badge)
	if p.Bio != "" {
		fmt.Fprintf(tw, "%s\n", p.Bio)
	}
	fmt.Fprintf(tw, "FID\t%d\n", p.FID)
	fmt.Fprintf(tw, "Followers\t%d\n", p.FollowerCount)
	fmt.Fprintf(tw, "Following\t%d\n", p.FollowingCount)
	fmt.Fprintln(tw)

	fmt.Fprintf(tw, "Follower Quality\t%s\n", Bar(view.FollowerGauge))
	fmt.Fprintf(tw, "Viral Reach\t%s  %s\n", Bar(view.ViralReachGauge), view.ViralLabel)
	fmt.Fprintf(tw, "Engagement rate\t%.2f%%\n", m.EngagementRate)
	fmt.Fprintf(tw, "Avg. Reactions\t%d\n", m.AvgReactions)
	fmt.Fprintf(tw, "Avg. Recasts\t%d\n", m.AvgRecasts)
	fmt.Fprintf(tw, "Account Age\t%dd\n", m.AccountAgeDays)
	fmt.Fprintf(tw, "Activity Level\t%s (%d casts sampled)\n", m.ActivityLevel, m.TotalCasts)
	fmt.Fprintln(tw)

	if view.Onchain == nil {
		fmt.Fprintln(tw, "Onchain Activity\tunavailable")
		return tw.Flush()
	}
	tx := view.Onchain.Transactions
	fmt.Fprintf(tw, "Onchain Activity\t%s\n", view.Onchain.Address)
	for _, row := range []struct {
		name  string
		count uint64
	}{
		{"Base", tx.Base},
		{"Ethereum", tx.Ethereum},
		{"Optimism", tx.Optimism},
		{"Arbitrum", tx.Arbitrum},
	} {
		fmt.Fprintf(tw, "  %s\t%d txs\n", row.name, row.count)
	}
	fmt.Fprintf(tw, "  Total\t%d txs\n", view.Onchain.Total)
	return tw.Flush()
}

// Bar draws a gauge as a fixed-width text bar, e.g. "[#####...] 25%".
func Bar(g domain.Gauge) string {
	filled := int(g.Percentage / 100 * barWidth)
	bar := "[" + strings.Repeat("#", filled) + strings.Repeat(".", barWidth-filled) + "]"
	if g.ShowPercentage {
		return fmt.Sprintf("%s %d%%", bar, g.Display())
	}
	return fmt.Sprintf("%s %d/%d", bar, g.Display(), g.Max)
}
