package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/pable/go-cs-smartban/internal/model"
	"github.com/pable/go-cs-smartban/internal/ranker"
)

func newTable(w io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignRight},
		},
		Header: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignCenter},
		},
	}))
}

// PrintComparisonHeader prints a one-line summary header for the comparison.
func PrintComparisonHeader(w io.Writer, c model.StoredComparison) {
	fmt.Fprintf(w, "\nMatch: %s  |  %s vs %s  |  Generated: %s\n\n",
		c.MatchID, c.Teams[0].TeamName, c.Teams[1].TeamName,
		c.GeneratedAt.Local().Format("2006-01-02 15:04"))
}

// PrintMapComparison prints both teams' map rows side by side with the
// head-to-head rating of each map.
func PrintMapComparison(w io.Writer, t model.MatchComparisonTable) {
	table := newTable(w)
	t1, t2 := shortName(t[0].TeamName), shortName(t[1].TeamName)
	table.Header(
		"MAP",
		"PLAYED "+t1, "PLAYED "+t2,
		"RECENT "+t1, "RECENT "+t2,
		"WIN% "+t1, "WIN% "+t2,
		"K/D "+t1, "K/D "+t2,
		"RATING",
	)

	ratings := ranker.Rate(t[0].MapTable, t[1].MapTable)
	for i, r := range ratings {
		a, b := t[0].MapTable[i], t[1].MapTable[i]
		table.Append(
			a.Name,
			formatAvg(a.AvgPlayed), formatAvg(b.AvgPlayed),
			formatAvg(a.AvgRecentlyPlayed), formatAvg(b.AvgRecentlyPlayed),
			formatWinrate(a), formatWinrate(b),
			formatKD(a), formatKD(b),
			fmt.Sprintf("%+.2f", r.Rating),
		)
	}
	table.Render()
}

// PrintMapDetail prints every statistic of one map for both teams.
func PrintMapDetail(w io.Writer, t model.MatchComparisonTable, index int) error {
	if index < 0 || index >= len(t[0].MapTable) || index >= len(t[1].MapTable) {
		return fmt.Errorf("map index %d out of range", index)
	}
	a, b := t[0].MapTable[index], t[1].MapTable[index]

	fmt.Fprintf(w, "\n=== %s ===\n\n", a.Name)
	table := newTable(w)
	table.Header(t[0].TeamName, "STAT", t[1].TeamName)
	table.Append(formatAvg(a.AvgPlayed), "PLAYRATE", formatAvg(b.AvgPlayed))
	table.Append(formatAvg(a.AvgRecentlyPlayed), "RECENTLY PLAYED", formatAvg(b.AvgRecentlyPlayed))
	table.Append(formatWinrate(a), "WINRATE", formatWinrate(b))
	table.Append(formatKD(a), "KD RATIO", formatKD(b))
	table.Append(strconv.FormatUint(uint64(a.TotalKills), 10), "KILLS", strconv.FormatUint(uint64(b.TotalKills), 10))
	table.Append(strconv.FormatUint(uint64(a.TotalDeaths), 10), "DEATHS", strconv.FormatUint(uint64(b.TotalDeaths), 10))
	table.Render()
	return nil
}

// PrintPlayShare prints each team's share of games per map.
func PrintPlayShare(w io.Writer, t model.MatchComparisonTable) {
	table := newTable(w)
	table.Header("MAP", "SHARE "+shortName(t[0].TeamName), "SHARE "+shortName(t[1].TeamName))

	s1, s2 := ranker.PlayShare(t[0].MapTable), ranker.PlayShare(t[1].MapTable)
	n := min(len(s1), len(s2))
	for i := 0; i < n; i++ {
		table.Append(t[0].MapTable[i].Name, formatShare(s1[i]), formatShare(s2[i]))
	}
	table.Render()
}

// PrintHighlights prints the favored and recently played map lists.
func PrintHighlights(w io.Writer, t model.MatchComparisonTable, h model.Highlights) {
	fmt.Fprintf(w, "\n--- Best maps ---\n")
	fmt.Fprintf(w, "  %-20s %s\n", t[0].TeamName+":", joinRatings(h.FavorsTeam1))
	fmt.Fprintf(w, "  %-20s %s\n", t[1].TeamName+":", joinRatings(h.FavorsTeam2))

	fmt.Fprintf(w, "\n--- Recently played ---\n")
	fmt.Fprintf(w, "  %-20s %s\n", t[0].TeamName+":", joinRecent(h.RecentTeam1))
	fmt.Fprintf(w, "  %-20s %s\n", t[1].TeamName+":", joinRecent(h.RecentTeam2))
	fmt.Fprintln(w)
}

// PrintKnownMaps lists the reference map pool in chart order.
func PrintKnownMaps(w io.Writer, maps []model.MapDefinition) {
	table := tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row:    tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignLeft}},
		Header: tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignCenter}},
	}))
	table.Header("#", "NAME", "GUID", "ICON")
	for i, m := range maps {
		table.Append(strconv.Itoa(i), m.Name, m.GUID, m.IconPath)
	}
	table.Render()
}

func formatAvg(v float64) string {
	if v == 0 {
		return "—"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatWinrate(r model.MapTableRow) string {
	if r.AvgPlayed == 0 {
		return "—"
	}
	return fmt.Sprintf("%.0f%%", r.AvgWinrate*100)
}

func formatKD(r model.MapTableRow) string {
	if r.TotalDeaths == 0 {
		return "—"
	}
	return fmt.Sprintf("%.2f", r.AvgKD)
}

func formatShare(v float64) string {
	if v == 0 {
		return "—"
	}
	return fmt.Sprintf("%.0f%%", v*100)
}

func joinRatings(rs []model.MapRating) string {
	if len(rs) == 0 {
		return "—"
	}
	parts := make([]string, len(rs))
	for i, r := range rs {
		parts[i] = fmt.Sprintf("%s (%+.2f)", r.Name, r.Rating)
	}
	return strings.Join(parts, ", ")
}

func joinRecent(rows []model.MapTableRow) string {
	if len(rows) == 0 {
		return "—"
	}
	parts := make([]string, len(rows))
	for i, r := range rows {
		parts[i] = fmt.Sprintf("%s (%s)", r.Name, formatAvg(r.AvgRecentlyPlayed))
	}
	return strings.Join(parts, ", ")
}

// shortName keeps column headers narrow for long team names.
func shortName(s string) string {
	const limit = 12
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit-1]) + "…"
}
