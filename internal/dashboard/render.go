package dashboard

import (
	"fmt"
	"strings"
	"time"

	"github.com/yongkyu4803/2510-MCdata/internal/domain/models"
	"github.com/yongkyu4803/2510-MCdata/pkg/util"
)

// Sign classes applied to premium figures.
const (
	ClassPositive = "positive"
	ClassNegative = "negative"
)

// SignalColors fixes the slice color per signal label. Labels outside the
// table fall back to DefaultSignalColor.
var SignalColors = map[string]string{
	models.SignalUndervalued:   "#4caf50",
	models.SignalOvervalued:    "#f44336",
	models.SignalLiquidityUp:   "#2196f3",
	models.SignalLiquidityDown: "#ff9800",
	models.SignalCaution:       "#9c27b0",
	models.SignalNormal:        "#9e9e9e",
}

const DefaultSignalColor = "#607d8b"

// PremiumPalette colors the five distribution bars, aligned to bucket order.
var PremiumPalette = []string{
	"#1b5e20", "#4caf50", "#9e9e9e", "#ff9800", "#b71c1c",
}

const titleMaxRunes = 20

// SignClass derives the visual class from the sign of a premium value.
// Zero counts as negative.
func SignClass(premium float64) string {
	if premium > 0 {
		return ClassPositive
	}
	return ClassNegative
}

// RenderSummary formats the four scalar summary figures. The premium line
// carries its sign class; the timestamp uses the local date/time format.
func RenderSummary(s models.SummaryStats) string {
	var b strings.Builder
	fmt.Fprintf(&b, "총 주문: %s\n", util.FormatCount(s.TotalOrders))
	fmt.Fprintf(&b, "평균 프리미엄율: %s%% [%s]\n",
		util.FormatNumber(s.AvgPremium, 1), SignClass(s.AvgPremium))
	fmt.Fprintf(&b, "평균 수익률: %s%%\n", util.FormatNumber(s.AvgYield, 1))
	fmt.Fprintf(&b, "평균 유동성: %s\n", util.FormatNumber(s.AvgLiquidity, 1))
	fmt.Fprintf(&b, "기준 시각: %s\n", s.Timestamp.Local().Format(time.DateTime))
	return b.String()
}

// metricCell renders an optional numeric cell. Absent values render empty
// rather than failing the row.
func metricCell(v *float64, suffix string) string {
	if v == nil {
		return ""
	}
	return util.FormatNumber(*v, 1) + suffix
}

// premiumCell renders a premium with its sign class.
func premiumCell(v *float64) string {
	if v == nil {
		return ""
	}
	return fmt.Sprintf("%s%% [%s]", util.FormatNumber(*v, 1), SignClass(*v))
}

// RenderTable renders ranked rows in the order received, one line per row.
// Titles are truncated for display; the full name rides along as a title
// attribute would in a browser.
func RenderTable(rows []models.RankedOrder, metric func(*models.RankedOrder) string) string {
	var b strings.Builder
	for i := range rows {
		r := &rows[i]
		title := util.Truncate(r.SongName, titleMaxRunes)
		fmt.Fprintf(&b, "%2d. %s (%s) | %s | %s\n",
			i+1, title, r.SongName, r.SongArtist, metric(r))
	}
	return b.String()
}

// TopYieldMetric shows normalized yield plus premium.
func TopYieldMetric(r *models.RankedOrder) string {
	return strings.TrimSpace(metricCell(r.NormalizedYield, "%") + " " + premiumCell(r.Premium))
}

// UndervaluedMetric shows premium plus normalized yield.
func UndervaluedMetric(r *models.RankedOrder) string {
	return strings.TrimSpace(premiumCell(r.Premium) + " " + metricCell(r.NormalizedYield, "%"))
}

// HighLiquidityMetric shows the liquidity score plus premium.
func HighLiquidityMetric(r *models.RankedOrder) string {
	return strings.TrimSpace(metricCell(r.LiquidityScore, "") + " " + premiumCell(r.Premium))
}

// BuildSignalChart maps signal counts to a doughnut chart: one slice per
// label, fixed colors with a fallback, tooltips carrying label, formatted
// count, and share of the total at one decimal place.
func BuildSignalChart(rows []models.SignalCount) *Chart {
	total := 0
	for _, r := range rows {
		total += r.Count
	}

	c := &Chart{Kind: KindDoughnut}
	for _, r := range rows {
		color, ok := SignalColors[r.Signal]
		if !ok {
			color = DefaultSignalColor
		}

		pct := 0.0
		if total > 0 {
			pct = util.Round(float64(r.Count)/float64(total)*100, 1)
		}

		c.Labels = append(c.Labels, r.Signal)
		c.Values = append(c.Values, r.Count)
		c.Colors = append(c.Colors, color)
		c.Tooltips = append(c.Tooltips, fmt.Sprintf("%s: %s건 (%s%%)",
			r.Signal, util.FormatCount(r.Count), util.FormatNumber(pct, 1)))
	}
	return c
}

// BuildPremiumChart maps distribution buckets to a bar chart in the order
// received, colored by the fixed palette, with thousands-separated counts.
func BuildPremiumChart(rows []models.PremiumBucket) *Chart {
	c := &Chart{Kind: KindBar}
	for i, r := range rows {
		color := DefaultSignalColor
		if i < len(PremiumPalette) {
			color = PremiumPalette[i]
		}
		c.Labels = append(c.Labels, r.Range)
		c.Values = append(c.Values, r.Count)
		c.Colors = append(c.Colors, color)
		c.Tooltips = append(c.Tooltips, fmt.Sprintf("%s: %s건",
			r.Range, util.FormatCount(r.Count)))
	}
	return c
}
