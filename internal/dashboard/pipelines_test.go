package dashboard

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/yongkyu4803/2510-MCdata/internal/domain/models"
	"github.com/yongkyu4803/2510-MCdata/pkg/logger"
)

// newProvider serves canned JSON per path; paths in failing answer 500.
func newProvider(t *testing.T, bodies map[string]string, failing map[string]bool) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if failing[r.URL.Path] {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		body, ok := bodies[r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}))
}

var allBodies = map[string]string{
	"/api/summary":              `{"total_orders":1234,"avg_premium":-3.5,"avg_yield":8.2,"avg_liquidity":72.4,"timestamp":"2025-10-06T12:00:00Z"}`,
	"/api/top-yield":            `[{"song_name":"곡A","song_artist":"가수A","normalized_yield":12.5,"premium":-5.0},{"song_name":"곡B","song_artist":"가수B"}]`,
	"/api/undervalued":          `[{"song_name":"곡C","song_artist":"가수C","premium":-22.1}]`,
	"/api/high-liquidity":       `[{"song_name":"곡D","song_artist":"가수D","liquidity_score":91.2,"premium":2.0}]`,
	"/api/signals":              `[{"signal":"저평가","count":50},{"signal":"고평가","count":30},{"signal":"보통","count":20}]`,
	"/api/premium-distribution": `[{"range":"매우 저평가 (< -20%)","count":5},{"range":"저평가 (-20% ~ -10%)","count":12},{"range":"적정 (-10% ~ 10%)","count":40},{"range":"고평가 (10% ~ 20%)","count":8},{"range":"매우 고평가 (> 20%)","count":3}]`,
}

func newPipelines(srvURL string) (*Pipelines, *View) {
	view := NewView()
	p := NewPipelines(NewClient(srvURL), view, logger.Nop())
	return p, view
}

func TestRefreshAllPopulatesEveryRegion(t *testing.T) {
	srv := newProvider(t, allBodies, nil)
	defer srv.Close()

	p, view := newPipelines(srv.URL)
	p.RefreshAll(context.Background())

	if view.Summary.Content() == "" {
		t.Error("summary region empty")
	}
	if view.TopYield.Content() == "" || view.Undervalued.Content() == "" || view.HighLiquidity.Content() == "" {
		t.Error("table region empty")
	}
	if view.SignalChart.Current() == nil || view.PremiumChart.Current() == nil {
		t.Error("chart slot empty")
	}
}

func TestFailureIsolatedToItsOwnRegion(t *testing.T) {
	srv := newProvider(t, allBodies, map[string]bool{"/api/top-yield": true})
	defer srv.Close()

	p, view := newPipelines(srv.URL)
	view.TopYield.Set("previous rows")

	p.RefreshAll(context.Background())

	// The failing pipeline keeps its previous content.
	if got := view.TopYield.Content(); got != "previous rows" {
		t.Errorf("failed region overwritten: %q", got)
	}
	// Siblings still update.
	if view.Summary.Content() == "" || view.Undervalued.Content() == "" {
		t.Error("sibling regions not updated")
	}
	if view.SignalChart.Current() == nil {
		t.Error("signal chart not updated")
	}
}

func TestSummaryFormatting(t *testing.T) {
	srv := newProvider(t, allBodies, nil)
	defer srv.Close()

	p, view := newPipelines(srv.URL)
	p.RefreshSummary(context.Background())

	got := view.Summary.Content()
	for _, want := range []string{"1,234", "-3.5%", ClassNegative, "8.2%", "72.4"} {
		if !strings.Contains(got, want) {
			t.Errorf("summary missing %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, ClassPositive) {
		t.Errorf("negative premium carries positive class:\n%s", got)
	}
}

func TestSignClass(t *testing.T) {
	if SignClass(0.1) != ClassPositive {
		t.Error("positive premium")
	}
	if SignClass(0) != ClassNegative || SignClass(-3.5) != ClassNegative {
		t.Error("zero and negative premium must be negative class")
	}
}

func TestTableRowsMatchResponseOrder(t *testing.T) {
	srv := newProvider(t, allBodies, nil)
	defer srv.Close()

	p, view := newPipelines(srv.URL)
	p.RefreshTopYield(context.Background())

	lines := strings.Split(strings.TrimRight(view.TopYield.Content(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("rows: got %d, want 2", len(lines))
	}
	if !strings.Contains(lines[0], "곡A") || !strings.Contains(lines[1], "곡B") {
		t.Errorf("row order does not match response order:\n%s", view.TopYield.Content())
	}
	// 곡B has no metrics at all; the row still renders.
	if !strings.Contains(lines[1], "가수B") {
		t.Errorf("absent-metric row dropped fields: %q", lines[1])
	}
}

func TestAbsentMetricRendersEmpty(t *testing.T) {
	row := models.RankedOrder{SongName: "곡", SongArtist: "가수"}

	for name, metric := range map[string]func(*models.RankedOrder) string{
		"top-yield":      TopYieldMetric,
		"undervalued":    UndervaluedMetric,
		"high-liquidity": HighLiquidityMetric,
	} {
		if got := metric(&row); got != "" {
			t.Errorf("%s: absent metrics rendered %q, want empty", name, got)
		}
	}
}

func TestTitleTruncation(t *testing.T) {
	long := strings.Repeat("가", 30)
	rows := []models.RankedOrder{{SongName: long, SongArtist: "가수"}}
	got := RenderTable(rows, TopYieldMetric)

	if !strings.Contains(got, "…") {
		t.Errorf("long title not truncated: %q", got)
	}
	// Full title preserved alongside the truncated display text.
	if !strings.Contains(got, long) {
		t.Errorf("full title lost: %q", got)
	}
}

func TestChartSlotDestroyBeforeRecreate(t *testing.T) {
	srv := newProvider(t, allBodies, nil)
	defer srv.Close()

	p, view := newPipelines(srv.URL)

	p.RefreshSignals(context.Background())
	first := view.SignalChart.Current()
	if first == nil || !first.Live() {
		t.Fatal("first chart not live")
	}

	p.RefreshSignals(context.Background())
	second := view.SignalChart.Current()
	if second == first {
		t.Fatal("slot still holds the first instance")
	}
	if first.Live() {
		t.Error("first instance not destroyed")
	}
	if !second.Live() {
		t.Error("second instance not live")
	}
}

func TestSignalChartPercentages(t *testing.T) {
	c := BuildSignalChart([]models.SignalCount{
		{Signal: models.SignalUndervalued, Count: 50},
		{Signal: models.SignalOvervalued, Count: 30},
		{Signal: models.SignalNormal, Count: 20},
	})

	want := []string{"50.0%", "30.0%", "20.0%"}
	for i, w := range want {
		if !strings.Contains(c.Tooltips[i], w) {
			t.Errorf("tooltip %d: got %q, want substring %q", i, c.Tooltips[i], w)
		}
	}
}

func TestSignalChartUnknownLabelFallback(t *testing.T) {
	c := BuildSignalChart([]models.SignalCount{
		{Signal: models.SignalUndervalued, Count: 1},
		{Signal: "신규", Count: 1},
	})

	if len(c.Values) != 2 {
		t.Fatalf("unknown label dropped: %d slices", len(c.Values))
	}
	if c.Colors[1] != DefaultSignalColor {
		t.Errorf("unknown label color: got %s, want fallback", c.Colors[1])
	}
	if c.Colors[0] == DefaultSignalColor {
		t.Errorf("known label fell back unexpectedly")
	}
}

func TestPremiumChartBarOrder(t *testing.T) {
	srv := newProvider(t, allBodies, nil)
	defer srv.Close()

	p, view := newPipelines(srv.URL)
	p.RefreshPremiumDistribution(context.Background())

	c := view.PremiumChart.Current()
	if c == nil {
		t.Fatal("premium chart empty")
	}
	wantLabels := models.PremiumBucketOrder
	wantCounts := []int{5, 12, 40, 8, 3}
	for i := range wantLabels {
		if c.Labels[i] != wantLabels[i] {
			t.Errorf("bar %d label: got %q, want %q", i, c.Labels[i], wantLabels[i])
		}
		if c.Values[i] != wantCounts[i] {
			t.Errorf("bar %d value: got %d, want %d", i, c.Values[i], wantCounts[i])
		}
	}
	if c.Colors[0] != PremiumPalette[0] || c.Colors[4] != PremiumPalette[4] {
		t.Errorf("palette not aligned to bucket order: %v", c.Colors)
	}
}

func TestPremiumChartThousandsSeparatedTooltip(t *testing.T) {
	c := BuildPremiumChart([]models.PremiumBucket{{Range: models.BucketFair, Count: 12345}})
	if !strings.Contains(c.Tooltips[0], "12,345") {
		t.Errorf("tooltip count not thousands-separated: %q", c.Tooltips[0])
	}
}
