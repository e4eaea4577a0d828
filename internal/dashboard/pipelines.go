package dashboard

import (
	"context"
	"sync"

	"github.com/yongkyu4803/2510-MCdata/pkg/logger"
)

// Pipelines bundles the six independent fetch/render tasks. Each task owns
// exactly one view region; a failure logs and leaves that region as it was.
type Pipelines struct {
	client *Client
	view   *View
	log    *logger.Logger
}

func NewPipelines(client *Client, view *View, log *logger.Logger) *Pipelines {
	return &Pipelines{client: client, view: view, log: log}
}

// RefreshAll fans out all six pipelines and waits for them to finish. The
// pipelines never fail the tick; errors stay inside their own pipeline.
func (p *Pipelines) RefreshAll(ctx context.Context) {
	tasks := []func(context.Context){
		p.RefreshSummary,
		p.RefreshTopYield,
		p.RefreshUndervalued,
		p.RefreshHighLiquidity,
		p.RefreshSignals,
		p.RefreshPremiumDistribution,
	}

	var wg sync.WaitGroup
	wg.Add(len(tasks))
	for _, task := range tasks {
		go func(run func(context.Context)) {
			defer wg.Done()
			run(ctx)
		}(task)
	}
	wg.Wait()
}

func (p *Pipelines) RefreshSummary(ctx context.Context) {
	s, err := p.client.Summary(ctx)
	if err != nil {
		p.log.Error("요약 데이터 로드 실패", logger.Error(err))
		return
	}
	p.view.Summary.Set(RenderSummary(s))
}

func (p *Pipelines) RefreshTopYield(ctx context.Context) {
	rows, err := p.client.TopYield(ctx)
	if err != nil {
		p.log.Error("수익률 상위 데이터 로드 실패", logger.Error(err))
		return
	}
	p.view.TopYield.Set(RenderTable(rows, TopYieldMetric))
}

func (p *Pipelines) RefreshUndervalued(ctx context.Context) {
	rows, err := p.client.Undervalued(ctx)
	if err != nil {
		p.log.Error("저평가 데이터 로드 실패", logger.Error(err))
		return
	}
	p.view.Undervalued.Set(RenderTable(rows, UndervaluedMetric))
}

func (p *Pipelines) RefreshHighLiquidity(ctx context.Context) {
	rows, err := p.client.HighLiquidity(ctx)
	if err != nil {
		p.log.Error("유동성 상위 데이터 로드 실패", logger.Error(err))
		return
	}
	p.view.HighLiquidity.Set(RenderTable(rows, HighLiquidityMetric))
}

func (p *Pipelines) RefreshSignals(ctx context.Context) {
	rows, err := p.client.Signals(ctx)
	if err != nil {
		p.log.Error("시그널 데이터 로드 실패", logger.Error(err))
		return
	}
	p.view.SignalChart.Replace(BuildSignalChart(rows))
}

func (p *Pipelines) RefreshPremiumDistribution(ctx context.Context) {
	rows, err := p.client.PremiumDistribution(ctx)
	if err != nil {
		p.log.Error("프리미엄 분포 데이터 로드 실패", logger.Error(err))
		return
	}
	p.view.PremiumChart.Replace(BuildPremiumChart(rows))
}
