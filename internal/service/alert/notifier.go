package alert

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/yongkyu4803/2510-MCdata/internal/domain/models"
	"github.com/yongkyu4803/2510-MCdata/pkg/http"
	"github.com/yongkyu4803/2510-MCdata/pkg/logger"
)

// Config controls premium alerting.
type Config struct {
	WebhookURL       string
	PremiumThreshold float64
	TopN             int
}

// Notifier watches each snapshot for waiting orders whose premium strays past
// the threshold and posts the worst offenders to a webhook. Without a webhook
// URL it is disabled entirely.
type Notifier struct {
	cfg  Config
	http *http.Client
	log  *logger.Logger

	mu   sync.Mutex
	seen map[string]time.Time
}

func NewNotifier(cfg Config, log *logger.Logger) *Notifier {
	if cfg.PremiumThreshold == 0 {
		cfg.PremiumThreshold = 3.0
	}
	if cfg.TopN == 0 {
		cfg.TopN = 3
	}
	return &Notifier{
		cfg:  cfg,
		http: http.NewClient(http.WithTimeout(10 * time.Second)),
		log:  log,
		seen: make(map[string]time.Time),
	}
}

// Enabled reports whether a webhook is configured.
func (n *Notifier) Enabled() bool { return n.cfg.WebhookURL != "" }

type webhookPayload struct {
	Text string `json:"text"`
}

// Notify scans the snapshot and posts at most TopN premium alerts. Each order
// alerts once per hour; repeated sightings within the window stay quiet.
func (n *Notifier) Notify(ctx context.Context, snap *models.Snapshot) {
	if !n.Enabled() || snap == nil {
		return
	}

	offenders := n.collect(snap)
	if len(offenders) == 0 {
		return
	}

	msg := buildMessage(offenders, n.cfg.PremiumThreshold)
	if err := n.http.PostJSON(ctx, n.cfg.WebhookURL, webhookPayload{Text: msg}); err != nil {
		n.log.Error("알림 전송 실패", logger.Error(err))
		return
	}
	n.log.Info("premium alert sent", logger.Int("orders", len(offenders)))
}

func (n *Notifier) collect(snap *models.Snapshot) []models.Order {
	var offenders []models.Order
	for i := range snap.Orders {
		o := &snap.Orders[i]
		if !o.IsWaiting() || o.Premium == nil {
			continue
		}
		if math.Abs(*o.Premium) < n.cfg.PremiumThreshold {
			continue
		}
		if n.recentlyAlerted(o.OrderNo, snap.CollectedAt) {
			continue
		}
		offenders = append(offenders, *o)
	}

	sort.SliceStable(offenders, func(i, j int) bool {
		return math.Abs(*offenders[i].Premium) > math.Abs(*offenders[j].Premium)
	})
	if len(offenders) > n.cfg.TopN {
		offenders = offenders[:n.cfg.TopN]
	}

	n.mu.Lock()
	for i := range offenders {
		n.seen[offenders[i].OrderNo] = snap.CollectedAt
	}
	n.mu.Unlock()

	return offenders
}

func (n *Notifier) recentlyAlerted(orderNo string, now time.Time) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	at, ok := n.seen[orderNo]
	return ok && now.Sub(at) < time.Hour
}

func buildMessage(offenders []models.Order, threshold float64) string {
	msg := fmt.Sprintf("프리미엄율 알림 (기준 ±%.1f%%)\n", threshold)
	for i := range offenders {
		o := &offenders[i]
		msg += fmt.Sprintf("- %s (%s): 프리미엄율 %.2f%%, 가격 %.0f원\n",
			o.SongName, o.SongArtist, *o.Premium, o.OrderPrice)
	}
	return msg
}
