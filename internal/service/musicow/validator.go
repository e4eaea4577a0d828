package musicow

import (
	"fmt"

	"github.com/yongkyu4803/2510-MCdata/internal/domain/models"
	"github.com/yongkyu4803/2510-MCdata/pkg/util"
)

var validOrderTypes = map[string]bool{
	models.OrderTypeBuy:  true,
	models.OrderTypeSell: true,
}

var validOrderStatuses = map[string]bool{
	models.OrderStatusWaiting:  true,
	models.OrderStatusDone:     true,
	models.OrderStatusCanceled: true,
	models.OrderStatusFilled:   true,
}

// ValidateOrder checks one feed entry against the upstream contract. It
// returns every violation rather than stopping at the first.
func ValidateOrder(o *models.Order) []string {
	var errs []string

	if o.OrderNo == "" {
		errs = append(errs, "필수 필드 누락: order_no")
	}
	if o.SongName == "" {
		errs = append(errs, "필수 필드 누락: song_name")
	}
	if o.SongArtist == "" {
		errs = append(errs, "필수 필드 누락: song_artist")
	}
	if o.OrderDate == "" {
		errs = append(errs, "필수 필드 누락: order_date")
	}

	if o.OrderPrice <= 0 {
		errs = append(errs, fmt.Sprintf("가격이 0 이하: %v", o.OrderPrice))
	}
	if o.OrderRoyaltyRate < 0 {
		errs = append(errs, fmt.Sprintf("수익률이 음수: %v", o.OrderRoyaltyRate))
	}

	if !validOrderTypes[o.OrderType] {
		errs = append(errs, fmt.Sprintf("잘못된 주문 타입: %s", o.OrderType))
	}
	if !validOrderStatuses[o.OrderStatus] {
		errs = append(errs, fmt.Sprintf("잘못된 주문 상태: %s", o.OrderStatus))
	}

	if o.OrderDate != "" {
		if _, ok := util.ParseOrderDate(o.OrderDate); !ok {
			errs = append(errs, fmt.Sprintf("잘못된 날짜 형식: %s", o.OrderDate))
		}
	}

	return errs
}

// FilterValid splits a feed batch into the orders that pass validation and
// the number rejected.
func FilterValid(orders []models.Order) (valid []models.Order, rejected int, sampleErrs []string) {
	valid = make([]models.Order, 0, len(orders))
	for i := range orders {
		errs := ValidateOrder(&orders[i])
		if len(errs) == 0 {
			valid = append(valid, orders[i])
			continue
		}
		rejected++
		// Only the first few rejections are worth reporting.
		if len(sampleErrs) < 3 {
			sampleErrs = append(sampleErrs, fmt.Sprintf("order #%d: %s", i+1, errs[0]))
		}
	}
	return valid, rejected, sampleErrs
}
