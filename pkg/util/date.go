package util

import "time"

// OrderDateLayout is the timestamp layout used by the Musicow order feed.
const OrderDateLayout = "2006-01-02 15:04:05"

// ParseOrderDate parses a feed timestamp. Returns (t, true) when valid.
func ParseOrderDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.ParseInLocation(OrderDateLayout, s, time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
