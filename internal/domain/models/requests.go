package models

// RankedRequest holds the optional query params of the ranked-list endpoints.
type RankedRequest struct {
	Limit int `query:"limit" json:"limit" default:"10" validate:"gte=1,lte=50"`
}
