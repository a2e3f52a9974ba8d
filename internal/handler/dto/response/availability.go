package response

import (
	"rental-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type DateRangeResponse struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type BookedDatesResponse struct {
	Ranges []DateRangeResponse `json:"ranges"`
}

type OptionAvailabilityResponse struct {
	OptionID   uuid.UUID `json:"optionId"`
	Name       string    `json:"name"`
	DailyLimit int       `json:"dailyLimit"`
	Remaining  int       `json:"remaining"`
	Available  bool      `json:"available"`
}

type OptionsAvailabilityResponse struct {
	Date    string                       `json:"date"`
	Options []OptionAvailabilityResponse `json:"options"`
}

func FromDateRangeViews(views []queries.DateRangeView) *BookedDatesResponse {
	res := &BookedDatesResponse{Ranges: make([]DateRangeResponse, 0, len(views))}
	mustCopy(&res.Ranges, views)
	return res
}

func FromOptionAvailabilityViews(date string, views []queries.OptionAvailabilityView) *OptionsAvailabilityResponse {
	res := &OptionsAvailabilityResponse{Date: date, Options: make([]OptionAvailabilityResponse, 0, len(views))}
	mustCopy(&res.Options, views)
	return res
}
