package response

import (
	"time"

	"rental-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type CancellationRuleResponse struct {
	DaysBeforeCheckIn int `json:"daysBeforeCheckIn"`
	RefundPercentage  int `json:"refundPercentage"`
}

type CancellationPolicyResponse struct {
	ID        uuid.UUID                  `json:"id"`
	Name      string                     `json:"name"`
	IsActive  bool                       `json:"isActive"`
	Rules     []CancellationRuleResponse `json:"rules"`
	CreatedAt time.Time                  `json:"createdAt"`
}

type OptionResponse struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	DailyLimit int       `json:"dailyLimit"`
	IsActive   bool      `json:"isActive"`
	CreatedAt  time.Time `json:"createdAt"`
}

type ReminderScheduleResponse struct {
	ID                uuid.UUID `json:"id"`
	TemplateKey       string    `json:"templateKey"`
	DaysBeforeCheckIn int       `json:"daysBeforeCheckIn"`
	IsActive          bool      `json:"isActive"`
	CreatedAt         time.Time `json:"createdAt"`
}

func FromCancellationPolicyView(v *queries.CancellationPolicyView) *CancellationPolicyResponse {
	var res CancellationPolicyResponse
	mustCopy(&res, v)
	return &res
}

func FromOptionView(v *queries.OptionView) *OptionResponse {
	var res OptionResponse
	mustCopy(&res, v)
	return &res
}

func FromReminderScheduleView(v *queries.ReminderScheduleView) *ReminderScheduleResponse {
	var res ReminderScheduleResponse
	mustCopy(&res, v)
	return &res
}
