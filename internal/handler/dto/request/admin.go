package request

type CancellationRuleRequest struct {
	DaysBeforeCheckIn int `json:"daysBeforeCheckIn"`
	RefundPercentage  int `json:"refundPercentage"`
}

type CancellationPolicyRequest struct {
	Name  string                    `json:"name" binding:"required"`
	Rules []CancellationRuleRequest `json:"rules" binding:"required,min=1,dive"`
}

type CreateOptionRequest struct {
	Name       string `json:"name" binding:"required"`
	DailyLimit int    `json:"dailyLimit" binding:"required,min=1"`
}

type CreateReminderScheduleRequest struct {
	TemplateKey       string `json:"templateKey" binding:"required"`
	DaysBeforeCheckIn int    `json:"daysBeforeCheckIn" binding:"min=0"`
}
