package shared

import (
	"time"

	"github.com/google/uuid"
)

type IdempotencyStatus string

const (
	IdempotencyProcessing IdempotencyStatus = "processing"
	IdempotencyCompleted  IdempotencyStatus = "completed"
)

type IdempotencyRecord struct {
	Key             uuid.UUID
	Endpoint        string
	Status          IdempotencyStatus
	RequestHash     string
	ResultBookingID *uuid.UUID
	ExpiresAt       time.Time
}

const (
	NotificationKindEmail = "email"

	TopicBookingCreated   = "booking_created"
	TopicBookingConfirmed = "booking_confirmed"
	TopicBookingCancelled = "booking_cancelled"
	TopicBookingReminder  = "booking_reminder"
)

// NotificationJob is an outbox row picked up by the mail worker.
type NotificationJob struct {
	Kind     string
	Topic    string
	Payload  []byte
	RunAt    time.Time
	DedupKey *string
}
