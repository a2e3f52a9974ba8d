package commands

import (
	"context"
	"encoding/json"

	"rental-booking/internal/domain/reminder"
	"rental-booking/internal/pkg/clock"
	"rental-booking/internal/usecase/shared"
)

type ReminderRunResult struct {
	BookingsScanned int `json:"bookings_scanned"`
	JobsEnqueued    int `json:"jobs_enqueued"`
	AlreadyQueued   int `json:"already_queued"`
}

type ReminderCommands interface {
	Run(ctx context.Context) (*ReminderRunResult, error)
}

type reminderCommandsImpl struct {
	uow      shared.UnitOfWork
	calendar *clock.Calendar
}

func NewReminderCommands(uow shared.UnitOfWork, calendar *clock.Calendar) ReminderCommands {
	return &reminderCommandsImpl{uow: uow, calendar: calendar}
}

// Run enqueues every reminder that falls due today. Re-running on the same day
// is harmless: each (booking, schedule) pair has a dedup key.
func (r *reminderCommandsImpl) Run(ctx context.Context) (*ReminderRunResult, error) {
	reads := r.uow.CommandReads()

	schedules, err := reads.ActiveReminderSchedules(ctx)
	if err != nil {
		return nil, shared.StorageError(err, "failed to load reminder schedules")
	}
	result := &ReminderRunResult{}
	if len(schedules) == 0 {
		return result, nil
	}

	today := r.calendar.Today()
	bookings, err := reads.ConfirmedCheckingInBetween(ctx, today, today.AddDays(reminder.Horizon(schedules)))
	if err != nil {
		return nil, shared.StorageError(err, "failed to load upcoming bookings")
	}
	result.BookingsScanned = len(bookings)

	var jobs []shared.NotificationJob
	for _, b := range bookings {
		for _, s := range reminder.Due(schedules, b.Stay().CheckIn(), today) {
			payload, err := json.Marshal(map[string]any{
				"booking_id":   b.ID(),
				"reference":    b.Reference().String(),
				"guest_email":  b.Guest().Email,
				"check_in":     b.Stay().CheckIn().String(),
				"template_key": s.TemplateKey(),
				"days_before":  s.DaysBeforeCheckIn(),
				"type":         shared.TopicBookingReminder,
			})
			if err != nil {
				return nil, err
			}
			dedup := "reminder:" + b.ID().String() + ":" + s.ID().String()
			jobs = append(jobs, shared.NotificationJob{
				Kind:     shared.NotificationKindEmail,
				Topic:    shared.TopicBookingReminder,
				Payload:  payload,
				RunAt:    r.calendar.Now(),
				DedupKey: &dedup,
			})
		}
	}
	if len(jobs) == 0 {
		return result, nil
	}

	err = r.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		enqueued, skipped := 0, 0
		for _, job := range jobs {
			created, err := tx.Notifications().CreateJob(ctx, job)
			if err != nil {
				return shared.StorageError(err, "failed to enqueue reminder")
			}
			if created {
				enqueued++
			} else {
				skipped++
			}
		}
		// Counted inside the closure so a retried transaction does not double count.
		result.JobsEnqueued, result.AlreadyQueued = enqueued, skipped
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
