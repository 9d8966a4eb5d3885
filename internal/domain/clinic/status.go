package clinic

import "github.com/serenitymassage/clinic-scheduler/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// InitialStatus is forced on every new booking regardless of input.
func InitialStatus() Status {
	return StatusPending
}

// ValidateStatus accepts any of the four known values. Transitions are
// deliberately unconstrained: moderation may move an appointment between any
// two statuses.
func ValidateStatus(s Status) error {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		return nil
	}
	return httperr.ErrBusiness("invalid_status")
}
