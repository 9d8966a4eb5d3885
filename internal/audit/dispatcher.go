package audit

import "log"

// Well-known actions recorded by the clinic workflows.
const (
	ActionBookingCreated     = "booking_created"
	ActionAppointmentStatus  = "appointment_status_changed"
	ActionAppointmentDeleted = "appointment_deleted"
	ActionServiceUpserted    = "service_upserted"
	ActionAdminLogin         = "admin_login"
	ActionAdminLogout        = "admin_logout"
)

type Event struct {
	UserID   *string
	Action   string
	Entity   string
	EntityID string
	Metadata any
}

// Dispatcher writes audit rows off the request path. The queue is bounded and
// events are dropped on overflow: the audit trail must never break the API.
type Dispatcher struct {
	logger *Logger
	queue  chan Event
}

func NewDispatcher(logger *Logger) *Dispatcher {
	d := &Dispatcher{
		logger: logger,
		queue:  make(chan Event, 100),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	for ev := range d.queue {
		if err := d.logger.Log(
			ev.UserID,
			ev.Action,
			ev.Entity,
			ev.EntityID,
			ev.Metadata,
		); err != nil {
			log.Println("audit error:", err)
		}
	}
}

func (d *Dispatcher) Dispatch(ev Event) {
	select {
	case d.queue <- ev:
	default:
		log.Println("audit queue full, dropping event")
	}
}
