package realtime

// Collections a change event can refer to.
const (
	CollectionAppointments = "appointments"
	CollectionServices     = "services"
)

// Actions mirror the row operations of the store.
const (
	ActionInsert = "INSERT"
	ActionUpdate = "UPDATE"
	ActionDelete = "DELETE"
)

// Event is one row-level change in a watched collection.
type Event struct {
	Collection string `json:"collection"`
	Action     string `json:"action"`
	ID         string `json:"id"`
}
