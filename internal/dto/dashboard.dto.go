package dto

import "github.com/serenitymassage/clinic-scheduler/internal/models"

// DashboardStats is derived on every refresh from the full appointment set,
// never maintained incrementally.
type DashboardStats struct {
	Total    int `json:"total"`
	Today    int `json:"today"`
	Upcoming int `json:"upcoming"`
	Pending  int `json:"pending"`
}

// DashboardData is one refresh result: the (possibly filtered) appointment
// queue, the effective service catalog, and the stats over the full set.
type DashboardData struct {
	Appointments []models.Appointment `json:"appointments"`
	Services     []models.Service     `json:"services"`
	Stats        DashboardStats       `json:"stats"`
}
