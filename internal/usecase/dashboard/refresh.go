package dashboard

import (
	"context"
	"strings"
	"sync"

	"github.com/serenitymassage/clinic-scheduler/internal/catalog"
	domain "github.com/serenitymassage/clinic-scheduler/internal/domain/clinic"
	"github.com/serenitymassage/clinic-scheduler/internal/dto"
	"github.com/serenitymassage/clinic-scheduler/internal/models"
	"github.com/serenitymassage/clinic-scheduler/internal/timezone"
)

// Refresh aggregates everything the dashboard renders. Appointments and
// services are fetched concurrently; an appointments failure fails the whole
// refresh, while the catalog provider absorbs a services failure by serving
// its built-in tier.
type Refresh struct {
	repo     domain.Repository
	catalog  *catalog.Provider
	clinicTZ string
}

func NewRefresh(
	repo domain.Repository,
	provider *catalog.Provider,
	clinicTZ string,
) *Refresh {
	return &Refresh{
		repo:     repo,
		catalog:  provider,
		clinicTZ: clinicTZ,
	}
}

// Execute fetches, buckets and filters. The search query narrows only the
// returned rows; stats always cover the full collection.
func (uc *Refresh) Execute(
	ctx context.Context,
	query string,
) (*dto.DashboardData, error) {

	var (
		wg       sync.WaitGroup
		apps     []models.Appointment
		appsErr  error
		services []models.Service
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		apps, appsErr = uc.repo.ListAppointments(ctx)
	}()
	go func() {
		defer wg.Done()
		services = uc.catalog.List(ctx)
	}()
	wg.Wait()

	if appsErr != nil {
		return nil, appsErr
	}

	today := timezone.TodayISO(uc.clinicTZ)

	return &dto.DashboardData{
		Appointments: filterAppointments(apps, query),
		Services:     services,
		Stats:        computeStats(apps, today),
	}, nil
}

// computeStats buckets by comparing stored date strings against today's.
// Dates are zero-padded ISO strings, so lexical order is calendar order.
func computeStats(apps []models.Appointment, today string) dto.DashboardStats {
	stats := dto.DashboardStats{Total: len(apps)}

	for _, ap := range apps {
		switch {
		case ap.AppointmentDate == today:
			stats.Today++
		case ap.AppointmentDate > today:
			stats.Upcoming++
		}
		if ap.Status == string(domain.StatusPending) {
			stats.Pending++
		}
	}

	return stats
}

// filterAppointments keeps rows whose client name or service type contains
// the query, case-insensitively. An empty query keeps everything.
func filterAppointments(apps []models.Appointment, query string) []models.Appointment {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return apps
	}

	out := make([]models.Appointment, 0, len(apps))
	for _, ap := range apps {
		if strings.Contains(strings.ToLower(ap.Client.FullName), query) ||
			strings.Contains(strings.ToLower(ap.ServiceType), query) {
			out = append(out, ap)
		}
	}
	return out
}
