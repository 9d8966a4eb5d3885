package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/serenitymassage/clinic-scheduler/internal/ai"
	"github.com/serenitymassage/clinic-scheduler/internal/catalog"
	"github.com/serenitymassage/clinic-scheduler/internal/dto"
	"github.com/serenitymassage/clinic-scheduler/internal/models"
	"github.com/serenitymassage/clinic-scheduler/internal/timezone"
	"github.com/serenitymassage/clinic-scheduler/internal/usecase/dashboard"
	"github.com/serenitymassage/clinic-scheduler/internal/usecase/moderation"
)

func newAdminRouter(t *testing.T, repo *fakeRepo) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	summarizer, err := ai.NewSummarizer(context.Background(), "", "")
	require.NoError(t, err)
	t.Cleanup(func() { summarizer.Close() })

	refresh := dashboard.NewRefresh(repo, catalog.NewProvider(repo), timezone.DefaultTimezone)

	h := NewAdminHandler(
		repo,
		refresh,
		dashboard.NewSnapshot(refresh),
		moderation.NewSetStatus(repo, nil, nil),
		moderation.NewDeleteAppointment(repo, nil, nil),
		moderation.NewUpsertService(repo, nil, nil),
		summarizer,
	)

	r := gin.New()
	r.GET("/api/admin/dashboard", h.Dashboard)
	r.PATCH("/api/admin/appointments/:id/status", h.SetAppointmentStatus)
	r.DELETE("/api/admin/appointments/:id", h.DeleteAppointment)
	r.PUT("/api/admin/services", h.UpsertService)
	r.POST("/api/admin/appointments/:id/summary", h.SummarizeNotes)
	r.GET("/api/admin/recovery-tips", h.RecoveryTips)
	return r
}

func seededRepo() *fakeRepo {
	return &fakeRepo{
		appointments: []models.Appointment{
			{
				ID:              "appt-1",
				Client:          models.Client{FullName: "Ann Lee"},
				ServiceType:     "swedish",
				AppointmentDate: "9999-12-31",
				AppointmentTime: "10:00",
				Status:          "pending",
				Notes:           "Shoulder pain after long flights.",
			},
			{
				ID:              "appt-2",
				Client:          models.Client{FullName: "Bob Ray"},
				ServiceType:     "deeptissue",
				AppointmentDate: "0001-01-02",
				AppointmentTime: "11:00",
				Status:          "completed",
			},
		},
	}
}

func TestDashboardReturnsFullPayload(t *testing.T) {
	r := newAdminRouter(t, seededRepo())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/admin/dashboard", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var data dto.DashboardData
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &data))

	assert.Len(t, data.Appointments, 2)
	assert.Len(t, data.Services, 4)
	assert.Equal(t, 2, data.Stats.Total)
	assert.Equal(t, 1, data.Stats.Upcoming)
	assert.Equal(t, 1, data.Stats.Pending)
}

func TestDashboardQueryFiltersAppointments(t *testing.T) {
	r := newAdminRouter(t, seededRepo())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/admin/dashboard?query=tissue", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var data dto.DashboardData
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &data))

	require.Len(t, data.Appointments, 1)
	assert.Equal(t, "Bob Ray", data.Appointments[0].Client.FullName)
	// Stats always describe the whole collection, not the filtered view.
	assert.Equal(t, 2, data.Stats.Total)
}

func TestDashboardReflectsModerationWithoutBroker(t *testing.T) {
	repo := seededRepo()
	r := newAdminRouter(t, repo)

	// Prime the snapshot through the unfiltered view.
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/admin/dashboard", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var before dto.DashboardData
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &before))
	require.Equal(t, 2, before.Stats.Total)

	// No realtime fanout is wired here; the mutation alone must refresh it.
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/admin/appointments/appt-1", nil))
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/admin/dashboard", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var after dto.DashboardData
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &after))
	assert.Equal(t, 1, after.Stats.Total)
}

func TestSetStatusAcceptsAnyKnownValue(t *testing.T) {
	repo := seededRepo()
	r := newAdminRouter(t, repo)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/api/admin/appointments/appt-2/status",
		strings.NewReader(`{"status": "pending"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pending", repo.appointments[1].Status)
}

func TestSetStatusRejectsUnknownValue(t *testing.T) {
	r := newAdminRouter(t, seededRepo())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/api/admin/appointments/appt-1/status",
		strings.NewReader(`{"status": "archived"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid_status")
}

func TestSetStatusUnknownAppointment(t *testing.T) {
	r := newAdminRouter(t, seededRepo())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/api/admin/appointments/nope/status",
		strings.NewReader(`{"status": "confirmed"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteAppointmentIsIdempotent(t *testing.T) {
	repo := seededRepo()
	r := newAdminRouter(t, repo)

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodDelete, "/api/admin/appointments/appt-1", nil)
		r.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)
	}

	assert.Len(t, repo.appointments, 1)
}

func TestUpsertServiceNormalizesSlug(t *testing.T) {
	repo := seededRepo()
	r := newAdminRouter(t, repo)

	payload := `{
		"id": "  HotStone ",
		"name": "Hot Stone",
		"duration": "75 min",
		"price": "$110",
		"benefits": ["Deep warmth", "Muscle release"]
	}`

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/admin/services", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, repo.services, 1)
	assert.Equal(t, "hotstone", repo.services[0].ID)
	assert.Equal(t, []string{"Deep warmth", "Muscle release"}, repo.services[0].Benefits())
}

func TestUpsertServiceMissingFields(t *testing.T) {
	r := newAdminRouter(t, seededRepo())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/admin/services",
		strings.NewReader(`{"id": "x"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSummarizeNotesUsesFallbackWithoutKey(t *testing.T) {
	r := newAdminRouter(t, seededRepo())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/admin/appointments/appt-1/summary", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "appt-1", body["appointmentId"])
	assert.Contains(t, body["summary"], "Client notes for swedish session")
	assert.Contains(t, body["summary"], "Shoulder pain")
}

func TestSummarizeNotesRequiresNotes(t *testing.T) {
	r := newAdminRouter(t, seededRepo())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/admin/appointments/appt-2/summary", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "no_notes")
}

func TestRecoveryTipsDefaultsWithoutKey(t *testing.T) {
	r := newAdminRouter(t, seededRepo())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/admin/recovery-tips?service=deeptissue", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Service string   `json:"service"`
		Tips    []string `json:"tips"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "deeptissue", body.Service)
	assert.Len(t, body.Tips, 3)
}

func TestRecoveryTipsRequiresService(t *testing.T) {
	r := newAdminRouter(t, seededRepo())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/admin/recovery-tips", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
