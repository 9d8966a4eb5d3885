package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/serenitymassage/clinic-scheduler/internal/catalog"
	"github.com/serenitymassage/clinic-scheduler/internal/storeerr"
	"github.com/serenitymassage/clinic-scheduler/internal/usecase/booking"
)

func newPublicRouter(repo *fakeRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)

	h := NewPublicHandler(
		catalog.NewProvider(repo),
		booking.NewCreateBooking(repo, nil, nil),
	)

	r := gin.New()
	r.GET("/api/services", h.ListServices)
	r.POST("/api/bookings", h.CreateBooking)
	return r
}

func TestListServicesFallsBackToBuiltin(t *testing.T) {
	r := newPublicRouter(&fakeRepo{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/services", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data []struct {
			ID       string   `json:"id"`
			Benefits []string `json:"benefits"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Data, 4)
	assert.Equal(t, "swedish", body.Data[0].ID)
	assert.NotNil(t, body.Data[0].Benefits)
}

func TestCreateBookingSucceeds(t *testing.T) {
	repo := &fakeRepo{}
	r := newPublicRouter(repo)

	payload := `{
		"fullName": "Ann Lee",
		"email": "ann@example.com",
		"whatsapp": "+15550001111",
		"serviceType": "swedish",
		"date": "2026-09-15",
		"time": "14:30"
	}`

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/bookings", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Len(t, repo.clients, 1)
	assert.Len(t, repo.appointments, 1)
	assert.Equal(t, "pending", repo.appointments[0].Status)
}

func TestCreateBookingMissingFields(t *testing.T) {
	r := newPublicRouter(&fakeRepo{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/bookings",
		strings.NewReader(`{"fullName": "Ann Lee"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "missing_required_fields")
}

func TestCreateBookingStoreUnreachable(t *testing.T) {
	repo := &fakeRepo{createClientErr: unreachableErr()}
	r := newPublicRouter(repo)

	payload := `{
		"fullName": "Ann Lee",
		"email": "ann@example.com",
		"whatsapp": "+15550001111",
		"serviceType": "swedish",
		"date": "2026-09-15",
		"time": "14:30"
	}`

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/bookings", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), storeerr.UnreachableHint)
}
