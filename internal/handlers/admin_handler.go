package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/serenitymassage/clinic-scheduler/internal/ai"
	domain "github.com/serenitymassage/clinic-scheduler/internal/domain/clinic"
	"github.com/serenitymassage/clinic-scheduler/internal/httperr"
	"github.com/serenitymassage/clinic-scheduler/internal/httpresp"
	"github.com/serenitymassage/clinic-scheduler/internal/middleware"
	"github.com/serenitymassage/clinic-scheduler/internal/models"
	"github.com/serenitymassage/clinic-scheduler/internal/storeerr"
	"github.com/serenitymassage/clinic-scheduler/internal/usecase/dashboard"
	"github.com/serenitymassage/clinic-scheduler/internal/usecase/moderation"
)

type AdminHandler struct {
	repo          domain.Repository
	refresh       *dashboard.Refresh
	snapshot      *dashboard.Snapshot
	setStatus     *moderation.SetStatus
	deleteAppt    *moderation.DeleteAppointment
	upsertService *moderation.UpsertService
	summarizer    *ai.Summarizer
}

func NewAdminHandler(
	repo domain.Repository,
	refresh *dashboard.Refresh,
	snapshot *dashboard.Snapshot,
	setStatus *moderation.SetStatus,
	deleteAppt *moderation.DeleteAppointment,
	upsertService *moderation.UpsertService,
	summarizer *ai.Summarizer,
) *AdminHandler {
	return &AdminHandler{
		repo:          repo,
		refresh:       refresh,
		snapshot:      snapshot,
		setStatus:     setStatus,
		deleteAppt:    deleteAppt,
		upsertService: upsertService,
		summarizer:    summarizer,
	}
}

// --------- Requests ---------

type SetStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type UpsertServiceRequest struct {
	ID          string   `json:"id" binding:"required"`
	Name        string   `json:"name" binding:"required"`
	Duration    string   `json:"duration"`
	Price       string   `json:"price"`
	Icon        string   `json:"icon"`
	Description string   `json:"description"`
	Benefits    []string `json:"benefits"`
}

// --------- Handlers ---------

// Dashboard returns the full admin view in one payload: appointments (joined
// with client, optionally filtered by ?query=), the service catalog and the
// stat buckets.
func (h *AdminHandler) Dashboard(c *gin.Context) {
	query := strings.TrimSpace(c.Query("query"))

	// The unfiltered view is the hot path; it reads the event-driven
	// snapshot. Searches always hit the store.
	if query == "" && h.snapshot != nil {
		data, err := h.snapshot.Get(c.Request.Context())
		if err != nil {
			writeStoreError(c, "dashboard_load_failed", err)
			return
		}
		httpresp.OK(c, data)
		return
	}

	data, err := h.refresh.Execute(c.Request.Context(), query)
	if err != nil {
		writeStoreError(c, "dashboard_load_failed", err)
		return
	}

	httpresp.OK(c, data)
}

func (h *AdminHandler) SetAppointmentStatus(c *gin.Context) {
	id := c.Param("id")

	var req SetStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	operatorID := operatorFromContext(c)

	err := h.setStatus.Execute(c.Request.Context(), operatorID, id, domain.Status(req.Status))
	if err != nil {
		switch {
		case httperr.IsBusiness(err, "invalid_status"):
			httperr.BadRequest(c, "invalid_status", "Status must be pending, confirmed, completed or cancelled.")
		case errors.Is(err, gorm.ErrRecordNotFound):
			httperr.NotFound(c, "appointment_not_found", "No appointment with that id.")
		default:
			writeStoreError(c, "status_update_failed", err)
		}
		return
	}

	h.rebuildSnapshot(c)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// DeleteAppointment is idempotent: deleting an id that is already gone still
// answers success.
func (h *AdminHandler) DeleteAppointment(c *gin.Context) {
	id := c.Param("id")

	operatorID := operatorFromContext(c)

	if err := h.deleteAppt.Execute(c.Request.Context(), operatorID, id); err != nil {
		writeStoreError(c, "appointment_delete_failed", err)
		return
	}

	h.rebuildSnapshot(c)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *AdminHandler) UpsertService(c *gin.Context) {
	var req UpsertServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	svc := models.Service{
		ID:          req.ID,
		Name:        req.Name,
		Duration:    req.Duration,
		Price:       req.Price,
		Icon:        req.Icon,
		Description: req.Description,
	}
	svc.SetBenefits(req.Benefits)

	operatorID := operatorFromContext(c)

	if err := h.upsertService.Execute(c.Request.Context(), operatorID, &svc); err != nil {
		if httperr.IsBusiness(err, "missing_service_fields") {
			httperr.BadRequest(c, "missing_service_fields", "Service id and name are required.")
			return
		}
		if storeerr.IsUnreachable(err) {
			httperr.Unavailable(c, "service_catalog_unavailable", storeerr.UnreachableHint)
			return
		}
		httperr.Internal(c, "service_upsert_failed", storeerr.Message(err))
		return
	}

	h.rebuildSnapshot(c)
	httpresp.OK(c, svc)
}

// rebuildSnapshot refreshes the dashboard cache in-process after a mutation.
// The broker fanout still runs for other instances, but a down redis must not
// leave this instance serving stale rows.
func (h *AdminHandler) rebuildSnapshot(c *gin.Context) {
	if h.snapshot != nil {
		h.snapshot.Rebuild(c.Request.Context())
	}
}

// SummarizeNotes produces the staff-facing summary for one appointment's
// intake notes. Configured or not, the summarizer always answers; only a
// missing appointment or empty notes fail the request.
func (h *AdminHandler) SummarizeNotes(c *gin.Context) {
	id := c.Param("id")

	ap, err := h.repo.GetAppointment(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "appointment_not_found", "No appointment with that id.")
			return
		}
		writeStoreError(c, "appointment_load_failed", err)
		return
	}

	if strings.TrimSpace(ap.Notes) == "" {
		httperr.BadRequest(c, "no_notes", "This appointment has no client notes to summarize.")
		return
	}

	summary := h.summarizer.Summarize(c.Request.Context(), ap.Notes, ap.ServiceType)

	c.JSON(http.StatusOK, gin.H{
		"appointmentId": ap.ID,
		"summary":       summary,
	})
}

func (h *AdminHandler) RecoveryTips(c *gin.Context) {
	serviceType := strings.TrimSpace(c.Query("service"))
	if serviceType == "" {
		httperr.BadRequest(c, "missing_service", "Query parameter 'service' is required.")
		return
	}

	tips := h.summarizer.RecoveryTips(c.Request.Context(), serviceType)

	c.JSON(http.StatusOK, gin.H{
		"service": serviceType,
		"tips":    tips,
	})
}

func operatorFromContext(c *gin.Context) *string {
	if v, ok := c.Get(middleware.ContextUserID); ok {
		if id, ok := v.(string); ok && id != "" {
			return &id
		}
	}
	return nil
}
