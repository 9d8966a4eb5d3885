package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/serenitymassage/clinic-scheduler/internal/models"
	"github.com/serenitymassage/clinic-scheduler/internal/storeerr"
)

const (
	defaultAuditLimit = 50
	maxAuditLimit     = 200
)

type AuditLogsHandler struct {
	db *gorm.DB
}

func NewAuditLogsHandler(db *gorm.DB) *AuditLogsHandler {
	return &AuditLogsHandler{db: db}
}

// List returns audit entries newest first, optionally filtered by action or
// entity, with offset paging.
func (h *AuditLogsHandler) List(c *gin.Context) {
	q := h.db.WithContext(c.Request.Context()).Model(&models.AuditLog{})

	if action := c.Query("action"); action != "" {
		q = q.Where("action = ?", action)
	}
	if entity := c.Query("entity"); entity != "" {
		q = q.Where("entity = ?", entity)
	}

	limit := parsePositive(c.Query("limit"), defaultAuditLimit)
	if limit > maxAuditLimit {
		limit = maxAuditLimit
	}
	offset := parsePositive(c.Query("offset"), 0)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		writeStoreError(c, "audit_logs_load_failed", storeerr.Classify(err))
		return
	}

	var logs []models.AuditLog
	err := q.Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&logs).Error
	if err != nil {
		writeStoreError(c, "audit_logs_load_failed", storeerr.Classify(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":   logs,
		"total":  total,
		"limit":  limit,
		"offset": offset,
	})
}

func parsePositive(raw string, fallback int) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return fallback
	}
	return n
}
