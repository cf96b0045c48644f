package services

import (
	"encoding/json"
	"fmt"
	"lawyer_tools/models"
	"log"

	"gorm.io/gorm"
)

// AuditContext contains contextual information for audit logging
type AuditContext struct {
	UserID    string
	UserName  string
	IPAddress string
	UserAgent string
}

// AuditEvent describes one action to record
type AuditEvent struct {
	Action       models.AuditAction
	ResourceType string
	ResourceID   string
	ResourceName string
	Description  string
	Details      interface{}
}

// RecordAuditEvent writes an audit log entry synchronously
func RecordAuditEvent(db *gorm.DB, ctx AuditContext, event AuditEvent) error {
	var details string
	if event.Details != nil {
		if bytes, err := json.Marshal(event.Details); err == nil {
			details = string(bytes)
		}
	}

	auditLog := models.AuditLog{
		UserID:       ptrIfNotEmpty(ctx.UserID),
		UserName:     ctx.UserName,
		ResourceType: event.ResourceType,
		ResourceID:   event.ResourceID,
		ResourceName: event.ResourceName,
		Action:       event.Action,
		Description:  event.Description,
		Details:      details,
		IPAddress:    ctx.IPAddress,
		UserAgent:    ctx.UserAgent,
	}

	if err := db.Create(&auditLog).Error; err != nil {
		return fmt.Errorf("failed to create audit log: %w", err)
	}
	return nil
}

// LogAuditEvent records an audit log entry without blocking the request
func LogAuditEvent(db *gorm.DB, ctx AuditContext, event AuditEvent) {
	if db == nil {
		return
	}
	go func() {
		if err := RecordAuditEvent(db, ctx, event); err != nil {
			log.Printf("[AUDIT] %v", err)
		}
	}()
}

// ptrIfNotEmpty returns a pointer to the string if not empty, nil otherwise
func ptrIfNotEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// GetUserAuditLogs returns the most recent entries for a user, newest first
func GetUserAuditLogs(db *gorm.DB, userID string, limit int) ([]models.AuditLog, error) {
	if limit <= 0 {
		limit = 20
	}
	var logs []models.AuditLog
	err := db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&logs).Error
	return logs, err
}
