package services

import (
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/rentwheels/vehicle-rental-backend/internal/database"
	"github.com/rentwheels/vehicle-rental-backend/internal/models"
	"github.com/rentwheels/vehicle-rental-backend/internal/utils"
)

// AuditService records successful logins with client device information.
// Recording is best effort; a failed insert never fails the login itself.
type AuditService struct {
	db      database.DB
	enabled bool
}

// NewAuditService creates a new audit service
func NewAuditService(db database.DB, enabled bool) *AuditService {
	return &AuditService{
		db:      db,
		enabled: enabled,
	}
}

// RecordLogin stores a login event for the given account
func (s *AuditService) RecordLogin(accountID uuid.UUID, role models.Role, ipAddress, userAgent string) {
	if !s.enabled {
		return
	}

	deviceInfo := utils.ParseUserAgent(userAgent)

	query := `
		INSERT INTO login_audit (audit_id, account_id, role, ip_address, user_agent, device_type, os, browser, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
	`

	_, err := s.db.Exec(query,
		uuid.New(), accountID, role, ipAddress, userAgent,
		deviceInfo.DeviceType, deviceInfo.OS, deviceInfo.Browser,
	)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"account_id": accountID,
			"role":       role,
			"error":      err.Error(),
		}).Warn("failed to record login audit event")
	}
}
