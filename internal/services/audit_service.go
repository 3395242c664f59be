package services

import (
	"encoding/json"

	"gorm.io/gorm"

	"github.com/JimJafar/pension-tracker/internal/logger"
	"github.com/JimJafar/pension-tracker/internal/models"
)

// Audit actions recorded by the handlers.
const (
	AuditCreatePension      = "CREATE_PENSION"
	AuditUpdatePension      = "UPDATE_PENSION"
	AuditDeletePension      = "DELETE_PENSION"
	AuditCreateContribution = "CREATE_CONTRIBUTION"
	AuditUpdateContribution = "UPDATE_CONTRIBUTION"
	AuditDeleteContribution = "DELETE_CONTRIBUTION"
	AuditCreateHolding      = "CREATE_HOLDING"
	AuditUpdateHolding      = "UPDATE_HOLDING"
	AuditDeleteHolding      = "DELETE_HOLDING"
	AuditLogin              = "LOGIN"
)

// auditService handles audit log recording.
type auditService struct {
	db *gorm.DB
}

// NewAuditService creates a new AuditServicer.
func NewAuditService(db *gorm.DB) AuditServicer {
	return &auditService{db: db}
}

// Log records an audit event. Failures are logged and swallowed so the
// audited operation still succeeds.
func (s *auditService) Log(userID, action, resourceType, resourceID, ipAddress string, changes map[string]interface{}) {
	var changesJSON string
	if changes != nil {
		data, err := json.Marshal(changes)
		if err != nil {
			logger.Get().Errorw("failed to marshal audit log changes", "error", err, "action", action)
			changesJSON = "{}"
		} else {
			changesJSON = string(data)
		}
	}

	entry := &models.AuditLog{
		UserID:       userID,
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		IPAddress:    ipAddress,
		Changes:      changesJSON,
	}

	if err := s.db.Create(entry).Error; err != nil {
		logger.Get().Errorw("failed to create audit log entry",
			"error", err,
			"user_id", userID,
			"action", action,
			"resource_type", resourceType,
			"resource_id", resourceID,
		)
	}
}
