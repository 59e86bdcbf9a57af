package service

import (
	"clinic-appointment-server/internal/domain/entity"
	"clinic-appointment-server/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// AuditService records who did what to which entity. Record is called with
// the caller's transaction so the trail commits or rolls back together with
// the mutation it describes.
type AuditService interface {
	Record(tx *gorm.DB, userID *uuid.UUID, action string, entityName string, entityID string, metadata map[string]interface{}) error
}

type auditService struct {
	log       *logrus.Logger
	auditRepo repository.AuditLogRepository
}

func NewAuditService(log *logrus.Logger, auditRepo repository.AuditLogRepository) AuditService {
	return &auditService{
		log:       log,
		auditRepo: auditRepo,
	}
}

func (s *auditService) Record(tx *gorm.DB, userID *uuid.UUID, action string, entityName string, entityID string, metadata map[string]interface{}) error {
	data := entity.JSON{
		"entity":    entityName,
		"entity_id": entityID,
	}
	for k, v := range metadata {
		data[k] = v
	}

	auditLog := &entity.AuditLog{
		UserID:   userID,
		Action:   action,
		Metadata: data,
	}

	if err := s.auditRepo.Create(tx, auditLog); err != nil {
		s.log.Warnf("Failed to create audit log: %+v", err)
		return err
	}

	return nil
}
