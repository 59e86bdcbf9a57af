package repository

import (
	"clinic-appointment-server/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LabResultRepository interface {
	Create(db *gorm.DB, result *entity.LabResult) error
	FindByMedicalRecordID(db *gorm.DB, medicalRecordID uuid.UUID) ([]entity.LabResult, error)
}
