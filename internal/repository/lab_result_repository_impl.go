package repository

import (
	"clinic-appointment-server/internal/domain/entity"
	domainRepo "clinic-appointment-server/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type labResultRepository struct{}

func NewLabResultRepository() domainRepo.LabResultRepository {
	return &labResultRepository{}
}

func (r *labResultRepository) Create(db *gorm.DB, result *entity.LabResult) error {
	return db.Create(result).Error
}

func (r *labResultRepository) FindByMedicalRecordID(db *gorm.DB, medicalRecordID uuid.UUID) ([]entity.LabResult, error) {
	var results []entity.LabResult
	err := db.Where("medical_record_id = ?", medicalRecordID).
		Order("test_date DESC").
		Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}
