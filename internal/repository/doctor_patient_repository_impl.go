package repository

import (
	"clinic-appointment-server/internal/domain/entity"
	domainRepo "clinic-appointment-server/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type doctorPatientRepository struct{}

func NewDoctorPatientRepository() domainRepo.DoctorPatientRepository {
	return &doctorPatientRepository{}
}

func (r *doctorPatientRepository) Create(db *gorm.DB, relation *entity.DoctorPatient) error {
	return db.Create(relation).Error
}

func (r *doctorPatientRepository) FindByDoctorID(db *gorm.DB, doctorID uuid.UUID) ([]entity.DoctorPatient, error) {
	var relations []entity.DoctorPatient
	err := db.Preload("Patient").
		Where("doctor_id = ?", doctorID).
		Order("added_at DESC").
		Find(&relations).Error
	if err != nil {
		return nil, err
	}
	return relations, nil
}
