package repository

import (
	"clinic-appointment-server/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DoctorPatientRepository interface {
	Create(db *gorm.DB, relation *entity.DoctorPatient) error
	FindByDoctorID(db *gorm.DB, doctorID uuid.UUID) ([]entity.DoctorPatient, error)
}
