package repository

import (
	"clinic-appointment-server/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ScheduleRepository interface {
	Create(db *gorm.DB, schedule *entity.Schedule) error
	FindByID(db *gorm.DB, id int) (*entity.Schedule, error)
	FindByDoctorID(db *gorm.DB, doctorID uuid.UUID) ([]entity.Schedule, error)
	FindByDoctorAndDay(db *gorm.DB, doctorID uuid.UUID, dayOfWeek int) (*entity.Schedule, error)
	CountDoctorsOnDuty(db *gorm.DB, dayOfWeek int) (int64, error)
	Update(db *gorm.DB, schedule *entity.Schedule) error
	Delete(db *gorm.DB, id int) (int64, error)
}
