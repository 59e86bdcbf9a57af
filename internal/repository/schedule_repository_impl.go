package repository

import (
	"errors"

	"clinic-appointment-server/internal/domain/entity"
	domainRepo "clinic-appointment-server/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type scheduleRepository struct{}

func NewScheduleRepository() domainRepo.ScheduleRepository {
	return &scheduleRepository{}
}

func (r *scheduleRepository) Create(db *gorm.DB, schedule *entity.Schedule) error {
	return db.Create(schedule).Error
}

func (r *scheduleRepository) FindByID(db *gorm.DB, id int) (*entity.Schedule, error) {
	var schedule entity.Schedule
	err := db.Preload("Doctor.User").Where("id = ?", id).First(&schedule).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &schedule, nil
}

func (r *scheduleRepository) FindByDoctorID(db *gorm.DB, doctorID uuid.UUID) ([]entity.Schedule, error) {
	var schedules []entity.Schedule
	err := db.Where("doctor_id = ?", doctorID).
		Order("day_of_week ASC, start_time ASC").
		Find(&schedules).Error
	if err != nil {
		return nil, err
	}
	return schedules, nil
}

func (r *scheduleRepository) FindByDoctorAndDay(db *gorm.DB, doctorID uuid.UUID, dayOfWeek int) (*entity.Schedule, error) {
	var schedule entity.Schedule
	err := db.Where("doctor_id = ? AND day_of_week = ?", doctorID, dayOfWeek).
		First(&schedule).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &schedule, nil
}

// CountDoctorsOnDuty counts distinct doctors with an available window on the
// given weekday.
func (r *scheduleRepository) CountDoctorsOnDuty(db *gorm.DB, dayOfWeek int) (int64, error) {
	var count int64
	err := db.Model(&entity.Schedule{}).
		Where("day_of_week = ? AND is_available = ?", dayOfWeek, true).
		Distinct("doctor_id").
		Count(&count).Error
	return count, err
}

func (r *scheduleRepository) Update(db *gorm.DB, schedule *entity.Schedule) error {
	return db.Omit("Doctor").Save(schedule).Error
}

func (r *scheduleRepository) Delete(db *gorm.DB, id int) (int64, error) {
	result := db.Where("id = ?", id).Delete(&entity.Schedule{})
	return result.RowsAffected, result.Error
}
