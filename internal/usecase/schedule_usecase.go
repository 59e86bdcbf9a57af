package usecase

import (
	"context"
	"errors"
	"strconv"
	"time"

	"clinic-appointment-server/internal/converter"
	"clinic-appointment-server/internal/delivery/dto"
	"clinic-appointment-server/internal/domain/entity"
	"clinic-appointment-server/internal/domain/repository"
	"clinic-appointment-server/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrScheduleNotFound  = errors.New("schedule not found")
	ErrScheduleNotOwned  = errors.New("schedule does not belong to you")
	ErrScheduleConflict  = errors.New("doctor already has a schedule for this day of week")
	ErrInvalidTimeFormat = errors.New("invalid time format, use HH:MM")
	ErrInvalidTimeRange  = errors.New("start time must be before end time")
	ErrInvalidDateFormat = errors.New("invalid date format, use YYYY-MM-DD")
)

type ScheduleUsecase interface {
	CreateSchedule(ctx context.Context, req *dto.CreateScheduleRequest) (*dto.ScheduleResponse, error)
	GetSchedule(ctx context.Context, scheduleID int) (*dto.ScheduleResponse, error)
	GetSchedulesByDoctor(ctx context.Context, doctorID uuid.UUID) (*dto.ScheduleListResponse, error)
	UpdateSchedule(ctx context.Context, scheduleID int, req *dto.UpdateScheduleRequest) (*dto.ScheduleResponse, error)
	DeleteSchedule(ctx context.Context, scheduleID int) error
}

type scheduleUsecase struct {
	db                *gorm.DB
	log               *logrus.Logger
	scheduleRepo      repository.ScheduleRepository
	doctorProfileRepo repository.DoctorProfileRepository
	auditService      service.AuditService
}

func NewScheduleUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	scheduleRepo repository.ScheduleRepository,
	doctorProfileRepo repository.DoctorProfileRepository,
	auditService service.AuditService,
) ScheduleUsecase {
	return &scheduleUsecase{
		db:                db,
		log:               log,
		scheduleRepo:      scheduleRepo,
		doctorProfileRepo: doctorProfileRepo,
		auditService:      auditService,
	}
}

// parseDate parses a YYYY-MM-DD date string.
func parseDate(s string) (time.Time, error) {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, ErrInvalidDateFormat
	}
	return d, nil
}

// validateClockTime accepts HH:MM or HH:MM:SS.
func validateClockTime(s string) error {
	if _, err := time.Parse("15:04", s); err == nil {
		return nil
	}
	if _, err := time.Parse("15:04:05", s); err == nil {
		return nil
	}
	return ErrInvalidTimeFormat
}

func validateTimeRange(start, end string) error {
	if err := validateClockTime(start); err != nil {
		return err
	}
	if err := validateClockTime(end); err != nil {
		return err
	}
	if start >= end {
		return ErrInvalidTimeRange
	}
	return nil
}

// CreateSchedule adds one weekly availability window for a doctor. A doctor
// may have at most one schedule per day of week; a second create for the same
// pair is rejected with ErrScheduleConflict. The unique index backs the
// pre-check against concurrent creates.
func (u *scheduleUsecase) CreateSchedule(ctx context.Context, req *dto.CreateScheduleRequest) (*dto.ScheduleResponse, error) {
	userID, roleID, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	if roleID == entity.RoleIDDoctor && req.DoctorID != userID {
		return nil, ErrScheduleNotOwned
	}

	doctor, err := u.doctorProfileRepo.FindByUserID(u.db.WithContext(ctx), req.DoctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", req.DoctorID, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	if err := validateTimeRange(req.StartTime, req.EndTime); err != nil {
		return nil, err
	}

	existing, err := u.scheduleRepo.FindByDoctorAndDay(u.db.WithContext(ctx), req.DoctorID, req.DayOfWeek)
	if err != nil {
		u.log.Warnf("Failed to check existing schedule: %+v", err)
		return nil, err
	}
	if existing != nil {
		return nil, ErrScheduleConflict
	}

	isAvailable := true
	if req.IsAvailable != nil {
		isAvailable = *req.IsAvailable
	}

	schedule := &entity.Schedule{
		DoctorID:    req.DoctorID,
		DayOfWeek:   req.DayOfWeek,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		IsAvailable: isAvailable,
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.scheduleRepo.Create(tx, schedule); err != nil {
		if isDuplicateKeyError(err, "uq_schedules_doctor_day") {
			return nil, ErrScheduleConflict
		}
		u.log.Warnf("Failed to create schedule: %+v", err)
		return nil, err
	}

	if err := u.auditService.Record(tx, &userID, entity.AuditActionScheduleCreate, "schedule", strconv.Itoa(schedule.ID), map[string]interface{}{
		"doctor_id":   schedule.DoctorID.String(),
		"day_of_week": schedule.DayOfWeek,
	}); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed to commit schedule create: %+v", err)
		return nil, err
	}

	return converter.ScheduleToResponse(schedule), nil
}

func (u *scheduleUsecase) GetSchedule(ctx context.Context, scheduleID int) (*dto.ScheduleResponse, error) {
	schedule, err := u.scheduleRepo.FindByID(u.db.WithContext(ctx), scheduleID)
	if err != nil {
		u.log.Warnf("Failed to find schedule %d: %+v", scheduleID, err)
		return nil, err
	}
	if schedule == nil {
		return nil, ErrScheduleNotFound
	}

	return converter.ScheduleToResponse(schedule), nil
}

func (u *scheduleUsecase) GetSchedulesByDoctor(ctx context.Context, doctorID uuid.UUID) (*dto.ScheduleListResponse, error) {
	schedules, err := u.scheduleRepo.FindByDoctorID(u.db.WithContext(ctx), doctorID)
	if err != nil {
		u.log.Warnf("Failed to find schedules for doctor %s: %+v", doctorID, err)
		return nil, err
	}

	return &dto.ScheduleListResponse{
		Schedules: converter.SchedulesToResponses(schedules),
		Total:     len(schedules),
	}, nil
}

func (u *scheduleUsecase) UpdateSchedule(ctx context.Context, scheduleID int, req *dto.UpdateScheduleRequest) (*dto.ScheduleResponse, error) {
	userID, roleID, err := caller(ctx)
	if err != nil {
		return nil, err
	}

	schedule, err := u.scheduleRepo.FindByID(u.db.WithContext(ctx), scheduleID)
	if err != nil {
		u.log.Warnf("Failed to find schedule %d: %+v", scheduleID, err)
		return nil, err
	}
	if schedule == nil {
		return nil, ErrScheduleNotFound
	}
	if roleID == entity.RoleIDDoctor && schedule.DoctorID != userID {
		return nil, ErrScheduleNotOwned
	}

	if req.DayOfWeek != nil && *req.DayOfWeek != schedule.DayOfWeek {
		existing, err := u.scheduleRepo.FindByDoctorAndDay(u.db.WithContext(ctx), schedule.DoctorID, *req.DayOfWeek)
		if err != nil {
			u.log.Warnf("Failed to check existing schedule: %+v", err)
			return nil, err
		}
		if existing != nil {
			return nil, ErrScheduleConflict
		}
		schedule.DayOfWeek = *req.DayOfWeek
	}
	if req.StartTime != "" {
		schedule.StartTime = req.StartTime
	}
	if req.EndTime != "" {
		schedule.EndTime = req.EndTime
	}
	if err := validateTimeRange(schedule.StartTime, schedule.EndTime); err != nil {
		return nil, err
	}
	if req.IsAvailable != nil {
		schedule.IsAvailable = *req.IsAvailable
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.scheduleRepo.Update(tx, schedule); err != nil {
		if isDuplicateKeyError(err, "uq_schedules_doctor_day") {
			return nil, ErrScheduleConflict
		}
		u.log.Warnf("Failed to update schedule %d: %+v", scheduleID, err)
		return nil, err
	}

	if err := u.auditService.Record(tx, &userID, entity.AuditActionScheduleUpdate, "schedule", strconv.Itoa(schedule.ID), map[string]interface{}{
		"doctor_id":    schedule.DoctorID.String(),
		"day_of_week":  schedule.DayOfWeek,
		"is_available": schedule.IsAvailable,
	}); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed to commit schedule update: %+v", err)
		return nil, err
	}

	return converter.ScheduleToResponse(schedule), nil
}

func (u *scheduleUsecase) DeleteSchedule(ctx context.Context, scheduleID int) error {
	userID, roleID, err := caller(ctx)
	if err != nil {
		return err
	}

	if roleID == entity.RoleIDDoctor {
		schedule, err := u.scheduleRepo.FindByID(u.db.WithContext(ctx), scheduleID)
		if err != nil {
			u.log.Warnf("Failed to find schedule %d: %+v", scheduleID, err)
			return err
		}
		if schedule == nil {
			return ErrScheduleNotFound
		}
		if schedule.DoctorID != userID {
			return ErrScheduleNotOwned
		}
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	affected, err := u.scheduleRepo.Delete(tx, scheduleID)
	if err != nil {
		u.log.Warnf("Failed to delete schedule %d: %+v", scheduleID, err)
		return err
	}
	if affected == 0 {
		return ErrScheduleNotFound
	}

	if err := u.auditService.Record(tx, &userID, entity.AuditActionScheduleDelete, "schedule", strconv.Itoa(scheduleID), nil); err != nil {
		return err
	}

	return tx.Commit().Error
}
