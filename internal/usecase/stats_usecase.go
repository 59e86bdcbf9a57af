package usecase

import (
	"context"
	"time"

	"clinic-appointment-server/internal/delivery/dto"
	"clinic-appointment-server/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Sample dashboard figures, not computed from data.
const (
	statsAverageWaitTime = "24 min"
	statsEfficiency      = "87%"
)

type StatsUsecase interface {
	GetStats(ctx context.Context) (*dto.StatsResponse, error)
}

type statsUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	appointmentRepo repository.AppointmentRepository
	scheduleRepo    repository.ScheduleRepository
}

func NewStatsUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
	scheduleRepo repository.ScheduleRepository,
) StatsUsecase {
	return &statsUsecase{
		db:              db,
		log:             log,
		appointmentRepo: appointmentRepo,
		scheduleRepo:    scheduleRepo,
	}
}

// GetStats returns the admin dashboard summary. Doctors on duty counts
// distinct doctors with an available schedule for today's day of week.
func (u *statsUsecase) GetStats(ctx context.Context) (*dto.StatsResponse, error) {
	total, err := u.appointmentRepo.Count(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to count appointments: %+v", err)
		return nil, err
	}

	onDuty, err := u.scheduleRepo.CountDoctorsOnDuty(u.db.WithContext(ctx), int(time.Now().Weekday()))
	if err != nil {
		u.log.Warnf("Failed to count doctors on duty: %+v", err)
		return nil, err
	}

	return &dto.StatsResponse{
		TotalAppointments: total,
		DoctorsOnDuty:     onDuty,
		AverageWaitTime:   statsAverageWaitTime,
		Efficiency:        statsEfficiency,
	}, nil
}
