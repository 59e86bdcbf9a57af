package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreateScheduleRequest struct {
	DoctorID    uuid.UUID `json:"doctor_id" validate:"required"`
	DayOfWeek   int       `json:"day_of_week" validate:"gte=0,lte=6"`
	StartTime   string    `json:"start_time" validate:"required"`
	EndTime     string    `json:"end_time" validate:"required"`
	IsAvailable *bool     `json:"is_available" validate:"omitempty"`
}

type UpdateScheduleRequest struct {
	DayOfWeek   *int   `json:"day_of_week" validate:"omitempty,gte=0,lte=6"`
	StartTime   string `json:"start_time" validate:"omitempty"`
	EndTime     string `json:"end_time" validate:"omitempty"`
	IsAvailable *bool  `json:"is_available" validate:"omitempty"`
}

// Response DTOs

type ScheduleResponse struct {
	ID          int             `json:"id"`
	DoctorID    uuid.UUID       `json:"doctor_id"`
	DayOfWeek   int             `json:"day_of_week"`
	StartTime   string          `json:"start_time"`
	EndTime     string          `json:"end_time"`
	IsAvailable bool            `json:"is_available"`
	Doctor      *DoctorResponse `json:"doctor,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

type ScheduleListResponse struct {
	Schedules []ScheduleResponse `json:"schedules"`
	Total     int                `json:"total"`
}
