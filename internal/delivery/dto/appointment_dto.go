package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreateAppointmentRequest struct {
	DoctorID  uuid.UUID  `json:"doctor_id" validate:"required"`
	PatientID *uuid.UUID `json:"patient_id" validate:"omitempty"` // admin only, defaults to caller
	Date      string     `json:"date" validate:"required"`
	StartTime string     `json:"start_time" validate:"required"`
	EndTime   string     `json:"end_time" validate:"required"`
	Reason    string     `json:"reason" validate:"required,min=3"`
	Notes     string     `json:"notes" validate:"omitempty"`
}

type UpdateAppointmentRequest struct {
	Reason    string `json:"reason" validate:"omitempty,min=3"`
	Notes     string `json:"notes" validate:"omitempty"`
	Date      string `json:"date" validate:"omitempty"`
	StartTime string `json:"start_time" validate:"omitempty"`
	EndTime   string `json:"end_time" validate:"omitempty"`
}

type RescheduleAppointmentRequest struct {
	Date      string `json:"date" validate:"required"`
	StartTime string `json:"start_time" validate:"required"`
	EndTime   string `json:"end_time" validate:"required"`
}

type CompleteAppointmentRequest struct {
	Diagnosis    string `json:"diagnosis" validate:"required,min=2"`
	Prescription string `json:"prescription" validate:"omitempty"`
	Notes        string `json:"notes" validate:"omitempty"`
}

// Response DTOs

type AppointmentResponse struct {
	ID          uuid.UUID       `json:"id"`
	DoctorID    uuid.UUID       `json:"doctor_id"`
	PatientID   uuid.UUID       `json:"patient_id"`
	Date        string          `json:"date"`
	StartTime   string          `json:"start_time"`
	EndTime     string          `json:"end_time"`
	Reason      string          `json:"reason"`
	Notes       string          `json:"notes,omitempty"`
	Status      string          `json:"status"`
	Doctor      *DoctorResponse `json:"doctor,omitempty"`
	PatientName string          `json:"patient_name,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int                   `json:"total"`
}
