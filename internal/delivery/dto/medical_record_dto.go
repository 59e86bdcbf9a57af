package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreateMedicalRecordRequest struct {
	PatientID    uuid.UUID `json:"patient_id" validate:"required"`
	Date         string    `json:"date" validate:"required"`
	Diagnosis    string    `json:"diagnosis" validate:"required,min=2"`
	Prescription string    `json:"prescription" validate:"omitempty"`
	Notes        string    `json:"notes" validate:"omitempty"`
}

type CreateLabResultRequest struct {
	TestName       string                 `json:"test_name" validate:"required,min=2,max=255"`
	TestDate       string                 `json:"test_date" validate:"required"`
	Results        map[string]interface{} `json:"results" validate:"omitempty"`
	NormalRange    string                 `json:"normal_range" validate:"omitempty,max=255"`
	Interpretation string                 `json:"interpretation" validate:"omitempty"`
	PerformedBy    string                 `json:"performed_by" validate:"omitempty,max=255"`
}

// Response DTOs

type MedicalRecordResponse struct {
	ID            uuid.UUID           `json:"id"`
	DoctorID      uuid.UUID           `json:"doctor_id"`
	PatientID     uuid.UUID           `json:"patient_id"`
	AppointmentID *uuid.UUID          `json:"appointment_id,omitempty"`
	Date          string              `json:"date"`
	Diagnosis     string              `json:"diagnosis"`
	Prescription  string              `json:"prescription,omitempty"`
	Notes         string              `json:"notes,omitempty"`
	DoctorName    string              `json:"doctor_name,omitempty"`
	PatientName   string              `json:"patient_name,omitempty"`
	LabResults    []LabResultResponse `json:"lab_results,omitempty"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
}

type MedicalRecordListResponse struct {
	Records []MedicalRecordResponse `json:"records"`
	Total   int                     `json:"total"`
}

type LabResultResponse struct {
	ID              uuid.UUID              `json:"id"`
	MedicalRecordID uuid.UUID              `json:"medical_record_id"`
	TestName        string                 `json:"test_name"`
	TestDate        string                 `json:"test_date"`
	Results         map[string]interface{} `json:"results,omitempty"`
	NormalRange     string                 `json:"normal_range,omitempty"`
	Interpretation  string                 `json:"interpretation,omitempty"`
	PerformedBy     string                 `json:"performed_by,omitempty"`
	CreatedAt       time.Time              `json:"created_at"`
}

type LabResultListResponse struct {
	LabResults []LabResultResponse `json:"lab_results"`
	Total      int                 `json:"total"`
}
