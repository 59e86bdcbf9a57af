package entity

import (
	"time"

	"github.com/google/uuid"
)

// MedicalRecord is a diagnosis/prescription artifact, created either when a
// doctor completes an appointment or directly by the doctor.
type MedicalRecord struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	DoctorID      uuid.UUID  `gorm:"type:uuid;not null;index" json:"doctor_id"`
	PatientID     uuid.UUID  `gorm:"type:uuid;not null;index" json:"patient_id"`
	AppointmentID *uuid.UUID `gorm:"type:uuid;index" json:"appointment_id,omitempty"`
	RecordDate    time.Time  `gorm:"type:date;not null" json:"record_date"`
	Diagnosis     string     `gorm:"type:text;not null" json:"diagnosis"`
	Prescription  *string    `gorm:"type:text" json:"prescription,omitempty"`
	Notes         *string    `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt     time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Doctor     DoctorProfile `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
	Patient    User          `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	LabResults []LabResult   `gorm:"foreignKey:MedicalRecordID" json:"lab_results,omitempty"`
}

func (MedicalRecord) TableName() string {
	return "medical_records"
}
