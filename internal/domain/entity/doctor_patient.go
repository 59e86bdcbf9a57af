package entity

import (
	"time"

	"github.com/google/uuid"
)

// DoctorPatient is a denormalized relation linking a doctor to a patient
// they have treated. Written together with the medical record when an
// appointment is completed; backs the doctor's "my patients" listing.
type DoctorPatient struct {
	ID            int       `gorm:"primaryKey;autoIncrement" json:"id"`
	AppointmentID uuid.UUID `gorm:"type:uuid;not null" json:"appointment_id"`
	DoctorID      uuid.UUID `gorm:"type:uuid;not null;index" json:"doctor_id"`
	PatientID     uuid.UUID `gorm:"type:uuid;not null;index" json:"patient_id"`
	AddedAt       time.Time `gorm:"autoCreateTime" json:"added_at"`

	// Relationships
	Patient User `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
}

func (DoctorPatient) TableName() string {
	return "doctor_patients"
}
