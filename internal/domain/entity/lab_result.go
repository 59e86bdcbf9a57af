package entity

import (
	"time"

	"github.com/google/uuid"
)

// LabResult holds one test outcome attached to a medical record.
// Results is free-form key/value data (jsonb).
type LabResult struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	MedicalRecordID uuid.UUID `gorm:"type:uuid;not null;index" json:"medical_record_id"`
	TestName        string    `gorm:"type:varchar(255);not null" json:"test_name"`
	TestDate        time.Time `gorm:"type:date;not null" json:"test_date"`
	Results         JSON      `gorm:"type:jsonb" json:"results,omitempty"`
	NormalRange     string    `gorm:"type:varchar(255)" json:"normal_range,omitempty"`
	Interpretation  string    `gorm:"type:text" json:"interpretation,omitempty"`
	PerformedBy     string    `gorm:"type:varchar(255)" json:"performed_by,omitempty"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`

	// Relationships
	MedicalRecord MedicalRecord `gorm:"foreignKey:MedicalRecordID" json:"medical_record,omitempty"`
}

func (LabResult) TableName() string {
	return "lab_results"
}
