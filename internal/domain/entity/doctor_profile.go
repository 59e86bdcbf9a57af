package entity

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DoctorProfile represents doctor-specific profile data.
// It shares its primary key with the owning user record.
type DoctorProfile struct {
	UserID      uuid.UUID       `gorm:"type:uuid;primaryKey" json:"user_id"`
	Specialty   string          `gorm:"type:varchar(100);not null;index" json:"specialty"`
	Biography   string          `gorm:"type:text" json:"biography,omitempty"`
	Education   string          `gorm:"type:text" json:"education,omitempty"`
	Languages   string          `gorm:"type:varchar(255)" json:"languages,omitempty"`
	AvatarURL   string          `gorm:"type:text" json:"avatar_url,omitempty"`
	Rating      decimal.Decimal `gorm:"type:decimal(2,1);not null;default:0.0" json:"rating"`
	ReviewCount int             `gorm:"not null;default:0" json:"review_count"`

	// Relationships
	User      User       `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Schedules []Schedule `gorm:"foreignKey:DoctorID" json:"schedules,omitempty"`
}

func (DoctorProfile) TableName() string {
	return "doctor_profiles"
}
