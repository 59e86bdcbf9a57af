package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Request DTOs

type UpdateDoctorRequest struct {
	FullName  string `json:"full_name" validate:"omitempty,min=2,max=255"`
	Phone     string `json:"phone" validate:"omitempty,max=20"`
	Specialty string `json:"specialty" validate:"omitempty,min=2,max=100"`
	Biography string `json:"biography" validate:"omitempty"`
	Education string `json:"education" validate:"omitempty"`
	Languages string `json:"languages" validate:"omitempty,max=255"`
	AvatarURL string `json:"avatar_url" validate:"omitempty,url"`
	IsActive  *bool  `json:"is_active" validate:"omitempty"`
}

// Response DTOs

type DoctorResponse struct {
	ID          uuid.UUID       `json:"id"`
	Email       string          `json:"email"`
	FullName    string          `json:"full_name"`
	Phone       string          `json:"phone,omitempty"`
	Specialty   string          `json:"specialty"`
	Biography   string          `json:"biography,omitempty"`
	Education   string          `json:"education,omitempty"`
	Languages   string          `json:"languages,omitempty"`
	AvatarURL   string          `json:"avatar_url,omitempty"`
	Rating      decimal.Decimal `json:"rating"`
	ReviewCount int             `json:"review_count"`
	IsActive    bool            `json:"is_active"`
}

type DoctorListResponse struct {
	Doctors []DoctorResponse `json:"doctors"`
	Total   int              `json:"total"`
}

type PatientSummaryResponse struct {
	ID       uuid.UUID `json:"id"`
	FullName string    `json:"full_name"`
	Email    string    `json:"email"`
	Phone    string    `json:"phone,omitempty"`
	AddedAt  time.Time `json:"added_at"`
}

type PatientListResponse struct {
	Patients []PatientSummaryResponse `json:"patients"`
	Total    int                      `json:"total"`
}
