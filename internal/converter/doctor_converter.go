package converter

import (
	"clinic-appointment-server/internal/delivery/dto"
	"clinic-appointment-server/internal/domain/entity"
)

// DoctorToResponse converts a DoctorProfile entity (with preloaded User) to
// DoctorResponse DTO
func DoctorToResponse(profile *entity.DoctorProfile) *dto.DoctorResponse {
	if profile == nil {
		return nil
	}

	phone := ""
	if profile.User.Phone != nil {
		phone = *profile.User.Phone
	}

	return &dto.DoctorResponse{
		ID:          profile.UserID,
		Email:       profile.User.Email,
		FullName:    profile.User.FullName,
		Phone:       phone,
		Specialty:   profile.Specialty,
		Biography:   profile.Biography,
		Education:   profile.Education,
		Languages:   profile.Languages,
		AvatarURL:   profile.AvatarURL,
		Rating:      profile.Rating,
		ReviewCount: profile.ReviewCount,
		IsActive:    profile.User.IsActive,
	}
}

// DoctorsToResponses converts a slice of DoctorProfile entities to DTOs
func DoctorsToResponses(profiles []entity.DoctorProfile) []dto.DoctorResponse {
	responses := make([]dto.DoctorResponse, len(profiles))
	for i, profile := range profiles {
		resp := DoctorToResponse(&profile)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}

// DoctorPatientsToResponses converts doctor-patient relations (with preloaded
// Patient) to patient summaries
func DoctorPatientsToResponses(relations []entity.DoctorPatient) []dto.PatientSummaryResponse {
	responses := make([]dto.PatientSummaryResponse, len(relations))
	for i, relation := range relations {
		phone := ""
		if relation.Patient.Phone != nil {
			phone = *relation.Patient.Phone
		}
		responses[i] = dto.PatientSummaryResponse{
			ID:       relation.PatientID,
			FullName: relation.Patient.FullName,
			Email:    relation.Patient.Email,
			Phone:    phone,
			AddedAt:  relation.AddedAt,
		}
	}
	return responses
}
