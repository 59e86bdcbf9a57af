package converter

import (
	"clinic-appointment-server/internal/delivery/dto"
	"clinic-appointment-server/internal/domain/entity"

	"github.com/google/uuid"
)

// MedicalRecordToResponse converts a MedicalRecord entity to DTO
func MedicalRecordToResponse(record *entity.MedicalRecord) *dto.MedicalRecordResponse {
	if record == nil {
		return nil
	}

	prescription := ""
	if record.Prescription != nil {
		prescription = *record.Prescription
	}
	notes := ""
	if record.Notes != nil {
		notes = *record.Notes
	}

	response := &dto.MedicalRecordResponse{
		ID:            record.ID,
		DoctorID:      record.DoctorID,
		PatientID:     record.PatientID,
		AppointmentID: record.AppointmentID,
		Date:          record.RecordDate.Format("2006-01-02"),
		Diagnosis:     record.Diagnosis,
		Prescription:  prescription,
		Notes:         notes,
		CreatedAt:     record.CreatedAt,
		UpdatedAt:     record.UpdatedAt,
	}

	if record.Doctor.UserID != uuid.Nil {
		response.DoctorName = record.Doctor.User.FullName
	}
	if record.Patient.ID != uuid.Nil {
		response.PatientName = record.Patient.FullName
	}
	if len(record.LabResults) > 0 {
		response.LabResults = LabResultsToResponses(record.LabResults)
	}

	return response
}

// MedicalRecordsToResponses converts a slice of MedicalRecord entities to DTOs
func MedicalRecordsToResponses(records []entity.MedicalRecord) []dto.MedicalRecordResponse {
	responses := make([]dto.MedicalRecordResponse, len(records))
	for i, record := range records {
		resp := MedicalRecordToResponse(&record)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}

// LabResultToResponse converts a LabResult entity to DTO
func LabResultToResponse(result *entity.LabResult) *dto.LabResultResponse {
	if result == nil {
		return nil
	}

	return &dto.LabResultResponse{
		ID:              result.ID,
		MedicalRecordID: result.MedicalRecordID,
		TestName:        result.TestName,
		TestDate:        result.TestDate.Format("2006-01-02"),
		Results:         map[string]interface{}(result.Results),
		NormalRange:     result.NormalRange,
		Interpretation:  result.Interpretation,
		PerformedBy:     result.PerformedBy,
		CreatedAt:       result.CreatedAt,
	}
}

// LabResultsToResponses converts a slice of LabResult entities to DTOs
func LabResultsToResponses(results []entity.LabResult) []dto.LabResultResponse {
	responses := make([]dto.LabResultResponse, len(results))
	for i, result := range results {
		resp := LabResultToResponse(&result)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
