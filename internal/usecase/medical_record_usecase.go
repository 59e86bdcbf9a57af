package usecase

import (
	"context"
	"errors"

	"clinic-appointment-server/internal/converter"
	"clinic-appointment-server/internal/delivery/dto"
	"clinic-appointment-server/internal/domain/entity"
	"clinic-appointment-server/internal/domain/repository"
	"clinic-appointment-server/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrMedicalRecordNotFound = errors.New("medical record not found")
	ErrRecordNotOwned        = errors.New("medical record does not belong to you")
)

type MedicalRecordUsecase interface {
	CreateRecord(ctx context.Context, req *dto.CreateMedicalRecordRequest) (*dto.MedicalRecordResponse, error)
	ListRecords(ctx context.Context) (*dto.MedicalRecordListResponse, error)
	GetRecord(ctx context.Context, id uuid.UUID) (*dto.MedicalRecordResponse, error)
	AddLabResult(ctx context.Context, recordID uuid.UUID, req *dto.CreateLabResultRequest) (*dto.LabResultResponse, error)
	ListLabResults(ctx context.Context, recordID uuid.UUID) (*dto.LabResultListResponse, error)
}

type medicalRecordUsecase struct {
	db            *gorm.DB
	log           *logrus.Logger
	recordRepo    repository.MedicalRecordRepository
	labResultRepo repository.LabResultRepository
	userRepo      repository.UserRepository
	auditService  service.AuditService
}

func NewMedicalRecordUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	recordRepo repository.MedicalRecordRepository,
	labResultRepo repository.LabResultRepository,
	userRepo repository.UserRepository,
	auditService service.AuditService,
) MedicalRecordUsecase {
	return &medicalRecordUsecase{
		db:            db,
		log:           log,
		recordRepo:    recordRepo,
		labResultRepo: labResultRepo,
		userRepo:      userRepo,
		auditService:  auditService,
	}
}

// CreateRecord writes a standalone medical record, one not tied to an
// appointment. Only doctors create records; the caller becomes the record's
// doctor.
func (u *medicalRecordUsecase) CreateRecord(ctx context.Context, req *dto.CreateMedicalRecordRequest) (*dto.MedicalRecordResponse, error) {
	userID, _, err := caller(ctx)
	if err != nil {
		return nil, err
	}

	patient, err := u.userRepo.FindByID(u.db.WithContext(ctx), req.PatientID)
	if err != nil {
		u.log.Warnf("Failed to find patient %s: %+v", req.PatientID, err)
		return nil, err
	}
	if patient == nil || !patient.IsPatient() {
		return nil, ErrPatientNotFound
	}

	date, err := parseDate(req.Date)
	if err != nil {
		return nil, err
	}

	record := &entity.MedicalRecord{
		DoctorID:   userID,
		PatientID:  req.PatientID,
		RecordDate: date,
		Diagnosis:  req.Diagnosis,
	}
	if req.Prescription != "" {
		prescription := req.Prescription
		record.Prescription = &prescription
	}
	if req.Notes != "" {
		notes := req.Notes
		record.Notes = &notes
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.recordRepo.Create(tx, record); err != nil {
		u.log.Warnf("Failed to create medical record: %+v", err)
		return nil, err
	}

	if err := u.auditService.Record(tx, &userID, entity.AuditActionRecordCreate, "medical_record", record.ID.String(), map[string]interface{}{
		"patient_id": req.PatientID.String(),
	}); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed to commit medical record create: %+v", err)
		return nil, err
	}

	return converter.MedicalRecordToResponse(record), nil
}

// ListRecords is role-scoped the same way appointments are: admins see all,
// doctors their authored records, patients their own history.
func (u *medicalRecordUsecase) ListRecords(ctx context.Context) (*dto.MedicalRecordListResponse, error) {
	userID, roleID, err := caller(ctx)
	if err != nil {
		return nil, err
	}

	var records []entity.MedicalRecord
	switch roleID {
	case entity.RoleIDAdmin:
		records, err = u.recordRepo.FindAll(u.db.WithContext(ctx))
	case entity.RoleIDDoctor:
		records, err = u.recordRepo.FindByDoctorID(u.db.WithContext(ctx), userID)
	default:
		records, err = u.recordRepo.FindByPatientID(u.db.WithContext(ctx), userID)
	}
	if err != nil {
		u.log.Warnf("Failed to list medical records for user %s: %+v", userID, err)
		return nil, err
	}

	return &dto.MedicalRecordListResponse{
		Records: converter.MedicalRecordsToResponses(records),
		Total:   len(records),
	}, nil
}

func (u *medicalRecordUsecase) GetRecord(ctx context.Context, id uuid.UUID) (*dto.MedicalRecordResponse, error) {
	userID, roleID, err := caller(ctx)
	if err != nil {
		return nil, err
	}

	record, err := u.recordRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find medical record %s: %+v", id, err)
		return nil, err
	}
	if record == nil {
		return nil, ErrMedicalRecordNotFound
	}

	if roleID != entity.RoleIDAdmin && record.DoctorID != userID && record.PatientID != userID {
		return nil, ErrRecordNotOwned
	}

	return converter.MedicalRecordToResponse(record), nil
}

// AddLabResult attaches a test outcome to an existing record. Only the
// record's authoring doctor may add results.
func (u *medicalRecordUsecase) AddLabResult(ctx context.Context, recordID uuid.UUID, req *dto.CreateLabResultRequest) (*dto.LabResultResponse, error) {
	userID, _, err := caller(ctx)
	if err != nil {
		return nil, err
	}

	record, err := u.recordRepo.FindByID(u.db.WithContext(ctx), recordID)
	if err != nil {
		u.log.Warnf("Failed to find medical record %s: %+v", recordID, err)
		return nil, err
	}
	if record == nil {
		return nil, ErrMedicalRecordNotFound
	}
	if record.DoctorID != userID {
		return nil, ErrRecordNotOwned
	}

	testDate, err := parseDate(req.TestDate)
	if err != nil {
		return nil, err
	}

	result := &entity.LabResult{
		MedicalRecordID: recordID,
		TestName:        req.TestName,
		TestDate:        testDate,
		Results:         entity.JSON(req.Results),
		NormalRange:     req.NormalRange,
		Interpretation:  req.Interpretation,
		PerformedBy:     req.PerformedBy,
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.labResultRepo.Create(tx, result); err != nil {
		u.log.Warnf("Failed to create lab result: %+v", err)
		return nil, err
	}

	if err := u.auditService.Record(tx, &userID, entity.AuditActionLabResultCreate, "lab_result", result.ID.String(), map[string]interface{}{
		"medical_record_id": recordID.String(),
		"test_name":         req.TestName,
	}); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed to commit lab result create: %+v", err)
		return nil, err
	}

	return converter.LabResultToResponse(result), nil
}

func (u *medicalRecordUsecase) ListLabResults(ctx context.Context, recordID uuid.UUID) (*dto.LabResultListResponse, error) {
	userID, roleID, err := caller(ctx)
	if err != nil {
		return nil, err
	}

	record, err := u.recordRepo.FindByID(u.db.WithContext(ctx), recordID)
	if err != nil {
		u.log.Warnf("Failed to find medical record %s: %+v", recordID, err)
		return nil, err
	}
	if record == nil {
		return nil, ErrMedicalRecordNotFound
	}
	if roleID != entity.RoleIDAdmin && record.DoctorID != userID && record.PatientID != userID {
		return nil, ErrRecordNotOwned
	}

	results, err := u.labResultRepo.FindByMedicalRecordID(u.db.WithContext(ctx), recordID)
	if err != nil {
		u.log.Warnf("Failed to list lab results for record %s: %+v", recordID, err)
		return nil, err
	}

	return &dto.LabResultListResponse{
		LabResults: converter.LabResultsToResponses(results),
		Total:      len(results),
	}, nil
}
