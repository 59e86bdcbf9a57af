package usecase

import (
	"context"
	"testing"
	"time"

	"clinic-appointment-server/internal/delivery/dto"
	"clinic-appointment-server/internal/delivery/http/middleware"
	"clinic-appointment-server/internal/domain/entity"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

type recordTestEnv struct {
	usecase       MedicalRecordUsecase
	dbMock        sqlmock.Sqlmock
	recordRepo    *MockMedicalRecordRepository
	labResultRepo *MockLabResultRepository
	userRepo      *MockUserRepository
	auditService  *MockAuditService
}

// MockLabResultRepository is a mock implementation of LabResultRepository
type MockLabResultRepository struct {
	mock.Mock
}

func (m *MockLabResultRepository) Create(db *gorm.DB, result *entity.LabResult) error {
	args := m.Called(db, result)
	return args.Error(0)
}

func (m *MockLabResultRepository) FindByMedicalRecordID(db *gorm.DB, medicalRecordID uuid.UUID) ([]entity.LabResult, error) {
	args := m.Called(db, medicalRecordID)
	return args.Get(0).([]entity.LabResult), args.Error(1)
}

func setupMedicalRecordUsecase(t *testing.T) *recordTestEnv {
	db, dbMock := newTestDB(t)

	env := &recordTestEnv{
		dbMock:        dbMock,
		recordRepo:    &MockMedicalRecordRepository{},
		labResultRepo: &MockLabResultRepository{},
		userRepo:      &MockUserRepository{},
		auditService:  &MockAuditService{},
	}
	env.usecase = NewMedicalRecordUsecase(
		db,
		newTestLogger(),
		env.recordRepo,
		env.labResultRepo,
		env.userRepo,
		env.auditService,
	)
	return env
}

func TestCreateRecord_Success(t *testing.T) {
	env := setupMedicalRecordUsecase(t)
	doctorID := uuid.New()
	patientID := uuid.New()
	ctx := middleware.WithCaller(context.Background(), doctorID, entity.RoleIDDoctor)

	env.userRepo.On("FindByID", mock.Anything, patientID).
		Return(&entity.User{ID: patientID, RoleID: entity.RoleIDPatient}, nil)
	env.recordRepo.On("Create", mock.Anything, mock.AnythingOfType("*entity.MedicalRecord")).Return(nil)
	env.auditService.On("Record", mock.Anything, mock.Anything, entity.AuditActionRecordCreate, "medical_record", mock.Anything, mock.Anything).Return(nil)

	env.dbMock.ExpectBegin()
	env.dbMock.ExpectCommit()

	record, err := env.usecase.CreateRecord(ctx, &dto.CreateMedicalRecordRequest{
		PatientID: patientID,
		Date:      "2026-08-01",
		Diagnosis: "Hypertension",
	})

	assert.NoError(t, err)
	assert.Equal(t, doctorID, record.DoctorID)
	assert.Equal(t, "Hypertension", record.Diagnosis)
	assert.NoError(t, env.dbMock.ExpectationsWereMet())
}

func TestCreateRecord_TargetNotAPatient(t *testing.T) {
	env := setupMedicalRecordUsecase(t)
	doctorID := uuid.New()
	otherDoctorID := uuid.New()
	ctx := middleware.WithCaller(context.Background(), doctorID, entity.RoleIDDoctor)

	env.userRepo.On("FindByID", mock.Anything, otherDoctorID).
		Return(&entity.User{ID: otherDoctorID, RoleID: entity.RoleIDDoctor}, nil)

	_, err := env.usecase.CreateRecord(ctx, &dto.CreateMedicalRecordRequest{
		PatientID: otherDoctorID,
		Date:      "2026-08-01",
		Diagnosis: "Hypertension",
	})

	assert.ErrorIs(t, err, ErrPatientNotFound)
	env.recordRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestGetRecord_PatientCanReadOwn(t *testing.T) {
	env := setupMedicalRecordUsecase(t)
	patientID := uuid.New()
	record := &entity.MedicalRecord{
		ID:         uuid.New(),
		DoctorID:   uuid.New(),
		PatientID:  patientID,
		RecordDate: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		Diagnosis:  "Hypertension",
	}
	ctx := middleware.WithCaller(context.Background(), patientID, entity.RoleIDPatient)

	env.recordRepo.On("FindByID", mock.Anything, record.ID).Return(record, nil)

	result, err := env.usecase.GetRecord(ctx, record.ID)

	assert.NoError(t, err)
	assert.Equal(t, "Hypertension", result.Diagnosis)
}

func TestGetRecord_StrangerForbidden(t *testing.T) {
	env := setupMedicalRecordUsecase(t)
	record := &entity.MedicalRecord{
		ID:        uuid.New(),
		DoctorID:  uuid.New(),
		PatientID: uuid.New(),
		Diagnosis: "Hypertension",
	}
	ctx := middleware.WithCaller(context.Background(), uuid.New(), entity.RoleIDPatient)

	env.recordRepo.On("FindByID", mock.Anything, record.ID).Return(record, nil)

	_, err := env.usecase.GetRecord(ctx, record.ID)

	assert.ErrorIs(t, err, ErrRecordNotOwned)
}

func TestAddLabResult_OnlyAuthoringDoctor(t *testing.T) {
	env := setupMedicalRecordUsecase(t)
	record := &entity.MedicalRecord{
		ID:        uuid.New(),
		DoctorID:  uuid.New(),
		PatientID: uuid.New(),
	}
	ctx := middleware.WithCaller(context.Background(), uuid.New(), entity.RoleIDDoctor)

	env.recordRepo.On("FindByID", mock.Anything, record.ID).Return(record, nil)

	_, err := env.usecase.AddLabResult(ctx, record.ID, &dto.CreateLabResultRequest{
		TestName: "CBC",
		TestDate: "2026-08-02",
	})

	assert.ErrorIs(t, err, ErrRecordNotOwned)
	env.labResultRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAddLabResult_Success(t *testing.T) {
	env := setupMedicalRecordUsecase(t)
	doctorID := uuid.New()
	record := &entity.MedicalRecord{
		ID:        uuid.New(),
		DoctorID:  doctorID,
		PatientID: uuid.New(),
	}
	ctx := middleware.WithCaller(context.Background(), doctorID, entity.RoleIDDoctor)

	env.recordRepo.On("FindByID", mock.Anything, record.ID).Return(record, nil)
	env.labResultRepo.On("Create", mock.Anything, mock.AnythingOfType("*entity.LabResult")).Return(nil)
	env.auditService.On("Record", mock.Anything, mock.Anything, entity.AuditActionLabResultCreate, "lab_result", mock.Anything, mock.Anything).Return(nil)

	env.dbMock.ExpectBegin()
	env.dbMock.ExpectCommit()

	result, err := env.usecase.AddLabResult(ctx, record.ID, &dto.CreateLabResultRequest{
		TestName: "CBC",
		TestDate: "2026-08-02",
		Results:  map[string]interface{}{"wbc": 6.1},
	})

	assert.NoError(t, err)
	assert.Equal(t, "CBC", result.TestName)
	assert.NoError(t, env.dbMock.ExpectationsWereMet())
}
