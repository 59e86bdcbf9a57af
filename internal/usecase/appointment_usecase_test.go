package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"clinic-appointment-server/internal/delivery/dto"
	"clinic-appointment-server/internal/delivery/http/middleware"
	"clinic-appointment-server/internal/domain/entity"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type appointmentTestEnv struct {
	usecase           AppointmentUsecase
	dbMock            sqlmock.Sqlmock
	appointmentRepo   *MockAppointmentRepository
	doctorProfileRepo *MockDoctorProfileRepository
	userRepo          *MockUserRepository
	recordRepo        *MockMedicalRecordRepository
	doctorPatientRepo *MockDoctorPatientRepository
	auditService      *MockAuditService
}

func setupAppointmentUsecase(t *testing.T) *appointmentTestEnv {
	db, dbMock := newTestDB(t)

	env := &appointmentTestEnv{
		dbMock:            dbMock,
		appointmentRepo:   &MockAppointmentRepository{},
		doctorProfileRepo: &MockDoctorProfileRepository{},
		userRepo:          &MockUserRepository{},
		recordRepo:        &MockMedicalRecordRepository{},
		doctorPatientRepo: &MockDoctorPatientRepository{},
		auditService:      &MockAuditService{},
	}
	env.usecase = NewAppointmentUsecase(
		db,
		newTestLogger(),
		env.appointmentRepo,
		env.doctorProfileRepo,
		env.userRepo,
		env.recordRepo,
		env.doctorPatientRepo,
		env.auditService,
	)
	return env
}

func pendingAppointment(doctorID, patientID uuid.UUID) *entity.Appointment {
	return &entity.Appointment{
		ID:              uuid.New(),
		DoctorID:        doctorID,
		PatientID:       patientID,
		AppointmentDate: time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
		StartTime:       "09:00",
		EndTime:         "09:30",
		Reason:          "Annual checkup",
		Status:          entity.AppointmentStatusPending,
	}
}

func TestListAppointments_PatientSeesOnlyOwn(t *testing.T) {
	env := setupAppointmentUsecase(t)
	patientID := uuid.New()
	ctx := middleware.WithCaller(context.Background(), patientID, entity.RoleIDPatient)

	env.appointmentRepo.On("FindByPatientID", mock.Anything, patientID).
		Return([]entity.Appointment{*pendingAppointment(uuid.New(), patientID)}, nil)

	result, err := env.usecase.ListAppointments(ctx)

	assert.NoError(t, err)
	assert.Equal(t, 1, result.Total)
	env.appointmentRepo.AssertNotCalled(t, "FindAll", mock.Anything)
}

func TestListAppointments_AdminSeesAll(t *testing.T) {
	env := setupAppointmentUsecase(t)
	ctx := middleware.WithCaller(context.Background(), uuid.New(), entity.RoleIDAdmin)

	env.appointmentRepo.On("FindAll", mock.Anything).Return([]entity.Appointment{}, nil)

	result, err := env.usecase.ListAppointments(ctx)

	assert.NoError(t, err)
	assert.Equal(t, 0, result.Total)
}

func TestGetAppointment_OtherPatientForbidden(t *testing.T) {
	env := setupAppointmentUsecase(t)
	appointment := pendingAppointment(uuid.New(), uuid.New())
	ctx := middleware.WithCaller(context.Background(), uuid.New(), entity.RoleIDPatient)

	env.appointmentRepo.On("FindByID", mock.Anything, appointment.ID).Return(appointment, nil)

	_, err := env.usecase.GetAppointment(ctx, appointment.ID)

	assert.ErrorIs(t, err, ErrAppointmentNotOwned)
}

func TestCreateAppointment_Success(t *testing.T) {
	env := setupAppointmentUsecase(t)
	doctorID := uuid.New()
	patientID := uuid.New()
	ctx := middleware.WithCaller(context.Background(), patientID, entity.RoleIDPatient)

	env.doctorProfileRepo.On("FindByUserID", mock.Anything, doctorID).
		Return(&entity.DoctorProfile{UserID: doctorID}, nil)
	env.appointmentRepo.On("Create", mock.Anything, mock.AnythingOfType("*entity.Appointment")).Return(nil)
	env.auditService.On("Record", mock.Anything, mock.Anything, entity.AuditActionAppointmentCreate, "appointment", mock.Anything, mock.Anything).Return(nil)

	env.dbMock.ExpectBegin()
	env.dbMock.ExpectCommit()

	result, err := env.usecase.CreateAppointment(ctx, &dto.CreateAppointmentRequest{
		DoctorID:  doctorID,
		Date:      "2026-09-15",
		StartTime: "09:00",
		EndTime:   "09:30",
		Reason:    "Annual checkup",
	})

	assert.NoError(t, err)
	assert.Equal(t, string(entity.AppointmentStatusPending), result.Status)
	assert.Equal(t, patientID, result.PatientID)
	assert.NoError(t, env.dbMock.ExpectationsWereMet())
}

func TestCreateAppointment_UnknownDoctor(t *testing.T) {
	env := setupAppointmentUsecase(t)
	doctorID := uuid.New()
	ctx := middleware.WithCaller(context.Background(), uuid.New(), entity.RoleIDPatient)

	env.doctorProfileRepo.On("FindByUserID", mock.Anything, doctorID).Return(nil, nil)

	_, err := env.usecase.CreateAppointment(ctx, &dto.CreateAppointmentRequest{
		DoctorID:  doctorID,
		Date:      "2026-09-15",
		StartTime: "09:00",
		EndTime:   "09:30",
		Reason:    "Annual checkup",
	})

	assert.ErrorIs(t, err, ErrDoctorNotFound)
	env.appointmentRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateAppointment_EndBeforeStart(t *testing.T) {
	env := setupAppointmentUsecase(t)
	doctorID := uuid.New()
	ctx := middleware.WithCaller(context.Background(), uuid.New(), entity.RoleIDPatient)

	env.doctorProfileRepo.On("FindByUserID", mock.Anything, doctorID).
		Return(&entity.DoctorProfile{UserID: doctorID}, nil)

	_, err := env.usecase.CreateAppointment(ctx, &dto.CreateAppointmentRequest{
		DoctorID:  doctorID,
		Date:      "2026-09-15",
		StartTime: "10:00",
		EndTime:   "09:00",
		Reason:    "Annual checkup",
	})

	assert.ErrorIs(t, err, ErrInvalidTimeRange)
}

func TestCreateAppointment_DoctorDeletedConcurrently(t *testing.T) {
	env := setupAppointmentUsecase(t)
	doctorID := uuid.New()
	ctx := middleware.WithCaller(context.Background(), uuid.New(), entity.RoleIDPatient)

	env.doctorProfileRepo.On("FindByUserID", mock.Anything, doctorID).
		Return(&entity.DoctorProfile{UserID: doctorID}, nil)
	env.appointmentRepo.On("Create", mock.Anything, mock.AnythingOfType("*entity.Appointment")).
		Return(&pgconn.PgError{Code: "23503", ConstraintName: "appointments_doctor_id_fkey"})

	env.dbMock.ExpectBegin()
	env.dbMock.ExpectRollback()

	_, err := env.usecase.CreateAppointment(ctx, &dto.CreateAppointmentRequest{
		DoctorID:  doctorID,
		Date:      "2026-09-15",
		StartTime: "09:00",
		EndTime:   "09:30",
		Reason:    "Annual checkup",
	})

	assert.ErrorIs(t, err, ErrDoctorNotFound)
	assert.NoError(t, env.dbMock.ExpectationsWereMet())
}

func TestUpdateAppointment_DateChangeResetsToPending(t *testing.T) {
	env := setupAppointmentUsecase(t)
	patientID := uuid.New()
	appointment := pendingAppointment(uuid.New(), patientID)
	appointment.Status = entity.AppointmentStatusConfirmed
	ctx := middleware.WithCaller(context.Background(), patientID, entity.RoleIDPatient)

	env.appointmentRepo.On("FindByID", mock.Anything, appointment.ID).Return(appointment, nil)
	env.appointmentRepo.On("Update", mock.Anything, mock.AnythingOfType("*entity.Appointment")).Return(nil)
	env.auditService.On("Record", mock.Anything, mock.Anything, entity.AuditActionAppointmentReschedule, "appointment", appointment.ID.String(), mock.Anything).Return(nil)

	env.dbMock.ExpectBegin()
	env.dbMock.ExpectCommit()

	result, err := env.usecase.UpdateAppointment(ctx, appointment.ID, &dto.UpdateAppointmentRequest{
		Date: "2026-09-29",
	})

	assert.NoError(t, err)
	assert.Equal(t, string(entity.AppointmentStatusPending), result.Status)
	assert.Equal(t, "2026-09-29", result.Date)
	assert.NoError(t, env.dbMock.ExpectationsWereMet())
}

func TestUpdateAppointment_DateChangeOnCancelledRejected(t *testing.T) {
	env := setupAppointmentUsecase(t)
	patientID := uuid.New()
	appointment := pendingAppointment(uuid.New(), patientID)
	appointment.Status = entity.AppointmentStatusCancelled
	ctx := middleware.WithCaller(context.Background(), patientID, entity.RoleIDPatient)

	env.appointmentRepo.On("FindByID", mock.Anything, appointment.ID).Return(appointment, nil)

	_, err := env.usecase.UpdateAppointment(ctx, appointment.ID, &dto.UpdateAppointmentRequest{
		Date: "2026-09-29",
	})

	assert.ErrorIs(t, err, ErrRescheduleTerminal)
	env.appointmentRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUpdateAppointment_NotesOnlySkipsRescheduleGuard(t *testing.T) {
	env := setupAppointmentUsecase(t)
	patientID := uuid.New()
	appointment := pendingAppointment(uuid.New(), patientID)
	appointment.Status = entity.AppointmentStatusConfirmed
	ctx := middleware.WithCaller(context.Background(), patientID, entity.RoleIDPatient)

	env.appointmentRepo.On("FindByID", mock.Anything, appointment.ID).Return(appointment, nil)
	env.appointmentRepo.On("Update", mock.Anything, mock.AnythingOfType("*entity.Appointment")).Return(nil)

	result, err := env.usecase.UpdateAppointment(ctx, appointment.ID, &dto.UpdateAppointmentRequest{
		Notes: "Bring previous lab results",
	})

	assert.NoError(t, err)
	assert.Equal(t, string(entity.AppointmentStatusConfirmed), result.Status)
	env.auditService.AssertNotCalled(t, "Record", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestConfirmAppointment_ByDoctor(t *testing.T) {
	env := setupAppointmentUsecase(t)
	doctorID := uuid.New()
	appointment := pendingAppointment(doctorID, uuid.New())
	ctx := middleware.WithCaller(context.Background(), doctorID, entity.RoleIDDoctor)

	env.appointmentRepo.On("FindByID", mock.Anything, appointment.ID).Return(appointment, nil)
	env.appointmentRepo.On("UpdateStatus", mock.Anything, appointment.ID, entity.AppointmentStatusPending, entity.AppointmentStatusConfirmed).
		Return(int64(1), nil)
	env.auditService.On("Record", mock.Anything, mock.Anything, entity.AuditActionAppointmentConfirm, "appointment", appointment.ID.String(), mock.Anything).Return(nil)

	env.dbMock.ExpectBegin()
	env.dbMock.ExpectCommit()

	err := env.usecase.ConfirmAppointment(ctx, appointment.ID)

	assert.NoError(t, err)
	assert.NoError(t, env.dbMock.ExpectationsWereMet())
}

func TestConfirmAppointment_WrongDoctor(t *testing.T) {
	env := setupAppointmentUsecase(t)
	appointment := pendingAppointment(uuid.New(), uuid.New())
	ctx := middleware.WithCaller(context.Background(), uuid.New(), entity.RoleIDDoctor)

	env.appointmentRepo.On("FindByID", mock.Anything, appointment.ID).Return(appointment, nil)

	err := env.usecase.ConfirmAppointment(ctx, appointment.ID)

	assert.ErrorIs(t, err, ErrNotAppointmentDoctor)
	env.appointmentRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestConfirmAppointment_AlreadyCompleted(t *testing.T) {
	env := setupAppointmentUsecase(t)
	doctorID := uuid.New()
	appointment := pendingAppointment(doctorID, uuid.New())
	appointment.Status = entity.AppointmentStatusCompleted
	ctx := middleware.WithCaller(context.Background(), doctorID, entity.RoleIDDoctor)

	env.appointmentRepo.On("FindByID", mock.Anything, appointment.ID).Return(appointment, nil)

	err := env.usecase.ConfirmAppointment(ctx, appointment.ID)

	assert.ErrorIs(t, err, ErrInvalidStatusTransition)
}

func TestConfirmAppointment_LostRace(t *testing.T) {
	env := setupAppointmentUsecase(t)
	doctorID := uuid.New()
	appointment := pendingAppointment(doctorID, uuid.New())
	ctx := middleware.WithCaller(context.Background(), doctorID, entity.RoleIDDoctor)

	env.appointmentRepo.On("FindByID", mock.Anything, appointment.ID).Return(appointment, nil)
	env.appointmentRepo.On("UpdateStatus", mock.Anything, appointment.ID, entity.AppointmentStatusPending, entity.AppointmentStatusConfirmed).
		Return(int64(0), nil)

	env.dbMock.ExpectBegin()
	env.dbMock.ExpectRollback()

	err := env.usecase.ConfirmAppointment(ctx, appointment.ID)

	assert.ErrorIs(t, err, ErrInvalidStatusTransition)
	assert.NoError(t, env.dbMock.ExpectationsWereMet())
}

func TestDeclineAppointment_ConfirmedRejected(t *testing.T) {
	env := setupAppointmentUsecase(t)
	doctorID := uuid.New()
	appointment := pendingAppointment(doctorID, uuid.New())
	appointment.Status = entity.AppointmentStatusConfirmed
	ctx := middleware.WithCaller(context.Background(), doctorID, entity.RoleIDDoctor)

	env.appointmentRepo.On("FindByID", mock.Anything, appointment.ID).Return(appointment, nil)

	err := env.usecase.DeclineAppointment(ctx, appointment.ID)

	assert.ErrorIs(t, err, ErrDeclineRequiresPending)
	env.appointmentRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestDeclineAppointment_AdminRejected(t *testing.T) {
	env := setupAppointmentUsecase(t)
	appointment := pendingAppointment(uuid.New(), uuid.New())
	// Declining speaks for the doctor; an admin must cancel instead.
	ctx := middleware.WithCaller(context.Background(), uuid.New(), entity.RoleIDAdmin)

	env.appointmentRepo.On("FindByID", mock.Anything, appointment.ID).Return(appointment, nil)

	err := env.usecase.DeclineAppointment(ctx, appointment.ID)

	assert.ErrorIs(t, err, ErrNotAppointmentDoctor)
	env.appointmentRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCancelAppointment_ByPatient(t *testing.T) {
	env := setupAppointmentUsecase(t)
	patientID := uuid.New()
	appointment := pendingAppointment(uuid.New(), patientID)
	appointment.Status = entity.AppointmentStatusConfirmed
	ctx := middleware.WithCaller(context.Background(), patientID, entity.RoleIDPatient)

	env.appointmentRepo.On("FindByID", mock.Anything, appointment.ID).Return(appointment, nil)
	env.appointmentRepo.On("UpdateStatus", mock.Anything, appointment.ID, entity.AppointmentStatusConfirmed, entity.AppointmentStatusCancelled).
		Return(int64(1), nil)
	env.auditService.On("Record", mock.Anything, mock.Anything, entity.AuditActionAppointmentCancel, "appointment", appointment.ID.String(), mock.Anything).Return(nil)

	env.dbMock.ExpectBegin()
	env.dbMock.ExpectCommit()

	err := env.usecase.CancelAppointment(ctx, appointment.ID)

	assert.NoError(t, err)
	assert.NoError(t, env.dbMock.ExpectationsWereMet())
}

func TestCancelAppointment_AlreadyCancelled(t *testing.T) {
	env := setupAppointmentUsecase(t)
	patientID := uuid.New()
	appointment := pendingAppointment(uuid.New(), patientID)
	appointment.Status = entity.AppointmentStatusCancelled
	ctx := middleware.WithCaller(context.Background(), patientID, entity.RoleIDPatient)

	env.appointmentRepo.On("FindByID", mock.Anything, appointment.ID).Return(appointment, nil)

	err := env.usecase.CancelAppointment(ctx, appointment.ID)

	assert.ErrorIs(t, err, ErrAppointmentAlreadyCancelled)
}

func TestCancelAppointment_CompletedRejected(t *testing.T) {
	env := setupAppointmentUsecase(t)
	patientID := uuid.New()
	appointment := pendingAppointment(uuid.New(), patientID)
	appointment.Status = entity.AppointmentStatusCompleted
	ctx := middleware.WithCaller(context.Background(), patientID, entity.RoleIDPatient)

	env.appointmentRepo.On("FindByID", mock.Anything, appointment.ID).Return(appointment, nil)

	err := env.usecase.CancelAppointment(ctx, appointment.ID)

	assert.ErrorIs(t, err, ErrInvalidStatusTransition)
}

func TestRescheduleAppointment_ResetsToPending(t *testing.T) {
	env := setupAppointmentUsecase(t)
	patientID := uuid.New()
	appointment := pendingAppointment(uuid.New(), patientID)
	appointment.Status = entity.AppointmentStatusConfirmed
	ctx := middleware.WithCaller(context.Background(), patientID, entity.RoleIDPatient)

	env.appointmentRepo.On("FindByID", mock.Anything, appointment.ID).Return(appointment, nil)
	env.appointmentRepo.On("Update", mock.Anything, mock.AnythingOfType("*entity.Appointment")).Return(nil)
	env.auditService.On("Record", mock.Anything, mock.Anything, entity.AuditActionAppointmentReschedule, "appointment", appointment.ID.String(), mock.Anything).Return(nil)

	env.dbMock.ExpectBegin()
	env.dbMock.ExpectCommit()

	result, err := env.usecase.RescheduleAppointment(ctx, appointment.ID, &dto.RescheduleAppointmentRequest{
		Date:      "2026-09-22",
		StartTime: "14:00",
		EndTime:   "14:30",
	})

	assert.NoError(t, err)
	assert.Equal(t, string(entity.AppointmentStatusPending), result.Status)
	assert.Equal(t, "2026-09-22", result.Date)
	assert.NoError(t, env.dbMock.ExpectationsWereMet())
}

func TestRescheduleAppointment_CancelledRejected(t *testing.T) {
	env := setupAppointmentUsecase(t)
	patientID := uuid.New()
	appointment := pendingAppointment(uuid.New(), patientID)
	appointment.Status = entity.AppointmentStatusCancelled
	ctx := middleware.WithCaller(context.Background(), patientID, entity.RoleIDPatient)

	env.appointmentRepo.On("FindByID", mock.Anything, appointment.ID).Return(appointment, nil)

	_, err := env.usecase.RescheduleAppointment(ctx, appointment.ID, &dto.RescheduleAppointmentRequest{
		Date:      "2026-09-22",
		StartTime: "14:00",
		EndTime:   "14:30",
	})

	assert.ErrorIs(t, err, ErrRescheduleTerminal)
	env.appointmentRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestCompleteAppointment_Success(t *testing.T) {
	env := setupAppointmentUsecase(t)
	doctorID := uuid.New()
	patientID := uuid.New()
	appointment := pendingAppointment(doctorID, patientID)
	appointment.Status = entity.AppointmentStatusConfirmed
	ctx := middleware.WithCaller(context.Background(), doctorID, entity.RoleIDDoctor)

	env.appointmentRepo.On("FindByID", mock.Anything, appointment.ID).Return(appointment, nil)
	env.recordRepo.On("Create", mock.Anything, mock.AnythingOfType("*entity.MedicalRecord")).Return(nil)
	env.doctorPatientRepo.On("Create", mock.Anything, mock.AnythingOfType("*entity.DoctorPatient")).Return(nil)
	env.appointmentRepo.On("UpdateStatus", mock.Anything, appointment.ID, entity.AppointmentStatusConfirmed, entity.AppointmentStatusCompleted).
		Return(int64(1), nil)
	env.auditService.On("Record", mock.Anything, mock.Anything, entity.AuditActionAppointmentComplete, "appointment", appointment.ID.String(), mock.Anything).Return(nil)

	env.dbMock.ExpectBegin()
	env.dbMock.ExpectCommit()

	record, err := env.usecase.CompleteAppointment(ctx, appointment.ID, &dto.CompleteAppointmentRequest{
		Diagnosis:    "Seasonal allergies",
		Prescription: "Antihistamine",
	})

	assert.NoError(t, err)
	assert.Equal(t, doctorID, record.DoctorID)
	assert.Equal(t, patientID, record.PatientID)
	assert.NoError(t, env.dbMock.ExpectationsWereMet())
}

func TestCompleteAppointment_NotTheDoctor(t *testing.T) {
	env := setupAppointmentUsecase(t)
	appointment := pendingAppointment(uuid.New(), uuid.New())
	appointment.Status = entity.AppointmentStatusConfirmed
	// Even an admin cannot complete on the doctor's behalf.
	ctx := middleware.WithCaller(context.Background(), uuid.New(), entity.RoleIDAdmin)

	env.appointmentRepo.On("FindByID", mock.Anything, appointment.ID).Return(appointment, nil)

	_, err := env.usecase.CompleteAppointment(ctx, appointment.ID, &dto.CompleteAppointmentRequest{
		Diagnosis: "Seasonal allergies",
	})

	assert.ErrorIs(t, err, ErrNotAppointmentDoctor)
	env.recordRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	env.doctorPatientRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCompleteAppointment_PendingRejected(t *testing.T) {
	env := setupAppointmentUsecase(t)
	doctorID := uuid.New()
	appointment := pendingAppointment(doctorID, uuid.New())
	ctx := middleware.WithCaller(context.Background(), doctorID, entity.RoleIDDoctor)

	env.appointmentRepo.On("FindByID", mock.Anything, appointment.ID).Return(appointment, nil)

	_, err := env.usecase.CompleteAppointment(ctx, appointment.ID, &dto.CompleteAppointmentRequest{
		Diagnosis: "Seasonal allergies",
	})

	assert.ErrorIs(t, err, ErrInvalidStatusTransition)
	env.recordRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCompleteAppointment_AuditFailureRollsBack(t *testing.T) {
	env := setupAppointmentUsecase(t)
	doctorID := uuid.New()
	appointment := pendingAppointment(doctorID, uuid.New())
	appointment.Status = entity.AppointmentStatusConfirmed
	ctx := middleware.WithCaller(context.Background(), doctorID, entity.RoleIDDoctor)

	env.appointmentRepo.On("FindByID", mock.Anything, appointment.ID).Return(appointment, nil)
	env.recordRepo.On("Create", mock.Anything, mock.AnythingOfType("*entity.MedicalRecord")).Return(nil)
	env.doctorPatientRepo.On("Create", mock.Anything, mock.AnythingOfType("*entity.DoctorPatient")).Return(nil)
	env.appointmentRepo.On("UpdateStatus", mock.Anything, appointment.ID, entity.AppointmentStatusConfirmed, entity.AppointmentStatusCompleted).
		Return(int64(1), nil)
	env.auditService.On("Record", mock.Anything, mock.Anything, entity.AuditActionAppointmentComplete, "appointment", appointment.ID.String(), mock.Anything).
		Return(errors.New("audit_logs insert failed"))

	env.dbMock.ExpectBegin()
	env.dbMock.ExpectRollback()

	_, err := env.usecase.CompleteAppointment(ctx, appointment.ID, &dto.CompleteAppointmentRequest{
		Diagnosis: "Seasonal allergies",
	})

	assert.Error(t, err)
	assert.NoError(t, env.dbMock.ExpectationsWereMet())
}

func TestCompleteAppointment_StatusRaceRollsBack(t *testing.T) {
	env := setupAppointmentUsecase(t)
	doctorID := uuid.New()
	appointment := pendingAppointment(doctorID, uuid.New())
	appointment.Status = entity.AppointmentStatusConfirmed
	ctx := middleware.WithCaller(context.Background(), doctorID, entity.RoleIDDoctor)

	env.appointmentRepo.On("FindByID", mock.Anything, appointment.ID).Return(appointment, nil)
	env.recordRepo.On("Create", mock.Anything, mock.AnythingOfType("*entity.MedicalRecord")).Return(nil)
	env.doctorPatientRepo.On("Create", mock.Anything, mock.AnythingOfType("*entity.DoctorPatient")).Return(nil)
	env.appointmentRepo.On("UpdateStatus", mock.Anything, appointment.ID, entity.AppointmentStatusConfirmed, entity.AppointmentStatusCompleted).
		Return(int64(0), nil)

	env.dbMock.ExpectBegin()
	env.dbMock.ExpectRollback()

	_, err := env.usecase.CompleteAppointment(ctx, appointment.ID, &dto.CompleteAppointmentRequest{
		Diagnosis: "Seasonal allergies",
	})

	assert.ErrorIs(t, err, ErrInvalidStatusTransition)
	assert.NoError(t, env.dbMock.ExpectationsWereMet())
}
