package usecase

import (
	"context"
	"errors"

	"clinic-appointment-server/internal/converter"
	"clinic-appointment-server/internal/delivery/dto"
	"clinic-appointment-server/internal/delivery/http/middleware"
	"clinic-appointment-server/internal/domain/entity"
	"clinic-appointment-server/internal/domain/repository"
	"clinic-appointment-server/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrAppointmentNotFound         = errors.New("appointment not found")
	ErrAppointmentNotOwned         = errors.New("appointment does not belong to you")
	ErrNotAppointmentDoctor        = errors.New("only the appointment's doctor may perform this action")
	ErrInvalidStatusTransition     = errors.New("appointment status transition not allowed")
	ErrAppointmentAlreadyCancelled = errors.New("appointment is already cancelled")
	ErrDeclineRequiresPending      = errors.New("only pending appointments can be declined")
	ErrRescheduleTerminal          = errors.New("cancelled or completed appointments cannot be rescheduled")
	ErrCallerNotFound              = errors.New("user not found in context")
)

type AppointmentUsecase interface {
	ListAppointments(ctx context.Context) (*dto.AppointmentListResponse, error)
	GetAppointment(ctx context.Context, id uuid.UUID) (*dto.AppointmentResponse, error)
	CreateAppointment(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error)
	UpdateAppointment(ctx context.Context, id uuid.UUID, req *dto.UpdateAppointmentRequest) (*dto.AppointmentResponse, error)
	DeleteAppointment(ctx context.Context, id uuid.UUID) error
	ConfirmAppointment(ctx context.Context, id uuid.UUID) error
	DeclineAppointment(ctx context.Context, id uuid.UUID) error
	CancelAppointment(ctx context.Context, id uuid.UUID) error
	RescheduleAppointment(ctx context.Context, id uuid.UUID, req *dto.RescheduleAppointmentRequest) (*dto.AppointmentResponse, error)
	CompleteAppointment(ctx context.Context, id uuid.UUID, req *dto.CompleteAppointmentRequest) (*dto.MedicalRecordResponse, error)
}

type appointmentUsecase struct {
	db                *gorm.DB
	log               *logrus.Logger
	appointmentRepo   repository.AppointmentRepository
	doctorProfileRepo repository.DoctorProfileRepository
	userRepo          repository.UserRepository
	recordRepo        repository.MedicalRecordRepository
	doctorPatientRepo repository.DoctorPatientRepository
	auditService      service.AuditService
}

func NewAppointmentUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
	doctorProfileRepo repository.DoctorProfileRepository,
	userRepo repository.UserRepository,
	recordRepo repository.MedicalRecordRepository,
	doctorPatientRepo repository.DoctorPatientRepository,
	auditService service.AuditService,
) AppointmentUsecase {
	return &appointmentUsecase{
		db:                db,
		log:               log,
		appointmentRepo:   appointmentRepo,
		doctorProfileRepo: doctorProfileRepo,
		userRepo:          userRepo,
		recordRepo:        recordRepo,
		doctorPatientRepo: doctorPatientRepo,
		auditService:      auditService,
	}
}

func caller(ctx context.Context) (uuid.UUID, int, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return uuid.Nil, 0, ErrCallerNotFound
	}
	roleID, ok := middleware.GetRoleIDFromContext(ctx)
	if !ok {
		return uuid.Nil, 0, ErrCallerNotFound
	}
	return userID, roleID, nil
}

// ListAppointments is role-scoped: admins see everything, doctors see their
// own schedule, patients see only their own bookings.
func (u *appointmentUsecase) ListAppointments(ctx context.Context) (*dto.AppointmentListResponse, error) {
	userID, roleID, err := caller(ctx)
	if err != nil {
		return nil, err
	}

	var appointments []entity.Appointment
	switch roleID {
	case entity.RoleIDAdmin:
		appointments, err = u.appointmentRepo.FindAll(u.db.WithContext(ctx))
	case entity.RoleIDDoctor:
		appointments, err = u.appointmentRepo.FindByDoctorID(u.db.WithContext(ctx), userID)
	default:
		appointments, err = u.appointmentRepo.FindByPatientID(u.db.WithContext(ctx), userID)
	}
	if err != nil {
		u.log.Warnf("Failed to list appointments for user %s: %+v", userID, err)
		return nil, err
	}

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        len(appointments),
	}, nil
}

func (u *appointmentUsecase) GetAppointment(ctx context.Context, id uuid.UUID) (*dto.AppointmentResponse, error) {
	userID, roleID, err := caller(ctx)
	if err != nil {
		return nil, err
	}

	appointment, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", id, err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}

	if roleID != entity.RoleIDAdmin && appointment.PatientID != userID && appointment.DoctorID != userID {
		return nil, ErrAppointmentNotOwned
	}

	return converter.AppointmentToResponse(appointment), nil
}

// CreateAppointment books a slot for the calling patient, or for an explicit
// patient when the caller is an admin. Booking does not consult the doctor's
// weekly schedule; any slot can be requested.
func (u *appointmentUsecase) CreateAppointment(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
	userID, roleID, err := caller(ctx)
	if err != nil {
		return nil, err
	}

	patientID := userID
	if roleID == entity.RoleIDAdmin {
		if req.PatientID == nil {
			return nil, ErrPatientNotFound
		}
		patientID = *req.PatientID
	}

	doctor, err := u.doctorProfileRepo.FindByUserID(u.db.WithContext(ctx), req.DoctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", req.DoctorID, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	if roleID == entity.RoleIDAdmin {
		patient, err := u.userRepo.FindByID(u.db.WithContext(ctx), patientID)
		if err != nil {
			u.log.Warnf("Failed to find patient %s: %+v", patientID, err)
			return nil, err
		}
		if patient == nil || !patient.IsPatient() {
			return nil, ErrPatientNotFound
		}
	}

	date, err := parseDate(req.Date)
	if err != nil {
		return nil, err
	}
	if err := validateTimeRange(req.StartTime, req.EndTime); err != nil {
		return nil, err
	}

	appointment := &entity.Appointment{
		DoctorID:        req.DoctorID,
		PatientID:       patientID,
		AppointmentDate: date,
		StartTime:       req.StartTime,
		EndTime:         req.EndTime,
		Reason:          req.Reason,
		Status:          entity.AppointmentStatusPending,
	}
	if req.Notes != "" {
		notes := req.Notes
		appointment.Notes = &notes
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.appointmentRepo.Create(tx, appointment); err != nil {
		// The existence pre-checks can race a concurrent delete; the FK
		// violation is the authoritative answer.
		if isForeignKeyError(err, "appointments_doctor_id") {
			return nil, ErrDoctorNotFound
		}
		if isForeignKeyError(err, "appointments_patient_id") {
			return nil, ErrPatientNotFound
		}
		u.log.Warnf("Failed to create appointment: %+v", err)
		return nil, err
	}

	if err := u.auditService.Record(tx, &userID, entity.AuditActionAppointmentCreate, "appointment", appointment.ID.String(), map[string]interface{}{
		"doctor_id":  appointment.DoctorID.String(),
		"patient_id": appointment.PatientID.String(),
		"date":       req.Date,
	}); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed to commit appointment create: %+v", err)
		return nil, err
	}

	u.log.Infof("Appointment created: id=%s, doctor=%s, patient=%s", appointment.ID, appointment.DoctorID, appointment.PatientID)
	return converter.AppointmentToResponse(appointment), nil
}

// UpdateAppointment edits reason and notes in place. A date or time change is
// a reschedule: it is subject to the same terminal-status guard and resets the
// appointment to pending for the doctor to re-confirm.
func (u *appointmentUsecase) UpdateAppointment(ctx context.Context, id uuid.UUID, req *dto.UpdateAppointmentRequest) (*dto.AppointmentResponse, error) {
	userID, roleID, err := caller(ctx)
	if err != nil {
		return nil, err
	}

	appointment, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", id, err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}

	if roleID != entity.RoleIDAdmin && appointment.PatientID != userID {
		return nil, ErrAppointmentNotOwned
	}

	if req.Reason != "" {
		appointment.Reason = req.Reason
	}
	if req.Notes != "" {
		notes := req.Notes
		appointment.Notes = &notes
	}

	rescheduled := req.Date != "" || req.StartTime != "" || req.EndTime != ""
	previousStatus := appointment.Status
	if rescheduled {
		if !appointment.CanReschedule() {
			return nil, ErrRescheduleTerminal
		}
		if req.Date != "" {
			date, err := parseDate(req.Date)
			if err != nil {
				return nil, err
			}
			appointment.AppointmentDate = date
		}
		if req.StartTime != "" {
			appointment.StartTime = req.StartTime
		}
		if req.EndTime != "" {
			appointment.EndTime = req.EndTime
		}
		if err := validateTimeRange(appointment.StartTime, appointment.EndTime); err != nil {
			return nil, err
		}
		appointment.Status = entity.AppointmentStatusPending
	}

	if !rescheduled {
		if err := u.appointmentRepo.Update(u.db.WithContext(ctx), appointment); err != nil {
			u.log.Warnf("Failed to update appointment %s: %+v", id, err)
			return nil, err
		}
		return converter.AppointmentToResponse(appointment), nil
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.appointmentRepo.Update(tx, appointment); err != nil {
		u.log.Warnf("Failed to update appointment %s: %+v", id, err)
		return nil, err
	}

	if err := u.auditService.Record(tx, &userID, entity.AuditActionAppointmentReschedule, "appointment", id.String(), map[string]interface{}{
		"from_status": string(previousStatus),
		"date":        appointment.AppointmentDate.Format("2006-01-02"),
	}); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed to commit appointment update %s: %+v", id, err)
		return nil, err
	}

	return converter.AppointmentToResponse(appointment), nil
}

func (u *appointmentUsecase) DeleteAppointment(ctx context.Context, id uuid.UUID) error {
	userID, roleID, err := caller(ctx)
	if err != nil {
		return err
	}

	appointment, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", id, err)
		return err
	}
	if appointment == nil {
		return ErrAppointmentNotFound
	}

	if roleID != entity.RoleIDAdmin && appointment.PatientID != userID {
		return ErrAppointmentNotOwned
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	affected, err := u.appointmentRepo.Delete(tx, id)
	if err != nil {
		u.log.Warnf("Failed to delete appointment %s: %+v", id, err)
		return err
	}
	if affected == 0 {
		return ErrAppointmentNotFound
	}

	if err := u.auditService.Record(tx, &userID, entity.AuditActionAppointmentDelete, "appointment", id.String(), nil); err != nil {
		return err
	}

	return tx.Commit().Error
}

// transitionStatus performs one guarded status change plus its audit entry in
// a single transaction. The repository's compare-and-set on the current
// status means a concurrent transition loses cleanly instead of overwriting.
func (u *appointmentUsecase) transitionStatus(ctx context.Context, callerID uuid.UUID, appointment *entity.Appointment, to entity.AppointmentStatus, action string) error {
	if !appointment.Status.CanTransitionTo(to) {
		return ErrInvalidStatusTransition
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	affected, err := u.appointmentRepo.UpdateStatus(tx, appointment.ID, appointment.Status, to)
	if err != nil {
		u.log.Warnf("Failed to update appointment %s status: %+v", appointment.ID, err)
		return err
	}
	if affected == 0 {
		// Lost a race: the appointment moved on since we loaded it.
		return ErrInvalidStatusTransition
	}

	if err := u.auditService.Record(tx, &callerID, action, "appointment", appointment.ID.String(), map[string]interface{}{
		"from": string(appointment.Status),
		"to":   string(to),
	}); err != nil {
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed to commit status transition for %s: %+v", appointment.ID, err)
		return err
	}

	appointment.Status = to
	u.log.Infof("Appointment %s: %s", appointment.ID, action)
	return nil
}

// ConfirmAppointment accepts a pending appointment. Allowed for the
// appointment's doctor or an admin.
func (u *appointmentUsecase) ConfirmAppointment(ctx context.Context, id uuid.UUID) error {
	userID, roleID, err := caller(ctx)
	if err != nil {
		return err
	}

	appointment, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", id, err)
		return err
	}
	if appointment == nil {
		return ErrAppointmentNotFound
	}

	if roleID != entity.RoleIDAdmin && appointment.DoctorID != userID {
		return ErrNotAppointmentDoctor
	}

	return u.transitionStatus(ctx, userID, appointment, entity.AppointmentStatusConfirmed, entity.AuditActionAppointmentConfirm)
}

// DeclineAppointment is the doctor refusing a request; it is defined for
// pending appointments only, and only the appointment's own doctor may
// decline. Admins (and confirmed appointments) go through CancelAppointment
// instead.
func (u *appointmentUsecase) DeclineAppointment(ctx context.Context, id uuid.UUID) error {
	userID, _, err := caller(ctx)
	if err != nil {
		return err
	}

	appointment, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", id, err)
		return err
	}
	if appointment == nil {
		return ErrAppointmentNotFound
	}

	if appointment.DoctorID != userID {
		return ErrNotAppointmentDoctor
	}

	if !appointment.IsPending() {
		return ErrDeclineRequiresPending
	}

	return u.transitionStatus(ctx, userID, appointment, entity.AppointmentStatusCancelled, entity.AuditActionAppointmentDecline)
}

// CancelAppointment cancels a pending or confirmed appointment. Allowed for
// the owning patient, the appointment's doctor, or an admin. Cancelling an
// already-cancelled appointment is rejected explicitly.
func (u *appointmentUsecase) CancelAppointment(ctx context.Context, id uuid.UUID) error {
	userID, roleID, err := caller(ctx)
	if err != nil {
		return err
	}

	appointment, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", id, err)
		return err
	}
	if appointment == nil {
		return ErrAppointmentNotFound
	}

	if roleID != entity.RoleIDAdmin && appointment.PatientID != userID && appointment.DoctorID != userID {
		return ErrAppointmentNotOwned
	}

	if appointment.IsCancelled() {
		return ErrAppointmentAlreadyCancelled
	}

	return u.transitionStatus(ctx, userID, appointment, entity.AppointmentStatusCancelled, entity.AuditActionAppointmentCancel)
}

// RescheduleAppointment moves an open appointment to a new slot and resets it
// to pending so the doctor has to accept it again. Terminal appointments stay
// terminal; reopening a cancelled or completed appointment is not allowed.
func (u *appointmentUsecase) RescheduleAppointment(ctx context.Context, id uuid.UUID, req *dto.RescheduleAppointmentRequest) (*dto.AppointmentResponse, error) {
	userID, roleID, err := caller(ctx)
	if err != nil {
		return nil, err
	}

	appointment, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", id, err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}

	if roleID != entity.RoleIDAdmin && appointment.PatientID != userID {
		return nil, ErrAppointmentNotOwned
	}

	if !appointment.CanReschedule() {
		return nil, ErrRescheduleTerminal
	}

	date, err := parseDate(req.Date)
	if err != nil {
		return nil, err
	}
	if err := validateTimeRange(req.StartTime, req.EndTime); err != nil {
		return nil, err
	}

	previousStatus := appointment.Status
	appointment.AppointmentDate = date
	appointment.StartTime = req.StartTime
	appointment.EndTime = req.EndTime
	appointment.Status = entity.AppointmentStatusPending

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.appointmentRepo.Update(tx, appointment); err != nil {
		u.log.Warnf("Failed to reschedule appointment %s: %+v", id, err)
		return nil, err
	}

	if err := u.auditService.Record(tx, &userID, entity.AuditActionAppointmentReschedule, "appointment", id.String(), map[string]interface{}{
		"from_status": string(previousStatus),
		"date":        req.Date,
	}); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed to commit reschedule for %s: %+v", id, err)
		return nil, err
	}

	return converter.AppointmentToResponse(appointment), nil
}

// CompleteAppointment closes out a confirmed appointment: it writes the
// medical record, the doctor-patient relation, the status change and the
// audit entry in one transaction, so either all of them land or none do.
// Only the appointment's own doctor may complete it.
func (u *appointmentUsecase) CompleteAppointment(ctx context.Context, id uuid.UUID, req *dto.CompleteAppointmentRequest) (*dto.MedicalRecordResponse, error) {
	userID, _, err := caller(ctx)
	if err != nil {
		return nil, err
	}

	appointment, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", id, err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}

	if appointment.DoctorID != userID {
		return nil, ErrNotAppointmentDoctor
	}

	if !appointment.Status.CanTransitionTo(entity.AppointmentStatusCompleted) {
		return nil, ErrInvalidStatusTransition
	}

	record := &entity.MedicalRecord{
		DoctorID:      appointment.DoctorID,
		PatientID:     appointment.PatientID,
		AppointmentID: &appointment.ID,
		RecordDate:    appointment.AppointmentDate,
		Diagnosis:     req.Diagnosis,
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
		u.log.Warnf("Failed to create medical record for appointment %s: %+v", id, err)
		return nil, err
	}

	relation := &entity.DoctorPatient{
		AppointmentID: appointment.ID,
		DoctorID:      appointment.DoctorID,
		PatientID:     appointment.PatientID,
	}
	if err := u.doctorPatientRepo.Create(tx, relation); err != nil {
		u.log.Warnf("Failed to create doctor-patient relation for appointment %s: %+v", id, err)
		return nil, err
	}

	affected, err := u.appointmentRepo.UpdateStatus(tx, id, appointment.Status, entity.AppointmentStatusCompleted)
	if err != nil {
		u.log.Warnf("Failed to complete appointment %s: %+v", id, err)
		return nil, err
	}
	if affected == 0 {
		// Lost a race with a concurrent transition; nothing was committed.
		return nil, ErrInvalidStatusTransition
	}

	if err := u.auditService.Record(tx, &userID, entity.AuditActionAppointmentComplete, "appointment", id.String(), map[string]interface{}{
		"medical_record_id": record.ID.String(),
		"patient_id":        appointment.PatientID.String(),
	}); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed to commit completion of appointment %s: %+v", id, err)
		return nil, err
	}

	u.log.Infof("Appointment completed: id=%s, record=%s", id, record.ID)
	return converter.MedicalRecordToResponse(record), nil
}
