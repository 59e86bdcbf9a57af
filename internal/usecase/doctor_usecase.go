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
	ErrDoctorNotFound  = errors.New("doctor not found")
	ErrNotProfileOwner = errors.New("profile does not belong to you")
)

type DoctorUsecase interface {
	ListDoctors(ctx context.Context) (*dto.DoctorListResponse, error)
	GetDoctor(ctx context.Context, doctorID uuid.UUID) (*dto.DoctorResponse, error)
	UpdateDoctor(ctx context.Context, doctorID uuid.UUID, req *dto.UpdateDoctorRequest) (*dto.DoctorResponse, error)
	GetMyPatients(ctx context.Context) (*dto.PatientListResponse, error)
}

type doctorUsecase struct {
	db                *gorm.DB
	log               *logrus.Logger
	userRepo          repository.UserRepository
	doctorProfileRepo repository.DoctorProfileRepository
	doctorPatientRepo repository.DoctorPatientRepository
	auditService      service.AuditService
}

func NewDoctorUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	doctorProfileRepo repository.DoctorProfileRepository,
	doctorPatientRepo repository.DoctorPatientRepository,
	auditService service.AuditService,
) DoctorUsecase {
	return &doctorUsecase{
		db:                db,
		log:               log,
		userRepo:          userRepo,
		doctorProfileRepo: doctorProfileRepo,
		doctorPatientRepo: doctorPatientRepo,
		auditService:      auditService,
	}
}

// ListDoctors returns all active doctors. Public, no authentication needed.
func (u *doctorUsecase) ListDoctors(ctx context.Context) (*dto.DoctorListResponse, error) {
	profiles, err := u.doctorProfileRepo.FindAllActive(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to list doctors: %+v", err)
		return nil, err
	}

	return &dto.DoctorListResponse{
		Doctors: converter.DoctorsToResponses(profiles),
		Total:   len(profiles),
	}, nil
}

func (u *doctorUsecase) GetDoctor(ctx context.Context, doctorID uuid.UUID) (*dto.DoctorResponse, error) {
	profile, err := u.doctorProfileRepo.FindByUserID(u.db.WithContext(ctx), doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", doctorID, err)
		return nil, err
	}
	if profile == nil {
		return nil, ErrDoctorNotFound
	}

	return converter.DoctorToResponse(profile), nil
}

// UpdateDoctor modifies a doctor's profile and user fields. Allowed for the
// doctor themselves or an admin; only admins may toggle IsActive.
func (u *doctorUsecase) UpdateDoctor(ctx context.Context, doctorID uuid.UUID, req *dto.UpdateDoctorRequest) (*dto.DoctorResponse, error) {
	userID, roleID, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	if roleID != entity.RoleIDAdmin && userID != doctorID {
		return nil, ErrNotProfileOwner
	}

	profile, err := u.doctorProfileRepo.FindByUserID(u.db.WithContext(ctx), doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", doctorID, err)
		return nil, err
	}
	if profile == nil {
		return nil, ErrDoctorNotFound
	}

	user, err := u.userRepo.FindByID(u.db.WithContext(ctx), doctorID)
	if err != nil {
		u.log.Warnf("Failed to find user %s: %+v", doctorID, err)
		return nil, err
	}
	if user == nil {
		return nil, ErrDoctorNotFound
	}

	if req.FullName != "" {
		user.FullName = req.FullName
	}
	if req.Phone != "" {
		phone := req.Phone
		user.Phone = &phone
	}
	if req.IsActive != nil && roleID == entity.RoleIDAdmin {
		user.IsActive = *req.IsActive
	}

	if req.Specialty != "" {
		profile.Specialty = req.Specialty
	}
	if req.Biography != "" {
		profile.Biography = req.Biography
	}
	if req.Education != "" {
		profile.Education = req.Education
	}
	if req.Languages != "" {
		profile.Languages = req.Languages
	}
	if req.AvatarURL != "" {
		profile.AvatarURL = req.AvatarURL
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.userRepo.Update(tx, user); err != nil {
		u.log.Warnf("Failed to update user %s: %+v", doctorID, err)
		return nil, err
	}
	if err := u.doctorProfileRepo.Update(tx, profile); err != nil {
		u.log.Warnf("Failed to update doctor profile %s: %+v", doctorID, err)
		return nil, err
	}

	if err := u.auditService.Record(tx, &userID, entity.AuditActionDoctorUpdate, "doctor", doctorID.String(), nil); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed to commit doctor update: %+v", err)
		return nil, err
	}

	profile.User = *user
	return converter.DoctorToResponse(profile), nil
}

// GetMyPatients lists the patients the calling doctor has seen, built from
// the doctor-patient relations written at appointment completion.
func (u *doctorUsecase) GetMyPatients(ctx context.Context) (*dto.PatientListResponse, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrCallerNotFound
	}

	relations, err := u.doctorPatientRepo.FindByDoctorID(u.db.WithContext(ctx), userID)
	if err != nil {
		u.log.Warnf("Failed to list patients for doctor %s: %+v", userID, err)
		return nil, err
	}

	return &dto.PatientListResponse{
		Patients: converter.DoctorPatientsToResponses(relations),
		Total:    len(relations),
	}, nil
}
