package usecase

import (
	"testing"

	"clinic-appointment-server/internal/domain/entity"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newTestDB returns a gorm DB backed by sqlmock so transaction begin/commit
// can be asserted without a real database. Repositories are mocked above the
// gorm layer, so only transaction control statements reach sqlmock.
func newTestDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, dbMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		DisableAutomaticPing:   true,
		SkipDefaultTransaction: true,
		Logger:                 gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	return db, dbMock
}

func newTestLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

// MockAppointmentRepository is a mock implementation of AppointmentRepository
type MockAppointmentRepository struct {
	mock.Mock
}

func (m *MockAppointmentRepository) Create(db *gorm.DB, appointment *entity.Appointment) error {
	args := m.Called(db, appointment)
	return args.Error(0)
}

func (m *MockAppointmentRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error) {
	args := m.Called(db, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Appointment), args.Error(1)
}

func (m *MockAppointmentRepository) FindAll(db *gorm.DB) ([]entity.Appointment, error) {
	args := m.Called(db)
	return args.Get(0).([]entity.Appointment), args.Error(1)
}

func (m *MockAppointmentRepository) FindByDoctorID(db *gorm.DB, doctorID uuid.UUID) ([]entity.Appointment, error) {
	args := m.Called(db, doctorID)
	return args.Get(0).([]entity.Appointment), args.Error(1)
}

func (m *MockAppointmentRepository) FindByPatientID(db *gorm.DB, patientID uuid.UUID) ([]entity.Appointment, error) {
	args := m.Called(db, patientID)
	return args.Get(0).([]entity.Appointment), args.Error(1)
}

func (m *MockAppointmentRepository) Count(db *gorm.DB) (int64, error) {
	args := m.Called(db)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAppointmentRepository) Update(db *gorm.DB, appointment *entity.Appointment) error {
	args := m.Called(db, appointment)
	return args.Error(0)
}

func (m *MockAppointmentRepository) UpdateStatus(db *gorm.DB, id uuid.UUID, from, to entity.AppointmentStatus) (int64, error) {
	args := m.Called(db, id, from, to)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAppointmentRepository) Delete(db *gorm.DB, id uuid.UUID) (int64, error) {
	args := m.Called(db, id)
	return args.Get(0).(int64), args.Error(1)
}

// MockScheduleRepository is a mock implementation of ScheduleRepository
type MockScheduleRepository struct {
	mock.Mock
}

func (m *MockScheduleRepository) Create(db *gorm.DB, schedule *entity.Schedule) error {
	args := m.Called(db, schedule)
	return args.Error(0)
}

func (m *MockScheduleRepository) FindByID(db *gorm.DB, id int) (*entity.Schedule, error) {
	args := m.Called(db, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Schedule), args.Error(1)
}

func (m *MockScheduleRepository) FindByDoctorID(db *gorm.DB, doctorID uuid.UUID) ([]entity.Schedule, error) {
	args := m.Called(db, doctorID)
	return args.Get(0).([]entity.Schedule), args.Error(1)
}

func (m *MockScheduleRepository) FindByDoctorAndDay(db *gorm.DB, doctorID uuid.UUID, dayOfWeek int) (*entity.Schedule, error) {
	args := m.Called(db, doctorID, dayOfWeek)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Schedule), args.Error(1)
}

func (m *MockScheduleRepository) CountDoctorsOnDuty(db *gorm.DB, dayOfWeek int) (int64, error) {
	args := m.Called(db, dayOfWeek)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockScheduleRepository) Update(db *gorm.DB, schedule *entity.Schedule) error {
	args := m.Called(db, schedule)
	return args.Error(0)
}

func (m *MockScheduleRepository) Delete(db *gorm.DB, id int) (int64, error) {
	args := m.Called(db, id)
	return args.Get(0).(int64), args.Error(1)
}

// MockDoctorProfileRepository is a mock implementation of DoctorProfileRepository
type MockDoctorProfileRepository struct {
	mock.Mock
}

func (m *MockDoctorProfileRepository) Create(db *gorm.DB, profile *entity.DoctorProfile) error {
	args := m.Called(db, profile)
	return args.Error(0)
}

func (m *MockDoctorProfileRepository) FindByUserID(db *gorm.DB, userID uuid.UUID) (*entity.DoctorProfile, error) {
	args := m.Called(db, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.DoctorProfile), args.Error(1)
}

func (m *MockDoctorProfileRepository) FindAllActive(db *gorm.DB) ([]entity.DoctorProfile, error) {
	args := m.Called(db)
	return args.Get(0).([]entity.DoctorProfile), args.Error(1)
}

func (m *MockDoctorProfileRepository) Update(db *gorm.DB, profile *entity.DoctorProfile) error {
	args := m.Called(db, profile)
	return args.Error(0)
}

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(db *gorm.DB, user *entity.User) error {
	args := m.Called(db, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByEmail(db *gorm.DB, email string) (*entity.User, error) {
	args := m.Called(db, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.User, error) {
	args := m.Called(db, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) Update(db *gorm.DB, user *entity.User) error {
	args := m.Called(db, user)
	return args.Error(0)
}

// MockMedicalRecordRepository is a mock implementation of MedicalRecordRepository
type MockMedicalRecordRepository struct {
	mock.Mock
}

func (m *MockMedicalRecordRepository) Create(db *gorm.DB, record *entity.MedicalRecord) error {
	args := m.Called(db, record)
	return args.Error(0)
}

func (m *MockMedicalRecordRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.MedicalRecord, error) {
	args := m.Called(db, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.MedicalRecord), args.Error(1)
}

func (m *MockMedicalRecordRepository) FindAll(db *gorm.DB) ([]entity.MedicalRecord, error) {
	args := m.Called(db)
	return args.Get(0).([]entity.MedicalRecord), args.Error(1)
}

func (m *MockMedicalRecordRepository) FindByDoctorID(db *gorm.DB, doctorID uuid.UUID) ([]entity.MedicalRecord, error) {
	args := m.Called(db, doctorID)
	return args.Get(0).([]entity.MedicalRecord), args.Error(1)
}

func (m *MockMedicalRecordRepository) FindByPatientID(db *gorm.DB, patientID uuid.UUID) ([]entity.MedicalRecord, error) {
	args := m.Called(db, patientID)
	return args.Get(0).([]entity.MedicalRecord), args.Error(1)
}

// MockDoctorPatientRepository is a mock implementation of DoctorPatientRepository
type MockDoctorPatientRepository struct {
	mock.Mock
}

func (m *MockDoctorPatientRepository) Create(db *gorm.DB, relation *entity.DoctorPatient) error {
	args := m.Called(db, relation)
	return args.Error(0)
}

func (m *MockDoctorPatientRepository) FindByDoctorID(db *gorm.DB, doctorID uuid.UUID) ([]entity.DoctorPatient, error) {
	args := m.Called(db, doctorID)
	return args.Get(0).([]entity.DoctorPatient), args.Error(1)
}

// MockRoleRepository is a mock implementation of RoleRepository
type MockRoleRepository struct {
	mock.Mock
}

func (m *MockRoleRepository) FindByID(db *gorm.DB, id int) (*entity.Role, error) {
	args := m.Called(db, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Role), args.Error(1)
}

func (m *MockRoleRepository) FindByName(db *gorm.DB, name string) (*entity.Role, error) {
	args := m.Called(db, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Role), args.Error(1)
}

// MockAuditService is a mock implementation of service.AuditService
type MockAuditService struct {
	mock.Mock
}

func (m *MockAuditService) Record(tx *gorm.DB, userID *uuid.UUID, action string, entityName string, entityID string, metadata map[string]interface{}) error {
	args := m.Called(tx, userID, action, entityName, entityID, metadata)
	return args.Error(0)
}
