package http

import (
	"net/http"

	"clinic-appointment-server/internal/delivery/http/handler"
	"clinic-appointment-server/internal/delivery/http/middleware"
	"clinic-appointment-server/internal/domain/entity"

	"github.com/gorilla/mux"
)

type Router struct {
	router               *mux.Router
	authHandler          *handler.AuthHandler
	doctorHandler        *handler.DoctorHandler
	scheduleHandler      *handler.ScheduleHandler
	appointmentHandler   *handler.AppointmentHandler
	medicalRecordHandler *handler.MedicalRecordHandler
	statsHandler         *handler.StatsHandler
	auditLogHandler      *handler.AuditLogHandler
	authMiddleware       *middleware.AuthMiddleware
	corsMiddleware       *middleware.CORSMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	doctorHandler *handler.DoctorHandler,
	scheduleHandler *handler.ScheduleHandler,
	appointmentHandler *handler.AppointmentHandler,
	medicalRecordHandler *handler.MedicalRecordHandler,
	statsHandler *handler.StatsHandler,
	auditLogHandler *handler.AuditLogHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:               mux.NewRouter(),
		authHandler:          authHandler,
		doctorHandler:        doctorHandler,
		scheduleHandler:      scheduleHandler,
		appointmentHandler:   appointmentHandler,
		medicalRecordHandler: medicalRecordHandler,
		statsHandler:         statsHandler,
		auditLogHandler:      auditLogHandler,
		authMiddleware:       authMiddleware,
		corsMiddleware:       corsMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Auth routes (public)
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/register/patient", r.authHandler.RegisterPatient).Methods(http.MethodPost)
	auth.HandleFunc("/login", r.authHandler.Login).Methods(http.MethodPost)
	auth.HandleFunc("/refresh-token", r.authHandler.RefreshToken).Methods(http.MethodPost)

	// Auth routes (protected)
	authProtected := api.PathPrefix("/auth").Subrouter()
	authProtected.Use(r.authMiddleware.Authenticate)
	authProtected.HandleFunc("/logout", r.authHandler.Logout).Methods(http.MethodPost)
	authProtected.HandleFunc("/me", r.authHandler.GetCurrentUser).Methods(http.MethodGet)

	// Doctor directory (public)
	api.HandleFunc("/doctors", r.doctorHandler.ListDoctors).Methods(http.MethodGet)
	api.HandleFunc("/doctors/{id}", r.doctorHandler.GetDoctor).Methods(http.MethodGet)
	api.HandleFunc("/doctors/{doctorId}/schedules", r.scheduleHandler.GetSchedulesByDoctor).Methods(http.MethodGet)

	// Doctor profile updates (doctor themselves or admin)
	doctors := api.PathPrefix("/doctors").Subrouter()
	doctors.Use(r.authMiddleware.Authenticate)
	doctors.Use(middleware.RequireAdminOrDoctor)
	doctors.HandleFunc("/{id}", r.doctorHandler.UpdateDoctor).Methods(http.MethodPut)

	// Appointments (any authenticated user; ownership enforced in usecase)
	appointments := api.PathPrefix("/appointments").Subrouter()
	appointments.Use(r.authMiddleware.Authenticate)
	appointments.HandleFunc("", r.appointmentHandler.ListAppointments).Methods(http.MethodGet)
	appointments.HandleFunc("/{id}", r.appointmentHandler.GetAppointment).Methods(http.MethodGet)
	appointments.HandleFunc("/{id}", r.appointmentHandler.UpdateAppointment).Methods(http.MethodPut)
	appointments.HandleFunc("/{id}", r.appointmentHandler.DeleteAppointment).Methods(http.MethodDelete)
	appointments.HandleFunc("/{id}/cancel", r.appointmentHandler.CancelAppointment).Methods(http.MethodPost)
	appointments.HandleFunc("/{id}/reschedule", r.appointmentHandler.RescheduleAppointment).Methods(http.MethodPost)

	// Booking is for patients (or an admin booking on a patient's behalf)
	booking := api.PathPrefix("/appointments").Subrouter()
	booking.Use(r.authMiddleware.Authenticate)
	booking.Use(middleware.RequireRole(entity.RoleIDPatient, entity.RoleIDAdmin))
	booking.HandleFunc("", r.appointmentHandler.CreateAppointment).Methods(http.MethodPost)

	// Appointment status actions (doctor or admin)
	appointmentActions := api.PathPrefix("/appointments").Subrouter()
	appointmentActions.Use(r.authMiddleware.Authenticate)
	appointmentActions.Use(middleware.RequireAdminOrDoctor)
	appointmentActions.HandleFunc("/{id}/confirm", r.appointmentHandler.ConfirmAppointment).Methods(http.MethodPost)

	// Decline and complete belong to the appointment's doctor alone
	doctorActions := api.PathPrefix("/appointments").Subrouter()
	doctorActions.Use(r.authMiddleware.Authenticate)
	doctorActions.Use(middleware.RequireDoctor)
	doctorActions.HandleFunc("/{id}/decline", r.appointmentHandler.DeclineAppointment).Methods(http.MethodPost)
	doctorActions.HandleFunc("/{id}/complete", r.appointmentHandler.CompleteAppointment).Methods(http.MethodPost)

	// Medical records (reads scoped per role in usecase, writes doctor only)
	records := api.PathPrefix("/medical-records").Subrouter()
	records.Use(r.authMiddleware.Authenticate)
	records.HandleFunc("", r.medicalRecordHandler.ListRecords).Methods(http.MethodGet)
	records.HandleFunc("/{id}", r.medicalRecordHandler.GetRecord).Methods(http.MethodGet)
	records.HandleFunc("/{id}/lab-results", r.medicalRecordHandler.ListLabResults).Methods(http.MethodGet)

	recordWrites := api.PathPrefix("/medical-records").Subrouter()
	recordWrites.Use(r.authMiddleware.Authenticate)
	recordWrites.Use(middleware.RequireDoctor)
	recordWrites.HandleFunc("", r.medicalRecordHandler.CreateRecord).Methods(http.MethodPost)
	recordWrites.HandleFunc("/{id}/lab-results", r.medicalRecordHandler.AddLabResult).Methods(http.MethodPost)

	// Doctor workspace
	doctorArea := api.PathPrefix("/doctor").Subrouter()
	doctorArea.Use(r.authMiddleware.Authenticate)
	doctorArea.Use(middleware.RequireDoctor)
	doctorArea.HandleFunc("/patients", r.doctorHandler.GetMyPatients).Methods(http.MethodGet)

	// Admin routes (protected - admin only)
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(r.authMiddleware.Authenticate)
	admin.Use(middleware.RequireAdmin)
	admin.HandleFunc("/stats", r.statsHandler.GetStats).Methods(http.MethodGet)
	admin.HandleFunc("/audit-logs", r.auditLogHandler.ListAuditLogs).Methods(http.MethodGet)
	admin.HandleFunc("/doctors", r.authHandler.RegisterDoctor).Methods(http.MethodPost)

	// Schedule management (admin or doctor; schedules belong to doctors)
	schedules := api.PathPrefix("/schedules").Subrouter()
	schedules.Use(r.authMiddleware.Authenticate)
	schedules.Use(middleware.RequireRole(entity.RoleIDAdmin, entity.RoleIDDoctor))
	schedules.HandleFunc("", r.scheduleHandler.CreateSchedule).Methods(http.MethodPost)
	schedules.HandleFunc("/{id}", r.scheduleHandler.GetSchedule).Methods(http.MethodGet)
	schedules.HandleFunc("/{id}", r.scheduleHandler.UpdateSchedule).Methods(http.MethodPut)
	schedules.HandleFunc("/{id}", r.scheduleHandler.DeleteSchedule).Methods(http.MethodDelete)

	// Add CORS middleware
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
