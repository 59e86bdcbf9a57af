package dto

// StatsResponse is the admin dashboard summary. AverageWaitTime and
// Efficiency are placeholder sample values, not computed metrics.
type StatsResponse struct {
	TotalAppointments int64  `json:"total_appointments"`
	DoctorsOnDuty     int64  `json:"doctors_on_duty"`
	AverageWaitTime   string `json:"average_wait_time"`
	Efficiency        string `json:"efficiency"`
}
