package timelog

import "time"

const (
	DateLayout = "2006-01-02"
	TimeLayout = "03:04 PM"

	ShiftAM = "AM"
	ShiftPM = "PM"
)

type TapRequest struct {
	StudentID string `json:"student_id" binding:"required"`
}

type TimeLogResponse struct {
	TimeLogID  string    `json:"time_log_id"`
	StudentID  string    `json:"student_id"`
	FullName   string    `json:"full_name"`
	LogDate    string    `json:"date"` // YYYY-MM-DD
	AmIn       *string   `json:"am_in,omitempty"`
	AmOut      *string   `json:"am_out,omitempty"`
	PmIn       *string   `json:"pm_in,omitempty"`
	PmOut      *string   `json:"pm_out,omitempty"`
	OtIn       *string   `json:"ot_in,omitempty"`
	OtOut      *string   `json:"ot_out,omitempty"`
	TotalHours float64   `json:"total_hours"`
	Status     string    `json:"status"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type TapResult struct {
	Message string          `json:"message"`
	Log     TimeLogResponse `json:"data"`
}
