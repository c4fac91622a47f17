package reports

import "time"

const (
	DateLayout   = "2006-01-02"
	DefaultTopN  = 10
	MaxTopN      = 100
	MaxRangeDays = 366
)

type ReportQuery struct {
	StudentID *string
	From      *string // YYYY-MM-DD
	To        *string // YYYY-MM-DD
}

type ReportRow struct {
	StudentID  string    `json:"student_id"`
	FullName   string    `json:"full_name"`
	LogDate    string    `json:"date"`
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

type SummaryRequest struct {
	From  string // YYYY-MM-DD
	To    string // YYYY-MM-DD
	Limit int
}

type SummaryResponse struct {
	Items        []SummaryRow `json:"items"`
	OverallHours float64      `json:"overall_hours"`
	OverallDays  int64        `json:"overall_days"`
}

type SummaryRow struct {
	StudentID   string  `json:"student_id"`
	FullName    string  `json:"full_name"`
	TotalHours  float64 `json:"total_hours"`
	DaysPresent int64   `json:"days_present"`
}
