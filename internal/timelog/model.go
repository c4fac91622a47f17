package timelog

import (
	"database/sql"
	"time"
)

// DB行に対応（スキャン用）
type timeLogRow struct {
	TimeLogID   int64
	TimeLogULID string
	StudentID   string
	FullName    string
	LogDate     string // DATE → "YYYY-MM-DD"
	AmIn        sql.NullString
	AmOut       sql.NullString
	PmIn        sql.NullString
	PmOut       sql.NullString
	OtIn        sql.NullString
	OtOut       sql.NullString
	TotalHours  float64
	Status      string
	Version     int64
	UpdatedAt   time.Time
}

// Service ↔ Store で使うモデル。
// 打刻フィールドは「未打刻 = nil」で状態を表す（別の状態カラムは持たない）。
type TimeLog struct {
	TimeLogID   int64
	TimeLogULID string
	StudentID   string
	FullName    string
	LogDate     string
	AmIn        *string
	AmOut       *string
	PmIn        *string
	PmOut       *string
	OtIn        *string
	OtOut       *string
	TotalHours  float64
	Status      string
	Version     int64
	UpdatedAt   time.Time
}

func (r timeLogRow) toModel() TimeLog {
	return TimeLog{
		TimeLogID:   r.TimeLogID,
		TimeLogULID: r.TimeLogULID,
		StudentID:   r.StudentID,
		FullName:    r.FullName,
		LogDate:     r.LogDate,
		AmIn:        nullToPtr(r.AmIn),
		AmOut:       nullToPtr(r.AmOut),
		PmIn:        nullToPtr(r.PmIn),
		PmOut:       nullToPtr(r.PmOut),
		OtIn:        nullToPtr(r.OtIn),
		OtOut:       nullToPtr(r.OtOut),
		TotalHours:  r.TotalHours,
		Status:      r.Status,
		Version:     r.Version,
		UpdatedAt:   r.UpdatedAt.UTC(),
	}
}

func (l TimeLog) toDTO() TimeLogResponse {
	return TimeLogResponse{
		TimeLogID:  l.TimeLogULID,
		StudentID:  l.StudentID,
		FullName:   l.FullName,
		LogDate:    l.LogDate,
		AmIn:       l.AmIn,
		AmOut:      l.AmOut,
		PmIn:       l.PmIn,
		PmOut:      l.PmOut,
		OtIn:       l.OtIn,
		OtOut:      l.OtOut,
		TotalHours: l.TotalHours,
		Status:     l.Status,
		UpdatedAt:  l.UpdatedAt,
	}
}

func nullToPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

func ptrToNull(p *string) any {
	if p == nil {
		return nil
	}
	return *p
}
