package students

import "time"

type CreateStudentRequest struct {
	StudentID string `json:"student_id" binding:"required"`
	FullName  string `json:"full_name" binding:"required"`
}

type UpdateStudentRequest struct {
	FullName     string  `json:"full_name" binding:"required"`
	NewStudentID *string `json:"new_student_id,omitempty"` // 学籍番号の修正用
}

type StudentResponse struct {
	StudentID string    `json:"student_id"`
	FullName  string    `json:"full_name"`
	CreatedAt time.Time `json:"created_at"`
}
