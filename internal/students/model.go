package students

import "time"

// DB行に対応（スキャン用）
type studentRow struct {
	StudentID string
	FullName  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Student struct {
	StudentID string
	FullName  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (r studentRow) toModel() Student {
	return Student{
		StudentID: r.StudentID,
		FullName:  r.FullName,
		CreatedAt: r.CreatedAt.UTC(),
		UpdatedAt: r.UpdatedAt.UTC(),
	}
}

func (s Student) toDTO() StudentResponse {
	return StudentResponse{
		StudentID: s.StudentID,
		FullName:  s.FullName,
		CreatedAt: s.CreatedAt,
	}
}
