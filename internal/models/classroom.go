// internal/models/classroom.go
package models

import (
	"github.com/google/uuid"
)

// Classroom is the optional location of an order and a member of teams.
// Teacher, department and grade level belong to the school directory; only
// their identifiers are kept here.
type Classroom struct {
	BaseModel
	Name         string    `json:"name" gorm:"size:255;not null;uniqueIndex"`
	TeacherID    uuid.UUID `json:"teacher_id" gorm:"type:uuid;index"`
	DepartmentID uuid.UUID `json:"department_id" gorm:"type:uuid;index"`
	GradeLevelID uuid.UUID `json:"grade_level_id" gorm:"type:uuid;index"`
	Students     JSONB     `json:"students,omitempty" gorm:"type:jsonb"`
}
