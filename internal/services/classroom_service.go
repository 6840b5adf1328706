// internal/services/classroom_service.go
package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/javajoker/school-sales-backend/internal/models"
	"github.com/javajoker/school-sales-backend/internal/repository"
	"github.com/javajoker/school-sales-backend/internal/utils"
)

const duplicateClassroomMessage = "classroom name already exists"

// ClassroomService keeps the classrooms orders can be placed from. Roster
// import is not handled here; students are stored as given.
type ClassroomService struct {
	store repository.Store
}

type CreateClassroomRequest struct {
	Name         string       `json:"name" validate:"required,max=255"`
	TeacherID    uuid.UUID    `json:"teacher_id" validate:"required"`
	DepartmentID uuid.UUID    `json:"department_id" validate:"required"`
	GradeLevelID uuid.UUID    `json:"grade_level_id" validate:"required"`
	Students     models.JSONB `json:"students,omitempty"`
}

type UpdateClassroomRequest struct {
	Name         *string      `json:"name,omitempty" validate:"omitempty,max=255"`
	TeacherID    *uuid.UUID   `json:"teacher_id,omitempty"`
	DepartmentID *uuid.UUID   `json:"department_id,omitempty"`
	GradeLevelID *uuid.UUID   `json:"grade_level_id,omitempty"`
	Students     models.JSONB `json:"students,omitempty"`
}

type ClassroomListParams struct {
	utils.PaginationParams
	DepartmentID *uuid.UUID
}

func NewClassroomService(store repository.Store) *ClassroomService {
	return &ClassroomService{store: store}
}

func (s *ClassroomService) Create(ctx context.Context, req *CreateClassroomRequest) (*models.Classroom, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, validationError("classroom name is required and cannot be empty")
	}
	if req.TeacherID == uuid.Nil || req.DepartmentID == uuid.Nil || req.GradeLevelID == uuid.Nil {
		return nil, validationError("teacher, department and grade level are required")
	}

	classroom := &models.Classroom{
		Name:         name,
		TeacherID:    req.TeacherID,
		DepartmentID: req.DepartmentID,
		GradeLevelID: req.GradeLevelID,
		Students:     req.Students,
	}
	if err := s.store.Classrooms().Create(ctx, classroom); err != nil {
		return nil, storageError(err, "classroom", duplicateClassroomMessage)
	}

	logrus.WithContext(ctx).WithFields(logrus.Fields{
		"classroom_id": classroom.ID,
		"students":     len(classroom.Students),
	}).Info("Classroom created")
	return classroom, nil
}

func (s *ClassroomService) FindByID(ctx context.Context, id uuid.UUID) (*models.Classroom, error) {
	classroom, err := s.store.Classrooms().FindByID(ctx, id)
	if err != nil {
		return nil, storageError(err, "classroom", "")
	}
	return classroom, nil
}

func (s *ClassroomService) FindAll(ctx context.Context, params ClassroomListParams) ([]models.Classroom, int64, error) {
	classrooms, total, err := s.store.Classrooms().FindAll(ctx, repository.ClassroomFilter{
		Page:         pageOf(params.PaginationParams),
		Search:       params.Search,
		DepartmentID: params.DepartmentID,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list classrooms: %w", err)
	}
	return classrooms, total, nil
}

func (s *ClassroomService) Update(ctx context.Context, id uuid.UUID, req *UpdateClassroomRequest) (*models.Classroom, error) {
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		return nil, validationError("classroom name is required and cannot be empty")
	}

	classroom, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		classroom.Name = strings.TrimSpace(*req.Name)
	}
	if req.TeacherID != nil {
		classroom.TeacherID = *req.TeacherID
	}
	if req.DepartmentID != nil {
		classroom.DepartmentID = *req.DepartmentID
	}
	if req.GradeLevelID != nil {
		classroom.GradeLevelID = *req.GradeLevelID
	}
	if req.Students != nil {
		classroom.Students = req.Students
	}

	if err := s.store.Classrooms().Update(ctx, classroom); err != nil {
		return nil, storageError(err, "classroom", duplicateClassroomMessage)
	}
	return s.FindByID(ctx, id)
}

// Delete removes a classroom. Its orders stay and lose their classroom reference.
func (s *ClassroomService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.store.Classrooms().Delete(ctx, id); err != nil {
		return storageError(err, "classroom", "")
	}
	logrus.WithContext(ctx).WithField("classroom_id", id).Info("Classroom deleted")
	return nil
}
