// internal/handlers/classroom.go
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/javajoker/school-sales-backend/internal/i18n"
	"github.com/javajoker/school-sales-backend/internal/services"
	"github.com/javajoker/school-sales-backend/internal/utils"
)

type ClassroomHandler struct {
	classroomService *services.ClassroomService
}

func NewClassroomHandler(classroomService *services.ClassroomService) *ClassroomHandler {
	return &ClassroomHandler{classroomService: classroomService}
}

// GET /classrooms
func (h *ClassroomHandler) GetClassrooms(c *gin.Context) {
	params := services.ClassroomListParams{PaginationParams: utils.GetPaginationParams(c)}
	if raw := c.Query("department_id"); raw != "" {
		departmentID, err := uuid.Parse(raw)
		if err != nil {
			utils.BadRequestResponse(c, i18n.T(utils.GetLangFromContext(c), i18n.KeyInvalidID, "department"), nil)
			return
		}
		params.DepartmentID = &departmentID
	}

	classrooms, total, err := h.classroomService.FindAll(c.Request.Context(), params)
	if err != nil {
		respondError(c, err, nil)
		return
	}

	utils.PaginatedResponse(c, utils.CreatePaginationResult(classrooms, total, params.PaginationParams))
}

// POST /classrooms
func (h *ClassroomHandler) CreateClassroom(c *gin.Context) {
	var req services.CreateClassroomRequest
	if !bindJSON(c, &req) {
		return
	}

	classroom, err := h.classroomService.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err, nil)
		return
	}

	utils.CreatedResponse(c, classroom)
}

// GET /classrooms/:id
func (h *ClassroomHandler) GetClassroom(c *gin.Context) {
	id, ok := parseID(c, "id", "classroom")
	if !ok {
		return
	}

	classroom, err := h.classroomService.FindByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, nil)
		return
	}

	utils.SuccessResponse(c, classroom)
}

// PUT|PATCH /classrooms/:id
func (h *ClassroomHandler) UpdateClassroom(c *gin.Context) {
	id, ok := parseID(c, "id", "classroom")
	if !ok {
		return
	}

	var req services.UpdateClassroomRequest
	if !bindJSON(c, &req) {
		return
	}

	classroom, err := h.classroomService.Update(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err, nil)
		return
	}

	utils.SuccessResponse(c, classroom)
}

// DELETE /classrooms/:id
func (h *ClassroomHandler) DeleteClassroom(c *gin.Context) {
	id, ok := parseID(c, "id", "classroom")
	if !ok {
		return
	}

	if err := h.classroomService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err, nil)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(utils.GetLangFromContext(c), i18n.KeyClassroomDeleted),
		"id":      id,
	})
}
