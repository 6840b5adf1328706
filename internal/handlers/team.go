// internal/handlers/team.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/javajoker/school-sales-backend/internal/i18n"
	"github.com/javajoker/school-sales-backend/internal/services"
	"github.com/javajoker/school-sales-backend/internal/utils"
)

type TeamHandler struct {
	teamService      *services.TeamService
	teamSalesService *services.TeamSalesService
}

func NewTeamHandler(teamService *services.TeamService, teamSalesService *services.TeamSalesService) *TeamHandler {
	return &TeamHandler{
		teamService:      teamService,
		teamSalesService: teamSalesService,
	}
}

// GET /teams
func (h *TeamHandler) GetTeams(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	teams, total, err := h.teamService.FindAll(c.Request.Context(), services.TeamListParams{PaginationParams: params})
	if err != nil {
		respondError(c, err, nil)
		return
	}

	utils.PaginatedResponse(c, utils.CreatePaginationResult(teams, total, params))
}

// POST /teams
func (h *TeamHandler) CreateTeam(c *gin.Context) {
	var req services.CreateTeamRequest
	if !bindJSON(c, &req) {
		return
	}

	team, err := h.teamService.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err, nil)
		return
	}

	utils.CreatedResponse(c, team)
}

// GET /teams/:id
func (h *TeamHandler) GetTeam(c *gin.Context) {
	id, ok := parseID(c, "id", "team")
	if !ok {
		return
	}

	team, err := h.teamService.FindByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, nil)
		return
	}

	utils.SuccessResponse(c, team)
}

// PUT|PATCH /teams/:id
func (h *TeamHandler) UpdateTeam(c *gin.Context) {
	id, ok := parseID(c, "id", "team")
	if !ok {
		return
	}

	var req services.UpdateTeamRequest
	if !bindJSON(c, &req) {
		return
	}

	team, err := h.teamService.Update(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err, nil)
		return
	}

	utils.SuccessResponse(c, team)
}

// DELETE /teams/:id
func (h *TeamHandler) DeleteTeam(c *gin.Context) {
	id, ok := parseID(c, "id", "team")
	if !ok {
		return
	}

	if err := h.teamService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err, nil)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(utils.GetLangFromContext(c), i18n.KeyTeamDeleted),
		"id":      id,
	})
}

// POST /teams/:id/recalculate
func (h *TeamHandler) RecalculateTeam(c *gin.Context) {
	id, ok := parseID(c, "id", "team")
	if !ok {
		return
	}

	sales, err := h.teamSalesService.Recalculate(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, nil)
		return
	}

	utils.SuccessResponse(c, sales)
}

// POST /teams/recalculate
func (h *TeamHandler) RecalculateAllTeams(c *gin.Context) {
	report, err := h.teamSalesService.RecalculateAll(c.Request.Context())
	if err != nil {
		if report == nil {
			respondError(c, err, nil)
			return
		}
		utils.ErrorResponse(c, http.StatusInternalServerError, "RECALCULATION_FAILED",
			i18n.T(utils.GetLangFromContext(c), i18n.KeySalesRepairFailed), report)
		return
	}

	utils.SuccessResponse(c, report)
}
