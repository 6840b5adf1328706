// internal/services/team_service.go
package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"github.com/javajoker/school-sales-backend/internal/models"
	"github.com/javajoker/school-sales-backend/internal/repository"
	"github.com/javajoker/school-sales-backend/internal/utils"
)

const duplicateTeamMessage = "team name already exists"

// TeamService manages team membership. Sales totals are read-only here and
// change only through TeamSalesService.
type TeamService struct {
	store repository.Store
}

type CreateTeamRequest struct {
	Name         string          `json:"name" validate:"required,max=255"`
	ClassroomIDs []uuid.UUID     `json:"classroom_ids" validate:"required,min=1"`
	TeamType     models.TeamType `json:"team_type,omitempty" validate:"omitempty,oneof=team person"`
}

type UpdateTeamRequest struct {
	Name         *string          `json:"name,omitempty" validate:"omitempty,max=255"`
	ClassroomIDs []uuid.UUID      `json:"classroom_ids,omitempty" validate:"omitempty,min=1"`
	TeamType     *models.TeamType `json:"team_type,omitempty" validate:"omitempty,oneof=team person"`
}

type TeamListParams struct {
	utils.PaginationParams
}

func NewTeamService(store repository.Store) *TeamService {
	return &TeamService{store: store}
}

func classroomArray(ids []uuid.UUID) pq.StringArray {
	out := make(pq.StringArray, 0, len(ids))
	seen := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id.String())
	}
	return out
}

func (s *TeamService) Create(ctx context.Context, req *CreateTeamRequest) (*models.Team, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, validationError("team name is required")
	}
	if len(req.ClassroomIDs) == 0 {
		return nil, validationError("team needs at least one classroom")
	}

	teamType := req.TeamType
	if teamType == "" {
		teamType = models.TeamTypeTeam
	}
	if !teamType.Valid() {
		return nil, validationError(fmt.Sprintf("invalid team type %q", teamType))
	}

	team := &models.Team{
		Name:         name,
		ClassroomIDs: classroomArray(req.ClassroomIDs),
		TeamType:     teamType,
	}
	if err := s.store.Teams().Create(ctx, team); err != nil {
		return nil, storageError(err, "team", duplicateTeamMessage)
	}

	logrus.WithContext(ctx).WithFields(logrus.Fields{
		"team_id":    team.ID,
		"classrooms": len(team.ClassroomIDs),
	}).Info("Team created")
	return team, nil
}

func (s *TeamService) FindByID(ctx context.Context, id uuid.UUID) (*models.Team, error) {
	team, err := s.store.Teams().FindByID(ctx, id)
	if err != nil {
		return nil, storageError(err, "team", "")
	}
	return team, nil
}

func (s *TeamService) FindAll(ctx context.Context, params TeamListParams) ([]models.Team, int64, error) {
	teams, total, err := s.store.Teams().FindAll(ctx, repository.TeamFilter{
		Page:   pageOf(params.PaginationParams),
		Search: params.Search,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list teams: %w", err)
	}
	return teams, total, nil
}

func (s *TeamService) Update(ctx context.Context, id uuid.UUID, req *UpdateTeamRequest) (*models.Team, error) {
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		return nil, validationError("team name is required")
	}
	if req.ClassroomIDs != nil && len(req.ClassroomIDs) == 0 {
		return nil, validationError("team needs at least one classroom")
	}
	if req.TeamType != nil && !req.TeamType.Valid() {
		return nil, validationError(fmt.Sprintf("invalid team type %q", *req.TeamType))
	}

	team, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		team.Name = strings.TrimSpace(*req.Name)
	}
	if req.ClassroomIDs != nil {
		team.ClassroomIDs = classroomArray(req.ClassroomIDs)
	}
	if req.TeamType != nil {
		team.TeamType = *req.TeamType
	}

	if err := s.store.Teams().Update(ctx, team); err != nil {
		return nil, storageError(err, "team", duplicateTeamMessage)
	}
	return s.FindByID(ctx, id)
}

// Delete removes a team. Its orders stay and lose their team reference.
func (s *TeamService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.store.Teams().Delete(ctx, id); err != nil {
		return storageError(err, "team", "")
	}
	logrus.WithContext(ctx).WithField("team_id", id).Info("Team deleted")
	return nil
}
