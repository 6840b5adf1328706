// internal/services/team_sales_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/javajoker/school-sales-backend/internal/metrics"
	"github.com/javajoker/school-sales-backend/internal/models"
	"github.com/javajoker/school-sales-backend/internal/repository"
)

// ErrRecalculation marks a failure to refresh team totals after the
// triggering write was already committed.
var ErrRecalculation = errors.New("team sales recalculation failed")

// TeamSalesService owns Team.TotalSalesPounds and Team.TotalSalesBaht.
// Totals are always recomputed from every order item of the team and
// replace the stored values, so a missed or repeated trigger is corrected by
// the next recalculation.
type TeamSalesService struct {
	store             repository.Store
	repairConcurrency int
}

type TeamSales struct {
	TeamID           uuid.UUID       `json:"team_id"`
	TotalSalesPounds decimal.Decimal `json:"total_sales_pounds"`
	TotalSalesBaht   decimal.Decimal `json:"total_sales_baht"`
	Orders           int             `json:"orders"`
	OrderItems       int             `json:"order_items"`
}

type RepairReport struct {
	Teams        int         `json:"teams"`
	Recalculated int         `json:"recalculated"`
	Failed       []uuid.UUID `json:"failed,omitempty"`
}

func NewTeamSalesService(store repository.Store, repairConcurrency int) *TeamSalesService {
	if repairConcurrency < 1 {
		repairConcurrency = 1
	}
	return &TeamSalesService{
		store:             store,
		repairConcurrency: repairConcurrency,
	}
}

// SumTeamSales folds every item of every order into pounds (pound × quantity)
// and baht (subtotal).
func SumTeamSales(teamID uuid.UUID, orders []models.Order) *TeamSales {
	sales := &TeamSales{
		TeamID:           teamID,
		TotalSalesPounds: decimal.Zero,
		TotalSalesBaht:   decimal.Zero,
		Orders:           len(orders),
	}
	for _, order := range orders {
		for _, item := range order.OrderItems {
			sales.TotalSalesPounds = sales.TotalSalesPounds.Add(item.Pound.Mul(decimal.NewFromInt(int64(item.Quantity))))
			sales.TotalSalesBaht = sales.TotalSalesBaht.Add(item.Subtotal)
			sales.OrderItems++
		}
	}
	return sales
}

// Recalculate recomputes and stores the totals of one team. The team row is
// locked for the duration, so concurrent recalculations of the same team run
// one after another and the last one sees every committed item.
func (s *TeamSalesService) Recalculate(ctx context.Context, teamID uuid.UUID) (*TeamSales, error) {
	start := time.Now()

	var sales *TeamSales
	err := s.store.WithinTransaction(ctx, func(tx repository.Store) error {
		if _, err := tx.Teams().LockByID(ctx, teamID); err != nil {
			return storageError(err, "team", "")
		}

		orders, err := tx.Orders().FindByTeamID(ctx, teamID)
		if err != nil {
			return fmt.Errorf("failed to load team orders: %w", err)
		}

		sales = SumTeamSales(teamID, orders)
		if err := tx.Teams().UpdateSales(ctx, teamID, sales.TotalSalesPounds, sales.TotalSalesBaht); err != nil {
			return storageError(err, "team", "")
		}
		return nil
	})
	metrics.RecordRecalculation(time.Since(start), err)

	entry := logrus.WithContext(ctx).WithField("team_id", teamID)
	if err != nil {
		entry.WithError(err).Error("Team sales recalculation failed")
		return nil, err
	}

	entry.WithFields(logrus.Fields{
		"total_sales_pounds": sales.TotalSalesPounds.String(),
		"total_sales_baht":   sales.TotalSalesBaht.String(),
		"orders":             sales.Orders,
	}).Debug("Team sales recalculated")
	return sales, nil
}

// RecalculateTeams refreshes every distinct non-nil team in teamIDs. It is
// called after a committed order or order item write. A team that no longer
// exists has no orders left to total and is skipped.
func (s *TeamSalesService) RecalculateTeams(ctx context.Context, teamIDs ...*uuid.UUID) error {
	seen := make(map[uuid.UUID]bool, len(teamIDs))
	for _, id := range teamIDs {
		if id == nil || seen[*id] {
			continue
		}
		seen[*id] = true

		if _, err := s.Recalculate(ctx, *id); err != nil {
			if errors.Is(err, ErrNotFound) {
				logrus.WithContext(ctx).WithField("team_id", *id).Warn("Skipping recalculation of deleted team")
				continue
			}
			return fmt.Errorf("%w: team %s: %w", ErrRecalculation, *id, err)
		}
	}
	return nil
}

// RecalculateAll recalculates every team. It is the repair path after a
// partial failure left totals stale; failures are collected rather than
// stopping the run.
func (s *TeamSalesService) RecalculateAll(ctx context.Context) (*RepairReport, error) {
	ids, err := s.store.Teams().ListIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}

	report := &RepairReport{Teams: len(ids)}
	var (
		mu   sync.Mutex
		errs []error
	)

	var g errgroup.Group
	g.SetLimit(s.repairConcurrency)
	for _, id := range ids {
		g.Go(func() error {
			// a cancelled run stops picking up teams
			if err := ctx.Err(); err != nil {
				return err
			}
			_, err := s.Recalculate(ctx, id)

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				report.Recalculated++
			case errors.Is(err, ErrNotFound):
				// deleted while the repair was running
			default:
				report.Failed = append(report.Failed, id)
				errs = append(errs, fmt.Errorf("team %s: %w", id, err))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		errs = append(errs, fmt.Errorf("repair interrupted: %w", err))
	}

	logrus.WithContext(ctx).WithFields(logrus.Fields{
		"teams":        report.Teams,
		"recalculated": report.Recalculated,
		"failed":       len(report.Failed),
	}).Info("Team sales repair finished")

	return report, errors.Join(errs...)
}
