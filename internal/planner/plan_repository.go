package planner

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"diet-planner/internal/planner/plan_db"
)

// ErrNoStoredPlan is returned when a user has no saved plan to load.
var ErrNoStoredPlan = errors.New("no stored plan for user")

// StoredPlan is a persisted weekly plan with its storage metadata.
type StoredPlan struct {
	ID        int32
	UserID    string
	Plan      *WeeklyPlan
	CreatedAt time.Time
}

// PlanRepository is a database-backed repository for weekly plans. Plans are
// stored as JSON so the schema does not chase the plan shape.
type PlanRepository struct {
	queries *plan_db.Queries
	db      *sql.DB
}

// NewPlanRepository creates a new PlanRepository.
func NewPlanRepository(d *sql.DB) *PlanRepository {
	return &PlanRepository{
		queries: plan_db.New(d),
		db:      d,
	}
}

// Save persists a weekly plan for a user.
func (r *PlanRepository) Save(ctx context.Context, userID string, plan *WeeklyPlan) error {
	data, err := json.Marshal(plan)
	if err != nil {
		return fmt.Errorf("failed to marshal plan: %w", err)
	}
	params := plan_db.InsertMealPlanParams{
		UserID:    userID,
		PlanData:  data,
		CreatedAt: time.Now(),
	}
	if err := r.queries.InsertMealPlan(ctx, params); err != nil {
		return fmt.Errorf("failed to save plan for user %s: %w", userID, err)
	}
	return nil
}

// GetLatest loads a user's most recently saved plan.
func (r *PlanRepository) GetLatest(ctx context.Context, userID string) (*StoredPlan, error) {
	row, err := r.queries.GetLatestMealPlanByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNoStoredPlan
		}
		return nil, fmt.Errorf("failed to load latest plan for user %s: %w", userID, err)
	}

	plan := &WeeklyPlan{}
	if err := json.Unmarshal(row.PlanData, plan); err != nil {
		return nil, fmt.Errorf("failed to unmarshal stored plan %d: %w", row.ID, err)
	}
	return &StoredPlan{
		ID:        row.ID,
		UserID:    row.UserID,
		Plan:      plan,
		CreatedAt: row.CreatedAt,
	}, nil
}

// ListRecent retrieves the N most recent plans for a user.
func (r *PlanRepository) ListRecent(ctx context.Context, userID string, limit int) ([]StoredPlan, error) {
	rows, err := r.queries.ListRecentMealPlansByUserID(ctx, plan_db.ListRecentMealPlansByUserIDParams{
		UserID: userID,
		Limit:  int32(limit), // sqlc generates int32 for LIMIT
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list recent plans for user %s: %w", userID, err)
	}

	var plans []StoredPlan
	for _, row := range rows {
		plan := &WeeklyPlan{}
		if err := json.Unmarshal(row.PlanData, plan); err != nil {
			return nil, fmt.Errorf("failed to unmarshal stored plan %d: %w", row.ID, err)
		}
		plans = append(plans, StoredPlan{
			ID:        row.ID,
			UserID:    row.UserID,
			Plan:      plan,
			CreatedAt: row.CreatedAt,
		})
	}
	return plans, nil
}
