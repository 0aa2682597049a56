package services

import (
	"context"
	"encoding/json"
	"log"
	"sort"

	"shopno-backend/internal/adapters/persistence/models"
	"shopno-backend/internal/adapters/persistence/repositories"
	"shopno-backend/internal/core/domain"
	"shopno-backend/internal/pkg/pagination"
)

// ActivityService records and serves the audit trail. Rows are append-only;
// nothing in the service can update or delete one.
type ActivityService struct {
	activityRepo repositories.Collection[models.Activity]
	userRepo     repositories.UserRepository
}

// NewActivityService creates a new activity service
func NewActivityService(
	activityRepo repositories.Collection[models.Activity],
	userRepo repositories.UserRepository,
) *ActivityService {
	return &ActivityService{
		activityRepo: activityRepo,
		userRepo:     userRepo,
	}
}

// ListActivitiesInput represents list activities input
type ListActivitiesInput struct {
	Page  int
	Limit int
}

// ListActivitiesOutput represents list activities output
type ListActivitiesOutput struct {
	Activities []*models.ActivityResponse `json:"activities"`
	Total      int64                      `json:"total"`
	Page       int                        `json:"page"`
	Limit      int                        `json:"limit"`
	TotalPages int                        `json:"total_pages"`
}

// Record writes one audit row. oldRecord and newRecord may each be nil; they
// are snapshotted to JSON so the log survives later schema changes. A failure
// here is logged and swallowed so bookkeeping writes never fail on auditing.
func (s *ActivityService) Record(ctx context.Context, session *domain.Session, actionType domain.ActionType, action string, oldRecord, newRecord interface{}) {
	activity := &models.Activity{
		Type:   actionType,
		Action: action,
	}

	if session != nil {
		userID := session.UserID
		activity.UserID = &userID
	}

	if snap := domain.Snapshot(oldRecord); snap != nil {
		if data, err := json.Marshal(snap); err == nil {
			text := string(data)
			activity.OldValues = &text
		}
	}
	if snap := domain.Snapshot(newRecord); snap != nil {
		if data, err := json.Marshal(snap); err == nil {
			text := string(data)
			activity.NewValues = &text
		}
	}

	if err := s.activityRepo.Create(ctx, activity); err != nil {
		log.Printf("⚠️ Failed to record activity [%s]: %v", actionType, err)
	}
}

// ListActivities lists the full audit trail, most recent first.
func (s *ActivityService) ListActivities(ctx context.Context, input *ListActivitiesInput) (*ListActivitiesOutput, error) {
	params := pagination.Clamp(input.Page, input.Limit)

	activities, err := s.activityRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	sortNewestFirst(activities)

	total := int64(len(activities))
	start, end := params.Slice(len(activities))
	page := activities[start:end]

	names, err := s.userNames(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]*models.ActivityResponse, 0, len(page))
	for i := range page {
		responses = append(responses, toActivityResponse(&page[i], names))
	}

	return &ListActivitiesOutput{
		Activities: responses,
		Total:      total,
		Page:       params.Page,
		Limit:      params.Limit,
		TotalPages: pagination.PageCount(total, params.Limit),
	}, nil
}

// RecentActivities returns the newest entries for the dashboard feed,
// with login/logout churn filtered out.
func (s *ActivityService) RecentActivities(ctx context.Context, limit int) ([]*models.ActivityResponse, error) {
	if limit < 1 {
		limit = 10
	}

	activities, err := s.activityRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	sortNewestFirst(activities)

	names, err := s.userNames(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]*models.ActivityResponse, 0, limit)
	for i := range activities {
		if activities[i].Type.IsSessionNoise() {
			continue
		}
		responses = append(responses, toActivityResponse(&activities[i], names))
		if len(responses) >= limit {
			break
		}
	}
	return responses, nil
}

// userNames builds a userID to display-name map for attribution.
func (s *ActivityService) userNames(ctx context.Context) (map[uint]string, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[uint]string, len(users))
	for _, u := range users {
		names[u.ID] = u.Name
	}
	return names, nil
}

func sortNewestFirst(activities []models.Activity) {
	sort.Slice(activities, func(i, j int) bool {
		if activities[i].CreatedAt.Equal(activities[j].CreatedAt) {
			return activities[i].ID > activities[j].ID
		}
		return activities[i].CreatedAt.After(activities[j].CreatedAt)
	})
}

// toActivityResponse renders one audit row, replaying the stored snapshots
// through the field differ.
func toActivityResponse(a *models.Activity, names map[uint]string) *models.ActivityResponse {
	resp := &models.ActivityResponse{
		ID:        a.ID,
		UserID:    a.UserID,
		Type:      a.Type,
		Icon:      a.Type.Icon(),
		Action:    a.Action,
		CreatedAt: a.CreatedAt,
	}

	if a.UserID != nil {
		if name, ok := names[*a.UserID]; ok {
			resp.UserName = name
		}
	}

	resp.Changes = domain.DiffFields(decodeSnapshot(a.OldValues), decodeSnapshot(a.NewValues))
	return resp
}

func decodeSnapshot(text *string) map[string]interface{} {
	if text == nil || *text == "" {
		return nil
	}
	var m map[string]interface{}
	if err := json.Unmarshal([]byte(*text), &m); err != nil {
		return nil
	}
	return m
}
