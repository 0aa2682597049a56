package services

import (
	"context"
	"testing"

	"shopno-backend/internal/adapters/persistence/models"
	"shopno-backend/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordStoresSnapshots(t *testing.T) {
	ctx := context.Background()
	svc, activityRepo := newTestActivityService()

	member := &models.Member{ID: 1, Name: "করিম", Phone: "017"}
	svc.Record(ctx, testSession(), domain.ActionMemberAdd, "নতুন সদস্য যোগ: করিম", nil, member)

	rows, err := activityRepo.List(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, domain.ActionMemberAdd, rows[0].Type)
	require.NotNil(t, rows[0].UserID)
	assert.Equal(t, uint(1), *rows[0].UserID)
	assert.Nil(t, rows[0].OldValues)
	require.NotNil(t, rows[0].NewValues)
	assert.Contains(t, *rows[0].NewValues, "করিম")
}

func TestRecordSwallowsStorageFailure(t *testing.T) {
	ctx := context.Background()
	activityRepo := newFakeCollection[models.Activity]()
	activityRepo.createErr = assert.AnError
	svc := NewActivityService(activityRepo, newFakeUserRepo())

	// must not panic or propagate; bookkeeping writes never fail on auditing
	svc.Record(ctx, testSession(), domain.ActionMemberAdd, "x", nil, &models.Member{ID: 1})
}

func TestListActivitiesPagination(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestActivityService()

	for i := 0; i < 25; i++ {
		svc.Record(ctx, testSession(), domain.ActionDepositAdd, "জমা সংগ্রহ", nil, &models.Deposit{Amount: 3000})
	}

	out, err := svc.ListActivities(ctx, &ListActivitiesInput{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(25), out.Total)
	assert.Equal(t, 3, out.TotalPages)
	require.Len(t, out.Activities, 10)
	// newest entry leads
	assert.Equal(t, uint(25), out.Activities[0].ID)

	last, err := svc.ListActivities(ctx, &ListActivitiesInput{Page: 3, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, last.Activities, 5)

	past, err := svc.ListActivities(ctx, &ListActivitiesInput{Page: 9, Limit: 10})
	require.NoError(t, err)
	assert.Empty(t, past.Activities)
}

func TestRecentActivitiesFiltersSessionNoise(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestActivityService()

	svc.Record(ctx, testSession(), domain.ActionLogin, "লগইন: admin", nil, nil)
	svc.Record(ctx, testSession(), domain.ActionMemberAdd, "নতুন সদস্য যোগ: করিম", nil, &models.Member{ID: 1, Name: "করিম"})
	svc.Record(ctx, testSession(), domain.ActionLogout, "লগআউট: admin", nil, nil)

	recent, err := svc.RecentActivities(ctx, 10)
	require.NoError(t, err)
	require.Len(t, recent, 1, "login/logout churn stays out of the feed")
	assert.Equal(t, domain.ActionMemberAdd, recent[0].Type)
	assert.Equal(t, "👤", recent[0].Icon)
}

func TestActivityResponseRendersDiff(t *testing.T) {
	ctx := context.Background()
	userRepo := newFakeUserRepo(models.User{ID: 1, Name: "System Administrator", Username: "admin"})
	svc := NewActivityService(newFakeCollection[models.Activity](), userRepo)

	before := &models.Member{ID: 1, Name: "করিম", Phone: "017"}
	after := &models.Member{ID: 1, Name: "করিম উদ্দিন", Phone: "017"}
	svc.Record(ctx, testSession(), domain.ActionMemberUpdate, "সদস্য তথ্য হালনাগাদ", before, after)

	out, err := svc.ListActivities(ctx, &ListActivitiesInput{})
	require.NoError(t, err)
	require.Len(t, out.Activities, 1)

	entry := out.Activities[0]
	assert.Equal(t, "System Administrator", entry.UserName)

	var nameChange *domain.FieldChange
	for i := range entry.Changes {
		if entry.Changes[i].Field == "name" {
			nameChange = &entry.Changes[i]
		}
		// housekeeping fields never surface
		assert.NotEqual(t, "id", entry.Changes[i].Field)
		assert.NotEqual(t, "created_at", entry.Changes[i].Field)
	}
	require.NotNil(t, nameChange)
	assert.Equal(t, "নাম", nameChange.Label)
	assert.Equal(t, "করিম", nameChange.OldValue)
	assert.Equal(t, "করিম উদ্দিন", nameChange.NewValue)
}
