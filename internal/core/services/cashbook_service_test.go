package services

import (
	"context"
	"testing"
	"time"

	"shopno-backend/internal/adapters/persistence/models"
	"shopno-backend/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCashbookService() (*CashbookService, *fakeCollection[models.Activity]) {
	activities, activityRepo := newTestActivityService()
	svc := NewCashbookService(
		newFakeCollection[models.Income](),
		newFakeCollection[models.Expense](),
		newFakeCollection[models.Donation](),
		activities,
	)
	return svc, activityRepo
}

func TestIncomeLifecycle(t *testing.T) {
	ctx := context.Background()
	svc, activityRepo := newTestCashbookService()

	created, err := svc.CreateIncome(ctx, testSession(), &CashEntryInput{
		Title:    "ব্যাংক সুদ",
		Category: "interest",
		Amount:   1200,
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	updated, err := svc.UpdateIncome(ctx, testSession(), created.ID, &CashEntryInput{
		Title:  "ব্যাংক সুদ",
		Amount: 1500,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.Money(1500), updated.Amount)

	require.NoError(t, svc.DeleteIncome(ctx, testSession(), created.ID))
	assert.ErrorIs(t, svc.DeleteIncome(ctx, testSession(), created.ID), domain.ErrNotFound)

	// add, update and delete all hit the audit trail
	logged, err := activityRepo.List(ctx)
	require.NoError(t, err)
	require.Len(t, logged, 3)
	assert.Equal(t, domain.ActionIncomeAdd, logged[0].Type)
	assert.Equal(t, domain.ActionIncomeUpdate, logged[1].Type)
	assert.Equal(t, domain.ActionIncomeDelete, logged[2].Type)
}

func TestCashEntryValidation(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestCashbookService()

	_, err := svc.CreateExpense(ctx, testSession(), &CashEntryInput{Title: "  ", Amount: 100})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.CreateExpense(ctx, testSession(), &CashEntryInput{Title: "ভেন্যু", Amount: 0})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDonationValidation(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestCashbookService()

	_, err := svc.CreateDonation(ctx, testSession(), &DonationInput{Recipient: "", Purpose: "সাহায্য", Amount: 500})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	donation, err := svc.CreateDonation(ctx, testSession(), &DonationInput{
		Recipient: "এতিমখানা",
		Purpose:   "মাসিক সাহায্য",
		Amount:    500,
	})
	require.NoError(t, err)
	assert.False(t, donation.Date.IsZero(), "omitted date defaults to today")
}

func TestListExpensesNewestFirst(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestCashbookService()

	older := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	newer := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	_, err := svc.CreateExpense(ctx, testSession(), &CashEntryInput{Title: "পুরনো", Amount: 100, Date: older})
	require.NoError(t, err)
	_, err = svc.CreateExpense(ctx, testSession(), &CashEntryInput{Title: "নতুন", Amount: 200, Date: newer})
	require.NoError(t, err)

	records, err := svc.ListExpenses(ctx)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "নতুন", records[0].Title)
}
