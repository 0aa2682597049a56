package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"shopno-backend/internal/adapters/persistence/models"
	"shopno-backend/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type dashboardFixture struct {
	svc         *DashboardService
	memberRepo  *fakeCollection[models.Member]
	depositRepo *fakeCollection[models.Deposit]
	loanRepo    *fakeCollection[models.Loan]
	paymentRepo *fakeCollection[models.LoanPayment]
}

func newDashboardFixture() *dashboardFixture {
	f := &dashboardFixture{
		memberRepo:  newFakeCollection[models.Member](),
		depositRepo: newFakeCollection[models.Deposit](),
		loanRepo:    newFakeCollection[models.Loan](),
		paymentRepo: newFakeCollection[models.LoanPayment](),
	}
	activities, _ := newTestActivityService()
	f.svc = NewDashboardService(
		f.memberRepo,
		f.depositRepo,
		f.loanRepo,
		f.paymentRepo,
		newFakeCollection[models.Investment](),
		newFakeCollection[models.InvestmentReturn](),
		newFakeCollection[models.Donation](),
		newFakeCollection[models.Income](),
		newFakeCollection[models.Expense](),
		activities,
		3000,
	)
	return f
}

func TestGetSummaryFigures(t *testing.T) {
	ctx := context.Background()
	f := newDashboardFixture()

	require.NoError(t, f.memberRepo.Create(ctx, &models.Member{Name: "করিম", OpeningBalance: 5000, Status: domain.MemberActive}))
	require.NoError(t, f.memberRepo.Create(ctx, &models.Member{Name: "রহিম", Status: domain.MemberInactive}))
	require.NoError(t, f.depositRepo.Create(ctx, &models.Deposit{MemberID: 1, Amount: 3000, Month: 1, Year: 2026}))
	require.NoError(t, f.loanRepo.Create(ctx, &models.Loan{MemberID: 1, Amount: 10000, Status: domain.LoanActive}))
	require.NoError(t, f.paymentRepo.Create(ctx, &models.LoanPayment{LoanID: 1, Amount: 4000}))

	summary, err := f.svc.GetSummary(ctx)
	require.NoError(t, err)

	assert.Equal(t, 2, summary.TotalMembers)
	assert.Equal(t, 1, summary.ActiveMembers)
	assert.Equal(t, domain.Money(8000), summary.TotalDeposits)
	assert.Equal(t, domain.Money(6000), summary.OutstandingLoans)
	// 8000 deposits + 4000 collections - 10000 disbursed
	assert.Equal(t, domain.Money(2000), summary.CurrentBalance)
	assert.Equal(t, "৳২,০০০", summary.CurrentBalanceDisplay)
}

func TestDashboardRosterPaidAndDue(t *testing.T) {
	ctx := context.Background()
	f := newDashboardFixture()
	now := time.Now()

	require.NoError(t, f.memberRepo.Create(ctx, &models.Member{Name: "করিম", Status: domain.MemberActive}))
	require.NoError(t, f.memberRepo.Create(ctx, &models.Member{Name: "রহিম", Status: domain.MemberActive}))
	require.NoError(t, f.memberRepo.Create(ctx, &models.Member{Name: "সাবেক", Status: domain.MemberInactive}))

	// করিম paid this month, রহিম did not
	require.NoError(t, f.depositRepo.Create(ctx, &models.Deposit{
		MemberID: 1, Amount: 3500, Month: int(now.Month()), Year: now.Year(),
	}))

	data, err := f.svc.GetDashboard(ctx)
	require.NoError(t, err)

	require.Len(t, data.MonthlyRoster, 2, "inactive members stay off the roster")

	// due members sort first and carry the default amount
	due := data.MonthlyRoster[0]
	assert.Equal(t, "রহিম", due.MemberName)
	assert.False(t, due.Paid)
	assert.Equal(t, domain.Money(3000), due.Amount)

	settled := data.MonthlyRoster[1]
	assert.Equal(t, "করিম", settled.MemberName)
	assert.True(t, settled.Paid)
	assert.Equal(t, domain.Money(3500), settled.Amount)
}

func TestDashboardPendingLoans(t *testing.T) {
	ctx := context.Background()
	f := newDashboardFixture()

	require.NoError(t, f.memberRepo.Create(ctx, &models.Member{Name: "করিম", Status: domain.MemberActive}))

	past := time.Now().AddDate(0, -1, 0)
	future := time.Now().AddDate(0, 6, 0)
	require.NoError(t, f.loanRepo.Create(ctx, &models.Loan{MemberID: 1, Amount: 10000, Status: domain.LoanActive, EndDate: past}))
	require.NoError(t, f.loanRepo.Create(ctx, &models.Loan{MemberID: 1, Amount: 5000, Status: domain.LoanActive, EndDate: future}))
	require.NoError(t, f.loanRepo.Create(ctx, &models.Loan{MemberID: 1, Amount: 2000, Status: domain.LoanCompleted, EndDate: past}))
	require.NoError(t, f.paymentRepo.Create(ctx, &models.LoanPayment{LoanID: 2, Amount: 5000}))

	data, err := f.svc.GetDashboard(ctx)
	require.NoError(t, err)

	// the settled active loan and the completed one both drop out
	require.Len(t, data.PendingLoans, 1)
	p := data.PendingLoans[0]
	assert.Equal(t, uint(1), p.LoanID)
	assert.Equal(t, "করিম", p.MemberName)
	assert.Equal(t, domain.Money(10000), p.Outstanding)
	assert.True(t, p.Overdue)
}

func TestDashboardFetchesEachCollectionOnce(t *testing.T) {
	ctx := context.Background()
	f := newDashboardFixture()

	// enough loans and payments that a per-loan fetch would show up
	require.NoError(t, f.memberRepo.Create(ctx, &models.Member{Name: "করিম", Status: domain.MemberActive}))
	for i := 0; i < 50; i++ {
		require.NoError(t, f.loanRepo.Create(ctx, &models.Loan{
			MemberID: 1, Amount: 10000, Status: domain.LoanActive, EndDate: time.Now().AddDate(0, 6, 0),
		}))
		require.NoError(t, f.paymentRepo.Create(ctx, &models.LoanPayment{LoanID: uint(i + 1), Amount: 2000}))
	}

	data, err := f.svc.GetDashboard(ctx)
	require.NoError(t, err)
	require.Len(t, data.PendingLoans, 50)

	assert.Equal(t, 1, f.memberRepo.ListCalls())
	assert.Equal(t, 1, f.depositRepo.ListCalls())
	assert.Equal(t, 1, f.loanRepo.ListCalls())
	assert.Equal(t, 1, f.paymentRepo.ListCalls())
}

func TestDashboardDegradesPerSlice(t *testing.T) {
	ctx := context.Background()
	f := newDashboardFixture()

	require.NoError(t, f.memberRepo.Create(ctx, &models.Member{Name: "করিম", OpeningBalance: 5000, Status: domain.MemberActive}))
	f.depositRepo.listErr = errors.New("connection lost")

	data, err := f.svc.GetDashboard(ctx)
	require.NoError(t, err, "one failed slice must not blank the dashboard")

	assert.Contains(t, data.Warnings, "deposits unavailable")
	// the failed slice contributes zero, the rest still count
	assert.Equal(t, domain.Money(5000), data.Summary.TotalDeposits)
	assert.Equal(t, 1, data.Summary.TotalMembers)
}
