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

type reportFixture struct {
	svc          *ReportService
	memberRepo   *fakeCollection[models.Member]
	depositRepo  *fakeCollection[models.Deposit]
	loanRepo     *fakeCollection[models.Loan]
	paymentRepo  *fakeCollection[models.LoanPayment]
	donationRepo *fakeCollection[models.Donation]
	incomeRepo   *fakeCollection[models.Income]
	expenseRepo  *fakeCollection[models.Expense]
}

func newReportFixture() *reportFixture {
	f := &reportFixture{
		memberRepo:   newFakeCollection[models.Member](),
		depositRepo:  newFakeCollection[models.Deposit](),
		loanRepo:     newFakeCollection[models.Loan](),
		paymentRepo:  newFakeCollection[models.LoanPayment](),
		donationRepo: newFakeCollection[models.Donation](),
		incomeRepo:   newFakeCollection[models.Income](),
		expenseRepo:  newFakeCollection[models.Expense](),
	}
	f.svc = NewReportService(
		f.memberRepo,
		f.depositRepo,
		f.loanRepo,
		f.paymentRepo,
		f.donationRepo,
		f.incomeRepo,
		f.expenseRepo,
	)
	return f
}

func TestGetMemberStatement(t *testing.T) {
	ctx := context.Background()
	f := newReportFixture()

	m := models.Member{Name: "করিম", Phone: "017", OpeningBalance: 5000, Status: domain.MemberActive}
	require.NoError(t, f.memberRepo.Create(ctx, &m))

	// deposits arrive out of period order
	require.NoError(t, f.depositRepo.Create(ctx, &models.Deposit{MemberID: m.ID, Amount: 3000, Month: 3, Year: 2026}))
	require.NoError(t, f.depositRepo.Create(ctx, &models.Deposit{MemberID: m.ID, Amount: 3000, Month: 1, Year: 2026}))
	require.NoError(t, f.depositRepo.Create(ctx, &models.Deposit{MemberID: 99, Amount: 3000, Month: 1, Year: 2026}))

	require.NoError(t, f.loanRepo.Create(ctx, &models.Loan{MemberID: m.ID, Amount: 10000, Status: domain.LoanActive}))
	require.NoError(t, f.paymentRepo.Create(ctx, &models.LoanPayment{LoanID: 1, Amount: 4000}))

	st, err := f.svc.GetMemberStatement(ctx, m.ID)
	require.NoError(t, err)

	require.Len(t, st.Deposits, 2, "other members' deposits stay out")
	assert.Equal(t, 1, st.Deposits[0].Month, "oldest period first")
	assert.Equal(t, domain.Money(11000), st.TotalDeposit)
	assert.Equal(t, domain.Money(10000), st.TotalBorrowed)
	assert.Equal(t, domain.Money(4000), st.TotalRepaid)
	require.Len(t, st.Loans, 1)
	assert.Equal(t, domain.Money(6000), st.Loans[0].Outstanding)

	_, err = f.svc.GetMemberStatement(ctx, 42)
	assert.ErrorIs(t, err, domain.ErrMemberNotFound)
}

func TestGetMonthlyStatement(t *testing.T) {
	ctx := context.Background()
	f := newReportFixture()

	june := time.Date(2026, 6, 10, 0, 0, 0, 0, time.UTC)
	may := time.Date(2026, 5, 10, 0, 0, 0, 0, time.UTC)

	require.NoError(t, f.depositRepo.Create(ctx, &models.Deposit{MemberID: 1, Amount: 3000, Month: 6, Year: 2026}))
	require.NoError(t, f.depositRepo.Create(ctx, &models.Deposit{MemberID: 1, Amount: 3000, Month: 5, Year: 2026}))
	require.NoError(t, f.paymentRepo.Create(ctx, &models.LoanPayment{LoanID: 1, Amount: 2000, PaymentDate: june}))
	require.NoError(t, f.loanRepo.Create(ctx, &models.Loan{MemberID: 1, Amount: 10000, StartDate: june, Status: domain.LoanActive}))
	require.NoError(t, f.incomeRepo.Create(ctx, &models.Income{Title: "ভাড়া", Amount: 1000, Date: june}))
	require.NoError(t, f.expenseRepo.Create(ctx, &models.Expense{Title: "ভেন্যু", Amount: 500, Date: june}))
	require.NoError(t, f.donationRepo.Create(ctx, &models.Donation{Recipient: "x", Purpose: "y", Amount: 700, Date: june}))
	require.NoError(t, f.expenseRepo.Create(ctx, &models.Expense{Title: "পুরনো", Amount: 9999, Date: may}))

	st, err := f.svc.GetMonthlyStatement(ctx, 6, 2026)
	require.NoError(t, err)

	assert.Equal(t, domain.Money(3000), st.DepositTotal)
	assert.Equal(t, domain.Money(2000), st.CollectionTotal)
	assert.Equal(t, domain.Money(10000), st.DisbursedTotal)
	assert.Equal(t, domain.Money(1000), st.IncomeTotal)
	assert.Equal(t, domain.Money(500), st.ExpenseTotal)
	assert.Equal(t, domain.Money(700), st.DonationTotal)

	// 3000 + 2000 + 1000 in, 10000 + 500 + 700 out
	assert.Equal(t, domain.Money(-5200), st.NetMovement)
	assert.Len(t, st.Expenses, 1, "last month's expense stays out")
}

func TestGetMonthlyStatementValidation(t *testing.T) {
	ctx := context.Background()
	f := newReportFixture()

	_, err := f.svc.GetMonthlyStatement(ctx, 0, 2026)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.svc.GetMonthlyStatement(ctx, 13, 2026)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.svc.GetMonthlyStatement(ctx, 6, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
