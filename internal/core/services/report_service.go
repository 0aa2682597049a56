package services

import (
	"context"
	"errors"
	"sort"
	"time"

	"shopno-backend/internal/adapters/persistence/models"
	"shopno-backend/internal/adapters/persistence/repositories"
	"shopno-backend/internal/core/domain"
	"shopno-backend/internal/core/ledger"
	"shopno-backend/internal/pkg/currency"

	"golang.org/x/sync/errgroup"

	"gorm.io/gorm"
)

// ReportService builds member and monthly statements from full-collection
// snapshots, same derivation rules the dashboard uses.
type ReportService struct {
	memberRepo   repositories.Collection[models.Member]
	depositRepo  repositories.Collection[models.Deposit]
	loanRepo     repositories.Collection[models.Loan]
	paymentRepo  repositories.Collection[models.LoanPayment]
	donationRepo repositories.Collection[models.Donation]
	incomeRepo   repositories.Collection[models.Income]
	expenseRepo  repositories.Collection[models.Expense]
}

// NewReportService creates a new report service
func NewReportService(
	memberRepo repositories.Collection[models.Member],
	depositRepo repositories.Collection[models.Deposit],
	loanRepo repositories.Collection[models.Loan],
	paymentRepo repositories.Collection[models.LoanPayment],
	donationRepo repositories.Collection[models.Donation],
	incomeRepo repositories.Collection[models.Income],
	expenseRepo repositories.Collection[models.Expense],
) *ReportService {
	return &ReportService{
		memberRepo:   memberRepo,
		depositRepo:  depositRepo,
		loanRepo:     loanRepo,
		paymentRepo:  paymentRepo,
		donationRepo: donationRepo,
		incomeRepo:   incomeRepo,
		expenseRepo:  expenseRepo,
	}
}

// MemberStatement is one member's full ledger history.
type MemberStatement struct {
	Member              *models.Member       `json:"member"`
	Deposits            []models.Deposit     `json:"deposits"`
	Loans               []LoanSummary        `json:"loans"`
	TotalDeposit        domain.Money         `json:"total_deposit"`
	TotalDepositDisplay string               `json:"total_deposit_display"`
	TotalBorrowed       domain.Money         `json:"total_borrowed"`
	TotalRepaid         domain.Money         `json:"total_repaid"`
	GeneratedAt         time.Time            `json:"generated_at"`
}

// MonthlyStatement is the society's cash movement for one month.
type MonthlyStatement struct {
	Month int `json:"month"`
	Year  int `json:"year"`

	Deposits     []models.Deposit     `json:"deposits"`
	LoanPayments []models.LoanPayment `json:"loan_payments"`
	LoansIssued  []models.Loan        `json:"loans_issued"`
	Income       []models.Income      `json:"income"`
	Expenses     []models.Expense     `json:"expenses"`
	Donations    []models.Donation    `json:"donations"`

	DepositTotal    domain.Money `json:"deposit_total"`
	CollectionTotal domain.Money `json:"collection_total"`
	DisbursedTotal  domain.Money `json:"disbursed_total"`
	IncomeTotal     domain.Money `json:"income_total"`
	ExpenseTotal    domain.Money `json:"expense_total"`
	DonationTotal   domain.Money `json:"donation_total"`

	NetMovement        domain.Money `json:"net_movement"`
	NetMovementDisplay string       `json:"net_movement_display"`
}

// GetMemberStatement builds one member's statement: all deposits in period
// order and every loan with its repayment progress.
func (s *ReportService) GetMemberStatement(ctx context.Context, memberID uint) (*MemberStatement, error) {
	member, err := s.memberRepo.GetByID(ctx, memberID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrMemberNotFound
		}
		return nil, err
	}

	var (
		deposits []models.Deposit
		loans    []models.Loan
		payments []models.LoanPayment
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		deposits, err = s.depositRepo.List(gctx)
		return
	})
	g.Go(func() (err error) {
		loans, err = s.loanRepo.List(gctx)
		return
	})
	g.Go(func() (err error) {
		payments, err = s.paymentRepo.List(gctx)
		return
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	statement := &MemberStatement{
		Member:      member,
		GeneratedAt: time.Now(),
	}

	for _, d := range deposits {
		if d.MemberID == memberID {
			statement.Deposits = append(statement.Deposits, d)
		}
	}
	sort.Slice(statement.Deposits, func(i, j int) bool {
		if statement.Deposits[i].Year != statement.Deposits[j].Year {
			return statement.Deposits[i].Year < statement.Deposits[j].Year
		}
		return statement.Deposits[i].Month < statement.Deposits[j].Month
	})

	paid := ledger.PaymentTotals(payments)
	for _, l := range loans {
		if l.MemberID != memberID {
			continue
		}
		loan := l
		statement.Loans = append(statement.Loans, LoanSummary{
			Loan:        loan,
			MemberName:  member.Name,
			TotalDue:    ledger.TotalDue(&loan),
			TotalPaid:   paid[loan.ID],
			Outstanding: ledger.Outstanding(&loan, paid[loan.ID]),
		})
		statement.TotalBorrowed += loan.Amount
		statement.TotalRepaid += paid[loan.ID]
	}

	statement.TotalDeposit = ledger.MemberTotalDeposit(member, deposits)
	statement.TotalDepositDisplay = currency.Format(statement.TotalDeposit)
	return statement, nil
}

// GetMonthlyStatement builds the society's cash movement for one month.
func (s *ReportService) GetMonthlyStatement(ctx context.Context, month, year int) (*MonthlyStatement, error) {
	if month < 1 || month > 12 || year < 1 {
		return nil, domain.ErrInvalidInput
	}

	var (
		deposits  []models.Deposit
		loans     []models.Loan
		payments  []models.LoanPayment
		income    []models.Income
		expenses  []models.Expense
		donations []models.Donation
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		deposits, err = s.depositRepo.List(gctx)
		return
	})
	g.Go(func() (err error) {
		loans, err = s.loanRepo.List(gctx)
		return
	})
	g.Go(func() (err error) {
		payments, err = s.paymentRepo.List(gctx)
		return
	})
	g.Go(func() (err error) {
		income, err = s.incomeRepo.List(gctx)
		return
	})
	g.Go(func() (err error) {
		expenses, err = s.expenseRepo.List(gctx)
		return
	})
	g.Go(func() (err error) {
		donations, err = s.donationRepo.List(gctx)
		return
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	statement := &MonthlyStatement{Month: month, Year: year}
	inMonth := func(t time.Time) bool {
		return int(t.Month()) == month && t.Year() == year
	}

	for _, d := range deposits {
		if d.Month == month && d.Year == year {
			statement.Deposits = append(statement.Deposits, d)
			statement.DepositTotal += d.Amount
		}
	}
	for _, p := range payments {
		if inMonth(p.PaymentDate) {
			statement.LoanPayments = append(statement.LoanPayments, p)
			statement.CollectionTotal += p.Amount
		}
	}
	for _, l := range loans {
		if inMonth(l.StartDate) {
			statement.LoansIssued = append(statement.LoansIssued, l)
			statement.DisbursedTotal += l.Amount
		}
	}
	for _, i := range income {
		if inMonth(i.Date) {
			statement.Income = append(statement.Income, i)
			statement.IncomeTotal += i.Amount
		}
	}
	for _, e := range expenses {
		if inMonth(e.Date) {
			statement.Expenses = append(statement.Expenses, e)
			statement.ExpenseTotal += e.Amount
		}
	}
	for _, d := range donations {
		if inMonth(d.Date) {
			statement.Donations = append(statement.Donations, d)
			statement.DonationTotal += d.Amount
		}
	}

	statement.NetMovement = statement.DepositTotal + statement.CollectionTotal + statement.IncomeTotal -
		statement.DisbursedTotal - statement.ExpenseTotal - statement.DonationTotal
	statement.NetMovementDisplay = currency.Format(statement.NetMovement)
	return statement, nil
}
