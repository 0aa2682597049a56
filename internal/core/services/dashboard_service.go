package services

import (
	"context"
	"log"
	"sort"
	"time"

	"shopno-backend/internal/adapters/persistence/models"
	"shopno-backend/internal/adapters/persistence/repositories"
	"shopno-backend/internal/core/domain"
	"shopno-backend/internal/core/ledger"
	"shopno-backend/internal/pkg/currency"

	"golang.org/x/sync/errgroup"
)

// DashboardService aggregates the society's whole ledger into one screen.
// It fetches every collection concurrently, then derives figures in memory
// through the ledger package.
type DashboardService struct {
	memberRepo     repositories.Collection[models.Member]
	depositRepo    repositories.Collection[models.Deposit]
	loanRepo       repositories.Collection[models.Loan]
	paymentRepo    repositories.Collection[models.LoanPayment]
	investmentRepo repositories.Collection[models.Investment]
	returnRepo     repositories.Collection[models.InvestmentReturn]
	donationRepo   repositories.Collection[models.Donation]
	incomeRepo     repositories.Collection[models.Income]
	expenseRepo    repositories.Collection[models.Expense]
	activities     *ActivityService

	defaultDepositAmount domain.Money
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(
	memberRepo repositories.Collection[models.Member],
	depositRepo repositories.Collection[models.Deposit],
	loanRepo repositories.Collection[models.Loan],
	paymentRepo repositories.Collection[models.LoanPayment],
	investmentRepo repositories.Collection[models.Investment],
	returnRepo repositories.Collection[models.InvestmentReturn],
	donationRepo repositories.Collection[models.Donation],
	incomeRepo repositories.Collection[models.Income],
	expenseRepo repositories.Collection[models.Expense],
	activities *ActivityService,
	defaultDepositAmount domain.Money,
) *DashboardService {
	return &DashboardService{
		memberRepo:           memberRepo,
		depositRepo:          depositRepo,
		loanRepo:             loanRepo,
		paymentRepo:          paymentRepo,
		investmentRepo:       investmentRepo,
		returnRepo:           returnRepo,
		donationRepo:         donationRepo,
		incomeRepo:           incomeRepo,
		expenseRepo:          expenseRepo,
		activities:           activities,
		defaultDepositAmount: defaultDepositAmount,
	}
}

// DashboardSummary is the headline figure block.
type DashboardSummary struct {
	TotalMembers         int          `json:"total_members"`
	ActiveMembers        int          `json:"active_members"`
	TotalDeposits        domain.Money `json:"total_deposits"`
	TotalExpenditure     domain.Money `json:"total_expenditure"`
	OutstandingLoans     domain.Money `json:"outstanding_loans"`
	ActiveInvestments    domain.Money `json:"active_investments"`
	NetInvestmentReturns domain.Money `json:"net_investment_returns"`
	CurrentBalance       domain.Money `json:"current_balance"`

	// Display strings with the taka sign and Bengali numerals.
	TotalDepositsDisplay    string `json:"total_deposits_display"`
	TotalExpenditureDisplay string `json:"total_expenditure_display"`
	OutstandingDisplay      string `json:"outstanding_display"`
	CurrentBalanceDisplay   string `json:"current_balance_display"`
}

// RosterEntry is one member's standing in the current month's collection.
type RosterEntry struct {
	MemberID   uint         `json:"member_id"`
	MemberName string       `json:"member_name"`
	Paid       bool         `json:"paid"`
	Amount     domain.Money `json:"amount"`
}

// PendingLoan is one unsettled loan on the dashboard.
type PendingLoan struct {
	LoanID      uint         `json:"loan_id"`
	MemberName  string       `json:"member_name"`
	Amount      domain.Money `json:"amount"`
	TotalDue    domain.Money `json:"total_due"`
	TotalPaid   domain.Money `json:"total_paid"`
	Outstanding domain.Money `json:"outstanding"`
	EndDate     time.Time    `json:"end_date"`
	Overdue     bool         `json:"overdue"`
}

// DashboardData is the full dashboard payload.
type DashboardData struct {
	Summary          *DashboardSummary          `json:"summary"`
	MonthlyRoster    []RosterEntry              `json:"monthly_roster"`
	PendingLoans     []PendingLoan              `json:"pending_loans"`
	RecentActivities []*models.ActivityResponse `json:"recent_activities"`
	Warnings         []string                   `json:"warnings,omitempty"`
}

// snapshot is everything the dashboard derives from, fetched in one
// concurrent sweep.
type snapshot struct {
	members     []models.Member
	deposits    []models.Deposit
	loans       []models.Loan
	payments    []models.LoanPayment
	investments []models.Investment
	returns     []models.InvestmentReturn
	donations   []models.Donation
	income      []models.Income
	expenses    []models.Expense

	warnings []string
}

// GetDashboard builds the full dashboard. A failed slice fetch degrades that
// slice to empty and surfaces a warning instead of blanking the whole screen.
func (s *DashboardService) GetDashboard(ctx context.Context) (*DashboardData, error) {
	snap := s.fetchAll(ctx)

	summary := s.buildSummary(snap)
	roster := s.buildRoster(snap, time.Now())
	pending := s.buildPendingLoans(snap, time.Now())

	recent, err := s.activities.RecentActivities(ctx, 10)
	if err != nil {
		log.Printf("⚠️ Dashboard: recent activities unavailable: %v", err)
		snap.warnings = append(snap.warnings, "recent activities unavailable")
		recent = nil
	}

	return &DashboardData{
		Summary:          summary,
		MonthlyRoster:    roster,
		PendingLoans:     pending,
		RecentActivities: recent,
		Warnings:         snap.warnings,
	}, nil
}

// GetSummary builds only the headline figures.
func (s *DashboardService) GetSummary(ctx context.Context) (*DashboardSummary, error) {
	snap := s.fetchAll(ctx)
	return s.buildSummary(snap), nil
}

// fetchAll loads all nine collections concurrently. Each fetch failure is
// isolated: the slice stays empty and the failure becomes a warning.
func (s *DashboardService) fetchAll(ctx context.Context) *snapshot {
	snap := &snapshot{}
	var warnings [9]string

	g, gctx := errgroup.WithContext(ctx)
	fetch := func(name string, slot *string, load func() error) {
		g.Go(func() error {
			if err := load(); err != nil {
				log.Printf("⚠️ Dashboard: %s fetch failed: %v", name, err)
				*slot = name + " unavailable"
			}
			return nil
		})
	}

	fetch("members", &warnings[0], func() (err error) {
		snap.members, err = s.memberRepo.List(gctx)
		return
	})
	fetch("deposits", &warnings[1], func() (err error) {
		snap.deposits, err = s.depositRepo.List(gctx)
		return
	})
	fetch("loans", &warnings[2], func() (err error) {
		snap.loans, err = s.loanRepo.List(gctx)
		return
	})
	fetch("loan payments", &warnings[3], func() (err error) {
		snap.payments, err = s.paymentRepo.List(gctx)
		return
	})
	fetch("investments", &warnings[4], func() (err error) {
		snap.investments, err = s.investmentRepo.List(gctx)
		return
	})
	fetch("investment returns", &warnings[5], func() (err error) {
		snap.returns, err = s.returnRepo.List(gctx)
		return
	})
	fetch("donations", &warnings[6], func() (err error) {
		snap.donations, err = s.donationRepo.List(gctx)
		return
	})
	fetch("income", &warnings[7], func() (err error) {
		snap.income, err = s.incomeRepo.List(gctx)
		return
	})
	fetch("expenses", &warnings[8], func() (err error) {
		snap.expenses, err = s.expenseRepo.List(gctx)
		return
	})

	// goroutines never return errors, so Wait cannot fail
	_ = g.Wait()

	for _, w := range warnings {
		if w != "" {
			snap.warnings = append(snap.warnings, w)
		}
	}
	return snap
}

func (s *DashboardService) buildSummary(snap *snapshot) *DashboardSummary {
	balance := ledger.CurrentBalance(ledger.BalanceInputs{
		Members:           snap.members,
		Deposits:          snap.deposits,
		Loans:             snap.loans,
		LoanPayments:      snap.payments,
		Investments:       snap.investments,
		InvestmentReturns: snap.returns,
		Donations:         snap.donations,
		Income:            snap.income,
		Expenses:          snap.expenses,
	})

	summary := &DashboardSummary{
		TotalMembers:         len(snap.members),
		TotalDeposits:        ledger.TotalDeposits(snap.members, snap.deposits),
		TotalExpenditure:     ledger.TotalExpenditure(snap.expenses, snap.donations),
		OutstandingLoans:     ledger.TotalOutstandingLoans(snap.loans, snap.payments),
		ActiveInvestments:    ledger.ActiveInvestmentTotal(snap.investments),
		NetInvestmentReturns: ledger.NetInvestmentReturns(snap.returns),
		CurrentBalance:       balance,
	}
	for _, m := range snap.members {
		if m.Status == domain.MemberActive {
			summary.ActiveMembers++
		}
	}

	summary.TotalDepositsDisplay = currency.Format(summary.TotalDeposits)
	summary.TotalExpenditureDisplay = currency.Format(summary.TotalExpenditure)
	summary.OutstandingDisplay = currency.Format(summary.OutstandingLoans)
	summary.CurrentBalanceDisplay = currency.Format(summary.CurrentBalance)
	return summary
}

// buildRoster marks each active member paid or due for the month of now.
// A due member shows the default monthly amount.
func (s *DashboardService) buildRoster(snap *snapshot, now time.Time) []RosterEntry {
	month := int(now.Month())
	year := now.Year()

	paid := make(map[uint]domain.Money, len(snap.deposits))
	for _, d := range snap.deposits {
		if d.Month == month && d.Year == year {
			paid[d.MemberID] = d.Amount
		}
	}

	roster := make([]RosterEntry, 0, len(snap.members))
	for _, m := range snap.members {
		if m.Status != domain.MemberActive {
			continue
		}
		entry := RosterEntry{
			MemberID:   m.ID,
			MemberName: m.Name,
			Amount:     s.defaultDepositAmount,
		}
		if amount, ok := paid[m.ID]; ok {
			entry.Paid = true
			entry.Amount = amount
		}
		roster = append(roster, entry)
	}

	// due members first, then by name
	sort.Slice(roster, func(i, j int) bool {
		if roster[i].Paid != roster[j].Paid {
			return !roster[i].Paid
		}
		return roster[i].MemberName < roster[j].MemberName
	})
	return roster
}

// buildPendingLoans lists active loans with money still owed. Payment sums
// and member names come from prebuilt maps; one pass resolves every loan.
func (s *DashboardService) buildPendingLoans(snap *snapshot, now time.Time) []PendingLoan {
	paid := ledger.PaymentTotals(snap.payments)
	names := make(map[uint]string, len(snap.members))
	for _, m := range snap.members {
		names[m.ID] = m.Name
	}

	pending := make([]PendingLoan, 0, len(snap.loans))
	for i := range snap.loans {
		loan := &snap.loans[i]
		if loan.Status != domain.LoanActive {
			continue
		}
		outstanding := ledger.Outstanding(loan, paid[loan.ID])
		if outstanding == 0 {
			continue
		}
		pending = append(pending, PendingLoan{
			LoanID:      loan.ID,
			MemberName:  names[loan.MemberID],
			Amount:      loan.Amount,
			TotalDue:    ledger.TotalDue(loan),
			TotalPaid:   paid[loan.ID],
			Outstanding: outstanding,
			EndDate:     loan.EndDate,
			Overdue:     loan.EndDate.Before(now),
		})
	}

	sort.Slice(pending, func(i, j int) bool {
		return pending[i].EndDate.Before(pending[j].EndDate)
	})
	return pending
}
