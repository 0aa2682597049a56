package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"shopno-backend/internal/adapters/persistence/models"
	"shopno-backend/internal/adapters/persistence/repositories"
	"shopno-backend/internal/core/domain"
	"shopno-backend/internal/core/ledger"

	"gorm.io/gorm"
)

// Loan service errors
var (
	ErrLoanNotActive   = errors.New("loan is not active")
	ErrInvalidLoanTerm = errors.New("loan term must be at least one month")
)

// LoanService handles loan lifecycle business logic
type LoanService struct {
	loanRepo    repositories.Collection[models.Loan]
	paymentRepo repositories.Collection[models.LoanPayment]
	memberRepo  repositories.Collection[models.Member]
	activities  *ActivityService
}

// NewLoanService creates a new loan service
func NewLoanService(
	loanRepo repositories.Collection[models.Loan],
	paymentRepo repositories.Collection[models.LoanPayment],
	memberRepo repositories.Collection[models.Member],
	activities *ActivityService,
) *LoanService {
	return &LoanService{
		loanRepo:    loanRepo,
		paymentRepo: paymentRepo,
		memberRepo:  memberRepo,
		activities:  activities,
	}
}

// CreateLoanInput represents create loan input
type CreateLoanInput struct {
	MemberID     uint         `json:"member_id"`
	Amount       domain.Money `json:"amount"`
	InterestRate float64      `json:"interest_rate"`
	TermMonths   int          `json:"term_months"`
	StartDate    time.Time    `json:"start_date"`
	Purpose      string       `json:"purpose"`
	Guarantor    string       `json:"guarantor"`
}

// UpdateLoanInput represents update loan input. Changing any schedule field
// re-derives the monthly payment and end date.
type UpdateLoanInput struct {
	Amount       *domain.Money `json:"amount"`
	InterestRate *float64      `json:"interest_rate"`
	TermMonths   *int          `json:"term_months"`
	StartDate    *time.Time    `json:"start_date"`
	Purpose      *string       `json:"purpose"`
	Guarantor    *string       `json:"guarantor"`
}

// AddPaymentInput represents a repayment against a loan
type AddPaymentInput struct {
	Amount      domain.Money `json:"amount"`
	PaymentDate time.Time    `json:"payment_date"`
	Notes       string       `json:"notes"`
}

// LoanDetail is a loan with its repayment progress resolved.
type LoanDetail struct {
	Loan        *models.Loan         `json:"loan"`
	MemberName  string               `json:"member_name"`
	Payments    []models.LoanPayment `json:"payments"`
	TotalDue    domain.Money         `json:"total_due"`
	TotalPaid   domain.Money         `json:"total_paid"`
	Outstanding domain.Money         `json:"outstanding"`
}

// LoanSummary is the listing row: loan plus derived progress figures.
type LoanSummary struct {
	models.Loan
	MemberName  string       `json:"member_name"`
	TotalDue    domain.Money `json:"total_due"`
	TotalPaid   domain.Money `json:"total_paid"`
	Outstanding domain.Money `json:"outstanding"`
}

// ListLoans returns loans newest first with member names and repayment
// progress, optionally filtered by status. One payment-list fetch serves
// every loan; no per-loan queries.
func (s *LoanService) ListLoans(ctx context.Context, status string) ([]LoanSummary, error) {
	loans, err := s.loanRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	payments, err := s.paymentRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	members, err := s.memberRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	paid := ledger.PaymentTotals(payments)
	names := make(map[uint]string, len(members))
	for _, m := range members {
		names[m.ID] = m.Name
	}

	summaries := make([]LoanSummary, 0, len(loans))
	for _, l := range loans {
		if status != "" && l.Status != status {
			continue
		}
		loan := l
		summaries = append(summaries, LoanSummary{
			Loan:        loan,
			MemberName:  names[loan.MemberID],
			TotalDue:    ledger.TotalDue(&loan),
			TotalPaid:   paid[loan.ID],
			Outstanding: ledger.Outstanding(&loan, paid[loan.ID]),
		})
	}

	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].ID > summaries[j].ID
	})
	return summaries, nil
}

// GetLoan returns one loan with its payment history and progress.
func (s *LoanService) GetLoan(ctx context.Context, id uint) (*LoanDetail, error) {
	loan, err := s.loanRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrLoanNotFound
		}
		return nil, err
	}

	payments, err := s.loanPayments(ctx, id)
	if err != nil {
		return nil, err
	}

	memberName := ""
	if member, err := s.memberRepo.GetByID(ctx, loan.MemberID); err == nil {
		memberName = member.Name
	}

	var totalPaid domain.Money
	for _, p := range payments {
		totalPaid += p.Amount
	}

	return &LoanDetail{
		Loan:        loan,
		MemberName:  memberName,
		Payments:    payments,
		TotalDue:    ledger.TotalDue(loan),
		TotalPaid:   totalPaid,
		Outstanding: ledger.Outstanding(loan, totalPaid),
	}, nil
}

// CreateLoan disburses a loan. The monthly payment and end date are derived
// once here and stored with the loan.
func (s *LoanService) CreateLoan(ctx context.Context, session *domain.Session, input *CreateLoanInput) (*models.Loan, error) {
	if input.Amount <= 0 || input.InterestRate < 0 {
		return nil, domain.ErrInvalidInput
	}
	if input.TermMonths < 1 {
		return nil, ErrInvalidLoanTerm
	}

	member, err := s.memberRepo.GetByID(ctx, input.MemberID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrMemberNotFound
		}
		return nil, err
	}

	if input.StartDate.IsZero() {
		input.StartDate = time.Now()
	}

	loan := &models.Loan{
		MemberID:       input.MemberID,
		Amount:         input.Amount,
		InterestRate:   input.InterestRate,
		TermMonths:     input.TermMonths,
		MonthlyPayment: ledger.MonthlyPayment(input.Amount, input.InterestRate, input.TermMonths),
		StartDate:      input.StartDate,
		EndDate:        ledger.EndDate(input.StartDate, input.TermMonths),
		Status:         domain.LoanActive,
		Purpose:        input.Purpose,
		Guarantor:      input.Guarantor,
	}

	if err := s.loanRepo.Create(ctx, loan); err != nil {
		return nil, err
	}

	s.activities.Record(ctx, session, domain.ActionLoanAdd,
		fmt.Sprintf("ঋণ বিতরণ: %s", member.Name), nil, loan)
	return loan, nil
}

// UpdateLoan edits loan terms and re-derives the schedule.
func (s *LoanService) UpdateLoan(ctx context.Context, session *domain.Session, id uint, input *UpdateLoanInput) (*models.Loan, error) {
	loan, err := s.loanRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrLoanNotFound
		}
		return nil, err
	}

	before := *loan

	if input.Amount != nil {
		if *input.Amount <= 0 {
			return nil, domain.ErrInvalidInput
		}
		loan.Amount = *input.Amount
	}
	if input.InterestRate != nil {
		if *input.InterestRate < 0 {
			return nil, domain.ErrInvalidInput
		}
		loan.InterestRate = *input.InterestRate
	}
	if input.TermMonths != nil {
		if *input.TermMonths < 1 {
			return nil, ErrInvalidLoanTerm
		}
		loan.TermMonths = *input.TermMonths
	}
	if input.StartDate != nil {
		loan.StartDate = *input.StartDate
	}
	if input.Purpose != nil {
		loan.Purpose = *input.Purpose
	}
	if input.Guarantor != nil {
		loan.Guarantor = *input.Guarantor
	}

	loan.MonthlyPayment = ledger.MonthlyPayment(loan.Amount, loan.InterestRate, loan.TermMonths)
	loan.EndDate = ledger.EndDate(loan.StartDate, loan.TermMonths)

	if err := s.loanRepo.Save(ctx, loan); err != nil {
		return nil, err
	}

	s.activities.Record(ctx, session, domain.ActionLoanUpdate,
		fmt.Sprintf("ঋণ হালনাগাদ: #%d", loan.ID), &before, loan)
	return loan, nil
}

// AddPayment records a repayment. When the paid total reaches the loan's
// total due the loan completes automatically.
func (s *LoanService) AddPayment(ctx context.Context, session *domain.Session, loanID uint, input *AddPaymentInput) (*models.LoanPayment, error) {
	if input.Amount <= 0 {
		return nil, domain.ErrInvalidInput
	}

	loan, err := s.loanRepo.GetByID(ctx, loanID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrLoanNotFound
		}
		return nil, err
	}
	if loan.Status != domain.LoanActive {
		return nil, ErrLoanNotActive
	}

	if input.PaymentDate.IsZero() {
		input.PaymentDate = time.Now()
	}

	payment := &models.LoanPayment{
		LoanID:      loanID,
		Amount:      input.Amount,
		PaymentDate: input.PaymentDate,
		Notes:       input.Notes,
	}
	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		return nil, err
	}

	payments, err := s.loanPayments(ctx, loanID)
	if err != nil {
		return nil, err
	}
	var totalPaid domain.Money
	for _, p := range payments {
		totalPaid += p.Amount
	}

	if ledger.IsSettled(loan, totalPaid) {
		before := *loan
		loan.Status = domain.LoanCompleted
		if err := s.loanRepo.Save(ctx, loan); err != nil {
			return nil, err
		}
		s.activities.Record(ctx, session, domain.ActionLoanUpdate,
			fmt.Sprintf("ঋণ পরিশোধ সম্পন্ন: #%d", loan.ID), &before, loan)
	}

	s.activities.Record(ctx, session, domain.ActionLoanPayment,
		fmt.Sprintf("কিস্তি আদায়: ঋণ #%d", loan.ID), nil, payment)
	return payment, nil
}

// UpdateStatus is the operator path for closing out an active loan,
// typically marking it defaulted. Completed and defaulted are terminal;
// there is no reactivation path. The automatic completion transition
// does not go through here.
func (s *LoanService) UpdateStatus(ctx context.Context, session *domain.Session, id uint, status string) (*models.Loan, error) {
	if status != domain.LoanActive && status != domain.LoanCompleted && status != domain.LoanDefaulted {
		return nil, domain.ErrInvalidInput
	}

	loan, err := s.loanRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrLoanNotFound
		}
		return nil, err
	}

	if loan.Status != domain.LoanActive {
		return nil, ErrLoanNotActive
	}

	before := *loan
	loan.Status = status
	if err := s.loanRepo.Save(ctx, loan); err != nil {
		return nil, err
	}

	s.activities.Record(ctx, session, domain.ActionLoanUpdate,
		fmt.Sprintf("ঋণ অবস্থা পরিবর্তন: #%d (%s)", loan.ID, status), &before, loan)
	return loan, nil
}

// DeleteLoan removes a loan and its payment history. Payments go first so a
// failure midway never leaves orphaned payments pointing at a deleted loan.
func (s *LoanService) DeleteLoan(ctx context.Context, session *domain.Session, id uint) error {
	loan, err := s.loanRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrLoanNotFound
		}
		return err
	}

	payments, err := s.loanPayments(ctx, id)
	if err != nil {
		return err
	}
	for _, p := range payments {
		if err := s.paymentRepo.Delete(ctx, p.ID); err != nil {
			return err
		}
	}

	if err := s.loanRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.activities.Record(ctx, session, domain.ActionLoanDelete,
		fmt.Sprintf("ঋণ মুছে ফেলা: #%d", loan.ID), loan, nil)
	return nil
}

// loanPayments returns one loan's payments sorted by date.
func (s *LoanService) loanPayments(ctx context.Context, loanID uint) ([]models.LoanPayment, error) {
	payments, err := s.paymentRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	mine := payments[:0]
	for _, p := range payments {
		if p.LoanID == loanID {
			mine = append(mine, p)
		}
	}
	sort.Slice(mine, func(i, j int) bool {
		return mine[i].PaymentDate.Before(mine[j].PaymentDate)
	})
	return mine, nil
}
