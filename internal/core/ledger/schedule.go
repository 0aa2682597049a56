package ledger

import (
	"math"
	"time"

	"shopno-backend/internal/adapters/persistence/models"
	"shopno-backend/internal/core/domain"
)

// MonthlyPayment spreads the principal plus its flat percentage fee evenly
// over the term, rounded to the nearest Taka. The fee is a one-time add-on,
// not declining-balance interest. Zero principal or zero term yields 0.
func MonthlyPayment(principal domain.Money, ratePercent float64, termMonths int) domain.Money {
	if principal == 0 || termMonths == 0 {
		return 0
	}
	total := float64(principal) + float64(principal)*ratePercent/100
	return domain.Money(math.Round(total / float64(termMonths)))
}

// EndDate is the loan's maturity: start plus the term in calendar months.
func EndDate(startDate time.Time, termMonths int) time.Time {
	return startDate.AddDate(0, termMonths, 0)
}

// TotalDue is the principal plus its flat percentage fee.
func TotalDue(loan *models.Loan) domain.Money {
	if loan == nil {
		return 0
	}
	return loan.Amount + domain.Money(float64(loan.Amount)*loan.InterestRate/100)
}

// PaymentTotals folds a payment list into a loanID to paid-sum map, the single
// pass that lets callers resolve every loan's progress without per-loan
// fetches.
func PaymentTotals(payments []models.LoanPayment) map[uint]domain.Money {
	totals := make(map[uint]domain.Money, len(payments))
	for _, p := range payments {
		totals[p.LoanID] += p.Amount
	}
	return totals
}

// TotalPaid sums the payments recorded against one loan.
func TotalPaid(loanID uint, payments []models.LoanPayment) domain.Money {
	var total domain.Money
	for _, p := range payments {
		if p.LoanID == loanID {
			total += p.Amount
		}
	}
	return total
}

// Outstanding is what remains owed on a loan: total due minus total paid,
// clamped at zero so overpayment never shows as negative debt.
func Outstanding(loan *models.Loan, totalPaid domain.Money) domain.Money {
	due := TotalDue(loan)
	if totalPaid >= due {
		return 0
	}
	return due - totalPaid
}

// IsSettled reports whether the paid total covers the loan's total due,
// the trigger for the automatic active to completed transition.
func IsSettled(loan *models.Loan, totalPaid domain.Money) bool {
	return totalPaid >= TotalDue(loan)
}
