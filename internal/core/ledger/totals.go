// Package ledger holds the pure accounting core: every function here computes
// derived figures from record slices already fetched from storage, touches
// nothing, and is safe to call from any goroutine.
package ledger

import (
	"shopno-backend/internal/adapters/persistence/models"
	"shopno-backend/internal/core/domain"
)

// TotalDeposits is the society's deposit capital: every recorded deposit plus
// every member's opening balance. The opening balance is treated as an
// implicit first deposit and therefore counted exactly once per member.
func TotalDeposits(members []models.Member, deposits []models.Deposit) domain.Money {
	var total domain.Money
	for _, m := range members {
		total += m.OpeningBalance
	}
	for _, d := range deposits {
		total += d.Amount
	}
	return total
}

// TotalExpenditure sums expenses and donations.
func TotalExpenditure(expenses []models.Expense, donations []models.Donation) domain.Money {
	var total domain.Money
	for _, e := range expenses {
		total += e.Amount
	}
	for _, d := range donations {
		total += d.Amount
	}
	return total
}

// TotalOutstandingLoans is the portfolio-level figure: everything disbursed
// minus everything collected, across all loans regardless of status.
func TotalOutstandingLoans(loans []models.Loan, payments []models.LoanPayment) domain.Money {
	return TotalDisbursed(loans) - TotalCollected(payments)
}

// TotalDisbursed sums all loan principals.
func TotalDisbursed(loans []models.Loan) domain.Money {
	var total domain.Money
	for _, l := range loans {
		total += l.Amount
	}
	return total
}

// TotalCollected sums all loan payments.
func TotalCollected(payments []models.LoanPayment) domain.Money {
	var total domain.Money
	for _, p := range payments {
		total += p.Amount
	}
	return total
}

// ActiveInvestmentTotal sums the principal still deployed in active
// investments.
func ActiveInvestmentTotal(investments []models.Investment) domain.Money {
	var total domain.Money
	for _, inv := range investments {
		if inv.Status == domain.InvestmentActive {
			total += inv.Amount
		}
	}
	return total
}

// NetInvestmentReturns sums signed return amounts: profits positive, losses
// stored negative.
func NetInvestmentReturns(returns []models.InvestmentReturn) domain.Money {
	var total domain.Money
	for _, r := range returns {
		total += r.Amount
	}
	return total
}

// TotalIncome sums income records.
func TotalIncome(income []models.Income) domain.Money {
	var total domain.Money
	for _, i := range income {
		total += i.Amount
	}
	return total
}

// TotalExpenses sums expense records.
func TotalExpenses(expenses []models.Expense) domain.Money {
	var total domain.Money
	for _, e := range expenses {
		total += e.Amount
	}
	return total
}

// TotalDonations sums donation records.
func TotalDonations(donations []models.Donation) domain.Money {
	var total domain.Money
	for _, d := range donations {
		total += d.Amount
	}
	return total
}

// BalanceInputs carries the full record snapshots CurrentBalance derives from.
type BalanceInputs struct {
	Members           []models.Member
	Deposits          []models.Deposit
	Loans             []models.Loan
	LoanPayments      []models.LoanPayment
	Investments       []models.Investment
	InvestmentReturns []models.InvestmentReturn
	Donations         []models.Donation
	Income            []models.Income
	Expenses          []models.Expense
}

// CurrentBalance is the cash-basis identity: every inflow category minus
// every outflow category.
//
//	in:  deposits (incl. opening balances) + loan collections + net investment returns + income
//	out: expenses + donations + loans disbursed + active investment principal
//
// A new transaction type must be classified into exactly one side before it
// is added here; miscategorization silently corrupts the balance.
func CurrentBalance(in BalanceInputs) domain.Money {
	cashIn := TotalDeposits(in.Members, in.Deposits) +
		TotalCollected(in.LoanPayments) +
		NetInvestmentReturns(in.InvestmentReturns) +
		TotalIncome(in.Income)

	cashOut := TotalExpenses(in.Expenses) +
		TotalDonations(in.Donations) +
		TotalDisbursed(in.Loans) +
		ActiveInvestmentTotal(in.Investments)

	return cashIn - cashOut
}

// MemberTotalDeposit is one member's lifetime deposit total: opening balance
// plus their recorded deposits.
func MemberTotalDeposit(member *models.Member, deposits []models.Deposit) domain.Money {
	if member == nil {
		return 0
	}
	total := member.OpeningBalance
	for _, d := range deposits {
		if d.MemberID == member.ID {
			total += d.Amount
		}
	}
	return total
}
