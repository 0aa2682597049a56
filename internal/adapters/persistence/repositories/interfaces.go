package repositories

import (
	"context"

	"shopno-backend/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// Collection is the persistence surface the ledger core consumes: plain
// list/create/save/delete per entity collection. No filtering or pagination
// is assumed; the accounting layer joins and filters in memory after a
// full-collection fetch.
type Collection[T any] interface {
	List(ctx context.Context) ([]T, error)
	GetByID(ctx context.Context, id uint) (*T, error)
	Create(ctx context.Context, record *T) error
	Save(ctx context.Context, record *T) error
	Delete(ctx context.Context, id uint) error
	Count(ctx context.Context) (int64, error)
}

// Per-entity collection constructors.

func NewMemberRepository(db *gorm.DB) Collection[models.Member] {
	return newStore[models.Member](db)
}

func NewDepositRepository(db *gorm.DB) Collection[models.Deposit] {
	return newStore[models.Deposit](db)
}

func NewLoanRepository(db *gorm.DB) Collection[models.Loan] {
	return newStore[models.Loan](db)
}

func NewLoanPaymentRepository(db *gorm.DB) Collection[models.LoanPayment] {
	return newStore[models.LoanPayment](db)
}

func NewInvestmentRepository(db *gorm.DB) Collection[models.Investment] {
	return newStore[models.Investment](db)
}

func NewInvestmentReturnRepository(db *gorm.DB) Collection[models.InvestmentReturn] {
	return newStore[models.InvestmentReturn](db)
}

func NewDonationRepository(db *gorm.DB) Collection[models.Donation] {
	return newStore[models.Donation](db)
}

func NewIncomeRepository(db *gorm.DB) Collection[models.Income] {
	return newStore[models.Income](db)
}

func NewExpenseRepository(db *gorm.DB) Collection[models.Expense] {
	return newStore[models.Expense](db)
}

func NewActivityRepository(db *gorm.DB) Collection[models.Activity] {
	return newStore[models.Activity](db)
}

// UserRepository adds the username lookups auth needs on top of the generic
// collection surface.
type UserRepository interface {
	Collection[models.User]
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
}

// RefreshTokenRepository defines refresh token repository interface
type RefreshTokenRepository interface {
	Create(ctx context.Context, token *models.RefreshToken) error
	GetByTokenHash(ctx context.Context, tokenHash string) (*models.RefreshToken, error)
	RevokeByTokenHash(ctx context.Context, tokenHash string) error
	RevokeAllByUserID(ctx context.Context, userID uint) error
	DeleteExpired(ctx context.Context) error
}
