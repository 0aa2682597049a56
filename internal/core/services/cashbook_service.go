package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"shopno-backend/internal/adapters/persistence/models"
	"shopno-backend/internal/adapters/persistence/repositories"
	"shopno-backend/internal/core/domain"

	"gorm.io/gorm"
)

// CashbookService handles the three simple cash ledgers: income, expenses
// and donations. They share one validation shape so they live together.
type CashbookService struct {
	incomeRepo   repositories.Collection[models.Income]
	expenseRepo  repositories.Collection[models.Expense]
	donationRepo repositories.Collection[models.Donation]
	activities   *ActivityService
}

// NewCashbookService creates a new cashbook service
func NewCashbookService(
	incomeRepo repositories.Collection[models.Income],
	expenseRepo repositories.Collection[models.Expense],
	donationRepo repositories.Collection[models.Donation],
	activities *ActivityService,
) *CashbookService {
	return &CashbookService{
		incomeRepo:   incomeRepo,
		expenseRepo:  expenseRepo,
		donationRepo: donationRepo,
		activities:   activities,
	}
}

// CashEntryInput represents income or expense input
type CashEntryInput struct {
	Title       string       `json:"title"`
	Category    string       `json:"category"`
	Amount      domain.Money `json:"amount"`
	Date        time.Time    `json:"date"`
	Description string       `json:"description"`
}

// DonationInput represents donation input
type DonationInput struct {
	Recipient   string       `json:"recipient"`
	Purpose     string       `json:"purpose"`
	Amount      domain.Money `json:"amount"`
	Date        time.Time    `json:"date"`
	Description string       `json:"description"`
	Contact     string       `json:"contact"`
}

func (in *CashEntryInput) validate() error {
	if strings.TrimSpace(in.Title) == "" || in.Amount <= 0 {
		return domain.ErrInvalidInput
	}
	if in.Date.IsZero() {
		in.Date = time.Now()
	}
	return nil
}

func (in *DonationInput) validate() error {
	if strings.TrimSpace(in.Recipient) == "" || strings.TrimSpace(in.Purpose) == "" || in.Amount <= 0 {
		return domain.ErrInvalidInput
	}
	if in.Date.IsZero() {
		in.Date = time.Now()
	}
	return nil
}

// ============================================================
// Income
// ============================================================

// ListIncome returns income records newest first.
func (s *CashbookService) ListIncome(ctx context.Context) ([]models.Income, error) {
	records, err := s.incomeRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].Date.After(records[j].Date)
	})
	return records, nil
}

// CreateIncome records an income entry.
func (s *CashbookService) CreateIncome(ctx context.Context, session *domain.Session, input *CashEntryInput) (*models.Income, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	record := &models.Income{
		Title:       strings.TrimSpace(input.Title),
		Category:    input.Category,
		Amount:      input.Amount,
		Date:        input.Date,
		Description: input.Description,
	}
	if err := s.incomeRepo.Create(ctx, record); err != nil {
		return nil, err
	}

	s.activities.Record(ctx, session, domain.ActionIncomeAdd,
		fmt.Sprintf("আয় যোগ: %s", record.Title), nil, record)
	return record, nil
}

// UpdateIncome edits an income entry.
func (s *CashbookService) UpdateIncome(ctx context.Context, session *domain.Session, id uint, input *CashEntryInput) (*models.Income, error) {
	record, err := s.incomeRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if err := input.validate(); err != nil {
		return nil, err
	}

	before := *record
	record.Title = strings.TrimSpace(input.Title)
	record.Category = input.Category
	record.Amount = input.Amount
	record.Date = input.Date
	record.Description = input.Description

	if err := s.incomeRepo.Save(ctx, record); err != nil {
		return nil, err
	}

	s.activities.Record(ctx, session, domain.ActionIncomeUpdate,
		fmt.Sprintf("আয় হালনাগাদ: %s", record.Title), &before, record)
	return record, nil
}

// DeleteIncome removes an income entry.
func (s *CashbookService) DeleteIncome(ctx context.Context, session *domain.Session, id uint) error {
	record, err := s.incomeRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrNotFound
		}
		return err
	}

	if err := s.incomeRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.activities.Record(ctx, session, domain.ActionIncomeDelete,
		fmt.Sprintf("আয় মুছে ফেলা: %s", record.Title), record, nil)
	return nil
}

// ============================================================
// Expenses
// ============================================================

// ListExpenses returns expense records newest first.
func (s *CashbookService) ListExpenses(ctx context.Context) ([]models.Expense, error) {
	records, err := s.expenseRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].Date.After(records[j].Date)
	})
	return records, nil
}

// CreateExpense records an expense entry.
func (s *CashbookService) CreateExpense(ctx context.Context, session *domain.Session, input *CashEntryInput) (*models.Expense, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	record := &models.Expense{
		Title:       strings.TrimSpace(input.Title),
		Category:    input.Category,
		Amount:      input.Amount,
		Date:        input.Date,
		Description: input.Description,
	}
	if err := s.expenseRepo.Create(ctx, record); err != nil {
		return nil, err
	}

	s.activities.Record(ctx, session, domain.ActionExpenseAdd,
		fmt.Sprintf("ব্যয় যোগ: %s", record.Title), nil, record)
	return record, nil
}

// UpdateExpense edits an expense entry.
func (s *CashbookService) UpdateExpense(ctx context.Context, session *domain.Session, id uint, input *CashEntryInput) (*models.Expense, error) {
	record, err := s.expenseRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if err := input.validate(); err != nil {
		return nil, err
	}

	before := *record
	record.Title = strings.TrimSpace(input.Title)
	record.Category = input.Category
	record.Amount = input.Amount
	record.Date = input.Date
	record.Description = input.Description

	if err := s.expenseRepo.Save(ctx, record); err != nil {
		return nil, err
	}

	s.activities.Record(ctx, session, domain.ActionExpenseUpdate,
		fmt.Sprintf("ব্যয় হালনাগাদ: %s", record.Title), &before, record)
	return record, nil
}

// DeleteExpense removes an expense entry.
func (s *CashbookService) DeleteExpense(ctx context.Context, session *domain.Session, id uint) error {
	record, err := s.expenseRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrNotFound
		}
		return err
	}

	if err := s.expenseRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.activities.Record(ctx, session, domain.ActionExpenseDelete,
		fmt.Sprintf("ব্যয় মুছে ফেলা: %s", record.Title), record, nil)
	return nil
}

// ============================================================
// Donations
// ============================================================

// ListDonations returns donation records newest first.
func (s *CashbookService) ListDonations(ctx context.Context) ([]models.Donation, error) {
	records, err := s.donationRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].Date.After(records[j].Date)
	})
	return records, nil
}

// CreateDonation records a donation.
func (s *CashbookService) CreateDonation(ctx context.Context, session *domain.Session, input *DonationInput) (*models.Donation, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	record := &models.Donation{
		Recipient:   strings.TrimSpace(input.Recipient),
		Purpose:     strings.TrimSpace(input.Purpose),
		Amount:      input.Amount,
		Date:        input.Date,
		Description: input.Description,
		Contact:     input.Contact,
	}
	if err := s.donationRepo.Create(ctx, record); err != nil {
		return nil, err
	}

	s.activities.Record(ctx, session, domain.ActionDonationAdd,
		fmt.Sprintf("অনুদান প্রদান: %s", record.Recipient), nil, record)
	return record, nil
}

// UpdateDonation edits a donation.
func (s *CashbookService) UpdateDonation(ctx context.Context, session *domain.Session, id uint, input *DonationInput) (*models.Donation, error) {
	record, err := s.donationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if err := input.validate(); err != nil {
		return nil, err
	}

	before := *record
	record.Recipient = strings.TrimSpace(input.Recipient)
	record.Purpose = strings.TrimSpace(input.Purpose)
	record.Amount = input.Amount
	record.Date = input.Date
	record.Description = input.Description
	record.Contact = input.Contact

	if err := s.donationRepo.Save(ctx, record); err != nil {
		return nil, err
	}

	s.activities.Record(ctx, session, domain.ActionDonationUpdate,
		fmt.Sprintf("অনুদান হালনাগাদ: %s", record.Recipient), &before, record)
	return record, nil
}

// DeleteDonation removes a donation.
func (s *CashbookService) DeleteDonation(ctx context.Context, session *domain.Session, id uint) error {
	record, err := s.donationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrNotFound
		}
		return err
	}

	if err := s.donationRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.activities.Record(ctx, session, domain.ActionDonationDelete,
		fmt.Sprintf("অনুদান মুছে ফেলা: %s", record.Recipient), record, nil)
	return nil
}
