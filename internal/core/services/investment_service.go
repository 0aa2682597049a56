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
	"shopno-backend/internal/core/ledger"

	"gorm.io/gorm"
)

// InvestmentService handles investment and return business logic
type InvestmentService struct {
	investmentRepo repositories.Collection[models.Investment]
	returnRepo     repositories.Collection[models.InvestmentReturn]
	activities     *ActivityService
}

// NewInvestmentService creates a new investment service
func NewInvestmentService(
	investmentRepo repositories.Collection[models.Investment],
	returnRepo repositories.Collection[models.InvestmentReturn],
	activities *ActivityService,
) *InvestmentService {
	return &InvestmentService{
		investmentRepo: investmentRepo,
		returnRepo:     returnRepo,
		activities:     activities,
	}
}

// CreateInvestmentInput represents create investment input
type CreateInvestmentInput struct {
	Title       string       `json:"title"`
	Type        string       `json:"type"`
	Amount      domain.Money `json:"amount"`
	Date        time.Time    `json:"date"`
	Description string       `json:"description"`
}

// AddReturnInput represents a return posting. Amount is the magnitude;
// Kind says whether it was a profit or a loss. The stored amount is signed.
type AddReturnInput struct {
	Amount domain.Money `json:"amount"`
	Kind   string       `json:"kind"`
	Date   time.Time    `json:"date"`
	Notes  string       `json:"notes"`
}

// InvestmentDetail is an investment with its returns and net figure.
type InvestmentDetail struct {
	Investment *models.Investment        `json:"investment"`
	Returns    []models.InvestmentReturn `json:"returns"`
	NetReturn  domain.Money              `json:"net_return"`
}

// ListInvestments returns investments newest first with net returns
// resolved, optionally filtered by status.
func (s *InvestmentService) ListInvestments(ctx context.Context, status string) ([]InvestmentDetail, error) {
	investments, err := s.investmentRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	returns, err := s.returnRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	byInvestment := make(map[uint][]models.InvestmentReturn)
	for _, r := range returns {
		byInvestment[r.InvestmentID] = append(byInvestment[r.InvestmentID], r)
	}

	details := make([]InvestmentDetail, 0, len(investments))
	for i := range investments {
		inv := investments[i]
		if status != "" && inv.Status != status {
			continue
		}
		invReturns := byInvestment[inv.ID]
		sort.Slice(invReturns, func(a, b int) bool {
			return invReturns[a].Date.Before(invReturns[b].Date)
		})
		details = append(details, InvestmentDetail{
			Investment: &investments[i],
			Returns:    invReturns,
			NetReturn:  ledger.NetInvestmentReturns(invReturns),
		})
	}

	sort.Slice(details, func(i, j int) bool {
		return details[i].Investment.ID > details[j].Investment.ID
	})
	return details, nil
}

// GetInvestment returns one investment with its return history.
func (s *InvestmentService) GetInvestment(ctx context.Context, id uint) (*InvestmentDetail, error) {
	investment, err := s.investmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	returns, err := s.returnRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	mine := returns[:0]
	for _, r := range returns {
		if r.InvestmentID == id {
			mine = append(mine, r)
		}
	}
	sort.Slice(mine, func(i, j int) bool {
		return mine[i].Date.Before(mine[j].Date)
	})

	return &InvestmentDetail{
		Investment: investment,
		Returns:    mine,
		NetReturn:  ledger.NetInvestmentReturns(mine),
	}, nil
}

// CreateInvestment records a new deployment of society capital.
func (s *InvestmentService) CreateInvestment(ctx context.Context, session *domain.Session, input *CreateInvestmentInput) (*models.Investment, error) {
	if strings.TrimSpace(input.Title) == "" || input.Amount <= 0 {
		return nil, domain.ErrInvalidInput
	}
	if input.Date.IsZero() {
		input.Date = time.Now()
	}

	investment := &models.Investment{
		Title:       strings.TrimSpace(input.Title),
		Type:        input.Type,
		Amount:      input.Amount,
		Date:        input.Date,
		Description: input.Description,
		Status:      domain.InvestmentActive,
	}

	if err := s.investmentRepo.Create(ctx, investment); err != nil {
		return nil, err
	}

	s.activities.Record(ctx, session, domain.ActionInvestmentAdd,
		fmt.Sprintf("নতুন বিনিয়োগ: %s", investment.Title), nil, investment)
	return investment, nil
}

// CompleteInvestment marks an investment closed; its principal stops
// counting as deployed capital.
func (s *InvestmentService) CompleteInvestment(ctx context.Context, session *domain.Session, id uint) (*models.Investment, error) {
	investment, err := s.investmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	before := *investment
	investment.Status = domain.InvestmentCompleted
	if err := s.investmentRepo.Save(ctx, investment); err != nil {
		return nil, err
	}

	s.activities.Record(ctx, session, domain.ActionInvestmentUpdate,
		fmt.Sprintf("বিনিয়োগ সমাপ্ত: %s", investment.Title), &before, investment)
	return investment, nil
}

// DeleteInvestment removes an investment and its return history. Returns go
// first so no orphan rows survive a midway failure.
func (s *InvestmentService) DeleteInvestment(ctx context.Context, session *domain.Session, id uint) error {
	investment, err := s.investmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrNotFound
		}
		return err
	}

	returns, err := s.returnRepo.List(ctx)
	if err != nil {
		return err
	}
	for _, r := range returns {
		if r.InvestmentID == id {
			if err := s.returnRepo.Delete(ctx, r.ID); err != nil {
				return err
			}
		}
	}

	if err := s.investmentRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.activities.Record(ctx, session, domain.ActionInvestmentDelete,
		fmt.Sprintf("বিনিয়োগ মুছে ফেলা: %s", investment.Title), investment, nil)
	return nil
}

// AddReturn posts a profit or loss against an investment. The canonical
// stored amount is signed: profit positive, loss negative.
func (s *InvestmentService) AddReturn(ctx context.Context, session *domain.Session, investmentID uint, input *AddReturnInput) (*models.InvestmentReturn, error) {
	if input.Amount <= 0 {
		return nil, domain.ErrInvalidInput
	}

	investment, err := s.investmentRepo.GetByID(ctx, investmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	amount := input.Amount
	switch input.Kind {
	case "profit", "":
	case "loss":
		amount = -amount
	default:
		return nil, domain.ErrInvalidInput
	}

	if input.Date.IsZero() {
		input.Date = time.Now()
	}

	ret := &models.InvestmentReturn{
		InvestmentID: investmentID,
		Amount:       amount,
		Date:         input.Date,
		Notes:        input.Notes,
	}
	if err := s.returnRepo.Create(ctx, ret); err != nil {
		return nil, err
	}

	s.activities.Record(ctx, session, domain.ActionReturnAdd,
		fmt.Sprintf("বিনিয়োগ মুনাফা: %s", investment.Title), nil, ret)
	return ret, nil
}

// DeleteReturn removes a posted return.
func (s *InvestmentService) DeleteReturn(ctx context.Context, session *domain.Session, id uint) error {
	ret, err := s.returnRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrNotFound
		}
		return err
	}

	if err := s.returnRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.activities.Record(ctx, session, domain.ActionReturnDelete,
		fmt.Sprintf("মুনাফা এন্ট্রি মুছে ফেলা: #%d", ret.ID), ret, nil)
	return nil
}
