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

// DepositService handles monthly deposit business logic
type DepositService struct {
	depositRepo repositories.Collection[models.Deposit]
	memberRepo  repositories.Collection[models.Member]
	activities  *ActivityService
}

// NewDepositService creates a new deposit service
func NewDepositService(
	depositRepo repositories.Collection[models.Deposit],
	memberRepo repositories.Collection[models.Member],
	activities *ActivityService,
) *DepositService {
	return &DepositService{
		depositRepo: depositRepo,
		memberRepo:  memberRepo,
		activities:  activities,
	}
}

// CreateDepositInput represents create deposit input
type CreateDepositInput struct {
	MemberID uint         `json:"member_id"`
	Amount   domain.Money `json:"amount"`
	Month    int          `json:"month"`
	Year     int          `json:"year"`
	Date     time.Time    `json:"date"`
	Note     string       `json:"note"`
}

// DepositFilter narrows a deposit listing.
type DepositFilter struct {
	MemberID uint
	Month    int
	Year     int
}

// ListDeposits returns deposits with member names resolved, newest first,
// optionally filtered by member and period.
func (s *DepositService) ListDeposits(ctx context.Context, filter *DepositFilter) ([]models.Deposit, error) {
	deposits, err := s.depositRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	filtered := deposits[:0]
	for _, d := range deposits {
		if filter != nil {
			if filter.MemberID != 0 && d.MemberID != filter.MemberID {
				continue
			}
			if filter.Month != 0 && d.Month != filter.Month {
				continue
			}
			if filter.Year != 0 && d.Year != filter.Year {
				continue
			}
		}
		filtered = append(filtered, d)
	}

	members, err := s.memberRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	byID := make(map[uint]*models.Member, len(members))
	for i := range members {
		byID[members[i].ID] = &members[i]
	}
	for i := range filtered {
		filtered[i].Member = byID[filtered[i].MemberID]
	}

	sort.Slice(filtered, func(i, j int) bool {
		if filtered[i].Year != filtered[j].Year {
			return filtered[i].Year > filtered[j].Year
		}
		if filtered[i].Month != filtered[j].Month {
			return filtered[i].Month > filtered[j].Month
		}
		return filtered[i].ID > filtered[j].ID
	})
	return filtered, nil
}

// CreateDeposit records one member's deposit for a month. A member can have
// at most one deposit per month per year; the check here runs before the
// write, with the composite unique index as the concurrent-write backstop.
func (s *DepositService) CreateDeposit(ctx context.Context, session *domain.Session, input *CreateDepositInput) (*models.Deposit, error) {
	if input.Amount <= 0 || input.Month < 1 || input.Month > 12 || input.Year < 1 {
		return nil, domain.ErrInvalidInput
	}

	member, err := s.memberRepo.GetByID(ctx, input.MemberID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrMemberNotFound
		}
		return nil, err
	}

	existing, err := s.depositRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, d := range existing {
		if d.MemberID == input.MemberID && d.Month == input.Month && d.Year == input.Year {
			return nil, domain.ErrDuplicateDeposit
		}
	}

	if input.Date.IsZero() {
		input.Date = time.Now()
	}

	deposit := &models.Deposit{
		MemberID: input.MemberID,
		Amount:   input.Amount,
		Month:    input.Month,
		Year:     input.Year,
		Date:     input.Date,
		Note:     input.Note,
	}

	if err := s.depositRepo.Create(ctx, deposit); err != nil {
		// concurrent insert raced past the pre-write check
		if isDuplicateKeyError(err) {
			return nil, domain.ErrDuplicateDeposit
		}
		return nil, err
	}

	s.activities.Record(ctx, session, domain.ActionDepositAdd,
		fmt.Sprintf("জমা সংগ্রহ: %s (%d/%d)", member.Name, deposit.Month, deposit.Year),
		nil, deposit)
	return deposit, nil
}

// DeleteDeposit removes a deposit record.
func (s *DepositService) DeleteDeposit(ctx context.Context, session *domain.Session, id uint) error {
	deposit, err := s.depositRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrNotFound
		}
		return err
	}

	if err := s.depositRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.activities.Record(ctx, session, domain.ActionDepositDelete,
		fmt.Sprintf("জমা মুছে ফেলা: (%d/%d)", deposit.Month, deposit.Year),
		deposit, nil)
	return nil
}

// TotalDeposits is the society's full deposit capital, opening balances
// included.
func (s *DepositService) TotalDeposits(ctx context.Context) (domain.Money, error) {
	members, err := s.memberRepo.List(ctx)
	if err != nil {
		return 0, err
	}
	deposits, err := s.depositRepo.List(ctx)
	if err != nil {
		return 0, err
	}
	return ledger.TotalDeposits(members, deposits), nil
}

// isDuplicateKeyError reports whether the write hit a unique constraint.
func isDuplicateKeyError(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
