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

// Member service errors
var (
	ErrMemberHasActiveLoan = errors.New("member has an active loan")
)

// MemberService handles member registry business logic
type MemberService struct {
	memberRepo  repositories.Collection[models.Member]
	depositRepo repositories.Collection[models.Deposit]
	loanRepo    repositories.Collection[models.Loan]
	activities  *ActivityService
}

// NewMemberService creates a new member service
func NewMemberService(
	memberRepo repositories.Collection[models.Member],
	depositRepo repositories.Collection[models.Deposit],
	loanRepo repositories.Collection[models.Loan],
	activities *ActivityService,
) *MemberService {
	return &MemberService{
		memberRepo:  memberRepo,
		depositRepo: depositRepo,
		loanRepo:    loanRepo,
		activities:  activities,
	}
}

// CreateMemberInput represents create member input
type CreateMemberInput struct {
	Name           string       `json:"name"`
	Phone          string       `json:"phone"`
	Designation    string       `json:"designation"`
	OpeningBalance domain.Money `json:"opening_balance"`
	Address        string       `json:"address"`
	JoinDate       time.Time    `json:"join_date"`
	Status         string       `json:"status"`
}

// UpdateMemberInput represents update member input. The opening balance is
// part of the society's capital history and cannot be edited after creation.
type UpdateMemberInput struct {
	Name        *string    `json:"name"`
	Phone       *string    `json:"phone"`
	Designation *string    `json:"designation"`
	Address     *string    `json:"address"`
	JoinDate    *time.Time `json:"join_date"`
	Status      *string    `json:"status"`
}

// MemberDetail is a member with their derived ledger figures.
type MemberDetail struct {
	Member       *models.Member `json:"member"`
	TotalDeposit domain.Money   `json:"total_deposit"`
	DepositCount int            `json:"deposit_count"`
	ActiveLoans  int            `json:"active_loans"`
}

// ListMembers returns members, optionally filtered by a name/phone search and
// by status, sorted by name.
func (s *MemberService) ListMembers(ctx context.Context, search, status string) ([]models.Member, error) {
	members, err := s.memberRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	filtered := members[:0]
	needle := strings.ToLower(strings.TrimSpace(search))
	for _, m := range members {
		if status != "" && m.Status != status {
			continue
		}
		if needle != "" &&
			!strings.Contains(strings.ToLower(m.Name), needle) &&
			!strings.Contains(m.Phone, needle) {
			continue
		}
		filtered = append(filtered, m)
	}

	sort.Slice(filtered, func(i, j int) bool {
		return filtered[i].Name < filtered[j].Name
	})
	return filtered, nil
}

// ActiveMembers returns only members with active status.
func (s *MemberService) ActiveMembers(ctx context.Context) ([]models.Member, error) {
	return s.ListMembers(ctx, "", domain.MemberActive)
}

// GetMember returns one member with their lifetime deposit total.
func (s *MemberService) GetMember(ctx context.Context, id uint) (*MemberDetail, error) {
	member, err := s.memberRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrMemberNotFound
		}
		return nil, err
	}

	deposits, err := s.depositRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	loans, err := s.loanRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	detail := &MemberDetail{
		Member:       member,
		TotalDeposit: ledger.MemberTotalDeposit(member, deposits),
	}
	for _, d := range deposits {
		if d.MemberID == member.ID {
			detail.DepositCount++
		}
	}
	for _, l := range loans {
		if l.MemberID == member.ID && l.Status == domain.LoanActive {
			detail.ActiveLoans++
		}
	}
	return detail, nil
}

// CreateMember registers a new member.
func (s *MemberService) CreateMember(ctx context.Context, session *domain.Session, input *CreateMemberInput) (*models.Member, error) {
	if strings.TrimSpace(input.Name) == "" || strings.TrimSpace(input.Phone) == "" {
		return nil, domain.ErrInvalidInput
	}
	if input.OpeningBalance < 0 {
		return nil, domain.ErrInvalidInput
	}
	if input.Status == "" {
		input.Status = domain.MemberActive
	}
	if input.JoinDate.IsZero() {
		input.JoinDate = time.Now()
	}

	member := &models.Member{
		Name:           strings.TrimSpace(input.Name),
		Phone:          strings.TrimSpace(input.Phone),
		Designation:    strings.TrimSpace(input.Designation),
		OpeningBalance: input.OpeningBalance,
		Address:        input.Address,
		JoinDate:       input.JoinDate,
		Status:         input.Status,
	}

	if err := s.memberRepo.Create(ctx, member); err != nil {
		return nil, err
	}

	s.activities.Record(ctx, session, domain.ActionMemberAdd,
		fmt.Sprintf("নতুন সদস্য যোগ: %s", member.Name), nil, member)
	return member, nil
}

// UpdateMember edits a member's profile fields. Opening balance is immutable.
func (s *MemberService) UpdateMember(ctx context.Context, session *domain.Session, id uint, input *UpdateMemberInput) (*models.Member, error) {
	member, err := s.memberRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrMemberNotFound
		}
		return nil, err
	}

	before := *member

	if input.Name != nil {
		if strings.TrimSpace(*input.Name) == "" {
			return nil, domain.ErrInvalidInput
		}
		member.Name = strings.TrimSpace(*input.Name)
	}
	if input.Phone != nil {
		member.Phone = strings.TrimSpace(*input.Phone)
	}
	if input.Designation != nil {
		member.Designation = strings.TrimSpace(*input.Designation)
	}
	if input.Address != nil {
		member.Address = *input.Address
	}
	if input.JoinDate != nil {
		member.JoinDate = *input.JoinDate
	}
	if input.Status != nil {
		if *input.Status != domain.MemberActive && *input.Status != domain.MemberInactive {
			return nil, domain.ErrInvalidInput
		}
		member.Status = *input.Status
	}

	if err := s.memberRepo.Save(ctx, member); err != nil {
		return nil, err
	}

	s.activities.Record(ctx, session, domain.ActionMemberUpdate,
		fmt.Sprintf("সদস্য তথ্য হালনাগাদ: %s", member.Name), &before, member)
	return member, nil
}

// DeleteMember removes a member. A member with an active loan cannot be
// deleted; settle or default the loan first.
func (s *MemberService) DeleteMember(ctx context.Context, session *domain.Session, id uint) error {
	member, err := s.memberRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrMemberNotFound
		}
		return err
	}

	loans, err := s.loanRepo.List(ctx)
	if err != nil {
		return err
	}
	for _, l := range loans {
		if l.MemberID == id && l.Status == domain.LoanActive {
			return ErrMemberHasActiveLoan
		}
	}

	if err := s.memberRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.activities.Record(ctx, session, domain.ActionMemberDelete,
		fmt.Sprintf("সদস্য মুছে ফেলা: %s", member.Name), member, nil)
	return nil
}
