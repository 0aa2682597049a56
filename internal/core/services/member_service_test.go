package services

import (
	"context"
	"testing"

	"shopno-backend/internal/adapters/persistence/models"
	"shopno-backend/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMemberService() (*MemberService, *fakeCollection[models.Member], *fakeCollection[models.Loan], *fakeCollection[models.Deposit]) {
	memberRepo := newFakeCollection[models.Member]()
	depositRepo := newFakeCollection[models.Deposit]()
	loanRepo := newFakeCollection[models.Loan]()
	activities, _ := newTestActivityService()
	return NewMemberService(memberRepo, depositRepo, loanRepo, activities), memberRepo, loanRepo, depositRepo
}

func TestCreateMember(t *testing.T) {
	ctx := context.Background()
	svc, _, _, _ := newTestMemberService()

	member, err := svc.CreateMember(ctx, testSession(), &CreateMemberInput{
		Name:           "  করিম উদ্দিন  ",
		Phone:          "01711111111",
		Designation:    "সভাপতি",
		OpeningBalance: 5000,
	})

	require.NoError(t, err)
	assert.Equal(t, "করিম উদ্দিন", member.Name)
	assert.Equal(t, domain.MemberActive, member.Status)
	assert.False(t, member.JoinDate.IsZero())

	_, err = svc.CreateMember(ctx, testSession(), &CreateMemberInput{Name: "", Phone: "017"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.CreateMember(ctx, testSession(), &CreateMemberInput{Name: "x", Phone: ""})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.CreateMember(ctx, testSession(), &CreateMemberInput{Name: "x", Phone: "017", OpeningBalance: -1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestListMembersSearchAndStatus(t *testing.T) {
	ctx := context.Background()
	svc, memberRepo, _, _ := newTestMemberService()

	seed := []models.Member{
		{Name: "করিম", Phone: "01711111111", Status: domain.MemberActive},
		{Name: "রহিম", Phone: "01822222222", Status: domain.MemberActive},
		{Name: "জামাল", Phone: "01933333333", Status: domain.MemberInactive},
	}
	for i := range seed {
		require.NoError(t, memberRepo.Create(ctx, &seed[i]))
	}

	all, err := svc.ListMembers(ctx, "", "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	active, err := svc.ListMembers(ctx, "", domain.MemberActive)
	require.NoError(t, err)
	assert.Len(t, active, 2)

	byName, err := svc.ListMembers(ctx, "করিম", "")
	require.NoError(t, err)
	require.Len(t, byName, 1)
	assert.Equal(t, "করিম", byName[0].Name)

	byPhone, err := svc.ListMembers(ctx, "0182", "")
	require.NoError(t, err)
	require.Len(t, byPhone, 1)
	assert.Equal(t, "রহিম", byPhone[0].Name)
}

func TestGetMemberDetail(t *testing.T) {
	ctx := context.Background()
	svc, memberRepo, loanRepo, depositRepo := newTestMemberService()

	m := models.Member{Name: "করিম", Phone: "017", OpeningBalance: 5000, Status: domain.MemberActive}
	require.NoError(t, memberRepo.Create(ctx, &m))

	require.NoError(t, depositRepo.Create(ctx, &models.Deposit{MemberID: m.ID, Amount: 3000, Month: 1, Year: 2026}))
	require.NoError(t, depositRepo.Create(ctx, &models.Deposit{MemberID: m.ID, Amount: 3000, Month: 2, Year: 2026}))
	require.NoError(t, loanRepo.Create(ctx, &models.Loan{MemberID: m.ID, Amount: 10000, Status: domain.LoanActive}))
	require.NoError(t, loanRepo.Create(ctx, &models.Loan{MemberID: m.ID, Amount: 5000, Status: domain.LoanCompleted}))

	detail, err := svc.GetMember(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.Money(11000), detail.TotalDeposit)
	assert.Equal(t, 2, detail.DepositCount)
	assert.Equal(t, 1, detail.ActiveLoans)

	_, err = svc.GetMember(ctx, 999)
	assert.ErrorIs(t, err, domain.ErrMemberNotFound)
}

func TestUpdateMemberKeepsOpeningBalance(t *testing.T) {
	ctx := context.Background()
	svc, memberRepo, _, _ := newTestMemberService()

	m := models.Member{Name: "করিম", Phone: "017", OpeningBalance: 5000, Status: domain.MemberActive}
	require.NoError(t, memberRepo.Create(ctx, &m))

	name := "করিম উদ্দিন"
	status := domain.MemberInactive
	updated, err := svc.UpdateMember(ctx, testSession(), m.ID, &UpdateMemberInput{Name: &name, Status: &status})
	require.NoError(t, err)
	assert.Equal(t, "করিম উদ্দিন", updated.Name)
	assert.Equal(t, domain.MemberInactive, updated.Status)
	assert.Equal(t, domain.Money(5000), updated.OpeningBalance)

	bad := "suspended"
	_, err = svc.UpdateMember(ctx, testSession(), m.ID, &UpdateMemberInput{Status: &bad})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDeleteMemberRefusesActiveLoan(t *testing.T) {
	ctx := context.Background()
	svc, memberRepo, loanRepo, _ := newTestMemberService()

	m := models.Member{Name: "করিম", Phone: "017", Status: domain.MemberActive}
	require.NoError(t, memberRepo.Create(ctx, &m))
	loan := models.Loan{MemberID: m.ID, Amount: 10000, Status: domain.LoanActive}
	require.NoError(t, loanRepo.Create(ctx, &loan))

	assert.ErrorIs(t, svc.DeleteMember(ctx, testSession(), m.ID), ErrMemberHasActiveLoan)

	// once the loan settles the member can go
	loan.Status = domain.LoanCompleted
	require.NoError(t, loanRepo.Save(ctx, &loan))
	require.NoError(t, svc.DeleteMember(ctx, testSession(), m.ID))
}
