package models

import (
	"time"

	"shopno-backend/internal/core/domain"

	"gorm.io/gorm"
)

// ============================================================
// Society Ledger Tables
// ============================================================

// Member represents members table
type Member struct {
	ID             uint         `gorm:"primaryKey" json:"id"`
	Name           string       `gorm:"size:100;not null" json:"name"`
	Phone          string       `gorm:"size:20;not null" json:"phone"`
	Designation    string       `gorm:"size:50;not null" json:"designation"`
	OpeningBalance domain.Money `gorm:"type:decimal(15,2);not null;default:0" json:"opening_balance"`
	Address        string       `gorm:"type:text" json:"address"`
	JoinDate       time.Time    `gorm:"type:date;not null" json:"join_date"`
	Status         string       `gorm:"size:20;default:'active'" json:"status"`
	CreatedAt      time.Time    `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time    `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Member) TableName() string {
	return "members"
}

// Deposit represents deposits table. The composite unique index backs the
// engine-level duplicate check: one deposit per member per month per year.
type Deposit struct {
	ID        uint         `gorm:"primaryKey" json:"id"`
	MemberID  uint         `gorm:"not null;index;uniqueIndex:idx_member_month_year" json:"member_id"`
	Amount    domain.Money `gorm:"type:decimal(15,2);not null" json:"amount"`
	Month     int          `gorm:"not null;uniqueIndex:idx_member_month_year" json:"month"`
	Year      int          `gorm:"not null;uniqueIndex:idx_member_month_year" json:"year"`
	Date      time.Time    `gorm:"type:date;not null" json:"date"`
	Note      string       `gorm:"type:text" json:"note"`
	CreatedAt time.Time    `gorm:"autoCreateTime" json:"created_at"`

	Member *Member `gorm:"foreignKey:MemberID" json:"member,omitempty"`
}

func (Deposit) TableName() string {
	return "deposits"
}

// Loan represents loans table. MonthlyPayment and EndDate are derived at
// create/update time and stored, never recomputed on read.
type Loan struct {
	ID             uint         `gorm:"primaryKey" json:"id"`
	MemberID       uint         `gorm:"not null;index" json:"member_id"`
	Amount         domain.Money `gorm:"type:decimal(15,2);not null" json:"amount"`
	InterestRate   float64      `gorm:"type:decimal(5,2);not null;default:0" json:"interest_rate"`
	TermMonths     int          `gorm:"not null;default:12" json:"term_months"`
	MonthlyPayment domain.Money `gorm:"type:decimal(15,2);not null" json:"monthly_payment"`
	StartDate      time.Time    `gorm:"type:date;not null" json:"start_date"`
	EndDate        time.Time    `gorm:"type:date;not null" json:"end_date"`
	Status         string       `gorm:"size:20;default:'active'" json:"status"`
	Purpose        string       `gorm:"type:text" json:"purpose"`
	Guarantor      string       `gorm:"size:100" json:"guarantor"`
	CreatedAt      time.Time    `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time    `gorm:"autoUpdateTime" json:"updated_at"`

	Member *Member `gorm:"foreignKey:MemberID" json:"member,omitempty"`
}

func (Loan) TableName() string {
	return "loans"
}

// LoanPayment represents loan_payments table
type LoanPayment struct {
	ID          uint         `gorm:"primaryKey" json:"id"`
	LoanID      uint         `gorm:"not null;index" json:"loan_id"`
	Amount      domain.Money `gorm:"type:decimal(15,2);not null" json:"amount"`
	PaymentDate time.Time    `gorm:"type:date;not null" json:"payment_date"`
	Notes       string       `gorm:"type:text" json:"notes"`
	CreatedAt   time.Time    `gorm:"autoCreateTime" json:"created_at"`

	Loan *Loan `gorm:"foreignKey:LoanID" json:"loan,omitempty"`
}

func (LoanPayment) TableName() string {
	return "loan_payments"
}

// Investment represents investments table
type Investment struct {
	ID          uint         `gorm:"primaryKey" json:"id"`
	Title       string       `gorm:"size:200;not null" json:"title"`
	Type        string       `gorm:"size:50" json:"type"`
	Amount      domain.Money `gorm:"type:decimal(15,2);not null" json:"amount"`
	Date        time.Time    `gorm:"type:date;not null" json:"date"`
	Description string       `gorm:"type:text" json:"description"`
	Status      string       `gorm:"size:20;default:'active'" json:"status"`
	CreatedAt   time.Time    `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time    `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Investment) TableName() string {
	return "investments"
}

// InvestmentReturn represents investment_returns table.
// Amount is signed: positive is profit, negative is loss.
type InvestmentReturn struct {
	ID           uint         `gorm:"primaryKey" json:"id"`
	InvestmentID uint         `gorm:"not null;index" json:"investment_id"`
	Amount       domain.Money `gorm:"type:decimal(15,2);not null" json:"amount"`
	Date         time.Time    `gorm:"type:date;not null" json:"date"`
	Notes        string       `gorm:"type:text" json:"notes"`
	CreatedAt    time.Time    `gorm:"autoCreateTime" json:"created_at"`

	Investment *Investment `gorm:"foreignKey:InvestmentID" json:"investment,omitempty"`
}

func (InvestmentReturn) TableName() string {
	return "investment_returns"
}

// Donation represents donations table
type Donation struct {
	ID          uint         `gorm:"primaryKey" json:"id"`
	Recipient   string       `gorm:"size:100;not null" json:"recipient"`
	Purpose     string       `gorm:"size:200;not null" json:"purpose"`
	Amount      domain.Money `gorm:"type:decimal(15,2);not null" json:"amount"`
	Date        time.Time    `gorm:"type:date;not null" json:"date"`
	Description string       `gorm:"type:text" json:"description"`
	Contact     string       `gorm:"size:50" json:"contact"`
	CreatedAt   time.Time    `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time    `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Donation) TableName() string {
	return "donations"
}

// Income represents income table
type Income struct {
	ID          uint         `gorm:"primaryKey" json:"id"`
	Title       string       `gorm:"size:200;not null" json:"title"`
	Category    string       `gorm:"size:50" json:"category"`
	Amount      domain.Money `gorm:"type:decimal(15,2);not null" json:"amount"`
	Date        time.Time    `gorm:"type:date;not null" json:"date"`
	Description string       `gorm:"type:text" json:"description"`
	CreatedAt   time.Time    `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time    `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Income) TableName() string {
	return "income"
}

// Expense represents expenses table
type Expense struct {
	ID          uint         `gorm:"primaryKey" json:"id"`
	Title       string       `gorm:"size:200;not null" json:"title"`
	Category    string       `gorm:"size:50" json:"category"`
	Amount      domain.Money `gorm:"type:decimal(15,2);not null" json:"amount"`
	Date        time.Time    `gorm:"type:date;not null" json:"date"`
	Description string       `gorm:"type:text" json:"description"`
	CreatedAt   time.Time    `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time    `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Expense) TableName() string {
	return "expenses"
}

// ============================================================
// Audit & Auth Tables
// ============================================================

// Activity represents activities table. Rows are append-only: no update or
// delete path exists anywhere in the codebase.
type Activity struct {
	ID        uint              `gorm:"primaryKey" json:"id"`
	UserID    *uint             `gorm:"index" json:"user_id"`
	Type      domain.ActionType `gorm:"size:50;not null" json:"type"`
	Action    string            `gorm:"type:text;not null" json:"action"`
	OldValues *string           `gorm:"type:text" json:"old_values"`
	NewValues *string           `gorm:"type:text" json:"new_values"`
	CreatedAt time.Time         `gorm:"autoCreateTime;index" json:"created_at"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (Activity) TableName() string {
	return "activities"
}

// ActivityResponse DTO with the diff already rendered.
type ActivityResponse struct {
	ID        uint                 `json:"id"`
	UserID    *uint                `json:"user_id"`
	UserName  string               `json:"user_name"`
	Type      domain.ActionType    `json:"type"`
	Icon      string               `json:"icon"`
	Action    string               `json:"action"`
	Changes   []domain.FieldChange `json:"changes,omitempty"`
	CreatedAt time.Time            `json:"created_at"`
}

// User represents users table
type User struct {
	ID          uint                 `gorm:"primaryKey" json:"id"`
	Name        string               `gorm:"size:100;not null" json:"name"`
	Username    string               `gorm:"uniqueIndex;size:50;not null" json:"username"`
	Password    string               `gorm:"size:255;not null" json:"-"`
	Role        string               `gorm:"size:20;default:'user'" json:"role"`
	Permissions domain.PermissionSet `gorm:"type:text" json:"permissions"`
	CreatedAt   time.Time            `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time            `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt       `gorm:"index" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// UserResponse DTO
type UserResponse struct {
	ID          uint                 `json:"id"`
	Name        string               `json:"name"`
	Username    string               `json:"username"`
	Role        string               `json:"role"`
	Permissions domain.PermissionSet `json:"permissions"`
	CreatedAt   time.Time            `json:"created_at"`
}

func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:          u.ID,
		Name:        u.Name,
		Username:    u.Username,
		Role:        u.Role,
		Permissions: u.Permissions,
		CreatedAt:   u.CreatedAt,
	}
}

// ToSession builds the password-free session projection.
func (u *User) ToSession() *domain.Session {
	return &domain.Session{
		UserID:      u.ID,
		Name:        u.Name,
		Username:    u.Username,
		Role:        domain.Role(u.Role),
		Permissions: u.Permissions,
	}
}

// RefreshToken represents refresh_tokens table
type RefreshToken struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"index;not null" json:"user_id"`
	TokenHash string     `gorm:"size:255;not null;index" json:"-"`
	ExpiresAt time.Time  `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	RevokedAt *time.Time `gorm:"index" json:"revoked_at"`
	User      User       `gorm:"foreignKey:UserID" json:"-"`
}

func (RefreshToken) TableName() string {
	return "refresh_tokens"
}

func (rt *RefreshToken) IsRevoked() bool {
	return rt.RevokedAt != nil
}

func (rt *RefreshToken) IsExpired() bool {
	return time.Now().After(rt.ExpiresAt)
}

// ============================================================
// Auto Migration
// ============================================================

// AutoMigrate runs auto migration for all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Member{},
		&Deposit{},
		&Loan{},
		&LoanPayment{},
		&Investment{},
		&InvestmentReturn{},
		&Donation{},
		&Income{},
		&Expense{},
		&Activity{},
		&User{},
		&RefreshToken{},
	)
}
