package domain

// ActionType is the closed set of activity kinds. Adding a kind means adding
// it here and to the label/icon tables below, so an unmapped kind is caught
// in review instead of silently rendering a fallback icon.
type ActionType string

const (
	ActionMemberAdd    ActionType = "member_add"
	ActionMemberUpdate ActionType = "member_update"
	ActionMemberDelete ActionType = "member_delete"

	ActionDepositAdd    ActionType = "deposit_add"
	ActionDepositDelete ActionType = "deposit_delete"

	ActionLoanAdd     ActionType = "loan_add"
	ActionLoanUpdate  ActionType = "loan_update"
	ActionLoanDelete  ActionType = "loan_delete"
	ActionLoanPayment ActionType = "loan_payment"

	ActionInvestmentAdd    ActionType = "investment_add"
	ActionInvestmentUpdate ActionType = "investment_update"
	ActionInvestmentDelete ActionType = "investment_delete"
	ActionReturnAdd        ActionType = "return_add"
	ActionReturnDelete     ActionType = "return_delete"

	ActionDonationAdd    ActionType = "donation_add"
	ActionDonationUpdate ActionType = "donation_update"
	ActionDonationDelete ActionType = "donation_delete"

	ActionIncomeAdd    ActionType = "income_add"
	ActionIncomeUpdate ActionType = "income_update"
	ActionIncomeDelete ActionType = "income_delete"

	ActionExpenseAdd    ActionType = "expense_add"
	ActionExpenseUpdate ActionType = "expense_update"
	ActionExpenseDelete ActionType = "expense_delete"

	ActionUserAdd    ActionType = "user_add"
	ActionUserUpdate ActionType = "user_update"
	ActionUserDelete ActionType = "user_delete"

	ActionLogin  ActionType = "login"
	ActionLogout ActionType = "logout"
)

// sessionNoise are the kinds excluded from the dashboard's recent view.
var sessionNoise = map[ActionType]struct{}{
	ActionLogin:  {},
	ActionLogout: {},
}

// IsSessionNoise reports whether the kind is login/logout churn.
func (t ActionType) IsSessionNoise() bool {
	_, ok := sessionNoise[t]
	return ok
}

// actionIcons maps every kind to its display icon.
var actionIcons = map[ActionType]string{
	ActionMemberAdd:        "👤",
	ActionMemberUpdate:     "👤",
	ActionMemberDelete:     "❌",
	ActionDepositAdd:       "💰",
	ActionDepositDelete:    "💰",
	ActionLoanAdd:          "🏦",
	ActionLoanUpdate:       "🏦",
	ActionLoanDelete:       "🏦",
	ActionLoanPayment:      "💳",
	ActionInvestmentAdd:    "📈",
	ActionInvestmentUpdate: "📈",
	ActionInvestmentDelete: "📉",
	ActionReturnAdd:        "💹",
	ActionReturnDelete:     "💹",
	ActionDonationAdd:      "🤝",
	ActionDonationUpdate:   "🤝",
	ActionDonationDelete:   "🤝",
	ActionIncomeAdd:        "🪙",
	ActionIncomeUpdate:     "🪙",
	ActionIncomeDelete:     "🪙",
	ActionExpenseAdd:       "💸",
	ActionExpenseUpdate:    "💸",
	ActionExpenseDelete:    "💸",
	ActionUserAdd:          "🔑",
	ActionUserUpdate:       "🔑",
	ActionUserDelete:       "🔑",
	ActionLogin:            "🔓",
	ActionLogout:           "🔒",
}

// Icon returns the display icon for the kind, 📌 for unknown data from old rows.
func (t ActionType) Icon() string {
	if icon, ok := actionIcons[t]; ok {
		return icon
	}
	return "📌"
}

// FieldLabels translates snake_case record fields to Bengali column headers
// for the activity diff view. Purely presentational; the diff itself compares
// raw keys.
var FieldLabels = map[string]string{
	"name":            "নাম",
	"phone":           "ফোন",
	"designation":     "পদবি",
	"address":         "ঠিকানা",
	"join_date":       "যোগদানের তারিখ",
	"opening_balance": "ওপেনিং ব্যালান্স",
	"status":          "স্ট্যাটাস",
	"amount":          "পরিমাণ",
	"month":           "মাস",
	"year":            "বছর",
	"date":            "তারিখ",
	"note":            "মন্তব্য",
	"notes":           "মন্তব্য",
	"interest_rate":   "বিলম্ব ফি",
	"term_months":     "মেয়াদ",
	"monthly_payment": "মাসিক কিস্তি",
	"start_date":      "শুরুর তারিখ",
	"end_date":        "শেষ তারিখ",
	"purpose":         "উদ্দেশ্য",
	"guarantor":       "জামিনদার",
	"payment_date":    "পরিশোধের তারিখ",
	"title":           "শিরোনাম",
	"type":            "ধরন",
	"category":        "ক্যাটাগরি",
	"description":     "বিবরণ",
	"recipient":       "গ্রহীতা",
	"contact":         "যোগাযোগ",
	"username":        "ইউজারনেম",
	"role":            "রোল",
	"permissions":     "পারমিশন",
}

// FieldLabel returns the Bengali label for a field, falling back to the key.
func FieldLabel(key string) string {
	if label, ok := FieldLabels[key]; ok {
		return label
	}
	return key
}
