package domain

import (
	"errors"
	"strings"
	"time"
)

// AccountType is the top-level classification in the chart of accounts.
type AccountType string

const (
	AccountAsset     AccountType = "Asset"
	AccountLiability AccountType = "Liability"
	AccountIncome    AccountType = "Income"
	AccountExpense   AccountType = "Expense"
	AccountEquity    AccountType = "Equity"
)

var accountTypes = []AccountType{AccountAsset, AccountLiability, AccountIncome, AccountExpense, AccountEquity}

var ErrAccountNotFound = errors.New("account not found")

// ParseAccountType resolves s case-insensitively to a known account type.
func ParseAccountType(s string) (AccountType, bool) {
	for _, t := range accountTypes {
		if strings.EqualFold(string(t), strings.TrimSpace(s)) {
			return t, true
		}
	}
	return "", false
}

// Account is a ledger account in the chart of accounts.
type Account struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	Type      AccountType `json:"type"`
	CreatedAt time.Time   `json:"created_at"`
}
