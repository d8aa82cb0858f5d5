package treasury

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/treasury/backend/internal/domain/shared"
	"github.com/treasury/backend/internal/domain/shared/valueobject"
)

// BankAccount represents a bank account tracked by the treasury
// configuration. The cash-position engine reads balances from it but
// never mutates them; balance updates flow in from bank statement
// imports upstream.
type BankAccount struct {
	shared.TenantAggregateRoot
	AccountNumber  string               `json:"account_number"`
	Name           string               `json:"name"`
	Currency       valueobject.Currency `json:"currency"`
	CurrentBalance decimal.Decimal      `json:"current_balance"`
	Active         bool                 `json:"active"`
}

// NewBankAccount creates a new bank account
func NewBankAccount(
	tenantID uuid.UUID,
	accountNumber string,
	name string,
	currency valueobject.Currency,
	currentBalance decimal.Decimal,
) (*BankAccount, error) {
	if accountNumber == "" {
		return nil, shared.NewDomainError("INVALID_ACCOUNT_NUMBER", "Account number cannot be empty")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_ACCOUNT_NAME", "Account name cannot be empty")
	}
	if !currency.IsValid() {
		return nil, shared.NewDomainError("INVALID_CURRENCY", "Account currency is not valid")
	}

	return &BankAccount{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		AccountNumber:       accountNumber,
		Name:                name,
		Currency:            currency,
		CurrentBalance:      currentBalance,
		Active:              true,
	}, nil
}

// BalanceMoney returns the current balance as Money
func (a *BankAccount) BalanceMoney() valueobject.Money {
	return valueobject.MustMoney(a.CurrentBalance, a.Currency)
}

// LiquiditySnapshot is the consolidated cash position at a point in time.
// It is a pure projection of current account balances and is never
// persisted.
type LiquiditySnapshot struct {
	Accounts          []BankAccount        `json:"accounts"`
	ReportingCurrency valueobject.Currency `json:"reporting_currency"`
	TotalBalance      decimal.Decimal      `json:"total_balance"`
}

// ConsolidateBalances sums the balances of all active accounts into the
// reporting currency. Inactive accounts are excluded entirely. Accounts
// held in other currencies are converted with the supplied rate lookup;
// a lookup failure fails the whole snapshot rather than producing a
// partial figure.
func ConsolidateBalances(
	accounts []BankAccount,
	reporting valueobject.Currency,
	rateFor func(from, to valueobject.Currency) (decimal.Decimal, error),
) (*LiquiditySnapshot, error) {
	if !reporting.IsValid() {
		return nil, shared.NewDomainError("INVALID_CURRENCY", "Reporting currency is not valid")
	}

	total := decimal.Zero
	active := make([]BankAccount, 0, len(accounts))
	for _, acct := range accounts {
		if !acct.Active {
			continue
		}
		amount := acct.CurrentBalance
		if acct.Currency != reporting {
			rate, err := rateFor(acct.Currency, reporting)
			if err != nil {
				return nil, err
			}
			converted, err := acct.BalanceMoney().Convert(reporting, rate)
			if err != nil {
				return nil, shared.NewDomainError("INVALID_RATE", err.Error())
			}
			amount = converted.Amount()
		}
		total = total.Add(amount)
		active = append(active, acct)
	}

	return &LiquiditySnapshot{
		Accounts:          active,
		ReportingCurrency: reporting,
		TotalBalance:      total,
	}, nil
}
