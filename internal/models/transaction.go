package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is one parsed input record. Negative amounts are outflows.
type Transaction struct {
	Date        time.Time
	Description Description
	Amount      decimal.Decimal
}

// NewTransaction builds a Transaction from a text description.
func NewTransaction(date time.Time, description string, amount decimal.Decimal) Transaction {
	return Transaction{
		Date:        date,
		Description: TextDescription(description),
		Amount:      amount,
	}
}

// IsExpense reports whether the record is an outflow.
func (t Transaction) IsExpense() bool {
	return t.Amount.IsNegative()
}

// IsIncome reports whether the record is an inflow.
func (t Transaction) IsIncome() bool {
	return t.Amount.IsPositive()
}

// WithCategory returns the categorized form of t.
func (t Transaction) WithCategory(category Category) CategorizedTransaction {
	return CategorizedTransaction{Transaction: t, Category: category}
}

// CategorizedTransaction is a Transaction with its assigned category.
type CategorizedTransaction struct {
	Transaction
	Category Category
}
