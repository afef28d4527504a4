package core

import (
	"errors"
	"strings"
	"time"
)

const (
	Income  TransactionType = "income"
	Expense TransactionType = "expense"
)

// DateLayout is the calendar-date format used everywhere a transaction
// date appears: storage, export files and the remote document.
const DateLayout = "2006-01-02"

type (
	TransactionType string

	// Transaction is one recorded income or expense event. The JSON field
	// names are the storage, export and remote wire format, so they are
	// frozen; IsSplitwise is absent on records created before the shared
	// flag existed and decodes to false.
	Transaction struct {
		ID          int64           `json:"id"`
		Type        TransactionType `json:"type"`
		Description string          `json:"description"`
		Category    string          `json:"category"`
		Amount      float64         `json:"amount"`
		Date        string          `json:"date"`
		IsSplitwise bool            `json:"isSplitwise"`
	}

	// SyncConfig holds the remote mirror credentials. Both fields are set
	// together for an active connection, or both empty.
	SyncConfig struct {
		Credential string `json:"credential"`
		DocumentID string `json:"documentId"`
	}

	Theme string
)

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

var (
	ErrInvalidType      = errors.New("invalid transaction type")
	ErrEmptyDescription = errors.New("empty description")
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrInvalidDate      = errors.New("invalid date")
	ErrUnknownCategory  = errors.New("unknown category")
	ErrInvalidTheme     = errors.New("invalid theme")
)

// IncomeCategories and ExpenseCategories are the fixed label sets offered
// at creation time. Membership is checked only when a transaction is
// created; a record edited later may carry a category inconsistent with
// its type and that is accepted, not repaired.
var (
	IncomeCategories = []string{
		"💼 Salary",
		"💰 Freelance",
		"📈 Investment",
		"🎁 Gift",
		"🏦 Interest",
		"💵 Other Income",
	}

	ExpenseCategories = []string{
		"🍔 Food & Dining",
		"🚗 Transportation",
		"🏠 Housing",
		"🛒 Shopping",
		"🎬 Entertainment",
		"💊 Healthcare",
		"📚 Education",
		"✈️ Travel",
		"💡 Utilities",
		"💳 Other Expense",
	}
)

// CategoriesFor returns the category set for the given type, or nil for
// an unknown type.
func CategoriesFor(t TransactionType) []string {
	switch t {
	case Income:
		return IncomeCategories
	case Expense:
		return ExpenseCategories
	default:
		return nil
	}
}

func (t TransactionType) Validate() error {
	switch t {
	case Income, Expense:
		return nil
	default:
		return ErrInvalidType
	}
}

// Validate checks a transaction at creation time.
func (t Transaction) Validate() error {
	if err := t.Type.Validate(); err != nil {
		return err
	}
	if len(strings.TrimSpace(t.Description)) == 0 {
		return ErrEmptyDescription
	}
	if len(t.Description) > 200 {
		return errors.New("description too long (max 200 characters)")
	}
	if t.Amount <= 0 {
		return ErrInvalidAmount
	}
	if _, err := time.Parse(DateLayout, t.Date); err != nil {
		return ErrInvalidDate
	}
	found := false
	for _, c := range CategoriesFor(t.Type) {
		if c == t.Category {
			found = true
			break
		}
	}
	if !found {
		return ErrUnknownCategory
	}
	return nil
}

// Day returns the transaction's calendar date at midnight local time.
// The zero time is returned for a malformed date.
func (t Transaction) Day() time.Time {
	d, err := time.ParseInLocation(DateLayout, t.Date, time.Local)
	if err != nil {
		return time.Time{}
	}
	return d
}

// Enabled reports whether both halves of the sync credentials are set.
func (c SyncConfig) Enabled() bool {
	return c.Credential != "" && c.DocumentID != ""
}

func ParseTheme(s string) (Theme, error) {
	switch Theme(s) {
	case ThemeLight, ThemeDark:
		return Theme(s), nil
	default:
		return "", ErrInvalidTheme
	}
}
