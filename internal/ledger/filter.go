package ledger

import (
	"sort"
	"strconv"
	"strings"
	"time"
)

// Filter holds the optional predicates applied to a fetched transaction
// list. A transaction passes only if every active predicate matches.
// Zero values mean "not set".
type Filter struct {
	Name          string
	Type          string // "Credit" or "Debit"
	Mode          string // "Online" or "Cash"
	Category      string
	Refurbishment string // "true" or "false"
	AmountMin     *float64
	AmountMax     *float64
	DateMin       *time.Time
	DateMax       *time.Time
}

// Match reports whether the transaction passes all active predicates.
func (f Filter) Match(tx Transaction) bool {
	if f.Name != "" && !strings.Contains(strings.ToLower(tx.Name), strings.ToLower(f.Name)) {
		return false
	}
	if f.Type != "" && tx.Type() != f.Type {
		return false
	}
	if f.Mode != "" && tx.Mode() != f.Mode {
		return false
	}
	if f.Category != "" && tx.Category != f.Category {
		return false
	}
	if f.Refurbishment != "" && strconv.FormatBool(tx.TransactionRefurbishmentStatus) != f.Refurbishment {
		return false
	}
	if f.AmountMin != nil && tx.TotalTransactionAmount < *f.AmountMin {
		return false
	}
	if f.AmountMax != nil && tx.TotalTransactionAmount > *f.AmountMax {
		return false
	}
	if f.DateMin != nil || f.DateMax != nil {
		ts := tx.Time()
		if f.DateMin != nil && ts.Before(*f.DateMin) {
			return false
		}
		if f.DateMax != nil && ts.After(*f.DateMax) {
			return false
		}
	}
	return true
}

// Apply returns the transactions passing the filter, preserving order.
func Apply(txs []Transaction, f Filter) []Transaction {
	out := make([]Transaction, 0, len(txs))
	for _, tx := range txs {
		if f.Match(tx) {
			out = append(out, tx)
		}
	}
	return out
}

// Sortable column keys.
const (
	SortByName          = "name"
	SortByMobile        = "mobileNumber"
	SortByAmount        = "totalTransactionAmount"
	SortByType          = "transactionType"
	SortByCategory      = "category"
	SortByDateTime      = "transactionDateTime"
	SortByRefurbishment = "transactionRefurbishmentStatus"
)

// SortConfig is a column key plus direction.
type SortConfig struct {
	Key        string
	Descending bool
}

// Toggle returns the sort configuration after a click on the given column:
// the active column flips direction, a new column starts ascending.
func (s SortConfig) Toggle(key string) SortConfig {
	if s.Key == key {
		return SortConfig{Key: key, Descending: !s.Descending}
	}
	return SortConfig{Key: key}
}

// less compares two transactions on the configured column in ascending
// order. Unknown keys leave the list untouched.
func (s SortConfig) less(a, b Transaction) bool {
	switch s.Key {
	case SortByName:
		return a.Name < b.Name
	case SortByMobile:
		return a.MobileNumber < b.MobileNumber
	case SortByAmount:
		return a.TotalTransactionAmount < b.TotalTransactionAmount
	case SortByType:
		return a.Type() < b.Type()
	case SortByCategory:
		return a.Category < b.Category
	case SortByDateTime:
		return a.Time().Before(b.Time())
	case SortByRefurbishment:
		return !a.TransactionRefurbishmentStatus && b.TransactionRefurbishmentStatus
	}
	return false
}

// Sort orders the transactions in place per the configuration. An empty
// key keeps the remote's order.
func Sort(txs []Transaction, cfg SortConfig) {
	if cfg.Key == "" {
		return
	}
	sort.SliceStable(txs, func(i, j int) bool {
		if cfg.Descending {
			return cfg.less(txs[j], txs[i])
		}
		return cfg.less(txs[i], txs[j])
	})
}

// Search applies the identity-dependent free-text search on top of the
// filtered list. The admin identity may match the name, the mobile number,
// or the category; any other identity matches the category only.
func Search(txs []Transaction, term string, admin bool) []Transaction {
	if term == "" {
		return txs
	}
	term = strings.ToLower(term)
	out := make([]Transaction, 0, len(txs))
	for _, tx := range txs {
		match := strings.Contains(strings.ToLower(tx.Category), term)
		if admin {
			match = match ||
				strings.Contains(strings.ToLower(tx.Name), term) ||
				strings.Contains(tx.MobileNumber, term)
		}
		if match {
			out = append(out, tx)
		}
	}
	return out
}
