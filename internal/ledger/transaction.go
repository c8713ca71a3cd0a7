// Package ledger holds the portal-side transaction domain: the read model
// returned by the remote ledger API, the fixed category sets that decide
// transaction direction, and the filter/sort/search pipeline applied to
// fetched transactions before rendering.
package ledger

import (
	"time"
)

// WireTimeFormat is the timestamp layout the remote ledger API expects on
// transaction submission: DD-MM-YYYY HH:mm, 24-hour clock.
const WireTimeFormat = "02-01-2006 15:04"

// DebitCategories lists every category that books as an expense.
var DebitCategories = []string{
	"Grocery", "Vegetable", "Gas", "Petrol", "Electricity", "Maintainance",
	"Center Rent", "Bace Rent", "Cook Devotee Salary", "Cook Helper Salary",
	"Toto Maintainer Salary", "Camp", "Preaching", "Water Bill", "Dairy Product",
	"Deity", "Fruits", "Packaging Items", "Journey Prasad", "Others",
	"Refurbishment to Devotee", "Toto Purchased Items",
}

// CreditCategories lists every category that books as income.
var CreditCategories = []string{
	"Bace Devotee Rent", "Toto Outcome", "Donation", "Maintainance Item sold",
	"Prasadam Laxmi(Monthly)", "Prasadam Laxmi(Daily)", "HG SJP Paid",
	"Loan By Devotee",
}

var creditSet = func() map[string]bool {
	m := make(map[string]bool, len(CreditCategories))
	for _, c := range CreditCategories {
		m[c] = true
	}
	return m
}()

// IsCreditCategory reports whether the category belongs to the fixed credit
// set. Membership deterministically forces isIncome at write time; every
// other category books as a debit.
func IsCreditCategory(category string) bool {
	return creditSet[category]
}

// NormalizeDirection derives the income flag from the category and applies
// the refurbishment rule: refurbishment is a debit-only flag, so it is
// reset to false whenever the transaction books as income.
func NormalizeDirection(category string, refurbishment bool) (isIncome, refurb bool) {
	isIncome = IsCreditCategory(category)
	if isIncome {
		return true, false
	}
	return false, refurb
}

// Transaction is the read model returned by the remote ledger API.
type Transaction struct {
	TransactionID                  string  `json:"transactionId"`
	Name                           string  `json:"name"`
	MobileNumber                   string  `json:"mobileNumber"`
	Category                       string  `json:"category"`
	IsIncome                       bool    `json:"isIncome"`
	IsOnline                       bool    `json:"isOnline"`
	TotalTransactionAmount         float64 `json:"totalTransactionAmount"`
	TransactionDateTime            string  `json:"transactionDateTime"`
	TransactionRefurbishmentStatus bool    `json:"transactionRefurbishmentStatus"`
	Remarks                        string  `json:"remarks"`
	Base64Attachment               string  `json:"base64Attachment"`
}

// Type returns the display label for the transaction direction.
func (t Transaction) Type() string {
	if t.IsIncome {
		return "Credit"
	}
	return "Debit"
}

// Mode returns the display label for the transaction medium.
func (t Transaction) Mode() string {
	if t.IsOnline {
		return "Online"
	}
	return "Cash"
}

// HasAttachment reports whether the transaction carries an encoded image.
func (t Transaction) HasAttachment() bool {
	return t.Base64Attachment != ""
}

// timeLayouts are tried in order when parsing a timestamp from the remote
// API. The remote's format is not under this repository's control.
var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	WireTimeFormat,
	"2006-01-02",
}

// ParseTime parses a transaction timestamp flexibly.
func ParseTime(value string) (time.Time, bool) {
	for _, layout := range timeLayouts {
		if ts, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

// Time returns the parsed transaction timestamp, or the zero time if the
// remote sent something unparseable.
func (t Transaction) Time() time.Time {
	ts, _ := ParseTime(t.TransactionDateTime)
	return ts
}

// DisplayTime renders the timestamp for the transaction table, falling
// back to the raw wire value when it cannot be parsed.
func (t Transaction) DisplayTime() string {
	ts, ok := ParseTime(t.TransactionDateTime)
	if !ok {
		return t.TransactionDateTime
	}
	return ts.Format("02 Jan 2006, 15:04")
}

// FormatWireTime renders a timestamp in the submission wire format.
func FormatWireTime(ts time.Time) string {
	return ts.Format(WireTimeFormat)
}
