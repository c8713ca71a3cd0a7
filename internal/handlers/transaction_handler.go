package handlers

import (
	"encoding/base64"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "github.com/dasHimanshuSekhar/account-ui/internal/errors"
	"github.com/dasHimanshuSekhar/account-ui/internal/ledger"
	"github.com/dasHimanshuSekhar/account-ui/internal/ledgerapi"
	"github.com/dasHimanshuSekhar/account-ui/internal/middleware"
)

// dateInputFormat is the layout of the HTML date filter inputs.
const dateInputFormat = "2006-01-02"

// dateTimeInputFormat is the layout of the HTML datetime-local input.
const dateTimeInputFormat = "2006-01-02T15:04"

// TransactionHandler renders the transaction list and the add-transaction
// form, both backed by the remote ledger API.
type TransactionHandler struct {
	api LedgerClient
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(api LedgerClient) *TransactionHandler {
	return &TransactionHandler{api: api}
}

// ListQuery holds the filter, sort, and search parameters of the list view.
type ListQuery struct {
	Name          string   `form:"name"`
	Type          string   `form:"type" binding:"omitempty,oneof=Credit Debit"`
	Mode          string   `form:"mode" binding:"omitempty,oneof=Online Cash"`
	Category      string   `form:"category"`
	Refurbishment string   `form:"refurbishmentStatus" binding:"omitempty,oneof=true false"`
	AmountMin     *float64 `form:"amountMin"`
	AmountMax     *float64 `form:"amountMax"`
	DateMin       string   `form:"dateMin"`
	DateMax       string   `form:"dateMax"`
	Search        string   `form:"q"`
	Sort          string   `form:"sort"`
	Dir           string   `form:"dir" binding:"omitempty,oneof=asc desc"`
}

// filter converts the bound query into domain predicates.
func (q ListQuery) filter() ledger.Filter {
	f := ledger.Filter{
		Name:          q.Name,
		Type:          q.Type,
		Mode:          q.Mode,
		Category:      q.Category,
		Refurbishment: q.Refurbishment,
		AmountMin:     q.AmountMin,
		AmountMax:     q.AmountMax,
	}
	if ts, err := time.ParseInLocation(dateInputFormat, q.DateMin, time.Local); err == nil {
		f.DateMin = &ts
	}
	if ts, err := time.ParseInLocation(dateInputFormat, q.DateMax, time.Local); err == nil {
		f.DateMax = &ts
	}
	return f
}

// sortConfig converts the bound query into a sort configuration.
func (q ListQuery) sortConfig() ledger.SortConfig {
	return ledger.SortConfig{Key: q.Sort, Descending: q.Dir == "desc"}
}

// List fetches the transactions visible to the session, runs them through
// the sort/filter/search pipeline, and renders the table. A fetch failure
// renders an empty list with a dismissible notice.
func (h *TransactionHandler) List(c *gin.Context) {
	mobile, err := middleware.MobileNumber(c)
	if err != nil {
		redirectToLogin(c)
		return
	}
	admin := middleware.IsAdmin(c)

	var query ListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		query = ListQuery{}
	}

	data := gin.H{
		"Query":     query,
		"IsAdmin":   admin,
		"SortLinks": sortLinks(c, query.sortConfig()),
	}

	scope := mobile
	if admin {
		scope = ""
	}
	transactions, err := h.api.FetchTransactions(c.Request.Context(), mobile, scope)
	if err != nil {
		data = errorBanner(c, err, data)
		data["Transactions"] = []ledger.Transaction{}
		data["Dismissible"] = true
		render(c, http.StatusOK, "transactions.html", data)
		return
	}

	data["Categories"] = categoryOptions(transactions)

	ledger.Sort(transactions, query.sortConfig())
	transactions = ledger.Apply(transactions, query.filter())
	transactions = ledger.Search(transactions, query.Search, admin)

	data["Transactions"] = transactions
	render(c, http.StatusOK, "transactions.html", data)
}

// categoryOptions returns the distinct categories present in the list,
// preserving first-seen order, for the filter dropdown.
func categoryOptions(txs []ledger.Transaction) []string {
	seen := make(map[string]bool, len(txs))
	out := make([]string, 0, len(txs))
	for _, tx := range txs {
		if tx.Category != "" && !seen[tx.Category] {
			seen[tx.Category] = true
			out = append(out, tx.Category)
		}
	}
	return out
}

// sortLinks builds, per sortable column, the list URL encoding the state
// after a click on that column's header: same column toggles direction, a
// new column starts ascending. All other query parameters survive.
func sortLinks(c *gin.Context, current ledger.SortConfig) map[string]string {
	keys := []string{
		ledger.SortByName, ledger.SortByMobile, ledger.SortByAmount,
		ledger.SortByType, ledger.SortByCategory, ledger.SortByDateTime,
		ledger.SortByRefurbishment,
	}
	links := make(map[string]string, len(keys))
	for _, key := range keys {
		next := current.Toggle(key)
		values := url.Values{}
		for name, vals := range c.Request.URL.Query() {
			for _, v := range vals {
				values.Add(name, v)
			}
		}
		values.Set("sort", next.Key)
		if next.Descending {
			values.Set("dir", "desc")
		} else {
			values.Set("dir", "asc")
		}
		links[key] = "/transactions?" + values.Encode()
	}
	return links
}

// AddTransactionRequest represents the add-transaction form payload.
type AddTransactionRequest struct {
	Purpose       string  `form:"purpose" binding:"required,max=200"`
	IsOnline      string  `form:"isOnline" binding:"required,oneof=true false"`
	Category      string  `form:"category" binding:"required,ledger_category"`
	Amount        float64 `form:"totalTransactionAmount" binding:"required,gt=0"`
	Refurbishment bool    `form:"transactionRefurbishmentStatus"`
	Remarks       string  `form:"remarks" binding:"max=500"`
	DateTime      string  `form:"transactionDateTime"`
}

// addFormData assembles the template fields for the add-transaction form.
func addFormData(mobile string, req AddTransactionRequest) gin.H {
	return gin.H{
		"MobileNumber":     mobile,
		"Form":             req,
		"DebitCategories":  ledger.DebitCategories,
		"CreditCategories": ledger.CreditCategories,
	}
}

// defaultAddForm returns the form in its initial state: online medium,
// timestamp defaulted to the current local time.
func defaultAddForm() AddTransactionRequest {
	return AddTransactionRequest{
		IsOnline: "true",
		DateTime: time.Now().Format(dateTimeInputFormat),
	}
}

// ShowAddForm renders a blank add-transaction form pre-filled with the
// session's mobile number.
func (h *TransactionHandler) ShowAddForm(c *gin.Context) {
	mobile, err := middleware.MobileNumber(c)
	if err != nil {
		redirectToLogin(c)
		return
	}
	render(c, http.StatusOK, "add_transaction.html", addFormData(mobile, defaultAddForm()))
}

// Add validates and submits a new transaction. Success resets the form to
// defaults (mobile number preserved); any failure re-renders it with the
// entered values intact.
func (h *TransactionHandler) Add(c *gin.Context) {
	mobile, err := middleware.MobileNumber(c)
	if err != nil {
		redirectToLogin(c)
		return
	}
	mobile = ledger.SanitizeMobile(mobile)

	var req AddTransactionRequest
	if err := c.ShouldBind(&req); err != nil {
		req.Purpose = c.PostForm("purpose")
		req.IsOnline = c.PostForm("isOnline")
		req.Category = c.PostForm("category")
		req.Remarks = c.PostForm("remarks")
		req.DateTime = c.PostForm("transactionDateTime")
		data := errorBanner(c, apperrors.Validation("Please fill in every required field with valid values."), addFormData(mobile, req))
		render(c, http.StatusBadRequest, "add_transaction.html", data)
		return
	}

	now := time.Now()
	when := now
	if req.DateTime != "" {
		parsed, err := time.ParseInLocation(dateTimeInputFormat, req.DateTime, time.Local)
		if err != nil {
			data := errorBanner(c, apperrors.Validation("Transaction date and time is not in a recognised format."), addFormData(mobile, req))
			render(c, http.StatusBadRequest, "add_transaction.html", data)
			return
		}
		when = parsed
	}
	if vErr := ledger.ValidateTransactionTime(when, now); vErr != nil {
		// Revert to the last accepted value: the current time default.
		req.DateTime = now.Format(dateTimeInputFormat)
		data := errorBanner(c, vErr, addFormData(mobile, req))
		render(c, http.StatusBadRequest, "add_transaction.html", data)
		return
	}

	attachment, vErr := readAttachment(c)
	if vErr != nil {
		data := errorBanner(c, vErr, addFormData(mobile, req))
		render(c, http.StatusBadRequest, "add_transaction.html", data)
		return
	}

	isIncome, refurb := ledger.NormalizeDirection(req.Category, req.Refurbishment)
	payload := ledgerapi.AddTransactionRequest{
		MobileNumber:                   mobile,
		Purpose:                        req.Purpose,
		IsIncome:                       isIncome,
		IsOnline:                       req.IsOnline == "true",
		Category:                       req.Category,
		TotalTransactionAmount:         req.Amount,
		TransactionRefurbishmentStatus: refurb,
		Remarks:                        req.Remarks,
		TransactionDateTime:            ledger.FormatWireTime(when),
	}

	if err := h.api.AddTransaction(c.Request.Context(), payload, attachment); err != nil {
		data := errorBanner(c, err, addFormData(mobile, req))
		render(c, http.StatusOK, "add_transaction.html", data)
		return
	}

	data := addFormData(mobile, defaultAddForm())
	data["Notice"] = "Transaction added successfully!"
	render(c, http.StatusOK, "add_transaction.html", data)
}

// readAttachment pulls the optional image upload off the request, sniffs
// its content type, and enforces the type and size constraints. A missing
// file is not an error.
func readAttachment(c *gin.Context) (*ledgerapi.Attachment, *apperrors.AppError) {
	header, err := c.FormFile("attachment")
	if err != nil || header == nil || header.Size == 0 {
		return nil, nil
	}

	file, err := header.Open()
	if err != nil {
		return nil, apperrors.Validation("The attachment could not be read. Please select it again.")
	}
	defer func() { _ = file.Close() }()

	// Read one byte past the limit so oversized files are caught without
	// buffering them whole.
	data, err := io.ReadAll(io.LimitReader(file, ledger.MaxAttachmentBytes+1))
	if err != nil {
		return nil, apperrors.Validation("The attachment could not be read. Please select it again.")
	}

	sniff := data
	if len(sniff) > 512 {
		sniff = sniff[:512]
	}
	contentType := http.DetectContentType(sniff)
	if vErr := ledger.ValidateAttachment(contentType, int64(len(data))); vErr != nil {
		return nil, vErr
	}

	return &ledgerapi.Attachment{
		Filename:    header.Filename,
		ContentType: contentType,
		Data:        data,
	}, nil
}

// Attachment decodes a transaction's base64 attachment and serves it so
// the table can link to the image. The transaction must be visible to the
// current session.
func (h *TransactionHandler) Attachment(c *gin.Context) {
	mobile, err := middleware.MobileNumber(c)
	if err != nil {
		redirectToLogin(c)
		return
	}

	scope := mobile
	if middleware.IsAdmin(c) {
		scope = ""
	}
	transactions, err := h.api.FetchTransactions(c.Request.Context(), mobile, scope)
	if err != nil {
		c.String(http.StatusBadGateway, "attachment unavailable")
		return
	}

	id := c.Param("id")
	for _, tx := range transactions {
		if tx.TransactionID != id {
			continue
		}
		if !tx.HasAttachment() {
			break
		}

		encoded := tx.Base64Attachment
		// Tolerate data-URI style payloads from the remote.
		if idx := strings.Index(encoded, ";base64,"); idx >= 0 {
			encoded = encoded[idx+len(";base64,"):]
		}
		raw, err := base64.StdEncoding.DecodeString(encoded)
		if err != nil {
			c.String(http.StatusUnprocessableEntity, "attachment is not valid base64")
			return
		}

		sniff := raw
		if len(sniff) > 512 {
			sniff = sniff[:512]
		}
		c.Data(http.StatusOK, http.DetectContentType(sniff), raw)
		return
	}

	c.String(http.StatusNotFound, "no attachment")
}
