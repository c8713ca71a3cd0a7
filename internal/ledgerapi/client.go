// Package ledgerapi provides an HTTP client for the remote account-ledger
// API that owns all persistence: transaction fetch/create and devotee
// registration/login. Nothing is retried; every failure maps onto the
// portal's error kinds so views render it uniformly.
package ledgerapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"

	apperrors "github.com/dasHimanshuSekhar/account-ui/internal/errors"
	"github.com/dasHimanshuSekhar/account-ui/internal/ledger"
)

// Client communicates with the remote ledger API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a ledger API client for the given base URL.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// statusResponse is the envelope the remote API uses for registration,
// login, and error bodies.
type statusResponse struct {
	StatusCode int    `json:"statusCode"`
	StatusDesc string `json:"statusDesc"`
}

// fetchResponse is the transaction-list envelope.
type fetchResponse struct {
	StatusDesc           string               `json:"statusDesc"`
	DetailedTransactions []ledger.Transaction `json:"detailedTransactions"`
}

// FetchTransactions retrieves the transactions visible to the given token.
// A non-empty mobileScope asks the server to restrict the list to that
// submitter; the admin token fetches unscoped.
func (c *Client) FetchTransactions(ctx context.Context, token, mobileScope string) ([]ledger.Transaction, error) {
	endpoint := c.baseURL + "/transaction/fetch-transactions"
	if mobileScope != "" {
		endpoint += "?mobileNumber=" + url.QueryEscape(mobileScope)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.Network("Could not load transactions. Please try again later.", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, serverError(resp)
	}

	var result fetchResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, apperrors.Network("Could not load transactions. Please try again later.", err)
	}
	return result.DetailedTransactions, nil
}

// AddTransactionRequest is the JSON blob sent as the "data" part of the
// multipart add-transaction request.
type AddTransactionRequest struct {
	MobileNumber                   string  `json:"mobileNumber"`
	Purpose                        string  `json:"purpose"`
	IsIncome                       bool    `json:"isIncome"`
	IsOnline                       bool    `json:"isOnline"`
	Category                       string  `json:"category"`
	TotalTransactionAmount         float64 `json:"totalTransactionAmount"`
	TransactionRefurbishmentStatus bool    `json:"transactionRefurbishmentStatus"`
	Remarks                        string  `json:"remarks"`
	TransactionDateTime            string  `json:"transactionDateTime"`
}

// Attachment is an optional image uploaded alongside a transaction.
type Attachment struct {
	Filename    string
	ContentType string
	Data        []byte
}

// AddTransaction submits a new transaction as multipart form data: a JSON
// "data" part plus an optional binary "attachment" part.
func (c *Client) AddTransaction(ctx context.Context, tx AddTransactionRequest, attachment *Attachment) error {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	data, err := json.Marshal(tx)
	if err != nil {
		return fmt.Errorf("marshaling transaction: %w", err)
	}

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="data"`)
	header.Set("Content-Type", "application/json")
	part, err := mw.CreatePart(header)
	if err != nil {
		return fmt.Errorf("creating data part: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return fmt.Errorf("writing data part: %w", err)
	}

	if attachment != nil {
		fileHeader := textproto.MIMEHeader{}
		fileHeader.Set("Content-Disposition",
			fmt.Sprintf(`form-data; name="attachment"; filename=%q`, attachment.Filename))
		fileHeader.Set("Content-Type", attachment.ContentType)
		filePart, err := mw.CreatePart(fileHeader)
		if err != nil {
			return fmt.Errorf("creating attachment part: %w", err)
		}
		if _, err := filePart.Write(attachment.Data); err != nil {
			return fmt.Errorf("writing attachment part: %w", err)
		}
	}

	if err := mw.Close(); err != nil {
		return fmt.Errorf("closing multipart writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/transaction/add-transactions", &body)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return apperrors.Network("An error occurred while adding the transaction.", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return serverError(resp)
	}
	return nil
}

// RegisterDevotee registers a new devotee and returns the server's
// description on success.
func (c *Client) RegisterDevotee(ctx context.Context, name, mobileNumber string) (string, error) {
	payload := map[string]string{"name": name, "mobileNumber": mobileNumber}
	result, err := c.postJSON(ctx, "/devotee/register", payload, "An error occurred while registering the devotee.")
	if err != nil {
		return "", err
	}
	if result.StatusCode != 0 {
		return "", apperrors.Server(result.StatusDesc)
	}
	return result.StatusDesc, nil
}

// Login verifies devotee credentials and returns the server's description
// on success. The caller stores the mobile number as the session token.
func (c *Client) Login(ctx context.Context, mobileNumber, password string) (string, error) {
	payload := map[string]string{"mobileNumber": mobileNumber, "password": password}
	result, err := c.postJSON(ctx, "/devotee/login", payload, "An error occurred during login.")
	if err != nil {
		return "", err
	}
	if result.StatusCode != 0 {
		return "", apperrors.Server(result.StatusDesc)
	}
	return result.StatusDesc, nil
}

// postJSON posts a JSON payload and decodes the status envelope.
func (c *Client) postJSON(ctx context.Context, path string, payload any, networkMsg string) (*statusResponse, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshaling payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.Network(networkMsg, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, serverError(resp)
	}

	var result statusResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, apperrors.Network(networkMsg, err)
	}
	return &result, nil
}

// serverError turns a non-200 response into a server error carrying the
// body's statusDesc, falling back to "Unknown error" when the body is not
// the expected JSON envelope.
func serverError(resp *http.Response) *apperrors.AppError {
	var body statusResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return apperrors.Server("")
	}
	return apperrors.Server(body.StatusDesc)
}
