package ledgerapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	apperrors "github.com/dasHimanshuSekhar/account-ui/internal/errors"
)

func TestFetchTransactions_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("expected GET, got %s", r.Method)
		}
		if r.URL.Path != "/transaction/fetch-transactions" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer 9000000001" {
			t.Errorf("missing or wrong bearer token: %q", r.Header.Get("Authorization"))
		}
		if r.URL.Query().Get("mobileNumber") != "9000000001" {
			t.Errorf("expected mobileNumber scope, got %q", r.URL.Query().Get("mobileNumber"))
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"statusDesc": "OK",
			"detailedTransactions": []map[string]any{
				{"transactionId": "t1", "name": "Nitai", "mobileNumber": "9000000001", "category": "Donation", "isIncome": true, "isOnline": true, "totalTransactionAmount": 500.0, "transactionDateTime": "2025-02-10T10:00:00Z"},
				{"transactionId": "t2", "name": "Nitai", "mobileNumber": "9000000001", "category": "Gas", "isIncome": false, "isOnline": false, "totalTransactionAmount": 120.0, "transactionDateTime": "2025-02-11T10:00:00Z"},
			},
		})
	}))
	defer server.Close()

	c := New(server.URL, server.Client())
	txs, err := c.FetchTransactions(context.Background(), "9000000001", "9000000001")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(txs) != 2 {
		t.Fatalf("expected 2 transactions, got %d", len(txs))
	}
	if txs[0].TransactionID != "t1" || !txs[0].IsIncome || txs[0].TotalTransactionAmount != 500 {
		t.Errorf("first transaction mismatch: %+v", txs[0])
	}
	if txs[1].Category != "Gas" || txs[1].IsOnline {
		t.Errorf("second transaction mismatch: %+v", txs[1])
	}
}

func TestFetchTransactions_AdminUnscoped(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.RawQuery != "" {
			t.Errorf("admin fetch should carry no query, got %q", r.URL.RawQuery)
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"statusDesc": "OK", "detailedTransactions": []any{}})
	}))
	defer server.Close()

	c := New(server.URL, server.Client())
	txs, err := c.FetchTransactions(context.Background(), "9999999999", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(txs) != 0 {
		t.Fatalf("expected empty list, got %d", len(txs))
	}
}

func TestFetchTransactions_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_ = json.NewEncoder(w).Encode(map[string]any{"statusCode": 12, "statusDesc": "Devotee not registered"})
	}))
	defer server.Close()

	c := New(server.URL, server.Client())
	_, err := c.FetchTransactions(context.Background(), "9000000001", "9000000001")
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *AppError, got %T", err)
	}
	if appErr.Kind != apperrors.KindServer {
		t.Errorf("expected server kind, got %d", appErr.Kind)
	}
	if appErr.Message != "Devotee not registered" {
		t.Errorf("expected statusDesc verbatim, got %q", appErr.Message)
	}
}

func TestFetchTransactions_NetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {}))
	server.Close() // refuse connections

	c := New(server.URL, http.DefaultClient)
	_, err := c.FetchTransactions(context.Background(), "9000000001", "9000000001")
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *AppError, got %T", err)
	}
	if appErr.Kind != apperrors.KindNetwork {
		t.Errorf("expected network kind, got %d", appErr.Kind)
	}
	if appErr.Internal == nil {
		t.Error("expected the transport error to be kept for logging")
	}
}

func TestAddTransaction_MultipartBody(t *testing.T) {
	var captured struct {
		data       AddTransactionRequest
		attachment []byte
		filename   string
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mediaType, params, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
		if err != nil || mediaType != "multipart/form-data" {
			t.Fatalf("expected multipart/form-data, got %q", r.Header.Get("Content-Type"))
		}

		reader := multipart.NewReader(r.Body, params["boundary"])
		for {
			part, err := reader.NextPart()
			if err == io.EOF {
				break
			}
			if err != nil {
				t.Fatalf("reading part: %v", err)
			}
			switch part.FormName() {
			case "data":
				if part.Header.Get("Content-Type") != "application/json" {
					t.Errorf("data part should be application/json, got %q", part.Header.Get("Content-Type"))
				}
				if err := json.NewDecoder(part).Decode(&captured.data); err != nil {
					t.Fatalf("decoding data part: %v", err)
				}
			case "attachment":
				captured.filename = part.FileName()
				captured.attachment, _ = io.ReadAll(part)
			}
		}

		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	c := New(server.URL, server.Client())
	err := c.AddTransaction(context.Background(), AddTransactionRequest{
		MobileNumber:           "9000000001",
		Purpose:                "Sunday feast",
		IsIncome:               true,
		IsOnline:               true,
		Category:               "Donation",
		TotalTransactionAmount: 500,
		TransactionDateTime:    "10-02-2025 14:30",
	}, &Attachment{Filename: "receipt.png", ContentType: "image/png", Data: []byte{0x89, 'P', 'N', 'G'}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if captured.data.Category != "Donation" || !captured.data.IsIncome {
		t.Errorf("data part mismatch: %+v", captured.data)
	}
	if captured.data.TransactionDateTime != "10-02-2025 14:30" {
		t.Errorf("expected wire-formatted timestamp, got %q", captured.data.TransactionDateTime)
	}
	if captured.filename != "receipt.png" || len(captured.attachment) != 4 {
		t.Errorf("attachment part mismatch: %q (%d bytes)", captured.filename, len(captured.attachment))
	}
}

func TestAddTransaction_NoAttachment(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mediaType, params, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
		if mediaType != "multipart/form-data" {
			t.Fatalf("expected multipart/form-data, got %q", mediaType)
		}
		reader := multipart.NewReader(r.Body, params["boundary"])
		parts := 0
		for {
			part, err := reader.NextPart()
			if err == io.EOF {
				break
			}
			if err != nil {
				t.Fatalf("reading part: %v", err)
			}
			if part.FormName() == "attachment" {
				t.Error("unexpected attachment part")
			}
			parts++
		}
		if parts != 1 {
			t.Errorf("expected exactly the data part, got %d parts", parts)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	c := New(server.URL, server.Client())
	if err := c.AddTransaction(context.Background(), AddTransactionRequest{Category: "Gas", TotalTransactionAmount: 100}, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestAddTransaction_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]any{"statusCode": 7, "statusDesc": "Amount exceeds limit"})
	}))
	defer server.Close()

	c := New(server.URL, server.Client())
	err := c.AddTransaction(context.Background(), AddTransactionRequest{Category: "Gas", TotalTransactionAmount: 100}, nil)

	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *AppError, got %T", err)
	}
	if appErr.Message != "Amount exceeds limit" {
		t.Errorf("expected statusDesc verbatim, got %q", appErr.Message)
	}
}

func TestAddTransaction_UnparseableErrorBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("<html>gateway error</html>"))
	}))
	defer server.Close()

	c := New(server.URL, server.Client())
	err := c.AddTransaction(context.Background(), AddTransactionRequest{Category: "Gas", TotalTransactionAmount: 100}, nil)

	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *AppError, got %T", err)
	}
	if appErr.Message != "Unknown error" {
		t.Errorf("expected fallback message, got %q", appErr.Message)
	}
}

func TestLogin(t *testing.T) {
	t.Run("statusCode zero succeeds", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/devotee/login" {
				t.Errorf("unexpected path: %s", r.URL.Path)
			}
			var body map[string]string
			_ = json.NewDecoder(r.Body).Decode(&body)
			if body["mobileNumber"] != "9000000001" || body["password"] != "hare" {
				t.Errorf("unexpected payload: %v", body)
			}
			_ = json.NewEncoder(w).Encode(map[string]any{"statusCode": 0, "statusDesc": "Login successful"})
		}))
		defer server.Close()

		c := New(server.URL, server.Client())
		desc, err := c.Login(context.Background(), "9000000001", "hare")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if desc != "Login successful" {
			t.Errorf("expected statusDesc, got %q", desc)
		}
	})

	t.Run("non-zero statusCode is a server error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_ = json.NewEncoder(w).Encode(map[string]any{"statusCode": 3, "statusDesc": "Invalid credentials"})
		}))
		defer server.Close()

		c := New(server.URL, server.Client())
		_, err := c.Login(context.Background(), "9000000001", "wrong")

		var appErr *apperrors.AppError
		if !errors.As(err, &appErr) {
			t.Fatalf("expected *AppError, got %T", err)
		}
		if appErr.Kind != apperrors.KindServer || appErr.Message != "Invalid credentials" {
			t.Errorf("unexpected error: %+v", appErr)
		}
	})
}

func TestRegisterDevotee(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/devotee/register" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["name"] != "Nitai Das" || body["mobileNumber"] != "9000000001" {
			t.Errorf("unexpected payload: %v", body)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"statusCode": 0, "statusDesc": "Devotee registered"})
	}))
	defer server.Close()

	c := New(server.URL, server.Client())
	desc, err := c.RegisterDevotee(context.Background(), "Nitai Das", "9000000001")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if desc != "Devotee registered" {
		t.Errorf("expected statusDesc, got %q", desc)
	}
}
