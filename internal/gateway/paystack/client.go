package paystack

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const DefaultBaseURL = "https://api.paystack.co"

// Client calls the Paystack REST API. Request and response shapes match
// the provider contract exactly; do not rename fields.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client

	secretKey string
}

func NewClient(secretKey string) *Client {
	return &Client{
		BaseURL:    DefaultBaseURL,
		HTTPClient: &http.Client{Timeout: 15 * time.Second},
		secretKey:  secretKey,
	}
}

// APIError carries the processor's own message so handlers can surface
// it verbatim.
type APIError struct {
	Message string
}

func (e *APIError) Error() string { return e.Message }

type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type InitializeTransactionRequest struct {
	Email       string         `json:"email"`
	Amount      int64          `json:"amount"`
	Currency    string         `json:"currency"`
	Reference   string         `json:"reference"`
	CallbackURL string         `json:"callback_url"`
	Metadata    map[string]any `json:"metadata"`
	Channels    []string       `json:"channels"`
}

type InitializeTransactionData struct {
	AuthorizationURL string `json:"authorization_url"`
	AccessCode       string `json:"access_code"`
	Reference        string `json:"reference"`
}

func (c *Client) InitializeTransaction(ctx context.Context, req InitializeTransactionRequest) (InitializeTransactionData, error) {
	var data InitializeTransactionData
	err := c.post(ctx, "/transaction/initialize", req, &data)
	return data, err
}

type CreateTransferRecipientRequest struct {
	Type          string `json:"type"`
	Name          string `json:"name"`
	AccountNumber string `json:"account_number"`
	BankCode      string `json:"bank_code"`
	Currency      string `json:"currency"`
}

type TransferRecipientData struct {
	RecipientCode string `json:"recipient_code"`
}

func (c *Client) CreateTransferRecipient(ctx context.Context, req CreateTransferRecipientRequest) (TransferRecipientData, error) {
	var data TransferRecipientData
	err := c.post(ctx, "/transferrecipient", req, &data)
	return data, err
}

type InitiateTransferRequest struct {
	Source    string `json:"source"`
	Amount    int64  `json:"amount"`
	Recipient string `json:"recipient"`
	Reason    string `json:"reason"`
	Reference string `json:"reference"`
}

type TransferData struct {
	Reference    string `json:"reference"`
	TransferCode string `json:"transfer_code"`
}

func (c *Client) InitiateTransfer(ctx context.Context, req InitiateTransferRequest) (TransferData, error) {
	var data TransferData
	err := c.post(ctx, "/transfer", req, &data)
	return data, err
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	b, err := json.Marshal(body)
	if err != nil {
		return err
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, bytes.NewReader(b))
	if err != nil {
		return err
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.secretKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(httpReq)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("paystack %s: decode response: %w", path, err)
	}
	if !env.Status {
		msg := env.Message
		if msg == "" {
			msg = fmt.Sprintf("paystack %s returned status %d", path, resp.StatusCode)
		}
		return &APIError{Message: msg}
	}
	if out != nil && len(env.Data) > 0 {
		return json.Unmarshal(env.Data, out)
	}
	return nil
}
