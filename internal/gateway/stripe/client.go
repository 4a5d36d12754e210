package stripe

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const DefaultBaseURL = "https://api.stripe.com"

// Client covers the two Stripe calls ticket checkout needs: customer
// lookup by email and hosted checkout session creation. Stripe takes
// form-encoded bodies, not JSON.
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

type APIError struct {
	Message string
}

func (e *APIError) Error() string { return e.Message }

type errorEnvelope struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

type Customer struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type customerList struct {
	Data []Customer `json:"data"`
}

// FindCustomerByEmail returns the empty string when no customer record
// exists for the email.
func (c *Client) FindCustomerByEmail(ctx context.Context, email string) (string, error) {
	q := url.Values{}
	q.Set("email", email)
	q.Set("limit", "1")

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/v1/customers?"+q.Encode(), nil)
	if err != nil {
		return "", err
	}
	var list customerList
	if err := c.do(httpReq, &list); err != nil {
		return "", err
	}
	if len(list.Data) == 0 {
		return "", nil
	}
	return list.Data[0].ID, nil
}

type CheckoutSessionParams struct {
	CustomerID    string // one of CustomerID / CustomerEmail is set
	CustomerEmail string
	Currency      string
	ProductName   string
	Description   string
	UnitAmount    int64
	SuccessURL    string
	CancelURL     string
	Metadata      map[string]string
}

type CheckoutSession struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

func (c *Client) CreateCheckoutSession(ctx context.Context, p CheckoutSessionParams) (CheckoutSession, error) {
	form := url.Values{}
	if p.CustomerID != "" {
		form.Set("customer", p.CustomerID)
	} else if p.CustomerEmail != "" {
		form.Set("customer_email", p.CustomerEmail)
	}
	form.Set("mode", "payment")
	form.Set("success_url", p.SuccessURL)
	form.Set("cancel_url", p.CancelURL)
	form.Set("line_items[0][quantity]", "1")
	form.Set("line_items[0][price_data][currency]", p.Currency)
	form.Set("line_items[0][price_data][unit_amount]", strconv.FormatInt(p.UnitAmount, 10))
	form.Set("line_items[0][price_data][product_data][name]", p.ProductName)
	if p.Description != "" {
		form.Set("line_items[0][price_data][product_data][description]", p.Description)
	}
	for k, v := range p.Metadata {
		form.Set("metadata["+k+"]", v)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/v1/checkout/sessions", strings.NewReader(form.Encode()))
	if err != nil {
		return CheckoutSession{}, err
	}
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var session CheckoutSession
	err = c.do(httpReq, &session)
	return session, err
}

func (c *Client) do(req *http.Request, out any) error {
	req.Header.Set("Authorization", "Bearer "+c.secretKey)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var env errorEnvelope
		if err := json.NewDecoder(resp.Body).Decode(&env); err == nil && env.Error.Message != "" {
			return &APIError{Message: env.Error.Message}
		}
		return &APIError{Message: fmt.Sprintf("stripe returned status %d", resp.StatusCode)}
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
