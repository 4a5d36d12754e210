package services

import (
	"context"

	"github.com/cribnhq/cribn-backend/internal/gateway/paystack"
	"github.com/cribnhq/cribn-backend/internal/gateway/stripe"
)

// PaystackGateway is what the wallet flows need from the processor;
// satisfied by *paystack.Client and by test fakes.
type PaystackGateway interface {
	InitializeTransaction(ctx context.Context, req paystack.InitializeTransactionRequest) (paystack.InitializeTransactionData, error)
	CreateTransferRecipient(ctx context.Context, req paystack.CreateTransferRecipientRequest) (paystack.TransferRecipientData, error)
	InitiateTransfer(ctx context.Context, req paystack.InitiateTransferRequest) (paystack.TransferData, error)
}

// StripeGateway is what ticket checkout needs from the card processor.
type StripeGateway interface {
	FindCustomerByEmail(ctx context.Context, email string) (string, error)
	CreateCheckoutSession(ctx context.Context, p stripe.CheckoutSessionParams) (stripe.CheckoutSession, error)
}
