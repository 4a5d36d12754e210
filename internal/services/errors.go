package services

import "errors"

var (
	// ErrInvalidAmount rejects non-positive amounts before any gateway
	// call is made.
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrGatewayRejected wraps the processor's own failure message from
	// a top-up initialization.
	ErrGatewayRejected = errors.New("payment gateway rejected the transaction")

	// ErrRecipientCreation and ErrTransferInitiation distinguish the two
	// withdrawal steps; neither leaves a transaction row behind.
	ErrRecipientCreation  = errors.New("failed to create transfer recipient")
	ErrTransferInitiation = errors.New("failed to initiate transfer")

	// ErrCheckoutSession wraps checkout-session failures from the card
	// processor.
	ErrCheckoutSession = errors.New("failed to create checkout session")

	// ErrUnverifiedSource is the webhook signature mismatch; the only
	// webhook failure that refuses the request.
	ErrUnverifiedSource = errors.New("invalid webhook signature")

	// ErrMalformedEvent is an unparseable webhook body.
	ErrMalformedEvent = errors.New("malformed webhook event")

	ErrTicketCodes  = errors.New("could not generate a unique ticket code")
	ErrTicketUsed   = errors.New("ticket already used")
	ErrMissingField = errors.New("missing required field")
)
