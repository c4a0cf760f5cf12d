package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound           = errors.New("bill not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidAddress     = fmt.Errorf("%w: bad address", ErrInvalidInput)
	ErrInvalidAmount      = fmt.Errorf("%w: bad amount", ErrInvalidInput)
	ErrBillNotReady       = fmt.Errorf("%w: bill not ready", ErrInvalidInput)
	ErrWalletNotConnected = fmt.Errorf("%w: wallet not connected", ErrInvalidInput)
	ErrBillClosed         = errors.New("bill is closed")
	ErrRefundNotAllowed   = errors.New("refund not allowed")
	ErrCancelNotAllowed   = errors.New("cancel not allowed")
	ErrActionInFlight     = errors.New("action already in progress")
	ErrWalletRejected     = errors.New("transfer rejected by wallet")
	ErrTransferExpired    = errors.New("transfer validity window expired")
	ErrUnrecorded         = errors.New("transfer sent on-chain but not recorded by ledger")
)

// UnrecordedError is returned when the on-chain transfer went through and the ledger call after it failed.
// The ledger is expected to catch up from its own chain observation; the client must not resend.
type UnrecordedError struct {
	BillID         string
	Op             OpType
	Amount         Nano
	IdempotencyKey string
	Err            error
}

func (e *UnrecordedError) Error() string {
	return fmt.Sprintf("%s of %s TON to bill %s sent but not recorded: %v", e.Op, e.Amount, e.BillID, e.Err)
}

func (e *UnrecordedError) Unwrap() []error {
	return []error{ErrUnrecorded, e.Err}
}
