package domain

import (
	"time"
)

// BillWindow is the fixed lifetime of a bill. The deadline is always CreatedAt+BillWindow.
const BillWindow = 600 * time.Second

type Status string

const (
	StatusActive   Status = "ACTIVE"
	StatusDone     Status = "DONE"
	StatusTimeout  Status = "TIMEOUT"
	StatusRefunded Status = "REFUNDED"
	// StatusCancelled is reported after the creator cancels an active bill.
	StatusCancelled Status = "CANCELLED"

	statusCompletedLegacy Status = "COMPLETED"
)

type OpType string

const (
	OpContribute OpType = "CONTRIBUTE"
	OpRefund     OpType = "REFUND"
	OpWithdraw   OpType = "WITHDRAW"
)

type Bill struct {
	ID                 string
	Goal               Nano
	Collected          Nano
	CreatorAddress     string
	DestinationAddress string
	ProxyWalletAddress string
	StateInitHash      string
	CreatedAt          time.Time
	Status             Status
	Transactions       []Transaction
}

type Transaction struct {
	ID            string
	BillID        string
	Amount        Nano
	SenderAddress string
	CreatedAt     time.Time
	OpType        OpType
}

type HistoryItem struct {
	ID                 string
	DestinationAddress string
	Goal               Nano
	Status             Status
	CreatedAt          time.Time
}

// OpenBillRef is the only thing kept locally to resume navigation after a restart.
type OpenBillRef struct {
	ID string `json:"id"`
}

type TransactionRequest struct {
	Amount         Nano
	OpType         OpType
	IdempotencyKey string
}

type CreateBillRequest struct {
	Goal               Nano
	DestinationAddress string
	Sender             string
}

type Page struct {
	Limit  int
	Offset int
}
