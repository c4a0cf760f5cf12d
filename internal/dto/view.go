package dto

// Local view API payloads.

type BillViewResponseDTO struct {
	Bill             BillDTO `json:"bill"`
	SecondsRemaining int64   `json:"seconds_remaining" example:"421"`
	Closed           bool    `json:"closed" example:"false"`
	IsCreator        bool    `json:"is_creator" example:"true"`
	ShowRefundAction bool    `json:"show_refund_action" example:"false"`
	Left             string  `json:"left" example:"6"`
	Percent          float64 `json:"percent" example:"40"`
	Stale            bool    `json:"stale" example:"false"`
}

type CreateBillRequestViewDTO struct {
	Goal               string `json:"goal" example:"10"`
	DestinationAddress string `json:"destination_address" example:"EQC6KV4zs8TJtSZapOrRFmqSkxzpq-oSCoxekQRKElf4nC1I"`
}

type ContributeRequestDTO struct {
	Amount string `json:"amount" example:"4"`
}

type HistoryRowDTO struct {
	ID                 string  `json:"id"`
	DestinationAddress string  `json:"destination_address"`
	Goal               string  `json:"goal" example:"10"`
	Collected          *string `json:"collected,omitempty" example:"4"`
	Status             string  `json:"status" example:"ACTIVE"`
	CreatedAt          string  `json:"created_at" example:"2024-05-01T12:00:00Z"`
}

type ShareResponseDTO struct {
	Link string `json:"link" example:"https://t.me/CryptoSplitBot?startapp=eyJpZCI6ImIxIn0"`
}

type BalanceResponseDTO struct {
	Address string `json:"address"`
	Balance string `json:"balance" example:"12.5"`
	Nano    string `json:"nano" example:"12500000000"`
}

type ActionResponseDTO struct {
	BillID string `json:"bill_id" example:"bill-1"`
	Action string `json:"action" example:"contribute"`
	Amount string `json:"amount" example:"4"`
}
