package dto

import (
	"github.com/GlebRadaev/billsplit/internal/domain"
)

// BillDTO is the ledger's wire form of a bill. It is also what the live subscription pushes.
type BillDTO struct {
	ID                 string           `json:"id"`
	Goal               domain.Nano      `json:"goal"`
	Collected          domain.Nano      `json:"collected"`
	CreatorAddress     string           `json:"creator_address"`
	DestinationAddress string           `json:"destination_address"`
	ProxyWalletAddress string           `json:"proxy_wallet_address,omitempty"`
	ProxyWallet        string           `json:"proxy_wallet,omitempty"`
	StateInitHash      string           `json:"state_init_hash"`
	CreatedAt          Timestamp        `json:"created_at" swaggertype:"string"`
	Status             domain.Status    `json:"status"`
	Transactions       []TransactionDTO `json:"transactions,omitempty"`
}

type TransactionDTO struct {
	ID            string        `json:"id"`
	BillID        string        `json:"bill_id"`
	Amount        domain.Nano   `json:"amount"`
	SenderAddress string        `json:"sender_address"`
	CreatedAt     Timestamp     `json:"created_at" swaggertype:"string"`
	OpType        domain.OpType `json:"op_type"`
}

type HistoryItemDTO struct {
	ID                 string        `json:"id"`
	DestinationAddress string        `json:"destination_address"`
	Goal               domain.Nano   `json:"goal"`
	Status             domain.Status `json:"status"`
	CreatedAt          Timestamp     `json:"created_at" swaggertype:"string"`
}

type CreateBillRequestDTO struct {
	Goal               domain.Nano `json:"goal"`
	DestinationAddress string      `json:"destination_address"`
	Sender             string      `json:"sender"`
}

type TransactionRequestDTO struct {
	Amount domain.Nano   `json:"amount"`
	OpType domain.OpType `json:"op_type"`
}

type ErrorResponseDTO struct {
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

func (b *BillDTO) ToDomain() *domain.Bill {
	bill := &domain.Bill{
		ID:                 b.ID,
		Goal:               b.Goal,
		Collected:          b.Collected,
		CreatorAddress:     b.CreatorAddress,
		DestinationAddress: b.DestinationAddress,
		ProxyWalletAddress: b.ProxyWalletAddress,
		StateInitHash:      b.StateInitHash,
		CreatedAt:          b.CreatedAt.Time,
		Status:             b.Status.Normalize(),
	}
	if bill.ProxyWalletAddress == "" {
		bill.ProxyWalletAddress = b.ProxyWallet
	}
	if len(b.Transactions) > 0 {
		bill.Transactions = make([]domain.Transaction, 0, len(b.Transactions))
		for _, tx := range b.Transactions {
			bill.Transactions = append(bill.Transactions, domain.Transaction{
				ID:            tx.ID,
				BillID:        tx.BillID,
				Amount:        tx.Amount,
				SenderAddress: tx.SenderAddress,
				CreatedAt:     tx.CreatedAt.Time,
				OpType:        tx.OpType,
			})
		}
	}
	return bill
}

func BillFromDomain(b *domain.Bill) BillDTO {
	out := BillDTO{
		ID:                 b.ID,
		Goal:               b.Goal,
		Collected:          b.Collected,
		CreatorAddress:     b.CreatorAddress,
		DestinationAddress: b.DestinationAddress,
		ProxyWalletAddress: b.ProxyWalletAddress,
		StateInitHash:      b.StateInitHash,
		CreatedAt:          Timestamp{Time: b.CreatedAt},
		Status:             b.Status,
	}
	for _, tx := range b.Transactions {
		out.Transactions = append(out.Transactions, TransactionDTO{
			ID:            tx.ID,
			BillID:        tx.BillID,
			Amount:        tx.Amount,
			SenderAddress: tx.SenderAddress,
			CreatedAt:     Timestamp{Time: tx.CreatedAt},
			OpType:        tx.OpType,
		})
	}
	return out
}

func (h *HistoryItemDTO) ToDomain() domain.HistoryItem {
	return domain.HistoryItem{
		ID:                 h.ID,
		DestinationAddress: h.DestinationAddress,
		Goal:               h.Goal,
		Status:             h.Status.Normalize(),
		CreatedAt:          h.CreatedAt.Time,
	}
}
