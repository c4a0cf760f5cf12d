package ledgertest

import (
	"encoding/base64"
	"time"

	"github.com/xssnick/tonutils-go/tlb"
	"github.com/xssnick/tonutils-go/tvm/cell"

	"github.com/GlebRadaev/billsplit/internal/domain"
	"github.com/GlebRadaev/billsplit/internal/dto"
)

const (
	Creator     = "EQC6KV4zs8TJtSZapOrRFmqSkxzpq-oSCoxekQRKElf4nC1I"
	Contributor = "EQBvW8Z5huBkMJYdnfAEM5JqTNkuWX3diqYENkWsIL0XggGG"
	Destination = "EQADAwMDAwMDAwMDAwMDAwMDAwMDAwMDAwMDAwMDAwMDA8id"
	// ProxyAddress is the per-bill proxy wallet every fake bill gets.
	ProxyAddress = "EQCD39VS5jcptHL8vMjEXrzGaRcCVYto7HUn4bpAOg8xqB2N"

	TON = domain.Nano(1_000_000_000)
)

// StateInit is a base64 BOC of a minimal proxy contract state init.
var StateInit = func() string {
	si := &tlb.StateInit{
		Code: cell.BeginCell().MustStoreUInt(0xC0DE, 16).EndCell(),
		Data: cell.BeginCell().MustStoreUInt(0, 32).EndCell(),
	}
	c, err := tlb.ToCell(si)
	if err != nil {
		panic(err)
	}
	return base64.StdEncoding.EncodeToString(c.ToBOC())
}()

// ActiveBill is a fresh ACTIVE bill owned by Creator.
func ActiveBill(id string, goal, collected domain.Nano, createdAt time.Time) dto.BillDTO {
	return dto.BillDTO{
		ID:                 id,
		Goal:               goal,
		Collected:          collected,
		CreatorAddress:     Creator,
		DestinationAddress: Destination,
		ProxyWalletAddress: ProxyAddress,
		StateInitHash:      StateInit,
		CreatedAt:          dto.Timestamp{Time: createdAt.UTC()},
		Status:             domain.StatusActive,
	}
}
