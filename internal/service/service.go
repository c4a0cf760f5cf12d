package service

import (
	"github.com/GlebRadaev/billsplit/internal/config"
	"github.com/GlebRadaev/billsplit/internal/ledger"
	"github.com/GlebRadaev/billsplit/internal/lifecycle"
	"github.com/GlebRadaev/billsplit/internal/repo"
	"github.com/GlebRadaev/billsplit/internal/service/billservice"
	"github.com/GlebRadaev/billsplit/internal/service/contributeservice"
	"github.com/GlebRadaev/billsplit/internal/service/refundservice"
	"github.com/GlebRadaev/billsplit/internal/wallet"
	"github.com/GlebRadaev/billsplit/internal/watcher"
	"github.com/GlebRadaev/billsplit/pkg/payload"
)

type Services struct {
	Store             *lifecycle.Store
	BillService       *billservice.Service
	ContributeService *contributeservice.Service
	RefundService     *refundservice.Service
	Watcher           *watcher.Manager
}

func New(cfg *config.Config, repo *repo.Repositories, gateway *ledger.Client, w *wallet.Wallet) *Services {
	store := lifecycle.New(gateway, repo.Resume, w.Address, cfg.CacheStaleAfter)
	encoder := payload.New(cfg.PayloadNonce)

	return &Services{
		Store:             store,
		BillService:       billservice.New(cfg, w, gateway, store, repo.Resume),
		ContributeService: contributeservice.New(cfg, w, gateway, store, encoder),
		RefundService:     refundservice.New(cfg, w, gateway, store, encoder),
		Watcher:           watcher.NewManager(cfg, gateway, store, nil),
	}
}

// Close stops the open bill and waits for background work.
func (s *Services) Close() {
	s.Watcher.Unmount()
	s.BillService.Close()
}
