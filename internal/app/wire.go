package app

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/GlebRadaev/billsplit/internal/config"
	"github.com/GlebRadaev/billsplit/internal/ledger"
	"github.com/GlebRadaev/billsplit/internal/repo"
	"github.com/GlebRadaev/billsplit/internal/service"
	"github.com/GlebRadaev/billsplit/internal/wallet"
	"github.com/GlebRadaev/billsplit/pkg/clients"
)

// Components is the client without its HTTP surface. The CLI commands and the server share it.
type Components struct {
	Repo     *repo.Repositories
	Ledger   *ledger.Client
	Wallet   *wallet.Wallet
	Services *service.Services
}

func Wire(cfg *config.Config, approver wallet.Approver) (*Components, error) {
	w, err := newWallet(cfg, approver)
	if err != nil {
		return nil, fmt.Errorf("can't build wallet: %w", err)
	}

	repos, err := repo.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("can't open local state: %w", err)
	}

	gateway := ledger.New(cfg, clients.NewHTTPClient())
	return &Components{
		Repo:     repos,
		Ledger:   gateway,
		Wallet:   w,
		Services: service.New(cfg, repos, gateway, w),
	}, nil
}

func newWallet(cfg *config.Config, approver wallet.Approver) (*wallet.Wallet, error) {
	balance := wallet.NewToncenter(cfg, clients.NewHTTPClient())

	if cfg.WalletSeed == "" {
		if cfg.WalletAddress == "" {
			zap.L().Warn("No wallet configured, actions are disabled")
		}
		return wallet.New(nil, cfg.WalletAddress, balance, approver)
	}

	signer, err := wallet.NewTonSigner(cfg)
	if err != nil {
		return nil, err
	}
	return wallet.New(signer, "", balance, approver)
}

func (c *Components) Close() {
	c.Services.Close()
	if err := c.Repo.Close(); err != nil {
		zap.L().Error("Failed to close local state", zap.Error(err))
	}
}
