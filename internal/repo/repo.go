package repo

import (
	"fmt"

	"github.com/GlebRadaev/billsplit/internal/config"
	resumerepo "github.com/GlebRadaev/billsplit/internal/repo/resume-repo"
)

type Repositories struct {
	Resume *resumerepo.Repository
}

func New(cfg *config.Config) (*Repositories, error) {
	resumeRepo, err := resumerepo.New(cfg.StatePath)
	if err != nil {
		return nil, fmt.Errorf("open state file: %w", err)
	}

	return &Repositories{
		Resume: resumeRepo,
	}, nil
}

func (r *Repositories) Close() error {
	return r.Resume.Close()
}
