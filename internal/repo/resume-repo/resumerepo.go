package resumerepo

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
	"go.uber.org/zap"

	"github.com/GlebRadaev/billsplit/internal/domain"
)

var (
	bucketResume = []byte("resume")
	keyOpenBill  = []byte("open_bill")
)

// Repository keeps the single "which bill was open" record in a bolt file.
type Repository struct {
	db *bolt.DB
}

func New(dbFile string) (*Repository, error) {
	if err := os.MkdirAll(filepath.Dir(dbFile), 0700); err != nil {
		return nil, err
	}
	db, err := bolt.Open(dbFile, 0600, &bolt.Options{Timeout: 3 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt DB %s: %w", dbFile, err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketResume)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create db buckets: %w", err)
	}
	return &Repository{db: db}, nil
}

func (repo *Repository) Save(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("%w: empty bill id", domain.ErrInvalidInput)
	}
	data, err := json.Marshal(domain.OpenBillRef{ID: id})
	if err != nil {
		return err
	}
	err = repo.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketResume).Put(keyOpenBill, data)
	})
	if err != nil {
		zap.L().Error("can't save open bill", zap.String("billID", id), zap.Error(err))
	}
	return err
}

// Load returns false when nothing is stored. A corrupt record is dropped and reported as absent.
func (repo *Repository) Load(ctx context.Context) (domain.OpenBillRef, bool, error) {
	var data []byte
	err := repo.db.View(func(tx *bolt.Tx) error {
		if v := tx.Bucket(bucketResume).Get(keyOpenBill); v != nil {
			data = append([]byte(nil), v...)
		}
		return nil
	})
	if err != nil || data == nil {
		return domain.OpenBillRef{}, false, err
	}

	var ref domain.OpenBillRef
	if err := json.Unmarshal(data, &ref); err != nil || ref.ID == "" {
		zap.L().Warn("Dropping unreadable open bill record", zap.ByteString("record", data))
		return domain.OpenBillRef{}, false, repo.Clear(ctx)
	}
	return ref, true, nil
}

func (repo *Repository) Clear(ctx context.Context) error {
	return repo.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketResume).Delete(keyOpenBill)
	})
}

// ClearIf removes the record only while it still points at id, so a stale snapshot of an old bill
// cannot wipe the pointer to a newer one.
func (repo *Repository) ClearIf(ctx context.Context, id string) error {
	return repo.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketResume)
		v := b.Get(keyOpenBill)
		if v == nil {
			return nil
		}
		var ref domain.OpenBillRef
		if err := json.Unmarshal(v, &ref); err == nil && ref.ID != id {
			return nil
		}
		return b.Delete(keyOpenBill)
	})
}

func (repo *Repository) Close() error {
	return repo.db.Close()
}
