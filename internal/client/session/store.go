package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dmitrijs2005/bloghub/internal/client/repositories/localstore"
	"github.com/dmitrijs2005/bloghub/internal/dbx"
)

// DB is what Store needs from the local database; *sql.DB satisfies it.
type DB interface {
	dbx.DBTX
	dbx.TxBeginner
}

// Store is the storage shim in front of the local key-value table.
type Store struct {
	db  DB
	now func() time.Time
}

func NewStore(db DB) *Store {
	return &Store{db: db, now: time.Now}
}

// Get returns the record stored under key, or nil when there is none. A
// record carrying an expiry is renewed and written back before it is
// returned. Unparseable values are reported as errors.
func (s *Store) Get(ctx context.Context, key string) (Record, error) {
	var out Record

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := localstore.NewSQLiteRepository(tx)

		raw, err := repo.Get(ctx, key)
		if err != nil {
			return err
		}
		if raw == nil {
			return nil
		}

		record, err := decodeRecord(raw)
		if err != nil {
			return fmt.Errorf("parse session %s: %w", key, err)
		}

		if record.HasExpiry() {
			record = Renew(record, s.now())
			b, err := json.Marshal(record)
			if err != nil {
				return err
			}
			if err := repo.Set(ctx, key, b); err != nil {
				return err
			}
		}

		out = record
		return nil
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

// Set renews a non-nil record and persists it under key.
func (s *Store) Set(ctx context.Context, key string, record Record) error {
	if record != nil {
		record = Renew(record, s.now())
	}

	b, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("encode session %s: %w", key, err)
	}

	return localstore.NewSQLiteRepository(s.db).Set(ctx, key, b)
}

// Remove deletes the entry for key.
func (s *Store) Remove(ctx context.Context, key string) error {
	return localstore.NewSQLiteRepository(s.db).Delete(ctx, key)
}
