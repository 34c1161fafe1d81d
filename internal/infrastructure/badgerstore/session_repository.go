// Package badgerstore guarda sesiones en un almacén embebido Badger; sobreviven reinicios sin requerir PostgreSQL.
package badgerstore

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/dgraph-io/badger/v4"

	"github.com/jhoicas/BateCarga-api/internal/domain"
	"github.com/jhoicas/BateCarga-api/internal/domain/entity"
	"github.com/jhoicas/BateCarga-api/internal/domain/repository"
	"github.com/jhoicas/BateCarga-api/internal/infrastructure/sessioncodec"
)

var _ repository.SessionRepository = (*SessionRepository)(nil)

const keyPrefix = "session:"

// Open abre (o crea) la base Badger en path. Con path vacío se usa modo en memoria.
func Open(path string) (*badger.DB, error) {
	opts := badger.DefaultOptions(path).WithLogger(nil)
	if path == "" {
		opts = badger.DefaultOptions("").WithInMemory(true).WithLogger(nil)
	}
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("abrir badger: %w", err)
	}
	return db, nil
}

// SessionRepository implementa repository.SessionRepository sobre Badger.
type SessionRepository struct {
	db *badger.DB
}

// NewSessionRepository construye el repositorio con una base ya abierta.
func NewSessionRepository(db *badger.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

func key(id string) []byte { return []byte(keyPrefix + id) }

func (r *SessionRepository) Create(ctx context.Context, s *entity.Session) error {
	b, err := sessioncodec.Encode(s)
	if err != nil {
		return err
	}
	return r.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(key(s.ID)); err == nil {
			return domain.ErrDuplicate
		} else if !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}
		return txn.Set(key(s.ID), b)
	})
}

func (r *SessionRepository) GetByID(ctx context.Context, id string) (*entity.Session, error) {
	var out *entity.Session
	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key(id))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return nil
			}
			return err
		}
		return item.Value(func(val []byte) error {
			s, err := sessioncodec.Decode(val)
			if err != nil {
				return err
			}
			out = s
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("badger: leer sesión %s: %w", id, err)
	}
	return out, nil
}

func (r *SessionRepository) Save(ctx context.Context, s *entity.Session) error {
	b, err := sessioncodec.Encode(s)
	if err != nil {
		return err
	}
	return r.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(key(s.ID)); err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return domain.ErrNotFound
			}
			return err
		}
		return txn.Set(key(s.ID), b)
	})
}

func (r *SessionRepository) Delete(ctx context.Context, id string) error {
	return r.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(key(id))
	})
}

func (r *SessionRepository) ListByOperator(ctx context.Context, operatorID string) ([]entity.SessionSummary, error) {
	var out []entity.SessionSummary
	err := r.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()
		prefix := []byte(keyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				s, err := sessioncodec.Decode(val)
				if err != nil {
					return err
				}
				if s.OperatorID == operatorID {
					out = append(out, s.Summary())
				}
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("badger: listar sesiones: %w", err)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	return out, nil
}
