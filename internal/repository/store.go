package repository

import (
	"context"

	"gorm.io/gorm"
)

// Store groups the board repositories over one database handle.
// Services receive a Store instead of reaching for a global connection.
type Store interface {
	Cards() CardRepository
	Analysts() AnalystRepository
	Transitions() TransitionRepository

	// Transaction runs fn against a Store bound to a single transaction.
	// The transaction commits when fn returns nil and rolls back otherwise.
	Transaction(ctx context.Context, fn func(tx Store) error) error
}

// gormStore GORM 구현체
type gormStore struct {
	db          *gorm.DB
	cards       CardRepository
	analysts    AnalystRepository
	transitions TransitionRepository
}

// NewStore creates a Store backed by db
func NewStore(db *gorm.DB) Store {
	return &gormStore{
		db:          db,
		cards:       NewCardRepository(db),
		analysts:    NewAnalystRepository(db),
		transitions: NewTransitionRepository(db),
	}
}

func (s *gormStore) Cards() CardRepository             { return s.cards }
func (s *gormStore) Analysts() AnalystRepository       { return s.analysts }
func (s *gormStore) Transitions() TransitionRepository { return s.transitions }

// Transaction 트랜잭션 실행
func (s *gormStore) Transaction(ctx context.Context, fn func(tx Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewStore(tx))
	})
}
