package repository

import (
	"context"

	"gorm.io/gorm"
)

// Repository aggregates every data-access interface.
type Repository struct {
	db *gorm.DB

	User         UserRepository
	Cantiere     CantiereRepository
	Mezzo        MezzoRepository
	Attrezzatura AttrezzaturaRepository
	Attivita     AttivitaRepository
	Interazione  InterazioneRepository
	Trasporto    TrasportoRepository
	Assenza      AssenzaRepository
	Assegnazione AssegnazioneRepository
}

// NewRepository builds the aggregate over a database handle.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db:           db,
		User:         NewUserRepo(db),
		Cantiere:     NewCantiereRepo(db),
		Mezzo:        NewMezzoRepo(db),
		Attrezzatura: NewAttrezzaturaRepo(db),
		Attivita:     NewAttivitaRepo(db),
		Interazione:  NewInterazioneRepo(db),
		Trasporto:    NewTrasportoRepo(db),
		Assenza:      NewAssenzaRepo(db),
		Assegnazione: NewAssegnazioneRepo(db),
	}
}

// BeginTx opens a transaction. Pass the returned handle to WithTx and either
// Commit or Rollback it.
func (r *Repository) BeginTx(ctx context.Context) (*gorm.DB, error) {
	tx := r.db.WithContext(ctx).Begin()
	return tx, tx.Error
}

// WithTx returns a Repository bound to an open transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return NewRepository(tx)
}

// Transaction runs fn with a Repository bound to a database transaction,
// committing on nil and rolling back on error. An aggregate wired without a
// database handle runs fn directly over the receiver.
func (r *Repository) Transaction(ctx context.Context, fn func(txRepo *Repository) error) error {
	if r.db == nil {
		return fn(r)
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepository(tx))
	})
}
