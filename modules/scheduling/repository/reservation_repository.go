package repository

import (
	"context"
	"database/sql"
	stderrors "errors"
	"time"

	"go-interview-crm/core/database"
	"go-interview-crm/core/logger"
	"go-interview-crm/modules/scheduling/entity"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const reservationColumns = `
	id, public_code, conversation_id, contact_id, start_at, end_at,
	timezone, location, location_key, status, active_key, created_at, updated_at
`

// ReservationTxOps are the operations available inside one booking
// transaction.
type ReservationTxOps interface {
	FindActiveByConversation(ctx context.Context, conversationID string) (*entity.Reservation, error)
	Create(ctx context.Context, r *entity.Reservation) error
	RefreshSlot(ctx context.Context, id uuid.UUID, endAt time.Time, timezone string) error
	Demote(ctx context.Context, id uuid.UUID, status entity.ReservationStatus) error
}

// ReservationRepositoryInterface defines the reservation store contract.
type ReservationRepositoryInterface interface {
	// WithinTransaction runs fn inside one database transaction. Errors from
	// fn and from the commit itself are both returned unwrapped so the caller
	// can inspect them for unique violations.
	WithinTransaction(ctx context.Context, fn func(ops ReservationTxOps) error) error
	FindActiveByConversation(ctx context.Context, conversationID string) (*entity.Reservation, error)
	// FindByInstants is a single batched lookup of active reservations whose
	// start instant is in the given set and whose location matches.
	FindByInstants(ctx context.Context, instants []time.Time, locationKey string) ([]entity.Reservation, error)
	Confirm(ctx context.Context, id uuid.UUID) error
	Release(ctx context.Context, id uuid.UUID, status entity.ReservationStatus) error
}

type ReservationRepository struct {
	db database.IDatabase
}

func NewReservationRepository(db database.IDatabase) ReservationRepositoryInterface {
	return &ReservationRepository{db: db}
}

// IsUniqueViolation reports whether err is a postgres unique constraint
// violation (SQLSTATE 23505). Only this failure kind is translated into a
// booking conflict; everything else propagates.
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if stderrors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return false
}

func (r *ReservationRepository) WithinTransaction(ctx context.Context, fn func(ops ReservationTxOps) error) error {
	return r.db.WithinTransaction(ctx, func(tx *sqlx.Tx) error {
		return fn(&reservationTxOps{tx: tx})
	})
}

func (r *ReservationRepository) FindActiveByConversation(ctx context.Context, conversationID string) (*entity.Reservation, error) {
	query := `
		SELECT ` + reservationColumns + `
		FROM reservations
		WHERE conversation_id = $1 AND active_key = 'ACTIVE'
	`

	var reservation entity.Reservation
	err := r.db.GetContext(ctx, &reservation, query, conversationID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("ReservationRepository:FindActiveByConversation:Error", "error", err)
		return nil, err
	}

	return &reservation, nil
}

func (r *ReservationRepository) FindByInstants(ctx context.Context, instants []time.Time, locationKey string) ([]entity.Reservation, error) {
	if len(instants) == 0 {
		return nil, nil
	}

	query := `
		SELECT ` + reservationColumns + `
		FROM reservations
		WHERE active_key = 'ACTIVE' AND location_key = $1 AND start_at = ANY($2)
	`

	var reservations []entity.Reservation
	err := r.db.SelectContext(ctx, &reservations, query, locationKey, pq.Array(instants))
	if err != nil {
		logger.Error("ReservationRepository:FindByInstants:Error", "error", err)
		return nil, err
	}

	return reservations, nil
}

func (r *ReservationRepository) Confirm(ctx context.Context, id uuid.UUID) error {
	// active_key stays set: a confirmed interview still occupies the
	// conversation's single active slot.
	query := `UPDATE reservations SET status = $2, updated_at = NOW() WHERE id = $1`

	err := r.db.ExecContext(ctx, query, id, entity.ReservationStatusConfirmed)
	if err != nil {
		logger.Error("ReservationRepository:Confirm:Error", "error", err, "id", id)
		return err
	}
	return nil
}

func (r *ReservationRepository) Release(ctx context.Context, id uuid.UUID, status entity.ReservationStatus) error {
	query := `UPDATE reservations SET status = $2, active_key = NULL, updated_at = NOW() WHERE id = $1`

	err := r.db.ExecContext(ctx, query, id, status)
	if err != nil {
		logger.Error("ReservationRepository:Release:Error", "error", err, "id", id)
		return err
	}
	return nil
}

// ===================== Transactional operations =====================

type reservationTxOps struct {
	tx *sqlx.Tx
}

func (o *reservationTxOps) FindActiveByConversation(ctx context.Context, conversationID string) (*entity.Reservation, error) {
	query := `
		SELECT ` + reservationColumns + `
		FROM reservations
		WHERE conversation_id = $1 AND active_key = 'ACTIVE'
		FOR UPDATE
	`

	var reservation entity.Reservation
	err := o.tx.GetContext(ctx, &reservation, query, conversationID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return &reservation, nil
}

func (o *reservationTxOps) Create(ctx context.Context, res *entity.Reservation) error {
	query := `
		INSERT INTO reservations (public_code, conversation_id, contact_id, start_at, end_at,
		                          timezone, location, location_key, status, active_key)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, updated_at
	`

	return o.tx.QueryRowxContext(ctx, query,
		res.PublicCode, res.ConversationID, res.ContactID, res.StartAt, res.EndAt,
		res.Timezone, res.Location, res.LocationKey, res.Status, res.ActiveKey,
	).Scan(&res.ID, &res.CreatedAt, &res.UpdatedAt)
}

func (o *reservationTxOps) RefreshSlot(ctx context.Context, id uuid.UUID, endAt time.Time, timezone string) error {
	query := `
		UPDATE reservations
		SET status = $2, end_at = $3, timezone = $4, updated_at = NOW()
		WHERE id = $1
	`

	_, err := o.tx.ExecContext(ctx, query, id, entity.ReservationStatusPending, endAt, timezone)
	return err
}

func (o *reservationTxOps) Demote(ctx context.Context, id uuid.UUID, status entity.ReservationStatus) error {
	query := `
		UPDATE reservations
		SET status = $2, active_key = NULL, updated_at = NOW()
		WHERE id = $1
	`

	_, err := o.tx.ExecContext(ctx, query, id, status)
	return err
}
