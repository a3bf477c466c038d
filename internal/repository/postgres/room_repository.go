package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hotelops/hms-backend/internal/domain"
)

type RoomRepository struct {
	db *DB
}

func NewRoomRepository(db *DB) *RoomRepository {
	return &RoomRepository{db: db}
}

func (r *RoomRepository) Create(ctx context.Context, room *domain.Room) error {
	query := `
		INSERT INTO rooms (id, number, room_type, rate, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
	`
	if _, err := r.db.ExecContext(ctx, query,
		room.ID, room.Number, room.RoomType, room.Rate, room.Status,
	); err != nil {
		return fmt.Errorf("failed to insert room: %w", err)
	}
	return nil
}

func (r *RoomRepository) List(ctx context.Context, status string) ([]domain.Room, error) {
	query := `
		SELECT id, number, room_type, rate, status, created_at, updated_at
		FROM rooms
	`
	var args []interface{}
	if status != "" {
		query += " WHERE status = $1"
		args = append(args, status)
	}
	query += " ORDER BY number"

	var rooms []domain.Room
	if err := r.db.SelectContext(ctx, &rooms, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}
	return rooms, nil
}

// CheckIn creates the guest and marks the room occupied in one transaction.
func (r *RoomRepository) CheckIn(ctx context.Context, guest *domain.Guest) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx,
			"UPDATE rooms SET status = 'occupied', updated_at = NOW() WHERE id = $1 AND status = 'available'",
			guest.RoomID)
		if err != nil {
			return fmt.Errorf("failed to occupy room: %w", err)
		}
		if rows, _ := result.RowsAffected(); rows == 0 {
			return fmt.Errorf("room %s: %w", guest.RoomID, ErrRoomUnavailable)
		}

		if _, err := tx.ExecContext(ctx,
			`INSERT INTO guests (id, room_id, name, phone, checked_in)
			 VALUES ($1, $2, $3, $4, NOW())`,
			guest.ID, guest.RoomID, guest.Name, guest.Phone,
		); err != nil {
			return fmt.Errorf("failed to insert guest: %w", err)
		}
		return nil
	})
}

// CheckOut closes the guest stay and frees the room.
func (r *RoomRepository) CheckOut(ctx context.Context, guestID string) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		var roomID string
		err := tx.QueryRowContext(ctx,
			"UPDATE guests SET checked_out = NOW() WHERE id = $1 AND checked_out IS NULL RETURNING room_id",
			guestID).Scan(&roomID)
		if err == sql.ErrNoRows {
			return fmt.Errorf("guest %s not checked in: %w", guestID, ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("failed to check out guest: %w", err)
		}

		if _, err := tx.ExecContext(ctx,
			"UPDATE rooms SET status = 'available', updated_at = NOW() WHERE id = $1", roomID); err != nil {
			return fmt.Errorf("failed to free room: %w", err)
		}
		return nil
	})
}

func (r *RoomRepository) CurrentGuests(ctx context.Context) ([]domain.Guest, error) {
	query := `
		SELECT id, room_id, name, phone, checked_in, checked_out
		FROM guests
		WHERE checked_out IS NULL
		ORDER BY checked_in DESC
	`

	var guests []domain.Guest
	if err := r.db.SelectContext(ctx, &guests, query); err != nil {
		return nil, fmt.Errorf("failed to list current guests: %w", err)
	}
	return guests, nil
}
