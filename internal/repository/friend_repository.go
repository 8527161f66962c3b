package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"vconnect/internal/models"
)

type friendRepository struct {
	db            *sqlx.DB
	notifications NotificationRepository
}

func NewFriendRepository(db *sqlx.DB, notifications NotificationRepository) FriendRepository {
	return &friendRepository{db: db, notifications: notifications}
}

// SendRequest appends the sender to the target's pending request queue.
// Повторная заявка не накапливается: CASE оставляет массив без изменений,
// если отправитель уже в очереди.
func (r *friendRepository) SendRequest(ctx context.Context, fromID, toID string) error {
	query := `
		UPDATE users
		SET friend_request = CASE WHEN $1 = ANY(friend_request) THEN friend_request ELSE array_append(friend_request, $1) END
		WHERE user_id = $2
	`

	result, err := r.db.ExecContext(ctx, query, fromID, toID)
	if err != nil {
		return fmt.Errorf("ошибка при отправке заявки в друзья: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке обновленных строк: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("пользователь с ID %s %w", toID, ErrNotFound)
	}

	return nil
}

// ConfirmRequest establishes the mutual friendship: the requester is appended
// to the confirmer's friend list and removed from the pending queue, the
// confirmer is appended to the requester's friend list, and the requester gets
// a notification. Both sides commit or neither does, so the friend list stays
// symmetric.
func (r *friendRepository) ConfirmRequest(ctx context.Context, confirmerID, requesterID string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("ошибка при открытии транзакции: %w", err)
	}
	defer tx.Rollback()

	var confirmerName string
	query := `
		UPDATE users
		SET friend_list = CASE WHEN $1 = ANY(friend_list) THEN friend_list ELSE array_append(friend_list, $1) END,
			friend_request = array_remove(friend_request, $1)
		WHERE user_id = $2
		RETURNING name
	`

	err = tx.GetContext(ctx, &confirmerName, query, requesterID, confirmerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("пользователь с ID %s %w", confirmerID, ErrNotFound)
		}
		return fmt.Errorf("ошибка при подтверждении заявки: %w", err)
	}

	query = `
		UPDATE users
		SET friend_list = CASE WHEN $1 = ANY(friend_list) THEN friend_list ELSE array_append(friend_list, $1) END
		WHERE user_id = $2
	`

	result, err := tx.ExecContext(ctx, query, confirmerID, requesterID)
	if err != nil {
		return fmt.Errorf("ошибка при подтверждении заявки: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке обновленных строк: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("пользователь с ID %s %w", requesterID, ErrNotFound)
	}

	err = r.notifications.Add(ctx, tx, requesterID, confirmerName, models.NotificationFriendAccepted)
	if err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("ошибка при фиксации транзакции: %w", err)
	}

	return nil
}

// Unfriend removes each user from the other's friend list. Removing a
// non-member is a no-op, so the operation is idempotent.
func (r *friendRepository) Unfriend(ctx context.Context, userA, userB string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("ошибка при открытии транзакции: %w", err)
	}
	defer tx.Rollback()

	query := `UPDATE users SET friend_list = array_remove(friend_list, $1) WHERE user_id = $2`

	result, err := tx.ExecContext(ctx, query, userB, userA)
	if err != nil {
		return fmt.Errorf("ошибка при удалении из друзей: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке обновленных строк: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("пользователь с ID %s %w", userA, ErrNotFound)
	}

	result, err = tx.ExecContext(ctx, query, userA, userB)
	if err != nil {
		return fmt.Errorf("ошибка при удалении из друзей: %w", err)
	}

	rowsAffected, err = result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке обновленных строк: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("пользователь с ID %s %w", userB, ErrNotFound)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("ошибка при фиксации транзакции: %w", err)
	}

	return nil
}
