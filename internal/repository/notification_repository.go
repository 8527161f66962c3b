package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"vconnect/internal/models"
)

type notificationRepository struct {
	db *sqlx.DB
}

func NewNotificationRepository(db *sqlx.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

// Add appends a notification record to the user's sequence. The executor is
// passed in so the insert can run inside the caller's transaction.
func (r *notificationRepository) Add(ctx context.Context, q sqlx.ExtContext, userID, actorName string, notificationType int) error {
	query := `
		INSERT INTO notifications (notification_id, user_id, actor_name, type)
		VALUES ($1, $2, $3, $4)
	`

	_, err := q.ExecContext(ctx, query, uuid.New().String(), userID, actorName, notificationType)
	if err != nil {
		return fmt.Errorf("ошибка при создании уведомления: %w", err)
	}

	return nil
}

func (r *notificationRepository) GetByUserID(ctx context.Context, userID string) ([]models.Notification, error) {
	var notifications []models.Notification

	query := `
		SELECT * FROM notifications
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	err := r.db.SelectContext(ctx, &notifications, query, userID)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении уведомлений: %w", err)
	}

	return notifications, nil
}
