package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"vconnect/internal/models"
)

type PostRepositoryImpl struct {
	db            *sqlx.DB
	notifications NotificationRepository
}

type CreatePostRequest struct {
	Body      string `json:"body"`
	Picture   string `json:"picture"`
	Public    bool   `json:"public"`
	Weight    string `json:"weight"`
	Style     string `json:"style"`
	MediaType string `json:"mediaType"`
}

func NewPostRepository(db *sqlx.DB, notifications NotificationRepository) *PostRepositoryImpl {
	return &PostRepositoryImpl{db: db, notifications: notifications}
}

// Столбцы обогащенной выборки: пост + автор + оригинал репоста + автор оригинала.
// Репост разворачивается на один уровень, цепочки репостов не прослеживаются.
const feedColumns = `
	p.post_id, p.uid, p.body, p.picture, p.public, p.weight, p.style, p.media_type,
	p.shared_post, p.likes, p.shares, p.date_added,
	u.user_id AS author_id, u.name AS author_name, u.profile_pic AS author_profile_pic, u.bio AS author_bio,
	sp.post_id AS sp_post_id, sp.uid AS sp_uid, sp.body AS sp_body, sp.picture AS sp_picture,
	sp.public AS sp_public, sp.weight AS sp_weight, sp.style AS sp_style, sp.media_type AS sp_media_type,
	sp.likes AS sp_likes, sp.shares AS sp_shares, sp.date_added AS sp_date_added,
	su.user_id AS sp_author_id, su.name AS sp_author_name, su.profile_pic AS sp_author_profile_pic, su.bio AS sp_author_bio`

const feedJoins = `
	FROM posts p
	JOIN users u ON u.user_id = p.uid
	LEFT JOIN posts sp ON sp.post_id = p.shared_post
	LEFT JOIN users su ON su.user_id = sp.uid`

// feedRow - плоская строка обогащенной выборки; поля sp_* становятся NULL,
// когда пост не является репостом
type feedRow struct {
	models.Post
	AuthorID         string `db:"author_id"`
	AuthorName       string `db:"author_name"`
	AuthorProfilePic string `db:"author_profile_pic"`
	AuthorBio        string `db:"author_bio"`

	SharedPostID         sql.NullString `db:"sp_post_id"`
	SharedUID            sql.NullString `db:"sp_uid"`
	SharedBody           sql.NullString `db:"sp_body"`
	SharedPicture        sql.NullString `db:"sp_picture"`
	SharedPublic         sql.NullBool   `db:"sp_public"`
	SharedWeight         sql.NullString `db:"sp_weight"`
	SharedStyle          sql.NullString `db:"sp_style"`
	SharedMediaType      sql.NullString `db:"sp_media_type"`
	SharedLikes          pq.StringArray `db:"sp_likes"`
	SharedShares         pq.StringArray `db:"sp_shares"`
	SharedDateAdded      sql.NullTime   `db:"sp_date_added"`
	SharedAuthorID       sql.NullString `db:"sp_author_id"`
	SharedAuthorName     sql.NullString `db:"sp_author_name"`
	SharedAuthorPic      sql.NullString `db:"sp_author_profile_pic"`
	SharedAuthorBio      sql.NullString `db:"sp_author_bio"`
}

// toFeedPost converts the flat row into the enriched view: the explicit step
// from bare references to resolved author and reshare origin.
func (row feedRow) toFeedPost() models.FeedPost {
	fp := models.FeedPost{
		Post: row.Post,
		User: models.UserSummary{
			UserID:     row.AuthorID,
			Name:       row.AuthorName,
			ProfilePic: row.AuthorProfilePic,
			Bio:        row.AuthorBio,
		},
	}

	if row.SharedPostID.Valid {
		fp.Shared = &models.SharedPost{
			Post: models.Post{
				PostID:    row.SharedPostID.String,
				UID:       row.SharedUID.String,
				Body:      row.SharedBody.String,
				Picture:   row.SharedPicture.String,
				Public:    row.SharedPublic.Bool,
				Weight:    row.SharedWeight.String,
				Style:     row.SharedStyle.String,
				MediaType: row.SharedMediaType.String,
				Likes:     row.SharedLikes,
				Shares:    row.SharedShares,
				DateAdded: row.SharedDateAdded.Time,
			},
			User: models.UserSummary{
				UserID:     row.SharedAuthorID.String,
				Name:       row.SharedAuthorName.String,
				ProfilePic: row.SharedAuthorPic.String,
				Bio:        row.SharedAuthorBio.String,
			},
		}
	}

	return fp
}

func toFeedPosts(rows []feedRow) []models.FeedPost {
	posts := make([]models.FeedPost, 0, len(rows))
	for _, row := range rows {
		posts = append(posts, row.toFeedPost())
	}
	return posts
}

// Create increments the author's post count and inserts the post in one
// transaction: if the increment fails, the post is not created.
func (r *PostRepositoryImpl) Create(ctx context.Context, post *models.Post) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("ошибка при открытии транзакции: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `UPDATE users SET number_of_posts = number_of_posts + 1 WHERE user_id = $1`, post.UID)
	if err != nil {
		return fmt.Errorf("ошибка при увеличении счетчика постов: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке обновленных строк: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("пользователь с ID %s %w", post.UID, ErrNotFound)
	}

	if post.PostID == "" {
		post.PostID = uuid.New().String()
	}
	post.DateAdded = time.Now()
	if post.Likes == nil {
		post.Likes = pq.StringArray{}
	}
	if post.Shares == nil {
		post.Shares = pq.StringArray{}
	}

	query := `
		INSERT INTO posts (post_id, uid, body, picture, public, weight, style, media_type, shared_post, likes, shares, date_added)
		VALUES (:post_id, :uid, :body, :picture, :public, :weight, :style, :media_type, :shared_post, :likes, :shares, :date_added)
	`

	_, err = tx.NamedExecContext(ctx, query, post)
	if err != nil {
		return fmt.Errorf("ошибка при создании поста: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("ошибка при фиксации транзакции: %w", err)
	}

	return nil
}

// CreateShared inserts a reshare: the author's post count is incremented, the
// sharer's id is appended to the origin's shares set and the new post row
// references the origin. All three writes commit or roll back together.
func (r *PostRepositoryImpl) CreateShared(ctx context.Context, post *models.Post) error {
	if post.SharedPost == nil {
		return fmt.Errorf("не указан оригинальный пост")
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("ошибка при открытии транзакции: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `UPDATE users SET number_of_posts = number_of_posts + 1 WHERE user_id = $1`, post.UID)
	if err != nil {
		return fmt.Errorf("ошибка при увеличении счетчика постов: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке обновленных строк: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("пользователь с ID %s %w", post.UID, ErrNotFound)
	}

	result, err = tx.ExecContext(ctx, `UPDATE posts SET shares = array_append(shares, $1) WHERE post_id = $2`, post.UID, *post.SharedPost)
	if err != nil {
		return fmt.Errorf("ошибка при обновлении репостов: %w", err)
	}

	rowsAffected, err = result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке обновленных строк: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("пост с ID %s %w", *post.SharedPost, ErrNotFound)
	}

	if post.PostID == "" {
		post.PostID = uuid.New().String()
	}
	post.DateAdded = time.Now()
	if post.Likes == nil {
		post.Likes = pq.StringArray{}
	}
	if post.Shares == nil {
		post.Shares = pq.StringArray{}
	}

	query := `
		INSERT INTO posts (post_id, uid, body, picture, public, weight, style, media_type, shared_post, likes, shares, date_added)
		VALUES (:post_id, :uid, :body, :picture, :public, :weight, :style, :media_type, :shared_post, :likes, :shares, :date_added)
	`

	_, err = tx.NamedExecContext(ctx, query, post)
	if err != nil {
		return fmt.Errorf("ошибка при создании репоста: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("ошибка при фиксации транзакции: %w", err)
	}

	return nil
}

func (r *PostRepositoryImpl) GetByID(ctx context.Context, postID string) (*models.FeedPost, error) {
	query := `SELECT` + feedColumns + feedJoins + `
	WHERE p.post_id = $1`

	var row feedRow
	err := r.db.GetContext(ctx, &row, query, postID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("пост с ID %s %w", postID, ErrNotFound)
		}
		return nil, fmt.Errorf("ошибка при получении поста: %w", err)
	}

	post := row.toFeedPost()
	return &post, nil
}

// GetGlobalFeed returns the posts the viewer may see, newest first. The
// visibility rule is evaluated against the author's friend list: the viewer's
// own posts are excluded, disabled authors are excluded, and a private post is
// visible only when the viewer is in the author's friend list.
func (r *PostRepositoryImpl) GetGlobalFeed(ctx context.Context, viewerID string) ([]models.FeedPost, error) {
	query := `SELECT` + feedColumns + feedJoins + `
	WHERE p.uid <> $1 AND u.disabled = FALSE AND (p.public = TRUE OR $1 = ANY(u.friend_list))
	ORDER BY p.date_added DESC`

	var rows []feedRow
	err := r.db.SelectContext(ctx, &rows, query, viewerID)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении ленты: %w", err)
	}

	return toFeedPosts(rows), nil
}

// GetUserFeed returns the user's own posts without visibility filtering.
func (r *PostRepositoryImpl) GetUserFeed(ctx context.Context, userID string) ([]models.FeedPost, error) {
	query := `SELECT` + feedColumns + feedJoins + `
	WHERE p.uid = $1
	ORDER BY p.date_added DESC`

	var rows []feedRow
	err := r.db.SelectContext(ctx, &rows, query, userID)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении постов пользователя: %w", err)
	}

	return toFeedPosts(rows), nil
}

// GetOtherUserFeed returns the target user's posts visible to the viewer.
func (r *PostRepositoryImpl) GetOtherUserFeed(ctx context.Context, targetID, viewerID string) ([]models.FeedPost, error) {
	query := `SELECT` + feedColumns + feedJoins + `
	WHERE p.uid = $1 AND (p.public = TRUE OR $2 = ANY(u.friend_list))
	ORDER BY p.date_added DESC`

	var rows []feedRow
	err := r.db.SelectContext(ctx, &rows, query, targetID, viewerID)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении постов пользователя: %w", err)
	}

	return toFeedPosts(rows), nil
}

// Like appends the user to the post's likes set and notifies the author.
// array_append не устраняет дубликаты: повторный лайк добавляет вторую запись.
func (r *PostRepositoryImpl) Like(ctx context.Context, userID, postID string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("ошибка при открытии транзакции: %w", err)
	}
	defer tx.Rollback()

	var authorID string
	err = tx.GetContext(ctx, &authorID, `UPDATE posts SET likes = array_append(likes, $1) WHERE post_id = $2 RETURNING uid`, userID, postID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("пост с ID %s %w", postID, ErrNotFound)
		}
		return fmt.Errorf("ошибка при добавлении лайка: %w", err)
	}

	var actorName string
	err = tx.GetContext(ctx, &actorName, `SELECT name FROM users WHERE user_id = $1`, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("пользователь с ID %s %w", userID, ErrNotFound)
		}
		return fmt.Errorf("ошибка при получении пользователя: %w", err)
	}

	err = r.notifications.Add(ctx, tx, authorID, actorName, models.NotificationLike)
	if err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("ошибка при фиксации транзакции: %w", err)
	}

	return nil
}

// Unlike removes all occurrences of the user from the likes set. Removing a
// user that never liked the post is a no-op. No notification is produced.
func (r *PostRepositoryImpl) Unlike(ctx context.Context, userID, postID string) error {
	result, err := r.db.ExecContext(ctx, `UPDATE posts SET likes = array_remove(likes, $1) WHERE post_id = $2`, userID, postID)
	if err != nil {
		return fmt.Errorf("ошибка при удалении лайка: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке обновленных строк: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("пост с ID %s %w", postID, ErrNotFound)
	}

	return nil
}
