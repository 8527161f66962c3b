package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"vconnect/internal/models"
)

var userColumns = []string{
	"user_id", "name", "email", "password_hash", "dob", "country",
	"profile_pic", "bio", "disabled", "number_of_posts",
	"friend_list", "friend_request", "refresh_token", "refresh_token_expiry_time",
}

func addUserRow(rows *sqlmock.Rows, user *models.User) *sqlmock.Rows {
	return rows.AddRow(
		user.UserID, user.Name, user.Email, user.PasswordHash, user.Dob, user.Country,
		user.ProfilePic, user.Bio, user.Disabled, user.NumberOfPosts,
		"{}", "{}", user.RefreshToken, user.RefreshTokenExpiryTime,
	)
}

func TestUserRepository_CreateUser(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	defer db.Close()

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	repo := NewUserRepository(sqlxDB)

	ctx := context.Background()

	password := "password123"

	// Создаем пользователя БЕЗ предустановленного ID
	user := &models.User{
		Name:          "ivan",
		Email:         "test@example.com",
		Dob:           "2000-01-01",
		Country:       "RU",
		ProfilePic:    "pic.png",
		FriendList:    pq.StringArray{},
		FriendRequest: pq.StringArray{},
	}

	insertQuery := `
		INSERT INTO users (user_id, name, email, password_hash, dob, country, profile_pic, bio,
			disabled, number_of_posts, friend_list, friend_request, refresh_token, refresh_token_expiry_time)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	t.Run("Успешное создание пользователя", func(t *testing.T) {
		mock.ExpectExec(insertQuery).
			WithArgs(
				sqlmock.AnyArg(), // user_id будет сгенерирован в репозитории
				user.Name,
				user.Email,
				sqlmock.AnyArg(), // password_hash
				user.Dob,
				user.Country,
				user.ProfilePic,
				user.Bio,
				user.Disabled,
				user.NumberOfPosts,
				sqlmock.AnyArg(),
				sqlmock.AnyArg(),
				user.RefreshToken,
				user.RefreshTokenExpiryTime,
			).
			WillReturnResult(sqlmock.NewResult(1, 1))

		err := repo.CreateUser(ctx, user, password)

		assert.NoError(t, err)
		assert.NotEmpty(t, user.UserID) // Проверяем что ID был сгенерирован
		assert.NotEqual(t, password, user.PasswordHash)

		err = mock.ExpectationsWereMet()
		assert.NoError(t, err)
	})

	t.Run("Ошибка при дублировании email", func(t *testing.T) {
		user2 := &models.User{
			Name:          "ivan2",
			Email:         "test@example.com",
			FriendList:    pq.StringArray{},
			FriendRequest: pq.StringArray{},
		}

		mock.ExpectExec(insertQuery).
			WillReturnError(errors.New(`duplicate key value violates unique constraint "users_email_key"`))

		err := repo.CreateUser(ctx, user2, password)

		assert.Error(t, err)
		assert.ErrorIs(t, err, ErrAlreadyExists)
		assert.Contains(t, err.Error(), "email")
	})

	t.Run("Ошибка при дублировании имени", func(t *testing.T) {
		user3 := &models.User{
			Name:          "ivan",
			Email:         "other@example.com",
			FriendList:    pq.StringArray{},
			FriendRequest: pq.StringArray{},
		}

		mock.ExpectExec(insertQuery).
			WillReturnError(errors.New(`duplicate key value violates unique constraint "users_name_key"`))

		err := repo.CreateUser(ctx, user3, password)

		assert.Error(t, err)
		assert.ErrorIs(t, err, ErrAlreadyExists)
		assert.Contains(t, err.Error(), "имя")
	})
}

func TestUserRepository_GetUserByID(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	defer db.Close()

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	repo := NewUserRepository(sqlxDB)

	ctx := context.Background()
	userID := uuid.New().String()
	expectedUser := &models.User{
		UserID:                 userID,
		Name:                   "ivan",
		Email:                  "test@example.com",
		PasswordHash:           "hashed_password",
		RefreshTokenExpiryTime: time.Now().Add(24 * time.Hour),
	}

	t.Run("Успешное получение пользователя по ID", func(t *testing.T) {
		rows := addUserRow(sqlmock.NewRows(userColumns), expectedUser)

		mock.ExpectQuery(`SELECT * FROM users WHERE user_id = $1`).
			WithArgs(userID).
			WillReturnRows(rows)

		user, err := repo.GetUserByID(ctx, userID)

		require.NoError(t, err)
		assert.Equal(t, expectedUser.UserID, user.UserID)
		assert.Equal(t, expectedUser.Name, user.Name)
		assert.Equal(t, expectedUser.Email, user.Email)

		err = mock.ExpectationsWereMet()
		assert.NoError(t, err)
	})

	t.Run("Пользователь не найден", func(t *testing.T) {
		mock.ExpectQuery(`SELECT * FROM users WHERE user_id = $1`).
			WithArgs(userID).
			WillReturnError(sql.ErrNoRows)

		user, err := repo.GetUserByID(ctx, userID)

		assert.Error(t, err)
		assert.Nil(t, user)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("Ошибка базы данных", func(t *testing.T) {
		mock.ExpectQuery(`SELECT * FROM users WHERE user_id = $1`).
			WithArgs(userID).
			WillReturnError(errors.New("connection failed"))

		user, err := repo.GetUserByID(ctx, userID)

		assert.Error(t, err)
		assert.Nil(t, user)
		assert.Contains(t, err.Error(), "ошибка при получении пользователя")
	})
}

func TestUserRepository_VerifyPassword(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	defer db.Close()

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	repo := NewUserRepository(sqlxDB)

	ctx := context.Background()
	email := "test@example.com"
	password := "correct_password"
	wrongPassword := "wrong_password"

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	require.NoError(t, err)

	storedUser := &models.User{
		UserID:       uuid.New().String(),
		Name:         "ivan",
		Email:        email,
		PasswordHash: string(hashedPassword),
	}

	t.Run("Успешная проверка пароля", func(t *testing.T) {
		rows := addUserRow(sqlmock.NewRows(userColumns), storedUser)

		mock.ExpectQuery(`SELECT * FROM users WHERE email = $1`).
			WithArgs(email).
			WillReturnRows(rows)

		user, err := repo.VerifyPassword(ctx, email, password)

		require.NoError(t, err)
		assert.Equal(t, email, user.Email)
	})

	t.Run("Неверный пароль", func(t *testing.T) {
		rows := addUserRow(sqlmock.NewRows(userColumns), storedUser)

		mock.ExpectQuery(`SELECT * FROM users WHERE email = $1`).
			WithArgs(email).
			WillReturnRows(rows)

		user, err := repo.VerifyPassword(ctx, email, wrongPassword)

		assert.Error(t, err)
		assert.Nil(t, user)
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("Пользователь не найден", func(t *testing.T) {
		mock.ExpectQuery(`SELECT * FROM users WHERE email = $1`).
			WithArgs(email).
			WillReturnError(sql.ErrNoRows)

		user, err := repo.VerifyPassword(ctx, email, password)

		assert.Error(t, err)
		assert.Nil(t, user)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestUserRepository_UpdateDetails(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	defer db.Close()

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	repo := NewUserRepository(sqlxDB)

	ctx := context.Background()
	userID := uuid.New().String()

	query := `UPDATE users SET bio = $1, profile_pic = $2 WHERE user_id = $3`

	t.Run("Успешное обновление профиля", func(t *testing.T) {
		mock.ExpectExec(query).
			WithArgs("новое био", "pic.png", userID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.UpdateDetails(ctx, userID, "новое био", "pic.png")

		assert.NoError(t, err)
	})

	t.Run("Пользователь не найден при обновлении", func(t *testing.T) {
		mock.ExpectExec(query).
			WithArgs("био", "pic.png", userID).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.UpdateDetails(ctx, userID, "био", "pic.png")

		assert.Error(t, err)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestUserRepository_SetDisabled(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	defer db.Close()

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	repo := NewUserRepository(sqlxDB)

	ctx := context.Background()
	userID := uuid.New().String()

	t.Run("Включение аккаунта при входе", func(t *testing.T) {
		mock.ExpectExec(`UPDATE users SET disabled = $1 WHERE user_id = $2`).
			WithArgs(false, userID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.SetDisabled(ctx, userID, false)

		assert.NoError(t, err)
	})

	t.Run("Отключение аккаунта при выходе", func(t *testing.T) {
		mock.ExpectExec(`UPDATE users SET disabled = $1 WHERE user_id = $2`).
			WithArgs(true, userID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.SetDisabled(ctx, userID, true)

		assert.NoError(t, err)
	})
}

func TestUserRepository_GetUserByRefreshToken(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	defer db.Close()

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	repo := NewUserRepository(sqlxDB)

	ctx := context.Background()
	refreshToken := "valid_refresh_token"

	query := `SELECT * FROM users WHERE refresh_token = $1 AND refresh_token_expiry_time > CURRENT_TIMESTAMP`

	t.Run("Успешное получение по валидному refresh token", func(t *testing.T) {
		storedUser := &models.User{
			UserID:                 uuid.New().String(),
			Name:                   "ivan",
			Email:                  "test@example.com",
			RefreshToken:           refreshToken,
			RefreshTokenExpiryTime: time.Now().Add(1 * time.Hour),
		}
		rows := addUserRow(sqlmock.NewRows(userColumns), storedUser)

		mock.ExpectQuery(query).
			WithArgs(refreshToken).
			WillReturnRows(rows)

		user, err := repo.GetUserByRefreshToken(ctx, refreshToken)

		require.NoError(t, err)
		assert.Equal(t, refreshToken, user.RefreshToken)
	})

	t.Run("Просроченный refresh token", func(t *testing.T) {
		mock.ExpectQuery(query).
			WithArgs("expired_refresh_token").
			WillReturnError(sql.ErrNoRows)

		user, err := repo.GetUserByRefreshToken(ctx, "expired_refresh_token")

		assert.Error(t, err)
		assert.Nil(t, user)
		assert.Contains(t, err.Error(), "недействительный или просроченный")
	})
}

func TestUserRepository_SearchByName(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	defer db.Close()

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	repo := NewUserRepository(sqlxDB)

	ctx := context.Background()

	query := `SELECT * FROM users WHERE name ILIKE $1 || '%' AND disabled = FALSE ORDER BY name`

	t.Run("Поиск по префиксу имени", func(t *testing.T) {
		rows := sqlmock.NewRows(userColumns)
		addUserRow(rows, &models.User{UserID: "u1", Name: "anna"})
		addUserRow(rows, &models.User{UserID: "u2", Name: "anton"})

		mock.ExpectQuery(query).
			WithArgs("an").
			WillReturnRows(rows)

		users, err := repo.SearchByName(ctx, "an")

		require.NoError(t, err)
		require.Len(t, users, 2)
		assert.Equal(t, "anna", users[0].Name)
		assert.Equal(t, "anton", users[1].Name)
	})

	t.Run("Пустой результат поиска", func(t *testing.T) {
		mock.ExpectQuery(query).
			WithArgs("zzz").
			WillReturnRows(sqlmock.NewRows(userColumns))

		users, err := repo.SearchByName(ctx, "zzz")

		require.NoError(t, err)
		assert.Empty(t, users)
	})
}

func TestUserRepository_GetUsersByIDs(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	defer db.Close()

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	repo := NewUserRepository(sqlxDB)

	ctx := context.Background()

	query := `SELECT * FROM users WHERE user_id = ANY($1)`

	t.Run("Порядок результата соответствует порядку входных ID", func(t *testing.T) {
		// БД возвращает строки в произвольном порядке
		rows := sqlmock.NewRows(userColumns)
		addUserRow(rows, &models.User{UserID: "u2", Name: "boris"})
		addUserRow(rows, &models.User{UserID: "u1", Name: "anna"})

		mock.ExpectQuery(query).
			WithArgs(sqlmock.AnyArg()).
			WillReturnRows(rows)

		users, err := repo.GetUsersByIDs(ctx, []string{"u1", "u2"})

		require.NoError(t, err)
		require.Len(t, users, 2)
		assert.Equal(t, "u1", users[0].UserID)
		assert.Equal(t, "u2", users[1].UserID)
	})

	t.Run("Отсутствующие ID пропускаются", func(t *testing.T) {
		rows := sqlmock.NewRows(userColumns)
		addUserRow(rows, &models.User{UserID: "u1", Name: "anna"})

		mock.ExpectQuery(query).
			WithArgs(sqlmock.AnyArg()).
			WillReturnRows(rows)

		users, err := repo.GetUsersByIDs(ctx, []string{"missing", "u1"})

		require.NoError(t, err)
		require.Len(t, users, 1)
		assert.Equal(t, "u1", users[0].UserID)
	})

	t.Run("Пустой список ID без запроса к БД", func(t *testing.T) {
		users, err := repo.GetUsersByIDs(ctx, nil)

		require.NoError(t, err)
		assert.Empty(t, users)
	})
}

//go test ./internal/repository/... -v
