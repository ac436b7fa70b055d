package repository

import (
	"database/sql"

	"discussum/internal/model"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// CreateUser inserts the user unless one with the same external id exists.
// It reports whether a new row was written.
func (r *UserRepository) CreateUser(user *model.User) (bool, error) {
	err := r.db.QueryRow(`
		INSERT INTO users(name, user_id)
		VALUES($1, $2)
		ON CONFLICT (user_id) DO NOTHING
		RETURNING id, created_at
	`, user.Name, user.UserID).Scan(&user.ID, &user.CreatedAt)

	if err == sql.ErrNoRows {
		return false, nil
	}

	if err != nil {
		return false, err
	}

	return true, nil
}

func (r *UserRepository) GetUserByExternalID(userID string) (*model.User, error) {
	var u model.User
	err := r.db.QueryRow(`
		SELECT id, name, user_id, created_at
		FROM users
		WHERE user_id = $1
	`, userID).Scan(&u.ID, &u.Name, &u.UserID, &u.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}

	return &u, nil
}

func (r *UserRepository) Ping() error {
	return r.db.Ping()
}
