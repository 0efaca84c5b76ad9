package repository

import (
	"context"
	"database/sql"

	"github.com/ticketline/ticket-shop/internal/model"
)

// UserRepo provides read-only access to user records. Users are created by
// setup processes outside this service.
type UserRepo struct {
	db *sql.DB
}

// NewUserRepo returns a new UserRepo bound to the given database.
func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{db: db} }

// List returns all users in simplified form, ordered by id.
func (r *UserRepo) List(ctx context.Context) ([]model.SimplifiedUser, error) {
	const q = `SELECT id, first_name, last_name, city, country_code
               FROM user
               ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]model.SimplifiedUser, 0)
	for rows.Next() {
		var u model.SimplifiedUser
		if err := rows.Scan(&u.ID, &u.FirstName, &u.LastName, &u.City, &u.CountryCode); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return users, nil
}

// GetByID returns one user in full. Returns ErrUserNotFound when the id
// does not resolve.
func (r *UserRepo) GetByID(ctx context.Context, userID uint64) (*model.User, error) {
	const q = `SELECT id, first_name, last_name, address, city, region, country_code, timezone
               FROM user
               WHERE id = ?`
	var u model.User
	var region sql.NullString
	err := r.db.QueryRowContext(ctx, q, userID).Scan(
		&u.ID, &u.FirstName, &u.LastName, &u.Address, &u.City, &region, &u.CountryCode, &u.Timezone,
	)
	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	if region.Valid {
		rg := region.String
		u.Region = &rg
	}
	return &u, nil
}
