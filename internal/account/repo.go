package account

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrUserNotFound = errors.New("account: user not found")

// User is the local mirror of a server-confirmed identity. The email is the
// lookup key; the password is only ever stored as a bcrypt hash.
type User struct {
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	Surnames     string    `json:"surnames"`
	PasswordHash string    `json:"-"`
	Birthdate    string    `json:"birthdate"`
	Address      string    `json:"address"`
	Image        string    `json:"image"`
	CreatedAt    time.Time `json:"created_at"`
}

type Repo struct{ DB *pgxpool.Pool }

var _ Users = (*Repo)(nil)

func (r *Repo) Get(ctx context.Context, email string) (User, error) {
	var u User
	err := r.DB.QueryRow(ctx, `
		SELECT email, name, surnames, password_hash, birthdate, address, image, created_at
		FROM users WHERE email=$1`, email).
		Scan(&u.Email, &u.Name, &u.Surnames, &u.PasswordHash, &u.Birthdate, &u.Address, &u.Image, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return User{}, ErrUserNotFound
	}
	if err != nil {
		return User{}, err
	}
	return u, nil
}

func (r *Repo) Upsert(ctx context.Context, u User) error {
	_, err := r.DB.Exec(ctx, `
		INSERT INTO users(email, name, surnames, password_hash, birthdate, address, image)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (email) DO UPDATE SET
			name = EXCLUDED.name,
			surnames = EXCLUDED.surnames,
			password_hash = EXCLUDED.password_hash,
			birthdate = EXCLUDED.birthdate,
			address = EXCLUDED.address,
			image = EXCLUDED.image,
			updated_at = now()`,
		u.Email, u.Name, u.Surnames, u.PasswordHash, u.Birthdate, u.Address, u.Image,
	)
	return err
}

func (r *Repo) Delete(ctx context.Context, email string) error {
	_, err := r.DB.Exec(ctx, `DELETE FROM users WHERE email=$1`, email)
	return err
}
