package store

import (
	"context"

	"github.com/fritzgwapo0907/to-do-server/models"
)

// CreateAccount inserts a new account row. A duplicate username fails at the
// primary key constraint and is surfaced as a plain store error; callers do
// not special-case it.
func (s *Store) CreateAccount(ctx context.Context, a models.Account) error {
	ctx, cancel := s.opContext(ctx)
	defer cancel()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO accounts (username, password, fname, lname) VALUES ($1, $2, $3, $4)`,
		a.Username, a.Password, a.FirstName, a.LastName)
	if err != nil {
		return fail("create account", err)
	}
	return nil
}

// VerifyAccount reports whether an account with exactly these credentials
// exists. A miss is a normal false result, not an error.
func (s *Store) VerifyAccount(ctx context.Context, username, password string) (bool, error) {
	ctx, cancel := s.opContext(ctx)
	defer cancel()

	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM accounts WHERE username = $1 AND password = $2`,
		username, password).Scan(&n)
	if err != nil {
		return false, fail("verify account", err)
	}
	return n > 0, nil
}

// ListAccounts returns every account row. Debug/admin use only; there is no
// pagination.
func (s *Store) ListAccounts(ctx context.Context) ([]models.Account, error) {
	ctx, cancel := s.opContext(ctx)
	defer cancel()

	rows, err := s.db.QueryContext(ctx, `SELECT username, password, fname, lname FROM accounts`)
	if err != nil {
		return nil, fail("list accounts", err)
	}
	defer rows.Close()

	accounts := make([]models.Account, 0)
	for rows.Next() {
		var a models.Account
		if err := rows.Scan(&a.Username, &a.Password, &a.FirstName, &a.LastName); err != nil {
			return nil, fail("list accounts", err)
		}
		accounts = append(accounts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fail("list accounts", err)
	}
	return accounts, nil
}
