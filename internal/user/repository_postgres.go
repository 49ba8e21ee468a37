package user

import "database/sql"

type PostgresRepository struct {
	db *sql.DB
}

type rowScanner interface {
	Scan(dest ...any) error
}

const (
	getAccountByIDQuery = `
		SELECT account_id, username, email, password_digest, COALESCE(address, ''), created_at, updated_at
		FROM accounts
		WHERE account_id = $1
	`
	getAccountByEmailQuery = `
		SELECT account_id, username, email, password_digest, COALESCE(address, ''), created_at, updated_at
		FROM accounts
		WHERE email = $1
	`
	getAccountByUsernameQuery = `
		SELECT account_id, username, email, password_digest, COALESCE(address, ''), created_at, updated_at
		FROM accounts
		WHERE username = $1
	`
	insertAccountQuery = `
		INSERT INTO accounts (username, email, password_digest, address, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING account_id
	`
	updateAccountQuery = `
		UPDATE accounts
		SET email = $1,
			address = $2,
			updated_at = $3
		WHERE account_id = $4
	`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) GetByID(id int) (Account, error) {
	return r.getOne(getAccountByIDQuery, id)
}

func (r *PostgresRepository) GetByEmail(email string) (Account, error) {
	return r.getOne(getAccountByEmailQuery, email)
}

func (r *PostgresRepository) GetByUsername(username string) (Account, error) {
	return r.getOne(getAccountByUsernameQuery, username)
}

func (r *PostgresRepository) getOne(query string, arg any) (Account, error) {
	acc, err := scanAccount(r.db.QueryRow(query, arg))
	if err != nil {
		if err == sql.ErrNoRows {
			return Account{}, ErrNotFound
		}
		return Account{}, err
	}
	return acc, nil
}

func (r *PostgresRepository) Create(acc Account) (Account, error) {
	var id int
	err := r.db.QueryRow(
		insertAccountQuery,
		acc.Username,
		acc.Email,
		acc.PasswordDigest,
		acc.Address,
		acc.CreatedAt,
		acc.UpdatedAt,
	).Scan(&id)
	if err != nil {
		return Account{}, err
	}

	acc.ID = id
	return acc, nil
}

func (r *PostgresRepository) Update(id int, acc Account) (Account, error) {
	res, err := r.db.Exec(updateAccountQuery, acc.Email, acc.Address, acc.UpdatedAt, id)
	if err != nil {
		return Account{}, err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return Account{}, ErrNotFound
	}
	return r.GetByID(id)
}

func scanAccount(row rowScanner) (Account, error) {
	var acc Account
	err := row.Scan(
		&acc.ID,
		&acc.Username,
		&acc.Email,
		&acc.PasswordDigest,
		&acc.Address,
		&acc.CreatedAt,
		&acc.UpdatedAt,
	)
	if err != nil {
		return Account{}, err
	}
	return acc, nil
}
