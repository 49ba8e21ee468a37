package cart

import (
	"database/sql"
	"encoding/json"
)

// PostgresRepository stores each cart as one row with its lines embedded as
// a JSONB array, so a single cart mutation is a single-row atomic write.
type PostgresRepository struct {
	db *sql.DB
}

const (
	findCartByAccountQuery = `
		SELECT cart_id, account_id, session_id, items, updated_at
		FROM carts
		WHERE account_id = $1
	`
	findCartBySessionQuery = `
		SELECT cart_id, account_id, session_id, items, updated_at
		FROM carts
		WHERE session_id = $1
	`
	insertCartQuery = `
		INSERT INTO carts (account_id, session_id, items, updated_at)
		VALUES ($1, $2, $3, $4)
		RETURNING cart_id
	`
	updateCartQuery = `
		UPDATE carts
		SET account_id = $1,
			session_id = $2,
			items = $3,
			updated_at = $4
		WHERE cart_id = $5
	`
	deleteCartQuery = `DELETE FROM carts WHERE cart_id = $1`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) FindByAccount(accountID int) (Cart, error) {
	return r.findOne(findCartByAccountQuery, accountID)
}

func (r *PostgresRepository) FindBySession(sessionID string) (Cart, error) {
	return r.findOne(findCartBySessionQuery, sessionID)
}

func (r *PostgresRepository) findOne(query string, arg any) (Cart, error) {
	var (
		c         Cart
		accountID sql.NullInt64
		sessionID sql.NullString
		rawItems  []byte
	)
	err := r.db.QueryRow(query, arg).Scan(&c.ID, &accountID, &sessionID, &rawItems, &c.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return Cart{}, ErrNotFound
		}
		return Cart{}, err
	}

	if accountID.Valid {
		id := int(accountID.Int64)
		c.AccountID = &id
	}
	if sessionID.Valid {
		sid := sessionID.String
		c.SessionID = &sid
	}
	if err := json.Unmarshal(rawItems, &c.Items); err != nil {
		return Cart{}, err
	}
	if c.Items == nil {
		c.Items = []Line{}
	}
	return c, nil
}

func (r *PostgresRepository) Insert(c Cart) (Cart, error) {
	rawItems, err := json.Marshal(c.Items)
	if err != nil {
		return Cart{}, err
	}

	var id int
	err = r.db.QueryRow(insertCartQuery, accountArg(c), sessionArg(c), rawItems, c.UpdatedAt).Scan(&id)
	if err != nil {
		return Cart{}, err
	}

	c.ID = id
	return c, nil
}

func (r *PostgresRepository) Update(c Cart) (Cart, error) {
	rawItems, err := json.Marshal(c.Items)
	if err != nil {
		return Cart{}, err
	}

	res, err := r.db.Exec(updateCartQuery, accountArg(c), sessionArg(c), rawItems, c.UpdatedAt, c.ID)
	if err != nil {
		return Cart{}, err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return Cart{}, ErrNotFound
	}
	return c, nil
}

func (r *PostgresRepository) Delete(cartID int) error {
	res, err := r.db.Exec(deleteCartQuery, cartID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func accountArg(c Cart) any {
	if c.AccountID != nil {
		return *c.AccountID
	}
	return nil
}

func sessionArg(c Cart) any {
	if c.SessionID != nil {
		return *c.SessionID
	}
	return nil
}
