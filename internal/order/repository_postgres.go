package order

import (
	"database/sql"
	"encoding/json"
)

type PostgresRepository struct {
	db *sql.DB
}

const (
	insertOrderQuery = `
		INSERT INTO orders (account_id, buyer_name, buyer_email, shipping_address, items, total, currency, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING order_id
	`
	listOrdersByAccountQuery = `
		SELECT order_id, account_id, buyer_name, buyer_email, shipping_address, items, total, currency, status, created_at
		FROM orders
		WHERE account_id = $1
		ORDER BY order_id DESC
	`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Insert(ord Order) (Order, error) {
	rawItems, err := json.Marshal(ord.Items)
	if err != nil {
		return Order{}, err
	}

	var accountID any
	if ord.AccountID != nil {
		accountID = *ord.AccountID
	}

	var id int
	err = r.db.QueryRow(
		insertOrderQuery,
		accountID,
		ord.BuyerName,
		ord.BuyerEmail,
		ord.ShippingAddress,
		rawItems,
		ord.Total,
		ord.Currency,
		ord.Status,
		ord.CreatedAt,
	).Scan(&id)
	if err != nil {
		return Order{}, err
	}

	ord.ID = id
	return ord, nil
}

func (r *PostgresRepository) ListByAccount(accountID int) ([]Order, error) {
	rows, err := r.db.Query(listOrdersByAccountQuery, accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]Order, 0)
	for rows.Next() {
		var (
			ord      Order
			accID    sql.NullInt64
			rawItems []byte
		)
		err := rows.Scan(
			&ord.ID,
			&accID,
			&ord.BuyerName,
			&ord.BuyerEmail,
			&ord.ShippingAddress,
			&rawItems,
			&ord.Total,
			&ord.Currency,
			&ord.Status,
			&ord.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		if accID.Valid {
			id := int(accID.Int64)
			ord.AccountID = &id
		}
		if err := json.Unmarshal(rawItems, &ord.Items); err != nil {
			return nil, err
		}
		orders = append(orders, ord)
	}
	return orders, rows.Err()
}
