package product

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
)

func productRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"product_id", "name", "description", "price", "currency", "image_url", "stock", "created_at"})
}

func TestPostgresGetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectQuery("FROM products").WithArgs(5).
		WillReturnRows(productRows().AddRow(5, "Mouse", "a mouse", 799.0, "INR", "/images/mouse.jpg", 120, "t"))

	p, err := repo.GetByID(5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ID != 5 || p.Name != "Mouse" || p.Price != 799 {
		t.Fatalf("unexpected product %+v", p)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPostgresGetByID_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectQuery("FROM products").WithArgs(9).WillReturnRows(productRows())

	if _, err := repo.GetByID(9); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPostgresListByIDs(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	// empty input never touches the database
	if products, err := repo.ListByIDs(nil); err != nil || len(products) != 0 {
		t.Fatalf("expected empty result without a query, got %v err=%v", products, err)
	}

	mock.ExpectQuery("ANY").WithArgs(pq.Array([]int{2, 1})).
		WillReturnRows(productRows().
			AddRow(2, "Keyboard", "", 3499.0, "INR", "", 45, "t").
			AddRow(1, "Mouse", "", 799.0, "INR", "", 120, "t"))

	products, err := repo.ListByIDs([]int{2, 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(products) != 2 || products[0].ID != 2 || products[1].ID != 1 {
		t.Fatalf("expected input-ordered products, got %+v", products)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
