package cart

import (
	"testing"

	"github.com/pattarapol-w/storefront-backend/internal/actor"
	"github.com/pattarapol-w/storefront-backend/internal/product"
)

func newTestService(products ...product.Product) (*Service, *InMemoryRepository) {
	repo := NewInMemoryRepository(nil)
	catalog := product.NewService(product.NewInMemoryRepository(products), nil)
	return NewService(repo, catalog), repo
}

var testCatalog = []product.Product{
	{ID: 1, Name: "Mouse", Price: 100, Currency: "INR"},
	{ID: 2, Name: "Keyboard", Price: 50, Currency: "INR"},
}

func TestGet_NoCartReturnsSyntheticEmpty(t *testing.T) {
	svc, repo := newTestService(testCatalog...)

	c, err := svc.Get(actor.Anonymous("sess-1"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(c.Items) != 0 || c.ID != 0 {
		t.Fatalf("expected synthetic empty cart, got %+v", c)
	}

	// reading must not create a row
	if _, err := repo.FindBySession("sess-1"); err != ErrNotFound {
		t.Fatalf("expected no persisted cart, got err=%v", err)
	}
}

func TestAddOrSetLine_CreatesCartLazilyWithSnapshot(t *testing.T) {
	svc, _ := newTestService(testCatalog...)
	act := actor.Anonymous("sess-1")

	c, err := svc.AddOrSetLine(act, 1, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(c.Items) != 1 {
		t.Fatalf("expected 1 line, got %d", len(c.Items))
	}
	line := c.Items[0]
	if line.Quantity != 2 || line.PriceSnapshot != 100 || line.ID == "" {
		t.Fatalf("unexpected line %+v", line)
	}
	if c.Total() != 200 {
		t.Fatalf("expected total 200, got %v", c.Total())
	}
}

func TestAddOrSetLine_ReplacesQuantity(t *testing.T) {
	svc, _ := newTestService(testCatalog...)
	act := actor.Anonymous("sess-1")

	if _, err := svc.AddOrSetLine(act, 1, 2); err != nil {
		t.Fatalf("first add failed: %v", err)
	}
	c, err := svc.AddOrSetLine(act, 1, 5)
	if err != nil {
		t.Fatalf("second add failed: %v", err)
	}

	// set semantics: 5, not 7
	if len(c.Items) != 1 || c.Items[0].Quantity != 5 {
		t.Fatalf("expected single line with quantity 5, got %+v", c.Items)
	}
}

func TestAddOrSetLine_IdempotentUnderRepeat(t *testing.T) {
	svc, _ := newTestService(testCatalog...)
	act := actor.Anonymous("sess-1")

	first, err := svc.AddOrSetLine(act, 1, 3)
	if err != nil {
		t.Fatalf("first add failed: %v", err)
	}
	second, err := svc.AddOrSetLine(act, 1, 3)
	if err != nil {
		t.Fatalf("second add failed: %v", err)
	}

	if len(second.Items) != len(first.Items) ||
		second.Items[0].Quantity != first.Items[0].Quantity ||
		second.Items[0].PriceSnapshot != first.Items[0].PriceSnapshot {
		t.Fatalf("repeated add changed the cart: %+v vs %+v", first.Items, second.Items)
	}
}

func TestAddOrSetLine_SnapshotSurvivesPriceChange(t *testing.T) {
	repo := NewInMemoryRepository(nil)
	oldCatalog := product.NewService(product.NewInMemoryRepository([]product.Product{{ID: 1, Name: "Mouse", Price: 100}}), nil)
	act := actor.Anonymous("sess-1")

	if _, err := NewService(repo, oldCatalog).AddOrSetLine(act, 1, 1); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	// the catalog price changes after the add; the stored snapshot must not
	newCatalog := product.NewService(product.NewInMemoryRepository([]product.Product{{ID: 1, Name: "Mouse", Price: 250}}), nil)
	c, err := NewService(repo, newCatalog).Get(act)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if c.Items[0].PriceSnapshot != 100 {
		t.Fatalf("expected snapshot 100, got %v", c.Items[0].PriceSnapshot)
	}
	if c.Total() != 100 {
		t.Fatalf("total must use the snapshot, got %v", c.Total())
	}
}

func TestAddOrSetLine_Validation(t *testing.T) {
	svc, _ := newTestService(testCatalog...)
	act := actor.Anonymous("sess-1")

	if _, err := svc.AddOrSetLine(act, 1, 0); err != ErrInvalidQuantity {
		t.Fatalf("expected ErrInvalidQuantity, got %v", err)
	}
	if _, err := svc.AddOrSetLine(act, 99, 1); err != product.ErrNotFound {
		t.Fatalf("expected product.ErrNotFound, got %v", err)
	}
}

func TestRemoveLine(t *testing.T) {
	svc, _ := newTestService(testCatalog...)
	act := actor.Anonymous("sess-1")

	// no cart at all
	if _, err := svc.RemoveLine(act, "some-line"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound without a cart, got %v", err)
	}

	c, _ := svc.AddOrSetLine(act, 1, 2)
	lineID := c.Items[0].ID

	// unknown line on an existing cart is a no-op
	c, err := svc.RemoveLine(act, "missing")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(c.Items) != 1 {
		t.Fatalf("no-op removal changed the cart: %+v", c.Items)
	}

	c, err = svc.RemoveLine(act, lineID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(c.Items) != 0 {
		t.Fatalf("expected empty cart, got %+v", c.Items)
	}
}

func TestClear(t *testing.T) {
	svc, _ := newTestService(testCatalog...)
	act := actor.Anonymous("sess-1")

	// clearing without a cart is a no-op
	c, err := svc.Clear(act)
	if err != nil || len(c.Items) != 0 {
		t.Fatalf("expected empty no-op clear, got %+v err=%v", c, err)
	}

	if _, err := svc.AddOrSetLine(act, 1, 2); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	c, err = svc.Clear(act)
	if err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	if len(c.Items) != 0 || c.Total() != 0 {
		t.Fatalf("expected cleared cart, got %+v", c)
	}
}

func TestGuestSessionsAreIsolated(t *testing.T) {
	svc, _ := newTestService(testCatalog...)

	if _, err := svc.AddOrSetLine(actor.Anonymous("sess-a"), 1, 1); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if _, err := svc.AddOrSetLine(actor.Anonymous("sess-b"), 2, 3); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	a, _ := svc.Get(actor.Anonymous("sess-a"))
	b, _ := svc.Get(actor.Anonymous("sess-b"))

	if len(a.Items) != 1 || a.Items[0].ProductID != 1 {
		t.Fatalf("session a cart leaked: %+v", a.Items)
	}
	if len(b.Items) != 1 || b.Items[0].ProductID != 2 {
		t.Fatalf("session b cart leaked: %+v", b.Items)
	}
}

func TestTotalLaw(t *testing.T) {
	c := Cart{Items: []Line{
		{ProductID: 1, Quantity: 2, PriceSnapshot: 100},
		{ProductID: 2, Quantity: 3, PriceSnapshot: 50.5},
	}}

	want := 2*100 + 3*50.5
	if c.Total() != want {
		t.Fatalf("expected total %v, got %v", want, c.Total())
	}
}

func TestView_ResolvesProducts(t *testing.T) {
	svc, _ := newTestService(testCatalog...)
	act := actor.Anonymous("sess-1")

	c, _ := svc.AddOrSetLine(act, 1, 2)
	view, err := svc.View(c)
	if err != nil {
		t.Fatalf("view failed: %v", err)
	}
	if view.Total != 200 {
		t.Fatalf("expected total 200, got %v", view.Total)
	}
	if len(view.Items) != 1 || view.Items[0].Product == nil || view.Items[0].Product.Name != "Mouse" {
		t.Fatalf("expected resolved product, got %+v", view.Items)
	}
}
