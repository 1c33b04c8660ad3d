package sqlite

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/tavolo/tavolo/internal/models"
	"github.com/tavolo/tavolo/internal/storage"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	store := New(filepath.Join(t.TempDir(), "test.db"))
	t.Cleanup(func() { store.Close() })
	return store
}

func TestMenuCollection(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("put and list", func(t *testing.T) {
		item := models.MenuItem{ID: 1, Name: "Margherita", Price: 9.5, Image: "https://img/margherita.png"}
		if err := store.PutMenuItem(ctx, item); err != nil {
			t.Fatalf("PutMenuItem failed: %v", err)
		}

		items, err := store.ListMenuItems(ctx)
		if err != nil {
			t.Fatalf("ListMenuItems failed: %v", err)
		}
		if len(items) != 1 {
			t.Fatalf("expected 1 item, got %d", len(items))
		}
		if items[0] != item {
			t.Errorf("round trip mismatch: got %+v, want %+v", items[0], item)
		}
	})

	t.Run("put with existing id replaces", func(t *testing.T) {
		if err := store.PutMenuItem(ctx, models.MenuItem{ID: 1, Name: "Quattro Formaggi", Price: 11}); err != nil {
			t.Fatalf("PutMenuItem failed: %v", err)
		}

		items, err := store.ListMenuItems(ctx)
		if err != nil {
			t.Fatalf("ListMenuItems failed: %v", err)
		}
		if len(items) != 1 {
			t.Fatalf("expected 1 item after replace, got %d", len(items))
		}
		if items[0].Name != "Quattro Formaggi" {
			t.Errorf("expected replaced name, got %q", items[0].Name)
		}
	})

	t.Run("delete removes item", func(t *testing.T) {
		if err := store.DeleteMenuItem(ctx, 1); err != nil {
			t.Fatalf("DeleteMenuItem failed: %v", err)
		}

		items, err := store.ListMenuItems(ctx)
		if err != nil {
			t.Fatalf("ListMenuItems failed: %v", err)
		}
		if len(items) != 0 {
			t.Errorf("expected empty menu, got %d items", len(items))
		}
	})

	t.Run("delete missing id is a no-op", func(t *testing.T) {
		if err := store.DeleteMenuItem(ctx, 999); err != nil {
			t.Errorf("expected no error for missing id, got %v", err)
		}
	})
}

func TestOrderCollection(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("put fills CreatedAt and preserves item sequence", func(t *testing.T) {
		order := &models.Order{
			ID:       7,
			Username: "alice",
			Status:   models.StatusPending,
			Items: []models.OrderItem{
				{MenuItemID: 3, Quantity: 2},
				{MenuItemID: 1, Quantity: 1},
				{MenuItemID: 2, Quantity: 4},
			},
		}
		if err := store.PutOrder(ctx, order); err != nil {
			t.Fatalf("PutOrder failed: %v", err)
		}
		if order.CreatedAt == 0 {
			t.Error("expected CreatedAt to be set")
		}

		got, err := store.GetOrder(ctx, 7)
		if err != nil {
			t.Fatalf("GetOrder failed: %v", err)
		}
		if got == nil {
			t.Fatal("expected order, got nil")
		}
		if got.Username != "alice" || got.Status != models.StatusPending {
			t.Errorf("unexpected order: %+v", got)
		}
		if len(got.Items) != 3 {
			t.Fatalf("expected 3 items, got %d", len(got.Items))
		}
		for i, want := range order.Items {
			if got.Items[i] != want {
				t.Errorf("item %d: got %+v, want %+v", i, got.Items[i], want)
			}
		}
	})

	t.Run("put may reference a deleted menu item", func(t *testing.T) {
		// No foreign key into menu: the id below never existed there.
		order := &models.Order{
			ID:       8,
			Username: "bob",
			Status:   models.StatusPending,
			Items:    []models.OrderItem{{MenuItemID: 424242, Quantity: 1}},
		}
		if err := store.PutOrder(ctx, order); err != nil {
			t.Errorf("expected stale menu reference to be accepted, got %v", err)
		}
	})

	t.Run("get missing order returns nil", func(t *testing.T) {
		got, err := store.GetOrder(ctx, 404)
		if err != nil {
			t.Fatalf("GetOrder failed: %v", err)
		}
		if got != nil {
			t.Errorf("expected nil, got %+v", got)
		}
	})

	t.Run("list returns all orders with items", func(t *testing.T) {
		orders, err := store.ListOrders(ctx)
		if err != nil {
			t.Fatalf("ListOrders failed: %v", err)
		}
		if len(orders) != 2 {
			t.Fatalf("expected 2 orders, got %d", len(orders))
		}
		for _, o := range orders {
			if len(o.Items) == 0 {
				t.Errorf("order %d has no items", o.ID)
			}
		}
	})

	t.Run("replacing an order rewrites its items", func(t *testing.T) {
		order := &models.Order{
			ID:       7,
			Username: "alice",
			Status:   models.StatusReady,
			Items:    []models.OrderItem{{MenuItemID: 5, Quantity: 1}},
		}
		if err := store.PutOrder(ctx, order); err != nil {
			t.Fatalf("PutOrder failed: %v", err)
		}

		got, err := store.GetOrder(ctx, 7)
		if err != nil {
			t.Fatalf("GetOrder failed: %v", err)
		}
		if got.Status != models.StatusReady {
			t.Errorf("expected ready, got %s", got.Status)
		}
		if len(got.Items) != 1 {
			t.Errorf("expected 1 item after replace, got %d", len(got.Items))
		}
	})
}

func TestUserCollection(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("create and get", func(t *testing.T) {
		user := models.User{Username: "alice", Password: "secret", Role: models.RoleClient}
		if err := store.CreateUser(ctx, user); err != nil {
			t.Fatalf("CreateUser failed: %v", err)
		}

		got, err := store.GetUser(ctx, "alice")
		if err != nil {
			t.Fatalf("GetUser failed: %v", err)
		}
		if got == nil {
			t.Fatal("expected user, got nil")
		}
		if *got != user {
			t.Errorf("round trip mismatch: got %+v, want %+v", *got, user)
		}
	})

	t.Run("get is case-sensitive", func(t *testing.T) {
		got, err := store.GetUser(ctx, "Alice")
		if err != nil {
			t.Fatalf("GetUser failed: %v", err)
		}
		if got != nil {
			t.Errorf("expected nil for different casing, got %+v", got)
		}
	})

	t.Run("duplicate username fails", func(t *testing.T) {
		err := store.CreateUser(ctx, models.User{Username: "alice", Password: "other", Role: models.RoleAdmin})
		if !errors.Is(err, storage.ErrDuplicateKey) {
			t.Fatalf("expected ErrDuplicateKey, got %v", err)
		}

		// The original account must be untouched.
		got, err := store.GetUser(ctx, "alice")
		if err != nil {
			t.Fatalf("GetUser failed: %v", err)
		}
		if got.Password != "secret" || got.Role != models.RoleClient {
			t.Errorf("original account changed: %+v", got)
		}
	})

	t.Run("get missing user returns nil", func(t *testing.T) {
		got, err := store.GetUser(ctx, "nobody")
		if err != nil {
			t.Fatalf("GetUser failed: %v", err)
		}
		if got != nil {
			t.Errorf("expected nil, got %+v", got)
		}
	})
}

func TestSessionSingleton(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	alice := models.User{Username: "alice", Password: "secret", Role: models.RoleClient}
	bob := models.User{Username: "bob", Password: "hunter2", Role: models.RoleAdmin}

	t.Run("empty session returns nil", func(t *testing.T) {
		got, err := store.GetSession(ctx)
		if err != nil {
			t.Fatalf("GetSession failed: %v", err)
		}
		if got != nil {
			t.Errorf("expected nil, got %+v", got)
		}
	})

	t.Run("put then get", func(t *testing.T) {
		if err := store.PutSession(ctx, alice); err != nil {
			t.Fatalf("PutSession failed: %v", err)
		}

		got, err := store.GetSession(ctx)
		if err != nil {
			t.Fatalf("GetSession failed: %v", err)
		}
		if got == nil || *got != alice {
			t.Errorf("expected alice, got %+v", got)
		}
	})

	t.Run("second login replaces, never accumulates", func(t *testing.T) {
		if err := store.PutSession(ctx, bob); err != nil {
			t.Fatalf("PutSession failed: %v", err)
		}

		got, err := store.GetSession(ctx)
		if err != nil {
			t.Fatalf("GetSession failed: %v", err)
		}
		if got == nil || got.Username != "bob" {
			t.Errorf("expected bob, got %+v", got)
		}
	})

	t.Run("clear empties the session", func(t *testing.T) {
		if err := store.ClearSession(ctx); err != nil {
			t.Fatalf("ClearSession failed: %v", err)
		}

		got, err := store.GetSession(ctx)
		if err != nil {
			t.Fatalf("GetSession failed: %v", err)
		}
		if got != nil {
			t.Errorf("expected nil after clear, got %+v", got)
		}
	})
}

func TestLazyInitialization(t *testing.T) {
	ctx := context.Background()

	t.Run("concurrent first use opens one handle", func(t *testing.T) {
		store := newTestStore(t)

		var wg sync.WaitGroup
		errs := make(chan error, 10)
		for i := 0; i < 10; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if _, err := store.ListMenuItems(ctx); err != nil {
					errs <- err
				}
			}()
		}
		wg.Wait()
		close(errs)

		for err := range errs {
			t.Errorf("concurrent first use failed: %v", err)
		}
	})

	t.Run("reopening preserves existing records", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "persist.db")

		first := New(path)
		if err := first.PutMenuItem(ctx, models.MenuItem{ID: 1, Name: "Tiramisu", Price: 6}); err != nil {
			t.Fatalf("PutMenuItem failed: %v", err)
		}
		if err := first.Close(); err != nil {
			t.Fatalf("Close failed: %v", err)
		}

		second := New(path)
		defer second.Close()

		items, err := second.ListMenuItems(ctx)
		if err != nil {
			t.Fatalf("ListMenuItems failed: %v", err)
		}
		if len(items) != 1 || items[0].Name != "Tiramisu" {
			t.Errorf("expected existing record to survive reopen, got %+v", items)
		}
	})

	t.Run("uncreatable path fails with ErrUnavailable and is not retried", func(t *testing.T) {
		// A regular file where a directory is needed makes the open fail.
		blocker := filepath.Join(t.TempDir(), "blocker")
		if err := os.WriteFile(blocker, []byte("not a directory"), 0644); err != nil {
			t.Fatalf("WriteFile failed: %v", err)
		}

		store := New(filepath.Join(blocker, "sub", "test.db"))
		defer store.Close()

		_, err := store.ListMenuItems(ctx)
		if !errors.Is(err, storage.ErrUnavailable) {
			t.Fatalf("expected ErrUnavailable, got %v", err)
		}

		// The once-guard remembers the failure; later operations get the
		// same error without a second open attempt.
		err = store.PutMenuItem(ctx, models.MenuItem{ID: 1, Name: "Focaccia", Price: 4})
		if !errors.Is(err, storage.ErrUnavailable) {
			t.Errorf("expected remembered ErrUnavailable, got %v", err)
		}
	})

	t.Run("close before first use is safe", func(t *testing.T) {
		store := New(filepath.Join(t.TempDir(), "unused.db"))
		if err := store.Close(); err != nil {
			t.Errorf("Close on unused store failed: %v", err)
		}
	})
}
