package db

import "testing"

func TestOpen_AppliesMigrations(t *testing.T) {
	d, err := Open("file:dbtest?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = d.Close() })

	for _, table := range []string{"users", "books", "borrows", "returns"} {
		var n int
		err := d.QueryRow(`SELECT count(*) FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&n)
		if err != nil || n != 1 {
			t.Fatalf("table %s missing: n=%d err=%v", table, n, err)
		}
	}

	// Reopening the same database must not reapply migrations.
	if err := applyMigrations(d); err != nil {
		t.Fatalf("reapply migrations: %v", err)
	}
}

func TestRollbackLast(t *testing.T) {
	d, err := Open("file:dbrollback?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = d.Close() })

	if err := RollbackLast(d); err != nil {
		t.Fatalf("rollback: %v", err)
	}
	var n int
	if err := d.QueryRow(`SELECT count(*) FROM sqlite_master WHERE type = 'table' AND name = 'books'`).Scan(&n); err != nil {
		t.Fatalf("query: %v", err)
	}
	if n != 0 {
		t.Fatalf("books table should be dropped after rollback")
	}

	// Rolling back an empty migration set is a no-op.
	if err := RollbackLast(d); err != nil {
		t.Fatalf("rollback empty: %v", err)
	}
}
