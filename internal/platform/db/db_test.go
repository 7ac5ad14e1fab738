package db

import "testing"

func TestRebind(t *testing.T) {
	q := "SELECT a FROM t WHERE x = ? AND y = ?"

	if got := Rebind(DriverSQLite, q); got != q {
		t.Fatalf("sqlite query must be unchanged, got %q", got)
	}

	want := "SELECT a FROM t WHERE x = $1 AND y = $2"
	if got := Rebind(DriverPostgres, q); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestOpenSQLiteMemory(t *testing.T) {
	conn, err := Open(DriverSQLite, ":memory:")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer conn.Close()

	var one int
	if err := conn.QueryRow("SELECT 1").Scan(&one); err != nil || one != 1 {
		t.Fatalf("select 1: got %d, err %v", one, err)
	}
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	if _, err := Open("mysql", "dsn"); err == nil {
		t.Fatalf("expected error for unknown driver")
	}
}
