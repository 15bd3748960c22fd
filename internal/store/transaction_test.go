package store

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"testing"
)

// txRecorder counts transaction outcomes observed by the fake driver.
type txRecorder struct {
	commits   int
	rollbacks int
}

type fakeConnector struct{ rec *txRecorder }

func (c *fakeConnector) Connect(context.Context) (driver.Conn, error) {
	return &fakeConn{rec: c.rec}, nil
}

func (c *fakeConnector) Driver() driver.Driver { return fakeDriver{} }

type fakeDriver struct{}

func (fakeDriver) Open(string) (driver.Conn, error) {
	return nil, errors.New("open is not supported")
}

type fakeConn struct{ rec *txRecorder }

func (c *fakeConn) Prepare(string) (driver.Stmt, error) {
	return nil, errors.New("prepare is not supported")
}

func (c *fakeConn) Close() error { return nil }

func (c *fakeConn) Begin() (driver.Tx, error) {
	return &fakeTx{rec: c.rec}, nil
}

type fakeTx struct{ rec *txRecorder }

func (t *fakeTx) Commit() error {
	t.rec.commits++
	return nil
}

func (t *fakeTx) Rollback() error {
	t.rec.rollbacks++
	return nil
}

func newFakeDB(t *testing.T) (*sql.DB, *txRecorder) {
	t.Helper()
	rec := &txRecorder{}
	db := sql.OpenDB(&fakeConnector{rec: rec})
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("closing fake db: %v", err)
		}
	})
	return db, rec
}

func TestRunInTransactionCommitsOnSuccess(t *testing.T) {
	t.Parallel()

	db, rec := newFakeDB(t)

	called := false
	err := RunInTransaction(context.Background(), db, func(ctx context.Context, tx *sql.Tx) error {
		called = true
		return nil
	})
	if err != nil {
		t.Fatalf("RunInTransaction() error = %v, want nil", err)
	}
	if !called {
		t.Fatal("transaction function was not called")
	}
	if rec.commits != 1 || rec.rollbacks != 0 {
		t.Errorf("commits = %d, rollbacks = %d, want 1 and 0", rec.commits, rec.rollbacks)
	}
}

func TestRunInTransactionRollsBackOnError(t *testing.T) {
	t.Parallel()

	db, rec := newFakeDB(t)

	wantErr := errors.New("insert failed")
	err := RunInTransaction(context.Background(), db, func(ctx context.Context, tx *sql.Tx) error {
		return wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("RunInTransaction() error = %v, want %v", err, wantErr)
	}
	if rec.commits != 0 || rec.rollbacks != 1 {
		t.Errorf("commits = %d, rollbacks = %d, want 0 and 1", rec.commits, rec.rollbacks)
	}
}

func TestRunInTransactionRollsBackOnPanic(t *testing.T) {
	t.Parallel()

	db, rec := newFakeDB(t)

	defer func() {
		if p := recover(); p == nil {
			t.Fatal("expected panic to propagate")
		}
		if rec.commits != 0 || rec.rollbacks != 1 {
			t.Errorf("commits = %d, rollbacks = %d, want 0 and 1", rec.commits, rec.rollbacks)
		}
	}()

	_ = RunInTransaction(context.Background(), db, func(ctx context.Context, tx *sql.Tx) error {
		panic("boom")
	})
}
