package user

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"shodart.org/internal/auth"
)

func userRows(u *User) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "login", "password", "role", "can_edit_products", "can_manage_logistics", "created_at", "updated_at",
	}).AddRow(u.ID, u.Login, u.PasswordHash, string(u.Role), u.CanEditProducts, u.CanManageLogistics, u.CreatedAt, u.UpdatedAt)
}

func TestPGStoreFindByLogin(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	now := time.Now()
	expected := &User{
		ID:              "u-1",
		Login:           "admin",
		PasswordHash:    "hash",
		Role:            auth.RoleRoot,
		CanEditProducts: true,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	mock.ExpectQuery("select id, login, password, role, can_edit_products, can_manage_logistics, created_at, updated_at from users where login=").
		WithArgs("admin").
		WillReturnRows(userRows(expected))

	store := NewPGStore(db)
	got, err := store.FindByLogin(context.Background(), "admin")
	if err != nil {
		t.Fatalf("FindByLogin: %v", err)
	}
	if got.ID != expected.ID || got.Role != auth.RoleRoot || !got.CanEditProducts {
		t.Fatalf("unexpected user: %+v", got)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPGStoreFindMissing(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("from users where id=").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	store := NewPGStore(db)
	_, err = store.Find(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPGStoreCreate(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("insert into users").
		WithArgs("u-1", "admin", "hash", "root", true, false).
		WillReturnResult(sqlmock.NewResult(0, 1))

	store := NewPGStore(db)
	err = store.Create(context.Background(), &User{
		ID:              "u-1",
		Login:           "admin",
		PasswordHash:    "hash",
		Role:            auth.RoleRoot,
		CanEditProducts: true,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPGStoreDeleteMissing(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("delete from users where id=").
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	store := NewPGStore(db)
	if err := store.Delete(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
