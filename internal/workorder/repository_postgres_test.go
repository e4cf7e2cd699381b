package workorder

import (
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/fieldstone/work-order-backend/internal/user"
)

var orderColumns = []string{
	"id", "title", "description", "priority", "status",
	"created_by", "assigned_to", "created_at", "updated_at",
	"name", "role", "id", "name", "role",
}

func TestPostgresGetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	rows := sqlmock.NewRows(orderColumns).
		AddRow("ord-1", "Fix pump", "Pump leaking", "HIGH", "OPEN",
			1, 2, "2024-01-01T00:00:00Z", "2024-01-02T00:00:00Z",
			"Alice", "USER", 2, "Bob", "USER")
	mock.ExpectQuery("FROM work_orders w").WithArgs("ord-1").WillReturnRows(rows)

	ord, err := repo.GetByID("ord-1")
	if err != nil {
		t.Fatalf("expected nil err, got %v", err)
	}
	if ord.Title != "Fix pump" || ord.Status != "OPEN" {
		t.Fatalf("unexpected order %+v", ord)
	}
	if ord.CreatedBy == nil || ord.CreatedBy.Name != "Alice" {
		t.Errorf("expected creator summary, got %+v", ord.CreatedBy)
	}
	if ord.AssignedTo == nil || ord.AssignedTo.ID != 2 || ord.AssignedTo.Name != "Bob" {
		t.Errorf("expected assignee summary, got %+v", ord.AssignedTo)
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

	mock.ExpectQuery("FROM work_orders w").WithArgs("missing").WillReturnRows(sqlmock.NewRows(orderColumns))

	if _, err := repo.GetByID("missing"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPostgresList(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	rows := sqlmock.NewRows(orderColumns).
		AddRow("ord-2", "B", "second order", "MED", "OPEN",
			7, nil, "2024-01-02T00:00:00Z", "2024-01-02T00:00:00Z",
			"Alice", "USER", nil, nil, nil).
		AddRow("ord-1", "A", "first order", "LOW", "OPEN",
			7, nil, "2024-01-01T00:00:00Z", "2024-01-01T00:00:00Z",
			"Alice", "USER", nil, nil, nil)
	mock.ExpectQuery("FROM work_orders w").WithArgs("OPEN", 7).WillReturnRows(rows)
	mock.ExpectQuery("SELECT COUNT").WithArgs("OPEN", 7).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))

	orders, total, err := repo.List(ListParams{Page: 1, Status: "OPEN"}, user.Actor{ID: 7, Role: user.RoleUser})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(orders) != 2 {
		t.Fatalf("expected 2 orders, got %d", len(orders))
	}
	if total != 12 {
		t.Fatalf("expected total 12, got %d", total)
	}
	if orders[0].AssignedTo != nil {
		t.Errorf("expected no assignee summary for null assignee, got %+v", orders[0].AssignedTo)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPostgresCreate(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectExec("INSERT INTO work_orders").
		WithArgs("ord-1", "Fix pump", "Pump leaking", "HIGH", "OPEN", 1, nil, "2024-01-01T00:00:00Z", "2024-01-01T00:00:00Z").
		WillReturnResult(sqlmock.NewResult(0, 1))
	rows := sqlmock.NewRows(orderColumns).
		AddRow("ord-1", "Fix pump", "Pump leaking", "HIGH", "OPEN",
			1, nil, "2024-01-01T00:00:00Z", "2024-01-01T00:00:00Z",
			"Alice", "USER", nil, nil, nil)
	mock.ExpectQuery("FROM work_orders w").WithArgs("ord-1").WillReturnRows(rows)

	created, err := repo.Create(WorkOrder{
		ID:          "ord-1",
		Title:       "Fix pump",
		Description: "Pump leaking",
		Priority:    "HIGH",
		Status:      "OPEN",
		CreatedByID: 1,
		CreatedAt:   "2024-01-01T00:00:00Z",
		UpdatedAt:   "2024-01-01T00:00:00Z",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if created.CreatedBy == nil || created.CreatedBy.Name != "Alice" {
		t.Errorf("expected enriched record back, got %+v", created)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPostgresUpdateFields(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	// column order in SET is fixed, so the statement is deterministic
	mock.ExpectExec(regexp.QuoteMeta("UPDATE work_orders SET status = $1, assigned_to = $2, updated_at = $3 WHERE id = $4")).
		WithArgs("CLOSED", 2, "2024-01-03T00:00:00Z", "ord-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	rows := sqlmock.NewRows(orderColumns).
		AddRow("ord-1", "Fix pump", "Pump leaking", "HIGH", "CLOSED",
			1, 2, "2024-01-01T00:00:00Z", "2024-01-03T00:00:00Z",
			"Alice", "USER", 2, "Bob", "USER")
	mock.ExpectQuery("FROM work_orders w").WithArgs("ord-1").WillReturnRows(rows)

	updated, err := repo.UpdateFields("ord-1", map[string]any{
		"status":      "CLOSED",
		"assigned_to": 2,
		"updated_at":  "2024-01-03T00:00:00Z",
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Status != "CLOSED" {
		t.Errorf("expected CLOSED, got %s", updated.Status)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPostgresUpdateFields_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectExec("UPDATE work_orders SET").
		WithArgs("New title", "missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	if _, err := repo.UpdateFields("missing", map[string]any{"title": "New title"}); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
