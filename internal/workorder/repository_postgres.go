package workorder

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/fieldstone/work-order-backend/internal/user"
)

type PostgresRepository struct {
	db *sql.DB
}

type rowScanner interface {
	Scan(dest ...any) error
}

const (
	getOrderByIDQuery = listSelectHead + `
	WHERE w.id = $1`

	insertOrderQuery = `
		INSERT INTO work_orders (id, title, description, priority, status, created_by, assigned_to, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
)

// updatableColumns fixes the SET clause order so queries are deterministic.
var updatableColumns = []string{"title", "description", "priority", "status", "assigned_to", "updated_at"}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List(params ListParams, actor user.Actor) ([]WorkOrder, int, error) {
	params = params.Normalize()
	query, countQuery, args := buildListQuery(params, actor)

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	orders := make([]WorkOrder, 0)
	for rows.Next() {
		ord, err := scanOrder(rows)
		if err != nil {
			return nil, 0, err
		}
		orders = append(orders, ord)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total int
	if err := r.db.QueryRow(countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	return orders, total, nil
}

func (r *PostgresRepository) GetByID(id string) (WorkOrder, error) {
	row := r.db.QueryRow(getOrderByIDQuery, id)
	ord, err := scanOrder(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return WorkOrder{}, ErrNotFound
		}
		return WorkOrder{}, err
	}
	return ord, nil
}

func (r *PostgresRepository) Create(order WorkOrder) (WorkOrder, error) {
	var assignedArg any
	if order.AssignedToID != nil {
		assignedArg = *order.AssignedToID
	}
	_, err := r.db.Exec(
		insertOrderQuery,
		order.ID,
		order.Title,
		order.Description,
		order.Priority,
		order.Status,
		order.CreatedByID,
		assignedArg,
		order.CreatedAt,
		order.UpdatedAt,
	)
	if err != nil {
		return WorkOrder{}, err
	}

	return r.GetByID(order.ID)
}

// UpdateFields applies only the given column mutations, leaving every other
// column untouched.
func (r *PostgresRepository) UpdateFields(id string, set map[string]any) (WorkOrder, error) {
	sets := make([]string, 0, len(set))
	args := make([]any, 0, len(set)+1)
	for _, column := range updatableColumns {
		value, ok := set[column]
		if !ok {
			continue
		}
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	if len(sets) == 0 {
		return r.GetByID(id)
	}

	args = append(args, id)
	query := fmt.Sprintf("UPDATE work_orders SET %s WHERE id = $%d", strings.Join(sets, ", "), len(args))

	result, err := r.db.Exec(query, args...)
	if err != nil {
		return WorkOrder{}, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return WorkOrder{}, err
	}
	if affected == 0 {
		return WorkOrder{}, ErrNotFound
	}

	return r.GetByID(id)
}

func scanOrder(scanner rowScanner) (WorkOrder, error) {
	ord := WorkOrder{}
	var assignedTo sql.NullInt64
	var createdAt, updatedAt sql.NullString
	var creatorName, creatorRole sql.NullString
	var assigneeID sql.NullInt64
	var assigneeName, assigneeRole sql.NullString

	if err := scanner.Scan(
		&ord.ID,
		&ord.Title,
		&ord.Description,
		&ord.Priority,
		&ord.Status,
		&ord.CreatedByID,
		&assignedTo,
		&createdAt,
		&updatedAt,
		&creatorName,
		&creatorRole,
		&assigneeID,
		&assigneeName,
		&assigneeRole,
	); err != nil {
		return WorkOrder{}, err
	}

	if assignedTo.Valid {
		v := int(assignedTo.Int64)
		ord.AssignedToID = &v
	}
	if createdAt.Valid {
		ord.CreatedAt = createdAt.String
	}
	if updatedAt.Valid {
		ord.UpdatedAt = updatedAt.String
	}
	if creatorName.Valid {
		ord.CreatedBy = &UserSummary{
			ID:   ord.CreatedByID,
			Name: creatorName.String,
			Role: creatorRole.String,
		}
	}
	if assigneeID.Valid {
		ord.AssignedTo = &UserSummary{
			ID:   int(assigneeID.Int64),
			Name: assigneeName.String,
			Role: assigneeRole.String,
		}
	}

	return ord, nil
}
