package workorder

import (
	"fmt"
	"strings"

	"github.com/fieldstone/work-order-backend/internal/user"
)

// PageSize is fixed; clients only choose the page number.
const PageSize = 10

// ListParams are the supported listing filters. Empty strings mean "any".
type ListParams struct {
	Page     int
	Search   string
	Status   string
	Priority string
}

// Normalize clamps the page number to a minimum of 1.
func (p ListParams) Normalize() ListParams {
	if p.Page < 1 {
		p.Page = 1
	}
	return p
}

const listSelectHead = `
	SELECT w.id, w.title, w.description, w.priority, w.status,
	       w.created_by, w.assigned_to, w.created_at, w.updated_at,
	       c.name, c.role, a.id, a.name, a.role
	FROM work_orders w
	LEFT JOIN users c ON c.id = w.created_by
	LEFT JOIN users a ON a.id = w.assigned_to`

const listCountHead = `SELECT COUNT(*) FROM work_orders w`

// buildListQuery translates the listing filters into the page query and its
// matching count query. Both share the same WHERE clause and argument list.
// Actors with the USER role are always restricted to their own orders,
// regardless of the other filters.
func buildListQuery(p ListParams, actor user.Actor) (query string, countQuery string, args []any) {
	conds := make([]string, 0, 4)

	if p.Search != "" {
		args = append(args, p.Search)
		n := len(args)
		conds = append(conds, fmt.Sprintf(
			"(w.title ILIKE '%%' || $%d || '%%' OR w.description ILIKE '%%' || $%d || '%%')", n, n))
	}
	if p.Status != "" {
		args = append(args, p.Status)
		conds = append(conds, fmt.Sprintf("w.status = $%d", len(args)))
	}
	if p.Priority != "" {
		args = append(args, p.Priority)
		conds = append(conds, fmt.Sprintf("w.priority = $%d", len(args)))
	}
	if actor.Role == user.RoleUser {
		args = append(args, actor.ID)
		conds = append(conds, fmt.Sprintf("w.created_by = $%d", len(args)))
	}

	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	query = listSelectHead + where +
		fmt.Sprintf(" ORDER BY w.created_at DESC LIMIT %d OFFSET %d", PageSize, (p.Page-1)*PageSize)
	countQuery = listCountHead + where
	return query, countQuery, args
}
