package workorder

import (
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/fieldstone/work-order-backend/internal/user"
)

var ErrNotFound = errors.New("work order not found")

type Repository interface {
	List(params ListParams, actor user.Actor) ([]WorkOrder, int, error)
	GetByID(id string) (WorkOrder, error)
	Create(order WorkOrder) (WorkOrder, error)
	UpdateFields(id string, set map[string]any) (WorkOrder, error)
}

// InMemoryRepository mirrors the Postgres listing and masking semantics for
// tests. User summaries are resolved from the seed map.
type InMemoryRepository struct {
	mu     sync.RWMutex
	orders []WorkOrder
	users  map[int]UserSummary
}

func NewInMemoryRepository(seed []WorkOrder, users map[int]UserSummary) *InMemoryRepository {
	repo := &InMemoryRepository{
		orders: make([]WorkOrder, 0, len(seed)),
		users:  users,
	}
	repo.orders = append(repo.orders, seed...)
	return repo
}

func (r *InMemoryRepository) List(params ListParams, actor user.Actor) ([]WorkOrder, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	params = params.Normalize()
	matched := make([]WorkOrder, 0)
	for _, ord := range r.orders {
		if !matches(ord, params, actor) {
			continue
		}
		matched = append(matched, ord)
	}

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt > matched[j].CreatedAt
	})

	total := len(matched)
	offset := (params.Page - 1) * PageSize
	if offset >= total {
		return []WorkOrder{}, total, nil
	}
	end := offset + PageSize
	if end > total {
		end = total
	}

	page := make([]WorkOrder, 0, end-offset)
	for _, ord := range matched[offset:end] {
		page = append(page, r.enrich(ord))
	}
	return page, total, nil
}

func matches(ord WorkOrder, params ListParams, actor user.Actor) bool {
	if params.Search != "" {
		needle := strings.ToLower(params.Search)
		if !strings.Contains(strings.ToLower(ord.Title), needle) &&
			!strings.Contains(strings.ToLower(ord.Description), needle) {
			return false
		}
	}
	if params.Status != "" && ord.Status != params.Status {
		return false
	}
	if params.Priority != "" && ord.Priority != params.Priority {
		return false
	}
	if actor.Role == user.RoleUser && ord.CreatedByID != actor.ID {
		return false
	}
	return true
}

func (r *InMemoryRepository) GetByID(id string) (WorkOrder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, ord := range r.orders {
		if ord.ID == id {
			return r.enrich(ord), nil
		}
	}
	return WorkOrder{}, ErrNotFound
}

func (r *InMemoryRepository) Create(order WorkOrder) (WorkOrder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.orders = append(r.orders, order)
	return r.enrich(order), nil
}

func (r *InMemoryRepository) UpdateFields(id string, set map[string]any) (WorkOrder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, ord := range r.orders {
		if ord.ID != id {
			continue
		}
		for column, value := range set {
			switch column {
			case "title":
				ord.Title = value.(string)
			case "description":
				ord.Description = value.(string)
			case "priority":
				ord.Priority = value.(string)
			case "status":
				ord.Status = value.(string)
			case "assigned_to":
				assignee := value.(int)
				ord.AssignedToID = &assignee
			case "updated_at":
				ord.UpdatedAt = value.(string)
			}
		}
		r.orders[i] = ord
		return r.enrich(ord), nil
	}
	return WorkOrder{}, ErrNotFound
}

func (r *InMemoryRepository) enrich(ord WorkOrder) WorkOrder {
	if summary, ok := r.users[ord.CreatedByID]; ok {
		s := summary
		ord.CreatedBy = &s
	}
	if ord.AssignedToID != nil {
		if summary, ok := r.users[*ord.AssignedToID]; ok {
			s := summary
			ord.AssignedTo = &s
		}
	}
	return ord
}
