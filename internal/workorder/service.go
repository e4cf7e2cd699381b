package workorder

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/fieldstone/work-order-backend/internal/user"
)

var ErrForbidden = errors.New("forbidden")

// ValidationError carries field-level violations so handlers can report them
// to the caller.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return "validation failed"
}

// ListResult is the listing response payload.
type ListResult struct {
	Orders   []WorkOrder `json:"orders"`
	Total    int         `json:"total"`
	Page     int         `json:"page"`
	PageSize int         `json:"pageSize"`
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(params ListParams, actor user.Actor) (ListResult, error) {
	params = params.Normalize()
	orders, total, err := s.repo.List(params, actor)
	if err != nil {
		return ListResult{}, err
	}

	return ListResult{
		Orders:   orders,
		Total:    total,
		Page:     params.Page,
		PageSize: PageSize,
	}, nil
}

func (s *Service) Get(id string, actor user.Actor) (WorkOrder, error) {
	ord, err := s.repo.GetByID(id)
	if err != nil {
		return WorkOrder{}, err
	}
	if !CanAccess(actor, ord.CreatedByID) {
		return WorkOrder{}, ErrForbidden
	}
	return ord, nil
}

// Create persists a new order. Status and creator are forced server-side and
// cannot be chosen by the caller.
func (s *Service) Create(in CreateOrderInput, actor user.Actor) (WorkOrder, error) {
	if violations := in.Validate(); len(violations) > 0 {
		return WorkOrder{}, &ValidationError{Fields: violations}
	}

	now := time.Now().UTC().Format(time.RFC3339)
	return s.repo.Create(WorkOrder{
		ID:          uuid.NewString(),
		Title:       in.Title,
		Description: in.Description,
		Priority:    in.Priority,
		Status:      StatusOpen,
		CreatedByID: actor.ID,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
}

// Update applies the role-masked subset of the validated payload. Ownership
// is checked before validation. When the mask leaves nothing to change, the
// stored record is returned unchanged.
func (s *Service) Update(id string, in UpdateOrderInput, actor user.Actor) (WorkOrder, error) {
	ord, err := s.repo.GetByID(id)
	if err != nil {
		return WorkOrder{}, err
	}
	if !CanAccess(actor, ord.CreatedByID) {
		return WorkOrder{}, ErrForbidden
	}
	if violations := in.Validate(); len(violations) > 0 {
		return WorkOrder{}, &ValidationError{Fields: violations}
	}

	set := MaskUpdate(actor, in)
	if len(set) == 0 {
		return ord, nil
	}
	set["updated_at"] = time.Now().UTC().Format(time.RFC3339)

	return s.repo.UpdateFields(id, set)
}
