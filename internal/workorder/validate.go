package workorder

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// CreateOrderInput is the payload for creating an order. All fields are
// required; unknown JSON fields are dropped by the decoder.
type CreateOrderInput struct {
	Title       string `json:"title" validate:"required,min=3"`
	Description string `json:"description" validate:"required,min=5"`
	Priority    string `json:"priority" validate:"required,oneof=LOW MED HIGH"`
}

// UpdateOrderInput is the payload for a partial update. Every field is
// optional; a field that is present but violates its constraint is rejected.
type UpdateOrderInput struct {
	Title        string `json:"title" validate:"omitempty,min=3"`
	Description  string `json:"description" validate:"omitempty,min=5"`
	Priority     string `json:"priority" validate:"omitempty,oneof=LOW MED HIGH"`
	Status       string `json:"status" validate:"omitempty,oneof=OPEN IN_PROGRESS CLOSED"`
	AssignedToID *int   `json:"assignedToId" validate:"omitempty,gt=0"`
}

// Validate returns field-level violations keyed by JSON field name, empty on
// success.
func (in CreateOrderInput) Validate() map[string]string {
	return flattenErrors(validate.Struct(in))
}

func (in UpdateOrderInput) Validate() map[string]string {
	return flattenErrors(validate.Struct(in))
}

var fieldJSON = map[string]string{
	"Title":        "title",
	"Description":  "description",
	"Priority":     "priority",
	"Status":       "status",
	"AssignedToID": "assignedToId",
}

func flattenErrors(err error) map[string]string {
	if err == nil {
		return nil
	}

	violations := map[string]string{}
	for _, fe := range err.(validator.ValidationErrors) {
		field, ok := fieldJSON[fe.Field()]
		if !ok {
			field = fe.Field()
		}
		violations[field] = messageFor(fe)
	}
	return violations
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of %s", fe.Param())
	case "gt":
		return "must be positive"
	default:
		return "is invalid"
	}
}
