package validation_test

import (
	"context"
	"time"

	"github.com/DjordjeVuckovic/apikit/pkg/validation"
	"github.com/google/uuid"
)

type createUser struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
	Age   int    `json:"age,omitempty" validate:"omitempty,gte=0,lte=150"`
	Role  string `json:"role" validate:"oneof=member admin"`
}

func (u *createUser) SetDefaults() {
	if u.Role == "" {
		u.Role = "member"
	}
}

type listQuery struct {
	Page  int        `json:"page" validate:"gte=1"`
	Limit int        `json:"limit" validate:"gte=1,lte=100"`
	Tags  []string   `json:"tags,omitempty"`
	Since *time.Time `json:"since,omitempty"`
}

func (q *listQuery) SetDefaults() {
	if q.Page == 0 {
		q.Page = 1
	}
	if q.Limit == 0 {
		q.Limit = 10
	}
}

type userParams struct {
	ID uuid.UUID `json:"id" validate:"required"`
}

type item struct {
	Name  string  `json:"name" validate:"required"`
	Price float64 `json:"price" validate:"gt=0"`
}

type order struct {
	Items []item `json:"items" validate:"required,min=1,dive"`
}

type signup struct {
	Username string `json:"username" validate:"required,min=3"`
}

func (s *signup) Refine(ctx context.Context) error {
	if s.Username == "taken" {
		return validation.Issues{{Path: []any{"username"}, Message: "is already taken"}}
	}
	return nil
}

// schemaFunc adapts a function into a Schema
type schemaFunc[T any] func(ctx context.Context, v any) (T, error)

func (f schemaFunc[T]) Parse(ctx context.Context, v any) (T, error) {
	return f(ctx, v)
}
