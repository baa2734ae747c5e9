package ports

import (
	"context"

	"github.com/plateful/recipe-api/internal/core/domain"
)

// CreateUserInput carries the fields accepted when registering an account.
type CreateUserInput struct {
	Email    string
	Password string
	Name     string
}

// CreateSuperuserInput extends CreateUserInput with the staff flags. The
// pointers distinguish "not provided" from an explicit false, which is
// rejected.
type CreateSuperuserInput struct {
	Email       string
	Password    string
	Name        string
	IsStaff     *bool
	IsSuperuser *bool
}

// UpdateUserInput holds a partial profile update. Nil fields are left
// unchanged.
type UpdateUserInput struct {
	Email    *string
	Name     *string
	Password *string
}

type UserService interface {
	Create(ctx context.Context, in CreateUserInput) (*domain.User, error)
	CreateSuperuser(ctx context.Context, in CreateSuperuserInput) (*domain.User, error)
	IssueToken(ctx context.Context, email, password string) (string, *domain.User, error)
	Get(ctx context.Context, userID uint) (*domain.User, error)
	Update(ctx context.Context, userID uint, in UpdateUserInput) (*domain.User, error)
}
