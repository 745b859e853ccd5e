package contract

import (
	"context"

	"solosolver-be/internal/entity"
	"solosolver-be/internal/repository/specification"
)

type ProfileRepository interface {
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.UserProfile, error)
}
