package contract

import (
	"context"

	"solosolver-be/internal/entity"
	"solosolver-be/internal/repository/specification"
)

type InteractionRepository interface {
	Create(ctx context.Context, record *entity.InteractionRecord) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.InteractionRecord, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
