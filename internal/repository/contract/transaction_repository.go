package contract

import (
	"context"

	"solosolver-be/internal/entity"
	"solosolver-be/internal/repository/specification"
)

type TransactionRepository interface {
	Create(ctx context.Context, tx *entity.Transaction) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Transaction, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	Stats(ctx context.Context, userId string) (*entity.TransactionStats, error)
	TopDrivers(ctx context.Context, userId string, limit int) ([]entity.DriverCount, error)
}
