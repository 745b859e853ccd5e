package implementation

import (
	"context"

	"solosolver-be/internal/entity"
	"solosolver-be/internal/mapper"
	"solosolver-be/internal/model"
	"solosolver-be/internal/repository/contract"
	"solosolver-be/internal/repository/specification"

	"gorm.io/gorm"
)

type TransactionRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.TransactionMapper
}

func NewTransactionRepository(db *gorm.DB) contract.TransactionRepository {
	return &TransactionRepositoryImpl{
		db:     db,
		mapper: mapper.NewTransactionMapper(),
	}
}

func (r *TransactionRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *TransactionRepositoryImpl) Create(ctx context.Context, tx *entity.Transaction) error {
	m := r.mapper.ToModel(tx)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return classifyError(err)
	}
	*tx = *r.mapper.ToEntity(m)
	return nil
}

func (r *TransactionRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Transaction, error) {
	var models []*model.Transaction
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Transaction{}), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, classifyError(err)
	}
	return r.mapper.ToEntities(models), nil
}

func (r *TransactionRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Transaction{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, classifyError(err)
	}
	return count, nil
}

func (r *TransactionRepositoryImpl) Stats(ctx context.Context, userId string) (*entity.TransactionStats, error) {
	var row struct {
		PurchaseCount int64
		TotalValue    float64
		AvgRating     float64
		RatedCount    int64
	}
	err := r.db.WithContext(ctx).
		Model(&model.Transaction{}).
		Select("COUNT(*) AS purchase_count, COALESCE(SUM(price), 0) AS total_value, " +
			"COALESCE(SUM(rating_review) / NULLIF(COUNT(*), 0), 0) AS avg_rating, COUNT(rating_review) AS rated_count").
		Where("user_id = ?", userId).
		Scan(&row).Error
	if err != nil {
		return nil, classifyError(err)
	}

	return &entity.TransactionStats{
		PurchaseCount: row.PurchaseCount,
		TotalValue:    row.TotalValue,
		AvgRating:     row.AvgRating,
		RatedCount:    row.RatedCount,
	}, nil
}

func (r *TransactionRepositoryImpl) TopDrivers(ctx context.Context, userId string, limit int) ([]entity.DriverCount, error) {
	var rows []entity.DriverCount
	err := r.db.WithContext(ctx).
		Model(&model.Transaction{}).
		Select("inferred_complaint_driver AS driver, COUNT(*) AS count").
		Where("user_id = ? AND inferred_complaint_driver IS NOT NULL AND inferred_complaint_driver <> ''", userId).
		Group("inferred_complaint_driver").
		Order("count DESC, driver ASC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, classifyError(err)
	}
	return rows, nil
}
