package activity

import (
	"context"

	"go-cabinet/internal/tenant"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=activity_repo.go -destination=mock/activity_repo_mock.go -package=mock

type Repository interface {
	// Insert reports false when the id is already journaled.
	Insert(ctx context.Context, a *Activity) (bool, error)
	List(ctx context.Context, companyID string, q ListActivityQuery) ([]Activity, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Insert(ctx context.Context, a *Activity) (bool, error) {
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "id"}}, DoNothing: true}).
		Create(a)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *repository) List(ctx context.Context, companyID string, q ListActivityQuery) ([]Activity, error) {
	items := make([]Activity, 0)
	db := r.db.WithContext(ctx).Scopes(tenant.Scope(companyID))
	if q.AggregateType != "" {
		db = db.Where("aggregate_type = ?", q.AggregateType)
	}
	err := db.Order("occurred_at DESC").Limit(q.Limit).Find(&items).Error
	return items, err
}
