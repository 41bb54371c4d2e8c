package repository

import (
	"context"

	"github.com/BryanFuM/saas-gyh-sub000/internal/model"

	"gorm.io/gorm"
)

type SnapshotRepository interface {
	Create(ctx context.Context, s *model.InventorySnapshot) error
	List(ctx context.Context, limit int) ([]model.InventorySnapshot, error)
}

type snapshotRepo struct{ db *gorm.DB }

func NewSnapshotRepository(db *gorm.DB) SnapshotRepository { return &snapshotRepo{db: db} }

func (r *snapshotRepo) Create(ctx context.Context, s *model.InventorySnapshot) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *snapshotRepo) List(ctx context.Context, limit int) ([]model.InventorySnapshot, error) {
	var snaps []model.InventorySnapshot
	err := r.db.WithContext(ctx).Order("date DESC").Limit(limit).Find(&snaps).Error
	return snaps, err
}
