package repository

import (
	"context"
	"time"

	"github.com/BryanFuM/saas-gyh-sub000/internal/dto"
	"github.com/BryanFuM/saas-gyh-sub000/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// IngresoAgg is the per-product sum over ingreso_items, scanned straight from
// a GROUP BY query. Stock and profit reports both start from this shape.
type IngresoAgg struct {
	ProductID  uuid.UUID
	TotalKg    float64
	TotalJavas float64
	TotalCost  float64
}

type IngresoRepository interface {
	CreateLote(ctx context.Context, tx *gorm.DB, lote *model.IngresoLote) error
	FindLoteByID(ctx context.Context, id uuid.UUID) (*model.IngresoLote, error)
	List(ctx context.Context, filter dto.IngresoFilter) ([]model.IngresoLote, int64, error)
	DeleteLote(ctx context.Context, id uuid.UUID) error

	SumPorProducto(ctx context.Context) ([]IngresoAgg, error)
	SumPorProductoEntre(ctx context.Context, desde, hasta time.Time) ([]IngresoAgg, error)

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type ingresoRepo struct{ db *gorm.DB }

func NewIngresoRepository(db *gorm.DB) IngresoRepository { return &ingresoRepo{db: db} }

func (r *ingresoRepo) DB() *gorm.DB { return r.db }

func (r *ingresoRepo) CreateLote(ctx context.Context, tx *gorm.DB, lote *model.IngresoLote) error {
	return tx.WithContext(ctx).Create(lote).Error
}

func (r *ingresoRepo) FindLoteByID(ctx context.Context, id uuid.UUID) (*model.IngresoLote, error) {
	var lote model.IngresoLote
	err := r.db.WithContext(ctx).Preload("Items.Product").First(&lote, id).Error
	return &lote, err
}

func (r *ingresoRepo) List(ctx context.Context, filter dto.IngresoFilter) ([]model.IngresoLote, int64, error) {
	var lotes []model.IngresoLote
	var total int64

	q := r.db.WithContext(ctx).Model(&model.IngresoLote{})
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("Items.Product").
		Order("date DESC").
		Offset(offset).Limit(filter.Limit).
		Find(&lotes).Error
	return lotes, total, err
}

func (r *ingresoRepo) DeleteLote(ctx context.Context, id uuid.UUID) error {
	// Items cascade via the FK constraint.
	return r.db.WithContext(ctx).Delete(&model.IngresoLote{}, id).Error
}

func (r *ingresoRepo) SumPorProducto(ctx context.Context) ([]IngresoAgg, error) {
	var aggs []IngresoAgg
	err := r.db.WithContext(ctx).Model(&model.IngresoItem{}).
		Select("product_id, COALESCE(SUM(total_kg),0) AS total_kg, COALESCE(SUM(total_javas),0) AS total_javas, COALESCE(SUM(total_cost),0) AS total_cost").
		Group("product_id").
		Scan(&aggs).Error
	return aggs, err
}

func (r *ingresoRepo) SumPorProductoEntre(ctx context.Context, desde, hasta time.Time) ([]IngresoAgg, error) {
	var aggs []IngresoAgg
	err := r.db.WithContext(ctx).Model(&model.IngresoItem{}).
		Joins("JOIN ingreso_lotes ON ingreso_lotes.id = ingreso_items.ingreso_lote_id").
		Where("ingreso_lotes.date >= ? AND ingreso_lotes.date < ?", desde, hasta).
		Select("product_id, COALESCE(SUM(total_kg),0) AS total_kg, COALESCE(SUM(total_javas),0) AS total_javas, COALESCE(SUM(total_cost),0) AS total_cost").
		Group("product_id").
		Scan(&aggs).Error
	return aggs, err
}
