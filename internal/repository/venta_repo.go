package repository

import (
	"context"
	"time"

	"github.com/BryanFuM/saas-gyh-sub000/internal/dto"
	"github.com/BryanFuM/saas-gyh-sub000/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// VentaAgg is the per-product sum over venta_items.
type VentaAgg struct {
	ProductID  uuid.UUID
	TotalKg    float64
	TotalJavas float64
	Revenue    decimal.Decimal
}

// TipoAgg is the per-type (CAJA/PEDIDO) sum over ventas in a date range.
type TipoAgg struct {
	Type  string
	Count int64
	Total decimal.Decimal
}

type VentaRepository interface {
	Create(ctx context.Context, tx *gorm.DB, v *model.Venta) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Venta, error)
	List(ctx context.Context, filter dto.VentaFilter) ([]model.Venta, int64, error)
	UpdateIsPrinted(ctx context.Context, id uuid.UUID, printed bool) error

	// Used inside transactions — callers must pass the tx instance.
	SaveTx(tx *gorm.DB, v *model.Venta) error
	DeleteItemsTx(tx *gorm.DB, ventaID uuid.UUID) error
	CreateItemsTx(tx *gorm.DB, items []model.VentaItem) error
	DeleteTx(tx *gorm.DB, id uuid.UUID) error

	SumPorProducto(ctx context.Context) ([]VentaAgg, error)
	SumPorProductoEntre(ctx context.Context, desde, hasta time.Time) ([]VentaAgg, error)
	ResumenPorTipo(ctx context.Context, desde, hasta time.Time) ([]TipoAgg, error)

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type ventaRepo struct{ db *gorm.DB }

func NewVentaRepository(db *gorm.DB) VentaRepository { return &ventaRepo{db: db} }

func (r *ventaRepo) DB() *gorm.DB { return r.db }

func (r *ventaRepo) Create(ctx context.Context, tx *gorm.DB, v *model.Venta) error {
	return tx.WithContext(ctx).Create(v).Error
}

func (r *ventaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Venta, error) {
	var v model.Venta
	err := r.db.WithContext(ctx).
		Preload("Items.Product").Preload("Client").Preload("User").
		First(&v, id).Error
	return &v, err
}

func (r *ventaRepo) List(ctx context.Context, filter dto.VentaFilter) ([]model.Venta, int64, error) {
	var ventas []model.Venta
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Venta{})

	if filter.Fecha != "" {
		q = q.Where("DATE(date) = ?", filter.Fecha)
	}
	if filter.StartDate != "" {
		q = q.Where("DATE(date) >= ?", filter.StartDate)
	}
	if filter.EndDate != "" {
		q = q.Where("DATE(date) <= ?", filter.EndDate)
	}
	if filter.ClientID != "" {
		q = q.Where("client_id = ?", filter.ClientID)
	}
	if filter.Type != "" {
		q = q.Where("type = ?", filter.Type)
	}
	if filter.UserID != "" {
		q = q.Where("user_id = ?", filter.UserID)
	}
	if !filter.DayStart.IsZero() {
		q = q.Where("date >= ? AND date < ?", filter.DayStart, filter.DayEnd)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("Items.Product").Preload("Client").Preload("User").
		Order("date DESC").
		Offset(offset).Limit(filter.Limit).
		Find(&ventas).Error
	return ventas, total, err
}

func (r *ventaRepo) UpdateIsPrinted(ctx context.Context, id uuid.UUID, printed bool) error {
	return r.db.WithContext(ctx).Model(&model.Venta{}).
		Where("id = ?", id).Update("is_printed", printed).Error
}

func (r *ventaRepo) SaveTx(tx *gorm.DB, v *model.Venta) error {
	return tx.Omit("Items", "Client", "User").Save(v).Error
}

func (r *ventaRepo) DeleteItemsTx(tx *gorm.DB, ventaID uuid.UUID) error {
	return tx.Where("venta_id = ?", ventaID).Delete(&model.VentaItem{}).Error
}

func (r *ventaRepo) CreateItemsTx(tx *gorm.DB, items []model.VentaItem) error {
	return tx.Create(&items).Error
}

func (r *ventaRepo) DeleteTx(tx *gorm.DB, id uuid.UUID) error {
	// Items cascade via the FK constraint.
	return tx.Delete(&model.Venta{}, id).Error
}

func (r *ventaRepo) SumPorProducto(ctx context.Context) ([]VentaAgg, error) {
	var aggs []VentaAgg
	err := r.db.WithContext(ctx).Model(&model.VentaItem{}).
		Select("product_id, COALESCE(SUM(quantity_kg),0) AS total_kg, COALESCE(SUM(quantity_javas),0) AS total_javas, COALESCE(SUM(subtotal),0) AS revenue").
		Group("product_id").
		Scan(&aggs).Error
	return aggs, err
}

func (r *ventaRepo) SumPorProductoEntre(ctx context.Context, desde, hasta time.Time) ([]VentaAgg, error) {
	var aggs []VentaAgg
	err := r.db.WithContext(ctx).Model(&model.VentaItem{}).
		Joins("JOIN ventas ON ventas.id = venta_items.venta_id").
		Where("ventas.date >= ? AND ventas.date < ?", desde, hasta).
		Select("product_id, COALESCE(SUM(quantity_kg),0) AS total_kg, COALESCE(SUM(quantity_javas),0) AS total_javas, COALESCE(SUM(subtotal),0) AS revenue").
		Group("product_id").
		Scan(&aggs).Error
	return aggs, err
}

func (r *ventaRepo) ResumenPorTipo(ctx context.Context, desde, hasta time.Time) ([]TipoAgg, error) {
	var aggs []TipoAgg
	err := r.db.WithContext(ctx).Model(&model.Venta{}).
		Where("date >= ? AND date < ?", desde, hasta).
		Select("type, COUNT(*) AS count, COALESCE(SUM(total_amount),0) AS total").
		Group("type").
		Scan(&aggs).Error
	return aggs, err
}
