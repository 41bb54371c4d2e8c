package repository

import (
	"context"

	"github.com/BryanFuM/saas-gyh-sub000/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProductRepository interface {
	Create(ctx context.Context, p *model.Product) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error)
	FindByNombre(ctx context.Context, name string) (*model.Product, error)
	List(ctx context.Context, search string) ([]model.Product, error)
	Update(ctx context.Context, p *model.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	UsageCount(ctx context.Context, id uuid.UUID) (int64, error)

	// Catálogos configurables de tipos y calidades.
	CreateType(ctx context.Context, t *model.ProductType) error
	ListTypes(ctx context.Context) ([]model.ProductType, error)
	DeleteType(ctx context.Context, id uuid.UUID) error
	CountProductsByType(ctx context.Context, name string) (int64, error)
	CreateQuality(ctx context.Context, q *model.ProductQuality) error
	ListQualities(ctx context.Context) ([]model.ProductQuality, error)
	DeleteQuality(ctx context.Context, id uuid.UUID) error
	CountProductsByQuality(ctx context.Context, name string) (int64, error)
	FindTypeByID(ctx context.Context, id uuid.UUID) (*model.ProductType, error)
	FindQualityByID(ctx context.Context, id uuid.UUID) (*model.ProductQuality, error)
}

type productRepo struct{ db *gorm.DB }

func NewProductRepository(db *gorm.DB) ProductRepository { return &productRepo{db: db} }

func (r *productRepo) Create(ctx context.Context, p *model.Product) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *productRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).First(&p, id).Error
	return &p, err
}

func (r *productRepo) FindByNombre(ctx context.Context, name string) (*model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).Where("LOWER(name) = LOWER(?)", name).First(&p).Error
	return &p, err
}

func (r *productRepo) List(ctx context.Context, search string) ([]model.Product, error) {
	var products []model.Product
	q := r.db.WithContext(ctx).Model(&model.Product{})
	if search != "" {
		q = q.Where("name ILIKE ?", "%"+search+"%")
	}
	err := q.Order("name ASC").Find(&products).Error
	return products, err
}

func (r *productRepo) Update(ctx context.Context, p *model.Product) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *productRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Product{}, id).Error
}

// UsageCount reports how many venta and ingreso rows reference the product,
// so the UI can warn before a delete that would orphan history.
func (r *productRepo) UsageCount(ctx context.Context, id uuid.UUID) (int64, error) {
	var nVentas, nIngresos int64
	if err := r.db.WithContext(ctx).Model(&model.VentaItem{}).
		Where("product_id = ?", id).Count(&nVentas).Error; err != nil {
		return 0, err
	}
	if err := r.db.WithContext(ctx).Model(&model.IngresoItem{}).
		Where("product_id = ?", id).Count(&nIngresos).Error; err != nil {
		return 0, err
	}
	return nVentas + nIngresos, nil
}

func (r *productRepo) CreateType(ctx context.Context, t *model.ProductType) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *productRepo) ListTypes(ctx context.Context) ([]model.ProductType, error) {
	var types []model.ProductType
	err := r.db.WithContext(ctx).Order("name ASC").Find(&types).Error
	return types, err
}

func (r *productRepo) DeleteType(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.ProductType{}, id).Error
}

func (r *productRepo) CountProductsByType(ctx context.Context, name string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Product{}).Where("type = ?", name).Count(&n).Error
	return n, err
}

func (r *productRepo) CreateQuality(ctx context.Context, q *model.ProductQuality) error {
	return r.db.WithContext(ctx).Create(q).Error
}

func (r *productRepo) ListQualities(ctx context.Context) ([]model.ProductQuality, error) {
	var qualities []model.ProductQuality
	err := r.db.WithContext(ctx).Order("name ASC").Find(&qualities).Error
	return qualities, err
}

func (r *productRepo) DeleteQuality(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.ProductQuality{}, id).Error
}

func (r *productRepo) CountProductsByQuality(ctx context.Context, name string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Product{}).Where("quality = ?", name).Count(&n).Error
	return n, err
}

func (r *productRepo) FindTypeByID(ctx context.Context, id uuid.UUID) (*model.ProductType, error) {
	var t model.ProductType
	err := r.db.WithContext(ctx).First(&t, id).Error
	return &t, err
}

func (r *productRepo) FindQualityByID(ctx context.Context, id uuid.UUID) (*model.ProductQuality, error) {
	var q model.ProductQuality
	err := r.db.WithContext(ctx).First(&q, id).Error
	return &q, err
}
