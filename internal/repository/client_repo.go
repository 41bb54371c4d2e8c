package repository

import (
	"context"

	"github.com/BryanFuM/saas-gyh-sub000/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ClientRepository interface {
	Create(ctx context.Context, c *model.Client) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Client, error)
	FindByName(ctx context.Context, name string) (*model.Client, error)
	List(ctx context.Context, search string) ([]model.Client, error)
	Update(ctx context.Context, c *model.Client) error
	Delete(ctx context.Context, id uuid.UUID) error

	// Used inside transactions — callers must pass the tx instance.
	// SetDebtTx writes the already-clamped debt value computed by the service.
	SetDebtTx(tx *gorm.DB, id uuid.UUID, debt decimal.Decimal) error
	CreatePaymentTx(tx *gorm.DB, p *model.ClientPayment) error

	ListPayments(ctx context.Context, clientID uuid.UUID) ([]model.ClientPayment, error)
	CountVentas(ctx context.Context, clientID uuid.UUID) (int64, error)
	SumDeudas(ctx context.Context) (decimal.Decimal, error)

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type clientRepo struct{ db *gorm.DB }

func NewClientRepository(db *gorm.DB) ClientRepository { return &clientRepo{db: db} }

func (r *clientRepo) DB() *gorm.DB { return r.db }

func (r *clientRepo) Create(ctx context.Context, c *model.Client) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *clientRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Client, error) {
	var c model.Client
	err := r.db.WithContext(ctx).First(&c, id).Error
	return &c, err
}

func (r *clientRepo) FindByName(ctx context.Context, name string) (*model.Client, error) {
	var c model.Client
	err := r.db.WithContext(ctx).Where("LOWER(name) = LOWER(?)", name).First(&c).Error
	return &c, err
}

func (r *clientRepo) List(ctx context.Context, search string) ([]model.Client, error) {
	var clients []model.Client
	q := r.db.WithContext(ctx).Model(&model.Client{})
	if search != "" {
		q = q.Where("name ILIKE ?", "%"+search+"%")
	}
	err := q.Order("name ASC").Find(&clients).Error
	return clients, err
}

func (r *clientRepo) Update(ctx context.Context, c *model.Client) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *clientRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Client{}, id).Error
}

func (r *clientRepo) SetDebtTx(tx *gorm.DB, id uuid.UUID, debt decimal.Decimal) error {
	return tx.Model(&model.Client{}).Where("id = ?", id).Update("current_debt", debt).Error
}

func (r *clientRepo) CreatePaymentTx(tx *gorm.DB, p *model.ClientPayment) error {
	return tx.Create(p).Error
}

func (r *clientRepo) ListPayments(ctx context.Context, clientID uuid.UUID) ([]model.ClientPayment, error) {
	var pagos []model.ClientPayment
	err := r.db.WithContext(ctx).Where("client_id = ?", clientID).
		Order("date DESC").Find(&pagos).Error
	return pagos, err
}

func (r *clientRepo) SumDeudas(ctx context.Context) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.WithContext(ctx).Model(&model.Client{}).
		Select("COALESCE(SUM(current_debt),0)").Scan(&total).Error
	return total, err
}

func (r *clientRepo) CountVentas(ctx context.Context, clientID uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Venta{}).
		Where("client_id = ?", clientID).Count(&n).Error
	return n, err
}
