package infra

import (
	"github.com/BryanFuM/saas-gyh-sub000/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx and runs AutoMigrate
// to create or update all tables. gen_random_uuid() defaults require the
// pgcrypto extension, created here before migrating.
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS pgcrypto").Error; err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(
		&model.User{},
		&model.Client{},
		&model.ClientPayment{},
		&model.ProductType{},
		&model.ProductQuality{},
		&model.Product{},
		&model.IngresoLote{},
		&model.IngresoItem{},
		&model.Venta{},
		&model.VentaItem{},
		&model.InventorySnapshot{},
	); err != nil {
		return nil, err
	}

	return db, nil
}
