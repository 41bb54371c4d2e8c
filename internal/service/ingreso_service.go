package service

import (
	"context"
	"strings"
	"time"

	"github.com/BryanFuM/saas-gyh-sub000/internal/apierror"
	"github.com/BryanFuM/saas-gyh-sub000/internal/conversion"
	"github.com/BryanFuM/saas-gyh-sub000/internal/dto"
	"github.com/BryanFuM/saas-gyh-sub000/internal/model"
	"github.com/BryanFuM/saas-gyh-sub000/internal/repository"
	"github.com/BryanFuM/saas-gyh-sub000/internal/timeutil"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type IngresoService interface {
	CrearLote(ctx context.Context, req dto.CrearIngresoLoteRequest) (*dto.IngresoLoteResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (*dto.IngresoLoteResponse, error)
	Listar(ctx context.Context, filter dto.IngresoFilter) (*dto.IngresoLoteListResponse, error)
	Eliminar(ctx context.Context, id uuid.UUID) error
}

type ingresoService struct {
	repo        repository.IngresoRepository
	productRepo repository.ProductRepository
	stock       StockService
	clock       *timeutil.Clock
}

func NewIngresoService(
	repo repository.IngresoRepository,
	productRepo repository.ProductRepository,
	stock StockService,
	clock *timeutil.Clock,
) IngresoService {
	return &ingresoService{repo: repo, productRepo: productRepo, stock: stock, clock: clock}
}

// CrearLote registers one truck arrival. Each row may be entered as kg or
// javas, with cost per kg or per java; all four combinations resolve through
// the conversion engine into the canonical triple (kg, javas, costo/java).
func (s *ingresoService) CrearLote(ctx context.Context, req dto.CrearIngresoLoteRequest) (*dto.IngresoLoteResponse, error) {
	placa := strings.ToUpper(strings.TrimSpace(req.TruckID))
	if len(placa) < 3 {
		return nil, apierror.FieldError("La placa del camión debe tener al menos 3 caracteres", "truck_id")
	}

	items := make([]model.IngresoItem, 0, len(req.Items))
	for _, row := range req.Items {
		pid, err := uuid.Parse(row.ProductID)
		if err != nil {
			return nil, apierror.FieldError("product_id inválido", "product_id")
		}
		product, err := s.productRepo.FindByID(ctx, pid)
		if err != nil {
			return nil, apierror.NotFound("Producto")
		}

		factor := product.ConversionFactor
		if row.ConversionFactor != nil {
			factor = *row.ConversionFactor
		}

		qtyUnit := conversion.Kg
		if row.QuantityUnit == "JAVA" {
			qtyUnit = conversion.Java
		}
		costUnit := conversion.Kg
		if row.CostUnit == "JAVA" {
			costUnit = conversion.Java
		}

		totalKg, err := conversion.ConvertQuantity(row.Quantity, factor, qtyUnit, conversion.Kg)
		if err != nil {
			return nil, apierror.FieldError(err.Error(), "conversion_factor")
		}
		totalJavas, err := conversion.ConvertQuantity(row.Quantity, factor, qtyUnit, conversion.Java)
		if err != nil {
			return nil, apierror.FieldError(err.Error(), "conversion_factor")
		}
		costPerJava, err := conversion.ConvertPrice(row.CostInput, factor, costUnit, conversion.Java)
		if err != nil {
			return nil, apierror.FieldError(err.Error(), "conversion_factor")
		}

		items = append(items, model.IngresoItem{
			SupplierName:     strings.TrimSpace(row.SupplierName),
			ProductID:        pid,
			TotalKg:          totalKg,
			ConversionFactor: factor,
			TotalJavas:       totalJavas,
			CostPerJava:      costPerJava,
			TotalCost:        costPerJava * totalJavas,
		})
	}

	lote := &model.IngresoLote{
		Date:    s.now(),
		TruckID: placa,
		Items:   items,
	}
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		return s.repo.CreateLote(ctx, tx, lote)
	})
	if txErr != nil {
		return nil, txErr
	}

	if s.stock != nil {
		s.stock.InvalidateCache(ctx)
	}

	// Reload with product names for the response.
	if s.repo.DB() != nil {
		if full, err := s.repo.FindLoteByID(ctx, lote.ID); err == nil {
			lote = full
		}
	}
	resp := loteToResponse(lote)
	return &resp, nil
}

func (s *ingresoService) Obtener(ctx context.Context, id uuid.UUID) (*dto.IngresoLoteResponse, error) {
	lote, err := s.repo.FindLoteByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("Ingreso")
	}
	resp := loteToResponse(lote)
	return &resp, nil
}

func (s *ingresoService) Listar(ctx context.Context, filter dto.IngresoFilter) (*dto.IngresoLoteListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	lotes, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.IngresoLoteResponse, len(lotes))
	for i := range lotes {
		data[i] = loteToResponse(&lotes[i])
	}
	return &dto.IngresoLoteListResponse{
		Data:  data,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func (s *ingresoService) Eliminar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindLoteByID(ctx, id); err != nil {
		return apierror.NotFound("Ingreso")
	}
	if err := s.repo.DeleteLote(ctx, id); err != nil {
		return err
	}
	if s.stock != nil {
		s.stock.InvalidateCache(ctx)
	}
	return nil
}

func (s *ingresoService) now() time.Time {
	if s.clock != nil {
		return s.clock.Now()
	}
	return time.Now()
}

func loteToResponse(lote *model.IngresoLote) dto.IngresoLoteResponse {
	items := make([]dto.IngresoItemResponse, len(lote.Items))
	lines := make([]conversion.LineItem, len(lote.Items))
	for i, item := range lote.Items {
		name := ""
		if item.Product != nil {
			name = item.Product.Name
		}
		items[i] = dto.IngresoItemResponse{
			ID:               item.ID.String(),
			SupplierName:     item.SupplierName,
			ProductID:        item.ProductID.String(),
			ProductName:      name,
			TotalKg:          round2(item.TotalKg),
			ConversionFactor: item.ConversionFactor,
			TotalJavas:       round2(item.TotalJavas),
			CostPerJava:      round2(item.CostPerJava),
			TotalCost:        round2(item.TotalCost),
		}
		lines[i] = conversion.LineItem{
			Factor:   item.ConversionFactor,
			Quantity: conversion.QuantityInput{Unit: conversion.Kg, Value: item.TotalKg},
			Price:    conversion.PriceInput{Unit: conversion.Java, Value: item.CostPerJava},
		}
	}
	// Factors were validated at intake, so Aggregate cannot fail here.
	totals, _ := conversion.Aggregate(lines)
	return dto.IngresoLoteResponse{
		ID:         lote.ID.String(),
		Date:       lote.Date.Format("2006-01-02"),
		TruckID:    lote.TruckID,
		Items:      items,
		TotalKg:    round2(totals.TotalKg),
		TotalJavas: round2(totals.TotalJavas),
		TotalCost:  round2(totals.TotalAmount),
	}
}
