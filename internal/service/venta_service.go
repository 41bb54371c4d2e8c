package service

import (
	"context"
	"time"

	"github.com/BryanFuM/saas-gyh-sub000/internal/apierror"
	"github.com/BryanFuM/saas-gyh-sub000/internal/conversion"
	"github.com/BryanFuM/saas-gyh-sub000/internal/dto"
	"github.com/BryanFuM/saas-gyh-sub000/internal/model"
	"github.com/BryanFuM/saas-gyh-sub000/internal/repository"
	"github.com/BryanFuM/saas-gyh-sub000/internal/timeutil"
	"github.com/BryanFuM/saas-gyh-sub000/internal/worker"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type VentaService interface {
	Crear(ctx context.Context, userID uuid.UUID, req dto.CrearVentaRequest) (*dto.VentaResponse, error)
	Obtener(ctx context.Context, id uuid.UUID, viewerID uuid.UUID, viewerRol string) (*dto.VentaResponse, error)
	Listar(ctx context.Context, filter dto.VentaFilter) (*dto.VentaListResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarVentaRequest) (*dto.VentaResponse, error)
	Eliminar(ctx context.Context, id uuid.UUID) error
	MarcarImpresa(ctx context.Context, id uuid.UUID) error
}

type ventaService struct {
	repo        repository.VentaRepository
	productRepo repository.ProductRepository
	clientRepo  repository.ClientRepository
	stock       StockService
	dispatcher  *worker.Dispatcher
	clock       *timeutil.Clock
}

func NewVentaService(
	repo repository.VentaRepository,
	productRepo repository.ProductRepository,
	clientRepo repository.ClientRepository,
	stock StockService,
	dispatcher *worker.Dispatcher,
	clock *timeutil.Clock,
) VentaService {
	return &ventaService{
		repo:        repo,
		productRepo: productRepo,
		clientRepo:  clientRepo,
		stock:       stock,
		dispatcher:  dispatcher,
		clock:       clock,
	}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// resolvedVenta carries the items and total of a sale after every line has
// been pushed through the conversion engine.
type resolvedVenta struct {
	items []model.VentaItem
	total decimal.Decimal
	names map[uuid.UUID]string
}

// resolveItems derives javas and subtotals for each requested line and checks
// requested kg against available stock. extraKg holds quantities being given
// back (an update replacing old items), counted as available again.
func (s *ventaService) resolveItems(ctx context.Context, items []dto.VentaItemRequest, extraKg map[uuid.UUID]float64) (*resolvedVenta, error) {
	stocks, err := s.stock.ComputeAll(ctx)
	if err != nil {
		return nil, err
	}

	requested := make(map[uuid.UUID]float64)
	out := &resolvedVenta{total: decimal.Zero, names: make(map[uuid.UUID]string)}

	for _, row := range items {
		pid, err := uuid.Parse(row.ProductID)
		if err != nil {
			return nil, apierror.FieldError("product_id inválido", "product_id")
		}
		product, err := s.productRepo.FindByID(ctx, pid)
		if err != nil {
			return nil, apierror.NotFound("Producto")
		}
		if !row.PricePerKg.IsPositive() {
			return nil, apierror.FieldError("El precio por kg debe ser mayor a 0", "price_per_kg")
		}

		javas, err := conversion.ConvertQuantity(row.QuantityKg, product.ConversionFactor, conversion.Kg, conversion.Java)
		if err != nil {
			return nil, apierror.FieldError(err.Error(), "conversion_factor")
		}
		subtotal := row.PricePerKg.Mul(decimal.NewFromFloat(row.QuantityKg)).Round(2)

		requested[pid] += row.QuantityKg
		out.names[pid] = product.Name
		out.items = append(out.items, model.VentaItem{
			ProductID:        pid,
			QuantityKg:       row.QuantityKg,
			QuantityJavas:    javas,
			ConversionFactor: product.ConversionFactor,
			PricePerKg:       row.PricePerKg,
			Subtotal:         subtotal,
		})
		out.total = out.total.Add(subtotal)
	}

	for pid, kg := range requested {
		available := stocks[pid].DisponibleKg + extraKg[pid]
		if kg > available+1e-9 {
			return nil, apierror.StockInsuficiente(out.names[pid], round2(available), round2(kg))
		}
	}
	return out, nil
}

func (s *ventaService) Crear(ctx context.Context, userID uuid.UUID, req dto.CrearVentaRequest) (*dto.VentaResponse, error) {
	var client *model.Client
	if req.Type == model.VentaPedido && req.ClientID == nil {
		return nil, apierror.FieldError("Una venta PEDIDO requiere cliente", "client_id")
	}
	if req.ClientID != nil {
		cid, err := uuid.Parse(*req.ClientID)
		if err != nil {
			return nil, apierror.FieldError("client_id inválido", "client_id")
		}
		client, err = s.clientRepo.FindByID(ctx, cid)
		if err != nil {
			return nil, apierror.NotFound("Cliente")
		}
	}

	resolved, err := s.resolveItems(ctx, req.Items, nil)
	if err != nil {
		return nil, err
	}

	venta := &model.Venta{
		Date:        s.now(),
		Type:        req.Type,
		UserID:      userID,
		TotalAmount: resolved.total,
		Items:       resolved.items,
	}
	if client != nil {
		venta.ClientID = &client.ID
	}

	var prevDebt, newDebt *decimal.Decimal
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.Create(ctx, tx, venta); err != nil {
			return err
		}
		// Solo PEDIDO acumula deuda.
		if req.Type == model.VentaPedido && client != nil {
			prev := client.CurrentDebt
			next := prev.Add(resolved.total)
			if err := s.clientRepo.SetDebtTx(tx, client.ID, next); err != nil {
				return err
			}
			prevDebt, newDebt = &prev, &next
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	s.stock.InvalidateCache(ctx)

	resp := s.ventaToResponse(venta, resolved.names, client)
	resp.PreviousDebt = prevDebt
	resp.NewDebt = newDebt
	return resp, nil
}

// Obtener applies the vendedor visibility rule: sellers only see their own
// sales from the current business day.
func (s *ventaService) Obtener(ctx context.Context, id uuid.UUID, viewerID uuid.UUID, viewerRol string) (*dto.VentaResponse, error) {
	venta, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("Venta")
	}
	if viewerRol == model.RolVendedor {
		if venta.UserID != viewerID || !s.sameBusinessDay(venta.Date) {
			return nil, apierror.Authorization()
		}
	}
	return s.ventaToResponse(venta, nil, venta.Client), nil
}

func (s *ventaService) Listar(ctx context.Context, filter dto.VentaFilter) (*dto.VentaListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	ventas, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.VentaResponse, len(ventas))
	for i := range ventas {
		data[i] = *s.ventaToResponse(&ventas[i], nil, ventas[i].Client)
	}
	return &dto.VentaListResponse{
		Data:  data,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

// Actualizar replaces the items of a sale and reconciles the client's debt
// with the difference between the old and new totals. A PEDIDO may also be
// reassigned to another client: the old client's debt is reverted (never
// below 0) and the new client accrues the full new total.
func (s *ventaService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarVentaRequest) (*dto.VentaResponse, error) {
	venta, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("Venta")
	}

	// The old quantities return to stock when the items are replaced.
	extraKg := make(map[uuid.UUID]float64)
	for _, item := range venta.Items {
		extraKg[item.ProductID] += item.QuantityKg
	}
	resolved, err := s.resolveItems(ctx, req.Items, extraKg)
	if err != nil {
		return nil, err
	}

	var client, prevClient *model.Client
	if venta.ClientID != nil {
		prevClient, err = s.clientRepo.FindByID(ctx, *venta.ClientID)
		if err != nil {
			return nil, apierror.NotFound("Cliente")
		}
	}
	client = prevClient
	if req.ClientID != nil {
		cid, parseErr := uuid.Parse(*req.ClientID)
		if parseErr != nil {
			return nil, apierror.FieldError("client_id inválido", "client_id")
		}
		if prevClient == nil || cid != prevClient.ID {
			client, err = s.clientRepo.FindByID(ctx, cid)
			if err != nil {
				return nil, apierror.NotFound("Cliente")
			}
			venta.ClientID = &cid
		}
	}

	oldTotal := venta.TotalAmount
	var prevDebt, newDebt *decimal.Decimal
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.DeleteItemsTx(tx, venta.ID); err != nil {
			return err
		}
		for i := range resolved.items {
			resolved.items[i].VentaID = venta.ID
		}
		if err := s.repo.CreateItemsTx(tx, resolved.items); err != nil {
			return err
		}
		venta.TotalAmount = resolved.total
		if err := s.repo.SaveTx(tx, venta); err != nil {
			return err
		}
		if venta.Type == model.VentaPedido && client != nil {
			if prevClient != nil && prevClient.ID != client.ID {
				// Cambio de cliente: el anterior deja de deber esta venta.
				reverted := prevClient.CurrentDebt.Sub(oldTotal)
				if reverted.IsNegative() {
					reverted = decimal.Zero
				}
				if err := s.clientRepo.SetDebtTx(tx, prevClient.ID, reverted); err != nil {
					return err
				}
				prev := client.CurrentDebt
				next := prev.Add(resolved.total)
				if err := s.clientRepo.SetDebtTx(tx, client.ID, next); err != nil {
					return err
				}
				prevDebt, newDebt = &prev, &next
			} else {
				prev := client.CurrentDebt
				next := prev.Sub(oldTotal).Add(resolved.total)
				if next.IsNegative() {
					next = decimal.Zero
				}
				if err := s.clientRepo.SetDebtTx(tx, client.ID, next); err != nil {
					return err
				}
				prevDebt, newDebt = &prev, &next
			}
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	s.stock.InvalidateCache(ctx)

	venta.Items = resolved.items
	resp := s.ventaToResponse(venta, resolved.names, client)
	resp.PreviousDebt = prevDebt
	resp.NewDebt = newDebt
	return resp, nil
}

// Eliminar removes a sale. For PEDIDO the client's debt is reverted by the
// sale total, floored at zero in case payments already covered part of it.
func (s *ventaService) Eliminar(ctx context.Context, id uuid.UUID) error {
	venta, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return apierror.NotFound("Venta")
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if venta.Type == model.VentaPedido && venta.ClientID != nil {
			client, err := s.clientRepo.FindByID(ctx, *venta.ClientID)
			if err == nil {
				next := client.CurrentDebt.Sub(venta.TotalAmount)
				if next.IsNegative() {
					next = decimal.Zero
				}
				if err := s.clientRepo.SetDebtTx(tx, client.ID, next); err != nil {
					return err
				}
			}
		}
		return s.repo.DeleteTx(tx, venta.ID)
	})
	if txErr != nil {
		return txErr
	}

	s.stock.InvalidateCache(ctx)
	return nil
}

// MarcarImpresa flags the sale as printed and queues the receipt job.
func (s *ventaService) MarcarImpresa(ctx context.Context, id uuid.UUID) error {
	venta, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return apierror.NotFound("Venta")
	}
	if err := s.repo.UpdateIsPrinted(ctx, id, true); err != nil {
		return err
	}
	if s.dispatcher != nil {
		payload := map[string]interface{}{"venta_id": venta.ID.String()}
		if venta.Client != nil && venta.Client.Email != nil {
			payload["cliente_email"] = *venta.Client.Email
		}
		_ = s.dispatcher.EnqueueRecibo(ctx, payload)
	}
	return nil
}

func (s *ventaService) sameBusinessDay(t time.Time) bool {
	if s.clock == nil {
		now := time.Now()
		return t.Year() == now.Year() && t.YearDay() == now.YearDay()
	}
	return s.clock.SameDay(t, s.clock.Now())
}

func (s *ventaService) now() time.Time {
	if s.clock != nil {
		return s.clock.Now()
	}
	return time.Now()
}

func (s *ventaService) ventaToResponse(v *model.Venta, names map[uuid.UUID]string, client *model.Client) *dto.VentaResponse {
	items := make([]dto.VentaItemResponse, len(v.Items))
	for i, item := range v.Items {
		name := names[item.ProductID]
		if name == "" && item.Product != nil {
			name = item.Product.Name
		}
		items[i] = dto.VentaItemResponse{
			ID:               item.ID.String(),
			ProductID:        item.ProductID.String(),
			ProductName:      name,
			QuantityKg:       item.QuantityKg,
			QuantityJavas:    round2(item.QuantityJavas),
			ConversionFactor: item.ConversionFactor,
			PricePerKg:       item.PricePerKg,
			Subtotal:         item.Subtotal,
		}
	}

	resp := &dto.VentaResponse{
		ID:          v.ID.String(),
		Date:        v.Date.Format("2006-01-02"),
		Type:        v.Type,
		UserID:      v.UserID.String(),
		TotalAmount: v.TotalAmount,
		IsPrinted:   v.IsPrinted,
		Items:       items,
	}
	if v.User != nil {
		resp.UserName = v.User.Username
	}
	if v.ClientID != nil {
		cid := v.ClientID.String()
		resp.ClientID = &cid
	}
	if client != nil {
		resp.ClientName = &client.Name
	} else if v.Client != nil {
		resp.ClientName = &v.Client.Name
	}
	return resp
}
