package service

import (
	"context"
	"time"

	"github.com/BryanFuM/saas-gyh-sub000/internal/apierror"
	"github.com/BryanFuM/saas-gyh-sub000/internal/dto"
	"github.com/BryanFuM/saas-gyh-sub000/internal/model"
	"github.com/BryanFuM/saas-gyh-sub000/internal/repository"
	"github.com/BryanFuM/saas-gyh-sub000/internal/timeutil"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ClientService interface {
	Crear(ctx context.Context, req dto.CrearClienteRequest) (*dto.ClienteResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (*dto.ClienteResponse, error)
	Listar(ctx context.Context, search string) ([]dto.ClienteResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarClienteRequest) (*dto.ClienteResponse, error)
	Eliminar(ctx context.Context, id uuid.UUID) error
	RegistrarPago(ctx context.Context, id uuid.UUID, req dto.RegistrarPagoRequest) (*dto.PagoClienteResponse, error)
	ListarPagos(ctx context.Context, id uuid.UUID) ([]dto.PagoClienteResponse, error)
}

type clientService struct {
	repo  repository.ClientRepository
	clock *timeutil.Clock
}

func NewClientService(repo repository.ClientRepository, clock *timeutil.Clock) ClientService {
	return &clientService{repo: repo, clock: clock}
}

func (s *clientService) Crear(ctx context.Context, req dto.CrearClienteRequest) (*dto.ClienteResponse, error) {
	if _, err := s.repo.FindByName(ctx, req.Name); err == nil {
		return nil, apierror.Duplicate("cliente", "name", req.Name)
	}
	c := &model.Client{
		Name:           req.Name,
		WhatsappNumber: req.WhatsappNumber,
		Email:          req.Email,
		CurrentDebt:    decimal.Zero,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	resp := clienteToResponse(c)
	return &resp, nil
}

func (s *clientService) Obtener(ctx context.Context, id uuid.UUID) (*dto.ClienteResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("Cliente")
	}
	resp := clienteToResponse(c)
	return &resp, nil
}

func (s *clientService) Listar(ctx context.Context, search string) ([]dto.ClienteResponse, error) {
	clients, err := s.repo.List(ctx, search)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.ClienteResponse, len(clients))
	for i := range clients {
		resp[i] = clienteToResponse(&clients[i])
	}
	return resp, nil
}

func (s *clientService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarClienteRequest) (*dto.ClienteResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("Cliente")
	}
	if req.Name != nil && *req.Name != c.Name {
		if existing, err := s.repo.FindByName(ctx, *req.Name); err == nil && existing.ID != c.ID {
			return nil, apierror.Duplicate("cliente", "name", *req.Name)
		}
		c.Name = *req.Name
	}
	if req.WhatsappNumber != nil {
		c.WhatsappNumber = req.WhatsappNumber
	}
	if req.Email != nil {
		c.Email = req.Email
	}
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	resp := clienteToResponse(c)
	return &resp, nil
}

func (s *clientService) Eliminar(ctx context.Context, id uuid.UUID) error {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return apierror.NotFound("Cliente")
	}
	if c.CurrentDebt.IsPositive() {
		return apierror.New("No se puede eliminar un cliente con deuda pendiente")
	}
	n, err := s.repo.CountVentas(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return apierror.New("No se puede eliminar un cliente con ventas registradas")
	}
	return s.repo.Delete(ctx, id)
}

// RegistrarPago reduces the client's debt by the paid amount. Overpayment is
// tolerated: the debt is clamped at zero instead of going negative.
func (s *clientService) RegistrarPago(ctx context.Context, id uuid.UUID, req dto.RegistrarPagoRequest) (*dto.PagoClienteResponse, error) {
	if !req.Amount.IsPositive() {
		return nil, apierror.FieldError("El monto del pago debe ser mayor a 0", "amount")
	}
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("Cliente")
	}

	nuevaDeuda := c.CurrentDebt.Sub(req.Amount)
	if nuevaDeuda.IsNegative() {
		nuevaDeuda = decimal.Zero
	}

	pago := &model.ClientPayment{
		ClientID: id,
		Amount:   req.Amount,
		Date:     s.now(),
		Notes:    req.Notes,
	}
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.CreatePaymentTx(tx, pago); err != nil {
			return err
		}
		return s.repo.SetDebtTx(tx, id, nuevaDeuda)
	})
	if txErr != nil {
		return nil, txErr
	}

	return &dto.PagoClienteResponse{
		ID:         pago.ID.String(),
		ClientID:   id.String(),
		Amount:     pago.Amount,
		Date:       pago.Date.Format("2006-01-02"),
		Notes:      pago.Notes,
		DeudaNueva: nuevaDeuda,
	}, nil
}

func (s *clientService) ListarPagos(ctx context.Context, id uuid.UUID) ([]dto.PagoClienteResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("Cliente")
	}
	pagos, err := s.repo.ListPayments(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.PagoClienteResponse, len(pagos))
	for i, p := range pagos {
		resp[i] = dto.PagoClienteResponse{
			ID:         p.ID.String(),
			ClientID:   p.ClientID.String(),
			Amount:     p.Amount,
			Date:       p.Date.Format("2006-01-02"),
			Notes:      p.Notes,
			DeudaNueva: c.CurrentDebt,
		}
	}
	return resp, nil
}

func (s *clientService) now() time.Time {
	if s.clock != nil {
		return s.clock.Now()
	}
	return time.Now()
}

func clienteToResponse(c *model.Client) dto.ClienteResponse {
	return dto.ClienteResponse{
		ID:             c.ID.String(),
		Name:           c.Name,
		WhatsappNumber: c.WhatsappNumber,
		Email:          c.Email,
		CurrentDebt:    c.CurrentDebt,
	}
}
