package service

import (
	"context"

	"github.com/BryanFuM/saas-gyh-sub000/internal/apierror"
	"github.com/BryanFuM/saas-gyh-sub000/internal/dto"
	"github.com/BryanFuM/saas-gyh-sub000/internal/model"
	"github.com/BryanFuM/saas-gyh-sub000/internal/repository"

	"github.com/google/uuid"
)

type ProductService interface {
	Crear(ctx context.Context, req dto.CrearProductoRequest) (*dto.ProductoResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (*dto.ProductoResponse, error)
	Listar(ctx context.Context, search string) ([]dto.ProductoResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarProductoRequest) (*dto.ProductoResponse, error)
	Eliminar(ctx context.Context, id uuid.UUID) error
	UsageCount(ctx context.Context, id uuid.UUID) (*dto.UsageCountResponse, error)

	CrearTipo(ctx context.Context, req dto.CrearCatalogoRequest) (*dto.CatalogoResponse, error)
	ListarTipos(ctx context.Context) ([]dto.CatalogoResponse, error)
	UsageCountTipo(ctx context.Context, id uuid.UUID) (*dto.UsageCountResponse, error)
	EliminarTipo(ctx context.Context, id uuid.UUID) error
	CrearCalidad(ctx context.Context, req dto.CrearCatalogoRequest) (*dto.CatalogoResponse, error)
	ListarCalidades(ctx context.Context) ([]dto.CatalogoResponse, error)
	UsageCountCalidad(ctx context.Context, id uuid.UUID) (*dto.UsageCountResponse, error)
	EliminarCalidad(ctx context.Context, id uuid.UUID) error
}

type productService struct {
	repo repository.ProductRepository
}

func NewProductService(repo repository.ProductRepository) ProductService {
	return &productService{repo: repo}
}

func (s *productService) Crear(ctx context.Context, req dto.CrearProductoRequest) (*dto.ProductoResponse, error) {
	if _, err := s.repo.FindByNombre(ctx, req.Name); err == nil {
		return nil, apierror.Duplicate("producto", "name", req.Name)
	}
	p := &model.Product{
		Name:             req.Name,
		Type:             req.Type,
		Quality:          req.Quality,
		ConversionFactor: req.ConversionFactor,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	resp := productoToResponse(p)
	return &resp, nil
}

func (s *productService) Obtener(ctx context.Context, id uuid.UUID) (*dto.ProductoResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("Producto")
	}
	resp := productoToResponse(p)
	return &resp, nil
}

func (s *productService) Listar(ctx context.Context, search string) ([]dto.ProductoResponse, error) {
	products, err := s.repo.List(ctx, search)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.ProductoResponse, len(products))
	for i := range products {
		resp[i] = productoToResponse(&products[i])
	}
	return resp, nil
}

func (s *productService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarProductoRequest) (*dto.ProductoResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("Producto")
	}
	if req.Name != nil && *req.Name != p.Name {
		if existing, err := s.repo.FindByNombre(ctx, *req.Name); err == nil && existing.ID != p.ID {
			return nil, apierror.Duplicate("producto", "name", *req.Name)
		}
		p.Name = *req.Name
	}
	if req.Type != nil {
		p.Type = *req.Type
	}
	if req.Quality != nil {
		p.Quality = *req.Quality
	}
	// Changing the factor only affects future operations; historical rows
	// keep the factor they were recorded with.
	if req.ConversionFactor != nil {
		p.ConversionFactor = *req.ConversionFactor
	}
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	resp := productoToResponse(p)
	return &resp, nil
}

func (s *productService) Eliminar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return apierror.NotFound("Producto")
	}
	n, err := s.repo.UsageCount(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return apierror.New("No se puede eliminar un producto con movimientos registrados")
	}
	return s.repo.Delete(ctx, id)
}

func (s *productService) UsageCount(ctx context.Context, id uuid.UUID) (*dto.UsageCountResponse, error) {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, apierror.NotFound("Producto")
	}
	n, err := s.repo.UsageCount(ctx, id)
	if err != nil {
		return nil, err
	}
	return &dto.UsageCountResponse{Count: n}, nil
}

// ── Catálogos de tipos y calidades ──────────────────────────────────────────

func (s *productService) CrearTipo(ctx context.Context, req dto.CrearCatalogoRequest) (*dto.CatalogoResponse, error) {
	t := &model.ProductType{Name: req.Name}
	if err := s.repo.CreateType(ctx, t); err != nil {
		return nil, apierror.Duplicate("tipo", "name", req.Name)
	}
	return &dto.CatalogoResponse{ID: t.ID.String(), Name: t.Name}, nil
}

func (s *productService) ListarTipos(ctx context.Context) ([]dto.CatalogoResponse, error) {
	types, err := s.repo.ListTypes(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.CatalogoResponse, len(types))
	for i, t := range types {
		resp[i] = dto.CatalogoResponse{ID: t.ID.String(), Name: t.Name}
	}
	return resp, nil
}

// UsageCountTipo reports how many products use the type, so the UI can warn
// before deleting it.
func (s *productService) UsageCountTipo(ctx context.Context, id uuid.UUID) (*dto.UsageCountResponse, error) {
	t, err := s.repo.FindTypeByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("Tipo")
	}
	n, err := s.repo.CountProductsByType(ctx, t.Name)
	if err != nil {
		return nil, err
	}
	return &dto.UsageCountResponse{Count: n}, nil
}

func (s *productService) EliminarTipo(ctx context.Context, id uuid.UUID) error {
	t, err := s.repo.FindTypeByID(ctx, id)
	if err != nil {
		return apierror.NotFound("Tipo")
	}
	n, err := s.repo.CountProductsByType(ctx, t.Name)
	if err != nil {
		return err
	}
	if n > 0 {
		return apierror.New("No se puede eliminar un tipo en uso por productos")
	}
	return s.repo.DeleteType(ctx, id)
}

func (s *productService) CrearCalidad(ctx context.Context, req dto.CrearCatalogoRequest) (*dto.CatalogoResponse, error) {
	q := &model.ProductQuality{Name: req.Name}
	if err := s.repo.CreateQuality(ctx, q); err != nil {
		return nil, apierror.Duplicate("calidad", "name", req.Name)
	}
	return &dto.CatalogoResponse{ID: q.ID.String(), Name: q.Name}, nil
}

func (s *productService) ListarCalidades(ctx context.Context) ([]dto.CatalogoResponse, error) {
	qualities, err := s.repo.ListQualities(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.CatalogoResponse, len(qualities))
	for i, q := range qualities {
		resp[i] = dto.CatalogoResponse{ID: q.ID.String(), Name: q.Name}
	}
	return resp, nil
}

func (s *productService) UsageCountCalidad(ctx context.Context, id uuid.UUID) (*dto.UsageCountResponse, error) {
	q, err := s.repo.FindQualityByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("Calidad")
	}
	n, err := s.repo.CountProductsByQuality(ctx, q.Name)
	if err != nil {
		return nil, err
	}
	return &dto.UsageCountResponse{Count: n}, nil
}

func (s *productService) EliminarCalidad(ctx context.Context, id uuid.UUID) error {
	q, err := s.repo.FindQualityByID(ctx, id)
	if err != nil {
		return apierror.NotFound("Calidad")
	}
	n, err := s.repo.CountProductsByQuality(ctx, q.Name)
	if err != nil {
		return err
	}
	if n > 0 {
		return apierror.New("No se puede eliminar una calidad en uso por productos")
	}
	return s.repo.DeleteQuality(ctx, id)
}

func productoToResponse(p *model.Product) dto.ProductoResponse {
	return dto.ProductoResponse{
		ID:               p.ID.String(),
		Name:             p.Name,
		Type:             p.Type,
		Quality:          p.Quality,
		ConversionFactor: p.ConversionFactor,
	}
}
