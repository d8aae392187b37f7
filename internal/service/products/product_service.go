package products

import (
	"context"
	"fmt"

	"github.com/Domenick1991/courtbooking/internal/domain"
	"github.com/Domenick1991/courtbooking/internal/repository"
)

type ProductUseCase interface {
	List(ctx context.Context, activeOnly bool) ([]domain.Product, error)
	Get(ctx context.Context, id int64) (*domain.Product, error)
	Create(ctx context.Context, input ProductInput) (*domain.Product, error)
	Update(ctx context.Context, id int64, input ProductInput) (*domain.Product, error)
	ListConsumptions(ctx context.Context, bookingID int64) ([]domain.Consumption, error)
	AddConsumption(ctx context.Context, input ConsumptionInput) (*domain.Consumption, error)
	DeleteConsumption(ctx context.Context, id int64) error
}

type ProductService struct {
	products repository.ProductRepository
	bookings repository.BookingRepository
}

type ProductInput struct {
	Name       string                 `json:"name"`
	Category   domain.ProductCategory `json:"category"`
	PriceCents int64                  `json:"price_cents"`
	IsActive   bool                   `json:"is_active"`
	Stock      *int                   `json:"stock"`
}

type ConsumptionInput struct {
	BookingID      int64  `json:"booking_id"`
	ProductID      int64  `json:"product_id"`
	Quantity       int    `json:"quantity"`
	UnitPriceCents *int64 `json:"unit_price_cents"`
}

func NewProductService(products repository.ProductRepository, bookings repository.BookingRepository) *ProductService {
	return &ProductService{products: products, bookings: bookings}
}

func (s *ProductService) List(ctx context.Context, activeOnly bool) ([]domain.Product, error) {
	return s.products.List(ctx, activeOnly)
}

func (s *ProductService) Get(ctx context.Context, id int64) (*domain.Product, error) {
	return s.products.GetByID(ctx, id)
}

func (s *ProductService) Create(ctx context.Context, input ProductInput) (*domain.Product, error) {
	if err := validateProduct(input); err != nil {
		return nil, err
	}
	product := &domain.Product{
		Name:       input.Name,
		Category:   input.Category,
		PriceCents: input.PriceCents,
		IsActive:   input.IsActive,
		Stock:      input.Stock,
	}
	if err := s.products.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *ProductService) Update(ctx context.Context, id int64, input ProductInput) (*domain.Product, error) {
	if err := validateProduct(input); err != nil {
		return nil, err
	}
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	product.Name = input.Name
	product.Category = input.Category
	product.PriceCents = input.PriceCents
	product.IsActive = input.IsActive
	product.Stock = input.Stock
	if err := s.products.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *ProductService) ListConsumptions(ctx context.Context, bookingID int64) ([]domain.Consumption, error) {
	return s.products.ListConsumptions(ctx, bookingID)
}

// AddConsumption sells a product against a booking. The unit price snapshots
// the product's current price unless overridden, and an existing closure is
// re-totalled so late sales still land on the receipt.
func (s *ProductService) AddConsumption(ctx context.Context, input ConsumptionInput) (*domain.Consumption, error) {
	if input.Quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity must be positive", domain.ErrValidation)
	}

	booking, err := s.bookings.GetByID(ctx, input.BookingID)
	if err != nil {
		return nil, err
	}
	if booking.Status == domain.BookingStatusCancelled {
		return nil, domain.ErrInvalidState
	}

	product, err := s.products.GetByID(ctx, input.ProductID)
	if err != nil {
		return nil, err
	}
	if !product.IsActive {
		return nil, fmt.Errorf("%w: product %q is not for sale", domain.ErrInvalidState, product.Name)
	}

	unitPrice := product.PriceCents
	if input.UnitPriceCents != nil {
		unitPrice = *input.UnitPriceCents
	}

	consumption := &domain.Consumption{
		BookingID:      booking.ID,
		ProductID:      product.ID,
		ProductName:    product.Name,
		Quantity:       input.Quantity,
		UnitPriceCents: unitPrice,
	}
	consumption.Recalculate()

	if err := s.products.CreateConsumption(ctx, consumption); err != nil {
		return nil, err
	}
	if err := s.bookings.RecalcClosureConsumptions(ctx, booking.ID); err != nil {
		return nil, err
	}
	return consumption, nil
}

func (s *ProductService) DeleteConsumption(ctx context.Context, id int64) error {
	consumption, err := s.products.GetConsumption(ctx, id)
	if err != nil {
		return err
	}
	if err := s.products.DeleteConsumption(ctx, id); err != nil {
		return err
	}
	return s.bookings.RecalcClosureConsumptions(ctx, consumption.BookingID)
}

func validateProduct(input ProductInput) error {
	if input.Name == "" {
		return fmt.Errorf("%w: product name is required", domain.ErrValidation)
	}
	switch input.Category {
	case domain.ProductCategoryBeverage, domain.ProductCategorySnack, domain.ProductCategoryEquipment, domain.ProductCategoryOther:
	default:
		return fmt.Errorf("%w: unknown product category %q", domain.ErrValidation, input.Category)
	}
	if input.PriceCents < 0 {
		return fmt.Errorf("%w: price must not be negative", domain.ErrValidation)
	}
	if input.Stock != nil && *input.Stock < 0 {
		return fmt.Errorf("%w: stock must not be negative", domain.ErrValidation)
	}
	return nil
}

var _ ProductUseCase = (*ProductService)(nil)
