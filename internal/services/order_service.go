package services

import (
	"database/sql"

	"github.com/google/uuid"

	"bookhaven/internal/domain"
	"bookhaven/internal/repos"
	"bookhaven/internal/validate"
)

type OrderService struct {
	Books  *repos.BookRepo
	Orders *repos.OrderRepo
}

func NewOrderService(books *repos.BookRepo, orders *repos.OrderRepo) *OrderService {
	return &OrderService{Books: books, Orders: orders}
}

type OrderItemInput struct {
	Book     string `json:"book"`
	Quantity int    `json:"quantity"`
}

type PlaceOrderInput struct {
	Items    []OrderItemInput    `json:"items"`
	Shipping domain.ShippingInfo `json:"shippingInfo"`
	Payment  domain.PaymentInfo  `json:"paymentInfo"`
	Total    float64             `json:"totalAmount"`
}

// Place validates the cart contents against the catalog and persists the
// order. Each reference is resolved sequentially and the first failure
// aborts the whole request, so no partial order ever exists. Stock is
// checked but never decremented; two concurrent orders for the last copy
// both succeed.
func (s *OrderService) Place(userID string, in PlaceOrderInput) (domain.Order, error) {
	if len(in.Items) == 0 {
		return domain.Order{}, ErrNoItems
	}
	if in.Shipping.FullName == "" || in.Total == 0 {
		return domain.Order{}, ErrMissingFields
	}

	items := make([]domain.OrderItem, 0, len(in.Items))
	for _, it := range in.Items {
		if it.Quantity < 1 {
			return domain.Order{}, validate.FieldErrors{"Quantity must be at least 1"}
		}
		b, err := s.Books.Get(it.Book)
		if err != nil {
			if err == sql.ErrNoRows {
				return domain.Order{}, &BookMissingError{BookID: it.Book}
			}
			return domain.Order{}, err
		}
		if !b.InStock {
			return domain.Order{}, &OutOfStockError{Title: b.Title}
		}
		items = append(items, domain.OrderItem{BookID: it.Book, Quantity: it.Quantity})
	}

	// Shipping, payment and the client-computed total are stored verbatim.
	o := domain.Order{
		ID:       uuid.NewString(),
		UserID:   userID,
		Items:    items,
		Shipping: in.Shipping,
		Payment:  in.Payment,
		Total:    in.Total,
		Status:   domain.OrderStatusPending,
	}
	if err := s.Orders.Create(o); err != nil {
		return domain.Order{}, err
	}
	return s.Orders.Get(o.ID)
}

func (s *OrderService) Get(id string) (domain.Order, error) {
	return s.Orders.Get(id)
}

func (s *OrderService) ListByUser(userID string) ([]domain.Order, error) {
	return s.Orders.ListByUser(userID)
}

func (s *OrderService) ListAll(f repos.OrderFilter) ([]domain.Order, error) {
	return s.Orders.ListAll(f)
}

func (s *OrderService) UpdateStatus(id, status string) (domain.Order, error) {
	ok, err := s.Orders.UpdateStatus(id, status)
	if err != nil {
		return domain.Order{}, err
	}
	if !ok {
		return domain.Order{}, sql.ErrNoRows
	}
	return s.Orders.Get(id)
}
