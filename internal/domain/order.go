package domain

type ShippingInfo struct {
	FullName string `db:"ship_full_name" json:"fullName"`
	Email    string `db:"ship_email" json:"email"`
	Phone    string `db:"ship_phone" json:"phone"`
	Address  string `db:"ship_address" json:"address"`
	City     string `db:"ship_city" json:"city"`
	ZipCode  string `db:"ship_zip" json:"zipCode"`
}

// PaymentInfo is stored verbatim as supplied by the client; the card number
// arrives already masked.
type PaymentInfo struct {
	Method     string `db:"pay_method" json:"method"`
	CardNumber string `db:"pay_card" json:"cardNumber"`
}

type OrderItem struct {
	BookID   string `json:"-"`
	Quantity int    `json:"quantity"`
	// Book carries the full record after population; nil before.
	Book *Book `json:"book"`
}

const OrderStatusPending = "pending"

type Order struct {
	ID        string       `json:"id"`
	UserID    string       `json:"-"`
	User      *PublicUser  `json:"user,omitempty"`
	Items     []OrderItem  `json:"items"`
	Shipping  ShippingInfo `json:"shippingInfo"`
	Payment   PaymentInfo  `json:"paymentInfo"`
	Total     float64      `json:"totalAmount"`
	Status    string       `json:"status"`
	CreatedAt string       `json:"createdAt"`
}
