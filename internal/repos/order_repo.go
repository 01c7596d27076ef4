package repos

import (
	"github.com/jmoiron/sqlx"

	"bookhaven/internal/domain"
)

type OrderRepo struct{ db *sqlx.DB }

func NewOrderRepo(db *sqlx.DB) *OrderRepo { return &OrderRepo{db: db} }

// OrderFilter narrows the administrative listing.
type OrderFilter struct {
	Status    string
	StartDate string
	EndDate   string
}

type orderRow struct {
	ID     string `db:"id"`
	UserID string `db:"user_id"`
	domain.ShippingInfo
	domain.PaymentInfo
	Total     float64 `db:"total"`
	Status    string  `db:"status"`
	CreatedAt string  `db:"created_at"`
	UserName  string  `db:"user_full_name"`
	UserEmail string  `db:"user_email"`
}

type orderItemRow struct {
	BookID string `db:"book_id"`
	Qty    int    `db:"qty"`
	Found  int    `db:"found"`

	Title         string  `db:"title"`
	Author        string  `db:"author"`
	Price         float64 `db:"price"`
	Description   string  `db:"description"`
	Image         string  `db:"image"`
	Category      string  `db:"category"`
	Rating        float64 `db:"rating"`
	InStock       bool    `db:"in_stock"`
	Stock         int     `db:"stock"`
	ISBN          string  `db:"isbn"`
	PublishedYear int     `db:"published_year"`
	BCreatedAt    string  `db:"b_created_at"`
}

const orderCols = `
  o.id, COALESCE(o.user_id,'') AS user_id,
  o.ship_full_name, COALESCE(o.ship_email,'') AS ship_email, COALESCE(o.ship_phone,'') AS ship_phone,
  COALESCE(o.ship_address,'') AS ship_address, COALESCE(o.ship_city,'') AS ship_city, COALESCE(o.ship_zip,'') AS ship_zip,
  COALESCE(o.pay_method,'') AS pay_method, COALESCE(o.pay_card,'') AS pay_card,
  o.total, o.status, o.created_at,
  COALESCE(u.full_name,'') AS user_full_name, COALESCE(u.email,'') AS user_email`

// Create inserts the order header and its line items in one transaction.
func (r *OrderRepo) Create(o domain.Order) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`
	  INSERT INTO orders
	    (id, user_id, ship_full_name, ship_email, ship_phone, ship_address, ship_city, ship_zip,
	     pay_method, pay_card, total, status, created_at)
	  VALUES
	    (?, NULLIF(?,''), ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
	`, o.ID, o.UserID,
		o.Shipping.FullName, o.Shipping.Email, o.Shipping.Phone, o.Shipping.Address, o.Shipping.City, o.Shipping.ZipCode,
		o.Payment.Method, o.Payment.CardNumber, o.Total, o.Status); err != nil {
		return err
	}

	for _, it := range o.Items {
		if _, err := tx.Exec(`
		  INSERT INTO order_items(order_id, book_id, qty) VALUES(?, ?, ?)
		`, o.ID, it.BookID, it.Quantity); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *OrderRepo) Get(orderID string) (domain.Order, error) {
	var row orderRow
	if err := r.db.Get(&row, `
	  SELECT `+orderCols+`
	  FROM orders o LEFT JOIN users u ON u.id = o.user_id
	  WHERE o.id = ?
	`, orderID); err != nil {
		return domain.Order{}, err
	}

	o := row.toOrder()
	items, err := r.itemsFor(orderID)
	if err != nil {
		return domain.Order{}, err
	}
	o.Items = items
	return o, nil
}

// ListByUser returns a user's orders, newest first, items populated.
func (r *OrderRepo) ListByUser(userID string) ([]domain.Order, error) {
	var rows []orderRow
	if err := r.db.Select(&rows, `
	  SELECT `+orderCols+`
	  FROM orders o LEFT JOIN users u ON u.id = o.user_id
	  WHERE o.user_id = ?
	  ORDER BY datetime(o.created_at) DESC
	`, userID); err != nil {
		return nil, err
	}
	return r.expand(rows)
}

// ListAll returns every order matching the filter, newest first.
func (r *OrderRepo) ListAll(f OrderFilter) ([]domain.Order, error) {
	where := `1=1`
	args := []any{}
	if f.Status != "" {
		where += ` AND o.status = ?`
		args = append(args, f.Status)
	}
	if f.StartDate != "" {
		where += ` AND datetime(o.created_at) >= datetime(?)`
		args = append(args, f.StartDate)
	}
	if f.EndDate != "" {
		where += ` AND datetime(o.created_at) <= datetime(?)`
		args = append(args, f.EndDate)
	}

	var rows []orderRow
	if err := r.db.Select(&rows, `
	  SELECT `+orderCols+`
	  FROM orders o LEFT JOIN users u ON u.id = o.user_id
	  WHERE `+where+`
	  ORDER BY datetime(o.created_at) DESC
	`, args...); err != nil {
		return nil, err
	}
	return r.expand(rows)
}

// UpdateStatus replaces the status unconditionally; any string is accepted.
func (r *OrderRepo) UpdateStatus(id, status string) (bool, error) {
	res, err := r.db.Exec(`UPDATE orders SET status = ? WHERE id = ?`, status, id)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

func (row orderRow) toOrder() domain.Order {
	o := domain.Order{
		ID:        row.ID,
		UserID:    row.UserID,
		Shipping:  row.ShippingInfo,
		Payment:   row.PaymentInfo,
		Total:     row.Total,
		Status:    row.Status,
		CreatedAt: row.CreatedAt,
	}
	if row.UserID != "" && row.UserEmail != "" {
		o.User = &domain.PublicUser{ID: row.UserID, FullName: row.UserName, Email: row.UserEmail}
	}
	return o
}

func (r *OrderRepo) expand(rows []orderRow) ([]domain.Order, error) {
	out := make([]domain.Order, 0, len(rows))
	for _, row := range rows {
		o := row.toOrder()
		items, err := r.itemsFor(row.ID)
		if err != nil {
			return nil, err
		}
		o.Items = items
		out = append(out, o)
	}
	return out, nil
}

// itemsFor loads line items with their book details. A book deleted after
// the order was placed leaves the reference dangling on purpose; the item
// survives with a nil Book.
func (r *OrderRepo) itemsFor(orderID string) ([]domain.OrderItem, error) {
	var rows []orderItemRow
	if err := r.db.Select(&rows, `
	  SELECT oi.book_id, oi.qty,
	         CASE WHEN b.id IS NULL THEN 0 ELSE 1 END AS found,
	         COALESCE(b.title,'') AS title, COALESCE(b.author,'') AS author,
	         COALESCE(b.price,0) AS price, COALESCE(b.description,'') AS description,
	         COALESCE(b.image,'') AS image, COALESCE(b.category,'') AS category,
	         COALESCE(b.rating,0) AS rating, COALESCE(b.in_stock,0) AS in_stock,
	         COALESCE(b.stock,0) AS stock, COALESCE(b.isbn,'') AS isbn,
	         COALESCE(b.published_year,0) AS published_year,
	         COALESCE(b.created_at,'') AS b_created_at
	  FROM order_items oi LEFT JOIN books b ON b.id = oi.book_id
	  WHERE oi.order_id = ?
	`, orderID); err != nil {
		return nil, err
	}

	items := make([]domain.OrderItem, 0, len(rows))
	for _, it := range rows {
		item := domain.OrderItem{BookID: it.BookID, Quantity: it.Qty}
		if it.Found == 1 {
			item.Book = &domain.Book{
				ID: it.BookID, Title: it.Title, Author: it.Author, Price: it.Price,
				Description: it.Description, Image: it.Image, Category: it.Category,
				Rating: it.Rating, InStock: it.InStock, Stock: it.Stock,
				ISBN: it.ISBN, PublishedYear: it.PublishedYear, CreatedAt: it.BCreatedAt,
			}
		}
		items = append(items, item)
	}
	return items, nil
}
