package repos

import (
	"github.com/jmoiron/sqlx"

	"bookhaven/internal/domain"
)

type BookRepo struct{ db *sqlx.DB }

func NewBookRepo(db *sqlx.DB) *BookRepo { return &BookRepo{db: db} }

const bookCols = `
  id, title, author, price, description, image, category, rating, in_stock, stock,
  COALESCE(isbn,'') AS isbn,
  COALESCE(published_year,0) AS published_year,
  created_at, COALESCE(updated_at,'') AS updated_at`

// BookFilter narrows List; zero values mean "no constraint".
type BookFilter struct {
	Category string
	MinPrice *float64
	MaxPrice *float64
	InStock  bool
}

// SortExpr maps an API sort key to an ORDER BY clause. Unknown keys fall
// back to newest-first, matching the default listing order.
func SortExpr(key string) string {
	switch key {
	case "price_asc":
		return "price ASC"
	case "price_desc":
		return "price DESC"
	case "rating":
		return "rating DESC"
	default: // "newest" and everything else
		return "datetime(created_at) DESC"
	}
}

func (r *BookRepo) List(f BookFilter, sortKey string) ([]domain.Book, error) {
	where := `1=1`
	args := []any{}
	if f.Category != "" && f.Category != "All" {
		where += ` AND category = ?`
		args = append(args, f.Category)
	}
	if f.MinPrice != nil {
		where += ` AND price >= ?`
		args = append(args, *f.MinPrice)
	}
	if f.MaxPrice != nil {
		where += ` AND price <= ?`
		args = append(args, *f.MaxPrice)
	}
	if f.InStock {
		where += ` AND in_stock = 1`
	}

	out := []domain.Book{}
	err := r.db.Select(&out, `SELECT `+bookCols+` FROM books WHERE `+where+` ORDER BY `+SortExpr(sortKey), args...)
	return out, err
}

func (r *BookRepo) Get(id string) (domain.Book, error) {
	var b domain.Book
	err := r.db.Get(&b, `SELECT `+bookCols+` FROM books WHERE id = ?`, id)
	return b, err
}

// Search matches q case-insensitively as a substring of title, author,
// category or description.
func (r *BookRepo) Search(q string) ([]domain.Book, error) {
	like := "%" + q + "%"
	out := []domain.Book{}
	err := r.db.Select(&out, `
	  SELECT `+bookCols+` FROM books
	  WHERE LOWER(title) LIKE LOWER(?)
	     OR LOWER(author) LIKE LOWER(?)
	     OR LOWER(category) LIKE LOWER(?)
	     OR LOWER(description) LIKE LOWER(?)
	  ORDER BY datetime(created_at) DESC
	`, like, like, like, like)
	return out, err
}

func (r *BookRepo) Create(b domain.Book) error {
	_, err := r.db.Exec(`
	  INSERT INTO books(id,title,author,price,description,image,category,rating,in_stock,stock,isbn,published_year,created_at)
	  VALUES(?,?,?,?,?,?,?,?,?,?,NULLIF(?,''),NULLIF(?,0),CURRENT_TIMESTAMP)
	`, b.ID, b.Title, b.Author, b.Price, b.Description, b.Image, b.Category, b.Rating, b.InStock, b.Stock, b.ISBN, b.PublishedYear)
	return err
}

func (r *BookRepo) Update(b domain.Book) (bool, error) {
	res, err := r.db.Exec(`
	  UPDATE books SET
	    title=?, author=?, price=?, description=?, image=?, category=?,
	    rating=?, in_stock=?, stock=?, isbn=NULLIF(?,''), published_year=NULLIF(?,0),
	    updated_at=CURRENT_TIMESTAMP
	  WHERE id=?
	`, b.Title, b.Author, b.Price, b.Description, b.Image, b.Category, b.Rating, b.InStock, b.Stock, b.ISBN, b.PublishedYear, b.ID)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

func (r *BookRepo) Delete(id string) (bool, error) {
	res, err := r.db.Exec(`DELETE FROM books WHERE id = ?`, id)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}
