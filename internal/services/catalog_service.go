package services

import (
	"database/sql"

	"github.com/google/uuid"

	"bookhaven/internal/domain"
	"bookhaven/internal/repos"
	"bookhaven/internal/validate"
)

type CatalogService struct {
	Books *repos.BookRepo
}

func NewCatalogService(books *repos.BookRepo) *CatalogService {
	return &CatalogService{Books: books}
}

func (s *CatalogService) List(f repos.BookFilter, sortKey string) ([]domain.Book, error) {
	return s.Books.List(f, sortKey)
}

func (s *CatalogService) Get(id string) (domain.Book, error) {
	return s.Books.Get(id)
}

func (s *CatalogService) Search(q string) ([]domain.Book, error) {
	return s.Books.Search(q)
}

// BookPatch carries a partial update; nil fields keep their stored value.
type BookPatch struct {
	Title         *string  `json:"title"`
	Author        *string  `json:"author"`
	Price         *float64 `json:"price"`
	Description   *string  `json:"description"`
	Image         *string  `json:"image"`
	Category      *string  `json:"category"`
	Rating        *float64 `json:"rating"`
	InStock       *bool    `json:"inStock"`
	Stock         *int     `json:"stock"`
	ISBN          *string  `json:"isbn"`
	PublishedYear *int     `json:"publishedYear"`
}

func (p BookPatch) Apply(b *domain.Book) {
	if p.Title != nil {
		b.Title = *p.Title
	}
	if p.Author != nil {
		b.Author = *p.Author
	}
	if p.Price != nil {
		b.Price = *p.Price
	}
	if p.Description != nil {
		b.Description = *p.Description
	}
	if p.Image != nil {
		b.Image = *p.Image
	}
	if p.Category != nil {
		b.Category = *p.Category
	}
	if p.Rating != nil {
		b.Rating = *p.Rating
	}
	if p.InStock != nil {
		b.InStock = *p.InStock
	}
	if p.Stock != nil {
		b.Stock = *p.Stock
	}
	if p.ISBN != nil {
		b.ISBN = *p.ISBN
	}
	if p.PublishedYear != nil {
		b.PublishedYear = *p.PublishedYear
	}
}

// Create validates the full record and returns validate.FieldErrors when
// any constraint fails, so the caller can report every bad field at once.
func (s *CatalogService) Create(b domain.Book) (domain.Book, error) {
	if errs := validate.Book(b); errs.Any() {
		return domain.Book{}, errs
	}
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	if err := s.Books.Create(b); err != nil {
		return domain.Book{}, err
	}
	return s.Books.Get(b.ID)
}

// Update applies a partial patch and re-validates the merged record
// against the same constraints as Create. sql.ErrNoRows means no such book.
func (s *CatalogService) Update(id string, p BookPatch) (domain.Book, error) {
	b, err := s.Books.Get(id)
	if err != nil {
		return domain.Book{}, err
	}
	p.Apply(&b)
	if errs := validate.Book(b); errs.Any() {
		return domain.Book{}, errs
	}
	ok, err := s.Books.Update(b)
	if err != nil {
		return domain.Book{}, err
	}
	if !ok {
		return domain.Book{}, sql.ErrNoRows
	}
	return s.Books.Get(id)
}

func (s *CatalogService) Delete(id string) error {
	ok, err := s.Books.Delete(id)
	if err != nil {
		return err
	}
	if !ok {
		return sql.ErrNoRows
	}
	return nil
}
