package handlers

import (
	"database/sql"
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"bookhaven/internal/domain"
	applog "bookhaven/internal/log"
	"bookhaven/internal/repos"
	"bookhaven/internal/services"
	"bookhaven/internal/validate"
)

type BookHandler struct {
	Catalog *services.CatalogService
}

// GET /api/books?category=&minPrice=&maxPrice=&inStock=&sort=
func (h *BookHandler) List(c *fiber.Ctx) error {
	var f repos.BookFilter
	f.Category = strings.TrimSpace(c.Query("category"))
	if v := c.Query("minPrice"); v != "" {
		p, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return failValidation(c, validate.FieldErrors{"minPrice must be a number"})
		}
		f.MinPrice = &p
	}
	if v := c.Query("maxPrice"); v != "" {
		p, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return failValidation(c, validate.FieldErrors{"maxPrice must be a number"})
		}
		f.MaxPrice = &p
	}
	f.InStock = c.Query("inStock") == "true"

	books, err := h.Catalog.List(f, c.Query("sort"))
	if err != nil {
		applog.Error(c, "books.list.fail", err, nil)
		return failInternal(c, "Error fetching books", err)
	}
	return okList(c, books)
}

// GET /api/books/search?q=
func (h *BookHandler) Search(c *fiber.Ctx) error {
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		return fail(c, fiber.StatusBadRequest, "Search query is required")
	}
	books, err := h.Catalog.Search(q)
	if err != nil {
		applog.Error(c, "books.search.fail", err, map[string]any{"q": q})
		return failInternal(c, "Error searching books", err)
	}
	return okList(c, books)
}

// GET /api/books/:id
func (h *BookHandler) Get(c *fiber.Ctx) error {
	id, okID := validate.ID(c.Params("id"))
	if !okID {
		// A malformed identifier can never match a record.
		return fail(c, fiber.StatusNotFound, "Book not found")
	}
	b, err := h.Catalog.Get(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fail(c, fiber.StatusNotFound, "Book not found")
		}
		applog.Error(c, "books.get.fail", err, map[string]any{"book_id": id})
		return failInternal(c, "Error fetching book", err)
	}
	return ok(c, b)
}

// POST /api/books  (admin)
func (h *BookHandler) Create(c *fiber.Ctx) error {
	var p services.BookPatch
	if err := c.BodyParser(&p); err != nil {
		return failValidation(c, validate.FieldErrors{"Invalid request body"})
	}
	b := domain.Book{InStock: true, Stock: 100}
	p.Apply(&b)

	out, err := h.Catalog.Create(b)
	if err != nil {
		var errs validate.FieldErrors
		if errors.As(err, &errs) {
			return failValidation(c, errs)
		}
		applog.Error(c, "books.create.fail", err, nil)
		return failInternal(c, "Error creating book", err)
	}
	applog.Audit(c, "books.create", map[string]any{"book_id": out.ID})
	return created(c, "Book created successfully", out)
}

// PUT /api/books/:id  (admin)
func (h *BookHandler) Update(c *fiber.Ctx) error {
	var p services.BookPatch
	if err := c.BodyParser(&p); err != nil {
		return failValidation(c, validate.FieldErrors{"Invalid request body"})
	}
	out, err := h.Catalog.Update(c.Params("id"), p)
	if err != nil {
		var errs validate.FieldErrors
		switch {
		case errors.As(err, &errs):
			return failValidation(c, errs)
		case errors.Is(err, sql.ErrNoRows):
			return fail(c, fiber.StatusNotFound, "Book not found")
		}
		applog.Error(c, "books.update.fail", err, map[string]any{"book_id": c.Params("id")})
		return failInternal(c, "Error updating book", err)
	}
	applog.Audit(c, "books.update", map[string]any{"book_id": out.ID})
	return okMsg(c, "Book updated successfully", out)
}

// DELETE /api/books/:id  (admin)
func (h *BookHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.Catalog.Delete(id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fail(c, fiber.StatusNotFound, "Book not found")
		}
		applog.Error(c, "books.delete.fail", err, map[string]any{"book_id": id})
		return failInternal(c, "Error deleting book", err)
	}
	applog.Audit(c, "books.delete", map[string]any{"book_id": id})
	return c.JSON(fiber.Map{"success": true, "message": "Book deleted successfully"})
}
