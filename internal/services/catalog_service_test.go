package services_test

import (
	"database/sql"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite" // pure-Go SQLite driver

	"bookhaven/internal/domain"
	"bookhaven/internal/repos"
	"bookhaven/internal/services"
	"bookhaven/internal/validate"
)

func memdb(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func catalog(t *testing.T) (*services.CatalogService, *sqlx.DB) {
	db := memdb(t)
	return services.NewCatalogService(repos.NewBookRepo(db)), db
}

func TestCatalogList_FiltersCombine(t *testing.T) {
	svc, _ := catalog(t)

	min, max := 25.0, 40.0
	books, err := svc.List(repos.BookFilter{
		Category: "Programming",
		MinPrice: &min,
		MaxPrice: &max,
		InStock:  true,
	}, "")
	require.NoError(t, err)
	require.NotEmpty(t, books)
	for _, b := range books {
		require.Equal(t, "Programming", b.Category)
		require.GreaterOrEqual(t, b.Price, min)
		require.LessOrEqual(t, b.Price, max)
		require.True(t, b.InStock)
	}
}

func TestCatalogList_SortOrders(t *testing.T) {
	svc, _ := catalog(t)

	asc, err := svc.List(repos.BookFilter{}, "price_asc")
	require.NoError(t, err)
	for i := 1; i < len(asc); i++ {
		require.LessOrEqual(t, asc[i-1].Price, asc[i].Price)
	}

	desc, err := svc.List(repos.BookFilter{}, "price_desc")
	require.NoError(t, err)
	for i := 1; i < len(desc); i++ {
		require.GreaterOrEqual(t, desc[i-1].Price, desc[i].Price)
	}

	byRating, err := svc.List(repos.BookFilter{}, "rating")
	require.NoError(t, err)
	for i := 1; i < len(byRating); i++ {
		require.GreaterOrEqual(t, byRating[i-1].Rating, byRating[i].Rating)
	}

	newest, err := svc.List(repos.BookFilter{}, "newest")
	require.NoError(t, err)
	for i := 1; i < len(newest); i++ {
		require.GreaterOrEqual(t, newest[i-1].CreatedAt, newest[i].CreatedAt)
	}
}

func TestCatalogSearch_CaseInsensitiveAcrossFields(t *testing.T) {
	svc, _ := catalog(t)

	byTitle, err := svc.Search("CLEAN code")
	require.NoError(t, err)
	require.Len(t, byTitle, 1)
	require.Equal(t, "Clean Code", byTitle[0].Title)

	byAuthor, err := svc.Search("crockford")
	require.NoError(t, err)
	require.Len(t, byAuthor, 1)
	require.Equal(t, "Douglas Crockford", byAuthor[0].Author)

	byCategory, err := svc.Search("software eng")
	require.NoError(t, err)
	require.NotEmpty(t, byCategory)
	for _, b := range byCategory {
		require.Equal(t, "Software Engineering", b.Category)
	}
}

func TestCatalogCreate_EnumeratesEveryFailedField(t *testing.T) {
	svc, _ := catalog(t)

	_, err := svc.Create(domain.Book{Price: -1, Rating: 9, Category: "Cooking"})
	require.Error(t, err)
	var errs validate.FieldErrors
	require.ErrorAs(t, err, &errs)
	require.Contains(t, errs, "Book title is required")
	require.Contains(t, errs, "Author name is required")
	require.Contains(t, errs, "Price cannot be negative")
	require.Contains(t, errs, "Description is required")
	require.Contains(t, errs, "Image URL is required")
	require.Contains(t, errs, "Cooking is not a valid category")
	require.Contains(t, errs, "Rating cannot be more than 5")
}

func TestCatalogCreateUpdateDelete(t *testing.T) {
	svc, _ := catalog(t)

	b, err := svc.Create(domain.Book{
		Title: "The Go Programming Language", Author: "Donovan & Kernighan",
		Price: 39.99, Description: "The definitive Go reference.",
		Image: "https://example.test/gopl.jpg", Category: "Programming",
		Rating: 4.7, InStock: true, Stock: 10, PublishedYear: 2015,
	})
	require.NoError(t, err)
	require.NotEmpty(t, b.ID)
	require.NotEmpty(t, b.CreatedAt)

	// partial update re-validates but keeps untouched fields
	newPrice := 29.99
	updated, err := svc.Update(b.ID, services.BookPatch{Price: &newPrice})
	require.NoError(t, err)
	require.Equal(t, newPrice, updated.Price)
	require.Equal(t, b.Title, updated.Title)

	badRating := 6.0
	_, err = svc.Update(b.ID, services.BookPatch{Rating: &badRating})
	var errs validate.FieldErrors
	require.ErrorAs(t, err, &errs)
	require.Contains(t, errs, "Rating cannot be more than 5")

	require.NoError(t, svc.Delete(b.ID))
	_, err = svc.Get(b.ID)
	require.ErrorIs(t, err, sql.ErrNoRows)
	require.ErrorIs(t, svc.Delete(b.ID), sql.ErrNoRows)
}

func TestCatalogUpdate_UnknownID(t *testing.T) {
	svc, _ := catalog(t)
	title := "x"
	_, err := svc.Update("no-such-book", services.BookPatch{Title: &title})
	require.ErrorIs(t, err, sql.ErrNoRows)
}
