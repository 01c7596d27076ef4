package domain

type Book struct {
	ID            string  `db:"id" json:"id"`
	Title         string  `db:"title" json:"title"`
	Author        string  `db:"author" json:"author"`
	Price         float64 `db:"price" json:"price"`
	Description   string  `db:"description" json:"description"`
	Image         string  `db:"image" json:"image"`
	Category      string  `db:"category" json:"category"`
	Rating        float64 `db:"rating" json:"rating"`
	InStock       bool    `db:"in_stock" json:"inStock"`
	Stock         int     `db:"stock" json:"stock"`
	ISBN          string  `db:"isbn" json:"isbn,omitempty"`
	PublishedYear int     `db:"published_year" json:"publishedYear,omitempty"`
	CreatedAt     string  `db:"created_at" json:"createdAt"`
	UpdatedAt     string  `db:"updated_at" json:"updatedAt,omitempty"`
}

// Categories is the fixed set of accepted book categories.
var Categories = []string{
	"Programming",
	"Software Engineering",
	"Design",
	"Science",
	"Fiction",
	"Business",
	"Self-Help",
	"Other",
}

func ValidCategory(s string) bool {
	for _, c := range Categories {
		if c == s {
			return true
		}
	}
	return false
}
