package repos

import (
	"log"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite"
)

func OpenDB(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if dsn == ":memory:" {
		// a pooled second connection would see a different empty database
		db.SetMaxOpenConns(1)
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}

	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	// Seed demo catalog if DB is empty
	if err := seedBooksIfEmpty(db); err != nil {
		return nil, err
	}
	// Ensure demo users exist (idempotent; safe to run every start)
	if err := seedUsers(db); err != nil {
		return nil, err
	}

	return db, nil
}

// Orders hold weak references: user_id and book_id are plain columns on
// purpose, so deleting a book or user never cascades into order history.
func ensureSchema(db *sqlx.DB) error {
	schema := `
-- Books
CREATE TABLE IF NOT EXISTS books(
  id TEXT PRIMARY KEY,
  title TEXT NOT NULL,
  author TEXT NOT NULL,
  price NUMERIC NOT NULL CHECK (price >= 0),
  description TEXT NOT NULL,
  image TEXT NOT NULL,
  category TEXT NOT NULL,
  rating NUMERIC NOT NULL DEFAULT 0 CHECK (rating >= 0 AND rating <= 5),
  in_stock INTEGER NOT NULL DEFAULT 1,
  stock INTEGER NOT NULL DEFAULT 100 CHECK (stock >= 0),
  isbn TEXT,
  published_year INTEGER,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_books_isbn ON books(isbn) WHERE isbn IS NOT NULL;
CREATE INDEX IF NOT EXISTS idx_books_category   ON books(category);
CREATE INDEX IF NOT EXISTS idx_books_price      ON books(price);
CREATE INDEX IF NOT EXISTS idx_books_created_at ON books(created_at);
CREATE INDEX IF NOT EXISTS idx_books_title      ON books(LOWER(title));

-- Users
CREATE TABLE IF NOT EXISTS users(
  id TEXT PRIMARY KEY,
  full_name TEXT NOT NULL,
  email TEXT NOT NULL UNIQUE,
  password_hash TEXT NOT NULL,
  role TEXT NOT NULL DEFAULT 'customer' CHECK (role IN ('customer','admin')),
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email ON users(LOWER(email));

-- Orders
CREATE TABLE IF NOT EXISTS orders(
  id TEXT PRIMARY KEY,
  user_id TEXT,
  ship_full_name TEXT NOT NULL,
  ship_email TEXT,
  ship_phone TEXT,
  ship_address TEXT,
  ship_city TEXT,
  ship_zip TEXT,
  pay_method TEXT,
  pay_card TEXT,
  total NUMERIC NOT NULL,
  status TEXT NOT NULL DEFAULT 'pending',
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_orders_user       ON orders(user_id);
CREATE INDEX IF NOT EXISTS idx_orders_status     ON orders(status);
CREATE INDEX IF NOT EXISTS idx_orders_created_at ON orders(created_at);

-- Line items are stored verbatim, one row per submitted item; the same
-- book may appear on several rows of one order.
CREATE TABLE IF NOT EXISTS order_items(
  order_id TEXT NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
  book_id  TEXT NOT NULL,
  qty INTEGER NOT NULL CHECK (qty >= 1)
);
CREATE INDEX IF NOT EXISTS idx_order_items_order ON order_items(order_id);
`
	_, err := db.Exec(schema)
	return err
}

func seedBooksIfEmpty(db *sqlx.DB) error {
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM books`); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	log.Println("[seed] inserting demo books")

	tx := db.MustBegin()
	tx.MustExec(`INSERT INTO books(id,title,author,price,description,image,category,rating,in_stock,stock,isbn,published_year) VALUES
	  ('bk-react-mastery','React Mastery','Dan Abramov',25.99,'Master modern React from hooks to suspense.','https://images.unsplash.com/photo-1532012197267-da84d127e765?w=400&h=500&fit=crop','Programming',4.8,1,50,'978-1000000001',2022),
	  ('bk-node-action','Node.js in Action','Ryan Dahl',30.99,'Server-side JavaScript patterns and practice.','https://images.unsplash.com/photo-1544947950-fa07a98d237f?w=400&h=500&fit=crop','Programming',4.6,1,45,'978-1000000002',2021),
	  ('bk-js-good-parts','JavaScript: The Good Parts','Douglas Crockford',22.99,'The elegant subset of JavaScript worth using.','https://images.unsplash.com/photo-1543002588-bfa74002ed7e?w=400&h=500&fit=crop','Programming',4.7,1,60,'978-1000000003',2008),
	  ('bk-clean-code','Clean Code','Robert C. Martin',35.99,'A handbook of agile software craftsmanship.','https://images.unsplash.com/photo-1589998059171-988d887df646?w=400&h=500&fit=crop','Software Engineering',4.9,1,40,'978-1000000004',2008),
	  ('bk-design-patterns','Design Patterns','Gang of Four',42.99,'Elements of reusable object-oriented software.','https://images.unsplash.com/photo-1618365908648-e71bd5716cba?w=400&h=500&fit=crop','Software Engineering',4.8,1,35,'978-1000000005',1994),
	  ('bk-pragmatic','The Pragmatic Programmer','Andrew Hunt & David Thomas',38.99,'Your journey to mastery, 20th anniversary edition.','https://images.unsplash.com/photo-1551033406-611cf9a28f67?w=400&h=500&fit=crop','Software Engineering',4.8,1,42,'978-1000000006',2019),
	  ('bk-deep-learning','Deep Learning','Ian Goodfellow',65.99,'The foundational text on deep neural networks.','https://images.unsplash.com/photo-1655720828018-edd2daec9349?w=400&h=500&fit=crop','Science',4.5,0,0,'978-1000000007',2016)`)

	return tx.Commit()
}

// seedUsers ensures one customer and one admin exist (idempotent).
func seedUsers(db *sqlx.DB) error {
	type u struct {
		ID, Name, Email, Role, Raw string
	}
	users := []u{
		{"u-demo", "Demo Customer", "customer@bookhaven.test", "customer", "Passw0rd!"},
		{"u-admin", "Store Admin", "admin@bookhaven.test", "admin", "Passw0rd!"},
	}

	tx := db.MustBegin()
	defer func() { _ = tx.Rollback() }()

	for _, x := range users {
		h, err := bcrypt.GenerateFromPassword([]byte(x.Raw), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		if _, err := tx.Exec(`
			INSERT INTO users(id,full_name,email,password_hash,role)
			VALUES(?,?,?,?,?)
			ON CONFLICT(email) DO NOTHING
		`, x.ID, x.Name, x.Email, string(h), x.Role); err != nil {
			return err
		}
	}

	return tx.Commit()
}
