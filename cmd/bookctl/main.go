// bookctl is a terminal storefront for the bookstore API. It keeps the
// shopping cart and login session in local JSON files, the same way the
// web frontend keeps them in browser storage.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"bookhaven/internal/cart"
	"bookhaven/internal/client"
	"bookhaven/internal/services"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	baseURL := os.Getenv("BOOKHAVEN_API")
	if baseURL == "" {
		baseURL = "http://localhost:5000"
	}
	stateDir := os.Getenv("BOOKHAVEN_STATE")
	if stateDir == "" {
		home, _ := os.UserHomeDir()
		stateDir = filepath.Join(home, ".bookhaven")
	}

	cartStore := cart.FileStore{Path: filepath.Join(stateDir, "cart.json")}
	sessStore := cart.FileStore{Path: filepath.Join(stateDir, "session.json")}

	api := client.New(baseURL)
	sess := client.LoadSession(sessStore)
	api.Token = sess.Token
	basket := cart.New(cartStore)

	cmd, args := os.Args[1], os.Args[2:]
	if err := run(cmd, args, api, basket, sessStore); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(cmd string, args []string, api *client.Client, basket *cart.Cart, sessStore cart.Storage) error {
	switch cmd {
	case "books":
		fs := flag.NewFlagSet("books", flag.ExitOnError)
		category := fs.String("category", "", "filter by category")
		minPrice := fs.Float64("min-price", -1, "minimum price")
		maxPrice := fs.Float64("max-price", -1, "maximum price")
		inStock := fs.Bool("in-stock", false, "only books in stock")
		sortKey := fs.String("sort", "", "price_asc | price_desc | rating | newest")
		fs.Parse(args)

		q := client.BookQuery{Category: *category, InStock: *inStock, Sort: *sortKey}
		if *minPrice >= 0 {
			q.MinPrice = minPrice
		}
		if *maxPrice >= 0 {
			q.MaxPrice = maxPrice
		}
		books, err := api.ListBooks(q)
		if err != nil {
			return err
		}
		for _, b := range books {
			stock := "in stock"
			if !b.InStock {
				stock = "out of stock"
			}
			fmt.Printf("%-24s %-35s %-25s $%.2f  %s\n", b.ID, b.Title, b.Author, b.Price, stock)
		}
		return nil

	case "search":
		if len(args) < 1 {
			return fmt.Errorf("usage: bookctl search <query>")
		}
		books, err := api.SearchBooks(args[0])
		if err != nil {
			return err
		}
		for _, b := range books {
			fmt.Printf("%-24s %-35s %s\n", b.ID, b.Title, b.Author)
		}
		return nil

	case "show":
		if len(args) < 1 {
			return fmt.Errorf("usage: bookctl show <book-id>")
		}
		b, err := api.GetBook(args[0])
		if err != nil {
			return err
		}
		fmt.Printf("%s by %s ($%.2f)\n%s\nCategory: %s  Rating: %.1f  Stock: %d\n",
			b.Title, b.Author, b.Price, b.Description, b.Category, b.Rating, b.Stock)
		return nil

	case "cart":
		return runCart(args, api, basket)

	case "checkout":
		fs := flag.NewFlagSet("checkout", flag.ExitOnError)
		name := fs.String("name", "", "full name (required)")
		email := fs.String("email", "", "email")
		phone := fs.String("phone", "", "phone")
		address := fs.String("address", "", "street address")
		city := fs.String("city", "", "city")
		zip := fs.String("zip", "", "zip code")
		card := fs.String("card", "", "card number (last 4 digits)")
		fs.Parse(args)

		items := basket.Items()
		if len(items) == 0 {
			return fmt.Errorf("cart is empty")
		}
		in := services.PlaceOrderInput{Total: basket.Total()}
		in.Shipping.FullName = *name
		in.Shipping.Email = *email
		in.Shipping.Phone = *phone
		in.Shipping.Address = *address
		in.Shipping.City = *city
		in.Shipping.ZipCode = *zip
		in.Payment.Method = "card"
		in.Payment.CardNumber = *card
		for _, it := range items {
			in.Items = append(in.Items, services.OrderItemInput{Book: it.ID, Quantity: it.Quantity})
		}

		o, err := api.CreateOrder(in)
		if err != nil {
			return err
		}
		if err := basket.Clear(); err != nil {
			return err
		}
		fmt.Printf("order placed: %s  total $%.2f  status %s\n", o.ID, o.Total, o.Status)
		return nil

	case "register", "login":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		name := fs.String("name", "", "full name (register only)")
		email := fs.String("email", "", "email")
		password := fs.String("password", "", "password")
		fs.Parse(args)

		var err error
		var u = struct{ FullName, Email string }{}
		if cmd == "register" {
			user, e := api.Register(*name, *email, *password)
			u.FullName, u.Email, err = user.FullName, user.Email, e
		} else {
			user, e := api.Login(*email, *password)
			u.FullName, u.Email, err = user.FullName, user.Email, e
		}
		if err != nil {
			return err
		}
		if err := client.SaveSession(sessStore, client.Session{Token: api.Token}); err != nil {
			return err
		}
		fmt.Printf("signed in as %s <%s>\n", u.FullName, u.Email)
		return nil

	case "logout":
		return client.SaveSession(sessStore, client.Session{})

	case "me":
		u, err := api.Profile()
		if err != nil {
			return err
		}
		fmt.Printf("%s <%s> (%s)\n", u.FullName, u.Email, u.Role)
		return nil

	case "orders":
		orders, err := api.MyOrders()
		if err != nil {
			return err
		}
		for _, o := range orders {
			fmt.Printf("%-36s $%-8.2f %-12s %s\n", o.ID, o.Total, o.Status, o.CreatedAt)
		}
		return nil

	case "order":
		if len(args) < 1 {
			return fmt.Errorf("usage: bookctl order <order-id>")
		}
		o, err := api.GetOrder(args[0])
		if err != nil {
			return err
		}
		fmt.Printf("order %s  status %s  total $%.2f\n", o.ID, o.Status, o.Total)
		for _, it := range o.Items {
			title := it.BookID
			if it.Book != nil {
				title = it.Book.Title
			}
			fmt.Printf("  %dx %s\n", it.Quantity, title)
		}
		return nil

	case "set-status":
		if len(args) < 2 {
			return fmt.Errorf("usage: bookctl set-status <order-id> <status>")
		}
		o, err := api.UpdateOrderStatus(args[0], args[1])
		if err != nil {
			return err
		}
		fmt.Printf("order %s -> %s\n", o.ID, o.Status)
		return nil

	default:
		usage()
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func runCart(args []string, api *client.Client, basket *cart.Cart) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: bookctl cart <add|rm|qty|show|clear>")
	}
	switch args[0] {
	case "add":
		if len(args) < 2 {
			return fmt.Errorf("usage: bookctl cart add <book-id>")
		}
		b, err := api.GetBook(args[1])
		if err != nil {
			return err
		}
		if err := basket.Add(b); err != nil {
			return err
		}
	case "rm":
		if len(args) < 2 {
			return fmt.Errorf("usage: bookctl cart rm <book-id>")
		}
		if err := basket.Remove(args[1]); err != nil {
			return err
		}
	case "qty":
		if len(args) < 3 {
			return fmt.Errorf("usage: bookctl cart qty <book-id> <n>")
		}
		n, err := strconv.Atoi(args[2])
		if err != nil {
			return fmt.Errorf("quantity must be a number")
		}
		if err := basket.SetQuantity(args[1], n); err != nil {
			return err
		}
	case "clear":
		if err := basket.Clear(); err != nil {
			return err
		}
	case "show":
	default:
		return fmt.Errorf("unknown cart command %q", args[0])
	}

	for _, it := range basket.Items() {
		fmt.Printf("%dx %-35s $%.2f\n", it.Quantity, it.Title, it.Price*float64(it.Quantity))
	}
	fmt.Printf("%d items, total $%.2f\n", basket.Count(), basket.Total())
	return nil
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: bookctl <command> [flags]

  books      list books (--category --min-price --max-price --in-stock --sort)
  search     search books by keyword
  show       show one book
  cart       add | rm | qty | show | clear
  checkout   place an order from the cart (--name --email --address ...)
  register   create an account (--name --email --password)
  login      sign in (--email --password)
  logout     drop the local session
  me         show the signed-in profile
  orders     list my orders
  order      show one order
  set-status update an order's status (admin)

Environment: BOOKHAVEN_API (default http://localhost:5000), BOOKHAVEN_STATE`)
}
