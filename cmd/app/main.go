package main

import (
	"database/sql"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	jwtware "github.com/gofiber/jwt/v2"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/pattarapol-w/storefront-backend/internal/actor"
	"github.com/pattarapol-w/storefront-backend/internal/cart"
	"github.com/pattarapol-w/storefront-backend/internal/config"
	"github.com/pattarapol-w/storefront-backend/internal/order"
	"github.com/pattarapol-w/storefront-backend/internal/product"
	"github.com/pattarapol-w/storefront-backend/internal/user"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	app := fiber.New()
	setupCORS(app)
	app.Use(requestLog)

	db := mustOpenDB(cfg.DatabaseURL)
	defer db.Close()
	bootstrapSchema(db)
	seedProducts(db)

	var productCache product.Cache
	if cfg.RedisAddr != "" {
		productCache = product.NewRedisCache(cfg.RedisAddr)
	}
	productService := product.NewService(product.NewPostgresRepository(db), productCache)
	productHandler := product.NewHandler(productService)

	cartService := cart.NewService(cart.NewPostgresRepository(db), productService)
	cartHandler := cart.NewHandler(cartService)

	userService := user.NewService(user.NewPostgresRepository(db))
	userHandler := user.NewHandler(userService, cartService, cfg.JWTSecret)

	orderService := order.NewService(order.NewPostgresRepository(db), cartService, userService, productService)
	orderHandler := order.NewHandler(orderService)

	// every request gets an actor: a verified bearer token or the
	// anonymous session cookie, minted here on first contact
	app.Use(actor.Middleware(cfg.JWTSecret))

	userHandler.RegisterPublicRoutes(app)
	productHandler.RegisterPublicRoutes(app)
	cartHandler.RegisterRoutes(app)
	orderHandler.RegisterCheckoutRoute(app)

	// routes below require a valid bearer token
	app.Use(jwtware.New(jwtware.Config{SigningKey: []byte(cfg.JWTSecret)}))
	userHandler.RegisterProtectedRoutes(app)
	orderHandler.RegisterProtectedRoutes(app)

	log.Printf("starting server on %s", cfg.Addr)
	if err := app.Listen(cfg.Addr); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}

func setupCORS(app *fiber.App) {
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,HEAD,PUT,DELETE,PATCH",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
}

func requestLog(c *fiber.Ctx) error {
	start := time.Now()
	err := c.Next()
	log.Printf("%s %s -> %d (%v)", c.Method(), c.OriginalURL(), c.Response().StatusCode(), time.Since(start))
	return err
}

func mustOpenDB(dbURL string) *sql.DB {
	if dbURL == "" {
		panic("DATABASE_URL is not set")
	}

	db, err := sql.Open("pgx", dbURL)
	if err != nil {
		panic(err)
	}

	if err := db.Ping(); err != nil {
		panic(err)
	}

	return db
}

func bootstrapSchema(db *sql.DB) {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS accounts (
			account_id SERIAL PRIMARY KEY,
			username TEXT NOT NULL UNIQUE,
			email TEXT NOT NULL UNIQUE,
			password_digest TEXT NOT NULL,
			address TEXT,
			created_at TEXT,
			updated_at TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS products (
			product_id SERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			description TEXT,
			price NUMERIC NOT NULL,
			currency TEXT NOT NULL DEFAULT 'INR',
			image_url TEXT,
			stock INT NOT NULL DEFAULT 9999,
			created_at TEXT
		)`,
		// a cart belongs to exactly one owner; both columns are unique so
		// there is at most one cart per account and one per session
		`CREATE TABLE IF NOT EXISTS carts (
			cart_id SERIAL PRIMARY KEY,
			account_id INT UNIQUE,
			session_id TEXT UNIQUE,
			items JSONB NOT NULL DEFAULT '[]',
			updated_at TEXT,
			CHECK ((account_id IS NULL) <> (session_id IS NULL))
		)`,
		`CREATE TABLE IF NOT EXISTS orders (
			order_id SERIAL PRIMARY KEY,
			account_id INT,
			buyer_name TEXT NOT NULL,
			buyer_email TEXT NOT NULL,
			shipping_address TEXT NOT NULL,
			items JSONB NOT NULL,
			total NUMERIC NOT NULL,
			currency TEXT NOT NULL,
			status TEXT NOT NULL,
			created_at TEXT
		)`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			panic(err)
		}
	}
}

// seedProducts loads a small demo catalog the first time the service runs
// against an empty database.
func seedProducts(db *sql.DB) {
	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM products`).Scan(&count); err != nil || count > 0 {
		return
	}

	seed := []struct {
		name, description, imageURL string
		price                       float64
		stock                       int
	}{
		{"Wireless Mouse", "2.4GHz ergonomic wireless mouse", "/images/mouse.jpg", 799, 120},
		{"Mechanical Keyboard", "Tenkeyless board with brown switches", "/images/keyboard.jpg", 3499, 45},
		{"USB-C Hub", "7-in-1 hub with HDMI and card reader", "/images/hub.jpg", 1899, 80},
		{"Laptop Stand", "Aluminium adjustable laptop stand", "/images/stand.jpg", 1299, 60},
		{"Webcam 1080p", "Full HD webcam with built-in mic", "/images/webcam.jpg", 2199, 35},
	}
	now := time.Now().UTC().Format(time.RFC3339)
	for _, s := range seed {
		if _, err := db.Exec(
			`INSERT INTO products (name, description, price, currency, image_url, stock, created_at) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			s.name, s.description, s.price, order.DefaultCurrency, s.imageURL, s.stock, now,
		); err != nil {
			log.Printf("warning: could not seed product %q: %v", s.name, err)
		}
	}
}
