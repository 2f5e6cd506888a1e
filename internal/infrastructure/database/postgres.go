package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // PostgreSQL driver

	"tumblecup_admin/internal/config"
	"tumblecup_admin/pkg/logger"
)

// Postgres wraps the connection to the tabular order backend.
type Postgres struct {
	DB     *sqlx.DB
	logger logger.Logger
}

// ConnectPostgres opens the tabular backend connection.
func ConnectPostgres(cfg *config.Config, log logger.Logger) (*Postgres, error) {
	db, err := sqlx.Connect("postgres", cfg.GetDBConnString())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	log.Info("Connected to database", "host", cfg.DB.Host, "database", cfg.DB.Name)

	return &Postgres{DB: db, logger: log}, nil
}

// Ping checks the database connection.
func (p *Postgres) Ping(ctx context.Context) error {
	return p.DB.PingContext(ctx)
}

// Close closes the database connection.
func (p *Postgres) Close() error {
	return p.DB.Close()
}

// EnsureSchema creates the orders table when it does not exist. Orders are
// created externally by the storefront; this console only reads, mutates and
// deletes rows, so the schema here exists for local setups.
//
// order_date is TEXT on purpose: the storefront writes loosely formatted
// dates and the repository coerces them leniently on read.
func (p *Postgres) EnsureSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS orders (
		id VARCHAR(50) PRIMARY KEY,
		order_number VARCHAR(50) NOT NULL,
		name VARCHAR(200) NOT NULL,
		email VARCHAR(200) NOT NULL,
		phone VARCHAR(50),
		address TEXT,
		city VARCHAR(100),
		item_name VARCHAR(100) NOT NULL,
		item_quantity INT NOT NULL,
		item_style VARCHAR(200),
		base_price DECIMAL(10, 2) NOT NULL DEFAULT 0,
		price DECIMAL(10, 2) NOT NULL DEFAULT 0,
		total DECIMAL(10, 2) NOT NULL DEFAULT 0,
		order_date TEXT,
		status VARCHAR(20) NOT NULL,
		payment_status VARCHAR(20) NOT NULL,
		tracking_id VARCHAR(100),
		tracking_partner VARCHAR(100)
	);

	CREATE INDEX IF NOT EXISTS idx_orders_order_number ON orders(order_number);
	CREATE INDEX IF NOT EXISTS idx_orders_status ON orders(status);
	`

	if _, err := p.DB.Exec(schema); err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}

	p.logger.Info("Orders schema ensured")
	return nil
}
