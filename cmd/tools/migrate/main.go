// migrate creates the order and cart tables. Run once against a fresh
// database; every statement is IF NOT EXISTS.
package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func main() {
	_ = godotenv.Load()

	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		log.Fatal("DB_DSN environment variable is required")
	}

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("Failed to get DB: %v", err)
	}

	sql := `
	CREATE TABLE IF NOT EXISTS orders (
	  id CHAR(36) NOT NULL,
	  user_id VARCHAR(64) NOT NULL,
	  customer_name VARCHAR(255) NULL,
	  customer_email VARCHAR(255) NOT NULL,
	  customer_phone VARCHAR(32) NULL,
	  payment_ref VARCHAR(80) NOT NULL,
	  status VARCHAR(16) NOT NULL,
	  payment_status VARCHAR(16) NOT NULL,
	  total DECIMAL(12,2) NOT NULL,
	  currency CHAR(3) NOT NULL,
	  shipping_address_json JSON NULL,
	  payment_json JSON NULL,
	  failure_reason VARCHAR(255) NULL,
	  created_at DATETIME(3) NOT NULL DEFAULT CURRENT_TIMESTAMP(3),
	  updated_at DATETIME(3) NOT NULL DEFAULT CURRENT_TIMESTAMP(3),
	  paid_at DATETIME(3) NULL,
	  PRIMARY KEY (id),
	  UNIQUE KEY ux_orders_payment_ref (payment_ref),
	  KEY ix_orders_user_status (user_id, status)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;

	CREATE TABLE IF NOT EXISTS order_items (
	  id CHAR(36) NOT NULL,
	  order_id CHAR(36) NOT NULL,
	  product_id VARCHAR(64) NOT NULL,
	  product_name VARCHAR(255) NOT NULL,
	  quantity INT NOT NULL,
	  unit_price DECIMAL(12,2) NOT NULL,
	  variant_json JSON NULL,
	  image_url VARCHAR(512) NULL,
	  created_at DATETIME(3) NOT NULL DEFAULT CURRENT_TIMESTAMP(3),
	  PRIMARY KEY (id),
	  KEY ix_order_items_order_id (order_id),
	  CONSTRAINT fk_order_items_order FOREIGN KEY (order_id) REFERENCES orders(id) ON DELETE CASCADE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;

	CREATE TABLE IF NOT EXISTS order_events (
	  id CHAR(36) NOT NULL,
	  order_id CHAR(36) NOT NULL,
	  actor_user_id VARCHAR(64) NOT NULL,
	  action VARCHAR(32) NOT NULL,
	  from_status VARCHAR(16) NOT NULL,
	  to_status VARCHAR(16) NOT NULL,
	  note VARCHAR(255) NULL,
	  created_at DATETIME(3) NOT NULL DEFAULT CURRENT_TIMESTAMP(3),
	  PRIMARY KEY (id),
	  KEY ix_order_events_order_id (order_id),
	  CONSTRAINT fk_order_events_order FOREIGN KEY (order_id) REFERENCES orders(id) ON DELETE CASCADE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;

	CREATE TABLE IF NOT EXISTS carts (
	  user_id VARCHAR(64) NOT NULL,
	  updated_at DATETIME(3) NOT NULL DEFAULT CURRENT_TIMESTAMP(3),
	  PRIMARY KEY (user_id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;

	CREATE TABLE IF NOT EXISTS cart_items (
	  id CHAR(36) NOT NULL,
	  cart_user_id VARCHAR(64) NOT NULL,
	  product_id VARCHAR(64) NOT NULL,
	  product_name VARCHAR(255) NOT NULL,
	  quantity INT NOT NULL,
	  unit_price DECIMAL(12,2) NOT NULL,
	  variant_json JSON NULL,
	  stock INT NOT NULL,
	  image_url VARCHAR(512) NULL,
	  created_at DATETIME(3) NOT NULL DEFAULT CURRENT_TIMESTAMP(3),
	  PRIMARY KEY (id),
	  KEY ix_cart_items_cart (cart_user_id),
	  CONSTRAINT fk_cart_items_cart FOREIGN KEY (cart_user_id) REFERENCES carts(user_id) ON DELETE CASCADE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;
	`

	if _, err := sqlDB.Exec(sql); err != nil {
		log.Fatalf("Failed to create tables: %v", err)
	}

	log.Println("✓ orders tables created successfully")
	log.Println("✓ cart tables created successfully")
}
