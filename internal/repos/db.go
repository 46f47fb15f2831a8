package repos

import (
	"log"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// OpenDB connects to either sqlite (dev/tests, DSN is a file path or
// ":memory:") or Postgres (Supabase, DSN starts with postgres://).
// Schema bootstrap and seeding only happen on sqlite; the Postgres
// schema is managed by external migrations.
func OpenDB(dsn string) (*sqlx.DB, error) {
	driver := "sqlite"
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		driver = "postgres"
	}
	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}
	if driver != "sqlite" {
		return db, nil
	}
	// A :memory: database exists per connection; one connection keeps
	// every query on the same database.
	db.SetMaxOpenConns(1)

	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	if err := seedIfEmpty(db); err != nil {
		return nil, err
	}
	if err := seedUsers(db); err != nil {
		return nil, err
	}
	return db, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
PRAGMA foreign_keys = ON;

CREATE TABLE IF NOT EXISTS categories(
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  slug TEXT NOT NULL DEFAULT '',
  sort_order INTEGER NOT NULL DEFAULT 0,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_categories_name_nocase ON categories(LOWER(name));

CREATE TABLE IF NOT EXISTS products(
  id TEXT PRIMARY KEY,
  category_id TEXT NOT NULL REFERENCES categories(id) ON DELETE RESTRICT,
  name TEXT NOT NULL,
  description TEXT NOT NULL DEFAULT '',
  price NUMERIC NOT NULL CHECK (price >= 0),
  stock INTEGER NOT NULL DEFAULT 0 CHECK (stock >= 0),
  low_stock_at INTEGER NOT NULL DEFAULT 5,
  images_json TEXT NOT NULL DEFAULT '[]',
  active INTEGER NOT NULL DEFAULT 1,
  has_special_shipping INTEGER NOT NULL DEFAULT 0,
  shipping_cost_bangkok NUMERIC,
  shipping_cost_provinces NUMERIC,
  shipping_cost_remote NUMERIC,
  special_shipping_base NUMERIC,
  special_shipping_qty INTEGER,
  special_shipping_extra NUMERIC,
  free_shipping_threshold NUMERIC,
  delivery_time TEXT NOT NULL DEFAULT '',
  shipping_notes TEXT NOT NULL DEFAULT '',
  special_handling INTEGER NOT NULL DEFAULT 0,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE INDEX IF NOT EXISTS idx_products_category   ON products(category_id);
CREATE INDEX IF NOT EXISTS idx_products_name       ON products(LOWER(name));
CREATE INDEX IF NOT EXISTS idx_products_created_at ON products(created_at);

CREATE TABLE IF NOT EXISTS coupons(
  id TEXT PRIMARY KEY,
  code TEXT NOT NULL,
  name TEXT NOT NULL,
  description TEXT NOT NULL DEFAULT '',
  discount_type TEXT NOT NULL CHECK (discount_type IN ('percentage','fixed_amount')),
  discount_value NUMERIC NOT NULL CHECK (discount_value > 0),
  min_order_amount NUMERIC,
  max_discount_amount NUMERIC,
  usage_limit INTEGER,
  usage_limit_per_user INTEGER,
  minimum_quantity INTEGER,
  start_date TEXT NOT NULL,
  end_date TEXT NOT NULL,
  is_active INTEGER NOT NULL DEFAULT 1,
  usage_count INTEGER NOT NULL DEFAULT 0,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_coupons_code ON coupons(UPPER(code));

CREATE TABLE IF NOT EXISTS customers(
  id TEXT PRIMARY KEY,
  email TEXT NOT NULL UNIQUE,
  name TEXT NOT NULL,
  phone TEXT NOT NULL DEFAULT '',
  active INTEGER NOT NULL DEFAULT 1,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_customers_email ON customers(LOWER(email));

CREATE TABLE IF NOT EXISTS orders(
  id TEXT PRIMARY KEY,
  customer_name TEXT NOT NULL DEFAULT '',
  customer_email TEXT NOT NULL DEFAULT '',
  phone TEXT NOT NULL DEFAULT '',
  address TEXT NOT NULL DEFAULT '',
  zone TEXT NOT NULL DEFAULT 'bangkok',
  subtotal NUMERIC NOT NULL DEFAULT 0,
  shipping_fee NUMERIC NOT NULL DEFAULT 0,
  discount NUMERIC NOT NULL DEFAULT 0,
  total NUMERIC NOT NULL DEFAULT 0,
  coupon_code TEXT NOT NULL DEFAULT '',
  payment_method TEXT NOT NULL DEFAULT '',
  status TEXT NOT NULL DEFAULT 'PENDING',
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_orders_created_at ON orders(created_at);
CREATE INDEX IF NOT EXISTS idx_orders_status     ON orders(status);

CREATE TABLE IF NOT EXISTS order_items(
  order_id  TEXT NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
  product_id TEXT NOT NULL,
  product_name TEXT NOT NULL DEFAULT '',
  qty INTEGER NOT NULL CHECK (qty >= 1),
  price NUMERIC NOT NULL,
  PRIMARY KEY (order_id, product_id)
);

CREATE TABLE IF NOT EXISTS alerts(
  id TEXT PRIMARY KEY,
  type TEXT NOT NULL,
  severity TEXT NOT NULL DEFAULT 'info',
  title TEXT NOT NULL,
  message TEXT NOT NULL DEFAULT '',
  ref_id TEXT NOT NULL DEFAULT '',
  is_read INTEGER NOT NULL DEFAULT 0,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_alerts_unread ON alerts(is_read, created_at);

CREATE TABLE IF NOT EXISTS contact_messages(
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  email TEXT NOT NULL,
  subject TEXT NOT NULL DEFAULT '',
  message TEXT NOT NULL,
  is_read INTEGER NOT NULL DEFAULT 0,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS payment_methods(
  id TEXT PRIMARY KEY,
  kind TEXT NOT NULL CHECK (kind IN ('bank_transfer','promptpay','cod')),
  name TEXT NOT NULL,
  bank_name TEXT NOT NULL DEFAULT '',
  account_name TEXT NOT NULL DEFAULT '',
  account_number TEXT NOT NULL DEFAULT '',
  icon_url TEXT NOT NULL DEFAULT '',
  active INTEGER NOT NULL DEFAULT 1,
  sort_order INTEGER NOT NULL DEFAULT 0
);

-- Free-form site settings (logo, homepage, about) stored as JSON blobs.
CREATE TABLE IF NOT EXISTS settings(
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL,
  updated_at TEXT
);

CREATE TABLE IF NOT EXISTS users(
  id TEXT PRIMARY KEY,
  email TEXT NOT NULL UNIQUE,
  name TEXT NOT NULL,
  password_hash TEXT NOT NULL,
  role TEXT NOT NULL CHECK (role IN ('USER','ADMIN')),
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email ON users(LOWER(email));

CREATE TABLE IF NOT EXISTS sessions(
  id TEXT PRIMARY KEY,
  user_id TEXT NULL REFERENCES users(id) ON DELETE SET NULL,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  last_seen  TEXT
);
CREATE INDEX IF NOT EXISTS idx_sessions_user ON sessions(user_id);
`
	_, err := db.Exec(schema)
	return err
}

func seedIfEmpty(db *sqlx.DB) error {
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM categories`); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	log.Println("[seed] inserting demo categories/products/coupons")

	now := time.Now().UTC()
	tx := db.MustBegin()
	tx.MustExec(`INSERT INTO categories(id,name,slug,sort_order) VALUES
	  ('aquarium-tanks','Aquarium Tanks','aquarium-tanks',1),
	  ('filters','Filters & Pumps','filters',2),
	  ('fish-food','Fish Food','fish-food',3),
	  ('decor','Decorations','decor',4)`)

	tx.MustExec(`INSERT INTO products(id,category_id,name,description,price,stock,images_json,
	    has_special_shipping,shipping_cost_bangkok,shipping_cost_provinces,shipping_cost_remote,
	    special_shipping_base,special_shipping_qty,special_shipping_extra,free_shipping_threshold,delivery_time) VALUES
	  ('tank-60','aquarium-tanks','60cm Curved Glass Tank','Rimless 60cm tank, 8mm glass',1890,12,'["products/tank-60/main.jpg"]',
	    1,NULL,NULL,NULL,80,4,10,5000,'3-5 วัน'),
	  ('filter-hw','filters','HW-603B Canister Filter','External canister filter for tanks up to 100L',650,30,'["products/filter-hw/main.jpg"]',
	    0,50,80,120,NULL,NULL,NULL,2000,'2-3 วัน'),
	  ('food-tetra','fish-food','Tetra Bits 300g','Granule food for tropical fish',220,4,'["products/food-tetra/main.jpg"]',
	    0,40,60,90,NULL,NULL,NULL,1000,'2-3 วัน')`)

	tx.MustExec(`INSERT INTO coupons(id,code,name,description,discount_type,discount_value,
	    min_order_amount,max_discount_amount,usage_limit,start_date,end_date,is_active) VALUES
	  ('cp-welcome','WELCOME10','Welcome 10%','First order discount','percentage',10,500,100,NULL,?,?,1),
	  ('cp-flat50','FLAT50','Flat 50','Fixed discount','fixed_amount',50,300,NULL,200,?,?,1)`,
		now.AddDate(0, -1, 0).Format(time.RFC3339), now.AddDate(0, 6, 0).Format(time.RFC3339),
		now.AddDate(0, -1, 0).Format(time.RFC3339), now.AddDate(0, 3, 0).Format(time.RFC3339))

	tx.MustExec(`INSERT INTO payment_methods(id,kind,name,bank_name,account_name,account_number,active,sort_order) VALUES
	  ('pm-kbank','bank_transfer','โอนผ่านธนาคาร','KBank','AquaRoom Co.','012-3-45678-9',1,1),
	  ('pm-pp','promptpay','PromptPay','','AquaRoom Co.','0891234567',1,2),
	  ('pm-cod','cod','เก็บเงินปลายทาง','','','',0,3)`)

	tx.MustExec(`INSERT INTO settings(key,value,updated_at) VALUES
	  ('logo','{"url":"/static/img/logo.png","alt":"AquaRoom"}',CURRENT_TIMESTAMP),
	  ('homepage','{"heroTitle":"AquaRoom","heroSubtitle":"ทุกอย่างสำหรับตู้ปลาของคุณ","featured":[]}',CURRENT_TIMESTAMP),
	  ('about','{"title":"เกี่ยวกับเรา","body":""}',CURRENT_TIMESTAMP)`)

	return tx.Commit()
}

// seedUsers ensures an admin account exists (idempotent).
func seedUsers(db *sqlx.DB) error {
	hash, _ := bcrypt.GenerateFromPassword([]byte("ChangeMe!1"), 12)
	tx := db.MustBegin()
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`
		INSERT INTO users(id,email,name,password_hash,role)
		VALUES('u-admin','admin@aquaroom.test','Admin',?,'ADMIN')
		ON CONFLICT(email) DO NOTHING
	`, string(hash)); err != nil {
		return err
	}
	return tx.Commit()
}
