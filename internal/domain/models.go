package domain

type Category struct {
	ID        string `db:"id" json:"id"`
	Name      string `db:"name" json:"name"`
	Slug      string `db:"slug" json:"slug"`
	SortOrder int    `db:"sort_order" json:"sortOrder"`
	CreatedAt string `db:"created_at" json:"createdAt"`
	UpdatedAt string `db:"updated_at" json:"updatedAt"`
}

type Product struct {
	ID          string  `db:"id" json:"id"`
	CategoryID  string  `db:"category_id" json:"categoryId"`
	Name        string  `db:"name" json:"name"`
	Description string  `db:"description" json:"description"`
	Price       float64 `db:"price" json:"price"`
	Stock       int     `db:"stock" json:"stock"`
	LowStockAt  int     `db:"low_stock_at" json:"lowStockAt"`
	ImagesJSON  string  `db:"images_json" json:"imagesJson"`
	Active      bool    `db:"active" json:"active"`

	// Shipping configuration. Exactly one of the flat-rate and tiered
	// field sets is in effect, selected by HasSpecialShipping.
	HasSpecialShipping    bool     `db:"has_special_shipping" json:"hasSpecialShipping"`
	ShippingCostBangkok   *float64 `db:"shipping_cost_bangkok" json:"shippingCostBangkok"`
	ShippingCostProvinces *float64 `db:"shipping_cost_provinces" json:"shippingCostProvinces"`
	ShippingCostRemote    *float64 `db:"shipping_cost_remote" json:"shippingCostRemote"`
	SpecialShippingBase   *float64 `db:"special_shipping_base" json:"specialShippingBase"`
	SpecialShippingQty    *int     `db:"special_shipping_qty" json:"specialShippingQty"`
	SpecialShippingExtra  *float64 `db:"special_shipping_extra" json:"specialShippingExtra"`
	FreeShippingThreshold *float64 `db:"free_shipping_threshold" json:"freeShippingThreshold"`
	DeliveryTime          string   `db:"delivery_time" json:"deliveryTime"`
	ShippingNotes         string   `db:"shipping_notes" json:"shippingNotes"`
	SpecialHandling       bool     `db:"special_handling" json:"specialHandling"`

	CreatedAt string `db:"created_at" json:"createdAt"`
	UpdatedAt string `db:"updated_at" json:"updatedAt"`
}

type Coupon struct {
	ID                string   `db:"id" json:"id"`
	Code              string   `db:"code" json:"code"`
	Name              string   `db:"name" json:"name"`
	Description       string   `db:"description" json:"description"`
	DiscountType      string   `db:"discount_type" json:"discountType"` // percentage | fixed_amount
	DiscountValue     float64  `db:"discount_value" json:"discountValue"`
	MinOrderAmount    *float64 `db:"min_order_amount" json:"minOrderAmount"`
	MaxDiscountAmount *float64 `db:"max_discount_amount" json:"maxDiscountAmount"`
	UsageLimit        *int     `db:"usage_limit" json:"usageLimit"`
	UsageLimitPerUser *int     `db:"usage_limit_per_user" json:"usageLimitPerUser"`
	MinimumQuantity   *int     `db:"minimum_quantity" json:"minimumQuantity"`
	StartDate         string   `db:"start_date" json:"startDate"` // RFC3339
	EndDate           string   `db:"end_date" json:"endDate"`     // RFC3339
	IsActive          bool     `db:"is_active" json:"isActive"`
	UsageCount        int      `db:"usage_count" json:"usageCount"`
	CreatedAt         string   `db:"created_at" json:"createdAt"`
	UpdatedAt         string   `db:"updated_at" json:"updatedAt"`
}

type Customer struct {
	ID        string `db:"id" json:"id"`
	Email     string `db:"email" json:"email"`
	Name      string `db:"name" json:"name"`
	Phone     string `db:"phone" json:"phone"`
	Active    bool   `db:"active" json:"active"`
	CreatedAt string `db:"created_at" json:"createdAt"`
}

type Order struct {
	ID            string  `db:"id" json:"id"`
	CustomerName  string  `db:"customer_name" json:"customerName"`
	CustomerEmail string  `db:"customer_email" json:"customerEmail"`
	Phone         string  `db:"phone" json:"phone"`
	Address       string  `db:"address" json:"address"`
	Zone          string  `db:"zone" json:"zone"` // bangkok | provinces | remote
	Subtotal      float64 `db:"subtotal" json:"subtotal"`
	ShippingFee   float64 `db:"shipping_fee" json:"shippingFee"`
	Discount      float64 `db:"discount" json:"discount"`
	Total         float64 `db:"total" json:"total"`
	CouponCode    string  `db:"coupon_code" json:"couponCode"`
	PaymentMethod string  `db:"payment_method" json:"paymentMethod"`
	Status        string  `db:"status" json:"status"` // PENDING | PAID | SHIPPED | DELIVERED | CANCELLED
	CreatedAt     string  `db:"created_at" json:"createdAt"`
}

type OrderItem struct {
	OrderID     string  `db:"order_id" json:"orderId"`
	ProductID   string  `db:"product_id" json:"productId"`
	ProductName string  `db:"product_name" json:"productName"`
	Qty         int     `db:"qty" json:"qty"`
	Price       float64 `db:"price" json:"price"`
}

type Alert struct {
	ID        string `db:"id" json:"id"`
	Type      string `db:"type" json:"type"` // LOW_STOCK | OUT_OF_STOCK | PENDING_ORDERS
	Severity  string `db:"severity" json:"severity"`
	Title     string `db:"title" json:"title"`
	Message   string `db:"message" json:"message"`
	RefID     string `db:"ref_id" json:"refId"`
	Read      bool   `db:"is_read" json:"read"`
	CreatedAt string `db:"created_at" json:"createdAt"`
}

type ContactMessage struct {
	ID        string `db:"id" json:"id"`
	Name      string `db:"name" json:"name"`
	Email     string `db:"email" json:"email"`
	Subject   string `db:"subject" json:"subject"`
	Message   string `db:"message" json:"message"`
	Read      bool   `db:"is_read" json:"read"`
	CreatedAt string `db:"created_at" json:"createdAt"`
}

type PaymentMethod struct {
	ID            string `db:"id" json:"id"`
	Kind          string `db:"kind" json:"kind"` // bank_transfer | promptpay | cod
	Name          string `db:"name" json:"name"`
	BankName      string `db:"bank_name" json:"bankName"`
	AccountName   string `db:"account_name" json:"accountName"`
	AccountNumber string `db:"account_number" json:"accountNumber"`
	IconURL       string `db:"icon_url" json:"iconUrl"`
	Active        bool   `db:"active" json:"active"`
	SortOrder     int    `db:"sort_order" json:"sortOrder"`
}
