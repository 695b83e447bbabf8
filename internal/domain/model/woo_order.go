package model

import "time"

// WooCommerceから受信した注文。woo_order_idのunique indexが重複配信ガード。
type WooOrder struct {
	ID                string    `gorm:"type:uuid;primaryKey" json:"id"`
	WooOrderID        int64     `gorm:"not null;uniqueIndex" json:"woo_order_id"`
	WooOrderKey       string    `gorm:"type:varchar(100)" json:"woo_order_key"`
	CustomerEmail     string    `gorm:"type:varchar(255);not null;index" json:"customer_email"`
	CustomerFirstName string    `gorm:"type:varchar(255)" json:"customer_first_name"`
	CustomerLastName  string    `gorm:"type:varchar(255)" json:"customer_last_name"`
	OrderStatus       string    `gorm:"type:varchar(50);not null" json:"order_status"`
	OrderTotal        string    `gorm:"type:varchar(50)" json:"order_total"`
	Currency          string    `gorm:"type:varchar(10)" json:"currency"`
	PaymentMethod     string    `gorm:"type:varchar(100)" json:"payment_method"`
	OrderDate         time.Time `json:"order_date"`
	ProcessedAt       time.Time `gorm:"not null" json:"processed_at"`
}

// 注文の1明細。1行ずつ個別に取り込み、失敗は行単位で切り離す。
type WooOrderItem struct {
	ID           string    `gorm:"type:uuid;primaryKey" json:"id"`
	WooOrderID   string    `gorm:"type:uuid;not null;index" json:"woo_order_id"`
	WooProductID int64     `json:"woo_product_id"`
	Sku          string    `gorm:"type:varchar(100);not null" json:"sku"`
	ProductName  string    `gorm:"type:varchar(255)" json:"product_name"`
	Quantity     int       `gorm:"not null;default:1" json:"quantity"`
	LineTotal    string    `gorm:"type:varchar(50)" json:"line_total"`
	CourseID     string    `gorm:"type:uuid;not null" json:"course_id"`
	UserID       string    `gorm:"type:uuid;not null" json:"user_id"`
	CreatedAt    time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}
