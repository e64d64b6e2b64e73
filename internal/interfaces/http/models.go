package http

import "time"

// Database records for the dev API. These mirror the wire shapes in
// internal/infrastructure/api closely enough that the handlers mostly
// reshape field by field.

// UserRecord is a registered user.
type UserRecord struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"not null;size:255" json:"name"`
	Email        string    `gorm:"uniqueIndex;not null;size:255" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	RoleID       int       `gorm:"not null;default:1" json:"role_id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName overrides the table name
func (UserRecord) TableName() string {
	return "users"
}

// ProductRecord is a catalog product.
type ProductRecord struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	Name        string  `gorm:"not null;size:255" json:"name"`
	Description string  `gorm:"type:text" json:"description"`
	Price       float64 `gorm:"not null" json:"price"`
	ImageURL    string  `gorm:"size:512" json:"image_url"`
	Stock       int     `gorm:"not null;default:0" json:"stock"`
	Rating      float64 `json:"rating"`
	SellCount   int     `json:"sell_count"`
	CategoryID  int     `gorm:"index" json:"category_id"`
}

// TableName overrides the table name
func (ProductRecord) TableName() string {
	return "products"
}

// CategoryRecord is a catalog category.
type CategoryRecord struct {
	ID     uint    `gorm:"primaryKey" json:"id"`
	Title  string  `gorm:"size:255" json:"title"`
	Gender string  `gorm:"size:1" json:"gender"`
	Code   string  `gorm:"size:255" json:"code"`
	Img    string  `gorm:"size:512" json:"img"`
	Rating float64 `json:"rating"`
}

// TableName overrides the table name
func (CategoryRecord) TableName() string {
	return "categories"
}

// AddressRecord is a saved address of a user.
type AddressRecord struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	UserID       uint   `gorm:"not null;index" json:"-"`
	Title        string `gorm:"size:255" json:"title"`
	Name         string `gorm:"size:255" json:"name"`
	Surname      string `gorm:"size:255" json:"surname"`
	Phone        string `gorm:"size:32" json:"phone"`
	City         string `gorm:"size:255" json:"city"`
	District     string `gorm:"size:255" json:"district"`
	Neighborhood string `gorm:"size:255" json:"neighborhood"`
	Address      string `gorm:"type:text" json:"address"`
}

// TableName overrides the table name
func (AddressRecord) TableName() string {
	return "addresses"
}

// CardRecord is a saved payment card of a user.
type CardRecord struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	UserID      uint   `gorm:"not null;index" json:"-"`
	CardNo      string `gorm:"size:32" json:"card_no"`
	ExpireMonth int    `json:"expire_month"`
	ExpireYear  int    `json:"expire_year"`
	NameOnCard  string `gorm:"size:255" json:"name_on_card"`
}

// TableName overrides the table name
func (CardRecord) TableName() string {
	return "cards"
}

// OrderRecord is a placed order.
type OrderRecord struct {
	ID          uint              `gorm:"primaryKey" json:"id"`
	UserID      uint              `gorm:"not null;index" json:"-"`
	OrderNumber string            `gorm:"uniqueIndex;not null;size:50" json:"order_number"`
	AddressID   int               `gorm:"not null" json:"address_id"`
	OrderDate   string            `gorm:"size:64" json:"order_date"`
	CardNo      string            `gorm:"size:32" json:"card_no"`
	CardName    string            `gorm:"size:255" json:"card_name"`
	Price       float64           `gorm:"not null" json:"price"`
	Products    []OrderItemRecord `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"products"`
	CreatedAt   time.Time         `json:"created_at"`
}

// TableName overrides the table name
func (OrderRecord) TableName() string {
	return "orders"
}

// OrderItemRecord is one purchased line of an order.
type OrderItemRecord struct {
	ID        uint   `gorm:"primaryKey" json:"-"`
	OrderID   uint   `gorm:"not null;index" json:"-"`
	ProductID int    `gorm:"not null" json:"product_id"`
	Count     int    `gorm:"not null" json:"count"`
	Detail    string `gorm:"type:text" json:"detail"`
}

// TableName overrides the table name
func (OrderItemRecord) TableName() string {
	return "order_items"
}
