package domain

import (
	"time"

	"gorm.io/gorm"
)

// UserModel is the GORM model for the users table.
type UserModel struct {
	ID           string         `gorm:"type:varchar(36);primaryKey"`
	Name         string         `gorm:"type:varchar(100);not null"`
	Email        string         `gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash string         `gorm:"type:varchar(255);not null"`
	Phone        string         `gorm:"type:varchar(30);not null"`
	Role         string         `gorm:"type:varchar(20);not null"`
	CreatedAt    time.Time      `gorm:"autoCreateTime"`
	DeletedAt    gorm.DeletedAt `gorm:"index"`
}

// TableName specifies the table name for UserModel.
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts UserModel to domain User.
func (m *UserModel) ToDomain() *User {
	return &User{
		ID:           m.ID,
		Name:         m.Name,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		Phone:        m.Phone,
		Role:         m.Role,
		CreatedAt:    m.CreatedAt,
	}
}

// UserToModel converts domain User to UserModel.
func UserToModel(u *User) *UserModel {
	return &UserModel{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Phone:        u.Phone,
		Role:         u.Role,
		CreatedAt:    u.CreatedAt,
	}
}

// ProductModel is the GORM model for the products table.
type ProductModel struct {
	ID          string         `gorm:"type:varchar(36);primaryKey"`
	Name        string         `gorm:"type:varchar(100);not null"`
	Description string         `gorm:"type:text;not null"`
	SellerID    string         `gorm:"type:varchar(36);index;not null"`
	SellerName  string         `gorm:"type:varchar(100);not null"`
	SellerPhone string         `gorm:"type:varchar(30)"`
	PriceCents  int64          `gorm:"not null;default:0"`
	ImageURL    string         `gorm:"type:text"`
	StorageKey  string         `gorm:"type:varchar(255)"`
	CreatedAt   time.Time      `gorm:"autoCreateTime"`
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

// TableName specifies the table name for ProductModel.
func (ProductModel) TableName() string {
	return "products"
}

// ToDomain converts ProductModel to domain Product.
func (m *ProductModel) ToDomain() *Product {
	return &Product{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		SellerID:    m.SellerID,
		SellerName:  m.SellerName,
		SellerPhone: m.SellerPhone,
		PriceCents:  m.PriceCents,
		ImageURL:    m.ImageURL,
		StorageKey:  m.StorageKey,
		CreatedAt:   m.CreatedAt,
	}
}

// ProductToModel converts domain Product to ProductModel.
func ProductToModel(p *Product) *ProductModel {
	return &ProductModel{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		SellerID:    p.SellerID,
		SellerName:  p.SellerName,
		SellerPhone: p.SellerPhone,
		PriceCents:  p.PriceCents,
		ImageURL:    p.ImageURL,
		StorageKey:  p.StorageKey,
		CreatedAt:   p.CreatedAt,
	}
}

// ChatMessageModel is the GORM model for the chat_messages table.
// Rows are append-only; nothing in the service updates or deletes them.
type ChatMessageModel struct {
	ID       string    `gorm:"type:varchar(36);primaryKey"`
	UserID   string    `gorm:"type:varchar(36);index;not null"`
	UserName string    `gorm:"type:varchar(100);not null"`
	Message  string    `gorm:"type:text;not null"`
	Date     time.Time `gorm:"autoCreateTime;index"`
}

// TableName specifies the table name for ChatMessageModel.
func (ChatMessageModel) TableName() string {
	return "chat_messages"
}

// ToDomain converts ChatMessageModel to domain ChatMessage.
func (m *ChatMessageModel) ToDomain() *ChatMessage {
	return &ChatMessage{
		ID:       m.ID,
		UserID:   m.UserID,
		UserName: m.UserName,
		Message:  m.Message,
		Date:     m.Date,
	}
}

// ChatMessageToModel converts domain ChatMessage to ChatMessageModel.
func ChatMessageToModel(msg *ChatMessage) *ChatMessageModel {
	return &ChatMessageModel{
		ID:       msg.ID,
		UserID:   msg.UserID,
		UserName: msg.UserName,
		Message:  msg.Message,
		Date:     msg.Date,
	}
}

// OrderModel is the GORM model for the orders table.
type OrderModel struct {
	ID               string    `gorm:"type:varchar(36);primaryKey"`
	BuyerID          string    `gorm:"type:varchar(36);index;not null"`
	TotalCents       int64     `gorm:"not null"`
	PaymentSessionID string    `gorm:"type:varchar(255)"`
	LinesJSON        string    `gorm:"type:text;column:lines"`
	CreatedAt        time.Time `gorm:"autoCreateTime"`
}

// TableName specifies the table name for OrderModel.
func (OrderModel) TableName() string {
	return "orders"
}
