package models

type MarketplaceItem struct {
	ID          uint64  `gorm:"primaryKey" json:"id"`
	CreatedAt   int64   `json:"created_at"`
	UpdatedAt   int64   `json:"-"`
	Title       string  `gorm:"type:varchar(300);not null" json:"title"`
	Description string  `gorm:"type:text" json:"description"`
	Category    string  `gorm:"type:varchar(50);index" json:"category"`
	Price       float64 `json:"price"`
	ImageURL    string  `gorm:"type:varchar(500)" json:"image_url"`
	Link        string  `gorm:"type:varchar(500)" json:"link"`
	Featured    bool    `gorm:"index" json:"featured"`
}
