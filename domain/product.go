package domain

import (
	"time"

	"gorm.io/datatypes"
)

// CREATE TABLE public.products (
//     id           BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
//     product_name TEXT,
//     category     TEXT,
//     subcategory  TEXT,
//     segment      TEXT,
//     price        NUMERIC,
//     rating       NUMERIC,
//     tags         JSONB,
//     created_at   TIMESTAMPTZ DEFAULT NOW()
// );

type Product struct {
	ID          uint64                      `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductName string                      `gorm:"column:product_name;type:text" json:"product_name"`
	Category    string                      `gorm:"column:category;type:text" json:"category"`
	Subcategory string                      `gorm:"column:subcategory;type:text" json:"subcategory"`
	Segment     string                      `gorm:"column:segment;type:text" json:"segment"`
	Price       float64                     `gorm:"column:price;type:numeric" json:"price"`
	Rating      float64                     `gorm:"column:rating;type:numeric" json:"rating"`
	Tags        datatypes.JSONSlice[string] `gorm:"column:tags;type:jsonb" json:"tags"`
	CreatedAt   time.Time                   `gorm:"column:created_at" json:"created_at"`
}

func (Product) TableName() string {
	return "products"
}
