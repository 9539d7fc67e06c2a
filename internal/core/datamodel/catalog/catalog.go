package catalog

type Offering struct {
	ID          int64   `gorm:"primaryKey"`
	Name        string  `gorm:"column:name;not null"`
	Description string  `gorm:"column:description"`
	Price       float64 `gorm:"column:price"`
	Category    string  `gorm:"column:category;not null"`
}

func (Offering) TableName() string { return "services" }
