package catalog

import (
	catalogDatamodel "github.com/mindgraphix/platform/internal/core/datamodel/catalog"
)

// Offering is a service the studio offers to clients: design work, branding
// packages and so on.
type Offering struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
}

func ToDataModel(o *Offering) *catalogDatamodel.Offering {
	return &catalogDatamodel.Offering{
		ID:          o.ID,
		Name:        o.Name,
		Description: o.Description,
		Price:       o.Price,
		Category:    o.Category,
	}
}

func FromDataModel(o *catalogDatamodel.Offering) *Offering {
	return &Offering{
		ID:          o.ID,
		Name:        o.Name,
		Description: o.Description,
		Price:       o.Price,
		Category:    o.Category,
	}
}
