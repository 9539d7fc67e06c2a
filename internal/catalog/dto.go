package catalog

type CreateOfferingDTO struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
}

type ValidationError struct {
	Msg string
}

func (v ValidationError) Error() string { return v.Msg }

func (d CreateOfferingDTO) Validate() error {
	if d.Name == "" {
		return ValidationError{Msg: "name is required"}
	}
	if d.Category == "" {
		return ValidationError{Msg: "category is required"}
	}
	if d.Price < 0 {
		return ValidationError{Msg: "price cannot be negative"}
	}
	return nil
}
