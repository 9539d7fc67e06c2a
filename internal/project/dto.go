package project

// CreateProjectDTO is the transport shape for project creation requests.
type CreateProjectDTO struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type ValidationError struct {
	Msg string
}

func (v ValidationError) Error() string { return v.Msg }

func (d CreateProjectDTO) Validate() error {
	if d.Title == "" {
		return ValidationError{Msg: "title is required"}
	}
	return nil
}
