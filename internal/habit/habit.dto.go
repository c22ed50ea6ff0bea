package habit

type CreateHabitRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description,omitempty"`
	Frequency   string `json:"frequency,omitempty"`
	Color       string `json:"color,omitempty"`
}

type UpdateHabitRequest struct {
	ID          string `json:"id" validate:"required"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Frequency   string `json:"frequency,omitempty"`
	Color       string `json:"color,omitempty"`
}

type LogHabitRequest struct {
	HabitID   string `json:"habitId" validate:"required"`
	Date      string `json:"date" validate:"required"`
	Completed bool   `json:"completed"`
}
