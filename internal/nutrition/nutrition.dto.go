package nutrition

type CreateFoodRequest struct {
	Name              string  `json:"name" validate:"required"`
	ServingSize       string  `json:"serving_size,omitempty"`
	Calories          int     `json:"calories"`
	Protein           float64 `json:"protein"`
	TotalFat          float64 `json:"total_fat"`
	TotalCarbohydrate float64 `json:"total_carbohydrate"`
}

type UpdateFoodRequest struct {
	ID                string  `json:"id" validate:"required"`
	Name              string  `json:"name,omitempty"`
	ServingSize       string  `json:"serving_size,omitempty"`
	Calories          int     `json:"calories"`
	Protein           float64 `json:"protein"`
	TotalFat          float64 `json:"total_fat"`
	TotalCarbohydrate float64 `json:"total_carbohydrate"`
}

type LogFoodRequest struct {
	FoodID   string  `json:"foodId" validate:"required"`
	Date     string  `json:"date" validate:"required"`
	Quantity float64 `json:"quantity,omitempty"`
	MealType string  `json:"mealType,omitempty"`
}
