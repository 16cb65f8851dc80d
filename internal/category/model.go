package category

type Category struct {
	ID    uint   `json:"id"`
	Slug  string `json:"slug"`
	Title string `json:"title"`
}

type CreateInput struct {
	Title string
	Slug  string
}
