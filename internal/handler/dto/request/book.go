package request

type CreateBookRequest struct {
	Image        string `json:"image"`
	Title        string `json:"title" binding:"required"`
	Writer       string `json:"writer"`
	Published    string `json:"published"`
	Category     string `json:"category"`
	ShortDes     string `json:"shortDes"`
	BookQuantity int    `json:"bookQuantity" binding:"gte=0"`
}

// UpdateBookRequest deliberately has no quantity field: inventory is owned
// by the borrow/return workflow.
type UpdateBookRequest struct {
	Image     string `json:"image"`
	Title     string `json:"title" binding:"required"`
	Writer    string `json:"writer"`
	Published string `json:"published"`
	Category  string `json:"category"`
	ShortDes  string `json:"shortDes"`
}
