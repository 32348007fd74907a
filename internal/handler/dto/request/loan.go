package request

// BorrowRequest carries everything needed to open a loan. The book id stays
// a string here so a malformed value maps to a 400 at the boundary instead
// of a bind error deep in the stack.
type BorrowRequest struct {
	BookID            string `json:"bookId" binding:"required"`
	RequesterIdentity string `json:"requesterIdentity" binding:"required"`
	RequesterName     string `json:"requesterName"`
}
