package api

import (
	"errors"
	"net/http"

	"library-api/internal/handler/dto/request"
	"library-api/internal/handler/dto/response"
	"library-api/internal/handler/httperr"
	"library-api/internal/usecase/commands"
	"library-api/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type LoanHandler struct {
	loanCommands commands.LoanCommands
	loanQueries  queries.LoanQueries
}

func NewLoanHandler(loanCommands commands.LoanCommands, loanQueries queries.LoanQueries) *LoanHandler {
	return &LoanHandler{
		loanCommands: loanCommands,
		loanQueries:  loanQueries,
	}
}

// Borrow godoc
// @Summary      Borrow a book
// @Description  Opens a borrow record and decrements the book's available copies atomically
// @Tags         loans
// @Accept       json
// @Produce      json
// @Param        request body request.BorrowRequest true "Borrow request"
// @Success      201 {object} response.Envelope{data=response.BorrowResponse}
// @Failure      400 {object} httperr.Response
// @Failure      500 {object} httperr.Response
// @Router       /borrow [post]
func (h *LoanHandler) Borrow(c *gin.Context) {
	var req request.BorrowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format")
		return
	}

	bookID, err := uuid.Parse(req.BookID)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid book id")
		return
	}

	loanID, err := h.loanCommands.Borrow(c.Request.Context(), commands.BorrowParams{
		BookID:         bookID,
		RequesterEmail: req.RequesterIdentity,
		RequesterName:  req.RequesterName,
	})
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrBookNotFound):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Book not found")
		case errors.Is(err, commands.ErrBookUnavailable):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "No copies available")
		case errors.Is(err, commands.ErrInvalidLoan):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid borrow request")
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to borrow book")
		}
		return
	}

	c.JSON(http.StatusCreated, response.OK(response.BorrowResponse{InsertedID: loanID}))
}

// ListBorrowed godoc
// @Summary      List borrow records
// @Description  Lists borrow records newest-first, optionally filtered by requester email
// @Tags         loans
// @Produce      json
// @Param        email query string false "Requester email filter"
// @Success      200 {object} response.Envelope{data=[]queries.LoanView}
// @Failure      500 {object} httperr.Response
// @Router       /borrowed-books [get]
func (h *LoanHandler) ListBorrowed(c *gin.Context) {
	var email *string
	if v, ok := c.GetQuery("email"); ok && v != "" {
		email = &v
	}

	loans, err := h.loanQueries.List(c.Request.Context(), email)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to list borrow records")
		return
	}

	// Keep the payload an array even when nothing matched
	if loans == nil {
		loans = []*queries.LoanView{}
	}

	c.JSON(http.StatusOK, response.OK(loans))
}

// GetBorrowed godoc
// @Summary      Get a borrow record
// @Tags         loans
// @Produce      json
// @Param        id path string true "Borrow record ID"
// @Success      200 {object} response.Envelope{data=queries.LoanView}
// @Failure      400 {object} httperr.Response
// @Failure      404 {object} httperr.Response
// @Failure      500 {object} httperr.Response
// @Router       /borrowed-books/{id} [get]
func (h *LoanHandler) GetBorrowed(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid borrow record id")
		return
	}

	view, err := h.loanQueries.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, queries.ErrNotFound) {
			httperr.AbortWithError(c, http.StatusNotFound, err, "Borrow record not found")
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to get borrow record")
		return
	}

	c.JSON(http.StatusOK, response.OK(view))
}

// Return godoc
// @Summary      Return a borrowed book
// @Description  Closes the borrow record and restocks the book atomically
// @Tags         loans
// @Produce      json
// @Param        id path string true "Borrow record ID"
// @Success      200 {object} response.Envelope{data=response.ReturnResponse}
// @Failure      400 {object} httperr.Response
// @Failure      500 {object} httperr.Response
// @Router       /borrowed-books/{id} [delete]
func (h *LoanHandler) Return(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid borrow record id")
		return
	}

	if err := h.loanCommands.Return(c.Request.Context(), id); err != nil {
		switch {
		case errors.Is(err, commands.ErrLoanNotFound):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Borrow record not found")
		case errors.Is(err, commands.ErrLoanAlreadyReturned):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Borrow record already returned")
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to return book")
		}
		return
	}

	c.JSON(http.StatusOK, response.OK(response.ReturnResponse{Acknowledged: true}))
}
