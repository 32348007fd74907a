package api

import (
	"errors"
	"net/http"

	"library-api/internal/handler/dto/request"
	"library-api/internal/handler/dto/response"
	"library-api/internal/handler/httperr"
	"library-api/internal/usecase/commands"
	"library-api/internal/usecase/queries"
	"library-api/internal/usecase/shared"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BookHandler struct {
	bookCommands commands.BookCommands
	bookQueries  queries.BookQueries
}

func NewBookHandler(bookCommands commands.BookCommands, bookQueries queries.BookQueries) *BookHandler {
	return &BookHandler{
		bookCommands: bookCommands,
		bookQueries:  bookQueries,
	}
}

// Create godoc
// @Summary      Create a book
// @Tags         books
// @Accept       json
// @Produce      json
// @Param        request body request.CreateBookRequest true "Book data"
// @Success      201 {object} response.Envelope{data=response.CreateBookResponse}
// @Failure      400 {object} httperr.Response
// @Failure      401 {object} httperr.Response
// @Failure      500 {object} httperr.Response
// @Security     BearerAuth
// @Router       /createBook [post]
func (h *BookHandler) Create(c *gin.Context) {
	var req request.CreateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format")
		return
	}

	bookID, err := h.bookCommands.Create(c.Request.Context(), commands.CreateBookParams{
		Image:     req.Image,
		Title:     req.Title,
		Writer:    req.Writer,
		Published: req.Published,
		Category:  req.Category,
		ShortDes:  req.ShortDes,
		Quantity:  req.BookQuantity,
	})
	if err != nil {
		if errors.Is(err, commands.ErrInvalidBook) {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid book data")
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to create book")
		return
	}

	c.JSON(http.StatusCreated, response.OK(response.CreateBookResponse{InsertedID: bookID}))
}

// List godoc
// @Summary      List all books
// @Tags         books
// @Produce      json
// @Success      200 {object} response.Envelope{data=[]queries.BookView}
// @Failure      500 {object} httperr.Response
// @Router       /getBooks [get]
func (h *BookHandler) List(c *gin.Context) {
	books, err := h.bookQueries.List(c.Request.Context())
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to list books")
		return
	}

	if books == nil {
		books = []*queries.BookView{}
	}

	c.JSON(http.StatusOK, response.OK(books))
}

// GetByID godoc
// @Summary      Get a book
// @Tags         books
// @Produce      json
// @Param        id path string true "Book ID"
// @Success      200 {object} response.Envelope{data=queries.BookView}
// @Failure      400 {object} httperr.Response
// @Failure      404 {object} httperr.Response
// @Failure      500 {object} httperr.Response
// @Router       /bookbyID/{id} [get]
func (h *BookHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid book id")
		return
	}

	view, err := h.bookQueries.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, queries.ErrNotFound) {
			httperr.AbortWithError(c, http.StatusNotFound, err, "Book not found")
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to get book")
		return
	}

	c.JSON(http.StatusOK, response.OK(view))
}

// Update godoc
// @Summary      Update a book's descriptive fields
// @Description  Quantity is not updatable here; it is owned by the borrow/return workflow
// @Tags         books
// @Accept       json
// @Produce      json
// @Param        id path string true "Book ID"
// @Param        request body request.UpdateBookRequest true "Book data"
// @Success      200 {object} response.Envelope{data=response.UpdateBookResponse}
// @Failure      400 {object} httperr.Response
// @Failure      401 {object} httperr.Response
// @Failure      404 {object} httperr.Response
// @Failure      500 {object} httperr.Response
// @Security     BearerAuth
// @Router       /bookUpdate/{id} [put]
func (h *BookHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid book id")
		return
	}

	var req request.UpdateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format")
		return
	}

	upd := shared.BookUpdate{
		Image:     req.Image,
		Title:     req.Title,
		Writer:    req.Writer,
		Published: req.Published,
		Category:  req.Category,
		ShortDes:  req.ShortDes,
	}

	if err := h.bookCommands.Update(c.Request.Context(), id, upd); err != nil {
		if errors.Is(err, commands.ErrBookNotFound) {
			httperr.AbortWithError(c, http.StatusNotFound, err, "Book not found")
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to update book")
		return
	}

	c.JSON(http.StatusOK, response.OK(response.UpdateBookResponse{Modified: true}))
}

// Delete godoc
// @Summary      Delete a book
// @Tags         books
// @Produce      json
// @Param        id path string true "Book ID"
// @Success      200 {object} response.Envelope{data=response.DeleteBookResponse}
// @Failure      400 {object} httperr.Response
// @Failure      401 {object} httperr.Response
// @Failure      404 {object} httperr.Response
// @Failure      500 {object} httperr.Response
// @Security     BearerAuth
// @Router       /delete/{id} [delete]
func (h *BookHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid book id")
		return
	}

	if err := h.bookCommands.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, commands.ErrBookNotFound) {
			httperr.AbortWithError(c, http.StatusNotFound, err, "Book not found")
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to delete book")
		return
	}

	c.JSON(http.StatusOK, response.OK(response.DeleteBookResponse{Deleted: true}))
}
