//go:build unit

package api_test

import (
	"net/http"
	"testing"
	"time"

	"library-api/internal/handler/api"
	resdto "library-api/internal/handler/dto/response"
	"library-api/internal/usecase/commands"
	"library-api/internal/usecase/queries"
	"library-api/tests/common/httptest"
	"library-api/tests/common/testutil"
	commandsmock "library-api/tests/mock/commands"
	queriesmock "library-api/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type BookHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockBookCommands
	mockQueries  *queriesmock.MockBookQueries
	handler      *api.BookHandler
}

func (s *BookHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockBookCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockBookQueries(s.mockCtrl)
	s.handler = api.NewBookHandler(s.mockCommands, s.mockQueries)

	s.router.POST("/createBook", s.handler.Create)
	s.router.GET("/getBooks", s.handler.List)
	s.router.GET("/bookbyID/:id", s.handler.GetByID)
	s.router.PUT("/bookUpdate/:id", s.handler.Update)
	s.router.DELETE("/delete/:id", s.handler.Delete)
}

func (s *BookHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestBookHandlerSuite(t *testing.T) {
	suite.Run(t, new(BookHandlerTestSuite))
}

func validBookBody() map[string]any {
	return map[string]any{
		"image":        "cover.png",
		"title":        "The Go Programming Language",
		"writer":       "Donovan",
		"published":    "2015",
		"category":     "programming",
		"shortDes":     "the gopher book",
		"bookQuantity": 3,
	}
}

func (s *BookHandlerTestSuite) TestCreate() {
	url := "/createBook"

	s.Run("success: returns 201 Created with the inserted id", func() {
		bookID := uuid.New()
		s.mockCommands.EXPECT().Create(gomock.Any(), gomock.Any()).
			Return(bookID, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, validBookBody(), "")

		var body resdto.CreateBookResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		s.Equal(bookID, body.InsertedID)
	})

	s.Run("error: 400 Bad Request on validation errors", func() {
		cases := []struct {
			name   string
			mutate func(m map[string]any)
		}{
			{name: "missing title", mutate: testutil.Field("title", nil)},
			{name: "negative quantity", mutate: testutil.Field("bookQuantity", -1)},
		}

		for _, tc := range cases {
			s.Run(tc.name, func() {
				body := testutil.DtoMap(s.T(), validBookBody(), tc.mutate)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "")
				httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
			})
		}
	})
}

func (s *BookHandlerTestSuite) TestList() {
	view := &queries.BookView{
		ID:           uuid.New(),
		Title:        "The Go Programming Language",
		BookQuantity: 3,
		CreatedAt:    time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		UpdatedAt:    time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}

	s.Run("success: returns all books", func() {
		s.mockQueries.EXPECT().List(gomock.Any()).
			Return([]*queries.BookView{view}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/getBooks", nil, "")

		var body []*queries.BookView
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Len(body, 1)
		s.Equal(view.ID, body[0].ID)
	})

	s.Run("success: empty catalog is an empty array", func() {
		s.mockQueries.EXPECT().List(gomock.Any()).
			Return(nil, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/getBooks", nil, "")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
		s.Contains(rec.Body.String(), `"data":[]`)
	})
}

func (s *BookHandlerTestSuite) TestGetByID() {
	view := &queries.BookView{ID: uuid.New(), Title: "title", BookQuantity: 1}

	s.Run("success", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), view.ID).
			Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookbyID/"+view.ID.String(), nil, "")

		var body queries.BookView
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(view.ID, body.ID)
	})

	s.Run("error: 404 when unknown", func() {
		unknownID := uuid.New()
		s.mockQueries.EXPECT().GetByID(gomock.Any(), unknownID).
			Return(nil, queries.ErrNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookbyID/"+unknownID.String(), nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Book not found")
	})

	s.Run("error: 400 on malformed id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookbyID/not-a-uuid", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})
}

func (s *BookHandlerTestSuite) TestUpdate() {
	bookID := uuid.New()
	body := map[string]any{
		"image":     "cover.png",
		"title":     "updated title",
		"writer":    "Donovan",
		"published": "2015",
		"category":  "programming",
		"shortDes":  "updated",
	}

	s.Run("success", func() {
		s.mockCommands.EXPECT().Update(gomock.Any(), bookID, gomock.Any()).
			Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, "/bookUpdate/"+bookID.String(), body, "")

		var resp resdto.UpdateBookResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &resp)
		s.True(resp.Modified)
	})

	s.Run("success: submitted quantity is ignored", func() {
		// The DTO has no quantity field, so any submitted value is dropped
		withQuantity := testutil.DtoMap(s.T(), body, testutil.Field("bookQuantity", 99))
		s.mockCommands.EXPECT().Update(gomock.Any(), bookID, gomock.Any()).
			Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, "/bookUpdate/"+bookID.String(), withQuantity, "")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("error: 404 when unknown", func() {
		s.mockCommands.EXPECT().Update(gomock.Any(), bookID, gomock.Any()).
			Return(commands.ErrBookNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, "/bookUpdate/"+bookID.String(), body, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Book not found")
	})
}

func (s *BookHandlerTestSuite) TestDelete() {
	bookID := uuid.New()

	s.Run("success", func() {
		s.mockCommands.EXPECT().Delete(gomock.Any(), bookID).
			Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/delete/"+bookID.String(), nil, "")

		var resp resdto.DeleteBookResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &resp)
		s.True(resp.Deleted)
	})

	s.Run("error: 404 when unknown", func() {
		s.mockCommands.EXPECT().Delete(gomock.Any(), bookID).
			Return(commands.ErrBookNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/delete/"+bookID.String(), nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Book not found")
	})
}
