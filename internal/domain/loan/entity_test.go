//go:build unit

package loan_test

import (
	"testing"
	"time"

	"library-api/internal/domain/loan"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLoan(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	bookID := uuid.New()

	t.Run("basic success case", func(t *testing.T) {
		actual, err := loan.NewLoan(bookID, "reader@example.com", "Reader", now)
		require.NoError(t, err)
		require.NotNil(t, actual)

		assert.NotEqual(t, uuid.Nil, actual.ID())
		assert.Equal(t, bookID, actual.BookID())
		assert.Equal(t, "reader@example.com", actual.RequesterEmail())
		assert.Equal(t, "Reader", actual.RequesterName())
		assert.Equal(t, loan.StatusBorrowed, actual.Status())
		assert.Equal(t, now, actual.BorrowedAt())
		assert.Nil(t, actual.ReturnedAt())
	})

	t.Run("requester identity is trimmed", func(t *testing.T) {
		actual, err := loan.NewLoan(bookID, "  reader@example.com  ", "  Reader  ", now)
		require.NoError(t, err)
		assert.Equal(t, "reader@example.com", actual.RequesterEmail())
		assert.Equal(t, "Reader", actual.RequesterName())
	})

	t.Run("empty requester identity", func(t *testing.T) {
		cases := []string{"", "   "}
		for _, identity := range cases {
			actual, err := loan.NewLoan(bookID, identity, "", now)
			require.ErrorIs(t, err, loan.ErrEmptyRequester)
			assert.Nil(t, actual)
		}
	})

	t.Run("requester name is optional", func(t *testing.T) {
		actual, err := loan.NewLoan(bookID, "reader@example.com", "", now)
		require.NoError(t, err)
		assert.Empty(t, actual.RequesterName())
	})
}

func TestNewStatus(t *testing.T) {
	cases := []struct {
		name  string
		value string
		errIs error
	}{
		{name: "borrowed", value: "borrowed"},
		{name: "returned", value: "returned"},
		{name: "unknown value", value: "lost", errIs: loan.ErrInvalidStatus},
		{name: "empty value", value: "", errIs: loan.ErrInvalidStatus},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			actual, err := loan.NewStatus(tc.value)
			if tc.errIs != nil {
				require.ErrorIs(t, err, tc.errIs)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.value, actual.String())
		})
	}
}

func TestReturn(t *testing.T) {
	borrowed := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	returned := borrowed.Add(48 * time.Hour)

	t.Run("borrowed loan can be returned once", func(t *testing.T) {
		l, err := loan.NewLoan(uuid.New(), "reader@example.com", "", borrowed)
		require.NoError(t, err)

		require.NoError(t, l.Return(returned))
		assert.Equal(t, loan.StatusReturned, l.Status())
		require.NotNil(t, l.ReturnedAt())
		assert.Equal(t, returned, *l.ReturnedAt())
	})

	t.Run("second return is rejected", func(t *testing.T) {
		l, err := loan.NewLoan(uuid.New(), "reader@example.com", "", borrowed)
		require.NoError(t, err)
		require.NoError(t, l.Return(returned))

		err = l.Return(returned.Add(time.Hour))
		require.ErrorIs(t, err, loan.ErrAlreadyReturned)
		assert.Equal(t, returned, *l.ReturnedAt())
	})

	t.Run("reconstructed returned loan cannot be returned again", func(t *testing.T) {
		l := loan.Reconstruct(uuid.New(), uuid.New(), "reader@example.com", "", loan.StatusReturned, borrowed, &returned)
		require.ErrorIs(t, l.Return(returned.Add(time.Hour)), loan.ErrAlreadyReturned)
	})
}
