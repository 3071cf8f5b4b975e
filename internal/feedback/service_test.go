package feedback

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memRepository struct {
	entries []*Feedback
	nextID  int
}

func (r *memRepository) Create(_ context.Context, f *Feedback) error {
	r.nextID++
	f.ID = fmt.Sprintf("feedback-%d", r.nextID)
	r.entries = append(r.entries, f)
	return nil
}

func (r *memRepository) ListRecent(_ context.Context, limit int) ([]*Feedback, error) {
	var result []*Feedback
	for i := len(r.entries) - 1; i >= 0 && len(result) < limit; i-- {
		result = append(result, r.entries[i])
	}
	return result, nil
}

func validFeedback() CreateRequest {
	return CreateRequest{
		Name:    "Tester",
		Email:   "test@example.com",
		Rating:  5,
		Message: "Smooth pickup and drop-off",
	}
}

func TestCreateFeedback(t *testing.T) {
	ctx := context.Background()

	t.Run("Valid", func(t *testing.T) {
		svc := NewService(&memRepository{})

		f, err := svc.Create(ctx, validFeedback())
		require.NoError(t, err)
		assert.NotEmpty(t, f.ID)
		assert.Equal(t, 5, f.Rating)
	})

	t.Run("Rating Bounds", func(t *testing.T) {
		svc := NewService(&memRepository{})

		for _, rating := range []int{0, -1, 6} {
			req := validFeedback()
			req.Rating = rating
			_, err := svc.Create(ctx, req)
			assert.ErrorIs(t, err, ErrInvalidRating, "rating %d", rating)
		}

		for rating := 1; rating <= 5; rating++ {
			req := validFeedback()
			req.Rating = rating
			_, err := svc.Create(ctx, req)
			assert.NoError(t, err, "rating %d", rating)
		}
	})

	t.Run("Blank Fields", func(t *testing.T) {
		svc := NewService(&memRepository{})

		req := validFeedback()
		req.Name = "  "
		_, err := svc.Create(ctx, req)
		assert.ErrorIs(t, err, ErrNameRequired)

		req = validFeedback()
		req.Email = ""
		_, err = svc.Create(ctx, req)
		assert.ErrorIs(t, err, ErrEmailRequired)

		req = validFeedback()
		req.Message = " "
		_, err = svc.Create(ctx, req)
		assert.ErrorIs(t, err, ErrMessageRequired)
	})
}

func TestListRecent(t *testing.T) {
	ctx := context.Background()
	repo := &memRepository{}
	svc := NewService(repo)

	for i := 0; i < 25; i++ {
		req := validFeedback()
		req.Message = fmt.Sprintf("message %d", i)
		_, err := svc.Create(ctx, req)
		require.NoError(t, err)
	}

	list, err := svc.ListRecent(ctx)
	require.NoError(t, err)
	require.Len(t, list, defaultListLimit)
	assert.Equal(t, "message 24", list[0].Message, "newest first")
}
