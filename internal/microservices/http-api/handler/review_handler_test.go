package handler_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"gamereviews/internal/microservices/http-api/dto"
	"gamereviews/internal/microservices/http-api/models"
	"gamereviews/internal/microservices/http-api/repository"
	"gamereviews/internal/microservices/http-api/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestReviewHandler_List(t *testing.T) {
	api := setupAPI()
	gameID, userID := int64(2), int64(1)

	api.reviews.On("ListReviews", mock.Anything, repository.ReviewFilter{GameID: &gameID, UserID: &userID}, 0, 10).
		Return([]models.Review{}, nil).Once()

	w := api.do(http.MethodGet, "/api/reviews?game_id=2&user_id=1&limit=10", nil, false)

	assertStatus(t, http.StatusOK, w)
	assert.JSONEq(t, `[]`, w.Body.String())
	api.reviews.AssertExpectations(t)
}

func TestReviewHandler_Create(t *testing.T) {
	api := setupAPI()

	t.Run("Success", func(t *testing.T) {
		in := dto.CreateReviewDTO{GameID: 1, Content: "Ten out of ten, no notes.", Rating: 10}
		api.reviews.On("CreateReview", mock.Anything, alice, in).
			Return(&models.Review{ID: 4, GameID: 1, UserID: alice.ID, Content: in.Content, Rating: 10, Author: *alice}, nil).Once()

		w := api.do(http.MethodPost, "/api/reviews", in, true)

		assertStatus(t, http.StatusCreated, w)
		var resp dto.ReviewResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, int64(4), resp.ID)
		assert.Equal(t, alice.ID, resp.Author.ID)
	})

	t.Run("RatingOutOfRange", func(t *testing.T) {
		w := api.do(http.MethodPost, "/api/reviews", dto.CreateReviewDTO{GameID: 1, Content: "long enough content", Rating: 11}, true)

		assertStatus(t, http.StatusUnprocessableEntity, w)
		detail := decodeFieldErrors(t, w)
		require.Len(t, detail, 1)
		assert.Equal(t, "rating", detail[0].Field)
		assert.Equal(t, "must be at most 10", detail[0].Message)
	})

	t.Run("UnknownGame", func(t *testing.T) {
		in := dto.CreateReviewDTO{GameID: 404, Content: "long enough content", Rating: 5}
		api.reviews.On("CreateReview", mock.Anything, alice, in).Return(nil, &service.NotFoundError{Resource: "Game"}).Once()

		w := api.do(http.MethodPost, "/api/reviews", in, true)

		assertStatus(t, http.StatusNotFound, w)
		assert.JSONEq(t, `{"detail":"Game not found"}`, w.Body.String())
	})

	t.Run("Anonymous", func(t *testing.T) {
		w := api.do(http.MethodPost, "/api/reviews", dto.CreateReviewDTO{GameID: 1, Content: "long enough content", Rating: 5}, false)

		assertStatus(t, http.StatusUnauthorized, w)
	})
}

func TestReviewHandler_UpdateAndDelete(t *testing.T) {
	api := setupAPI()

	t.Run("NonAuthorUpdate", func(t *testing.T) {
		patch := dto.UpdateReviewDTO{Rating: intPtr(1)}
		api.reviews.On("UpdateReview", mock.Anything, int64(9), alice, patch).Return(nil, &service.NotFoundError{Resource: "Review"}).Once()

		w := api.do(http.MethodPut, "/api/reviews/9", patch, true)

		assertStatus(t, http.StatusNotFound, w)
		assert.JSONEq(t, `{"detail":"Review not found"}`, w.Body.String())
	})

	t.Run("AuthorUpdate", func(t *testing.T) {
		patch := dto.UpdateReviewDTO{Content: stringPtr("Changed my mind entirely.")}
		api.reviews.On("UpdateReview", mock.Anything, int64(4), alice, patch).
			Return(&models.Review{ID: 4, Content: *patch.Content, Rating: 10, Author: *alice}, nil).Once()

		w := api.do(http.MethodPut, "/api/reviews/4", patch, true)

		assertStatus(t, http.StatusOK, w)
		assert.Contains(t, w.Body.String(), "Changed my mind entirely.")
	})

	t.Run("NoBodyIsEmptyPatch", func(t *testing.T) {
		api.reviews.On("UpdateReview", mock.Anything, int64(4), alice, dto.UpdateReviewDTO{}).
			Return(&models.Review{ID: 4, Content: "Unchanged review text.", Rating: 7, Author: *alice}, nil).Once()

		w := api.do(http.MethodPut, "/api/reviews/4", nil, true)

		assertStatus(t, http.StatusOK, w)
		assert.Contains(t, w.Body.String(), "Unchanged review text.")
	})

	t.Run("Delete", func(t *testing.T) {
		api.reviews.On("DeleteReview", mock.Anything, int64(4), alice).Return(nil).Once()

		w := api.do(http.MethodDelete, "/api/reviews/4", nil, true)

		assertStatus(t, http.StatusOK, w)
		assert.JSONEq(t, `{"message":"Review deleted successfully"}`, w.Body.String())
	})
}

func TestReviewHandler_Comments(t *testing.T) {
	api := setupAPI()

	t.Run("List", func(t *testing.T) {
		api.comments.On("GetReviewComments", mock.Anything, int64(4), 0, 100).
			Return([]models.Comment{{ID: 1, ReviewID: 4, UserID: 1, Content: "+1", Author: *alice}}, nil).Once()

		w := api.do(http.MethodGet, "/api/reviews/4/comments", nil, false)

		assertStatus(t, http.StatusOK, w)
		var resp []dto.CommentResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Len(t, resp, 1)
		assert.Equal(t, "+1", resp[0].Content)
	})

	t.Run("Create", func(t *testing.T) {
		api.comments.On("CreateComment", mock.Anything, alice, int64(4), "Agreed").
			Return(&models.Comment{ID: 2, ReviewID: 4, UserID: 1, Content: "Agreed", Author: *alice}, nil).Once()

		w := api.do(http.MethodPost, "/api/reviews/4/comments", dto.CreateCommentDTO{Content: "Agreed"}, true)

		assertStatus(t, http.StatusCreated, w)
	})

	t.Run("CreateEmpty", func(t *testing.T) {
		w := api.do(http.MethodPost, "/api/reviews/4/comments", dto.CreateCommentDTO{}, true)

		assertStatus(t, http.StatusUnprocessableEntity, w)
		assert.Equal(t, "content", decodeFieldErrors(t, w)[0].Field)
	})
}
