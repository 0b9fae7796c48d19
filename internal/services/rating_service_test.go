package services

import (
	"context"
	"testing"

	"mediarate-backend/internal/models"
)

func TestCreateRating(t *testing.T) {
	f := newServiceFixture()
	ctx := context.Background()
	mediaID := f.addMedia(t, "Blade Runner", "movie", "16+", 1982, "Sci-Fi")

	t.Run("valid rating is stored with a clean slate", func(t *testing.T) {
		rating := f.ratings.CreateRating(ctx, &models.Rating{
			MediaID:          mediaID,
			UserID:           1,
			StarValue:        4,
			Comment:          "solid",
			CommentConfirmed: true,
			LikedByUserIDs:   []uint{7},
		})
		if rating == nil {
			t.Fatal("CreateRating() rejected a valid rating")
		}
		if rating.ID == 0 {
			t.Error("stored rating has no id")
		}
		if rating.CommentConfirmed {
			t.Error("new rating must start unconfirmed")
		}
		if len(rating.LikedByUserIDs) != 0 {
			t.Errorf("new rating must start without likes, got %v", rating.LikedByUserIDs)
		}
		if rating.CreatedAt.IsZero() {
			t.Error("new rating has no creation time")
		}
	})

	t.Run("one rating per media and user", func(t *testing.T) {
		if f.ratings.CreateRating(ctx, &models.Rating{MediaID: mediaID, UserID: 1, StarValue: 5}) != nil {
			t.Error("second rating for the same pair must be rejected")
		}
		if f.ratings.CreateRating(ctx, &models.Rating{MediaID: mediaID, UserID: 2, StarValue: 5}) == nil {
			t.Error("another user must still be able to rate")
		}
	})

	t.Run("rejections", func(t *testing.T) {
		cases := []struct {
			name   string
			rating *models.Rating
		}{
			{"nil rating", nil},
			{"unknown media", &models.Rating{MediaID: 999, UserID: 3, StarValue: 4}},
			{"star too low", &models.Rating{MediaID: mediaID, UserID: 3, StarValue: 0}},
			{"star too high", &models.Rating{MediaID: mediaID, UserID: 3, StarValue: 6}},
			{"no user", &models.Rating{MediaID: mediaID, StarValue: 4}},
		}
		for _, tc := range cases {
			if f.ratings.CreateRating(ctx, tc.rating) != nil {
				t.Errorf("%s: CreateRating() should have been rejected", tc.name)
			}
		}
	})
}

func TestUpdateRatingOwnershipAndModeration(t *testing.T) {
	f := newServiceFixture()
	ctx := context.Background()
	mediaID := f.addMedia(t, "Blade Runner", "movie", "16+", 1982, "Sci-Fi")
	rating := f.rate(t, mediaID, 1, 4, "solid")

	if !f.ratings.ConfirmComment(ctx, rating.ID, 1) {
		t.Fatal("ConfirmComment() failed for owner with non-blank comment")
	}

	t.Run("non-owner cannot edit", func(t *testing.T) {
		if f.ratings.UpdateRating(ctx, &models.Rating{ID: rating.ID, StarValue: 1, Comment: "bad"}, 2) {
			t.Error("UpdateRating() must reject a non-owner")
		}
	})

	t.Run("star-only edit keeps confirmation", func(t *testing.T) {
		if !f.ratings.UpdateRating(ctx, &models.Rating{ID: rating.ID, StarValue: 5, Comment: "solid"}, 1) {
			t.Fatal("UpdateRating() failed for owner")
		}
		stored := f.ratings.GetRatingByID(ctx, rating.ID)
		if stored.StarValue != 5 {
			t.Errorf("StarValue = %d, want 5", stored.StarValue)
		}
		if !stored.CommentConfirmed {
			t.Error("unchanged comment must keep its confirmation")
		}
	})

	t.Run("comment edit resets confirmation", func(t *testing.T) {
		if !f.ratings.UpdateRating(ctx, &models.Rating{ID: rating.ID, StarValue: 5, Comment: "even better"}, 1) {
			t.Fatal("UpdateRating() failed for owner")
		}
		stored := f.ratings.GetRatingByID(ctx, rating.ID)
		if stored.CommentConfirmed {
			t.Error("changed comment must reset the confirmation")
		}
	})

	t.Run("invalid star value is rejected", func(t *testing.T) {
		if f.ratings.UpdateRating(ctx, &models.Rating{ID: rating.ID, StarValue: 0, Comment: "x"}, 1) {
			t.Error("UpdateRating() must reject an invalid star value")
		}
	})
}

func TestConfirmComment(t *testing.T) {
	f := newServiceFixture()
	ctx := context.Background()
	mediaID := f.addMedia(t, "Blade Runner", "movie", "16+", 1982, "Sci-Fi")
	commented := f.rate(t, mediaID, 1, 4, "solid")
	silent := f.rate(t, mediaID, 2, 4, "   ")

	if f.ratings.ConfirmComment(ctx, commented.ID, 2) {
		t.Error("only the owner may confirm")
	}
	if f.ratings.ConfirmComment(ctx, silent.ID, 2) {
		t.Error("blank comments cannot be confirmed")
	}
	if f.ratings.ConfirmComment(ctx, 999, 1) {
		t.Error("unknown rating cannot be confirmed")
	}

	if !f.ratings.ConfirmComment(ctx, commented.ID, 1) {
		t.Fatal("owner confirmation failed")
	}
	if !f.ratings.GetRatingByID(ctx, commented.ID).CommentConfirmed {
		t.Error("confirmation was not persisted")
	}
	// Confirming twice is a harmless no-op.
	if !f.ratings.ConfirmComment(ctx, commented.ID, 1) {
		t.Error("repeated confirmation must succeed")
	}
}

func TestRatingLikes(t *testing.T) {
	f := newServiceFixture()
	ctx := context.Background()
	mediaID := f.addMedia(t, "Blade Runner", "movie", "16+", 1982, "Sci-Fi")
	rating := f.rate(t, mediaID, 1, 4, "")

	if f.ratings.LikeRating(ctx, rating.ID, 1) {
		t.Error("authors must not like their own rating")
	}
	if f.ratings.LikeRating(ctx, 999, 2) {
		t.Error("liking an unknown rating must fail")
	}
	if !f.ratings.LikeRating(ctx, rating.ID, 2) {
		t.Fatal("first like from another user failed")
	}
	if f.ratings.LikeRating(ctx, rating.ID, 2) {
		t.Error("duplicate like must fail")
	}

	stored := f.ratings.GetRatingByID(ctx, rating.ID)
	if !stored.LikedBy(2) {
		t.Errorf("LikedByUserIDs = %v, want user 2 present", stored.LikedByUserIDs)
	}

	if f.ratings.UnlikeRating(ctx, rating.ID, 3) {
		t.Error("removing a like that was never given must fail")
	}
	if !f.ratings.UnlikeRating(ctx, rating.ID, 2) {
		t.Fatal("removing an existing like failed")
	}
	if f.ratings.GetRatingByID(ctx, rating.ID).LikedBy(2) {
		t.Error("like was not removed")
	}
}

func TestDeleteRating(t *testing.T) {
	f := newServiceFixture()
	ctx := context.Background()
	mediaID := f.addMedia(t, "Blade Runner", "movie", "16+", 1982, "Sci-Fi")
	rating := f.rate(t, mediaID, 1, 4, "")
	f.ratings.LikeRating(ctx, rating.ID, 2)

	if f.ratings.DeleteRating(ctx, rating.ID, 2) {
		t.Error("non-owner must not delete")
	}
	if !f.ratings.DeleteRating(ctx, rating.ID, 1) {
		t.Fatal("owner delete failed")
	}
	if f.ratings.GetRatingByID(ctx, rating.ID) != nil {
		t.Error("rating still present after delete")
	}
	// The pair is free again after the delete.
	if f.ratings.CreateRating(ctx, &models.Rating{MediaID: mediaID, UserID: 1, StarValue: 3}) == nil {
		t.Error("re-rating after delete must succeed")
	}
}

func TestGetUserRatingForMedia(t *testing.T) {
	f := newServiceFixture()
	ctx := context.Background()
	mediaID := f.addMedia(t, "Blade Runner", "movie", "16+", 1982, "Sci-Fi")
	f.rate(t, mediaID, 1, 4, "")

	if f.ratings.GetUserRatingForMedia(ctx, mediaID, 1) == nil {
		t.Error("own rating not found")
	}
	if f.ratings.GetUserRatingForMedia(ctx, mediaID, 2) != nil {
		t.Error("rating returned for user who never rated")
	}
}
