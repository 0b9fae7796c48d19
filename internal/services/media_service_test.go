package services

import (
	"context"
	"testing"

	"mediarate-backend/internal/models"
)

func TestCreateMediaValidation(t *testing.T) {
	f := newServiceFixture()
	ctx := context.Background()
	year := 1982

	cases := []struct {
		name  string
		media *models.Media
		want  bool
	}{
		{"nil media", nil, false},
		{"blank title", &models.Media{Title: "  ", MediaType: "movie", AgeRestriction: "16+", Genres: []string{"sci-fi"}, CreatedByUserID: 1}, false},
		{"blank type", &models.Media{Title: "Blade Runner", MediaType: "", AgeRestriction: "16+", Genres: []string{"sci-fi"}, CreatedByUserID: 1}, false},
		{"no creator", &models.Media{Title: "Blade Runner", MediaType: "movie", AgeRestriction: "16+", Genres: []string{"sci-fi"}}, false},
		{"no genres", &models.Media{Title: "Blade Runner", MediaType: "movie", AgeRestriction: "16+", CreatedByUserID: 1}, false},
		{"only blank genres", &models.Media{Title: "Blade Runner", MediaType: "movie", AgeRestriction: "16+", Genres: []string{" ", ""}, CreatedByUserID: 1}, false},
		{"year out of range", &models.Media{Title: "Blade Runner", MediaType: "movie", AgeRestriction: "16+", ReleaseYear: intPtr(1800), Genres: []string{"sci-fi"}, CreatedByUserID: 1}, false},
		{"valid", &models.Media{Title: "Blade Runner", MediaType: "movie", AgeRestriction: "16+", ReleaseYear: &year, Genres: []string{"sci-fi"}, CreatedByUserID: 1}, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := f.media.CreateMedia(ctx, tc.media); got != tc.want {
				t.Errorf("CreateMedia() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestSearchMediaConjunctiveFilters(t *testing.T) {
	f := newServiceFixture()
	ctx := context.Background()

	f.addMedia(t, "Blade Runner", "movie", "16+", 1982, "Sci-Fi", "Thriller")
	f.addMedia(t, "Blade Runner 2049", "movie", "16+", 2017, "Sci-Fi")
	f.addMedia(t, "The Office", "series", "12+", 2005, "Comedy")

	cases := []struct {
		name     string
		criteria MediaSearchCriteria
		want     []string
	}{
		{"substring title, case insensitive", MediaSearchCriteria{TitleQuery: strPtr("bLaDe")}, []string{"Blade Runner", "Blade Runner 2049"}},
		{"title and year combine", MediaSearchCriteria{TitleQuery: strPtr("blade"), ReleaseYear: intPtr(2017)}, []string{"Blade Runner 2049"}},
		{"genre is case insensitive", MediaSearchCriteria{Genre: strPtr("sci-fi")}, []string{"Blade Runner", "Blade Runner 2049"}},
		{"media type", MediaSearchCriteria{MediaType: strPtr("SERIES")}, []string{"The Office"}},
		{"age restriction", MediaSearchCriteria{AgeRestriction: strPtr("12+")}, []string{"The Office"}},
		{"no match", MediaSearchCriteria{TitleQuery: strPtr("blade"), MediaType: strPtr("series")}, []string{}},
		{"empty criteria returns all", MediaSearchCriteria{}, []string{"Blade Runner", "Blade Runner 2049", "The Office"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := titles(f.media.SearchMedia(ctx, tc.criteria, 0))
			if !equalStrings(got, tc.want) {
				t.Errorf("SearchMedia() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestSearchMediaMinimumRating(t *testing.T) {
	f := newServiceFixture()
	ctx := context.Background()

	good := f.addMedia(t, "Good", "movie", "16+", 2000, "Drama")
	bad := f.addMedia(t, "Bad", "movie", "16+", 2001, "Drama")
	f.addMedia(t, "Unrated", "movie", "16+", 2002, "Drama")

	f.rate(t, good, 1, 5, "")
	f.rate(t, good, 2, 4, "")
	f.rate(t, bad, 1, 2, "")

	got := titles(f.media.SearchMedia(ctx, MediaSearchCriteria{MinimumRating: floatPtr(3.5)}, 0))
	if !equalStrings(got, []string{"Good"}) {
		t.Errorf("SearchMedia(min 3.5) = %v, want [Good]", got)
	}

	// Items without ratings never pass the threshold, even a zero one.
	got = titles(f.media.SearchMedia(ctx, MediaSearchCriteria{MinimumRating: floatPtr(0)}, 0))
	if !equalStrings(got, []string{"Bad", "Good"}) {
		t.Errorf("SearchMedia(min 0) = %v, want [Bad Good]", got)
	}
}

func TestSearchMediaSorting(t *testing.T) {
	f := newServiceFixture()
	ctx := context.Background()

	zeta := f.addMedia(t, "Zeta", "movie", "16+", 1990, "Drama")
	alpha := f.addMedia(t, "alpha", "movie", "16+", 2010, "Drama")
	mid := f.addMedia(t, "Mid", "movie", "16+", 2000, "Drama")

	f.rate(t, zeta, 1, 4, "")
	f.rate(t, alpha, 1, 4, "")
	f.rate(t, mid, 1, 5, "")

	t.Run("score desc with title tie-break", func(t *testing.T) {
		got := titles(f.media.SearchMedia(ctx, MediaSearchCriteria{SortField: SortByScore, SortDirection: SortDesc}, 0))
		if !equalStrings(got, []string{"Mid", "alpha", "Zeta"}) {
			t.Errorf("got %v, want [Mid alpha Zeta]", got)
		}
	})

	t.Run("year desc", func(t *testing.T) {
		got := titles(f.media.SearchMedia(ctx, MediaSearchCriteria{SortField: SortByYear, SortDirection: SortDesc}, 0))
		if !equalStrings(got, []string{"alpha", "Mid", "Zeta"}) {
			t.Errorf("got %v, want [alpha Mid Zeta]", got)
		}
	})

	t.Run("default is case-insensitive title asc", func(t *testing.T) {
		got := titles(f.media.SearchMedia(ctx, MediaSearchCriteria{}, 0))
		if !equalStrings(got, []string{"alpha", "Mid", "Zeta"}) {
			t.Errorf("got %v, want [alpha Mid Zeta]", got)
		}
	})
}

func TestSearchMediaSortsUnknownYearLowest(t *testing.T) {
	f := newServiceFixture()
	ctx := context.Background()

	f.addMedia(t, "Dated", "movie", "16+", 1995, "Drama")
	noYear := &models.Media{Title: "Timeless", MediaType: "movie", AgeRestriction: "16+", Genres: []string{"Drama"}, CreatedByUserID: 1}
	if !f.media.CreateMedia(ctx, noYear) {
		t.Fatal("failed to create media without release year")
	}

	got := titles(f.media.SearchMedia(ctx, MediaSearchCriteria{SortField: SortByYear}, 0))
	if !equalStrings(got, []string{"Timeless", "Dated"}) {
		t.Errorf("got %v, want [Timeless Dated]", got)
	}
}

func TestGetDetailedMedia(t *testing.T) {
	f := newServiceFixture()
	ctx := context.Background()

	id := f.addMedia(t, "Blade Runner", "movie", "16+", 1982, "Sci-Fi")
	f.rate(t, id, 1, 5, "masterpiece")
	f.rate(t, id, 2, 3, "")

	details := f.media.GetDetailedMedia(ctx, id, 1)
	if details == nil {
		t.Fatal("GetDetailedMedia() returned nil for existing media")
	}
	if details.RatingCount != 2 {
		t.Errorf("RatingCount = %d, want 2", details.RatingCount)
	}
	if details.AverageRating != 4 {
		t.Errorf("AverageRating = %v, want 4", details.AverageRating)
	}
	if len(details.Ratings) != 2 {
		t.Errorf("len(Ratings) = %d, want 2", len(details.Ratings))
	}

	if f.media.GetDetailedMedia(ctx, 999, 1) != nil {
		t.Error("GetDetailedMedia() should return nil for unknown media")
	}
}

func TestFavorites(t *testing.T) {
	f := newServiceFixture()
	ctx := context.Background()

	first := f.addMedia(t, "Beta", "movie", "16+", 2000, "Drama")
	second := f.addMedia(t, "Alpha", "movie", "16+", 2001, "Drama")

	if f.media.AddFavorite(ctx, 999, 1) {
		t.Error("AddFavorite() should fail for unknown media")
	}
	if !f.media.AddFavorite(ctx, first, 1) {
		t.Error("AddFavorite() should succeed")
	}
	if f.media.AddFavorite(ctx, first, 1) {
		t.Error("AddFavorite() should fail on duplicate")
	}
	if !f.media.AddFavorite(ctx, second, 1) {
		t.Error("AddFavorite() should succeed for second media")
	}

	got := f.media.ListFavorites(ctx, 1)
	if !equalStrings(titles(got), []string{"Alpha", "Beta"}) {
		t.Errorf("ListFavorites() = %v, want [Alpha Beta]", titles(got))
	}
	for _, d := range got {
		if !d.FavoriteForUser {
			t.Errorf("favorite %q not flagged for requesting user", d.Media.Title)
		}
	}

	if !f.media.RemoveFavorite(ctx, first, 1) {
		t.Error("RemoveFavorite() should succeed")
	}
	if f.media.RemoveFavorite(ctx, first, 1) {
		t.Error("RemoveFavorite() should fail when not marked")
	}
	if got := f.media.ListFavorites(ctx, 2); got != nil {
		t.Errorf("ListFavorites() for user without favorites = %v, want nil", got)
	}
}

func TestRecommendMediaPreferenceScoring(t *testing.T) {
	f := newServiceFixture()
	ctx := context.Background()
	const userID = 10

	seed := f.addMedia(t, "Seed", "movie", "16+", 2000, "Sci-Fi")
	fullMatch := f.addMedia(t, "Full Match", "movie", "16+", 2001, "Sci-Fi")
	f.addMedia(t, "Genre Only", "series", "0+", 2002, "Sci-Fi")
	f.addMedia(t, "No Overlap", "series", "0+", 2003, "Comedy")

	f.rate(t, seed, userID, 5, "")
	f.rate(t, fullMatch, 20, 4, "")

	got := titles(f.media.RecommendMedia(ctx, userID))
	if !equalStrings(got, []string{"Full Match", "Genre Only"}) {
		t.Errorf("RecommendMedia() = %v, want [Full Match Genre Only]", got)
	}
}

func TestRecommendMediaGenreMatchOutweighsAverage(t *testing.T) {
	f := newServiceFixture()
	ctx := context.Background()
	const userID = 10

	mediaA := f.addMedia(t, "Media A", "movie", "16+", 2000, "Sci-Fi")
	mediaB := f.addMedia(t, "Media B", "movie", "16+", 2001, "Sci-Fi", "Drama")
	mediaC := f.addMedia(t, "Media C", "movie", "16+", 2002, "Comedy")

	f.rate(t, mediaA, userID, 5, "")
	f.rate(t, mediaB, 20, 4, "")
	f.rate(t, mediaB, 21, 4, "")
	f.rate(t, mediaC, 20, 5, "")

	// B's genre-match bonus beats C's higher community average.
	got := titles(f.media.RecommendMedia(ctx, userID))
	if !equalStrings(got, []string{"Media B", "Media C"}) {
		t.Errorf("RecommendMedia() = %v, want [Media B Media C]", got)
	}
}

func TestRecommendMediaNeverIncludesRated(t *testing.T) {
	f := newServiceFixture()
	ctx := context.Background()
	const userID = 10

	rated := f.addMedia(t, "Rated", "movie", "16+", 2000, "Sci-Fi")
	f.addMedia(t, "Fresh", "movie", "16+", 2001, "Sci-Fi")
	f.rate(t, rated, userID, 5, "")

	for _, title := range titles(f.media.RecommendMedia(ctx, userID)) {
		if title == "Rated" {
			t.Fatal("RecommendMedia() must not include already rated media")
		}
	}
}

func TestRecommendMediaPopularityFallback(t *testing.T) {
	f := newServiceFixture()
	ctx := context.Background()
	const userID = 30

	// The only preference signal points at "Lone"; the sole other entry
	// shares nothing with it and has no ratings, so preference scoring
	// yields no candidates and the popularity fallback kicks in.
	lone := f.addMedia(t, "Lone", "movie", "18+", 2000, "Drama")
	f.addMedia(t, "Other", "series", "0+", 2001, "Comedy")
	f.rate(t, lone, userID, 5, "")

	got := titles(f.media.RecommendMedia(ctx, userID))
	if !equalStrings(got, []string{"Lone"}) {
		t.Errorf("RecommendMedia() fallback = %v, want [Lone]", got)
	}
}

func TestRecommendMediaAnonymousUser(t *testing.T) {
	f := newServiceFixture()
	if got := f.media.RecommendMedia(context.Background(), 0); got != nil {
		t.Errorf("RecommendMedia(0) = %v, want nil", got)
	}
}

func intPtr(v int) *int           { return &v }
func strPtr(v string) *string     { return &v }
func floatPtr(v float64) *float64 { return &v }
