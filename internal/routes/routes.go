package routes

import (
	"mediarate-backend/internal/handlers"
	"mediarate-backend/internal/services"

	"github.com/gofiber/fiber/v2"
)

func Setup(app *fiber.App,
	userService services.UserService,
	userHandler *handlers.UserHandler,
	mediaHandler *handlers.MediaHandler,
	ratingHandler *handlers.RatingHandler,
	profileHandler *handlers.ProfileHandler,
	uploadHandler *handlers.UploadHandler) {

	api := app.Group("/api")
	v1 := api.Group("/v1")

	// Public auth routes
	auth := v1.Group("/auth")
	{
		auth.Post("/register", userHandler.Register)
		auth.Post("/login", userHandler.Login)
	}

	// Everything below requires a valid session token
	authed := v1.Group("", handlers.RequireAuth(userService))

	session := authed.Group("/auth")
	{
		session.Post("/logout", userHandler.Logout)
		session.Get("/me", userHandler.Me)
	}

	media := authed.Group("/media")
	{
		media.Get("/", mediaHandler.GetAllMedia)
		media.Get("/search", mediaHandler.SearchMedia)
		media.Get("/recommendations", mediaHandler.RecommendMedia)
		media.Get("/:id", mediaHandler.GetDetailedMedia)
		media.Post("/", mediaHandler.CreateMedia)
		media.Put("/:id", mediaHandler.UpdateMedia)
		media.Delete("/:id", mediaHandler.DeleteMedia)
		media.Post("/:id/favorite", mediaHandler.AddFavorite)
		media.Delete("/:id/favorite", mediaHandler.RemoveFavorite)
	}

	ratings := authed.Group("/ratings")
	{
		ratings.Post("/", ratingHandler.CreateRating)
		ratings.Get("/media/:mediaId", ratingHandler.GetRatingsForMedia)
		ratings.Get("/media/:mediaId/mine", ratingHandler.GetOwnRatingForMedia)
		ratings.Put("/:id", ratingHandler.UpdateRating)
		ratings.Delete("/:id", ratingHandler.DeleteRating)
		ratings.Post("/:id/confirm", ratingHandler.ConfirmComment)
		ratings.Post("/:id/like", ratingHandler.LikeRating)
		ratings.Delete("/:id/like", ratingHandler.UnlikeRating)
	}

	profile := authed.Group("/profile")
	{
		profile.Get("/", profileHandler.GetProfile)
		profile.Get("/history", profileHandler.GetRatingHistory)
		profile.Get("/favorites", profileHandler.GetFavorites)
	}

	authed.Get("/leaderboard", profileHandler.GetLeaderboard)

	upload := authed.Group("/upload")
	{
		upload.Get("/presign", uploadHandler.PresignPosterUpload)
	}
}
