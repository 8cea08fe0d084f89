package routes

import (
	"net/http"

	"waydown/agi"
	"waydown/auth"
	"waydown/comments"
	"waydown/errlog"
	"waydown/feed"
	"waydown/interests"
	"waydown/middleware"
	"waydown/notify"
	"waydown/posts"
	"waydown/profile"
	"waydown/ratelim"
	"waydown/reports"
	"waydown/reviews"
	"waydown/search"
	"waydown/spots"
	"waydown/suggestions"
	"waydown/userdata"
	"waydown/welcome"

	"github.com/julienschmidt/httprouter"
)

func AddStaticRoutes(router *httprouter.Router) {
	router.ServeFiles("/static/uploads/*filepath", http.Dir("static/uploads"))
}

func AddAuthRoutes(router *httprouter.Router) {
	router.POST("/api/auth/register", ratelim.RateLimit(auth.Register))
	router.POST("/api/auth/login", ratelim.RateLimit(auth.Login))
	router.POST("/api/auth/logout", middleware.Authenticate(auth.Logout))
	router.POST("/api/auth/token/refresh", ratelim.RateLimit(auth.RefreshToken))
}

func AddProfileRoutes(router *httprouter.Router) {
	router.GET("/api/users/:userid", middleware.OptionalAuth(profile.GetProfile))
	router.PATCH("/api/users/:userid", middleware.Authenticate(profile.EditProfile))
	router.POST("/api/users/:userid/avatar", ratelim.RateLimit(middleware.Authenticate(profile.UploadAvatar)))
	router.PUT("/api/users/:userid/interests", middleware.Authenticate(profile.SetInterests))
	router.PUT("/api/users/:userid/location", middleware.Authenticate(profile.SetLocation))

	router.POST("/api/users/:userid/follow", ratelim.RateLimit(middleware.Authenticate(profile.Follow)))
	router.DELETE("/api/users/:userid/follow", ratelim.RateLimit(middleware.Authenticate(profile.Unfollow)))
	router.GET("/api/users/:userid/followers", profile.GetFollowers)
	router.GET("/api/users/:userid/following", profile.GetFollowing)
	router.GET("/api/users/:userid/follows", middleware.Authenticate(profile.DoesFollow))

	router.GET("/api/users/:userid/activity/:action", middleware.Authenticate(userdata.GetUserData))
}

func AddSpotRoutes(router *httprouter.Router) {
	router.GET("/api/spots/spots", spots.GetSpots)
	router.POST("/api/spots/spot", ratelim.RateLimit(middleware.Authenticate(spots.CreateSpot)))
	router.GET("/api/spots/nearby", spots.GetNearbySpots)
	router.GET("/api/spots/trending-tags", spots.GetTrendingTags)
	router.GET("/api/spots/saved", middleware.Authenticate(spots.GetSavedSpots))
	router.GET("/api/spots/trip-sheet", middleware.Authenticate(spots.ExportTripSheet))
	router.GET("/api/spots/spot/:spotid", middleware.OptionalAuth(spots.GetSpot))
	router.PUT("/api/spots/spot/:spotid", middleware.Authenticate(spots.EditSpot))
	router.DELETE("/api/spots/spot/:spotid", middleware.Authenticate(spots.DeleteSpot))

	router.POST("/api/spots/spot/:spotid/like", ratelim.RateLimit(middleware.Authenticate(spots.LikeSpot)))
	router.DELETE("/api/spots/spot/:spotid/like", ratelim.RateLimit(middleware.Authenticate(spots.UnlikeSpot)))
	router.POST("/api/spots/spot/:spotid/save", middleware.Authenticate(spots.SaveSpot))
	router.DELETE("/api/spots/spot/:spotid/save", middleware.Authenticate(spots.UnsaveSpot))
	router.GET("/api/spots/spot/:spotid/qr", spots.ShareSpotQR)

	router.GET("/api/spots/spot/:spotid/reviews", reviews.GetReviews)
	router.POST("/api/spots/spot/:spotid/reviews", ratelim.RateLimit(middleware.Authenticate(reviews.AddReview)))
	router.DELETE("/api/spots/spot/:spotid/reviews/:reviewid", middleware.Authenticate(reviews.DeleteReview))
}

func AddModerationRoutes(router *httprouter.Router) {
	router.GET("/api/moderation/spots", middleware.RequireRole("moderator", spots.GetPendingSpots))
	router.POST("/api/moderation/spots/:spotid/approve", middleware.RequireRole("moderator", spots.ApproveSpot))
	router.POST("/api/moderation/spots/:spotid/reject", middleware.RequireRole("moderator", spots.RejectSpot))

	router.GET("/api/moderation/reports", middleware.RequireRole("moderator", reports.GetReports))
	router.POST("/api/moderation/reports/:reportid", middleware.RequireRole("moderator", reports.ResolveReport))
}

func AddCommunityRoutes(router *httprouter.Router) {
	router.GET("/api/community/posts", posts.GetPosts)
	router.POST("/api/community/posts", ratelim.RateLimit(middleware.Authenticate(posts.CreatePost)))
	router.GET("/api/community/posts/:postid", posts.GetPost)
	router.DELETE("/api/community/posts/:postid", middleware.Authenticate(posts.DeletePost))
	router.POST("/api/community/posts/:postid/like", ratelim.RateLimit(middleware.Authenticate(posts.LikePost)))
	router.DELETE("/api/community/posts/:postid/like", ratelim.RateLimit(middleware.Authenticate(posts.UnlikePost)))
}

func AddCommentsRoutes(router *httprouter.Router) {
	router.POST("/api/comments/:entitytype/:entityid", ratelim.RateLimit(middleware.Authenticate(comments.CreateComment)))
	router.GET("/api/comments/:entitytype/:entityid", comments.GetComments)
	router.PUT("/api/comments/:entitytype/:entityid/:commentid", middleware.Authenticate(comments.UpdateComment))
	router.DELETE("/api/comments/:entitytype/:entityid/:commentid", middleware.Authenticate(comments.DeleteComment))
}

func AddReportRoutes(router *httprouter.Router) {
	router.POST("/api/reports", ratelim.RateLimit(middleware.Authenticate(reports.CreateReport)))
}

func AddFeedRoutes(router *httprouter.Router) {
	router.GET("/api/feed", middleware.Authenticate(feed.GetFeed))
	router.GET("/api/feed/suggestions", middleware.Authenticate(suggestions.SuggestFollowers))
}

func AddSearchRoutes(router *httprouter.Router) {
	router.GET("/api/search", search.SearchHandler)
	router.GET("/api/search/autocomplete", search.AutocompleteHandler)
}

func AddInterestsRoutes(router *httprouter.Router) {
	router.GET("/api/interests", interests.GetInterests)
	router.POST("/api/interests/seed", middleware.RequireRole("admin", interests.SeedInterests))
}

func AddWelcomeRoutes(router *httprouter.Router) {
	router.GET("/api/welcome", welcome.GetSlides)
	router.POST("/api/welcome", middleware.RequireRole("admin", welcome.CreateSlide))
	router.DELETE("/api/welcome/:slideid", middleware.RequireRole("admin", welcome.DeleteSlide))
}

func AddErrorRoutes(router *httprouter.Router) {
	router.POST("/api/errors", ratelim.RateLimit(middleware.OptionalAuth(errlog.ReportError)))
	router.GET("/api/errors", middleware.RequireRole("admin", errlog.GetErrors))
}

func AddAIRoutes(router *httprouter.Router) {
	router.POST("/api/ai/recommendations", middleware.OptionalAuth(agi.GetRecommendations))
	router.POST("/api/ai/prompt", ratelim.RateLimit(middleware.Authenticate(agi.PromptProxy)))
}

func AddNotificationRoutes(router *httprouter.Router, hub *notify.Hub) {
	router.GET("/api/notifications", middleware.Authenticate(notify.GetNotifications))
	router.POST("/api/notifications/read-all", middleware.Authenticate(notify.MarkAllRead))
	router.POST("/api/notifications/read/:notifid", middleware.Authenticate(notify.MarkRead))

	router.GET("/ws/notifications/:room", notify.WebSocketHandler(hub))
}

// RoutesWrapper wires every route group except the notification routes, which
// need the hub and are added in main.
func RoutesWrapper(router *httprouter.Router) {
	AddAuthRoutes(router)
	AddProfileRoutes(router)
	AddSpotRoutes(router)
	AddModerationRoutes(router)
	AddCommunityRoutes(router)
	AddCommentsRoutes(router)
	AddReportRoutes(router)
	AddFeedRoutes(router)
	AddSearchRoutes(router)
	AddInterestsRoutes(router)
	AddWelcomeRoutes(router)
	AddErrorRoutes(router)
	AddAIRoutes(router)
	AddStaticRoutes(router)
}
