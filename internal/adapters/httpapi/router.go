package httpapi

import (
	"context"
	"time"

	tweetEntity "chirp/internal/core/tweet"
	tweetapp "chirp/internal/core/tweet/service"
	engagementPort "chirp/internal/ports/engagement"
	tokenPort "chirp/internal/ports/token"
	tweetPort "chirp/internal/ports/tweet"
	userPort "chirp/internal/ports/user"

	"github.com/gin-gonic/gin"
)

// Inbound ports: what the controllers need from the application services.

type AuthUseCase interface {
	Register(ctx context.Context, name, email, password string, dateOfBirth *time.Time) (*tokenPort.TokenPair, error)
	Login(ctx context.Context, email, password string) (*tokenPort.TokenPair, error)
	Logout(ctx context.Context, refreshToken string) error
	Refresh(ctx context.Context, refreshToken string) (*tokenPort.TokenPair, error)
	OAuthGoogle(ctx context.Context, code string) (*tokenPort.TokenPair, error)
	CheckEmailExists(ctx context.Context, email string) (bool, error)
}

type UserUseCase interface {
	GetProfile(ctx context.Context, userID string) (*userPort.ProfileDTO, error)
	UpdateProfile(ctx context.Context, userID string, body *userPort.UpdateProfileDTO) (*userPort.ProfileDTO, error)
	GetUserInfo(ctx context.Context, username string) (*userPort.PublicUserDTO, error)
	Follow(ctx context.Context, userID, followedUserID string) error
	Unfollow(ctx context.Context, userID, followedUserID string) error
	VerifyEmail(ctx context.Context, token string) (bool, error)
	SendVerifyEmail(ctx context.Context, userID string) error
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, password string) error
	ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error
}

type TweetUseCase interface {
	CreateTweet(ctx context.Context, userID string, body *tweetapp.CreateTweetDTO) (*tweetEntity.Tweet, error)
	LikeTweet(ctx context.Context, userID, tweetID string) (*engagementPort.LikeDTO, error)
	UnlikeTweet(ctx context.Context, userID, tweetID string) error
	BookmarkTweet(ctx context.Context, userID, tweetID string) (*engagementPort.BookmarkDTO, error)
	UnbookmarkTweet(ctx context.Context, userID, tweetID string) error
}

type FeedUseCase interface {
	GetTweetDetail(ctx context.Context, tweetID, callerID string) (*tweetPort.TweetView, error)
	GetTweetChildren(ctx context.Context, tweetID string, childType tweetEntity.Type, page, limit int, callerID string) (*tweetPort.TweetPage, error)
	GetNewFeeds(ctx context.Context, callerID string, page, limit int) (*tweetPort.TweetPage, error)
	Search(ctx context.Context, q tweetPort.SearchQuery) (*tweetPort.TweetPage, error)
}

// SetupRoutes wires every route; use cases are injected from outside.
func SetupRoutes(
	authUC AuthUseCase,
	userUC UserUseCase,
	tweetUC TweetUseCase,
	feedUC FeedUseCase,
	verifier TokenVerifier,
	users userPort.UserRepository,
	uploadDir string,
) *gin.Engine {
	r := gin.Default()

	ac := NewAuthController(authUC)
	uc := NewUserController(userUC)
	tc := NewTweetController(tweetUC, feedUC)
	bc := NewBookmarkController(tweetUC)
	sc := NewSearchController(feedUC)
	mc := NewMediaController(uploadDir)
	stc := NewStaticController(uploadDir)

	auth := RequireAuth(verifier)
	optional := OptionalAuth(verifier)
	verified := RequireVerified(users)

	auths := r.Group("/auths")
	{
		auths.POST("/register", ac.Register)
		auths.POST("/login", ac.Login)
		auths.POST("/logout", auth, ac.Logout)
		auths.POST("/refresh-token", ac.RefreshToken)
		auths.POST("/oauth/google", ac.OAuthGoogle)
	}

	usersGroup := r.Group("/users")
	{
		usersGroup.GET("/profile", auth, uc.GetProfile)
		usersGroup.PATCH("/profile", auth, verified, uc.UpdateProfile)
		usersGroup.GET("/:username", uc.GetUserInfo)
		usersGroup.POST("/follow", auth, verified, uc.Follow)
		usersGroup.DELETE("/follow/:user_id", auth, verified, uc.Unfollow)
		usersGroup.POST("/verify-email", uc.VerifyEmail)
		usersGroup.POST("/send-verify-email", auth, uc.SendVerifyEmail)
		usersGroup.POST("/forgot-password", uc.ForgotPassword)
		usersGroup.POST("/reset-password", uc.ResetPassword)
		usersGroup.PUT("/change-password", auth, verified, uc.ChangePassword)
	}

	tweets := r.Group("/tweets")
	{
		tweets.POST("", auth, verified, tc.CreateTweet)
		tweets.GET("/new-feeds", auth, verified, tc.GetNewFeeds)
		tweets.GET("/detail/:tweet_id", optional, verified, tc.GetTweetDetail)
		tweets.GET("/children/:tweet_id", optional, verified, tc.GetTweetChildren)
		tweets.POST("/like", auth, verified, tc.LikeTweet)
		tweets.DELETE("/unlike/:tweet_id", auth, verified, tc.UnlikeTweet)
	}

	bookmarks := r.Group("/bookmarks")
	{
		bookmarks.POST("", auth, verified, bc.BookmarkTweet)
		bookmarks.DELETE("/tweets/:tweet_id", auth, verified, bc.UnbookmarkTweet)
	}

	r.GET("/searchs", auth, verified, sc.Search)

	medias := r.Group("/medias")
	{
		medias.POST("/upload-image", auth, verified, mc.UploadImage)
		medias.POST("/upload-video", auth, verified, mc.UploadVideo)
	}

	statics := r.Group("/statics")
	{
		statics.GET("/images/:name", stc.ServeImage)
		statics.GET("/videos/:name", stc.ServeVideo)
	}

	return r
}
