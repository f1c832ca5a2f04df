package http

import (
	"github.com/alliyn/alliyn-backend/internal/delivery/http/handler"
	"github.com/alliyn/alliyn-backend/internal/delivery/http/middleware"
	"github.com/gin-gonic/gin"
)

type Router struct {
	authHandler         *handler.AuthHandler
	profileHandler      *handler.ProfileHandler
	feedHandler         *handler.FeedHandler
	swipeHandler        *handler.SwipeHandler
	goalsHandler        *handler.GoalsHandler
	conversationHandler *handler.ConversationHandler
	walletHandler       *handler.WalletHandler
	dealsHandler        *handler.DealsHandler
	notificationHandler *handler.NotificationHandler
	authMiddleware      *middleware.AuthMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	profileHandler *handler.ProfileHandler,
	feedHandler *handler.FeedHandler,
	swipeHandler *handler.SwipeHandler,
	goalsHandler *handler.GoalsHandler,
	conversationHandler *handler.ConversationHandler,
	walletHandler *handler.WalletHandler,
	dealsHandler *handler.DealsHandler,
	notificationHandler *handler.NotificationHandler,
	authMiddleware *middleware.AuthMiddleware,
) *Router {
	return &Router{
		authHandler:         authHandler,
		profileHandler:      profileHandler,
		feedHandler:         feedHandler,
		swipeHandler:        swipeHandler,
		goalsHandler:        goalsHandler,
		conversationHandler: conversationHandler,
		walletHandler:       walletHandler,
		dealsHandler:        dealsHandler,
		notificationHandler: notificationHandler,
		authMiddleware:      authMiddleware,
	}
}

func (r *Router) Setup() *gin.Engine {
	router := gin.Default()

	// Health check (supports both GET and HEAD)
	healthHandler := func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	}
	router.GET("/health", healthHandler)
	router.HEAD("/health", healthHandler)

	v1 := router.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/test", r.authHandler.TestAuth)
			auth.GET("/me", r.authMiddleware.RequireAuth(), r.authHandler.Me)
		}

		protected := v1.Group("")
		protected.Use(r.authMiddleware.RequireAuth())
		{
			profile := protected.Group("/profile")
			{
				profile.GET("/me", r.profileHandler.GetMyProfile)
				profile.PUT("/me", r.profileHandler.UpdateMyProfile)
			}

			account := protected.Group("/account")
			{
				account.POST("/upgrade", r.profileHandler.Upgrade)
				account.POST("/toggle-status", r.profileHandler.ToggleStatus)
				account.GET("/limits", r.profileHandler.Limits)
			}

			feed := protected.Group("/feed")
			{
				feed.GET("/next", r.feedHandler.GetNextProfile)
				feed.GET("/candidates", r.feedHandler.GetCandidates)
				feed.POST("/reset", r.feedHandler.ResetHistory)
			}

			protected.POST("/swipe", r.swipeHandler.CreateSwipe)

			matches := protected.Group("/matches")
			{
				matches.GET("", r.swipeHandler.GetMatches)
				matches.POST("/auto", r.swipeHandler.AutoMatch)
			}

			goals := protected.Group("/goals")
			{
				goals.GET("", r.goalsHandler.GetGoals)
				goals.GET("/:goal_id/progress", r.goalsHandler.GetProgress)
			}
			protected.GET("/achievements", r.goalsHandler.GetAchievements)

			conversations := protected.Group("/conversations")
			{
				conversations.GET("", r.conversationHandler.GetConversations)
				conversations.POST("/viewed", r.conversationHandler.MarkMatchesAsViewed)
				conversations.GET("/:id", r.conversationHandler.GetConversation)
				conversations.POST("/:id/messages", r.conversationHandler.SendMessage)
				conversations.POST("/:id/read", r.conversationHandler.MarkAsRead)
			}

			wallet := protected.Group("/wallet")
			{
				wallet.GET("", r.walletHandler.GetWallet)
				wallet.POST("/deposit", r.walletHandler.Deposit)
				wallet.POST("/withdraw", r.walletHandler.Withdraw)
			}

			shop := protected.Group("/shop")
			{
				shop.GET("/catalog", r.walletHandler.Catalog)
				shop.POST("/gift", r.walletHandler.SendGift)
				shop.POST("/profile-card", r.walletHandler.BuyProfileCard)
			}

			deals := protected.Group("/deals")
			{
				deals.GET("", r.dealsHandler.ListDeals)
				deals.POST("", r.dealsHandler.CreateDeal)
				deals.GET("/leaderboard", r.dealsHandler.Leaderboard)
				deals.PATCH("/:id", r.dealsHandler.UpdateDeal)
			}

			notifications := protected.Group("/notifications")
			{
				notifications.GET("", r.notificationHandler.GetNotifications)
				notifications.POST("/read", r.notificationHandler.MarkAllRead)
			}
		}
	}

	return router
}
