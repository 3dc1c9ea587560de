package router

import (
	"medcard/internal/handler"
	"medcard/internal/middleware"

	"github.com/gin-gonic/gin"
)

type ProfileRouter struct {
	profileHandler      *handler.ProfileHandler
	authMiddleware      *middleware.Auth
	ratelimitMiddleware *middleware.RateLimit
}

func NewProfileRouter(
	profileHandler *handler.ProfileHandler,
	authMiddleware *middleware.Auth,
	ratelimitMiddleware *middleware.RateLimit,
) *ProfileRouter {
	return &ProfileRouter{
		profileHandler:      profileHandler,
		authMiddleware:      authMiddleware,
		ratelimitMiddleware: ratelimitMiddleware,
	}
}

func (profileRouter *ProfileRouter) RegisterRoutes(engine *gin.Engine) {
	router := engine.Group("/api/v1/profile")
	router.Use(profileRouter.authMiddleware.Handler())

	// 只有查詢受 rate limit；新增由 flood control 管
	router.GET("", profileRouter.ratelimitMiddleware.Guard(), profileRouter.profileHandler.GetProfile)
	router.POST("/share-token", profileRouter.profileHandler.RotateShareToken)
	router.PATCH("/birthday", profileRouter.profileHandler.ChangeBirthday)
	router.PATCH("/gender", profileRouter.profileHandler.ChangeGender)
	router.PATCH("/blood-type", profileRouter.profileHandler.ChangeBloodType)
	router.PATCH("/visibility", profileRouter.profileHandler.ChangeVisibility)

	diseases := router.Group("/diseases")
	{
		diseases.POST("", profileRouter.profileHandler.AddDisease)
		diseases.PUT("/:diseaseID", profileRouter.profileHandler.EditDisease)
		diseases.DELETE("/:diseaseID", profileRouter.profileHandler.DeleteDisease)
	}

	allergens := router.Group("/allergens")
	{
		allergens.POST("", profileRouter.profileHandler.AddAllergen)
		allergens.PUT("/:allergenID", profileRouter.profileHandler.EditAllergen)
		allergens.DELETE("/:allergenID", profileRouter.profileHandler.DeleteAllergen)
	}
}
