package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/zkpolls/zkpolls-backend/internal/handlers"
)

func RegisterAuthRoutes(rg *gin.RouterGroup, handler *handlers.AuthHandler) {
	rg.POST("/connectWallet", handler.ConnectWallet)
}

func RegisterPublicPollRoutes(rg *gin.RouterGroup, handler *handlers.PollsHandler) {
	rg.GET("/allPublicPolls", handler.AllPublicPolls)
}

func RegisterPrivatePollRoutes(rg *gin.RouterGroup, handler *handlers.PollsHandler) {
	rg.POST("/createPoll", handler.CreatePoll)
	rg.POST("/voteInPoll", handler.VoteInPoll)
	rg.POST("/voteAnonymous", handler.VoteAnonymous)
	rg.GET("/getCreatedPoll", handler.GetCreatedPoll)
	rg.GET("/getVotedPoll", handler.GetVotedPoll)
}

// RegisterDetailRoute is registered with optional auth: the response carries
// hasVoted only when the caller presented a valid credential.
func RegisterDetailRoute(rg *gin.RouterGroup, handler *handlers.PollsHandler) {
	rg.GET("/pollDetail/:pollId", handler.PollDetail)
}
