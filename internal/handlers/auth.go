package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/zkpolls/zkpolls-backend/internal/services"
)

type AuthHandler struct {
	auth *services.Auth
}

type ConnectWalletRequest struct {
	WalletAddress string `json:"walletAddress"`
}

func NewAuthHandler(auth *services.Auth) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// ConnectWallet resolves the wallet to a user and returns the credential in
// the body and as a cross-site session cookie, the way the web client
// expects it.
func (h *AuthHandler) ConnectWallet(c *gin.Context) {
	var req ConnectWalletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, services.ErrWalletRequired)
		return
	}

	user, token, err := h.auth.ConnectWallet(c.Request.Context(), req.WalletAddress)
	if err != nil {
		respondError(c, err)
		return
	}

	c.SetSameSite(http.SameSiteNoneMode)
	c.SetCookie("token", token, int(h.auth.TokenTTL().Seconds()), "/", "", true, false)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user": gin.H{
			"id":            user.ID,
			"walletAddress": user.WalletAddress,
		},
		"token": token,
	})
}
