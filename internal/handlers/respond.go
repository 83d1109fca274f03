package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/zkpolls/zkpolls-backend/internal/services"
	"github.com/zkpolls/zkpolls-backend/internal/storage"
)

// Error codes of the uniform failure envelope {success:false, errorCode, message}.
const (
	codeValidation      = "VALIDATION_ERROR"
	codeUnauthenticated = "UNAUTHENTICATED"
	codeNotFound        = "NOT_FOUND"
	codePollInactive    = "POLL_INACTIVE"
	codeAlreadyVoted    = "ALREADY_VOTED"
	codeDuplicateVote   = "DUPLICATE_VOTE"
	codeInvalidProof    = "INVALID_PROOF"
	codeInternal        = "INTERNAL"
)

func respondError(c *gin.Context, err error) {
	status, code, message := classify(err)
	c.JSON(status, gin.H{
		"success":   false,
		"errorCode": code,
		"message":   message,
	})
}

func classify(err error) (int, string, string) {
	switch {
	case errors.Is(err, services.ErrWalletRequired):
		return http.StatusBadRequest, codeValidation, "Wallet address is required"
	case errors.Is(err, services.ErrValidation):
		return http.StatusBadRequest, codeValidation, err.Error()
	case errors.Is(err, services.ErrWrongVotingMode):
		return http.StatusBadRequest, codeValidation, "Wrong voting mode for this poll"
	case errors.Is(err, services.ErrPollNotActive):
		return http.StatusBadRequest, codePollInactive, "Poll is not active"
	case errors.Is(err, services.ErrInvalidProof):
		return http.StatusBadRequest, codeInvalidProof, "Proof verification failed"
	case errors.Is(err, storage.ErrAlreadyVoted):
		return http.StatusBadRequest, codeAlreadyVoted, "You have already voted"
	case errors.Is(err, storage.ErrDuplicateNullifier):
		return http.StatusBadRequest, codeDuplicateVote, "This vote has already been cast (nullifier exists)"
	case errors.Is(err, storage.ErrOptionNotFound):
		return http.StatusBadRequest, codeValidation, "Invalid option index"
	case errors.Is(err, storage.ErrPollNotFound):
		return http.StatusNotFound, codeNotFound, "Poll not found"
	case errors.Is(err, storage.ErrUserNotFound), errors.Is(err, services.ErrInvalidToken):
		return http.StatusUnauthorized, codeUnauthenticated, "User not authenticated"
	default:
		return http.StatusInternalServerError, codeInternal, "Failed to perform task"
	}
}
