package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/zkpolls/zkpolls-backend/internal/middleware"
	"github.com/zkpolls/zkpolls-backend/internal/services"
	"github.com/zkpolls/zkpolls-backend/internal/verifier"
)

type PollsHandler struct {
	polls *services.Polls
}

type VoteRequest struct {
	PollID      string `json:"pollId" binding:"required"`
	OptionIndex *int   `json:"optionIndex" binding:"required"`
}

type VoteAnonymousRequest struct {
	PollID        string          `json:"pollId" binding:"required"`
	OptionIndex   *int            `json:"optionIndex" binding:"required"`
	Proof         json.RawMessage `json:"proof"`
	Nullifier     string          `json:"nullifier" binding:"required"`
	PublicSignals json.RawMessage `json:"publicSignals"`
}

func NewPollsHandler(polls *services.Polls) *PollsHandler {
	return &PollsHandler{polls: polls}
}

// CreatePoll handles the multipart creation form: text fields plus exactly
// one image under the image0 field.
func (h *PollsHandler) CreatePoll(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		respondUnauthenticated(c)
		return
	}

	options, err := parseOptions(c.PostForm("options"))
	if err != nil {
		respondError(c, err)
		return
	}

	startTime, err := strconv.ParseInt(c.DefaultPostForm("startTime", "0"), 10, 64)
	if err != nil {
		respondError(c, fmt.Errorf("%w: invalid startTime", services.ErrValidation))
		return
	}
	endTime, err := strconv.ParseInt(c.DefaultPostForm("endTime", "0"), 10, 64)
	if err != nil {
		respondError(c, fmt.Errorf("%w: invalid endTime", services.ErrValidation))
		return
	}

	input := services.CreatePollInput{
		Question:    c.PostForm("question"),
		Description: c.PostForm("description"),
		Options:     options,
		Visibility:  c.PostForm("visibility"),
		VotingMode:  c.PostForm("votingMode"),
		StartTime:   startTime,
		EndTime:     endTime,
		CreatorID:   userID,
	}

	file, err := c.FormFile("image0")
	if err == nil {
		src, openErr := file.Open()
		if openErr != nil {
			respondError(c, openErr)
			return
		}
		defer src.Close()

		input.Image = &services.MediaUpload{
			Name:        file.Filename,
			ContentType: file.Header.Get("Content-Type"),
			Body:        src,
		}
	}

	poll, err := h.polls.CreatePoll(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":  true,
		"message":  "Poll created successfully",
		"poll":     newPollView(poll),
		"imageUrl": poll.ImageURL,
	})
}

func (h *PollsHandler) VoteInPoll(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		respondUnauthenticated(c)
		return
	}

	var req VoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, fmt.Errorf("%w: pollId and optionIndex are required", services.ErrValidation))
		return
	}

	poll, err := h.polls.Vote(c.Request.Context(), req.PollID, *req.OptionIndex, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Vote recorded successfully",
		"poll":    newPollView(poll),
	})
}

func (h *PollsHandler) VoteAnonymous(c *gin.Context) {
	if _, ok := callerID(c); !ok {
		respondUnauthenticated(c)
		return
	}

	var req VoteAnonymousRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, fmt.Errorf("%w: pollId, optionIndex and nullifier are required", services.ErrValidation))
		return
	}

	payload := verifier.Payload{
		Proof:         req.Proof,
		PublicSignals: req.PublicSignals,
		Nullifier:     req.Nullifier,
	}

	pollID, totalVotes, err := h.polls.VoteAnonymous(c.Request.Context(), req.PollID, *req.OptionIndex, payload)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Anonymous vote recorded successfully",
		"poll": gin.H{
			"pollId":     pollID,
			"totalVotes": totalVotes,
		},
	})
}

func (h *PollsHandler) AllPublicPolls(c *gin.Context) {
	polls, err := h.polls.PublicPolls(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "polls": newPollViews(polls)})
}

func (h *PollsHandler) GetCreatedPoll(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		respondUnauthenticated(c)
		return
	}

	polls, err := h.polls.PollsByCreator(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "polls": newPollViews(polls)})
}

func (h *PollsHandler) GetVotedPoll(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		respondUnauthenticated(c)
		return
	}

	polls, err := h.polls.PollsByVoter(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "polls": newPollViews(polls)})
}

// PollDetail works with or without a credential; hasVoted is included only
// for authenticated callers.
func (h *PollsHandler) PollDetail(c *gin.Context) {
	pollID := c.Param("pollId")

	var caller *int64
	if userID, ok := callerID(c); ok {
		caller = &userID
	}

	poll, hasVoted, onChain, err := h.polls.PollDetail(c.Request.Context(), pollID, caller)
	if err != nil {
		respondError(c, err)
		return
	}

	view := newPollView(poll)
	if caller != nil {
		view.HasVoted = &hasVoted
	}
	if onChain != nil {
		view.OnChain = &OnChainView{
			PollID:     onChain.PollID,
			TotalVotes: onChain.TotalVotes,
			Tallies:    onChain.Tallies,
		}
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "poll": view})
}

func callerID(c *gin.Context) (int64, bool) {
	value, exists := c.Get(middleware.CtxUserID)
	if !exists {
		return 0, false
	}
	id, ok := value.(int64)
	return id, ok
}

func respondUnauthenticated(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, gin.H{
		"success":   false,
		"errorCode": "UNAUTHENTICATED",
		"message":   "User not authenticated",
	})
}

// parseOptions accepts either a JSON array of strings or of {name} objects,
// mirroring what the web client sends in the multipart form.
func parseOptions(raw string) ([]string, error) {
	if raw == "" {
		return nil, fmt.Errorf("%w: options are required", services.ErrValidation)
	}

	var names []string
	if err := json.Unmarshal([]byte(raw), &names); err == nil {
		return names, nil
	}

	var objects []struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal([]byte(raw), &objects); err != nil {
		return nil, fmt.Errorf("%w: options must be a JSON array", services.ErrValidation)
	}

	names = make([]string, len(objects))
	for i, obj := range objects {
		names[i] = obj.Name
	}
	return names, nil
}
