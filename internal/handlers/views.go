package handlers

import (
	"time"

	"github.com/zkpolls/zkpolls-backend/internal/entity"
)

type OptionView struct {
	Name      string `json:"name"`
	VoteCount int64  `json:"voteCount"`
}

type OnChainView struct {
	PollID     string  `json:"pollId"`
	TotalVotes int64   `json:"totalVotes"`
	Tallies    []int64 `json:"tallies"`
}

// PollView is the wire shape of a poll. Voter ids and nullifiers are never
// serialized; membership surfaces only as the derived hasVoted flag.
// isActive is recomputed from the voting window at render time rather than
// echoing the stored hint.
type PollView struct {
	PollID      string       `json:"pollId"`
	Question    string       `json:"question"`
	Description string       `json:"description"`
	Img         string       `json:"img"`
	Options     []OptionView `json:"options"`
	Visibility  string       `json:"visibility"`
	VotingMode  string       `json:"votingMode"`
	Creator     string       `json:"creator"`
	StartTime   int64        `json:"startTime"`
	EndTime     int64        `json:"endTime"`
	TotalVotes  int64        `json:"totalVotes"`
	IsActive    bool         `json:"isActive"`
	HasVoted    *bool        `json:"hasVoted,omitempty"`
	OnChain     *OnChainView `json:"onChain,omitempty"`
}

func newPollView(poll entity.Poll) PollView {
	options := make([]OptionView, len(poll.Options))
	for i, opt := range poll.Options {
		options[i] = OptionView{Name: opt.Name, VoteCount: opt.VoteCount}
	}

	return PollView{
		PollID:      poll.PollID,
		Question:    poll.Question,
		Description: poll.Description,
		Img:         poll.ImageURL,
		Options:     options,
		Visibility:  string(poll.Visibility),
		VotingMode:  string(poll.VotingMode),
		Creator:     poll.CreatorWallet,
		StartTime:   poll.StartTime,
		EndTime:     poll.EndTime,
		TotalVotes:  poll.TotalVotes,
		IsActive:    poll.ActiveAt(time.Now().UnixMilli()),
	}
}

func newPollViews(polls []entity.Poll) []PollView {
	views := make([]PollView, len(polls))
	for i, poll := range polls {
		views[i] = newPollView(poll)
	}
	return views
}
