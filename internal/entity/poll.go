package entity

import "time"

type Visibility string

const (
	VisibilityPublic  Visibility = "Public"
	VisibilityPrivate Visibility = "Private"
)

// VotingMode is fixed at creation time. A named poll deduplicates votes by
// voter id, an anonymous poll by nullifier. A poll never switches mode.
type VotingMode string

const (
	VotingModeNamed     VotingMode = "named"
	VotingModeAnonymous VotingMode = "anonymous"
)

type Option struct {
	Name      string
	VoteCount int64
}

type Poll struct {
	ID            int64 // internal row id
	PollID        string
	Question      string
	Description   string
	ImageURL      string
	Options       []Option
	Visibility    Visibility
	VotingMode    VotingMode
	CreatorID     int64
	CreatorWallet string
	StartTime     int64 // unix millis
	EndTime       int64 // unix millis
	IsActive      bool
	TotalVotes    int64
	CreatedAt     time.Time
}

// ActiveAt reports whether the voting window covers the given instant.
// The stored IsActive flag is a hint refreshed by the sweeper; the window
// is the source of truth.
func (p Poll) ActiveAt(nowMillis int64) bool {
	return p.StartTime <= nowMillis && nowMillis <= p.EndTime
}

// OnChainPoll is the ledger's view of a poll, matched by PollID.
// It is merged into read responses for display only.
type OnChainPoll struct {
	PollID     string
	TotalVotes int64
	Tallies    []int64
}
