package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"time"

	"github.com/zkpolls/zkpolls-backend/internal/entity"
	"github.com/zkpolls/zkpolls-backend/internal/verifier"
	"github.com/zkpolls/zkpolls-backend/utils"
)

var (
	ErrValidation          = errors.New("validation error")
	ErrPollNotActive       = errors.New("poll is not active")
	ErrWrongVotingMode     = errors.New("wrong voting mode for this poll")
	ErrInvalidProof        = errors.New("proof verification failed")
	ErrVerifierUnavailable = errors.New("proof verifier unavailable")
)

const (
	minOptions = 2
	maxOptions = 10
)

type PollStorage interface {
	SavePoll(ctx context.Context, poll entity.Poll) (int64, error)
	PollByPollID(ctx context.Context, pollID string) (entity.Poll, error)
	RecordVote(ctx context.Context, pollRef int64, optionIdx int, userID int64) (int64, error)
	RecordAnonymousVote(ctx context.Context, pollRef int64, optionIdx int, nullifier string) (int64, error)
	PublicPolls(ctx context.Context, nowMillis int64) ([]entity.Poll, error)
	PollsByCreator(ctx context.Context, userID int64) ([]entity.Poll, error)
	PollsByVoter(ctx context.Context, userID int64) ([]entity.Poll, error)
	HasVoted(ctx context.Context, pollRef int64, userID int64) (bool, error)
}

type MediaStore interface {
	Upload(ctx context.Context, name, contentType string, body io.Reader) (string, error)
}

type ProofVerifier interface {
	Verify(ctx context.Context, payload verifier.Payload) (bool, error)
}

type LedgerReader interface {
	Poll(ctx context.Context, pollID string) (entity.OnChainPoll, error)
}

// Polls owns the poll lifecycle: creation, both vote paths and the read
// projections.
type Polls struct {
	log         *slog.Logger
	pollStorage PollStorage
	media       MediaStore
	verifier    ProofVerifier
	ledger      LedgerReader
}

// NewPolls wires the poll service. ledger may be nil when no contract
// gateway is configured; verifier may be nil, in which case anonymous votes
// always fail hard.
func NewPolls(
	log *slog.Logger,
	pollStorage PollStorage,
	media MediaStore,
	proofVerifier ProofVerifier,
	ledgerReader LedgerReader,
) *Polls {
	return &Polls{
		log:         log,
		pollStorage: pollStorage,
		media:       media,
		verifier:    proofVerifier,
		ledger:      ledgerReader,
	}
}

type MediaUpload struct {
	Name        string
	ContentType string
	Body        io.Reader
}

type CreatePollInput struct {
	Question    string
	Description string
	Options     []string
	Visibility  string
	VotingMode  string
	StartTime   int64 // unix millis
	EndTime     int64 // unix millis
	Image       *MediaUpload
	CreatorID   int64
}

// CreatePoll validates the input, uploads the poll image and persists the
// poll with zeroed tallies. The voting mode is fixed here for the poll's
// lifetime. A failed persist after a successful upload leaves the object
// behind; there is no compensating delete.
func (p *Polls) CreatePoll(ctx context.Context, input CreatePollInput) (entity.Poll, error) {
	const op = "services.Polls.CreatePoll"

	log := p.log.With(slog.String("op", op), slog.Int64("creatorID", input.CreatorID))

	if input.Question == "" {
		return entity.Poll{}, fmt.Errorf("%w: a poll must have a question", ErrValidation)
	}
	if len(input.Options) < minOptions || len(input.Options) > maxOptions {
		return entity.Poll{}, fmt.Errorf("%w: a poll must have between %d and %d options", ErrValidation, minOptions, maxOptions)
	}
	for _, name := range input.Options {
		if name == "" {
			return entity.Poll{}, fmt.Errorf("%w: option names must not be empty", ErrValidation)
		}
	}
	if input.EndTime <= input.StartTime {
		return entity.Poll{}, fmt.Errorf("%w: endTime must be after startTime", ErrValidation)
	}
	if input.Image == nil {
		return entity.Poll{}, fmt.Errorf("%w: no file uploaded", ErrValidation)
	}

	visibility := entity.Visibility(input.Visibility)
	switch visibility {
	case "":
		visibility = entity.VisibilityPublic
	case entity.VisibilityPublic, entity.VisibilityPrivate:
	default:
		return entity.Poll{}, fmt.Errorf("%w: unknown visibility %q", ErrValidation, input.Visibility)
	}

	mode := entity.VotingMode(input.VotingMode)
	switch mode {
	case "":
		mode = entity.VotingModeNamed
	case entity.VotingModeNamed, entity.VotingModeAnonymous:
	default:
		return entity.Poll{}, fmt.Errorf("%w: unknown voting mode %q", ErrValidation, input.VotingMode)
	}

	imageURL, err := p.media.Upload(ctx, input.Image.Name, input.Image.ContentType, input.Image.Body)
	if err != nil {
		log.Error("media upload failed", utils.Err(err))
		return entity.Poll{}, fmt.Errorf("%s: %w", op, err)
	}

	options := make([]entity.Option, len(input.Options))
	for i, name := range input.Options {
		options[i] = entity.Option{Name: name}
	}

	poll := entity.Poll{
		PollID:      newPollID(),
		Question:    input.Question,
		Description: input.Description,
		ImageURL:    imageURL,
		Options:     options,
		Visibility:  visibility,
		VotingMode:  mode,
		CreatorID:   input.CreatorID,
		StartTime:   input.StartTime,
		EndTime:     input.EndTime,
		IsActive:    true,
	}

	id, err := p.pollStorage.SavePoll(ctx, poll)
	if err != nil {
		log.Error("failed to save poll", utils.Err(err))
		return entity.Poll{}, fmt.Errorf("%s: %w", op, err)
	}
	poll.ID = id

	log.Info("poll created", slog.String("pollID", poll.PollID))

	return poll, nil
}

// Vote records a named-mode vote. Activity is derived from the time window,
// never from the stored flag. Duplicate detection is delegated to the
// storage layer's atomic insert so concurrent identical requests cannot both
// pass.
func (p *Polls) Vote(ctx context.Context, pollID string, optionIndex int, userID int64) (entity.Poll, error) {
	const op = "services.Polls.Vote"

	log := p.log.With(slog.String("op", op), slog.String("pollID", pollID), slog.Int64("userID", userID))

	poll, err := p.pollStorage.PollByPollID(ctx, pollID)
	if err != nil {
		return entity.Poll{}, fmt.Errorf("%s: %w", op, err)
	}

	if poll.VotingMode != entity.VotingModeNamed {
		return entity.Poll{}, fmt.Errorf("%w: poll %s accepts anonymous votes only", ErrWrongVotingMode, pollID)
	}
	if !poll.ActiveAt(time.Now().UnixMilli()) {
		return entity.Poll{}, fmt.Errorf("%s: %w", op, ErrPollNotActive)
	}
	if optionIndex < 0 || optionIndex >= len(poll.Options) {
		return entity.Poll{}, fmt.Errorf("%w: option index %d out of range", ErrValidation, optionIndex)
	}

	if _, err := p.pollStorage.RecordVote(ctx, poll.ID, optionIndex, userID); err != nil {
		return entity.Poll{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("vote recorded", slog.Int("optionIndex", optionIndex))

	updated, err := p.pollStorage.PollByPollID(ctx, pollID)
	if err != nil {
		return entity.Poll{}, fmt.Errorf("%s: %w", op, err)
	}

	return updated, nil
}

// VoteAnonymous records an anonymous-mode vote. The proof is verified before
// the nullifier is written; an unreachable verifier fails the vote, it is
// never treated as an accept.
func (p *Polls) VoteAnonymous(ctx context.Context, pollID string, optionIndex int, proof verifier.Payload) (string, int64, error) {
	const op = "services.Polls.VoteAnonymous"

	log := p.log.With(slog.String("op", op), slog.String("pollID", pollID))

	poll, err := p.pollStorage.PollByPollID(ctx, pollID)
	if err != nil {
		return "", 0, fmt.Errorf("%s: %w", op, err)
	}

	if poll.VotingMode != entity.VotingModeAnonymous {
		return "", 0, fmt.Errorf("%w: poll %s accepts named votes only", ErrWrongVotingMode, pollID)
	}
	if !poll.ActiveAt(time.Now().UnixMilli()) {
		return "", 0, fmt.Errorf("%s: %w", op, ErrPollNotActive)
	}
	if optionIndex < 0 || optionIndex >= len(poll.Options) {
		return "", 0, fmt.Errorf("%w: option index %d out of range", ErrValidation, optionIndex)
	}
	if proof.Nullifier == "" {
		return "", 0, fmt.Errorf("%w: nullifier is required", ErrValidation)
	}

	if p.verifier == nil {
		return "", 0, fmt.Errorf("%s: %w", op, ErrVerifierUnavailable)
	}

	proof.PollID = pollID
	proof.OptionIndex = optionIndex

	valid, err := p.verifier.Verify(ctx, proof)
	if err != nil {
		log.Error("verifier call failed", utils.Err(err))
		return "", 0, fmt.Errorf("%s: %w", op, ErrVerifierUnavailable)
	}
	if !valid {
		log.Warn("proof rejected", slog.String("nullifier", proof.Nullifier))
		return "", 0, fmt.Errorf("%s: %w", op, ErrInvalidProof)
	}

	total, err := p.pollStorage.RecordAnonymousVote(ctx, poll.ID, optionIndex, proof.Nullifier)
	if err != nil {
		return "", 0, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("anonymous vote recorded", slog.Int("optionIndex", optionIndex))

	return poll.PollID, total, nil
}

// PublicPolls lists public polls whose voting window covers now.
func (p *Polls) PublicPolls(ctx context.Context) ([]entity.Poll, error) {
	const op = "services.Polls.PublicPolls"

	polls, err := p.pollStorage.PublicPolls(ctx, time.Now().UnixMilli())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return polls, nil
}

func (p *Polls) PollsByCreator(ctx context.Context, userID int64) ([]entity.Poll, error) {
	const op = "services.Polls.PollsByCreator"

	polls, err := p.pollStorage.PollsByCreator(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return polls, nil
}

func (p *Polls) PollsByVoter(ctx context.Context, userID int64) ([]entity.Poll, error) {
	const op = "services.Polls.PollsByVoter"

	polls, err := p.pollStorage.PollsByVoter(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return polls, nil
}

// PollDetail is the single-poll read shape: the poll, whether the given user
// already voted (nil userID means unauthenticated), and the ledger's view of
// the poll when a gateway is configured. Ledger unavailability degrades the
// response, it never fails it.
func (p *Polls) PollDetail(ctx context.Context, pollID string, userID *int64) (entity.Poll, bool, *entity.OnChainPoll, error) {
	const op = "services.Polls.PollDetail"

	poll, err := p.pollStorage.PollByPollID(ctx, pollID)
	if err != nil {
		return entity.Poll{}, false, nil, fmt.Errorf("%s: %w", op, err)
	}

	var hasVoted bool
	if userID != nil {
		hasVoted, err = p.pollStorage.HasVoted(ctx, poll.ID, *userID)
		if err != nil {
			return entity.Poll{}, false, nil, fmt.Errorf("%s: %w", op, err)
		}
	}

	var onChain *entity.OnChainPoll
	if p.ledger != nil {
		state, err := p.ledger.Poll(ctx, pollID)
		if err != nil {
			p.log.Warn("ledger lookup failed", slog.String("op", op), slog.String("pollID", pollID), utils.Err(err))
		} else {
			onChain = &state
		}
	}

	return poll, hasVoted, onChain, nil
}

// newPollID builds the externally visible poll id: a base36 timestamp token
// plus a random suffix so same-millisecond creations cannot collide.
func newPollID() string {
	suffix := make([]byte, 3)
	if _, err := rand.Read(suffix); err != nil {
		// fall back to nanosecond entropy
		return "poll_" + strconv.FormatInt(time.Now().UnixNano(), 36)
	}
	return "poll_" + strconv.FormatInt(time.Now().UnixMilli(), 36) + "_" + hex.EncodeToString(suffix)
}
