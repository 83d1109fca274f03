package services

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zkpolls/zkpolls-backend/internal/entity"
	"github.com/zkpolls/zkpolls-backend/internal/services/mocks"
	"github.com/zkpolls/zkpolls-backend/internal/storage"
	"github.com/zkpolls/zkpolls-backend/internal/verifier"
	"github.com/zkpolls/zkpolls-backend/utils"
)

func newTestPolls(pollStorage PollStorage, media MediaStore, proofVerifier ProofVerifier, ledgerReader LedgerReader) *Polls {
	return NewPolls(utils.New("test"), pollStorage, media, proofVerifier, ledgerReader)
}

func activePoll(mode entity.VotingMode) entity.Poll {
	now := time.Now().UnixMilli()
	return entity.Poll{
		ID:         1,
		PollID:     "poll_test1",
		Question:   "Best option?",
		ImageURL:   "http://media/poll.png",
		Options:    []entity.Option{{Name: "A"}, {Name: "B"}},
		Visibility: entity.VisibilityPublic,
		VotingMode: mode,
		CreatorID:  5,
		StartTime:  now - 1000,
		EndTime:    now + 100000,
		IsActive:   true,
	}
}

func validCreateInput() CreatePollInput {
	now := time.Now().UnixMilli()
	return CreatePollInput{
		Question:    "Best option?",
		Description: "pick one",
		Options:     []string{"A", "B"},
		Visibility:  "Public",
		VotingMode:  "named",
		StartTime:   now - 1000,
		EndTime:     now + 100000,
		Image:       &MediaUpload{Name: "poll.png", ContentType: "image/png", Body: strings.NewReader("img")},
		CreatorID:   5,
	}
}

func TestPolls_CreatePoll_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	pollStorage := mocks.NewMockPollStorage(ctrl)
	media := mocks.NewMockMediaStore(ctrl)

	media.EXPECT().Upload(gomock.Any(), "poll.png", "image/png", gomock.Any()).
		Return("http://media/poll.png", nil)

	var saved entity.Poll
	pollStorage.EXPECT().SavePoll(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, poll entity.Poll) (int64, error) {
			saved = poll
			return 9, nil
		})

	polls := newTestPolls(pollStorage, media, nil, nil)

	poll, err := polls.CreatePoll(context.Background(), validCreateInput())
	require.NoError(t, err)

	assert.Equal(t, int64(9), poll.ID)
	assert.True(t, strings.HasPrefix(poll.PollID, "poll_"))
	assert.Equal(t, "http://media/poll.png", poll.ImageURL)
	assert.Equal(t, entity.VotingModeNamed, poll.VotingMode)
	assert.True(t, poll.IsActive)
	assert.Zero(t, poll.TotalVotes)

	require.Len(t, saved.Options, 2)
	assert.Equal(t, "A", saved.Options[0].Name)
	assert.Zero(t, saved.Options[0].VoteCount)
	assert.Equal(t, int64(5), saved.CreatorID)
}

func TestPolls_CreatePoll_DistinctIDs(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	pollStorage := mocks.NewMockPollStorage(ctrl)
	media := mocks.NewMockMediaStore(ctrl)

	media.EXPECT().Upload(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return("http://media/x", nil).Times(2)

	idFormat := regexp.MustCompile(`^poll_[0-9a-z]+_[0-9a-f]{6}$`)

	seen := make(map[string]bool)
	pollStorage.EXPECT().SavePoll(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, poll entity.Poll) (int64, error) {
			assert.False(t, seen[poll.PollID], "pollId must be unique")
			assert.Regexp(t, idFormat, poll.PollID)
			seen[poll.PollID] = true
			return 1, nil
		}).Times(2)

	polls := newTestPolls(pollStorage, media, nil, nil)

	for i := 0; i < 2; i++ {
		input := validCreateInput()
		input.Image.Body = strings.NewReader("img")
		_, err := polls.CreatePoll(context.Background(), input)
		require.NoError(t, err)
	}
}

func TestPolls_CreatePoll_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*CreatePollInput)
	}{
		{"missing question", func(in *CreatePollInput) { in.Question = "" }},
		{"too few options", func(in *CreatePollInput) { in.Options = []string{"A"} }},
		{"too many options", func(in *CreatePollInput) {
			in.Options = []string{"1", "2", "3", "4", "5", "6", "7", "8", "9", "10", "11"}
		}},
		{"empty option name", func(in *CreatePollInput) { in.Options = []string{"A", ""} }},
		{"end before start", func(in *CreatePollInput) { in.EndTime = in.StartTime - 1 }},
		{"no image", func(in *CreatePollInput) { in.Image = nil }},
		{"unknown visibility", func(in *CreatePollInput) { in.Visibility = "Hidden" }},
		{"unknown voting mode", func(in *CreatePollInput) { in.VotingMode = "hybrid" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			polls := newTestPolls(nil, nil, nil, nil)

			input := validCreateInput()
			tt.mutate(&input)

			_, err := polls.CreatePoll(context.Background(), input)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestPolls_CreatePoll_MediaUploadFails(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// no SavePoll expectation: a failed upload must abort before persisting
	pollStorage := mocks.NewMockPollStorage(ctrl)
	media := mocks.NewMockMediaStore(ctrl)

	media.EXPECT().Upload(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return("", errors.New("bucket unavailable"))

	polls := newTestPolls(pollStorage, media, nil, nil)

	_, err := polls.CreatePoll(context.Background(), validCreateInput())
	require.Error(t, err)
}

func TestPolls_Vote_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	poll := activePoll(entity.VotingModeNamed)
	voted := poll
	voted.TotalVotes = 1
	voted.Options = []entity.Option{{Name: "A", VoteCount: 1}, {Name: "B"}}

	pollStorage := mocks.NewMockPollStorage(ctrl)
	gomock.InOrder(
		pollStorage.EXPECT().PollByPollID(gomock.Any(), poll.PollID).Return(poll, nil),
		pollStorage.EXPECT().RecordVote(gomock.Any(), poll.ID, 0, int64(21)).Return(int64(1), nil),
		pollStorage.EXPECT().PollByPollID(gomock.Any(), poll.PollID).Return(voted, nil),
	)

	polls := newTestPolls(pollStorage, nil, nil, nil)

	got, err := polls.Vote(context.Background(), poll.PollID, 0, 21)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.TotalVotes)
	assert.Equal(t, int64(1), got.Options[0].VoteCount)
	assert.Zero(t, got.Options[1].VoteCount)
}

func TestPolls_Vote_AlreadyVoted(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	poll := activePoll(entity.VotingModeNamed)

	pollStorage := mocks.NewMockPollStorage(ctrl)
	pollStorage.EXPECT().PollByPollID(gomock.Any(), poll.PollID).Return(poll, nil)
	pollStorage.EXPECT().RecordVote(gomock.Any(), poll.ID, 0, int64(21)).
		Return(int64(0), storage.ErrAlreadyVoted)

	polls := newTestPolls(pollStorage, nil, nil, nil)

	_, err := polls.Vote(context.Background(), poll.PollID, 0, 21)
	require.Error(t, err)
	assert.ErrorIs(t, err, storage.ErrAlreadyVoted)
}

func TestPolls_Vote_PollNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	pollStorage := mocks.NewMockPollStorage(ctrl)
	pollStorage.EXPECT().PollByPollID(gomock.Any(), "poll_missing").
		Return(entity.Poll{}, storage.ErrPollNotFound)

	polls := newTestPolls(pollStorage, nil, nil, nil)

	_, err := polls.Vote(context.Background(), "poll_missing", 0, 21)
	require.Error(t, err)
	assert.ErrorIs(t, err, storage.ErrPollNotFound)
}

func TestPolls_Vote_OutsideWindow(t *testing.T) {
	now := time.Now().UnixMilli()

	tests := []struct {
		name       string
		start, end int64
	}{
		{"expired", now - 10000, now - 1},
		{"not started", now + 10000, now + 100000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			poll := activePoll(entity.VotingModeNamed)
			poll.StartTime = tt.start
			poll.EndTime = tt.end

			// no RecordVote expectation: a rejected vote must not mutate
			pollStorage := mocks.NewMockPollStorage(ctrl)
			pollStorage.EXPECT().PollByPollID(gomock.Any(), poll.PollID).Return(poll, nil)

			polls := newTestPolls(pollStorage, nil, nil, nil)

			_, err := polls.Vote(context.Background(), poll.PollID, 0, 21)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrPollNotActive)
		})
	}
}

func TestPolls_Vote_OptionIndexOutOfRange(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	poll := activePoll(entity.VotingModeNamed)

	pollStorage := mocks.NewMockPollStorage(ctrl)
	pollStorage.EXPECT().PollByPollID(gomock.Any(), poll.PollID).Return(poll, nil).Times(2)

	polls := newTestPolls(pollStorage, nil, nil, nil)

	_, err := polls.Vote(context.Background(), poll.PollID, 2, 21)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = polls.Vote(context.Background(), poll.PollID, -1, 21)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestPolls_Vote_WrongMode(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	poll := activePoll(entity.VotingModeAnonymous)

	pollStorage := mocks.NewMockPollStorage(ctrl)
	pollStorage.EXPECT().PollByPollID(gomock.Any(), poll.PollID).Return(poll, nil)

	polls := newTestPolls(pollStorage, nil, nil, nil)

	_, err := polls.Vote(context.Background(), poll.PollID, 0, 21)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrWrongVotingMode)
}

func TestPolls_VoteAnonymous_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	poll := activePoll(entity.VotingModeAnonymous)

	pollStorage := mocks.NewMockPollStorage(ctrl)
	proofVerifier := mocks.NewMockProofVerifier(ctrl)

	pollStorage.EXPECT().PollByPollID(gomock.Any(), poll.PollID).Return(poll, nil)
	proofVerifier.EXPECT().
		Verify(gomock.Any(), verifier.Payload{PollID: poll.PollID, OptionIndex: 1, Nullifier: "n1"}).
		Return(true, nil)
	pollStorage.EXPECT().RecordAnonymousVote(gomock.Any(), poll.ID, 1, "n1").Return(int64(1), nil)

	polls := newTestPolls(pollStorage, nil, proofVerifier, nil)

	pollID, total, err := polls.VoteAnonymous(context.Background(), poll.PollID, 1, verifier.Payload{Nullifier: "n1"})
	require.NoError(t, err)
	assert.Equal(t, poll.PollID, pollID)
	assert.Equal(t, int64(1), total)
}

func TestPolls_VoteAnonymous_DuplicateNullifier(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	poll := activePoll(entity.VotingModeAnonymous)

	pollStorage := mocks.NewMockPollStorage(ctrl)
	proofVerifier := mocks.NewMockProofVerifier(ctrl)

	pollStorage.EXPECT().PollByPollID(gomock.Any(), poll.PollID).Return(poll, nil)
	proofVerifier.EXPECT().Verify(gomock.Any(), gomock.Any()).Return(true, nil)
	pollStorage.EXPECT().RecordAnonymousVote(gomock.Any(), poll.ID, 0, "n1").
		Return(int64(0), storage.ErrDuplicateNullifier)

	polls := newTestPolls(pollStorage, nil, proofVerifier, nil)

	_, _, err := polls.VoteAnonymous(context.Background(), poll.PollID, 0, verifier.Payload{Nullifier: "n1"})
	require.Error(t, err)
	assert.ErrorIs(t, err, storage.ErrDuplicateNullifier)
}

func TestPolls_VoteAnonymous_ProofRejected(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	poll := activePoll(entity.VotingModeAnonymous)

	// no RecordAnonymousVote expectation: a rejected proof must not record
	pollStorage := mocks.NewMockPollStorage(ctrl)
	proofVerifier := mocks.NewMockProofVerifier(ctrl)

	pollStorage.EXPECT().PollByPollID(gomock.Any(), poll.PollID).Return(poll, nil)
	proofVerifier.EXPECT().Verify(gomock.Any(), gomock.Any()).Return(false, nil)

	polls := newTestPolls(pollStorage, nil, proofVerifier, nil)

	_, _, err := polls.VoteAnonymous(context.Background(), poll.PollID, 0, verifier.Payload{Nullifier: "n1"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidProof)
}

func TestPolls_VoteAnonymous_VerifierDown(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	poll := activePoll(entity.VotingModeAnonymous)

	pollStorage := mocks.NewMockPollStorage(ctrl)
	proofVerifier := mocks.NewMockProofVerifier(ctrl)

	pollStorage.EXPECT().PollByPollID(gomock.Any(), poll.PollID).Return(poll, nil)
	proofVerifier.EXPECT().Verify(gomock.Any(), gomock.Any()).Return(false, errors.New("connection refused"))

	polls := newTestPolls(pollStorage, nil, proofVerifier, nil)

	_, _, err := polls.VoteAnonymous(context.Background(), poll.PollID, 0, verifier.Payload{Nullifier: "n1"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrVerifierUnavailable)
}

func TestPolls_VoteAnonymous_NoVerifierConfigured(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	poll := activePoll(entity.VotingModeAnonymous)

	pollStorage := mocks.NewMockPollStorage(ctrl)
	pollStorage.EXPECT().PollByPollID(gomock.Any(), poll.PollID).Return(poll, nil)

	polls := newTestPolls(pollStorage, nil, nil, nil)

	_, _, err := polls.VoteAnonymous(context.Background(), poll.PollID, 0, verifier.Payload{Nullifier: "n1"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrVerifierUnavailable)
}

func TestPolls_VoteAnonymous_WrongMode(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	poll := activePoll(entity.VotingModeNamed)

	pollStorage := mocks.NewMockPollStorage(ctrl)
	pollStorage.EXPECT().PollByPollID(gomock.Any(), poll.PollID).Return(poll, nil)

	polls := newTestPolls(pollStorage, nil, nil, nil)

	_, _, err := polls.VoteAnonymous(context.Background(), poll.PollID, 0, verifier.Payload{Nullifier: "n1"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrWrongVotingMode)
}

func TestPolls_PollDetail_WithUser(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	poll := activePoll(entity.VotingModeNamed)
	userID := int64(21)

	pollStorage := mocks.NewMockPollStorage(ctrl)
	pollStorage.EXPECT().PollByPollID(gomock.Any(), poll.PollID).Return(poll, nil)
	pollStorage.EXPECT().HasVoted(gomock.Any(), poll.ID, userID).Return(true, nil)

	polls := newTestPolls(pollStorage, nil, nil, nil)

	got, hasVoted, onChain, err := polls.PollDetail(context.Background(), poll.PollID, &userID)
	require.NoError(t, err)
	assert.Equal(t, poll.PollID, got.PollID)
	assert.True(t, hasVoted)
	assert.Nil(t, onChain)
}

func TestPolls_PollDetail_Anonymous(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	poll := activePoll(entity.VotingModeNamed)

	// no HasVoted expectation for unauthenticated callers
	pollStorage := mocks.NewMockPollStorage(ctrl)
	pollStorage.EXPECT().PollByPollID(gomock.Any(), poll.PollID).Return(poll, nil)

	polls := newTestPolls(pollStorage, nil, nil, nil)

	_, hasVoted, _, err := polls.PollDetail(context.Background(), poll.PollID, nil)
	require.NoError(t, err)
	assert.False(t, hasVoted)
}

func TestPolls_PollDetail_LedgerMerge(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	poll := activePoll(entity.VotingModeAnonymous)
	chainState := entity.OnChainPoll{PollID: poll.PollID, TotalVotes: 3, Tallies: []int64{2, 1}}

	pollStorage := mocks.NewMockPollStorage(ctrl)
	ledgerReader := mocks.NewMockLedgerReader(ctrl)

	pollStorage.EXPECT().PollByPollID(gomock.Any(), poll.PollID).Return(poll, nil)
	ledgerReader.EXPECT().Poll(gomock.Any(), poll.PollID).Return(chainState, nil)

	polls := newTestPolls(pollStorage, nil, nil, ledgerReader)

	got, _, onChain, err := polls.PollDetail(context.Background(), poll.PollID, nil)
	require.NoError(t, err)
	require.NotNil(t, onChain)
	assert.Equal(t, chainState, *onChain)
	// the chain copy never overwrites the stored tallies
	assert.Zero(t, got.TotalVotes)
}

func TestPolls_PollDetail_LedgerUnavailable(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	poll := activePoll(entity.VotingModeAnonymous)

	pollStorage := mocks.NewMockPollStorage(ctrl)
	ledgerReader := mocks.NewMockLedgerReader(ctrl)

	pollStorage.EXPECT().PollByPollID(gomock.Any(), poll.PollID).Return(poll, nil)
	ledgerReader.EXPECT().Poll(gomock.Any(), poll.PollID).
		Return(entity.OnChainPoll{}, errors.New("gateway timeout"))

	polls := newTestPolls(pollStorage, nil, nil, ledgerReader)

	got, _, onChain, err := polls.PollDetail(context.Background(), poll.PollID, nil)
	require.NoError(t, err)
	assert.Nil(t, onChain)
	assert.Equal(t, poll.PollID, got.PollID)
}

func TestPolls_PublicPolls(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	listed := []entity.Poll{activePoll(entity.VotingModeNamed)}

	pollStorage := mocks.NewMockPollStorage(ctrl)
	pollStorage.EXPECT().PublicPolls(gomock.Any(), gomock.Any()).Return(listed, nil)

	polls := newTestPolls(pollStorage, nil, nil, nil)

	got, err := polls.PublicPolls(context.Background())
	require.NoError(t, err)
	assert.Equal(t, listed, got)
}

func TestPolls_PollsByCreator(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	listed := []entity.Poll{activePoll(entity.VotingModeNamed)}

	pollStorage := mocks.NewMockPollStorage(ctrl)
	pollStorage.EXPECT().PollsByCreator(gomock.Any(), int64(5)).Return(listed, nil)

	polls := newTestPolls(pollStorage, nil, nil, nil)

	got, err := polls.PollsByCreator(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, listed, got)
}

func TestPolls_PollsByVoter(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	listed := []entity.Poll{activePoll(entity.VotingModeNamed)}

	pollStorage := mocks.NewMockPollStorage(ctrl)
	pollStorage.EXPECT().PollsByVoter(gomock.Any(), int64(21)).Return(listed, nil)

	polls := newTestPolls(pollStorage, nil, nil, nil)

	got, err := polls.PollsByVoter(context.Background(), 21)
	require.NoError(t, err)
	assert.Equal(t, listed, got)
}
