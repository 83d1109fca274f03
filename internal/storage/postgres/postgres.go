package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/zkpolls/zkpolls-backend/internal/entity"
	"github.com/zkpolls/zkpolls-backend/internal/storage"
)

type Storage struct {
	db *sql.DB
}

func New(postgresURL string) (*Storage, error) {
	const op = "storage.postgres.New"

	db, err := sql.Open("postgres", postgresURL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{db: db}, nil
}

func (s *Storage) Close() error {
	return s.db.Close()
}

// SaveUser upserts a user by wallet address. A new user gets
// created_at = last_login = now(); an existing one only advances last_login.
func (s *Storage) SaveUser(ctx context.Context, walletAddress string) (entity.User, error) {
	const op = "storage.postgres.SaveUser"

	query := `
		INSERT INTO users (wallet_address)
		VALUES ($1)
		ON CONFLICT (wallet_address) DO UPDATE SET last_login = now()
		RETURNING id, wallet_address, created_at, last_login`

	var user entity.User
	err := s.db.QueryRowContext(ctx, query, walletAddress).
		Scan(&user.ID, &user.WalletAddress, &user.CreatedAt, &user.LastLogin)
	if err != nil {
		return entity.User{}, fmt.Errorf("%s: %w", op, err)
	}

	return user, nil
}

func (s *Storage) UserByID(ctx context.Context, id int64) (entity.User, error) {
	const op = "storage.postgres.UserByID"

	query := `SELECT id, wallet_address, created_at, last_login FROM users WHERE id = $1`

	var user entity.User
	err := s.db.QueryRowContext(ctx, query, id).
		Scan(&user.ID, &user.WalletAddress, &user.CreatedAt, &user.LastLogin)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entity.User{}, fmt.Errorf("%s: %w", op, storage.ErrUserNotFound)
		}
		return entity.User{}, fmt.Errorf("%s: %w", op, err)
	}

	return user, nil
}

// SavePoll persists the poll and its options in one transaction and returns
// the internal row id.
func (s *Storage) SavePoll(ctx context.Context, poll entity.Poll) (int64, error) {
	const op = "storage.postgres.SavePoll"

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO polls (poll_id, question, description, image_url, visibility, voting_mode,
		                   creator_id, start_time, end_time, is_active, total_votes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, TRUE, 0)
		RETURNING id`

	var id int64
	err = tx.QueryRowContext(ctx, query,
		poll.PollID, poll.Question, poll.Description, poll.ImageURL,
		poll.Visibility, poll.VotingMode, poll.CreatorID, poll.StartTime, poll.EndTime,
	).Scan(&id)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return 0, fmt.Errorf("%s: %w", op, storage.ErrPollAlreadyExists)
		}
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	for idx, opt := range poll.Options {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO poll_options (poll_id, idx, name, vote_count) VALUES ($1, $2, $3, 0)`,
			id, idx, opt.Name,
		)
		if err != nil {
			return 0, fmt.Errorf("%s: option %d: %w", op, idx, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return id, nil
}

func (s *Storage) PollByPollID(ctx context.Context, pollID string) (entity.Poll, error) {
	const op = "storage.postgres.PollByPollID"

	query := `
		SELECT p.id, p.poll_id, p.question, p.description, p.image_url, p.visibility,
		       p.voting_mode, p.creator_id, u.wallet_address, p.start_time, p.end_time,
		       p.is_active, p.total_votes, p.created_at
		FROM polls p
		JOIN users u ON u.id = p.creator_id
		WHERE p.poll_id = $1`

	var poll entity.Poll
	err := s.db.QueryRowContext(ctx, query, pollID).Scan(
		&poll.ID, &poll.PollID, &poll.Question, &poll.Description, &poll.ImageURL,
		&poll.Visibility, &poll.VotingMode, &poll.CreatorID, &poll.CreatorWallet,
		&poll.StartTime, &poll.EndTime, &poll.IsActive, &poll.TotalVotes, &poll.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entity.Poll{}, fmt.Errorf("%s: %w", op, storage.ErrPollNotFound)
		}
		return entity.Poll{}, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.attachOptions(ctx, []*entity.Poll{&poll}); err != nil {
		return entity.Poll{}, fmt.Errorf("%s: %w", op, err)
	}

	return poll, nil
}

// RecordVote applies a named-mode vote in one transaction. The voter insert
// runs first; a conflict there means the user already voted and nothing else
// is applied, so two concurrent identical requests cannot both succeed.
func (s *Storage) RecordVote(ctx context.Context, pollRef int64, optionIdx int, userID int64) (int64, error) {
	const op = "storage.postgres.RecordVote"

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO poll_voters (poll_id, user_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		pollRef, userID,
	)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return 0, fmt.Errorf("%s: %w", op, storage.ErrAlreadyVoted)
	}

	total, err := applyVote(ctx, tx, pollRef, optionIdx)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return total, nil
}

// RecordAnonymousVote applies an anonymous-mode vote in one transaction,
// keyed by nullifier instead of voter id.
func (s *Storage) RecordAnonymousVote(ctx context.Context, pollRef int64, optionIdx int, nullifier string) (int64, error) {
	const op = "storage.postgres.RecordAnonymousVote"

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO poll_nullifiers (poll_id, nullifier) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		pollRef, nullifier,
	)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return 0, fmt.Errorf("%s: %w", op, storage.ErrDuplicateNullifier)
	}

	total, err := applyVote(ctx, tx, pollRef, optionIdx)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return total, nil
}

func applyVote(ctx context.Context, tx *sql.Tx, pollRef int64, optionIdx int) (int64, error) {
	res, err := tx.ExecContext(ctx,
		`UPDATE poll_options SET vote_count = vote_count + 1 WHERE poll_id = $1 AND idx = $2`,
		pollRef, optionIdx,
	)
	if err != nil {
		return 0, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return 0, storage.ErrOptionNotFound
	}

	var total int64
	err = tx.QueryRowContext(ctx,
		`UPDATE polls SET total_votes = total_votes + 1 WHERE id = $1 RETURNING total_votes`,
		pollRef,
	).Scan(&total)
	if err != nil {
		return 0, err
	}

	return total, nil
}

// PublicPolls lists public polls whose voting window covers now, newest first.
func (s *Storage) PublicPolls(ctx context.Context, nowMillis int64) ([]entity.Poll, error) {
	const op = "storage.postgres.PublicPolls"

	query := pollSelect + `
		WHERE p.visibility = 'Public' AND p.is_active AND p.start_time <= $1 AND p.end_time >= $1
		ORDER BY p.start_time DESC`

	return s.queryPolls(ctx, op, query, nowMillis)
}

func (s *Storage) PollsByCreator(ctx context.Context, userID int64) ([]entity.Poll, error) {
	const op = "storage.postgres.PollsByCreator"

	query := pollSelect + `
		WHERE p.creator_id = $1
		ORDER BY p.start_time DESC`

	return s.queryPolls(ctx, op, query, userID)
}

func (s *Storage) PollsByVoter(ctx context.Context, userID int64) ([]entity.Poll, error) {
	const op = "storage.postgres.PollsByVoter"

	query := pollSelect + `
		JOIN poll_voters v ON v.poll_id = p.id
		WHERE v.user_id = $1
		ORDER BY p.start_time DESC`

	return s.queryPolls(ctx, op, query, userID)
}

func (s *Storage) HasVoted(ctx context.Context, pollRef int64, userID int64) (bool, error) {
	const op = "storage.postgres.HasVoted"

	var voted bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM poll_voters WHERE poll_id = $1 AND user_id = $2)`,
		pollRef, userID,
	).Scan(&voted)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	return voted, nil
}

// DeactivateExpired flips the is_active hint off for every poll whose window
// has closed. Running it again with no new expirations changes nothing.
func (s *Storage) DeactivateExpired(ctx context.Context, nowMillis int64) (int64, error) {
	const op = "storage.postgres.DeactivateExpired"

	res, err := s.db.ExecContext(ctx,
		`UPDATE polls SET is_active = FALSE WHERE is_active AND end_time < $1`,
		nowMillis,
	)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return n, nil
}

const pollSelect = `
	SELECT p.id, p.poll_id, p.question, p.description, p.image_url, p.visibility,
	       p.voting_mode, p.creator_id, u.wallet_address, p.start_time, p.end_time,
	       p.is_active, p.total_votes, p.created_at
	FROM polls p
	JOIN users u ON u.id = p.creator_id`

func (s *Storage) queryPolls(ctx context.Context, op, query string, arg any) ([]entity.Poll, error) {
	rows, err := s.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var polls []entity.Poll
	for rows.Next() {
		var poll entity.Poll
		err := rows.Scan(
			&poll.ID, &poll.PollID, &poll.Question, &poll.Description, &poll.ImageURL,
			&poll.Visibility, &poll.VotingMode, &poll.CreatorID, &poll.CreatorWallet,
			&poll.StartTime, &poll.EndTime, &poll.IsActive, &poll.TotalVotes, &poll.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		polls = append(polls, poll)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows error: %w", op, err)
	}

	refs := make([]*entity.Poll, len(polls))
	for i := range polls {
		refs[i] = &polls[i]
	}
	if err := s.attachOptions(ctx, refs); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return polls, nil
}

func (s *Storage) attachOptions(ctx context.Context, polls []*entity.Poll) error {
	if len(polls) == 0 {
		return nil
	}

	ids := make([]int64, 0, len(polls))
	byID := make(map[int64]*entity.Poll, len(polls))
	for _, p := range polls {
		ids = append(ids, p.ID)
		byID[p.ID] = p
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT poll_id, idx, name, vote_count FROM poll_options WHERE poll_id = ANY($1) ORDER BY poll_id, idx`,
		pq.Array(ids),
	)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			pollID int64
			idx    int
			opt    entity.Option
		)
		if err := rows.Scan(&pollID, &idx, &opt.Name, &opt.VoteCount); err != nil {
			return err
		}
		if p, ok := byID[pollID]; ok {
			p.Options = append(p.Options, opt)
		}
	}

	return rows.Err()
}
