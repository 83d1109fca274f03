package storage

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrPollNotFound       = errors.New("poll not found")
	ErrOptionNotFound     = errors.New("option not found")
	ErrPollAlreadyExists  = errors.New("poll already exists")
	ErrAlreadyVoted       = errors.New("user already voted")
	ErrDuplicateNullifier = errors.New("nullifier already used")
)
