package entities

import "errors"

// Domain rejections surfaced to callers. All of them are raised before any
// state is mutated; persistence failures are wrapped separately with %w.
var (
	// ErrInvalidBet indicates a stake outside [1, MaxBetAmount] or
	// malformed game-specific parameters.
	ErrInvalidBet = errors.New("invalid bet")

	// ErrInsufficientBalance indicates the user cannot cover the stake.
	ErrInsufficientBalance = errors.New("insufficient balance")

	// ErrInvalidAction indicates a blackjack action outside the allowed
	// set for the current state, or any action on a non-player-turn state.
	ErrInvalidAction = errors.New("action not allowed in current state")

	// ErrRoundNotFound indicates a crash cashout referenced an unknown round.
	ErrRoundNotFound = errors.New("round not found")

	// ErrRoundSettled indicates a crash cashout on an already settled round.
	ErrRoundSettled = errors.New("round already settled")

	// ErrStreakAlreadyClaimed indicates a second daily streak claim within
	// the same day.
	ErrStreakAlreadyClaimed = errors.New("daily reward already claimed")

	// ErrUserNotFound indicates the user row does not exist.
	ErrUserNotFound = errors.New("user not found")
)
