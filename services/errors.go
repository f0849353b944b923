package services

import (
	"errors"
	"fmt"

	"github.com/Dosada05/magic-tournament/repositories"
)

// Виды ошибок. Каждая конкретная ошибка ниже оборачивает ровно один вид,
// поэтому errors.Is работает и по конкретной ошибке, и по её виду.
var (
	ErrNotFound             = errors.New("requested resource not found")
	ErrInvalidState         = errors.New("operation not allowed in the current state")
	ErrInvalidInput         = errors.New("invalid input")
	ErrConflict             = errors.New("resource conflict")
	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrPersistence          = errors.New("persistence failure")
)

// Не найдено
var (
	ErrTournamentNotFound      = fmt.Errorf("%w: tournament not found", ErrNotFound)
	ErrMatchNotFound           = fmt.Errorf("%w: match not found", ErrNotFound)
	ErrPlayerNotFound          = fmt.Errorf("%w: player not found", ErrNotFound)
	ErrPlayerNotEnrolled       = fmt.Errorf("%w: player is not enrolled in this tournament", ErrNotFound)
	ErrTournamentScoreNotFound = fmt.Errorf("%w: tournament score not found", ErrNotFound)
	ErrDeckNotFound            = fmt.Errorf("%w: deck not found", ErrNotFound)
)

// Недопустимое состояние
var (
	ErrAlreadyFinished      = fmt.Errorf("%w: tournament is already finished", ErrInvalidState)
	ErrAlreadyStarted       = fmt.Errorf("%w: tournament matches are already generated", ErrInvalidState)
	ErrNotStarted           = fmt.Errorf("%w: tournament has not started", ErrInvalidState)
	ErrNotFinished          = fmt.Errorf("%w: tournament is not finished yet", ErrInvalidState)
	ErrAlreadyRecorded      = fmt.Errorf("%w: match result already recorded", ErrInvalidState)
	ErrNotElimination       = fmt.Errorf("%w: only elimination tournaments can advance phases", ErrInvalidState)
	ErrPhaseIncomplete      = fmt.Errorf("%w: all matches in the current phase must be completed before advancing", ErrInvalidState)
	ErrPhaseHasDraws        = fmt.Errorf("%w: current phase has drawn matches", ErrInvalidState)
	ErrUnfinishedMatches    = fmt.Errorf("%w: tournament has unfinished matches", ErrInvalidState)
	ErrAvatarUploadDisabled = fmt.Errorf("%w: avatar storage is not configured", ErrInvalidState)
	ErrForbiddenOperation   = fmt.Errorf("%w: operation not allowed for the current player", ErrInvalidState)
)

// Невалидные входные данные
var (
	ErrInsufficientPlayers    = fmt.Errorf("%w: not enough players to generate matches (minimum 2)", ErrInvalidInput)
	ErrInvalidWinner          = fmt.Errorf("%w: winner is not a participant of this match", ErrInvalidInput)
	ErrDrawNotAllowed         = fmt.Errorf("%w: draws are not allowed in elimination tournaments", ErrInvalidInput)
	ErrInvalidTournamentType  = fmt.Errorf("%w: tournament type must be roundRobin or elimination", ErrInvalidInput)
	ErrTournamentNameRequired = fmt.Errorf("%w: tournament name is required", ErrInvalidInput)
	ErrPlayerNameRequired     = fmt.Errorf("%w: player name is required", ErrInvalidInput)
	ErrInvalidEmail           = fmt.Errorf("%w: email address is invalid", ErrInvalidInput)
	ErrPasswordTooShort       = fmt.Errorf("%w: password is too short", ErrInvalidInput)
	ErrNegativeScore          = fmt.Errorf("%w: personal score cannot be negative", ErrInvalidInput)
	ErrUnsupportedContentType = fmt.Errorf("%w: unsupported avatar content type", ErrInvalidInput)
	ErrDeckNameRequired       = fmt.Errorf("%w: deck name is required", ErrInvalidInput)
	ErrDeckNameTooLong        = fmt.Errorf("%w: deck name is too long", ErrInvalidInput)
	ErrDeckFormatRequired     = fmt.Errorf("%w: deck format is required", ErrInvalidInput)
	ErrDeckListTooLong        = fmt.Errorf("%w: deck list is too long", ErrInvalidInput)
)

// Конфликты
var (
	ErrPlayerEmailConflict   = fmt.Errorf("%w: email is already registered", ErrConflict)
	ErrPlayerAlreadyEnrolled = fmt.Errorf("%w: player is already enrolled in this tournament", ErrConflict)
	ErrPlayerInUse           = fmt.Errorf("%w: player has recorded matches and cannot be deleted", ErrConflict)
)

var ErrInvalidCredentials = fmt.Errorf("%w: invalid email or password", ErrAuthenticationFailed)

// mapRepositoryError переводит ошибки репозиториев в ошибки сервисного слоя.
func mapRepositoryError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repositories.ErrTournamentNotFound):
		return ErrTournamentNotFound
	case errors.Is(err, repositories.ErrMatchNotFound):
		return ErrMatchNotFound
	case errors.Is(err, repositories.ErrPlayerNotFound),
		errors.Is(err, repositories.ErrEnrollmentReferenceBad):
		return ErrPlayerNotFound
	case errors.Is(err, repositories.ErrTournamentScoreNotFound):
		return ErrTournamentScoreNotFound
	case errors.Is(err, repositories.ErrMatchAlreadyRecorded):
		return ErrAlreadyRecorded
	case errors.Is(err, repositories.ErrPlayerEmailConflict):
		return ErrPlayerEmailConflict
	case errors.Is(err, repositories.ErrPlayerAlreadyEnrolled):
		return ErrPlayerAlreadyEnrolled
	case errors.Is(err, repositories.ErrPlayerNotEnrolled):
		return ErrPlayerNotEnrolled
	case errors.Is(err, repositories.ErrPlayerInUse):
		return ErrPlayerInUse
	case errors.Is(err, repositories.ErrDeckNotFound):
		return ErrDeckNotFound
	case errors.Is(err, repositories.ErrDeckOwnerInvalid):
		return ErrPlayerNotFound
	}
	return err
}

var errorKinds = []error{ErrNotFound, ErrInvalidState, ErrInvalidInput, ErrConflict, ErrAuthenticationFailed, ErrPersistence}

// classifyError guarantees the caller always gets one of the error kinds:
// anything unrecognised is a storage failure.
func classifyError(err error) error {
	if err == nil {
		return nil
	}
	err = mapRepositoryError(err)
	for _, kind := range errorKinds {
		if errors.Is(err, kind) {
			return err
		}
	}
	return fmt.Errorf("%w: %w", ErrPersistence, err)
}
