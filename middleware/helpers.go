package middleware

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/golang-jwt/jwt/v4"
)

// Имена JWT claims
const (
	jwtClaimPlayerID = "player_id"
	jwtClaimEmail    = "sub"
)

func GetPlayerIDFromContext(ctx context.Context) (int, error) {
	claims, ok := ctx.Value(playerContextKey).(jwt.MapClaims)
	if !ok {
		return 0, errors.New("player claims not found in context or invalid type")
	}
	return playerIDFromClaims(claims)
}

func playerIDFromClaims(claims jwt.MapClaims) (int, error) {
	raw, ok := claims[jwtClaimPlayerID]
	if !ok {
		return 0, fmt.Errorf("missing '%s' claim in token", jwtClaimPlayerID)
	}

	var playerID int
	switch v := raw.(type) {
	case float64:
		if v != float64(int(v)) {
			return 0, fmt.Errorf("'%s' claim is not an integer: %f", jwtClaimPlayerID, v)
		}
		playerID = int(v)
	case string:
		id, err := strconv.Atoi(v)
		if err != nil {
			return 0, fmt.Errorf("invalid '%s' claim: %w", jwtClaimPlayerID, err)
		}
		playerID = id
	default:
		return 0, fmt.Errorf("invalid type for '%s' claim: expected number or string, got %T", jwtClaimPlayerID, raw)
	}

	if playerID <= 0 {
		return 0, fmt.Errorf("invalid player ID value in '%s' claim: %d", jwtClaimPlayerID, playerID)
	}
	return playerID, nil
}

// WithPlayerID кладёт в контекст claims с указанным игроком. Нужен обработчикам,
// которые тестируются без полного прохода через Authenticate.
func WithPlayerID(ctx context.Context, playerID int) context.Context {
	return context.WithValue(ctx, playerContextKey, jwt.MapClaims{jwtClaimPlayerID: float64(playerID)})
}
