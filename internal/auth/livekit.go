package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type VideoGrant struct {
	RoomJoin bool   `json:"roomJoin,omitempty"`
	Room     string `json:"room,omitempty"`
}

type liveKitClaims struct {
	jwt.RegisteredClaims
	Name  string      `json:"name,omitempty"`
	Video *VideoGrant `json:"video,omitempty"`
}

// LiveKitToken mints a room-join access token for the media server.
func LiveKitToken(apiKey, apiSecret, identity, room string, ttl time.Duration, now time.Time) (string, error) {
	if apiKey == "" || apiSecret == "" {
		return "", errors.New("livekit api key or secret not set")
	}
	if identity == "" || room == "" {
		return "", errors.New("identity and room are required")
	}
	if ttl <= 0 {
		ttl = 6 * time.Hour
	}

	claims := liveKitClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    apiKey,
			Subject:   identity,
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Name:  identity,
		Video: &VideoGrant{RoomJoin: true, Room: room},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(apiSecret))
}
