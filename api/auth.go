package main

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// demoUser is the static identity the stubbed sign-in produces. There is no
// credential validation; signing in always succeeds as this user.
var demoUser = user{
	ID:    "1",
	Email: "user@example.com",
	Name:  "Demo User",
}

type authService struct {
	store    *store
	secret   string
	tokenTTL time.Duration
}

func newAuthService(s *store, secret string, tokenTTL time.Duration) *authService {
	return &authService{
		store:    s,
		secret:   secret,
		tokenTTL: tokenTTL,
	}
}

// signIn caches the demo identity in the store and mints a session token.
// The user write is best-effort like every other persistence call.
func (a *authService) signIn() (user, string, error) {
	u := demoUser
	if !a.store.writeUser(u) {
		log.Println("user record not persisted, session continues in memory")
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":    u.ID,
		"expires_at": time.Now().Add(a.tokenTTL).Format(time.RFC822),
	})
	signed, err := token.SignedString([]byte(a.secret))
	if err != nil {
		return user{}, "", fmt.Errorf("failed to sign token: %w", err)
	}
	return u, signed, nil
}

// signOut destroys the cached user record.
func (a *authService) signOut() bool {
	return a.store.clearUser()
}

// verifyToken returns the user a token was minted for. The cached user
// record must still exist: signing out invalidates outstanding tokens.
func (a *authService) verifyToken(tokenStr string) (*user, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(a.secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	userID, ok := claims["user_id"].(string)
	if !ok {
		return nil, errors.New("invalid token")
	}
	expiresAtStr, ok := claims["expires_at"].(string)
	if !ok {
		return nil, errors.New("invalid token")
	}
	expiresAt, err := time.Parse(time.RFC822, expiresAtStr)
	if err != nil {
		return nil, errors.New("invalid token")
	}
	if time.Now().After(expiresAt) {
		return nil, errors.New("token expired")
	}
	u := a.store.readUser()
	if u == nil || u.ID != userID {
		return nil, errors.New("user is signed out")
	}
	return u, nil
}
