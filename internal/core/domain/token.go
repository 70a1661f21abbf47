package domain

import "errors"

var ErrUnauthenticated = errors.New("authentication required")
var ErrTokenInvalid = errors.New("token invalid")
var ErrTokenExpired = errors.New("token expired")

// TokenPair holds an access token (short-lived, authorizes individual
// requests) and a refresh token (long-lived, used solely to obtain a new
// pair). Both carry the same identity claims but are independently signed
// and independently expire.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}
