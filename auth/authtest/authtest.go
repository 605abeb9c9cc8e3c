// Package authtest provides authenticators for tests and local development.
package authtest

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ggoodman/simple-resource/auth"
)

// StaticTokens accepts a fixed set of bearer tokens, each mapped to a user id.
type StaticTokens map[string]string

var _ auth.Authenticator = StaticTokens(nil)

// CheckAuthentication implements auth.Authenticator.
func (s StaticTokens) CheckAuthentication(ctx context.Context, tok string) (auth.UserInfo, error) {
	uid, ok := s[tok]
	if !ok {
		return nil, fmt.Errorf("%w: unknown token", auth.ErrUnauthorized)
	}
	return userInfo(uid), nil
}

type userInfo string

func (u userInfo) UserID() string { return string(u) }

func (u userInfo) Claims(ref any) error {
	b, err := json.Marshal(map[string]any{"sub": string(u)})
	if err != nil {
		return err
	}
	return json.Unmarshal(b, ref)
}
