package httpapi

import (
	"context"

	"github.com/MelloMattGit/CFBPyckem/internal/domain/user"
)

type contextKey string

const profileContextKey contextKey = "session_profile"

func withProfile(ctx context.Context, p user.Profile) context.Context {
	return context.WithValue(ctx, profileContextKey, p)
}

func profileFromContext(ctx context.Context) (user.Profile, bool) {
	p, ok := ctx.Value(profileContextKey).(user.Profile)
	return p, ok
}
