package access

import "context"

// Caller is the authenticated user behind a request with resolved roles.
type Caller struct {
	UserID   uint
	Username string
	Roles    RoleSet
}

func (c Caller) Is(r Role) bool {
	return c.Roles.Has(r)
}

type callerKey struct{}

func WithCaller(ctx context.Context, c Caller) context.Context {
	return context.WithValue(ctx, callerKey{}, c)
}

func CallerFrom(ctx context.Context) (Caller, bool) {
	c, ok := ctx.Value(callerKey{}).(Caller)
	return c, ok
}
