package loginpage

import (
	"context"
	"net/http"

	"github.com/nlstn/go-loginpage/internal/auth"
)

// AuthReason explains to the login page or payload consumer why access was
// denied.
type AuthReason = auth.Reason

// AuthReason values reported in login responses.
const (
	// AuthReasonRequired means the request carried no credentials at all.
	AuthReasonRequired = auth.ReasonRequired

	// AuthReasonNotPermitted means credentials were presented but did not
	// grant access.
	AuthReasonNotPermitted = auth.ReasonNotPermitted
)

// AuthState carries login metadata across a denied request. The handler
// records the denial reason here before the login page is rendered; hosts
// that run their own login flow can additionally record the result of a
// login attempt and the URL to send the user to afterwards.
type AuthState = auth.State

// WithAuthState returns a context carrying the given state.
func WithAuthState(ctx context.Context, state *AuthState) context.Context {
	return auth.NewContext(ctx, state)
}

// AuthStateFromContext returns the state attached to the context, if any.
func AuthStateFromContext(ctx context.Context) (*AuthState, bool) {
	return auth.FromContext(ctx)
}

// ReasonFor derives the denial reason from the request. Requests without an
// Authorization header are AuthReasonRequired, requests that presented
// credentials are AuthReasonNotPermitted.
func ReasonFor(r *http.Request) AuthReason {
	return auth.ReasonFor(r)
}
