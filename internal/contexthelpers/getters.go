package contexthelpers

import (
	"context"
)

func IsAuthenticated(ctx context.Context) bool {
	isAuthenticated, ok := ctx.Value(IsAuthenticatedContextKey).(bool)
	if !ok {
		return false
	}

	return isAuthenticated
}

// CurrentUserCPF returns the normalized CPF of the logged-in user, or the
// empty string for anonymous requests.
func CurrentUserCPF(ctx context.Context) string {
	cpf, ok := ctx.Value(CurrentUserCPFContextKey).(string)
	if !ok {
		return ""
	}

	return cpf
}

func CurrentPath(ctx context.Context) string {
	currentPath, ok := ctx.Value(CurrentPathContextKey).(string)
	if !ok {
		return ""
	}

	return currentPath
}

func CSPNonce(ctx context.Context) string {
	cspNonce, ok := ctx.Value(CspNonceContextKey).(string)
	if !ok {
		return ""
	}

	return cspNonce
}
