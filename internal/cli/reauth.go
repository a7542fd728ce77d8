package cli

import (
	"context"
	"errors"

	"skyci/internal/api"
	"skyci/pkg/logging"
)

// RunWithReauth executes op and retries it exactly once when the API rejects
// the bearer token. The client invalidates its cached token on a 401 response,
// so the retry generates a fresh token. A second rejection is returned as-is.
func RunWithReauth(ctx context.Context, op func(context.Context) error) error {
	err := op(ctx)
	var unauthorized *api.UnauthorizedError
	if !errors.As(err, &unauthorized) {
		return err
	}

	logging.Debug("CLI", "token rejected, retrying once with a fresh token")
	return op(ctx)
}
