package implementation

import (
	"context"
	"errors"
	"fmt"
	"net"

	"solosolver-be/internal/repository/contract"

	"github.com/jackc/pgx/v5/pgconn"
)

// classifyError tags connectivity failures with contract.ErrStoreUnavailable.
func classifyError(err error) error {
	if err == nil {
		return nil
	}
	if isUnavailable(err) {
		return fmt.Errorf("%w: %v", contract.ErrStoreUnavailable, err)
	}
	return err
}

func isUnavailable(err error) bool {
	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) || pgconn.Timeout(err) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) && opErr.Op == "dial" {
		return true
	}

	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
