package catalog

import (
	"fmt"

	"github.com/uwuclxdy/plasmoid-updater/src/common/errors"
)

var errRateLimited = errors.ErrRateLimited

func apiError(code int) error {
	return errors.ErrAPI.WithMessage(fmt.Sprintf("store api returned status %d", code))
}

func networkError(cause error) error {
	return errors.ErrNetwork.WithCause(cause)
}
