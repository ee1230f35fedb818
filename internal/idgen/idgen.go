// Package idgen produces merchant transaction identifiers. Uniqueness is
// verified against the store before use instead of being assumed from
// entropy; the insert's unique constraint remains the final arbiter.
package idgen

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	prefix      = "TXN"
	maxAttempts = 5
)

var ErrExhausted = errors.New("could not generate a unique transaction id")

// ExistsFunc reports whether an id is already taken.
type ExistsFunc func(id string) (bool, error)

func New(exists ExistsFunc) (string, error) {
	for i := 0; i < maxAttempts; i++ {
		id := prefix + strconv.FormatInt(time.Now().UnixMilli(), 10) + suffix()
		taken, err := exists(id)
		if err != nil {
			return "", err
		}
		if !taken {
			return id, nil
		}
	}
	return "", ErrExhausted
}

func suffix() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}
