package manifest

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// SupportedFormat is the range of registry format versions this build reads.
const SupportedFormat = ">= 1.0.0, < 2.0.0"

// ErrUnsupportedFormat reports a document written for another format major.
var ErrUnsupportedFormat = errors.New("unsupported registry format version")

// CheckFormatVersion fails unless v satisfies SupportedFormat. A leading
// "v" is tolerated.
func CheckFormatVersion(v string) error {
	ver, err := semver.NewVersion(strings.TrimPrefix(v, "v"))
	if err != nil {
		return fmt.Errorf("parsing format version %q: %w", v, err)
	}
	c, err := semver.NewConstraint(SupportedFormat)
	if err != nil {
		return fmt.Errorf("parsing supported range: %w", err)
	}
	if !c.Check(ver) {
		return fmt.Errorf("%w: %s (supported: %s)", ErrUnsupportedFormat, v, SupportedFormat)
	}
	return nil
}
