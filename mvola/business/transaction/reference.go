package transaction

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

const referencePrefix = "SOLAR-"

// NewReference builds a correlation identifier: the shop prefix, the epoch milliseconds and a
// random suffix so that two requests landing in the same millisecond do not collide.
func NewReference(now time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return referencePrefix + strconv.FormatInt(now.UnixMilli(), 10) + "-" + suffix
}
