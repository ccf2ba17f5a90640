package inventory

import (
	"sync"

	"github.com/google/uuid"
)

var (
	buildIDOnce sync.Once
	buildID     string
)

// BuildID returns a random identifier stable for the lifetime of this
// process, memoized on first call. It is not part of any deterministic
// output (the declaration file and registration fragment are bit-stable
// across runs by construction); it exists purely as a correlation handle
// for diagnostics that span one generator invocation, such as the
// generation summary line a build driver writes to stderr.
func BuildID() string {
	buildIDOnce.Do(func() {
		buildID = uuid.NewString()
	})
	return buildID
}
