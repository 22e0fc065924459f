package wasicore

import (
	"time"

	"github.com/wasicore/wasicore/internal/clockres"
)

// ClockID selects one of the four virtual clocks exposed to the guest.
type ClockID uint32

const (
	ClockRealtime ClockID = iota
	ClockMonotonic
	ClockProcessCputimeID
	ClockThreadCputimeID
)

// monotonicEpoch anchors ClockMonotonic: Go's time.Time carries a monotonic
// reading internally once obtained from time.Now, so subtracting against a
// fixed start gives a monotonic nanosecond counter without depending on
// wall-clock adjustments.
var monotonicEpoch = time.Now()

// ClockResGet returns the resolution, in nanoseconds, of id.
func (s *Sandbox) ClockResGet(id ClockID) (uint64, Errno) {
	switch id {
	case ClockRealtime, ClockMonotonic:
		return 1, ESUCCESS
	case ClockProcessCputimeID, ClockThreadCputimeID:
		ns, err := clockres.Res(clockresID(id))
		if err != nil {
			return 0, ENOSYS
		}
		return ns, ESUCCESS
	default:
		return 0, EINVAL
	}
}

// ClockTimeGet returns the current value, in nanoseconds, of id. precision is
// advisory and ignored: every id is served at whatever resolution the host
// clock actually offers.
func (s *Sandbox) ClockTimeGet(id ClockID, precision uint64) (uint64, Errno) {
	switch id {
	case ClockRealtime:
		return uint64(time.Now().UnixNano()), ESUCCESS
	case ClockMonotonic:
		return uint64(time.Since(monotonicEpoch)), ESUCCESS
	case ClockProcessCputimeID, ClockThreadCputimeID:
		ns, err := clockres.Now(clockresID(id))
		if err != nil {
			return 0, ENOSYS
		}
		return ns, ESUCCESS
	default:
		return 0, EINVAL
	}
}

func clockresID(id ClockID) clockres.ID {
	if id == ClockThreadCputimeID {
		return clockres.ThreadCputimeID
	}
	return clockres.ProcessCputimeID
}
