package cache

import (
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// Key builds a deterministic cache key from an operation name, a day
// number, and the remaining call inputs. The day number stays readable in
// the key; everything else folds into one xxhash digest so keys stay short
// regardless of how many options a call carries.
func Key(op string, dayNumber float64, parts ...string) string {
	h := xxhash.New()
	for _, p := range parts {
		_, _ = h.WriteString(p)
		_, _ = h.Write([]byte{0})
	}
	return op + ":" + strconv.FormatFloat(dayNumber, 'f', -1, 64) +
		":" + strconv.FormatUint(h.Sum64(), 16)
}

func formatI32(v int32) string {
	return strconv.FormatInt(int64(v), 10)
}

func formatF64(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
