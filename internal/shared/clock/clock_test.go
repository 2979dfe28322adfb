package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestToday(t *testing.T) {
	orig := NowFunc
	defer func() { NowFunc = orig }()

	loc := time.FixedZone("WIB", 7*3600)
	NowFunc = func() time.Time { return time.Date(2026, 3, 9, 23, 30, 0, 0, loc) }

	assert.Equal(t, time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC), Today())
}
