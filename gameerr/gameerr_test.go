package gameerr

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	err := New(InvalidTarget, "没有编号为 %d 的物品", 7)
	assert.Equal(t, "没有编号为 7 的物品", err.Error())
	assert.Equal(t, InvalidTarget, err.Kind)
}

func TestInsufficient(t *testing.T) {
	err := Insufficient("灵石", 500, 120)
	assert.Equal(t, InsufficientResource, err.Kind)
	assert.Equal(t, "灵石", err.Resource)
	assert.Equal(t, 500, err.Need)
	assert.Equal(t, 120, err.Have)
	assert.Contains(t, err.Error(), "灵石不足")
}

func TestRemainingMinutes_RoundsUp(t *testing.T) {
	tests := []struct {
		remaining time.Duration
		want      int
	}{
		{0, 0},
		{-time.Minute, 0},
		{time.Millisecond, 1},
		{59 * time.Second, 1},
		{time.Minute, 1},
		{time.Minute + time.Second, 2},
		{10 * time.Minute, 10},
	}
	for _, tt := range tests {
		err := NotReady(tt.remaining)
		assert.Equal(t, tt.want, err.RemainingMinutes(), "remaining=%s", tt.remaining)
	}
}

func TestNotReady_Message(t *testing.T) {
	err := NotReady(90 * time.Second)
	assert.Equal(t, NotYetReady, err.Kind)
	assert.Contains(t, err.Error(), "还需 2 分钟")
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, CapacityExceeded, KindOf(New(CapacityExceeded, "满了")))
	assert.Equal(t, Kind(""), KindOf(errors.New("plain")))
	assert.Equal(t, Kind(""), KindOf(nil))

	wrapped := fmt.Errorf("outer: %w", New(InvalidState, "坏状态"))
	assert.Equal(t, InvalidState, KindOf(wrapped))
}

func TestAs(t *testing.T) {
	inner := Insufficient("木材", 3, 1)
	got := As(fmt.Errorf("wrap: %w", inner))
	require.NotNil(t, got)
	assert.Equal(t, 3, got.Need)
	assert.Nil(t, As(errors.New("plain")))
}
