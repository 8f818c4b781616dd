package notify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkalachov/filevault/internal/models"
	"github.com/dkalachov/filevault/internal/timex"
)

func TestPostAndCurrent(t *testing.T) {
	clock := timex.NewMock(time.Date(2025, 4, 15, 12, 0, 0, 0, time.UTC))
	ch := NewChannel(clock)

	assert.Nil(t, ch.Current())

	ch.Success("File encrypted and uploaded securely")

	got := ch.Current()
	require.NotNil(t, got)
	assert.Equal(t, "File encrypted and uploaded securely", got.Message)
	assert.Equal(t, models.NotificationSuccess, got.Kind)
}

func TestPostReplacesCurrent(t *testing.T) {
	clock := timex.NewMock(time.Date(2025, 4, 15, 12, 0, 0, 0, time.UTC))
	ch := NewChannel(clock)

	ch.Success("first")
	ch.Error("second")

	got := ch.Current()
	require.NotNil(t, got)
	assert.Equal(t, "second", got.Message)
	assert.Equal(t, models.NotificationError, got.Kind)
}

func TestLazyExpiry(t *testing.T) {
	clock := timex.NewMock(time.Date(2025, 4, 15, 12, 0, 0, 0, time.UTC))
	ch := NewChannel(clock)

	ch.Success("short lived")

	clock.Advance(2900 * time.Millisecond)
	assert.NotNil(t, ch.Current(), "still inside the window")

	clock.Advance(100 * time.Millisecond)
	assert.Nil(t, ch.Current(), "gone exactly at the boundary")
	assert.Nil(t, ch.Current(), "stays gone")
}

func TestOverwriteResetsExpiry(t *testing.T) {
	clock := timex.NewMock(time.Date(2025, 4, 15, 12, 0, 0, 0, time.UTC))
	ch := NewChannel(clock)

	ch.Success("first")
	clock.Advance(2500 * time.Millisecond)
	ch.Error("second")

	// 4.5s after the first post, well past its window, the replacement lives
	clock.Advance(2 * time.Second)
	got := ch.Current()
	require.NotNil(t, got)
	assert.Equal(t, "second", got.Message)

	clock.Advance(1500 * time.Millisecond)
	assert.Nil(t, ch.Current())
}

func TestDismiss(t *testing.T) {
	clock := timex.NewMock(time.Date(2025, 4, 15, 12, 0, 0, 0, time.UTC))
	ch := NewChannel(clock)

	ch.Success("to be dismissed")
	ch.Dismiss()
	assert.Nil(t, ch.Current())

	// dismissing with nothing showing is a no-op
	ch.Dismiss()
	assert.Nil(t, ch.Current())
}

func TestCurrentReturnsCopy(t *testing.T) {
	clock := timex.NewMock(time.Date(2025, 4, 15, 12, 0, 0, 0, time.UTC))
	ch := NewChannel(clock)

	ch.Success("original")
	got := ch.Current()
	require.NotNil(t, got)
	got.Message = "mutated"

	again := ch.Current()
	require.NotNil(t, again)
	assert.Equal(t, "original", again.Message)
}
