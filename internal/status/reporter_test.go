package status_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/sdkfamous/dnd-character-sheet/internal/pkg/clock"
	"github.com/sdkfamous/dnd-character-sheet/internal/status"
)

func TestReporter_SuccessAutoClears(t *testing.T) {
	c := clock.NewFake(time.Unix(0, 0))
	r := status.NewReporter(c, time.Second)

	r.Progress("Saving...")
	assert.Equal(t, status.StateSaving, r.Current().State)

	r.Success("Saved")
	assert.Equal(t, status.StateSaved, r.Current().State)
	assert.Equal(t, status.SeveritySuccess, r.Current().Severity)

	c.Advance(999 * time.Millisecond)
	assert.Equal(t, "Saved", r.Current().Message)

	c.Advance(time.Millisecond)
	assert.Equal(t, status.StateIdle, r.Current().State)
	assert.Empty(t, r.Current().Message)
}

func TestReporter_ErrorPersists(t *testing.T) {
	c := clock.NewFake(time.Unix(0, 0))
	r := status.NewReporter(c, time.Second)

	r.Error("Save failed: network down")
	c.Advance(time.Hour)

	assert.Equal(t, status.StateError, r.Current().State)
	assert.Equal(t, "Save failed: network down", r.Current().Message)
}

func TestReporter_NewReportCancelsPendingClear(t *testing.T) {
	c := clock.NewFake(time.Unix(0, 0))
	r := status.NewReporter(c, time.Second)

	r.Success("Saved")
	c.Advance(500 * time.Millisecond)
	r.Error("Load failed")
	c.Advance(time.Second)

	assert.Equal(t, status.StateError, r.Current().State)
	assert.Equal(t, 0, c.Pending())
}

func TestReporter_Reset(t *testing.T) {
	c := clock.NewFake(time.Unix(0, 0))
	r := status.NewReporter(c, 0)

	r.Progress("Loading...")
	r.Reset()

	assert.Equal(t, status.StateIdle, r.Current().State)
	assert.Empty(t, r.Current().Message)
}
