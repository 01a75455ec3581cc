package schedule

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petem573/dealflow/internal/logger"
)

func TestOverrunningPassIsSkippedNotOverlapped(t *testing.T) {
	c := newCron(logger.NewNoOp())

	var runs int32
	block := make(chan struct{})
	_, err := c.AddFunc("@every 200ms", func() {
		atomic.AddInt32(&runs, 1)
		<-block
	})
	require.NoError(t, err)

	c.Start()
	// Several ticks elapse while the first pass is still blocked; none
	// of them may start a second writer.
	time.Sleep(750 * time.Millisecond)
	close(block)
	<-c.Stop().Done()

	assert.Equal(t, int32(1), atomic.LoadInt32(&runs))
}

func TestPanickingPassDoesNotKillSchedule(t *testing.T) {
	c := newCron(logger.NewNoOp())

	var runs int32
	_, err := c.AddFunc("@every 100ms", func() {
		atomic.AddInt32(&runs, 1)
		panic("pass blew up")
	})
	require.NoError(t, err)

	c.Start()
	time.Sleep(450 * time.Millisecond)
	<-c.Stop().Done()

	assert.GreaterOrEqual(t, atomic.LoadInt32(&runs), int32(2))
}
