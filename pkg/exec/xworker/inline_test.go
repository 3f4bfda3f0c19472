package xworker

import (
	"bytes"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omeyang/xworker/pkg/observability/xlog"
)

func TestInline_Lifecycle(t *testing.T) {
	e := NewInline(WithLogger(xlog.Discard()))

	assert.False(t, e.Started())
	assert.False(t, e.DoWork(func() {}))

	require.True(t, e.Start())
	require.True(t, e.Start())
	assert.True(t, e.Started())

	ran := false
	assert.True(t, e.DoWork(func() { ran = true }))
	assert.True(t, ran, "item runs before DoWork returns")
	assert.False(t, e.DoWork(nil))

	assert.True(t, e.Stop())
	assert.True(t, e.Stop())
	assert.False(t, e.Started())
	assert.False(t, e.DoWork(func() {}))
}

func TestInline_Panic(t *testing.T) {
	var got *PanicError
	e := NewInline(WithLogger(xlog.Discard()), WithPanicHandler(func(p *PanicError) { got = p }))
	e.Start()

	assert.True(t, e.DoWork(func() { panic("inline") }))
	require.NotNil(t, got)
	assert.Equal(t, "inline", got.Value)
	assert.Equal(t, 0, got.Worker)
	assert.Equal(t, uint64(1), got.Item)
}

func TestInline_PanicHandlerPanics(t *testing.T) {
	e := NewInline(WithLogger(xlog.Discard()), WithPanicHandler(func(*PanicError) { panic("handler") }))
	e.Start()

	assert.NotPanics(t, func() {
		assert.True(t, e.DoWork(func() { panic("item") }))
	})
	ran := false
	assert.True(t, e.DoWork(func() { ran = true }))
	assert.True(t, ran)
}

func TestInline_PanicLogsStack(t *testing.T) {
	var buf bytes.Buffer
	logger, _, err := xlog.New().SetOutput(&buf).SetFormat("json").Build()
	require.NoError(t, err)

	e := NewInline(WithLogger(logger))
	e.Start()
	require.True(t, e.DoWork(func() { panic("inline") }))

	out := buf.String()
	assert.Contains(t, out, `"msg":"xworker: inline work item panicked"`)
	assert.Contains(t, out, `"`+xlog.KeyStack+`":`)
	assert.Contains(t, out, "TestInline_PanicLogsStack")
}

func TestInline_StopWaitsForItem(t *testing.T) {
	e := NewInline(WithLogger(xlog.Discard()))
	e.Start()

	started := make(chan struct{})
	gate := make(chan struct{})
	var finished atomic.Bool
	go e.DoWork(func() {
		close(started)
		<-gate
		finished.Store(true)
	})
	waitClosed(t, started)

	stopped := make(chan struct{})
	go func() {
		e.Stop()
		close(stopped)
	}()
	select {
	case <-stopped:
		t.Fatal("Stop returned before the running item finished")
	case <-time.After(20 * time.Millisecond):
	}

	close(gate)
	waitClosed(t, stopped)
	assert.True(t, finished.Load())
}
