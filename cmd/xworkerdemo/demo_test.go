package main

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/omeyang/xworker/pkg/exec/xworker"
	"github.com/omeyang/xworker/pkg/observability/xlog"
)

func newMockDemo(out *bytes.Buffer, pools ...executor) *demo {
	i := 0
	return &demo{
		out: &lockedWriter{w: out},
		log: xlog.Discard(),
		newPool: func() (executor, error) {
			p := pools[i]
			i++
			return p, nil
		},
		jobs:  3,
		steps: 1,
	}
}

func TestDemo_LifecycleOrder(t *testing.T) {
	ctrl := gomock.NewController(t)
	first, second := NewMockexecutor(ctrl), NewMockexecutor(ctrl)

	gomock.InOrder(
		first.EXPECT().Start().Return(true),
		first.EXPECT().DoWorkContext(gomock.Any()).Return(true).Times(2),
		first.EXPECT().DoWorkContext(gomock.Any()).Return(false),
		first.EXPECT().Stop().Return(true),
		second.EXPECT().Start().Return(true),
		second.EXPECT().DoWorkContext(gomock.Any()).Return(true).Times(3),
		second.EXPECT().RequestStop().Return(true),
		second.EXPECT().Wait().Return(true),
	)

	var out bytes.Buffer
	require.NoError(t, newMockDemo(&out, first, second).run(context.Background()))

	assert.Equal(t, `xworker pool demo

Synchronous start and stop
Starting pool... OK
Stopping pool... OK
Synchronous start and asynchronous stop
Starting pool... OK
Requesting pool stop... OK
Blocking for stop... OK

`, out.String())
}

func TestDemo_StartFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	first, second := NewMockexecutor(ctrl), NewMockexecutor(ctrl)

	first.EXPECT().Start().Return(false)
	first.EXPECT().Stop().Return(true)
	second.EXPECT().Start().Return(true)
	second.EXPECT().DoWorkContext(gomock.Any()).Return(true).Times(3)
	second.EXPECT().RequestStop().Return(true)
	second.EXPECT().Wait().Return(false)

	var out bytes.Buffer
	err := newMockDemo(&out, first, second).run(context.Background())

	var exitErr *exitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 1, exitErr.code)
	assert.Contains(t, out.String(), "Starting pool... ERROR")
	assert.Contains(t, out.String(), "Blocking for stop... ERROR")
}

func TestDemo_PoolCreateError(t *testing.T) {
	var out bytes.Buffer
	d := &demo{
		out:     &lockedWriter{w: &out},
		log:     xlog.Discard(),
		newPool: func() (executor, error) { return nil, errors.New("no pool") },
	}
	assert.Error(t, d.run(context.Background()))
	assert.Contains(t, out.String(), "Creating pool... ERROR")
}

func TestDemo_InterruptOnCancel(t *testing.T) {
	ctrl := gomock.NewController(t)
	p := NewMockexecutor(ctrl)
	p.EXPECT().DoWorkContext(gomock.Any()).Return(true)
	p.EXPECT().Interrupt().Return(true)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	d := newMockDemo(&out)
	d.jobs = 1
	d.settle = time.Hour
	d.submit(ctx, p)
}

func TestDemo_Job(t *testing.T) {
	var out bytes.Buffer
	d := newMockDemo(&out)
	d.steps = 3

	d.job(7)(context.Background())
	assert.Equal(t, "Test 7: 0\nTest 7: 1\nTest 7: 2\n", out.String())

	out.Reset()
	d.step = time.Hour
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	d.job(2)(ctx)
	assert.Equal(t, "Test 2: 0\n", out.String(), "cancelled context is an interruption point")
}

func TestDemo_RealPool(t *testing.T) {
	var out bytes.Buffer
	s := &settings{log: xlog.Discard()}
	s.cfg.Pool.Workers = 3
	s.cfg.Demo.Jobs = 3
	s.cfg.Demo.Steps = 2
	s.cfg.Demo.Step = 20 * time.Millisecond

	require.NoError(t, newDemo(&out, s).run(context.Background()))
	got := out.String()
	for _, want := range []string{
		"Starting pool... OK",
		"Stopping pool... OK",
		"Requesting pool stop... OK",
		"Blocking for stop... OK",
		"Test 1: 0",
		"Test 3: 1",
	} {
		assert.Contains(t, got, want)
	}
}

var _ executor = (*xworker.Pool)(nil)
