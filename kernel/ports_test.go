package kernel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignalPort_DeliversPulse(t *testing.T) {
	s, c := newTestScheduler(t)
	d := s.DAG()

	fired := false
	out, err := NewSignalOutPort(d, "out")
	require.NoError(t, err)
	in, err := NewSignalInPort(d, "in", c, 1, func() error { fired = true; return nil })
	require.NoError(t, err)
	require.NoError(t, BindSignal(d, out, in))

	require.NoError(t, s.Finalize())
	require.NoError(t, out.Send(s))
	require.NoError(t, s.Run(0))

	assert.True(t, fired)
	assert.Equal(t, uint64(1), s.Tick())
}

func TestDataPort_DeliversValueToAllBound(t *testing.T) {
	s, c := newTestScheduler(t)
	d := s.DAG()

	var got1, got2 int
	out, err := NewDataOutPort[int](d, "out")
	require.NoError(t, err)
	in1, err := NewDataInPort[int](d, "in1", c, 0, func(v int) error { got1 = v; return nil })
	require.NoError(t, err)
	in2, err := NewDataInPort[int](d, "in2", c, 0, func(v int) error { got2 = v; return nil })
	require.NoError(t, err)
	require.NoError(t, BindData(d, out, in1))
	require.NoError(t, BindData(d, out, in2))

	require.NoError(t, s.Finalize())
	require.NoError(t, out.Send(s, 99))
	require.NoError(t, s.Run(0))

	assert.Equal(t, 99, got1)
	assert.Equal(t, 99, got2)
}

func TestSyncPort_RoundsToDestinationClockNextEdge(t *testing.T) {
	s, root := newTestScheduler(t)
	d := s.DAG()

	// slow is half the speed of root: its edges land only on even ticks.
	slow, err := root.Derive("slow", 1, 2)
	require.NoError(t, err)

	var got int
	var firedAtTick uint64
	out, err := NewSyncOutPort[int](d, "out")
	require.NoError(t, err)
	in, err := NewSyncInPort[int](d, "in", slow, func(v int) error { got = v; return nil })
	require.NoError(t, err)
	require.NoError(t, BindSync(d, out, in))

	require.NoError(t, s.Finalize())

	// send at tick 0; slow's next edge strictly after tick 0 is tick 2.
	require.NoError(t, out.Send(s, 5))
	err = s.Run(0)
	require.NoError(t, err)
	firedAtTick = s.Tick()

	assert.Equal(t, 5, got)
	assert.Equal(t, uint64(2), firedAtTick)
}
