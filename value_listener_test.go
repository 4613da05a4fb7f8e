package ripple

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValueListenerBuilder(t *testing.T) {
	snap := &fakeSnapshot{key: "k", val: "v"}
	derr := &fakeDataError{code: 7, message: "gone"}

	t.Run("zero slots ignores all events", func(t *testing.T) {
		l := NewValueListener().Build()
		require.NotNil(t, l)

		// Neither call may panic or have any observable effect.
		l.OnDataChange(snap)
		l.OnCancelled(derr)
	})

	t.Run("handlers receive exact arguments", func(t *testing.T) {
		var gotSnap Snapshot
		var gotErr DataError

		l := NewValueListener().
			OnDataChange(func(s Snapshot) { gotSnap = s }).
			OnCancelled(func(e DataError) { gotErr = e }).
			Build()

		l.OnDataChange(snap)
		assert.Same(t, snap, gotSnap)

		l.OnCancelled(derr)
		assert.Same(t, derr, gotErr)
	})

	t.Run("last write wins on double set", func(t *testing.T) {
		var first, second int

		l := NewValueListener().
			OnDataChange(func(Snapshot) { first++ }).
			OnDataChange(func(Snapshot) { second++ }).
			Build()

		l.OnDataChange(snap)
		assert.Zero(t, first)
		assert.Equal(t, 1, second)
	})

	t.Run("partial spec leaves other slots silent", func(t *testing.T) {
		var changes int
		l := NewValueListener().
			OnDataChange(func(Snapshot) { changes++ }).
			Build()

		l.OnCancelled(derr) // unset slot, must be a no-op
		l.OnDataChange(snap)
		assert.Equal(t, 1, changes)
	})

	t.Run("building twice yields independent listeners", func(t *testing.T) {
		var calls int
		b := NewValueListener().OnDataChange(func(Snapshot) { calls++ })

		first := b.Build()
		second := b.Build()
		require.NotSame(t, first, second)

		first.OnDataChange(snap)
		second.OnDataChange(snap)
		assert.Equal(t, 2, calls)
	})

	t.Run("builder reconfiguration does not touch built listeners", func(t *testing.T) {
		var oldCalls, newCalls int
		b := NewValueListener().OnDataChange(func(Snapshot) { oldCalls++ })
		built := b.Build()

		b.OnDataChange(func(Snapshot) { newCalls++ })
		built.OnDataChange(snap)

		assert.Equal(t, 1, oldCalls)
		assert.Zero(t, newCalls)
	})

	t.Run("handler panics propagate", func(t *testing.T) {
		l := NewValueListener().
			OnDataChange(func(Snapshot) { panic("boom") }).
			Build()

		assert.PanicsWithValue(t, "boom", func() { l.OnDataChange(snap) })
	})
}
