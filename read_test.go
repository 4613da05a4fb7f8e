package ripple

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/ripple/pkg/errors"
)

func TestReadValue(t *testing.T) {
	t.Run("registers exactly one single-value listener", func(t *testing.T) {
		q := &fakeQuery{}
		f := ReadValue(q)

		require.Len(t, q.singleListeners, 1)
		assert.Empty(t, q.valueListeners)
		assert.False(t, f.Settled())
	})

	t.Run("resolves with the raw value on success", func(t *testing.T) {
		q := &fakeQuery{}
		f := ReadValue(q)

		q.singleListeners[0].OnDataChange(&fakeSnapshot{key: "k", val: 42})

		v, err := f.Result()
		require.NoError(t, err)
		assert.Equal(t, 42, v)
	})

	t.Run("rejects on cancellation", func(t *testing.T) {
		q := &fakeQuery{}
		f := ReadValue(q)

		q.singleListeners[0].OnCancelled(&fakeDataError{code: 5, message: "permission denied"})

		_, err := f.Result()
		require.Error(t, err)
		assert.True(t, errors.IsCancelled(err))
		assert.Contains(t, err.Error(), "permission denied")
	})

	t.Run("settles exactly once", func(t *testing.T) {
		q := &fakeQuery{}
		f := ReadValue(q)

		l := q.singleListeners[0]
		l.OnDataChange(&fakeSnapshot{val: "first"})
		l.OnDataChange(&fakeSnapshot{val: "second"})
		l.OnCancelled(&fakeDataError{code: 1, message: "late"})

		v, err := f.Result()
		require.NoError(t, err)
		assert.Equal(t, "first", v)
	})

	t.Run("wait respects context", func(t *testing.T) {
		q := &fakeQuery{}
		f := ReadValue(q)

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
		defer cancel()

		_, err := f.Wait(ctx)
		assert.ErrorIs(t, err, context.DeadlineExceeded)

		// The context error does not settle the read itself.
		q.singleListeners[0].OnDataChange(&fakeSnapshot{val: "late but fine"})
		v, err := f.Result()
		require.NoError(t, err)
		assert.Equal(t, "late but fine", v)
	})
}

func TestReadValueFunc(t *testing.T) {
	t.Run("success branch fires once with value", func(t *testing.T) {
		q := &fakeQuery{}
		var calls int
		var gotVal any
		var gotErr error

		ReadValueFunc(q, func(v any, err error) {
			calls++
			gotVal, gotErr = v, err
		})

		l := q.singleListeners[0]
		l.OnDataChange(&fakeSnapshot{val: "hello"})
		l.OnDataChange(&fakeSnapshot{val: "again"})

		assert.Equal(t, 1, calls)
		assert.Equal(t, "hello", gotVal)
		assert.NoError(t, gotErr)
	})

	t.Run("failure branch fires once with error", func(t *testing.T) {
		q := &fakeQuery{}
		var calls int
		var gotVal any
		var gotErr error

		ReadValueFunc(q, func(v any, err error) {
			calls++
			gotVal, gotErr = v, err
		})

		q.singleListeners[0].OnCancelled(&fakeDataError{code: 9, message: "disconnected"})

		assert.Equal(t, 1, calls)
		assert.Nil(t, gotVal)
		assert.True(t, errors.IsCancelled(gotErr))
	})
}

func TestReadValueAs(t *testing.T) {
	t.Run("resolves with the coerced value", func(t *testing.T) {
		q := &fakeQuery{}
		f := ReadValueAs[string](q)

		q.singleListeners[0].OnDataChange(&fakeSnapshot{val: "typed"})

		v, err := f.Result()
		require.NoError(t, err)
		assert.Equal(t, "typed", v)
	})

	t.Run("coercion failure takes the failure branch", func(t *testing.T) {
		q := &fakeQuery{}
		f := ReadValueAs[int](q)

		q.singleListeners[0].OnDataChange(&fakeSnapshot{val: "not an int"})

		_, err := f.Result()
		require.Error(t, err)
		assert.True(t, errors.IsDecode(err))
	})

	t.Run("cancellation rejects the typed future", func(t *testing.T) {
		q := &fakeQuery{}
		f := ReadValueAs[string](q)

		q.singleListeners[0].OnCancelled(&fakeDataError{code: 4, message: "expired"})

		_, err := f.Result()
		assert.True(t, errors.IsCancelled(err))
	})
}

func TestReadValueAsFunc(t *testing.T) {
	q := &fakeQuery{}
	var calls int
	var got string
	var gotErr error

	ReadValueAsFunc(q, func(v string, err error) {
		calls++
		got, gotErr = v, err
	})

	q.singleListeners[0].OnDataChange(&fakeSnapshot{val: "callback"})

	require.Equal(t, 1, calls)
	assert.Equal(t, "callback", got)
	assert.NoError(t, gotErr)
}
