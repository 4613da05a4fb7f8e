package ripple

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/ripple/pkg/errors"
)

func TestNewValueListenerFrom(t *testing.T) {
	snap := &fakeSnapshot{key: "k", val: "v"}
	derr := &fakeDataError{code: 1, message: "x"}

	t.Run("populates declared slots", func(t *testing.T) {
		var changes, cancels int
		b, err := NewValueListenerFrom(Handlers{
			HandlerDataChange: func(Snapshot) { changes++ },
			HandlerCancelled:  func(DataError) { cancels++ },
		})
		require.NoError(t, err)

		l := b.Build()
		l.OnDataChange(snap)
		l.OnCancelled(derr)
		assert.Equal(t, 1, changes)
		assert.Equal(t, 1, cancels)
	})

	t.Run("empty declaration is legal", func(t *testing.T) {
		b, err := NewValueListenerFrom(Handlers{})
		require.NoError(t, err)
		b.Build().OnDataChange(snap)
	})

	t.Run("unknown handler name fails loudly", func(t *testing.T) {
		b, err := NewValueListenerFrom(Handlers{
			"onDataChanged": func(Snapshot) {}, // typo
		})
		require.Error(t, err)
		assert.Nil(t, b)
		assert.True(t, errors.IsUnknownHandler(err))
		assert.Contains(t, err.Error(), "onDataChanged")
	})

	t.Run("child slot is unknown to value family", func(t *testing.T) {
		_, err := NewValueListenerFrom(Handlers{
			HandlerChildAdded: func(Snapshot, string) {},
		})
		require.Error(t, err)
		assert.True(t, errors.IsUnknownHandler(err))
	})

	t.Run("mistyped handler fails loudly", func(t *testing.T) {
		b, err := NewValueListenerFrom(Handlers{
			HandlerDataChange: func(s Snapshot, prev string) {},
		})
		require.Error(t, err)
		assert.Nil(t, b)
		assert.True(t, errors.IsInvalidHandler(err))
		assert.Contains(t, err.Error(), HandlerDataChange)
	})
}

func TestNewChildListenerFrom(t *testing.T) {
	snap := &fakeSnapshot{key: "k", val: "v"}
	derr := &fakeDataError{code: 1, message: "x"}

	t.Run("populates declared slots", func(t *testing.T) {
		var added, changed, moved, removed, cancelled int
		b, err := NewChildListenerFrom(Handlers{
			HandlerChildAdded:   func(Snapshot, string) { added++ },
			HandlerChildChanged: func(Snapshot, string) { changed++ },
			HandlerChildMoved:   func(Snapshot, string) { moved++ },
			HandlerChildRemoved: func(Snapshot) { removed++ },
			HandlerCancelled:    func(DataError) { cancelled++ },
		})
		require.NoError(t, err)

		l := b.Build()
		l.OnChildAdded(snap, "")
		l.OnChildChanged(snap, "")
		l.OnChildMoved(snap, "")
		l.OnChildRemoved(snap)
		l.OnCancelled(derr)

		assert.Equal(t, 1, added)
		assert.Equal(t, 1, changed)
		assert.Equal(t, 1, moved)
		assert.Equal(t, 1, removed)
		assert.Equal(t, 1, cancelled)
	})

	t.Run("sparse declaration builds full listener", func(t *testing.T) {
		var added int
		b, err := NewChildListenerFrom(Handlers{
			HandlerChildAdded: func(Snapshot, string) { added++ },
		})
		require.NoError(t, err)

		l := b.Build()
		l.OnChildRemoved(snap) // undeclared, silent
		l.OnChildAdded(snap, "")
		assert.Equal(t, 1, added)
	})

	t.Run("value slot is unknown to child family", func(t *testing.T) {
		b, err := NewChildListenerFrom(Handlers{
			HandlerDataChange: func(Snapshot) {},
		})
		require.Error(t, err)
		assert.Nil(t, b)
		assert.True(t, errors.IsUnknownHandler(err))
		assert.Contains(t, err.Error(), "child")
	})

	t.Run("mistyped handler fails loudly", func(t *testing.T) {
		_, err := NewChildListenerFrom(Handlers{
			HandlerChildRemoved: func(Snapshot, string) {},
		})
		require.Error(t, err)
		assert.True(t, errors.IsInvalidHandler(err))
	})

	t.Run("no partial listener escapes a bad declaration", func(t *testing.T) {
		b, err := NewChildListenerFrom(Handlers{
			HandlerChildAdded: func(Snapshot, string) {},
			"onChildsAdded":   func(Snapshot, string) {},
		})
		require.Error(t, err)
		assert.Nil(t, b)
	})
}
