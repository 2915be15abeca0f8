package errors

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError(t *testing.T) {
	e1 := New("cause1")
	e2 := New("cause2").Wrap(e1)
	e := New("dummy").Wrap(e2)
	e3 := e.Unwrap()
	assert.True(t, Is(e, e1))
	assert.True(t, Is(e, e2))
	assert.True(t, e3 == e2)
}

func TestErrorSentinel(t *testing.T) {
	sentinel := New("sentinel")
	cause1 := New("cause1")
	cause2 := New("cause2")

	w1 := sentinel.Wrap(cause1)
	w2 := sentinel.Wrap(cause2)

	// wrapping does not clobber the sentinel or earlier wraps
	assert.Nil(t, sentinel.Unwrap())
	assert.True(t, Is(w1, sentinel))
	assert.True(t, Is(w2, sentinel))
	assert.True(t, Is(w1, cause1))
	assert.False(t, Is(w1, cause2))
	assert.Equal(t, sentinel.Error(), w1.Error())
}
