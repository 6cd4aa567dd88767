package dashboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRelay_DropsBeforeBind(t *testing.T) {
	var r Relay
	assert.NotPanics(t, func() { r.Send("hello") })
}

func TestDigitIndex(t *testing.T) {
	assert.Equal(t, 0, digitIndex("1"))
	assert.Equal(t, 1, digitIndex("alt+2"))
	assert.Equal(t, 2, digitIndex("f3"))
	assert.Equal(t, -1, digitIndex("4"))
}
