package rabbitmq

import (
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/ziflex/lecho/v3"
)

// A listener whose goroutine is gone must not stall the reconnection loop.
func TestBroadcastSkipsListenerThatStoppedReading(t *testing.T) {
	c := &defaultAMQPClient{logger: lecho.New(io.Discard)}
	stopped := make(chan listenerMsg, 2)
	live := make(chan listenerMsg, 2)
	c.listeners = []chan listenerMsg{stopped, live}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 3; i++ {
			c.broadcast(msgReconnect)
			<-live
		}
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("broadcast blocked on a full listener channel")
	}
	assert.Len(t, stopped, 2)
}

func TestRemoveListener(t *testing.T) {
	c := &defaultAMQPClient{logger: lecho.New(io.Discard)}
	first := make(chan listenerMsg, 2)
	second := make(chan listenerMsg, 2)
	c.listeners = []chan listenerMsg{first, second}

	c.removeListener(first)
	assert.Equal(t, []chan listenerMsg{second}, c.listeners)

	c.removeListener(first)
	assert.Len(t, c.listeners, 1)

	c.broadcast(msgClose)
	assert.Equal(t, msgClose, <-second)
	assert.Empty(t, first)
}
