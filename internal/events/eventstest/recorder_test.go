package eventstest

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/example/grocery/internal/events"
	"github.com/example/grocery/internal/logger"
)

func TestRecorder(t *testing.T) {
	rec := &Recorder{}
	events.Emit(context.Background(), rec, logger.Discard(), events.OrderCreated, "a")
	events.Emit(context.Background(), rec, logger.Discard(), events.PaymentPrefix+"paid", "b")

	assert.Equal(t, []string{"order.created", "payment.paid"}, rec.Keys())
	assert.Equal(t, "b", rec.Events()[1].Payload)
}

func TestRecorderConcurrentPublish(t *testing.T) {
	rec := &Recorder{}
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = rec.Publish(context.Background(), fmt.Sprintf("k%d", i), i)
			_ = rec.Keys()
		}(i)
	}
	wg.Wait()

	assert.Len(t, rec.Events(), 50)
}
