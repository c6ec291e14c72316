package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/example/grocery/internal/logger"
)

type failing struct{ calls int }

func (f *failing) Publish(context.Context, string, any) error {
	f.calls++
	return errors.New("broker down")
}

func (f *failing) Close() error { return nil }

func TestEmitSwallowsPublishErrors(t *testing.T) {
	pub := &failing{}
	Emit(context.Background(), pub, logger.Discard(), OrderCreated, map[string]string{"id": "1"})
	assert.Equal(t, 1, pub.calls)

	Emit(context.Background(), nil, logger.Discard(), OrderCreated, nil)
}

func TestNoopPublish(t *testing.T) {
	assert.NoError(t, Noop{}.Publish(context.Background(), OrderCreated, nil))
	assert.NoError(t, Noop{}.Close())
}
