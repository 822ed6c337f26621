package fsmx

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPendingUnresolved(t *testing.T) {
	p := newPending()

	_, ok := p.Result()
	assert.False(t, ok)
	assert.NoError(t, p.Err())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	res, err := p.Await(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, Failure, res)
}

func TestPendingResolvesOnce(t *testing.T) {
	p := newPending()
	p.resolve(Success, nil)
	p.resolve(Failure, ErrMachineClosed)

	select {
	case <-p.Done():
	default:
		t.Fatal("Done not closed")
	}
	res, ok := p.Result()
	assert.True(t, ok)
	assert.Equal(t, Success, res)
	assert.NoError(t, p.Err())

	res, err := p.Await(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, Success, res)
}
