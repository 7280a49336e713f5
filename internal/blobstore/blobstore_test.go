package blobstore_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"listsync/internal/blobstore"
)

func TestTransient(t *testing.T) {
	assert.NoError(t, blobstore.Transient(nil))

	err := fmt.Errorf("fetch ToDoList.txt: %w", blobstore.Transient(context.DeadlineExceeded))

	assert.True(t, blobstore.IsTransient(err))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.EqualError(t, err, "fetch ToDoList.txt: network error: context deadline exceeded")
}

func TestIsTransient_OtherErrors(t *testing.T) {
	assert.False(t, blobstore.IsTransient(blobstore.ErrConflict))
	assert.False(t, blobstore.IsTransient(&blobstore.RejectedError{StatusCode: 500}))
	assert.False(t, blobstore.IsTransient(errors.New("boom")))
}

func TestRejectedError(t *testing.T) {
	assert.EqualError(t, &blobstore.RejectedError{StatusCode: 500}, "remote rejected request (status 500)")
	assert.EqualError(t, &blobstore.RejectedError{StatusCode: 404, Message: "repo missing"},
		"remote rejected request (status 404): repo missing")

	var rej *blobstore.RejectedError
	wrapped := fmt.Errorf("put: %w", &blobstore.RejectedError{StatusCode: 502})
	assert.True(t, errors.As(wrapped, &rej))
	assert.Equal(t, 502, rej.StatusCode)
}
