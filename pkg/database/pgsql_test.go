package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPgxPool_RejectsBadURLs(t *testing.T) {
	_, err := NewPgxPool(context.Background(), "", false)
	assert.ErrorContains(t, err, "cannot be empty")

	_, err = NewPgxPool(context.Background(), "postgres://user@host:notaport/db", false)
	assert.ErrorContains(t, err, "failed to parse database config")
}

func TestClosePgxPool_Nil(t *testing.T) {
	assert.NotPanics(t, func() { ClosePgxPool(nil) })
}
