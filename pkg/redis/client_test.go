package redis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewClient_Unreachable(t *testing.T) {
	// port 1 is never a Redis server
	client, err := NewClient("127.0.0.1", 1, "", 0, 1)
	assert.Error(t, err)
	assert.Nil(t, client)
}
