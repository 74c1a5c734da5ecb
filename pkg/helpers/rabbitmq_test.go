package helpers

import (
	"testing"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJSONPublishing(t *testing.T) {
	msg, err := NewJSONPublishing(map[string]string{"to": "user@email.com"})
	require.NoError(t, err)

	assert.Equal(t, "application/json", msg.ContentType)
	assert.Equal(t, amqp.Persistent, msg.DeliveryMode)
	assert.JSONEq(t, `{"to":"user@email.com"}`, string(msg.Body))
	assert.False(t, msg.Timestamp.IsZero())
}

func TestNewJSONPublishing_Unencodable(t *testing.T) {
	_, err := NewJSONPublishing(map[string]any{"ch": make(chan int)})
	assert.Error(t, err)
}

func TestRabbitPublisher_CloseNil(t *testing.T) {
	var p *RabbitPublisher
	assert.NotPanics(t, p.Close)
}
