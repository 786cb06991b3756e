package main

import (
	"testing"

	"github.com/streadway/amqp"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestHandleEvent(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	handler := handleEvent(zap.New(core))

	err := handler(amqp.Delivery{Body: []byte(`{"type":"cart.item_added","product_id":"1","quantity":3,"item_count":3,"total":"59.97"}`)})
	assert.NoError(t, err)
	entries := logs.FilterMessage("cart event").All()
	if assert.Len(t, entries, 1) {
		fields := entries[0].ContextMap()
		assert.Equal(t, "cart.item_added", fields["type"])
		assert.Equal(t, "59.97", fields["total"])
	}

	err = handler(amqp.Delivery{Body: []byte("not json")})
	assert.Error(t, err)
}
