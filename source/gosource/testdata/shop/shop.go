// Package shop is a fixture for directive loading.
//
//asyncapi:info title=Shop&version=1.2.0
//asyncapi:server production host=broker:9092&protocol=kafka
//asyncapi:binding kafka schemaRegistryUrl=https://registry.local
package shop

import (
	"context"
	"time"
)

// Order is a placed order.
//
//asyncapi:model
//asyncapi:message title=Order+placed&contentType=application/json
type Order struct {
	ID       string    `json:"id"`
	Total    float64   `json:"total,omitempty"`
	Lines    []Line    `json:"lines"`
	PlacedAt time.Time `json:"placedAt"`
	Note     *string   `json:"note"`
	internal int
}

// Line is inlined into Order.
type Line struct {
	SKU string `json:"sku"`
	Qty int    `json:"qty"`
}

// PublishOrder emits an order.
//
//asyncapi:operation channel=orders/created&payload=Order&summary=Order+placed
//asyncapi:binding kafka topic=orders&partitions=3
func PublishOrder(ctx context.Context, o Order) error { return nil }

// OnRefund receives refunds.
//
//asyncapi:operation type=subscribe&name=refundIssued
func OnRefund(ctx context.Context) error { return nil }

//asyncapi:security type=http&scheme=bearer&bearerFormat=JWT
var bearer = "jwt"

// Helper has no directives.
func Helper() {}
