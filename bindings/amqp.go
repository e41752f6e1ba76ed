package bindings

import "context"

const amqpBindingVersion = "0.3.0"

// AMQPConfig configures the amqp binding. Queue is the required identifier
// unless the channel is a routing key on an exchange.
type AMQPConfig struct {
	Is              string   `yaml:"is" schema:"is" validate:"omitempty,oneof=queue routingKey"`
	Queue           string   `yaml:"queue" schema:"queue" validate:"required_unless=Is routingKey"`
	Exchange        string   `yaml:"exchange" schema:"exchange" validate:"required_if=Is routingKey"`
	ExchangeType    string   `yaml:"exchangeType" schema:"exchangeType" validate:"omitempty,oneof=topic direct fanout default headers"`
	Durable         bool     `yaml:"durable" schema:"durable"`
	Exclusive       bool     `yaml:"exclusive" schema:"exclusive"`
	AutoDelete      bool     `yaml:"autoDelete" schema:"autoDelete"`
	VHost           string   `yaml:"vhost" schema:"vhost"`
	Expiration      int      `yaml:"expiration" schema:"expiration" validate:"min=0"`
	UserID          string   `yaml:"userId" schema:"userId"`
	CC              []string `yaml:"cc" schema:"cc"`
	Priority        int      `yaml:"priority" schema:"priority" validate:"min=0"`
	DeliveryMode    int      `yaml:"deliveryMode" schema:"deliveryMode" validate:"omitempty,oneof=1 2"`
	Mandatory       bool     `yaml:"mandatory" schema:"mandatory"`
	ReplyTo         string   `yaml:"replyTo" schema:"replyTo"`
	Ack             bool     `yaml:"ack" schema:"ack"`
	ContentEncoding string   `yaml:"contentEncoding" schema:"contentEncoding"`
	MessageType     string   `yaml:"messageType" schema:"messageType"`
}

// BindingType implements Config.
func (AMQPConfig) BindingType() string { return "amqp" }

// AMQPPlugin generates amqp channel, operation and message bindings.
type AMQPPlugin struct {
	NotApplicable[AMQPConfig]
}

var _ TypedPlugin[AMQPConfig] = AMQPPlugin{}

func (AMQPPlugin) Type() string { return "amqp" }

func (AMQPPlugin) Capabilities() Capabilities {
	return Capabilities{
		Type:           "amqp",
		BindingVersion: amqpBindingVersion,
		Levels:         []Level{LevelChannel, LevelOperation, LevelMessage},
		Features:       []string{"queues", "exchanges", "routing-keys", "delivery-mode", "priority"},
		AuthModes:      []string{"userPassword", "X509"},
		MessageFormats: []string{"application/json", "text/plain", "application/octet-stream"},
	}
}

// ValidateConfig requires the queue or exchange only for channel bindings;
// operation and message bindings never name them.
func (AMQPPlugin) ValidateConfig(ctx context.Context, cfg AMQPConfig) error {
	if level := LevelFrom(ctx); level != "" && level != LevelChannel {
		return ValidateStruct(ctx, "amqp", cfg, "Queue", "Exchange")
	}
	return ValidateStruct(ctx, "amqp", cfg)
}

func (AMQPPlugin) GenerateChannelBinding(cfg AMQPConfig) (Fragment, bool) {
	if cfg.Is == "routingKey" {
		if cfg.Exchange == "" {
			return nil, false
		}
		ex := Fragment{"name": cfg.Exchange}
		ex.set("type", cfg.ExchangeType)
		ex.set("durable", cfg.Durable)
		ex.set("autoDelete", cfg.AutoDelete)
		ex.set("vhost", cfg.VHost)
		return Fragment{"is": "routingKey", "exchange": ex}.withVersion(amqpBindingVersion)
	}
	if cfg.Queue == "" {
		return nil, false
	}
	q := Fragment{"name": cfg.Queue}
	q.set("durable", cfg.Durable)
	q.set("exclusive", cfg.Exclusive)
	q.set("autoDelete", cfg.AutoDelete)
	q.set("vhost", cfg.VHost)
	return Fragment{"is": "queue", "queue": q}.withVersion(amqpBindingVersion)
}

func (AMQPPlugin) GenerateOperationBinding(cfg AMQPConfig) (Fragment, bool) {
	f := Fragment{}
	f.set("expiration", cfg.Expiration)
	f.set("userId", cfg.UserID)
	f.set("cc", cfg.CC)
	f.set("priority", cfg.Priority)
	f.set("deliveryMode", cfg.DeliveryMode)
	f.set("mandatory", cfg.Mandatory)
	f.set("replyTo", cfg.ReplyTo)
	f.set("ack", cfg.Ack)
	return f.withVersion(amqpBindingVersion)
}

func (AMQPPlugin) GenerateMessageBinding(cfg AMQPConfig) (Fragment, bool) {
	f := Fragment{}
	f.set("contentEncoding", cfg.ContentEncoding)
	f.set("messageType", cfg.MessageType)
	return f.withVersion(amqpBindingVersion)
}
