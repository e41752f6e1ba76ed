package bindings

import "context"

const sqsBindingVersion = "0.2.0"

// SQSConfig configures the sqs binding. A queue is identified by Name or by
// QueueARN; queue ARNs must include a region.
type SQSConfig struct {
	Name                   string `yaml:"name" schema:"name" validate:"required_without=QueueARN"`
	QueueARN               string `yaml:"queueArn" schema:"queueArn" validate:"required_without=Name,omitempty,arn=sqs"`
	FIFO                   bool   `yaml:"fifo" schema:"fifo"`
	DeduplicationScope     string `yaml:"deduplicationScope" schema:"deduplicationScope" validate:"omitempty,oneof=queue messageGroup"`
	DeliveryDelay          int    `yaml:"deliveryDelay" schema:"deliveryDelay" validate:"min=0,max=900"`
	VisibilityTimeout      int    `yaml:"visibilityTimeout" schema:"visibilityTimeout" validate:"min=0,max=43200"`
	ReceiveMessageWaitTime int    `yaml:"receiveMessageWaitTime" schema:"receiveMessageWaitTime" validate:"min=0,max=20"`
	MessageRetentionPeriod int    `yaml:"messageRetentionPeriod" schema:"messageRetentionPeriod" validate:"omitempty,min=60,max=1209600"`
	DeadLetterQueueARN     string `yaml:"deadLetterQueueArn" schema:"deadLetterQueueArn" validate:"omitempty,arn=sqs"`
	MaxReceiveCount        int    `yaml:"maxReceiveCount" schema:"maxReceiveCount" validate:"min=0"`
}

// BindingType implements Config.
func (SQSConfig) BindingType() string { return "sqs" }

// SQSPlugin generates AWS SQS channel bindings.
type SQSPlugin struct {
	NotApplicable[SQSConfig]
}

var _ TypedPlugin[SQSConfig] = SQSPlugin{}

func (SQSPlugin) Type() string { return "sqs" }

func (SQSPlugin) Capabilities() Capabilities {
	return Capabilities{
		Type:           "sqs",
		BindingVersion: sqsBindingVersion,
		Provider:       "aws",
		Levels:         []Level{LevelChannel},
		Features:       []string{"fifo-queues", "delivery-delay", "visibility-timeout", "long-polling", "dead-letter-queues"},
		AuthModes:      []string{"iam", "sigv4"},
		MessageFormats: []string{"application/json", "text/plain"},
	}
}

func (SQSPlugin) ValidateConfig(ctx context.Context, cfg SQSConfig) error {
	return ValidateStruct(ctx, "sqs", cfg)
}

func (SQSPlugin) GenerateChannelBinding(cfg SQSConfig) (Fragment, bool) {
	name := cfg.Name
	if name == "" {
		name = arnResource(cfg.QueueARN)
	}
	if name == "" {
		return nil, false
	}
	q := Fragment{"name": name, "fifoQueue": cfg.FIFO}
	q.set("deduplicationScope", cfg.DeduplicationScope)
	q.set("deliveryDelay", cfg.DeliveryDelay)
	q.set("visibilityTimeout", cfg.VisibilityTimeout)
	q.set("receiveMessageWaitTime", cfg.ReceiveMessageWaitTime)
	q.set("messageRetentionPeriod", cfg.MessageRetentionPeriod)
	if cfg.DeadLetterQueueARN != "" {
		redrive := Fragment{"deadLetterQueue": Fragment{"arn": cfg.DeadLetterQueueARN}}
		redrive.set("maxReceiveCount", cfg.MaxReceiveCount)
		q["redrivePolicy"] = redrive
	}
	return Fragment{"queue": q}.withVersion(sqsBindingVersion)
}
