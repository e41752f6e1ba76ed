package bindings

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws/arn"
)

const snsBindingVersion = "1.0.0"

// SNSConfig configures the sns binding. A topic is identified by Name or
// by TopicARN.
type SNSConfig struct {
	Name                      string   `yaml:"name" schema:"name" validate:"required_without=TopicARN"`
	TopicARN                  string   `yaml:"topicArn" schema:"topicArn" validate:"required_without=Name,omitempty,arn=sns"`
	FIFO                      bool     `yaml:"fifo" schema:"fifo"`
	ContentBasedDeduplication bool     `yaml:"contentBasedDeduplication" schema:"contentBasedDeduplication"`
	Protocol                  string   `yaml:"protocol" schema:"protocol" validate:"omitempty,oneof=http https email email-json sms sqs application lambda firehose"`
	Endpoint                  string   `yaml:"endpoint" schema:"endpoint"`
	RawMessageDelivery        bool     `yaml:"rawMessageDelivery" schema:"rawMessageDelivery"`
	FilterAttributes          []string `yaml:"filterAttributes" schema:"filterAttributes"`
}

// BindingType implements Config.
func (SNSConfig) BindingType() string { return "sns" }

// SNSPlugin generates AWS SNS channel and operation bindings.
type SNSPlugin struct {
	NotApplicable[SNSConfig]
}

var _ TypedPlugin[SNSConfig] = SNSPlugin{}

func (SNSPlugin) Type() string { return "sns" }

func (SNSPlugin) Capabilities() Capabilities {
	return Capabilities{
		Type:           "sns",
		BindingVersion: snsBindingVersion,
		Provider:       "aws",
		Levels:         []Level{LevelChannel, LevelOperation},
		Features:       []string{"fifo-topics", "content-based-deduplication", "subscriptions", "raw-message-delivery", "filter-policies"},
		AuthModes:      []string{"iam", "sigv4"},
		MessageFormats: []string{"application/json", "text/plain"},
	}
}

func (SNSPlugin) ValidateConfig(ctx context.Context, cfg SNSConfig) error {
	return ValidateStruct(ctx, "sns", cfg)
}

func (SNSPlugin) GenerateChannelBinding(cfg SNSConfig) (Fragment, bool) {
	name := cfg.Name
	if name == "" {
		name = arnResource(cfg.TopicARN)
	}
	if name == "" {
		return nil, false
	}
	f := Fragment{"name": name}
	if cfg.FIFO {
		ordering := Fragment{"type": "FIFO"}
		ordering.set("contentBasedDeduplication", cfg.ContentBasedDeduplication)
		f["ordering"] = ordering
	}
	return f.withVersion(snsBindingVersion)
}

func (SNSPlugin) GenerateOperationBinding(cfg SNSConfig) (Fragment, bool) {
	if cfg.Protocol == "" || cfg.Endpoint == "" {
		return nil, false
	}
	endpoint := Fragment{}
	switch cfg.Protocol {
	case "http", "https", "email", "email-json", "sms":
		endpoint["url"] = cfg.Endpoint
	default:
		if _, err := arn.Parse(cfg.Endpoint); err == nil {
			endpoint["arn"] = cfg.Endpoint
		} else {
			endpoint["name"] = cfg.Endpoint
		}
	}
	consumer := Fragment{
		"protocol":           cfg.Protocol,
		"endpoint":           endpoint,
		"rawMessageDelivery": cfg.RawMessageDelivery,
	}
	if len(cfg.FilterAttributes) > 0 {
		consumer["filterPolicyScope"] = "MessageAttributes"
		consumer["filterPolicy"] = Fragment{"attributes": cfg.FilterAttributes}
	}
	return Fragment{"consumers": []Fragment{consumer}}.withVersion(snsBindingVersion)
}

// arnResource returns the resource segment of a valid ARN, or "".
func arnResource(s string) string {
	if s == "" {
		return ""
	}
	a, err := arn.Parse(s)
	if err != nil {
		return ""
	}
	return a.Resource
}
