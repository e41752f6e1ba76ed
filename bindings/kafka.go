package bindings

import "context"

const kafkaBindingVersion = "0.5.0"

// KafkaConfig configures the kafka binding. Topic is the required
// identifier for channel bindings.
type KafkaConfig struct {
	Topic                string   `yaml:"topic" schema:"topic" validate:"required_for=channel"`
	Partitions           int      `yaml:"partitions" schema:"partitions" validate:"min=0"`
	Replicas             int      `yaml:"replicas" schema:"replicas" validate:"min=0"`
	CleanupPolicy        []string `yaml:"cleanupPolicy" schema:"cleanupPolicy" validate:"dive,oneof=delete compact"`
	RetentionMs          int64    `yaml:"retentionMs" schema:"retentionMs" validate:"min=0"`
	GroupID              string   `yaml:"groupId" schema:"groupId"`
	ClientID             string   `yaml:"clientId" schema:"clientId"`
	Key                  string   `yaml:"key" schema:"key"`
	SchemaIDLocation     string   `yaml:"schemaIdLocation" schema:"schemaIdLocation" validate:"omitempty,oneof=header payload"`
	SchemaRegistryURL    string   `yaml:"schemaRegistryUrl" schema:"schemaRegistryUrl" validate:"omitempty,url"`
	SchemaRegistryVendor string   `yaml:"schemaRegistryVendor" schema:"schemaRegistryVendor"`
}

// BindingType implements Config.
func (KafkaConfig) BindingType() string { return "kafka" }

// KafkaPlugin generates kafka bindings at every level.
type KafkaPlugin struct{}

var _ TypedPlugin[KafkaConfig] = KafkaPlugin{}

func (KafkaPlugin) Type() string { return "kafka" }

func (KafkaPlugin) Capabilities() Capabilities {
	return Capabilities{
		Type:           "kafka",
		BindingVersion: kafkaBindingVersion,
		Levels:         []Level{LevelChannel, LevelOperation, LevelMessage, LevelServer},
		Features:       []string{"topics", "partitions", "consumer-groups", "schema-registry"},
		AuthModes:      []string{"plain", "scramSha256", "scramSha512", "gssapi", "X509"},
		MessageFormats: []string{"application/json", "application/vnd.apache.avro", "application/protobuf"},
	}
}

func (KafkaPlugin) ValidateConfig(ctx context.Context, cfg KafkaConfig) error {
	return ValidateStruct(ctx, "kafka", cfg)
}

func (KafkaPlugin) GenerateChannelBinding(cfg KafkaConfig) (Fragment, bool) {
	if cfg.Topic == "" {
		return nil, false
	}
	f := Fragment{"topic": cfg.Topic}
	f.set("partitions", cfg.Partitions)
	f.set("replicas", cfg.Replicas)
	topicCfg := Fragment{}
	topicCfg.set("cleanup.policy", cfg.CleanupPolicy)
	topicCfg.set("retention.ms", cfg.RetentionMs)
	f.set("topicConfiguration", topicCfg)
	return f.withVersion(kafkaBindingVersion)
}

func (KafkaPlugin) GenerateOperationBinding(cfg KafkaConfig) (Fragment, bool) {
	f := Fragment{}
	f.set("groupId", enumString(cfg.GroupID))
	f.set("clientId", enumString(cfg.ClientID))
	return f.withVersion(kafkaBindingVersion)
}

func (KafkaPlugin) GenerateMessageBinding(cfg KafkaConfig) (Fragment, bool) {
	f := Fragment{}
	if cfg.Key != "" {
		f["key"] = Fragment{"type": "string", "description": cfg.Key}
	}
	f.set("schemaIdLocation", cfg.SchemaIDLocation)
	return f.withVersion(kafkaBindingVersion)
}

func (KafkaPlugin) GenerateServerBinding(cfg KafkaConfig) (Fragment, bool) {
	f := Fragment{}
	f.set("schemaRegistryUrl", cfg.SchemaRegistryURL)
	f.set("schemaRegistryVendor", cfg.SchemaRegistryVendor)
	return f.withVersion(kafkaBindingVersion)
}
