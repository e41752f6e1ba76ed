package bindings

import "context"

const mqttBindingVersion = "0.2.0"

// MQTTConfig configures the mqtt binding.
type MQTTConfig struct {
	QoS                   *int   `yaml:"qos" schema:"qos" validate:"omitempty,min=0,max=2"`
	Retain                bool   `yaml:"retain" schema:"retain"`
	MessageExpiryInterval int    `yaml:"messageExpiryInterval" schema:"messageExpiryInterval" validate:"min=0"`
	ContentType           string `yaml:"contentType" schema:"contentType"`
	ResponseTopic         string `yaml:"responseTopic" schema:"responseTopic"`
	ClientID              string `yaml:"clientId" schema:"clientId"`
	CleanSession          bool   `yaml:"cleanSession" schema:"cleanSession"`
	KeepAlive             int    `yaml:"keepAlive" schema:"keepAlive" validate:"min=0"`
	LastWillTopic         string `yaml:"lastWillTopic" schema:"lastWillTopic"`
	LastWillQoS           *int   `yaml:"lastWillQos" schema:"lastWillQos" validate:"omitempty,min=0,max=2"`
}

// BindingType implements Config.
func (MQTTConfig) BindingType() string { return "mqtt" }

// MQTTPlugin generates mqtt operation, message and server bindings.
type MQTTPlugin struct{}

var _ TypedPlugin[MQTTConfig] = MQTTPlugin{}

func (MQTTPlugin) Type() string { return "mqtt" }

func (MQTTPlugin) Capabilities() Capabilities {
	return Capabilities{
		Type:           "mqtt",
		BindingVersion: mqttBindingVersion,
		Levels:         []Level{LevelOperation, LevelMessage, LevelServer},
		Features:       []string{"qos", "retain", "last-will", "message-expiry"},
		AuthModes:      []string{"userPassword", "X509"},
		MessageFormats: []string{"application/json", "application/octet-stream"},
	}
}

func (MQTTPlugin) ValidateConfig(ctx context.Context, cfg MQTTConfig) error {
	return ValidateStruct(ctx, "mqtt", cfg)
}

// GenerateChannelBinding is not applicable: mqtt channels carry no binding fields.
func (MQTTPlugin) GenerateChannelBinding(MQTTConfig) (Fragment, bool) { return nil, false }

func (MQTTPlugin) GenerateOperationBinding(cfg MQTTConfig) (Fragment, bool) {
	f := Fragment{}
	f.set("qos", cfg.QoS)
	f.set("retain", cfg.Retain)
	f.set("messageExpiryInterval", cfg.MessageExpiryInterval)
	return f.withVersion(mqttBindingVersion)
}

func (MQTTPlugin) GenerateMessageBinding(cfg MQTTConfig) (Fragment, bool) {
	f := Fragment{}
	f.set("contentType", cfg.ContentType)
	f.set("responseTopic", cfg.ResponseTopic)
	return f.withVersion(mqttBindingVersion)
}

func (MQTTPlugin) GenerateServerBinding(cfg MQTTConfig) (Fragment, bool) {
	f := Fragment{}
	f.set("clientId", cfg.ClientID)
	f.set("cleanSession", cfg.CleanSession)
	f.set("keepAlive", cfg.KeepAlive)
	if cfg.LastWillTopic != "" {
		will := Fragment{"topic": cfg.LastWillTopic}
		will.set("qos", cfg.LastWillQoS)
		f["lastWill"] = will
	}
	return f.withVersion(mqttBindingVersion)
}
