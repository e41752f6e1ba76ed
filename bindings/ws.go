package bindings

import "context"

const wsBindingVersion = "0.1.0"

// WSConfig configures the ws binding used during the socket upgrade.
type WSConfig struct {
	Method  string   `yaml:"method" schema:"method" validate:"omitempty,oneof=GET POST"`
	Query   []string `yaml:"query" schema:"query"`
	Headers []string `yaml:"headers" schema:"headers"`
}

// BindingType implements Config.
func (WSConfig) BindingType() string { return "ws" }

// WSPlugin generates ws channel bindings.
type WSPlugin struct {
	NotApplicable[WSConfig]
}

var _ TypedPlugin[WSConfig] = WSPlugin{}

func (WSPlugin) Type() string { return "ws" }

func (WSPlugin) Capabilities() Capabilities {
	return Capabilities{
		Type:           "ws",
		BindingVersion: wsBindingVersion,
		Levels:         []Level{LevelChannel},
		Features:       []string{"upgrade-method", "query-parameters", "upgrade-headers"},
		AuthModes:      []string{"httpApiKey", "http"},
		MessageFormats: []string{"application/json", "text/plain"},
	}
}

func (WSPlugin) ValidateConfig(ctx context.Context, cfg WSConfig) error {
	return ValidateStruct(ctx, "ws", cfg)
}

func (WSPlugin) GenerateChannelBinding(cfg WSConfig) (Fragment, bool) {
	f := Fragment{}
	f.set("method", cfg.Method)
	f.set("query", stringObject(cfg.Query))
	f.set("headers", stringObject(cfg.Headers))
	return f.withVersion(wsBindingVersion)
}
