package bindings

import "context"

const httpBindingVersion = "0.3.0"

// HTTPConfig configures the http binding.
type HTTPConfig struct {
	Method     string   `yaml:"method" schema:"method" validate:"omitempty,oneof=GET PUT POST PATCH DELETE HEAD OPTIONS CONNECT TRACE"`
	Query      []string `yaml:"query" schema:"query"`
	Headers    []string `yaml:"headers" schema:"headers"`
	StatusCode int      `yaml:"statusCode" schema:"statusCode" validate:"omitempty,min=100,max=599"`
}

// BindingType implements Config.
func (HTTPConfig) BindingType() string { return "http" }

// HTTPPlugin generates http operation and message bindings.
type HTTPPlugin struct {
	NotApplicable[HTTPConfig]
}

var _ TypedPlugin[HTTPConfig] = HTTPPlugin{}

func (HTTPPlugin) Type() string { return "http" }

func (HTTPPlugin) Capabilities() Capabilities {
	return Capabilities{
		Type:           "http",
		BindingVersion: httpBindingVersion,
		Levels:         []Level{LevelOperation, LevelMessage},
		Features:       []string{"request-method", "query-parameters", "headers", "status-codes"},
		AuthModes:      []string{"http", "httpApiKey", "oauth2", "openIdConnect"},
		MessageFormats: []string{"application/json", "application/x-www-form-urlencoded", "text/plain"},
	}
}

func (HTTPPlugin) ValidateConfig(ctx context.Context, cfg HTTPConfig) error {
	return ValidateStruct(ctx, "http", cfg)
}

func (HTTPPlugin) GenerateOperationBinding(cfg HTTPConfig) (Fragment, bool) {
	f := Fragment{}
	f.set("method", cfg.Method)
	f.set("query", stringObject(cfg.Query))
	return f.withVersion(httpBindingVersion)
}

func (HTTPPlugin) GenerateMessageBinding(cfg HTTPConfig) (Fragment, bool) {
	f := Fragment{}
	f.set("headers", stringObject(cfg.Headers))
	f.set("statusCode", cfg.StatusCode)
	return f.withVersion(httpBindingVersion)
}
