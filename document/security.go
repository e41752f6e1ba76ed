package document

import (
	"fmt"
	"slices"
)

// Security scheme kinds defined by AsyncAPI 3.0.
const (
	SchemeUserPassword         = "userPassword"
	SchemeAPIKey               = "apiKey"
	SchemeX509                 = "X509"
	SchemeSymmetricEncryption  = "symmetricEncryption"
	SchemeAsymmetricEncryption = "asymmetricEncryption"
	SchemeHTTPAPIKey           = "httpApiKey"
	SchemeHTTP                 = "http"
	SchemeOAuth2               = "oauth2"
	SchemeOpenIDConnect        = "openIdConnect"
	SchemePlain                = "plain"
	SchemeScramSha256          = "scramSha256"
	SchemeScramSha512          = "scramSha512"
	SchemeGSSAPI               = "gssapi"
)

// SecuritySchemeKinds lists every recognized security scheme type.
var SecuritySchemeKinds = []string{
	SchemeUserPassword, SchemeAPIKey, SchemeX509, SchemeSymmetricEncryption,
	SchemeAsymmetricEncryption, SchemeHTTPAPIKey, SchemeHTTP, SchemeOAuth2,
	SchemeOpenIDConnect, SchemePlain, SchemeScramSha256, SchemeScramSha512, SchemeGSSAPI,
}

// SecurityScheme defines a security mechanism. Type selects which of the
// remaining fields are meaningful.
type SecurityScheme struct {
	Ref              string      `yaml:"$ref,omitempty" json:"$ref,omitempty"`
	Type             string      `yaml:"type,omitempty" json:"type,omitempty"`
	Description      string      `yaml:"description,omitempty" json:"description,omitempty"`
	Name             string      `yaml:"name,omitempty" json:"name,omitempty"`                         // httpApiKey
	In               string      `yaml:"in,omitempty" json:"in,omitempty"`                             // apiKey, httpApiKey
	Scheme           string      `yaml:"scheme,omitempty" json:"scheme,omitempty"`                     // http
	BearerFormat     string      `yaml:"bearerFormat,omitempty" json:"bearerFormat,omitempty"`         // http
	Flows            *OAuthFlows `yaml:"flows,omitempty" json:"flows,omitempty"`                       // oauth2
	OpenIDConnectURL string      `yaml:"openIdConnectUrl,omitempty" json:"openIdConnectUrl,omitempty"` // openIdConnect
	Scopes           []string    `yaml:"scopes,omitempty" json:"scopes,omitempty"`                     // oauth2, openIdConnect
}

// OAuthFlows configures the supported OAuth 2.0 flows.
type OAuthFlows struct {
	Implicit          *OAuthFlow `yaml:"implicit,omitempty" json:"implicit,omitempty"`
	Password          *OAuthFlow `yaml:"password,omitempty" json:"password,omitempty"`
	ClientCredentials *OAuthFlow `yaml:"clientCredentials,omitempty" json:"clientCredentials,omitempty"`
	AuthorizationCode *OAuthFlow `yaml:"authorizationCode,omitempty" json:"authorizationCode,omitempty"`
}

// OAuthFlow configures a single OAuth 2.0 flow.
type OAuthFlow struct {
	AuthorizationURL string            `yaml:"authorizationUrl,omitempty" json:"authorizationUrl,omitempty"`
	TokenURL         string            `yaml:"tokenUrl,omitempty" json:"tokenUrl,omitempty"`
	RefreshURL       string            `yaml:"refreshUrl,omitempty" json:"refreshUrl,omitempty"`
	AvailableScopes  map[string]string `yaml:"availableScopes" json:"availableScopes"`
}

// IsRef reports whether the scheme is a reference object.
func (s *SecurityScheme) IsRef() bool { return s != nil && s.Ref != "" }

// Validate returns one message per missing or invalid field for the scheme's
// kind. A nil result means the scheme is well formed.
func (s *SecurityScheme) Validate() []string {
	if s.IsRef() {
		return nil
	}
	if s.Type == "" {
		return []string{"type is required"}
	}
	if !slices.Contains(SecuritySchemeKinds, s.Type) {
		return []string{fmt.Sprintf("unknown security scheme type %q", s.Type)}
	}

	var problems []string
	switch s.Type {
	case SchemeAPIKey:
		if s.In != "user" && s.In != "password" {
			problems = append(problems, fmt.Sprintf("in must be user or password, got %q", s.In))
		}
	case SchemeHTTPAPIKey:
		if s.Name == "" {
			problems = append(problems, "name is required")
		}
		if !slices.Contains([]string{"query", "header", "cookie"}, s.In) {
			problems = append(problems, fmt.Sprintf("in must be query, header or cookie, got %q", s.In))
		}
	case SchemeHTTP:
		if s.Scheme == "" {
			problems = append(problems, "scheme is required")
		}
	case SchemeOAuth2:
		problems = append(problems, s.Flows.validate()...)
	case SchemeOpenIDConnect:
		if s.OpenIDConnectURL == "" {
			problems = append(problems, "openIdConnectUrl is required")
		}
	}
	return problems
}

func (f *OAuthFlows) validate() []string {
	if f == nil || (f.Implicit == nil && f.Password == nil && f.ClientCredentials == nil && f.AuthorizationCode == nil) {
		return []string{"flows must define at least one flow"}
	}
	var problems []string
	check := func(name string, flow *OAuthFlow, needAuth, needToken bool) {
		if flow == nil {
			return
		}
		if needAuth && flow.AuthorizationURL == "" {
			problems = append(problems, fmt.Sprintf("flows.%s.authorizationUrl is required", name))
		}
		if needToken && flow.TokenURL == "" {
			problems = append(problems, fmt.Sprintf("flows.%s.tokenUrl is required", name))
		}
		if flow.AvailableScopes == nil {
			problems = append(problems, fmt.Sprintf("flows.%s.availableScopes is required", name))
		}
	}
	check("implicit", f.Implicit, true, false)
	check("password", f.Password, false, true)
	check("clientCredentials", f.ClientCredentials, false, true)
	check("authorizationCode", f.AuthorizationCode, true, true)
	return problems
}
