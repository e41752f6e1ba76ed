package builder

import (
	"github.com/erraggy/asyncforge/document"
	"github.com/erraggy/asyncforge/source"
)

// UserPasswordScheme creates a userPassword security scheme.
func UserPasswordScheme(description string) *document.SecurityScheme {
	return &document.SecurityScheme{Type: document.SchemeUserPassword, Description: description}
}

// APIKeyScheme creates an apiKey scheme. in must be "user" or "password".
func APIKeyScheme(in, description string) *document.SecurityScheme {
	return &document.SecurityScheme{Type: document.SchemeAPIKey, In: in, Description: description}
}

// HTTPAPIKeyScheme creates an httpApiKey scheme carried in a query
// parameter, header or cookie called name.
func HTTPAPIKeyScheme(name, in, description string) *document.SecurityScheme {
	return &document.SecurityScheme{Type: document.SchemeHTTPAPIKey, Name: name, In: in, Description: description}
}

// HTTPScheme creates an http scheme (basic, bearer, ...).
func HTTPScheme(scheme, bearerFormat, description string) *document.SecurityScheme {
	return &document.SecurityScheme{
		Type:         document.SchemeHTTP,
		Scheme:       scheme,
		BearerFormat: bearerFormat,
		Description:  description,
	}
}

// OAuth2Scheme creates an oauth2 scheme with the given flows.
func OAuth2Scheme(flows *document.OAuthFlows, scopes []string, description string) *document.SecurityScheme {
	return &document.SecurityScheme{Type: document.SchemeOAuth2, Flows: flows, Scopes: scopes, Description: description}
}

// OpenIDConnectScheme creates an openIdConnect scheme.
func OpenIDConnectScheme(url string, scopes []string, description string) *document.SecurityScheme {
	return &document.SecurityScheme{
		Type:             document.SchemeOpenIDConnect,
		OpenIDConnectURL: url,
		Scopes:           scopes,
		Description:      description,
	}
}

// SimpleScheme creates a scheme whose kind carries no extra fields: X509,
// symmetricEncryption, asymmetricEncryption, plain, scramSha256, scramSha512
// and gssapi.
func SimpleScheme(kind, description string) *document.SecurityScheme {
	return &document.SecurityScheme{Type: kind, Description: description}
}

// SecuritySchemeFor builds the scheme described by a security declaration,
// dispatching on its kind.
func SecuritySchemeFor(m *source.SecurityMeta) *document.SecurityScheme {
	switch m.Type {
	case document.SchemeUserPassword:
		return UserPasswordScheme(m.Description)
	case document.SchemeAPIKey:
		return APIKeyScheme(m.In, m.Description)
	case document.SchemeHTTPAPIKey:
		return HTTPAPIKeyScheme(m.ParamName, m.In, m.Description)
	case document.SchemeHTTP:
		return HTTPScheme(m.Scheme, m.BearerFormat, m.Description)
	case document.SchemeOAuth2:
		return OAuth2Scheme(m.Flows, m.Scopes, m.Description)
	case document.SchemeOpenIDConnect:
		return OpenIDConnectScheme(m.OpenIDConnectURL, m.Scopes, m.Description)
	default:
		return SimpleScheme(m.Type, m.Description)
	}
}
