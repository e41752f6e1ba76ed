package gosource

import (
	"fmt"
	"go/token"
	"net/url"
	"strings"

	"github.com/gorilla/schema"
)

const prefix = "//asyncapi:"

// Kind is the directive keyword following the prefix.
type Kind string

const (
	KindOperation Kind = "operation"
	KindModel     Kind = "model"
	KindMessage   Kind = "message"
	KindSecurity  Kind = "security"
	KindBinding   Kind = "binding"
	KindServer    Kind = "server"
	KindInfo      Kind = "info"
)

// Directive is one parsed //asyncapi: comment line.
type Directive struct {
	Kind   Kind
	Arg    string // binding type or server name
	Values url.Values
	Pos    token.Position
}

var decoder = schema.NewDecoder()

func init() {
	decoder.IgnoreUnknownKeys(false)
}

// parseDirective parses the text of a single comment. ok is false for
// comments that are not directives.
//
//	//asyncapi:operation channel=orders/created&type=subscribe
//	//asyncapi:binding kafka topic=orders&partitions=3
func parseDirective(text string, pos token.Position) (d Directive, ok bool, err error) {
	if !strings.HasPrefix(text, prefix) {
		return Directive{}, false, nil
	}
	fields := strings.Fields(strings.TrimPrefix(text, prefix))
	if len(fields) == 0 {
		return Directive{}, false, fmt.Errorf("%s: empty %s directive", pos, prefix)
	}

	d = Directive{Kind: Kind(fields[0]), Pos: pos}
	rest := fields[1:]
	switch d.Kind {
	case KindBinding, KindServer:
		if len(rest) == 0 {
			return Directive{}, false, fmt.Errorf("%s: %s%s needs a name", pos, prefix, d.Kind)
		}
		d.Arg, rest = rest[0], rest[1:]
	case KindOperation, KindModel, KindMessage, KindSecurity, KindInfo:
	default:
		return Directive{}, false, fmt.Errorf("%s: unknown directive %s%s", pos, prefix, d.Kind)
	}
	if len(rest) > 1 {
		return Directive{}, false, fmt.Errorf("%s: %s%s takes a single query string, got %d fields", pos, prefix, d.Kind, len(rest))
	}

	d.Values = url.Values{}
	if len(rest) == 1 {
		d.Values, err = url.ParseQuery(rest[0])
		if err != nil {
			return Directive{}, false, fmt.Errorf("%s: %s%s: %w", pos, prefix, d.Kind, err)
		}
	}
	return d, true, nil
}

// decode fills dst from the directive's key/value pairs.
func (d Directive) decode(dst any) error {
	if err := decoder.Decode(dst, d.Values); err != nil {
		return fmt.Errorf("%s: %s%s: %w", d.Pos, prefix, d.Kind, err)
	}
	return nil
}

type operationArgs struct {
	Name        string   `schema:"name"`
	Channel     string   `schema:"channel"`
	Type        string   `schema:"type"`
	Title       string   `schema:"title"`
	Summary     string   `schema:"summary"`
	Description string   `schema:"description"`
	Payload     string   `schema:"payload"`
	Security    []string `schema:"security"`
}

type modelArgs struct {
	Name string `schema:"name"`
}

type messageArgs struct {
	Name        string `schema:"name"`
	Title       string `schema:"title"`
	Summary     string `schema:"summary"`
	Description string `schema:"description"`
	ContentType string `schema:"contentType"`
	Headers     string `schema:"headers"`
}

type securityArgs struct {
	Name             string   `schema:"name"`
	Type             string   `schema:"type"`
	Description      string   `schema:"description"`
	Param            string   `schema:"param"`
	In               string   `schema:"in"`
	Scheme           string   `schema:"scheme"`
	BearerFormat     string   `schema:"bearerFormat"`
	OpenIDConnectURL string   `schema:"openIdConnectUrl"`
	Flow             string   `schema:"flow"`
	AuthorizationURL string   `schema:"authorizationUrl"`
	TokenURL         string   `schema:"tokenUrl"`
	Scopes           []string `schema:"scopes"`
}

type serverArgs struct {
	Host            string   `schema:"host"`
	Protocol        string   `schema:"protocol"`
	ProtocolVersion string   `schema:"protocolVersion"`
	Pathname        string   `schema:"pathname"`
	Description     string   `schema:"description"`
	Security        []string `schema:"security"`
}

type infoArgs struct {
	Title       string `schema:"title"`
	Version     string `schema:"version"`
	Description string `schema:"description"`
}
