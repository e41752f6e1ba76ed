package validator

import (
	"fmt"
	"slices"
	"strings"

	"github.com/erraggy/asyncforge/document"
)

func (r *run) validateRoot() {
	switch r.doc.AsyncAPI {
	case "":
		r.addError("asyncapi", "asyncapi version is required", withField("asyncapi"))
	case document.Version:
	default:
		r.addWarning("asyncapi",
			fmt.Sprintf("asyncapi version %q does not match the supported version %s", r.doc.AsyncAPI, document.Version),
			withField("asyncapi"), withValue(r.doc.AsyncAPI))
	}
	if r.doc.Info == nil {
		r.addError("info", "info is required", withField("info"))
	}
}

func (r *run) validateInfo() {
	info := r.doc.Info
	if info == nil {
		return
	}
	if info.Title == "" {
		r.addError("info.title", "info title is required", withField("title"))
	}
	if info.Version == "" {
		r.addError("info.version", "info version is required", withField("version"))
	}
	if info.Description == "" {
		r.addWarning("info.description", "info description is recommended", withField("description"))
	}
	if info.License != nil && info.License.Name == "" {
		r.addError("info.license.name", "license name is required", withField("name"))
	}
}

func (r *run) validateServers() error {
	for name, srv := range r.doc.Servers.All() {
		if err := r.canceled(); err != nil {
			return err
		}
		path := "servers." + name
		switch {
		case srv == nil:
			r.addError(path, "server is empty", withElement(name))
			continue
		case srv.IsRef():
			r.addWarning(path, "server is a reference; structural checks skipped", withElement(name))
			continue
		}
		if srv.Host == "" {
			r.addError(path+".host", "server host is required", withField("host"), withElement(name))
		}
		if srv.Protocol == "" {
			r.addError(path+".protocol", "server protocol is required", withField("protocol"), withElement(name))
		}
	}
	return nil
}

func (r *run) validateChannels() error {
	if r.doc.Channels.Len() == 0 {
		r.addWarning("channels", "no channels defined; document may be incomplete")
		return nil
	}
	for name, ch := range r.doc.Channels.All() {
		if err := r.canceled(); err != nil {
			return err
		}
		path := "channels." + name
		switch {
		case ch == nil:
			r.addError(path, "channel is empty", withElement(name))
			continue
		case ch.IsRef():
			r.addWarning(path, "channel is a reference; structural checks skipped", withElement(name))
			continue
		}
		if ch.Address == "" {
			r.addError(path+".address", "channel address is required", withField("address"), withElement(name))
		}
		if len(ch.Messages) == 0 {
			r.addWarning(path+".messages", "channel has no messages", withField("messages"), withElement(name))
		}
	}
	return nil
}

func (r *run) validateOperations() error {
	if r.doc.Operations.Len() == 0 {
		r.addWarning("operations", "no operations defined; document may be incomplete")
		return nil
	}
	for name, op := range r.doc.Operations.All() {
		if err := r.canceled(); err != nil {
			return err
		}
		path := "operations." + name
		switch {
		case op == nil:
			r.addError(path, "operation is empty", withElement(name))
			continue
		case op.IsRef():
			r.addWarning(path, "operation is a reference; structural checks skipped", withElement(name))
			continue
		}
		switch {
		case op.Action == "":
			r.addError(path+".action", "operation action is required", withField("action"), withElement(name))
		case !slices.Contains(document.ValidActions, op.Action):
			r.addError(path+".action",
				fmt.Sprintf("operation action must be one of [%s], got %q", strings.Join(document.ValidActions, ", "), op.Action),
				withField("action"), withValue(op.Action), withElement(name))
		}
		if op.Channel == nil || op.Channel.Ref == "" {
			r.addError(path+".channel", "operation channel reference is required", withField("channel"), withElement(name))
		}
		if r.v.StrictMode && op.Summary == "" {
			r.addWarning(path+".summary", "operation should have a summary", withField("summary"), withElement(name))
		}
	}
	return nil
}

func (r *run) validateComponents() error {
	c := r.doc.Components
	if c == nil {
		r.addWarning("components", "components block is missing")
		return nil
	}
	for name, msg := range c.Messages.All() {
		if err := r.canceled(); err != nil {
			return err
		}
		path := "components.messages." + name
		switch {
		case msg == nil:
			r.addError(path, "message is empty", withElement(name))
			continue
		case msg.IsRef():
			r.addWarning(path, "message is a reference; structural checks skipped", withElement(name))
			continue
		}
		if msg.Name == "" {
			r.addWarning(path+".name", "message has no name", withField("name"), withElement(name))
		}
		if r.v.StrictMode && msg.ContentType == "" && r.doc.DefaultContentType == "" {
			r.addWarning(path+".contentType", "message should declare a content type", withField("contentType"), withElement(name))
		}
	}
	for name, scheme := range c.SecuritySchemes.All() {
		if err := r.canceled(); err != nil {
			return err
		}
		path := "components.securitySchemes." + name
		switch {
		case scheme == nil:
			r.addError(path, "security scheme is empty", withElement(name))
			continue
		case scheme.Ref != "":
			r.addWarning(path, "security scheme is a reference; structural checks skipped", withElement(name))
			continue
		}
		for _, problem := range scheme.Validate() {
			r.addError(path, problem, withElement(name))
		}
	}
	return nil
}
