package validator

import (
	"fmt"
	"maps"
	"reflect"
	"slices"
	"strings"

	"github.com/go-openapi/jsonpointer"

	"github.com/erraggy/asyncforge/internal/refs"
)

func (r *run) validateReferences() error {
	for name, op := range r.doc.Operations.All() {
		if err := r.canceled(); err != nil {
			return err
		}
		if op == nil || op.IsRef() || op.Channel == nil || op.Channel.Ref == "" {
			continue
		}
		path := "operations." + name
		channelRef := op.Channel.Ref
		if !r.checkRef(path+".channel", "operation", name, "channel", channelRef, refs.PrefixChannels) {
			continue
		}
		// Operation messages must be messages of the operation's own channel.
		chPrefix := channelRef + "/messages/"
		for i, m := range op.Messages {
			if m == nil {
				r.addError(fmt.Sprintf("%s.messages[%d]", path, i), "message reference is empty", withElement(name))
				continue
			}
			r.checkRef(fmt.Sprintf("%s.messages[%d]", path, i), "operation", name, "channel message", m.Ref, chPrefix)
		}
		for i, s := range op.Security {
			if s == nil {
				r.addError(fmt.Sprintf("%s.security[%d]", path, i), "security reference is empty", withElement(name))
				continue
			}
			r.checkRef(fmt.Sprintf("%s.security[%d]", path, i), "operation", name, "security scheme", s.Ref, refs.PrefixSecuritySchemes)
		}
	}

	for name, ch := range r.doc.Channels.All() {
		if err := r.canceled(); err != nil {
			return err
		}
		if ch == nil || ch.IsRef() {
			continue
		}
		path := "channels." + name
		for _, key := range slices.Sorted(maps.Keys(ch.Messages)) {
			m := ch.Messages[key]
			if m == nil {
				r.addError(path+".messages."+key, "message reference is empty", withElement(name))
				continue
			}
			r.checkRef(path+".messages."+key, "channel", name, "message", m.Ref, refs.PrefixMessages)
		}
		for i, s := range ch.Servers {
			if s == nil {
				r.addError(fmt.Sprintf("%s.servers[%d]", path, i), "server reference is empty", withElement(name))
				continue
			}
			r.checkRef(fmt.Sprintf("%s.servers[%d]", path, i), "channel", name, "server", s.Ref, refs.PrefixServers)
		}
	}

	if r.doc.Components == nil {
		return nil
	}
	for name, msg := range r.doc.Components.Messages.All() {
		if err := r.canceled(); err != nil {
			return err
		}
		if msg == nil || msg.IsRef() {
			continue
		}
		path := "components.messages." + name
		if msg.Payload != nil {
			if ref := msg.Payload.Ref.String(); ref != "" {
				r.checkRef(path+".payload", "message", name, "schema", ref, refs.PrefixSchemas)
			}
		}
		if msg.Headers != nil {
			if ref := msg.Headers.Ref.String(); ref != "" {
				r.checkRef(path+".headers", "message", name, "schema", ref, refs.PrefixSchemas)
			}
		}
	}
	return nil
}

// checkRef resolves ref against the document and records a finding when it
// does not resolve below prefix. External references cannot be verified and
// only produce a warning. It reports whether ref resolved.
func (r *run) checkRef(path, ownerKind, owner, targetKind, ref, prefix string) bool {
	if ref == "" {
		r.addError(path, fmt.Sprintf("%s reference is empty", targetKind), withElement(owner))
		return false
	}
	if !refs.IsLocal(ref) {
		r.addWarning(path, fmt.Sprintf("external reference %q cannot be verified", ref), withValue(ref), withElement(owner))
		return false
	}
	target, ok := refs.Name(ref, prefix)
	if !ok {
		r.addError(path,
			fmt.Sprintf("%s %q must reference a %s under %q, got %q", ownerKind, owner, targetKind, prefix, ref),
			withValue(ref), withElement(owner))
		return false
	}
	p, err := jsonpointer.New(strings.TrimPrefix(ref, "#"))
	if err != nil {
		r.addError(path, fmt.Sprintf("invalid reference %q: %v", ref, err), withValue(ref), withElement(owner))
		return false
	}
	if v, _, err := p.Get(r.doc); err != nil || isNilValue(v) {
		r.addError(path,
			fmt.Sprintf("%s %q references %s %q, which does not exist", ownerKind, owner, targetKind, target),
			withValue(ref), withElement(owner))
		return false
	}
	return true
}

func isNilValue(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}
