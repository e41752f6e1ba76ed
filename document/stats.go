package document

// Stats summarizes the size of a document.
type Stats struct {
	Servers         int `json:"servers"`
	Channels        int `json:"channels"`
	Operations      int `json:"operations"`
	Messages        int `json:"messages"`
	Schemas         int `json:"schemas"`
	SecuritySchemes int `json:"securitySchemes"`
	Bindings        int `json:"bindings"`
}

// Stats counts the entries in doc. Bindings counts every binding fragment
// attached to a server, channel, operation or component message.
func (d *Document) Stats() Stats {
	if d == nil {
		return Stats{}
	}
	s := Stats{
		Servers:    d.Servers.Len(),
		Channels:   d.Channels.Len(),
		Operations: d.Operations.Len(),
	}
	for _, srv := range d.Servers.All() {
		if srv != nil {
			s.Bindings += len(srv.Bindings)
		}
	}
	for _, ch := range d.Channels.All() {
		if ch != nil {
			s.Bindings += len(ch.Bindings)
		}
	}
	for _, op := range d.Operations.All() {
		if op != nil {
			s.Bindings += len(op.Bindings)
		}
	}
	if c := d.Components; c != nil {
		s.Messages = c.Messages.Len()
		s.Schemas = c.Schemas.Len()
		s.SecuritySchemes = c.SecuritySchemes.Len()
		for _, msg := range c.Messages.All() {
			if msg != nil {
				s.Bindings += len(msg.Bindings)
			}
		}
	}
	return s
}
