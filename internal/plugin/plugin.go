package plugin

import (
	"fmt"

	"researchpub/internal/fields"
	"researchpub/internal/hook"
	"researchpub/internal/posttype"
)

// Host is the content platform the plugin registers itself with.
type Host interface {
	RegisterContentType(name string, d posttype.Descriptor) error
	FlushRewriteRules()
}

// FieldGroupRegistrar is implemented by hosts that support custom fields.
// Field registration is skipped on hosts without it.
type FieldGroupRegistrar interface {
	RegisterFieldGroup(g fields.Group) error
}

// Plugin wires the research publication content type into a host.
type Plugin struct {
	hooks *hook.Registry
}

func New(hooks *hook.Registry) *Plugin {
	if hooks == nil {
		hooks = hook.NewRegistry()
	}
	return &Plugin{hooks: hooks}
}

// Hooks returns the registry filters should be added to.
func (p *Plugin) Hooks() *hook.Registry {
	return p.hooks
}

// Descriptor builds the content-type descriptor with the current filters.
func (p *Plugin) Descriptor() posttype.Descriptor {
	return posttype.Build(p.hooks)
}

// FieldGroup builds the field group with the current filters.
func (p *Plugin) FieldGroup() fields.Group {
	return fields.BuildGroup(p.hooks, posttype.Name)
}

// Register registers the content type.
func (p *Plugin) Register(h Host) error {
	d := p.Descriptor()
	if err := h.RegisterContentType(d.Name, d); err != nil {
		return fmt.Errorf("register content type %s: %w", d.Name, err)
	}
	return nil
}

// RegisterFields registers the field group if the host supports fields.
func (p *Plugin) RegisterFields(h Host) error {
	fr, ok := h.(FieldGroupRegistrar)
	if !ok {
		return nil
	}
	g := p.FieldGroup()
	if err := fr.RegisterFieldGroup(g); err != nil {
		return fmt.Errorf("register field group %s: %w", g.Key, err)
	}
	return nil
}

// Init registers the content type and its fields. Calling it again
// overwrites the earlier registration.
func (p *Plugin) Init(h Host) error {
	if err := p.Register(h); err != nil {
		return err
	}
	return p.RegisterFields(h)
}

// Activate registers the content type and flushes the host's routes so the
// type's REST base resolves.
func (p *Plugin) Activate(h Host) error {
	if err := p.Register(h); err != nil {
		return err
	}
	h.FlushRewriteRules()
	return nil
}

// Deactivate flushes the host's routes.
func (p *Plugin) Deactivate(h Host) {
	h.FlushRewriteRules()
}
