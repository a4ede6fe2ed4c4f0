package translate

import (
	"context"
	"log/slog"
)

// Messages surfaced with ok=false. Every failure in the engine terminates
// with a string and a boolean; nothing here panics or returns an error to
// the caller.
const (
	EmptySchemaMessage       = "-- Please provide database schema to generate SQL"
	RemoteUnavailableMessage = "AI models unavailable. Please try again later."
)

// Tier is one translation strategy. TryGenerate returns ok=false to mean
// "no result, try the next tier in precedence order".
type Tier interface {
	// Name returns the tier name for identification
	Name() string

	// IsAvailable checks if this tier can be used in the current environment
	IsAvailable() bool

	// TryGenerate attempts to produce SQL for the question and schema
	TryGenerate(ctx context.Context, question string, schema *Schema) (string, bool)
}

// Registry manages the known translation tiers.
type Registry struct {
	tiers map[string]Tier
}

// NewRegistry creates an empty tier registry.
func NewRegistry() *Registry {
	return &Registry{tiers: make(map[string]Tier)}
}

// Register adds a tier to the registry.
func (r *Registry) Register(tier Tier) {
	r.tiers[tier.Name()] = tier
}

// Get retrieves a tier by name.
func (r *Registry) Get(name string) (Tier, bool) {
	tier, exists := r.tiers[name]
	return tier, exists
}

// ListAvailable returns the names of all usable tiers.
func (r *Registry) ListAvailable() []string {
	var available []string
	for name, tier := range r.tiers {
		if tier.IsAvailable() {
			available = append(available, name)
		}
	}
	return available
}

// RuleTier applies the fixed pattern cascade.
type RuleTier struct{}

func (RuleTier) Name() string      { return "rules" }
func (RuleTier) IsAvailable() bool { return true }

func (RuleTier) TryGenerate(_ context.Context, question string, schema *Schema) (string, bool) {
	return ApplyRules(question, schema)
}

// TemplateTier emits a commented SQL skeleton. It never fails, so it sits
// last in every precedence order as the defensive floor.
type TemplateTier struct{}

func (TemplateTier) Name() string      { return "template" }
func (TemplateTier) IsAvailable() bool { return true }

func (TemplateTier) TryGenerate(_ context.Context, question string, schema *Schema) (string, bool) {
	return GenerateTemplate(question, schema)
}

// RemoteTier delegates to a hosted text-generation backend.
type RemoteTier struct {
	Generator *RemoteGenerator
}

func (t *RemoteTier) Name() string      { return "remote" }
func (t *RemoteTier) IsAvailable() bool { return t.Generator != nil }

func (t *RemoteTier) TryGenerate(ctx context.Context, question string, schema *Schema) (string, bool) {
	if t.Generator == nil {
		return "", false
	}
	sql, err := t.Generator.Generate(ctx, question, FormatSimpleText(schema))
	if err != nil {
		slog.Warn("remote tier failed", "error", err)
		return "", false
	}
	return sql, true
}

// Engine runs the tiered translation cascade. It holds no mutable state
// beyond its configuration, so a single instance is safe for concurrent
// use.
type Engine struct {
	registry *Registry
}

// NewEngine builds an engine with the standard tiers registered. remote may
// be nil, in which case the remote tier reports itself unavailable.
func NewEngine(remote *RemoteGenerator) *Engine {
	registry := NewRegistry()
	registry.Register(RuleTier{})
	registry.Register(TemplateTier{})
	registry.Register(&RemoteTier{Generator: remote})
	return &Engine{registry: registry}
}

// Registry exposes the tier registry, primarily for capability listings.
func (e *Engine) Registry() *Registry {
	return e.registry
}

// Generate translates a question against simple-notation schema text using
// the rule cascade, with the template skeleton as the defensive floor. The
// schema model is rebuilt from the text on every call; callers are
// responsible for normalizing DDL input first.
func (e *Engine) Generate(ctx context.Context, question, schemaText string) (string, bool) {
	return e.run(ctx, question, schemaText, "rules", "template")
}

// GenerateWithRemote tries the remote tier first and falls back to the rule
// cascade when every remote candidate fails.
func (e *Engine) GenerateWithRemote(ctx context.Context, question, schemaText string) (string, bool) {
	return e.run(ctx, question, schemaText, "remote", "rules", "template")
}

// TryRemote invokes only the remote tier, surfacing the human-readable
// unavailability message when it cannot produce SQL.
func (e *Engine) TryRemote(ctx context.Context, question, schemaText string) (string, bool) {
	schema := ParseFreeText(schemaText)
	if schema.IsEmpty() {
		return EmptySchemaMessage, false
	}
	tier, exists := e.registry.Get("remote")
	if !exists || !tier.IsAvailable() {
		return RemoteUnavailableMessage, false
	}
	if sql, ok := tier.TryGenerate(ctx, question, schema); ok {
		return sql, true
	}
	return RemoteUnavailableMessage, false
}

func (e *Engine) run(ctx context.Context, question, schemaText string, order ...string) (string, bool) {
	schema := ParseFreeText(schemaText)
	if schema.IsEmpty() {
		return EmptySchemaMessage, false
	}

	for _, name := range order {
		tier, exists := e.registry.Get(name)
		if !exists || !tier.IsAvailable() {
			continue
		}
		if sql, ok := tier.TryGenerate(ctx, question, schema); ok {
			slog.Debug("tier produced sql", "tier", name)
			return sql, true
		}
	}

	return RemoteUnavailableMessage, false
}
