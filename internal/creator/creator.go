// Package creator defines the contract between the plan-creation engine and
// the pluggable creators that expand individual YAML fields, together with
// the ordered registry the engine dispatches through.
package creator

import (
	"context"

	"github.com/vk/plancreator/internal/plan"
	"github.com/vk/plancreator/internal/yamlfield"
)

// Context carries tree-wide metadata to every creator invocation. The engine
// passes it through unchanged and never interprets it.
type Context struct {
	AccountID  string
	OrgID      string
	ProjectID  string
	PipelineID string
	Globals    map[string]string
}

// Global returns a global flag value, or "" if unset.
func (c Context) Global(key string) string {
	return c.Globals[key]
}

// PartialPlanCreator expands one YAML field by one level.
//
// SupportsField must be a cheap, side-effect free predicate. CreatePlanForField
// returns the nodes the field resolves into plus any child fields left for
// later rounds. Returning (nil, nil) declines the field; returning an error
// means the creator matched but failed to build.
type PartialPlanCreator interface {
	SupportsField(f *yamlfield.Field) bool
	CreatePlanForField(ctx context.Context, pctx Context, f *yamlfield.Field) (*plan.Response, error)
}

// CreateFunc is the signature of a creator's build step.
type CreateFunc func(ctx context.Context, pctx Context, f *yamlfield.Field) (*plan.Response, error)

// Func adapts a SupportedTypes declaration and a CreateFunc into a
// PartialPlanCreator.
type Func struct {
	Name   string
	Types  SupportedTypes
	Create CreateFunc
}

// SupportsField implements PartialPlanCreator.
func (c *Func) SupportsField(f *yamlfield.Field) bool {
	return c.Types.Supports(f)
}

// CreatePlanForField implements PartialPlanCreator.
func (c *Func) CreatePlanForField(ctx context.Context, pctx Context, f *yamlfield.Field) (*plan.Response, error) {
	return c.Create(ctx, pctx, f)
}

// String returns the creator's name for log output.
func (c *Func) String() string {
	return c.Name
}
