package patternkit

import "context"

// TemplateRepository describes template persistence needs from use cases.
type TemplateRepository interface {
	ListTemplates(ctx context.Context) ([]Template, error)
	GetTemplateByType(ctx context.Context, typeName string) (Template, bool, error)
	SaveTemplate(ctx context.Context, item Template) (Template, error)
}
