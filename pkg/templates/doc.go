// Package templates manages the message templates of the escalation flow.
//
// Three templates ship embedded as markdown files with a YAML header:
// email_day1, whatsapp_day3 and legal_day5. Edited versions live in a
// [store.Store], so they are shared across replicas when Redis backs it.
//
// Template text uses bracketed placeholders such as [NAME] and [AMOUNT].
// Render substitutes a client's values, converts the result from markdown
// and wraps it in the embedded HTML layout:
//
//	svc, _ := templates.NewService(store.NewMemory[templates.Template](), amounts)
//	_ = svc.Seed(ctx)
//	out, err := svc.Render(ctx, dues.TemplateEmailDay1, client, time.Now())
package templates
