package service

import "context"

// DeletePrompt is the question asked before an entry is deleted.
const DeletePrompt = "Möchtest du diesen Eintrag wirklich löschen?"

// Confirmer asks the user to approve a destructive action.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) bool
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(ctx context.Context, prompt string) bool

func (f ConfirmFunc) Confirm(ctx context.Context, prompt string) bool {
	return f(ctx, prompt)
}

type confirmKey struct{}

// WithDeleteConfirmation records the user's answer on ctx.
func WithDeleteConfirmation(ctx context.Context, confirmed bool) context.Context {
	return context.WithValue(ctx, confirmKey{}, confirmed)
}

// ContextConfirmer approves only when the request context carries a positive
// answer set with WithDeleteConfirmation.
type ContextConfirmer struct{}

func (ContextConfirmer) Confirm(ctx context.Context, _ string) bool {
	ok, _ := ctx.Value(confirmKey{}).(bool)
	return ok
}
