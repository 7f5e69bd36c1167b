package pipeline

import (
	"context"

	"go.uber.org/zap"
)

// OwnerResolver finds the owner a scheduled tick should advance when no
// explicit owner is configured. An empty result means resolution failed.
type OwnerResolver interface {
	ResolveFocusOwner(ctx context.Context) (string, error)
}

// StaticResolver always resolves the same owner.
type StaticResolver string

func (s StaticResolver) ResolveFocusOwner(context.Context) (string, error) {
	return string(s), nil
}

// FallbackResolver tries a primary resolver and substitutes a configured
// fallback owner when the primary fails or resolves nothing.
type FallbackResolver struct {
	Primary  OwnerResolver
	Fallback string
	Logger   *zap.Logger
}

func (f FallbackResolver) ResolveFocusOwner(ctx context.Context) (string, error) {
	logger := f.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	if f.Primary != nil {
		owner, err := f.Primary.ResolveFocusOwner(ctx)
		if err != nil {
			logger.Warn("owner resolution failed, using fallback",
				zap.Error(err), zap.String("fallback", f.Fallback))
			return f.Fallback, nil
		}
		if owner != "" {
			return owner, nil
		}
		logger.Info("no focus owner resolved, using fallback",
			zap.String("fallback", f.Fallback))
	}
	return f.Fallback, nil
}
