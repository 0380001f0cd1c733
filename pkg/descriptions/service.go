// Package descriptions serves entity descriptions, generating and storing
// them on first request.
package descriptions

import (
	"context"
	"unicode/utf8"

	"github.com/libgraph/libgraph/pkg/errcodes"
	"github.com/libgraph/libgraph/pkg/gemini"
	"github.com/libgraph/libgraph/pkg/models"
	"github.com/libgraph/libgraph/pkg/store"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/logger"
)

// Generator produces text for a prompt. *gemini.Client implements it.
type Generator interface {
	Configured() bool
	Generate(ctx context.Context, prompt string) (text string, found bool, err error)
}

type Service struct {
	store     store.Store
	generator Generator
	minLength int
}

// NewService returns a service that treats stored descriptions longer than
// minLength characters as cached.
func NewService(s store.Store, generator Generator, minLength int) *Service {
	return &Service{s, generator, minLength}
}

// Get returns the description of the named entity. A stored description is
// returned without contacting the generator; otherwise one is generated,
// stored and returned. Fallback text is returned but never stored.
func (svc *Service) Get(ctx context.Context, kind models.Kind, name string) (string, error) {
	log := logger.FromContext(ctx)

	if !kind.Describable() {
		return "", errcodes.ValidationError("Unsupported entity type " + string(kind) + ".")
	}
	if name == "" {
		return "", errcodes.ValidationError("Missing entity name")
	}

	exists := true
	stored, err := svc.store.LookupDescription(ctx, kind, name)
	if err != nil {
		if !errors.Is(err, errcodes.NotFound(string(kind))) {
			return "", errcodes.StoreError(err)
		}
		exists = false
		log.Warn("describing an entity that is not stored", logger.Data{"type": kind, "name": name})
	}

	if stored != nil && utf8.RuneCountInString(*stored) > svc.minLength {
		log.Debug("description cache hit", logger.Data{"type": kind, "name": name})
		return *stored, nil
	}

	if !svc.generator.Configured() {
		log.Error("gemini api configuration missing")
		return "", errcodes.ConfigError("Server configuration error")
	}

	text, found, err := svc.generator.Generate(ctx, gemini.Prompt(name))
	if err != nil {
		return "", errors.WithStack(err)
	}

	if found && exists {
		if err := svc.store.SaveDescription(ctx, kind, name, text); err != nil {
			return "", errcodes.StoreError(err)
		}
		log.Info("stored generated description", logger.Data{"type": kind, "name": name})
	}

	return text, nil
}
