package usecase

import (
	"github.com/secmon-lab/riskreg/pkg/domain/interfaces"
	"github.com/secmon-lab/riskreg/pkg/domain/model"
	"github.com/secmon-lab/riskreg/pkg/service/notion"
)

type UseCases struct {
	sessions interfaces.SessionRepository
	notion   notion.Service
	taxonomy *model.Taxonomy
	Session  *SessionUseCase
	Risk     *RiskUseCase
}

type Option func(*UseCases)

func WithNotion(svc notion.Service) Option {
	return func(uc *UseCases) {
		uc.notion = svc
	}
}

func WithTaxonomy(t *model.Taxonomy) Option {
	return func(uc *UseCases) {
		uc.taxonomy = t
	}
}

func New(sessions interfaces.SessionRepository, opts ...Option) *UseCases {
	uc := &UseCases{
		sessions: sessions,
	}

	for _, opt := range opts {
		opt(uc)
	}

	if uc.taxonomy == nil {
		uc.taxonomy = model.DefaultTaxonomy()
	}

	uc.Session = NewSessionUseCase(sessions)
	uc.Risk = NewRiskUseCase(uc.notion, uc.taxonomy)

	return uc
}

// Taxonomy returns the taxonomy in use
func (uc *UseCases) Taxonomy() *model.Taxonomy {
	return uc.taxonomy
}
