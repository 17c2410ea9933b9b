package usecase

import (
	"context"
	"encoding/json"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskreg/pkg/domain/model"
	"github.com/secmon-lab/riskreg/pkg/service/notion"
	"github.com/secmon-lab/riskreg/pkg/utils/logging"
)

type RiskUseCase struct {
	notion   notion.Service
	taxonomy *model.Taxonomy
}

func NewRiskUseCase(svc notion.Service, taxonomy *model.Taxonomy) *RiskUseCase {
	if taxonomy == nil {
		taxonomy = model.DefaultTaxonomy()
	}
	return &RiskUseCase{
		notion:   svc,
		taxonomy: taxonomy,
	}
}

// SubmitOptions controls Submit
type SubmitOptions struct {
	// DryRun builds the payload without calling Notion
	DryRun bool
}

// SubmitResult is the outcome of Submit. Record is nil on a dry run.
type SubmitResult struct {
	Record  *model.RiskRecord
	Payload json.RawMessage
}

// FetchPage returns one page of the registry
func (uc *RiskUseCase) FetchPage(ctx context.Context, session *model.Session, req model.PageRequest) (*model.RiskPage, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if err := requireSession(session); err != nil {
		return nil, err
	}
	if uc.notion == nil {
		return nil, goerr.Wrap(ErrNotionNotConfigured, "cannot fetch risks")
	}

	page, err := uc.notion.QueryRisks(ctx, session.Token, req)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to fetch risk page", goerr.V(CursorKey, req.Cursor))
	}
	return page, nil
}

// GetRisk returns a single record. Malformed IDs are rejected without a call.
func (uc *RiskUseCase) GetRisk(ctx context.Context, session *model.Session, id string) (*model.RiskRecord, error) {
	pageID, err := model.ParseNotionID(id)
	if err != nil {
		return nil, goerr.Wrap(err, "invalid risk ID",
			goerr.V(RiskIDKey, id),
			goerr.V(model.MessageKey, "invalid risk ID: "+id),
		)
	}
	if err := requireSession(session); err != nil {
		return nil, err
	}
	if uc.notion == nil {
		return nil, goerr.Wrap(ErrNotionNotConfigured, "cannot get risk")
	}

	record, err := uc.notion.GetRisk(ctx, session.Token, pageID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get risk", goerr.V(RiskIDKey, pageID))
	}
	return record, nil
}

// Submit validates form and creates the risk in Notion. The form is reset
// only after a successful create; on any failure it is left untouched. A dry
// run returns the payload and leaves the form as is.
func (uc *RiskUseCase) Submit(ctx context.Context, session *model.Session, form *model.RiskForm, opts SubmitOptions) (*SubmitResult, error) {
	if err := form.Validate(uc.taxonomy); err != nil {
		return nil, err
	}
	if uc.notion == nil {
		return nil, goerr.Wrap(ErrNotionNotConfigured, "cannot submit risk")
	}

	record := form.Record()
	emoji := uc.taxonomy.Emoji(record.Category)

	payload, err := json.MarshalIndent(uc.notion.BuildPayload(record, emoji), "", "  ")
	if err != nil {
		return nil, goerr.Wrap(err, "failed to marshal payload")
	}

	if opts.DryRun {
		logging.From(ctx).Debug("dry run, risk not submitted", "name", record.Name)
		return &SubmitResult{Payload: payload}, nil
	}

	if err := requireSession(session); err != nil {
		return nil, err
	}

	created, err := uc.notion.CreateRisk(ctx, session.Token, record, emoji)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to submit risk", goerr.V("name", record.Name))
	}

	form.Reset()
	return &SubmitResult{Record: created, Payload: payload}, nil
}

// Analytics walks every page of the registry and returns the category distribution
func (uc *RiskUseCase) Analytics(ctx context.Context, session *model.Session) (*model.CategoryDistribution, error) {
	records, err := uc.FetchAll(ctx, session)
	if err != nil {
		return nil, err
	}
	return model.Distribute(records, uc.taxonomy), nil
}

// FetchAll returns every record of the registry in Notion order
func (uc *RiskUseCase) FetchAll(ctx context.Context, session *model.Session) ([]*model.RiskRecord, error) {
	var records []*model.RiskRecord
	req := model.PageRequest{PageSize: model.MaxPageSize}

	for {
		page, err := uc.FetchPage(ctx, session, req)
		if err != nil {
			return nil, err
		}
		records = append(records, page.Items...)

		if !page.HasMore || page.NextCursor == "" {
			break
		}
		req.Cursor = page.NextCursor
	}

	logging.From(ctx).Debug("fetched all risks", "count", len(records))
	return records, nil
}

// PriorityAssessment is a priority score with the labels of its inputs
type PriorityAssessment struct {
	model.PriorityScore
	Impact     model.ScaleLevel `json:"impact"`
	Likelihood model.ScaleLevel `json:"likelihood"`
	Effort     model.ScaleLevel `json:"effort"`
}

// Summarize aggregates several assessments into a register summary. Every
// input must be valid; the first invalid one is reported with its index.
func (uc *RiskUseCase) Summarize(inputs []model.RiskScoringInput) (*model.AssessmentSummary, error) {
	for i, x := range inputs {
		if err := x.Validate(); err != nil {
			return nil, goerr.Wrap(err, "invalid risk assessment", goerr.V(IndexKey, i))
		}
	}

	summary := model.Summarize(inputs)
	return &summary, nil
}

// Priority scores input. The impact label is taken from the mean of the three impact dimensions.
func (uc *RiskUseCase) Priority(input model.RiskScoringInput) (*PriorityAssessment, error) {
	score, err := model.CalculatePriority(input)
	if err != nil {
		return nil, err
	}

	return &PriorityAssessment{
		PriorityScore: *score,
		Impact:        model.ImpactScale.Lookup(float64(score.TotalImpact) / 3),
		Likelihood:    model.LikelihoodScale.Lookup(float64(input.Likelihood)),
		Effort:        model.EffortScale.Lookup(float64(input.Effort)),
	}, nil
}
