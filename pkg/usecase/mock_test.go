package usecase_test

import (
	"context"
	"sync"

	"github.com/jomei/notionapi"
	"github.com/secmon-lab/riskreg/pkg/domain/model"
	"github.com/secmon-lab/riskreg/pkg/service/notion"
)

// mockNotionService is a mock implementation of notion.Service
type mockNotionService struct {
	mu          sync.Mutex
	queryCalls  []model.PageRequest
	createCalls []*model.RiskRecord
	tokens      []string

	queryFn  func(ctx context.Context, req model.PageRequest) (*model.RiskPage, error)
	getFn    func(ctx context.Context, id string) (*model.RiskRecord, error)
	createFn func(ctx context.Context, record *model.RiskRecord) (*model.RiskRecord, error)
}

var _ notion.Service = (*mockNotionService)(nil)

func (m *mockNotionService) QueryRisks(ctx context.Context, token string, req model.PageRequest) (*model.RiskPage, error) {
	m.mu.Lock()
	m.queryCalls = append(m.queryCalls, req)
	m.tokens = append(m.tokens, token)
	m.mu.Unlock()

	if m.queryFn != nil {
		return m.queryFn(ctx, req)
	}
	return &model.RiskPage{}, nil
}

func (m *mockNotionService) GetRisk(ctx context.Context, token string, id string) (*model.RiskRecord, error) {
	m.mu.Lock()
	m.tokens = append(m.tokens, token)
	m.mu.Unlock()

	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	return &model.RiskRecord{ID: id}, nil
}

func (m *mockNotionService) CreateRisk(ctx context.Context, token string, record *model.RiskRecord, _ string) (*model.RiskRecord, error) {
	m.mu.Lock()
	m.createCalls = append(m.createCalls, record)
	m.tokens = append(m.tokens, token)
	m.mu.Unlock()

	if m.createFn != nil {
		return m.createFn(ctx, record)
	}
	created := *record
	created.ID = "9d3f2c1a-4b5e-4f60-8a7b-1c2d3e4f5a6b"
	return &created, nil
}

func (m *mockNotionService) BuildPayload(record *model.RiskRecord, emoji string) *notionapi.PageCreateRequest {
	svc, _ := notion.New()
	return svc.BuildPayload(record, emoji)
}

func (m *mockNotionService) queryCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.queryCalls)
}

// pagedRecords serves records in pages of size per, using the item index as cursor
func pagedRecords(records []*model.RiskRecord, per int) func(context.Context, model.PageRequest) (*model.RiskPage, error) {
	return func(_ context.Context, req model.PageRequest) (*model.RiskPage, error) {
		start := 0
		if req.Cursor != "" {
			for i, r := range records {
				if model.PageCursor(r.ID) == req.Cursor {
					start = i
					break
				}
			}
		}
		end := min(start+per, len(records))
		page := &model.RiskPage{Items: records[start:end]}
		if end < len(records) {
			page.HasMore = true
			page.NextCursor = model.PageCursor(records[end].ID)
		}
		return page, nil
	}
}
