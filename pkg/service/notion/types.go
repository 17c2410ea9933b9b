package notion

import (
	"context"
	"strings"
	"time"

	"github.com/jomei/notionapi"
	"github.com/secmon-lab/riskreg/pkg/domain/model"
)

// DefaultDatabaseID is the risk database the register writes to unless configured otherwise
const DefaultDatabaseID = "1cfbe24c0c90801d80a3e3f220e4f50c"

// Service provides access to the risk database. The bearer token is passed
// per call and forwarded verbatim.
type Service interface {
	// QueryRisks returns one page of the registry
	QueryRisks(ctx context.Context, token string, req model.PageRequest) (*model.RiskPage, error)
	// GetRisk returns a single record by its Notion page ID
	GetRisk(ctx context.Context, token string, pageID string) (*model.RiskRecord, error)
	// CreateRisk stores a new record and returns it as Notion saved it
	CreateRisk(ctx context.Context, token string, record *model.RiskRecord, emoji string) (*model.RiskRecord, error)
	// BuildPayload returns the create request CreateRisk would send
	BuildPayload(record *model.RiskRecord, emoji string) *notionapi.PageCreateRequest
}

func buildPayload(databaseID string, record *model.RiskRecord, emoji string) *notionapi.PageCreateRequest {
	icon := notionapi.Emoji(emoji)
	return &notionapi.PageCreateRequest{
		Parent: notionapi.Parent{
			Type:       notionapi.ParentTypeDatabaseID,
			DatabaseID: notionapi.DatabaseID(databaseID),
		},
		Icon: &notionapi.Icon{
			Type:  "emoji",
			Emoji: &icon,
		},
		Properties: notionapi.Properties{
			model.PropertyName: notionapi.TitleProperty{
				Title: richText(record.Name),
			},
			model.PropertyCategory: notionapi.RichTextProperty{
				RichText: richText(record.Category),
			},
			model.PropertySubcategory: notionapi.RichTextProperty{
				RichText: richText(record.Subcategory),
			},
			model.PropertyRiskType: notionapi.RichTextProperty{
				RichText: richText(record.RiskType),
			},
		},
	}
}

func richText(content string) []notionapi.RichText {
	return []notionapi.RichText{
		{Text: &notionapi.Text{Content: content}},
	}
}

// toRecord maps a Notion page onto a RiskRecord. Missing properties become empty strings.
func toRecord(page *notionapi.Page) *model.RiskRecord {
	return &model.RiskRecord{
		ID:          page.ID.String(),
		Name:        propertyText(page.Properties[model.PropertyName]),
		Category:    propertyText(page.Properties[model.PropertyCategory]),
		Subcategory: propertyText(page.Properties[model.PropertySubcategory]),
		RiskType:    propertyText(page.Properties[model.PropertyRiskType]),
		URL:         page.URL,
		CreatedAt:   time.Time(page.CreatedTime),
	}
}

// propertyText extracts plain text from text-like properties. Decoded pages
// carry pointer properties while locally built ones carry values.
func propertyText(prop notionapi.Property) string {
	switch p := prop.(type) {
	case *notionapi.TitleProperty:
		return joinRichText(p.Title)
	case notionapi.TitleProperty:
		return joinRichText(p.Title)
	case *notionapi.RichTextProperty:
		return joinRichText(p.RichText)
	case notionapi.RichTextProperty:
		return joinRichText(p.RichText)
	case *notionapi.SelectProperty:
		return p.Select.Name
	case notionapi.SelectProperty:
		return p.Select.Name
	default:
		return ""
	}
}

func joinRichText(texts []notionapi.RichText) string {
	var sb strings.Builder
	for _, t := range texts {
		switch {
		case t.PlainText != "":
			sb.WriteString(t.PlainText)
		case t.Text != nil:
			sb.WriteString(t.Text.Content)
		}
	}
	return sb.String()
}
