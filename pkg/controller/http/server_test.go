package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/m-mizutani/gt"
	server "github.com/secmon-lab/riskreg/pkg/controller/http"
	"github.com/secmon-lab/riskreg/pkg/domain/model"
	"github.com/secmon-lab/riskreg/pkg/repository/memory"
	"github.com/secmon-lab/riskreg/pkg/service/notion"
	"github.com/secmon-lab/riskreg/pkg/usecase"
)

const riskPageJSON = `{
  "object": "page",
  "id": "9d3f2c1a-4b5e-4f60-8a7b-1c2d3e4f5a6b",
  "created_time": "2025-01-02T03:04:05.000Z",
  "last_edited_time": "2025-01-02T03:04:05.000Z",
  "url": "https://www.notion.so/9d3f2c1a4b5e4f608a7b1c2d3e4f5a6b",
  "properties": {
    "Name": {"id": "title", "type": "title", "title": [{"type": "text", "text": {"content": "Backups untested"}, "plain_text": "Backups untested"}]},
    "Risk Category": {"id": "a", "type": "rich_text", "rich_text": [{"type": "text", "text": {"content": "Operational"}, "plain_text": "Operational"}]}
  }
}`

type upstreamCall struct {
	path          string
	authorization string
	body          string
}

// newTestServer wires the gateway to a fake Notion API
func newTestServer(t *testing.T, upstream http.HandlerFunc) (*server.Server, *[]upstreamCall) {
	t.Helper()

	var calls []upstreamCall
	fake := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		calls = append(calls, upstreamCall{
			path:          r.URL.Path,
			authorization: r.Header.Get("Authorization"),
			body:          string(body),
		})
		w.Header().Set("Content-Type", "application/json")
		upstream(w, r)
	}))
	t.Cleanup(fake.Close)

	target, err := url.Parse(fake.URL)
	gt.NoError(t, err).Required()

	svc, err := notion.New(notion.WithHTTPClient(&http.Client{Transport: &rewriteTransport{target: target}}))
	gt.NoError(t, err).Required()

	uc := usecase.New(memory.New(), usecase.WithNotion(svc))
	return server.New(uc, server.WithAllowOrigin("*")), &calls
}

type rewriteTransport struct {
	target *url.URL
}

func (rt *rewriteTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	r := req.Clone(req.Context())
	r.URL.Scheme = rt.target.Scheme
	r.URL.Host = rt.target.Host
	r.Host = rt.target.Host
	return http.DefaultTransport.RoundTrip(r)
}

func post(t *testing.T, srv http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)
	return w
}

func decodeMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp struct {
		Message string `json:"message"`
	}
	gt.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp)).Required()
	return resp.Message
}

func TestQueryRisks(t *testing.T) {
	srv, calls := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"object":"list","results":[`+riskPageJSON+`],"has_more":true,"next_cursor":"next-1"}`)
	})

	w := post(t, srv, "/api/risks/query", `{"token":"secret_abc","start_cursor":"c0","page_size":5}`)
	gt.Value(t, w.Code).Equal(http.StatusOK)

	var page model.RiskPage
	gt.NoError(t, json.Unmarshal(w.Body.Bytes(), &page)).Required()
	gt.Bool(t, page.HasMore).True()
	gt.Value(t, page.NextCursor).Equal(model.PageCursor("next-1"))
	gt.Array(t, page.Items).Length(1).Required()
	gt.Value(t, page.Items[0].Name).Equal("Backups untested")
	gt.Value(t, page.Items[0].Subcategory).Equal("")

	gt.Array(t, *calls).Length(1).Required()
	gt.Value(t, (*calls)[0].authorization).Equal("Bearer secret_abc")
	gt.String(t, (*calls)[0].body).Contains(`"start_cursor":"c0"`)
	gt.String(t, (*calls)[0].body).Contains(`"page_size":5`)
}

func TestQueryRisks_LastPage(t *testing.T) {
	srv, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"object":"list","results":[],"has_more":false,"next_cursor":null}`)
	})

	w := post(t, srv, "/api/risks/query", `{"token":"secret_abc"}`)
	gt.Value(t, w.Code).Equal(http.StatusOK)

	var resp map[string]any
	gt.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp)).Required()
	cursor, ok := resp["next_cursor"]
	gt.Bool(t, ok).True()
	gt.Value(t, cursor).Nil()
	gt.Value(t, resp["has_more"]).Equal(any(false))
}

func TestQueryRisks_Errors(t *testing.T) {
	t.Run("upstream failure is 502 with upstream message", func(t *testing.T) {
		srv, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = io.WriteString(w, `{"object":"error","status":401,"code":"unauthorized","message":"API token is invalid."}`)
		})

		w := post(t, srv, "/api/risks/query", `{"token":"bad"}`)
		gt.Value(t, w.Code).Equal(http.StatusBadGateway)
		gt.Value(t, decodeMessage(t, w)).Equal("API token is invalid.")
	})

	t.Run("missing token is 400 without upstream call", func(t *testing.T) {
		srv, calls := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {})

		w := post(t, srv, "/api/risks/query", `{}`)
		gt.Value(t, w.Code).Equal(http.StatusBadRequest)
		gt.Array(t, *calls).Length(0)
	})

	t.Run("page size over 100 is 400", func(t *testing.T) {
		srv, calls := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {})

		w := post(t, srv, "/api/risks/query", `{"token":"t","page_size":500}`)
		gt.Value(t, w.Code).Equal(http.StatusBadRequest)
		gt.Array(t, *calls).Length(0)
	})

	t.Run("malformed body is 400", func(t *testing.T) {
		srv, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {})

		w := post(t, srv, "/api/risks/query", `{"token":`)
		gt.Value(t, w.Code).Equal(http.StatusBadRequest)
		gt.Value(t, decodeMessage(t, w)).Equal("request body is not valid JSON")
	})
}

func TestCreateRisk(t *testing.T) {
	const record = `{"name":"Backups untested","category":"Operational","subcategory":"Data Management","risk_type":"Data Recovery"}`

	t.Run("creates page", func(t *testing.T) {
		srv, calls := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = io.WriteString(w, riskPageJSON)
		})

		w := post(t, srv, "/api/risks", `{"token":"tok","record":`+record+`}`)
		gt.Value(t, w.Code).Equal(http.StatusCreated)

		var created model.RiskRecord
		gt.NoError(t, json.Unmarshal(w.Body.Bytes(), &created)).Required()
		gt.Value(t, created.ID).Equal("9d3f2c1a-4b5e-4f60-8a7b-1c2d3e4f5a6b")

		gt.Array(t, *calls).Length(1).Required()
		gt.Value(t, (*calls)[0].path).Equal("/v1/pages")
		gt.String(t, (*calls)[0].body).Contains(`"emoji":"⚙️"`)
		gt.String(t, (*calls)[0].body).Contains(`"Data Recovery"`)
	})

	t.Run("show payload makes no upstream call", func(t *testing.T) {
		srv, calls := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {})

		w := post(t, srv, "/api/risks", `{"record":`+record+`,"show_payload":true}`)
		gt.Value(t, w.Code).Equal(http.StatusOK)
		gt.Array(t, *calls).Length(0)

		var resp struct {
			Payload struct {
				Parent struct {
					DatabaseID string `json:"database_id"`
				} `json:"parent"`
			} `json:"payload"`
		}
		gt.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp)).Required()
		gt.Value(t, resp.Payload.Parent.DatabaseID).Equal("1cfbe24c-0c90-801d-80a3-e3f220e4f50c")
	})

	t.Run("missing field is 400 with fixed message", func(t *testing.T) {
		srv, calls := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {})

		w := post(t, srv, "/api/risks", `{"token":"tok","record":{"name":"x","category":"Operational"}}`)
		gt.Value(t, w.Code).Equal(http.StatusBadRequest)
		gt.Value(t, decodeMessage(t, w)).Equal(model.MissingFieldsMessage)
		gt.Array(t, *calls).Length(0)
	})
}

func TestGetRisk(t *testing.T) {
	srv, calls := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, riskPageJSON)
	})

	w := post(t, srv, "/api/risks/9d3f2c1a4b5e4f608a7b1c2d3e4f5a6b", `{"token":"tok"}`)
	gt.Value(t, w.Code).Equal(http.StatusOK)
	gt.Value(t, (*calls)[0].path).Equal("/v1/pages/9d3f2c1a-4b5e-4f60-8a7b-1c2d3e4f5a6b")

	w = post(t, srv, "/api/risks/not-an-id", `{"token":"tok"}`)
	gt.Value(t, w.Code).Equal(http.StatusBadRequest)
	gt.Array(t, *calls).Length(1)
}

func TestAnalytics(t *testing.T) {
	srv, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"object":"list","results":[`+riskPageJSON+`,`+riskPageJSON+`],"has_more":false}`)
	})

	w := post(t, srv, "/api/analytics", `{"token":"tok"}`)
	gt.Value(t, w.Code).Equal(http.StatusOK)

	var dist model.CategoryDistribution
	gt.NoError(t, json.Unmarshal(w.Body.Bytes(), &dist)).Required()
	gt.Value(t, dist.Total).Equal(2)
	gt.Array(t, dist.Categories).Length(1).Required()
	gt.Value(t, dist.Categories[0].Category).Equal("Operational")
	gt.Value(t, dist.Categories[0].Percent).Equal(100.0)
}

func TestTaxonomy(t *testing.T) {
	srv, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {})

	req := httptest.NewRequest(http.MethodGet, "/api/taxonomy", nil)
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)
	gt.Value(t, w.Code).Equal(http.StatusOK)
	gt.Value(t, w.Header().Get("Access-Control-Allow-Origin")).Equal("*")

	var resp struct {
		Categories []model.Category `json:"categories"`
		Scales     struct {
			LikelihoodOptions []int `json:"likelihood_options"`
		} `json:"scales"`
	}
	gt.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp)).Required()
	gt.Array(t, resp.Categories).Length(3).Required()
	gt.Value(t, resp.Categories[0].Name).Equal("Operational")
	gt.Value(t, resp.Categories[0].Emoji).Equal("⚙️")
	gt.Value(t, resp.Scales.LikelihoodOptions).Equal([]int{0, 25, 50, 75, 100})
}

func TestPriority(t *testing.T) {
	srv, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {})

	body, err := json.Marshal(model.RiskScoringInput{
		AcquisitionImpact: 5, RetentionImpact: 5, OtherCostsImpact: 5, Likelihood: 100, Effort: 5,
	})
	gt.NoError(t, err).Required()

	w := post(t, srv, "/api/priority", string(body))
	gt.Value(t, w.Code).Equal(http.StatusOK)

	var resp usecase.PriorityAssessment
	gt.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp)).Required()
	gt.Value(t, resp.Priority).Equal(3.0)
	gt.Value(t, resp.Band).Equal(model.PriorityHigh)
	gt.Value(t, resp.Impact.Label).Equal("Critical")

	w = post(t, srv, "/api/priority", `{"customer_acquisition_impact":1,"customer_retention_impact":1,"other_costs_impact":1,"likelihood":50,"effort":0}`)
	gt.Value(t, w.Code).Equal(http.StatusBadRequest)
}

func TestPrioritySummary(t *testing.T) {
	srv, calls := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {})

	w := post(t, srv, "/api/priority/summary", `{"risks":[
		{"customer_acquisition_impact":5,"customer_retention_impact":5,"other_costs_impact":5,"likelihood":100,"effort":5},
		{"customer_acquisition_impact":2,"customer_retention_impact":2,"other_costs_impact":2,"likelihood":50,"effort":3}
	]}`)
	gt.Value(t, w.Code).Equal(http.StatusOK)

	var summary model.AssessmentSummary
	gt.NoError(t, json.Unmarshal(w.Body.Bytes(), &summary)).Required()
	gt.Value(t, summary.TotalRisks).Equal(2)
	gt.Value(t, summary.HighPriorityRisks).Equal(1)
	gt.Value(t, summary.TotalExpectedImpact).Equal(18.0)
	gt.Array(t, *calls).Length(0)

	w = post(t, srv, "/api/priority/summary", `{"risks":[{"customer_acquisition_impact":9,"customer_retention_impact":1,"other_costs_impact":1,"likelihood":50,"effort":1}]}`)
	gt.Value(t, w.Code).Equal(http.StatusBadRequest)
	gt.Value(t, decodeMessage(t, w)).Equal("impact must be between 1 and 5")
}

func TestPreflight(t *testing.T) {
	srv, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {})

	req := httptest.NewRequest(http.MethodOptions, "/api/risks/query", nil)
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)
	gt.Value(t, w.Code).Equal(http.StatusNoContent)
}

func TestHealth(t *testing.T) {
	srv, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {})

	w := httptest.NewRecorder()
	srv.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", bytes.NewReader(nil)))
	gt.Value(t, w.Code).Equal(http.StatusOK)
}
