package model_test

import (
	"encoding/json"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/riskreg/pkg/domain/model"
)

func TestPager(t *testing.T) {
	t.Run("forward twice then back once returns the first forward cursor", func(t *testing.T) {
		var p model.Pager
		gt.Bool(t, p.CanBack()).False()

		p.Forward("cursor-1")
		p.Forward("cursor-2")
		gt.Value(t, p.Current()).Equal(model.PageCursor("cursor-2"))
		gt.Value(t, p.Depth()).Equal(2)

		prev, ok := p.Back()
		gt.Bool(t, ok).True()
		gt.Value(t, prev).Equal(model.PageCursor("cursor-1"))
		gt.Value(t, p.Current()).Equal(model.PageCursor("cursor-1"))
	})

	t.Run("back to the first page yields the empty cursor", func(t *testing.T) {
		var p model.Pager
		p.Forward("cursor-1")

		prev, ok := p.Back()
		gt.Bool(t, ok).True()
		gt.Value(t, prev).Equal(model.PageCursor(""))
		gt.Bool(t, p.CanBack()).False()
	})

	t.Run("back on the first page does nothing", func(t *testing.T) {
		var p model.Pager
		_, ok := p.Back()
		gt.Bool(t, ok).False()
		gt.Value(t, p.Current()).Equal(model.PageCursor(""))
	})

	t.Run("peek does not move", func(t *testing.T) {
		var p model.Pager
		p.Forward("cursor-1")
		prev, ok := p.PeekBack()
		gt.Bool(t, ok).True()
		gt.Value(t, prev).Equal(model.PageCursor(""))
		gt.Value(t, p.Current()).Equal(model.PageCursor("cursor-1"))
	})

	t.Run("reset", func(t *testing.T) {
		var p model.Pager
		p.Forward("cursor-1")
		p.Reset()
		gt.Value(t, p.Current()).Equal(model.PageCursor(""))
		gt.Value(t, p.Depth()).Equal(0)
	})
}

func TestPageRequest_Validate(t *testing.T) {
	gt.NoError(t, model.PageRequest{}.Validate())
	gt.NoError(t, model.PageRequest{PageSize: 100}.Validate())
	gt.Error(t, model.PageRequest{PageSize: 101}.Validate()).Is(model.ErrValidation)
	gt.Error(t, model.PageRequest{PageSize: -1}.Validate()).Is(model.ErrValidation)
}

func TestRiskPage_MarshalJSON(t *testing.T) {
	t.Run("last page encodes next_cursor as null", func(t *testing.T) {
		raw, err := json.Marshal(&model.RiskPage{Items: []*model.RiskRecord{}})
		gt.NoError(t, err).Required()
		gt.Value(t, string(raw)).Equal(`{"items":[],"next_cursor":null,"has_more":false}`)
	})

	t.Run("cursor round trips", func(t *testing.T) {
		raw, err := json.Marshal(model.RiskPage{Items: []*model.RiskRecord{}, NextCursor: "c2", HasMore: true})
		gt.NoError(t, err).Required()
		gt.Value(t, string(raw)).Equal(`{"items":[],"next_cursor":"c2","has_more":true}`)

		var page model.RiskPage
		gt.NoError(t, json.Unmarshal(raw, &page)).Required()
		gt.Value(t, page.NextCursor).Equal(model.PageCursor("c2"))
	})
}
