package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/riskreg/pkg/cli/config"
	"github.com/secmon-lab/riskreg/pkg/domain/model"
)

func TestSession_Configure(t *testing.T) {
	ctx := context.Background()

	t.Run("token flag is held in memory", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "session.json")
		repo, err := config.NewSessionForTest(path, " ntn_123 ").Configure(ctx)
		gt.NoError(t, err).Required()

		session, err := repo.Load(ctx)
		gt.NoError(t, err).Required()
		gt.Value(t, session.Token).Equal("ntn_123")

		gt.NoError(t, repo.Clear(ctx)).Required()
		gt.NoError(t, repo.Save(ctx, &model.Session{Token: "other"})).Required()
		_, err = os.Stat(path)
		gt.Bool(t, os.IsNotExist(err)).True()
	})

	t.Run("session file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "session.json")
		repo, err := config.NewSessionForTest(path, "").Configure(ctx)
		gt.NoError(t, err).Required()

		gt.NoError(t, repo.Save(ctx, &model.Session{Token: "tok"})).Required()
		_, err = os.Stat(path)
		gt.NoError(t, err)
	})
}

func TestNotion_Configure(t *testing.T) {
	svc, err := config.NewNotionForTest("https://www.notion.so/team/Risks-1cfbe24c0c90801d80a3e3f220e4f50c?v=1").Configure()
	gt.NoError(t, err)
	gt.Value(t, svc).NotNil()

	_, err = config.NewNotionForTest("risks").Configure()
	gt.Error(t, err).Is(model.ErrInvalidNotionID)
}
