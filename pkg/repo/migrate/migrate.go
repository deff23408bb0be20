package migrate

import (
	"context"

	"github.com/RIPRED14/lotfiv7-sub001/pkg/middleware/db"
	"github.com/RIPRED14/lotfiv7-sub001/pkg/middleware/logger"
	"github.com/RIPRED14/lotfiv7-sub001/pkg/repo/model"
)

func Table(ctx context.Context) error {
	d := db.DB().DBWithContext(ctx)
	models := []any{
		&model.SampleForm{},
		&model.Sample{},
		&model.PlannedAnalysis{},
		&model.OngoingAnalysis{},
	}
	for _, m := range models {
		if err := d.AutoMigrate(m); err != nil {
			logger.Errorf(ctx, "migrate table err: %+v", err)
			return err
		}
	}
	return nil
}
