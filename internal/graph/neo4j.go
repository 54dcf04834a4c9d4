package graph

import (
	"context"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"

	apperrors "github.com/xliberty2008x/dubovyk-ai-digital-brain/pkg/errors"
	"github.com/xliberty2008x/dubovyk-ai-digital-brain/pkg/logger"
)

// boltRunner executes statements over the native bolt protocol. One session is
// opened per statement, mirroring how the driver pools connections.
type boltRunner struct {
	driver   neo4j.DriverWithContext
	database string
	logger   *zap.Logger
}

// NewBoltStore builds the bolt-backed store and ensures the schema. The caller
// keeps ownership of the driver until the store is constructed; afterwards
// Close releases it.
func NewBoltStore(ctx context.Context, driver neo4j.DriverWithContext, database string, embeddingDim int) (Store, error) {
	runner := &boltRunner{
		driver:   driver,
		database: database,
		logger:   logger.Named("graph.bolt"),
	}
	return newCypherStore(ctx, runner, embeddingDim)
}

func (r *boltRunner) Run(ctx context.Context, statement string, params map[string]any) ([]map[string]any, error) {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{DatabaseName: r.database})
	defer session.Close(ctx)

	result, err := session.Run(ctx, statement, params)
	if err != nil {
		return nil, r.classify(statement, err)
	}

	records, err := result.Collect(ctx)
	if err != nil {
		return nil, r.classify(statement, err)
	}

	rows := make([]map[string]any, 0, len(records))
	for _, record := range records {
		rows = append(rows, record.AsMap())
	}
	return rows, nil
}

func (r *boltRunner) Close(ctx context.Context) error {
	return r.driver.Close(ctx)
}

// classify maps driver failures onto the store's error kinds: connectivity
// problems are retryable, rejected statements are not.
func (r *boltRunner) classify(statement string, err error) error {
	if neo4j.IsConnectivityError(err) {
		r.logger.Warn("Bolt connection failure", zap.Error(err))
		return apperrors.NewBackendUnavailable(r.database, err)
	}
	return apperrors.NewQueryRejected(statement, "", err)
}
