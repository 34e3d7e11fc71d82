// Package solver turns a graph into a SolveRequest, hands it to a provider and
// extracts the distances from the answer. It never computes a path itself.
package solver

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"vibekstra/internal/graph"
	"vibekstra/internal/provider"
)

// Solver runs single-source shortest path requests against one provider.
// It is safe for concurrent use when the provider is.
type Solver struct {
	provider provider.Provider
	logger   *zap.Logger
}

// New creates a Solver. A nil logger discards output.
func New(p provider.Provider, logger *zap.Logger) *Solver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Solver{provider: p, logger: logger}
}

// Provider returns the backend the solver dispatches to.
func (s *Solver) Provider() provider.Provider { return s.provider }

// Solve sends one request and returns the distances exactly as the remote
// answered them. The length and values are not checked against n.
func (s *Solver) Solve(ctx context.Context, n, source int, edges [][]int) ([]int, error) {
	req, err := graph.NewSolveRequest(n, source, edges)
	if err != nil {
		return nil, err
	}
	payload, err := req.MarshalIndent()
	if err != nil {
		return nil, err
	}

	id := uuid.NewString()
	ctx = provider.WithRequestID(ctx, id)
	log := s.logger.With(
		zap.String("request_id", id),
		zap.String("provider", string(s.provider.Name())),
		zap.String("model", s.provider.Model()))

	start := time.Now()
	log.Debug("solving", zap.Int("n", n), zap.Int("source", source), zap.Int("edges", len(req.Edges)))

	raw, err := s.provider.GenerateStructured(ctx, payload, graph.ResponseShape)
	if err != nil {
		return nil, err
	}
	resp, err := Extract(raw)
	if err != nil {
		return nil, withProvider(err, s.provider.Name())
	}

	log.Debug("solved", zap.Int("distances", len(resp.Distances)), zap.Duration("duration", time.Since(start)))
	return resp.Distances, nil
}

// Vibekstra builds a provider from cfg, solves once and releases the
// provider. Configuration problems fail before any network call.
func Vibekstra(ctx context.Context, cfg provider.Config, n, source int, edges [][]int) ([]int, error) {
	p, err := provider.New(ctx, cfg, nil)
	if err != nil {
		return nil, err
	}
	defer p.Close()

	distances, err := New(p, nil).Solve(ctx, n, source, edges)
	if err != nil {
		return nil, fmt.Errorf("vibekstra: %w", err)
	}
	return distances, nil
}

func withProvider(err error, name provider.Name) error {
	switch e := err.(type) {
	case *provider.ParseError:
		e.Provider = name
	case *provider.ConstructionError:
		e.Provider = name
	}
	return err
}
