package syncapp

import (
	"context"
	"time"

	syncdom "github.com/chainsync/backend/internal/domain/sync"
	"go.uber.org/zap"
)

// Distributor fans confirmed entity state out to the enabled branch
// endpoints. Distribution runs strictly after the batch transaction has
// committed, so branches only ever see durable state, and a failed push is
// reported on the ledger entry without reversing the upsert.
type Distributor struct {
	branches syncdom.BranchEndpointRepository
	pusher   Pusher
	timeout  time.Duration
	logger   *zap.Logger
}

// NewDistributor creates a distributor with a per-push timeout
func NewDistributor(branches syncdom.BranchEndpointRepository, pusher Pusher, timeout time.Duration, logger *zap.Logger) *Distributor {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Distributor{branches: branches, pusher: pusher, timeout: timeout, logger: logger}
}

// Distribute pushes one entity payload to every enabled branch and returns
// one outcome per branch. It never returns an error for push failures; only
// the endpoint listing itself can fail.
func (d *Distributor) Distribute(ctx context.Context, entityType syncdom.EntityType, payload any) ([]syncdom.DistributionOutcome, error) {
	endpoints, err := d.branches.FindEnabled(ctx)
	if err != nil {
		return nil, err
	}
	if len(endpoints) == 0 {
		return nil, nil
	}

	outcomes := make([]syncdom.DistributionOutcome, 0, len(endpoints))
	for _, endpoint := range endpoints {
		outcomes = append(outcomes, d.push(ctx, endpoint, entityType, payload))
	}
	return outcomes, nil
}

func (d *Distributor) push(ctx context.Context, endpoint syncdom.BranchEndpoint, entityType syncdom.EntityType, payload any) syncdom.DistributionOutcome {
	pushCtx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	if err := d.pusher.Push(pushCtx, endpoint, entityType.BranchPath(), payload); err != nil {
		d.logger.Warn("branch push failed",
			zap.String("branch", endpoint.Code),
			zap.String("entity_type", string(entityType)),
			zap.Error(err))
		return syncdom.DistributionOutcome{Branch: endpoint.Code, Delivered: false, Error: err.Error()}
	}
	return syncdom.DistributionOutcome{Branch: endpoint.Code, Delivered: true}
}
