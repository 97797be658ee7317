package syncapp

import (
	"context"
	"errors"
	"fmt"

	"github.com/chainsync/backend/internal/domain/shared"
	syncdom "github.com/chainsync/backend/internal/domain/sync"
	"github.com/chainsync/backend/internal/infrastructure/record"
	"github.com/chainsync/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// Engine is the reconciliation and distribution orchestrator. One engine
// serves every entity type; per-type behavior comes from the adapter
// registry.
type Engine struct {
	registry    *Registry
	resolver    Resolver
	scope       TransactionScope
	repos       Repositories
	recorder    *Recorder
	distributor *Distributor
	logger      *zap.Logger
}

// NewEngine wires the orchestrator
func NewEngine(
	registry *Registry,
	scope TransactionScope,
	repos Repositories,
	recorder *Recorder,
	distributor *Distributor,
	logger *zap.Logger,
) *Engine {
	return &Engine{
		registry:    registry,
		scope:       scope,
		repos:       repos,
		recorder:    recorder,
		distributor: distributor,
		logger:      logger,
	}
}

// RunBatch reconciles one inbound batch. The whole batch runs inside a
// single transaction with a nested scope per record, so one bad record rolls
// back alone while its neighbors commit together. After the transaction has
// committed, confirmed active entities are fanned out to the enabled branch
// endpoints; push failures attach to the ledger entries and never reverse a
// committed upsert.
func (e *Engine) RunBatch(ctx context.Context, entityType syncdom.EntityType, total int, records []record.Record) (*syncdom.BatchResult, *syncdom.SyncLog, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "sync", "run_batch",
		attribute.String("entity_type", string(entityType)),
		attribute.Int("records_total", total))
	defer span.End()

	adapter, err := e.registry.Get(entityType)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, nil, err
	}
	if total != len(records) {
		err := shared.NewValidationError(
			fmt.Sprintf("declared total %d does not match %d records", total, len(records)))
		telemetry.RecordError(span, err)
		return nil, nil, err
	}
	if len(records) == 0 {
		err := shared.NewValidationError("records are required")
		telemetry.RecordError(span, err)
		return nil, nil, err
	}

	log, err := e.recorder.Begin(ctx, entityType, syncdom.DirectionInbound, total)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, nil, err
	}

	result := syncdom.NewBatchResult(total)
	err = e.scope.Batch(ctx, func(scope BatchScope) error {
		for i, rec := range records {
			ids := rec.Identifiers(adapter.Identifiers().Names())
			action, entityID, recErr := e.processRecord(ctx, scope, adapter, rec)
			if recErr != nil {
				code, msg := classify(recErr)
				result.AppendFailure(i, ids, code, msg)
				e.logger.Debug("record rejected",
					zap.String("entity_type", string(entityType)),
					zap.Int("index", i),
					zap.String("code", code),
					zap.String("error", msg))
				continue
			}
			result.AppendSuccess(i, ids, action, entityID)
		}
		return nil
	})
	if err != nil {
		e.recorder.Abort(ctx, log, result.Imported, result.Failed, err)
		telemetry.RecordError(span, err)
		return nil, log, fmt.Errorf("batch transaction failed: %w", err)
	}

	span.SetAttributes(
		attribute.Int("imported", result.Imported),
		attribute.Int("failed", result.Failed))

	e.distributeBatch(ctx, adapter, result)

	if err := e.recorder.Complete(ctx, log, result.Imported, result.Failed); err != nil {
		return result, log, err
	}
	return result, log, nil
}

// processRecord validates, resolves, and upserts one record inside its own
// nested scope. Any returned error means the record's writes were rolled
// back in full.
func (e *Engine) processRecord(ctx context.Context, scope BatchScope, adapter EntityAdapter, rec record.Record) (syncdom.RecordAction, uuid.UUID, error) {
	var action syncdom.RecordAction
	var entityID uuid.UUID

	err := scope.Record(func(repos Repositories) error {
		if err := adapter.Validate(rec); err != nil {
			return err
		}

		match, err := e.resolver.Resolve(ctx, adapter.Identifiers(), rec, func(ctx context.Context, field, value string) ([]uuid.UUID, error) {
			return adapter.FindMatches(ctx, repos, field, value)
		})
		if err != nil {
			return err
		}

		if match == nil {
			id, err := adapter.Create(ctx, repos, rec)
			if err != nil {
				return err
			}
			action, entityID = syncdom.ActionCreated, id
			return nil
		}

		if err := adapter.Update(ctx, repos, match.ID, rec); err != nil {
			return err
		}
		action, entityID = syncdom.ActionUpdated, match.ID
		return nil
	})
	return action, entityID, err
}

// distributeBatch pushes every successfully upserted, still-active entity to
// the enabled branches and attaches the outcomes to the ledger.
func (e *Engine) distributeBatch(ctx context.Context, adapter EntityAdapter, result *syncdom.BatchResult) {
	for i := range result.Results {
		entry := &result.Results[i]
		if !entry.Success || entry.EntityID == nil {
			continue
		}

		payload, distributable, err := adapter.Snapshot(ctx, e.repos, *entry.EntityID)
		if err != nil {
			e.logger.Warn("could not load entity for distribution",
				zap.String("entity_id", entry.EntityID.String()), zap.Error(err))
			continue
		}
		if !distributable {
			continue
		}

		outcomes, err := e.distributor.Distribute(ctx, adapter.EntityType(), payload)
		if err != nil {
			e.logger.Warn("could not list branch endpoints", zap.Error(err))
			return
		}
		entry.Distribution = outcomes
	}
}

// ResolveIdentifier locates one entity by a single path identifier, trying
// the entity type's identifier fields in precedence order. Used by the
// single-entity read and write endpoints.
func (e *Engine) ResolveIdentifier(ctx context.Context, entityType syncdom.EntityType, value string) (uuid.UUID, error) {
	adapter, err := e.registry.Get(entityType)
	if err != nil {
		return uuid.Nil, err
	}
	if value == "" {
		return uuid.Nil, shared.NewValidationError("identifier is required")
	}

	for _, field := range adapter.Identifiers() {
		matches, err := adapter.FindMatches(ctx, e.repos, field.Name, value)
		if err != nil {
			return uuid.Nil, err
		}
		switch len(matches) {
		case 0:
			continue
		case 1:
			return matches[0], nil
		default:
			return uuid.Nil, shared.NewDomainError(shared.CodeResolutionConflict,
				fmt.Sprintf("identifier %q matches %d entities by %s", value, len(matches), field.Name))
		}
	}
	return uuid.Nil, shared.ErrNotFound
}

// GetEntity returns the distributable representation of one entity.
func (e *Engine) GetEntity(ctx context.Context, entityType syncdom.EntityType, identifier string) (any, error) {
	adapter, err := e.registry.Get(entityType)
	if err != nil {
		return nil, err
	}
	id, err := e.ResolveIdentifier(ctx, entityType, identifier)
	if err != nil {
		return nil, err
	}
	payload, _, err := adapter.Snapshot(ctx, e.repos, id)
	return payload, err
}

// UpdateEntity applies a single record onto one resolved entity with the
// same coalesce semantics as the batch path, then redistributes the
// confirmed state. Distribution outcomes are advisory.
func (e *Engine) UpdateEntity(ctx context.Context, entityType syncdom.EntityType, identifier string, rec record.Record) (any, []syncdom.DistributionOutcome, error) {
	adapter, err := e.registry.Get(entityType)
	if err != nil {
		return nil, nil, err
	}
	id, err := e.ResolveIdentifier(ctx, entityType, identifier)
	if err != nil {
		return nil, nil, err
	}

	err = e.scope.Batch(ctx, func(scope BatchScope) error {
		return scope.Record(func(repos Repositories) error {
			return adapter.Update(ctx, repos, id, rec)
		})
	})
	if err != nil {
		return nil, nil, err
	}

	payload, distributable, err := adapter.Snapshot(ctx, e.repos, id)
	if err != nil {
		return nil, nil, err
	}
	var outcomes []syncdom.DistributionOutcome
	if distributable {
		outcomes, err = e.distributor.Distribute(ctx, entityType, payload)
		if err != nil {
			e.logger.Warn("could not list branch endpoints", zap.Error(err))
			err = nil
		}
	}
	return payload, outcomes, nil
}

// DeactivateEntity moves one resolved entity out of the distributable state.
// Deactivated entities are excluded from future distribution rather than
// deleted from the store.
func (e *Engine) DeactivateEntity(ctx context.Context, entityType syncdom.EntityType, identifier string) error {
	adapter, err := e.registry.Get(entityType)
	if err != nil {
		return err
	}
	id, err := e.ResolveIdentifier(ctx, entityType, identifier)
	if err != nil {
		return err
	}
	return e.scope.Batch(ctx, func(scope BatchScope) error {
		return scope.Record(func(repos Repositories) error {
			return adapter.Deactivate(ctx, repos, id)
		})
	})
}

// classify maps an error to its ledger code and message. Domain errors keep
// their own code; anything unrecognized is reported as internal without
// leaking driver details into the ledger.
func classify(err error) (code, message string) {
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code, domainErr.Message
	}
	return shared.CodeInternal, "internal error while processing record"
}
