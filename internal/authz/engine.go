package authz

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/smilecare/clinic-api/pkg/logger"
	"github.com/smilecare/clinic-api/pkg/metrics"
)

// Engine decides, per request, whether an actor may perform an action on
// an object. It holds no request state and performs at most two reads:
// the target-row lookup during resolution and the assignment lookup.
// Every failure path resolves to deny, never grant.
type Engine struct {
	matrix      *Matrix
	patients    PatientLookup
	assignments AssignmentChecker
	logger      *logger.Logger
	metrics     *metrics.Metrics
}

func NewEngine(matrix *Matrix, patients PatientLookup, assignments AssignmentChecker, logger *logger.Logger, metrics *metrics.Metrics) *Engine {
	return &Engine{
		matrix:      matrix,
		patients:    patients,
		assignments: assignments,
		logger:      logger,
		metrics:     metrics,
	}
}

// Authorize evaluates the matrix entry for the actor's role, resolving
// the target patient and consulting the assignment store only when the
// entry is conditional. A returned error means evaluation itself failed
// (surfaced as a server error, not a deny, so data-layer outages are
// never mistaken for policy).
func (e *Engine) Authorize(ctx context.Context, actor Actor, object ObjectType, action Action, resolver *PatientResolver, params map[string]string) (Outcome, error) {
	outcome, err := e.authorize(ctx, actor, object, action, resolver, params)
	if e.metrics != nil {
		e.metrics.AccessDecisions.WithLabelValues(string(object), string(action), outcome.Decision.String()).Inc()
	}
	return outcome, err
}

func (e *Engine) authorize(ctx context.Context, actor Actor, object ObjectType, action Action, resolver *PatientResolver, params map[string]string) (Outcome, error) {
	switch e.matrix.DecisionMode(actor.Role, object, action) {
	case ModeDeny:
		return Outcome{Decision: DecisionDeny}, nil
	case ModeAllow:
		return Outcome{Decision: DecisionGrant}, nil
	}

	// Conditional entry without a patient context cannot be evaluated
	// safely: configuration error, fail closed.
	if resolver == nil {
		e.logger.Error(nil, "conditional permission without patient resolver",
			"object_type", string(object), "action", string(action))
		return Outcome{Decision: DecisionDeny}, nil
	}

	patientID, err := e.resolvePatient(ctx, resolver, params)
	if err != nil {
		if errors.Is(err, ErrTargetNotFound) {
			return Outcome{Decision: DecisionNotFound}, nil
		}
		return Outcome{Decision: DecisionDeny}, err
	}

	if e.metrics != nil {
		e.metrics.AssignmentLookups.Inc()
	}
	assigned, err := e.assignments.ExistsActive(ctx, patientID, actor.ID)
	if err != nil {
		return Outcome{Decision: DecisionDeny}, err
	}
	if !assigned {
		return Outcome{Decision: DecisionDeny, PatientID: patientID}, nil
	}
	return Outcome{Decision: DecisionGrant, PatientID: patientID}, nil
}

func (e *Engine) resolvePatient(ctx context.Context, resolver *PatientResolver, params map[string]string) (uuid.UUID, error) {
	raw, ok := params[resolver.param]
	if !ok || raw == "" {
		return uuid.Nil, ErrTargetNotFound
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, ErrTargetNotFound
	}

	if resolver.kind == resolverDirect {
		return id, nil
	}
	return e.patients.PatientIDFor(ctx, resolver.table, id)
}
