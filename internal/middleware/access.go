package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/smilecare/clinic-api/internal/authz"
	"github.com/smilecare/clinic-api/pkg/errors"
	"github.com/smilecare/clinic-api/pkg/httputil"
)

// ContextPatientID holds the patient resolved during access evaluation,
// so handlers never repeat the lookup.
const ContextPatientID = "patient_id"

type AccessMiddleware struct {
	engine *authz.Engine
}

func NewAccessMiddleware(engine *authz.Engine) *AccessMiddleware {
	return &AccessMiddleware{engine: engine}
}

// Require guards a route with the access engine. DENY is surfaced as a
// generic 403, a missing target as 404, and an evaluation failure as
// 500; the engine itself never grants on failure.
func (m *AccessMiddleware) Require(object authz.ObjectType, action authz.Action, resolver *authz.PatientResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := ActorFrom(c)
		if !ok {
			httputil.RespondWithError(c, errors.Unauthorized(nil))
			c.Abort()
			return
		}

		params := make(map[string]string, len(c.Params))
		for _, p := range c.Params {
			params[p.Key] = p.Value
		}

		outcome, err := m.engine.Authorize(c.Request.Context(), actor, object, action, resolver, params)
		if err != nil {
			httputil.RespondWithError(c, errors.Internal(err))
			c.Abort()
			return
		}

		switch outcome.Decision {
		case authz.DecisionGrant:
			if outcome.PatientID != uuid.Nil {
				c.Set(ContextPatientID, outcome.PatientID)
			}
			c.Next()
		case authz.DecisionNotFound:
			httputil.RespondWithError(c, errors.NotFound("resource", nil))
			c.Abort()
		default:
			httputil.RespondWithError(c, errors.Forbidden(nil))
			c.Abort()
		}
	}
}

// PatientIDFrom returns the patient resolved by Require, if any.
func PatientIDFrom(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(ContextPatientID)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}
