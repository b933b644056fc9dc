package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smilecare/clinic-api/internal/authz"
	"github.com/smilecare/clinic-api/pkg/logger"
)

type stubPatientLookup struct {
	patients map[uuid.UUID]uuid.UUID
}

func (s *stubPatientLookup) PatientIDFor(_ context.Context, _ string, id uuid.UUID) (uuid.UUID, error) {
	patientID, ok := s.patients[id]
	if !ok {
		return uuid.Nil, authz.ErrTargetNotFound
	}
	return patientID, nil
}

type stubAssignments struct {
	active map[uuid.UUID]map[uuid.UUID]bool
}

func (s *stubAssignments) ExistsActive(_ context.Context, patientID, userID uuid.UUID) (bool, error) {
	return s.active[patientID][userID], nil
}

func newTestRouter(t *testing.T, engine *authz.Engine, actor authz.Actor, object authz.ObjectType, action authz.Action, resolver *authz.PatientResolver) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	access := NewAccessMiddleware(engine)
	r.GET("/patients/:patient_id/visits",
		func(c *gin.Context) { c.Set(ContextActor, actor) },
		access.Require(object, action, resolver),
		func(c *gin.Context) {
			patientID, _ := PatientIDFrom(c)
			c.JSON(http.StatusOK, gin.H{"patient_id": patientID.String()})
		},
	)
	return r
}

func TestRequire(t *testing.T) {
	log := logger.NewLogger(nil)
	patientID := uuid.New()
	nurseID := uuid.New()

	lookup := &stubPatientLookup{patients: map[uuid.UUID]uuid.UUID{}}
	assignments := &stubAssignments{active: map[uuid.UUID]map[uuid.UUID]bool{
		patientID: {nurseID: true},
	}}
	engine := authz.NewEngine(authz.DefaultMatrix(), lookup, assignments, log, nil)

	nurse := authz.Actor{ID: nurseID, Role: authz.RoleNurse}

	t.Run("assigned clinician passes and patient ID is stored", func(t *testing.T) {
		r := newTestRouter(t, engine, nurse, authz.ObjectMedicalDetail, authz.ActionRead, authz.DirectParam("patient_id"))

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/patients/"+patientID.String()+"/visits", nil)
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), patientID.String())
	})

	t.Run("unassigned clinician gets generic 403", func(t *testing.T) {
		other := authz.Actor{ID: uuid.New(), Role: authz.RoleNurse}
		r := newTestRouter(t, engine, other, authz.ObjectMedicalDetail, authz.ActionRead, authz.DirectParam("patient_id"))

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/patients/"+patientID.String()+"/visits", nil)
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), "access denied")
		assert.NotContains(t, w.Body.String(), "assignment")
	})

	t.Run("matrix deny is 403 without any lookup", func(t *testing.T) {
		reception := authz.Actor{ID: uuid.New(), Role: authz.RoleReception}
		r := newTestRouter(t, engine, reception, authz.ObjectMedicalDetail, authz.ActionRead, authz.DirectParam("patient_id"))

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/patients/"+patientID.String()+"/visits", nil)
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("missing target is 404 not 403", func(t *testing.T) {
		r := gin.New()
		gin.SetMode(gin.TestMode)
		access := NewAccessMiddleware(engine)
		r.GET("/visits/:visit_id",
			func(c *gin.Context) { c.Set(ContextActor, nurse) },
			access.Require(authz.ObjectMedicalDetail, authz.ActionRead, authz.LookupTable(authz.TableVisits, "visit_id")),
			func(c *gin.Context) { c.Status(http.StatusOK) },
		)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/visits/"+uuid.NewString(), nil)
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("unauthenticated request is 401", func(t *testing.T) {
		r := gin.New()
		access := NewAccessMiddleware(engine)
		r.GET("/patients/:patient_id",
			access.Require(authz.ObjectPatient, authz.ActionRead, authz.DirectParam("patient_id")),
			func(c *gin.Context) { c.Status(http.StatusOK) },
		)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/patients/"+patientID.String(), nil)
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
