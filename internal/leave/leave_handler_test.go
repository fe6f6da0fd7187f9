package leave_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"leavedesk/internal/leave"
	leaveerrors "leavedesk/internal/leave/errors"
	"leavedesk/internal/shared/identity"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type apiEnvelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Meta  json.RawMessage `json:"meta"`
	Error *apiError       `json:"error"`
}

func decodeEnvelope(t *testing.T, body []byte) apiEnvelope {
	t.Helper()
	var env apiEnvelope
	err := json.Unmarshal(body, &env)
	assert.NoError(t, err)
	return env
}

type fakeLeaveService struct {
	submitFn            func(ctx context.Context, actor identity.View, req leave.SubmitLeaveRequest) (leave.RecordResponse, error)
	listMineFn          func(ctx context.Context, ownerID string) ([]leave.RecordResponse, error)
	listAllFn           func(ctx context.Context) ([]leave.RecordResponse, error)
	listPendingFn       func(ctx context.Context) ([]leave.RecordResponse, error)
	approveFn           func(ctx context.Context, resolver identity.View, id, comment string) (leave.RecordResponse, error)
	rejectFn            func(ctx context.Context, resolver identity.View, id, comment string) (leave.RecordResponse, error)
	deleteOwnerFn       func(ctx context.Context, userID string) error
	reconcileScheduleFn func(req leave.ScheduleEditRequest) (leave.ScheduleResponse, error)
}

func (f *fakeLeaveService) Submit(ctx context.Context, actor identity.View, req leave.SubmitLeaveRequest) (leave.RecordResponse, error) {
	return f.submitFn(ctx, actor, req)
}
func (f *fakeLeaveService) ListMine(ctx context.Context, ownerID string) ([]leave.RecordResponse, error) {
	return f.listMineFn(ctx, ownerID)
}
func (f *fakeLeaveService) ListAll(ctx context.Context) ([]leave.RecordResponse, error) {
	return f.listAllFn(ctx)
}
func (f *fakeLeaveService) ListPending(ctx context.Context) ([]leave.RecordResponse, error) {
	return f.listPendingFn(ctx)
}
func (f *fakeLeaveService) Approve(ctx context.Context, resolver identity.View, id, comment string) (leave.RecordResponse, error) {
	return f.approveFn(ctx, resolver, id, comment)
}
func (f *fakeLeaveService) Reject(ctx context.Context, resolver identity.View, id, comment string) (leave.RecordResponse, error) {
	return f.rejectFn(ctx, resolver, id, comment)
}
func (f *fakeLeaveService) DeleteOwner(ctx context.Context, userID string) error {
	return f.deleteOwnerFn(ctx, userID)
}
func (f *fakeLeaveService) ReconcileSchedule(req leave.ScheduleEditRequest) (leave.ScheduleResponse, error) {
	return f.reconcileScheduleFn(req)
}

func TestLeaveHandler_Submit(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &fakeLeaveService{
			submitFn: func(ctx context.Context, actor identity.View, req leave.SubmitLeaveRequest) (leave.RecordResponse, error) {
				assert.Equal(t, "R001", actor.UserID)
				assert.Equal(t, "事假", req.LeaveType)
				return leave.RecordResponse{ID: "rec-1", OwnerID: actor.UserID, Status: leave.StatusPending}, nil
			},
		}

		h := leave.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		body := `{"leaveType":"事假","leaveDays":2,"startDate":"2026-09-10","endDate":"2026-09-11","leaveReason":"家里有事需要回去处理"}`
		c.Request = httptest.NewRequest(http.MethodPost, "/my/leaves", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Set("actor", applicant)

		h.Submit(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.True(t, env.Ok)
		var got leave.RecordResponse
		assert.NoError(t, json.Unmarshal(env.Data, &got))
		assert.Equal(t, "rec-1", got.ID)
		assert.Equal(t, leave.StatusPending, got.Status)
	})

	t.Run("negative missing actor", func(t *testing.T) {
		h := leave.NewHandler(&fakeLeaveService{})
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/my/leaves", strings.NewReader(`{}`))
		c.Request.Header.Set("Content-Type", "application/json")

		h.Submit(c)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.False(t, env.Ok)
		assert.Equal(t, "UNAUTHORIZED", env.Error.Code)
	})

	t.Run("negative malformed body maps to invalid input", func(t *testing.T) {
		h := leave.NewHandler(&fakeLeaveService{})
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/my/leaves", strings.NewReader(`{"leaveDays":"three"}`))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Set("actor", applicant)

		h.Submit(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.False(t, env.Ok)
		assert.Equal(t, "INVALID_INPUT", env.Error.Code)
	})

	t.Run("negative domain validation error", func(t *testing.T) {
		svc := &fakeLeaveService{
			submitFn: func(ctx context.Context, actor identity.View, req leave.SubmitLeaveRequest) (leave.RecordResponse, error) {
				return leave.RecordResponse{}, leaveerrors.ErrReasonTooShort
			},
		}

		h := leave.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/my/leaves", strings.NewReader(`{"leaveType":"事假"}`))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Set("actor", applicant)

		h.Submit(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.Equal(t, "INVALID_INPUT", env.Error.Code)
		assert.Equal(t, "reason must be at least 10 characters", env.Error.Message)
	})
}

func TestLeaveHandler_Resolve(t *testing.T) {
	t.Run("approve without body passes empty comment", func(t *testing.T) {
		svc := &fakeLeaveService{
			approveFn: func(ctx context.Context, resolver identity.View, id, comment string) (leave.RecordResponse, error) {
				assert.Equal(t, "A001", resolver.UserID)
				assert.Equal(t, "rec-1", id)
				assert.Empty(t, comment)
				return leave.RecordResponse{ID: id, Status: leave.StatusApproved}, nil
			},
		}

		h := leave.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/admin/leaves/rec-1/approve", nil)
		c.Params = gin.Params{{Key: "id", Value: "rec-1"}}
		c.Set("actor", reviewer)

		h.Approve(c)

		assert.Equal(t, http.StatusOK, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.True(t, env.Ok)
	})

	t.Run("reject forwards the body comment", func(t *testing.T) {
		svc := &fakeLeaveService{
			rejectFn: func(ctx context.Context, resolver identity.View, id, comment string) (leave.RecordResponse, error) {
				assert.Equal(t, "材料不全", comment)
				return leave.RecordResponse{ID: id, Status: leave.StatusRejected}, nil
			},
		}

		h := leave.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/admin/leaves/rec-1/reject", strings.NewReader(`{"comment":"材料不全"}`))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Params = gin.Params{{Key: "id", Value: "rec-1"}}
		c.Set("actor", reviewer)

		h.Reject(c)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("negative unknown record", func(t *testing.T) {
		svc := &fakeLeaveService{
			approveFn: func(ctx context.Context, resolver identity.View, id, comment string) (leave.RecordResponse, error) {
				return leave.RecordResponse{}, leaveerrors.ErrRecordNotFound
			},
		}

		h := leave.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/admin/leaves/missing/approve", nil)
		c.Params = gin.Params{{Key: "id", Value: "missing"}}
		c.Set("actor", reviewer)

		h.Approve(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.Equal(t, "NOT_FOUND", env.Error.Code)
	})

	t.Run("negative already resolved", func(t *testing.T) {
		svc := &fakeLeaveService{
			rejectFn: func(ctx context.Context, resolver identity.View, id, comment string) (leave.RecordResponse, error) {
				return leave.RecordResponse{}, leaveerrors.ErrInvalidTransition
			},
		}

		h := leave.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/admin/leaves/rec-1/reject", nil)
		c.Params = gin.Params{{Key: "id", Value: "rec-1"}}
		c.Set("actor", reviewer)

		h.Reject(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.Equal(t, "INVALID_STATE", env.Error.Code)
	})
}

func TestLeaveHandler_ListAll(t *testing.T) {
	all := make([]leave.RecordResponse, 25)
	for i := range all {
		all[i] = leave.RecordResponse{ID: "rec", Status: leave.StatusPending}
	}

	svc := &fakeLeaveService{
		listAllFn: func(ctx context.Context) ([]leave.RecordResponse, error) {
			return all, nil
		},
	}

	t.Run("paginates with defaults", func(t *testing.T) {
		h := leave.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/admin/leaves", nil)

		h.ListAll(c)

		assert.Equal(t, http.StatusOK, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		var page []leave.RecordResponse
		assert.NoError(t, json.Unmarshal(env.Data, &page))
		assert.Len(t, page, 10)

		var meta struct {
			Total      int64 `json:"total"`
			TotalPages int   `json:"totalPages"`
			Page       int   `json:"page"`
		}
		assert.NoError(t, json.Unmarshal(env.Meta, &meta))
		assert.Equal(t, int64(25), meta.Total)
		assert.Equal(t, 3, meta.TotalPages)
		assert.Equal(t, 1, meta.Page)
	})

	t.Run("out of range page is empty", func(t *testing.T) {
		h := leave.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/admin/leaves?page=9&page_size=10", nil)

		h.ListAll(c)

		assert.Equal(t, http.StatusOK, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		var page []leave.RecordResponse
		assert.NoError(t, json.Unmarshal(env.Data, &page))
		assert.Empty(t, page)
	})
}

func TestLeaveHandler_DeleteOwner(t *testing.T) {
	svc := &fakeLeaveService{
		deleteOwnerFn: func(ctx context.Context, userID string) error {
			assert.Equal(t, "R001", userID)
			return nil
		},
	}

	h := leave.NewHandler(svc)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodDelete, "/admin/users/R001", nil)
	c.Params = gin.Params{{Key: "userId", Value: "R001"}}

	h.DeleteOwner(c)

	assert.Equal(t, http.StatusOK, w.Code)
	env := decodeEnvelope(t, w.Body.Bytes())
	assert.True(t, env.Ok)
}

func TestLeaveHandler_ReconcileSchedule(t *testing.T) {
	t.Run("negative unknown edited field fails binding", func(t *testing.T) {
		h := leave.NewHandler(&fakeLeaveService{})
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/my/leaves/schedule", strings.NewReader(`{"edited":"reason"}`))
		c.Request.Header.Set("Content-Type", "application/json")

		h.ReconcileSchedule(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.Equal(t, "INVALID_INPUT", env.Error.Code)
	})

	t.Run("success", func(t *testing.T) {
		svc := &fakeLeaveService{
			reconcileScheduleFn: func(req leave.ScheduleEditRequest) (leave.ScheduleResponse, error) {
				assert.Equal(t, leave.EditDays, req.Edited)
				return leave.ScheduleResponse{StartDate: "2024-06-10", EndDate: "2024-06-12", Days: 3}, nil
			},
		}

		h := leave.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/my/leaves/schedule", strings.NewReader(`{"edited":"days","startDate":"2024-06-10","days":3}`))
		c.Request.Header.Set("Content-Type", "application/json")

		h.ReconcileSchedule(c)

		assert.Equal(t, http.StatusOK, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		var got leave.ScheduleResponse
		assert.NoError(t, json.Unmarshal(env.Data, &got))
		assert.Equal(t, "2024-06-12", got.EndDate)
	})
}
