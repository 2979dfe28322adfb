package leave_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-leave/internal/domain"
	"go-leave/internal/leave"
	leaveerrors "go-leave/internal/leave/errors"
	"go-leave/internal/middleware"
	"go-leave/internal/policy"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type apiEnvelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Meta    *struct {
		Total int64 `json:"total"`
	} `json:"meta"`
	Error *struct {
		Code    string          `json:"code"`
		Message string          `json:"message"`
		Details json.RawMessage `json:"details"`
	} `json:"error"`
}

type fakeLeaveService struct {
	submitFn      func(ctx context.Context, companyID, actorID string, req leave.CreateLeaveRequest) (leave.SubmitResult, error)
	previewFn     func(ctx context.Context, companyID, actorID string, req leave.CreateLeaveRequest) (leave.PreviewResponse, error)
	resubmitFn    func(ctx context.Context, companyID, actorID, leaveID string, req leave.UpdateLeaveRequest) (leave.SubmitResult, error)
	getByIDFn     func(ctx context.Context, companyID, actorID, id string, canReadAll bool) (leave.LeaveResponse, error)
	getAllFn      func(ctx context.Context, companyID, actorID string, canReadAll bool) ([]leave.LeaveResponse, error)
	pendingFn     func(ctx context.Context, companyID, approverID string) ([]leave.PendingApprovalResponse, error)
	historyFn     func(ctx context.Context, companyID, actorID, leaveID string, canReadAll bool) (leave.HistoryResponse, error)
	approveFn     func(ctx context.Context, companyID, leaveID, approverID, comment string) (leave.ApproveResult, error)
	rejectFn      func(ctx context.Context, companyID, leaveID, approverID, reason string) (leave.LeaveResponse, error)
	forwardFn     func(ctx context.Context, companyID, leaveID, approverID, comment string) (leave.ForwardResult, error)
	returnFn      func(ctx context.Context, companyID, leaveID, approverID, reason string) (leave.LeaveResponse, error)
	cancelFn      func(ctx context.Context, companyID, leaveID, actorID, reason string) (leave.LeaveResponse, error)
	bulkApproveFn func(ctx context.Context, companyID string, leaveIDs []string, approverID, comment string) leave.BulkApproveResult
}

func (f *fakeLeaveService) Submit(ctx context.Context, companyID, actorID string, req leave.CreateLeaveRequest) (leave.SubmitResult, error) {
	return f.submitFn(ctx, companyID, actorID, req)
}
func (f *fakeLeaveService) Preview(ctx context.Context, companyID, actorID string, req leave.CreateLeaveRequest) (leave.PreviewResponse, error) {
	return f.previewFn(ctx, companyID, actorID, req)
}
func (f *fakeLeaveService) Resubmit(ctx context.Context, companyID, actorID, leaveID string, req leave.UpdateLeaveRequest) (leave.SubmitResult, error) {
	return f.resubmitFn(ctx, companyID, actorID, leaveID, req)
}
func (f *fakeLeaveService) GetByID(ctx context.Context, companyID, actorID, id string, canReadAll bool) (leave.LeaveResponse, error) {
	return f.getByIDFn(ctx, companyID, actorID, id, canReadAll)
}
func (f *fakeLeaveService) GetAll(ctx context.Context, companyID, actorID string, canReadAll bool) ([]leave.LeaveResponse, error) {
	return f.getAllFn(ctx, companyID, actorID, canReadAll)
}
func (f *fakeLeaveService) ListPendingFor(ctx context.Context, companyID, approverID string) ([]leave.PendingApprovalResponse, error) {
	return f.pendingFn(ctx, companyID, approverID)
}
func (f *fakeLeaveService) History(ctx context.Context, companyID, actorID, leaveID string, canReadAll bool) (leave.HistoryResponse, error) {
	return f.historyFn(ctx, companyID, actorID, leaveID, canReadAll)
}
func (f *fakeLeaveService) Approve(ctx context.Context, companyID, leaveID, approverID, comment string) (leave.ApproveResult, error) {
	return f.approveFn(ctx, companyID, leaveID, approverID, comment)
}
func (f *fakeLeaveService) Reject(ctx context.Context, companyID, leaveID, approverID, reason string) (leave.LeaveResponse, error) {
	return f.rejectFn(ctx, companyID, leaveID, approverID, reason)
}
func (f *fakeLeaveService) Forward(ctx context.Context, companyID, leaveID, approverID, comment string) (leave.ForwardResult, error) {
	return f.forwardFn(ctx, companyID, leaveID, approverID, comment)
}
func (f *fakeLeaveService) ReturnForModification(ctx context.Context, companyID, leaveID, approverID, reason string) (leave.LeaveResponse, error) {
	return f.returnFn(ctx, companyID, leaveID, approverID, reason)
}
func (f *fakeLeaveService) Cancel(ctx context.Context, companyID, leaveID, actorID, reason string) (leave.LeaveResponse, error) {
	return f.cancelFn(ctx, companyID, leaveID, actorID, reason)
}
func (f *fakeLeaveService) BulkApprove(ctx context.Context, companyID string, leaveIDs []string, approverID, comment string) leave.BulkApproveResult {
	return f.bulkApproveFn(ctx, companyID, leaveIDs, approverID, comment)
}

type fakeRBAC struct {
	allow map[string]bool
}

func (f fakeRBAC) Enforce(req domain.EnforceRequest) (bool, error) {
	return f.allow[req.Resource+":"+req.Action], nil
}

func newContext(method, target, body, leaveID string) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, target, strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Set(middleware.KeyCompanyID, "company-1")
	c.Set(middleware.KeyEmployeeID, "emp-1")
	if leaveID != "" {
		c.Params = gin.Params{{Key: "id", Value: leaveID}}
	}
	return c, w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) apiEnvelope {
	t.Helper()
	var env apiEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func TestHandler_Submit(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		svc := &fakeLeaveService{
			submitFn: func(ctx context.Context, companyID, actorID string, req leave.CreateLeaveRequest) (leave.SubmitResult, error) {
				assert.Equal(t, "company-1", companyID)
				assert.Equal(t, "emp-1", actorID)
				assert.Equal(t, "ANNUAL", req.LeaveType)
				return leave.SubmitResult{Leave: leave.LeaveResponse{ID: "leave-1", Status: "PENDING"}, ApproverID: "sup-1"}, nil
			},
		}

		c, w := newContext(http.MethodPost, "/leaves",
			`{"leave_type":"ANNUAL","start_date":"2026-03-16","end_date":"2026-03-18","reason":"trip"}`, "")
		leave.NewHandler(svc, nil).Submit(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		env := decodeEnvelope(t, w)
		assert.True(t, env.Success)
		var got leave.SubmitResult
		require.NoError(t, json.Unmarshal(env.Data, &got))
		assert.Equal(t, "sup-1", got.ApproverID)
	})

	t.Run("unknown leave type rejected by binding", func(t *testing.T) {
		svc := &fakeLeaveService{}
		c, w := newContext(http.MethodPost, "/leaves",
			`{"leave_type":"SABBATICAL","start_date":"2026-03-16","end_date":"2026-03-18"}`, "")
		leave.NewHandler(svc, nil).Submit(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "INVALID_INPUT", decodeEnvelope(t, w).Error.Code)
	})

	t.Run("policy violation carries the verdict", func(t *testing.T) {
		verdict := policy.ValidationResult{
			Valid:      false,
			Violations: []policy.Violation{{Code: "EXCEEDS_MAX_DAYS", Message: "CASUAL leave is capped at 3 days"}},
		}
		svc := &fakeLeaveService{
			submitFn: func(context.Context, string, string, leave.CreateLeaveRequest) (leave.SubmitResult, error) {
				return leave.SubmitResult{}, leaveerrors.ErrPolicyViolation.WithDetails(verdict)
			},
		}

		c, w := newContext(http.MethodPost, "/leaves",
			`{"leave_type":"CASUAL","start_date":"2026-03-16","end_date":"2026-03-19"}`, "")
		leave.NewHandler(svc, nil).Submit(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		env := decodeEnvelope(t, w)
		assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
		assert.Contains(t, string(env.Error.Details), "EXCEEDS_MAX_DAYS")
	})
}

func TestHandler_GetAll_UsesReadAllPermission(t *testing.T) {
	tests := []struct {
		name string
		rbac middleware.RBACService
		want bool
	}{
		{"no rbac service", nil, false},
		{"employee", fakeRBAC{}, false},
		{"hr", fakeRBAC{allow: map[string]bool{domain.ResourceLeave + ":" + domain.ActionReadAll: true}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeLeaveService{
				getAllFn: func(ctx context.Context, companyID, actorID string, canReadAll bool) ([]leave.LeaveResponse, error) {
					assert.Equal(t, tt.want, canReadAll)
					return []leave.LeaveResponse{{ID: "a"}, {ID: "b"}, {ID: "c"}}, nil
				},
			}

			c, w := newContext(http.MethodGet, "/leaves?page=1&page_size=2", "", "")
			leave.NewHandler(svc, tt.rbac).GetAll(c)

			assert.Equal(t, http.StatusOK, w.Code)
			env := decodeEnvelope(t, w)
			var got []leave.LeaveResponse
			require.NoError(t, json.Unmarshal(env.Data, &got))
			assert.Len(t, got, 2)
			require.NotNil(t, env.Meta)
			assert.Equal(t, int64(3), env.Meta.Total)
		})
	}
}

func TestHandler_Approve(t *testing.T) {
	t.Run("empty body", func(t *testing.T) {
		svc := &fakeLeaveService{
			approveFn: func(ctx context.Context, companyID, leaveID, approverID, comment string) (leave.ApproveResult, error) {
				assert.Equal(t, "leave-1", leaveID)
				assert.Equal(t, "emp-1", approverID)
				assert.Empty(t, comment)
				return leave.ApproveResult{LeaveID: leaveID, Approved: true, IsFinal: true}, nil
			},
		}

		c, w := newContext(http.MethodPost, "/leaves/leave-1/approve", "", "leave-1")
		leave.NewHandler(svc, nil).Approve(c)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("state conflict", func(t *testing.T) {
		svc := &fakeLeaveService{
			approveFn: func(context.Context, string, string, string, string) (leave.ApproveResult, error) {
				return leave.ApproveResult{}, leaveerrors.ErrStateConflict
			},
		}

		c, w := newContext(http.MethodPost, "/leaves/leave-1/approve", `{"comment":"ok"}`, "leave-1")
		leave.NewHandler(svc, nil).Approve(c)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, "STATE_CONFLICT", decodeEnvelope(t, w).Error.Code)
	})
}

func TestHandler_Reject_ReasonRequired(t *testing.T) {
	svc := &fakeLeaveService{
		rejectFn: func(ctx context.Context, companyID, leaveID, approverID, reason string) (leave.LeaveResponse, error) {
			assert.Equal(t, "", reason)
			return leave.LeaveResponse{}, leaveerrors.ErrReasonRequired
		},
	}

	c, w := newContext(http.MethodPost, "/leaves/leave-1/reject", `{}`, "leave-1")
	leave.NewHandler(svc, nil).Reject(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "REASON_REQUIRED", decodeEnvelope(t, w).Error.Code)
}

func TestHandler_Cancel_Forbidden(t *testing.T) {
	svc := &fakeLeaveService{
		cancelFn: func(ctx context.Context, companyID, leaveID, actorID, reason string) (leave.LeaveResponse, error) {
			assert.Equal(t, "changed plans", reason)
			return leave.LeaveResponse{}, leaveerrors.ErrCancelForbidden
		},
	}

	c, w := newContext(http.MethodPost, "/leaves/leave-1/cancel", `{"reason":"changed plans"}`, "leave-1")
	leave.NewHandler(svc, nil).Cancel(c)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "FORBIDDEN", decodeEnvelope(t, w).Error.Code)
}

func TestHandler_BulkApprove(t *testing.T) {
	t.Run("partial result is still 200", func(t *testing.T) {
		ids := []string{"6f1c2b8e-9a35-4c1e-8e57-2f0a8f3f5d11", "0b0f3c55-2f71-4f43-9d6c-8a2e9b6c7d22"}
		svc := &fakeLeaveService{
			bulkApproveFn: func(ctx context.Context, companyID string, leaveIDs []string, approverID, comment string) leave.BulkApproveResult {
				assert.Equal(t, ids, leaveIDs)
				return leave.BulkApproveResult{
					SuccessCount: 1,
					FailedIDs:    []string{ids[1]},
					Failures:     []leave.BulkFailure{{LeaveID: ids[1], Code: "STATE_CONFLICT"}},
				}
			},
		}

		body := `{"leave_ids":["` + ids[0] + `","` + ids[1] + `"]}`
		c, w := newContext(http.MethodPost, "/approvals/bulk-approve", body, "")
		leave.NewHandler(svc, nil).BulkApprove(c)

		assert.Equal(t, http.StatusOK, w.Code)
		var got leave.BulkApproveResult
		require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &got))
		assert.Equal(t, 1, got.SuccessCount)
		assert.Equal(t, []string{ids[1]}, got.FailedIDs)
	})

	t.Run("ids must be uuids", func(t *testing.T) {
		c, w := newContext(http.MethodPost, "/approvals/bulk-approve", `{"leave_ids":["nope"]}`, "")
		leave.NewHandler(&fakeLeaveService{}, nil).BulkApprove(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHandler_Pending(t *testing.T) {
	svc := &fakeLeaveService{
		pendingFn: func(ctx context.Context, companyID, approverID string) ([]leave.PendingApprovalResponse, error) {
			assert.Equal(t, "emp-1", approverID)
			return []leave.PendingApprovalResponse{{ApprovalID: "ap-1", Step: 2}}, nil
		},
	}

	c, w := newContext(http.MethodGet, "/approvals/pending", "", "")
	leave.NewHandler(svc, nil).Pending(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var got []leave.PendingApprovalResponse
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &got))
	require.Len(t, got, 1)
	assert.Equal(t, 2, got[0].Step)
}
