package holiday_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go-leave/internal/holiday"
	"go-leave/internal/middleware"
	"go-leave/internal/policy"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeHolidayService struct {
	listFn   func(ctx context.Context, companyID string, year int) ([]holiday.HolidayResponse, error)
	createFn func(ctx context.Context, companyID string, req holiday.CreateHolidayRequest) (holiday.HolidayResponse, error)
}

func (f *fakeHolidayService) CalendarFor(context.Context, string, time.Time, time.Time) (policy.Calendar, error) {
	return policy.Calendar{}, nil
}
func (f *fakeHolidayService) List(ctx context.Context, companyID string, year int) ([]holiday.HolidayResponse, error) {
	return f.listFn(ctx, companyID, year)
}
func (f *fakeHolidayService) Create(ctx context.Context, companyID string, req holiday.CreateHolidayRequest) (holiday.HolidayResponse, error) {
	return f.createFn(ctx, companyID, req)
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code string `json:"code"`
	} `json:"error"`
}

func TestHandler_List(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := &fakeHolidayService{
		listFn: func(ctx context.Context, companyID string, year int) ([]holiday.HolidayResponse, error) {
			assert.Equal(t, "company-1", companyID)
			assert.Equal(t, 2027, year)
			return []holiday.HolidayResponse{{Date: "2027-01-01", Name: "New Year"}}, nil
		},
	}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/holidays?year=2027", nil)
	c.Set(middleware.KeyCompanyID, "company-1")

	holiday.NewHandler(svc).List(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.True(t, env.Success)
}

func TestHandler_Create_Validation(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/holidays", strings.NewReader(`{"date":"2026-05-01"}`))
	c.Request.Header.Set("Content-Type", "application/json")

	holiday.NewHandler(&fakeHolidayService{}).Create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.Equal(t, "INVALID_INPUT", env.Error.Code)
}
