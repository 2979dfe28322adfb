package holiday

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	holidayerrors "go-leave/internal/holiday/errors"
	"go-leave/internal/policy"
	"go-leave/internal/shared/apperror"
	"go-leave/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	dateLayout = "2006-01-02"

	HolidaysKeyPrefix = "holidays:"
	cacheTTL          = 6 * time.Hour

	// maxCalendarYears caps how many calendar years one CalendarFor call loads.
	maxCalendarYears = 3
)

func GetHolidaysKey(companyID string, year int) string {
	return fmt.Sprintf("%s%s:%d", HolidaysKeyPrefix, companyID, year)
}

//go:generate mockgen -source=holiday_service.go -destination=mock/holiday_service_mock.go -package=mock
type Service interface {
	// CalendarFor builds a working-day calendar covering every year touched
	// by [from, to].
	CalendarFor(ctx context.Context, companyID string, from, to time.Time) (policy.Calendar, error)
	List(ctx context.Context, companyID string, year int) ([]HolidayResponse, error)
	Create(ctx context.Context, companyID string, req CreateHolidayRequest) (HolidayResponse, error)
}

type service struct {
	repo   Repository
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

// NewService accepts a nil rdb; the cache is then skipped.
func NewService(repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("holiday.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("holiday.service")
	}
	return &service{
		repo:   repo,
		rdb:    rdb,
		sf:     &singleflight.Group{},
		logger: l,
	}
}

func (s *service) CalendarFor(ctx context.Context, companyID string, from, to time.Time) (policy.Calendar, error) {
	if to.Before(from) {
		to = from
	}
	if to.Year()-from.Year() >= maxCalendarYears {
		return policy.Calendar{}, holidayerrors.ErrRangeTooLarge
	}

	var holidays []policy.Holiday
	for year := from.Year(); year <= to.Year(); year++ {
		rows, err := s.List(ctx, companyID, year)
		if err != nil {
			return policy.Calendar{}, err
		}
		for _, h := range rows {
			d, err := time.Parse(dateLayout, h.Date)
			if err != nil {
				continue
			}
			holidays = append(holidays, policy.Holiday{Date: d, Name: h.Name})
		}
	}
	return policy.NewCalendar(holidays), nil
}

func (s *service) List(ctx context.Context, companyID string, year int) ([]HolidayResponse, error) {
	logger := contextutil.GetLogger(ctx, s.logger)
	cacheKey := GetHolidaysKey(companyID, year)

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var resp []HolidayResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
		to := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)
		rows, err := s.repo.FindByRange(ctx, companyID, from, to)
		if err != nil {
			return nil, err
		}

		resp := mapToListResponse(rows)
		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				if err := s.rdb.Set(ctx, cacheKey, jsonData, cacheTTL).Err(); err != nil {
					logger.Warn("holiday cache store failed", zap.String("key", cacheKey), zap.Error(err))
				}
			}
		}
		return resp, nil
	})
	if err != nil {
		logger.Error("holiday list failed", zap.String("company_id", companyID), zap.Int("year", year), zap.Error(err))
		return nil, err
	}
	return v.([]HolidayResponse), nil
}

func (s *service) Create(ctx context.Context, companyID string, req CreateHolidayRequest) (HolidayResponse, error) {
	logger := contextutil.GetLogger(ctx, s.logger)

	date, err := time.Parse(dateLayout, strings.TrimSpace(req.Date))
	if err != nil {
		return HolidayResponse{}, holidayerrors.ErrInvalidDate
	}
	cid, err := uuid.Parse(companyID)
	if err != nil {
		return HolidayResponse{}, apperror.InvalidField("company_id")
	}

	h := &Holiday{
		ID:        uuid.New(),
		CompanyID: cid,
		Date:      date,
		Name:      strings.TrimSpace(req.Name),
	}
	if err := s.repo.Create(ctx, h); err != nil {
		return HolidayResponse{}, err
	}

	if s.rdb != nil {
		cacheKey := GetHolidaysKey(companyID, date.Year())
		if err := s.rdb.Del(ctx, cacheKey).Err(); err != nil {
			logger.Error("failed to invalidate holiday cache", zap.String("key", cacheKey), zap.Error(err))
		}
	}

	logger.Info("holiday created", zap.String("company_id", companyID), zap.String("date", req.Date))
	return mapToResponse(*h), nil
}
