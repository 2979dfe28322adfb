package policy

import (
	"fmt"
	"slices"

	"go-leave/internal/domain"
)

type CapConfig struct {
	Days     int      `yaml:"days"`
	Severity Severity `yaml:"severity"`
	// ReclassifyTo names the type that absorbs days beyond the cap when
	// Severity is WARNING.
	ReclassifyTo domain.LeaveType `yaml:"reclassify_to,omitempty"`
}

type NoticeConfig struct {
	Days     int      `yaml:"days"`
	Severity Severity `yaml:"severity"`
}

// Config holds every threshold the shipped rules use.
type Config struct {
	MaxConsecutiveDays     map[domain.LeaveType]CapConfig    `yaml:"max_consecutive_days"`
	AdvanceNotice          map[domain.LeaveType]NoticeConfig `yaml:"advance_notice"`
	HolidayAdjacentBlocked []domain.LeaveType                `yaml:"holiday_adjacent_blocked"`
	// CertificateAboveDays requires a certificate when working days exceed
	// the value; 0 means always.
	CertificateAboveDays  map[domain.LeaveType]int `yaml:"certificate_above_days"`
	BackdatingDays        map[domain.LeaveType]int `yaml:"backdating_days"`
	DefaultBackdatingDays int                      `yaml:"default_backdating_days"`
	LowBalanceReserveDays int                      `yaml:"low_balance_reserve_days"`
	MaxAdvanceDays        int                      `yaml:"max_advance_days"`
	MinTenureDays         map[domain.LeaveType]int `yaml:"min_tenure_days"`
}

func DefaultConfig() Config {
	return Config{
		MaxConsecutiveDays: map[domain.LeaveType]CapConfig{
			domain.LeaveCasual:      {Days: 3, Severity: SeverityError},
			domain.LeaveAnnual:      {Days: 15, Severity: SeverityWarning, ReclassifyTo: domain.LeaveUnpaid},
			domain.LeavePaternity:   {Days: 10, Severity: SeverityError},
			domain.LeaveBereavement: {Days: 5, Severity: SeverityError},
			domain.LeaveStudy:       {Days: 30, Severity: SeverityError},
			domain.LeaveMaternity:   {Days: 120, Severity: SeverityError},
		},
		AdvanceNotice: map[domain.LeaveType]NoticeConfig{
			domain.LeaveAnnual:    {Days: 3, Severity: SeverityError},
			domain.LeaveStudy:     {Days: 14, Severity: SeverityError},
			domain.LeaveCasual:    {Days: 1, Severity: SeverityWarning},
			domain.LeaveMaternity: {Days: 30, Severity: SeverityWarning},
		},
		HolidayAdjacentBlocked: []domain.LeaveType{domain.LeaveCasual},
		CertificateAboveDays: map[domain.LeaveType]int{
			domain.LeaveSick:      2,
			domain.LeaveMaternity: 0,
		},
		BackdatingDays: map[domain.LeaveType]int{
			domain.LeaveSick:        7,
			domain.LeaveBereavement: 3,
		},
		DefaultBackdatingDays: 0,
		LowBalanceReserveDays: 2,
		MaxAdvanceDays:        90,
		MinTenureDays: map[domain.LeaveType]int{
			domain.LeaveMaternity: 180,
			domain.LeavePaternity: 180,
			domain.LeaveStudy:     365,
		},
	}
}

func (c Config) Validate() error {
	for _, t := range sortedKeys(c.MaxConsecutiveDays) {
		cp := c.MaxConsecutiveDays[t]
		if err := checkType(t); err != nil {
			return err
		}
		if cp.Days <= 0 {
			return fmt.Errorf("max_consecutive_days.%s: days must be positive", t)
		}
		if !cp.Severity.valid() {
			return fmt.Errorf("max_consecutive_days.%s: unknown severity %q", t, cp.Severity)
		}
		if cp.ReclassifyTo != "" {
			if err := checkType(cp.ReclassifyTo); err != nil {
				return err
			}
		}
	}
	for _, t := range sortedKeys(c.AdvanceNotice) {
		n := c.AdvanceNotice[t]
		if err := checkType(t); err != nil {
			return err
		}
		if n.Days < 0 || !n.Severity.valid() {
			return fmt.Errorf("advance_notice.%s: invalid entry", t)
		}
	}
	for _, m := range []map[domain.LeaveType]int{c.CertificateAboveDays, c.BackdatingDays, c.MinTenureDays} {
		for _, t := range sortedKeys(m) {
			if err := checkType(t); err != nil {
				return err
			}
			if m[t] < 0 {
				return fmt.Errorf("%s: negative threshold", t)
			}
		}
	}
	for _, t := range c.HolidayAdjacentBlocked {
		if err := checkType(t); err != nil {
			return err
		}
	}
	if c.DefaultBackdatingDays < 0 || c.LowBalanceReserveDays < 0 || c.MaxAdvanceDays <= 0 {
		return fmt.Errorf("policy thresholds must not be negative and max_advance_days must be positive")
	}
	return nil
}

func checkType(t domain.LeaveType) error {
	if _, ok := domain.ParseLeaveType(string(t)); !ok {
		return fmt.Errorf("unknown leave type %q", t)
	}
	return nil
}

func sortedKeys[V any](m map[domain.LeaveType]V) []domain.LeaveType {
	keys := make([]domain.LeaveType, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
