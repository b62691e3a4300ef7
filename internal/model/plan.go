package model

import (
	"strconv"
	"strings"
)

type PlanTier string

const (
	Tier1GB       PlanTier = "1gb"
	Tier2GB       PlanTier = "2gb"
	Tier3GB       PlanTier = "3gb"
	Tier4GB       PlanTier = "4gb"
	Tier5GB       PlanTier = "5gb"
	Tier6GB       PlanTier = "6gb"
	Tier7GB       PlanTier = "7gb"
	Tier8GB       PlanTier = "8gb"
	Tier9GB       PlanTier = "9gb"
	Tier10GB      PlanTier = "10gb"
	TierUnlimited PlanTier = "unli"
)

// PlanSpec is the resource quota for one tier. All-zero means no limit.
type PlanSpec struct {
	RAMMB      int
	DiskMB     int
	CPUPercent int
}

var planSpecs = map[PlanTier]PlanSpec{
	Tier1GB:       {RAMMB: 1024, DiskMB: 1024, CPUPercent: 40},
	Tier2GB:       {RAMMB: 2048, DiskMB: 2048, CPUPercent: 60},
	Tier3GB:       {RAMMB: 3072, DiskMB: 3072, CPUPercent: 80},
	Tier4GB:       {RAMMB: 4096, DiskMB: 4096, CPUPercent: 100},
	Tier5GB:       {RAMMB: 5120, DiskMB: 5120, CPUPercent: 120},
	Tier6GB:       {RAMMB: 6144, DiskMB: 6144, CPUPercent: 140},
	Tier7GB:       {RAMMB: 7168, DiskMB: 7168, CPUPercent: 160},
	Tier8GB:       {RAMMB: 8192, DiskMB: 8192, CPUPercent: 180},
	Tier9GB:       {RAMMB: 9216, DiskMB: 9216, CPUPercent: 200},
	Tier10GB:      {RAMMB: 10240, DiskMB: 10240, CPUPercent: 220},
	TierUnlimited: {},
}

// CanonicalTier resolves raw user input to a known tier. "unlimited" is an
// accepted alias for "unli".
func CanonicalTier(raw string) (PlanTier, bool) {
	t := PlanTier(strings.ToLower(strings.TrimSpace(raw)))
	if t == "unlimited" {
		t = TierUnlimited
	}
	_, ok := planSpecs[t]
	return t, ok
}

func SpecForTier(tier PlanTier) (PlanSpec, bool) {
	spec, ok := planSpecs[tier]
	return spec, ok
}

func (t PlanTier) Unlimited() bool {
	return t == TierUnlimited
}

// Label is the tier name as it appears in server names, e.g. "3GB" or "UNLI".
func (t PlanTier) Label() string {
	return strings.ToUpper(string(t))
}

// FormatQuotaMB renders a megabyte quota for display; zero means no limit.
func FormatQuotaMB(v int) string {
	if v == 0 {
		return "Unlimited"
	}
	return strconv.Itoa(v) + "MB"
}

// FormatQuotaPercent renders a CPU quota for display; zero means no limit.
func FormatQuotaPercent(v int) string {
	if v == 0 {
		return "Unlimited"
	}
	return strconv.Itoa(v) + "%"
}
