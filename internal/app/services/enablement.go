package services

import "github.com/dparedes/leagueadmin/internal/app/models"

// ComputeEnabled derives a student's enablement from their shares. A student
// with no shares at all is not enabled; otherwise enablement requires that
// every share is paid.
func ComputeEnabled(shares []models.Share) bool {
	if len(shares) == 0 {
		return false
	}
	for _, share := range shares {
		if share.Status == models.SharePending {
			return false
		}
	}
	return true
}
