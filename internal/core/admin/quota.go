// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package admin

import (
	"github.com/taibuivan/directorscut/internal/core/catalog"
	"github.com/taibuivan/directorscut/internal/platform/apperr"
)

// CheckFeaturedQuota enforces the featured cap against a movie list snapshot.
//
// It only applies when a privileged actor turns a movie that is not featured
// yet into a featured one. Re-featuring an already featured movie is a no-op.
// target is nil on create. The count excludes the target itself.
//
// The snapshot may be stale; repositories repeat the check under a lock.
func CheckFeaturedQuota(movies []catalog.Movie, actor Actor, target *catalog.Movie, wantFeatured bool) error {
	if !wantFeatured || !actor.Role.IsPrivileged() {
		return nil
	}

	excludeID := ""
	if target != nil {
		if target.Featured {
			return nil
		}
		excludeID = target.ID
	}

	if catalog.CountFeatured(movies, excludeID) >= catalog.FeaturedLimit {
		return apperr.QuotaExceeded(catalog.FeaturedLimit)
	}
	return nil
}
