package dailylog

import "github.com/buildline/buildline/internal/domain"

type Repository interface {
	domain.TrackedRepository[DailyLog]
}
