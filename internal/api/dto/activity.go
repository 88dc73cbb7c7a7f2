package dto

import (
	"github.com/buildline/buildline/internal/domain/activity"
	"github.com/buildline/buildline/internal/types"
)

type ListActivitiesResponse = types.ListResponse[*activity.Log]
