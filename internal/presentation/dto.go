// Package presentation turns coordinator views into JSON documents and text.
package presentation

import (
	"github.com/naka-gawa/github-activity/internal/domain"
	"github.com/naka-gawa/github-activity/internal/usecase"
)

const (
	OverallKind    = "overall"
	RepositoryKind = "repository"
)

// ViewDTO is the JSON document of a usecase.View.
type ViewDTO struct {
	Account             string               `json:"account"`
	Loading             bool                 `json:"loading"`
	Error               string               `json:"error,omitempty"`
	Profile             *domain.Profile      `json:"profile,omitempty"`
	ProfileStatus       string               `json:"profile_status"`
	RepositoriesStatus  string               `json:"repositories_status"`
	RepositoryCount     int                  `json:"repository_count"`
	VisibleRepositories []domain.Repository  `json:"repositories"`
	Page                domain.PageWindow    `json:"page"`
	Activity            ActivityDTO          `json:"activity"`
	Summary             domain.SeriesSummary `json:"summary"`
}

// ActivityDTO is the JSON document of the active domain.ActivityView. Exactly
// one of Daily and Weekly is set once the series has resolved.
type ActivityDTO struct {
	Kind       string                `json:"kind"`
	Repository string                `json:"repository,omitempty"`
	Status     string                `json:"status"`
	Daily      []domain.DailyBucket  `json:"daily,omitempty"`
	Weekly     []domain.WeeklyBucket `json:"weekly,omitempty"`
}

// NewViewDTO converts v.
func NewViewDTO(v usecase.View) ViewDTO {
	dto := ViewDTO{
		Account:             v.Account,
		Loading:             v.Loading,
		ProfileStatus:       v.Profile.Status().String(),
		RepositoriesStatus:  v.Repositories.Status().String(),
		VisibleRepositories: v.VisibleRepositories,
		Page:                v.Page,
		Activity:            NewActivityDTO(v.Activity),
		Summary:             v.Summary,
	}
	if v.Err != nil {
		dto.Error = v.Err.Error()
	}
	if profile, ok := v.Profile.Data(); ok {
		dto.Profile = &profile
	}
	if repos, ok := v.Repositories.Data(); ok {
		dto.RepositoryCount = len(repos)
	}
	return dto
}

// NewActivityDTO converts an activity view. A nil view reads as an overall
// view that has not started.
func NewActivityDTO(a domain.ActivityView) ActivityDTO {
	switch a := a.(type) {
	case domain.RepositoryActivity:
		dto := ActivityDTO{Kind: RepositoryKind, Repository: a.Name, Status: a.State.Status().String()}
		if weeks, ok := a.State.Data(); ok {
			dto.Weekly = weeks
		}
		return dto
	case domain.OverallActivity:
		dto := ActivityDTO{Kind: OverallKind, Status: a.State.Status().String()}
		if days, ok := a.State.Data(); ok {
			dto.Daily = days
		}
		return dto
	default:
		return ActivityDTO{Kind: OverallKind, Status: domain.NotStarted.String()}
	}
}
