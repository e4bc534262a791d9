package services

import (
	"context"
	"time"

	"dugun.link/models"
	"dugun.link/policies"
	"dugun.link/repositories"
)

const (
	statisticsDays     = 30
	statisticsBrowsers = 10
)

type DailyCount struct {
	Date  string `json:"date"`
	Total int64  `json:"total"`
}

// InvitationStatistics davetiye sahibine gösterilen özet.
type InvitationStatistics struct {
	InvitationID     uint                           `json:"invitation_id"`
	TotalViews       int64                          `json:"total_views"`
	UniqueVisitors   int64                          `json:"unique_visitors"`
	ViewsByDevice    []repositories.LabelCount      `json:"views_by_device"`
	ViewsByBrowser   []repositories.LabelCount      `json:"views_by_browser"`
	DailyViews       []DailyCount                   `json:"daily_views"`
	RsvpCount        int64                          `json:"rsvp_count"`
	GuestCount       int64                          `json:"guest_count"`
	GuestsByCategory map[models.GuestCategory]int64 `json:"guests_by_category"`
}

type IStatisticsService interface {
	GetStatistics(ctx context.Context, actor *models.User, invitationID uint) (*InvitationStatistics, error)
}

type StatisticsService struct {
	views  repositories.IInvitationViewRepository
	rsvps  repositories.IRsvpRepository
	guests repositories.IGuestRepository
	auth   authorizer
	now    func() time.Time
}

func NewStatisticsService(views repositories.IInvitationViewRepository, rsvps repositories.IRsvpRepository, guests repositories.IGuestRepository, invitations repositories.IInvitationRepository, gate *policies.Gate) *StatisticsService {
	return &StatisticsService{
		views:  views,
		rsvps:  rsvps,
		guests: guests,
		auth:   authorizer{gate: gate, invitations: invitations},
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (s *StatisticsService) GetStatistics(ctx context.Context, actor *models.User, invitationID uint) (*InvitationStatistics, error) {
	if _, err := s.auth.authorize(ctx, actor, policies.ResourceInvitationView, policies.ActionViewAny, invitationID); err != nil {
		return nil, err
	}

	stats := &InvitationStatistics{InvitationID: invitationID}
	var err error
	if stats.TotalViews, err = s.views.CountByInvitationID(ctx, invitationID); err != nil {
		return nil, err
	}
	if stats.UniqueVisitors, err = s.views.CountUniqueVisitors(ctx, invitationID); err != nil {
		return nil, err
	}
	if stats.ViewsByDevice, err = s.views.CountByDeviceType(ctx, invitationID); err != nil {
		return nil, err
	}
	if stats.ViewsByBrowser, err = s.views.CountByBrowser(ctx, invitationID, statisticsBrowsers); err != nil {
		return nil, err
	}

	today := truncateToDay(s.now())
	since := today.AddDate(0, 0, -(statisticsDays - 1))
	perDay, err := s.views.CountByDaySince(ctx, invitationID, since)
	if err != nil {
		return nil, err
	}
	stats.DailyViews = bucketByDay(perDay, since, statisticsDays)

	if stats.RsvpCount, err = s.rsvps.CountByInvitationID(ctx, invitationID); err != nil {
		return nil, err
	}
	if stats.GuestsByCategory, err = s.guests.CountByCategory(ctx, invitationID); err != nil {
		return nil, err
	}
	for _, c := range stats.GuestsByCategory {
		stats.GuestCount += c
	}
	return stats, nil
}

func truncateToDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// bucketByDay görüntülemesi olmayan günleri de 0 ile içeren, eskiden yeniye sıralı seri üretir.
func bucketByDay(perDay []repositories.DayCount, since time.Time, days int) []DailyCount {
	counts := make(map[string]int64, len(perDay))
	for _, d := range perDay {
		counts[d.Day] += d.Total
	}
	series := make([]DailyCount, 0, days)
	for i := 0; i < days; i++ {
		day := since.AddDate(0, 0, i).Format(time.DateOnly)
		series = append(series, DailyCount{Date: day, Total: counts[day]})
	}
	return series
}
