// Copyright (c) 2026 Meihe Villa. All rights reserved.
// Author: chiawei.lin.tw@gmail.com

package timeline

import (
	"context"
	"log/slog"

	"github.com/chiaweilin/meihe/internal/platform/validate"
)

const (
	FieldYear       = "year"
	FieldMonth      = "month"
	FieldDay        = "day"
	FieldTitle      = "title"
	FieldTitleZh    = "title_zh"
	FieldImportance = "importance"
)

// # Service Layer

// Service orchestrates the business logic for timeline events.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService constructs a timeline [Service].
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// List returns a filtered page of events in chronological order.
func (service *Service) List(ctx context.Context, filter Filter, limit, offset int) ([]*Event, int, error) {
	return service.repo.List(ctx, filter, limit, offset)
}

// Get retrieves one event by ID.
func (service *Service) Get(ctx context.Context, id int) (*Event, error) {
	return service.repo.FindByID(ctx, id)
}

// validateEvent runs the shared create/update checks.
func validateEvent(event *Event) error {
	v := &validate.Validator{}
	v.Required(FieldTitle, event.Title)
	v.Required(FieldTitleZh, event.TitleZh)
	v.Custom(FieldYear, event.Year == 0, "Year is required")

	if event.Month != nil {
		v.Range(FieldMonth, *event.Month, 1, 12)
	}
	if event.Day != nil {
		v.Range(FieldDay, *event.Day, 1, 31)
	}
	if event.Importance != "" {
		v.OneOf(FieldImportance, event.Importance, ImportanceMajor, ImportanceNormal, ImportanceMinor)
	}

	return v.Err()
}

/*
Create persists a new timeline event.

Description: Importance defaults to "normal" when omitted; partial dates
(year only, or year and month) are accepted for records whose precise day is
unknown.

Returns:
  - error: Validation or persistence errors
*/
func (service *Service) Create(ctx context.Context, event *Event) error {
	if event.Importance == "" {
		event.Importance = ImportanceNormal
	}

	if err := validateEvent(event); err != nil {
		return err
	}

	if err := service.repo.Create(ctx, event); err != nil {
		return err
	}

	service.logger.Info("timeline_event_created",
		slog.Int("event_id", event.ID),
		slog.Int("year", event.Year),
	)

	return nil
}

// Patch carries the editable event fields for a partial update.
// Nil means "leave unchanged".
type Patch struct {
	Year          *int
	Month         *int
	Day           *int
	Era           *string
	EraYear       *string
	Title         *string
	TitleZh       *string
	Description   *string
	DescriptionZh *string
	Image         *string
	Category      *string
	Importance    *string
	IsPublished   *bool
}

// Update applies a partial update to an event.
func (service *Service) Update(ctx context.Context, id int, patch Patch) (*Event, error) {
	event, err := service.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Year != nil {
		event.Year = *patch.Year
	}
	if patch.Month != nil {
		event.Month = patch.Month
	}
	if patch.Day != nil {
		event.Day = patch.Day
	}
	if patch.Era != nil {
		event.Era = patch.Era
	}
	if patch.EraYear != nil {
		event.EraYear = patch.EraYear
	}
	if patch.Title != nil {
		event.Title = *patch.Title
	}
	if patch.TitleZh != nil {
		event.TitleZh = *patch.TitleZh
	}
	if patch.Description != nil {
		event.Description = patch.Description
	}
	if patch.DescriptionZh != nil {
		event.DescriptionZh = patch.DescriptionZh
	}
	if patch.Image != nil {
		event.Image = patch.Image
	}
	if patch.Category != nil {
		event.Category = patch.Category
	}
	if patch.Importance != nil {
		event.Importance = *patch.Importance
	}
	if patch.IsPublished != nil {
		event.IsPublished = *patch.IsPublished
	}

	if err := validateEvent(event); err != nil {
		return nil, err
	}

	if err := service.repo.Update(ctx, event); err != nil {
		return nil, err
	}

	return event, nil
}

// Delete removes an event permanently.
func (service *Service) Delete(ctx context.Context, id int) error {
	if err := service.repo.Delete(ctx, id); err != nil {
		return err
	}

	service.logger.Info("timeline_event_deleted", slog.Int("event_id", id))
	return nil
}
