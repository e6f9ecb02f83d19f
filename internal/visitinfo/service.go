// Copyright (c) 2026 Meihe Villa. All rights reserved.
// Author: chiawei.lin.tw@gmail.com

package visitinfo

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/chiaweilin/meihe/internal/platform/validate"
)

const (
	FieldSection   = "section"
	FieldTitle     = "title"
	FieldTitleZh   = "title_zh"
	FieldExtraData = "extra_data"
)

// # Service Layer

// Service orchestrates the business logic for visitor-information sections.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService constructs a visit-info [Service].
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// List returns sections in display order, active ones only unless asked.
func (service *Service) List(ctx context.Context, activeOnly bool) ([]*Section, error) {
	return service.repo.List(ctx, activeOnly)
}

// Get retrieves one section by ID.
func (service *Service) Get(ctx context.Context, id int) (*Section, error) {
	return service.repo.FindByID(ctx, id)
}

// GetByKey retrieves one section by its stable key (hours, tickets, ...).
func (service *Service) GetByKey(ctx context.Context, key string) (*Section, error) {
	return service.repo.FindByKey(ctx, key)
}

// validateSection runs the shared create/update checks.
func validateSection(section *Section) error {
	v := &validate.Validator{}
	v.Required(FieldSection, section.Key)
	v.Required(FieldTitle, section.Title)
	v.Required(FieldTitleZh, section.TitleZh)
	v.Custom(FieldExtraData, len(section.ExtraData) > 0 && !json.Valid(section.ExtraData), "extra_data must be valid JSON")
	return v.Err()
}

/*
Create persists a new section.

Returns:
  - error: Validation, duplicate-key conflict, or persistence errors
*/
func (service *Service) Create(ctx context.Context, section *Section) error {
	if err := validateSection(section); err != nil {
		return err
	}

	if err := service.repo.Create(ctx, section); err != nil {
		return err
	}

	service.logger.Info("visit_info_created",
		slog.Int("info_id", section.ID),
		slog.String("section", section.Key),
	)

	return nil
}

// Patch carries the editable section fields for a partial update.
// Nil means "leave unchanged".
type Patch struct {
	Key          *string
	Title        *string
	TitleZh      *string
	Content      *string
	ContentZh    *string
	ExtraData    json.RawMessage
	DisplayOrder *int
	IsActive     *bool
}

// Update applies a partial update to a section.
func (service *Service) Update(ctx context.Context, id int, patch Patch) (*Section, error) {
	section, err := service.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Key != nil {
		section.Key = *patch.Key
	}
	if patch.Title != nil {
		section.Title = *patch.Title
	}
	if patch.TitleZh != nil {
		section.TitleZh = *patch.TitleZh
	}
	if patch.Content != nil {
		section.Content = patch.Content
	}
	if patch.ContentZh != nil {
		section.ContentZh = patch.ContentZh
	}
	if patch.ExtraData != nil {
		section.ExtraData = patch.ExtraData
	}
	if patch.DisplayOrder != nil {
		section.DisplayOrder = *patch.DisplayOrder
	}
	if patch.IsActive != nil {
		section.IsActive = *patch.IsActive
	}

	if err := validateSection(section); err != nil {
		return nil, err
	}

	if err := service.repo.Update(ctx, section); err != nil {
		return nil, err
	}

	return section, nil
}

// Delete removes a section permanently.
func (service *Service) Delete(ctx context.Context, id int) error {
	if err := service.repo.Delete(ctx, id); err != nil {
		return err
	}

	service.logger.Info("visit_info_deleted", slog.Int("info_id", id))
	return nil
}
