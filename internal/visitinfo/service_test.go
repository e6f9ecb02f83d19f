// Copyright (c) 2026 Meihe Villa. All rights reserved.
// Author: chiawei.lin.tw@gmail.com

package visitinfo

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chiaweilin/meihe/internal/platform/apperr"
)

// # Test Doubles

// fakeRepo is an in-memory [Repository].
type fakeRepo struct {
	sections map[int]*Section
	nextID   int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{sections: map[int]*Section{}, nextID: 1}
}

func (repo *fakeRepo) List(_ context.Context, activeOnly bool) ([]*Section, error) {
	var matched []*Section
	for _, section := range repo.sections {
		if activeOnly && !section.IsActive {
			continue
		}
		matched = append(matched, section)
	}
	return matched, nil
}

func (repo *fakeRepo) FindByID(_ context.Context, id int) (*Section, error) {
	section, ok := repo.sections[id]
	if !ok {
		return nil, apperr.NotFound("Visit info section")
	}
	copied := *section
	return &copied, nil
}

func (repo *fakeRepo) FindByKey(_ context.Context, key string) (*Section, error) {
	for _, section := range repo.sections {
		if section.Key == key {
			copied := *section
			return &copied, nil
		}
	}
	return nil, apperr.NotFound("Visit info section")
}

func (repo *fakeRepo) Create(_ context.Context, section *Section) error {
	for _, existing := range repo.sections {
		if existing.Key == section.Key {
			return apperr.Conflict("A section with this key already exists")
		}
	}
	section.ID = repo.nextID
	repo.nextID++
	repo.sections[section.ID] = section
	return nil
}

func (repo *fakeRepo) Update(_ context.Context, section *Section) error {
	if _, ok := repo.sections[section.ID]; !ok {
		return apperr.NotFound("Visit info section")
	}
	copied := *section
	repo.sections[section.ID] = &copied
	return nil
}

func (repo *fakeRepo) Delete(_ context.Context, id int) error {
	delete(repo.sections, id)
	return nil
}

func newTestService(repo Repository) *Service {
	return NewService(repo, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// # Tests

func TestCreate_AcceptsStructuredExtraData(t *testing.T) {
	service := newTestService(newFakeRepo())

	section := &Section{
		Key:       "hours",
		Title:     "Opening Hours",
		TitleZh:   "開放時間",
		ExtraData: json.RawMessage(`{"weekday":"09:00-17:00","weekend":"08:00-18:00"}`),
		IsActive:  true,
	}
	require.NoError(t, service.Create(context.Background(), section))
	assert.NotZero(t, section.ID)
}

func TestCreate_RejectsMalformedExtraData(t *testing.T) {
	service := newTestService(newFakeRepo())

	section := &Section{
		Key:       "hours",
		Title:     "Opening Hours",
		TitleZh:   "開放時間",
		ExtraData: json.RawMessage(`{"weekday":`),
	}
	require.Error(t, service.Create(context.Background(), section))
}

func TestCreate_DuplicateKey(t *testing.T) {
	service := newTestService(newFakeRepo())

	require.NoError(t, service.Create(context.Background(), &Section{
		Key: "tickets", Title: "Tickets", TitleZh: "門票",
	}))

	err := service.Create(context.Background(), &Section{
		Key: "tickets", Title: "Tickets Again", TitleZh: "門票",
	})
	require.Error(t, err)
}

func TestUpdate_ReplacesExtraDataWholesale(t *testing.T) {
	repo := newFakeRepo()
	service := newTestService(repo)

	section := &Section{
		Key:       "transport",
		Title:     "Getting Here",
		TitleZh:   "交通方式",
		ExtraData: json.RawMessage(`{"bus":["5091"]}`),
	}
	require.NoError(t, service.Create(context.Background(), section))

	updated, err := service.Update(context.Background(), section.ID, Patch{
		ExtraData: json.RawMessage(`{"bus":["5091","5096"],"parking":true}`),
	})
	require.NoError(t, err)

	assert.JSONEq(t, `{"bus":["5091","5096"],"parking":true}`, string(updated.ExtraData))
}
