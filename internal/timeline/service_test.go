// Copyright (c) 2026 Meihe Villa. All rights reserved.
// Author: chiawei.lin.tw@gmail.com

package timeline

import (
	"context"
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
	events map[int]*Event
	nextID int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{events: map[int]*Event{}, nextID: 1}
}

func (repo *fakeRepo) List(_ context.Context, filter Filter, limit, offset int) ([]*Event, int, error) {
	var matched []*Event
	for _, event := range repo.events {
		if filter.PublishedOnly && !event.IsPublished {
			continue
		}
		matched = append(matched, event)
	}
	return matched, len(matched), nil
}

func (repo *fakeRepo) FindByID(_ context.Context, id int) (*Event, error) {
	event, ok := repo.events[id]
	if !ok {
		return nil, apperr.NotFound("Timeline event")
	}
	copied := *event
	return &copied, nil
}

func (repo *fakeRepo) Create(_ context.Context, event *Event) error {
	event.ID = repo.nextID
	repo.nextID++
	repo.events[event.ID] = event
	return nil
}

func (repo *fakeRepo) Update(_ context.Context, event *Event) error {
	if _, ok := repo.events[event.ID]; !ok {
		return apperr.NotFound("Timeline event")
	}
	copied := *event
	repo.events[event.ID] = &copied
	return nil
}

func (repo *fakeRepo) Delete(_ context.Context, id int) error {
	delete(repo.events, id)
	return nil
}

func newTestService(repo Repository) *Service {
	return NewService(repo, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func intPtr(value int) *int { return &value }

// # Tests

func TestCreate_DefaultsImportanceToNormal(t *testing.T) {
	service := newTestService(newFakeRepo())

	event := &Event{Year: 1870, Title: "Villa construction begins", TitleZh: "山莊動工"}
	require.NoError(t, service.Create(context.Background(), event))

	assert.Equal(t, ImportanceNormal, event.Importance)
}

func TestCreate_YearOnlyDateAccepted(t *testing.T) {
	service := newTestService(newFakeRepo())

	event := &Event{Year: 1895, Title: "Japanese era begins", TitleZh: "日治時期開始"}
	require.NoError(t, service.Create(context.Background(), event))

	assert.Nil(t, event.Month)
	assert.Nil(t, event.Day)
}

func TestCreate_RequiresYear(t *testing.T) {
	service := newTestService(newFakeRepo())

	err := service.Create(context.Background(), &Event{Title: "Undated", TitleZh: "未紀年"})
	require.Error(t, err)
}

func TestCreate_RejectsImpossibleMonth(t *testing.T) {
	service := newTestService(newFakeRepo())

	event := &Event{Year: 1870, Month: intPtr(13), Title: "Bad month", TitleZh: "月份錯誤"}
	require.Error(t, service.Create(context.Background(), event))
}

func TestCreate_RejectsUnknownImportance(t *testing.T) {
	service := newTestService(newFakeRepo())

	event := &Event{Year: 1870, Title: "Event", TitleZh: "事件", Importance: "critical"}
	require.Error(t, service.Create(context.Background(), event))
}

func TestUpdate_PartialDatePatch(t *testing.T) {
	repo := newFakeRepo()
	service := newTestService(repo)

	event := &Event{Year: 1870, Title: "Construction", TitleZh: "動工"}
	require.NoError(t, service.Create(context.Background(), event))

	updated, err := service.Update(context.Background(), event.ID, Patch{
		Month: intPtr(4),
	})
	require.NoError(t, err)

	require.NotNil(t, updated.Month)
	assert.Equal(t, 4, *updated.Month)
	assert.Equal(t, 1870, updated.Year)
}
