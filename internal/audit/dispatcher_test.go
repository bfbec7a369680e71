package audit

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/library-api/internal/db/dbtest"
	"github.com/BruksfildServices01/library-api/internal/models"
)

func TestDispatcher_WritesQueuedEventsBeforeClose(t *testing.T) {
	gdb := dbtest.New(t)
	d := NewDispatcher(New(gdb), hclog.NewNullLogger())

	id := uint(42)
	actor := uint(1)
	d.Dispatch(Event{
		UserID:   &actor,
		Action:   ActionClientCreated,
		Entity:   EntityClient,
		EntityID: &id,
		Metadata: map[string]any{"cpf": "11144477735"},
	})
	d.Dispatch(Event{Action: ActionClientDeleted, Entity: EntityClient, EntityID: &id})
	d.Close()

	var logs []models.AuditLog
	require.NoError(t, gdb.Order("id ASC").Find(&logs).Error)
	require.Len(t, logs, 2)

	assert.Equal(t, ActionClientCreated, logs[0].Action)
	assert.Equal(t, uint(1), *logs[0].UserID)
	assert.Equal(t, uint(42), *logs[0].EntityID)
	assert.JSONEq(t, `{"cpf":"11144477735"}`, logs[0].Metadata)
	assert.Nil(t, logs[1].UserID)
}

func TestDispatcher_DropsAfterClose(t *testing.T) {
	gdb := dbtest.New(t)
	d := NewDispatcher(New(gdb), hclog.NewNullLogger())
	d.Close()
	d.Close()

	assert.NotPanics(t, func() {
		d.Dispatch(Event{Action: ActionClientUpdated, Entity: EntityClient})
	})

	var count int64
	require.NoError(t, gdb.Model(&models.AuditLog{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestLogger_ListPaginatesNewestFirst(t *testing.T) {
	gdb := dbtest.New(t)
	l := New(gdb)
	ctx := context.Background()

	for _, action := range []string{ActionClientCreated, ActionClientUpdated, ActionClientDeleted} {
		require.NoError(t, l.Log(ctx, Event{Action: action, Entity: EntityClient}))
	}

	logs, total, err := l.List(ctx, Filter{Page: 1, Limit: 2})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	require.Len(t, logs, 2)
	assert.Equal(t, ActionClientDeleted, logs[0].Action)

	logs, _, err = l.List(ctx, Filter{Page: 2, Limit: 2})
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, ActionClientCreated, logs[0].Action)

	logs, total, err = l.List(ctx, Filter{Action: ActionClientUpdated, Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, logs, 1)
}

func TestLogger_ListFiltersByDate(t *testing.T) {
	gdb := dbtest.New(t)
	l := New(gdb)
	ctx := context.Background()

	for _, day := range []int{1, 5, 10} {
		require.NoError(t, gdb.Create(&models.AuditLog{
			Action:    ActionClientUpdated,
			Entity:    EntityClient,
			CreatedAt: time.Date(2026, time.January, day, 12, 0, 0, 0, time.UTC),
		}).Error)
	}

	from := time.Date(2026, time.January, 4, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, time.January, 6, 23, 59, 59, 0, time.UTC)

	logs, total, err := l.List(ctx, Filter{From: &from, To: &to, Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, logs, 1)
	assert.Equal(t, 5, logs[0].CreatedAt.UTC().Day())

	logs, total, err = l.List(ctx, Filter{From: &from, Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, logs, 2)
}

func TestLogger_ListClampsPage(t *testing.T) {
	gdb := dbtest.New(t)
	l := New(gdb)
	ctx := context.Background()
	require.NoError(t, l.Log(ctx, Event{Action: ActionClientCreated, Entity: EntityClient}))

	logs, total, err := l.List(ctx, Filter{Page: math.MaxInt, Limit: 200})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Empty(t, logs)
}

func TestLogger_RejectsUnencodableMetadata(t *testing.T) {
	gdb := dbtest.New(t)
	l := New(gdb)

	err := l.Log(context.Background(), Event{
		Action:   ActionClientCreated,
		Entity:   EntityClient,
		Metadata: map[string]any{"ch": make(chan int)},
	})
	require.Error(t, err)

	var count int64
	require.NoError(t, gdb.Model(&models.AuditLog{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestActor(t *testing.T) {
	assert.Nil(t, ActorFrom(context.Background()))

	ctx := WithActor(context.Background(), 9)
	require.NotNil(t, ActorFrom(ctx))
	assert.Equal(t, uint(9), *ActorFrom(ctx))
}
