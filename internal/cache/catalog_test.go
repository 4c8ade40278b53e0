package cache

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/joshua-takyi/eventtickets/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestCache() (*CatalogCache, redismock.ClientMock) {
	db, mock := redismock.NewClientMock()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewCatalogCache(db, 5*time.Minute, logger), mock
}

func TestCatalogCache_VersionDefaultsToZero(t *testing.T) {
	c, mock := setupTestCache()
	defer mock.ClearExpect()

	mock.ExpectGet(VersionKey).RedisNil()

	v, ok := c.Version(context.Background())
	assert.True(t, ok)
	assert.Equal(t, int64(0), v)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCatalogCache_VersionReadErrorDisablesCache(t *testing.T) {
	c, mock := setupTestCache()
	defer mock.ClearExpect()

	mock.ExpectGet(VersionKey).SetErr(errors.New("redis timeout"))

	_, ok := c.Version(context.Background())
	assert.False(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCatalogCache_EventMiss(t *testing.T) {
	c, mock := setupTestCache()
	defer mock.ClearExpect()

	mock.ExpectGet("catalog:4:event:5").RedisNil()

	e, ok := c.Event(context.Background(), 4, 5)
	assert.False(t, ok)
	assert.Nil(t, e)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCatalogCache_EventHit(t *testing.T) {
	c, mock := setupTestCache()
	defer mock.ClearExpect()

	payload := `{"id":5,"title":{"ru":"Концерт","fr":"Concert"},"date":"2025-02-15","time":"19:00",` +
		`"status":"active","tickets":[{"id":9,"eventId":5,"name":{"ru":"Взрослый"},"price":"2500","quantityAvailable":-1}]}`
	mock.ExpectGet("catalog:4:event:5").SetVal(payload)

	e, ok := c.Event(context.Background(), 4, 5)
	require.True(t, ok)
	assert.Equal(t, "Concert", e.Title["fr"])
	require.Len(t, e.TicketTypes, 1)
	assert.True(t, decimal.NewFromInt(2500).Equal(e.TicketTypes[0].Price))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCatalogCache_ReadErrorIsMiss(t *testing.T) {
	c, mock := setupTestCache()
	defer mock.ClearExpect()

	mock.ExpectGet("catalog:0:events").SetErr(errors.New("connection refused"))

	_, ok := c.Events(context.Background(), 0)
	assert.False(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCatalogCache_SetEvents(t *testing.T) {
	c, mock := setupTestCache()
	defer mock.ClearExpect()

	mock.Regexp().ExpectSet("catalog:2:events", `.*`, 5*time.Minute).SetVal("OK")

	c.SetEvents(context.Background(), 2, []models.Event{{ID: 1, Title: models.Localized{"ru": "Гамлет"}}})
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCatalogCache_InvalidateBumpsVersion(t *testing.T) {
	c, mock := setupTestCache()
	defer mock.ClearExpect()

	mock.ExpectIncr(VersionKey).SetVal(3)

	assert.NoError(t, c.Invalidate(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCatalogCache_InvalidateReportsFailure(t *testing.T) {
	c, mock := setupTestCache()
	defer mock.ClearExpect()

	mock.ExpectIncr(VersionKey).SetErr(errors.New("redis timeout"))

	assert.Error(t, c.Invalidate(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCatalogCache_NilClientIsNoop(t *testing.T) {
	c := NewCatalogCache(nil, time.Minute, slog.New(slog.NewTextHandler(io.Discard, nil)))

	_, ok := c.Version(context.Background())
	assert.False(t, ok)
	_, ok = c.Events(context.Background(), 0)
	assert.False(t, ok)
	c.SetEvents(context.Background(), 0, nil)
	assert.NoError(t, c.Invalidate(context.Background()))
}
