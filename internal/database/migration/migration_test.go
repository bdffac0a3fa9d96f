package migration

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestLoggerAdapter(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	l := NewLogger(zap.New(core), true)

	l.Printf("applied %d", 1)

	assert.True(t, l.Verbose())
	assert.Equal(t, 1, logs.FilterMessage("DB Migration: applied 1").Len())
}

func TestMigrateRejectsUnknownSource(t *testing.T) {
	err := Migrate("postgres://localhost:1/none?sslmode=disable", "nope://migrations", false, zap.NewNop())
	assert.Error(t, err)
}
