// Copyright 2025 Network Systems Lab, OVGU Magdeburg
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package log_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/netsys-lab/scion-addr/pkg/log"
)

func TestLoggerContextPairs(t *testing.T) {
	core, observed := observer.New(zapcore.DebugLevel)
	restore := zap.ReplaceGlobals(zap.New(core))
	defer restore()

	logger := log.New("component", "test")
	logger.Info("parsed", "input", "1-ff00:0:110", "attempt", 2)

	entries := observed.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "parsed", entries[0].Message)
	fields := entries[0].ContextMap()
	assert.Equal(t, "test", fields["component"])
	assert.Equal(t, "1-ff00:0:110", fields["input"])
	assert.EqualValues(t, 2, fields["attempt"])
}

func TestFromCtx(t *testing.T) {
	t.Run("missing logger falls back to root", func(t *testing.T) {
		assert.NotNil(t, log.FromCtx(context.Background()))
	})
	t.Run("embedded logger is recovered", func(t *testing.T) {
		core, observed := observer.New(zapcore.DebugLevel)
		restore := zap.ReplaceGlobals(zap.New(core))
		defer restore()

		ctx := log.CtxWith(context.Background(), log.New("id", "abcd"))
		log.FromCtx(ctx).Debug("hello")

		entries := observed.All()
		require.Len(t, entries, 1)
		assert.Equal(t, "abcd", entries[0].ContextMap()["id"])
	})
	t.Run("labels accumulate", func(t *testing.T) {
		core, observed := observer.New(zapcore.DebugLevel)
		restore := zap.ReplaceGlobals(zap.New(core))
		defer restore()

		ctx, _ := log.WithLabels(context.Background(), "a", 1)
		_, logger := log.WithLabels(ctx, "b", 2)
		logger.Error("boom")

		entries := observed.All()
		require.Len(t, entries, 1)
		fields := entries[0].ContextMap()
		assert.EqualValues(t, 1, fields["a"])
		assert.EqualValues(t, 2, fields["b"])
	})
}

func TestSetupRejectsUnknown(t *testing.T) {
	assert.Error(t, log.Setup(log.Config{Console: log.ConsoleConfig{Level: "chatty"}}))
	assert.Error(t, log.Setup(log.Config{Console: log.ConsoleConfig{Format: "xml"}}))
}
