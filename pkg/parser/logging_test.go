package parser

import (
	"bytes"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingLogger struct {
	mu       sync.Mutex
	messages []string
}

func (l *recordingLogger) record(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.messages = append(l.messages, msg)
}

func (l *recordingLogger) Error(msg string, _ ...any) { l.record(msg) }
func (l *recordingLogger) Warn(msg string, _ ...any)  { l.record(msg) }
func (l *recordingLogger) Info(msg string, _ ...any)  { l.record(msg) }
func (l *recordingLogger) Debug(msg string, _ ...any) { l.record(msg) }

func TestWithLogger(t *testing.T) {
	log := &recordingLogger{}
	p := New(WithLogger(log))

	_, err := p.Parse("SELECT 1; FOO")
	require.NoError(t, err)

	assert.Contains(t, log.messages, "lexed input")
	assert.Contains(t, log.messages, "parsed statement")
	assert.Contains(t, log.messages, "collected diagnostic")
}

func TestWithLoggerNil(t *testing.T) {
	p := New(WithLogger(nil))
	result, err := p.Parse("SELECT 1")
	require.NoError(t, err)
	assert.Len(t, result.Statements, 1)
}

func TestWithLoggerSlog(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	_, err := New(WithLogger(log)).Parse("SELECT 1")
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "statement=SELECT")
}

func TestParseConcurrent(t *testing.T) {
	p := New()
	sqls := []string{
		"SELECT a FROM t WHERE b = 1",
		"INSERT INTO t (a) VALUES (1)",
		"UPDATE t SET a = 2",
		"DELETE FROM t WHERE a = 3",
	}

	var wg sync.WaitGroup
	results := make([]string, len(sqls)*8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			result, err := p.Parse(sqls[i%len(sqls)])
			if err == nil && len(result.Statements) == 1 {
				results[i] = result.Statements[0].Keyword()
			}
		}(i)
	}
	wg.Wait()

	for i, keyword := range results {
		assert.Equal(t, []string{"SELECT", "INSERT", "UPDATE", "DELETE"}[i%len(sqls)], keyword)
	}
}
