package service

import (
	"context"
	"errors"
	"testing"

	"github.com/GriffinCanCode/AgentOS/zenexplorer/internal/infrastructure/tracing"
	"github.com/GriffinCanCode/AgentOS/zenexplorer/internal/shared/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockProvider struct {
	id       string
	category types.Category
	err      error
	params   map[string]interface{}
	traceID  tracing.TraceID
}

func (m *mockProvider) Definition() types.Service {
	category := m.category
	if category == "" {
		category = types.CategoryFilesystem
	}
	return types.Service{
		ID:           m.id,
		Name:         "Mock Service",
		Description:  "A mock service for testing",
		Category:     category,
		Capabilities: []string{"read", "write"},
		Tools: []types.Tool{
			{
				ID:          m.id + ".test",
				Name:        "Test Tool",
				Description: "A test tool",
				Returns:     "string",
			},
		},
	}
}

func (m *mockProvider) Execute(ctx context.Context, toolID string, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	m.params = params
	m.traceID = tracing.GetTraceID(ctx)
	if m.err != nil {
		return nil, m.err
	}
	return &types.Result{
		Success: true,
		Data:    map[string]interface{}{"result": "success", "tool": toolID},
	}, nil
}

func TestRegister(t *testing.T) {
	r := NewRegistry()
	p := &mockProvider{id: "test"}

	require.NoError(t, r.Register(p))

	_, ok := r.Get("test")
	assert.True(t, ok)

	assert.Error(t, r.Register(&mockProvider{}))

	r.Unregister("test")
	_, ok = r.Get("test")
	assert.False(t, ok)
}

func TestList(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(&mockProvider{id: "test2"}))
	require.NoError(t, r.Register(&mockProvider{id: "test1"}))
	require.NoError(t, r.Register(&mockProvider{id: "media", category: types.CategoryMedia}))

	services := r.List(nil)
	require.Len(t, services, 3)
	assert.Equal(t, "media", services[0].ID)
	assert.Equal(t, "test1", services[1].ID)

	cat := types.CategoryFilesystem
	assert.Len(t, r.List(&cat), 2)
}

func TestDiscover(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(&mockProvider{id: "storage"}))

	results := r.Discover("storage read write", 5)
	require.NotEmpty(t, results)
	assert.Equal(t, "storage", results[0].ID)

	assert.Empty(t, r.Discover("zzz", 5))
}

func TestExecute(t *testing.T) {
	r := NewRegistry()
	p := &mockProvider{id: "test"}
	require.NoError(t, r.Register(p))

	result, err := r.Execute(context.Background(), "test.test", nil, nil)
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, "test.test", result.Data["tool"])
	assert.NotNil(t, p.params)
}

func TestExecuteWithTracer(t *testing.T) {
	tracer := tracing.New("test", nil)
	defer tracer.Close()

	r := NewRegistry().WithTracer(tracer)
	p := &mockProvider{id: "test"}
	require.NoError(t, r.Register(p))

	ctx := tracing.WithTraceID(context.Background(), "trace-42")
	_, err := r.Execute(ctx, "test.test", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, tracing.TraceID("trace-42"), p.traceID)

	_, err = r.Execute(context.Background(), "test.test", nil, nil)
	require.NoError(t, err)
	assert.NotEmpty(t, p.traceID)
}

func TestExecuteErrors(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(&mockProvider{id: "broken", err: errors.New("boom")}))

	result, err := r.Execute(context.Background(), "invalid", nil, nil)
	assert.Error(t, err)
	assert.False(t, result.Success)

	result, err = r.Execute(context.Background(), "missing.tool", nil, nil)
	assert.Error(t, err)
	require.NotNil(t, result.Error)
	assert.Contains(t, *result.Error, "service not found")

	_, err = r.Execute(context.Background(), "broken.test", nil, nil)
	assert.EqualError(t, err, "boom")
}

func TestStats(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(&mockProvider{id: "test1"}))
	require.NoError(t, r.Register(&mockProvider{id: "test2"}))

	stats := r.Stats()
	assert.Equal(t, 2, stats["total_services"])
	assert.Equal(t, 2, stats["total_tools"])
	assert.Equal(t, map[string]int{"filesystem": 2}, stats["categories"])
}
