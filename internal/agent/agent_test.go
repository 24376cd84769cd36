package agent

import (
	"context"
	"testing"
	"time"

	"github.com/maxbolgarin/errm"
	"github.com/maxbolgarin/logze/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxbolgarin/prpatrol/internal/model"
)

type mockAPI struct {
	responses []model.APIResponse
	errs      []error
	calls     int
}

func (m *mockAPI) CallAPI(ctx context.Context, req model.APIRequest) (model.APIResponse, error) {
	i := m.calls
	m.calls++
	var resp model.APIResponse
	if i < len(m.responses) {
		resp = m.responses[i]
	}
	var err error
	if i < len(m.errs) {
		err = m.errs[i]
	}
	return resp, err
}

func newTestAgent(api model.AgentAPI) *Agent {
	return &Agent{
		cfg: Config{
			MaxRetries: 3,
			RetryDelay: time.Millisecond,
			MaxTokens:  100,
		},
		api: api,
		log: logze.Default(),
	}
}

func TestReviewCode(t *testing.T) {
	api := &mockAPI{responses: []model.APIResponse{{Content: "LINE_NUM: 1: issue"}}}

	content, err := newTestAgent(api).ReviewCode(context.Background(), model.Prompt{UserPrompt: "review"})
	require.NoError(t, err)
	assert.Equal(t, "LINE_NUM: 1: issue", content)
	assert.Equal(t, 1, api.calls)
}

func TestReviewCode_EmptyResponse(t *testing.T) {
	api := &mockAPI{responses: []model.APIResponse{{}}}

	_, err := newTestAgent(api).ReviewCode(context.Background(), model.Prompt{UserPrompt: "review"})
	assert.Error(t, err)
}

func TestReviewCode_RetriesOnRateLimit(t *testing.T) {
	api := &mockAPI{
		responses: []model.APIResponse{{}, {}, {Content: "done"}},
		errs:      []error{errm.New("status 429"), errm.New("rate limit exceeded"), nil},
	}

	content, err := newTestAgent(api).ReviewCode(context.Background(), model.Prompt{UserPrompt: "review"})
	require.NoError(t, err)
	assert.Equal(t, "done", content)
	assert.Equal(t, 3, api.calls)
}

func TestReviewCode_NoRetryOnOtherErrors(t *testing.T) {
	api := &mockAPI{errs: []error{errm.New("invalid api key")}}

	_, err := newTestAgent(api).ReviewCode(context.Background(), model.Prompt{UserPrompt: "review"})
	assert.Error(t, err)
	assert.Equal(t, 1, api.calls)
}

func TestConfigPrepareAndValidate(t *testing.T) {
	cfg := Config{Type: Gemini, APIKey: "key"}
	require.NoError(t, cfg.PrepareAndValidate())
	assert.Equal(t, float32(0.3), cfg.Temperature)
	assert.Equal(t, 2000, cfg.MaxTokens)
	assert.Equal(t, 3, cfg.MaxRetries)
}

func TestConfigPrepareAndValidate_MissingKey(t *testing.T) {
	cfg := Config{Type: Gemini}
	assert.Error(t, cfg.PrepareAndValidate())
}

func TestConfigPrepareAndValidate_UnknownType(t *testing.T) {
	cfg := Config{Type: "claude-opus", APIKey: "key"}
	assert.Error(t, cfg.PrepareAndValidate())
}
