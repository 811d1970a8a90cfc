package services

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/parkpal/parkpal-backend/internal/store/fixture"
	"github.com/parkpal/parkpal-backend/logger"
	"github.com/parkpal/parkpal-backend/search"
	"github.com/parkpal/parkpal-backend/types"
)

func init() {
	logger.IsTest = true
}

type mockLLMClient struct {
	mock.Mock
}

func (m *mockLLMClient) Complete(ctx context.Context, systemPrompt string, turns []types.ChatMessage) (string, error) {
	args := m.Called(ctx, systemPrompt, turns)
	return args.String(0), args.Error(1)
}

func chatTestSpaces() []types.ParkingSpace {
	two := 2
	zero := 0
	return []types.ParkingSpace{
		{
			ID:           "kennington",
			Title:        "Secure driveway",
			Location:     "Kennington",
			Address:      "14 Braganza Street, London",
			Postcode:     "SE17 3RD",
			Features:     types.FeatureList{search.FeatureSecurity},
			PricePerDay:  decimal.NewFromInt(12),
			TotalSpaces:  &two,
			BookedSpaces: &zero,
		},
		{
			ID:           "borough",
			Title:        "Underground bay",
			Location:     "Borough",
			Address:      "201 Borough High Street, London",
			Postcode:     "SE1 1JA",
			Features:     types.FeatureList{search.FeatureCovered},
			PricePerDay:  decimal.NewFromInt(18),
			TotalSpaces:  &two,
			BookedSpaces: &zero,
		},
	}
}

func TestChatReturnsReplyAndSuggestions(t *testing.T) {
	inventory := NewInventoryService(fixture.NewInventoryFromSpaces(chatTestSpaces()))
	llmClient := new(mockLLMClient)
	llmClient.On("Complete", mock.Anything, mock.Anything, mock.Anything).
		Return("The secure driveway in Kennington looks ideal at £12 per day.", nil)

	svc := NewChatService(inventory, llmClient)
	resp, err := svc.Chat(context.Background(), types.ChatRequest{
		Message: "find secure parking in Kennington",
	})
	require.NoError(t, err)

	assert.Contains(t, resp.Reply, "Kennington")
	require.Len(t, resp.Suggestions, 1)
	assert.Equal(t, "kennington", resp.Suggestions[0].ID)
	require.NotNil(t, resp.Constraints.Location)
	assert.Equal(t, "kennington", *resp.Constraints.Location)
	llmClient.AssertExpectations(t)
}

func TestChatDegradesToTemplatedReplyOnCompletionFailure(t *testing.T) {
	inventory := NewInventoryService(fixture.NewInventoryFromSpaces(chatTestSpaces()))
	llmClient := new(mockLLMClient)
	llmClient.On("Complete", mock.Anything, mock.Anything, mock.Anything).
		Return("", errors.New("provider timeout"))

	svc := NewChatService(inventory, llmClient)
	resp, err := svc.Chat(context.Background(), types.ChatRequest{Message: "parking in Borough"})
	require.NoError(t, err)

	// Suggestions survive the completion failure; the reply is templated.
	require.Len(t, resp.Suggestions, 1)
	assert.Equal(t, "borough", resp.Suggestions[0].ID)
	assert.Contains(t, resp.Reply, "Underground bay")
	assert.Contains(t, resp.Reply, "18.00")
}

func TestChatWithNoLLMClientStillAnswers(t *testing.T) {
	inventory := NewInventoryService(fixture.NewInventoryFromSpaces(chatTestSpaces()))

	svc := NewChatService(inventory, nil)
	resp, err := svc.Chat(context.Background(), types.ChatRequest{Message: "covered parking please"})
	require.NoError(t, err)

	require.Len(t, resp.Suggestions, 1)
	assert.Equal(t, "borough", resp.Suggestions[0].ID)
	assert.NotEmpty(t, resp.Reply)
}

func TestChatNoMatchesApologises(t *testing.T) {
	inventory := NewInventoryService(fixture.NewInventoryFromSpaces(chatTestSpaces()))

	svc := NewChatService(inventory, nil)
	resp, err := svc.Chat(context.Background(), types.ChatRequest{Message: "parking in Edinburgh"})
	require.NoError(t, err)

	assert.Empty(t, resp.Suggestions)
	assert.Contains(t, resp.Reply, "couldn't find")
}

func TestChatHistoryForwardedToCompletion(t *testing.T) {
	inventory := NewInventoryService(fixture.NewInventoryFromSpaces(chatTestSpaces()))
	llmClient := new(mockLLMClient)
	llmClient.On("Complete", mock.Anything, mock.Anything, mock.MatchedBy(func(turns []types.ChatMessage) bool {
		return len(turns) >= 3 && turns[0].Content == "hi, I need parking"
	})).Return("Sure.", nil)

	svc := NewChatService(inventory, llmClient)
	_, err := svc.Chat(context.Background(), types.ChatRequest{
		Message: "somewhere near Borough",
		History: []types.ChatMessage{
			{Role: types.ChatRoleUser, Content: "hi, I need parking"},
			{Role: types.ChatRoleAssistant, Content: "Where would you like to park?"},
		},
	})
	require.NoError(t, err)
	llmClient.AssertExpectations(t)
}
