package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/parkpal/parkpal-backend/internal/llm"
	"github.com/parkpal/parkpal-backend/logger"
	"github.com/parkpal/parkpal-backend/search"
	"github.com/parkpal/parkpal-backend/types"
)

const chatSystemPrompt = `You are Parkpal, a helpful assistant for finding and booking parking spaces in the UK.
You are given the parking spaces that match the user's current request. Talk only about these spaces.
Recommend the best option first, mention price per day, and keep replies to a few sentences.
If no spaces are listed, apologise and suggest the user tries a different area or budget.
Never invent spaces, prices or availability.`

// ChatService turns a conversation turn into a reply plus space suggestions.
// The search pipeline decides which spaces are suggested; the completion
// model only phrases the reply around them. A completion failure degrades to
// a templated reply, the suggestions are served either way.
type ChatService struct {
	inventory *InventoryService
	llm       llm.ClientInterface
}

func NewChatService(inventory *InventoryService, llmClient llm.ClientInterface) *ChatService {
	return &ChatService{
		inventory: inventory,
		llm:       llmClient,
	}
}

func (s *ChatService) Chat(ctx context.Context, req types.ChatRequest) (*types.ChatResponse, error) {
	log := logger.GetLogger()

	spaces, err := s.inventory.GetAllSpaces(ctx)
	if err != nil {
		return nil, err
	}

	constraints, suggestions := search.Search(req.Message, spaces, req.Coordinates)

	reply, err := s.generateReply(ctx, req, suggestions)
	if err != nil {
		log.Warnw("Completion failed, falling back to templated reply", "error", err)
		reply = templatedReply(suggestions)
	}

	return &types.ChatResponse{
		Reply:       reply,
		Suggestions: suggestions,
		Constraints: constraints,
	}, nil
}

func (s *ChatService) generateReply(ctx context.Context, req types.ChatRequest, suggestions []types.RankedCandidate) (string, error) {
	if s.llm == nil {
		return "", fmt.Errorf("no completion client configured")
	}

	turns := make([]types.ChatMessage, 0, len(req.History)+2)
	turns = append(turns, req.History...)
	turns = append(turns,
		types.ChatMessage{Role: types.ChatRoleUser, Content: req.Message},
		types.ChatMessage{Role: types.ChatRoleSystem, Content: describeSuggestions(suggestions)},
	)
	return s.llm.Complete(ctx, chatSystemPrompt, turns)
}

// describeSuggestions renders the ranked spaces as completion context.
func describeSuggestions(suggestions []types.RankedCandidate) string {
	if len(suggestions) == 0 {
		return "No matching parking spaces were found for this request."
	}
	var b strings.Builder
	b.WriteString("Matching parking spaces, best first:\n")
	for i, s := range suggestions {
		fmt.Fprintf(&b, "%d. %s, %s (%s), £%s/day", i+1, s.Title, s.Location, s.Postcode, s.PricePerDay.StringFixed(2))
		if s.Distance != nil {
			fmt.Fprintf(&b, ", %.1f km away", *s.Distance)
		}
		if len(s.Features) > 0 {
			fmt.Fprintf(&b, ", features: %s", strings.Join(s.Features, ", "))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// templatedReply is the degraded reply used when the completion call fails.
func templatedReply(suggestions []types.RankedCandidate) string {
	if len(suggestions) == 0 {
		return "I couldn't find any parking spaces matching that. Try a different area, date or budget."
	}
	var b strings.Builder
	if len(suggestions) == 1 {
		b.WriteString("I found 1 parking space for you:\n")
	} else {
		fmt.Fprintf(&b, "I found %d parking spaces for you:\n", len(suggestions))
	}
	for i, s := range suggestions {
		fmt.Fprintf(&b, "%d. %s in %s at £%s per day", i+1, s.Title, s.Location, s.PricePerDay.StringFixed(2))
		if s.Distance != nil {
			fmt.Fprintf(&b, " (%.1f km away)", *s.Distance)
		}
		b.WriteString("\n")
	}
	return b.String()
}
