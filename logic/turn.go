package logic

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/MyALF-Z/AI-Agent/dao"
	"github.com/MyALF-Z/AI-Agent/models"
	"github.com/MyALF-Z/AI-Agent/pkg"
)

const (
	// DecisionWindow is how many trailing messages the decision call sees.
	DecisionWindow = 3

	// DefaultConversationName is assigned when a turn arrives for an
	// unseen conversation id.
	DefaultConversationName = "New conversation"

	searchToolName = "search"
)

// searchToolSchema is the single tool offered to the decision call.
var searchToolSchema = pkg.Tool{
	Type: "function",
	Function: pkg.ToolFunction{
		Name:        searchToolName,
		Description: "Search the web for up-to-date information.",
		Parameters: json.RawMessage(`{
			"type": "object",
			"properties": {
				"query": {"type": "string", "description": "The search query"}
			},
			"required": ["query"]
		}`),
	},
}

// TurnLogic drives one chat turn end-to-end: decision call, optional search,
// streaming generation, and persistence of the completed exchange.
type TurnLogic struct {
	convoDAO     *dao.ConversationDAO
	messageDAO   *dao.MessageDAO
	chatClient   *pkg.ChatClient
	searchClient *pkg.SearchClient
	logger       *slog.Logger
}

func NewTurnLogic(
	convoDAO *dao.ConversationDAO,
	messageDAO *dao.MessageDAO,
	chatClient *pkg.ChatClient,
	searchClient *pkg.SearchClient,
	logger *slog.Logger,
) *TurnLogic {
	return &TurnLogic{
		convoDAO:     convoDAO,
		messageDAO:   messageDAO,
		chatClient:   chatClient,
		searchClient: searchClient,
		logger:       logger,
	}
}

// Run handles one chat turn. Each generated text fragment is passed to emit
// as it arrives; the full text is persisted as a single assistant message
// when the stream ends. An emit error means the caller has gone away: the
// upstream read stops and whatever accumulated so far is persisted
// best-effort.
//
// Errors returned from Run always precede the first emit call, so the
// transport layer can still answer with an error status.
func (l *TurnLogic) Run(ctx context.Context, conversationID, userID, content string, emit func(string) error) (*models.Message, error) {
	if conversationID == "" || userID == "" || content == "" {
		return nil, models.ErrInvalidRequest
	}

	if _, err := l.convoDAO.Ensure(conversationID, userID, DefaultConversationName); err != nil {
		return nil, err
	}

	// The user turn is persisted before any model call so it survives
	// whatever happens downstream.
	if _, err := l.messageDAO.Create(conversationID, userID, models.RoleUser, content); err != nil {
		return nil, err
	}

	history, err := l.messageDAO.ListByConversation(conversationID, userID)
	if err != nil {
		return nil, err
	}

	chatMessages := make([]pkg.RequestMessage, 0, len(history)+2)
	for _, msg := range history {
		chatMessages = append(chatMessages, pkg.RequestMessage{
			Role:    msg.Role,
			Content: msg.Content,
		})
	}

	toolCall, err := l.decide(ctx, chatMessages)
	if err != nil {
		return nil, err
	}

	if toolCall != nil {
		result := l.runSearch(ctx, toolCall)
		chatMessages = append(chatMessages,
			pkg.RequestMessage{
				Role:      models.RoleAssistant,
				ToolCalls: []pkg.ToolCall{*toolCall},
			},
			pkg.RequestMessage{
				Role:       models.RoleTool,
				ToolCallID: toolCall.ID,
				Content:    result,
			},
		)
	}

	return l.generate(ctx, conversationID, userID, chatMessages, emit)
}

// decide issues the non-streaming call that chooses whether to search.
// Only the first tool call in the response is honored.
func (l *TurnLogic) decide(ctx context.Context, chatMessages []pkg.RequestMessage) (*pkg.ToolCall, error) {
	window := chatMessages
	if len(window) > DecisionWindow {
		window = window[len(window)-DecisionWindow:]
	}

	resp, err := l.chatClient.CreateChatCompletion(ctx, pkg.ChatCompletionRequest{
		Messages:   window,
		Tools:      []pkg.Tool{searchToolSchema},
		ToolChoice: "auto",
	})
	if err != nil {
		return nil, err
	}

	if len(resp.Choices) == 0 || len(resp.Choices[0].Message.ToolCalls) == 0 {
		return nil, nil
	}
	call := resp.Choices[0].Message.ToolCalls[0]
	l.logger.Info("decision selected tool call", "tool", call.Function.Name, "id", call.ID)
	return &call, nil
}

// runSearch extracts the query and executes the search adapter. Unparsable
// arguments degrade to the no-results sentinel; the adapter itself never
// fails. A tool round-trip cannot abort the turn.
func (l *TurnLogic) runSearch(ctx context.Context, call *pkg.ToolCall) string {
	var args struct {
		Query string `json:"query"`
	}
	if err := json.Unmarshal([]byte(call.Function.Arguments), &args); err != nil || args.Query == "" {
		l.logger.Warn("tool call arguments unusable, substituting empty result",
			"arguments", call.Function.Arguments)
		return pkg.NoResultsSentinel
	}
	return l.searchClient.Search(ctx, args.Query)
}

// generate streams the model answer, relaying each fragment through emit
// while folding it into a single accumulator, then persists the result.
func (l *TurnLogic) generate(ctx context.Context, conversationID, userID string, chatMessages []pkg.RequestMessage, emit func(string) error) (*models.Message, error) {
	var full strings.Builder
	started := false

	streamErr := l.chatClient.CreateChatCompletionStream(ctx, pkg.ChatCompletionRequest{
		Messages: chatMessages,
	}, func(resp *pkg.StreamChatCompletionResponse) error {
		for _, choice := range resp.Choices {
			if choice.Delta.Content == "" {
				continue
			}
			started = true
			full.WriteString(choice.Delta.Content)
			if err := emit(choice.Delta.Content); err != nil {
				return err
			}
		}
		return nil
	})

	if streamErr != nil {
		if !started {
			// Nothing was relayed yet, so the turn can still fail cleanly.
			return nil, streamErr
		}
		// Mid-stream failure: the stream has been delivered as far as it
		// got, so keep what accumulated and finish quietly.
		l.logger.Warn("generation stream interrupted", "error", streamErr,
			"conversation", conversationID, "accumulated", full.Len())
	}

	answer, err := l.messageDAO.Create(conversationID, userID, models.RoleAssistant, full.String())
	if err != nil {
		if started {
			l.logger.Error("failed to persist assistant message after stream",
				"error", err, "conversation", conversationID)
			return nil, nil
		}
		return nil, err
	}
	return answer, nil
}
