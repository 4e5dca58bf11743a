package gemini

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

const chatSystemPrompt = "You are Cal AI, a friendly and knowledgeable nutrition assistant. " +
	"You can answer questions about food, health, and diet. You can also provide recipe ideas " +
	"and help users understand their nutritional data. Keep your answers encouraging, concise, " +
	"and easy to understand. Use emojis where appropriate to maintain a friendly tone."

// ChatSession holds an in-memory conversation with the assistant persona.
// A stopped or failed turn is not appended to the history, so the next
// message replays from the last completed exchange.
type ChatSession struct {
	client  *Client
	history []content
}

func NewChatSession(client *Client) *ChatSession {
	return &ChatSession{client: client}
}

type streamChunk struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// SendStream sends one user message and folds each streamed text fragment
// through fn in arrival order. If fn returns a non-nil error the stream is
// abandoned and that error returned. Only a fully delivered reply is added
// to the conversation history.
func (s *ChatSession) SendStream(ctx context.Context, message string, fn func(fragment string) error) error {
	userTurn := content{Role: "user", Parts: []part{{Text: message}}}

	reqBody := generateRequest{
		Contents:          append(append([]content{}, s.history...), userTurn),
		SystemInstruction: &content{Parts: []part{{Text: chatSystemPrompt}}},
	}

	req, err := s.client.newRequest(ctx, "streamGenerateContent?alt=sse", reqBody)
	if err != nil {
		return err
	}

	resp, err := s.client.httpClient().Do(req)
	if err != nil {
		return fmt.Errorf("execute chat request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("chat request failed with status %d", resp.StatusCode)
	}

	var reply strings.Builder
	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, "data:") {
			continue
		}
		payload := strings.TrimSpace(strings.TrimPrefix(line, "data:"))
		if payload == "" || payload == "[DONE]" {
			continue
		}
		var chunk streamChunk
		if err := json.Unmarshal([]byte(payload), &chunk); err != nil {
			return fmt.Errorf("decode chat stream chunk: %w", err)
		}
		for _, cand := range chunk.Candidates {
			for _, p := range cand.Content.Parts {
				if p.Text == "" {
					continue
				}
				if err := fn(p.Text); err != nil {
					return err
				}
				reply.WriteString(p.Text)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read chat stream: %w", err)
	}

	s.history = append(s.history, userTurn, content{
		Role:  "model",
		Parts: []part{{Text: reply.String()}},
	})
	return nil
}

// HistoryLen reports the number of stored conversation turns.
func (s *ChatSession) HistoryLen() int {
	return len(s.history)
}
