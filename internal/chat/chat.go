// Package chat maintains conversation and message state. Messages are
// cached in two independent keyed maps, one by conversation id and one
// by counterpart user id; the two are never reconciled, so a thread
// reachable both ways can show divergent lists. Sends append the local
// echo instead of refetching.
package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/creativityverse/verse-cli/internal/api"
)

// userKeyPrefix builds the synthetic key for counterpart-scoped caches.
const userKeyPrefix = "user_"

// Message is one chat message.
type Message struct {
	ID             string   `json:"id"`
	SenderID       string   `json:"senderId"`
	ReceiverID     string   `json:"receiverId,omitempty"`
	ConversationID string   `json:"conversationId,omitempty"`
	Content        string   `json:"content"`
	Attachments    []string `json:"attachments,omitempty"`
	CreatedAt      string   `json:"createdAt"`
	Read           bool     `json:"read,omitempty"`
}

// UnmarshalJSON normalizes the backend's `_id` into ID.
func (m *Message) UnmarshalJSON(data []byte) error {
	type alias Message
	aux := struct {
		*alias
		MongoID string `json:"_id"`
	}{alias: (*alias)(m)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if m.ID == "" {
		m.ID = aux.MongoID
	}
	return nil
}

// Conversation is one thread summary.
type Conversation struct {
	ID           string   `json:"id"`
	Participants []string `json:"participants"`
	LastMessage  *Message `json:"lastMessage,omitempty"`
	UpdatedAt    string   `json:"updatedAt,omitempty"`
}

// UnmarshalJSON normalizes the backend's `_id` into ID.
func (c *Conversation) UnmarshalJSON(data []byte) error {
	type alias Conversation
	aux := struct {
		*alias
		MongoID string `json:"_id"`
	}{alias: (*alias)(c)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if c.ID == "" {
		c.ID = aux.MongoID
	}
	return nil
}

// Store caches conversations and messages.
type Store struct {
	client *api.Client

	mu             sync.Mutex
	conversations  []Conversation
	byConversation map[string][]Message
	byUser         map[string][]Message
	loading        bool
	err            string

	now func() time.Time
}

// New creates a chat store.
func New(client *api.Client) *Store {
	return &Store{
		client:         client,
		byConversation: make(map[string][]Message),
		byUser:         make(map[string][]Message),
		now:            time.Now,
	}
}

// Conversations returns the cached thread list.
func (s *Store) Conversations() []Conversation {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conversations
}

// ConversationMessages returns the cached messages for a conversation id.
func (s *Store) ConversationMessages(conversationID string) []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.byConversation[conversationID]
}

// UserMessages returns the cached messages exchanged with a counterpart.
func (s *Store) UserMessages(userID string) []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.byUser[userKeyPrefix+userID]
}

// Loading reports whether a chat call is in flight.
func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Err returns the last recorded error message.
func (s *Store) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// FetchConversations replaces the thread list.
func (s *Store) FetchConversations(ctx context.Context) error {
	s.setLoading(true)
	defer s.setLoading(false)

	var conversations []Conversation
	if err := s.client.Get(ctx, "/chat/conversations", nil, &conversations); err != nil {
		s.fail(api.Message(err))
		return err
	}

	s.mu.Lock()
	s.conversations = conversations
	s.err = ""
	s.mu.Unlock()
	return nil
}

// FetchConversationMessages replaces the conversation-keyed cache entry.
func (s *Store) FetchConversationMessages(ctx context.Context, conversationID string) error {
	s.setLoading(true)
	defer s.setLoading(false)

	var messages []Message
	if err := s.client.Get(ctx, "/chat/conversations/"+conversationID+"/messages", nil, &messages); err != nil {
		s.fail(api.Message(err))
		return err
	}

	s.mu.Lock()
	s.byConversation[conversationID] = messages
	s.err = ""
	s.mu.Unlock()
	return nil
}

// FetchUserMessages replaces the counterpart-keyed cache entry.
func (s *Store) FetchUserMessages(ctx context.Context, userID string) error {
	s.setLoading(true)
	defer s.setLoading(false)

	var messages []Message
	if err := s.client.Get(ctx, "/chat/messages/"+userID, nil, &messages); err != nil {
		s.fail(api.Message(err))
		return err
	}

	s.mu.Lock()
	s.byUser[userKeyPrefix+userID] = messages
	s.err = ""
	s.mu.Unlock()
	return nil
}

// SendToUser posts a message to a counterpart and optimistically appends
// the local echo to the counterpart-keyed cache. No refetch: the echo is
// trusted, with a timestamp-derived id when the server omits one.
func (s *Store) SendToUser(ctx context.Context, userID, content string, attachments []string) (*Message, error) {
	body := map[string]any{"content": content}
	if len(attachments) > 0 {
		body["attachments"] = attachments
	}

	var echoed Message
	if err := s.client.Post(ctx, "/chat/messages/"+userID, body, &echoed); err != nil {
		s.fail(api.Message(err))
		return nil, err
	}

	message := s.localEcho(echoed, content, attachments)
	message.ReceiverID = userID

	s.mu.Lock()
	key := userKeyPrefix + userID
	s.byUser[key] = append(s.byUser[key], message)
	s.err = ""
	s.mu.Unlock()
	return &message, nil
}

// SendToConversation posts a message into a thread and optimistically
// appends the local echo to the conversation-keyed cache.
func (s *Store) SendToConversation(ctx context.Context, conversationID, content string, attachments []string) (*Message, error) {
	body := map[string]any{"content": content}
	if len(attachments) > 0 {
		body["attachments"] = attachments
	}

	var echoed Message
	if err := s.client.Post(ctx, "/chat/conversations/"+conversationID+"/messages", body, &echoed); err != nil {
		s.fail(api.Message(err))
		return nil, err
	}

	message := s.localEcho(echoed, content, attachments)
	message.ConversationID = conversationID

	s.mu.Lock()
	s.byConversation[conversationID] = append(s.byConversation[conversationID], message)
	s.err = ""
	s.mu.Unlock()
	return &message, nil
}

// localEcho fills in whatever the server response left out of the
// just-sent message.
func (s *Store) localEcho(echoed Message, content string, attachments []string) Message {
	if echoed.ID == "" {
		echoed.ID = fmt.Sprintf("local-%d", s.now().UnixMilli())
	}
	if echoed.Content == "" {
		echoed.Content = content
	}
	if len(echoed.Attachments) == 0 {
		echoed.Attachments = attachments
	}
	if echoed.CreatedAt == "" {
		echoed.CreatedAt = s.now().UTC().Format(time.RFC3339)
	}
	return echoed
}

func (s *Store) fail(msg string) {
	s.mu.Lock()
	s.err = msg
	s.mu.Unlock()
}

func (s *Store) setLoading(v bool) {
	s.mu.Lock()
	s.loading = v
	s.mu.Unlock()
}
