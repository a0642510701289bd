package session

import (
	"context"
	"strings"

	"github.com/theirongolddev/finbuddy/internal/advisor"
	"github.com/theirongolddev/finbuddy/internal/gamify"
)

// Greeting opens every chat.
const Greeting = "Hi! I'm FinBuddy, your financial education assistant. How can I help you learn about budgeting, saving, and investing today?"

// Chat roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Chat topics.
const (
	TopicBudgeting = "budgeting"
	TopicSaving    = "saving"
	TopicInvesting = "investing"
)

// ChatMessage is one chat turn.
type ChatMessage struct {
	Role    string         `json:"role"`
	Content string         `json:"content"`
	Source  advisor.Source `json:"source,omitempty"`
}

// ChatReply is the answer to one chat message.
type ChatReply struct {
	advisor.Reply
	Topics []string `json:"topics,omitempty"`
}

var topicKeywords = []struct {
	keyword string
	topic   string
}{
	{"budget", TopicBudgeting},
	{"save", TopicSaving},
	{"saving", TopicSaving},
	{"invest", TopicInvesting},
	{"investing", TopicInvesting},
	{"stock", TopicInvesting},
	{"retirement", TopicInvesting},
	{"debt", TopicBudgeting},
	{"credit", TopicBudgeting},
	{"emergency fund", TopicSaving},
}

var topicBadges = map[string]string{
	TopicBudgeting: gamify.BadgeBudgetExplorer,
	TopicSaving:    gamify.BadgeSavingsGuru,
	TopicInvesting: gamify.BadgeInvestmentApprentice,
}

// DetectTopics returns the distinct topics mentioned in text, in keyword order.
func DetectTopics(text string) []string {
	lower := strings.ToLower(text)
	var out []string
	seen := make(map[string]bool)
	for _, tk := range topicKeywords {
		if strings.Contains(lower, tk.keyword) && !seen[tk.topic] {
			seen[tk.topic] = true
			out = append(out, tk.topic)
		}
	}
	return out
}

// Ask sends a chat message. Any topic mention awards the topic badge and
// a small progress bump.
func (s *Session) Ask(ctx context.Context, prompt string) (ChatReply, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return ChatReply{}, invalid(errEmptyMessage)
	}

	s.chat = append(s.chat, ChatMessage{Role: RoleUser, Content: prompt})
	topics := DetectTopics(prompt)

	reply := s.advisor.Ask(ctx, prompt, advisor.ChatSystemPrompt)
	s.chat = append(s.chat, ChatMessage{Role: RoleAssistant, Content: reply.Text, Source: reply.Source})

	if len(topics) > 0 {
		for _, t := range topics {
			name := topicBadges[t]
			s.engine.Award(name, gamify.EmojiFor(name))
		}
		s.bump(0.05)
	}
	return ChatReply{Reply: reply, Topics: topics}, nil
}

// History returns the chat transcript, greeting first.
func (s *Session) History() []ChatMessage {
	return append([]ChatMessage(nil), s.chat...)
}
