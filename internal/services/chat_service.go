package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/terraincognita07/ovira/internal/models"
)

const ChatSystemPrompt = `You are Ovira AI, an empathetic and knowledgeable women's health assistant. Your role is to provide helpful, accurate, and stigma-free information about women's health topics, including menstrual health, reproductive wellness, hormonal health, and general wellbeing.

IMPORTANT GUIDELINES:
1. BE EMPATHETIC: Always respond with warmth, understanding, and without judgment. Many health topics can be sensitive or embarrassing for users.

2. BE CLEAR: Provide information in clear, accessible language. Avoid overly technical jargon unless explaining a specific term.

3. NEVER DIAGNOSE: You are not a doctor. Never provide medical diagnoses. Always recommend consulting a healthcare provider for specific medical concerns.

4. NEVER PRESCRIBE: Do not recommend specific medications, dosages, or treatments. Instead, explain general options and encourage professional consultation.

5. BE INCLUSIVE: Use inclusive language that respects diverse experiences and identities.

6. ADDRESS STIGMA: Many menstrual and reproductive health topics are stigmatized. Help normalize these conversations.

7. STAY ON TOPIC: Focus on women's health topics. Politely redirect off-topic conversations.

8. SAFETY FIRST: If a user describes symptoms that could indicate a medical emergency (severe pain, heavy bleeding, etc.), encourage them to seek immediate medical care.

CLOSING REMINDER: End responses with a gentle reminder to consult a healthcare provider when appropriate.

Your responses should be helpful, warm, and informative while maintaining appropriate boundaries.`

const (
	maxChatMessageRunes  = 4000
	fallbackQuoteRunes   = 50
	chatFallbackTemplate = `Thank you for your question about "%s...".

I'm Ovira AI, your health companion. Unfortunately, the AI service is currently being configured. In the meantime, here are some general tips:

1. **Track your symptoms** - Use the logging feature to keep a record of your daily health.
2. **Stay hydrated** - Drink plenty of water throughout the day.
3. **Rest when needed** - Listen to your body's signals.
4. **Consult a professional** - For specific health concerns, please speak with a healthcare provider.

Once the AI service is fully configured, I'll be able to provide more personalized responses. Thank you for your patience! 💜`
)

var ignoredChatConditions = map[string]struct{}{
	"none":       {},
	"prefer-not": {},
}

type AssistantClient interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

type ChatProfileReader interface {
	Get(ctx context.Context, userID string) (models.Profile, error)
}

type ChatReply struct {
	Response string `json:"response"`
	Fallback bool   `json:"fallback"`
}

type ChatService struct {
	assistant AssistantClient
	profiles  ChatProfileReader
}

// NewChatService accepts a nil assistant; replies then fall back to static guidance.
func NewChatService(assistant AssistantClient, profiles ChatProfileReader) *ChatService {
	return &ChatService{
		assistant: assistant,
		profiles:  profiles,
	}
}

func (service *ChatService) Reply(ctx context.Context, userID string, message string) (ChatReply, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return ChatReply{}, ErrEmptyChatMessage
	}
	if runes := []rune(message); len(runes) > maxChatMessageRunes {
		message = string(runes[:maxChatMessageRunes])
	}

	if service.assistant == nil {
		return ChatReply{Response: ChatFallbackResponse(message), Fallback: true}, nil
	}

	profile := models.DefaultProfile(userID)
	if service.profiles != nil {
		loaded, err := service.profiles.Get(ctx, userID)
		if err != nil {
			return ChatReply{}, err
		}
		profile = loaded
	}

	text, err := service.assistant.GenerateText(ctx, BuildChatPrompt(message, profile))
	if err != nil {
		return ChatReply{}, fmt.Errorf("%w: %v", ErrAssistantUnavailable, err)
	}
	return ChatReply{Response: text}, nil
}

func BuildChatPrompt(message string, profile models.Profile) string {
	contextInfo := ChatUserContext(profile)

	var prompt strings.Builder
	prompt.WriteString(ChatSystemPrompt)
	prompt.WriteString("\n\n")
	if contextInfo != "" {
		prompt.WriteString("USER CONTEXT: ")
		prompt.WriteString(contextInfo)
	}
	prompt.WriteString("\n\nUSER QUESTION: ")
	prompt.WriteString(message)
	prompt.WriteString("\n\nPlease provide a helpful, empathetic response:")
	return prompt.String()
}

func ChatUserContext(profile models.Profile) string {
	var parts []string
	if ageRange := strings.TrimSpace(profile.AgeRange); ageRange != "" {
		parts = append(parts, fmt.Sprintf("User age range: %s.", ageRange))
	}

	relevant := make([]string, 0, len(profile.KnownConditions))
	for _, condition := range profile.KnownConditions {
		if _, ignored := ignoredChatConditions[condition]; ignored {
			continue
		}
		relevant = append(relevant, condition)
	}
	if len(relevant) > 0 {
		parts = append(parts, fmt.Sprintf("User has indicated: %s.", strings.Join(relevant, ", ")))
	}
	return strings.Join(parts, " ")
}

func ChatFallbackResponse(message string) string {
	quoted := []rune(message)
	if len(quoted) > fallbackQuoteRunes {
		quoted = quoted[:fallbackQuoteRunes]
	}
	return fmt.Sprintf(chatFallbackTemplate, string(quoted))
}
