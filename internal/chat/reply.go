package chat

import "strings"

// Canned empathy lines. The first one seeds the generic reply.
var empathySeeds = []string{
	"I'm here with you.",
	"That sounds really tough, thank you for sharing it.",
	"It's okay to feel this way.",
	"Let's take it one small step at a time.",
}

const fallbackReply = "I'm here whenever you're ready."

// Keyword groups checked in order; the first hit wins.
var (
	anxietyWords = []string{"anxious", "anxiety", "worried", "panic"}
	sadnessWords = []string{"sad", "down", "tired"}
	angerWords   = []string{"angry", "frustrated", "mad"}
	sleepWords   = []string{"can't sleep", "insomnia", "sleep"}
)

const (
	anxietyReply = "I hear the anxiety showing up. Try a slow breath with me: in for 4, hold for 4, out for 6. What tends to help even a little when this feeling visits?"
	sadnessReply = "Feeling low can be heavy. What would be the gentlest next right thing for you—water, a stretch, texting a friend?"
	angerReply   = "Anger is a signal. Want to unpack what boundary or need might be underneath it?"
	sleepReply   = "Rest can be hard when the mind is busy. Would a quick grounding—naming 5 things you can see, 4 you can touch—be okay to try?"
)

// GenerateReply maps user text to a canned empathetic response by keyword
// matching. Deterministic: same input, same reply.
func GenerateReply(text string) string {
	if strings.TrimSpace(text) == "" {
		return fallbackReply
	}
	lowered := strings.ToLower(text)
	switch {
	case containsAny(lowered, anxietyWords):
		return anxietyReply
	case containsAny(lowered, sadnessWords):
		return sadnessReply
	case containsAny(lowered, angerWords):
		return angerReply
	case containsAny(lowered, sleepWords):
		return sleepReply
	}
	return empathySeeds[0] + " Tell me more about what's on your mind."
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
