package chat

import "strings"

// orderKeywords gates which messages get routed to the order parser. The
// test is plain substring containment, so a message can carry order intent
// even when the parser ultimately extracts nothing.
var orderKeywords = []string{
	"order", "want", "buy", "get", "give me", "need",
	"i'll take", "can i have", "send", "serve",
}

func IsOrderQuery(text string) bool {
	lowered := strings.ToLower(text)
	for _, keyword := range orderKeywords {
		if strings.Contains(lowered, keyword) {
			return true
		}
	}

	return false
}
