package chatbot

import (
	"context"
	"log"
	"strings"
)

type Result struct {
	FulfillmentText string
	Intent          string
	Confidence      float32
}

// Detector resolves an intent for a chat message. The Dialogflow client
// implements it; a nil detector means the rule-based fallback answers.
type Detector interface {
	DetectIntent(ctx context.Context, sessionID, text, languageCode string) (*Result, error)
}

type Bot struct {
	Detector     Detector
	LanguageCode string
}

// Reply answers a chat message. Detector errors degrade to the fallback
// table instead of failing the request.
func (b *Bot) Reply(ctx context.Context, sessionID, message string) string {
	if b.Detector == nil {
		return FallbackReply(message)
	}
	lang := b.LanguageCode
	if lang == "" {
		lang = "en"
	}
	res, err := b.Detector.DetectIntent(ctx, sessionID, message, lang)
	if err != nil {
		log.Printf("detect intent: %v", err)
		return FallbackReply(message)
	}
	if res.FulfillmentText == "" {
		return FallbackReply(message)
	}
	return res.FulfillmentText
}

// FallbackReply is the rule-based answer table used when no intent backend
// is configured.
func FallbackReply(message string) string {
	m := strings.ToLower(message)
	switch {
	case strings.Contains(m, "hello"), strings.Contains(m, "hi"):
		return "Hello there! How can I help you with our products today?"
	case strings.Contains(m, "product"), strings.Contains(m, "items"):
		return "We offer a wide range of products including furniture, kitchen appliances, and home decor. You can browse our collection on the main page."
	case strings.Contains(m, "price"):
		return "Our prices range from affordable to premium options. You can check the price of each product on its details page."
	case strings.Contains(m, "delivery"), strings.Contains(m, "shipping"):
		return "We offer free shipping on orders over $50. Delivery usually takes 3-5 business days."
	case strings.Contains(m, "payment"):
		return "We accept various payment methods including credit cards, QRIS, and digital wallets like OVO and GoPay."
	case strings.Contains(m, "return"), strings.Contains(m, "refund"):
		return "Our return policy allows you to return products within 14 days of delivery if you're not satisfied."
	case strings.Contains(m, "contact"), strings.Contains(m, "help"):
		return "You can contact our customer support team at support@ikeastore.com or call us at +62 123-4567-8900."
	case strings.Contains(m, "thank"):
		return "You're welcome! Feel free to ask if you need further assistance."
	case strings.Contains(m, "bye"):
		return "Thank you for chatting with us. Have a great day!"
	default:
		return "I'm not sure I understand. Could you rephrase your question? You can ask about our products, prices, delivery, payment methods, or return policy."
	}
}
