package emaildigest

import (
	"strings"

	"github.com/ohadbenami/gaya-daily-reports/infrastructure/integrator/msgraph"
)

// Mailbox categories, in digest order. Urgency wins over topic.
const (
	CategoryUrgent   = "urgent"
	CategoryFinance  = "finance"
	CategoryOrders   = "orders"
	CategoryInternal = "internal"
	CategoryOther    = "other"
)

var categoryOrder = []string{CategoryUrgent, CategoryFinance, CategoryOrders, CategoryInternal, CategoryOther}

var (
	urgentKeywords  = []string{"דחוף", "urgent", "asap", "חשוב", "important", "מיידי"}
	financeKeywords = []string{"חשבונית", "תשלום", "העברה", "invoice", "payment", "bank", "בנק"}
	orderKeywords   = []string{"הזמנה", "משלוח", "po", "order", "shipment", "delivery", "מכולה"}
)

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

// categorize assigns one message to exactly one category.
func categorize(msg msgraph.Message) string {
	combined := strings.ToLower(msg.Subject + " " + msg.BodyPreview)
	sender := strings.ToLower(msg.From.EmailAddress.Address)

	switch {
	case msg.Importance == "high" || containsAny(combined, urgentKeywords):
		return CategoryUrgent
	case containsAny(combined, financeKeywords):
		return CategoryFinance
	case containsAny(combined, orderKeywords):
		return CategoryOrders
	case strings.Contains(sender, "gaya"):
		return CategoryInternal
	default:
		return CategoryOther
	}
}

// categorizeAll buckets messages preserving the mailbox's newest-first order
// inside each category.
func categorizeAll(messages []msgraph.Message) map[string][]msgraph.Message {
	buckets := make(map[string][]msgraph.Message, len(categoryOrder))
	for _, msg := range messages {
		category := categorize(msg)
		buckets[category] = append(buckets[category], msg)
	}
	return buckets
}
