package emaildigest

import (
	"fmt"
	"strings"
	"time"

	"github.com/ohadbenami/gaya-daily-reports/infrastructure/integrator/msgraph"
	"github.com/ohadbenami/gaya-daily-reports/pkg/utils"
)

// promptEmailLimit caps how many messages go into the model prompt.
const promptEmailLimit = 20

// fallbackMaxChars bounds the deterministic summary used when the model is
// unreachable.
const fallbackMaxChars = 500

type promptEmail struct {
	Subject        string `json:"subject"`
	From           string `json:"from"`
	Time           string `json:"time"`
	Preview        string `json:"preview"`
	Importance     string `json:"importance"`
	HasAttachments bool   `json:"hasAttachments"`
}

// buildPrompt assembles the Hebrew summarization prompt: the recent
// messages as JSON plus category statistics and format instructions.
func buildPrompt(messages []msgraph.Message, buckets map[string][]msgraph.Message) string {
	limit := len(messages)
	if limit > promptEmailLimit {
		limit = promptEmailLimit
	}

	emails := make([]promptEmail, 0, limit)
	for _, msg := range messages[:limit] {
		name := msg.From.EmailAddress.Name
		if name == "" {
			name = "Unknown"
		}
		emails = append(emails, promptEmail{
			Subject:        msg.Subject,
			From:           name,
			Time:           msg.ReceivedDateTime,
			Preview:        utils.Truncate(msg.BodyPreview, 200),
			Importance:     msg.Importance,
			HasAttachments: msg.HasAttachments,
		})
	}

	return fmt.Sprintf(`אתה עוזר למנכ"ל לסכם מיילים בבוקר.

הנה המיילים שהתקבלו מאתמול 19:00:
%s

סטטיסטיקה:
- סה"כ: %d מיילים
- דחופים: %d
- כספים: %d
- הזמנות: %d
- פנימי: %d
- אחר: %d

צור סיכום קצר לוואטסאפ (מקסימום 450 תווים) בפורמט:
1. שורת פתיחה עם תאריך וסטטיסטיקה
2. אם יש דחופים - רשום אותם קודם
3. קטגוריות לפי נושא (רק אם יש)
4. שורת action items (מה דורש תשומת לב)

השתמש באימוג'ים: ☀️📬🔴💰📦⚡
כתוב בעברית. תמציתי. ישיר.`,
		utils.PrettyJson(emails),
		len(messages),
		len(buckets[CategoryUrgent]),
		len(buckets[CategoryFinance]),
		len(buckets[CategoryOrders]),
		len(buckets[CategoryInternal]),
		len(buckets[CategoryOther]),
	)
}

// fallbackSummary is the deterministic digest used when the model call
// fails: headline counts plus the top urgent subjects.
func fallbackSummary(messages []msgraph.Message, buckets map[string][]msgraph.Message, now time.Time) string {
	lines := []string{
		fmt.Sprintf("☀️ בוקר טוב! | %s", now.Format("02.01")),
		fmt.Sprintf("📬 %d מיילים | 🔴 %d דחופים", len(messages), len(buckets[CategoryUrgent])),
	}

	if urgent := buckets[CategoryUrgent]; len(urgent) > 0 {
		lines = append(lines, "", "⚡ דחוף:")
		limit := len(urgent)
		if limit > 2 {
			limit = 2
		}
		for _, msg := range urgent[:limit] {
			sender := utils.Truncate(msg.From.EmailAddress.Name, 15)
			subject := utils.Truncate(msg.Subject, 25)
			lines = append(lines, fmt.Sprintf("• %s: %s", sender, subject))
		}
	}

	if n := len(buckets[CategoryFinance]); n > 0 {
		lines = append(lines, "", fmt.Sprintf("💰 כספים (%d)", n))
	}
	if n := len(buckets[CategoryOrders]); n > 0 {
		lines = append(lines, fmt.Sprintf("📦 הזמנות (%d)", n))
	}

	return utils.Truncate(strings.Join(lines, "\n"), fallbackMaxChars)
}

// emptyInboxMessage is sent when nothing arrived overnight, so the digest
// never goes silently missing.
func emptyInboxMessage(now time.Time) string {
	return fmt.Sprintf("☀️ בוקר טוב! | %s\n\n📬 אין מיילים חדשים מאתמול 19:00\n\n🎯 יום פרודוקטיבי!", now.Format("02.01"))
}
