package service

import (
	"regexp"
	"strings"

	"messbot/internal/models"
)

// IntentService classifies free-text messages into a fixed intent set using
// ordered regular-expression rules. Classification is a pure function of the
// lower-cased input: rules are evaluated in priority order with alert-style
// intents first, so "low stock alert" resolves to the alert intent even
// though "stock" alone also matches the generic inventory query.
type IntentService struct {
	rules []intentRule
}

type intentRule struct {
	intent   models.Intent
	patterns []*regexp.Regexp
}

func compileAll(exprs ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(exprs))
	for i, expr := range exprs {
		out[i] = regexp.MustCompile(expr)
	}
	return out
}

func NewIntentService() *IntentService {
	return &IntentService{
		rules: []intentRule{
			{
				intent: models.IntentLowStockAlert,
				patterns: compileAll(
					`\b(low stock|running low|shortage|need to restock)\b`,
					`\b(alert|warning)\b.*\b(stock|inventory)\b`,
				),
			},
			{
				intent: models.IntentLowRatingAlert,
				patterns: compileAll(
					`\b(low rating|poor feedback|bad review)\b`,
					`\b(alert|warning)\b.*\b(rating|feedback)\b`,
				),
			},
			{
				intent: models.IntentAttendancePrediction,
				patterns: compileAll(
					`\b(predict|forecast|estimate)\b.*\b(attendance|tomorrow|next day)\b`,
					`\b(next day|tomorrow)\b.*\battendance\b`,
					`\b(expected|likely)\b.*\battendance\b`,
				),
			},
			{
				intent: models.IntentAttendanceStats,
				patterns: compileAll(
					`\b(attendance|present|absent)\b.*\b(stats?|statistics|count)\b`,
					`\b(how many|total)\b.*\b(students?|people|present|absent)\b`,
					`\b(check|show|display)\b.*\battendance\b`,
				),
			},
			{
				intent: models.IntentFeedbackAverage,
				patterns: compileAll(
					`\b(feedback|rating|review)\b.*\b(average|mean|score)\b`,
					`\b(how is|what is)\b.*\b(feedback|rating)\b`,
					`\b(check|show)\b.*\b(feedback|rating|review)\b`,
				),
			},
			{
				intent: models.IntentInventoryQuery,
				patterns: compileAll(
					`\b(inventory|stock|items?|quantity|available)\b`,
					`\b(how much|how many)\b.*\b(items?|stock)\b`,
					`\b(check|show|list)\b.*\b(inventory|stock)\b`,
				),
			},
		},
	}
}

// DetectIntent returns exactly one intent; no matching rule falls back to
// general. First match in priority order, then pattern order, wins.
func (s *IntentService) DetectIntent(message string) models.Intent {
	lower := strings.ToLower(message)

	for _, rule := range s.rules {
		for _, pattern := range rule.patterns {
			if pattern.MatchString(lower) {
				return rule.intent
			}
		}
	}

	return models.IntentGeneral
}

var (
	itemForPattern     = regexp.MustCompile(`\bfor\s+([a-z]+)`)
	itemKeywordPattern = regexp.MustCompile(`\b(?:item|stock|inventory)\s+(?:of\s+)?([a-z]+)`)

	// Words that follow inventory keywords without naming an item.
	itemStoplist = map[string]bool{
		"low": true, "alert": true, "alerts": true, "warning": true,
		"stock": true, "inventory": true, "item": true, "items": true,
		"level": true, "levels": true, "the": true, "for": true, "of": true,
	}
)

// ExtractParams pulls intent-specific parameters out of the message. It is
// independent of classification and has no side effects.
func (s *IntentService) ExtractParams(message string, intent models.Intent) map[string]string {
	params := map[string]string{}
	lower := strings.ToLower(message)

	switch intent {
	case models.IntentInventoryQuery:
		for _, pattern := range []*regexp.Regexp{itemForPattern, itemKeywordPattern} {
			if m := pattern.FindStringSubmatch(lower); m != nil && !itemStoplist[m[1]] {
				params["item_name"] = m[1]
				break
			}
		}

	case models.IntentAttendanceStats, models.IntentAttendancePrediction:
		switch {
		case strings.Contains(lower, "yesterday"):
			params["date"] = "yesterday"
		case strings.Contains(lower, "tomorrow"), strings.Contains(lower, "next day"):
			params["date"] = "tomorrow"
		default:
			params["date"] = "today"
		}

	case models.IntentFeedbackAverage, models.IntentLowRatingAlert:
		for _, meal := range []string{"breakfast", "lunch", "dinner"} {
			if strings.Contains(lower, meal) {
				params["meal_type"] = meal
				break
			}
		}
	}

	return params
}
