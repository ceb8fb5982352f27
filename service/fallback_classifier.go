package service

import (
	"context"
	"regexp"
	"strings"

	"voice-shopping-assistant/models"
	"voice-shopping-assistant/utils"
)

// FallbackUnknownText is returned when no rule matches
const FallbackUnknownText = `Sorry, I didn't understand that. Try saying "add milk" or "show my list".`

// itemWords matches item names in any script; \p{M} keeps combining vowel
// signs (दही) and decomposed accents attached to their letters.
const itemWords = `(\p{L}[\p{L}\p{M}\s'-]*)`

var (
	addPattern    = regexp.MustCompile(`\b(add|buy|get)\s+(?:(?:me|us|please)\s+)*(\d+)?\s*` + itemWords)
	removePattern = regexp.MustCompile(`\b(remove|delete|take off)\s+` + itemWords)
	searchPattern = regexp.MustCompile(`\b(search(?:\s+for)?|find|look for)\s+` + itemWords)

	// "milk to my list" -> "milk", "my shopping list" -> ""
	listPhrasePattern = regexp.MustCompile(`(?:^|\s+)(?:(?:to|on|onto|from|off|in)\s+)?(?:my|the)\s+(?:shopping\s+)?list$`)
	articlePattern    = regexp.MustCompile(`^(?:(?:the|some|a|an|me|us|please)\s+)+`)
)

// fallbackRule matches when text contains any keyword and, if set, pattern
type fallbackRule struct {
	intent   models.IntentName
	keywords []string
	pattern  *regexp.Regexp
	slots    func(match []string) (models.Slots, bool)
	reply    func(slots models.Slots) string
}

// FallbackClassifier extracts intents with ordered keyword and regex rules.
// It is used when the external classifier is unavailable.
type FallbackClassifier struct {
	rules []fallbackRule
}

// NewFallbackClassifier creates a FallbackClassifier with the built-in rules
func NewFallbackClassifier() *FallbackClassifier {
	return &FallbackClassifier{rules: []fallbackRule{
		{
			intent:   models.IntentAddItem,
			keywords: []string{"add", "buy", "get"},
			pattern:  addPattern,
			slots: func(m []string) (models.Slots, bool) {
				item := cleanItemPhrase(m[3])
				if item == "" {
					return nil, false
				}
				quantity := 1
				if n, ok := models.StringSlot(m[2]).Int(); ok {
					quantity = n
				}
				return models.Slots{
					"item":     models.StringSlot(item),
					"quantity": models.NumberSlot(float64(quantity)),
				}, true
			},
			reply: func(s models.Slots) string {
				item, _ := s.Text("item")
				return "Adding " + item + " to your list."
			},
		},
		{
			intent:   models.IntentRemoveItem,
			keywords: []string{"remove", "delete", "take off"},
			pattern:  removePattern,
			slots:    itemSlot(2),
			reply: func(s models.Slots) string {
				item, _ := s.Text("item")
				return "Removing " + item + " from your list."
			},
		},
		{
			intent:   models.IntentGetList,
			keywords: []string{"list", "show", "what"},
			reply: func(models.Slots) string {
				return "Here is your shopping list."
			},
		},
		{
			intent:   models.IntentSearchItem,
			keywords: []string{"search", "find", "look for"},
			pattern:  searchPattern,
			slots:    itemSlot(2),
			reply: func(s models.Slots) string {
				item, _ := s.Text("item")
				return "Searching for " + item + "."
			},
		},
	}}
}

// Ensure FallbackClassifier implements ClassifierInterface
var _ ClassifierInterface = (*FallbackClassifier)(nil)

// Classify never fails; unmatched input is UnknownIntent
func (c *FallbackClassifier) Classify(_ context.Context, _ string, text string) (*models.Classification, error) {
	return c.Match(text), nil
}

// Match applies the rules in order and returns the first hit
func (c *FallbackClassifier) Match(text string) *models.Classification {
	normalized := utils.NormalizeText(text)

	for _, rule := range c.rules {
		if !containsAny(normalized, rule.keywords) {
			continue
		}

		slots := models.Slots{}
		if rule.pattern != nil {
			match := rule.pattern.FindStringSubmatch(normalized)
			if match == nil {
				continue
			}
			var ok bool
			if slots, ok = rule.slots(match); !ok {
				continue
			}
		}

		return &models.Classification{
			Intent:          rule.intent,
			RawIntent:       string(rule.intent),
			Slots:           slots,
			FulfillmentText: rule.reply(slots),
			QueryText:       text,
			Source:          models.SourceFallback,
		}
	}

	return &models.Classification{
		Intent:          models.IntentUnknown,
		RawIntent:       string(models.IntentUnknown),
		Slots:           models.Slots{},
		FulfillmentText: FallbackUnknownText,
		QueryText:       text,
		Source:          models.SourceFallback,
	}
}

// itemSlot builds an "item" slot from submatch group
func itemSlot(group int) func([]string) (models.Slots, bool) {
	return func(m []string) (models.Slots, bool) {
		item := cleanItemPhrase(m[group])
		if item == "" {
			return nil, false
		}
		return models.Slots{"item": models.StringSlot(item)}, true
	}
}

// cleanItemPhrase drops a trailing "to my list" phrase and leading articles
// or fillers such as "me" and "please"
func cleanItemPhrase(phrase string) string {
	item := strings.TrimSpace(phrase)
	item = strings.TrimSpace(listPhrasePattern.ReplaceAllString(item, ""))
	item = articlePattern.ReplaceAllString(item, "")
	return strings.TrimSpace(item)
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
