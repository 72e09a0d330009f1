package signals

import "strings"

// Lightweight lexicon-based sentiment. This is deliberately crude: it only
// feeds a coarse behavioral signal, not user-facing analysis.
var positiveWords = map[string]struct{}{
	"good": {}, "great": {}, "awesome": {}, "love": {}, "like": {},
	"thanks": {}, "thank": {}, "happy": {}, "nice": {}, "cool": {},
	"fun": {}, "wonderful": {}, "amazing": {}, "best": {}, "helpful": {},
}

var negativeWords = map[string]struct{}{
	"hate": {}, "stupid": {}, "idiot": {}, "kill": {}, "die": {},
	"awful": {}, "terrible": {}, "worst": {}, "ugly": {}, "dumb": {},
	"shut": {}, "loser": {}, "trash": {}, "garbage": {}, "pathetic": {},
}

// scoreSentiment accumulates one score across all messages, starting
// neutral at 0.5 and moving 0.1 per net keyword hit, clamped to [0,1].
func scoreSentiment(messages []string) float64 {
	score := 0.5
	for _, msg := range messages {
		positiveHits := 0
		negativeHits := 0
		for _, token := range strings.Fields(strings.ToLower(msg)) {
			if _, ok := positiveWords[token]; ok {
				positiveHits++
			}
			if _, ok := negativeWords[token]; ok {
				negativeHits++
			}
		}
		score += float64(positiveHits-negativeHits) * 0.1
	}
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}
