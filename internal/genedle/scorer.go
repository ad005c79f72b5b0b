package genedle

// score evaluates an equal-length guess against the secret. Two passes keep
// repeated letters honest: a letter already consumed by an exact match (or an
// earlier Present) cannot also light up as Present elsewhere.
func score(guess, secret []rune) ([]Feedback, bool) {
	available := make(map[rune]int, len(secret))
	for _, r := range secret {
		available[r]++
	}

	result := make([]Feedback, len(guess))
	for i, r := range guess {
		if r == secret[i] {
			result[i] = FeedbackCorrect
			available[r]--
		}
	}

	isCorrect := true
	for i, r := range guess {
		if result[i] == FeedbackCorrect {
			continue
		}
		isCorrect = false
		if available[r] > 0 {
			result[i] = FeedbackPresent
			available[r]--
		} else {
			result[i] = FeedbackAbsent
		}
	}

	return result, isCorrect
}
