package progress

// minAttemptsForWeakness is how many answers a topic needs before its
// accuracy counts when picking the weakest topic.
const minAttemptsForWeakness = 3

// Recommend picks the topic to practice next from topics, in order of
// preference: the lowest-accuracy topic with enough attempts and some misses,
// then the first topic never practiced, then the least practiced. Ties keep
// topic order. A perfect topic is never the weakest.
// It returns "" when topics is empty.
func Recommend(topics []string, records map[string]TopicProgress) string {
	if len(topics) == 0 {
		return ""
	}

	weakest, weakestAcc := "", 0.0
	for _, topic := range topics {
		r := records[topic]
		if r.TotalAttempts < minAttemptsForWeakness || r.CorrectAttempts >= r.TotalAttempts {
			continue
		}
		if acc := r.Accuracy(); weakest == "" || acc < weakestAcc {
			weakest, weakestAcc = topic, acc
		}
	}
	if weakest != "" {
		return weakest
	}

	for _, topic := range topics {
		if records[topic].TotalAttempts == 0 {
			return topic
		}
	}

	least := topics[0]
	for _, topic := range topics[1:] {
		if records[topic].TotalAttempts < records[least].TotalAttempts {
			least = topic
		}
	}
	return least
}
