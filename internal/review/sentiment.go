package review

// Sentiment is the three-bucket label derived from a rating
type Sentiment string

const (
	SentimentNegative Sentiment = "negative"
	SentimentNeutral  Sentiment = "neutral"
	SentimentPositive Sentiment = "positive"
)

// Classify maps a rating to its sentiment. Ratings outside 1-5, and absent
// ratings, have no sentiment.
func Classify(rating *int) Sentiment {
	if rating == nil {
		return ""
	}
	switch *rating {
	case 1, 2:
		return SentimentNegative
	case 3:
		return SentimentNeutral
	case 4, 5:
		return SentimentPositive
	default:
		return ""
	}
}
