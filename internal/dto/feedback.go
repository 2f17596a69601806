package dto

// RatingDistribution buckets ratings into the four bands the mess committee
// reports on.
type RatingDistribution struct {
	Excellent int `json:"excellent (4-5)"`
	Good      int `json:"good (3-4)"`
	Average   int `json:"average (2-3)"`
	Poor      int `json:"poor (<2)"`
}

type FeedbackAverage struct {
	AverageRating float64             `json:"average_rating"`
	TotalFeedback int                 `json:"total_feedback,omitempty"`
	MaxRating     *float64            `json:"max_rating,omitempty"`
	MinRating     *float64            `json:"min_rating,omitempty"`
	DaysAnalyzed  int                 `json:"days_analyzed,omitempty"`
	MealType      string              `json:"meal_type,omitempty"`
	Distribution  *RatingDistribution `json:"rating_distribution,omitempty"`
	Message       string              `json:"message,omitempty"`
}

// FeedbackSubmission is the body of POST /feedback. The row is appended to
// the feedback sheet best-effort.
type FeedbackSubmission struct {
	Date     string  `json:"date"`
	MealType string  `json:"meal_type"`
	Rating   float64 `json:"rating"`
	Comments string  `json:"comments,omitempty"`
}
