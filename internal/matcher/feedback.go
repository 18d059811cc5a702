package matcher

import (
	"net/url"
	"strconv"

	"go.uber.org/zap"
)

// SubmitFeedback records a recruiter rating for a previously scored resume.
// The rating is on the service's 0..5 scale; range enforcement is the
// service's job and violations come back as a ValidationError.
func (c *Client) SubmitFeedback(filename string, rating float64, comments string) error {
	q := url.Values{}
	q.Set("filename", filename)
	q.Set("recruiter_rating", strconv.FormatFloat(rating, 'f', -1, 64))
	if comments != "" {
		q.Set("comments", comments)
	}

	if err := c.postQuery(feedbackPath, q, nil); err != nil {
		return err
	}

	c.logger.Debug("feedback recorded", zap.String("filename", filename), zap.Float64("rating", rating))

	return nil
}
