package matcher

import "go.uber.org/zap"

// FileAttachment is a resume file ready for upload: raw content plus the
// metadata the service needs to pick a parser.
type FileAttachment struct {
	Filename    string
	ContentType string
	Content     []byte
}

// MatchRequest is one submission attempt. It is constructed fresh per attempt
// and never reused.
type MatchRequest struct {
	File           *FileAttachment
	JobDescription string
}

// MatchResult carries the only success field this client consumes. The
// service returns more, but everything else is ignored.
type MatchResult struct {
	MatchScore float64
}

// SubmitMatch sends the resume and job description for scoring. A success
// response without a numeric match_score is a contract violation and is
// reported as a ServerError rather than rendered as missing data.
func (c *Client) SubmitMatch(req *MatchRequest) (*MatchResult, error) {
	var payload struct {
		MatchScore *float64 `json:"match_score"`
	}

	fields := map[string]string{"job_description": req.JobDescription}
	if err := c.postMultipart(matchPath, req.File, fields, &payload); err != nil {
		return nil, err
	}

	if payload.MatchScore == nil {
		return nil, &ServerError{Detail: "service response is missing the match score"}
	}

	c.logger.Debug("resume scored", zap.Float64("match_score", *payload.MatchScore))

	return &MatchResult{MatchScore: *payload.MatchScore}, nil
}
