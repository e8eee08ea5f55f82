package api

import (
	"context"
	"net/http"
)

// QuestionRecord is one generated question/answer pair.
type QuestionRecord struct {
	ID       string `json:"_id"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// ExamRecord is a generated exam Q&A set. Sets are created atomically
// by the generation endpoint and immutable afterwards.
type ExamRecord struct {
	ID        string           `json:"_id"`
	UserID    string           `json:"userId"`
	Subject   string           `json:"subject"`
	Topic     string           `json:"topic"`
	Questions []QuestionRecord `json:"questions"`
	CreatedAt string           `json:"createdAt"`
}

// ListExams fetches every generated Q&A set for the session user.
func (c *Client) ListExams(ctx context.Context) ([]ExamRecord, error) {
	if c.userID == "" {
		return []ExamRecord{}, nil
	}

	raw, err := c.do(ctx, "exam-qa", http.MethodGet, "/exam-qa", c.userQuery(), nil)
	if err != nil {
		return nil, err
	}

	return decodeList[ExamRecord]("exam-qa", raw), nil
}

// GenerateExam asks the backend to generate a Q&A set for a subject
// and topic. Generation happens server-side; the response carries the
// finished set.
func (c *Client) GenerateExam(ctx context.Context, subject, topic string) (*ExamRecord, error) {
	if c.userID == "" {
		return nil, nil
	}

	payload := map[string]string{
		"userId":  c.userID,
		"subject": subject,
		"topic":   topic,
	}

	raw, err := c.do(ctx, "exam-qa", http.MethodPost, "/exam-qa", nil, payload)
	if err != nil {
		return nil, err
	}

	return decodeItem[ExamRecord]("exam-qa", raw)
}
