package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/example/assess/internal/core/questionnaire"
	"github.com/example/assess/internal/ports/secondary"
)

// Gateway implements secondary.AssessmentGateway over the REST API.
type Gateway struct {
	client *Client
}

var _ secondary.AssessmentGateway = (*Gateway)(nil)

// NewGateway creates a new REST assessment gateway.
func NewGateway(client *Client) *Gateway {
	return &Gateway{client: client}
}

// SubmitAnswer stores an answer (PUT /api/v1/assessments/{id}/answer-question/).
func (g *Gateway) SubmitAnswer(ctx context.Context, req secondary.SubmitAnswerRequest) (*secondary.SubmitAnswerResult, error) {
	if req.AssessmentID == "" || req.QuestionnaireID == "" || req.QuestionID == "" {
		return nil, fmt.Errorf("assessment, questionnaire and question ids are required")
	}
	if req.IsNotApplicable && req.AnswerOptionID != nil {
		return nil, fmt.Errorf("a not-applicable answer cannot carry an option")
	}

	body := submitAnswerBody{
		QuestionnaireID:   req.QuestionnaireID,
		QuestionID:        req.QuestionID,
		AnswerOptionID:    req.AnswerOptionID,
		IsNotApplicable:   req.IsNotApplicable,
		ConfidenceLevelID: req.ConfidenceLevelID,
	}
	var res submitAnswerResponse
	path := fmt.Sprintf("/api/v1/assessments/%s/answer-question/", escape(req.AssessmentID))
	if err := g.client.do(ctx, http.MethodPut, path, nil, body, &res); err != nil {
		return nil, err
	}

	confirmed := res.confirmed()
	return &secondary.SubmitAnswerResult{
		Answer: confirmed.Answer.toConfirmed(),
		Counts: confirmed.Counts.toDomain(),
	}, nil
}

// ApproveAnswer approves the pending answer of a question.
func (g *Gateway) ApproveAnswer(ctx context.Context, assessmentID, questionID string) error {
	if assessmentID == "" || questionID == "" {
		return fmt.Errorf("assessment and question ids are required")
	}
	path := fmt.Sprintf("/api/v1/assessments/%s/approve-answer/", escape(assessmentID))
	return g.client.do(ctx, http.MethodPut, path, nil, approveAnswerBody{QuestionID: questionID}, nil)
}

// GetQuestionIssues returns the issue flags of a question.
func (g *Gateway) GetQuestionIssues(ctx context.Context, assessmentID, questionID string) (*questionnaire.Issues, error) {
	var res issuesDTO
	path := fmt.Sprintf("/api/v1/assessments/%s/questions/%s/issues/", escape(assessmentID), escape(questionID))
	if err := g.client.do(ctx, http.MethodGet, path, nil, nil, &res); err != nil {
		return nil, err
	}
	issues := res.toDomain()
	return &issues, nil
}

// GetQuestionDetail returns one question with its answer.
func (g *Gateway) GetQuestionDetail(ctx context.Context, assessmentID, questionID string) (*questionnaire.Question, error) {
	var res questionDTO
	path := fmt.Sprintf("/api/v1/assessments/%s/questions/%s/", escape(assessmentID), escape(questionID))
	if err := g.client.do(ctx, http.MethodGet, path, nil, nil, &res); err != nil {
		return nil, err
	}
	if res.ID == "" {
		res.ID = questionID
	}
	q := res.toDomain()
	return &q, nil
}

// GetQuestionnaireAnswers returns one page of a questionnaire's questions.
func (g *Gateway) GetQuestionnaireAnswers(ctx context.Context, assessmentID, questionnaireID string, page, size int) (*secondary.QuestionPage, error) {
	if page < 0 || size <= 0 {
		return nil, fmt.Errorf("invalid page %d size %d", page, size)
	}
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("size", strconv.Itoa(size))

	var res questionPageDTO
	path := fmt.Sprintf("/api/v1/assessments/%s/questionnaires/%s/", escape(assessmentID), escape(questionnaireID))
	if err := g.client.do(ctx, http.MethodGet, path, query, nil, &res); err != nil {
		return nil, err
	}

	out := &secondary.QuestionPage{Total: res.Total, Items: make([]questionnaire.Question, 0, len(res.Items))}
	for _, q := range res.Items {
		out.Items = append(out.Items, q.toDomain())
	}
	return out, nil
}

// GetNextQuestionnaire locates the questionnaire after this one.
func (g *Gateway) GetNextQuestionnaire(ctx context.Context, assessmentID, questionnaireID string) (*secondary.NextQuestionnaire, error) {
	var res nextQuestionnaireDTO
	path := fmt.Sprintf("/api/v1/assessments/%s/questionnaires/%s/next/", escape(assessmentID), escape(questionnaireID))
	if err := g.client.do(ctx, http.MethodGet, path, nil, nil, &res); err != nil {
		if IsNotFound(err) {
			return &secondary.NextQuestionnaire{Status: secondary.NextNotFound}, nil
		}
		return nil, err
	}
	return res.toDomain(), nil
}

// GetPathInfo returns breadcrumb titles.
func (g *Gateway) GetPathInfo(ctx context.Context, assessmentID, questionnaireID string) (*secondary.PathInfo, error) {
	query := url.Values{}
	query.Set("assessment_id", assessmentID)
	if questionnaireID != "" {
		query.Set("questionnaire_id", questionnaireID)
	}
	var res pathInfoDTO
	if err := g.client.do(ctx, http.MethodGet, "/api/v1/path-info", query, nil, &res); err != nil {
		return nil, err
	}
	return res.toDomain(), nil
}

// GetConfidenceLevels returns the confidence level catalogue.
func (g *Gateway) GetConfidenceLevels(ctx context.Context) ([]questionnaire.ConfidenceLevel, error) {
	var res confidenceLevelsDTO
	if err := g.client.do(ctx, http.MethodGet, "/api/v1/confidence-levels/", nil, nil, &res); err != nil {
		return nil, err
	}
	out := make([]questionnaire.ConfidenceLevel, 0, len(res.ConfidenceLevels))
	for _, l := range res.ConfidenceLevels {
		out = append(out, *l.toDomain())
	}
	return out, nil
}
