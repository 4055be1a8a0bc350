package delivery

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/labops/evidence-desk/internal/submission"
	"go.uber.org/zap"
)

// SESSender delivers submission summaries to the reviewer by transactional
// email
type SESSender struct {
	client   *ses.Client
	sender   string
	reviewer string
	logger   *zap.Logger
}

// NewSESSender creates a new SES delivery backend
func NewSESSender(ctx context.Context, region, sender, reviewer string, logger *zap.Logger) (*SESSender, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &SESSender{
		client:   ses.NewFromConfig(cfg),
		sender:   sender,
		reviewer: reviewer,
		logger:   logger,
	}, nil
}

// Name identifies the backend
func (s *SESSender) Name() string { return "ses" }

// Deliver emails the submission summary to the reviewer
func (s *SESSender) Deliver(ctx context.Context, record *submission.Record) error {
	subject := fmt.Sprintf("Expense submission - %s - %s", record.Applicant, record.Category)

	input := &ses.SendEmailInput{
		Source: aws.String(s.sender),
		Destination: &types.Destination{
			ToAddresses: []string{s.reviewer},
		},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(subject)},
			Body: &types.Body{
				Text: &types.Content{Data: aws.String(summaryBody(record))},
			},
		},
	}

	output, err := s.client.SendEmail(ctx, input)
	if err != nil {
		s.logger.Error("Failed to send submission email",
			zap.String("session_id", record.SessionID),
			zap.Error(err))
		return fmt.Errorf("failed to send submission email: %w", err)
	}

	s.logger.Info("Submission email sent",
		zap.String("session_id", record.SessionID),
		zap.String("reviewer", s.reviewer),
		zap.String("message_id", aws.ToString(output.MessageId)))
	return nil
}
