package delivery

import (
	"context"
	"encoding/json"
	"fmt"

	lark "github.com/larksuite/oapi-sdk-go/v3"
	larkcore "github.com/larksuite/oapi-sdk-go/v3/core"
	larkim "github.com/larksuite/oapi-sdk-go/v3/service/im/v1"
	"github.com/labops/evidence-desk/internal/submission"
	"go.uber.org/zap"
)

// LarkMessenger delivers submission summaries to the reviewer as Lark
// messages
type LarkMessenger struct {
	client    *lark.Client
	receiveID string
	idType    string
	logger    *zap.Logger
}

// LarkConfig holds Lark messenger configuration
type LarkConfig struct {
	AppID     string
	AppSecret string
	// ReceiveID is the reviewer's identifier of the given ReceiveIDType
	ReceiveID     string
	ReceiveIDType string
}

// NewLarkMessenger creates a new Lark delivery backend
func NewLarkMessenger(cfg LarkConfig, logger *zap.Logger) *LarkMessenger {
	client := lark.NewClient(cfg.AppID, cfg.AppSecret,
		lark.WithLogLevel(larkcore.LogLevelInfo),
		lark.WithEnableTokenCache(true),
	)

	idType := cfg.ReceiveIDType
	if idType == "" {
		idType = "email"
	}

	return &LarkMessenger{
		client:    client,
		receiveID: cfg.ReceiveID,
		idType:    idType,
		logger:    logger,
	}
}

// Name identifies the backend
func (m *LarkMessenger) Name() string { return "lark" }

// Deliver sends the submission summary as a text message to the reviewer
func (m *LarkMessenger) Deliver(ctx context.Context, record *submission.Record) error {
	content, err := json.Marshal(map[string]string{"text": summaryBody(record)})
	if err != nil {
		return fmt.Errorf("failed to encode message content: %w", err)
	}

	req := larkim.NewCreateMessageReqBuilder().
		ReceiveIdType(m.idType).
		Body(larkim.NewCreateMessageReqBodyBuilder().
			ReceiveId(m.receiveID).
			MsgType("text").
			Content(string(content)).
			Build()).
		Build()

	resp, err := m.client.Im.Message.Create(ctx, req)
	if err != nil {
		m.logger.Error("Failed to send Lark message",
			zap.String("session_id", record.SessionID),
			zap.Error(err))
		return fmt.Errorf("failed to send Lark message: %w", err)
	}
	if !resp.Success() {
		m.logger.Error("Lark API returned failure",
			zap.String("session_id", record.SessionID),
			zap.Int("code", resp.Code),
			zap.String("msg", resp.Msg))
		return fmt.Errorf("lark API error: code=%d, msg=%s", resp.Code, resp.Msg)
	}

	messageID := ""
	if resp.Data != nil && resp.Data.MessageId != nil {
		messageID = *resp.Data.MessageId
	}
	m.logger.Info("Submission message sent",
		zap.String("session_id", record.SessionID),
		zap.String("message_id", messageID))
	return nil
}
