package sender

import (
	"context"
	"fmt"
	"net/http"

	"tripdesk/pkg/client"
	"tripdesk/pkg/config"
	"tripdesk/pkg/logger"
)

type SMSSender interface {
	Send(ctx context.Context, phone, text string) error
}

type smsRequest struct {
	To   string `json:"to"`
	Text string `json:"text"`
}

type httpSMSSender struct {
	hc  *client.HttpClient
	log *logger.Logger
}

func NewHTTPSMSSender(cfg *config.Config) SMSSender {
	return &httpSMSSender{
		hc:  client.NewHttpClient(cfg.SMSGatewayURL, cfg.RequestTimeout),
		log: cfg.Log,
	}
}

func (s *httpSMSSender) Send(ctx context.Context, phone, text string) error {
	if phone == "" {
		return nil
	}

	resp, err := s.hc.POST(ctx, "/v1/messages", smsRequest{To: phone, Text: text})
	if err != nil {
		return fmt.Errorf("failed to send SMS to %s: %w", phone, err)
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusAccepted {
		return fmt.Errorf("SMS gateway returned status %d for %s", resp.StatusCode, phone)
	}

	s.log.Info("SMS sent", "to", phone)
	return nil
}
