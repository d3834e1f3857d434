// Package kafka publishes completed health insights to a sink topic for
// downstream alerting and analytics consumers.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/NoobSambit/KisanSetu-Hackathon-sub000/internal/config"
	"github.com/NoobSambit/KisanSetu-Hackathon-sub000/internal/engine"
)

// Publisher produces insight events to a Kafka topic.
// It implements engine.InsightPublisher.
type Publisher struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewPublisher creates a Kafka producer for the configured sink topic.
func NewPublisher(cfg *config.Config, logger *slog.Logger) *Publisher {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaSinkTopic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Publisher{writer: w, logger: logger}
}

// PublishInsight serializes and publishes one analysis result.
func (p *Publisher) PublishInsight(ctx context.Context, result engine.AnalysisResult) error {
	msg, err := serializeToMessage(result)
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, msg)
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}

// serializeToMessage marshals an analysis result into a Kafka message keyed
// by AOI id so consumers see per-farm ordering.
func serializeToMessage(result engine.AnalysisResult) (kafkago.Message, error) {
	data, err := json.Marshal(result)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize insight event: %w", err)
	}

	headers := []kafkago.Header{
		{Key: "aoi_source", Value: []byte(result.Metadata.AOISource)},
		{Key: "generated_at", Value: []byte(result.Metadata.GeneratedAt.Format(time.RFC3339))},
	}
	if result.Insight != nil {
		headers = append(headers, kafkago.Header{
			Key: "data_source", Value: []byte(result.Insight.DataSource),
		})
	}

	return kafkago.Message{
		Key:     []byte(result.Metadata.AOIID),
		Value:   data,
		Headers: headers,
	}, nil
}
