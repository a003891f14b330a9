// Package stream publishes news items found by the orchestrator to Kafka so
// downstream consumers (alerting, archival) see them as they are
// discovered. A nil *Publisher is valid and publishes nothing.
package stream

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/IBM/sarama"

	"searchagent/types"
)

// Publisher writes JSON-encoded news items to one topic.
type Publisher struct {
	producer sarama.SyncProducer
	topic    string
}

// New connects a synchronous producer to the given brokers.
func New(brokers []string, topic string) (*Publisher, error) {
	saramaConfig := sarama.NewConfig()
	saramaConfig.Version = sarama.V3_6_0_0
	saramaConfig.Producer.RequiredAcks = sarama.WaitForAll
	saramaConfig.Producer.Retry.Max = 3
	saramaConfig.Producer.Return.Successes = true

	producer, err := sarama.NewSyncProducer(brokers, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("create kafka producer: %w", err)
	}
	return &Publisher{producer: producer, topic: topic}, nil
}

// PublishNews sends each item keyed by its URL hash. Individual send
// failures are logged and counted, not fatal; the pipeline result does not
// depend on the stream.
func (p *Publisher) PublishNews(query string, items []types.NewsItem) int {
	if p == nil || len(items) == 0 {
		return 0
	}

	published := 0
	for _, item := range items {
		payload, err := json.Marshal(struct {
			Query string         `json:"query"`
			Item  types.NewsItem `json:"item"`
		}{Query: query, Item: item})
		if err != nil {
			log.Printf("Encode news item %s: %v", item.URL, err)
			continue
		}

		msg := &sarama.ProducerMessage{
			Topic: p.topic,
			Key:   sarama.StringEncoder(types.GenerateID(item.URL)),
			Value: sarama.ByteEncoder(payload),
		}
		if _, _, err := p.producer.SendMessage(msg); err != nil {
			log.Printf("Publish news item %s: %v", item.URL, err)
			continue
		}
		published++
	}
	return published
}

// Close shuts down the producer.
func (p *Publisher) Close() error {
	if p == nil {
		return nil
	}
	log.Println("Closing Kafka producer...")
	return p.producer.Close()
}
