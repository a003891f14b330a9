package stream

import (
	"testing"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"

	"searchagent/types"
)

func TestPublishNews(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	producer.ExpectSendMessageAndSucceed()
	producer.ExpectSendMessageAndSucceed()
	producer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	p := &Publisher{producer: producer, topic: "news"}
	items := []types.NewsItem{
		{Title: "A", URL: "https://a.example.com/1", Source: "a"},
		{Title: "B", URL: "https://b.example.com/2", Source: "b"},
		{Title: "C", URL: "https://c.example.com/3", Source: "c"},
	}

	if got := p.PublishNews("energy", items); got != 2 {
		t.Errorf("published = %d, want 2 (one send fails)", got)
	}
	if err := p.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
}

func TestNilPublisherIsNoop(t *testing.T) {
	var p *Publisher
	if got := p.PublishNews("q", []types.NewsItem{{Title: "A"}}); got != 0 {
		t.Errorf("nil publisher published %d items", got)
	}
	if err := p.Close(); err != nil {
		t.Errorf("nil close: %v", err)
	}
}
