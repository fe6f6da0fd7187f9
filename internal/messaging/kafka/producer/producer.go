package producer

import (
	kafkago "github.com/segmentio/kafka-go"
)

// NewWriter builds a shared writer; topics are set per message.
func NewWriter(brokers []string) *kafkago.Writer {
	return &kafkago.Writer{
		Addr:                   kafkago.TCP(brokers...),
		Balancer:               &kafkago.LeastBytes{},
		AllowAutoTopicCreation: true,
	}
}
