package types

// PubSubType defines the type of pubsub implementation
type PubSubType string

const (
	// MemoryPubSub uses in-memory implementation
	MemoryPubSub PubSubType = "memory"
	// KafkaPubSub shares the queue between API and worker processes
	KafkaPubSub PubSubType = "kafka"
)
