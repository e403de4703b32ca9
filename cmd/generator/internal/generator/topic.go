package generator

import (
	"context"
	"errors"
	"net"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// TopicSpec describes the rate feed topic.
type TopicSpec struct {
	Name       string
	Partitions int
	Replicas   int
}

// TopicCreator makes sure the feed topic exists before the generator writes.
type TopicCreator struct {
	logger *zap.Logger
	dialer KafkaDialer
	clock  Clock

	readyPolls int
	pollEvery  time.Duration
}

func NewTopicCreator(logger *zap.Logger, dialer KafkaDialer, clock Clock) *TopicCreator {
	return &TopicCreator{
		logger:     logger,
		dialer:     dialer,
		clock:      clock,
		readyPolls: 5,
		pollEvery:  200 * time.Millisecond,
	}
}

// Ensure creates spec on the cluster controller and waits until the topic
// reports partitions. Creation failures for an existing topic are not errors.
func (tc *TopicCreator) Ensure(ctx context.Context, brokers []string, spec TopicSpec) error {
	if spec.Partitions <= 0 {
		spec.Partitions = 1
	}
	if spec.Replicas <= 0 {
		spec.Replicas = 1
	}

	conn, err := tc.dialAny(ctx, brokers)
	if err != nil {
		return err
	}
	defer conn.Close()

	controller, err := conn.Controller()
	if err != nil {
		return err
	}

	controllerAddr := net.JoinHostPort(controller.Host, strconv.Itoa(controller.Port))
	controllerConn, err := tc.dialer.DialContext(ctx, "tcp", controllerAddr)
	if err != nil {
		return err
	}
	defer controllerConn.Close()

	err = controllerConn.CreateTopics(kafka.TopicConfig{
		Topic:             spec.Name,
		NumPartitions:     spec.Partitions,
		ReplicationFactor: spec.Replicas,
	})
	if err != nil {
		tc.logger.Info("Topic creation finished (might already exist)", zap.Error(err))
	} else {
		tc.logger.Info("Topic creation request sent", zap.String("topic", spec.Name))
	}

	return tc.waitForTopic(conn, spec.Name)
}

func (tc *TopicCreator) dialAny(ctx context.Context, brokers []string) (KafkaConn, error) {
	if len(brokers) == 0 {
		return nil, errors.New("no brokers configured")
	}
	var lastErr error
	for _, addr := range brokers {
		conn, err := tc.dialer.DialContext(ctx, "tcp", addr)
		if err == nil {
			return conn, nil
		}
		tc.logger.Debug("Broker dial failed", zap.String("addr", addr), zap.Error(err))
		lastErr = err
	}
	return nil, lastErr
}

func (tc *TopicCreator) waitForTopic(conn KafkaConn, topic string) error {
	for i := 0; i < tc.readyPolls; i++ {
		tc.clock.Sleep(tc.pollEvery)
		partitions, err := conn.ReadPartitions(topic)
		if err == nil && len(partitions) > 0 {
			tc.logger.Info("Topic is ready", zap.String("topic", topic), zap.Int("partitions", len(partitions)))
			return nil
		}
	}
	return errors.New("timed out waiting for topic " + topic)
}
