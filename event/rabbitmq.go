package event

import (
	"context"
	"encoding/json"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"chat-app-server/models"
)

const (
	// MessageQueue receives every persisted message for downstream
	// consumers such as push notification workers.
	MessageQueue = "chat.messages"

	publishTimeout = 5 * time.Second
	actionHeader   = "x-action"
)

// Bridge republishes persisted messages onto a RabbitMQ queue. The broker
// keeps a durable copy for consumers the in-process hub cannot reach.
type Bridge struct {
	conn    *amqp.Connection
	channel *amqp.Channel
}

// NewBridge dials the broker and declares the message queue. Returns an
// error instead of panicking so the caller can run without a broker.
func NewBridge(url string) (*Bridge, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}

	if _, err := channel.QueueDeclare(
		MessageQueue,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,
	); err != nil {
		channel.Close()
		conn.Close()
		return nil, err
	}

	log.Printf("[event] connected to RabbitMQ, queue %s declared", MessageQueue)
	return &Bridge{conn: conn, channel: channel}, nil
}

// PublishMessage emits the message view onto the queue. Failures are logged,
// not returned: the broker path is best-effort on top of the already
// persisted message.
func (b *Bridge) PublishMessage(view models.MessageView) {
	body, err := json.Marshal(view)
	if err != nil {
		log.Printf("[event] marshal message %d: %v", view.ID, err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()

	err = b.channel.PublishWithContext(
		ctx,
		"",           // exchange
		MessageQueue, // routing key
		false,        // mandatory
		false,        // immediate
		amqp.Publishing{
			DeliveryMode: amqp.Persistent,
			ContentType:  "application/json",
			Headers: amqp.Table{
				actionHeader: models.EventMessage,
			},
			Body: body,
		},
	)
	if err != nil {
		log.Printf("[event] publish message %d: %v", view.ID, err)
	}
}

func (b *Bridge) Close() {
	if b.channel != nil {
		b.channel.Close()
	}
	if b.conn != nil {
		b.conn.Close()
	}
}
