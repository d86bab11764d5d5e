package mail

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const publishTimeout = 5 * time.Second

// resetMailMessage is the payload handed to the mail delivery worker.
type resetMailMessage struct {
	To       string `json:"to"`
	Subject  string `json:"subject"`
	ResetURL string `json:"reset_url"`
	Body     string `json:"body"`
}

// Publisher dispatches password-reset mail over an AMQP queue consumed by an
// out-of-process delivery worker. The publish is confirmed: a failure here
// means the mail will never be delivered, which the caller treats as a
// delivery error.
type Publisher struct {
	conn  *amqp.Connection
	ch    *amqp.Channel
	queue string
}

// NewPublisher connects to the broker and declares the durable mail queue.
func NewPublisher(url, queue string) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("amqp dial: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("amqp channel: %w", err)
	}

	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("amqp queue declare: %w", err)
	}

	return &Publisher{conn: conn, ch: ch, queue: queue}, nil
}

func (p *Publisher) SendPasswordReset(ctx context.Context, email, resetURL string) error {
	msg := resetMailMessage{
		To:       email,
		Subject:  "Password reset",
		ResetURL: resetURL,
		Body:     "Copy and paste this link in your browser to reset your password:\n\n" + resetURL,
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("encode reset mail: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	err = p.ch.PublishWithContext(ctx, "", p.queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("publish reset mail: %w", err)
	}
	return nil
}

// Close releases the channel and connection.
func (p *Publisher) Close() error {
	if err := p.ch.Close(); err != nil {
		_ = p.conn.Close()
		return err
	}
	return p.conn.Close()
}
