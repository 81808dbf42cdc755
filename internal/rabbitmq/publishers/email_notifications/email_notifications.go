package emailnotifications

import (
	"context"
	e "useradmin/internal/core/domain/errors"
	"useradmin/internal/core/domain/logging"
	"useradmin/internal/core/domain/user"
	"useradmin/internal/rabbitmq"
	"useradmin/internal/rabbitmq/schema"

	"github.com/rabbitmq/amqp091-go"
)

// Publisher offloads email delivery to the worker process. It
// implements both token sender interfaces.
type Publisher struct {
	log        logging.Logger
	channel    *rabbitmq.Channel
	exchange   string
	routingKey string
}

func NewPublisher(log logging.Logger, channel *rabbitmq.Channel, exchange string, routingKey string) *Publisher {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if channel == nil {
		panic(e.NewNilArgumentError("channel"))
	}
	return &Publisher{log: log, channel: channel, exchange: exchange, routingKey: routingKey}
}

func (p *Publisher) SendSetPasswordToken(ctx context.Context, u user.User) error {
	return p.publish(ctx, schema.EmailNotification{Kind: schema.EmailKindSetPassword, UserID: int64(u.ID)})
}

func (p *Publisher) SendPasswordResetToken(ctx context.Context, u user.User) error {
	return p.publish(ctx, schema.EmailNotification{Kind: schema.EmailKindResetPassword, UserID: int64(u.ID)})
}

func (p *Publisher) publish(ctx context.Context, notification schema.EmailNotification) error {
	body, err := notification.Marshal()
	if err != nil {
		return err
	}
	err = p.channel.PublishWithContext(ctx, p.exchange, p.routingKey, false, false, amqp091.Publishing{
		ContentType: "application/json",
		Body:        body,
	})
	if err != nil {
		logging.Error(ctx, p.log, err)
		return err
	}
	p.log.Info(
		ctx,
		"Email notification has been published.",
		logging.Entry("exchange", p.exchange),
		logging.Entry("RK", p.routingKey),
		logging.Entry("kind", notification.Kind),
		logging.Entry("userID", notification.UserID),
	)
	return nil
}
