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

// Consumer delivers queued email notifications. It re-reads the user
// so the email carries the token currently stored, not the one at
// publish time.
type Consumer struct {
	log         logging.Logger
	channel     *rabbitmq.Channel
	queue       string
	users       user.UserRepository
	setSender   user.SetPasswordTokenSender
	resetSender user.PasswordResetTokenSender
}

func New(
	log logging.Logger,
	channel *rabbitmq.Channel,
	queue string,
	users user.UserRepository,
	setSender user.SetPasswordTokenSender,
	resetSender user.PasswordResetTokenSender,
) *Consumer {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if channel == nil {
		panic(e.NewNilArgumentError("channel"))
	}
	if queue == "" {
		panic("queue name must not be empty")
	}
	if users == nil {
		panic(e.NewNilArgumentError("users"))
	}
	if setSender == nil {
		panic(e.NewNilArgumentError("setSender"))
	}
	if resetSender == nil {
		panic(e.NewNilArgumentError("resetSender"))
	}

	return &Consumer{
		log:         log,
		channel:     channel,
		queue:       queue,
		users:       users,
		setSender:   setSender,
		resetSender: resetSender,
	}
}

func (c *Consumer) Consume() error {
	deliveries, err := c.channel.Consume(c.queue, "", false, false, false, false, nil)
	if err != nil {
		c.log.Error(context.Background(), "Could not start consuming.", logging.Entry("err", err))
		return err
	}

	go func() {
		for delivery := range deliveries {
			notification := &schema.EmailNotification{}
			if err := notification.Unmarshal(delivery.Body); err != nil {
				c.log.Error(
					context.Background(),
					"Could not unmarshal email notification.",
					logging.Entry("err", err),
					logging.Entry("delivery", delivery),
				)
				c.Ack(delivery)
				continue
			}

			c.deliver(context.Background(), notification)
			c.Ack(delivery)
		}
	}()
	return nil
}

func (c *Consumer) deliver(ctx context.Context, notification *schema.EmailNotification) {
	u, err := c.users.GetByID(ctx, user.ID(notification.UserID))
	if err != nil {
		c.log.Error(
			ctx,
			"Could not load user for email notification.",
			logging.Entry("notification", notification),
			logging.Entry("err", err),
		)
		return
	}

	switch notification.Kind {
	case schema.EmailKindSetPassword:
		err = c.setSender.SendSetPasswordToken(ctx, u)
	case schema.EmailKindResetPassword:
		err = c.resetSender.SendPasswordResetToken(ctx, u)
	default:
		c.log.Error(
			ctx,
			"Unknown email notification kind.",
			logging.Entry("notification", notification),
		)
		return
	}
	if err != nil {
		c.log.Error(
			ctx,
			"Could not send email notification.",
			logging.Entry("notification", notification),
			logging.Entry("err", err),
		)
		return
	}
	c.log.Info(
		ctx,
		"Email notification has been sent.",
		logging.Entry("kind", notification.Kind),
		logging.Entry("userID", notification.UserID),
	)
}

func (c *Consumer) Ack(delivery amqp091.Delivery) {
	if err := delivery.Ack(true); err != nil {
		c.log.Error(context.Background(), "Could not ACK AMQP message.", logging.Entry("err", err))
	}
}
