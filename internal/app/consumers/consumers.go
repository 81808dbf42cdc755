package consumers

import (
	"context"
	"useradmin/internal/app/deps"
	dl "useradmin/internal/core/domain/logging"
	emailnotifications "useradmin/internal/rabbitmq/consumers/email_notifications"
)

func initEmailNotificationsConsumer(deps *deps.Deps) func() {
	rabbitmqChannel, err := deps.Rabbitmq.Channel()
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not create RabbitMQ channel.", dl.Entry("err", err))
		panic(err)
	}

	queue := deps.Config.RabbitmqEmailQueue
	emailNotificationsConsumer := emailnotifications.New(
		deps.Logger,
		rabbitmqChannel,
		queue,
		deps.UserRepository,
		deps.EmailSender,
		deps.EmailSender,
	)
	if err = emailNotificationsConsumer.Consume(); err != nil {
		deps.Logger.Error(
			context.Background(),
			"Could not start RabbitMQ consuming.",
			dl.Entry("err", err),
			dl.Entry("queue", queue),
		)
		panic(err)
	}

	deps.Logger.Info(context.Background(), "Consumer has started.", dl.Entry("queue", queue))
	return func() { rabbitmqChannel.Close() }
}

func InitConsumers(deps *deps.Deps) func() {
	shutdownEmailNotificationsConsumer := initEmailNotificationsConsumer(deps)

	return func() {
		shutdownEmailNotificationsConsumer()
	}
}
