package deps

import (
	"context"
	"sync"
	"time"
	"useradmin/internal/config"
	"useradmin/internal/core/domain/company"
	dl "useradmin/internal/core/domain/logging"
	duow "useradmin/internal/core/domain/unit_of_work"
	"useradmin/internal/core/domain/user"
	dbcompany "useradmin/internal/db/company"
	uow "useradmin/internal/db/unit_of_work"
	dbuser "useradmin/internal/db/user"
	"useradmin/internal/implementations/email"
	"useradmin/internal/implementations/logging"
	passwordhasher "useradmin/internal/implementations/password_hasher"
	"useradmin/internal/implementations/session"
	tokengenerator "useradmin/internal/implementations/token_generator"
	"useradmin/internal/rabbitmq"
	emailnotifications "useradmin/internal/rabbitmq/publishers/email_notifications"
	redissession "useradmin/internal/redis"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/aws/retry"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/go-redis/redis/v9"
	"github.com/jackc/pgx/v4/pgxpool"
)

type Deps struct {
	Config    *config.Config
	AwsConfig aws.Config
	Logger    dl.Logger

	DB       *pgxpool.Pool
	Redis    *redis.Client
	Rabbitmq *rabbitmq.Connection

	Now func() time.Time

	UnitOfWork        duow.UnitOfWork
	UserRepository    user.UserRepository
	CompanyRepository company.Repository
	SessionRepository user.SessionRepository

	// EmailSender delivers via SES; the publisher defers delivery to
	// the worker process.
	EmailSender              *email.EmailSender
	SetPasswordTokenSender   user.SetPasswordTokenSender
	PasswordResetTokenSender user.PasswordResetTokenSender

	SetPasswordTokenGenerator   user.SetPasswordTokenGenerator
	ResetPasswordTokenGenerator user.ResetPasswordTokenGenerator
	SessionTokenGenerator       user.SessionTokenGenerator
	PasswordHasher              user.PasswordHasher
}

func InitDeps() (*Deps, func()) {
	deps := &Deps{}

	deps.initConfig()
	deps.initAwsConfig()

	closeLogger := deps.initLogger()
	closePgxPool := deps.initPgxPool()
	closeRedisClient := deps.initRedisClient()
	closeRabbitmqConn := deps.initRabbitmqConnection()

	deps.Now = func() time.Time { return time.Now().UTC() }

	deps.UnitOfWork = uow.NewPgxUnitOfWork(deps.DB)
	deps.UserRepository = dbuser.NewPgxRepository(deps.DB)
	deps.CompanyRepository = dbcompany.NewPgxRepository(deps.DB)
	deps.SessionRepository = redissession.NewSessionRepository(
		deps.Redis,
		deps.UserRepository,
		deps.Config.SessionValidDuration,
	)

	deps.EmailSender = email.NewEmailSender(
		deps.AwsConfig,
		deps.Config.AwsEmailSender,
		deps.Config.AwsEmailSetPasswordTemplate,
		deps.Config.AwsEmailSetPasswordBaseUrl,
		deps.Config.AwsEmailPasswordResetTemplate,
		deps.Config.AwsEmailPasswordResetBaseUrl,
		deps.Now,
	)

	deps.SetPasswordTokenGenerator = tokengenerator.NewGenerator()
	deps.ResetPasswordTokenGenerator = tokengenerator.NewGenerator()
	deps.SessionTokenGenerator = session.NewUUID()
	deps.PasswordHasher = passwordhasher.NewBcrypt(deps.Config.Secret, deps.Config.BcryptHasherCost)

	closeEmailPublisher := deps.initRabbitmqEmailPublisher()

	return deps, func() {
		closeFuncs := []func(){
			closeEmailPublisher,
			closeRabbitmqConn,
			closeRedisClient,
			closePgxPool,
			closeLogger,
		}

		var wg sync.WaitGroup
		wg.Add(len(closeFuncs))
		for _, closeFunc := range closeFuncs {
			closeFunc := closeFunc
			go func() {
				closeFunc()
				wg.Done()
			}()
		}

		wg.Wait()
	}
}

func (deps *Deps) initConfig() {
	config, err := config.Load()
	if err != nil {
		panic(err)
	}
	deps.Config = config
}

func (deps *Deps) initAwsConfig() {
	cfg, err := awsConfig.LoadDefaultConfig(
		context.Background(),
		awsConfig.WithRegion(deps.Config.AwsRegion),
		awsConfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(
				deps.Config.AwsAccessKey,
				deps.Config.AwsSecretKey,
				"",
			),
		),
		awsConfig.WithRetryer(func() aws.Retryer {
			return retry.AddWithMaxAttempts(
				retry.AddWithMaxBackoffDelay(retry.NewStandard(), time.Second*5),
				3,
			)
		}),
	)
	if err != nil {
		panic(err)
	}
	deps.AwsConfig = cfg
}

func (deps *Deps) initLogger() func() {
	logger := logging.NewZapLogger()
	deps.Logger = logger
	return func() { logger.Sync() }
}

func (deps *Deps) initPgxPool() func() {
	db, err := pgxpool.Connect(context.Background(), deps.Config.PostgresqlURL)
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not connect to DB.", dl.Entry("err", err))
		panic(err)
	}
	deps.DB = db
	return func() {
		deps.Logger.Info(context.Background(), "Shutting down DB connection.")
		db.Close()
		deps.Logger.Info(context.Background(), "DB connection shut down.")
	}
}

func (deps *Deps) initRedisClient() func() {
	redisOpt, err := redis.ParseURL(deps.Config.RedisURL)
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not connect to Redis.", dl.Entry("err", err))
		panic(err)
	}
	redisClient := redis.NewClient(redisOpt)
	deps.Redis = redisClient
	return func() {
		deps.Logger.Info(context.Background(), "Shutting down Redis client.")
		redisClient.Close()
		deps.Logger.Info(context.Background(), "Redis client shut down.")
	}
}

func (deps *Deps) initRabbitmqConnection() func() {
	rabbitmqConnection, err := rabbitmq.Dial(deps.Config.RabbitmqURL, deps.Logger)
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not connect to RabbitMQ.", dl.Entry("err", err))
		panic("could not connect to RabbitMQ")
	}
	deps.Rabbitmq = rabbitmqConnection
	return func() {
		deps.Logger.Info(context.Background(), "Shutting down RabbitMQ connection.")
		rabbitmqConnection.Close()
		deps.Logger.Info(context.Background(), "RabbitMQ connection shut down.")
	}
}

func (deps *Deps) initRabbitmqEmailPublisher() func() {
	rabbitmqChannel, err := deps.Rabbitmq.Channel()
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not create RabbitMQ channel.", dl.Entry("err", err))
		panic(err)
	}

	if err := DeclareEmailNotificationsTopology(deps.Config, rabbitmqChannel); err != nil {
		deps.Logger.Error(
			context.Background(),
			"Could not declare RabbitMQ topology.",
			dl.Entry("err", err),
		)
		panic(err)
	}

	publisher := emailnotifications.NewPublisher(
		deps.Logger,
		rabbitmqChannel,
		deps.Config.RabbitmqEmailExchange,
		deps.Config.RabbitmqEmailQueue,
	)
	deps.SetPasswordTokenSender = publisher
	deps.PasswordResetTokenSender = publisher

	return func() {
		deps.Logger.Info(context.Background(), "Shutting down email notification publisher.")
		rabbitmqChannel.Close()
		deps.Logger.Info(context.Background(), "Email notification publisher shut down.")
	}
}

func DeclareEmailNotificationsTopology(cfg *config.Config, channel *rabbitmq.Channel) error {
	if err := channel.ExchangeDeclare(
		cfg.RabbitmqEmailExchange,
		"direct",
		true,
		false,
		false,
		false,
		nil,
	); err != nil {
		return err
	}
	if _, err := channel.QueueDeclare(cfg.RabbitmqEmailQueue, true, false, false, false, nil); err != nil {
		return err
	}
	return channel.QueueBind(
		cfg.RabbitmqEmailQueue,
		cfg.RabbitmqEmailQueue,
		cfg.RabbitmqEmailExchange,
		false,
		nil,
	)
}
