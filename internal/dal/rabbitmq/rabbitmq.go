package rabbitmq

import (
	"fmt"
	"log/slog"

	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
	"github.com/streadway/amqp"
)

// Config holds connection settings read from GROCERY_RABBITMQ_* variables.
type Config struct {
	URL      string `envconfig:"URL"`
	Host     string `envconfig:"HOST"     default:"rabbitmq"`
	Port     int    `envconfig:"PORT"     default:"5672"`
	User     string `envconfig:"USER"     default:"guest"`
	Password string `envconfig:"PASSWORD" default:"guest"`
	VHost    string `envconfig:"VHOST"`
}

// LoadConfig reads Config from the environment.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := envconfig.Process("GROCERY_RABBITMQ", &cfg); err != nil {
		return Config{}, errors.Wrap(err, "read rabbitmq env")
	}

	return cfg, nil
}

// ConnString returns URL when set, otherwise an amqp:// URL built from the parts.
func (c Config) ConnString() string {
	if c.URL != "" {
		return c.URL
	}

	return fmt.Sprintf("amqp://%s:%s@%s:%d/%s", c.User, c.Password, c.Host, c.Port, c.VHost)
}

// Client represents a RabbitMQ client.
type Client struct {
	conn    *amqp.Connection
	channel *amqp.Channel
}

// Channel returns the underlying AMQP channel.
func (r *Client) Channel() *amqp.Channel {
	return r.channel
}

// Close closes the channel and connection for graceful shutdown.
func (r *Client) Close() error {
	if r.channel != nil {
		if err := r.channel.Close(); err != nil {
			return err
		}
	}
	if r.conn != nil {
		return r.conn.Close()
	}

	return nil
}

// NewClient dials the broker and opens a channel.
func NewClient(cfg Config) (*Client, error) {
	conn, err := amqp.Dial(cfg.ConnString())
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to RabbitMQ")
	}

	channel, err := conn.Channel()
	if err != nil {
		if cerr := conn.Close(); cerr != nil {
			slog.Error("Failed to close a connection", "error", cerr)
		}
		return nil, errors.Wrap(err, "failed to open a channel")
	}

	slog.Info("RabbitMQ connected", "host", cfg.Host)

	return &Client{
		conn:    conn,
		channel: channel,
	}, nil
}

// MustNewClient creates a new RabbitMQ client from the environment.
func MustNewClient() *Client {
	cfg, err := LoadConfig()
	if err != nil {
		panic(err)
	}

	client, err := NewClient(cfg)
	if err != nil {
		panic(err)
	}

	return client
}

type DeclareQueueConfig struct {
	Name       string
	Durable    bool
	AutoDelete bool
	Exclusive  bool
	NoWait     bool
	Args       amqp.Table
}

// DeclareQueue declares a queue with the given configuration.
func (r *Client) DeclareQueue(cfg DeclareQueueConfig) (amqp.Queue, error) {
	return r.channel.QueueDeclare(
		cfg.Name,
		cfg.Durable,
		cfg.AutoDelete,
		cfg.Exclusive,
		cfg.NoWait,
		cfg.Args,
	)
}

// Publish sends msg to the default exchange routed by queue name.
func (r *Client) Publish(queue string, msg amqp.Publishing) error {
	return r.channel.Publish("", queue, false, false, msg)
}
