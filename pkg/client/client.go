package client

import (
	"tripdesk/pkg/logger"
)

// Client aggregates the external connections a service needs. Fields are nil
// until the matching Set* call succeeds, so each binary only pays for the
// backends it actually uses.
type Client struct {
	Mongo *MongoClient
	Redis *RedisClient
}

func NewClient() *Client {
	return &Client{}
}

func (c *Client) GracefulShutdown(log *logger.Logger) {
	if c.Mongo != nil {
		c.Mongo.Close(log)
	}
	if c.Redis != nil {
		c.Redis.Close(log)
	}
}
