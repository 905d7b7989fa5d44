package initializers

import (
	"context"
	"time"

	"employee-management-backend/config"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

// InitRedis клиент redis для отозванных токенов, nil если адрес не задан
func InitRedis(ctx context.Context) *redis.Client {
	if config.Conf.Redis.Addr == "" {
		log.Info("Redis не настроен, отозванные токены хранятся в памяти")
		return nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     config.Conf.Redis.Addr,
		Password: config.Conf.Redis.Password,
		DB:       config.Conf.Redis.DB,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		panic("ошибка подключения к Redis: " + err.Error())
	}
	log.Info("Redis успешно подключен")
	return client
}
