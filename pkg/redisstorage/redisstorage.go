package redisstorage

import (
	"context"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
)

const defaultTimeout = 2 * time.Second

// Storage fiber.Storage arayüzünü Redis üzerinde uygular.
// Limiter sayaçlarının birden fazla uygulama instance'ı arasında paylaşılması için kullanılır.
type Storage struct {
	client    redis.UniversalClient
	keyPrefix string
	timeout   time.Duration
}

// New REDIS_URL biçimindeki bağlantı adresinden bir Storage oluşturur ve bağlantıyı doğrular.
func New(ctx context.Context, url, keyPrefix string) (*Storage, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return NewWithClient(client, keyPrefix), nil
}

// NewWithClient mevcut bir istemciyi sarmalar.
func NewWithClient(client redis.UniversalClient, keyPrefix string) *Storage {
	return &Storage{client: client, keyPrefix: keyPrefix, timeout: defaultTimeout}
}

func (s *Storage) key(k string) string {
	return s.keyPrefix + k
}

func (s *Storage) ctx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), s.timeout)
}

// Get anahtar yoksa nil, nil döner.
func (s *Storage) Get(key string) ([]byte, error) {
	if len(key) == 0 {
		return nil, nil
	}
	ctx, cancel := s.ctx()
	defer cancel()

	val, err := s.client.Get(ctx, s.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	return val, err
}

// Set boş anahtar veya değer için hiçbir şey yapmaz. exp=0 süresiz saklar.
func (s *Storage) Set(key string, val []byte, exp time.Duration) error {
	if len(key) == 0 || len(val) == 0 {
		return nil
	}
	ctx, cancel := s.ctx()
	defer cancel()
	return s.client.Set(ctx, s.key(key), val, exp).Err()
}

func (s *Storage) Delete(key string) error {
	if len(key) == 0 {
		return nil
	}
	ctx, cancel := s.ctx()
	defer cancel()
	return s.client.Del(ctx, s.key(key)).Err()
}

// Reset yalnızca bu Storage'ın önekine sahip anahtarları siler.
func (s *Storage) Reset() error {
	ctx, cancel := s.ctx()
	defer cancel()

	iter := s.client.Scan(ctx, 0, s.key("*"), 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return s.client.Del(ctx, keys...).Err()
}

func (s *Storage) Close() error {
	return s.client.Close()
}
