package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ds124wfegd/notification-service/internal/entity"

	"github.com/go-redis/redis/v8"
)

// redisRepository stores each notification as JSON under notification:<id>
// and keeps a per-recipient list of ids in insertion order. Create uses
// SETNX to detect id conflicts; Save uses SET XX, last write wins.
// Ids in the recipient list without a document are skipped by both
// FindManyByRecipientID and CountManyByRecipientID.
type redisRepository struct {
	client *redis.Client
}

func NewRedisRepository(client *redis.Client) NotificationsRepository {
	return &redisRepository{client: client}
}

// createScript stores the document and indexes it in one step.
// KEYS[1] document key, KEYS[2] recipient list, ARGV[1] document, ARGV[2] id.
var createScript = redis.NewScript(`
if redis.call("SETNX", KEYS[1], ARGV[1]) == 0 then
	return 0
end
redis.call("RPUSH", KEYS[2], ARGV[2])
return 1
`)

func notificationKey(id string) string {
	return fmt.Sprintf("notification:%s", id)
}

func recipientKey(recipientID string) string {
	return fmt.Sprintf("recipient:%s:notifications", recipientID)
}

func (r *redisRepository) Create(ctx context.Context, notification *entity.Notification) error {
	data, err := json.Marshal(toRecord(notification))
	if err != nil {
		return entity.NewStorageError("create notification", err)
	}

	keys := []string{notificationKey(notification.ID()), recipientKey(notification.RecipientID())}
	created, err := createScript.Run(ctx, r.client, keys, string(data), notification.ID()).Int()
	if err != nil {
		return entity.NewStorageError("create notification", err)
	}
	if created == 0 {
		return entity.NewStorageError("create notification", entity.ErrNotificationAlreadyExists)
	}
	return nil
}

func (r *redisRepository) FindByID(ctx context.Context, id string) (*entity.Notification, error) {
	data, err := r.client.Get(ctx, notificationKey(id)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, entity.NewStorageError("find notification", err)
	}

	return decodeNotification(data)
}

func (r *redisRepository) FindManyByRecipientID(ctx context.Context, recipientID string) ([]*entity.Notification, error) {
	ids, err := r.client.LRange(ctx, recipientKey(recipientID), 0, -1).Result()
	if err != nil {
		return nil, entity.NewStorageError("find recipient notifications", err)
	}

	notifications := make([]*entity.Notification, 0, len(ids))
	if len(ids) == 0 {
		return notifications, nil
	}

	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, notificationKey(id))
	}

	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, entity.NewStorageError("find recipient notifications", err)
	}

	for _, value := range values {
		data, ok := value.(string)
		if !ok {
			continue
		}
		notification, err := decodeNotification(data)
		if err != nil {
			return nil, err
		}
		notifications = append(notifications, notification)
	}

	return notifications, nil
}

func (r *redisRepository) CountManyByRecipientID(ctx context.Context, recipientID string) (int, error) {
	notifications, err := r.FindManyByRecipientID(ctx, recipientID)
	if err != nil {
		return 0, err
	}
	return len(notifications), nil
}

func (r *redisRepository) Save(ctx context.Context, notification *entity.Notification) error {
	data, err := json.Marshal(toRecord(notification))
	if err != nil {
		return entity.NewStorageError("save notification", err)
	}

	updated, err := r.client.SetXX(ctx, notificationKey(notification.ID()), data, 0).Result()
	if err != nil {
		return entity.NewStorageError("save notification", err)
	}
	if !updated {
		return entity.ErrNotificationNotFound
	}
	return nil
}

func decodeNotification(data string) (*entity.Notification, error) {
	var record notificationRecord
	if err := json.Unmarshal([]byte(data), &record); err != nil {
		return nil, entity.NewStorageError("decode notification", err)
	}

	notification, err := record.toEntity()
	if err != nil {
		return nil, entity.NewStorageError("decode notification", err)
	}
	return notification, nil
}
